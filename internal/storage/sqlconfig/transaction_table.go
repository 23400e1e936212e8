package sqlconfig

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

const transactionsTable = "transactions"

var transactionColumns = []any{
	"id", "owner_id", "kind", "amount", "category", "description", "transaction_date", "created_at",
}

var _ ITransactionTable = (*TransactionsTable)(nil)

type TransactionsTable struct {
	exec bob.Executor
}

// NewTransactionsTable runs its queries on exec, either a bob.DB or a bob.Tx.
func NewTransactionsTable(exec bob.Executor) *TransactionsTable {
	return &TransactionsTable{exec: exec}
}

// FindByID retrieves one of the owner's transactions by primary key.
func (t *TransactionsTable) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*Transaction, error) {
	query := psql.Select(
		sm.Columns(transactionColumns...),
		sm.From(transactionsTable),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, t.exec, query, scan.StructMapper[*Transaction]())
	if err != nil {
		return nil, notFound(err)
	}
	return row, nil
}

// Insert creates a new transaction and returns its generated ID.
func (t *TransactionsTable) Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	category := create.Category
	if category == "" {
		category = DefaultCategory
	}
	transactionDate := create.TransactionDate
	if transactionDate.IsZero() {
		transactionDate = time.Now().UTC()
	}

	query := psql.Insert(
		im.Into(transactionsTable, "id", "owner_id", "kind", "amount", "category", "description", "transaction_date"),
		im.Values(
			psql.Arg(id),
			psql.Arg(create.OwnerID),
			psql.Arg(string(create.Kind)),
			psql.Arg(create.Amount),
			psql.Arg(category),
			psql.Arg(create.Description),
			psql.Arg(transactionDate),
		),
		im.Returning("id"),
	)
	return bob.One(ctx, t.exec, query, scan.SingleColumnMapper[uuid.UUID])
}

// Update applies the set fields of update to one of the owner's transactions.
func (t *TransactionsTable) Update(ctx context.Context, ownerID, id uuid.UUID, update *TransactionUpdate) error {
	if update == nil || update.Empty() {
		_, err := t.FindByID(ctx, ownerID, id)
		return err
	}

	var setMods []bob.Mod[*dialect.UpdateQuery]
	if v, ok := update.Kind.Get(); ok {
		setMods = append(setMods, um.SetCol("kind").ToArg(string(v)))
	}
	if v, ok := update.Amount.Get(); ok {
		setMods = append(setMods, um.SetCol("amount").ToArg(v))
	}
	if v, ok := update.Category.Get(); ok {
		if v == "" {
			v = DefaultCategory
		}
		setMods = append(setMods, um.SetCol("category").ToArg(v))
	}
	if v, ok := update.Description.Get(); ok {
		setMods = append(setMods, um.SetCol("description").ToArg(v))
	}
	if v, ok := update.TransactionDate.Get(); ok {
		setMods = append(setMods, um.SetCol("transaction_date").ToArg(v))
	}

	queryMods := append([]bob.Mod[*dialect.UpdateQuery]{um.Table(transactionsTable)}, setMods...)
	queryMods = append(queryMods,
		um.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	result, err := bob.Exec(ctx, t.exec, psql.Update(queryMods...))
	if err != nil {
		return err
	}
	return requireRow(result)
}

// Delete removes one of the owner's transactions.
func (t *TransactionsTable) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	query := psql.Delete(
		dm.From(transactionsTable),
		dm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	result, err := bob.Exec(ctx, t.exec, query)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// List returns the owner's transactions matching the filter, most recent
// first. A nil filter is an empty one.
func (t *TransactionsTable) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	if filter == nil {
		filter = &TransactionFilter{}
	}
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(transactionColumns...),
		sm.From(transactionsTable),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(filter.OwnerID))),
	}
	if filter.Kind != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("kind").EQ(psql.Arg(string(*filter.Kind)))))
	}
	if filter.From != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("transaction_date").GTE(psql.Arg(*filter.From))))
	}
	if filter.To != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("transaction_date").LT(psql.Arg(*filter.To))))
	}
	if filter.MaxCreationTime != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("created_at").LTE(psql.Arg(*filter.MaxCreationTime))))
	}
	if filter.Limit > 0 {
		queryMods = append(queryMods, sm.Limit(filter.Limit+1))
	}
	if filter.Offset > 0 {
		queryMods = append(queryMods, sm.Offset(filter.Offset))
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("created_at")).Desc(),
		sm.OrderBy(psql.Quote("id")).Desc(),
	)

	return bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[*Transaction]())
}

// SumAmounts totals the owner's transactions of kind with a transaction date
// in [from, to).
func (t *TransactionsTable) SumAmounts(ctx context.Context, ownerID uuid.UUID, kind TransactionKind, from, to time.Time) (decimal.Decimal, error) {
	query := psql.Select(
		sm.Columns(psql.Raw("COALESCE(SUM(amount), 0)")),
		sm.From(transactionsTable),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.Where(psql.Quote("kind").EQ(psql.Arg(string(kind)))),
		sm.Where(psql.Quote("transaction_date").GTE(psql.Arg(from))),
		sm.Where(psql.Quote("transaction_date").LT(psql.Arg(to))),
	)
	return bob.One(ctx, t.exec, query, scan.SingleColumnMapper[decimal.Decimal])
}

func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
