package sqlconfig

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

const loansTable = "loans"

var _ ILoanTable = (*LoansTable)(nil)

type LoansTable struct {
	exec bob.Executor
}

// NewLoansTable runs its queries on exec, either a bob.DB or a bob.Tx.
func NewLoansTable(exec bob.Executor) *LoansTable {
	return &LoansTable{exec: exec}
}

func (t *LoansTable) Insert(ctx context.Context, create *LoanCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	query := psql.Insert(
		im.Into(loansTable, "id", "owner_id", "principal", "annual_rate", "tenure_months", "emi", "debt_to_income", "risk_score", "risk_level"),
		im.Values(
			psql.Arg(id),
			psql.Arg(create.OwnerID),
			psql.Arg(create.Principal),
			psql.Arg(create.AnnualRate),
			psql.Arg(create.TenureMonths),
			psql.Arg(create.EMI),
			psql.Arg(create.DebtToIncome),
			psql.Arg(create.RiskScore),
			psql.Arg(create.RiskLevel),
		),
		im.Returning("id"),
	)
	return bob.One(ctx, t.exec, query, scan.SingleColumnMapper[uuid.UUID])
}

// List returns the owner's loans, most recent first.
func (t *LoansTable) List(ctx context.Context, ownerID uuid.UUID) ([]*Loan, error) {
	query := psql.Select(
		sm.Columns("id", "owner_id", "principal", "annual_rate", "tenure_months", "emi", "debt_to_income", "risk_score", "risk_level", "created_at"),
		sm.From(loansTable),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.OrderBy(psql.Quote("created_at")).Desc(),
		sm.OrderBy(psql.Quote("id")).Desc(),
	)
	return bob.All(ctx, t.exec, query, scan.StructMapper[*Loan]())
}

func (t *LoansTable) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	query := psql.Delete(
		dm.From(loansTable),
		dm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	result, err := bob.Exec(ctx, t.exec, query)
	if err != nil {
		return err
	}
	return requireRow(result)
}
