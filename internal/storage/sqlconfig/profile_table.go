package sqlconfig

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

const profilesTable = "profiles"

var profileColumns = []any{"owner_id", "display_name", "persona", "monthly_income", "language", "created_at", "updated_at"}

var _ IProfileTable = (*ProfilesTable)(nil)

type ProfilesTable struct {
	exec bob.Executor
}

// NewProfilesTable runs its queries on exec, either a bob.DB or a bob.Tx.
func NewProfilesTable(exec bob.Executor) *ProfilesTable {
	return &ProfilesTable{exec: exec}
}

// Get returns the owner's profile or ErrNotFound.
func (t *ProfilesTable) Get(ctx context.Context, ownerID uuid.UUID) (*Profile, error) {
	query := psql.Select(
		sm.Columns(profileColumns...),
		sm.From(profilesTable),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
	)
	row, err := bob.One(ctx, t.exec, query, scan.StructMapper[*Profile]())
	if err != nil {
		return nil, notFound(err)
	}
	return row, nil
}

// Upsert creates the profile if needed and applies the set fields of update
// in a single statement.
func (t *ProfilesTable) Upsert(ctx context.Context, ownerID uuid.UUID, update *ProfileUpdate) (*Profile, error) {
	if update == nil {
		update = &ProfileUpdate{}
	}

	columns := []string{"owner_id", "display_name", "persona", "monthly_income", "language"}
	values := []bob.Expression{
		psql.Arg(ownerID),
		psql.Arg(update.DisplayName.GetOr("")),
		psql.Arg(update.Persona.GetOr(DefaultPersona)),
		psql.Arg(update.MonthlyIncome.GetOr(decimal.Zero)),
		psql.Arg(update.Language.GetOr(DefaultLanguage)),
	}

	changed := []string{"updated_at"}
	if update.DisplayName.IsSet() {
		changed = append(changed, "display_name")
	}
	if update.Persona.IsSet() {
		changed = append(changed, "persona")
	}
	if update.MonthlyIncome.IsSet() {
		changed = append(changed, "monthly_income")
	}
	if update.Language.IsSet() {
		changed = append(changed, "language")
	}

	query := psql.Insert(
		im.Into(profilesTable, append(columns, "updated_at")...),
		im.Values(append(values, psql.Raw("now()"))...),
		im.OnConflict("owner_id").DoUpdate(im.SetExcluded(changed...)),
		im.Returning(profileColumns...),
	)
	return bob.One(ctx, t.exec, query, scan.StructMapper[*Profile]())
}
