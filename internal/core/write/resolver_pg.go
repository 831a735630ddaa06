package write

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mealtrack/mealtrack/internal/core/apperr"
)

// target maps a reference target name to its table and the columns the
// minimal projection carries. Table and column names come exclusively from
// this table, never from request input.
type target struct {
	table   string
	columns []string
}

var targets = map[string]target{
	"patient":          {table: "patient", columns: []string{"patient_name"}},
	"diet_plan":        {table: "diet_plan", columns: []string{"status"}},
	"pantry_staff":     {table: "pantry_staff", columns: []string{"name", "role"}},
	"delivery_person":  {table: "delivery_person", columns: []string{"name"}},
	"meal_preparation": {table: "meal_preparation", columns: []string{"preparation_status"}},
}

// PGResolver resolves references with single-row existence lookups.
type PGResolver struct {
	pool *pgxpool.Pool
}

func NewPGResolver(pool *pgxpool.Pool) *PGResolver {
	return &PGResolver{pool: pool}
}

func (r *PGResolver) Resolve(ctx context.Context, ref Reference) (Projection, error) {
	tgt, ok := targets[ref.Target]
	if !ok {
		return nil, fmt.Errorf("unknown reference target %q", ref.Target)
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`,
		strings.Join(tgt.columns, ", "), tgt.table)

	values := make([]string, len(tgt.columns))
	dest := make([]any, len(tgt.columns))
	for i := range values {
		dest[i] = &values[i]
	}

	if err := r.pool.QueryRow(ctx, query, ref.ID).Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(ref.Target)
		}
		return nil, apperr.Store(err)
	}

	proj := make(Projection, len(tgt.columns))
	for i, col := range tgt.columns {
		proj[col] = values[i]
	}
	return proj, nil
}

// uniqueScopes maps a probe scope to its table and allowed column.
var uniqueScopes = map[string]target{
	"pantry_staff":    {table: "pantry_staff", columns: []string{"contact_number"}},
	"delivery_person": {table: "delivery_person", columns: []string{"contact_number"}},
}

// PGUnique answers uniqueness probes against the live table. It is a
// pre-check; the unique index on the same column is what actually closes
// the check-then-act race.
type PGUnique struct {
	pool *pgxpool.Pool
}

func NewPGUnique(pool *pgxpool.Pool) *PGUnique {
	return &PGUnique{pool: pool}
}

func (u *PGUnique) InUse(ctx context.Context, probe UniqueProbe) (bool, error) {
	scope, ok := uniqueScopes[probe.Scope]
	if !ok {
		return false, fmt.Errorf("unknown uniqueness scope %q", probe.Scope)
	}
	column := ""
	for _, c := range scope.columns {
		if c == probe.Field {
			column = c
			break
		}
	}
	if column == "" {
		return false, fmt.Errorf("field %q is not a uniqueness field of %q", probe.Field, probe.Scope)
	}

	query := fmt.Sprintf(
		`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND id <> $2)`,
		scope.table, column)

	var taken bool
	if err := u.pool.QueryRow(ctx, query, probe.Value, probe.ExcludeID).Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}
