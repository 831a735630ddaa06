package staff

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mealtrack/mealtrack/internal/core/apperr"
	"github.com/mealtrack/mealtrack/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const staffCols = `id, name, contact_number, location, role, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, s *PantryStaff) error {
	s.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO pantry_staff (id, name, contact_number, location, role)
		VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.Name, s.ContactNumber, s.Location, s.Role,
	)
	if db.IsUniqueViolation(err) {
		return apperr.Conflict("contact_number")
	}
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*PantryStaff, error) {
	return scanStaff(r.pool.QueryRow(ctx,
		`SELECT `+staffCols+` FROM pantry_staff WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, s *PantryStaff) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE pantry_staff SET
			name=$2, contact_number=$3, location=$4, role=$5, updated_at=NOW()
		WHERE id = $1`,
		s.ID, s.Name, s.ContactNumber, s.Location, s.Role,
	)
	if db.IsUniqueViolation(err) {
		return apperr.Conflict("contact_number")
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("pantry staff")
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM pantry_staff WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("pantry staff")
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*PantryStaff, int, error) {
	where := "TRUE"
	args := []any{}
	if f.Role != "" {
		where += fmt.Sprintf(` AND role = $%d`, len(args)+1)
		args = append(args, f.Role)
	}
	if f.Location != "" {
		where += fmt.Sprintf(` AND location ILIKE $%d`, len(args)+1)
		args = append(args, "%"+f.Location+"%")
	}
	if f.Search != "" {
		where += fmt.Sprintf(` AND (name ILIKE $%d OR contact_number = $%d)`, len(args)+1, len(args)+2)
		args = append(args, "%"+f.Search+"%", f.Search)
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM pantry_staff WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM pantry_staff WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		staffCols, where, len(args)+1, len(args)+2)
	rows, err := r.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []*PantryStaff
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, s)
	}
	return result, total, rows.Err()
}

func scanStaff(row pgx.Row) (*PantryStaff, error) {
	var s PantryStaff
	err := row.Scan(&s.ID, &s.Name, &s.ContactNumber, &s.Location, &s.Role, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, apperr.NotFound("pantry staff")
		}
		return nil, err
	}
	return &s, nil
}
