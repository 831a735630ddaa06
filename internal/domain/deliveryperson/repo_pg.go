package deliveryperson

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

const personCols = `id, name, contact_number, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, d *DeliveryPerson) error {
	d.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO delivery_person (id, name, contact_number)
		VALUES ($1, $2, $3)`,
		d.ID, d.Name, d.ContactNumber,
	)
	if db.IsUniqueViolation(err) {
		return apperr.Conflict("contact_number")
	}
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*DeliveryPerson, error) {
	return scanPerson(r.pool.QueryRow(ctx,
		`SELECT `+personCols+` FROM delivery_person WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, d *DeliveryPerson) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE delivery_person SET name=$2, contact_number=$3, updated_at=NOW()
		WHERE id = $1`,
		d.ID, d.Name, d.ContactNumber,
	)
	if db.IsUniqueViolation(err) {
		return apperr.Conflict("contact_number")
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("delivery person")
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM delivery_person WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("delivery person")
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, search string, limit, offset int) ([]*DeliveryPerson, int, error) {
	where := "TRUE"
	args := []any{}
	if search != "" {
		where += fmt.Sprintf(` AND (name ILIKE $%d OR contact_number = $%d)`, len(args)+1, len(args)+2)
		args = append(args, "%"+search+"%", search)
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM delivery_person WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM delivery_person WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		personCols, where, len(args)+1, len(args)+2)
	rows, err := r.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []*DeliveryPerson
	for rows.Next() {
		d, err := scanPerson(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, d)
	}
	return result, total, rows.Err()
}

func scanPerson(row pgx.Row) (*DeliveryPerson, error) {
	var d DeliveryPerson
	err := row.Scan(&d.ID, &d.Name, &d.ContactNumber, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, apperr.NotFound("delivery person")
		}
		return nil, err
	}
	return &d, nil
}
