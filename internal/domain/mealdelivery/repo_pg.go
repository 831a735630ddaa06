package mealdelivery

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

const deliveryCols = `id, meal_preparation_id, delivery_person_id, delivery_status,
	delivery_time, delivery_notes, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, d *MealDelivery) error {
	d.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO meal_delivery (
			id, meal_preparation_id, delivery_person_id, delivery_status,
			delivery_time, delivery_notes
		) VALUES ($1, $2, $3, $4, $5, $6)`,
		d.ID, d.MealPreparationID, d.DeliveryPersonID, d.DeliveryStatus,
		d.DeliveryTime, d.DeliveryNotes,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*MealDelivery, error) {
	return scanDelivery(r.pool.QueryRow(ctx,
		`SELECT `+deliveryCols+` FROM meal_delivery WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, d *MealDelivery) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE meal_delivery SET
			delivery_person_id=$2, delivery_status=$3, delivery_time=$4,
			delivery_notes=$5, updated_at=NOW()
		WHERE id = $1`,
		d.ID, d.DeliveryPersonID, d.DeliveryStatus, d.DeliveryTime, d.DeliveryNotes,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("meal delivery")
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*MealDelivery, int, error) {
	where := "TRUE"
	args := []any{}
	if f.Status != "" {
		where += fmt.Sprintf(` AND delivery_status = $%d`, len(args)+1)
		args = append(args, f.Status)
	}
	if f.DeliveryPersonID != uuid.Nil {
		where += fmt.Sprintf(` AND delivery_person_id = $%d`, len(args)+1)
		args = append(args, f.DeliveryPersonID)
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM meal_delivery WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM meal_delivery WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		deliveryCols, where, len(args)+1, len(args)+2)
	rows, err := r.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []*MealDelivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, d)
	}
	return result, total, rows.Err()
}

func scanDelivery(row pgx.Row) (*MealDelivery, error) {
	var d MealDelivery
	err := row.Scan(
		&d.ID, &d.MealPreparationID, &d.DeliveryPersonID, &d.DeliveryStatus,
		&d.DeliveryTime, &d.DeliveryNotes, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, apperr.NotFound("meal delivery")
		}
		return nil, err
	}
	return &d, nil
}
