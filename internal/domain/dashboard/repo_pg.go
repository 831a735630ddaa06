package dashboard

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) PatientCounts(ctx context.Context) (int, int, error) {
	var total, active int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE discharge_date IS NULL)
		FROM patient`).Scan(&total, &active)
	return total, active, err
}

func (r *repoPG) StaffCount(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM pantry_staff`).Scan(&n)
	return n, err
}

func (r *repoPG) DeliveryPersonCount(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM delivery_person`).Scan(&n)
	return n, err
}

func (r *repoPG) PreparationStatusCounts(ctx context.Context) (map[string]int, error) {
	return r.statusCounts(ctx,
		`SELECT preparation_status, COUNT(*) FROM meal_preparation GROUP BY preparation_status`)
}

func (r *repoPG) DeliveryStatusCounts(ctx context.Context) (map[string]int, error) {
	return r.statusCounts(ctx,
		`SELECT delivery_status, COUNT(*) FROM meal_delivery GROUP BY delivery_status`)
}

func (r *repoPG) DeliveredSince(ctx context.Context, cutoff time.Time) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM meal_delivery
		WHERE delivery_status = 'Delivered' AND delivery_time >= $1`, cutoff).Scan(&n)
	return n, err
}

func (r *repoPG) statusCounts(ctx context.Context, query string) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
