package dietplan

import (
	"context"
	"encoding/json"
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

const planCols = `id, patient_id, meals, status, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, p *DietPlan) error {
	p.ID = uuid.New()
	meals, err := json.Marshal(p.Meals)
	if err != nil {
		return fmt.Errorf("marshal meals: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO diet_plan (id, patient_id, meals, status)
		VALUES ($1, $2, $3, $4)`,
		p.ID, p.PatientID, meals, p.Status,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*DietPlan, error) {
	return scanPlan(r.pool.QueryRow(ctx,
		`SELECT `+planCols+` FROM diet_plan WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, p *DietPlan) error {
	meals, err := json.Marshal(p.Meals)
	if err != nil {
		return fmt.Errorf("marshal meals: %w", err)
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE diet_plan SET meals=$2, status=$3, updated_at=NOW()
		WHERE id = $1`,
		p.ID, meals, p.Status,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("diet plan")
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM diet_plan WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("diet plan")
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*DietPlan, int, error) {
	where := "TRUE"
	args := []any{}
	if f.PatientID != uuid.Nil {
		where += fmt.Sprintf(` AND patient_id = $%d`, len(args)+1)
		args = append(args, f.PatientID)
	}
	if f.Status != "" {
		where += fmt.Sprintf(` AND status = $%d`, len(args)+1)
		args = append(args, f.Status)
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM diet_plan WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM diet_plan WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		planCols, where, len(args)+1, len(args)+2)
	rows, err := r.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []*DietPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, p)
	}
	return result, total, rows.Err()
}

func scanPlan(row pgx.Row) (*DietPlan, error) {
	var p DietPlan
	var meals []byte
	err := row.Scan(&p.ID, &p.PatientID, &meals, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, apperr.NotFound("diet plan")
		}
		return nil, err
	}
	if err := json.Unmarshal(meals, &p.Meals); err != nil {
		return nil, fmt.Errorf("unmarshal meals: %w", err)
	}
	return &p, nil
}
