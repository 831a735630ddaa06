package mealprep

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

const prepCols = `id, diet_plan_id, preparation_status, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, p *MealPreparation) error {
	p.ID = uuid.New()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO meal_preparation (id, diet_plan_id, preparation_status)
		VALUES ($1, $2, $3)`,
		p.ID, p.DietPlanID, p.PreparationStatus,
	); err != nil {
		return err
	}
	for _, a := range p.AssignedStaff {
		if _, err := tx.Exec(ctx, `
			INSERT INTO meal_preparation_staff (id, meal_preparation_id, staff_id, role)
			VALUES ($1, $2, $3, $4)`,
			uuid.New(), p.ID, a.StaffID, a.Role,
		); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO meal_preparation_status_history (id, meal_preparation_id, status)
		VALUES ($1, $2, $3)`,
		uuid.New(), p.ID, p.PreparationStatus,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*MealPreparation, error) {
	p, err := scanPrep(r.pool.QueryRow(ctx,
		`SELECT `+prepCols+` FROM meal_preparation WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	staff, err := r.loadStaff(ctx, id)
	if err != nil {
		return nil, err
	}
	p.AssignedStaff = staff
	return p, nil
}

func (r *repoPG) ReplaceStaff(ctx context.Context, id uuid.UUID, staff []AssignedStaff) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM meal_preparation_staff WHERE meal_preparation_id = $1`, id); err != nil {
		return err
	}
	for _, a := range staff {
		if _, err := tx.Exec(ctx, `
			INSERT INTO meal_preparation_staff (id, meal_preparation_id, staff_id, role)
			VALUES ($1, $2, $3, $4)`,
			uuid.New(), id, a.StaffID, a.Role,
		); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(ctx,
		`UPDATE meal_preparation SET updated_at=NOW() WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE meal_preparation SET preparation_status=$2, updated_at=NOW()
		WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("meal preparation")
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO meal_preparation_status_history (id, meal_preparation_id, status)
		VALUES ($1, $2, $3)`,
		uuid.New(), id, status,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM meal_preparation WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("meal preparation")
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*MealPreparation, int, error) {
	where := "TRUE"
	args := []any{}
	if f.DietPlanID != uuid.Nil {
		where += fmt.Sprintf(` AND diet_plan_id = $%d`, len(args)+1)
		args = append(args, f.DietPlanID)
	}
	if f.Status != "" {
		where += fmt.Sprintf(` AND preparation_status = $%d`, len(args)+1)
		args = append(args, f.Status)
	}
	if f.StaffID != uuid.Nil {
		where += fmt.Sprintf(` AND id IN (SELECT meal_preparation_id FROM meal_preparation_staff WHERE staff_id = $%d)`, len(args)+1)
		args = append(args, f.StaffID)
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM meal_preparation WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM meal_preparation WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		prepCols, where, len(args)+1, len(args)+2)
	rows, err := r.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []*MealPreparation
	for rows.Next() {
		p, err := scanPrep(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, p := range result {
		staff, err := r.loadStaff(ctx, p.ID)
		if err != nil {
			return nil, 0, err
		}
		p.AssignedStaff = staff
	}
	return result, total, nil
}

func (r *repoPG) GetStatusHistory(ctx context.Context, id uuid.UUID) ([]*StatusHistory, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, status, recorded_at FROM meal_preparation_status_history
		WHERE meal_preparation_id = $1 ORDER BY recorded_at`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*StatusHistory
	for rows.Next() {
		var h StatusHistory
		if err := rows.Scan(&h.ID, &h.Status, &h.RecordedAt); err != nil {
			return nil, err
		}
		result = append(result, &h)
	}
	return result, rows.Err()
}

func (r *repoPG) loadStaff(ctx context.Context, prepID uuid.UUID) ([]AssignedStaff, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT staff_id, role FROM meal_preparation_staff
		WHERE meal_preparation_id = $1 ORDER BY created_at`, prepID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	staff := []AssignedStaff{}
	for rows.Next() {
		var a AssignedStaff
		if err := rows.Scan(&a.StaffID, &a.Role); err != nil {
			return nil, err
		}
		staff = append(staff, a)
	}
	return staff, rows.Err()
}

func scanPrep(row pgx.Row) (*MealPreparation, error) {
	var p MealPreparation
	err := row.Scan(&p.ID, &p.DietPlanID, &p.PreparationStatus, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, apperr.NotFound("meal preparation")
		}
		return nil, err
	}
	return &p, nil
}
