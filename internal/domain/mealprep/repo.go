package mealprep

import (
	"context"

	"github.com/google/uuid"
)

// Filter narrows a preparation listing.
type Filter struct {
	DietPlanID uuid.UUID
	StaffID    uuid.UUID
	Status     string
}

type Repository interface {
	// Create inserts the preparation, its staff assignments, and the
	// initial status history row atomically.
	Create(ctx context.Context, p *MealPreparation) error
	GetByID(ctx context.Context, id uuid.UUID) (*MealPreparation, error)
	// ReplaceStaff swaps the full assignment set.
	ReplaceStaff(ctx context.Context, id uuid.UUID, staff []AssignedStaff) error
	// UpdateStatus writes the new status and appends a history row.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f Filter, limit, offset int) ([]*MealPreparation, int, error)
	GetStatusHistory(ctx context.Context, id uuid.UUID) ([]*StatusHistory, error)
}
