package dietplan

import (
	"context"

	"github.com/google/uuid"
)

// Filter narrows a diet plan listing.
type Filter struct {
	PatientID uuid.UUID
	Status    string
}

type Repository interface {
	Create(ctx context.Context, p *DietPlan) error
	GetByID(ctx context.Context, id uuid.UUID) (*DietPlan, error)
	Update(ctx context.Context, p *DietPlan) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f Filter, limit, offset int) ([]*DietPlan, int, error)
}
