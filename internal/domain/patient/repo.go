package patient

import (
	"context"

	"github.com/google/uuid"
)

// Filter narrows a patient listing.
type Filter struct {
	// Search matches against name and both contact numbers.
	Search string
	// Active keeps only patients without a discharge date.
	Active bool
}

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f Filter, limit, offset int) ([]*Patient, int, error)
}
