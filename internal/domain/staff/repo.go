package staff

import (
	"context"

	"github.com/google/uuid"
)

// Filter narrows a staff listing.
type Filter struct {
	Role     string
	Location string
	// Search matches against name and contact number.
	Search string
}

type Repository interface {
	Create(ctx context.Context, s *PantryStaff) error
	GetByID(ctx context.Context, id uuid.UUID) (*PantryStaff, error)
	Update(ctx context.Context, s *PantryStaff) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f Filter, limit, offset int) ([]*PantryStaff, int, error)
}
