package mealdelivery

import (
	"context"

	"github.com/google/uuid"
)

// Filter narrows a delivery listing.
type Filter struct {
	Status           string
	DeliveryPersonID uuid.UUID
}

type Repository interface {
	Create(ctx context.Context, d *MealDelivery) error
	GetByID(ctx context.Context, id uuid.UUID) (*MealDelivery, error)
	Update(ctx context.Context, d *MealDelivery) error
	List(ctx context.Context, f Filter, limit, offset int) ([]*MealDelivery, int, error)
}
