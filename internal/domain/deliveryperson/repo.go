package deliveryperson

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, d *DeliveryPerson) error
	GetByID(ctx context.Context, id uuid.UUID) (*DeliveryPerson, error)
	Update(ctx context.Context, d *DeliveryPerson) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search string, limit, offset int) ([]*DeliveryPerson, int, error)
}
