package deliveryperson

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryPerson maps to the delivery_person table.
type DeliveryPerson struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	ContactNumber string    `db:"contact_number" json:"contact_number"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// UpdateInput carries a partial update; nil fields keep their stored value.
type UpdateInput struct {
	Name          *string `json:"name,omitempty"`
	ContactNumber *string `json:"contact_number,omitempty"`
}

// Apply merges the supplied fields onto d.
func (in UpdateInput) Apply(d *DeliveryPerson) {
	if in.Name != nil {
		d.Name = *in.Name
	}
	if in.ContactNumber != nil {
		d.ContactNumber = *in.ContactNumber
	}
}
