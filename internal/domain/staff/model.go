package staff

import (
	"time"

	"github.com/google/uuid"
)

// PantryStaff maps to the pantry_staff table.
type PantryStaff struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	ContactNumber string    `db:"contact_number" json:"contact_number"`
	Location      string    `db:"location" json:"location"`
	Role          string    `db:"role" json:"role"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// Roles a staff member may hold.
var Roles = []string{"Pantry Staff", "Kitchen Staff", "Delivery Staff"}

// DefaultRole is assumed when a create payload omits the role.
const DefaultRole = "Pantry Staff"

// UpdateInput carries a partial update; nil fields keep their stored value.
type UpdateInput struct {
	Name          *string `json:"name,omitempty"`
	ContactNumber *string `json:"contact_number,omitempty"`
	Location      *string `json:"location,omitempty"`
	Role          *string `json:"role,omitempty"`
}

// Apply merges the supplied fields onto s.
func (in UpdateInput) Apply(s *PantryStaff) {
	if in.Name != nil {
		s.Name = *in.Name
	}
	if in.ContactNumber != nil {
		s.ContactNumber = *in.ContactNumber
	}
	if in.Location != nil {
		s.Location = *in.Location
	}
	if in.Role != nil {
		s.Role = *in.Role
	}
}
