package mealdelivery

import (
	"time"

	"github.com/google/uuid"
)

// MealDelivery maps to the meal_delivery table.
type MealDelivery struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	MealPreparationID  uuid.UUID  `db:"meal_preparation_id" json:"meal_preparation_id"`
	DeliveryPersonID   uuid.UUID  `db:"delivery_person_id" json:"delivery_person_id"`
	DeliveryStatus     string     `db:"delivery_status" json:"delivery_status"`
	DeliveryTime       *time.Time `db:"delivery_time" json:"delivery_time,omitempty"`
	DeliveryNotes      string     `db:"delivery_notes" json:"delivery_notes"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}

// DefaultStatus is assumed when a create payload omits the status.
const DefaultStatus = "Pending"

// UpdateInput carries a partial update of the delivery's mutable fields.
// Status changes go through the dedicated status endpoint.
type UpdateInput struct {
	DeliveryPersonID *uuid.UUID `json:"delivery_person_id,omitempty"`
	DeliveryNotes    *string    `json:"delivery_notes,omitempty"`
}

// StatusInput carries a requested status change. DeliveryTime must
// accompany the transition into Delivered.
type StatusInput struct {
	DeliveryStatus string     `json:"delivery_status"`
	DeliveryTime   *time.Time `json:"delivery_time,omitempty"`
	DeliveryNotes  *string    `json:"delivery_notes,omitempty"`
}
