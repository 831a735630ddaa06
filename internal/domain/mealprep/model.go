package mealprep

import (
	"time"

	"github.com/google/uuid"
)

// MealPreparation maps to the meal_preparation table. Assigned staff live
// in the meal_preparation_staff child table.
type MealPreparation struct {
	ID                uuid.UUID       `db:"id" json:"id"`
	DietPlanID        uuid.UUID       `db:"diet_plan_id" json:"diet_plan_id"`
	PreparationStatus string          `db:"preparation_status" json:"preparation_status"`
	AssignedStaff     []AssignedStaff `json:"assigned_staff"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}

// AssignedStaff maps to the meal_preparation_staff table.
type AssignedStaff struct {
	StaffID uuid.UUID `db:"staff_id" json:"staff_id"`
	Role    string    `db:"role" json:"role"`
}

// StatusHistory maps to the meal_preparation_status_history table. A row is
// appended for every applied status change, including the initial status.
type StatusHistory struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Status     string    `db:"status" json:"status"`
	RecordedAt time.Time `db:"recorded_at" json:"recorded_at"`
}

// StaffRoles an assignment accepts.
var StaffRoles = []string{"Pantry Staff", "Kitchen Staff", "Delivery Staff"}

// DefaultStatus is assumed when a create payload omits the status.
const DefaultStatus = "Not Started"

// UpdateInput carries a partial update of the preparation's assignment set.
// Status changes go through the dedicated status endpoint.
type UpdateInput struct {
	AssignedStaff *[]AssignedStaff `json:"assigned_staff,omitempty"`
}

// StatusInput carries a requested status change.
type StatusInput struct {
	PreparationStatus string `json:"preparation_status"`
}
