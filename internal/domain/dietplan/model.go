package dietplan

import (
	"time"

	"github.com/google/uuid"
)

// DietPlan maps to the diet_plan table. Meals are stored as a JSONB
// document, one entry per meal time.
type DietPlan struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	Meals     []Meal    `db:"meals" json:"meals"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Meal is one scheduled meal within a plan.
type Meal struct {
	MealTime             string     `json:"meal_time"`
	MealItems            []MealItem `json:"meal_items"`
	SpecificInstructions string     `json:"specific_instructions"`
}

// MealItem is one dish within a meal.
type MealItem struct {
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	Calories    int      `json:"calories"`
}

// MealTimes a plan entry accepts.
var MealTimes = []string{"Morning", "Evening", "Night"}

// Statuses in lifecycle order. Completed and cancelled plans accept no
// further preparations.
var Statuses = []string{"active", "completed", "cancelled"}

// DefaultStatus is assumed when a create payload omits the status.
const DefaultStatus = "active"

// UpdateInput carries a partial update; nil fields keep their stored value.
type UpdateInput struct {
	Meals  *[]Meal `json:"meals,omitempty"`
	Status *string `json:"status,omitempty"`
}
