// Package policy declares per-entity write rules: the ordered status set,
// terminal statuses, delete guards, and which transitions must carry a
// timestamp. The tables here are pure configuration; the checks are the
// status machine engine shared by every entity with a status field.
package policy

import (
	"github.com/mealtrack/mealtrack/internal/core/apperr"
)

// Policy describes the status rules for one entity type.
type Policy struct {
	Entity      string
	StatusField string

	// Statuses in rank order; a transition is allowed only when the
	// requested rank is >= the current rank.
	Statuses []string

	// Terminal statuses are frozen: once reached, every further status
	// change is rejected, including the no-op.
	Terminal []string

	// DeleteGuard lists statuses in which the record may not be deleted.
	DeleteGuard []string

	// TimestampFor names the payload field that must be supplied together
	// with a transition into the keyed status.
	TimestampFor map[string]string
}

// Rank returns the position of status in the declared order.
func (p Policy) Rank(status string) (int, bool) {
	for i, s := range p.Statuses {
		if s == status {
			return i, true
		}
	}
	return 0, false
}

// IsTerminal reports whether status is frozen.
func (p Policy) IsTerminal(status string) bool {
	for _, s := range p.Terminal {
		if s == status {
			return true
		}
	}
	return false
}

// TimestampField returns the field that must accompany a transition into
// status, if the policy demands one.
func (p Policy) TimestampField(status string) (string, bool) {
	f, ok := p.TimestampFor[status]
	return f, ok
}

// CheckTransition decides whether current may move to requested.
// A terminal current status rejects everything. Equal ranks are an
// idempotent success. hasTimestamp reports whether the caller supplied the
// side-channel timestamp for statuses that require one.
func (p Policy) CheckTransition(current, requested string, hasTimestamp bool) error {
	reqRank, ok := p.Rank(requested)
	if !ok {
		var vs apperr.Violations
		vs.Add(p.StatusField, "must be one of: "+joinStatuses(p.Statuses))
		return vs.Err()
	}
	if p.IsTerminal(current) {
		return apperr.Terminal(p.StatusField, current)
	}
	curRank, ok := p.Rank(current)
	if !ok {
		// A stored status outside the declared order means corrupt data,
		// not a client mistake.
		return apperr.Store(nil)
	}
	if reqRank < curRank {
		return apperr.InvalidTransition(p.StatusField, current, requested)
	}
	if field, need := p.TimestampField(requested); need && requested != current && !hasTimestamp {
		var vs apperr.Violations
		vs.Add(field, "is required when status is "+requested)
		return vs.Err()
	}
	return nil
}

// CheckDelete decides whether a record in current may be deleted.
func (p Policy) CheckDelete(current string) error {
	for _, s := range p.DeleteGuard {
		if s == current {
			return apperr.Terminal(p.StatusField, current)
		}
	}
	return nil
}

func joinStatuses(statuses []string) string {
	out := ""
	for i, s := range statuses {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}

// Meal preparation moves strictly forward and freezes on delivery.
// Completed and Delivered records may not be deleted.
var MealPreparation = Policy{
	Entity:      "meal_preparation",
	StatusField: "preparation_status",
	Statuses:    []string{"Not Started", "In Progress", "Completed", "Delivered"},
	Terminal:    []string{"Delivered"},
	DeleteGuard: []string{"Completed", "Delivered"},
}

// Meal delivery freezes on Delivered and requires delivery_time to be
// supplied with that transition. Failed ranks last so a delivery can be
// failed from any live status but never resurrected.
var MealDelivery = Policy{
	Entity:      "meal_delivery",
	StatusField: "delivery_status",
	Statuses:    []string{"Pending", "In-Transit", "Delivered", "Failed"},
	Terminal:    []string{"Delivered"},
	TimestampFor: map[string]string{
		"Delivered": "delivery_time",
	},
}

// Diet plan lifecycle used by the meal-preparation reference check: no
// preparation may be created against a completed or cancelled plan.
var DietPlan = Policy{
	Entity:      "diet_plan",
	StatusField: "status",
	Statuses:    []string{"active", "completed", "cancelled"},
	Terminal:    []string{"completed", "cancelled"},
}
