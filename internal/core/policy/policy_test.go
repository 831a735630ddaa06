package policy

import (
	"testing"

	"github.com/mealtrack/mealtrack/internal/core/apperr"
)

func TestForwardTransitionsAllowed(t *testing.T) {
	cases := [][2]string{
		{"Not Started", "In Progress"},
		{"Not Started", "Delivered"},
		{"In Progress", "Completed"},
		{"Completed", "Delivered"},
	}
	for _, c := range cases {
		if err := MealPreparation.CheckTransition(c[0], c[1], false); err != nil {
			t.Errorf("%s -> %s should be allowed, got %v", c[0], c[1], err)
		}
	}
}

func TestBackwardTransitionsRejected(t *testing.T) {
	cases := [][2]string{
		{"In Progress", "Not Started"},
		{"Completed", "In Progress"},
		{"Completed", "Not Started"},
	}
	for _, c := range cases {
		err := MealPreparation.CheckTransition(c[0], c[1], false)
		if apperr.KindOf(err) != apperr.KindInvalidTransition {
			t.Errorf("%s -> %s: expected invalid transition, got %v", c[0], c[1], err)
		}
	}
}

func TestSameRankIsIdempotentSuccess(t *testing.T) {
	for _, s := range []string{"Not Started", "In Progress", "Completed"} {
		if err := MealPreparation.CheckTransition(s, s, false); err != nil {
			t.Errorf("%s -> %s should be a no-op success, got %v", s, s, err)
		}
	}
}

func TestTerminalStatusIsFrozen(t *testing.T) {
	// Any change out of Delivered is rejected, including the no-op.
	for _, req := range []string{"Not Started", "In Progress", "Completed", "Delivered"} {
		err := MealPreparation.CheckTransition("Delivered", req, true)
		if apperr.KindOf(err) != apperr.KindTerminalState {
			t.Errorf("Delivered -> %s: expected terminal state guard, got %v", req, err)
		}
	}
}

func TestUnknownRequestedStatus(t *testing.T) {
	err := MealPreparation.CheckTransition("Not Started", "Paused", false)
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected validation error for unknown status, got %v", err)
	}
}

func TestDeliveredRequiresTimestamp(t *testing.T) {
	err := MealDelivery.CheckTransition("In-Transit", "Delivered", false)
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected validation error without delivery_time, got %v", err)
	}

	if err := MealDelivery.CheckTransition("In-Transit", "Delivered", true); err != nil {
		t.Errorf("expected transition with timestamp to pass, got %v", err)
	}
}

func TestDeliveryFailedFromAnyLiveStatus(t *testing.T) {
	for _, from := range []string{"Pending", "In-Transit"} {
		if err := MealDelivery.CheckTransition(from, "Failed", false); err != nil {
			t.Errorf("%s -> Failed should be allowed, got %v", from, err)
		}
	}
	// Failed is not resurrected.
	err := MealDelivery.CheckTransition("Failed", "In-Transit", false)
	if apperr.KindOf(err) != apperr.KindInvalidTransition {
		t.Errorf("Failed -> In-Transit: expected invalid transition, got %v", err)
	}
}

func TestDeleteGuard(t *testing.T) {
	for _, s := range []string{"Not Started", "In Progress"} {
		if err := MealPreparation.CheckDelete(s); err != nil {
			t.Errorf("delete in %s should be allowed, got %v", s, err)
		}
	}
	for _, s := range []string{"Completed", "Delivered"} {
		err := MealPreparation.CheckDelete(s)
		if apperr.KindOf(err) != apperr.KindTerminalState {
			t.Errorf("delete in %s: expected terminal state guard, got %v", s, err)
		}
	}
}

func TestDietPlanTerminalStatuses(t *testing.T) {
	if DietPlan.IsTerminal("active") {
		t.Error("active plan should not be terminal")
	}
	if !DietPlan.IsTerminal("completed") || !DietPlan.IsTerminal("cancelled") {
		t.Error("completed and cancelled plans should be terminal")
	}
}

func TestRank(t *testing.T) {
	r, ok := MealPreparation.Rank("Completed")
	if !ok || r != 2 {
		t.Errorf("expected rank 2 for Completed, got %d (ok=%v)", r, ok)
	}
	if _, ok := MealPreparation.Rank("Unknown"); ok {
		t.Error("expected unknown status to have no rank")
	}
}
