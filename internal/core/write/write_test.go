package write

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/mealtrack/mealtrack/internal/core/apperr"
	"github.com/mealtrack/mealtrack/internal/core/policy"
)

// -- Fakes --

type fakeResolver struct {
	records map[uuid.UUID]Projection
	err     error
}

func (f *fakeResolver) Resolve(_ context.Context, ref Reference) (Projection, error) {
	if f.err != nil {
		return nil, f.err
	}
	proj, ok := f.records[ref.ID]
	if !ok {
		return nil, apperr.NotFound(ref.Target)
	}
	return proj, nil
}

type fakeUnique struct {
	taken map[string]uuid.UUID // value -> owning record id
	err   error
}

func (f *fakeUnique) InUse(_ context.Context, probe UniqueProbe) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	owner, ok := f.taken[probe.Value]
	if !ok {
		return false, nil
	}
	return owner != probe.ExcludeID, nil
}

func newTestOrchestrator(res *fakeResolver, uniq *fakeUnique) *Orchestrator {
	if res == nil {
		res = &fakeResolver{records: map[uuid.UUID]Projection{}}
	}
	if uniq == nil {
		uniq = &fakeUnique{taken: map[string]uuid.UUID{}}
	}
	return New(res, uniq)
}

// -- Tests --

func TestRunHappyPath(t *testing.T) {
	patientID := uuid.New()
	res := &fakeResolver{records: map[uuid.UUID]Projection{
		patientID: {"patient_name": "Asha Rao"},
	}}
	o := newTestOrchestrator(res, nil)

	persisted := false
	resolved, err := o.Run(context.Background(), Request{
		References: []Reference{{Field: "patient_id", ID: patientID, Target: "patient"}},
		Persist: func(context.Context) error {
			persisted = true
			return nil
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !persisted {
		t.Error("expected persist to run")
	}
	if resolved["patient_id"]["patient_name"] != "Asha Rao" {
		t.Errorf("expected projection returned, got %v", resolved)
	}
}

func TestValidationFailureSkipsEverything(t *testing.T) {
	res := &fakeResolver{err: errors.New("resolver must not be called")}
	o := newTestOrchestrator(res, nil)

	persisted := false
	_, err := o.Run(context.Background(), Request{
		Validate: func() error {
			var vs apperr.Violations
			vs.Add("age", "must be a positive number")
			return vs.Err()
		},
		References: []Reference{{Field: "patient_id", ID: uuid.New(), Target: "patient"}},
		Persist: func(context.Context) error {
			persisted = true
			return nil
		},
	})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if persisted {
		t.Error("persist must not run after a failed validation")
	}
}

func TestUnresolvedReferenceNamesField(t *testing.T) {
	o := newTestOrchestrator(nil, nil)

	persisted := false
	_, err := o.Run(context.Background(), Request{
		References: []Reference{{Field: "assigned_staff[1].staff_id", ID: uuid.New(), Target: "pantry_staff"}},
		Persist: func(context.Context) error {
			persisted = true
			return nil
		},
	})
	if persisted {
		t.Error("persist must not run after a failed resolution")
	}
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected typed error, got %v", err)
	}
	if ae.Kind != apperr.KindReferenceNotFound {
		t.Errorf("expected reference_not_found, got %s", ae.Kind)
	}
	if ae.Field != "assigned_staff[1].staff_id" {
		t.Errorf("expected field to name the failing element, got %q", ae.Field)
	}
}

func TestNilReferenceIDIsMalformed(t *testing.T) {
	o := newTestOrchestrator(nil, nil)

	_, err := o.Run(context.Background(), Request{
		References: []Reference{{Field: "diet_plan_id", Target: "diet_plan"}},
		Persist:    func(context.Context) error { return nil },
	})
	if apperr.KindOf(err) != apperr.KindMalformedID {
		t.Errorf("expected malformed_id, got %v", err)
	}
}

func TestUniquenessConflict(t *testing.T) {
	owner := uuid.New()
	uniq := &fakeUnique{taken: map[string]uuid.UUID{"9876543210": owner}}
	o := newTestOrchestrator(nil, uniq)

	persisted := false
	_, err := o.Run(context.Background(), Request{
		Uniques: []UniqueProbe{{Field: "contact_number", Value: "9876543210", Scope: "pantry_staff"}},
		Persist: func(context.Context) error {
			persisted = true
			return nil
		},
	})
	if apperr.KindOf(err) != apperr.KindUniquenessConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if persisted {
		t.Error("persist must not run after a conflict")
	}
}

func TestUniquenessExcludesOwnRecord(t *testing.T) {
	owner := uuid.New()
	uniq := &fakeUnique{taken: map[string]uuid.UUID{"9876543210": owner}}
	o := newTestOrchestrator(nil, uniq)

	_, err := o.Run(context.Background(), Request{
		Uniques: []UniqueProbe{{
			Field: "contact_number", Value: "9876543210",
			Scope: "pantry_staff", ExcludeID: owner,
		}},
		Persist: func(context.Context) error { return nil },
	})
	if err != nil {
		t.Errorf("own unchanged value must not conflict, got %v", err)
	}
}

func TestGuardRunsWithProjections(t *testing.T) {
	planID := uuid.New()
	res := &fakeResolver{records: map[uuid.UUID]Projection{
		planID: {"status": "cancelled"},
	}}
	o := newTestOrchestrator(res, nil)

	persisted := false
	_, err := o.Run(context.Background(), Request{
		References: []Reference{{Field: "diet_plan_id", ID: planID, Target: "diet_plan"}},
		Guard: func(resolved map[string]Projection) error {
			if policy.DietPlan.IsTerminal(resolved["diet_plan_id"]["status"]) {
				return apperr.Validation("diet_plan_id", "diet plan is no longer active")
			}
			return nil
		},
		Persist: func(context.Context) error {
			persisted = true
			return nil
		},
	})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected guard rejection, got %v", err)
	}
	if persisted {
		t.Error("persist must not run after a failed guard")
	}
}

func TestTransitionCheckedBeforePersist(t *testing.T) {
	o := newTestOrchestrator(nil, nil)

	persisted := false
	_, err := o.Run(context.Background(), Request{
		Transition: &Transition{
			Policy:    policy.MealPreparation,
			Current:   "Delivered",
			Requested: "In Progress",
		},
		Persist: func(context.Context) error {
			persisted = true
			return nil
		},
	})
	if apperr.KindOf(err) != apperr.KindTerminalState {
		t.Fatalf("expected terminal state guard, got %v", err)
	}
	if persisted {
		t.Error("persist must not run after a rejected transition")
	}
}

func TestPersistErrorWrappedAsStore(t *testing.T) {
	o := newTestOrchestrator(nil, nil)

	_, err := o.Run(context.Background(), Request{
		Persist: func(context.Context) error { return errors.New("connection reset") },
	})
	if apperr.KindOf(err) != apperr.KindStore {
		t.Errorf("expected store failure, got %v", err)
	}
}

func TestPersistConflictPassesThrough(t *testing.T) {
	// The store's own unique index rejecting the write after a passed
	// pre-check still surfaces as a conflict.
	o := newTestOrchestrator(nil, nil)

	_, err := o.Run(context.Background(), Request{
		Persist: func(context.Context) error { return apperr.Conflict("contact_number") },
	})
	if apperr.KindOf(err) != apperr.KindUniquenessConflict {
		t.Errorf("expected conflict to pass through, got %v", err)
	}
}
