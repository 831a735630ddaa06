// Package write is the single pipeline every mutating operation passes
// through: field validation, foreign-key resolution, uniqueness pre-check,
// status-transition check, then exactly one persistence call. If any step
// fails the persist func never runs, so a rejected request leaves the store
// untouched.
package write

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mealtrack/mealtrack/internal/core/apperr"
	"github.com/mealtrack/mealtrack/internal/core/policy"
)

// Projection is the minimal set of fields a resolved reference exposes to
// the caller, keyed by column name.
type Projection map[string]string

// Reference declares a foreign key that must resolve before a write.
type Reference struct {
	// Field is the payload field the id arrived in, used in error messages
	// (for array elements it carries the index, e.g. "assigned_staff[2].staff_id").
	Field string
	// ID is the parsed identifier.
	ID uuid.UUID
	// Target names the collection the id must exist in.
	Target string
}

// Resolver confirms a referenced record exists and returns its projection.
// Implementations are read-only.
type Resolver interface {
	Resolve(ctx context.Context, ref Reference) (Projection, error)
}

// UniqueProbe declares a value that must be distinct within a scope.
type UniqueProbe struct {
	Field string
	Value string
	// Scope is the collection the value must be unique within.
	Scope string
	// ExcludeID removes the record's own row from the collision scan on
	// updates. The zero UUID excludes nothing.
	ExcludeID uuid.UUID
}

// UniqueChecker reports whether a probe value is already taken. This is a
// fast-fail optimization only; the store's unique index is the authoritative
// guard and its rejection surfaces as the same conflict error.
type UniqueChecker interface {
	InUse(ctx context.Context, probe UniqueProbe) (bool, error)
}

// Transition carries a requested status change for entities governed by a
// status policy.
type Transition struct {
	Policy    policy.Policy
	Current   string
	Requested string
	// HasTimestamp reports whether the side-channel timestamp demanded by
	// the target status was supplied with the request.
	HasTimestamp bool
}

// Request describes one mutation to run through the pipeline. Validate,
// References, Uniques, and Transition are all optional; Persist is not.
type Request struct {
	Validate   func() error
	References []Reference
	Uniques    []UniqueProbe
	// Guard runs after every reference resolved, with their projections.
	// It is where cross-entity rules live (e.g. rejecting a preparation
	// against a cancelled diet plan).
	Guard      func(resolved map[string]Projection) error
	Transition *Transition
	Persist    func(ctx context.Context) error
}

// Orchestrator sequences the pipeline. It holds no per-request state; any
// number of invocations may run concurrently.
type Orchestrator struct {
	resolver Resolver
	unique   UniqueChecker
}

func New(resolver Resolver, unique UniqueChecker) *Orchestrator {
	return &Orchestrator{resolver: resolver, unique: unique}
}

// Run executes the pipeline and returns the projections of every resolved
// reference, keyed by payload field.
func (o *Orchestrator) Run(ctx context.Context, req Request) (map[string]Projection, error) {
	if req.Validate != nil {
		if err := req.Validate(); err != nil {
			return nil, err
		}
	}

	resolved := make(map[string]Projection, len(req.References))
	for _, ref := range req.References {
		if ref.ID == uuid.Nil {
			return nil, apperr.MalformedID(ref.Field)
		}
		proj, err := o.resolver.Resolve(ctx, ref)
		if err != nil {
			return nil, referenceErr(err, ref)
		}
		resolved[ref.Field] = proj
	}

	if req.Guard != nil {
		if err := req.Guard(resolved); err != nil {
			return nil, err
		}
	}

	for _, probe := range req.Uniques {
		taken, err := o.unique.InUse(ctx, probe)
		if err != nil {
			return nil, apperr.Store(err)
		}
		if taken {
			return nil, apperr.Conflict(probe.Field)
		}
	}

	if tr := req.Transition; tr != nil {
		if err := tr.Policy.CheckTransition(tr.Current, tr.Requested, tr.HasTimestamp); err != nil {
			return nil, err
		}
	}

	if err := req.Persist(ctx); err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return nil, err
		}
		return nil, apperr.Store(err)
	}
	return resolved, nil
}

func referenceErr(err error, ref Reference) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		if ae.Kind == apperr.KindNotFound || ae.Kind == apperr.KindReferenceNotFound {
			return apperr.ReferenceNotFound(ref.Field, ref.Target)
		}
		return err
	}
	return apperr.Store(err)
}
