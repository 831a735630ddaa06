package mealprep

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mealtrack/mealtrack/internal/core/apperr"
	"github.com/mealtrack/mealtrack/internal/core/policy"
	"github.com/mealtrack/mealtrack/internal/core/validate"
	"github.com/mealtrack/mealtrack/internal/core/write"
)

type Service struct {
	repo   Repository
	writer *write.Orchestrator
}

func NewService(repo Repository, writer *write.Orchestrator) *Service {
	return &Service{repo: repo, writer: writer}
}

// staffReferences declares one resolvable reference per assignment element,
// named by its index so a rejection points at the exact entry.
func staffReferences(staff []AssignedStaff) []write.Reference {
	refs := make([]write.Reference, 0, len(staff))
	for i, a := range staff {
		refs = append(refs, write.Reference{
			Field:  fmt.Sprintf("assigned_staff[%d].staff_id", i),
			ID:     a.StaffID,
			Target: "pantry_staff",
		})
	}
	return refs
}

func checkStaffRoles(vs *apperr.Violations, staff []AssignedStaff) {
	for i, a := range staff {
		validate.Enum(vs, fmt.Sprintf("assigned_staff[%d].role", i), a.Role, StaffRoles...)
	}
}

func (s *Service) Create(ctx context.Context, p *MealPreparation) error {
	if p.PreparationStatus == "" {
		p.PreparationStatus = DefaultStatus
	}
	refs := append([]write.Reference{
		{Field: "diet_plan_id", ID: p.DietPlanID, Target: "diet_plan"},
	}, staffReferences(p.AssignedStaff)...)

	_, err := s.writer.Run(ctx, write.Request{
		Validate: func() error {
			var vs apperr.Violations
			validate.Enum(&vs, "preparation_status", p.PreparationStatus, policy.MealPreparation.Statuses...)
			validate.NonEmpty(&vs, "assigned_staff", p.AssignedStaff)
			checkStaffRoles(&vs, p.AssignedStaff)
			return vs.Err()
		},
		References: refs,
		Guard: func(resolved map[string]write.Projection) error {
			if status := resolved["diet_plan_id"]["status"]; policy.DietPlan.IsTerminal(status) {
				return apperr.Validation("diet_plan_id", "diet plan is "+status)
			}
			return nil
		},
		Persist: func(ctx context.Context) error { return s.repo.Create(ctx, p) },
	})
	return err
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*MealPreparation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*MealPreparation, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}

// Update replaces the staff assignment set. A preparation frozen in its
// terminal status accepts no changes.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*MealPreparation, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.AssignedStaff == nil {
		return p, nil
	}
	if policy.MealPreparation.IsTerminal(p.PreparationStatus) {
		return nil, apperr.Terminal("preparation_status", p.PreparationStatus)
	}
	staff := *in.AssignedStaff

	_, err = s.writer.Run(ctx, write.Request{
		Validate: func() error {
			var vs apperr.Violations
			validate.NonEmpty(&vs, "assigned_staff", staff)
			checkStaffRoles(&vs, staff)
			return vs.Err()
		},
		References: staffReferences(staff),
		Persist: func(ctx context.Context) error {
			return s.repo.ReplaceStaff(ctx, id, staff)
		},
	})
	if err != nil {
		return nil, err
	}
	p.AssignedStaff = staff
	return p, nil
}

// UpdateStatus moves the preparation along its status order. Equal-rank
// requests succeed without touching the history.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, in StatusInput) (*MealPreparation, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	_, err = s.writer.Run(ctx, write.Request{
		Transition: &write.Transition{
			Policy:    policy.MealPreparation,
			Current:   p.PreparationStatus,
			Requested: in.PreparationStatus,
		},
		Persist: func(ctx context.Context) error {
			if in.PreparationStatus == p.PreparationStatus {
				return nil
			}
			return s.repo.UpdateStatus(ctx, id, in.PreparationStatus)
		},
	})
	if err != nil {
		return nil, err
	}
	p.PreparationStatus = in.PreparationStatus
	return p, nil
}

// Delete refuses to remove a preparation that has been completed or
// delivered.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.MealPreparation.CheckDelete(p.PreparationStatus); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) StatusHistory(ctx context.Context, id uuid.UUID) ([]*StatusHistory, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetStatusHistory(ctx, id)
}
