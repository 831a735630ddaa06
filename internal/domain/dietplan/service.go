package dietplan

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

func checkMeals(vs *apperr.Violations, meals []Meal) {
	validate.NonEmpty(vs, "meals", meals)
	for i, m := range meals {
		prefix := fmt.Sprintf("meals[%d]", i)
		validate.Enum(vs, prefix+".meal_time", m.MealTime, MealTimes...)
		validate.NonEmpty(vs, prefix+".meal_items", m.MealItems)
		for j, item := range m.MealItems {
			itemPrefix := fmt.Sprintf("%s.meal_items[%d]", prefix, j)
			validate.Required(vs, itemPrefix+".name", item.Name)
			validate.NonEmpty(vs, itemPrefix+".ingredients", item.Ingredients)
			validate.Positive(vs, itemPrefix+".calories", item.Calories)
		}
	}
}

func (s *Service) Create(ctx context.Context, p *DietPlan) error {
	if p.Status == "" {
		p.Status = DefaultStatus
	}
	_, err := s.writer.Run(ctx, write.Request{
		Validate: func() error {
			var vs apperr.Violations
			validate.Enum(&vs, "status", p.Status, Statuses...)
			checkMeals(&vs, p.Meals)
			return vs.Err()
		},
		References: []write.Reference{
			{Field: "patient_id", ID: p.PatientID, Target: "patient"},
		},
		Persist: func(ctx context.Context) error { return s.repo.Create(ctx, p) },
	})
	return err
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*DietPlan, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*DietPlan, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}

// Update replaces the meals document and moves the plan status along its
// lifecycle. A completed or cancelled plan is frozen.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*DietPlan, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	current := p.Status
	if in.Meals != nil {
		p.Meals = *in.Meals
	}
	requested := current
	if in.Status != nil {
		requested = *in.Status
	}

	_, err = s.writer.Run(ctx, write.Request{
		Validate: func() error {
			var vs apperr.Violations
			checkMeals(&vs, p.Meals)
			return vs.Err()
		},
		Transition: &write.Transition{
			Policy:    policy.DietPlan,
			Current:   current,
			Requested: requested,
		},
		Persist: func(ctx context.Context) error {
			p.Status = requested
			return s.repo.Update(ctx, p)
		},
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
