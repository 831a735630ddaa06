package mealdelivery

import (
	"context"

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

func (s *Service) Create(ctx context.Context, d *MealDelivery) error {
	if d.DeliveryStatus == "" {
		d.DeliveryStatus = DefaultStatus
	}
	_, err := s.writer.Run(ctx, write.Request{
		Validate: func() error {
			var vs apperr.Violations
			validate.Enum(&vs, "delivery_status", d.DeliveryStatus, policy.MealDelivery.Statuses...)
			if d.DeliveryStatus == "Delivered" && d.DeliveryTime == nil {
				vs.Add("delivery_time", "is required when status is Delivered")
			}
			return vs.Err()
		},
		References: []write.Reference{
			{Field: "meal_preparation_id", ID: d.MealPreparationID, Target: "meal_preparation"},
			{Field: "delivery_person_id", ID: d.DeliveryPersonID, Target: "delivery_person"},
		},
		Persist: func(ctx context.Context) error { return s.repo.Create(ctx, d) },
	})
	return err
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*MealDelivery, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*MealDelivery, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}

// Update changes the assigned delivery person or the notes. A delivery
// frozen in its terminal status accepts no changes.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*MealDelivery, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if policy.MealDelivery.IsTerminal(d.DeliveryStatus) {
		return nil, apperr.Terminal("delivery_status", d.DeliveryStatus)
	}

	var refs []write.Reference
	if in.DeliveryPersonID != nil {
		d.DeliveryPersonID = *in.DeliveryPersonID
		refs = append(refs, write.Reference{
			Field: "delivery_person_id", ID: d.DeliveryPersonID, Target: "delivery_person",
		})
	}
	if in.DeliveryNotes != nil {
		d.DeliveryNotes = *in.DeliveryNotes
	}

	_, err = s.writer.Run(ctx, write.Request{
		References: refs,
		Persist:    func(ctx context.Context) error { return s.repo.Update(ctx, d) },
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// UpdateStatus moves the delivery along its status order. The transition
// into Delivered must carry delivery_time; it is stamped atomically with
// the status.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, in StatusInput) (*MealDelivery, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	_, err = s.writer.Run(ctx, write.Request{
		Transition: &write.Transition{
			Policy:       policy.MealDelivery,
			Current:      d.DeliveryStatus,
			Requested:    in.DeliveryStatus,
			HasTimestamp: in.DeliveryTime != nil,
		},
		Persist: func(ctx context.Context) error {
			d.DeliveryStatus = in.DeliveryStatus
			if in.DeliveryTime != nil {
				d.DeliveryTime = in.DeliveryTime
			}
			if in.DeliveryNotes != nil {
				d.DeliveryNotes = *in.DeliveryNotes
			}
			return s.repo.Update(ctx, d)
		},
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}
