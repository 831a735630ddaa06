package deliveryperson

import (
	"context"

	"github.com/google/uuid"

	"github.com/mealtrack/mealtrack/internal/core/apperr"
	"github.com/mealtrack/mealtrack/internal/core/validate"
	"github.com/mealtrack/mealtrack/internal/core/write"
)

// uniqueScope names the collection a delivery person's contact number must
// be unique within. Pantry staff numbers are a separate scope.
const uniqueScope = "delivery_person"

type Service struct {
	repo   Repository
	writer *write.Orchestrator
}

func NewService(repo Repository, writer *write.Orchestrator) *Service {
	return &Service{repo: repo, writer: writer}
}

func checkPerson(d *DeliveryPerson) error {
	var vs apperr.Violations
	validate.Required(&vs, "name", d.Name)
	if d.Name != "" {
		validate.Name(&vs, "name", d.Name)
	}
	validate.Phone(&vs, "contact_number", d.ContactNumber)
	return vs.Err()
}

func (s *Service) Create(ctx context.Context, d *DeliveryPerson) error {
	_, err := s.writer.Run(ctx, write.Request{
		Validate: func() error { return checkPerson(d) },
		Uniques: []write.UniqueProbe{
			{Field: "contact_number", Value: d.ContactNumber, Scope: uniqueScope},
		},
		Persist: func(ctx context.Context) error { return s.repo.Create(ctx, d) },
	})
	return err
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*DeliveryPerson, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, search string, limit, offset int) ([]*DeliveryPerson, int, error) {
	return s.repo.List(ctx, search, limit, offset)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*DeliveryPerson, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Apply(d)

	_, err = s.writer.Run(ctx, write.Request{
		Validate: func() error { return checkPerson(d) },
		Uniques: []write.UniqueProbe{
			{Field: "contact_number", Value: d.ContactNumber, Scope: uniqueScope, ExcludeID: d.ID},
		},
		Persist: func(ctx context.Context) error { return s.repo.Update(ctx, d) },
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
