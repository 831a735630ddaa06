package staff

import (
	"context"

	"github.com/google/uuid"

	"github.com/mealtrack/mealtrack/internal/core/apperr"
	"github.com/mealtrack/mealtrack/internal/core/validate"
	"github.com/mealtrack/mealtrack/internal/core/write"
)

// uniqueScope names the collection a staff contact number must be unique
// within. A delivery person may carry the same number.
const uniqueScope = "pantry_staff"

type Service struct {
	repo   Repository
	writer *write.Orchestrator
}

func NewService(repo Repository, writer *write.Orchestrator) *Service {
	return &Service{repo: repo, writer: writer}
}

func checkStaff(s *PantryStaff) error {
	var vs apperr.Violations
	validate.Required(&vs, "name", s.Name)
	if s.Name != "" {
		validate.Name(&vs, "name", s.Name)
	}
	validate.Phone(&vs, "contact_number", s.ContactNumber)
	validate.Required(&vs, "location", s.Location)
	validate.Enum(&vs, "role", s.Role, Roles...)
	return vs.Err()
}

func (s *Service) Create(ctx context.Context, st *PantryStaff) error {
	if st.Role == "" {
		st.Role = DefaultRole
	}
	_, err := s.writer.Run(ctx, write.Request{
		Validate: func() error { return checkStaff(st) },
		Uniques: []write.UniqueProbe{
			{Field: "contact_number", Value: st.ContactNumber, Scope: uniqueScope},
		},
		Persist: func(ctx context.Context) error { return s.repo.Create(ctx, st) },
	})
	return err
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*PantryStaff, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*PantryStaff, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*PantryStaff, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Apply(st)

	_, err = s.writer.Run(ctx, write.Request{
		Validate: func() error { return checkStaff(st) },
		Uniques: []write.UniqueProbe{
			{Field: "contact_number", Value: st.ContactNumber, Scope: uniqueScope, ExcludeID: st.ID},
		},
		Persist: func(ctx context.Context) error { return s.repo.Update(ctx, st) },
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
