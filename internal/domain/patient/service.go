package patient

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mealtrack/mealtrack/internal/core/apperr"
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

func checkPatient(p *Patient, now time.Time) error {
	var vs apperr.Violations
	validate.Required(&vs, "patient_name", p.PatientName)
	if p.PatientName != "" {
		validate.Name(&vs, "patient_name", p.PatientName)
	}
	validate.Required(&vs, "room_number", p.RoomNumber)
	validate.Required(&vs, "bed_number", p.BedNumber)
	validate.Required(&vs, "floor_number", p.FloorNumber)
	validate.Positive(&vs, "age", p.Age)
	validate.Enum(&vs, "gender", p.Gender, Genders...)
	validate.Phone(&vs, "contact_information", p.ContactInformation)
	validate.Phone(&vs, "emergency_contact", p.EmergencyContact)
	validate.NotFuture(&vs, "admission_date", p.AdmissionDate, now)
	if p.DischargeDate != nil {
		validate.DateOrder(&vs, "discharge_date", p.AdmissionDate, *p.DischargeDate)
	}
	return vs.Err()
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	if p.Diseases == nil {
		p.Diseases = []string{}
	}
	if p.Allergies == nil {
		p.Allergies = []string{}
	}
	_, err := s.writer.Run(ctx, write.Request{
		Validate: func() error { return checkPatient(p, time.Now().UTC()) },
		Persist:  func(ctx context.Context) error { return s.repo.Create(ctx, p) },
	})
	return err
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Apply(p)

	_, err = s.writer.Run(ctx, write.Request{
		Validate: func() error { return checkPatient(p, time.Now().UTC()) },
		Persist:  func(ctx context.Context) error { return s.repo.Update(ctx, p) },
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the patient and returns the deleted snapshot.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return p, nil
}
