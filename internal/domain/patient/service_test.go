package patient

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mealtrack/mealtrack/internal/core/apperr"
	"github.com/mealtrack/mealtrack/internal/core/write"
)

// -- Mock Repository --

type mockRepo struct {
	patients map[uuid.UUID]*Patient
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	if p.AdmissionDate.IsZero() {
		p.AdmissionDate = time.Now()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, apperr.NotFound("patient")
	}
	cp := *p
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	if _, ok := m.patients[p.ID]; !ok {
		return apperr.NotFound("patient")
	}
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.patients[id]; !ok {
		return apperr.NotFound("patient")
	}
	delete(m.patients, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, f Filter, limit, offset int) ([]*Patient, int, error) {
	var result []*Patient
	for _, p := range m.patients {
		if f.Active && p.DischargeDate != nil {
			continue
		}
		if f.Search != "" && !strings.Contains(p.PatientName, f.Search) &&
			p.ContactInformation != f.Search && p.EmergencyContact != f.Search {
			continue
		}
		result = append(result, p)
	}
	return result, len(result), nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo, write.New(nil, nil)), repo
}

func validPatient() *Patient {
	return &Patient{
		PatientName:        "Ravi Kumar",
		Diseases:           []string{"diabetes"},
		Allergies:          []string{"peanuts"},
		RoomNumber:         "101",
		BedNumber:          "B2",
		FloorNumber:        "1",
		Age:                54,
		Gender:             "Male",
		ContactInformation: "9876543210",
		EmergencyContact:   "9123456780",
	}
}

func TestCreatePatient(t *testing.T) {
	svc, repo := newTestService()

	p := validPatient()
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("expected id assigned")
	}
	if len(repo.patients) != 1 {
		t.Errorf("expected one stored patient, got %d", len(repo.patients))
	}
}

func TestCreatePatient_CollectsAllViolations(t *testing.T) {
	svc, repo := newTestService()

	p := validPatient()
	p.PatientName = ""
	p.Age = 0
	p.Gender = "unknown"
	p.ContactInformation = "12345"

	err := svc.Create(context.Background(), p)
	if err == nil {
		t.Fatal("expected validation failure")
	}
	var vs *apperr.Violations
	if !asViolations(err, &vs) {
		t.Fatalf("expected Violations, got %T", err)
	}
	if got := len(vs.All()); got < 4 {
		t.Errorf("expected at least 4 violations, got %d: %v", got, err)
	}
	if len(repo.patients) != 0 {
		t.Error("rejected create must not persist")
	}
}

func TestCreatePatient_DischargeBeforeAdmission(t *testing.T) {
	svc, _ := newTestService()

	p := validPatient()
	p.AdmissionDate = time.Now().Add(-time.Hour)
	before := p.AdmissionDate.Add(-24 * time.Hour)
	p.DischargeDate = &before

	err := svc.Create(context.Background(), p)
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreatePatient_FutureAdmissionRejected(t *testing.T) {
	svc, _ := newTestService()

	p := validPatient()
	p.AdmissionDate = time.Now().Add(48 * time.Hour)

	if err := svc.Create(context.Background(), p); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreatePatient_DefaultsEmptyLists(t *testing.T) {
	svc, _ := newTestService()

	p := validPatient()
	p.Diseases = nil
	p.Allergies = nil
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Diseases == nil || p.Allergies == nil {
		t.Error("expected nil lists defaulted to empty")
	}
}

func TestUpdatePatient_Partial(t *testing.T) {
	svc, _ := newTestService()

	p := validPatient()
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	room := "204"
	updated, err := svc.Update(context.Background(), p.ID, UpdateInput{RoomNumber: &room})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.RoomNumber != "204" {
		t.Errorf("RoomNumber = %q, want 204", updated.RoomNumber)
	}
	if updated.PatientName != p.PatientName {
		t.Error("untouched fields must survive a partial update")
	}
}

func TestUpdatePatient_InvalidPhoneRejected(t *testing.T) {
	svc, repo := newTestService()

	p := validPatient()
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	bad := "not-a-phone"
	_, err := svc.Update(context.Background(), p.ID, UpdateInput{ContactInformation: &bad})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.patients[p.ID].ContactInformation != "9876543210" {
		t.Error("rejected update must not change the stored record")
	}
}

func TestUpdatePatient_NotFound(t *testing.T) {
	svc, _ := newTestService()

	name := "Someone"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateInput{PatientName: &name})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeletePatient_ReturnsSnapshot(t *testing.T) {
	svc, repo := newTestService()

	p := validPatient()
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	snap, err := svc.Delete(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if snap.PatientName != p.PatientName {
		t.Error("expected deleted snapshot returned")
	}
	if len(repo.patients) != 0 {
		t.Error("expected record removed")
	}
}

func TestDeletePatient_NotFound(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Delete(context.Background(), uuid.New()); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListPatients_ActiveFilter(t *testing.T) {
	svc, _ := newTestService()

	active := validPatient()
	if err := svc.Create(context.Background(), active); err != nil {
		t.Fatalf("Create: %v", err)
	}
	discharged := validPatient()
	discharged.ContactInformation = "9998887770"
	if err := svc.Create(context.Background(), discharged); err != nil {
		t.Fatalf("Create: %v", err)
	}
	now := time.Now()
	if _, err := svc.Update(context.Background(), discharged.ID, UpdateInput{DischargeDate: &now}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	patients, total, err := svc.List(context.Background(), Filter{Active: true}, 10, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(patients) != 1 {
		t.Fatalf("expected one active patient, got %d", total)
	}
	if patients[0].ID != active.ID {
		t.Error("wrong patient returned for active filter")
	}
}

func asViolations(err error, target **apperr.Violations) bool {
	v, ok := err.(*apperr.Violations)
	if ok {
		*target = v
	}
	return ok
}
