package mealdelivery

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mealtrack/mealtrack/internal/core/apperr"
	"github.com/mealtrack/mealtrack/internal/core/write"
)

// -- Mock Repository --

type mockRepo struct {
	deliveries map[uuid.UUID]*MealDelivery
}

func newMockRepo() *mockRepo {
	return &mockRepo{deliveries: make(map[uuid.UUID]*MealDelivery)}
}

func (m *mockRepo) Create(_ context.Context, d *MealDelivery) error {
	d.ID = uuid.New()
	m.deliveries[d.ID] = d
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*MealDelivery, error) {
	d, ok := m.deliveries[id]
	if !ok {
		return nil, apperr.NotFound("meal delivery")
	}
	cp := *d
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, d *MealDelivery) error {
	if _, ok := m.deliveries[d.ID]; !ok {
		return apperr.NotFound("meal delivery")
	}
	m.deliveries[d.ID] = d
	return nil
}

func (m *mockRepo) List(_ context.Context, f Filter, limit, offset int) ([]*MealDelivery, int, error) {
	var result []*MealDelivery
	for _, d := range m.deliveries {
		if f.Status != "" && d.DeliveryStatus != f.Status {
			continue
		}
		result = append(result, d)
	}
	return result, len(result), nil
}

// fakeResolver resolves preparations and delivery persons from fixed sets.
type fakeResolver struct {
	preps   map[uuid.UUID]bool
	persons map[uuid.UUID]bool
}

func (f *fakeResolver) Resolve(_ context.Context, ref write.Reference) (write.Projection, error) {
	switch ref.Target {
	case "meal_preparation":
		if !f.preps[ref.ID] {
			return nil, apperr.NotFound(ref.Target)
		}
		return write.Projection{"preparation_status": "Completed"}, nil
	case "delivery_person":
		if !f.persons[ref.ID] {
			return nil, apperr.NotFound(ref.Target)
		}
		return write.Projection{"name": "Suresh Yadav"}, nil
	}
	return nil, apperr.NotFound(ref.Target)
}

type fixture struct {
	svc    *Service
	repo   *mockRepo
	prepID uuid.UUID
	person uuid.UUID
}

func newFixture() *fixture {
	repo := newMockRepo()
	prepID := uuid.New()
	personID := uuid.New()
	res := &fakeResolver{
		preps:   map[uuid.UUID]bool{prepID: true},
		persons: map[uuid.UUID]bool{personID: true},
	}
	return &fixture{
		svc:    NewService(repo, write.New(res, nil)),
		repo:   repo,
		prepID: prepID,
		person: personID,
	}
}

func (f *fixture) validDelivery() *MealDelivery {
	return &MealDelivery{
		MealPreparationID: f.prepID,
		DeliveryPersonID:  f.person,
	}
}

func TestCreateDelivery(t *testing.T) {
	f := newFixture()

	d := f.validDelivery()
	if err := f.svc.Create(context.Background(), d); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if d.DeliveryStatus != "Pending" {
		t.Errorf("status = %q, want Pending", d.DeliveryStatus)
	}
}

func TestCreateDelivery_UnknownPreparation(t *testing.T) {
	f := newFixture()

	d := f.validDelivery()
	d.MealPreparationID = uuid.New()
	err := f.svc.Create(context.Background(), d)
	if apperr.KindOf(err) != apperr.KindReferenceNotFound {
		t.Fatalf("expected reference not found, got %v", err)
	}
	if len(f.repo.deliveries) != 0 {
		t.Error("unresolved reference must not persist")
	}
}

func TestCreateDelivery_UnknownPerson(t *testing.T) {
	f := newFixture()

	d := f.validDelivery()
	d.DeliveryPersonID = uuid.New()
	if err := f.svc.Create(context.Background(), d); apperr.KindOf(err) != apperr.KindReferenceNotFound {
		t.Fatalf("expected reference not found, got %v", err)
	}
}

func TestCreateDelivery_DeliveredWithoutTime(t *testing.T) {
	f := newFixture()

	d := f.validDelivery()
	d.DeliveryStatus = "Delivered"
	if err := f.svc.Create(context.Background(), d); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateStatus_DeliveredRequiresTime(t *testing.T) {
	f := newFixture()

	d := f.validDelivery()
	if err := f.svc.Create(context.Background(), d); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := f.svc.UpdateStatus(context.Background(), d.ID, StatusInput{DeliveryStatus: "Delivered"})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error without delivery_time, got %v", err)
	}

	now := time.Now()
	updated, err := f.svc.UpdateStatus(context.Background(), d.ID, StatusInput{
		DeliveryStatus: "Delivered",
		DeliveryTime:   &now,
	})
	if err != nil {
		t.Fatalf("UpdateStatus with time: %v", err)
	}
	if updated.DeliveryTime == nil {
		t.Error("expected delivery_time stamped with the status")
	}
}

func TestUpdateStatus_Forward(t *testing.T) {
	f := newFixture()

	d := f.validDelivery()
	if err := f.svc.Create(context.Background(), d); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.svc.UpdateStatus(context.Background(), d.ID, StatusInput{DeliveryStatus: "In-Transit"}); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if f.repo.deliveries[d.ID].DeliveryStatus != "In-Transit" {
		t.Error("status not persisted")
	}
}

func TestUpdateStatus_FailFromTransit(t *testing.T) {
	f := newFixture()

	d := f.validDelivery()
	if err := f.svc.Create(context.Background(), d); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.svc.UpdateStatus(context.Background(), d.ID, StatusInput{DeliveryStatus: "In-Transit"}); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if _, err := f.svc.UpdateStatus(context.Background(), d.ID, StatusInput{DeliveryStatus: "Failed"}); err != nil {
		t.Fatalf("failing a live delivery must be allowed, got %v", err)
	}
}

func TestUpdateStatus_BackwardRejected(t *testing.T) {
	f := newFixture()

	d := f.validDelivery()
	if err := f.svc.Create(context.Background(), d); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.svc.UpdateStatus(context.Background(), d.ID, StatusInput{DeliveryStatus: "In-Transit"}); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	_, err := f.svc.UpdateStatus(context.Background(), d.ID, StatusInput{DeliveryStatus: "Pending"})
	if apperr.KindOf(err) != apperr.KindInvalidTransition {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestUpdateStatus_DeliveredFrozen(t *testing.T) {
	f := newFixture()

	d := f.validDelivery()
	if err := f.svc.Create(context.Background(), d); err != nil {
		t.Fatalf("Create: %v", err)
	}
	now := time.Now()
	if _, err := f.svc.UpdateStatus(context.Background(), d.ID, StatusInput{
		DeliveryStatus: "Delivered", DeliveryTime: &now,
	}); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	_, err := f.svc.UpdateStatus(context.Background(), d.ID, StatusInput{DeliveryStatus: "Failed"})
	if apperr.KindOf(err) != apperr.KindTerminalState {
		t.Fatalf("expected terminal state, got %v", err)
	}
}

func TestUpdate_TerminalDeliveryFrozen(t *testing.T) {
	f := newFixture()

	d := f.validDelivery()
	if err := f.svc.Create(context.Background(), d); err != nil {
		t.Fatalf("Create: %v", err)
	}
	now := time.Now()
	if _, err := f.svc.UpdateStatus(context.Background(), d.ID, StatusInput{
		DeliveryStatus: "Delivered", DeliveryTime: &now,
	}); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	notes := "left at nurse station"
	_, err := f.svc.Update(context.Background(), d.ID, UpdateInput{DeliveryNotes: &notes})
	if apperr.KindOf(err) != apperr.KindTerminalState {
		t.Fatalf("expected terminal state, got %v", err)
	}
}

func TestUpdate_ReassignPerson(t *testing.T) {
	f := newFixture()
	other := uuid.New()
	f.svc = NewService(f.repo, write.New(&fakeResolver{
		preps:   map[uuid.UUID]bool{f.prepID: true},
		persons: map[uuid.UUID]bool{f.person: true, other: true},
	}, nil))

	d := f.validDelivery()
	if err := f.svc.Create(context.Background(), d); err != nil {
		t.Fatalf("Create: %v", err)
	}
	updated, err := f.svc.Update(context.Background(), d.ID, UpdateInput{DeliveryPersonID: &other})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.DeliveryPersonID != other {
		t.Error("expected person reassigned")
	}
}

func TestUpdate_ReassignToUnknownPerson(t *testing.T) {
	f := newFixture()

	d := f.validDelivery()
	if err := f.svc.Create(context.Background(), d); err != nil {
		t.Fatalf("Create: %v", err)
	}
	unknown := uuid.New()
	if _, err := f.svc.Update(context.Background(), d.ID, UpdateInput{DeliveryPersonID: &unknown}); apperr.KindOf(err) != apperr.KindReferenceNotFound {
		t.Fatalf("expected reference not found, got %v", err)
	}
}
