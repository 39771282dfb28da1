package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"travelbook-service/internal/domain/entity"
	"travelbook-service/internal/domain/repository"
	"travelbook-service/pkg/logger"
)

func newBookingManager(store *fakeStore) *BookingManager {
	return NewBookingManager(store, nil, logger.NewNopLogger())
}

func seedUser(t *testing.T, store *fakeStore, username string) {
	t.Helper()
	doc := entity.NewUserDocument(username, "hashed::secret")
	if err := store.Upsert(context.Background(), repository.NamespaceUsers, entity.UserDocKey(username), doc); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
}

func validFlight(name string) entity.Document {
	return entity.Document{
		"name":               name,
		"flight":             "AF241",
		"date":               "05/25/2026",
		"sourceairport":      "CDG",
		"destinationairport": "SFO",
		"price":              521.5,
	}
}

func TestRegisterFlightUnknownUser(t *testing.T) {
	mgr := newBookingManager(newFakeStore())

	_, err := mgr.RegisterFlightForUser(context.Background(), "nobody", []entity.Document{validFlight("Air France")})
	if !errors.Is(err, entity.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRegisterFlightNilPayload(t *testing.T) {
	store := newFakeStore()
	seedUser(t, store, "alice")
	mgr := newBookingManager(store)

	_, err := mgr.RegisterFlightForUser(context.Background(), "alice", nil)
	if !errors.Is(err, entity.ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
}

func TestRegisterFlightEmptyBatch(t *testing.T) {
	store := newFakeStore()
	seedUser(t, store, "alice")
	mgr := newBookingManager(store)
	ctx := context.Background()

	result, err := mgr.RegisterFlightForUser(ctx, "alice", []entity.Document{})
	if err != nil {
		t.Fatalf("empty batch should succeed, got %v", err)
	}
	added, ok := result.Data["added"].([]entity.Document)
	if !ok || len(added) != 0 {
		t.Errorf("expected empty added list, got %v", result.Data["added"])
	}

	flights, err := mgr.GetFlightsForUser(ctx, "alice")
	if err != nil {
		t.Fatalf("GetFlightsForUser failed: %v", err)
	}
	if len(flights) != 0 {
		t.Errorf("expected no flights, got %d", len(flights))
	}
}

func TestRegisterFlightRoundtrip(t *testing.T) {
	store := newFakeStore()
	seedUser(t, store, "alice")
	mgr := newBookingManager(store)
	ctx := context.Background()

	payload := validFlight("Air France")
	result, err := mgr.RegisterFlightForUser(ctx, "alice", []entity.Document{payload})
	if err != nil {
		t.Fatalf("RegisterFlightForUser failed: %v", err)
	}
	if !strings.Contains(result.Narration, "user::alice") {
		t.Errorf("narration should name the user document, got %q", result.Narration)
	}

	flights, err := mgr.GetFlightsForUser(ctx, "alice")
	if err != nil {
		t.Fatalf("GetFlightsForUser failed: %v", err)
	}
	if len(flights) != 1 {
		t.Fatalf("expected 1 flight, got %d", len(flights))
	}

	got := flights[0]
	if got[entity.FieldBookedOn] != entity.ProvenanceMarker {
		t.Errorf("expected provenance marker %q, got %v", entity.ProvenanceMarker, got[entity.FieldBookedOn])
	}
	for _, field := range []string{"name", "flight", "date", "sourceairport", "destinationairport", "price"} {
		if got[field] != payload[field] {
			t.Errorf("field %q: expected %v, got %v", field, payload[field], got[field])
		}
	}
}

func TestRegisterFlightPreservesOrder(t *testing.T) {
	store := newFakeStore()
	seedUser(t, store, "alice")
	mgr := newBookingManager(store)
	ctx := context.Background()

	batches := [][]entity.Document{
		{validFlight("first"), validFlight("second")},
		{validFlight("third")},
	}
	for _, batch := range batches {
		if _, err := mgr.RegisterFlightForUser(ctx, "alice", batch); err != nil {
			t.Fatalf("RegisterFlightForUser failed: %v", err)
		}
	}

	flights, err := mgr.GetFlightsForUser(ctx, "alice")
	if err != nil {
		t.Fatalf("GetFlightsForUser failed: %v", err)
	}
	want := []string{"first", "second", "third"}
	if len(flights) != len(want) {
		t.Fatalf("expected %d flights, got %d", len(want), len(flights))
	}
	for i, name := range want {
		if flights[i]["name"] != name {
			t.Errorf("position %d: expected %q, got %v", i, name, flights[i]["name"])
		}
	}
}

// A malformed flight aborts the batch after earlier flights were already
// inserted; the orphaned documents stay behind because nothing rolls the
// batch back.
func TestRegisterFlightMalformedAbortsWithoutRollback(t *testing.T) {
	store := newFakeStore()
	seedUser(t, store, "alice")
	mgr := newBookingManager(store)
	ctx := context.Background()

	malformed := validFlight("broken")
	delete(malformed, "date")

	_, err := mgr.RegisterFlightForUser(ctx, "alice", []entity.Document{validFlight("ok"), malformed})
	if !errors.Is(err, entity.ErrInvalidFlightPayload) {
		t.Fatalf("expected ErrInvalidFlightPayload, got %v", err)
	}

	// The first flight document was persisted before the abort.
	if got := len(store.namespaces[repository.NamespaceFlights]); got != 1 {
		t.Errorf("expected 1 orphaned flight document, got %d", got)
	}

	// But the user's list was never updated, so reads stay consistent.
	flights, err := mgr.GetFlightsForUser(ctx, "alice")
	if err != nil {
		t.Fatalf("GetFlightsForUser failed: %v", err)
	}
	if len(flights) != 0 {
		t.Errorf("user flight list should be unchanged, got %d flights", len(flights))
	}
}

func TestGetFlightsUnknownUserReturnsEmpty(t *testing.T) {
	mgr := newBookingManager(newFakeStore())

	flights, err := mgr.GetFlightsForUser(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("expected no error for unknown user, got %v", err)
	}
	if len(flights) != 0 {
		t.Errorf("expected empty sequence, got %d flights", len(flights))
	}
}

func TestGetFlightsDanglingReference(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()

	doc := entity.NewUserDocument("alice", "hashed::secret")
	doc[entity.FieldFlights] = []interface{}{"flight::gone"}
	if err := store.Upsert(ctx, repository.NamespaceUsers, "user::alice", doc); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	mgr := newBookingManager(store)
	_, err := mgr.GetFlightsForUser(ctx, "alice")
	if !errors.Is(err, entity.ErrDataConsistency) {
		t.Fatalf("expected ErrDataConsistency, got %v", err)
	}
	if !strings.Contains(err.Error(), "flight::gone") {
		t.Errorf("error should name the missing flight id, got %q", err.Error())
	}
}

func TestRegisterFlightAudit(t *testing.T) {
	store := newFakeStore()
	seedUser(t, store, "alice")
	audit := &fakeAudit{}
	mgr := NewBookingManager(store, audit, logger.NewNopLogger())

	if _, err := mgr.RegisterFlightForUser(context.Background(), "alice", []entity.Document{validFlight("Air France")}); err != nil {
		t.Fatalf("RegisterFlightForUser failed: %v", err)
	}

	if len(audit.entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(audit.entries))
	}
	if audit.entries[0].Operation != "registerFlightForUser" {
		t.Errorf("unexpected audit operation %q", audit.entries[0].Operation)
	}
}
