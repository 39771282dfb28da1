package usecase

import (
	"context"
	"errors"
	"fmt"

	"travelbook-service/internal/domain/entity"
	"travelbook-service/internal/domain/repository"
	"travelbook-service/pkg/logger"

	"github.com/google/uuid"
)

// BookingManager registers flights for a user and dereferences a user's
// stored flight ids. Flight documents and the user's flight list live in
// separate namespaces and are written by separate, non-atomic store calls;
// a crash between them leaves orphan flight documents that surface later
// as ErrDataConsistency on read.
type BookingManager struct {
	store  repository.DocumentStore
	audit  repository.AuditRepository
	logger logger.Logger
}

// NewBookingManager creates a new booking manager. audit may be nil.
func NewBookingManager(store repository.DocumentStore, audit repository.AuditRepository, logger logger.Logger) *BookingManager {
	return &BookingManager{
		store:  store,
		audit:  audit,
		logger: logger,
	}
}

// RegisterFlightForUser books the given flights for a user: each flight is
// validated, stamped with provenance, and inserted as its own document,
// then the user document is replaced with the extended flight-id list.
// A malformed flight aborts the call immediately; flights already inserted
// in the same batch are not rolled back. The final user upsert carries no
// revision check, so concurrent bookings for one user can lose updates.
func (m *BookingManager) RegisterFlightForUser(ctx context.Context, username string, newFlights []entity.Document) (*entity.Result, error) {
	userKey := entity.UserDocKey(username)
	userDoc, err := m.store.Get(ctx, repository.NamespaceUsers, userKey)
	if err != nil {
		if errors.Is(err, repository.ErrKeyNotFound) {
			return nil, entity.ErrUserNotFound
		}
		return nil, err
	}

	if newFlights == nil {
		return nil, entity.ErrInvalidPayload
	}

	booked, _ := userDoc[entity.FieldFlights].([]interface{})
	if booked == nil {
		booked = []interface{}{}
	}
	added := make([]entity.Document, 0, len(newFlights))

	for _, flight := range newFlights {
		if err := entity.ValidateFlight(flight); err != nil {
			return nil, err
		}
		flight[entity.FieldBookedOn] = entity.ProvenanceMarker

		flightKey := entity.FlightDocKey(uuid.NewString())
		if err := m.store.Insert(ctx, repository.NamespaceFlights, flightKey, flight, repository.DurabilityNone); err != nil {
			// An id collision or transport failure is fatal, not retried.
			m.logger.Error("Flight insert failed", "username", username, "key", flightKey, "error", err)
			return nil, err
		}

		booked = append(booked, flightKey)
		added = append(added, flight)
	}

	userDoc[entity.FieldFlights] = booked
	if err := m.store.Upsert(ctx, repository.NamespaceUsers, userKey, userDoc); err != nil {
		return nil, err
	}

	narration := "Booked flight in document " + userKey
	m.logger.Info("Flights registered", "username", username, "count", len(added))
	m.recordAudit(ctx, "registerFlightForUser", userKey, narration)

	return entity.NewResult(map[string]interface{}{"added": added}, narration), nil
}

// GetFlightsForUser returns the user's booked flights in stored order by
// dereferencing each flight id. A user that was never created yields an
// empty sequence, not an error; a flight id that no longer resolves fails
// the whole call with ErrDataConsistency.
func (m *BookingManager) GetFlightsForUser(ctx context.Context, username string) ([]entity.Document, error) {
	userDoc, err := m.store.Get(ctx, repository.NamespaceUsers, entity.UserDocKey(username))
	if err != nil {
		if errors.Is(err, repository.ErrKeyNotFound) {
			return []entity.Document{}, nil
		}
		return nil, err
	}

	ids, _ := userDoc[entity.FieldFlights].([]interface{})
	flights := make([]entity.Document, 0, len(ids))
	for _, raw := range ids {
		id, _ := raw.(string)
		flight, err := m.store.Get(ctx, repository.NamespaceFlights, id)
		if err != nil {
			if errors.Is(err, repository.ErrKeyNotFound) {
				return nil, fmt.Errorf("%w: unable to retrieve flight id %s", entity.ErrDataConsistency, id)
			}
			return nil, err
		}
		flights = append(flights, flight)
	}
	return flights, nil
}

func (m *BookingManager) recordAudit(ctx context.Context, operation, key, narration string) {
	if m.audit == nil {
		return
	}
	entry := &entity.AuditEntry{
		Operation:   operation,
		DocumentKey: key,
		Narration:   narration,
	}
	if err := m.audit.Record(ctx, entry); err != nil {
		m.logger.Warn("Audit record failed", "operation", operation, "key", key, "error", err)
	}
}
