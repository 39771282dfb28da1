package repository

import (
	"context"
	"errors"
	"fmt"

	"travelbook-service/internal/domain/entity"
)

// Namespaces the store is partitioned into.
const (
	NamespaceUsers   = "users"
	NamespaceFlights = "flights"
)

// Store-level failures, wrapped by implementations with per-key detail.
var (
	ErrKeyNotFound = errors.New("document not found")
	ErrKeyExists   = errors.New("document already exists")
)

// DurabilityLevel is the write-acknowledgment strength requested for a
// single insert. It never provides cross-document atomicity.
type DurabilityLevel int

const (
	DurabilityNone DurabilityLevel = iota
	DurabilityMajority
	DurabilityMajorityPersisted
)

func (d DurabilityLevel) String() string {
	switch d {
	case DurabilityMajority:
		return "majority"
	case DurabilityMajorityPersisted:
		return "majorityAndPersisted"
	default:
		return "none"
	}
}

// ParseDurability maps a configuration or request value to a level.
func ParseDurability(s string) (DurabilityLevel, error) {
	switch s {
	case "", "none":
		return DurabilityNone, nil
	case "majority":
		return DurabilityMajority, nil
	case "majorityAndPersisted", "persisted":
		return DurabilityMajorityPersisted, nil
	default:
		return DurabilityNone, fmt.Errorf("unknown durability level %q", s)
	}
}

// DocumentStore is the key-addressed persistence contract consumed by the
// account and booking managers. Every call is a single store round trip;
// there is no transaction spanning calls.
type DocumentStore interface {
	// Get fetches a document by key. Missing keys yield ErrKeyNotFound.
	Get(ctx context.Context, namespace, key string) (entity.Document, error)

	// Insert writes a new document and fails with ErrKeyExists when the key
	// is already taken. The durability level controls how much of the
	// cluster must acknowledge the write before Insert returns.
	Insert(ctx context.Context, namespace, key string, doc entity.Document, durability DurabilityLevel) error

	// Upsert replaces the whole document, creating it if absent.
	// Last writer wins; no revision check is performed.
	Upsert(ctx context.Context, namespace, key string, doc entity.Document) error
}
