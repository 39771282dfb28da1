package usecase

import (
	"context"
	"fmt"

	"travelbook-service/internal/domain/entity"
	"travelbook-service/internal/domain/repository"
)

// fakeStore is an in-memory DocumentStore for manager tests. It records the
// durability level of the last insert and can be primed to fail.
type fakeStore struct {
	namespaces     map[string]map[string]entity.Document
	lastDurability repository.DurabilityLevel
	insertErr      error
	upsertErr      error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		namespaces: make(map[string]map[string]entity.Document),
	}
}

func (s *fakeStore) ns(namespace string) map[string]entity.Document {
	if s.namespaces[namespace] == nil {
		s.namespaces[namespace] = make(map[string]entity.Document)
	}
	return s.namespaces[namespace]
}

func (s *fakeStore) Get(ctx context.Context, namespace, key string) (entity.Document, error) {
	doc, ok := s.ns(namespace)[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repository.ErrKeyNotFound, key)
	}
	return copyDoc(doc), nil
}

func (s *fakeStore) Insert(ctx context.Context, namespace, key string, doc entity.Document, durability repository.DurabilityLevel) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	if _, ok := s.ns(namespace)[key]; ok {
		return fmt.Errorf("%w: %s", repository.ErrKeyExists, key)
	}
	s.lastDurability = durability
	s.ns(namespace)[key] = copyDoc(doc)
	return nil
}

func (s *fakeStore) Upsert(ctx context.Context, namespace, key string, doc entity.Document) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.ns(namespace)[key] = copyDoc(doc)
	return nil
}

func copyDoc(doc entity.Document) entity.Document {
	out := make(entity.Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

// fakeHasher uses a reversible marker so tests can assert hashing happened
// without paying for bcrypt.
type fakeHasher struct{}

func (fakeHasher) Hash(plaintext string) (string, error) {
	return "hashed::" + plaintext, nil
}

func (fakeHasher) Verify(plaintext, hashed string) bool {
	return hashed == "hashed::"+plaintext
}

type fakeIssuer struct{}

func (fakeIssuer) Issue(subject string) (string, error) {
	return "token::" + subject, nil
}

type fakeAudit struct {
	entries []*entity.AuditEntry
	err     error
}

func (a *fakeAudit) Record(ctx context.Context, entry *entity.AuditEntry) error {
	if a.err != nil {
		return a.err
	}
	a.entries = append(a.entries, entry)
	return nil
}
