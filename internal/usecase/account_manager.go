package usecase

import (
	"context"
	"errors"
	"fmt"

	"travelbook-service/internal/domain/entity"
	"travelbook-service/internal/domain/repository"
	"travelbook-service/pkg/logger"
)

// AccountManager handles login and account creation against the users
// namespace of the document store.
type AccountManager struct {
	store  repository.DocumentStore
	hasher repository.PasswordHasher
	tokens repository.TokenIssuer
	audit  repository.AuditRepository
	logger logger.Logger
}

// NewAccountManager creates a new account manager. audit may be nil, in
// which case no audit trail is written.
func NewAccountManager(
	store repository.DocumentStore,
	hasher repository.PasswordHasher,
	tokens repository.TokenIssuer,
	audit repository.AuditRepository,
	logger logger.Logger,
) *AccountManager {
	return &AccountManager{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		audit:  audit,
		logger: logger,
	}
}

// Login authenticates a user and returns a payload carrying a fresh token.
// A missing user and a wrong password both fail with ErrAuthenticationFailed
// so the response never leaks whether the username exists.
func (m *AccountManager) Login(ctx context.Context, username, password string) (map[string]interface{}, error) {
	doc, err := m.store.Get(ctx, repository.NamespaceUsers, entity.UserDocKey(username))
	if err != nil {
		if errors.Is(err, repository.ErrKeyNotFound) {
			return nil, entity.ErrAuthenticationFailed
		}
		return nil, err
	}

	stored, _ := doc[entity.FieldPassword].(string)
	if !m.hasher.Verify(password, stored) {
		return nil, entity.ErrAuthenticationFailed
	}

	token, err := m.tokens.Issue(username)
	if err != nil {
		return nil, err
	}

	m.logger.Info("User logged in", "username", username)
	return map[string]interface{}{"token": token}, nil
}

// CreateLogin creates a user account. No existence check is made up front;
// the store's insert semantics reject a duplicate key, and any insert
// failure surfaces as ErrAccountCreationFailed without distinguishing the
// cause. A non-default durability level is propagated to the single write.
func (m *AccountManager) CreateLogin(ctx context.Context, username, password string, durability repository.DurabilityLevel) (*entity.Result, error) {
	hash, err := m.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrAccountCreationFailed, err)
	}

	key := entity.UserDocKey(username)
	doc := entity.NewUserDocument(username, hash)

	narration := fmt.Sprintf("User account created in document %s in collection %s", key, repository.NamespaceUsers)
	if durability > repository.DurabilityNone {
		narration += fmt.Sprintf(", with durability %s", durability)
	}

	if err := m.store.Insert(ctx, repository.NamespaceUsers, key, doc, durability); err != nil {
		m.logger.Error("Account creation failed", "username", username, "error", err)
		return nil, fmt.Errorf("%w: %v", entity.ErrAccountCreationFailed, err)
	}

	token, err := m.tokens.Issue(username)
	if err != nil {
		return nil, err
	}

	m.logger.Info("Account created", "username", username, "durability", durability.String())
	m.recordAudit(ctx, "createLogin", key, narration)

	return entity.NewResult(map[string]interface{}{"token": token}, narration), nil
}

// recordAudit writes the narration to the audit trail. Audit writes are
// best effort; the account state is already persisted when they run.
func (m *AccountManager) recordAudit(ctx context.Context, operation, key, narration string) {
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
