package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sachcu/marketplace-client/internal/core/domain"
	"github.com/sachcu/marketplace-client/internal/core/ports"
	"github.com/sachcu/marketplace-client/internal/metrics"
)

// Persisted key names. The user keys match what earlier clients wrote so an
// existing store keeps working.
const (
	keyUserToken      = "userToken"
	keyUserPrincipal  = "user"
	keyAdminToken     = "adminToken"
	keyAdminPrincipal = "admin"
	keyLegacyToken    = "authToken"
)

type slotKeys struct {
	token     string
	principal string
	legacy    []string
}

var slots = map[domain.Role]slotKeys{
	domain.RoleUser:  {token: keyUserToken, principal: keyUserPrincipal, legacy: []string{keyLegacyToken}},
	domain.RoleAdmin: {token: keyAdminToken, principal: keyAdminPrincipal},
}

// SessionService owns the two credential slots (user, admin) on top of a
// durable key-value store. It is safe for concurrent use; concurrent stores
// for the same role resolve last-writer-wins.
type SessionService struct {
	store ports.KeyValueStore
	log   zerolog.Logger
	mu    sync.RWMutex
}

// NewSessionService returns a SessionService backed by store.
func NewSessionService(store ports.KeyValueStore, log zerolog.Logger) *SessionService {
	return &SessionService{store: store, log: log}
}

func keysFor(role domain.Role) (slotKeys, error) {
	k, ok := slots[role]
	if !ok {
		return slotKeys{}, fmt.Errorf("%w: %q", domain.ErrUnknownRole, string(role))
	}
	return k, nil
}

// GetCredential returns the stored token for role; ok is false when none is stored.
func (s *SessionService) GetCredential(ctx context.Context, role domain.Role) (string, bool, error) {
	k, err := keysFor(role)
	if err != nil {
		return "", false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	token, ok, err := s.store.Get(ctx, k.token)
	if err != nil {
		return "", false, fmt.Errorf("get %s token: %w", role, err)
	}
	if !ok || token == "" {
		return "", false, nil
	}
	return token, true, nil
}

// Token satisfies ports.CredentialSource.
func (s *SessionService) Token(ctx context.Context, role domain.Role) (string, bool, error) {
	return s.GetCredential(ctx, role)
}

// Principal returns the identity stored for role. A corrupt record reads as absent.
func (s *SessionService) Principal(ctx context.Context, role domain.Role) (*domain.Principal, bool, error) {
	k, err := keysFor(role)
	if err != nil {
		return nil, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok, err := s.store.Get(ctx, k.principal)
	if err != nil {
		return nil, false, fmt.Errorf("get %s principal: %w", role, err)
	}
	if !ok || raw == "" {
		return nil, false, nil
	}

	var p domain.Principal
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.log.Warn().Err(err).Str("role", role.String()).Msg("discarding unreadable principal")
		return nil, false, nil
	}
	return &p, true, nil
}

// Credential returns the full record for role.
func (s *SessionService) Credential(ctx context.Context, role domain.Role) (*domain.Credential, bool, error) {
	token, ok, err := s.GetCredential(ctx, role)
	if err != nil || !ok {
		return nil, false, err
	}
	cred := &domain.Credential{Token: token}
	if p, found, err := s.Principal(ctx, role); err != nil {
		return nil, false, err
	} else if found {
		cred.Principal = *p
	}
	return cred, true, nil
}

// StoreCredential replaces the record for role with token and principal.
func (s *SessionService) StoreCredential(ctx context.Context, role domain.Role, token string, principal domain.Principal) error {
	k, err := keysFor(role)
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(principal)
	if err != nil {
		return fmt.Errorf("encode %s principal: %w", role, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SetMany(ctx, map[string]string{
		k.token:     token,
		k.principal: string(encoded),
	}); err != nil {
		return fmt.Errorf("store %s credential: %w", role, err)
	}

	metrics.SessionOperationsTotal.WithLabelValues(role.String(), "store").Inc()
	s.log.Debug().Str("role", role.String()).Int("principal_id", principal.ID()).Msg("credential stored")
	return nil
}

// ClearCredential removes token and principal for role. Clearing the user
// slot also drops the legacy token key.
func (s *SessionService) ClearCredential(ctx context.Context, role domain.Role) error {
	k, err := keysFor(role)
	if err != nil {
		return err
	}

	keys := append([]string{k.token, k.principal}, k.legacy...)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("clear %s credential: %w", role, err)
	}

	metrics.SessionOperationsTotal.WithLabelValues(role.String(), "clear").Inc()
	s.log.Debug().Str("role", role.String()).Msg("credential cleared")
	return nil
}
