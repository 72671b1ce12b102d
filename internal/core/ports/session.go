package ports

import (
	"context"

	"github.com/sachcu/marketplace-client/internal/core/domain"
)

// KeyValueStore is the durable client-side store credentials are cached in.
type KeyValueStore interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// SetMany writes every pair or none of them.
	SetMany(ctx context.Context, values map[string]string) error
	// Delete removes keys; missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}

// CredentialSource supplies the bearer token for a role, if one is stored.
type CredentialSource interface {
	Token(ctx context.Context, role domain.Role) (string, bool, error)
}

// CredentialStore is the session surface the auth resource group needs.
type CredentialStore interface {
	CredentialSource
	StoreCredential(ctx context.Context, role domain.Role, token string, principal domain.Principal) error
	ClearCredential(ctx context.Context, role domain.Role) error
	Principal(ctx context.Context, role domain.Role) (*domain.Principal, bool, error)
}
