package credential

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Resolver supplies the secret for a credential key.
type Resolver interface {
	// ResolveCredential returns the secret stored under the given key, acquiring it if necessary.
	ResolveCredential(ctx context.Context, key string) (string, error)
}

// Prompter asks the user for a secret value.
type Prompter interface {
	PromptSecret(ctx context.Context, label string) (string, error)
}

// StoreResolver resolves credentials from a Store and prompts for any that are missing.
// Prompted values are saved to the store and persisted immediately.
type StoreResolver struct {
	store    *Store
	prompter Prompter
}

// NewStoreResolver returns a Resolver backed by the given store and prompter.
func NewStoreResolver(store *Store, prompter Prompter) *StoreResolver {
	return &StoreResolver{store: store, prompter: prompter}
}

func (r *StoreResolver) ResolveCredential(ctx context.Context, key string) (string, error) {
	if value, ok := r.store.Get(key); ok {
		return value, nil
	}

	slog.DebugContext(ctx, fmt.Sprintf("Credential '%s' not found in '%s'; prompting", key, r.store.Path()))

	value, err := r.prompter.PromptSecret(ctx, fmt.Sprintf("Enter %s (will be stored locally)", key))
	if err != nil {
		return "", fmt.Errorf("failed to prompt for credential '%s': %w", key, err)
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("no value supplied for credential '%s'", key)
	}

	r.store.Set(key, value)
	if err := r.store.Persist(); err != nil {
		return "", err
	}

	return value, nil
}
