package storage

import (
	"context"
	"errors"

	"github.com/chatlite/chatlite/internal/model"
)

var ErrNotFound = errors.New("credentials not found")

// Credentials is the snapshot persisted across restarts: exactly the
// bearer token and the last known user record, stored and cleared
// together, never independently.
type Credentials struct {
	Token string           `json:"token"`
	User  model.PublicUser `json:"user"`
}

// CredentialStore persists the credential snapshot between runs.
type CredentialStore interface {
	Save(ctx context.Context, creds *Credentials) error
	Get(ctx context.Context) (*Credentials, error)
	Delete(ctx context.Context) error
}
