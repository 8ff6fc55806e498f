package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatlite/chatlite/internal/client/storage"
	"github.com/chatlite/chatlite/internal/model"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func TestSaveGetRoundtrip(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	creds := &storage.Credentials{
		Token: "tok",
		User:  model.PublicUser{ID: 1, Email: "a@x.com", Credits: 80},
	}
	require.NoError(t, s.Save(ctx, creds))

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, "a@x.com", got.User.Email)
	assert.Equal(t, int64(80), got.User.Credits)
}

func TestGetWithoutSnapshot(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.Get(context.Background())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteClearsSnapshot(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &storage.Credentials{Token: "tok"}))
	require.NoError(t, s.Delete(ctx))

	_, err := s.Get(ctx)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Deleting an already-empty store is fine.
	assert.NoError(t, s.Delete(ctx))
}
