package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatlite/chatlite/internal/client/api"
	"github.com/chatlite/chatlite/internal/client/storage"
	"github.com/chatlite/chatlite/internal/model"
)

type fakeAPI struct {
	token string

	signInResp  *model.AuthResponse
	signInErr   error
	signUpResp  *model.AuthResponse
	signUpErr   error
	meResp      *model.MeResponse
	meErr       error
	signOutErr  error
	consumeResp *model.CreditsResponse
	consumeErr  error
	updateResp  *model.UserResponse
	updateErr   error
}

func (f *fakeAPI) SignUp(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	return f.signUpResp, f.signUpErr
}

func (f *fakeAPI) SignIn(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	return f.signInResp, f.signInErr
}

func (f *fakeAPI) Me(ctx context.Context) (*model.MeResponse, error) {
	return f.meResp, f.meErr
}

func (f *fakeAPI) SignOut(ctx context.Context) error {
	return f.signOutErr
}

func (f *fakeAPI) UpdateCredits(ctx context.Context, credits int64) (*model.UserResponse, error) {
	return f.updateResp, f.updateErr
}

func (f *fakeAPI) ConsumeCredit(ctx context.Context) (*model.CreditsResponse, error) {
	return f.consumeResp, f.consumeErr
}

func (f *fakeAPI) SetToken(token string) { f.token = token }
func (f *fakeAPI) ClearToken()           { f.token = "" }

type memCreds struct {
	data *storage.Credentials
}

func (m *memCreds) Save(ctx context.Context, creds *storage.Credentials) error {
	copy := *creds
	m.data = &copy
	return nil
}

func (m *memCreds) Get(ctx context.Context) (*storage.Credentials, error) {
	if m.data == nil {
		return nil, storage.ErrNotFound
	}
	copy := *m.data
	return &copy, nil
}

func (m *memCreds) Delete(ctx context.Context) error {
	m.data = nil
	return nil
}

func testUser(credits int64) model.PublicUser {
	return model.PublicUser{ID: 1, Email: "a@x.com", Credits: credits}
}

func TestSignInSuccess(t *testing.T) {
	client := &fakeAPI{
		signInResp: &model.AuthResponse{Token: "tok", User: testUser(80)},
	}
	creds := &memCreds{}
	store := New(client, creds)

	err := store.SignIn(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)

	assert.Equal(t, StateAuthenticated, store.State())
	assert.Equal(t, int64(80), store.Credits())
	require.NotNil(t, store.User())
	assert.Equal(t, "a@x.com", store.User().Email)
	assert.Equal(t, "tok", client.token)

	require.NotNil(t, creds.data)
	assert.Equal(t, "tok", creds.data.Token)
	assert.Equal(t, int64(80), creds.data.User.Credits)
}

func TestSignInFailureStaysLoggedOut(t *testing.T) {
	client := &fakeAPI{
		signInErr: &api.Error{Status: 400, Message: "invalid credentials"},
	}
	creds := &memCreds{}
	store := New(client, creds)

	err := store.SignIn(context.Background(), "a@x.com", "wrong")
	require.Error(t, err)

	assert.Equal(t, StateError, store.State())
	assert.Equal(t, "invalid credentials", store.Err())
	assert.Nil(t, store.User())
	assert.Nil(t, creds.data)
}

func TestSignUpSuccess(t *testing.T) {
	client := &fakeAPI{
		signUpResp: &model.AuthResponse{Token: "tok", User: testUser(100)},
	}
	store := New(client, &memCreds{})

	require.NoError(t, store.SignUp(context.Background(), "a@x.com", "secret1"))
	assert.Equal(t, StateAuthenticated, store.State())
	assert.Equal(t, int64(100), store.Credits())
}

func TestSignOutAlwaysEndsAnonymous(t *testing.T) {
	client := &fakeAPI{
		signInResp: &model.AuthResponse{Token: "tok", User: testUser(42)},
		signOutErr: &api.Error{Status: 500, Message: "server error"},
	}
	creds := &memCreds{}
	store := New(client, creds)
	require.NoError(t, store.SignIn(context.Background(), "a@x.com", "secret1"))

	// Server call fails; the local session clears anyway.
	store.SignOut(context.Background())

	assert.Equal(t, StateAnonymous, store.State())
	assert.EqualValues(t, DefaultCredits, store.Credits())
	assert.Nil(t, store.User())
	assert.Nil(t, creds.data)
	assert.Empty(t, client.token)
}

func TestConsumeCreditUsesServerValue(t *testing.T) {
	client := &fakeAPI{
		signInResp:  &model.AuthResponse{Token: "tok", User: testUser(10)},
		consumeResp: &model.CreditsResponse{Credits: 9},
	}
	store := New(client, &memCreds{})
	require.NoError(t, store.SignIn(context.Background(), "a@x.com", "secret1"))

	credits, err := store.ConsumeCredit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(9), credits)
	assert.Equal(t, int64(9), store.Credits())
}

func TestConsumeCreditFailureKeepsState(t *testing.T) {
	client := &fakeAPI{
		signInResp: &model.AuthResponse{Token: "tok", User: testUser(0)},
		consumeErr: &api.Error{Status: 400, Message: "insufficient credits"},
	}
	store := New(client, &memCreds{})
	require.NoError(t, store.SignIn(context.Background(), "a@x.com", "secret1"))

	_, err := store.ConsumeCredit(context.Background())
	require.Error(t, err)

	assert.Equal(t, StateAuthenticated, store.State())
	assert.Equal(t, int64(0), store.Credits())
	assert.Equal(t, "insufficient credits", store.Notice())
}

func TestUnauthorizedForcesLogout(t *testing.T) {
	client := &fakeAPI{
		signInResp: &model.AuthResponse{Token: "tok", User: testUser(10)},
		consumeErr: api.ErrUnauthorized,
	}
	creds := &memCreds{}
	store := New(client, creds)
	require.NoError(t, store.SignIn(context.Background(), "a@x.com", "secret1"))

	_, err := store.ConsumeCredit(context.Background())
	require.ErrorIs(t, err, api.ErrUnauthorized)

	assert.Equal(t, StateAnonymous, store.State())
	assert.EqualValues(t, DefaultCredits, store.Credits())
	assert.Nil(t, creds.data, "persisted credentials must be cleared")
	assert.Empty(t, client.token)
}

func TestRestoreRevalidates(t *testing.T) {
	client := &fakeAPI{
		meResp: &model.MeResponse{User: testUser(77)},
	}
	creds := &memCreds{data: &storage.Credentials{Token: "tok", User: testUser(80)}}
	store := New(client, creds)

	store.Restore(context.Background())

	assert.Equal(t, StateAuthenticated, store.State())
	// The server's answer wins over the snapshot.
	assert.Equal(t, int64(77), store.Credits())
	assert.Equal(t, "tok", client.token)
	require.NotNil(t, creds.data)
	assert.Equal(t, int64(77), creds.data.User.Credits)
}

func TestRestoreRejectedClearsSnapshot(t *testing.T) {
	client := &fakeAPI{meErr: api.ErrUnauthorized}
	creds := &memCreds{data: &storage.Credentials{Token: "stale", User: testUser(80)}}
	store := New(client, creds)

	store.Restore(context.Background())

	assert.Equal(t, StateAnonymous, store.State())
	assert.Nil(t, creds.data)
	assert.Empty(t, client.token)
}

func TestRestoreWithoutSnapshot(t *testing.T) {
	store := New(&fakeAPI{}, &memCreds{})

	store.Restore(context.Background())

	assert.Equal(t, StateAnonymous, store.State())
	assert.EqualValues(t, DefaultCredits, store.Credits())
}

func TestSetCredits(t *testing.T) {
	client := &fakeAPI{
		signInResp: &model.AuthResponse{Token: "tok", User: testUser(10)},
		updateResp: &model.UserResponse{User: testUser(55)},
	}
	store := New(client, &memCreds{})
	require.NoError(t, store.SignIn(context.Background(), "a@x.com", "secret1"))

	require.NoError(t, store.SetCredits(context.Background(), 55))
	assert.Equal(t, int64(55), store.Credits())
}

func TestClearErrorReturnsToAnonymous(t *testing.T) {
	client := &fakeAPI{signInErr: &api.Error{Status: 400, Message: "invalid credentials"}}
	store := New(client, &memCreds{})

	_ = store.SignIn(context.Background(), "a@x.com", "wrong")
	require.Equal(t, StateError, store.State())

	store.ClearError()
	assert.Equal(t, StateAnonymous, store.State())
	assert.Empty(t, store.Err())
}

func TestCallsRequireAuthentication(t *testing.T) {
	store := New(&fakeAPI{}, &memCreds{})

	_, err := store.ConsumeCredit(context.Background())
	assert.ErrorIs(t, err, ErrNotSignedIn)

	err = store.SetCredits(context.Background(), 10)
	assert.ErrorIs(t, err, ErrNotSignedIn)
}
