// Package session holds the client's belief about the current identity
// and credit balance. It is an explicit state machine: every transition
// goes through exactly one method, and any authorization failure funnels
// into the same forced-logout path.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/chatlite/chatlite/internal/client/api"
	"github.com/chatlite/chatlite/internal/client/storage"
	"github.com/chatlite/chatlite/internal/model"
)

type State int

const (
	StateAnonymous State = iota
	StateAuthenticating
	StateAuthenticated
	StateError
)

// DefaultCredits is the balance shown before the server has said
// otherwise, and the value the session resets to on sign-out.
const DefaultCredits = 100

var ErrNotSignedIn = errors.New("not signed in")

// API is the server surface the session depends on. *api.Client
// implements it.
type API interface {
	SignUp(ctx context.Context, email, password string) (*model.AuthResponse, error)
	SignIn(ctx context.Context, email, password string) (*model.AuthResponse, error)
	Me(ctx context.Context) (*model.MeResponse, error)
	SignOut(ctx context.Context) error
	UpdateCredits(ctx context.Context, credits int64) (*model.UserResponse, error)
	ConsumeCredit(ctx context.Context) (*model.CreditsResponse, error)
	SetToken(token string)
	ClearToken()
}

type Store struct {
	client API
	creds  storage.CredentialStore

	mu      sync.Mutex
	state   State
	user    *model.PublicUser
	credits int64
	errMsg  string // sign-in/sign-up failure; set only in StateError
	notice  string // non-fatal failure surfaced without a state change
}

func New(client API, creds storage.CredentialStore) *Store {
	return &Store{
		client:  client,
		creds:   creds,
		state:   StateAnonymous,
		credits: DefaultCredits,
	}
}

// Restore rehydrates the session from the persisted snapshot, then
// re-validates it against the server. Any rejection discards the
// snapshot and leaves the session anonymous.
func (s *Store) Restore(ctx context.Context) {
	snapshot, err := s.creds.Get(ctx)
	if err != nil {
		return
	}

	// Optimistic: trust the snapshot until the server says otherwise.
	s.client.SetToken(snapshot.Token)
	s.mu.Lock()
	user := snapshot.User
	s.state = StateAuthenticated
	s.user = &user
	s.credits = user.Credits
	s.mu.Unlock()

	resp, err := s.client.Me(ctx)
	if err != nil {
		s.forceLogout(ctx)
		return
	}

	s.mu.Lock()
	fresh := resp.User
	s.user = &fresh
	s.credits = fresh.Credits
	s.mu.Unlock()

	_ = s.creds.Save(ctx, &storage.Credentials{Token: snapshot.Token, User: resp.User})
}

func (s *Store) SignIn(ctx context.Context, email, password string) error {
	s.beginAuth()

	resp, err := s.client.SignIn(ctx, email, password)
	if err != nil {
		s.failAuth(err)
		return err
	}

	return s.completeAuth(ctx, resp)
}

func (s *Store) SignUp(ctx context.Context, email, password string) error {
	s.beginAuth()

	resp, err := s.client.SignUp(ctx, email, password)
	if err != nil {
		s.failAuth(err)
		return err
	}

	return s.completeAuth(ctx, resp)
}

// SignOut notifies the server, then clears local state unconditionally.
// The server call failing does not keep the session alive.
func (s *Store) SignOut(ctx context.Context) {
	_ = s.client.SignOut(ctx)
	s.forceLogout(ctx)
}

// ConsumeCredit asks the server to deduct one credit. The local balance
// is never decremented optimistically; it only moves to the value the
// server returned.
func (s *Store) ConsumeCredit(ctx context.Context) (int64, error) {
	if s.State() != StateAuthenticated {
		return 0, ErrNotSignedIn
	}

	resp, err := s.client.ConsumeCredit(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			s.forceLogout(ctx)
			return 0, err
		}
		s.mu.Lock()
		s.notice = err.Error()
		s.mu.Unlock()
		return 0, err
	}

	s.mu.Lock()
	s.credits = resp.Credits
	if s.user != nil {
		s.user.Credits = resp.Credits
	}
	s.notice = ""
	s.mu.Unlock()
	return resp.Credits, nil
}

// SetCredits overwrites the server-side balance.
func (s *Store) SetCredits(ctx context.Context, credits int64) error {
	if s.State() != StateAuthenticated {
		return ErrNotSignedIn
	}

	resp, err := s.client.UpdateCredits(ctx, credits)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			s.forceLogout(ctx)
			return err
		}
		s.mu.Lock()
		s.notice = err.Error()
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.credits = resp.User.Credits
	if s.user != nil {
		s.user.Credits = resp.User.Credits
	}
	s.notice = ""
	s.mu.Unlock()
	return nil
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) User() *model.PublicUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

func (s *Store) Credits() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credits
}

func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

func (s *Store) Notice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}

// ClearError drops any surfaced message before the next attempt. An
// errored session returns to anonymous; it was never signed in.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
	s.notice = ""
	if s.state == StateError {
		s.state = StateAnonymous
	}
}

func (s *Store) beginAuth() {
	s.mu.Lock()
	s.state = StateAuthenticating
	s.errMsg = ""
	s.notice = ""
	s.mu.Unlock()
}

func (s *Store) failAuth(err error) {
	s.mu.Lock()
	s.state = StateError
	s.errMsg = err.Error()
	s.user = nil
	s.mu.Unlock()
}

func (s *Store) completeAuth(ctx context.Context, resp *model.AuthResponse) error {
	if err := s.creds.Save(ctx, &storage.Credentials{Token: resp.Token, User: resp.User}); err != nil {
		s.failAuth(err)
		return err
	}

	s.client.SetToken(resp.Token)
	s.mu.Lock()
	user := resp.User
	s.state = StateAuthenticated
	s.user = &user
	s.credits = user.Credits
	s.mu.Unlock()
	return nil
}

// forceLogout is the single choke point: persisted credentials and the
// in-memory session clear together, so a rejected token is never retried.
func (s *Store) forceLogout(ctx context.Context) {
	_ = s.creds.Delete(ctx)
	s.client.ClearToken()

	s.mu.Lock()
	s.state = StateAnonymous
	s.user = nil
	s.credits = DefaultCredits
	s.errMsg = ""
	s.notice = ""
	s.mu.Unlock()
}
