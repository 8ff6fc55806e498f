package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/chatlite/chatlite/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// memStore is an in-memory UserStore with the same error contract as
// the Postgres implementation.
type memStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*model.User
}

func newMemStore() *memStore {
	return &memStore{users: make(map[int64]*model.User)}
}

func (s *memStore) CreateUser(ctx context.Context, email, passwordHash string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			return nil, &pgconn.PgError{Code: "23505"}
		}
	}

	s.nextID++
	user := &model.User{
		ID:           s.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		Credits:      100,
		CreatedAt:    time.Now(),
	}
	s.users[user.ID] = user
	copy := *user
	return &copy, nil
}

func (s *memStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			copy := *user
			return &copy, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *memStore) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copy := *user
	return &copy, nil
}

func (s *memStore) UpdateLastLogin(ctx context.Context, userID int64, at time.Time) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	user.LastLogin = &at
	copy := *user
	return &copy, nil
}

func (s *memStore) SetCredits(ctx context.Context, userID int64, credits int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	user.Credits = credits
	copy := *user
	return &copy, nil
}

func (s *memStore) ConsumeCredit(ctx context.Context, userID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok || user.Credits <= 0 {
		return 0, pgx.ErrNoRows
	}
	user.Credits--
	return user.Credits, nil
}

func newTestAuthService() (*AuthService, *memStore, *TokenService) {
	store := newMemStore()
	tokens := NewTokenService("test-secret", time.Hour)
	return NewAuthService(store, tokens), store, tokens
}

func TestRegisterThenAuthenticate(t *testing.T) {
	svc, _, tokens := newTestAuthService()
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Credits != 100 {
		t.Fatalf("expected default credits 100, got %d", user.Credits)
	}
	if user.PasswordHash == "secret1" {
		t.Fatal("password stored in plaintext")
	}

	userID, err := tokens.Verify(token)
	if err != nil || userID != user.ID {
		t.Fatalf("token does not resolve to the created user: id=%d err=%v", userID, err)
	}

	authed, token2, err := svc.Authenticate(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if authed.ID != user.ID {
		t.Fatalf("expected same user, got %d", authed.ID)
	}
	if authed.LastLogin == nil {
		t.Fatal("expected lastLogin to be set")
	}
	if userID, err := tokens.Verify(token2); err != nil || userID != user.ID {
		t.Fatalf("signin token does not resolve to the user")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, store, _ := newTestAuthService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "", "secret1"); err != ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if _, _, err := svc.Register(ctx, "a@x.com", ""); err != ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if _, _, err := svc.Register(ctx, "a@x.com", "short"); err != ErrPasswordTooShort {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
	if len(store.users) != 0 {
		t.Fatalf("no record should exist, got %d", len(store.users))
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, store, _ := newTestAuthService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "a@x.com", "secret1"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, _, err := svc.Register(ctx, "a@x.com", "secret2"); err != ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if len(store.users) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(store.users))
	}
}

func TestAuthenticateHidesWhichPartFailed(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "a@x.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, wrongPassword := svc.Authenticate(ctx, "a@x.com", "wrong-password")
	_, _, unknownEmail := svc.Authenticate(ctx, "nobody@x.com", "secret1")

	if wrongPassword != ErrInvalidCredentials || unknownEmail != ErrInvalidCredentials {
		t.Fatalf("expected identical ErrInvalidCredentials, got %v and %v", wrongPassword, unknownEmail)
	}
}

func TestConsumeCredit(t *testing.T) {
	svc, store, _ := newTestAuthService()
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := store.SetCredits(ctx, user.ID, 5); err != nil {
		t.Fatalf("seed credits: %v", err)
	}

	credits, err := svc.ConsumeCredit(ctx, user.ID)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if credits != 4 {
		t.Fatalf("expected 4 credits after consume, got %d", credits)
	}
}

func TestConsumeCreditAtZero(t *testing.T) {
	svc, store, _ := newTestAuthService()
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := store.SetCredits(ctx, user.ID, 0); err != nil {
		t.Fatalf("seed credits: %v", err)
	}

	if _, err := svc.ConsumeCredit(ctx, user.ID); err != ErrInsufficientCredits {
		t.Fatalf("expected ErrInsufficientCredits, got %v", err)
	}

	after, _ := store.GetUserByID(ctx, user.ID)
	if after.Credits != 0 {
		t.Fatalf("credits must stay at 0, got %d", after.Credits)
	}
}

func TestConsumeCreditMissingUser(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, err := svc.ConsumeCredit(context.Background(), 999); err != ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSetCredits(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	value := int64(42)
	updated, err := svc.SetCredits(ctx, user.ID, &value)
	if err != nil {
		t.Fatalf("set credits: %v", err)
	}
	if updated.Credits != 42 {
		t.Fatalf("expected exact overwrite to 42, got %d", updated.Credits)
	}

	negative := int64(-1)
	if _, err := svc.SetCredits(ctx, user.ID, &negative); err != ErrInvalidCredits {
		t.Fatalf("expected ErrInvalidCredits for negative value, got %v", err)
	}
	if _, err := svc.SetCredits(ctx, user.ID, nil); err != ErrInvalidCredits {
		t.Fatalf("expected ErrInvalidCredits for missing value, got %v", err)
	}
}

func TestCurrentUserMissing(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, err := svc.CurrentUser(context.Background(), 999); err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
