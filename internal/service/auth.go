package service

import (
	"context"
	"errors"
	"time"

	"github.com/chatlite/chatlite/internal/db"
	"github.com/chatlite/chatlite/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

var (
	ErrMissingFields       = errors.New("email and password are required")
	ErrPasswordTooShort    = errors.New("password must be at least 6 characters long")
	ErrEmailTaken          = errors.New("user already exists with this email")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidCredits      = errors.New("invalid credits value")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrUserNotFound        = errors.New("user not found")
	ErrUnauthorized        = errors.New("unauthorized")
)

// UserStore is the credential store contract: lookup by email and id,
// create, and the per-record credit writes. *db.Postgres implements it.
type UserStore interface {
	CreateUser(ctx context.Context, email, passwordHash string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) (*model.User, error)
	SetCredits(ctx context.Context, userID int64, credits int64) (*model.User, error)
	ConsumeCredit(ctx context.Context, userID int64) (int64, error)
}

type AuthService struct {
	store  UserStore
	tokens *TokenService
}

func NewAuthService(store UserStore, tokens *TokenService) *AuthService {
	return &AuthService{
		store:  store,
		tokens: tokens,
	}
}

// Register creates a user with the default credit balance and issues a
// session token. The password is stored only as a bcrypt hash.
func (s *AuthService) Register(ctx context.Context, email, password string) (*model.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrMissingFields
	}
	if len(password) < minPasswordLength {
		return nil, "", ErrPasswordTooShort
	}

	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !db.IsNoRows(err) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user, err := s.store.CreateUser(ctx, email, string(hash))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Authenticate verifies credentials, stamps lastLogin and issues a
// token. Unknown email and wrong password fail identically.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrMissingFields
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	user, err = s.store.UpdateLastLogin(ctx, user.ID, time.Now())
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ParseToken resolves a bearer token to the embedded user id.
func (s *AuthService) ParseToken(token string) (int64, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return 0, ErrUnauthorized
	}
	return userID, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

// SetCredits overwrites the balance exactly; it is not a delta.
func (s *AuthService) SetCredits(ctx context.Context, userID int64, credits *int64) (*model.User, error) {
	if credits == nil || *credits < 0 {
		return nil, ErrInvalidCredits
	}

	user, err := s.store.SetCredits(ctx, userID, *credits)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ConsumeCredit deducts exactly one credit and returns the new balance.
// The store-level decrement is conditional on credits > 0, so two
// concurrent calls cannot drive the balance negative.
func (s *AuthService) ConsumeCredit(ctx context.Context, userID int64) (int64, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	if user.Credits <= 0 {
		return 0, ErrInsufficientCredits
	}

	credits, err := s.store.ConsumeCredit(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			// Lost the race to the last credit.
			return 0, ErrInsufficientCredits
		}
		return 0, err
	}
	return credits, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
