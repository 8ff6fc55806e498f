package model

import "time"

// User is the credential store record. The password hash never leaves
// the server; responses carry PublicUser instead.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Credits      int64
	CreatedAt    time.Time
	LastLogin    *time.Time
}

type PublicUser struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	Credits   int64      `json:"credits"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// Public strips the record down to its client-facing shape.
func (u *User) Public() PublicUser {
	createdAt := u.CreatedAt
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Credits:   u.Credits,
		CreatedAt: &createdAt,
		LastLogin: u.LastLogin,
	}
}

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateCreditsRequest struct {
	Credits *int64 `json:"credits"`
}

type AuthResponse struct {
	Message string     `json:"message"`
	Token   string     `json:"token"`
	User    PublicUser `json:"user"`
}

type MeResponse struct {
	User PublicUser `json:"user"`
}

type UserResponse struct {
	Message string     `json:"message"`
	User    PublicUser `json:"user"`
}

type CreditsResponse struct {
	Message string `json:"message"`
	Credits int64  `json:"credits"`
}
