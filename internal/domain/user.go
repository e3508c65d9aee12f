package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for user operations.
var ErrDuplicateEmail = errors.New("email already in use")

// Role represents an application role.
type Role string

const (
	RoleStudent   Role = "student"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

// StudentProfile holds optional student-specific profile data.
type StudentProfile struct {
	College   string `json:"college,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Mobile    string `json:"mobile,omitempty"`
}

// OrganizerProfile holds optional organizer-specific profile data.
type OrganizerProfile struct {
	Organization string   `json:"organization,omitempty"`
	Preferences  []string `json:"preferences,omitempty"`
}

// User represents a registered user
// swagger:model User
type User struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Email            string            `json:"email"`
	Password         string            `json:"-"`
	Role             Role              `json:"role"`
	Verified         bool              `json:"verified"`
	StudentProfile   *StudentProfile   `json:"studentProfile,omitempty"`
	OrganizerProfile *OrganizerProfile `json:"orgProfile,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(name, email string, role Role, verified bool, createdAt, updatedAt time.Time) *User {
	return &User{
		Name:      name,
		Email:     email,
		Role:      role,
		Verified:  verified,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// PasswordHasher handles hashing and verification of stored passwords.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	Hash(password string) (hash string, err error)
	Compare(hash, password string) error
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
}

// UserService defines the business logic for user accounts.
type UserService interface {
	// Create stores the user with the given plaintext password hashed.
	// Returns ErrDuplicateEmail if the email is already taken.
	Create(ctx context.Context, user *User, password string) error
	List(ctx context.Context) ([]*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}
