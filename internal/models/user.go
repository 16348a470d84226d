package models

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxUserNameLength  = 100
	MaxUserEmailLength = 255
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type User struct {
	id        string
	name      string
	email     string
	role      UserRole
	createdAt time.Time
	updatedAt time.Time
}

type UserSnapshot struct {
	ID        string
	Name      string
	Email     string
	Role      UserRole
	CreatedAt time.Time
	UpdatedAt time.Time
}

type NewUserParams struct {
	Name  string
	Email string
	// Role defaults to UserRoleMember when empty.
	Role UserRole
}

// NewUser validates params and returns a user created at now. The email is
// stored trimmed and lower-cased.
func NewUser(id string, params NewUserParams, now time.Time) (*User, error) {
	now = normalizeTime(now)

	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, newFieldError("name", "name is required")
	}
	if utf8.RuneCountInString(name) > MaxUserNameLength {
		return nil, newFieldError("name",
			"name must be %d characters or fewer", MaxUserNameLength)
	}

	email := strings.TrimSpace(params.Email)
	if email == "" {
		return nil, newFieldError("email", "email is required")
	}
	if utf8.RuneCountInString(email) > MaxUserEmailLength {
		return nil, newFieldError("email",
			"email must be %d characters or fewer", MaxUserEmailLength)
	}
	if !emailPattern.MatchString(email) {
		return nil, newFieldError("email", "email must be a valid email address")
	}

	role := params.Role
	if role == "" {
		role = UserRoleMember
	}
	if !role.Valid() {
		return nil, newFieldError("role", "unknown role '%s'", role)
	}

	return &User{
		id:        id,
		name:      name,
		email:     NormalizeEmail(email),
		role:      role,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// RestoreUser rebuilds a user loaded from storage without validation.
func RestoreUser(s UserSnapshot) *User {
	return &User{
		id:        s.ID,
		name:      s.Name,
		email:     s.Email,
		role:      s.Role,
		createdAt: s.CreatedAt,
		updatedAt: s.UpdatedAt,
	}
}

// NormalizeEmail returns the form emails are stored and compared in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) ID() string           { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) Role() UserRole       { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

func (u *User) Snapshot() UserSnapshot {
	return UserSnapshot{
		ID:        u.id,
		Name:      u.name,
		Email:     u.email,
		Role:      u.role,
		CreatedAt: u.createdAt,
		UpdatedAt: u.updatedAt,
	}
}
