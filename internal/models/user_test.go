package models

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("u-1", NewUserParams{Name: "  Carol ", Email: " Carol@Example.COM "}, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Name() != "Carol" {
		t.Errorf("name: got %q", user.Name())
	}
	if user.Email() != "carol@example.com" {
		t.Errorf("email: got %q", user.Email())
	}
	if user.Role() != UserRoleMember {
		t.Errorf("role: got %s", user.Role())
	}
	if !user.UpdatedAt().Equal(user.CreatedAt()) {
		t.Errorf("timestamps differ on creation")
	}

	admin, err := NewUser("u-2", NewUserParams{Name: "A", Email: "a@b.io", Role: UserRoleAdmin}, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if admin.Role() != UserRoleAdmin {
		t.Errorf("role: got %s", admin.Role())
	}
}

func TestNewUser_Invalid(t *testing.T) {
	cases := map[string]NewUserParams{
		"empty name":     {Name: "", Email: "a@b.io"},
		"blank name":     {Name: "   ", Email: "a@b.io"},
		"long name":      {Name: strings.Repeat("n", 101), Email: "a@b.io"},
		"empty email":    {Name: "n", Email: "  "},
		"no at":          {Name: "n", Email: "example.com"},
		"no tld":         {Name: "n", Email: "a@localhost"},
		"space in local": {Name: "n", Email: "a b@c.io"},
		"two ats":        {Name: "n", Email: "a@b@c.io"},
		"unknown role":   {Name: "n", Email: "a@b.io", Role: "OWNER"},
		"long email":     {Name: "n", Email: strings.Repeat("e", 251) + "@b.io"},
	}

	for name, params := range cases {
		_, err := NewUser("id", params, time.Now())
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: expected *ValidationError, got %v", name, err)
		}
	}
}

func TestRestoreUser(t *testing.T) {
	s := UserSnapshot{ID: "u", Name: "n", Email: "n@x.io", Role: UserRoleViewer}
	if got := RestoreUser(s).Snapshot(); got != s {
		t.Fatalf("got %+v, want %+v", got, s)
	}
}
