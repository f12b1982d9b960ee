package domain

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	for _, s := range []string{"admin", "client"} {
		r, err := ParseRole(s)
		if err != nil {
			t.Fatalf("ParseRole(%q) error: %v", s, err)
		}
		if string(r) != s {
			t.Fatalf("expected %q, got %q", s, r)
		}
	}

	if _, err := ParseRole("guest"); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
	if _, err := ParseRole(""); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole for empty role, got %v", err)
	}
}

func TestUnmarshalSnapshot_Valid(t *testing.T) {
	s, err := UnmarshalSnapshot(`{"id":"1","name":"Allan Smith","email":"a@b.com","role":"admin","avatar":"/avatar.png"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Email != "a@b.com" || s.Role != RoleAdmin || s.Name != "Allan Smith" {
		t.Fatalf("unexpected session: %+v", s)
	}
}

func TestUnmarshalSnapshot_Corrupt(t *testing.T) {
	cases := map[string]string{
		"not json":     "definitely-not-json",
		"array":        `[1,2,3]`,
		"unknown role": `{"id":"1","name":"x","email":"x@y.z","role":"root"}`,
		"truncated":    `{"id":"1","name":`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := UnmarshalSnapshot(raw); !errors.Is(err, ErrCorruptSnapshot) {
				t.Fatalf("expected ErrCorruptSnapshot, got %v", err)
			}
		})
	}
}

func TestSession_Initial(t *testing.T) {
	s := &Session{Name: "Allan Smith"}
	if s.Initial() != "A" {
		t.Fatalf("expected A, got %q", s.Initial())
	}
	if (&Session{}).Initial() != "" {
		t.Fatalf("expected empty initial for empty name")
	}
}

func TestSession_CloneIsIndependent(t *testing.T) {
	orig := &Session{ID: "1", Name: "Client User", Role: RoleClient}
	c := orig.Clone()
	c.Name = "changed"
	if orig.Name != "Client User" {
		t.Fatalf("clone mutated original")
	}
	var nilSession *Session
	if nilSession.Clone() != nil {
		t.Fatalf("nil clone should stay nil")
	}
}
