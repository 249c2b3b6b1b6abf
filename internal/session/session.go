// Package session tracks the privilege level of the interactive session.
//
// A Session starts as RoleUser. Demotion is free; promotion to RoleAdmin
// requires the supplied password to match the stored credential.
package session

import (
	"bytes"
	"context"
	"crypto/subtle"

	"github.com/dmitrijs2005/dbkeeper/internal/common"
	"github.com/dmitrijs2005/dbkeeper/internal/secret"
	"github.com/google/uuid"
)

// Role is a privilege level.
type Role int

const (
	RoleUser Role = iota
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	default:
		return "user"
	}
}

// ParseRole maps a username to its role. Anything other than "user" or
// "admin" is rejected with common.ErrUnknownUser.
func ParseRole(name string) (Role, error) {
	switch name {
	case "user":
		return RoleUser, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return RoleUser, common.ErrUnknownUser
	}
}

// Session holds the current role for the lifetime of the process.
type Session struct {
	id    string
	role  Role
	creds CredentialSource
}

// New returns a session in RoleUser that verifies admin requests against
// creds.
func New(creds CredentialSource) *Session {
	return &Session{
		id:    uuid.NewString(),
		role:  RoleUser,
		creds: creds,
	}
}

// ID identifies the session in logs.
func (s *Session) ID() string { return s.id }

// Role returns the current role.
func (s *Session) Role() Role { return s.role }

// IsAdmin reports whether privileged commands are allowed.
func (s *Session) IsAdmin() bool { return s.role == RoleAdmin }

// SwitchToUser drops to RoleUser unconditionally.
func (s *Session) SwitchToUser() {
	s.role = RoleUser
}

// CheckCredentials reports whether the credential can be loaded. The loaded
// copy is released at once; callers use it to fail before prompting.
func (s *Session) CheckCredentials(ctx context.Context) error {
	cred, err := s.creds.Load(ctx)
	if err != nil {
		return err
	}
	return cred.Close()
}

// RequestAdmin promotes the session to RoleAdmin if supplied, cut at the
// first CR or LF, equals the stored credential. The credential is compared
// as a NUL-terminated string within its CredentialSize window.
//
// An empty credential never matches. supplied is zeroed before returning,
// whatever the outcome. On mismatch the role is left unchanged and
// common.ErrWrongPassword is returned; if the credential cannot be loaded
// the error wraps common.ErrCredentialUnavailable.
func (s *Session) RequestAdmin(ctx context.Context, supplied []byte) error {
	defer secret.Zero(supplied)

	cred, err := s.creds.Load(ctx)
	if err != nil {
		return err
	}
	defer cred.Close()

	want := cred.Bytes()
	if i := bytes.IndexByte(want, 0); i >= 0 {
		want = want[:i]
	}
	got := supplied
	if i := bytes.IndexAny(got, "\r\n"); i >= 0 {
		got = got[:i]
	}

	if len(want) == 0 || subtle.ConstantTimeCompare(got, want) != 1 {
		return common.ErrWrongPassword
	}
	s.role = RoleAdmin
	return nil
}
