// Package auth implements the fixed-credential login used by the CLI. It is
// an identity check only (who is acting and in which role), not a session
// system; the process serves exactly one login per run.
package auth

import (
	"crypto/subtle"
	"errors"

	"github.com/sttnf/project-DDP/pkg/config"
)

// Role distinguishes what the menu layer lets an identity do.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ErrInvalidCredentials indicates the username/password pair matched no account.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Identity is the authenticated actor. Username is the identity recorded on
// transactions; Role selects the menu.
type Identity struct {
	Username string
	Role     Role
}

type account struct {
	password string
	role     Role
}

// CredentialStore resolves username/password pairs to identities.
type CredentialStore struct {
	accounts map[string]account
}

// NewCredentialStore builds the store from the two configured accounts.
func NewCredentialStore(cfg *config.Config) *CredentialStore {
	return &CredentialStore{accounts: map[string]account{
		cfg.AdminUsername: {password: cfg.AdminPassword, role: RoleAdmin},
		cfg.UserUsername:  {password: cfg.UserPassword, role: RoleUser},
	}}
}

// Login checks the pair against the configured accounts and returns the
// matching Identity. Password comparison is constant-time.
func (s *CredentialStore) Login(username, password string) (Identity, error) {
	acct, ok := s.accounts[username]
	if !ok {
		// burn a comparison anyway so unknown usernames cost the same
		subtle.ConstantTimeCompare([]byte(password), []byte(password))
		return Identity{}, ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(acct.password)) != 1 {
		return Identity{}, ErrInvalidCredentials
	}
	return Identity{Username: username, Role: acct.role}, nil
}
