package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"praisetabernacle/internal/domain"
)

// DefaultCost is the bcrypt cost used by HashPassword.
const DefaultCost = 12

type bcryptAdmin struct {
	username string
	hash     []byte
}

// NewAdminAuthenticator returns an AdminAuthenticator for a single moderator account.
// passwordHash must be a bcrypt hash as produced by HashPassword.
func NewAdminAuthenticator(username, passwordHash string) (domain.AdminAuthenticator, error) {
	if username == "" {
		return nil, fmt.Errorf("admin username is empty")
	}
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, fmt.Errorf("invalid admin password hash: %w", err)
	}
	return &bcryptAdmin{username: username, hash: []byte(passwordHash)}, nil
}

func (a *bcryptAdmin) Authenticate(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	// Always run bcrypt so a wrong username costs the same as a wrong password.
	passOK := bcrypt.CompareHashAndPassword(a.hash, []byte(password)) == nil
	return userOK && passOK
}

// HashPassword returns the bcrypt hash of password at the given cost.
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
