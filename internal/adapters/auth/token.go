package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"praisetabernacle/internal/domain"
)

const csrfIssuer = "praisetabernacle"

type csrfClaims struct {
	jwt.RegisteredClaims
	Nonce string `json:"nonce"`
}

type csrfSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCSRFSigner returns a CSRFTokenManager that signs tokens with HS256.
// Each token embeds a random nonce that the caller stores in a cookie.
func NewCSRFSigner(secret string, ttl time.Duration) domain.CSRFTokenManager {
	return &csrfSigner{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *csrfSigner) Issue() (string, string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	nonce := hex.EncodeToString(buf)
	now := s.now()
	claims := csrfClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    csrfIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Nonce: nonce,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nonce, nil
}

func (s *csrfSigner) Verify(token, nonce string) error {
	if token == "" || nonce == "" {
		return domain.ErrForbidden
	}
	claims := &csrfClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(csrfIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrForbidden, err)
	}
	if subtle.ConstantTimeCompare([]byte(claims.Nonce), []byte(nonce)) != 1 {
		return fmt.Errorf("%w: %w", domain.ErrForbidden, errors.New("nonce mismatch"))
	}
	return nil
}
