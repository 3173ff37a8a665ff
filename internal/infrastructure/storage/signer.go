package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// URLSigner issues and verifies the HS256 tokens that back signed URLs.
// The token carries the object path and expiry, so a signed URL grants
// access to exactly one object for a bounded time.
type URLSigner struct {
	secret []byte
}

func NewURLSigner(secret string) *URLSigner {
	return &URLSigner{secret: []byte(secret)}
}

// Sign returns a token granting access to path until expiresIn elapses.
func (s *URLSigner) Sign(path string, expiresIn time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"url": path,
		"exp": time.Now().Add(expiresIn).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign url token: %w", err)
	}
	return token, nil
}

// Verify checks the token and returns the object path it grants access to.
func (s *URLSigner) Verify(token string) (string, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", errors.New("invalid or expired url token")
	}

	path, _ := claims["url"].(string)
	if path == "" {
		return "", errors.New("url token missing path")
	}
	return path, nil
}
