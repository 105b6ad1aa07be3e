package authsupport

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"math/big"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/cache"
)

const (
	codePrefix      = "verify:"
	resetTokenChars = "abcdefghijklmnopqrstuvwxyz0123456789"
	resetTokenLen   = 26
)

// CodeStore keeps one pending verification code per email, expiring after ttl.
type CodeStore struct {
	store cache.Store
	ttl   time.Duration
}

func NewCodeStore(store cache.Store, ttl time.Duration) *CodeStore {
	return &CodeStore{store: store, ttl: ttl}
}

func codeKey(email string) string {
	return codePrefix + strings.ToLower(strings.TrimSpace(email))
}

// Put replaces any code pending for email.
func (s *CodeStore) Put(ctx context.Context, email, code string) error {
	return s.store.Set(ctx, codeKey(email), []byte(code), s.ttl)
}

// Consume checks code against the pending one and deletes it on a match, so
// a code verifies at most once.
func (s *CodeStore) Consume(ctx context.Context, email, code string) error {
	key := codeKey(email)
	stored, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, cache.ErrMiss) {
			return ErrInvalidCode
		}
		return err
	}
	if subtle.ConstantTimeCompare(stored, []byte(strings.TrimSpace(code))) != 1 {
		return ErrInvalidCode
	}
	return s.store.Delete(ctx, key)
}

// NewVerificationCode returns a 4-digit code in [1000, 9999].
func NewVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return big.NewInt(0).Add(n, big.NewInt(1000)).String(), nil
}

// NewResetToken returns a random lowercase alphanumeric token.
func NewResetToken() (string, error) {
	alphabet := big.NewInt(int64(len(resetTokenChars)))
	b := make([]byte, resetTokenLen)
	for i := range b {
		n, err := rand.Int(rand.Reader, alphabet)
		if err != nil {
			return "", err
		}
		b[i] = resetTokenChars[n.Int64()]
	}
	return string(b), nil
}
