// Package apikey implements opaque API key issuance and validation for the
// public API surface. Raw keys are shown once at creation; only a sha256
// hash is stored.
package apikey

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	PrefixLive = "dk_live_"
	PrefixTest = "dk_test_"

	randomBytes = 32
	// Stored identification prefix, e.g. "dk_live_xxxx...".
	prefixChars = 12

	// ScopeAll grants every operation.
	ScopeAll = "*"
)

// ErrNotFound is returned when a key id does not exist.
var ErrNotFound = errors.New("api key not found")

// Key is a stored API key record. The raw secret never appears here.
type Key struct {
	ID         uint       `json:"id"`
	Name       string     `json:"name"`
	KeyHash    string     `json:"-"`
	KeyPrefix  string     `json:"key_prefix"`
	IsActive   bool       `json:"is_active"`
	Scopes     string     `json:"scopes"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ScopeList splits the stored comma separated scopes.
func (k *Key) ScopeList() []string {
	parts := strings.Split(k.Scopes, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Allows reports whether the key grants the named scope.
func (k *Key) Allows(scope string) bool {
	for _, s := range k.ScopeList() {
		if s == ScopeAll || s == scope {
			return true
		}
	}
	return false
}

// Identity is the authenticated principal attached to a request.
type Identity struct {
	KeyID  uint
	Name   string
	Scopes []string
}

// Repository is the persistence boundary for API keys.
type Repository interface {
	Create(ctx context.Context, k *Key) error
	FindByHash(ctx context.Context, hash string) (*Key, error)
	FindByID(ctx context.Context, id uint) (*Key, error)
	List(ctx context.Context, offset, limit int) ([]Key, int64, error)
	Update(ctx context.Context, k *Key) error
	TouchLastUsed(ctx context.Context, id uint, at time.Time) error
	Delete(ctx context.Context, id uint) error
}

// GenerateKey produces a new raw key with the live or test prefix.
func GenerateKey(isTest bool) (string, error) {
	prefix := PrefixLive
	if isTest {
		prefix = PrefixTest
	}
	buf := make([]byte, randomBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate key material: %w", err)
	}
	return prefix + base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashKey returns the hex sha256 digest stored and looked up for a raw key.
func HashKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// DisplayPrefix is the truncated identifier kept alongside the hash.
func DisplayPrefix(raw string) string {
	if len(raw) <= prefixChars {
		return raw + "..."
	}
	return raw[:prefixChars] + "..."
}
