package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

const (
	// APIKeyPrefix is prepended to every generated API key
	APIKeyPrefix = "ask_live_"
)

// GenerateAPIKey generates a new raw API key. The raw value is shown to the
// caller exactly once; only its hash is ever persisted.
func GenerateAPIKey() (string, error) {
	raw, err := GenerateRandomToken(16)
	if err != nil {
		return "", err
	}
	return APIKeyPrefix + raw, nil
}

// HashAPIKey computes the one-way SHA-256 hash used for API key lookups
func HashAPIKey(rawKey string) string {
	sum := sha256.Sum256([]byte(rawKey))
	return hex.EncodeToString(sum[:])
}

// MaskAPIKey returns a masked representation safe for listings ("****abcd")
func MaskAPIKey(rawKey string) string {
	if len(rawKey) < 4 {
		return "****"
	}
	return "****" + rawKey[len(rawKey)-4:]
}

// TruncateCredential returns a short prefix of a credential safe for logs.
// Raw credentials must never appear in full in diagnostics.
func TruncateCredential(value string) string {
	if len(value) <= 8 {
		return value
	}
	return value[:8] + "..."
}
