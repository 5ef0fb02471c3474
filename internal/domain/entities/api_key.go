package entities

import (
	"time"

	"github.com/google/uuid"
)

// ApiKey represents a machine-client API key. The raw key is never stored;
// lookups hash the presented value and match on KeyHash. Revocation flips
// IsActive instead of deleting the row so analytics history survives.
type ApiKey struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	KeyPrefix    string     `json:"keyPrefix"`
	KeyHash      string     `json:"-"`
	SecretMasked string     `json:"secretMasked"`
	Permissions  []string   `json:"permissions"`
	RateLimit    int        `json:"rateLimit"`
	IsActive     bool       `json:"isActive"`
	CreatedBy    uuid.UUID  `json:"createdBy"`
	LastUsedAt   *time.Time `json:"lastUsedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    *time.Time `json:"-"`
}

// Principal builds the machine principal carried by admitted requests
func (k *ApiKey) Principal() *Principal {
	return &Principal{
		Kind:        PrincipalAPIKey,
		KeyName:     k.Name,
		Permissions: k.Permissions,
		RateLimit:   k.RateLimit,
	}
}

// CreateApiKeyInput represents input for creating an API key
type CreateApiKeyInput struct {
	Name        string   `json:"name" binding:"required"`
	Permissions []string `json:"permissions"`
	RateLimit   int      `json:"rateLimit"`
}

// CreateApiKeyResponse carries the raw key, shown exactly once
type CreateApiKeyResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ApiKey    string    `json:"apiKey"`
	CreatedAt time.Time `json:"createdAt"`
}
