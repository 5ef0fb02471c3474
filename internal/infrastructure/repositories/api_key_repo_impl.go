package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"autoserve.backend/internal/domain/entities"
	domainerrors "autoserve.backend/internal/domain/errors"
	"autoserve.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApiKeyRepository implements API key data operations
type ApiKeyRepository struct {
	db *gorm.DB
}

// NewApiKeyRepository creates a new API key repository
func NewApiKeyRepository(db *gorm.DB) *ApiKeyRepository {
	return &ApiKeyRepository{db: db}
}

// Create creates a new API key record
func (r *ApiKeyRepository) Create(ctx context.Context, apiKey *entities.ApiKey) error {
	perms, err := json.Marshal(apiKey.Permissions)
	if err != nil {
		return err
	}
	if apiKey.ID == uuid.Nil {
		apiKey.ID = uuid.New()
	}

	m := &models.ApiKey{
		ID:           apiKey.ID,
		Name:         apiKey.Name,
		KeyPrefix:    apiKey.KeyPrefix,
		KeyHash:      apiKey.KeyHash,
		SecretMasked: apiKey.SecretMasked,
		Permissions:  string(perms),
		RateLimit:    apiKey.RateLimit,
		IsActive:     apiKey.IsActive,
		CreatedBy:    apiKey.CreatedBy,
		CreatedAt:    apiKey.CreatedAt,
		UpdatedAt:    apiKey.UpdatedAt,
	}

	return r.db.WithContext(ctx).Create(m).Error
}

// FindByKeyHash finds a key by its hash. Inactive keys are returned too so
// callers can distinguish "unknown key" from "revoked key".
func (r *ApiKeyRepository) FindByKeyHash(ctx context.Context, keyHash string) (*entities.ApiKey, error) {
	var m models.ApiKey
	if err := r.db.WithContext(ctx).Where("key_hash = ?", keyHash).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return apiKeyToEntity(&m)
}

// FindByID finds a key by ID
func (r *ApiKeyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.ApiKey, error) {
	var m models.ApiKey
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return apiKeyToEntity(&m)
}

// List lists all keys, newest first
func (r *ApiKeyRepository) List(ctx context.Context) ([]*entities.ApiKey, error) {
	var keyModels []models.ApiKey
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&keyModels).Error; err != nil {
		return nil, err
	}

	var keys []*entities.ApiKey
	for _, m := range keyModels {
		model := m
		key, err := apiKeyToEntity(&model)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// Deactivate marks a key inactive. Keys are never deleted on revocation so
// analytics history keyed by name survives.
func (r *ApiKeyRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&models.ApiKey{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// TouchLastUsed records a successful use. Concurrent touches race
// harmlessly: last write wins on a monotonically-informative timestamp.
func (r *ApiKeyRepository) TouchLastUsed(ctx context.Context, id uuid.UUID, usedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&models.ApiKey{}).
		Where("id = ?", id).
		Update("last_used_at", usedAt).Error
}

func apiKeyToEntity(m *models.ApiKey) (*entities.ApiKey, error) {
	var perms []string
	if m.Permissions != "" {
		if err := json.Unmarshal([]byte(m.Permissions), &perms); err != nil {
			return nil, err
		}
	}

	return &entities.ApiKey{
		ID:           m.ID,
		Name:         m.Name,
		KeyPrefix:    m.KeyPrefix,
		KeyHash:      m.KeyHash,
		SecretMasked: m.SecretMasked,
		Permissions:  perms,
		RateLimit:    m.RateLimit,
		IsActive:     m.IsActive,
		CreatedBy:    m.CreatedBy,
		LastUsedAt:   m.LastUsedAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}
