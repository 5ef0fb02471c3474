package usecases

import (
	"context"
	"errors"
	"time"

	"autoserve.backend/internal/config"
	"autoserve.backend/internal/domain/entities"
	domainerrors "autoserve.backend/internal/domain/errors"
	"autoserve.backend/internal/domain/repositories"
	"autoserve.backend/pkg/crypto"
	"autoserve.backend/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// keyResolver is one source of API key records. Resolvers are tried in
// order; each either finds a record for the hash or reports not-found.
type keyResolver interface {
	resolve(ctx context.Context, keyHash string) (*entities.ApiKey, bool, error)
}

// dbResolver resolves keys from the persistent store
type dbResolver struct {
	repo repositories.ApiKeyRepository
}

func (r *dbResolver) resolve(ctx context.Context, keyHash string) (*entities.ApiKey, bool, error) {
	key, err := r.repo.FindByKeyHash(ctx, keyHash)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return key, true, nil
}

// staticResolver resolves keys from the deployment-configured fallback
// list, used for bootstrap clients provisioned outside the database.
type staticResolver struct {
	keys []config.StaticAPIKey
}

func (r *staticResolver) resolve(_ context.Context, keyHash string) (*entities.ApiKey, bool, error) {
	for _, k := range r.keys {
		if k.KeyHash == keyHash {
			return &entities.ApiKey{
				Name:        k.Name,
				KeyHash:     k.KeyHash,
				Permissions: k.Permissions,
				RateLimit:   k.RateLimit,
				IsActive:    k.Active,
			}, true, nil
		}
	}
	return nil, false, nil
}

// ApiKeyUsecase resolves presented API keys to principals and manages the
// key lifecycle. Keys are deactivated on revocation, never deleted.
type ApiKeyUsecase struct {
	apiKeyRepo   repositories.ApiKeyRepository
	resolvers    []keyResolver
	defaultLimit int
}

// NewApiKeyUsecase creates a new API key usecase. staticKeys is the
// injected fallback list; passing fixtures keeps tests hermetic.
func NewApiKeyUsecase(
	apiKeyRepo repositories.ApiKeyRepository,
	staticKeys []config.StaticAPIKey,
	defaultRateLimit int,
) *ApiKeyUsecase {
	return &ApiKeyUsecase{
		apiKeyRepo: apiKeyRepo,
		resolvers: []keyResolver{
			&dbResolver{repo: apiKeyRepo},
			&staticResolver{keys: staticKeys},
		},
		defaultLimit: defaultRateLimit,
	}
}

// Resolve authenticates a raw API key and returns the machine principal.
// The store is consulted first, then the static list. A store outage fails
// closed: the caller gets an explicit error, never a silent admit.
func (u *ApiKeyUsecase) Resolve(ctx context.Context, rawKey string) (*entities.Principal, error) {
	keyHash := crypto.HashAPIKey(rawKey)

	for _, resolver := range u.resolvers {
		key, found, err := resolver.resolve(ctx, keyHash)
		if err != nil {
			logger.Error(ctx, "api key lookup failed",
				zap.String("key", crypto.TruncateCredential(rawKey)),
				zap.Error(err))
			return nil, domainerrors.ServiceUnavailable("authentication store unavailable")
		}
		if !found {
			continue
		}

		if !key.IsActive {
			return nil, domainerrors.NewAppError(403, domainerrors.CodeForbidden, "api key is inactive", domainerrors.ErrAPIKeyInactive)
		}

		// Touch last-used before responding; failures are harmless
		// (last-write-wins on a timestamp) and must not block auth.
		if key.ID != uuid.Nil {
			if err := u.apiKeyRepo.TouchLastUsed(ctx, key.ID, time.Now()); err != nil {
				logger.Warn(ctx, "failed to touch api key last_used_at", zap.Error(err))
			}
		}

		principal := key.Principal()
		if principal.RateLimit <= 0 {
			principal.RateLimit = u.defaultLimit
		}
		return principal, nil
	}

	return nil, domainerrors.NewAppError(401, domainerrors.CodeUnauthorized, "invalid api key", domainerrors.ErrInvalidAPIKey)
}

// CreateApiKey provisions a new key. The raw key appears in the response
// exactly once and is never persisted.
func (u *ApiKeyUsecase) CreateApiKey(ctx context.Context, createdBy uuid.UUID, input *entities.CreateApiKeyInput) (*entities.CreateApiKeyResponse, error) {
	rawKey, err := crypto.GenerateAPIKey()
	if err != nil {
		return nil, domainerrors.InternalServerError("failed to generate key")
	}

	rateLimit := input.RateLimit
	if rateLimit <= 0 {
		rateLimit = u.defaultLimit
	}

	entity := &entities.ApiKey{
		Name:         input.Name,
		KeyPrefix:    crypto.APIKeyPrefix,
		KeyHash:      crypto.HashAPIKey(rawKey),
		SecretMasked: crypto.MaskAPIKey(rawKey),
		Permissions:  input.Permissions,
		RateLimit:    rateLimit,
		IsActive:     true,
		CreatedBy:    createdBy,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := u.apiKeyRepo.Create(ctx, entity); err != nil {
		return nil, err
	}

	return &entities.CreateApiKeyResponse{
		ID:        entity.ID,
		Name:      entity.Name,
		ApiKey:    rawKey, // Shown once
		CreatedAt: entity.CreatedAt,
	}, nil
}

// ListApiKeys lists all keys with masked secrets
func (u *ApiKeyUsecase) ListApiKeys(ctx context.Context) ([]*entities.ApiKey, error) {
	return u.apiKeyRepo.List(ctx)
}

// RevokeApiKey deactivates a key
func (u *ApiKeyUsecase) RevokeApiKey(ctx context.Context, id uuid.UUID) error {
	return u.apiKeyRepo.Deactivate(ctx, id)
}
