package middleware

import (
	"errors"

	"autoserve.backend/internal/domain/entities"
	domainerrors "autoserve.backend/internal/domain/errors"
	"autoserve.backend/internal/interfaces/http/response"
	"autoserve.backend/internal/usecases"
	"autoserve.backend/pkg/crypto"
	"autoserve.backend/pkg/jwt"
	"autoserve.backend/pkg/logger"
	"autoserve.backend/pkg/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// PrincipalKey is the context key for the authenticated principal
	PrincipalKey = "principal"
)

// AuthGateway is the single admission point for protected routes. Every
// request walks the same ladder: extract exactly one credential, verify
// it, then rate-limit machine clients. Any store failure on this path
// refuses the request; the gateway never admits on doubt.
type AuthGateway struct {
	tokenService *jwt.TokenService
	apiKeys      *usecases.ApiKeyUsecase
	rateLimiter  *redis.RateLimiter
	rateEnabled  bool
}

// NewAuthGateway creates a new auth gateway
func NewAuthGateway(
	tokenService *jwt.TokenService,
	apiKeys *usecases.ApiKeyUsecase,
	rateLimiter *redis.RateLimiter,
	rateEnabled bool,
) *AuthGateway {
	return &AuthGateway{
		tokenService: tokenService,
		apiKeys:      apiKeys,
		rateLimiter:  rateLimiter,
		rateEnabled:  rateEnabled,
	}
}

// Handler authenticates the request and attaches the principal
func (g *AuthGateway) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		cred, ok := ExtractCredential(c)
		if !ok {
			response.AbortError(c, domainerrors.Unauthorized("authentication required"))
			return
		}

		var principal *entities.Principal
		switch cred.Kind {
		case CredentialJWT:
			claims, err := g.tokenService.ValidateToken(cred.Value)
			if err != nil {
				logger.Debug(c.Request.Context(), "token rejected",
					zap.String("credential", crypto.TruncateCredential(cred.Value)),
					zap.String("path", c.Request.URL.Path),
					zap.Error(err))
				if errors.Is(err, jwt.ErrExpiredToken) {
					response.AbortError(c, domainerrors.Unauthorized("token has expired"))
					return
				}
				response.AbortError(c, domainerrors.Unauthorized("invalid token"))
				return
			}
			principal = &entities.Principal{
				Kind:   entities.PrincipalUser,
				UserID: claims.UserID,
				Email:  claims.Email,
				Role:   entities.UserRole(claims.Role),
			}

		case CredentialAPIKey:
			if cred.FromQuery {
				logger.Warn(c.Request.Context(), "api key presented via query string",
					zap.String("key", crypto.TruncateCredential(cred.Value)),
					zap.String("path", c.Request.URL.Path))
			}
			p, err := g.apiKeys.Resolve(c.Request.Context(), cred.Value)
			if err != nil {
				logger.Info(c.Request.Context(), "api key rejected",
					zap.String("key", crypto.TruncateCredential(cred.Value)),
					zap.String("path", c.Request.URL.Path))
				response.AbortError(c, err)
				return
			}
			principal = p

			if g.rateEnabled && g.rateLimiter != nil {
				_, err := g.rateLimiter.Admit(c.Request.Context(), "key:"+principal.KeyName, principal.RateLimit)
				if err != nil {
					if errors.Is(err, redis.ErrRateLimitExceeded) {
						response.AbortError(c, domainerrors.RateLimited(principal.RateLimit))
						return
					}
					// Admission counters are part of the decision;
					// an unreachable limiter refuses rather than admits.
					logger.Error(c.Request.Context(), "rate limiter unavailable", zap.Error(err))
					response.AbortError(c, domainerrors.ServiceUnavailable("rate limiter unavailable"))
					return
				}
			}

		default:
			response.AbortError(c, domainerrors.Unauthorized("invalid authorization format"))
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// GetPrincipal gets the authenticated principal from context
func GetPrincipal(c *gin.Context) (*entities.Principal, bool) {
	v, exists := c.Get(PrincipalKey)
	if !exists {
		return nil, false
	}
	principal, ok := v.(*entities.Principal)
	return principal, ok
}

// RequirePermission refuses API key principals lacking perm. User sessions
// pass; their access is governed by role checks instead.
func RequirePermission(perm string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			response.AbortError(c, domainerrors.Unauthorized("authentication required"))
			return
		}
		if !principal.HasPermission(perm) {
			response.AbortError(c, domainerrors.Forbidden("missing permission: "+perm))
			return
		}
		c.Next()
	}
}

// RequireRole refuses principals that are not user sessions holding one of
// the given roles
func RequireRole(roles ...entities.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			response.AbortError(c, domainerrors.Unauthorized("authentication required"))
			return
		}
		if principal.Kind != entities.PrincipalUser {
			response.AbortError(c, domainerrors.Forbidden("staff session required"))
			return
		}
		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}
		response.AbortError(c, domainerrors.Forbidden("insufficient role"))
	}
}

// RequireAdmin requires the ADMIN role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(entities.UserRoleAdmin)
}
