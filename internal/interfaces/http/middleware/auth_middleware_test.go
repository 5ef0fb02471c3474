package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"autoserve.backend/internal/config"
	"autoserve.backend/internal/domain/entities"
	"autoserve.backend/internal/usecases"
	"autoserve.backend/pkg/crypto"
	"autoserve.backend/pkg/jwt"
	pkgredis "autoserve.backend/pkg/redis"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestTokenService() *jwt.TokenService {
	return jwt.NewTokenService("test-secret", "autoserve", "autoserve-api", time.Minute, time.Hour)
}

// gatewayFixture wires a gateway over in-memory backends. The probe route
// reports the principal the gateway attached.
type gatewayFixture struct {
	router    *gin.Engine
	keyRepo   *stubKeyRepo
	redisSrv  *miniredis.Miniredis
	principal *entities.Principal
}

func newGatewayFixture(t *testing.T, tokenService *jwt.TokenService, rateEnabled bool) *gatewayFixture {
	t.Helper()

	srv := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	f := &gatewayFixture{
		keyRepo:  newStubKeyRepo(),
		redisSrv: srv,
	}

	apiKeys := usecases.NewApiKeyUsecase(f.keyRepo, nil, 1000)
	gateway := NewAuthGateway(tokenService, apiKeys, pkgredis.NewRateLimiter(client), rateEnabled)

	f.router = gin.New()
	f.router.Use(gateway.Handler())
	f.router.GET("/probe", func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		require.True(t, ok)
		f.principal = principal
		c.Status(http.StatusNoContent)
	})
	return f
}

func (f *gatewayFixture) probe(header, value string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if header != "" {
		req.Header.Set(header, value)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *gatewayFixture) seedKey(name string, rateLimit int, active bool, perms ...string) string {
	rawKey := "ask_live_" + name + "0000000000000000"
	f.keyRepo.add(&entities.ApiKey{
		ID:          uuid.New(),
		Name:        name,
		KeyHash:     crypto.HashAPIKey(rawKey),
		Permissions: perms,
		RateLimit:   rateLimit,
		IsActive:    active,
	})
	return rawKey
}

func TestAuthGateway_NoCredential(t *testing.T) {
	f := newGatewayFixture(t, newTestTokenService(), false)

	w := f.probe("", "")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "authentication required")
}

func TestAuthGateway_BearerFlow(t *testing.T) {
	tokenService := newTestTokenService()
	f := newGatewayFixture(t, tokenService, false)

	t.Run("garbage token", func(t *testing.T) {
		w := f.probe(AuthorizationHeader, "Bearer not-a-token")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Contains(t, w.Body.String(), "invalid token")
	})

	t.Run("valid token attaches user principal", func(t *testing.T) {
		userID := uuid.New()
		pair, err := tokenService.GenerateTokenPair(userID, "advisor@autoserve.io", "ADMIN")
		require.NoError(t, err)

		w := f.probe(AuthorizationHeader, "Bearer "+pair.AccessToken)

		require.Equal(t, http.StatusNoContent, w.Code)
		require.NotNil(t, f.principal)
		require.Equal(t, entities.PrincipalUser, f.principal.Kind)
		require.Equal(t, userID, f.principal.UserID)
		require.Equal(t, "advisor@autoserve.io", f.principal.Email)
		require.Equal(t, entities.UserRoleAdmin, f.principal.Role)
	})
}

func TestAuthGateway_ExpiredToken(t *testing.T) {
	expired := jwt.NewTokenService("test-secret", "autoserve", "autoserve-api", -time.Second, time.Hour)
	f := newGatewayFixture(t, expired, false)

	pair, err := expired.GenerateTokenPair(uuid.New(), "advisor@autoserve.io", "USER")
	require.NoError(t, err)

	w := f.probe(AuthorizationHeader, "Bearer "+pair.AccessToken)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "token has expired")
}

func TestAuthGateway_MalformedScheme(t *testing.T) {
	f := newGatewayFixture(t, newTestTokenService(), false)

	w := f.probe(AuthorizationHeader, "Basic dXNlcjpwdw==")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "invalid authorization format")
}

func TestAuthGateway_APIKeyFlow(t *testing.T) {
	f := newGatewayFixture(t, newTestTokenService(), false)
	rawKey := f.seedKey("ops", 0, true, "bookings:read")

	t.Run("unknown key", func(t *testing.T) {
		w := f.probe(APIKeyHeader, "ask_live_nope")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Contains(t, w.Body.String(), "invalid api key")
	})

	t.Run("valid key attaches machine principal", func(t *testing.T) {
		w := f.probe(APIKeyHeader, rawKey)

		require.Equal(t, http.StatusNoContent, w.Code)
		require.NotNil(t, f.principal)
		require.Equal(t, entities.PrincipalAPIKey, f.principal.Kind)
		require.Equal(t, "ops", f.principal.KeyName)
		require.Equal(t, []string{"bookings:read"}, f.principal.Permissions)
		require.Len(t, f.keyRepo.touched, 1)
	})

	t.Run("via authorization scheme", func(t *testing.T) {
		w := f.probe(AuthorizationHeader, "ApiKey "+rawKey)
		require.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("via query fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe?api_key="+rawKey, nil)
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)
		require.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestAuthGateway_InactiveKey(t *testing.T) {
	f := newGatewayFixture(t, newTestTokenService(), false)
	rawKey := f.seedKey("retired", 0, false)

	w := f.probe(APIKeyHeader, rawKey)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "inactive")
	require.Empty(t, f.keyRepo.touched)
}

func TestAuthGateway_StoreOutageFailsClosed(t *testing.T) {
	f := newGatewayFixture(t, newTestTokenService(), false)
	rawKey := f.seedKey("ops", 0, true)
	f.keyRepo.err = context.DeadlineExceeded

	w := f.probe(APIKeyHeader, rawKey)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Contains(t, w.Body.String(), "authentication store unavailable")
}

func TestAuthGateway_RateLimitEnforced(t *testing.T) {
	f := newGatewayFixture(t, newTestTokenService(), true)
	rawKey := f.seedKey("dashboard", 2, true, entities.PermissionWildcard)

	require.Equal(t, http.StatusNoContent, f.probe(APIKeyHeader, rawKey).Code)
	require.Equal(t, http.StatusNoContent, f.probe(APIKeyHeader, rawKey).Code)

	w := f.probe(APIKeyHeader, rawKey)
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	// Still refused, and user sessions stay unaffected by key quotas.
	require.Equal(t, http.StatusTooManyRequests, f.probe(APIKeyHeader, rawKey).Code)
	pair, err := newTestTokenService().GenerateTokenPair(uuid.New(), "advisor@autoserve.io", "USER")
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, f.probe(AuthorizationHeader, "Bearer "+pair.AccessToken).Code)
}

func TestAuthGateway_LimiterOutageFailsClosed(t *testing.T) {
	f := newGatewayFixture(t, newTestTokenService(), true)
	rawKey := f.seedKey("dashboard", 10, true)

	f.redisSrv.Close()
	w := f.probe(APIKeyHeader, rawKey)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Contains(t, w.Body.String(), "rate limiter unavailable")
}

func TestAuthGateway_StaticFallbackKey(t *testing.T) {
	srv := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	rawKey := "ask_live_bootstrap000000000000000"
	apiKeys := usecases.NewApiKeyUsecase(newStubKeyRepo(), []config.StaticAPIKey{{
		KeyHash:     crypto.HashAPIKey(rawKey),
		Name:        "bootstrap",
		Permissions: []string{entities.PermissionWildcard},
		RateLimit:   5,
		Active:      true,
	}}, 1000)
	gateway := NewAuthGateway(newTestTokenService(), apiKeys, pkgredis.NewRateLimiter(client), false)

	r := gin.New()
	r.Use(gateway.Handler())
	r.GET("/probe", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(APIKeyHeader, rawKey)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
}
