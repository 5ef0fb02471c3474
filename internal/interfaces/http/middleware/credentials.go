package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// CredentialKind discriminates what was presented
type CredentialKind string

const (
	CredentialJWT    CredentialKind = "jwt"
	CredentialAPIKey CredentialKind = "api_key"
	// CredentialMalformed marks an Authorization header with an unknown
	// scheme: presented but unusable, distinct from absent
	CredentialMalformed CredentialKind = "malformed"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// APIKeyHeader is the dedicated API key header
	APIKeyHeader = "X-API-Key"
	// APIKeyQueryParam is the query fallback for clients that cannot set headers
	APIKeyQueryParam = "api_key"
	// BearerPrefix marks a session token in the Authorization header
	BearerPrefix = "Bearer "
	// APIKeyPrefix marks an API key in the Authorization header
	APIKeyPrefix = "ApiKey "
)

// Credential is one extracted credential. FromQuery marks the query-string
// fallback, which is logged as less trusted since URLs leak into proxies
// and access logs.
type Credential struct {
	Kind      CredentialKind
	Value     string
	FromQuery bool
}

// ExtractCredential pulls at most one credential from the request, in
// precedence order: X-API-Key header, then the Authorization header
// (Bearer or ApiKey scheme), then the api_key query parameter. The first
// source that yields anything wins; later sources are not consulted even
// if the first value turns out to be garbage.
func ExtractCredential(c *gin.Context) (Credential, bool) {
	if key := c.GetHeader(APIKeyHeader); key != "" {
		return Credential{Kind: CredentialAPIKey, Value: key}, true
	}

	if authHeader := c.GetHeader(AuthorizationHeader); authHeader != "" {
		switch {
		case strings.HasPrefix(authHeader, BearerPrefix):
			return Credential{Kind: CredentialJWT, Value: strings.TrimPrefix(authHeader, BearerPrefix)}, true
		case strings.HasPrefix(authHeader, APIKeyPrefix):
			return Credential{Kind: CredentialAPIKey, Value: strings.TrimPrefix(authHeader, APIKeyPrefix)}, true
		}
		return Credential{Kind: CredentialMalformed}, true
	}

	if key := c.Query(APIKeyQueryParam); key != "" {
		return Credential{Kind: CredentialAPIKey, Value: key, FromQuery: true}, true
	}

	return Credential{}, false
}
