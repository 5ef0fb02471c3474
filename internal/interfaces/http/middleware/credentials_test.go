package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestExtractCredential(t *testing.T) {
	cases := []struct {
		name      string
		target    string
		headers   map[string]string
		found     bool
		kind      CredentialKind
		value     string
		fromQuery bool
	}{
		{
			name:   "nothing presented",
			target: "/api/v1/bookings",
			found:  false,
		},
		{
			name:    "dedicated header",
			target:  "/api/v1/bookings",
			headers: map[string]string{APIKeyHeader: "ask_live_abc"},
			found:   true,
			kind:    CredentialAPIKey,
			value:   "ask_live_abc",
		},
		{
			name:    "bearer scheme",
			target:  "/api/v1/bookings",
			headers: map[string]string{AuthorizationHeader: "Bearer tok-123"},
			found:   true,
			kind:    CredentialJWT,
			value:   "tok-123",
		},
		{
			name:    "apikey scheme",
			target:  "/api/v1/bookings",
			headers: map[string]string{AuthorizationHeader: "ApiKey ask_live_abc"},
			found:   true,
			kind:    CredentialAPIKey,
			value:   "ask_live_abc",
		},
		{
			name:    "unknown scheme is malformed not absent",
			target:  "/api/v1/bookings",
			headers: map[string]string{AuthorizationHeader: "Basic dXNlcjpwdw=="},
			found:   true,
			kind:    CredentialMalformed,
		},
		{
			name:      "query fallback",
			target:    "/api/v1/bookings?api_key=ask_live_q",
			found:     true,
			kind:      CredentialAPIKey,
			value:     "ask_live_q",
			fromQuery: true,
		},
		{
			name:   "dedicated header beats authorization and query",
			target: "/api/v1/bookings?api_key=from-query",
			headers: map[string]string{
				APIKeyHeader:        "from-header",
				AuthorizationHeader: "Bearer from-auth",
			},
			found: true,
			kind:  CredentialAPIKey,
			value: "from-header",
		},
		{
			name:    "authorization beats query",
			target:  "/api/v1/bookings?api_key=from-query",
			headers: map[string]string{AuthorizationHeader: "Bearer from-auth"},
			found:   true,
			kind:    CredentialJWT,
			value:   "from-auth",
		},
		{
			name:    "malformed authorization still shadows the query key",
			target:  "/api/v1/bookings?api_key=ask_live_q",
			headers: map[string]string{AuthorizationHeader: "Digest nope"},
			found:   true,
			kind:    CredentialMalformed,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, tc.target, nil)
			for k, v := range tc.headers {
				c.Request.Header.Set(k, v)
			}

			cred, ok := ExtractCredential(c)

			require.Equal(t, tc.found, ok)
			if !tc.found {
				return
			}
			require.Equal(t, tc.kind, cred.Kind)
			require.Equal(t, tc.value, cred.Value)
			require.Equal(t, tc.fromQuery, cred.FromQuery)
		})
	}
}
