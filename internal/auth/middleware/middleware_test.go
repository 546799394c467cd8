package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provanota/provanota-backend/internal/rbac"
)

func TestIssueAndParseRoundTrip(t *testing.T) {
	a := NewAuthService("test-secret")
	token, err := a.IssueJWT("user-1", "student")
	require.NoError(t, err)

	claims, err := a.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Sub)
	assert.Equal(t, "student", claims.Role)
	assert.Equal(t, "provanota", claims.Issuer)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewAuthService("secret-a").IssueJWT("user-1", "student")
	require.NoError(t, err)

	_, err = NewAuthService("secret-b").Parse(token)
	assert.Error(t, err)
}

func TestJWTMiddleware(t *testing.T) {
	a := NewAuthService("test-secret")
	var gotPrincipal Principal
	var gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPrincipal, _ = PrincipalFromContext(r.Context())
		gotRole = rbac.RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := JWTMiddleware(a)(next)

	// No header.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Garbage token.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid token populates principal and role.
	token, err := a.IssueJWT("user-1", "admin")
	require.NoError(t, err)
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, Principal{ID: "user-1", Role: "admin"}, gotPrincipal)
	assert.Equal(t, "admin", gotRole)
}
