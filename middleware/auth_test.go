package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClerkJWT mints a syntactically valid JWT signed with a throwaway
// key. It always fails Clerk verification, which is what the rejection
// tests need.
func mockClerkJWT(t *testing.T, clerkID string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub": clerkID,
		"iss": "https://clerk.test",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"azp": "test-app-id",
		"sid": "sess_test123",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret-key-for-testing-only"))
	require.NoError(t, err)
	return signed
}

func runAuthMiddleware(t *testing.T, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/stats", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	rr := httptest.NewRecorder()
	ClerkAuthMiddleware(next).ServeHTTP(rr, req)
	return rr
}

func TestClerkAuthMiddleware_MissingHeader(t *testing.T) {
	rr := runAuthMiddleware(t, "")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Authorization header required", body["error"])
}

func TestClerkAuthMiddleware_NotBearer(t *testing.T) {
	rr := runAuthMiddleware(t, "Token abc123")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "Bearer")
}

func TestClerkAuthMiddleware_UnverifiableToken(t *testing.T) {
	// Signed with a key Clerk does not know, so verification must fail.
	token := mockClerkJWT(t, "user_test_123")
	rr := runAuthMiddleware(t, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Invalid token", body["error"])
}

func TestGetClerkID(t *testing.T) {
	ctx := context.WithValue(context.Background(), ClerkIDKey, "user_abc")

	clerkID, ok := GetClerkID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "user_abc", clerkID)

	_, ok = GetClerkID(context.Background())
	assert.False(t, ok)
}
