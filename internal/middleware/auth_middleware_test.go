package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/DylanGreen12/TenantTrack-sub000/internal/models"
)

func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func runThroughMiddleware(key *rsa.PrivateKey, authHeader string) (*httptest.ResponseRecorder, *models.Actor) {
	var captured *models.Actor
	handler := AuthMiddleware(&key.PublicKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = ActorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leases", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, captured
}

func TestAuthMiddleware_ValidTokenResolvesActor(t *testing.T) {
	key := testKey(t)
	token := signToken(t, key, jwt.MapClaims{
		"sub":      "9f3a2c51-0a5e-4a6f-9f8e-8f5f3f2a1b00",
		"email":    "Terry@Example.com",
		"username": "terry",
		"roles":    []any{"Tenant"},
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	rec, actor := runThroughMiddleware(key, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, actor)
	require.Equal(t, models.ActorTenant, actor.Kind)
	require.Equal(t, "terry@example.com", actor.Email)
}

// Multi-role accounts resolve to the most privileged recognized role.
func TestAuthMiddleware_PicksMostPrivilegedRole(t *testing.T) {
	key := testKey(t)
	token := signToken(t, key, jwt.MapClaims{
		"sub":   "9f3a2c51-0a5e-4a6f-9f8e-8f5f3f2a1b00",
		"email": "pat@example.com",
		"roles": []any{"Tenant", "Landlord"},
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	rec, actor := runThroughMiddleware(key, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, models.ActorLandlord, actor.Kind)
}

func TestAuthMiddleware_MissingHeaderIs401(t *testing.T) {
	key := testKey(t)

	rec, actor := runThroughMiddleware(key, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Nil(t, actor)
}

func TestAuthMiddleware_ExpiredTokenIs401(t *testing.T) {
	key := testKey(t)
	token := signToken(t, key, jwt.MapClaims{
		"sub":   "9f3a2c51-0a5e-4a6f-9f8e-8f5f3f2a1b00",
		"email": "terry@example.com",
		"roles": []any{"Tenant"},
		"exp":   time.Now().Add(-time.Hour).Unix(),
	})

	rec, _ := runThroughMiddleware(key, "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "token_expired")
}

func TestAuthMiddleware_WrongKeyIs401(t *testing.T) {
	signingKey := testKey(t)
	verifyKey := testKey(t)
	token := signToken(t, signingKey, jwt.MapClaims{
		"sub":   "9f3a2c51-0a5e-4a6f-9f8e-8f5f3f2a1b00",
		"email": "terry@example.com",
		"roles": []any{"Tenant"},
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	rec, actor := runThroughMiddleware(verifyKey, "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Nil(t, actor)
}

// A token with no recognized role is rejected outright; there is no
// default actor kind to fall back to.
func TestAuthMiddleware_UnrecognizedRolesAreRejected(t *testing.T) {
	key := testKey(t)
	token := signToken(t, key, jwt.MapClaims{
		"sub":   "9f3a2c51-0a5e-4a6f-9f8e-8f5f3f2a1b00",
		"email": "terry@example.com",
		"roles": []any{"superuser"},
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	rec, actor := runThroughMiddleware(key, "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Nil(t, actor)
}
