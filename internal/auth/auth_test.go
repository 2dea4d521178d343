package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memoir/internal/domain"
	"memoir/internal/domain/models"
)

const testKID = "test-key"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testVerifier(t *testing.T) (*SupabaseJWTVerifier, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	jwks := fmt.Sprintf(`{"keys":[{"kty":"RSA","kid":%q,"alg":"RS256","use":"sig","n":%q,"e":%q}]}`,
		testKID,
		base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
		base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
	)
	kf, err := keyfunc.NewJWKSetJSON(json.RawMessage(jwks))
	require.NoError(t, err)

	return newVerifier(kf, testLogger()), key
}

func sign(t *testing.T, key *rsa.PrivateKey, claims models.SupabaseClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = testKID
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func claimsFor(sub, role string, expiresIn time.Duration) models.SupabaseClaims {
	return models.SupabaseClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
		Role: role,
	}
}

func TestVerifyToken(t *testing.T) {
	v, key := testVerifier(t)
	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantSub string
	}{
		{"valid user", sign(t, key, claimsFor("user-1", "authenticated", time.Hour)), "user-1"},
		{"expired", sign(t, key, claimsFor("user-1", "authenticated", -time.Hour)), ""},
		{"anon role", sign(t, key, claimsFor("user-1", "anon", time.Hour)), ""},
		{"missing subject", sign(t, key, claimsFor("", "authenticated", time.Hour)), ""},
		{"wrong key", sign(t, other, claimsFor("user-1", "authenticated", time.Hour)), ""},
		{"garbage", "not.a.token", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := v.VerifyToken(tt.token)
			if tt.wantSub == "" {
				assert.ErrorIs(t, err, domain.ErrUnauthorized)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSub, claims.GetUserID())
		})
	}
}

func TestVerifyToken_RejectsHMAC(t *testing.T) {
	v, _ := testVerifier(t)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claimsFor("user-1", "authenticated", time.Hour))
	token.Header["kid"] = testKID
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = v.VerifyToken(signed)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAdminClient_EnsureUser(t *testing.T) {
	var created []CreateUserRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))
		assert.Equal(t, "service-key", r.Header.Get("apikey"))

		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(listUsersResponse{Users: []User{{ID: "existing-id", Email: "old@example.com"}}})
		case http.MethodPost:
			var req CreateUserRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			created = append(created, req)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(User{ID: "new-id", Email: req.Email})
		}
	}))
	defer srv.Close()

	c := NewAdminClient(srv.URL, "service-key")

	id, err := c.EnsureUser(context.Background(), "old@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "existing-id", id)
	assert.Empty(t, created)

	id, err = c.EnsureUser(context.Background(), "demo@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "new-id", id)
	require.Len(t, created, 1)
	assert.True(t, created[0].EmailConfirm)
}

func TestAdminClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewAdminClient(srv.URL, "bad").EnsureUser(context.Background(), "a@example.com", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserNotFound)
	assert.Contains(t, err.Error(), "403")
}
