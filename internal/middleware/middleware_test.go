package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"memoir/internal/domain"
	"memoir/internal/domain/models"
	"memoir/internal/httputil"
)

type stubVerifier struct {
	valid map[string]string
}

func (s stubVerifier) VerifyToken(token string) (*models.SupabaseClaims, error) {
	sub, ok := s.valid[token]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return &models.SupabaseClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: sub}, Role: "authenticated"}, nil
}

func (stubVerifier) Close() error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(httputil.GetUserID(r)))
	})
}

func TestAuthMiddleware(t *testing.T) {
	mw := AuthMiddleware(stubVerifier{valid: map[string]string{"good": "user-1"}}, testLogger())(echoUser())

	tests := []struct {
		name       string
		method     string
		target     string
		header     string
		wantStatus int
		wantUser   string
	}{
		{"bearer token", http.MethodGet, "/api/entries", "Bearer good", http.StatusOK, "user-1"},
		{"lowercase scheme", http.MethodGet, "/api/entries", "bearer good", http.StatusOK, "user-1"},
		{"missing token", http.MethodGet, "/api/entries", "", http.StatusUnauthorized, ""},
		{"bad token", http.MethodGet, "/api/entries", "Bearer bad", http.StatusUnauthorized, ""},
		{"basic scheme", http.MethodGet, "/api/entries", "Basic good", http.StatusUnauthorized, ""},
		{"stream query token", http.MethodGet, "/api/reflections/stream?access_token=good", "", http.StatusOK, "user-1"},
		{"query token elsewhere", http.MethodGet, "/api/entries?access_token=good", "", http.StatusUnauthorized, ""},
		{"health is public", http.MethodGet, "/health", "", http.StatusOK, ""},
		{"preflight is public", http.MethodOptions, "/api/entries", "", http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			mw.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantUser, rec.Body.String())
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	h := Recovery(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(errors.New("boom"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/entries", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}
