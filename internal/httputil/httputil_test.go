package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError_ProblemDetail(t *testing.T) {
	tests := []struct {
		status   int
		wantType string
	}{
		{http.StatusPaymentRequired, "https://datatracker.ietf.org/doc/html/rfc7231#section-6.5.2"},
		{http.StatusTooManyRequests, "https://datatracker.ietf.org/doc/html/rfc6585#section-4"},
		{http.StatusBadGateway, "https://datatracker.ietf.org/doc/html/rfc7231#section-6.6.3"},
		{http.StatusTeapot, "about:blank"},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondError(rec, tt.status, "detail text")

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantType, body["type"])
			assert.Equal(t, "detail text", body["detail"])
			assert.EqualValues(t, tt.status, body["status"])
		})
	}
}

func TestRespondErrorWithExtras_FlattensExtras(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondErrorWithExtras(rec, http.StatusPaymentRequired, "usage limit reached", map[string]interface{}{"limit": 10})

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 10, body["limit"])
}

func TestOptionalString(t *testing.T) {
	var req struct {
		Intention OptionalString `json:"intention"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
	assert.False(t, req.Intention.Present)

	require.NoError(t, json.Unmarshal([]byte(`{"intention":null}`), &req))
	assert.True(t, req.Intention.Present)
	assert.Nil(t, req.Intention.Value)

	require.NoError(t, json.Unmarshal([]byte(`{"intention":"write daily"}`), &req))
	require.NotNil(t, req.Intention.Value)
	assert.Equal(t, "write daily", *req.Intention.Value)
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/stats/series?days=14&bad=x", nil)

	n, err := QueryInt(r, "days", 30)
	require.NoError(t, err)
	assert.Equal(t, 14, n)

	n, err = QueryInt(r, "missing", 30)
	require.NoError(t, err)
	assert.Equal(t, 30, n)

	_, err = QueryInt(r, "bad", 30)
	assert.Error(t, err)
}

func TestParseJSON(t *testing.T) {
	var dest struct {
		Content string `json:"content"`
	}
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"content":"hi"}`))
	require.NoError(t, ParseJSON(httptest.NewRecorder(), r, &dest))
	assert.Equal(t, "hi", dest.Content)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.Error(t, ParseJSON(httptest.NewRecorder(), r, &dest))
}

func TestUserIDContext(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", GetUserID(r))
	assert.Equal(t, "u1", GetUserID(WithUserID(r, "u1")))
}
