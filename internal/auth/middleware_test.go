package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedHandler(t *testing.T, wantUser string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserID(r.Context())
		require.True(t, ok)
		assert.Equal(t, wantUser, userID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware_ValidToken(t *testing.T) {
	verifier := NewStaticVerifier(map[string]string{"tok-1": "user-1"})
	h := Middleware(verifier)(protectedHandler(t, "user-1"))

	req := httptest.NewRequest(http.MethodGet, "/api/signature", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddleware_Rejections(t *testing.T) {
	verifier := NewStaticVerifier(map[string]string{"tok-1": "user-1"})
	h := Middleware(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a session")
	}))

	cases := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "wrong scheme", header: "Basic tok-1"},
		{name: "unknown token", header: "Bearer nope"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/signature", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
		})
	}
}

func TestParseSessionKeys(t *testing.T) {
	sessions, err := ParseSessionKeys("tok-1:user-1, tok-2:user-2")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"tok-1": "user-1", "tok-2": "user-2"}, sessions)

	_, err = ParseSessionKeys("garbage")
	require.Error(t, err)

	empty, err := ParseSessionKeys("")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
