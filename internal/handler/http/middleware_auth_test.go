package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lexisync/lexisync/internal/config"
	"github.com/lexisync/lexisync/internal/logger"
	"github.com/lexisync/lexisync/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- Helpers ----

const (
	testSignKey = "test-sign-key"
	testIssuer  = "lexisync-auth"
)

func newAuthHandler() *Handler {
	return &Handler{
		app: config.App{
			TokenSignKey: testSignKey,
			TokenIssuer:  testIssuer,
		},
		logger: logger.Nop(),
	}
}

func executeAuth(h *Handler, authHeader string, next http.Handler) *httptest.ResponseRecorder {
	middleware := h.auth(next)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = injectNopLogger(req)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	middleware.ServeHTTP(rr, req)
	return rr
}

// ---- getTokenFromAuthHeader unit tests ----

func TestGetTokenFromAuthHeader_TableTest(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   error
	}{
		{
			name:      "valid Bearer token",
			header:    "Bearer my-jwt-token",
			wantToken: "my-jwt-token",
		},
		{
			name:    "single part only",
			header:  "Bearer",
			wantErr: ErrInvalidAuthorizationHeader,
		},
		{
			name:    "empty token part",
			header:  "Bearer ",
			wantErr: ErrEmptyToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

// ---- auth middleware ----

func TestAuth_ValidTokenPutsAccountInContext(t *testing.T) {
	h := newAuthHandler()

	token, err := utils.GenerateJWTToken(testIssuer, "acc-42", time.Minute, testSignKey)
	require.NoError(t, err)

	var gotAccountID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccountID, _ = utils.GetAccountIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rr := executeAuth(h, "Bearer "+token.SignedString, next)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "acc-42", gotAccountID)
}

func TestAuth_MissingHeader(t *testing.T) {
	h := newAuthHandler()

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not run")
	})

	rr := executeAuth(h, "", next)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	h := newAuthHandler()

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not run")
	})

	rr := executeAuth(h, "Bearer", next)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_WrongSignKey(t *testing.T) {
	h := newAuthHandler()

	token, err := utils.GenerateJWTToken(testIssuer, "acc-42", time.Minute, "other-key")
	require.NoError(t, err)

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not run")
	})

	rr := executeAuth(h, "Bearer "+token.SignedString, next)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_WrongIssuer(t *testing.T) {
	h := newAuthHandler()

	token, err := utils.GenerateJWTToken("rogue-issuer", "acc-42", time.Minute, testSignKey)
	require.NoError(t, err)

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not run")
	})

	rr := executeAuth(h, "Bearer "+token.SignedString, next)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
