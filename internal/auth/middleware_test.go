package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"campushub/internal/model"
)

func newProtectedEcho(gate *Gate) *echo.Echo {
	e := echo.New()
	e.GET("/whoami", func(c echo.Context) error {
		p, ok := PrincipalFrom(c)
		if !ok {
			return c.NoContent(http.StatusTeapot)
		}
		return c.String(http.StatusOK, p.Username)
	}, Middleware(gate))
	return e
}

func TestMiddleware(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	token, err := codec.Issue("alice", time.Minute)
	require.NoError(t, err)

	finder := new(MockIdentityFinder)
	finder.On("FindByUsername", mock.Anything, "alice").Return(&model.User{ID: 7, Username: "alice"}, nil)
	e := newProtectedEcho(NewGate(codec, finder, nil))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid bearer", "Bearer " + token, http.StatusOK, "alice"},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized, ""},
		{"bad token", "Bearer nope", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			} else {
				assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
				assert.Contains(t, rec.Body.String(), "UNAUTHENTICATED")
			}
		})
	}
}

func TestMiddleware_IdentityStoreDown(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	token, err := codec.Issue("alice", time.Minute)
	require.NoError(t, err)

	finder := new(MockIdentityFinder)
	finder.On("FindByUsername", mock.Anything, "alice").Return(nil, errors.New("dial tcp: connection refused"))
	e := newProtectedEcho(NewGate(codec, finder, nil))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Header().Get(echo.HeaderWWWAuthenticate))
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
	assert.NotContains(t, rec.Body.String(), "connection refused")
	finder.AssertExpectations(t)
}
