package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, mw echo.MiddlewareFunc, req *http.Request) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, called
}

func TestAuthMiddleware_None(t *testing.T) {
	mw, err := AuthMiddleware(ModeNone, "", nil)
	require.NoError(t, err)

	_, called := serve(t, mw, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)
}

func TestAuthMiddleware_APIKeyHeader(t *testing.T) {
	mw, err := AuthMiddleware(ModeAPIKey, "s3cret", nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(ConsoleKeyHeader, "s3cret")
	_, called := serve(t, mw, req)
	assert.True(t, called)
}

func TestAuthMiddleware_APIKeyCookie(t *testing.T) {
	mw, err := AuthMiddleware(ModeAPIKey, "s3cret", nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: ConsoleKeyCookie, Value: "s3cret"})
	_, called := serve(t, mw, req)
	assert.True(t, called)
}

func TestAuthMiddleware_APIKeyRejected(t *testing.T) {
	mw, err := AuthMiddleware(ModeAPIKey, "s3cret", nil)
	require.NoError(t, err)

	for _, key := range []string{"", "wrong"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if key != "" {
			req.Header.Set(ConsoleKeyHeader, key)
		}
		rec, called := serve(t, mw, req)
		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
}

func TestAuthMiddleware_Cognito(t *testing.T) {
	cognitoCalled := false
	mockCognito := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cognitoCalled = true
			return next(c)
		}
	}

	mw, err := AuthMiddleware(ModeCognito, "", mockCognito)
	require.NoError(t, err)

	_, called := serve(t, mw, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, cognitoCalled)
	assert.True(t, called)
}

func TestAuthMiddleware_Misconfigured(t *testing.T) {
	mw, err := AuthMiddleware(ModeCognito, "", nil)
	assert.Nil(t, mw)
	assert.Error(t, err)

	mw, err = AuthMiddleware(ModeAPIKey, "", nil)
	assert.Nil(t, mw)
	assert.Error(t, err)

	mw, err = AuthMiddleware(Mode("invalid"), "", nil)
	assert.Nil(t, mw)
	assert.Error(t, err)
}

func TestParseAuthMode(t *testing.T) {
	mode, err := ParseAuthMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeNone, mode)

	mode, err = ParseAuthMode(" Cognito ")
	require.NoError(t, err)
	assert.Equal(t, ModeCognito, mode)

	_, err = ParseAuthMode("basic")
	assert.Error(t, err)
}
