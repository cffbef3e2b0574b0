package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIssuer = "https://cognito-idp.eu-west-1.amazonaws.com/pool-1"

func newJWKSServer(t *testing.T, key *rsa.PrivateKey, kid string) *httptest.Server {
	t.Helper()
	e := big.NewInt(int64(key.PublicKey.E)).Bytes()
	body, err := json.Marshal(jwksResponse{Keys: []jwk{{
		Kty: "RSA",
		Kid: kid,
		Use: "sig",
		Alg: "RS256",
		N:   base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes()),
		E:   base64.RawURLEncoding.EncodeToString(e),
	}}})
	require.NoError(t, err)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func signToken(t *testing.T, key *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func run(t *testing.T, m *CognitoMiddleware, req *http.Request) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	called := false
	err := m.Handler(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)
	return rec, c, called
}

func TestCognitoMiddleware_AcceptsValidToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	srv := newJWKSServer(t, key, "k1")
	m := NewJWKSMiddleware(srv.URL, testIssuer)

	token := signToken(t, key, "k1", jwt.MapClaims{
		"sub": "operator-1",
		"iss": testIssuer,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	_, c, called := run(t, m, req)
	assert.True(t, called)
	assert.Equal(t, "operator-1", c.Get(OperatorContextKey))
}

func TestCognitoMiddleware_AcceptsCookie(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	srv := newJWKSServer(t, key, "k1")
	m := NewJWKSMiddleware(srv.URL, testIssuer)

	token := signToken(t, key, "k1", jwt.MapClaims{"sub": "op", "iss": testIssuer, "exp": time.Now().Add(time.Hour).Unix()})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: IDTokenCookie, Value: token})

	_, _, called := run(t, m, req)
	assert.True(t, called)
}

func TestCognitoMiddleware_Rejects(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	srv := newJWKSServer(t, key, "k1")
	m := NewJWKSMiddleware(srv.URL, testIssuer)
	future := time.Now().Add(time.Hour).Unix()

	cases := map[string]string{
		"missing":      "",
		"wrong scheme": "Basic abc",
		"wrong issuer": "Bearer " + signToken(t, key, "k1", jwt.MapClaims{"sub": "op", "iss": "https://evil", "exp": future}),
		"expired":      "Bearer " + signToken(t, key, "k1", jwt.MapClaims{"sub": "op", "iss": testIssuer, "exp": time.Now().Add(-time.Hour).Unix()}),
		"no expiry":    "Bearer " + signToken(t, key, "k1", jwt.MapClaims{"sub": "op", "iss": testIssuer}),
		"unknown kid":  "Bearer " + signToken(t, key, "k2", jwt.MapClaims{"sub": "op", "iss": testIssuer, "exp": future}),
		"foreign key":  "Bearer " + signToken(t, other, "k1", jwt.MapClaims{"sub": "op", "iss": testIssuer, "exp": future}),
		"missing sub":  "Bearer " + signToken(t, key, "k1", jwt.MapClaims{"iss": testIssuer, "exp": future}),
		"not a jwt":    "Bearer garbage",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec, _, called := run(t, m, req)
			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRSAFromJWK_RejectsZeroExponent(t *testing.T) {
	_, err := rsaFromJWK(base64.RawURLEncoding.EncodeToString([]byte{1}), base64.RawURLEncoding.EncodeToString([]byte{0}))
	assert.Error(t, err)
}

func TestNewCognitoMiddleware_BuildsIssuer(t *testing.T) {
	m := NewCognitoMiddleware("pool-1", "eu-west-1")
	assert.Equal(t, testIssuer, m.issuer)
	assert.Equal(t, testIssuer+"/.well-known/jwks.json", m.cache.url)
}
