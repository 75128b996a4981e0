package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testIssuer = "https://auth.example.com/"

type jwksFixture struct {
	key     *rsa.PrivateKey
	server  *httptest.Server
	fetches atomic.Int32
}

func newJWKSFixture(t *testing.T) *jwksFixture {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	f := &jwksFixture{key: key}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		f.fetches.Add(1)
		_ = json.NewEncoder(w).Encode(JWKS{Keys: []JWK{{
			Kid: "k1",
			Kty: "RSA",
			Alg: "RS256",
			Use: "sig",
			N:   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
		}}})
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *jwksFixture) sign(t *testing.T, kid string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	s, err := token.SignedString(f.key)
	require.NoError(t, err)
	return s
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub": "operator-1",
		"iss": testIssuer,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
}

func TestValidateToken(t *testing.T) {
	f := newJWKSFixture(t)
	v := NewJWTValidator(f.server.URL, testIssuer)

	claims, err := v.ValidateToken(t.Context(), f.sign(t, "k1", validClaims()))
	require.NoError(t, err)
	sub, _ := claims.GetSubject()
	require.Equal(t, "operator-1", sub)

	_, err = v.ValidateToken(t.Context(), f.sign(t, "k1", validClaims()))
	require.NoError(t, err)
	require.Equal(t, int32(1), f.fetches.Load(), "keys should be cached after the first fetch")
}

func TestValidateToken_Rejects(t *testing.T) {
	f := newJWKSFixture(t)
	v := NewJWTValidator(f.server.URL, testIssuer)

	wrongIssuer := validClaims()
	wrongIssuer["iss"] = "https://evil.example.com/"
	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Hour).Unix()
	noExp := validClaims()
	delete(noExp, "exp")

	tests := []struct {
		name  string
		token string
	}{
		{"wrong issuer", f.sign(t, "k1", wrongIssuer)},
		{"expired", f.sign(t, "k1", expired)},
		{"missing exp", f.sign(t, "k1", noExp)},
		{"unknown kid", f.sign(t, "k2", validClaims())},
		{"garbage", "not.a.jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.ValidateToken(t.Context(), tt.token)
			require.Error(t, err)
		})
	}
}

func TestValidateToken_NoJWKSURL(t *testing.T) {
	f := newJWKSFixture(t)
	_, err := NewJWTValidator("", "").ValidateToken(t.Context(), f.sign(t, "k1", validClaims()))
	require.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	f := newJWKSFixture(t)
	var seen string
	h := Middleware(NewJWTValidator(f.server.URL, testIssuer), zap.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = SubjectFromContext(r.Context())
			w.WriteHeader(http.StatusNoContent)
		}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"invalid token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer " + f.sign(t, "k1", validClaims()), http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/issuances", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			require.Equal(t, tt.want, rec.Code)
		})
	}
	require.Equal(t, "operator-1", seen)
}
