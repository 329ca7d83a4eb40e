package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-jwt-secret")

func signedToken(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func runMiddleware(t *testing.T, decorate func(*http.Request)) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	if decorate != nil {
		decorate(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := New(testSecret).RequireAuth(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, c, handler(c)
}

func TestRequireAuth_BearerHeader(t *testing.T) {
	token := signedToken(t, testSecret, jwt.MapClaims{
		"sub":  float64(7),
		"role": "customer",
		"exp":  time.Now().Add(time.Minute).Unix(),
	})

	rec, c, err := runMiddleware(t, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, uint(7), c.Get("user_id"))
	require.Equal(t, "customer", c.Get("role"))
}

func TestRequireAuth_Cookie(t *testing.T) {
	token := signedToken(t, testSecret, jwt.MapClaims{
		"sub": float64(3),
		"exp": time.Now().Add(time.Minute).Unix(),
	})

	rec, c, err := runMiddleware(t, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, uint(3), c.Get("user_id"))
}

func TestRequireAuth_Rejections(t *testing.T) {
	expired := signedToken(t, testSecret, jwt.MapClaims{
		"sub": float64(7),
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	wrongKey := signedToken(t, []byte("other-secret"), jwt.MapClaims{
		"sub": float64(7),
		"exp": time.Now().Add(time.Minute).Unix(),
	})

	tests := []struct {
		name     string
		decorate func(*http.Request)
	}{
		{name: "no token", decorate: nil},
		{name: "expired token", decorate: func(req *http.Request) {
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+expired)
		}},
		{name: "wrong key", decorate: func(req *http.Request) {
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+wrongKey)
		}},
		{name: "garbage", decorate: func(req *http.Request) {
			req.Header.Set(echo.HeaderAuthorization, "Bearer not.a.token")
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := runMiddleware(t, tc.decorate)
			he, ok := err.(*echo.HTTPError)
			require.True(t, ok, "expected HTTPError")
			require.Equal(t, http.StatusUnauthorized, he.Code)
		})
	}
}
