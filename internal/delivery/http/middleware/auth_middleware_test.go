package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/infra/auth"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newTokenService(t *testing.T) service.TokenService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"
	cfg.Auth.AccessTTL = "8h"
	cfg.Auth.RefreshTTL = "7d"

	svc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return svc
}

func signFor(t *testing.T, svc service.TokenService, role entity.Role) string {
	t.Helper()

	token, err := svc.SignAccessToken(&entity.User{
		ID:    42,
		Email: "admin@example.com",
		Role:  role,
	})
	require.NoError(t, err)

	return token
}

func invoke(t *testing.T, handler echo.HandlerFunc, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler(c))

	return rec
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	m := NewAuthMiddleware(newTokenService(t))

	rec := invoke(t, m.Authenticate(func(c echo.Context) error {
		t.Fatal("handler should not run")

		return nil
	}), "")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_NotBearer(t *testing.T) {
	m := NewAuthMiddleware(newTokenService(t))

	rec := invoke(t, m.Authenticate(func(c echo.Context) error {
		t.Fatal("handler should not run")

		return nil
	}), "Basic dXNlcjpwYXNz")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	m := NewAuthMiddleware(newTokenService(t))

	rec := invoke(t, m.Authenticate(func(c echo.Context) error {
		t.Fatal("handler should not run")

		return nil
	}), "Bearer not-a-jwt")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_ValidTokenSetsContext(t *testing.T) {
	svc := newTokenService(t)
	m := NewAuthMiddleware(svc)

	var gotID uint
	var gotRole entity.Role
	rec := invoke(t, m.Authenticate(func(c echo.Context) error {
		id, ok := UserID(c)
		require.True(t, ok)
		gotID = id
		gotRole, _ = c.Get(KeyRole).(entity.Role)

		return c.NoContent(http.StatusOK)
	}), "Bearer "+signFor(t, svc, entity.RoleAdmin))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, uint(42), gotID)
	require.Equal(t, entity.RoleAdmin, gotRole)
}

func TestRequireRole_WrongRole(t *testing.T) {
	svc := newTokenService(t)
	m := NewAuthMiddleware(svc)

	handler := m.Authenticate(m.RequireRole(entity.RoleAdmin)(func(c echo.Context) error {
		t.Fatal("handler should not run")

		return nil
	}))

	rec := invoke(t, handler, "Bearer "+signFor(t, svc, entity.RoleCustomer))

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRole_MatchingRole(t *testing.T) {
	svc := newTokenService(t)
	m := NewAuthMiddleware(svc)

	handler := m.Authenticate(m.RequireRole(entity.RoleAdmin)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}))

	rec := invoke(t, handler, "Bearer "+signFor(t, svc, entity.RoleAdmin))

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_WithoutAuthenticate(t *testing.T) {
	m := NewAuthMiddleware(newTokenService(t))

	handler := m.RequireRole(entity.RoleAdmin)(func(c echo.Context) error {
		t.Fatal("handler should not run")

		return nil
	})

	rec := invoke(t, handler, "")

	require.Equal(t, http.StatusForbidden, rec.Code)
}
