package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaikhmoiz3010/pointsolution-server/models"
)

func runWithRole(t *testing.T, role string, mw echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}

	handler := mw(func(c echo.Context) error {
		return c.JSON(http.StatusOK, models.OK("reached", nil))
	})
	require.NoError(t, handler(c))
	return rec
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	rec := runWithRole(t, models.RoleAdmin, RequireRole(models.RoleAdmin))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleAllowsAnyListedRole(t *testing.T) {
	rec := runWithRole(t, models.RoleUser, RequireRole(models.RoleAdmin, models.RoleUser))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleRejectsWrongRole(t *testing.T) {
	rec := runWithRole(t, models.RoleUser, RequireRole(models.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleRejectsMissingRole(t *testing.T) {
	rec := runWithRole(t, "", RequireRole(models.RoleAdmin))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	rec := runWithRole(t, models.RoleAdmin, RequireAdmin())
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = runWithRole(t, models.RoleUser, RequireAdmin())
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
