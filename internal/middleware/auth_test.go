package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/inventory-api/internal/model"
	"github.com/iliyamo/inventory-api/internal/repository"
	"github.com/iliyamo/inventory-api/internal/utils"
)

const testSecret = "test-secret"

// fakeUsers resolves subjects from a fixed map.
type fakeUsers struct {
	users map[string]model.User
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (model.User, error) {
	u, ok := f.users[username]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func newAuthApp(t *testing.T) *echo.Echo {
	t.Helper()
	users := &fakeUsers{users: map[string]model.User{
		"alice": {ID: 1, Username: "alice", IsActive: true},
		"bob":   {ID: 2, Username: "bob", IsActive: false},
	}}
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		u, ok := CurrentUser(c)
		require.True(t, ok, "auth must have stored the user")
		return c.JSON(http.StatusOK, echo.Map{"username": u.Username})
	}, Auth(testSecret, users))
	return e
}

func doAuthRequest(e *echo.Echo, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuth_ValidTokenActiveUser(t *testing.T) {
	e := newAuthApp(t)
	tok, err := utils.NewAccessToken(testSecret, "alice", 30)
	require.NoError(t, err)

	rec := doAuthRequest(e, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice")
}

func TestAuth_MissingHeader(t *testing.T) {
	e := newAuthApp(t)
	rec := doAuthRequest(e, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
}

func TestAuth_FailureBranchesAreIndistinguishable(t *testing.T) {
	e := newAuthApp(t)

	forged, err := utils.NewAccessToken("other-secret", "alice", 30)
	require.NoError(t, err)
	unknown, err := utils.NewAccessToken(testSecret, "mallory", 30)
	require.NoError(t, err)
	expired, err := utils.NewAccessToken(testSecret, "alice", -5)
	require.NoError(t, err)

	var bodies []string
	for name, header := range map[string]string{
		"garbage":         "Bearer not-a-token",
		"forged":          "Bearer " + forged.Token,
		"unknown subject": "Bearer " + unknown.Token,
		"expired":         "Bearer " + expired.Token,
	} {
		rec := doAuthRequest(e, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
		bodies = append(bodies, rec.Body.String())
	}
	for _, b := range bodies[1:] {
		assert.Equal(t, bodies[0], b, "all 401 bodies must be identical")
	}
}

func TestAuth_InactiveUserIsDistinguishable(t *testing.T) {
	e := newAuthApp(t)
	tok, err := utils.NewAccessToken(testSecret, "bob", 30)
	require.NoError(t, err)

	rec := doAuthRequest(e, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "inactive user")
}
