package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/inventory-api/internal/cache"
	"github.com/iliyamo/inventory-api/internal/config"
	"github.com/iliyamo/inventory-api/internal/handler"
	"github.com/iliyamo/inventory-api/internal/model"
	"github.com/iliyamo/inventory-api/internal/ratelimit"
	"github.com/iliyamo/inventory-api/internal/repository"
	"github.com/iliyamo/inventory-api/internal/service"
	"github.com/iliyamo/inventory-api/internal/utils"
)

type staticUsers struct{ u model.User }

func (s staticUsers) GetByUsername(_ context.Context, username string) (model.User, error) {
	if username == s.u.Username {
		return s.u, nil
	}
	return model.User{}, repository.ErrUserNotFound
}

type emptyStore struct{}

func (emptyStore) Create(_ context.Context, it *model.Item) error { it.ID = 1; return nil }
func (emptyStore) GetByID(context.Context, uint64) (*model.Item, error) {
	return nil, repository.ErrItemNotFound
}
func (emptyStore) List(context.Context, int, int) ([]*model.Item, error) {
	return []*model.Item{}, nil
}
func (emptyStore) Update(context.Context, uint64, model.ItemPatch) (*model.Item, error) {
	return nil, repository.ErrItemNotFound
}
func (emptyStore) Delete(context.Context, uint64) error { return repository.ErrItemNotFound }

func newApp(quota int) *echo.Echo {
	cfg := config.Config{
		JWTSecret:         "secret",
		AccessTTLMin:      30,
		RateLimitRequests: quota,
		RateLimitWindow:   time.Minute,
		AllowedOrigins:    []string{"*"},
	}
	users := staticUsers{u: model.User{ID: 1, Username: "alice", IsActive: true}}
	items := service.NewItemService(emptyStore{}, cache.New(nil), time.Minute, time.Minute, nil)

	e := echo.New()
	Register(e, cfg,
		ratelimit.NewMemoryLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		users,
		handler.NewAuthHandler(cfg, nil),
		handler.NewItemHandler(items))
	return e
}

func get(e *echo.Echo, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = "10.0.0.1:1234"
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestPipeline_ProtectedRoutesRequireToken(t *testing.T) {
	e := newApp(100)

	rec := get(e, "/api/v1/items", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	tok, err := utils.NewAccessToken("secret", "alice", 30)
	require.NoError(t, err)

	rec = get(e, "/api/v1/items", tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String(), "fresh list is empty")
}

func TestPipeline_PublicRoutesSkipAuth(t *testing.T) {
	e := newApp(100)
	assert.Equal(t, http.StatusOK, get(e, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, get(e, "/", "").Code)
}

func TestPipeline_RateLimitPrecedesAuth(t *testing.T) {
	e := newApp(2)

	get(e, "/api/v1/items", "")
	get(e, "/api/v1/items", "")

	// The third request must be stopped by the limiter, not the auth gate,
	// even though it carries no token.
	rec := get(e, "/api/v1/items", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestPipeline_HTTPSRedirectCarriesSecurityHeaders(t *testing.T) {
	cfg := config.Config{
		JWTSecret:         "secret",
		AccessTTLMin:      30,
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
		AllowedOrigins:    []string{"*"},
		ForceHTTPS:        true,
	}
	users := staticUsers{u: model.User{ID: 1, Username: "alice", IsActive: true}}
	items := service.NewItemService(emptyStore{}, cache.New(nil), time.Minute, time.Minute, nil)

	e := echo.New()
	Register(e, cfg,
		ratelimit.NewMemoryLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		users,
		handler.NewAuthHandler(cfg, nil),
		handler.NewItemHandler(items))

	rec := get(e, "/healthz", "")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderLocation), "https://")
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"),
		"redirects must carry the security headers too")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestPipeline_SecurityHeadersOnEveryResponse(t *testing.T) {
	e := newApp(1)

	for _, path := range []string{"/healthz", "/api/v1/items", "/nope"} {
		rec := get(e, path, "")
		assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"), path)
		assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"), path)
	}
	// The last responses above were rate limited; headers must be there too.
	rec := get(e, "/healthz", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}
