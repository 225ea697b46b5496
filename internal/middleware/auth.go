package middleware

import (
    "context"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/inventory-api/internal/model"
    "github.com/iliyamo/inventory-api/internal/utils"
)

// UserResolver looks a user up by the token subject.  *repository.UserRepo
// satisfies it; tests substitute a fake.
type UserResolver interface {
    GetByUsername(ctx context.Context, username string) (model.User, error)
}

// userContextKey is where the resolved user is stored in the echo context.
const userContextKey = "user"

// Auth returns a middleware that authenticates a request from its bearer
// token.  The token's subject is re-resolved against the user store on every
// request, so a token issued before an account was deactivated stops working
// immediately.  Missing token, invalid token and unknown subject all produce
// the same 401 so callers cannot tell the branches apart; only an inactive
// account is distinguishable (403), since that reveals no secret.
func Auth(secret string, users UserResolver) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return unauthenticated(c)
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            subject, err := utils.ParseAccessToken(secret, raw)
            if err != nil {
                return unauthenticated(c)
            }

            u, err := users.GetByUsername(c.Request().Context(), subject)
            if err != nil {
                return unauthenticated(c)
            }
            if !u.IsActive {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "inactive user"})
            }

            c.Set(userContextKey, u)
            return next(c)
        }
    }
}

// unauthenticated writes the single generic 401 used for every auth failure.
func unauthenticated(c echo.Context) error {
    c.Response().Header().Set("WWW-Authenticate", "Bearer")
    return c.JSON(http.StatusUnauthorized, echo.Map{"error": "could not validate credentials"})
}

// CurrentUser returns the authenticated user stored by Auth.  The boolean is
// false when the route was not protected or auth did not run.
func CurrentUser(c echo.Context) (model.User, bool) {
    u, ok := c.Get(userContextKey).(model.User)
    return u, ok
}
