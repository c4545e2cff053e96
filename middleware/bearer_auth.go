package middleware

import (
	"errors"
	"net/http"

	"pokedex-hub/internal/domain"
	"pokedex-hub/utils/logger"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// identityContextKey is the echo context key holding the authenticated identity.
const identityContextKey = "pokedex.identity"

// BearerAuth gates a route group behind an Authorization: Bearer token
// checked by auth. Failures never reach the handler.
func BearerAuth(auth domain.Authenticator) echo.MiddlewareFunc {
	return echomw.KeyAuthWithConfig(echomw.KeyAuthConfig{
		KeyLookup:  "header:" + echo.HeaderAuthorization,
		AuthScheme: "Bearer",
		Validator: func(token string, c echo.Context) (bool, error) {
			identity, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				return false, err
			}
			c.Set(identityContextKey, identity)
			c.SetRequest(c.Request().WithContext(
				logger.WithUser(c.Request().Context(), identity.Username)))
			return true, nil
		},
		ErrorHandler: func(err error, c echo.Context) error {
			if errors.Is(err, domain.ErrIdentityProviderUnavailable) {
				return echo.NewHTTPError(http.StatusBadGateway, "identity provider unavailable")
			}
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication failed")
		},
	})
}

// IdentityFrom returns the identity stored by BearerAuth.
func IdentityFrom(c echo.Context) (*domain.Identity, bool) {
	identity, ok := c.Get(identityContextKey).(*domain.Identity)
	return identity, ok && identity != nil
}
