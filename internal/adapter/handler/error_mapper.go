package handler

import (
	"errors"
	"fmt"
	"net/http"

	"pokedex-hub/internal/domain"
	"pokedex-hub/utils/validator"

	"github.com/labstack/echo/v4"
)

// validationFailedMessage is the message carried by every 422 response.
const validationFailedMessage = "validation failed"

// validationBody is the 422 response body.
type validationBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// mapDomainError converts a domain error into an appropriate echo.HTTPError.
func mapDomainError(err error) *echo.HTTPError {
	var ve *validator.ValidationError
	if errors.As(err, &ve) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, validationBody{
			Message: validationFailedMessage,
			Errors:  ve.Errors,
		})
	}

	ref := ""
	var re *domain.RefError
	if errors.As(err, &re) {
		ref = re.Ref
	}

	switch {
	case errors.Is(err, domain.ErrInvalidRef):
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid pokemon name '%s'", ref))

	case errors.Is(err, domain.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("pokemon '%s' not found", ref))

	case errors.Is(err, domain.ErrGenerationNotFound):
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("generation '%s' not found", ref))

	case errors.Is(err, domain.ErrInvalidGenerationRef):
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid generation number '%s'", ref))

	case errors.Is(err, domain.ErrInvalidQuery):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, validationBody{Message: validationFailedMessage})

	case errors.Is(err, domain.ErrAuthFailed):
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication failed")

	case errors.Is(err, domain.ErrCatalogUnavailable):
		return echo.NewHTTPError(http.StatusBadGateway, "catalog unavailable")

	case errors.Is(err, domain.ErrIdentityProviderUnavailable):
		return echo.NewHTTPError(http.StatusBadGateway, "identity provider unavailable")

	case errors.Is(err, domain.ErrTokenGeneration):
		return echo.NewHTTPError(http.StatusInternalServerError, "token generation error")

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

// respondError maps err and attaches the bearer challenge to 401 responses.
func respondError(c echo.Context, err error) error {
	httpErr := mapDomainError(err)
	if httpErr.Code == http.StatusUnauthorized {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	}
	return httpErr
}
