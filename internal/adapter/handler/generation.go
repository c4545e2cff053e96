package handler

import (
	"errors"
	"fmt"
	"net/http"

	"pokedex-hub/internal/domain"
	"pokedex-hub/internal/usecase"
	"pokedex-hub/utils/logger"
	"pokedex-hub/utils/validator"

	"github.com/labstack/echo/v4"
)

// GenerationHandler serves GET /generation/:id.
type GenerationHandler struct {
	uc *usecase.ListGeneration
}

// NewGenerationHandler creates a new generation handler.
func NewGenerationHandler(uc *usecase.ListGeneration) *GenerationHandler {
	return &GenerationHandler{uc: uc}
}

// Handle processes the /generation/:id endpoint.
func (h *GenerationHandler) Handle(c echo.Context) error {
	var id int
	if err := echo.PathParamsBinder(c).MustInt("id", &id).BindError(); err != nil {
		return respondError(c, bindingValidationError("generation", err))
	}

	q := domain.NewGenerationQuery(id)
	err := echo.QueryParamsBinder(c).
		Int("page", &q.Page).
		Int("page_size", &q.PageSize).
		BindError()
	if err != nil {
		return respondError(c, bindingValidationError("", err))
	}

	ctx := logger.WithGenerationID(c.Request().Context(), id)
	names, err := h.uc.Execute(ctx, q)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, names)
}

// bindingValidationError reports a parameter that failed integer conversion.
// field overrides the parameter name when set.
func bindingValidationError(field string, err error) error {
	var be *echo.BindingError
	if errors.As(err, &be) && field == "" {
		field = be.Field
	}
	if field == "" {
		field = "query"
	}
	return fmt.Errorf("%w: %w", domain.ErrInvalidQuery, &validator.ValidationError{
		Errors: map[string]string{field: field + " must be an integer"},
	})
}
