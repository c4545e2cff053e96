package handler

import (
	"net/http"

	"pokedex-hub/internal/usecase"
	"pokedex-hub/utils/validator"

	"github.com/labstack/echo/v4"
)

// TokenHandler handles the password grant on POST /token.
type TokenHandler struct {
	uc        *usecase.IssueToken
	validator *validator.Validator
}

// NewTokenHandler creates a new token handler.
func NewTokenHandler(uc *usecase.IssueToken, v *validator.Validator) *TokenHandler {
	return &TokenHandler{uc: uc, validator: v}
}

type tokenRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Handle processes the /token endpoint.
func (h *TokenHandler) Handle(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form body")
	}
	if err := h.validator.Validate(req); err != nil {
		return respondError(c, err)
	}

	result, err := h.uc.Execute(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
	})
}
