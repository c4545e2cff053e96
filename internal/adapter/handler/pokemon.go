package handler

import (
	"net/http"

	"pokedex-hub/internal/domain"
	"pokedex-hub/internal/usecase"
	"pokedex-hub/utils/logger"
	"pokedex-hub/utils/validator"

	"github.com/labstack/echo/v4"
)

// PokemonHandler serves GET /pokemon/:name.
type PokemonHandler struct {
	uc        *usecase.FetchSummary
	validator *validator.Validator
}

// NewPokemonHandler creates a new pokemon handler.
func NewPokemonHandler(uc *usecase.FetchSummary, v *validator.Validator) *PokemonHandler {
	return &PokemonHandler{uc: uc, validator: v}
}

type statResponse struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type moveResponse struct {
	Name  string `json:"name"`
	Power int    `json:"power"`
}

type pokemonResponse struct {
	ShinyImage string         `json:"shiny_image"`
	Name       string         `json:"name"`
	Types      []string       `json:"type"`
	Weight     int            `json:"weight"`
	Height     int            `json:"height"`
	Stats      []statResponse `json:"stats"`
	Moves      []moveResponse `json:"moves"`
}

// Handle processes the /pokemon/:name endpoint.
func (h *PokemonHandler) Handle(c echo.Context) error {
	name := c.Param("name")
	if err := h.validator.ValidateVar(name, validator.TagPokemonName); err != nil {
		return respondError(c, domain.NewRefError(domain.ErrInvalidRef, name))
	}

	ctx := logger.WithPokemonName(c.Request().Context(), name)

	summary, err := h.uc.Execute(ctx, name)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, newPokemonResponse(summary))
}

func newPokemonResponse(s *domain.EntitySummary) pokemonResponse {
	resp := pokemonResponse{
		ShinyImage: s.ShinyImage,
		Name:       s.Name,
		Types:      make([]string, 0, len(s.Types)),
		Weight:     s.Weight,
		Height:     s.Height,
		Stats:      make([]statResponse, 0, len(s.Stats)),
		Moves:      make([]moveResponse, 0, len(s.Moves)),
	}
	resp.Types = append(resp.Types, s.Types...)
	for _, st := range s.Stats {
		resp.Stats = append(resp.Stats, statResponse{Name: st.Name, Value: st.Value})
	}
	for _, m := range s.Moves {
		resp.Moves = append(resp.Moves, moveResponse{Name: m.Name, Power: m.Power})
	}
	return resp
}
