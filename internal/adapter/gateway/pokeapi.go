package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pokedex-hub/internal/domain"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

// maxErrorBodyBytes bounds how much of an upstream error body is kept.
const maxErrorBodyBytes = 512

// PokeAPIGateway implements domain.CatalogClient against a PokeAPI-compatible catalog.
type PokeAPIGateway struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// PokeAPIConfig configures the catalog gateway.
type PokeAPIConfig struct {
	BaseURL string
	Timeout time.Duration
	// RatePerSecond paces outbound requests. Zero disables pacing.
	RatePerSecond float64
	Burst         int
}

// NewPokeAPIGateway creates a new catalog gateway with tuned HTTP transport.
func NewPokeAPIGateway(cfg PokeAPIConfig) *PokeAPIGateway {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
	}

	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}

	return &PokeAPIGateway{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(transport),
		},
		limiter: limiter,
	}
}

type namedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type pokemonPayload struct {
	Name    string `json:"name"`
	Weight  int    `json:"weight"`
	Height  int    `json:"height"`
	Sprites struct {
		FrontShiny *string `json:"front_shiny"`
	} `json:"sprites"`
	Types []struct {
		Slot int           `json:"slot"`
		Type namedResource `json:"type"`
	} `json:"types"`
	Stats []struct {
		BaseStat int           `json:"base_stat"`
		Stat     namedResource `json:"stat"`
	} `json:"stats"`
	Moves []struct {
		Move namedResource `json:"move"`
	} `json:"moves"`
}

type movePayload struct {
	Name  string `json:"name"`
	Power *int   `json:"power"`
}

type generationPayload struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	PokemonSpecies []namedResource `json:"pokemon_species"`
}

// GetPokemon fetches a pokemon record by catalog name.
func (g *PokeAPIGateway) GetPokemon(ctx context.Context, name string) (*domain.Pokemon, error) {
	var payload pokemonPayload
	if err := g.getJSON(ctx, g.baseURL+"/pokemon/"+url.PathEscape(name), &payload); err != nil {
		return nil, err
	}

	pokemon := &domain.Pokemon{
		Name:   payload.Name,
		Weight: payload.Weight,
		Height: payload.Height,
		Types:  make([]string, 0, len(payload.Types)),
		Stats:  make([]domain.Stat, 0, len(payload.Stats)),
		Moves:  make([]domain.MoveRef, 0, len(payload.Moves)),
	}
	if payload.Sprites.FrontShiny != nil {
		pokemon.ShinyImage = *payload.Sprites.FrontShiny
	}
	for _, t := range payload.Types {
		pokemon.Types = append(pokemon.Types, t.Type.Name)
	}
	for _, s := range payload.Stats {
		pokemon.Stats = append(pokemon.Stats, domain.Stat{Name: s.Stat.Name, Value: s.BaseStat})
	}
	for _, m := range payload.Moves {
		pokemon.Moves = append(pokemon.Moves, domain.MoveRef{Name: m.Move.Name, URL: m.Move.URL})
	}
	return pokemon, nil
}

// GetMovePower fetches a move sub-resource and returns its power.
func (g *PokeAPIGateway) GetMovePower(ctx context.Context, moveURL string) (*int, error) {
	var payload movePayload
	if err := g.getJSON(ctx, moveURL, &payload); err != nil {
		return nil, err
	}
	return payload.Power, nil
}

// GetGenerationSpecies fetches the species names of a generation in catalog order.
func (g *PokeAPIGateway) GetGenerationSpecies(ctx context.Context, generationID int) ([]string, error) {
	var payload generationPayload
	if err := g.getJSON(ctx, g.baseURL+"/generation/"+strconv.Itoa(generationID), &payload); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(payload.PokemonSpecies))
	for _, s := range payload.PokemonSpecies {
		names = append(names, s.Name)
	}
	return names, nil
}

func (g *PokeAPIGateway) getJSON(ctx context.Context, target string, out any) error {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrCatalogNotFound, target)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", domain.ErrCatalogBadRequest, target)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return fmt.Errorf("%w: catalog returned status %d: %s", domain.ErrCatalogUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %w", domain.ErrCatalogUnavailable, target, err)
	}
	return nil
}
