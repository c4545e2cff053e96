package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"pokedex-hub/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// FetchSummary aggregates a pokemon record and its ranked moves into a summary.
type FetchSummary struct {
	catalog domain.CatalogClient
	ranker  *MoveRanker
	logger  *slog.Logger
}

// NewFetchSummary creates a new FetchSummary usecase.
func NewFetchSummary(c domain.CatalogClient, r *MoveRanker, l *slog.Logger) *FetchSummary {
	return &FetchSummary{catalog: c, ranker: r, logger: l}
}

// Execute looks up ref and returns its summary.
// Non-alphabetic refs fail with domain.ErrInvalidRef before the catalog is
// contacted; an unknown pokemon fails with domain.ErrNotFound. Every other
// primary fetch failure wraps domain.ErrCatalogUnavailable.
func (uc *FetchSummary) Execute(ctx context.Context, ref string) (*domain.EntitySummary, error) {
	if !domain.IsValidRef(ref) {
		return nil, domain.NewRefError(domain.ErrInvalidRef, ref)
	}
	name := domain.NormalizeRef(ref)

	ctx, span := tracer.Start(ctx, "FetchSummary.Execute",
		trace.WithAttributes(attribute.String("pokedex.pokemon.name", name)))
	defer span.End()

	pokemon, err := uc.catalog.GetPokemon(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrCatalogNotFound) {
			return nil, domain.NewRefError(domain.ErrNotFound, name)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "primary fetch failed")
		uc.logger.ErrorContext(ctx, "failed to fetch pokemon", "name", name, "error", err)
		if !errors.Is(err, domain.ErrCatalogUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
		}
		return nil, fmt.Errorf("fetch pokemon %q: %w", name, err)
	}

	moves := uc.ranker.Rank(ctx, pokemon.Moves, domain.TopMovesLimit)

	types := make([]string, len(pokemon.Types))
	copy(types, pokemon.Types)

	summary := &domain.EntitySummary{
		ShinyImage: pokemon.ShinyImage,
		Name:       pokemon.Name,
		Types:      types,
		Weight:     pokemon.Weight,
		Height:     pokemon.Height,
		Stats:      domain.FilterStats(pokemon.Stats),
		Moves:      moves,
	}

	uc.logger.InfoContext(ctx, "pokemon summary assembled",
		"name", summary.Name,
		"moves_listed", len(pokemon.Moves),
		"moves_ranked", len(moves))
	return summary, nil
}
