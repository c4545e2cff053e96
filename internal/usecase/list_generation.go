package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"pokedex-hub/internal/domain"
	"pokedex-hub/utils/validator"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ListGeneration returns one page of the species names introduced by a generation.
type ListGeneration struct {
	catalog   domain.CatalogClient
	validator *validator.Validator
	logger    *slog.Logger
}

// NewListGeneration creates a new ListGeneration usecase.
func NewListGeneration(c domain.CatalogClient, v *validator.Validator, l *slog.Logger) *ListGeneration {
	return &ListGeneration{catalog: c, validator: v, logger: l}
}

// Execute validates q, fetches the generation's species and slices the requested page.
func (uc *ListGeneration) Execute(ctx context.Context, q domain.GenerationQuery) ([]string, error) {
	if err := uc.validator.Validate(q); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err)
	}

	ctx, span := tracer.Start(ctx, "ListGeneration.Execute", trace.WithAttributes(
		attribute.Int("pokedex.generation.id", q.GenerationID),
		attribute.Int("pokedex.page", q.Page),
		attribute.Int("pokedex.page_size", q.PageSize),
	))
	defer span.End()

	id := strconv.Itoa(q.GenerationID)
	names, err := uc.catalog.GetGenerationSpecies(ctx, q.GenerationID)
	switch {
	case errors.Is(err, domain.ErrCatalogNotFound):
		return nil, domain.NewRefError(domain.ErrGenerationNotFound, id)
	case errors.Is(err, domain.ErrCatalogBadRequest):
		return nil, domain.NewRefError(domain.ErrInvalidGenerationRef, id)
	case err != nil:
		uc.logger.ErrorContext(ctx, "failed to fetch generation", "generation", q.GenerationID, "error", err)
		return nil, fmt.Errorf("fetch generation %d: %w", q.GenerationID, err)
	}

	page := SlicePage(names, q.Page, q.PageSize)
	span.SetAttributes(attribute.Int("pokedex.page.length", len(page)))
	return page, nil
}
