package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"pokedex-hub/internal/domain"
	"pokedex-hub/internal/mocks"
	"pokedex-hub/utils/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestListGeneration_Pages(t *testing.T) {
	species := names(50)

	tests := []struct {
		name  string
		query domain.GenerationQuery
		want  []string
	}{
		{"defaults", domain.NewGenerationQuery(1), species[0:20]},
		{"third page", domain.GenerationQuery{GenerationID: 1, Page: 3, PageSize: 20}, species[40:50]},
		{"beyond the end", domain.GenerationQuery{GenerationID: 1, Page: 10, PageSize: 20}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			catalog := mocks.NewMockCatalogClient(ctrl)
			catalog.EXPECT().GetGenerationSpecies(gomock.Any(), 1).Return(species, nil)

			uc := NewListGeneration(catalog, validator.New(), slog.Default())
			got, err := uc.Execute(context.Background(), tt.query)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListGeneration_InvalidQueryMakesNoCatalogCall(t *testing.T) {
	queries := []domain.GenerationQuery{
		{GenerationID: 1, Page: 0, PageSize: 20},
		{GenerationID: 1, Page: 1, PageSize: 0},
		{GenerationID: 1, Page: 1, PageSize: 101},
		{GenerationID: 1, Page: -3, PageSize: 20},
	}

	for _, q := range queries {
		t.Run(fmt.Sprintf("page=%d,page_size=%d", q.Page, q.PageSize), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			catalog := mocks.NewMockCatalogClient(ctrl)

			uc := NewListGeneration(catalog, validator.New(), slog.Default())
			got, err := uc.Execute(context.Background(), q)

			assert.Nil(t, got)
			assert.True(t, errors.Is(err, domain.ErrInvalidQuery))

			var ve *validator.ValidationError
			assert.True(t, errors.As(err, &ve))
		})
	}
}

func TestListGeneration_CatalogSignals(t *testing.T) {
	tests := []struct {
		name       string
		catalogErr error
		wantErr    error
		wantRef    bool
	}{
		{"unknown generation", domain.ErrCatalogNotFound, domain.ErrGenerationNotFound, true},
		{"rejected generation id", domain.ErrCatalogBadRequest, domain.ErrInvalidGenerationRef, true},
		{"catalog down", fmt.Errorf("%w: dial tcp: connection refused", domain.ErrCatalogUnavailable), domain.ErrCatalogUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			catalog := mocks.NewMockCatalogClient(ctrl)
			catalog.EXPECT().GetGenerationSpecies(gomock.Any(), 99).Return(nil, tt.catalogErr)

			uc := NewListGeneration(catalog, validator.New(), slog.Default())
			got, err := uc.Execute(context.Background(), domain.NewGenerationQuery(99))

			assert.Nil(t, got)
			assert.True(t, errors.Is(err, tt.wantErr))

			var refErr *domain.RefError
			assert.Equal(t, tt.wantRef, errors.As(err, &refErr))
			if tt.wantRef {
				assert.Equal(t, "99", refErr.Ref)
			}
		})
	}
}
