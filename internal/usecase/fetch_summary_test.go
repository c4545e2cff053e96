package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"pokedex-hub/internal/domain"
	"pokedex-hub/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newFetchSummary(catalog domain.CatalogClient) *FetchSummary {
	return NewFetchSummary(catalog, NewMoveRanker(catalog, slog.Default()), slog.Default())
}

func pikachu() *domain.Pokemon {
	return &domain.Pokemon{
		Name:       "pikachu",
		ShinyImage: "https://img.test/shiny/25.png",
		Types:      []string{"electric"},
		Weight:     60,
		Height:     4,
		Stats: []domain.Stat{
			{Name: "hp", Value: 35},
			{Name: "attack", Value: 55},
			{Name: "defense", Value: 40},
			{Name: "special-attack", Value: 50},
			{Name: "special-defense", Value: 50},
			{Name: "speed", Value: 90},
		},
		Moves: []domain.MoveRef{
			{Name: "mega-punch", URL: "https://catalog.test/move/5/"},
			{Name: "growl", URL: "https://catalog.test/move/45/"},
			{Name: "thunderbolt", URL: "https://catalog.test/move/85/"},
			{Name: "thunder-punch", URL: "https://catalog.test/move/9/"},
		},
	}
}

func expectPikachuMoves(catalog *mocks.MockCatalogClient) {
	catalog.EXPECT().GetMovePower(gomock.Any(), "https://catalog.test/move/5/").Return(intPtr(40), nil)
	catalog.EXPECT().GetMovePower(gomock.Any(), "https://catalog.test/move/45/").Return(nil, nil)
	catalog.EXPECT().GetMovePower(gomock.Any(), "https://catalog.test/move/85/").Return(intPtr(90), nil)
	catalog.EXPECT().GetMovePower(gomock.Any(), "https://catalog.test/move/9/").Return(intPtr(90), nil)
}

func TestFetchSummary_InvalidRefMakesNoCatalogCalls(t *testing.T) {
	refs := []string{"", "mr-mime", "mr mime", "porygon2", "123", "pika_chu", "farfetch'd", "../etc"}

	for _, ref := range refs {
		t.Run(fmt.Sprintf("ref=%q", ref), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			// No expectations: any catalog call fails the test.
			catalog := mocks.NewMockCatalogClient(ctrl)

			summary, err := newFetchSummary(catalog).Execute(context.Background(), ref)

			assert.Nil(t, summary)
			assert.True(t, errors.Is(err, domain.ErrInvalidRef))

			var refErr *domain.RefError
			require.True(t, errors.As(err, &refErr))
			assert.Equal(t, ref, refErr.Ref)
		})
	}
}

func TestFetchSummary_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalogClient(ctrl)
	catalog.EXPECT().GetPokemon(gomock.Any(), "missingno").Return(nil, domain.ErrCatalogNotFound)

	summary, err := newFetchSummary(catalog).Execute(context.Background(), "MissingNo")

	assert.Nil(t, summary)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	var refErr *domain.RefError
	require.True(t, errors.As(err, &refErr))
	assert.Equal(t, "missingno", refErr.Ref)
}

func TestFetchSummary_PrimaryFailureIsFatalAndSkipsMoves(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalogClient(ctrl)
	upstream := fmt.Errorf("%w: catalog returned status 503", domain.ErrCatalogUnavailable)
	catalog.EXPECT().GetPokemon(gomock.Any(), "pikachu").Return(nil, upstream)
	catalog.EXPECT().GetMovePower(gomock.Any(), gomock.Any()).Times(0)

	summary, err := newFetchSummary(catalog).Execute(context.Background(), "pikachu")

	assert.Nil(t, summary)
	assert.True(t, errors.Is(err, domain.ErrCatalogUnavailable))
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}

func TestFetchSummary_PrimaryRejectionIsCatalogUnavailable(t *testing.T) {
	tests := []struct {
		name     string
		upstream error
	}{
		{"bad request", fmt.Errorf("%w: catalog returned status 400", domain.ErrCatalogBadRequest)},
		{"untyped failure", errors.New("connection reset")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := mocks.NewMockCatalogClient(gomock.NewController(t))
			catalog.EXPECT().GetPokemon(gomock.Any(), "pikachu").Return(nil, tt.upstream)

			summary, err := newFetchSummary(catalog).Execute(context.Background(), "pikachu")

			assert.Nil(t, summary)
			assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
			assert.ErrorIs(t, err, tt.upstream)
			assert.NotErrorIs(t, err, domain.ErrNotFound)
		})
	}
}

func TestFetchSummary_PikachuScenario(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalogClient(ctrl)
	catalog.EXPECT().GetPokemon(gomock.Any(), "pikachu").Return(pikachu(), nil)
	expectPikachuMoves(catalog)

	summary, err := newFetchSummary(catalog).Execute(context.Background(), "Pikachu")
	require.NoError(t, err)

	assert.Equal(t, &domain.EntitySummary{
		ShinyImage: "https://img.test/shiny/25.png",
		Name:       "pikachu",
		Types:      []string{"electric"},
		Weight:     60,
		Height:     4,
		Stats: []domain.Stat{
			{Name: "attack", Value: 55},
			{Name: "defense", Value: 40},
		},
		Moves: []domain.Move{
			{Name: "thunderbolt", Power: 90},
			{Name: "thunder-punch", Power: 90},
			{Name: "mega-punch", Power: 40},
		},
	}, summary)
}

func TestFetchSummary_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalogClient(ctrl)
	catalog.EXPECT().GetPokemon(gomock.Any(), "pikachu").Return(pikachu(), nil).Times(2)
	expectPikachuMoves(catalog)
	expectPikachuMoves(catalog)

	uc := newFetchSummary(catalog)
	first, err := uc.Execute(context.Background(), "pikachu")
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), "pikachu")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFetchSummary_PreservesTypeAndStatOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalogClient(ctrl)
	catalog.EXPECT().GetPokemon(gomock.Any(), "bulbasaur").Return(&domain.Pokemon{
		Name:   "bulbasaur",
		Types:  []string{"grass", "poison"},
		Weight: 69,
		Height: 7,
		Stats: []domain.Stat{
			{Name: "defense", Value: 49},
			{Name: "speed", Value: 45},
			{Name: "attack", Value: 49},
		},
	}, nil)

	summary, err := newFetchSummary(catalog).Execute(context.Background(), "bulbasaur")
	require.NoError(t, err)

	assert.Equal(t, []string{"grass", "poison"}, summary.Types)
	assert.Equal(t, []domain.Stat{{Name: "defense", Value: 49}, {Name: "attack", Value: 49}}, summary.Stats)
	assert.Empty(t, summary.ShinyImage)
	assert.NotNil(t, summary.Moves)
	assert.Empty(t, summary.Moves)
}

func TestFetchSummary_BrokenMoveDoesNotBreakLookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalogClient(ctrl)
	catalog.EXPECT().GetPokemon(gomock.Any(), "pikachu").Return(pikachu(), nil)
	catalog.EXPECT().GetMovePower(gomock.Any(), "https://catalog.test/move/5/").Return(intPtr(40), nil)
	catalog.EXPECT().GetMovePower(gomock.Any(), "https://catalog.test/move/45/").Return(nil, nil)
	catalog.EXPECT().GetMovePower(gomock.Any(), "https://catalog.test/move/85/").
		Return(nil, fmt.Errorf("%w: catalog returned status 500", domain.ErrCatalogUnavailable))
	catalog.EXPECT().GetMovePower(gomock.Any(), "https://catalog.test/move/9/").Return(intPtr(75), nil)

	summary, err := newFetchSummary(catalog).Execute(context.Background(), "pikachu")
	require.NoError(t, err)

	assert.Equal(t, []domain.Move{
		{Name: "thunder-punch", Power: 75},
		{Name: "mega-punch", Power: 40},
	}, summary.Moves)
}
