package usecase

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"pokedex-hub/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// MoveRanker resolves move powers concurrently and keeps the strongest moves.
type MoveRanker struct {
	catalog domain.CatalogClient
	logger  *slog.Logger
}

// NewMoveRanker creates a new MoveRanker.
func NewMoveRanker(c domain.CatalogClient, l *slog.Logger) *MoveRanker {
	return &MoveRanker{catalog: c, logger: l}
}

// Rank returns at most k moves ordered by power descending. Moves whose power
// cannot be resolved are dropped; ties keep the catalog listing order.
func (r *MoveRanker) Rank(ctx context.Context, refs []domain.MoveRef, k int) []domain.Move {
	if k <= 0 || len(refs) == 0 {
		return []domain.Move{}
	}

	ctx, span := tracer.Start(ctx, "MoveRanker.Rank")
	defer span.End()

	candidates := r.resolve(ctx, refs)
	ranked := rankCandidates(candidates, k)

	span.SetAttributes(
		attribute.Int("pokedex.moves.listed", len(refs)),
		attribute.Int("pokedex.moves.ranked", len(ranked)),
	)
	return ranked
}

// resolve fetches every move power in parallel. Each goroutine owns slot i,
// so the result keeps listing order regardless of completion order.
func (r *MoveRanker) resolve(ctx context.Context, refs []domain.MoveRef) []domain.MoveCandidate {
	candidates := make([]domain.MoveCandidate, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		candidates[i].Name = ref.Name
		g.Go(func() error {
			power, err := r.catalog.GetMovePower(gctx, ref.URL)
			if err != nil {
				r.logger.WarnContext(gctx, "move power unresolved, dropping move",
					"move", ref.Name,
					"error", err)
				return nil // non-fatal
			}
			candidates[i].Power = power
			return nil
		})
	}
	_ = g.Wait()

	return candidates
}

// rankCandidates drops powerless candidates, stable-sorts by power descending
// and truncates to k.
func rankCandidates(candidates []domain.MoveCandidate, k int) []domain.Move {
	moves := make([]domain.Move, 0, len(candidates))
	for _, c := range candidates {
		if c.Power == nil {
			continue
		}
		moves = append(moves, domain.Move{Name: c.Name, Power: *c.Power})
	}

	slices.SortStableFunc(moves, func(a, b domain.Move) int {
		return cmp.Compare(b.Power, a.Power)
	})

	if len(moves) > k {
		moves = moves[:k]
	}
	return moves
}
