package logger

import (
	"context"
	"log/slog"
)

type ContextKey string

// Business context keys
const (
	RequestIDKey    ContextKey = "request_id"
	UserKey         ContextKey = "pokedex.user"
	PokemonNameKey  ContextKey = "pokedex.pokemon.name"
	GenerationIDKey ContextKey = "pokedex.generation.id"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func WithUser(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, UserKey, username)
}

func WithPokemonName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, PokemonNameKey, name)
}

func WithGenerationID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, GenerationIDKey, id)
}

// contextAttrs collects the business keys present on ctx.
func contextAttrs(ctx context.Context) []slog.Attr {
	var attrs []slog.Attr
	for _, key := range []ContextKey{RequestIDKey, UserKey, PokemonNameKey} {
		if v, ok := ctx.Value(key).(string); ok && v != "" {
			attrs = append(attrs, slog.String(string(key), v))
		}
	}
	if v, ok := ctx.Value(GenerationIDKey).(int); ok {
		attrs = append(attrs, slog.Int(string(GenerationIDKey), v))
	}
	return attrs
}
