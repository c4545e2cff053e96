package usecase

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("pokedex-hub/usecase")
