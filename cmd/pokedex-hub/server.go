package main

import (
	"context"
	"fmt"
	"log/slog"

	"pokedex-hub/config"
	"pokedex-hub/internal/adapter/gateway"
	adapterhandler "pokedex-hub/internal/adapter/handler"
	"pokedex-hub/internal/domain"
	"pokedex-hub/internal/infrastructure/credential"
	infratoken "pokedex-hub/internal/infrastructure/token"
	"pokedex-hub/internal/usecase"
	appmiddleware "pokedex-hub/middleware"
	"pokedex-hub/utils/logger"
	"pokedex-hub/utils/validator"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

// serverOptions carries process-level settings that are not part of Config.
type serverOptions struct {
	otelEnabled    bool
	serviceName    string
	serviceVersion string
}

// newServer wires infrastructure, usecases and handlers into an Echo server.
// Background work started here stops when ctx is done.
func newServer(ctx context.Context, cfg *config.Config, log *slog.Logger, opts serverOptions) (*echo.Echo, error) {
	// Infrastructure
	catalog := gateway.NewPokeAPIGateway(gateway.PokeAPIConfig{
		BaseURL:       cfg.CatalogBaseURL,
		Timeout:       cfg.CatalogTimeout,
		RatePerSecond: cfg.CatalogRateLimit,
		Burst:         cfg.CatalogRateBurst,
	})

	var (
		authenticator domain.Authenticator
		users         *credential.Store
		jwtIssuer     *infratoken.JWTIssuer
		err           error
	)
	switch cfg.AuthProvider {
	case config.AuthProviderKratos:
		authenticator = gateway.NewKratosGateway(cfg.KratosURL, cfg.KratosTimeout)
		// Kratos issues its own session tokens; the password grant rejects everyone.
		if users, err = credential.NewStore(nil); err != nil {
			return nil, err
		}
		jwtIssuer = infratoken.NewJWTIssuer(infratoken.JWTConfig{Issuer: cfg.TokenIssuer})
	default:
		table, err := credential.ParseUsers(cfg.AuthUsers)
		if err != nil {
			return nil, fmt.Errorf("parse AUTH_USERS: %w", err)
		}
		if users, err = credential.NewStore(table); err != nil {
			return nil, fmt.Errorf("load AUTH_USERS: %w", err)
		}
		jwtIssuer = infratoken.NewJWTIssuer(infratoken.JWTConfig{
			Secret: cfg.TokenSecret,
			Issuer: cfg.TokenIssuer,
		})
		authenticator = infratoken.NewStaticAuthenticator(jwtIssuer, users)
	}

	v := validator.New()

	// Usecases
	summaryUC := usecase.NewFetchSummary(catalog, usecase.NewMoveRanker(catalog, log), log)
	generationUC := usecase.NewListGeneration(catalog, v, log)
	tokenUC := usecase.NewIssueToken(users, jwtIssuer, log)

	// Handlers
	pokemonHandler := adapterhandler.NewPokemonHandler(summaryUC, v)
	generationHandler := adapterhandler.NewGenerationHandler(generationUC)
	tokenHandler := adapterhandler.NewTokenHandler(tokenUC, v)
	healthHandler := adapterhandler.NewHealthHandler(opts.serviceName, opts.serviceVersion)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Security middleware
	e.Use(appmiddleware.SecurityHeaders())

	// OpenTelemetry tracing
	if opts.otelEnabled {
		e.Use(otelecho.Middleware(opts.serviceName))
		e.Use(appmiddleware.OTelStatusMiddleware())
	}

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		RequestIDHandler: func(c echo.Context, id string) {
			c.SetRequest(c.Request().WithContext(logger.WithRequestID(c.Request().Context(), id)))
		},
	}))

	// Request logging
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			rctx := c.Request().Context()
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
			}
			if identity, ok := appmiddleware.IdentityFrom(c); ok {
				attrs = append(attrs, "user", identity.Username)
			}
			if v.Error == nil {
				log.InfoContext(rctx, "request completed", attrs...)
			} else {
				log.ErrorContext(rctx, "request failed", append(attrs, "error", v.Error.Error())...)
			}
			return nil
		},
	}))

	e.Use(middleware.Recover())

	// Rate limiters per endpoint group
	apiRL := appmiddleware.NewRateLimiter(ctx, cfg.RateLimitPerMinute, max(cfg.RateLimitPerMinute/6, 1))
	loginRL := appmiddleware.NewRateLimiter(ctx, cfg.LoginRateLimitPerMinute, max(cfg.LoginRateLimitPerMinute/3, 1))

	// Public routes
	e.POST("/token", tokenHandler.Handle, loginRL.Middleware())
	e.GET("/health", healthHandler.Handle)

	// Bearer-gated routes
	api := e.Group("", apiRL.Middleware(), appmiddleware.BearerAuth(authenticator))
	api.GET("/pokemon/:name", pokemonHandler.Handle)
	api.GET("/generation/:id", generationHandler.Handle)

	return e, nil
}
