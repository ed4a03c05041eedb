package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cvdss/cvdss/internal/config"
	"github.com/cvdss/cvdss/internal/domain/account"
	"github.com/cvdss/cvdss/internal/domain/cvd"
	"github.com/cvdss/cvdss/internal/domain/patient"
	"github.com/cvdss/cvdss/internal/platform/auth"
	"github.com/cvdss/cvdss/internal/platform/db"
	"github.com/cvdss/cvdss/internal/platform/middleware"
	"github.com/cvdss/cvdss/internal/platform/predictor"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:           "cvdss-server",
		Short:         "Cardiovascular disease decision support API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(evaluateCmd())
	rootCmd.AddCommand(userCmd())
	rootCmd.AddCommand(migrateCmd())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func newLogger(env string) zerolog.Logger {
	if env == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// openPool checks the database settings and connects.
func openPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	if err := cfg.RequireDatabase(); err != nil {
		return nil, err
	}
	return db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
}

// newRevocationStore uses Redis when REDIS_URL is set and process memory
// otherwise.
func newRevocationStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (auth.RevocationStore, error) {
	if cfg.RedisURL == "" {
		logger.Warn().Msg("REDIS_URL not set, token revocations are kept in memory")
		return auth.NewMemoryRevocationStore(5 * time.Minute), nil
	}
	client, err := auth.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	logger.Info().Msg("connected to redis")
	return auth.NewRedisRevocationStore(client), nil
}

func runServer(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Env)

	if err := cfg.Validate(); err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return err
	}

	pool, err := openPool(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to database")
		return err
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	revocations, err := newRevocationStore(ctx, cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to redis")
		return err
	}
	defer revocations.Close()

	pred, err := predictor.New(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("failed to set up predictor")
		return err
	}
	logger.Info().Str("mode", cfg.PredictorMode).Msg("predictor ready")

	issuer := auth.NewTokenIssuer([]byte(cfg.JWTSigningKey), cfg.JWTIssuer, cfg.TokenTTL)

	accountSvc := account.NewService(account.NewUserRepo(pool), logger)
	patientSvc := patient.NewService(patient.NewRepo(pool), cvd.NewEngine(pred), logger)

	e := newEcho(serverDeps{
		cfg:         cfg,
		logger:      logger,
		issuer:      issuer,
		revocations: revocations,
		dbHealth:    db.HealthHandler(pool),
		routes: []routeRegistrar{
			account.NewHandler(accountSvc, issuer, revocations, logger),
			patient.NewHandler(patientSvc, logger),
		},
	})

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		logger.Error().Err(err).Msg("server error")
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

type routeRegistrar interface {
	RegisterRoutes(api *echo.Group)
}

type serverDeps struct {
	cfg         *config.Config
	logger      zerolog.Logger
	issuer      *auth.TokenIssuer
	revocations auth.RevocationStore
	// dbHealth is optional.
	dbHealth echo.HandlerFunc
	routes   []routeRegistrar
}

func newEcho(d serverDeps) *echo.Echo {
	cfg := d.cfg

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(d.logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(d.logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
	}))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit(cfg.BodyLimit))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})
	if d.dbHealth != nil {
		e.GET("/health/db", d.dbHealth)
	}

	apiV1 := e.Group("/api/v1")
	apiV1.Use(auth.JWTMiddleware(auth.JWTConfig{
		Issuer:      d.issuer,
		Revocations: d.revocations,
		Skipper:     auth.AuthSkipper,
		Logger:      d.logger,
	}))

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
		IdleTTL:           10 * time.Minute,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))
	if cfg.RequestTimeout > 0 {
		apiV1.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	}
	apiV1.Use(middleware.Audit(d.logger))

	for _, r := range d.routes {
		r.RegisterRoutes(apiV1)
	}
	return e
}
