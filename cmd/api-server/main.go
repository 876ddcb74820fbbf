package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"moviehub/internal/auth"
	"moviehub/internal/catalog"
	"moviehub/internal/lifecycle"
	"moviehub/internal/middleware"
	"moviehub/internal/store"
	fsstore "moviehub/internal/store/firestore"
	sqlitestore "moviehub/internal/store/sqlite"
	synchub "moviehub/internal/sync"
	"moviehub/internal/watchlist"
	"moviehub/pkg/database"
	"moviehub/pkg/utils"
)

func main() {
	boot := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := utils.LoadConfig(configPath())
	if err != nil {
		boot.Fatal().Err(err).Msg("load config")
	}
	logger := newLogger(cfg.Logging)

	ctx := context.Background()

	// The sqlite handle doubles as the local-identity user table, so
	// it is opened whenever either side needs it.
	var db *sql.DB
	if cfg.Store.Driver == "sqlite" || cfg.Auth.Mode == "local" {
		path := cfg.Store.SQLitePath
		if path == "" {
			path = database.DefaultConfig().Path
		}
		db = database.MustOpen(database.Config{Path: path})
		if err := database.Migrate(db); err != nil {
			logger.Fatal().Err(err).Msg("db migrate failed")
		}
	}

	var app *firebase.App
	if cfg.Store.Driver == "firestore" || cfg.Auth.Mode == "firebase" {
		var opts []option.ClientOption
		if cfg.Store.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.Store.CredentialsFile))
		}
		app, err = firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Store.ProjectID}, opts...)
		if err != nil {
			logger.Fatal().Err(err).Msg("init firebase app")
		}
	}

	var st store.Store
	switch cfg.Store.Driver {
	case "firestore":
		client, err := app.Firestore(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg("init firestore client")
		}
		st = fsstore.New(client)
	default:
		st = sqlitestore.New(db)
	}
	defer st.Close()
	if db != nil && cfg.Store.Driver != "sqlite" {
		defer db.Close()
	}

	var (
		verifier auth.Verifier
		identity auth.Identity
	)
	switch cfg.Auth.Mode {
	case "firebase":
		authClient, err := app.Auth(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg("init firebase auth client")
		}
		verifier = auth.NewFirebaseVerifier(authClient)
		identity = auth.NewFirebaseIdentity(cfg.Auth.WebAPIKey)
	default:
		local := &auth.LocalIdentity{
			DB: db,
			Tokens: auth.TokenService{
				Secret:   []byte(cfg.Auth.JWTSecret),
				Issuer:   cfg.Auth.JWTIssuer,
				Duration: cfg.Auth.TokenTTL,
			},
		}
		verifier, identity = local, local
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(logger), gin.Recovery())

	// avoid the "trusted all proxies" warning
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	hub := synchub.NewHub()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "store": cfg.Store.Driver})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := hub.Stats()
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := st.Ping(pingCtx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":      "not_ready",
				"store_error": err.Error(),
				"ws_clients":  stats.WSClients,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":     "ready",
			"store":      "ok",
			"ws_clients": stats.WSClients,
		})
	})

	// Public routes
	root := router.Group("")
	catalog.NewHandler(st, logger).RegisterRoutes(root)
	auth.NewHandler(identity, logger).RegisterRoutes(root)

	// Lifecycle webhooks (reject everything while no secret is set)
	if cfg.Hooks.Secret == "" {
		logger.Warn().Msg("hooks.secret not set; lifecycle webhooks reject all requests")
	}
	hooks := lifecycle.NewHooks(st, logger)
	lifecycle.NewHandler(hooks, cfg.Hooks.Secret).RegisterRoutes(router.Group("/hooks"))

	// Protected routes
	protected := router.Group("")
	protected.Use(auth.Middleware(verifier, logger))
	watchlist.NewHandler(st, hub, logger).RegisterRoutes(protected)
	protected.GET("/watchlist/events", synchub.WSHandler(hub, logger))

	httpSrv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Msg("HTTP API server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		logger.Error().Err(err).Msg("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown error")
	}
	logger.Info().Msg("server stopped")
}

func newLogger(cfg utils.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var lg zerolog.Logger
	if cfg.Format == "json" {
		lg = zerolog.New(os.Stdout)
	} else {
		lg = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	return lg.Level(level).With().Timestamp().Logger()
}

func configPath() string {
	if p := os.Getenv("MOVIEHUB_CONFIG"); p != "" {
		return p
	}
	return "config.yaml"
}
