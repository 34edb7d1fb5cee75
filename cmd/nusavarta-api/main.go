// README: Entry point; loads config, wires backends and services, serves HTTP until signalled.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"nusavarta/internal/ai"
	"nusavarta/internal/config"
	httptransport "nusavarta/internal/http"
	"nusavarta/internal/infra"
	"nusavarta/internal/logger"
	"nusavarta/internal/maps"
	"nusavarta/internal/modules/guide"
	"nusavarta/internal/modules/history"
	"nusavarta/internal/modules/intent"
	"nusavarta/internal/modules/route"
	"nusavarta/internal/modules/session"
	"nusavarta/internal/modules/sites"
	"nusavarta/internal/service"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	var (
		fbApp     *firebase.App
		fsClient  *firestore.Client
		verifier  infra.TokenVerifier
		err       error
		closeFns  []func()
		redisConn *redis.Client
	)
	defer func() {
		for i := len(closeFns) - 1; i >= 0; i-- {
			closeFns[i]()
		}
	}()

	if cfg.NeedsFirebase() {
		fbApp, err = infra.NewFirebaseApp(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			return err
		}
		if cfg.History.Enabled || cfg.Sites.Source == config.SitesSourceFirestore {
			fsClient, err = infra.NewFirestore(ctx, fbApp)
			if err != nil {
				return err
			}
			closeFns = append(closeFns, func() { _ = fsClient.Close() })
		}
		if cfg.Auth.Enabled {
			verifier, err = infra.NewFirebaseVerifier(ctx, fbApp)
			if err != nil {
				return err
			}
		}
	}

	// Sites
	var siteStore sites.Store
	switch cfg.Sites.Source {
	case config.SitesSourceFirestore:
		siteStore = sites.NewFirestoreStore(fsClient)
	case config.SitesSourcePostgres:
		if cfg.Sites.Migrate {
			if err := infra.RunMigrations(cfg.DB.DSN, log); err != nil {
				return err
			}
		}
		pool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		closeFns = append(closeFns, pool.Close)
		if err := infra.WaitForDB(ctx, pool, log); err != nil {
			return err
		}
		siteStore = sites.NewPGStore(pool)
	default:
		siteStore = sites.NewStaticStore()
	}
	catalog := sites.NewCatalog(siteStore, cfg.Sites.CacheTTL, log)

	// Sessions
	var (
		sessions session.Store
		locker   session.Locker
	)
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		redisConn = infra.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		closeFns = append(closeFns, func() { _ = redisConn.Close() })
		if err := infra.PingRedis(ctx, redisConn); err != nil {
			return err
		}
		sessions = session.NewRedisStore(redisConn, cfg.Session.TTL)
		locker = session.NewRedisLocker(redisConn, cfg.Session.LockTTL)
	default:
		sessions = session.NewMemoryStore(cfg.Session.TTL)
		locker = session.NewKeyedMutex()
	}

	// Providers
	gemini, err := ai.NewGeminiProvider(ctx, ai.GeminiOptions{
		APIKey:      cfg.Gemini.APIKey,
		Model:       cfg.Gemini.Model,
		Temperature: cfg.Gemini.Temperature,
	})
	if err != nil {
		return err
	}
	closeFns = append(closeFns, gemini.Close)

	mapsClient, err := maps.NewClient(cfg.Maps.APIKey)
	if err != nil {
		return err
	}
	mapsOpts := maps.Options{Region: cfg.Maps.Region, Language: cfg.Maps.Language}
	geocoder := maps.NewGeocoder(mapsClient, maps.NewPlacesService(mapsClient, mapsOpts), mapsOpts)

	// Core
	classifier, err := intent.NewClassifier(gemini, catalog, cfg.Gemini.Timeout, log)
	if err != nil {
		return err
	}
	builder := route.NewBuilder(geocoder, maps.NewRouteService(mapsClient, mapsOpts), catalog, route.Config{
		MaxWaypoints: cfg.Route.MaxWaypoints,
		Timeout:      cfg.Maps.Timeout,
	}, log)

	var recorder history.Recorder = history.NopRecorder{}
	if cfg.History.Enabled {
		recorder = history.NewFirestoreRecorder(fsClient)
	}

	relay := service.NewRelay(service.RelayDeps{
		Sessions:   sessions,
		Locker:     locker,
		Classifier: classifier,
		Routes:     builder,
		Guide:      guide.New(gemini, catalog, cfg.Gemini.Timeout, log),
		History:    recorder,
		Log:        log,
	})

	if cfg.Log.Format == "json" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := httptransport.NewServer(httptransport.ServerDeps{
		Relay:          relay,
		Sites:          catalog,
		Verifier:       verifier,
		AuthRequired:   cfg.Auth.Required,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestTimeout: cfg.HTTP.RequestTimeout,
		ChatRate:       cfg.HTTP.ChatRate,
		ChatBurst:      cfg.HTTP.ChatBurst,
		Version:        version,
		Log:            log,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      handler.Routes(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening",
			zap.String("addr", cfg.HTTP.Addr),
			zap.String("session_backend", cfg.Session.Backend),
			zap.String("sites_source", cfg.Sites.Source),
			zap.Bool("auth", cfg.Auth.Enabled),
			zap.Bool("history", cfg.History.Enabled),
		)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
