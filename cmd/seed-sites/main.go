// README: Seeds the built-in cultural sites into Firestore and/or Postgres.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"nusavarta/internal/config"
	"nusavarta/internal/infra"
	"nusavarta/internal/logger"
	"nusavarta/internal/modules/sites"
)

func main() {
	toFirestore := flag.Bool("firestore", false, "write to the storyPlaces Firestore collection")
	toPostgres := flag.Bool("postgres", false, "write to the cultural_sites table (runs migrations first)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, "console")
	defer func() { _ = log.Sync() }()

	if !*toFirestore && !*toPostgres {
		log.Fatal("nothing to do: pass -firestore and/or -postgres")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	list := sites.Builtin()

	if *toPostgres {
		if err := seedPostgres(ctx, cfg, list, log); err != nil {
			log.Fatal("postgres seed failed", zap.Error(err))
		}
	}
	if *toFirestore {
		if err := seedFirestore(ctx, cfg, list); err != nil {
			log.Fatal("firestore seed failed", zap.Error(err))
		}
	}
	log.Info("seeded cultural sites", zap.Int("count", len(list)))
}

func seedPostgres(ctx context.Context, cfg config.Config, list []sites.Site, log *zap.Logger) error {
	if err := infra.RunMigrations(cfg.DB.DSN, log); err != nil {
		return err
	}
	pool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := infra.WaitForDB(ctx, pool, log); err != nil {
		return err
	}
	return sites.NewPGStore(pool).Upsert(ctx, list)
}

func seedFirestore(ctx context.Context, cfg config.Config, list []sites.Site) error {
	if cfg.Firebase.ProjectID == "" {
		return fmt.Errorf("FIREBASE_PROJECT_ID is required")
	}
	app, err := infra.NewFirebaseApp(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		return err
	}
	client, err := infra.NewFirestore(ctx, app)
	if err != nil {
		return err
	}
	defer client.Close()
	return sites.NewFirestoreStore(client).Upsert(ctx, list)
}
