package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"sanfeliz/internal/catalog"
	"sanfeliz/internal/config"
	"sanfeliz/internal/db"
)

func main() {
	log.Println("🔄 Catalog sync starting...")

	cfg, err := config.LoadSync()
	if err != nil {
		log.Fatal("❌ ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgDB, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Postgres connection failed:", err)
	}
	defer pgDB.Close()

	var source catalog.Reader = catalog.NewSeededRepository()
	if cfg.FromContentful() {
		source = catalog.NewContentfulClient(
			cfg.ContentfulSpaceID,
			cfg.ContentfulAccessToken,
			cfg.ContentfulEnvironment,
		)
		log.Println("✅ Source: Contentful")
	} else {
		log.Println("✅ Source: default menu")
	}
	mirror := catalog.NewPostgresRepository(pgDB)

	runOnce(ctx, source, mirror)
	if cfg.Interval == 0 {
		return
	}

	log.Printf("Syncing every %s. Press Ctrl+C to stop.", cfg.Interval)

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Catalog sync stopped")
			return
		case <-ticker.C:
			runOnce(ctx, source, mirror)
		}
	}
}

func runOnce(ctx context.Context, source catalog.Reader, mirror catalog.Mirror) {
	imported, skipped, err := catalog.Sync(ctx, source, mirror)
	if err != nil {
		log.Printf("⚠️  Sync error: %v", err)
		return
	}
	log.Printf("✅ Synced %d products (%d skipped)", imported, skipped)
}
