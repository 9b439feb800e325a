package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"sanfeliz/internal/auth"
	"sanfeliz/internal/catalog"
	"sanfeliz/internal/checkout"
	"sanfeliz/internal/config"
	"sanfeliz/internal/db"
	"sanfeliz/internal/insights"
	"sanfeliz/internal/router"
	"sanfeliz/internal/session"
	"sanfeliz/internal/storage"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ───────────────────────── DB ─────────────────────────
	var pgDB *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		pgDB, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal("❌ Postgres connection failed:", err)
		}
		defer pgDB.Close()
	}

	// ───────────────────────── STORAGE ─────────────────────────
	var images catalog.Storage
	if cfg.R2.Enabled() {
		r2Client, err := storage.NewR2Client(ctx, cfg.R2)
		if err != nil {
			log.Fatal("❌ R2 init failed:", err)
		}
		images = r2Client
	} else {
		log.Println("R2 not configured, image uploads disabled")
	}

	// ───────────────────────── CATALOG ─────────────────────────
	var (
		reader catalog.Reader
		writer catalog.Writer
	)
	switch cfg.CatalogSource {
	case config.SourcePostgres:
		repo := catalog.NewPostgresRepository(pgDB)
		reader, writer = repo, repo
	case config.SourceContentful:
		reader = catalog.NewContentfulClient(
			cfg.ContentfulSpaceID,
			cfg.ContentfulAccessToken,
			cfg.ContentfulEnvironment,
		)
	default:
		repo := catalog.NewSeededRepository()
		reader, writer = repo, repo
	}
	log.Println("✅ Catalog source:", cfg.CatalogSource)

	catalogService := catalog.NewService(reader, writer, images)

	// ───────────────────────── CHECKOUT ─────────────────────────
	var orders checkout.Repository = checkout.NewInMemoryRepository()
	if pgDB != nil {
		orders = checkout.NewPostgresRepository(pgDB)
	}

	mercadoPago := checkout.NewMercadoPagoClient(cfg.MercadoPagoAccessToken, cfg.SiteURL)
	checkoutService := checkout.NewService(mercadoPago, orders, checkout.LogTracker)

	// ───────────────────────── AUTH ─────────────────────────
	var admins auth.AdminRepository = auth.NewInMemoryAdminRepository()
	if pgDB != nil {
		admins = auth.NewPostgresAdminRepository(pgDB)
	}
	authService := auth.NewService(admins)

	if cfg.AdminEmail != "" {
		created, err := authService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			log.Fatal("❌ Admin bootstrap failed:", err)
		}
		if created {
			log.Println("✅ Admin account created:", cfg.AdminEmail)
		}
	}

	// ───────────────────────── SESSIONS ─────────────────────────
	sessions := session.NewStore(cfg.Order, cfg.SessionTTL)
	go sweepSessions(ctx, sessions, time.Minute)

	// ───────────────────────── ROUTER ─────────────────────────
	sessionHandler := session.NewHandler(
		sessions,
		catalogService,
		checkoutService,
		cfg.WhatsAppPhone,
		cfg.MercadoPagoPublicKey,
	)

	r := router.NewRouter(router.Deps{
		Catalog:     catalog.NewHandler(catalogService),
		Sessions:    sessionHandler,
		Checkout:    checkout.NewHandler(checkoutService, mercadoPago),
		Auth:        auth.NewHandler(authService),
		Insights:    insights.NewHandler(insights.NewService(orders, 500)),
		CORSOrigins: cfg.CORSOrigins,
	})

	// ───────────────────────── START ─────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Println("shutdown:", err)
		}
	}()

	log.Printf("🚀 API running at http://localhost:%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func sweepSessions(ctx context.Context, store *session.Store, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.Sweep(); n > 0 {
				log.Printf("Expired %d order sessions", n)
			}
		}
	}
}
