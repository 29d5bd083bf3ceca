package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"

	"tripfront/internal/config"
	"tripfront/internal/handlers"
	"tripfront/internal/middleware"
	"tripfront/internal/routes"
	"tripfront/internal/service"
	"tripfront/internal/store"
	"tripfront/internal/utils"
	"tripfront/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// pgxpool with simple protocol (needed when connecting through PgBouncer)
	poolCfg, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		log.Fatalf("parse dsn: %v", err)
	}
	poolCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "tripfront"
	poolCfg.ConnConfig.RuntimeParams["statement_timeout"] = "30000" // 30s
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns
	poolCfg.MaxConnLifetime = cfg.Database.MaxLifetime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	// Boot-time ping
	{
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			log.Fatalf("ping: %v", err)
		}
	}

	// Explicit schema initialization; drops tables first only when
	// DB_RESET_ON_START is set.
	{
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.QueryTimeout)
		defer cancel()
		if err := store.EnsureSchema(ctx, pool, cfg.Database.ResetOnStart); err != nil {
			log.Fatalf("schema: %v", err)
		}
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("templates: %v", err)
	}

	// --- HTTP Handlers ---

	tripService := service.NewTripService(store.NewPostgresTripStore(pool))
	commitmentService := service.NewCommitmentService(store.NewPostgresCommitmentStore(pool))
	flash := utils.NewFlashStore(cfg.Session.SecretKey)

	pagesHandler := handlers.NewPagesHandler(renderer)
	tripsHandler := handlers.NewTripsHandler(tripService, commitmentService, renderer, flash)
	healthHandler := handlers.NewHealthHandler(pool)

	mux := routes.SetupRoutes(pagesHandler, tripsHandler, healthHandler)

	// --- HTTP Server + Graceful Shutdown ---

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	// Every request gets a visitor identity before reaching the handlers.
	handler := c.Handler(middleware.Actor(&cfg.Session, mux))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped.")
}
