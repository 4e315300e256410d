package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	_ "github.com/comitanigiacomo/kiroku-share-engine/docs"
	"github.com/comitanigiacomo/kiroku-share-engine/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kiroku-share-engine/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kiroku-share-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/analytics"
	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/domain"
	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/services"
	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/workers"
)

// @title           Kiroku Share Engine API
// @version         1.0
// @description     Progress tracking, stats aggregation and share banner backend.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	startTime := time.Now()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}

	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "5432"
	}

	serverPort := os.Getenv("PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("Critical: JWT_SECRET is not set")
	}

	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "kiroku-share-engine"
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPass, dbHost, dbPort, dbName)

	log.Println("Connecting to database...")

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		log.Fatalf("Critical: Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("Database connected successfully.")

	redisDB := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			redisDB = parsed
		}
	}

	redisClient, err := cache.NewRedisClient(
		os.Getenv("REDIS_HOST"),
		os.Getenv("REDIS_PORT"),
		os.Getenv("REDIS_PASSWORD"),
		redisDB,
	)
	if err != nil {
		log.Printf("Redis unavailable, running without cache and rate limiting: %v", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Println("Redis connected successfully.")
	}

	userRepo := repository.NewPostgresUserRepository(db.DB)

	var itemRepo domain.ItemRepository = repository.NewPostgresItemRepository(db)
	if redisClient != nil {
		itemRepo = repository.NewCachedItemRepository(itemRepo, redisClient)
	}

	sessionRepo := repository.NewPostgresSessionRepository(db)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	rollupWorker := workers.NewRollupWorker(itemRepo, sessionRepo)
	rollupWorker.Start(workerCtx)

	authService := services.NewAuthService(userRepo)
	tokenService := services.NewTokenService(jwtSecret, jwtIssuer, 24*time.Hour, userRepo)
	itemService := services.NewItemService(itemRepo)
	sessionService := services.NewSessionService(sessionRepo, itemRepo, rollupWorker)
	statsService := services.NewStatsService(itemRepo, sessionRepo)
	shareService := services.NewShareService(analytics.NewRecorder())

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:    adapterHTTP.NewAuthHandler(authService, tokenService),
		ItemHandler:    adapterHTTP.NewItemHandler(itemService),
		SessionHandler: adapterHTTP.NewSessionHandler(sessionService),
		StatsHandler:   adapterHTTP.NewStatsHandler(statsService),
		ShareHandler:   adapterHTTP.NewShareHandler(shareService),
		TokenService:   tokenService,
		DB:             db,
		Redis:          redisClient,
		StartTime:      startTime,
	})

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Kiroku Share Engine running on http://localhost:%s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
