package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"talktrainer-backend/internal/config"
	"talktrainer-backend/internal/database"
	"talktrainer-backend/internal/handlers"
	"talktrainer-backend/internal/middleware"
	"talktrainer-backend/internal/repository"
	"talktrainer-backend/internal/router"
	"talktrainer-backend/internal/services"
	"talktrainer-backend/internal/websocket"
	"talktrainer-backend/internal/worker"
)

func main() {
	log.Println("🚀 Starting TalkTrainer Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClients.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	sessionRepo := repository.NewSessionRepo(pool)
	progressRepo := repository.NewProgressRepo(pool)
	skillRepo := repository.NewSkillRepo(pool)
	jobRepo := repository.NewJobRepo(pool)

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	emailService := services.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.AppURL)
	authService := services.NewAuthService(userRepo, redisClients.Queue, jwtAuth, emailService)
	sessionService := services.NewSessionService(pool)
	feedbackService := services.NewFeedbackService(rand.New(rand.NewSource(time.Now().UnixNano())))

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	sessionHandler := handlers.NewSessionHandler(sessionService, sessionRepo)
	feedbackHandler := handlers.NewFeedbackHandler(jobRepo, redisClients.Queue)
	progressHandler := handlers.NewProgressHandler(progressRepo, skillRepo)
	dashboardHandler := handlers.NewDashboardHandler(userRepo, progressRepo)
	userHandler := handlers.NewUserHandler(userRepo)

	// ──── Step 5: Start Analysis Worker Pool ────
	workerPool := worker.NewPool(
		redisClients.Queue,
		jobRepo,
		feedbackService,
		sessionService,
		cfg.AnalysisWorkers,
	)
	workerPool.Start()
	log.Printf("✓ Worker pool started (%d goroutines)", cfg.AnalysisWorkers)

	reminderScheduler := services.NewReminderScheduler(userRepo, emailService)
	reminderScheduler.Start()
	log.Println("✓ Practice reminder scheduler started")

	// ──── Step 6: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClients.PubSub, cfg.JWTSecret)
	log.Println("✓ WebSocket hub started")

	// ──── Step 7: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		authHandler,
		sessionHandler,
		feedbackHandler,
		progressHandler,
		dashboardHandler,
		userHandler,
		wsHub,
		cfg.CORSOrigin,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		workerPool.Stop()
		reminderScheduler.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ TalkTrainer Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
