package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alcyxob/coaching-app/internal/api"
	"alcyxob/coaching-app/internal/config"
	"alcyxob/coaching-app/internal/repository/memory"
	"alcyxob/coaching-app/internal/seed"
	"alcyxob/coaching-app/internal/service"
	"alcyxob/coaching-app/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Coaching App Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Seed Data ---
	// All state lives in process memory; the seed is the entire initial
	// dataset and a restart resets everything to it.
	seedData, err := seed.Demo(cfg.Seed.Demo)
	if err != nil {
		log.Fatalf("FATAL: Could not build seed data: %v", err)
	}

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	accountRepo := memory.NewAccountRepository(seedData.Accounts)
	traineeRepo := memory.NewTraineeRepository(seedData.Trainees)
	trainerRepo := memory.NewTrainerRepository(seedData.Trainers)
	taskRepo := memory.NewTaskRepository()
	reviewRepo := memory.NewReviewRepository(seedData.Reviews)

	if cfg.Seed.Demo {
		if err := seed.ApplyTasks(context.Background(), traineeRepo, taskRepo); err != nil {
			log.Fatalf("FATAL: Could not apply demo tasks: %v", err)
		}
		log.Println("Demo dataset loaded.")
	}

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(accountRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	trainerService := service.NewTrainerService(traineeRepo, trainerRepo, taskRepo, reviewRepo, fileStorage, cfg.Server.BaseURL)
	traineeService := service.NewTraineeService(traineeRepo, trainerRepo, taskRepo, reviewRepo, fileStorage)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, authService, trainerService, traineeService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
