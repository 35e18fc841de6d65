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

	"fittech/gym-app/internal/api"
	"fittech/gym-app/internal/config"
	"fittech/gym-app/internal/identity"
	"fittech/gym-app/internal/payment"
	"fittech/gym-app/internal/repository/mongo"
	"fittech/gym-app/internal/service"
	"fittech/gym-app/internal/storage"
	"fittech/gym-app/internal/tokenstore"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting FitTech Gym Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		identity.EnsureAccountIndexes(ctx, appDB.Collection("accounts"))
		mongo.EnsureMemberIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureTrainerIndexes(ctx, appDB.Collection("trainers"))
		mongo.EnsureSessionIndexes(ctx, appDB.Collection("sessions"))
		mongo.EnsureRegistrationIndexes(ctx, appDB.Collection("registrations"))
		log.Println("Index creation process completed.")
	}()

	// --- Token Revocation Store ---
	log.Println("Connecting to Redis...")
	revoked, err := tokenstore.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to Redis: %v", err)
	}

	// --- Initialize Storage ---
	log.Println("Initializing media storage service...")
	mediaStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Payment Gateway ---
	gateway, err := payment.NewMercadoPagoGateway(cfg.Payment.AccessToken)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize payment gateway: %v", err)
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	identityProvider := identity.NewMongoProvider(appDB)
	memberRepo := mongo.NewMongoMemberRepository(appDB)
	trainerRepo := mongo.NewMongoTrainerRepository(appDB)
	adminRepo := mongo.NewMongoAdminRepository(appDB)
	sessionRepo := mongo.NewMongoSessionRepository(appDB)
	feedbackRepo := mongo.NewMongoFeedbackRepository(appDB)
	registrationRepo := mongo.NewMongoRegistrationRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(identityProvider, memberRepo, trainerRepo, adminRepo, revoked, cfg.JWT.Secret, cfg.JWT.Expiration)
	registrationService := service.NewRegistrationService(identityProvider, gateway, memberRepo, registrationRepo)
	bookingService := service.NewBookingService(sessionRepo, memberRepo, trainerRepo)
	feedbackService := service.NewFeedbackService(feedbackRepo, memberRepo)
	memberService := service.NewMemberService(memberRepo)
	catalogService := service.NewCatalogService(mediaStorage)

	// --- Initialize Gin Engine ---
	router := gin.Default()

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, revoked, authService, registrationService, bookingService, feedbackService, memberService, catalogService)

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
