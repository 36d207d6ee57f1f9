package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"lodge-backend/config"
	"lodge-backend/controllers"
	"lodge-backend/routes"
	"lodge-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	// Required signing secret (fatal if missing)
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("❌ ERROR: JWT_SECRET environment variable is not set. Cannot issue admin tokens.")
	}
	log.Println("✅ JWT_SECRET detected.")

	// Connect database (config.ConnectDatabase should set config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	// Optional Redis cache for dashboard stats
	rdb := config.NewRedisClient()
	if rdb != nil {
		log.Println("✅ Redis cache connected.")
	}

	// Initialize services
	notifier := services.NewNotifyDispatcher()
	lodgeService := services.NewLodgeService(db)
	roomService := services.NewRoomService(db)
	userService := services.NewUserService(db)
	bookingService := services.NewBookingService(db, notifier)
	statsService := services.NewStatsService(db, rdb)
	paymentGateway := services.NewPaymentGatewayFromEnv()

	// Initialize controllers
	authController := controllers.NewAuthController(userService, jwtSecret)
	lodgeController := controllers.NewLodgeController(lodgeService)
	roomController := controllers.NewRoomController(roomService)
	bookingController := controllers.NewBookingController(bookingService, paymentGateway)
	paymentController := controllers.NewPaymentController(paymentGateway, bookingService)
	userController := controllers.NewUserController(userService)
	statsController := controllers.NewStatsController(statsService)

	// Build router
	router := routes.SetupRouter(
		authController,
		lodgeController,
		roomController,
		bookingController,
		paymentController,
		userController,
		statsController,
		jwtSecret,
	)

	// Port from env (prefer), fallback to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
