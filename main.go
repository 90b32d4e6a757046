package main

//go:generate swag init -g main.go -o docs

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"editorial/config"
	"editorial/controllers"
	"editorial/database"
	"editorial/handlers"
	"editorial/middleware"
	"editorial/routes"
	"editorial/services"
	"editorial/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "editorial/docs"
)

// @title Editorial API
// @version 1.0
// @description Blog and CMS backend: public reading, guest submissions and an admin API.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey CookieAuth
// @in header
// @name Cookie
// @description admin_token session cookie set by /admin/login.

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.AdminAuthorID == "" {
		log.Println("ADMIN_AUTHOR_ID is not set; guest post submissions will fail")
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	dbClient := database.NewClient(cfg)
	db, err := dbClient.DB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbClient.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	var imageHost services.ImageHost
	if cfg.CloudinaryURL != "" {
		host, err := services.NewCloudinaryHost(cfg.CloudinaryURL)
		if err != nil {
			log.Fatalf("Failed to configure image host: %v", err)
		}
		imageHost = host
	} else {
		log.Println("CLOUDINARY_URL is not set; uploads are disabled")
	}

	tp, err := telemetry.NewTracerProvider(cfg.TracesExporter, os.Stdout)
	if err != nil {
		log.Fatalf("Failed to configure tracing: %v", err)
	}
	if tp != nil {
		otel.SetTracerProvider(tp)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				log.Printf("Failed to flush traces: %v", err)
			}
		}()
	}

	hubService := services.NewHubService()
	limits := routes.DefaultLimits()
	defer limits.Stop()

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Fatalf("Invalid TRUSTED_PROXIES: %v", err)
	}
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Tracing())
	r.Use(middleware.CORS(cfg.CorsAllowedOrigins))
	r.Use(middleware.ErrorHandler())

	routes.SetupRoutes(r, routes.Controllers{
		Auth:       controllers.NewAuthController(db, cfg),
		Post:       controllers.NewPostController(db),
		PublicPost: controllers.NewPublicPostController(db),
		GuestPost:  controllers.NewGuestPostController(db, cfg.AdminAuthorID, hubService),
		Comment:    controllers.NewCommentController(db, hubService),
		Contact:    controllers.NewContactController(db, hubService),
		About:      controllers.NewAboutController(db),
		Upload:     controllers.NewUploadController(imageHost, cfg.UploadFolder),
		Page:       controllers.NewPageController(cfg.AdminUIDir),
		WebSocket:  handlers.NewWebSocketHandler(hubService, cfg.CorsAllowedOrigins),
	}, limits)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		log.Printf("Swagger docs available at: http://localhost:%s/swagger/index.html", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
