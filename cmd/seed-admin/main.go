// Command seed-admin creates the first admin account from ADMIN_EMAIL,
// ADMIN_PASSWORD and ADMIN_NAME. Running it again is harmless.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"editorial/config"
	"editorial/database"
	"editorial/services"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := config.Load()
	if cfg.DatabaseURL == "" && cfg.DBName == "" {
		log.Fatal("DATABASE_URL or DB_NAME is required")
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}

	client := database.NewClient(cfg)
	db, err := client.DB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer client.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, created, err := services.NewAuthService(db, cfg.JWTSecret).EnsureAdmin(ctx, email, password, os.Getenv("ADMIN_NAME"))
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	if created {
		log.Printf("Admin created: %s (id %s)", admin.Email, admin.ID)
	} else {
		log.Printf("Admin already exists: %s (id %s)", admin.Email, admin.ID)
	}
	log.Printf("Set ADMIN_AUTHOR_ID=%s to attribute guest posts to this admin", admin.ID)
}
