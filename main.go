package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"pulsefeed/database"
	"pulsefeed/pkg/db/sqlite"
	"pulsefeed/util"
	"pulsefeed/util/api"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	log.Println("Initializing application...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	dbPath := flag.String("db", "./social_feed.db", "path to the SQLite database file")
	migrationsPath := flag.String("migrations", "pkg/db/migrations/sqlite", "path to the migration files")
	flag.Parse()

	log.Printf("Using database at: %s", *dbPath)

	// Apply migrations before initializing the database
	_, err := sqlite.ConnectAndMigrate(*dbPath, *migrationsPath)
	if err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	// Initialize Database
	if err := database.InitDB(*dbPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Sweep expired sessions in the background so the table doesn't grow
	// without bound.
	go func() {
		for range time.Tick(time.Hour) {
			if err := util.CleanupExpiredSessions(); err != nil {
				log.Printf("Error cleaning up expired sessions: %v", err)
			}
		}
	}()

	mux := api.Routes()

	// --- CORS Middleware ---
	allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
	if allowedOrigin == "" {
		allowedOrigin = "http://localhost:3000"
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true, // Required for cookies!
	})

	handler := c.Handler(mux)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // Default port if not specified
	}

	fmt.Printf("Server running on localhost:%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
