package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"

	"github.com/vie2206/levelup-backend/internal/ai"
	"github.com/vie2206/levelup-backend/internal/auth"
	"github.com/vie2206/levelup-backend/internal/config"
	"github.com/vie2206/levelup-backend/internal/handlers"
	"github.com/vie2206/levelup-backend/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on the environment.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Could not load configuration: %v", err)
	}

	users := store.NewUserStore()
	ledger := store.NewLedger()
	issuer := auth.NewTokenIssuer(cfg.JWTSecret)
	google := auth.NewGoogleVerifier(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleCallbackURL)
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))

	var aiService *ai.Service
	if cfg.GeminiAPIKey != "" {
		aiService, err = ai.NewService(cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("Could not initialize AI service: %v", err)
		}
	} else {
		log.Println("GEMINI_API_KEY not set, practice test generation disabled.")
	}

	h := handlers.New(users, ledger, issuer, google, sessionStore, aiService,
		cfg.FrontendURL, cfg.Environment)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	h.Register(router)

	log.Printf("Starting server on port %s...", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
