package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	JWTSecret   string
	DatabaseURL string // Postgres connection string for the hosted store
	MongoURI    string // Optional log/audit sink; empty disables the DB tee
	MongoDBName string
	Environment string
	AppId       string

	GeminiAPIKey string // Empty means placeholder report mode
	GeminiModel  string

	PayPalClientID string
	PayPalPlanID   string // Monthly subscription plan

	SkipAuth bool
}

// LoadConfig loads configuration from environment variables.
// A missing DATABASE_URL is fatal at startup; a missing GEMINI_API_KEY is
// not, the report generator degrades to deterministic placeholder output.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		JWTSecret:      getEnv("JWT_SECRET", "secret"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MongoURI:       getEnv("MONGO_URI", ""),
		MongoDBName:    getEnv("MONGO_DB_NAME", "voicelens"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		AppId:          getEnv("APP_ID", "voicelens"),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		PayPalClientID: getEnv("PAYPAL_CLIENT_ID", "test"),
		PayPalPlanID:   getEnv("PAYPAL_PLAN_ID", ""),
		SkipAuth:       getEnv("SKIP_AUTH", "false") == "true",
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.GeminiAPIKey == "" {
		log.Println("GEMINI_API_KEY not set; reports will use placeholder output")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
