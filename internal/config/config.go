package config

import (
	"os"

	"github.com/joho/godotenv"
)

const (
	AppName = "notes-api"

	DefaultDatabaseURL = "sqlite:///./sql_app.db"
	DefaultPort        = "8080"
)

type Config struct {
	DatabaseURL string
	Port        string
	CORSOrigins string
}

// Load reads the process environment, after merging a .env file from the
// working directory if one exists. Variables already set win over the file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		DatabaseURL: getenv("DB_URL", getenv("DATABASE_URL", DefaultDatabaseURL)),
		Port:        getenv("PORT", DefaultPort),
		CORSOrigins: getenv("CORS_ORIGIN", "*"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
