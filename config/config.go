package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURL  string
	DBName    string
	Port      string
	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration
	ReportDir string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		MongoURL:  os.Getenv("MONGO_URL"),
		DBName:    os.Getenv("DB_NAME"),
		Port:      os.Getenv("PORT"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTIssuer: os.Getenv("JWT_ISSUER"),
		ReportDir: os.Getenv("REPORT_DIR"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DBName == "" {
		cfg.DBName = "fleetstock"
	}
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "fleetstock"
	}

	cfg.TokenTTL = 24 * time.Hour
	if raw := os.Getenv("JWT_TTL_MINUTES"); raw != "" {
		if minutes, err := strconv.Atoi(raw); err == nil && minutes > 0 {
			cfg.TokenTTL = time.Duration(minutes) * time.Minute
		}
	}
	return cfg
}
