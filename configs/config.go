package configs

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	DBSource       string
	Port           string
	JWTSecret      string
	JWTTTL         time.Duration
	AdminRegistKey string
	AdminSeedEmail string
	AdminSeedPass  string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn("no .env file, using environment only")
	}

	return &Config{
		DBSource:       getEnv("DB_SOURCE", "coffee.db"),
		Port:           getEnv("PORT", "8000"),
		JWTSecret:      getEnv("JWT_SECRET", "change-this-secret"),
		JWTTTL:         time.Duration(168) * time.Hour, // 7 days
		AdminRegistKey: getEnv("ADMIN_REGISTRATION_KEY", "admin-key"),
		AdminSeedEmail: os.Getenv("ADMIN_EMAIL"),
		AdminSeedPass:  os.Getenv("ADMIN_PASSWORD"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
