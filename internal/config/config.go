package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is built once in main and passed into handlers explicitly; there is
// no package-level state.
type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
	Auth   AuthConfig
	Redis  RedisConfig
	Email  EmailConfig
	SMS    SMSConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type MongoConfig struct {
	URI    string
	DBName string
}

type AuthConfig struct {
	JWTSecret         string
	AccessTokenTTLMin int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// InternalTo receives internal notification emails (new enquiries, orders).
	InternalTo string
}

type SMSConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	// StaffNumbers is the fixed fan-out list for staff SMS notifications.
	StaffNumbers []string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}

	smtpPort, _ := strconv.Atoi(getEnv("EMAIL_PORT", "587"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	accessTTL, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_TTL", "60"))

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Mongo: MongoConfig{
			URI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
			DBName: getEnv("DB_NAME", "uniformstore"),
		},
		Auth: AuthConfig{
			JWTSecret:         getEnv("JWT_SECRET", ""),
			AccessTokenTTLMin: accessTTL,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Email: EmailConfig{
			Host:       getEnv("EMAIL_HOST", ""),
			Port:       smtpPort,
			Username:   getEnv("EMAIL_USER", ""),
			Password:   getEnv("EMAIL_PASS", ""),
			From:       getEnv("EMAIL_FROM", ""),
			InternalTo: getEnv("EMAIL_INTERNAL_TO", getEnv("EMAIL_FROM", "")),
		},
		SMS: SMSConfig{
			AccountSID:   getEnv("TWILIO_ACCOUNT_SID", ""),
			AuthToken:    getEnv("TWILIO_AUTH_TOKEN", ""),
			FromNumber:   getEnv("TWILIO_PHONE_NUMBER", ""),
			StaffNumbers: splitCSV(getEnv("STAFF_PHONE_NUMBERS", "")),
		},
	}

	log.Printf("config loaded: env=%s port=%s db=%s", cfg.Server.Env, cfg.Server.Port, cfg.Mongo.DBName)
	return cfg
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func splitCSV(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
