package config

import (
	"errors"
	"fmt"

	"shop_backoffice/pkg/utils"

	"github.com/joho/godotenv"
)

// ErrMissingJWTSecret stops the process from starting without a signing secret.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

// DBConfig holds discrete connection settings used when DATABASE_URL is empty.
type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// Config is loaded once at start and passed by value afterwards.
type Config struct {
	Env                string
	Port               string
	LogLevel           string
	JWTSecret          string
	DatabaseURL        string
	DB                 DBConfig
	ApplySchema        bool
	CORSAllowedOrigins []string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	KafkaBrokers       []string
	KafkaTopic         string
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	// A missing .env is fine; real deployments use the environment.
	_ = godotenv.Load()

	cfg := Config{
		Env:         utils.Getenv("APP_ENV", "development"),
		Port:        utils.Getenv("PORT", "8080"),
		LogLevel:    utils.Getenv("LOG_LEVEL", "info"),
		JWTSecret:   utils.Getenv("JWT_SECRET", ""),
		DatabaseURL: utils.Getenv("DATABASE_URL", ""),
		DB: DBConfig{
			Host:     utils.Getenv("DB_HOST", "localhost"),
			Port:     utils.Getenv("DB_PORT", "5432"),
			User:     utils.Getenv("DB_USER", "backoffice"),
			Password: utils.Getenv("DB_PASSWORD", ""),
			Name:     utils.Getenv("DB_NAME", "backoffice"),
			SSLMode:  utils.Getenv("DB_SSLMODE", "disable"),
		},
		ApplySchema:        utils.GetenvBool("DB_APPLY_SCHEMA", false),
		CORSAllowedOrigins: utils.GetenvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		RedisAddr:          utils.Getenv("REDIS_ADDR", ""),
		RedisPassword:      utils.Getenv("REDIS_PASSWORD", ""),
		RedisDB:            utils.GetenvInt("REDIS_DB", 0),
		KafkaBrokers:       utils.GetenvList("KAFKA_BROKERS", nil),
		KafkaTopic:         utils.Getenv("KAFKA_TOPIC", "backoffice-events"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingJWTSecret
	}
	return cfg, nil
}

// IsProduction reports whether cookies must be marked secure.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// DSN returns DATABASE_URL or a key/value string built from the DB settings.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Name, c.DB.SSLMode)
}
