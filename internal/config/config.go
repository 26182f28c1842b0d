// Package config loads application configuration from environment variables.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Every value has a default so the service can
// start with no environment at all (in-memory SQLite, allow-all CORS).
type Config struct {
	Env            string   // application environment (e.g. "dev", "prod")
	Host           string   // HTTP host to bind
	Port           string   // HTTP port to listen on
	Reload         bool     // development flag; enables echo debug mode
	DatabaseURL    string   // store connection string
	DBUser         string   // database username (used when DatabaseURL is empty)
	DBPass         string   // database password (optional)
	DBHost         string   // database host address
	DBPort         string   // database port number
	DBName         string   // database name
	AllowedOrigins []string // CORS origins; ["*"] allows any caller
	LogLevel       string   // logrus level name
	LogFormat      string   // "text" or "json"
	LogFile        string   // optional rotating log file
	RabbitMQURL    string   // event broker; empty disables events
	EventsQueue    string   // queue carrying booking and payment events
}

// Load reads an optional .env file and then builds a Config from the
// environment.  Variables set in the real environment win over .env.
func Load() Config {
	_ = godotenv.Load() // a missing .env file is not an error

	env := envStr("APP_ENV", "dev")
	format := "text"
	if env == "prod" || env == "production" {
		format = "json"
	}
	return Config{
		Env:         env,
		Host:        firstEnv("0.0.0.0", "APP_HOST", "UVICORN_HOST"),
		Port:        firstEnv("3001", "APP_PORT", "UVICORN_PORT"),
		Reload:      parseBool(firstEnv("false", "APP_RELOAD", "UVICORN_RELOAD"), false),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBUser:      envStr("DB_USER", "root"),
		DBPass:      os.Getenv("DB_PASS"),
		DBHost:      os.Getenv("DB_HOST"),
		DBPort:      envStr("DB_PORT", "3306"),
		DBName:      envStr("DB_NAME", "ticket_booking"),
		AllowedOrigins: allowedOrigins(
			firstEnv("*", "FRONTEND_URL", "REACT_APP_FRONTEND_URL"),
			firstEnv("*", "BACKEND_URL", "REACT_APP_BACKEND_URL"),
		),
		LogLevel:    envStr("LOG_LEVEL", "info"),
		LogFormat:   envStr("LOG_FORMAT", format),
		LogFile:     os.Getenv("LOG_FILE"),
		RabbitMQURL: firstEnv("", "RABBITMQ_URL", "AMQP_URL"),
		EventsQueue: envStr("EVENTS_QUEUE", "booking.events"),
	}
}

// Addr returns the host:port pair the HTTP server binds to.
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

// allowedOrigins merges the configured frontend and backend URLs.  Any
// wildcard collapses the list to a single "*".
func allowedOrigins(values ...string) []string {
	var out []string
	for _, v := range values {
		for _, o := range strings.Split(v, ",") {
			o = strings.TrimSpace(o)
			if o == "" {
				continue
			}
			if o == "*" {
				return []string{"*"}
			}
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// firstEnv returns the first non-empty variable among keys, or def.
func firstEnv(def string, keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return def
}
