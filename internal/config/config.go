package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Database and Redis settings are optional: when
// DB_HOST is unset the server falls back to the in-memory store, which is
// only suitable for local development.
type Config struct {
	Env                string // application environment (e.g. "dev", "prod")
	Port               string // HTTP port to listen on
	DBUser             string // database username
	DBPass             string // database password (optional)
	DBHost             string // database host address (empty -> in-memory store)
	DBPort             string // database port number
	DBName             string // database name
	JWTSecret          string // secret used to sign admin session tokens
	AccessTTLMin       int    // session token time-to-live in minutes
	RootAdminUser      string // hardcoded main-admin username
	RootAdminPass      string // hardcoded main-admin password
	ReservationTTLDays int    // days before an unverified reservation expires
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:                must("APP_ENV"),
		Port:               must("APP_PORT"),
		DBUser:             os.Getenv("DB_USER"),
		DBPass:             os.Getenv("DB_PASS"),
		DBHost:             os.Getenv("DB_HOST"),
		DBPort:             getenv("DB_PORT", "3306"),
		DBName:             getenv("DB_NAME", "citywave"),
		JWTSecret:          must("JWT_SECRET"),
		AccessTTLMin:       atoiDefault(getenv("ACCESS_TOKEN_TTL_MIN", "720"), 720),
		RootAdminUser:      must("ROOT_ADMIN_USER"),
		RootAdminPass:      must("ROOT_ADMIN_PASS"),
		ReservationTTLDays: atoiDefault(getenv("RESERVATION_TTL_DAYS", "5"), 5),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// getenv returns the variable's value or a default when unset.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// atoiDefault converts s to an int, falling back to def on failure.
func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
