// Package main provides the briefing-api server for pre-flight briefing data.
//
// This is a standalone REST API server over the briefing lookup store:
// the co-pilot qualification profile, the airport risk catalogue, and the
// flight lookup table, plus rendering of the briefing document itself.
//
// Usage:
//
//	briefing-api [options]
//
// Options:
//
//	-db PATH            SQLite database path (default: briefing.db, env: BRIEFING_DB)
//	-postgres           Use PostgreSQL instead of SQLite
//	-pg-host HOST       PostgreSQL host (default: localhost, env: POSTGRES_HOST)
//	-pg-port PORT       PostgreSQL port (default: 5432, env: POSTGRES_PORT)
//	-pg-database DB     PostgreSQL database (default: briefing, env: POSTGRES_DATABASE)
//	-pg-user USER       PostgreSQL user (default: briefing, env: POSTGRES_USER)
//	-pg-password PASS   PostgreSQL password (default: briefing, env: POSTGRES_PASSWORD)
//	-port N             HTTP port (default: 8082)
//	-auth               Enable API key authentication
//	-api-keys KEYS      Comma-separated list of valid API keys
//
// API Endpoints:
//
//	GET    /api/v1/health
//	GET    /api/v1/profile
//	PUT    /api/v1/profile
//	PUT    /api/v1/profile/last-flight-time
//	GET    /api/v1/airports
//	POST   /api/v1/airports
//	DELETE /api/v1/airports/{id}
//	GET    /api/v1/flights
//	POST   /api/v1/flights
//	DELETE /api/v1/flights/{id}
//	GET    /api/v1/flights/match?number=CZ3835
//	GET    /api/v1/routes/risks?route=三亚-浦东-三亚
//	POST   /api/v1/briefing[?download=1]
//
// A .env file in the working directory is loaded before flags are parsed.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"flight_brief/internal/api"
	"flight_brief/internal/storage"
)

func main() {
	// Optional .env file for local setups.
	_ = godotenv.Load()

	// SQLite is the default backend: one local file, no server.
	dbPath := flag.String("db", envOrDefault("BRIEFING_DB", "briefing.db"), "SQLite database path")

	// PostgreSQL connection flags.
	usePostgres := flag.Bool("postgres", false, "Use PostgreSQL instead of SQLite")
	pgHost := flag.String("pg-host", envOrDefault("POSTGRES_HOST", "localhost"), "PostgreSQL host")
	pgPort := flag.Int("pg-port", envOrDefaultInt("POSTGRES_PORT", 5432), "PostgreSQL port")
	pgUser := flag.String("pg-user", envOrDefault("POSTGRES_USER", "briefing"), "PostgreSQL user")
	pgPassword := flag.String("pg-password", envOrDefault("POSTGRES_PASSWORD", "briefing"), "PostgreSQL password")
	pgDB := flag.String("pg-database", envOrDefault("POSTGRES_DATABASE", "briefing"), "PostgreSQL database")

	// API server flags.
	port := flag.Int("port", 8082, "HTTP port for API server")
	authEnabled := flag.Bool("auth", false, "Enable API key authentication")
	apiKeys := flag.String("api-keys", "", "Comma-separated list of valid API keys (when auth enabled)")

	flag.Parse()

	ctx := context.Background()

	var store storage.Store
	var err error
	if *usePostgres {
		store, err = storage.OpenPostgres(ctx, storage.PostgresConfig{
			Host:     *pgHost,
			Port:     *pgPort,
			Database: *pgDB,
			User:     *pgUser,
			Password: *pgPassword,
		})
	} else {
		store, err = storage.OpenSQLite(*dbPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	// Parse API keys.
	var keys []string
	if *apiKeys != "" {
		keys = strings.Split(*apiKeys, ",")
		for i := range keys {
			keys[i] = strings.TrimSpace(keys[i])
		}
	}

	server := api.NewServer(store, api.Config{
		Port:        *port,
		AuthEnabled: *authEnabled,
		APIKeys:     keys,
	})

	if err := server.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
