// Package main provides flight-brief, a command-line tool for managing
// briefing data and generating the pre-flight briefing document.
//
// Usage:
//
//	flight-brief [command]
//
// Commands:
//
//	profile show|save       Inspect or save the qualification profile
//	airport list|add|rm     Manage the airport risk catalogue
//	flight list|add|rm      Manage the flight lookup table
//	flight match NUMBER     Look up a flight by free-form number
//	risks ROUTE             Aggregate risk/notice text for a route
//	generate                Render the briefing document
//
// All commands operate on a local SQLite database selected with --db
// (default: briefing.db, env: BRIEFING_DB).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"flight_brief/internal/storage"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:           "flight-brief",
	Short:         "Pre-flight briefing preparation tool for co-pilots",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	defaultDB := os.Getenv("BRIEFING_DB")
	if defaultDB == "" {
		defaultDB = "briefing.db"
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "SQLite database path")

	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(airportCmd)
	rootCmd.AddCommand(flightCmd)
	rootCmd.AddCommand(risksCmd)
	rootCmd.AddCommand(generateCmd)
}

// openStore opens the SQLite store for one command invocation.
func openStore() (*storage.SQLiteDB, error) {
	db, err := storage.OpenSQLite(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return db, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
