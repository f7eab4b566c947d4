package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var airportCmd = &cobra.Command{
	Use:   "airport",
	Short: "Manage the airport risk catalogue",
}

var airportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved airports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		airports, err := db.ListAirports(context.Background())
		if err != nil {
			return err
		}
		if len(airports) == 0 {
			fmt.Println("No airports saved.")
			return nil
		}
		for _, a := range airports {
			fmt.Printf("[%d] %s\n", a.ID, a.Name)
			if a.Risks != "" {
				fmt.Printf("    风险：%s\n", indentContinuation(a.Risks))
			}
			if a.Notams != "" {
				fmt.Printf("    通告：%s\n", indentContinuation(a.Notams))
			}
		}
		return nil
	},
}

var (
	airportAddName   string
	airportAddRisks  string
	airportAddNotams string
)

var airportAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add or replace an airport entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		if err := db.UpsertAirport(context.Background(), airportAddName, airportAddRisks, airportAddNotams); err != nil {
			return err
		}
		fmt.Printf("Saved airport %s.\n", strings.TrimSpace(airportAddName))
		return nil
	},
}

var airportRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete an airport entry by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid airport id %q", args[0])
		}

		db, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		if err := db.DeleteAirport(context.Background(), id); err != nil {
			return err
		}
		fmt.Printf("Deleted airport %d.\n", id)
		return nil
	},
}

// indentContinuation keeps multi-line risk text aligned under its label.
func indentContinuation(s string) string {
	return strings.ReplaceAll(s, "\n", "\n         ")
}

func init() {
	f := airportAddCmd.Flags()
	f.StringVar(&airportAddName, "name", "", "airport name, e.g. 三亚")
	f.StringVar(&airportAddRisks, "risks", "", "risk text for the airport")
	f.StringVar(&airportAddNotams, "notams", "", "notice text for the airport")
	_ = airportAddCmd.MarkFlagRequired("name")

	airportCmd.AddCommand(airportListCmd)
	airportCmd.AddCommand(airportAddCmd)
	airportCmd.AddCommand(airportRmCmd)
}
