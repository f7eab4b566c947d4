package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"flight_brief/internal/briefing"
)

var flightCmd = &cobra.Command{
	Use:   "flight",
	Short: "Manage the flight lookup table",
}

var flightListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved flights",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		flights, err := db.ListFlights(context.Background())
		if err != nil {
			return err
		}
		if len(flights) == 0 {
			fmt.Println("No flights saved.")
			return nil
		}
		for _, fl := range flights {
			fmt.Printf("[%d] %s  %s  起飞 %s  签到 %s\n",
				fl.ID, fl.Number, fl.Route, fl.DepTime, fl.SignInTime)
		}
		return nil
	},
}

var (
	flightAddNumber string
	flightAddRoute  string
	flightAddDep    string
	flightAddSignIn string
)

var flightAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add or replace a flight entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		if err := db.UpsertFlight(context.Background(), flightAddNumber, flightAddRoute, flightAddDep, flightAddSignIn); err != nil {
			return err
		}
		fmt.Printf("Saved flight %s.\n", strings.ToUpper(strings.TrimSpace(flightAddNumber)))
		return nil
	},
}

var flightRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a flight entry by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid flight id %q", args[0])
		}

		db, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		if err := db.DeleteFlight(context.Background(), id); err != nil {
			return err
		}
		fmt.Printf("Deleted flight %d.\n", id)
		return nil
	},
}

var flightMatchCmd = &cobra.Command{
	Use:   "match NUMBER",
	Short: "Look up a flight by free-form number",
	Long: `Look up a flight by free-form number.

The number is matched against the saved flights after normalization:
case and spaces are ignored, and a leading carrier prefix (CZ, MU, CA,
3U, MF, HU) is stripped, so "cz 3835" finds a flight saved as CZ3835/6.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		flights, err := db.ListFlights(context.Background())
		if err != nil {
			return err
		}

		fl := briefing.MatchFlight(flights, args[0])
		if fl == nil {
			fmt.Printf("No flight matching %q. Use 'flight-brief flight add' to save it.\n", args[0])
			return nil
		}
		fmt.Printf("航班号：%s\n", fl.Number)
		fmt.Printf("航线：%s\n", fl.Route)
		fmt.Printf("起飞时间：%s\n", fl.DepTime)
		fmt.Printf("签到时间：%s\n", fl.SignInTime)
		return nil
	},
}

var risksCmd = &cobra.Command{
	Use:   "risks ROUTE",
	Short: "Aggregate risk and notice text for a route",
	Long: `Aggregate risk and notice text for a route.

The route is split on "-" (the full-width dash "—" is accepted too) and
each airport is looked up in the catalogue. Repeated airports, such as
the return leg of 三亚-浦东-三亚, contribute their text once.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		ctx := context.Background()
		risks, err := briefing.RisksForRoute(ctx, db, args[0])
		if err != nil {
			return err
		}
		notams, err := briefing.NotamsForRoute(ctx, db, args[0])
		if err != nil {
			return err
		}

		if risks == "" && notams == "" {
			fmt.Println("No risk or notice text for this route.")
			return nil
		}
		if risks != "" {
			fmt.Println("== 风险 ==")
			fmt.Println(risks)
		}
		if notams != "" {
			if risks != "" {
				fmt.Println()
			}
			fmt.Println("== 通告 ==")
			fmt.Println(notams)
		}
		return nil
	},
}

func init() {
	f := flightAddCmd.Flags()
	f.StringVar(&flightAddNumber, "number", "", "flight number, e.g. CZ3835/6")
	f.StringVar(&flightAddRoute, "route", "", "route, e.g. 三亚-浦东-三亚")
	f.StringVar(&flightAddDep, "dep", "", "departure time")
	f.StringVar(&flightAddSignIn, "sign-in", "", "sign-in time")
	_ = flightAddCmd.MarkFlagRequired("number")

	flightCmd.AddCommand(flightListCmd)
	flightCmd.AddCommand(flightAddCmd)
	flightCmd.AddCommand(flightRmCmd)
	flightCmd.AddCommand(flightMatchCmd)
}
