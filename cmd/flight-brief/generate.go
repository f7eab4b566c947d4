package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"flight_brief/internal/briefing"
	"flight_brief/internal/storage"
)

var (
	generateFormPath string
	generateOutPath  string
	generateNoLookup bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render the briefing document from a YAML form",
	Long: `Render the briefing document from a YAML form.

The form holds the per-flight answers; field names follow the JSON API
(flight_number, route, dep_time, ...). Blank flight details are filled
from the flight lookup table and blank route risks from the airport
catalogue, unless --no-lookup is given. The stored profile supplies the
qualification section, with built-in defaults for anything unset.

A minimal form:

	flight_number: CZ3835
	captain: 张三
	co_pilots: 吴帮帮
	dep_time: "0830"

The document is written to --out, or to a name derived from the profile
and the current time, e.g. 飞行准备_吴帮帮_20260829_1350.txt.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var form briefing.Form
		if generateFormPath != "" {
			raw, err := os.ReadFile(generateFormPath)
			if err != nil {
				return fmt.Errorf("read form: %w", err)
			}
			if err := yaml.Unmarshal(raw, &form); err != nil {
				return fmt.Errorf("parse form: %w", err)
			}
		}

		db, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		ctx := context.Background()

		var profile storage.Profile
		if stored, err := db.GetProfile(ctx); err != nil {
			return err
		} else if stored != nil {
			profile = *stored
		}
		briefing.ApplyProfileDefaults(&profile)

		if !generateNoLookup {
			if err := fillFromLookups(ctx, db, &form); err != nil {
				return err
			}
		}
		briefing.ApplyFormDefaults(&form)

		doc, err := briefing.RenderDocument(profile, form)
		if err != nil {
			return err
		}

		out := generateOutPath
		if out == "" {
			out = briefing.DocumentFilename(profile.Name, time.Now())
		}
		if err := os.WriteFile(out, []byte(doc), 0o644); err != nil {
			return fmt.Errorf("write document: %w", err)
		}

		// Remember the last primary-flying field for the next session.
		if lastPF := strings.TrimSpace(form.LastPF(profile)); lastPF != "" {
			if err := db.UpdateLastFlightTime(ctx, lastPF); err != nil {
				return err
			}
		}

		fmt.Printf("Wrote %s\n", out)
		return nil
	},
}

// fillFromLookups completes the form from the saved flights and airports:
// a matched flight number supplies the route and times, and the route
// supplies the aggregated risk text. Filled-in values never overwrite
// what the form already carries.
func fillFromLookups(ctx context.Context, db *storage.SQLiteDB, form *briefing.Form) error {
	if strings.TrimSpace(form.FlightNumber) != "" {
		flights, err := db.ListFlights(ctx)
		if err != nil {
			return err
		}
		if fl := briefing.MatchFlight(flights, form.FlightNumber); fl != nil {
			form.FlightNumber = fl.Number
			if form.Route == "" {
				form.Route = fl.Route
			}
			if form.DepTime == "" {
				form.DepTime = fl.DepTime
			}
			if form.SignInTime == "" {
				form.SignInTime = fl.SignInTime
			}
		}
	}

	if form.Route != "" && form.RouteRisks == "" {
		risks, err := briefing.RisksForRoute(ctx, db, form.Route)
		if err != nil {
			return err
		}
		form.RouteRisks = risks
	}
	return nil
}

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&generateFormPath, "form", "f", "", "YAML form file with the per-flight answers")
	f.StringVarP(&generateOutPath, "out", "o", "", "output file (default: derived from name and time)")
	f.BoolVar(&generateNoLookup, "no-lookup", false, "skip filling the form from saved flights and airports")
}
