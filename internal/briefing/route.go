package briefing

import (
	"context"
	"strings"

	"flight_brief/internal/storage"
)

// AirportLookup resolves an airport by exact trimmed-name match, returning
// (nil, nil) on a miss. Both storage backends satisfy it.
type AirportLookup interface {
	GetAirportByName(ctx context.Context, name string) (*storage.Airport, error)
}

// ParseRoute tokenizes a route string like "三亚-浦东-三亚" into airport
// names. Em-dashes are treated as hyphens, segments are trimmed and empty
// segments dropped. Order is preserved and duplicates are kept; the
// aggregation step owns deduplication.
func ParseRoute(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	raw = strings.ReplaceAll(raw, "—", "-")

	var parts []string
	for _, seg := range strings.Split(raw, "-") {
		if seg = strings.TrimSpace(seg); seg != "" {
			parts = append(parts, seg)
		}
	}
	return parts
}

// RisksForRoute concatenates the stored risk text of every airport on the
// route, first occurrence of each airport only, in route order. Airports
// missing from the catalogue or with blank risk text are skipped; an
// empty result means nothing was found.
func RisksForRoute(ctx context.Context, lookup AirportLookup, route string) (string, error) {
	return collectForRoute(ctx, lookup, route, func(a *storage.Airport) string { return a.Risks })
}

// NotamsForRoute is RisksForRoute for the notice text field.
func NotamsForRoute(ctx context.Context, lookup AirportLookup, route string) (string, error) {
	return collectForRoute(ctx, lookup, route, func(a *storage.Airport) string { return a.Notams })
}

func collectForRoute(ctx context.Context, lookup AirportLookup, route string, field func(*storage.Airport) string) (string, error) {
	parts := ParseRoute(route)
	if len(parts) == 0 {
		return "", nil
	}

	seen := make(map[string]bool)
	var blocks []string
	for _, name := range parts {
		if seen[name] {
			continue
		}
		seen[name] = true

		airport, err := lookup.GetAirportByName(ctx, name)
		if err != nil {
			return "", err
		}
		if airport == nil {
			continue
		}
		if text := field(airport); text != "" {
			blocks = append(blocks, "【"+airport.Name+"\n"+text)
		}
	}
	return strings.Join(blocks, "\n\n"), nil
}
