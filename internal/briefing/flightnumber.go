// Package briefing implements the pre-flight briefing core: flight-number
// normalization and matching, route parsing, per-airport risk aggregation,
// and rendering of the briefing document.
package briefing

import (
	"strings"

	"flight_brief/internal/storage"
)

// carrierPrefixes are the two-character airline codes stripped during
// flight-number normalization.
var carrierPrefixes = []string{"CZ", "MU", "CA", "3U", "MF", "HU"}

// NormalizeFlightNumber reduces a free-form flight number to its
// comparable key: trimmed, upper-cased, internal spaces removed, and one
// known carrier prefix stripped, e.g. "cz 3835/6" -> "3835/6". Returns
// "" for blank input; never fails.
func NormalizeFlightNumber(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, " ", "")
	for _, prefix := range carrierPrefixes {
		if strings.HasPrefix(s, prefix) {
			s = strings.TrimSpace(s[len(prefix):])
			break
		}
	}
	return s
}

// MatchFlight finds the first stored flight matching a free-form number.
// A candidate matches when its normalized number equals the normalized
// input, when the normalized input is contained in the stored number
// (input "3835" against stored "CZ3835/6"), or when the stored number is
// contained in the upper-cased raw input (stored "CZ3835" against input
// "CZ3835/6"). Flights are scanned in the order given, so callers must
// pass a stably ordered slice. Returns nil when nothing matches; a miss
// is a normal outcome, not an error.
func MatchFlight(flights []storage.Flight, raw string) *storage.Flight {
	trimmed := strings.ToUpper(strings.TrimSpace(raw))
	if trimmed == "" {
		return nil
	}
	key := NormalizeFlightNumber(raw)
	if key == "" {
		return nil
	}

	for i := range flights {
		fn := flights[i].Number
		if fn == "" {
			continue
		}
		if NormalizeFlightNumber(fn) == key ||
			strings.Contains(fn, key) ||
			strings.Contains(trimmed, fn) {
			return &flights[i]
		}
	}
	return nil
}
