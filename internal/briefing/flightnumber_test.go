package briefing

import (
	"testing"

	"flight_brief/internal/storage"
)

func TestNormalizeFlightNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"CZ3835", "3835"},
		{"cz 3835", "3835"},
		{"  CZ3835  ", "3835"},
		{"CZ3835/6", "3835/6"},
		{"MU5101", "5101"},
		{"3U8633", "8633"},
		{"mf 8101", "8101"},
		{"HU7181", "7181"},
		{"3835", "3835"},
		{"B1234", "B1234"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := NormalizeFlightNumber(tt.raw); got != tt.want {
			t.Errorf("NormalizeFlightNumber(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeFlightNumber_Equivalence(t *testing.T) {
	a := NormalizeFlightNumber("CZ3835")
	b := NormalizeFlightNumber("cz 3835")
	if a != b || a != "3835" {
		t.Errorf("expected both forms to normalize to %q, got %q and %q", "3835", a, b)
	}
}

func TestMatchFlight_CanonicalMatch(t *testing.T) {
	flights := []storage.Flight{
		{ID: 1, Number: "CZ3835", Route: "三亚-浦东-三亚", DepTime: "1350", SignInTime: "1220"},
	}

	for _, raw := range []string{"3835", "cz 3835", "CZ3835"} {
		got := MatchFlight(flights, raw)
		if got == nil {
			t.Fatalf("MatchFlight(%q) = nil, want CZ3835", raw)
		}
		if got.Number != "CZ3835" {
			t.Errorf("MatchFlight(%q).Number = %q, want %q", raw, got.Number, "CZ3835")
		}
	}
}

func TestMatchFlight_SubstringContainment(t *testing.T) {
	// Normalized key "3835" is found inside the stored "CZ3835/6".
	flights := []storage.Flight{
		{ID: 1, Number: "CZ3835/6", Route: "三亚-浦东-三亚"},
	}

	got := MatchFlight(flights, "3835")
	if got == nil {
		t.Fatal("MatchFlight(\"3835\") = nil, want CZ3835/6")
	}
	if got.Route != "三亚-浦东-三亚" {
		t.Errorf("Route = %q, want %q", got.Route, "三亚-浦东-三亚")
	}
}

func TestMatchFlight_ReverseContainment(t *testing.T) {
	// The stored number is a clean substring of what the user typed.
	flights := []storage.Flight{
		{ID: 1, Number: "CZ3835", DepTime: "1350"},
	}

	got := MatchFlight(flights, "CZ3835/6")
	if got == nil {
		t.Fatal("MatchFlight(\"CZ3835/6\") = nil, want CZ3835")
	}
	if got.DepTime != "1350" {
		t.Errorf("DepTime = %q, want %q", got.DepTime, "1350")
	}
}

func TestMatchFlight_NoMatch(t *testing.T) {
	flights := []storage.Flight{
		{ID: 1, Number: "CZ3835"},
	}

	tests := []struct {
		name    string
		flights []storage.Flight
		raw     string
	}{
		{"blank input", flights, ""},
		{"whitespace input", flights, "   "},
		{"empty store", nil, "CZ9999"},
		{"unknown number", flights, "MU9999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchFlight(tt.flights, tt.raw); got != nil {
				t.Errorf("MatchFlight(%q) = %+v, want nil", tt.raw, got)
			}
		})
	}
}

func TestMatchFlight_FirstHitWins(t *testing.T) {
	// Both entries satisfy a containment condition for the input; the
	// scan order decides.
	flights := []storage.Flight{
		{ID: 1, Number: "CZ3835/6", Route: "first"},
		{ID: 2, Number: "CZ3835", Route: "second"},
	}

	got := MatchFlight(flights, "3835")
	if got == nil {
		t.Fatal("MatchFlight(\"3835\") = nil, want a match")
	}
	if got.Route != "first" {
		t.Errorf("Route = %q, want %q (first record in scan order)", got.Route, "first")
	}
}
