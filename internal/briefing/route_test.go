package briefing

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"flight_brief/internal/storage"
)

// mapLookup implements AirportLookup over an in-memory map.
type mapLookup map[string]storage.Airport

func (m mapLookup) GetAirportByName(_ context.Context, name string) (*storage.Airport, error) {
	a, ok := m[strings.TrimSpace(name)]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

type failingLookup struct{}

func (failingLookup) GetAirportByName(context.Context, string) (*storage.Airport, error) {
	return nil, errors.New("store unavailable")
}

func TestParseRoute(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"三亚-浦东-三亚", []string{"三亚", "浦东", "三亚"}},
		{"三亚—浦东", []string{"三亚", "浦东"}},
		{"三亚 - 浦东", []string{"三亚", "浦东"}},
		{"三亚--浦东", []string{"三亚", "浦东"}},
		{"三亚", []string{"三亚"}},
		{"", nil},
		{"   ", nil},
		{" - - ", nil},
	}

	for _, tt := range tests {
		if got := ParseRoute(tt.raw); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseRoute(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestRisksForRoute(t *testing.T) {
	lookup := mapLookup{
		"三亚": {Name: "三亚", Risks: "注意风切变", Notams: "跑道灯光检查"},
		"浦东": {Name: "浦东", Risks: "跑道施工"},
	}

	got, err := RisksForRoute(context.Background(), lookup, "三亚-浦东-三亚")
	if err != nil {
		t.Fatalf("RisksForRoute returned error: %v", err)
	}

	// The duplicate 三亚 leg is suppressed: two blocks, not three.
	want := "【三亚\n注意风切变\n\n【浦东\n跑道施工"
	if got != want {
		t.Errorf("RisksForRoute = %q, want %q", got, want)
	}
}

func TestRisksForRoute_NoCataloguedAirports(t *testing.T) {
	lookup := mapLookup{}

	got, err := RisksForRoute(context.Background(), lookup, "A-B")
	if err != nil {
		t.Fatalf("RisksForRoute returned error: %v", err)
	}
	if got != "" {
		t.Errorf("RisksForRoute = %q, want empty string", got)
	}
}

func TestRisksForRoute_BlankFieldSkipped(t *testing.T) {
	lookup := mapLookup{
		"三亚": {Name: "三亚", Risks: "", Notams: "跑道灯光检查"},
		"浦东": {Name: "浦东", Risks: "跑道施工"},
	}

	got, err := RisksForRoute(context.Background(), lookup, "三亚-浦东")
	if err != nil {
		t.Fatalf("RisksForRoute returned error: %v", err)
	}
	if got != "【浦东\n跑道施工" {
		t.Errorf("RisksForRoute = %q, want only the 浦东 block", got)
	}
}

func TestRisksForRoute_BlankRoute(t *testing.T) {
	got, err := RisksForRoute(context.Background(), mapLookup{}, "   ")
	if err != nil {
		t.Fatalf("RisksForRoute returned error: %v", err)
	}
	if got != "" {
		t.Errorf("RisksForRoute = %q, want empty string", got)
	}
}

func TestNotamsForRoute(t *testing.T) {
	lookup := mapLookup{
		"三亚": {Name: "三亚", Risks: "注意风切变", Notams: "跑道灯光检查"},
		"浦东": {Name: "浦东", Risks: "跑道施工"},
	}

	got, err := NotamsForRoute(context.Background(), lookup, "三亚-浦东")
	if err != nil {
		t.Fatalf("NotamsForRoute returned error: %v", err)
	}
	if got != "【三亚\n跑道灯光检查" {
		t.Errorf("NotamsForRoute = %q, want only the 三亚 block", got)
	}
}

func TestRisksForRoute_StoreFailure(t *testing.T) {
	_, err := RisksForRoute(context.Background(), failingLookup{}, "三亚-浦东")
	if err == nil {
		t.Fatal("expected store failure to propagate")
	}
}
