package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *SQLiteDB {
	t.Helper()

	db, err := OpenSQLite(filepath.Join(t.TempDir(), "briefing.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestProfileLifecycle(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	got, err := db.GetProfile(ctx)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got != nil {
		t.Fatalf("fresh database returned a profile: %+v", got)
	}

	p := Profile{
		Name:             "吴帮帮",
		TechLevel:        "B类副驾驶",
		RadioQual:        "无",
		TotalLandings:    500,
		TotalHours:       3445.5,
		TypeLandings:     450,
		TypeHours:        3200.0,
		PreviousAircraft: "B737",
		AppAlert:         "无",
		EFBStatus:        "电量充足，已更新",
		LastPFTime:       "2026-08-28 / A320",
		LandingQuality:   "正常",
		PickupLocation:   "自行前往公司",
	}
	if err := db.SaveProfile(ctx, p); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	got, err = db.GetProfile(ctx)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got == nil {
		t.Fatal("profile missing after save")
	}
	if got.Name != p.Name || got.TotalHours != p.TotalHours || got.LastPFTime != p.LastPFTime {
		t.Errorf("round-trip mismatch: got %+v", got)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not set on save")
	}

	// A second save fully replaces the first; still exactly one row.
	p2 := p
	p2.Name = "另一人"
	p2.TotalLandings = 501
	if err := db.SaveProfile(ctx, p2); err != nil {
		t.Fatalf("SaveProfile (second): %v", err)
	}
	got, err = db.GetProfile(ctx)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got.Name != "另一人" || got.TotalLandings != 501 {
		t.Errorf("second save did not replace values: %+v", got)
	}
}

func TestUpdateLastFlightTime_TouchesOnlyThatField(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	p := Profile{
		Name:          "吴帮帮",
		TechLevel:     "B类副驾驶",
		TotalLandings: 500,
		TotalHours:    3445.5,
		LastPFTime:    "2026-08-01 / A320",
	}
	if err := db.SaveProfile(ctx, p); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	before, err := db.GetProfile(ctx)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}

	if err := db.UpdateLastFlightTime(ctx, "2026-08-29 / A321"); err != nil {
		t.Fatalf("UpdateLastFlightTime: %v", err)
	}

	after, err := db.GetProfile(ctx)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if after.LastPFTime != "2026-08-29 / A321" {
		t.Errorf("LastPFTime = %q, want updated value", after.LastPFTime)
	}

	// Every other field stays as saved.
	beforeCmp, afterCmp := *before, *after
	beforeCmp.LastPFTime, afterCmp.LastPFTime = "", ""
	beforeCmp.UpdatedAt, afterCmp.UpdatedAt = after.UpdatedAt, after.UpdatedAt
	if beforeCmp != afterCmp {
		t.Errorf("narrow update changed other fields:\nbefore %+v\nafter  %+v", beforeCmp, afterCmp)
	}
}

func TestUpdateLastFlightTime_InsertsBlankProfile(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.UpdateLastFlightTime(ctx, "2026-08-29 / A320"); err != nil {
		t.Fatalf("UpdateLastFlightTime: %v", err)
	}

	got, err := db.GetProfile(ctx)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got == nil {
		t.Fatal("expected a blank-default profile row")
	}
	if got.LastPFTime != "2026-08-29 / A320" {
		t.Errorf("LastPFTime = %q", got.LastPFTime)
	}
	if got.Name != "" || got.TotalLandings != 0 {
		t.Errorf("expected blank defaults, got %+v", got)
	}
}

func TestAirportUpsertAndLookup(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.UpsertAirport(ctx, " 三亚 ", "注意风切变", "跑道灯光检查"); err != nil {
		t.Fatalf("UpsertAirport: %v", err)
	}
	if err := db.UpsertAirport(ctx, "浦东", "跑道施工", ""); err != nil {
		t.Fatalf("UpsertAirport: %v", err)
	}

	got, err := db.GetAirportByName(ctx, "三亚")
	if err != nil {
		t.Fatalf("GetAirportByName: %v", err)
	}
	if got == nil {
		t.Fatal("三亚 not found after upsert")
	}
	if got.Risks != "注意风切变" || got.Notams != "跑道灯光检查" {
		t.Errorf("airport fields = %+v", got)
	}

	// Upsert by the same name overwrites in place, no duplicate row.
	if err := db.UpsertAirport(ctx, "三亚", "新的风险提示", ""); err != nil {
		t.Fatalf("UpsertAirport (overwrite): %v", err)
	}
	airports, err := db.ListAirports(ctx)
	if err != nil {
		t.Fatalf("ListAirports: %v", err)
	}
	if len(airports) != 2 {
		t.Fatalf("expected 2 airports, got %d", len(airports))
	}
	updated, err := db.GetAirportByName(ctx, "三亚")
	if err != nil {
		t.Fatalf("GetAirportByName: %v", err)
	}
	if updated.Risks != "新的风险提示" {
		t.Errorf("Risks = %q, want overwritten value", updated.Risks)
	}
	if updated.ID != got.ID {
		t.Errorf("ID changed on overwrite: %d -> %d", got.ID, updated.ID)
	}

	// Miss is (nil, nil), not an error.
	missing, err := db.GetAirportByName(ctx, "不存在")
	if err != nil {
		t.Fatalf("GetAirportByName: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown airport, got %+v", missing)
	}
	if missing, err = db.GetAirportByName(ctx, "  "); err != nil || missing != nil {
		t.Errorf("blank name should miss cleanly, got %+v, %v", missing, err)
	}

	if err := db.UpsertAirport(ctx, "   ", "x", "y"); err == nil {
		t.Error("expected error for blank airport name")
	}
}

func TestAirportDelete(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.UpsertAirport(ctx, "三亚", "r", "n"); err != nil {
		t.Fatalf("UpsertAirport: %v", err)
	}
	airports, err := db.ListAirports(ctx)
	if err != nil {
		t.Fatalf("ListAirports: %v", err)
	}
	if err := db.DeleteAirport(ctx, airports[0].ID); err != nil {
		t.Fatalf("DeleteAirport: %v", err)
	}

	airports, err = db.ListAirports(ctx)
	if err != nil {
		t.Fatalf("ListAirports: %v", err)
	}
	if len(airports) != 0 {
		t.Errorf("expected empty catalogue, got %d entries", len(airports))
	}
}

func TestFlightUpsertAndList(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.UpsertFlight(ctx, " cz3835/6 ", "三亚-浦东-三亚", "1350", "1220"); err != nil {
		t.Fatalf("UpsertFlight: %v", err)
	}
	if err := db.UpsertFlight(ctx, "MU5101", "虹桥-北京", "0800", "0630"); err != nil {
		t.Fatalf("UpsertFlight: %v", err)
	}

	flights, err := db.ListFlights(ctx)
	if err != nil {
		t.Fatalf("ListFlights: %v", err)
	}
	if len(flights) != 2 {
		t.Fatalf("expected 2 flights, got %d", len(flights))
	}

	// Stored trimmed and upper-cased, listed in number order.
	if flights[0].Number != "CZ3835/6" || flights[1].Number != "MU5101" {
		t.Errorf("listing order/keys wrong: %q, %q", flights[0].Number, flights[1].Number)
	}

	// Upsert on the same number overwrites.
	if err := db.UpsertFlight(ctx, "CZ3835/6", "三亚-虹桥", "1400", "1230"); err != nil {
		t.Fatalf("UpsertFlight (overwrite): %v", err)
	}
	flights, err = db.ListFlights(ctx)
	if err != nil {
		t.Fatalf("ListFlights: %v", err)
	}
	if len(flights) != 2 {
		t.Fatalf("overwrite created a duplicate: %d flights", len(flights))
	}
	if flights[0].Route != "三亚-虹桥" || flights[0].DepTime != "1400" {
		t.Errorf("overwrite did not replace values: %+v", flights[0])
	}

	if err := db.UpsertFlight(ctx, "", "r", "d", "s"); err == nil {
		t.Error("expected error for blank flight number")
	}
}

func TestFlightDelete(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.UpsertFlight(ctx, "CZ3835", "", "", ""); err != nil {
		t.Fatalf("UpsertFlight: %v", err)
	}
	flights, err := db.ListFlights(ctx)
	if err != nil {
		t.Fatalf("ListFlights: %v", err)
	}
	if err := db.DeleteFlight(ctx, flights[0].ID); err != nil {
		t.Fatalf("DeleteFlight: %v", err)
	}

	flights, err = db.ListFlights(ctx)
	if err != nil {
		t.Fatalf("ListFlights: %v", err)
	}
	if len(flights) != 0 {
		t.Errorf("expected no flights, got %d", len(flights))
	}
}
