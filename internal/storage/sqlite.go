package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteDB wraps a SQLite database connection. This is the default
// backend: a single local file, no server required.
type SQLiteDB struct {
	db *sql.DB
}

// OpenSQLite opens or creates a SQLite database at the given path.
func OpenSQLite(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent access.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if err := createSQLiteSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Close closes the database connection.
func (d *SQLiteDB) Close() error {
	return d.db.Close()
}

func createSQLiteSchema(db *sql.DB) error {
	schema := `
	-- Qualification profile: a single row pinned to id = 1.
	CREATE TABLE IF NOT EXISTS profile (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		name TEXT NOT NULL DEFAULT '',
		tech_level TEXT NOT NULL DEFAULT '',
		radio_qual TEXT NOT NULL DEFAULT '',
		total_landings INTEGER NOT NULL DEFAULT 0,
		total_hours REAL NOT NULL DEFAULT 0,
		type_landings INTEGER NOT NULL DEFAULT 0,
		type_hours REAL NOT NULL DEFAULT 0,
		previous_aircraft TEXT NOT NULL DEFAULT '',
		app_alert TEXT NOT NULL DEFAULT '',
		efb_status TEXT NOT NULL DEFAULT '',
		last_pf_time TEXT NOT NULL DEFAULT '',
		landing_quality TEXT NOT NULL DEFAULT '',
		pickup_location TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS airports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		risks TEXT NOT NULL DEFAULT '',
		notams TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS flights (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		number TEXT NOT NULL UNIQUE,
		route TEXT NOT NULL DEFAULT '',
		dep_time TEXT NOT NULL DEFAULT '',
		sign_in_time TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	_, err := db.Exec(schema)
	return err
}

// GetProfile returns the stored profile, or (nil, nil) if none has been
// saved yet.
func (d *SQLiteDB) GetProfile(ctx context.Context) (*Profile, error) {
	var p Profile
	var updated string
	err := d.db.QueryRowContext(ctx, `
		SELECT name, tech_level, radio_qual, total_landings, total_hours,
			type_landings, type_hours, previous_aircraft, app_alert, efb_status,
			last_pf_time, landing_quality, pickup_location, updated_at
		FROM profile WHERE id = 1
	`).Scan(&p.Name, &p.TechLevel, &p.RadioQual, &p.TotalLandings, &p.TotalHours,
		&p.TypeLandings, &p.TypeHours, &p.PreviousAircraft, &p.AppAlert, &p.EFBStatus,
		&p.LastPFTime, &p.LandingQuality, &p.PickupLocation, &updated)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &p, nil
}

// SaveProfile overwrites the single profile row with an atomic upsert.
func (d *SQLiteDB) SaveProfile(ctx context.Context, p Profile) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO profile (id, name, tech_level, radio_qual, total_landings, total_hours,
			type_landings, type_hours, previous_aircraft, app_alert, efb_status,
			last_pf_time, landing_quality, pickup_location, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, tech_level=excluded.tech_level, radio_qual=excluded.radio_qual,
			total_landings=excluded.total_landings, total_hours=excluded.total_hours,
			type_landings=excluded.type_landings, type_hours=excluded.type_hours,
			previous_aircraft=excluded.previous_aircraft, app_alert=excluded.app_alert,
			efb_status=excluded.efb_status, last_pf_time=excluded.last_pf_time,
			landing_quality=excluded.landing_quality, pickup_location=excluded.pickup_location,
			updated_at=excluded.updated_at
	`, p.Name, p.TechLevel, p.RadioQual, p.TotalLandings, p.TotalHours,
		p.TypeLandings, p.TypeHours, p.PreviousAircraft, p.AppAlert, p.EFBStatus,
		p.LastPFTime, p.LandingQuality, p.PickupLocation, now)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// UpdateLastFlightTime updates only the last primary-flying field and the
// row timestamp. The conflict clause leaves every other column untouched;
// a missing profile gets a blank-default row.
func (d *SQLiteDB) UpdateLastFlightTime(ctx context.Context, lastPFTime string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO profile (id, last_pf_time, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			last_pf_time=excluded.last_pf_time, updated_at=excluded.updated_at
	`, lastPFTime, now)
	if err != nil {
		return fmt.Errorf("update last flight time: %w", err)
	}
	return nil
}

// ListAirports returns the catalogue ordered by airport name.
func (d *SQLiteDB) ListAirports(ctx context.Context) ([]Airport, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, name, risks, notams, created_at, updated_at
		FROM airports ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list airports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var airports []Airport
	for rows.Next() {
		a, err := scanAirport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan airport: %w", err)
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

// GetAirportByName looks up an airport by exact trimmed-name match.
// Returns (nil, nil) when the airport is not catalogued.
func (d *SQLiteDB) GetAirportByName(ctx context.Context, name string) (*Airport, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	var a Airport
	var created, updated string
	err := d.db.QueryRowContext(ctx, `
		SELECT id, name, risks, notams, created_at, updated_at
		FROM airports WHERE name = ?
	`, name).Scan(&a.ID, &a.Name, &a.Risks, &a.Notams, &created, &updated)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get airport: %w", err)
	}
	a.CreatedAt, _ = time.Parse(time.RFC3339, created)
	a.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &a, nil
}

// UpsertAirport inserts or overwrites an airport keyed on its trimmed name.
func (d *SQLiteDB) UpsertAirport(ctx context.Context, name, risks, notams string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("airport name is required")
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO airports (name, risks, notams, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			risks=excluded.risks, notams=excluded.notams, updated_at=excluded.updated_at
	`, name, risks, notams, now, now)
	if err != nil {
		return fmt.Errorf("upsert airport: %w", err)
	}
	return nil
}

// DeleteAirport removes a catalogue entry by id.
func (d *SQLiteDB) DeleteAirport(ctx context.Context, id int64) error {
	_, err := d.db.ExecContext(ctx, `DELETE FROM airports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete airport: %w", err)
	}
	return nil
}

// ListFlights returns flights ordered by flight number, id as tiebreak.
func (d *SQLiteDB) ListFlights(ctx context.Context) ([]Flight, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, number, route, dep_time, sign_in_time, created_at, updated_at
		FROM flights ORDER BY number, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list flights: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var flights []Flight
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, fmt.Errorf("scan flight: %w", err)
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

// UpsertFlight inserts or overwrites a flight keyed on its trimmed,
// upper-cased number.
func (d *SQLiteDB) UpsertFlight(ctx context.Context, number, route, depTime, signInTime string) error {
	number = strings.ToUpper(strings.TrimSpace(number))
	if number == "" {
		return fmt.Errorf("flight number is required")
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO flights (number, route, dep_time, sign_in_time, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(number) DO UPDATE SET
			route=excluded.route, dep_time=excluded.dep_time,
			sign_in_time=excluded.sign_in_time, updated_at=excluded.updated_at
	`, number, route, depTime, signInTime, now, now)
	if err != nil {
		return fmt.Errorf("upsert flight: %w", err)
	}
	return nil
}

// DeleteFlight removes a lookup entry by id.
func (d *SQLiteDB) DeleteFlight(ctx context.Context, id int64) error {
	_, err := d.db.ExecContext(ctx, `DELETE FROM flights WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete flight: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAirport(row rowScanner) (Airport, error) {
	var a Airport
	var created, updated string
	if err := row.Scan(&a.ID, &a.Name, &a.Risks, &a.Notams, &created, &updated); err != nil {
		return Airport{}, err
	}
	a.CreatedAt, _ = time.Parse(time.RFC3339, created)
	a.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return a, nil
}

func scanFlight(row rowScanner) (Flight, error) {
	var f Flight
	var created, updated string
	if err := row.Scan(&f.ID, &f.Number, &f.Route, &f.DepTime, &f.SignInTime, &created, &updated); err != nil {
		return Flight{}, err
	}
	f.CreatedAt, _ = time.Parse(time.RFC3339, created)
	f.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return f, nil
}
