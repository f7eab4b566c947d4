package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// PostgresDB wraps a PostgreSQL connection pool. Optional backend for
// installs that already run a database server.
type PostgresDB struct {
	pool *pgxpool.Pool
}

// OpenPostgres opens a connection pool to PostgreSQL and ensures the
// schema exists.
func OpenPostgres(ctx context.Context, cfg PostgresConfig) (*PostgresDB, error) {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	d := &PostgresDB{pool: pool}
	if err := d.createSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return d, nil
}

// Close closes the PostgreSQL connection pool.
func (d *PostgresDB) Close() error {
	d.pool.Close()
	return nil
}

func (d *PostgresDB) createSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS profile (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		name TEXT NOT NULL DEFAULT '',
		tech_level TEXT NOT NULL DEFAULT '',
		radio_qual TEXT NOT NULL DEFAULT '',
		total_landings INTEGER NOT NULL DEFAULT 0,
		total_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
		type_landings INTEGER NOT NULL DEFAULT 0,
		type_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
		previous_aircraft TEXT NOT NULL DEFAULT '',
		app_alert TEXT NOT NULL DEFAULT '',
		efb_status TEXT NOT NULL DEFAULT '',
		last_pf_time TEXT NOT NULL DEFAULT '',
		landing_quality TEXT NOT NULL DEFAULT '',
		pickup_location TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS airports (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		risks TEXT NOT NULL DEFAULT '',
		notams TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS flights (
		id BIGSERIAL PRIMARY KEY,
		number TEXT NOT NULL UNIQUE,
		route TEXT NOT NULL DEFAULT '',
		dep_time TEXT NOT NULL DEFAULT '',
		sign_in_time TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`

	_, err := d.pool.Exec(ctx, schema)
	return err
}

// GetProfile returns the stored profile, or (nil, nil) if none has been
// saved yet.
func (d *PostgresDB) GetProfile(ctx context.Context) (*Profile, error) {
	var p Profile
	err := d.pool.QueryRow(ctx, `
		SELECT name, tech_level, radio_qual, total_landings, total_hours,
			type_landings, type_hours, previous_aircraft, app_alert, efb_status,
			last_pf_time, landing_quality, pickup_location, updated_at
		FROM profile WHERE id = 1
	`).Scan(&p.Name, &p.TechLevel, &p.RadioQual, &p.TotalLandings, &p.TotalHours,
		&p.TypeLandings, &p.TypeHours, &p.PreviousAircraft, &p.AppAlert, &p.EFBStatus,
		&p.LastPFTime, &p.LandingQuality, &p.PickupLocation, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// SaveProfile overwrites the single profile row with an atomic upsert.
func (d *PostgresDB) SaveProfile(ctx context.Context, p Profile) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO profile (id, name, tech_level, radio_qual, total_landings, total_hours,
			type_landings, type_hours, previous_aircraft, app_alert, efb_status,
			last_pf_time, landing_quality, pickup_location, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		ON CONFLICT (id) DO UPDATE SET
			name=EXCLUDED.name, tech_level=EXCLUDED.tech_level, radio_qual=EXCLUDED.radio_qual,
			total_landings=EXCLUDED.total_landings, total_hours=EXCLUDED.total_hours,
			type_landings=EXCLUDED.type_landings, type_hours=EXCLUDED.type_hours,
			previous_aircraft=EXCLUDED.previous_aircraft, app_alert=EXCLUDED.app_alert,
			efb_status=EXCLUDED.efb_status, last_pf_time=EXCLUDED.last_pf_time,
			landing_quality=EXCLUDED.landing_quality, pickup_location=EXCLUDED.pickup_location,
			updated_at=EXCLUDED.updated_at
	`, p.Name, p.TechLevel, p.RadioQual, p.TotalLandings, p.TotalHours,
		p.TypeLandings, p.TypeHours, p.PreviousAircraft, p.AppAlert, p.EFBStatus,
		p.LastPFTime, p.LandingQuality, p.PickupLocation)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// UpdateLastFlightTime updates only the last primary-flying field and the
// row timestamp, inserting a blank-default row when no profile exists.
func (d *PostgresDB) UpdateLastFlightTime(ctx context.Context, lastPFTime string) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO profile (id, last_pf_time, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET
			last_pf_time=EXCLUDED.last_pf_time, updated_at=EXCLUDED.updated_at
	`, lastPFTime)
	if err != nil {
		return fmt.Errorf("update last flight time: %w", err)
	}
	return nil
}

// ListAirports returns the catalogue ordered by airport name.
func (d *PostgresDB) ListAirports(ctx context.Context) ([]Airport, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, risks, notams, created_at, updated_at
		FROM airports ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list airports: %w", err)
	}
	defer rows.Close()

	var airports []Airport
	for rows.Next() {
		var a Airport
		if err := rows.Scan(&a.ID, &a.Name, &a.Risks, &a.Notams, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan airport: %w", err)
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

// GetAirportByName looks up an airport by exact trimmed-name match.
// Returns (nil, nil) when the airport is not catalogued.
func (d *PostgresDB) GetAirportByName(ctx context.Context, name string) (*Airport, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	var a Airport
	err := d.pool.QueryRow(ctx, `
		SELECT id, name, risks, notams, created_at, updated_at
		FROM airports WHERE name = $1
	`, name).Scan(&a.ID, &a.Name, &a.Risks, &a.Notams, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get airport: %w", err)
	}
	return &a, nil
}

// UpsertAirport inserts or overwrites an airport keyed on its trimmed name.
func (d *PostgresDB) UpsertAirport(ctx context.Context, name, risks, notams string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("airport name is required")
	}

	_, err := d.pool.Exec(ctx, `
		INSERT INTO airports (name, risks, notams)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET
			risks=EXCLUDED.risks, notams=EXCLUDED.notams, updated_at=NOW()
	`, name, risks, notams)
	if err != nil {
		return fmt.Errorf("upsert airport: %w", err)
	}
	return nil
}

// DeleteAirport removes a catalogue entry by id.
func (d *PostgresDB) DeleteAirport(ctx context.Context, id int64) error {
	_, err := d.pool.Exec(ctx, `DELETE FROM airports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete airport: %w", err)
	}
	return nil
}

// ListFlights returns flights ordered by flight number, id as tiebreak.
func (d *PostgresDB) ListFlights(ctx context.Context) ([]Flight, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, number, route, dep_time, sign_in_time, created_at, updated_at
		FROM flights ORDER BY number, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list flights: %w", err)
	}
	defer rows.Close()

	var flights []Flight
	for rows.Next() {
		var f Flight
		if err := rows.Scan(&f.ID, &f.Number, &f.Route, &f.DepTime, &f.SignInTime, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan flight: %w", err)
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

// UpsertFlight inserts or overwrites a flight keyed on its trimmed,
// upper-cased number.
func (d *PostgresDB) UpsertFlight(ctx context.Context, number, route, depTime, signInTime string) error {
	number = strings.ToUpper(strings.TrimSpace(number))
	if number == "" {
		return fmt.Errorf("flight number is required")
	}

	_, err := d.pool.Exec(ctx, `
		INSERT INTO flights (number, route, dep_time, sign_in_time)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (number) DO UPDATE SET
			route=EXCLUDED.route, dep_time=EXCLUDED.dep_time,
			sign_in_time=EXCLUDED.sign_in_time, updated_at=NOW()
	`, number, route, depTime, signInTime)
	if err != nil {
		return fmt.Errorf("upsert flight: %w", err)
	}
	return nil
}

// DeleteFlight removes a lookup entry by id.
func (d *PostgresDB) DeleteFlight(ctx context.Context, id int64) error {
	_, err := d.pool.Exec(ctx, `DELETE FROM flights WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete flight: %w", err)
	}
	return nil
}
