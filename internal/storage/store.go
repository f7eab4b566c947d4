// Package storage provides persistent storage for briefing data: the
// co-pilot qualification profile, the airport risk catalogue, and the
// flight lookup table.
package storage

import (
	"context"
	"time"
)

// Profile is the single persisted qualification record. At most one row
// ever exists; every save overwrites it in place.
type Profile struct {
	Name             string  `json:"name"`
	TechLevel        string  `json:"tech_level"`
	RadioQual        string  `json:"radio_qual"`
	TotalLandings    int     `json:"total_landings"`
	TotalHours       float64 `json:"total_hours"`
	TypeLandings     int     `json:"type_landings"`
	TypeHours        float64 `json:"type_hours"`
	PreviousAircraft string  `json:"previous_aircraft"`
	AppAlert         string  `json:"app_alert"`
	EFBStatus        string  `json:"efb_status"`
	// LastPFTime is the composite "last primary-flying landing" field,
	// e.g. "2026-08-29 / A320".
	LastPFTime     string    `json:"last_pf_time"`
	LandingQuality string    `json:"landing_quality"`
	PickupLocation string    `json:"pickup_location"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Airport is one catalogue entry per unique airport name. Uniqueness is
// enforced on the trimmed name, case-sensitive.
type Airport struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Risks     string    `json:"risks"`
	Notams    string    `json:"notams"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Flight is one lookup entry per unique flight number. Numbers are stored
// trimmed and upper-cased; time fields follow the HHMM convention and are
// not validated.
type Flight struct {
	ID         int64     `json:"id"`
	Number     string    `json:"number"`
	Route      string    `json:"route"`
	DepTime    string    `json:"dep_time"`
	SignInTime string    `json:"sign_in_time"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Store is the lookup-store contract shared by the SQLite and PostgreSQL
// backends. Lookup misses are signalled by (nil, nil); only persistence
// failures surface as errors.
type Store interface {
	GetProfile(ctx context.Context) (*Profile, error)
	SaveProfile(ctx context.Context, p Profile) error
	// UpdateLastFlightTime updates only the last primary-flying field and
	// the row timestamp, inserting a blank profile if none exists yet.
	UpdateLastFlightTime(ctx context.Context, lastPFTime string) error

	// ListAirports returns the catalogue ordered by airport name.
	ListAirports(ctx context.Context) ([]Airport, error)
	GetAirportByName(ctx context.Context, name string) (*Airport, error)
	UpsertAirport(ctx context.Context, name, risks, notams string) error
	DeleteAirport(ctx context.Context, id int64) error

	// ListFlights returns flights ordered by flight number (id as
	// tiebreak). Flight matching iterates this order, so it must stay
	// stable across backends.
	ListFlights(ctx context.Context) ([]Flight, error)
	UpsertFlight(ctx context.Context, number, route, depTime, signInTime string) error
	DeleteFlight(ctx context.Context, id int64) error

	Close() error
}
