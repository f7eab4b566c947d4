// Package api provides the REST API for briefing data entry and document
// generation.
package api

import (
	"encoding/json"
	"log"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"flight_brief/internal/briefing"
	"flight_brief/internal/storage"
)

// Server exposes the lookup store and the briefing renderer over HTTP.
type Server struct {
	store       storage.Store
	port        int
	authEnabled bool
	apiKeys     map[string]bool // Simple API key auth (when enabled).
}

// Config holds configuration for the briefing API server.
type Config struct {
	Port        int
	AuthEnabled bool
	APIKeys     []string // List of valid API keys.
}

// NewServer creates a new briefing API server.
func NewServer(store storage.Store, cfg Config) *Server {
	keys := make(map[string]bool)
	for _, k := range cfg.APIKeys {
		if k != "" {
			keys[k] = true
		}
	}

	return &Server{
		store:       store,
		port:        cfg.Port,
		authEnabled: cfg.AuthEnabled,
		apiKeys:     keys,
	}
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	r := chi.NewRouter()

	// Standard middleware.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(30 * time.Second))

	// CORS for browser access.
	r.Use(corsMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/", s.Router())
	})

	addr := ":" + strconv.Itoa(s.port)
	log.Printf("Briefing API starting at http://localhost%s", addr)
	if s.authEnabled {
		log.Printf("Authentication: ENABLED (API key required)")
	} else {
		log.Printf("Authentication: DISABLED (open access)")
	}

	return http.ListenAndServe(addr, r)
}

// Router returns the configured chi router for embedding in other servers.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	if s.authEnabled {
		r.Use(s.authMiddleware)
	}

	r.Get("/health", s.handleHealth)

	r.Get("/profile", s.handleGetProfile)
	r.Put("/profile", s.handleSaveProfile)
	r.Put("/profile/last-flight-time", s.handleUpdateLastFlightTime)

	r.Get("/airports", s.handleListAirports)
	r.Post("/airports", s.handleUpsertAirport)
	r.Delete("/airports/{id}", s.handleDeleteAirport)

	r.Get("/flights", s.handleListFlights)
	r.Post("/flights", s.handleUpsertFlight)
	r.Delete("/flights/{id}", s.handleDeleteFlight)
	r.Get("/flights/match", s.handleMatchFlight)

	r.Get("/routes/risks", s.handleRouteRisks)

	r.Post("/briefing", s.handleGenerateBriefing)

	return r
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-API-Key")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// authMiddleware validates API key authentication.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Check X-API-Key header first.
		apiKey := r.Header.Get("X-API-Key")

		// Fall back to Authorization: Bearer <key>.
		if apiKey == "" {
			auth := r.Header.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				apiKey = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		// Fall back to query parameter (for simple testing).
		if apiKey == "" {
			apiKey = r.URL.Query().Get("api_key")
		}

		if apiKey == "" {
			writeError(w, http.StatusUnauthorized, "API key required")
			return
		}

		if !s.apiKeys[apiKey] {
			writeError(w, http.StatusForbidden, "Invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.GetProfile(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "No profile saved yet")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	var p storage.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	if err := s.store.SaveProfile(r.Context(), p); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (s *Server) handleUpdateLastFlightTime(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LastPFTime string `json:"last_pf_time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(req.LastPFTime) == "" {
		writeError(w, http.StatusBadRequest, "last_pf_time is required")
		return
	}

	if err := s.store.UpdateLastFlightTime(r.Context(), strings.TrimSpace(req.LastPFTime)); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (s *Server) handleListAirports(w http.ResponseWriter, r *http.Request) {
	airports, err := s.store.ListAirports(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if airports == nil {
		airports = []storage.Airport{}
	}
	writeJSON(w, http.StatusOK, airports)
}

// AirportRequest is the request body for airport upserts.
type AirportRequest struct {
	Name   string `json:"name"`
	Risks  string `json:"risks"`
	Notams string `json:"notams"`
}

func (s *Server) handleUpsertAirport(w http.ResponseWriter, r *http.Request) {
	var req AirportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "Airport name is required")
		return
	}

	if err := s.store.UpsertAirport(r.Context(), req.Name, req.Risks, req.Notams); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (s *Server) handleDeleteAirport(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid airport id")
		return
	}

	if err := s.store.DeleteAirport(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleListFlights(w http.ResponseWriter, r *http.Request) {
	flights, err := s.store.ListFlights(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if flights == nil {
		flights = []storage.Flight{}
	}
	writeJSON(w, http.StatusOK, flights)
}

// FlightRequest is the request body for flight upserts.
type FlightRequest struct {
	Number     string `json:"number"`
	Route      string `json:"route"`
	DepTime    string `json:"dep_time"`
	SignInTime string `json:"sign_in_time"`
}

func (s *Server) handleUpsertFlight(w http.ResponseWriter, r *http.Request) {
	var req FlightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Number) == "" {
		writeError(w, http.StatusBadRequest, "Flight number is required")
		return
	}

	if err := s.store.UpsertFlight(r.Context(), req.Number, req.Route, req.DepTime, req.SignInTime); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (s *Server) handleDeleteFlight(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid flight id")
		return
	}

	if err := s.store.DeleteFlight(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleMatchFlight(w http.ResponseWriter, r *http.Request) {
	number := r.URL.Query().Get("number")
	if strings.TrimSpace(number) == "" {
		writeError(w, http.StatusBadRequest, "number is required")
		return
	}

	flights, err := s.store.ListFlights(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	flight := briefing.MatchFlight(flights, number)
	if flight == nil {
		writeError(w, http.StatusNotFound, "No flight data found for number")
		return
	}
	writeJSON(w, http.StatusOK, flight)
}

// RouteRisksResponse carries the aggregated texts for a route.
type RouteRisksResponse struct {
	Route  string `json:"route"`
	Risks  string `json:"risks"`
	Notams string `json:"notams"`
}

func (s *Server) handleRouteRisks(w http.ResponseWriter, r *http.Request) {
	route := r.URL.Query().Get("route")
	if strings.TrimSpace(route) == "" {
		writeError(w, http.StatusBadRequest, "route is required")
		return
	}

	risks, err := briefing.RisksForRoute(r.Context(), s.store, route)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	notams, err := briefing.NotamsForRoute(r.Context(), s.store, route)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, RouteRisksResponse{Route: route, Risks: risks, Notams: notams})
}

func (s *Server) handleGenerateBriefing(w http.ResponseWriter, r *http.Request) {
	var form briefing.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	stored, err := s.store.GetProfile(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	var profile storage.Profile
	if stored != nil {
		profile = *stored
	}
	briefing.ApplyProfileDefaults(&profile)
	briefing.ApplyFormDefaults(&form)

	doc, err := briefing.RenderDocument(profile, form)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Remember the last primary-flying field for the next session.
	if lastPF := strings.TrimSpace(form.LastPF(profile)); lastPF != "" {
		if err := s.store.UpdateLastFlightTime(r.Context(), lastPF); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if r.URL.Query().Get("download") == "1" {
		filename := briefing.DocumentFilename(profile.Name, time.Now())
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

// Helper functions.

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
