// Package httpapi exposes the planning service over HTTP: region
// detection, itinerary generation, PDF export and region metadata.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tourgether/tourgether/internal/corpus"
	"github.com/tourgether/tourgether/internal/itinerary"
	"github.com/tourgether/tourgether/internal/region"
	"github.com/tourgether/tourgether/internal/transport/classifier"
	"github.com/tourgether/tourgether/internal/version"
)

// maxImageBytes bounds region-detection uploads.
const maxImageBytes = 10 << 20

// Planner is the itinerary use case the server consumes.
type Planner interface {
	Plan(ctx context.Context, req itinerary.Request) (itinerary.Itinerary, error)
}

// Renderer produces PDF bytes from an itinerary.
type Renderer interface {
	Render(it itinerary.Itinerary) ([]byte, error)
}

// Server holds the HTTP handlers and their collaborators.
type Server struct {
	planner    Planner
	classifier *classifier.Client
	renderer   Renderer
	store      *corpus.Store
	logger     *zap.Logger
}

// NewServer creates the API server.
func NewServer(
	planner Planner,
	cls *classifier.Client,
	renderer Renderer,
	store *corpus.Store,
	logger *zap.Logger,
) *Server {
	return &Server{
		planner:    planner,
		classifier: cls,
		renderer:   renderer,
		store:      store,
		logger:     logger,
	}
}

// Routes registers the API endpoints on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.root)
	r.Get("/health", s.health)
	r.Post("/api/detect-region", s.detectRegion)
	r.Post("/api/generate-itinerary", s.generateItinerary)
	r.Post("/api/generate-pdf", s.generatePDF)
	r.Get("/api/regions", s.regions)
	r.Get("/api/destinations/{region}", s.destinations)
}

func (s *Server) root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "running",
		"service": "TourGether API",
		"version": version.Version,
		"endpoints": map[string]string{
			"detect_region":      "/api/detect-region (POST)",
			"generate_itinerary": "/api/generate-itinerary (POST)",
			"generate_pdf":       "/api/generate-pdf (POST)",
		},
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	domains := make([]string, 0, 2)
	for _, d := range s.store.Available() {
		domains = append(domains, d.String())
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "healthy",
		"classifier": s.classifier.Available(),
		"domains":    domains,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}

// regionDetectionResponse mirrors what the planning UI needs to preseed
// the trip form from one photo.
type regionDetectionResponse struct {
	Region          string   `json:"region"`
	Confidence      float64  `json:"confidence"`
	LowConfidence   bool     `json:"low_confidence"`
	TripType        string   `json:"trip_type"`
	Destinations    []string `json:"destinations"`
	AllDestinations []string `json:"all_destinations"`
	BudgetModifier  float64  `json:"budget_modifier"`
	CurrencyHint    string   `json:"currency_hint"`
	Seasons         []string `json:"seasons"`
}

func (s *Server) detectRegion(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "image file is required")
		return
	}
	defer func() { _ = file.Close() }()

	det, err := s.classifier.Classify(r.Context(), header.Filename, file)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	prefs, err := region.Info(det.Region)
	if err != nil {
		// Labels outside the region table (e.g. "no_detection") still
		// get an answer with neutral defaults.
		prefs = region.Preferences{
			PrimaryType:    region.DefaultTripType,
			BudgetModifier: 1.0,
			CurrencyHint:   "USD",
			Seasons:        []string{"Year-round"},
		}
	}

	writeJSON(w, http.StatusOK, regionDetectionResponse{
		Region:          det.Region,
		Confidence:      det.Confidence,
		LowConfidence:   det.Confidence < region.LowConfidenceThreshold,
		TripType:        region.TripType(det.Region, det.Confidence),
		Destinations:    region.Suggestions(det.Region, 8),
		AllDestinations: region.Destinations(det.Region),
		BudgetModifier:  prefs.BudgetModifier,
		CurrencyHint:    prefs.CurrencyHint,
		Seasons:         prefs.Seasons,
	})
}

// itineraryRequest is the JSON body of POST /api/generate-itinerary.
type itineraryRequest struct {
	Destination string `json:"destination"`
	Days        int    `json:"days"`
	BudgetMin   int    `json:"budget_min"`
	BudgetMax   int    `json:"budget_max"`
	Currency    string `json:"currency"`
	TripType    string `json:"trip_type"`
	Pace        string `json:"pace"`
	Dining      string `json:"dining"`
	Region      string `json:"region"`
}

func (s *Server) generateItinerary(w http.ResponseWriter, r *http.Request) {
	var req itineraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	it, err := s.planner.Plan(r.Context(), itinerary.Request{
		Destination: req.Destination,
		Days:        req.Days,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
		Currency:    req.Currency,
		TripType:    req.TripType,
		Pace:        req.Pace,
		Dining:      req.Dining,
		Region:      req.Region,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, it)
}

// pdfRequest is the JSON body of POST /api/generate-pdf. It carries a
// previously generated itinerary back in; the PDF step never re-runs
// retrieval or generation.
type pdfRequest struct {
	Itinerary   string               `json:"itinerary"`
	Destination string               `json:"destination"`
	Days        int                  `json:"days"`
	Budget      string               `json:"budget"`
	TripType    string               `json:"trip_type"`
	Region      string               `json:"region"`
	Attractions []itinerary.Featured `json:"attractions"`
}

func (s *Server) generatePDF(w http.ResponseWriter, r *http.Request) {
	var req pdfRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Itinerary == "" || req.Destination == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "itinerary and destination are required")
		return
	}

	generatedAt := time.Now().UTC()
	data, err := s.renderer.Render(itinerary.Itinerary{
		Text:        req.Itinerary,
		Attractions: req.Attractions,
		Metadata: itinerary.Metadata{
			Destination: req.Destination,
			Days:        req.Days,
			Budget:      req.Budget,
			TripType:    req.TripType,
			Region:      req.Region,
			GeneratedAt: generatedAt,
		},
	})
	if err != nil {
		s.logger.Error("pdf rendering failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternal, "pdf generation failed")
		return
	}

	filename := fmt.Sprintf("%s_%s.pdf",
		strings.ReplaceAll(req.Destination, " ", "_"),
		generatedAt.Format("20060102_150405"),
	)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) regions(w http.ResponseWriter, _ *http.Request) {
	out := make(map[string]any, len(region.Known()))
	for _, name := range region.Known() {
		prefs, err := region.Info(name)
		if err != nil {
			continue
		}
		out[name] = regionInfoPayload(prefs)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) destinations(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "region")
	if _, err := region.Info(name); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"region":       name,
		"destinations": region.Destinations(name),
	})
}

func regionInfoPayload(p region.Preferences) map[string]any {
	return map[string]any{
		"destinations": p.Destinations,
		"trip_types": map[string]any{
			"primary":   p.PrimaryType,
			"secondary": p.SecondaryTypes,
		},
		"budget_info": map[string]any{
			"modifier": p.BudgetModifier,
			"currency": p.CurrencyHint,
		},
		"season_info": p.Seasons,
	}
}
