// Package server exposes the portfolio reporting engine over HTTP.
//
// One JSON endpoint, GET /api/v1/report, generates the full report bundle
// for a reporting date and aggregation level. The server also serves
// /health and a Prometheus /metrics endpoint.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quantfold/futures"
)

// Server serves portfolio reports from a single validated account. The
// account is immutable, so one Server instance is safe for concurrent use.
type Server struct {
	account *futures.Account
	log     *slog.Logger
	timeout time.Duration
}

// New builds a report server around a validated account.
func New(account *futures.Account, log *slog.Logger, cfg *Config) *Server {
	if log == nil {
		log = slog.Default()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Server{account: account, log: log, timeout: cfg.RequestTimeout}
}

// Handler returns the HTTP router for the report service.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))
	r.Use(metricsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","service":"futures-report"}`))
	})
	r.Handle("/metrics", metricsHandler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/report", s.handleReport)
	})
	return r
}

// --- Response types ---

type pnlEntry struct {
	Key        string          `json:"key"`
	Realised   decimal.Decimal `json:"realised"`
	Unrealised decimal.Decimal `json:"unrealised"`
	Total      decimal.Decimal `json:"total"`
}

type valuationEntry struct {
	Key   string          `json:"key"`
	Value decimal.Decimal `json:"value"`
}

type holdingEntry struct {
	Description string `json:"description"`
	Ticker      string `json:"ticker"`
	Contracts   int64  `json:"contracts"`
}

type reportResponse struct {
	ID          string           `json:"report_id"`
	Date        futures.Date     `json:"date"`
	Level       string           `json:"level"`
	Currency    string           `json:"currency,omitempty"`
	GeneratedAt time.Time        `json:"generated_at"`
	Contracts   []holdingEntry   `json:"contracts"`
	Value       []valuationEntry `json:"value"`
	Daily       []pnlEntry       `json:"daily"`
	Month       []pnlEntry       `json:"month"`
	Year        []pnlEntry       `json:"year"`
}

// handleReport serves GET /api/v1/report?date=YYYY-MM-DD&level=asset-class.
// Both parameters are optional: date defaults to today, level to asset-class.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	on := futures.Today()
	if q := r.URL.Query().Get("date"); q != "" {
		var err error
		if on, err = futures.Parse(q); err != nil {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	level := futures.ByAssetClass
	if q := r.URL.Query().Get("level"); q != "" {
		var err error
		if level, err = futures.ParseLevel(q); err != nil {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	report, err := s.account.Report(on, level)
	if err != nil {
		status := errorStatus(err)
		reportsTotal.WithLabelValues(level.String(), "error").Inc()
		s.log.Error("report failed", "date", on, "level", level, "err", err)
		writeError(w, err.Error(), status)
		return
	}

	reportsTotal.WithLabelValues(level.String(), "ok").Inc()
	reportDuration.Observe(time.Since(start).Seconds())
	s.log.Info("report generated",
		"date", on, "level", level,
		"positions", len(report.Contracts),
		"elapsed", time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toResponse(report))
}

func toResponse(rep *futures.Report) reportResponse {
	resp := reportResponse{
		ID:          uuid.NewString(),
		Date:        rep.Date,
		Level:       rep.Level.String(),
		Currency:    rep.Currency,
		GeneratedAt: rep.Time,
		Contracts:   make([]holdingEntry, 0, len(rep.Contracts)),
		Value:       make([]valuationEntry, 0, len(rep.Value)),
		Daily:       toPnLEntries(rep.Daily),
		Month:       toPnLEntries(rep.Month),
		Year:        toPnLEntries(rep.Year),
	}
	for _, h := range rep.Contracts {
		resp.Contracts = append(resp.Contracts, holdingEntry{
			Description: h.Description,
			Ticker:      h.Ticker,
			Contracts:   h.Contracts,
		})
	}
	for _, v := range rep.Value {
		resp.Value = append(resp.Value, valuationEntry{Key: v.Key, Value: v.Valuation})
	}
	return resp
}

func toPnLEntries(t futures.PnLTable) []pnlEntry {
	entries := make([]pnlEntry, 0, len(t))
	for _, row := range t {
		entries = append(entries, pnlEntry{
			Key:        row.Key,
			Realised:   row.Realised,
			Unrealised: row.Unrealised,
			Total:      row.Total,
		})
	}
	return entries
}

// errorStatus maps engine errors to HTTP status codes. Bad arguments are
// the caller's fault; broken reference data is the account's.
func errorStatus(err error) int {
	var invalid *futures.InvalidRequestError
	if errors.As(err, &invalid) {
		return http.StatusBadRequest
	}
	var refdata *futures.ReferenceDataError
	var price *futures.MissingPriceError
	var integrity *futures.DataIntegrityError
	if errors.As(err, &refdata) || errors.As(err, &price) || errors.As(err, &integrity) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
