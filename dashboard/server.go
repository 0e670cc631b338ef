package dashboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/spektr-org/popstat/engine"
	"github.com/spektr-org/popstat/export"
	"github.com/spektr-org/popstat/render"
)

// ============================================================================
// HTTP SERVER
// ============================================================================
//   GET /                      HTML page with three chart tabs
//   GET /api/dashboard         engine.Result as JSON
//   GET /api/regions/{year}    cleaned table for one year
//   GET /charts/{kind}.png     bar | pie | share-change
//   GET /export.xlsx           both cleaned years and the share comparison
//   GET /logo                  configured logo image
//   GET /healthz
// ============================================================================

// HeaderRequestID carries the request id set by the logging middleware.
const HeaderRequestID = "X-Request-ID"

// Chart kinds served under /charts.
const (
	ChartKindBar         = "bar"
	ChartKindPie         = "pie"
	ChartKindShareChange = "share-change"
)

// Server exposes a Service over HTTP.
type Server struct {
	service *Service
	router  *mux.Router
}

// NewServer wires the routes.
func NewServer(service *Service) *Server {
	s := &Server{service: service, router: mux.NewRouter()}

	s.router.Use(requestLogger)

	s.router.HandleFunc("/", s.handlePage).Methods("GET")
	s.router.HandleFunc("/api/dashboard", s.handleDashboard).Methods("GET")
	s.router.HandleFunc("/api/regions/{year:[0-9]+}", s.handleRegions).Methods("GET")
	s.router.HandleFunc("/charts/{kind:[a-z-]+}.png", s.handleChart).Methods("GET")
	s.router.HandleFunc("/export.xlsx", s.handleExport).Methods("GET")
	s.router.HandleFunc("/logo", s.handleLogo).Methods("GET")
	s.router.HandleFunc("/healthz", handleHealth).Methods("GET")

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ── Handlers ─────────────────────────────────────────────────────────────────

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	cfg := s.service.Config()
	data := newPageData(cfg)

	status := http.StatusOK
	d, err := s.service.Build(r.Context())
	if err != nil {
		status = StatusCode(err)
		data.Error = UserMessage(err)
		log.Printf("❌ popstat: %s", data.Error)
	} else {
		data.Result = d.Result
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		log.Printf("❌ popstat: page template: %v", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.service.Build(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d.Result)
}

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(mux.Vars(r)["year"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid year"})
		return
	}

	table, err := s.service.Load(r.Context(), year)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, engine.BuildRegionTable(table, year))
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	kind := mux.Vars(r)["kind"]
	switch kind {
	case ChartKindBar, ChartKindPie, ChartKindShareChange:
	default:
		http.NotFound(w, r)
		return
	}

	d, err := s.service.Build(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var cfg *engine.ChartConfig
	switch kind {
	case ChartKindBar:
		cfg = d.Result.Bar
	case ChartKindPie:
		cfg = d.Result.Pie
	case ChartKindShareChange:
		cfg = d.Result.ShareChange
	}
	if cfg == nil {
		http.Error(w, "chart unavailable for these years", http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	if err := render.PNG(&buf, cfg); err != nil {
		log.Printf("❌ popstat: render %s: %v", kind, err)
		http.Error(w, "failed to render chart", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", render.ContentType)
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	d, err := s.service.Build(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	err = export.WriteWorkbook(&buf,
		export.RegionSheet(d.Request.YearA, d.TableA),
		export.RegionSheet(d.Request.YearB, d.TableB),
		export.ShareSheet(d.Request.YearA, d.Request.YearB, d.Result.Share),
	)
	if err != nil {
		log.Printf("❌ popstat: export: %v", err)
		http.Error(w, "failed to build workbook", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="population-by-region.xlsx"`)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleLogo(w http.ResponseWriter, r *http.Request) {
	path := s.service.Config().LogoPath
	if path == "" {
		http.NotFound(w, r)
		return
	}
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("⚠️ popstat: logo %s: %v", path, err)
		}
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, path)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ── Helpers ──────────────────────────────────────────────────────────────────

type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	msg := UserMessage(err)
	log.Printf("❌ popstat: %s", msg)
	writeJSON(w, StatusCode(err), errorBody{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Printf("⚠️ popstat: encode response: %v", err)
	}
}

// ── Middleware ───────────────────────────────────────────────────────────────

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestLogger tags each request with an id and logs its outcome.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		log.Printf("🌐 popstat: [%s] %s %s → %d in %v",
			id, r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond))
	})
}
