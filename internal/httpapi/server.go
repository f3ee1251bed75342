package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"stockdash/internal/controller"
	"stockdash/internal/domain"
	"stockdash/internal/session"
)

// DashboardServer serves the dashboard HTTP API and static presentation
// assets (the looping background video among them).
type DashboardServer struct {
	ctrl      *controller.Controller
	videoDir  string
	staticDir string
	log       *slog.Logger
}

// NewDashboardServer creates a new dashboard HTTP server. videoDir and
// staticDir may be empty to disable static serving.
func NewDashboardServer(ctrl *controller.Controller, videoDir, staticDir string, log *slog.Logger) *DashboardServer {
	if log == nil {
		log = slog.Default()
	}
	return &DashboardServer{
		ctrl:      ctrl,
		videoDir:  videoDir,
		staticDir: staticDir,
		log:       log,
	}
}

// RegisterRoutes registers all API routes on the given mux.
func (s *DashboardServer) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/chart/{symbol}", s.handleChart)
	mux.HandleFunc("GET /api/news/{symbol}", s.handleNews)
	mux.HandleFunc("GET /api/session", s.handleGetSession)
	mux.HandleFunc("PUT /api/session", s.handleUpdateSession)
	mux.HandleFunc("POST /api/refresh", s.handleRefresh)

	if s.videoDir != "" {
		mux.Handle("GET /videos/", http.StripPrefix("/videos/", http.FileServer(http.Dir(s.videoDir))))
	}
	if s.staticDir != "" {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(s.staticDir))))
	}
}

// Handler returns an http.Handler with CORS middleware.
func (s *DashboardServer) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return corsMiddleware(mux)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, PUT, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (s *DashboardServer) dashboardResponse() DashboardResponse {
	results := s.ctrl.Results()
	tickers := make([]TickerJSON, 0, len(results))
	for _, r := range results {
		tickers = append(tickers, convertTicker(r))
	}
	return DashboardResponse{
		Session: convertSession(s.ctrl.Session()),
		Tickers: tickers,
	}
}

func (s *DashboardServer) handleDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.dashboardResponse())
}

func (s *DashboardServer) handleChart(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(r.PathValue("symbol"))

	res, ok := s.ctrl.Result(symbol)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown ticker "+symbol)
		return
	}
	if len(res.Chart) == 0 {
		writeError(w, http.StatusNotFound, "no chart rendered for "+symbol)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(res.Chart)
}

func (s *DashboardServer) handleNews(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(r.PathValue("symbol"))

	res, ok := s.ctrl.Result(symbol)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown ticker "+symbol)
		return
	}

	resp := NewsResponse{Symbol: symbol, Articles: make([]NewsItemJSON, 0, len(res.News))}
	for _, n := range res.News {
		resp.Articles = append(resp.Articles, NewsItemJSON{
			Time:     n.PublishedAt.UnixMilli(),
			Headline: n.Headline,
			Source:   n.Source,
			URL:      n.URL,
		})
	}
	writeJSON(w, resp)
}

func (s *DashboardServer) handleGetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, convertSession(s.ctrl.Session()))
}

func (s *DashboardServer) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	var req SessionUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	// Merge with the current session: empty fields keep their values.
	cur := s.ctrl.Session()

	tickers := strings.Join(cur.Tickers, ", ")
	if req.Tickers != "" {
		tickers = req.Tickers
	}
	key := cur.NewsAPIKey
	if req.NewsAPIKey != nil {
		key = *req.NewsAPIKey
	}
	refresh := int(cur.RefreshInterval.Seconds())
	if req.RefreshSeconds != nil {
		refresh = *req.RefreshSeconds
	}
	period := cur.Period
	if req.Period != "" {
		period = req.Period
	}
	theme := cur.Theme
	if req.Theme != "" {
		theme = req.Theme
	}

	next, err := session.New(tickers, key, refresh, period, theme)
	if err != nil {
		if domain.IsInputError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, "updating session")
		}
		return
	}
	if err := s.ctrl.UpdateSession(next); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.log.Info("session updated", "tickers", next.Tickers, "refresh", next.RefreshInterval)
	writeJSON(w, convertSession(next))
}

// handleRefresh runs one fetch-render cycle and returns the refreshed
// dashboard. A cycle already in flight is reported, not queued.
func (s *DashboardServer) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.ctrl.Refresh(r.Context()); err != nil {
		if errors.Is(err, controller.ErrRefreshInFlight) {
			writeError(w, http.StatusConflict, "refresh already in flight")
			return
		}
		writeError(w, http.StatusInternalServerError, "refresh failed")
		return
	}
	writeJSON(w, s.dashboardResponse())
}
