package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"wifi-monitor/internal/analysis"
	"wifi-monitor/internal/models"
)

const (
	defaultSnapshotLimit = 100
	maxSnapshotLimit     = 10000
)

type response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Count   *int   `json:"count,omitempty"`
	Metric  string `json:"metric,omitempty"`
	Message string `json:"message,omitempty"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// MetricCatalog is the /api/metrics payload.
type MetricCatalog struct {
	Version int      `json:"version"`
	Metrics []string `json:"metrics"`
}

// HealthReport is the /api/health payload.
type HealthReport struct {
	Score           int                     `json:"score"`
	Rating          string                  `json:"rating"`
	Issues          []string                `json:"issues"`
	Recommendations []string                `json:"recommendations"`
	Statistics      models.PeriodStatistics `json:"statistics"`
}

// handleCurrent handles /api/current requests
func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.store.LatestSnapshot(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if snapshot == nil {
		writeJSON(w, http.StatusOK, response{Success: true, Message: "No data collected yet"})
		return
	}
	writeJSON(w, http.StatusOK, response{Success: true, Data: snapshot})
}

// handleSnapshots handles /api/snapshots requests
func (s *Server) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	tr, err := parseRange(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	limit, err := parseIntParam(r, "limit", defaultSnapshotLimit)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	limit = min(max(limit, 1), maxSnapshotLimit)

	snapshots, err := s.store.Snapshots(r.Context(), tr, limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeList(w, snapshots, len(snapshots), "")
}

// handleTimeseries handles /api/timeseries requests
func (s *Server) handleTimeseries(w http.ResponseWriter, r *http.Request) {
	metric := r.URL.Query().Get("metric")
	if metric == "" {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("metric parameter required"))
		return
	}
	tr, err := parseRange(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	points, err := s.store.Series(r.Context(), metric, tr)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeList(w, points, len(points), metric)
}

// handleMetrics lists the series names /api/timeseries accepts.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	metrics := models.SeriesVocabulary()
	count := len(metrics)
	writeJSON(w, http.StatusOK, response{
		Success: true,
		Data:    MetricCatalog{Version: models.SeriesVocabularyVersion, Metrics: metrics},
		Count:   &count,
	})
}

// handleEvents handles /api/events requests. An unknown severity or
// event type matches nothing.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	tr, err := parseRange(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	filter := models.EventFilter{Range: tr}
	q := r.URL.Query()
	if v := q.Get("severity"); v != "" {
		sev, err := models.ParseSeverity(v)
		if err != nil {
			writeList(w, []models.Event{}, 0, "")
			return
		}
		filter.Severity = &sev
	}
	if v := q.Get("event_type"); v != "" {
		et, err := models.ParseEventType(v)
		if err != nil {
			writeList(w, []models.Event{}, 0, "")
			return
		}
		filter.Type = &et
	}

	events, err := s.store.Events(r.Context(), filter)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeList(w, events, len(events), "")
}

// handleStatistics handles /api/statistics requests
func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	tr, err := parseRange(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	stats, err := s.store.Statistics(r.Context(), tr)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Success: true, Data: stats})
}

// handleEventCounts handles /api/event-counts requests
func (s *Server) handleEventCounts(w http.ResponseWriter, r *http.Request) {
	tr, err := parseRange(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	counts, err := s.store.EventCountsByType(r.Context(), tr)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeList(w, counts, len(counts), "")
}

// handleHealth scores the range and lists its issues and recommendations.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	tr, err := parseRange(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	stats, err := s.store.Statistics(r.Context(), tr)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	counts, err := s.store.EventCountsByType(r.Context(), tr)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Success: true, Data: HealthReport{
		Score:           analysis.Score(stats),
		Rating:          analysis.PeriodRating(stats),
		Issues:          nonNil(analysis.Issues(stats, counts)),
		Recommendations: nonNil(analysis.Recommendations(stats, counts)),
		Statistics:      stats,
	}})
}

// handleExport streams the full export document as a download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	tr, err := parseRange(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	export, err := s.store.Export(r.Context(), tr)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=wifi_export_%s.json", export.ExportedAt.UTC().Format("20060102_150405")))
	writeJSON(w, http.StatusOK, export)
}

func writeList(w http.ResponseWriter, data any, count int, metric string) {
	writeJSON(w, http.StatusOK, response{Success: true, Data: data, Count: &count, Metric: metric})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.log.Error().Err(err).Msg("Request failed")
	}
	writeJSON(w, status, errorResponse{Success: false, Error: err.Error()})
}

// parseRange reads the optional RFC 3339 start and end parameters.
func parseRange(r *http.Request) (models.TimeRange, error) {
	var tr models.TimeRange
	var err error
	q := r.URL.Query()

	if v := q.Get("start"); v != "" {
		if tr.Start, err = time.Parse(time.RFC3339, v); err != nil {
			return tr, fmt.Errorf("invalid start time %q", v)
		}
	}
	if v := q.Get("end"); v != "" {
		if tr.End, err = time.Parse(time.RFC3339, v); err != nil {
			return tr, fmt.Errorf("invalid end time %q", v)
		}
	}
	if !tr.Valid() {
		return tr, models.ErrInvalidRange
	}
	return tr, nil
}

func parseIntParam(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, v)
	}
	return n, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
