package admin

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"discord-logger/internal/handler/http/respond"
	"discord-logger/internal/observability/logging"
)

const msgLogsCleared = "Logs cleared successfully"

// LogsHandler returns the newest entries with the viewer fragment.
// ?limit= defaults to and is capped at 50.
type LogsHandler struct {
	Svc LogService
}

func (h LogsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := intParam("limit", q.Get("limit"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	offset, err := intParam("offset", q.Get("offset"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	entries, err := h.Svc.List(r.Context(), limit, offset)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	html, err := renderLogs(entries)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]LogEntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, toDTO(e))
	}
	respond.JSON(w, http.StatusOK, LogsResponse{Success: true, Entries: dtos, HTML: html})
}

// ClearLogsHandler removes every entry. Clearing an empty log succeeds.
type ClearLogsHandler struct {
	Svc LogService
}

func (h ClearLogsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Clear(r.Context()); err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	logging.FromContext(r.Context()).Info("activity log cleared from admin")
	respond.JSON(w, http.StatusOK, Result{Success: true, Message: msgLogsCleared})
}

// StatsHandler returns total, success and error counts.
type StatsHandler struct {
	Svc LogService
}

func (h StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s, err := h.Svc.Stats(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, StatsResponse{Total: s.Total, Success: s.Success, Error: s.Error})
}

// DashboardHandler returns the ten most recent entries as a feed.
type DashboardHandler struct {
	Svc LogService
	Now func() time.Time
}

func (h DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Svc.Recent(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	now := time.Now()
	if h.Now != nil {
		now = h.Now()
	}
	items := make([]DashboardItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, DashboardItem{
			Icon:      icon(e.Type),
			Message:   e.Message,
			Age:       humanizeAge(e.Timestamp, now),
			Timestamp: e.Timestamp.UTC(),
		})
	}
	html, err := renderDashboard(items)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, DashboardResponse{Items: items, HTML: html})
}

func intParam(name, s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}
	return n, nil
}
