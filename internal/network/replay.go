// Package network - replay.go
// JSON export of the zoo day's immutable event history, for spectators
// who join after the day started.
package network

import (
	"net/http"
	"strconv"

	"github.com/rmbenavides/ZooDia/server/internal/events"
	"github.com/rmbenavides/ZooDia/server/internal/platform/logger"
)

// ReplayHandler serves the event-log replay API.
type ReplayHandler struct {
	eventLog *events.EventLog
	logger   *logger.Logger
}

// NewReplayHandler creates a new replay handler.
func NewReplayHandler(el *events.EventLog, log *logger.Logger) *ReplayHandler {
	return &ReplayHandler{
		eventLog: el,
		logger:   log,
	}
}

// ReplayResponse is the API response for a replay request.
type ReplayResponse struct {
	TotalEvents int               `json:"total_events"`
	FilteredBy  string            `json:"filtered_by,omitempty"`
	Events      []events.ZooEvent `json:"events"`
}

// HandleReplay returns the recorded events so far.
// GET /replay?type=TOUR_SKIPPED&tick=N
func (rh *ReplayHandler) HandleReplay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var filtered []events.ZooEvent
	filteredBy := ""

	switch {
	case r.URL.Query().Get("type") != "":
		t := events.EventType(r.URL.Query().Get("type"))
		filtered = rh.eventLog.GetByType(t)
		filteredBy = "type=" + string(t)
	case r.URL.Query().Get("tick") != "":
		tick, err := strconv.Atoi(r.URL.Query().Get("tick"))
		if err != nil {
			http.Error(w, "invalid tick", http.StatusBadRequest)
			return
		}
		filtered = rh.eventLog.GetByTick(tick)
		filteredBy = "tick=" + strconv.Itoa(tick)
	default:
		filtered = rh.eventLog.Replay()
	}

	resp := ReplayResponse{
		TotalEvents: len(filtered),
		FilteredBy:  filteredBy,
		Events:      filtered,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		rh.logger.Error("failed to encode replay response: %v", err)
	}
}
