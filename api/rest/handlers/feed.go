package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"sched-sim/core/feed"
	"sched-sim/core/models"
	"sched-sim/core/repository"

	"github.com/gorilla/websocket"
)

// FeedHandler ingests the external sensor event feed over WebSocket and
// exposes the live statistics folded from it.
type FeedHandler struct {
	folder   *feed.Folder
	feedRepo *repository.FeedRepository
	upgrader websocket.Upgrader
}

// NewFeedHandler creates a new feed handler folding into folder.
// feedRepo may be nil when persistence is not configured.
func NewFeedHandler(folder *feed.Folder, feedRepo *repository.FeedRepository) *FeedHandler {
	return &FeedHandler{
		folder:   folder,
		feedRepo: feedRepo,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Ingest handles GET /v1/feed. Each WebSocket message carries one or
// more newline-separated protocol lines; malformed lines are dropped
// and logged without closing the session.
func (h *FeedHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("feed upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	log.Printf("feed websocket from %s", conn.RemoteAddr())

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("feed websocket closed: %v", err)
			}
			return
		}
		for _, line := range strings.Split(string(payload), "\n") {
			ev, err := feed.ParseLine(line)
			if err != nil {
				log.Printf("dropping feed line: %v", err)
				continue
			}
			if ev == nil {
				continue
			}
			if err := h.folder.Fold(ev); err != nil {
				log.Printf("dropping feed event: %v", err)
			}
		}
	}
}

// FeedStatisticsResponse reports the live state of the feed.
type FeedStatisticsResponse struct {
	TotalJobs     int                     `json:"total_jobs"`
	DroppedEvents int                     `json:"dropped_events"`
	TaskStats     []models.TaskStatistics `json:"task_stats"`
}

// Records handles GET /v1/feed/records
func (h *FeedHandler) Records(w http.ResponseWriter, r *http.Request) {
	if h.feedRepo == nil {
		writeJSON(w, http.StatusOK, []models.JobRecord{})
		return
	}

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, err := h.feedRepo.GetRecords(limit)
	if err != nil {
		log.Printf("failed to load feed records: %v", err)
		http.Error(w, "failed to load feed records", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []models.JobRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// Statistics handles GET /v1/feed/statistics
func (h *FeedHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	collector := h.folder.Collector()
	writeJSON(w, http.StatusOK, FeedStatisticsResponse{
		TotalJobs:     len(collector.Records()),
		DroppedEvents: h.folder.Dropped(),
		TaskStats:     collector.TaskStatistics(),
	})
}
