package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/example/growthbot/internal/analytics"
	"github.com/example/growthbot/internal/content"
	"github.com/example/growthbot/internal/excel"
	"github.com/example/growthbot/internal/tracker"
	"github.com/example/growthbot/pkg/models"
)

const (
	defaultHistoryLimit   = analytics.RecentLimit
	maxHistoryLimit       = 366
	maxStatusPayloadBytes = 1 << 10
	xlsxContentType       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportFileName        = "growth-progress.xlsx"
)

var validate = validator.New()

// Tracker is the part of the tracker service exposed over HTTP
type Tracker interface {
	Snapshot(ctx context.Context) (*tracker.Snapshot, error)
	SetStatus(ctx context.Context, status models.Status) (*tracker.Snapshot, error)
	Table(ctx context.Context) (models.ProgressTable, error)
	Quote() (string, error)
	Badges() []models.Badge
}

type handler struct {
	service Tracker
}

type todayResponse struct {
	Date      string        `json:"date"`
	Challenge string        `json:"challenge"`
	Status    models.Status `json:"status"`
	Quote     string        `json:"quote"`
	Streak    int           `json:"streak"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Completed"`
}

type statsResponse struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	CompletionRate float64 `json:"completionRate"`
	Streak         int     `json:"streak"`
}

type badgeResponse struct {
	Threshold int    `json:"threshold"`
	Label     string `json:"label"`
	Earned    bool   `json:"earned"`
}

type quoteResponse struct {
	Quote string `json:"quote"`
	Motto string `json:"motto"`
}

type recordResponse struct {
	Date      string        `json:"date"`
	Challenge string        `json:"challenge"`
	Status    models.Status `json:"status"`
}

// RegisterRoutes registers the tracker routes under /v1
func RegisterRoutes(r chi.Router, service Tracker) {
	h := &handler{service: service}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/today", h.getToday)
		r.Put("/today/status", h.putStatus)
		r.Get("/stats", h.getStats)
		r.Get("/badges", h.getBadges)
		r.Get("/series", h.getSeries)
		r.Get("/history", h.getHistory)
		r.Get("/quote", h.getQuote)
		r.Get("/export.xlsx", h.getExport)
	})
}

func (h *handler) getToday(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Snapshot(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTodayResponse(snap))
}

func (h *handler) putStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxStatusPayloadBytes)).Decode(&req); err != nil {
		writeError(w, r, codeBadRequest, "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, r, codeBadRequest, "status must be Pending or Completed")
		return
	}

	status, err := models.ParseStatus(req.Status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	snap, err := h.service.SetStatus(r.Context(), status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTodayResponse(snap))
}

func (h *handler) getStats(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Snapshot(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{
		Total:          snap.Total,
		Completed:      snap.Completed,
		CompletionRate: snap.CompletionRate,
		Streak:         snap.Streak,
	})
}

func (h *handler) getBadges(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Snapshot(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	all := h.service.Badges()
	badges := make([]badgeResponse, 0, len(all))
	for _, b := range all {
		badges = append(badges, badgeResponse{
			Threshold: b.Threshold,
			Label:     b.Label,
			Earned:    snap.Completed >= b.Threshold,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": badges})
}

func (h *handler) getSeries(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Snapshot(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": snap.Series})
}

func (h *handler) getHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxHistoryLimit {
			writeError(w, r, codeBadRequest, fmt.Sprintf("limit must be between 1 and %d", maxHistoryLimit))
			return
		}
		limit = n
	}

	snap, err := h.service.Snapshot(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	recent := analytics.Recent(snap.Table, limit)
	items := make([]recordResponse, 0, len(recent))
	for _, rec := range recent {
		items = append(items, recordResponse{Date: rec.Date, Challenge: rec.Challenge, Status: rec.Status})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *handler) getQuote(w http.ResponseWriter, r *http.Request) {
	quote, err := h.service.Quote()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quoteResponse{Quote: quote, Motto: content.Motto})
}

func (h *handler) getExport(w http.ResponseWriter, r *http.Request) {
	table, err := h.service.Table(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	buf, err := excel.Export(table)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func newTodayResponse(snap *tracker.Snapshot) todayResponse {
	return todayResponse{
		Date:      snap.Date,
		Challenge: snap.Challenge,
		Status:    snap.Status,
		Quote:     snap.Quote,
		Streak:    snap.Streak,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
