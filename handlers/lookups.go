// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/rollcall/db"
	"github.com/danielhkuo/rollcall/middleware"
	"github.com/danielhkuo/rollcall/models"
)

const (
	defaultLookupLimit = 50
	maxLookupLimit     = 500
)

type LookupHandler struct {
	log *db.LookupLog
	now func() time.Time
}

func NewLookupHandler(conn *sql.DB) *LookupHandler {
	return &LookupHandler{log: db.NewLookupLog(conn), now: time.Now}
}

// ListLookups handles GET /lookups?limit=N
// Returns the most recent lookups, newest first
func (h *LookupHandler) ListLookups(w http.ResponseWriter, r *http.Request) {
	limit := defaultLookupLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLookupLimit {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	entries, err := h.log.ListLookups(r.Context(), limit)
	if err != nil {
		slog.Error("failed to list lookups", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	now := h.now()
	summaries := make([]models.LookupSummary, 0, len(entries))
	for _, e := range entries {
		summaries = append(summaries, models.LookupSummary{
			LookupEntry: e,
			Age:         humanize.RelTime(e.CreatedAt, now, "ago", "from now"),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.LookupListResponse{
		Lookups: summaries,
		Count:   len(summaries),
	})
}
