// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/rollcall/middleware"
	"github.com/danielhkuo/rollcall/rollcall"
	"github.com/danielhkuo/rollcall/validate"
)

// LookupRequest is the body of POST /rollcalls/lookup. BillNumber may be a
// JSON number or a string such as "HB 1234".
type LookupRequest struct {
	Biennium   string `json:"biennium"`
	BillNumber any    `json:"bill_number"`
}

type RollCallHandler struct {
	svc *rollcall.Service
	now func() time.Time
}

func NewRollCallHandler(svc *rollcall.Service) *RollCallHandler {
	return &RollCallHandler{svc: svc, now: time.Now}
}

// GetRollCalls handles GET /rollcalls/{biennium}/{bill}
func (h *RollCallHandler) GetRollCalls(w http.ResponseWriter, r *http.Request) {
	h.lookup(w, r, r.PathValue("biennium"), r.PathValue("bill"))
}

// QueryRollCalls handles GET /rollcalls?bill_number=1234&biennium=2023-24
// The biennium defaults to the current one.
func (h *RollCallHandler) QueryRollCalls(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.lookup(w, r, h.bienniumOrCurrent(q.Get("biennium")), q.Get("bill_number"))
}

// PostLookup handles POST /rollcalls/lookup
func (h *RollCallHandler) PostLookup(w http.ResponseWriter, r *http.Request) {
	var req LookupRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	h.lookup(w, r, h.bienniumOrCurrent(req.Biennium), req.BillNumber)
}

func (h *RollCallHandler) bienniumOrCurrent(b string) string {
	if b == "" {
		return validate.CurrentBiennium(h.now())
	}
	return b
}

// lookup always answers 200 with an envelope unless the request itself is
// invalid. Upstream failures are inside the envelope, not the status code.
func (h *RollCallHandler) lookup(w http.ResponseWriter, r *http.Request, biennium string, bill any) {
	env, err := h.svc.Lookup(r.Context(), biennium, bill)

	var verr *validate.ValidationError
	if errors.As(err, &verr) {
		middleware.KindErrorResponse(w, http.StatusBadRequest, string(verr.Kind), verr.Error())
		return
	}
	if err != nil {
		slog.Error("roll call lookup failed", "error", err, "request_id", middleware.RequestID(r.Context()))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Lookup failed")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, env)
}
