// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/rollcall/handlers"
	"github.com/danielhkuo/rollcall/middleware"
	"github.com/danielhkuo/rollcall/rollcall"
)

func NewRouter(svc *rollcall.Service, db *sql.DB) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	rollCallHandler := handlers.NewRollCallHandler(svc)
	lookupHandler := handlers.NewLookupHandler(db)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Roll-call lookups
	mux.HandleFunc("GET /rollcalls", middleware.WithLogging(rollCallHandler.QueryRollCalls))
	mux.HandleFunc("GET /rollcalls/{biennium}/{bill}", middleware.WithLogging(rollCallHandler.GetRollCalls))
	mux.HandleFunc("POST /rollcalls/lookup", middleware.WithLogging(rollCallHandler.PostLookup))

	// Lookup log
	mux.HandleFunc("GET /lookups", middleware.WithLogging(lookupHandler.ListLookups))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("rollcall API v1"))
	})

	return mux
}

// NewHandler wraps the router with request IDs and CORS.
func NewHandler(svc *rollcall.Service, db *sql.DB) http.Handler {
	return middleware.CORS(middleware.WithRequestID(NewRouter(svc, db)))
}
