// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/rollcall/models"
	"github.com/danielhkuo/rollcall/rollcall"
	"github.com/danielhkuo/rollcall/testutil"
)

func setup(t *testing.T, raw any) (*sql.DB, *http.ServeMux) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	fetcher := &testutil.FakeFetcher{Raw: raw}
	svc := rollcall.New(testutil.NewTestValidator(), fetcher, nil)
	return db, NewRouter(svc, db)
}

func TestHealthEndpoint(t *testing.T) {
	_, mux := setup(t, nil)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	_, mux := setup(t, nil)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "rollcall API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	_, mux := setup(t, testutil.SampleRecords(1))

	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},

		{"GET", "/rollcalls?bill_number=1234"},
		{"GET", "/rollcalls/2023-24/1234"},
		{"POST", "/rollcalls/lookup"},

		{"GET", "/lookups"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			// 400 is fine here: the empty POST body is rejected by the handler
			if w.Code == http.StatusMethodNotAllowed || w.Code == http.StatusNotFound {
				t.Errorf("Route %s %s returned %d, expected route handler to exist", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	_, mux := setup(t, nil)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"DELETE", "/rollcalls/2023-24/1234"},
		{"PUT", "/rollcalls/lookup"},
		{"POST", "/lookups"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestPathParameterExtraction(t *testing.T) {
	_, mux := setup(t, testutil.SampleRecords(2))

	req := httptest.NewRequest("GET", "/rollcalls/2023-2024/HB%201234", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var env models.ResponseEnvelope
	testutil.AssertJSON(t, w, &env)

	if env.Metadata.Biennium != "2023-24" {
		t.Errorf("Expected canonical biennium 2023-24, got %q", env.Metadata.Biennium)
	}
	if env.Metadata.BillNumber != 1234 {
		t.Errorf("Expected bill 1234, got %d", env.Metadata.BillNumber)
	}
	if env.Metadata.Count != 2 {
		t.Errorf("Expected count 2, got %d", env.Metadata.Count)
	}
}

func TestNewHandlerAddsRequestIDAndCORS(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := rollcall.New(testutil.NewTestValidator(), &testutil.FakeFetcher{}, nil)
	h := NewHandler(svc, db)

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("Expected X-Request-ID header")
	}
	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("Expected CORS header")
	}
}
