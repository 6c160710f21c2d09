// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/rollcall/db"
	"github.com/danielhkuo/rollcall/models"
	"github.com/danielhkuo/rollcall/validate"
)

// TestNow is the fixed clock used across tests; its biennium is 2025-26.
var TestNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

// SetupTestDB opens a fresh sqlite database in a temp dir with the full
// schema. It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "rollcall.db")
	conn, err := db.Open("sqlite", "file:"+path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return conn
}

// NewTestValidator accepts 1991-92 through 2025-26.
func NewTestValidator() *validate.Validator {
	return validate.New(validate.RangeFor(TestNow, validate.DefaultMinStartYear, 0, validate.DefaultMaxBillNumber))
}

// FakeFetcher returns a canned upstream value and remembers what it was
// asked for.
type FakeFetcher struct {
	Raw any
	Err error

	mu    sync.Mutex
	calls []models.RollCallDescriptor
}

func (f *FakeFetcher) FetchRollCalls(_ context.Context, d models.RollCallDescriptor) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, d)
	return f.Raw, f.Err
}

func (f *FakeFetcher) Calls() []models.RollCallDescriptor {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.RollCallDescriptor(nil), f.calls...)
}

// SampleRecord is a roll call as the legislature service decodes it.
func SampleRecord(seq int) map[string]any {
	return map[string]any{
		"agency":          "House",
		"bill_id":         "HB 1234",
		"biennium":        "2023-24",
		"motion":          "Final Passage",
		"sequence_number": seq,
		"vote_date":       "2023-03-01T00:00:00",
		"yea_votes":       map[string]any{"count": 57, "members_voting": "..."},
		"nay_votes":       map[string]any{"count": 40},
		"absent_votes":    map[string]any{"count": 0},
		"excused_votes":   map[string]any{"count": 1},
		"votes": map[string]any{
			"vote": []any{
				map[string]any{"member_id": 1, "name": "Smith", "v_ote": "Yea"},
				map[string]any{"member_id": 2, "name": "Jones", "v_ote": "Nay"},
			},
		},
	}
}

// SampleRecords returns n sample records numbered from 1.
func SampleRecords(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = SampleRecord(i + 1)
	}
	return out
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
