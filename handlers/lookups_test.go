// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/rollcall/db"
	"github.com/danielhkuo/rollcall/models"
	"github.com/danielhkuo/rollcall/testutil"
)

func TestListLookups(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	log := db.NewLookupLog(conn)
	ctx := context.Background()

	for i, status := range []string{models.StatusSuccess, models.StatusEmpty, models.StatusError} {
		_, err := log.RecordLookup(ctx, models.LookupEntry{
			Biennium:   "2023-24",
			BillNumber: 1000 + i,
			Status:     status,
			CreatedAt:  testutil.TestNow.Add(time.Duration(i-3) * time.Hour),
		})
		if err != nil {
			t.Fatalf("Failed to record lookup: %v", err)
		}
	}

	h := NewLookupHandler(conn)
	h.now = func() time.Time { return testutil.TestNow }

	t.Run("newest first", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/lookups", nil)
		w := httptest.NewRecorder()

		h.ListLookups(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.LookupListResponse
		testutil.AssertJSON(t, w, &resp)

		if resp.Count != 3 || len(resp.Lookups) != 3 {
			t.Fatalf("Expected 3 lookups, got %d", resp.Count)
		}
		if resp.Lookups[0].BillNumber != 1002 {
			t.Errorf("Expected newest lookup first, got bill %d", resp.Lookups[0].BillNumber)
		}
		if resp.Lookups[0].Age != "1 hour ago" {
			t.Errorf("Expected age '1 hour ago', got %q", resp.Lookups[0].Age)
		}
	})

	t.Run("limit", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/lookups?limit=2", nil)
		w := httptest.NewRecorder()

		h.ListLookups(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.LookupListResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Count != 2 {
			t.Errorf("Expected 2 lookups, got %d", resp.Count)
		}
	})

	t.Run("bad limit", func(t *testing.T) {
		for _, limit := range []string{"0", "-1", "501", "ten"} {
			req := httptest.NewRequest("GET", "/lookups?limit="+limit, nil)
			w := httptest.NewRecorder()

			h.ListLookups(w, req)

			testutil.AssertStatus(t, w, http.StatusBadRequest)
		}
	})
}

func TestListLookups_Empty(t *testing.T) {
	h := NewLookupHandler(testutil.SetupTestDB(t))

	req := httptest.NewRequest("GET", "/lookups", nil)
	w := httptest.NewRecorder()

	h.ListLookups(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.LookupListResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Count != 0 || resp.Lookups == nil {
		t.Errorf("Expected empty non-null list, got %+v", resp)
	}
}
