// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/rollcall/db"
	"github.com/danielhkuo/rollcall/models"
	"github.com/danielhkuo/rollcall/rollcall"
	"github.com/danielhkuo/rollcall/testutil"
	"github.com/danielhkuo/rollcall/upstream"
)

const legislatureXML = `<?xml version="1.0" encoding="utf-8"?>
<ArrayOfRollCall xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns="http://WSLWebServices.leg.wa.gov/">
  <RollCall>
    <Agency>House</Agency>
    <BillId>HB 1234</BillId>
    <Biennium>2023-24</Biennium>
    <Motion>Final Passage</Motion>
    <SequenceNumber>12</SequenceNumber>
    <VoteDate>2023-03-01T00:00:00</VoteDate>
    <YeaVotes><Count>57</Count></YeaVotes>
    <NayVotes><Count>40</Count></NayVotes>
    <AbsentVotes><Count>0</Count></AbsentVotes>
    <ExcusedVotes><Count>1</Count></ExcusedVotes>
    <Votes>
      <Vote><MemberId>1</MemberId><Name>Smith</Name><VOte>Yea</VOte></Vote>
      <Vote><MemberId>2</MemberId><Name>Jones</Name><VOte>Nay</VOte></Vote>
    </Votes>
  </RollCall>
</ArrayOfRollCall>`

// fakeLegislature answers by bill number: 1234 has one roll call, 2000 has
// none, 9999 times out.
func fakeLegislature(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/GetRollCalls" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		switch r.URL.Query().Get("billNumber") {
		case "1234":
			w.Write([]byte(legislatureXML))
		case "2000":
			w.Write([]byte(`<ArrayOfRollCall xmlns="http://WSLWebServices.leg.wa.gov/" />`))
		case "9999":
			w.Header().Set("Content-Type", "text/plain")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("timeout"))
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// TestFullLookupWorkflow runs lookups through the real stack:
// 1. A bill with votes
// 2. A bill with no votes
// 3. A bill whose upstream fails
// 4. An invalid request
// 5. The lookup log
func TestFullLookupWorkflow(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	legislature := fakeLegislature(t)

	client := upstream.New(upstream.Options{
		BaseURL:   legislature.URL,
		Timeout:   2 * time.Second,
		Retries:   0,
		RetryWait: time.Millisecond,
	})
	svc := rollcall.New(testutil.NewTestValidator(), client, db.NewLookupLog(conn))
	h := NewHandler(svc, conn)

	// Step 1: roll calls found
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/rollcalls/2023-24/HB%201234", nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	if err := testutil.EnvelopeJSONSchemaError(w.Body.Bytes()); err != nil {
		t.Fatalf("Step 1 - schema: %v", err)
	}

	var found models.ResponseEnvelope
	testutil.AssertJSON(t, w, &found)
	if found.Status != models.StatusSuccess || found.Metadata.Count != 1 {
		t.Fatalf("Step 1 - expected one roll call, got %s/%d", found.Status, found.Metadata.Count)
	}
	rc := found.Data[0]
	if rc.SequenceNumber != 12 || rc.Description != "Final Passage" || rc.Date != "2023-03-01T00:00:00" {
		t.Errorf("Step 1 - unexpected record %+v", rc)
	}
	if rc.YeaVotes != 57 || rc.NayVotes != 40 || rc.AbsentVotes != 0 || rc.ExcusedVotes != 1 {
		t.Errorf("Step 1 - unexpected counts %+v", rc)
	}
	if len(rc.Votes) != 2 || rc.Votes[0] != (models.MemberVote{LegislatorName: "Smith", MemberID: 1, Vote: "Yea"}) {
		t.Errorf("Step 1 - unexpected votes %+v", rc.Votes)
	}

	// Step 2: no roll calls
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/rollcalls?bill_number=2000&biennium=2023-24", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var none models.ResponseEnvelope
	testutil.AssertJSON(t, w, &none)
	if none.Status != models.StatusEmpty || len(none.Data) != 0 || none.ErrorDetail != nil {
		t.Errorf("Step 2 - expected empty envelope, got %+v", none)
	}

	// Step 3: upstream failure stays a 200 with an error envelope
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("POST", "/rollcalls/lookup",
		bytes.NewBufferString(`{"biennium":"2023-24","bill_number":9999}`)))
	testutil.AssertStatus(t, w, http.StatusOK)

	var failed models.ResponseEnvelope
	testutil.AssertJSON(t, w, &failed)
	if failed.Status != models.StatusError || failed.ErrorDetail == nil {
		t.Fatalf("Step 3 - expected error envelope, got %+v", failed)
	}
	if failed.ErrorDetail.Code != 503 || failed.ErrorDetail.Message != "timeout" {
		t.Errorf("Step 3 - unexpected error_detail %+v", failed.ErrorDetail)
	}

	// Step 4: invalid input never reaches upstream or the log
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/rollcalls/2024-25/1234", nil))
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	// Step 5: the log has one entry per served lookup
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/lookups", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var logged models.LookupListResponse
	testutil.AssertJSON(t, w, &logged)
	if logged.Count != 3 {
		t.Fatalf("Step 5 - expected 3 logged lookups, got %d", logged.Count)
	}
	statuses := map[string]int{}
	for _, l := range logged.Lookups {
		statuses[l.Status]++
	}
	if statuses[models.StatusSuccess] != 1 || statuses[models.StatusEmpty] != 1 || statuses[models.StatusError] != 1 {
		t.Errorf("Step 5 - unexpected statuses %v", statuses)
	}
}
