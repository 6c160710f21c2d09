// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package classify_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danielhkuo/rollcall/classify"
	"github.com/danielhkuo/rollcall/proptest"
	"github.com/danielhkuo/rollcall/testutil"
	"github.com/danielhkuo/rollcall/upstream"
)

type upstreamFault struct {
	Code    int
	Message string
}

func TestClassify(t *testing.T) {
	rec := map[string]any{"sequence_number": 1}

	tests := []struct {
		name string
		raw  any
		want classify.UpstreamResult
	}{
		// absent
		{"nil", nil, classify.Absent{}},
		{"typed nil slice", ([]any)(nil), classify.Absent{}},
		{"typed nil map", (map[string]any)(nil), classify.Absent{}},
		{"nil pointer", (*int)(nil), classify.Absent{}},
		{"json null", json.RawMessage(`null`), classify.Absent{}},
		{"empty body", json.RawMessage(``), classify.Absent{}},
		{"invalid json", []byte(`{"a":`), classify.Absent{}},
		{"string", "hello", classify.Absent{}},
		{"number", 42, classify.Absent{}},
		{"bool", true, classify.Absent{}},
		{"plain object", map[string]any{"foo": "bar"}, classify.Absent{}},
		{"error key null", map[string]any{"error": nil}, classify.Absent{}},
		{"error key false", map[string]any{"error": false}, classify.Absent{}},
		{"success true", map[string]any{"success": true}, classify.Absent{}},
		{"unknown wrapper", map[string]any{"items": []any{rec}}, classify.Absent{}},
		{"channel", make(chan int), classify.Absent{}},

		// empty
		{"empty list", []any{}, classify.EmptyData{}},
		{"empty typed slice", []string{}, classify.EmptyData{}},
		{"empty array", [0]int{}, classify.EmptyData{}},
		{"json empty list", json.RawMessage(`[]`), classify.EmptyData{}},
		{"wrapped empty", map[string]any{"array_of_roll_call": []any{}}, classify.EmptyData{}},

		// data
		{"one record", []any{rec}, classify.DataPresent{Records: []any{rec}}},
		{"typed slice", []int{1, 2}, classify.DataPresent{Records: []any{1, 2}}},
		{"records kept as is", []any{nil, "x", rec}, classify.DataPresent{Records: []any{nil, "x", rec}}},
		{"wrapped", map[string]any{"roll_calls": []any{rec}}, classify.DataPresent{Records: []any{rec}}},
		{"wrapped twice", map[string]any{"ArrayOfRollCall": map[string]any{"array_of_roll_call": []any{rec}}}, classify.DataPresent{Records: []any{rec}}},
		{"json list", json.RawMessage(`[{"sequence_number":1}]`), classify.DataPresent{Records: []any{map[string]any{"sequence_number": float64(1)}}}},

		// errors
		{"code and message", map[string]any{"code": 503, "message": "timeout"}, classify.ExplicitError{Message: "timeout", Code: 503}},
		{"error string", map[string]any{"error": "boom"}, classify.ExplicitError{Message: "boom"}},
		{"nested error", map[string]any{"error": map[string]any{"message": "bad bill", "code": 400}}, classify.ExplicitError{Message: "bad bill", Code: 400}},
		{"null message", map[string]any{"error": map[string]any{"message": nil}}, classify.ExplicitError{}},
		{"success false", map[string]any{"success": false, "status": "500"}, classify.ExplicitError{Code: 500}},
		{"soap fault", map[string]any{"faultcode": "soap:Server", "faultstring": "Server was unable"}, classify.ExplicitError{Message: "Server was unable"}},
		{"string code", map[string]any{"error": "x", "code": " 42 "}, classify.ExplicitError{Message: "x", Code: 42}},
		{"fractional code ignored", map[string]any{"code": 1.5, "message": "m"}, classify.ExplicitError{Message: "m"}},
		{"json error", []byte(`{"error":"boom","code":"7"}`), classify.ExplicitError{Message: "boom", Code: 7}},
		{"go error", errors.New("connection refused"), classify.ExplicitError{Message: "connection refused"}},
		{"status error", &upstream.StatusError{Code: 503, Message: "timeout"}, classify.ExplicitError{Message: "timeout", Code: 503}},
		{"wrapped status error", fmt.Errorf("fetch: %w", &upstream.StatusError{Code: 502}), classify.ExplicitError{Code: 502}},
		{"error wins over wrapper", map[string]any{"error": "x", "roll_calls": []any{rec}}, classify.ExplicitError{Message: "x"}},
		{"typed map error", map[string]string{"error": "boom"}, classify.ExplicitError{Message: "boom"}},
		{"typed map code", map[string]int{"code": 503, "status": 1}, classify.Absent{}},
		{"struct error", upstreamFault{Code: 503, Message: "timeout"}, classify.ExplicitError{Message: "timeout", Code: 503}},
		{"struct error pointer", &upstreamFault{Code: 500, Message: "down"}, classify.ExplicitError{Message: "down", Code: 500}},
		{"tagged struct error", struct {
			Err    string `json:"error"`
			Status int    `json:"status"`
		}{"bad bill", 400}, classify.ExplicitError{Message: "bad bill", Code: 400}},
		{"nil struct pointer", (*upstreamFault)(nil), classify.Absent{}},
		{"plain struct", struct{ X int }{1}, classify.Absent{}},
		{"capitalized keys", map[string]any{"Code": 502, "Message": "bad gateway"}, classify.ExplicitError{Message: "bad gateway", Code: 502}},
		{"pointer to list", &[]any{rec}, classify.DataPresent{Records: []any{rec}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify.Classify(tt.raw))
		})
	}
}

func TestClassifyUnwrapDepth(t *testing.T) {
	var raw any = []any{1}
	for i := 0; i < 10; i++ {
		raw = map[string]any{"roll_calls": raw}
	}
	assert.Equal(t, classify.Absent{}, classify.Classify(raw))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "absent", classify.KindAbsent.String())
	assert.Equal(t, "empty_data", classify.KindEmptyData.String())
	assert.Equal(t, "explicit_error", classify.KindExplicitError.String())
	assert.Equal(t, "data_present", classify.KindDataPresent.String())
	assert.Equal(t, "kind(9)", classify.Kind(9).String())
}

// Every raw value maps to exactly one of the four variants without
// panicking, and DataPresent never carries an empty list.
func TestClassifyTotal(t *testing.T) {
	proptest.Run(t, testutil.GenRawUpstream(), func(raw any) error {
		res := classify.Classify(raw)
		switch r := res.(type) {
		case classify.DataPresent:
			if len(r.Records) == 0 {
				return errors.New("DataPresent with no records")
			}
		case classify.EmptyData, classify.ExplicitError, classify.Absent:
		default:
			return fmt.Errorf("unexpected result %T", res)
		}
		return nil
	})
}

// Records reach DataPresent untouched and in order.
func TestClassifyPassesRecordsThrough(t *testing.T) {
	gen := proptest.SliceOf(testutil.GenRawRecord(), 1, 30)
	proptest.Run(t, gen, func(records []any) error {
		res, ok := classify.Classify(records).(classify.DataPresent)
		if !ok {
			return fmt.Errorf("got %T", classify.Classify(records))
		}
		if len(res.Records) != len(records) {
			return fmt.Errorf("got %d records, want %d", len(res.Records), len(records))
		}
		for i := range records {
			if fmt.Sprintf("%#v", res.Records[i]) != fmt.Sprintf("%#v", records[i]) {
				return fmt.Errorf("record %d changed", i)
			}
		}
		return nil
	})
}
