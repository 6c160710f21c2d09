// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/danielhkuo/rollcall/classify"
	"github.com/danielhkuo/rollcall/models"
	"github.com/danielhkuo/rollcall/proptest"
	"github.com/danielhkuo/rollcall/upstream"
	"github.com/danielhkuo/rollcall/validate"
)

func anyOf[T any](g proptest.Gen[T]) proptest.Gen[any] {
	return proptest.Map(g, func(v T) any { return v })
}

// GenBiennium yields canonical bienniums inside r, favoring both ends.
func GenBiennium(r validate.Range) proptest.Gen[string] {
	n := (r.MaxStartYear - r.MinStartYear) / 2
	return proptest.Map(proptest.Int(0, n), func(i int) string {
		start := r.MinStartYear + 2*i
		return fmt.Sprintf("%04d-%02d", start, (start+1)%100)
	})
}

// GenBillNumber yields bill numbers inside r.
func GenBillNumber(r validate.Range) proptest.Gen[int] {
	return proptest.Int(1, r.MaxBillNumber)
}

// GenDescriptor yields valid canonical descriptors.
func GenDescriptor(r validate.Range) proptest.Gen[models.RollCallDescriptor] {
	return proptest.Map(proptest.Zip(GenBiennium(r), GenBillNumber(r)),
		func(p proptest.Pair[string, int]) models.RollCallDescriptor {
			return models.RollCallDescriptor{Biennium: p.First, BillNumber: p.Second}
		})
}

// GenRawBiennium mixes valid bienniums with near misses and garbage.
func GenRawBiennium(r validate.Range) proptest.Gen[string] {
	boundary := proptest.Elements(
		fmt.Sprintf("%04d-%02d", r.MinStartYear-2, (r.MinStartYear-1)%100),
		fmt.Sprintf("%04d-%02d", r.MaxStartYear+2, (r.MaxStartYear+3)%100),
		fmt.Sprintf("%04d-%04d", r.MinStartYear, r.MinStartYear+1),
		fmt.Sprintf("%04d-%02d", r.MinStartYear+1, (r.MinStartYear+2)%100),
		"2023-25", "2023-2025", "",
	)
	return proptest.Frequency(
		proptest.Weighted[string]{Weight: 4, Gen: GenBiennium(r)},
		proptest.Weighted[string]{Weight: 2, Gen: boundary},
		proptest.Weighted[string]{Weight: 3, Gen: proptest.StringOf(proptest.Rune("0123456789-- aZ"), 0, 12)},
	)
}

// GenRawBillNumber mixes numbers, prefixed strings and junk.
func GenRawBillNumber(r validate.Range) proptest.Gen[any] {
	prefixed := proptest.Map(
		proptest.Zip(proptest.Elements("HB ", "SB ", "ESHB ", "2SSB ", "hb", ""), proptest.Int(-5, r.MaxBillNumber+5)),
		func(p proptest.Pair[string, int]) any { return p.First + strconv.Itoa(p.Second) },
	)
	return proptest.OneOf(
		anyOf(proptest.Int(-10, r.MaxBillNumber+10)),
		prefixed,
		anyOf(proptest.Elements(0.5, 1234.0, -1.0, math.NaN(), math.Inf(1))),
		anyOf(proptest.StringOf(proptest.Rune("0123456789 xX-."), 0, 8)),
		proptest.Elements[any](nil, true, "", json.Number("1234"), json.Number("1e3"), []int{1}),
	)
}

var recordKeys = []string{
	"sequence_number", "SequenceNumber", "date", "vote_date", "description",
	"motion", "agency", "bill_id", "yea_votes", "yea_count", "nay_votes",
	"absent_votes", "excused_votes", "votes", "Votes", "unknown", "",
}

var voteKeys = []string{"legislator_name", "name", "member_id", "vote", "v_ote", "district", "party", "extra"}

// GenScalar yields JSON-ish leaf values including the awkward ones.
func GenScalar() proptest.Gen[any] {
	return proptest.OneOf(
		proptest.Const[any](nil),
		anyOf(proptest.Bool()),
		anyOf(proptest.Int(math.MinInt32, math.MaxInt32)),
		anyOf(proptest.StringOf(proptest.Rune("aZ0 -_é\"\\\x00"), 0, 10)),
		anyOf(proptest.Elements(1.5, -0.0, 1e300, math.Inf(-1), math.NaN())),
	)
}

func genObject(keys []string, value proptest.Gen[any]) proptest.Gen[any] {
	field := proptest.Zip(proptest.Elements(keys...), value)
	return proptest.Map(proptest.SliceOf(field, 0, len(keys)), func(fs []proptest.Pair[string, any]) any {
		m := make(map[string]any, len(fs))
		for _, f := range fs {
			m[f.First] = f.Second
		}
		return m
	})
}

// GenRawVote yields vote entries with random subsets of fields.
func GenRawVote() proptest.Gen[any] {
	return proptest.Frequency(
		proptest.Weighted[any]{Weight: 5, Gen: genObject(voteKeys, GenScalar())},
		proptest.Weighted[any]{Weight: 1, Gen: GenScalar()},
	)
}

// GenRawRecord yields one upstream record: usually an object with a random
// subset of known and unknown fields of random types, sometimes not an
// object at all.
func GenRawRecord() proptest.Gen[any] {
	votes := proptest.OneOf(
		anyOf(proptest.SliceOf(GenRawVote(), 0, 5)),
		proptest.Map(proptest.SliceOf(GenRawVote(), 0, 5), func(vs []any) any {
			return map[string]any{"vote": vs}
		}),
		proptest.Map(GenRawVote(), func(v any) any { return map[string]any{"vote": v} }),
	)
	value := proptest.Frequency(
		proptest.Weighted[any]{Weight: 6, Gen: GenScalar()},
		proptest.Weighted[any]{Weight: 1, Gen: votes},
		proptest.Weighted[any]{Weight: 1, Gen: anyOf(proptest.Map(proptest.Int(0, 99), func(n int) map[string]any {
			return map[string]any{"count": n}
		}))},
	)
	return proptest.Frequency(
		proptest.Weighted[any]{Weight: 6, Gen: genObject(recordKeys, value)},
		proptest.Weighted[any]{Weight: 2, Gen: proptest.Map(proptest.Int(1, 500), func(n int) any { return SampleRecord(n) })},
		proptest.Weighted[any]{Weight: 1, Gen: GenScalar()},
		proptest.Weighted[any]{Weight: 1, Gen: proptest.Elements[any](
			json.RawMessage(`{"sequence_number":"7","agency":"Senate"}`),
			json.RawMessage(`not json`),
			[]byte(`[1,2]`),
			[]any{},
		)},
	)
}

// GenLargeRecords yields long record lists without paying for a random
// value per element.
func GenLargeRecords() proptest.Gen[[]any] {
	return proptest.Map(proptest.Int(500, 3000), func(n int) []any {
		return SampleRecords(n)
	})
}

// GenUpstreamResult yields all four variants, including an explicit error
// with an empty message and very long record lists.
func GenUpstreamResult() proptest.Gen[classify.UpstreamResult] {
	data := proptest.Map(proptest.SliceOf(GenRawRecord(), 1, 40), func(rs []any) classify.UpstreamResult {
		return classify.DataPresent{Records: rs}
	})
	large := proptest.Map(GenLargeRecords(), func(rs []any) classify.UpstreamResult {
		return classify.DataPresent{Records: rs}
	})
	explicit := proptest.Map(
		proptest.Zip(proptest.StringOf(proptest.Rune("timeout 503:\"é"), 0, 16), proptest.Int(-1, 999)),
		func(p proptest.Pair[string, int]) classify.UpstreamResult {
			return classify.ExplicitError{Message: p.First, Code: p.Second}
		})

	return proptest.Frequency(
		proptest.Weighted[classify.UpstreamResult]{Weight: 5, Gen: data},
		proptest.Weighted[classify.UpstreamResult]{Weight: 1, Gen: large},
		proptest.Weighted[classify.UpstreamResult]{Weight: 2, Gen: proptest.Const[classify.UpstreamResult](classify.EmptyData{})},
		proptest.Weighted[classify.UpstreamResult]{Weight: 3, Gen: explicit},
		proptest.Weighted[classify.UpstreamResult]{Weight: 1, Gen: proptest.Const[classify.UpstreamResult](classify.ExplicitError{})},
		proptest.Weighted[classify.UpstreamResult]{Weight: 2, Gen: proptest.Const[classify.UpstreamResult](classify.Absent{})},
		proptest.Weighted[classify.UpstreamResult]{Weight: 1, Gen: proptest.Elements[classify.UpstreamResult](
			nil,
			(*classify.DataPresent)(nil),
			&classify.ExplicitError{Message: "pointer"},
			&classify.EmptyData{},
		)},
	)
}

// GenRawUpstream yields the untyped values a fetcher might hand back:
// nil and typed nils, record lists, error objects (some with a null
// message), Go errors, encoded bodies, wrappers and plain garbage.
func GenRawUpstream() proptest.Gen[any] {
	records := anyOf(proptest.SliceOf(GenRawRecord(), 0, 20))
	errObject := genObject([]string{"code", "message", "error", "success", "faultstring", "status"}, GenScalar())
	wrapped := proptest.Map(proptest.Zip(proptest.Elements("array_of_roll_call", "ArrayOfRollCall", "roll_calls", "other"), records),
		func(p proptest.Pair[string, any]) any { return map[string]any{p.First: p.Second} })
	encoded := proptest.Map(records, func(v any) any {
		b, err := json.Marshal(v)
		if err != nil {
			return json.RawMessage(`[`)
		}
		return json.RawMessage(b)
	})
	goErrors := proptest.Elements[any](
		errors.New("connection refused"),
		&upstream.StatusError{Code: 503, Message: "timeout"},
		fmt.Errorf("wrapped: %w", &upstream.StatusError{Code: 500}),
		&upstream.StatusError{},
	)
	odd := proptest.Elements[any](
		nil,
		([]any)(nil),
		(map[string]any)(nil),
		(*int)(nil),
		(error)(nil),
		map[string]any{"code": 503, "message": "timeout"},
		map[string]any{"error": nil},
		map[string]any{"error": false},
		map[string]any{"error": map[string]any{"message": nil, "code": nil}},
		map[string]any{"success": false},
		[]string{"a", "b"},
		[0]int{},
		[3]int{1, 2, 3},
		make(chan int),
		func() {},
		struct{ X int }{1},
		map[string]string{"error": "boom"},
		map[string]any{"Code": 502, "Message": "bad gateway"},
		struct {
			Code    int
			Message string
		}{503, "timeout"},
		&struct{ Error string }{"unavailable"},
		json.RawMessage(`null`),
		json.RawMessage(``),
		[]byte(`{"error":"boom","code":"7"}`),
	)

	return proptest.OneOf(records, errObject, wrapped, encoded, goErrors, odd, GenScalar())
}
