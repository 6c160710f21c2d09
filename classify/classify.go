// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package classify

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

type Kind int

const (
	KindAbsent Kind = iota
	KindEmptyData
	KindExplicitError
	KindDataPresent
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindEmptyData:
		return "empty_data"
	case KindExplicitError:
		return "explicit_error"
	case KindDataPresent:
		return "data_present"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// UpstreamResult is one of DataPresent, EmptyData, ExplicitError or Absent.
// The unexported method keeps the set closed.
type UpstreamResult interface {
	Kind() Kind
	sealed()
}

// DataPresent carries a non-empty list of raw records, untouched and in
// upstream order.
type DataPresent struct {
	Records []any
}

type EmptyData struct{}

// ExplicitError is an upstream-reported failure. Message may be empty.
type ExplicitError struct {
	Message string
	Code    int
}

type Absent struct{}

func (DataPresent) Kind() Kind   { return KindDataPresent }
func (EmptyData) Kind() Kind     { return KindEmptyData }
func (ExplicitError) Kind() Kind { return KindExplicitError }
func (Absent) Kind() Kind        { return KindAbsent }

func (DataPresent) sealed()   {}
func (EmptyData) sealed()     {}
func (ExplicitError) sealed() {}
func (Absent) sealed()        {}

// CodedError is implemented by upstream errors that carry a numeric code
// and the upstream's own diagnostic text.
type CodedError interface {
	error
	StatusCode() int
	Detail() string
}

// Classify maps any raw upstream value to exactly one UpstreamResult.
// It never panics; shapes it does not recognize are Absent.
func Classify(raw any) (result UpstreamResult) {
	defer func() {
		if recover() != nil {
			result = Absent{}
		}
	}()
	return classify(raw, 0)
}

// ClassifyJSON classifies an encoded upstream body. Invalid JSON and null
// are Absent.
func ClassifyJSON(body []byte) UpstreamResult {
	if !gjson.ValidBytes(body) {
		return Absent{}
	}
	parsed := gjson.ParseBytes(body)
	if parsed.Type == gjson.Null {
		return Absent{}
	}
	return Classify(parsed.Value())
}

// wrappers deeper than this are treated as unrecognized
const maxUnwrap = 4

var wrapperKeys = []string{"array_of_roll_call", "ArrayOfRollCall", "roll_calls"}

func classify(raw any, depth int) UpstreamResult {
	if isNil(raw) {
		return Absent{}
	}

	switch v := raw.(type) {
	case error:
		return fromError(v)
	case json.RawMessage:
		return ClassifyJSON(v)
	case []byte:
		return ClassifyJSON(v)
	case []any:
		return fromSlice(v)
	case map[string]any:
		if isErrorObject(v) {
			return fromErrorObject(v)
		}
		if depth < maxUnwrap {
			for _, k := range wrapperKeys {
				if inner, ok := v[k]; ok {
					return classify(inner, depth+1)
				}
			}
		}
		return Absent{}
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		records := make([]any, rv.Len())
		for i := range records {
			records[i] = rv.Index(i).Interface()
		}
		return fromSlice(records)
	case reflect.Pointer:
		if depth < maxUnwrap {
			return classify(rv.Elem().Interface(), depth+1)
		}
	case reflect.Map, reflect.Struct:
		// Typed maps and structs ({Code, Message}) are judged by their
		// JSON form.
		if generic, ok := toGeneric(raw); ok && depth < maxUnwrap {
			return classify(generic, depth+1)
		}
	}
	return Absent{}
}

func toGeneric(raw any) (any, bool) {
	b, err := json.Marshal(raw)
	if err != nil || !gjson.ValidBytes(b) {
		return nil, false
	}
	return gjson.ParseBytes(b).Value(), true
}

func isNil(raw any) bool {
	if raw == nil {
		return true
	}
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func fromSlice(records []any) UpstreamResult {
	if len(records) == 0 {
		return EmptyData{}
	}
	return DataPresent{Records: records}
}

func fromError(err error) UpstreamResult {
	var coded CodedError
	if errors.As(err, &coded) {
		return ExplicitError{Message: coded.Detail(), Code: coded.StatusCode()}
	}
	return ExplicitError{Message: err.Error()}
}

// isErrorObject reports whether a decoded object signals failure: a
// non-null, non-false "error" key, "success": false, a SOAP fault, or a
// bare {"code", "message"} pair.
func isErrorObject(m map[string]any) bool {
	if e, ok := field(m, "error"); ok && e != nil && e != false {
		return true
	}
	if s, ok := get(m, "success").(bool); ok && !s {
		return true
	}
	if _, fault := field(m, "faultstring"); fault {
		return true
	}
	_, hasCode := field(m, "code")
	_, hasMessage := field(m, "message")
	return hasCode && hasMessage
}

func fromErrorObject(m map[string]any) ExplicitError {
	var out ExplicitError

	nested, _ := get(m, "error").(map[string]any)

	for _, candidate := range []any{get(m, "message"), get(nested, "message"), get(m, "error"), get(m, "faultstring"), get(m, "error_message")} {
		if s, ok := text(candidate); ok {
			out.Message = s
			break
		}
	}
	for _, candidate := range []any{get(m, "code"), get(nested, "code"), get(m, "status"), get(m, "status_code"), get(m, "faultcode")} {
		if c, ok := code(candidate); ok {
			out.Code = c
			break
		}
	}
	return out
}

// field looks key up exactly, then ignoring case; among several
// case-insensitive matches the smallest key wins.
func field(m map[string]any, key string) (any, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	match := ""
	found := false
	for k := range m {
		if strings.EqualFold(k, key) && (!found || k < match) {
			match, found = k, true
		}
	}
	if !found {
		return nil, false
	}
	return m[match], true
}

func get(m map[string]any, key string) any {
	v, _ := field(m, key)
	return v
}

// text renders scalar diagnostic values. Objects and lists do not count.
func text(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case float64, int, int64, json.Number:
		return fmt.Sprint(x), true
	default:
		return "", false
	}
}

func code(v any) (int, bool) {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) || x != math.Trunc(x) || math.Abs(x) > math.MaxInt32 {
			return 0, false
		}
		return int(x), true
	case int:
		return x, true
	case int64:
		if x > math.MaxInt32 || x < math.MinInt32 {
			return 0, false
		}
		return int(x), true
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			return 0, false
		}
		return code(n)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
