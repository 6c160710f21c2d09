// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validate

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/rollcall/models"
)

// Kind classifies why a descriptor was rejected.
type Kind string

const (
	KindMalformedBiennium   Kind = "malformed_biennium"
	KindOutOfRangeBiennium  Kind = "out_of_range_biennium"
	KindMalformedBillNumber Kind = "malformed_bill_number"
)

// Sentinels for errors.Is. They match any ValidationError of the same kind.
var (
	ErrMalformedBiennium   = &ValidationError{Kind: KindMalformedBiennium}
	ErrOutOfRangeBiennium  = &ValidationError{Kind: KindOutOfRangeBiennium}
	ErrMalformedBillNumber = &ValidationError{Kind: KindMalformedBillNumber}
)

// Defaults for Range.
const (
	DefaultMinStartYear  = 1991
	DefaultMaxBillNumber = 9999
)

type ValidationError struct {
	Kind   Kind
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s %q: %s", e.Kind, e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Kind == e.Kind
}

// Range bounds the descriptors a Validator accepts. Start years are the
// first (odd) year of a biennium.
type Range struct {
	MinStartYear  int
	MaxStartYear  int
	MaxBillNumber int
}

// RangeFor builds a Range whose upper bound is the biennium containing now
// plus futureBienniums more. Non-positive minStart and maxBill fall back to
// the package defaults.
func RangeFor(now time.Time, minStart, futureBienniums, maxBill int) Range {
	if minStart <= 0 {
		minStart = DefaultMinStartYear
	}
	if maxBill <= 0 {
		maxBill = DefaultMaxBillNumber
	}
	if futureBienniums < 0 {
		futureBienniums = 0
	}
	return Range{
		MinStartYear:  minStart,
		MaxStartYear:  bienniumStart(now.Year()) + 2*futureBienniums,
		MaxBillNumber: maxBill,
	}
}

// CurrentBiennium returns the canonical biennium containing now.
func CurrentBiennium(now time.Time) string {
	return formatBiennium(bienniumStart(now.Year()))
}

func bienniumStart(year int) int {
	if year%2 == 0 {
		return year - 1
	}
	return year
}

func formatBiennium(start int) string {
	return fmt.Sprintf("%04d-%02d", start, (start+1)%100)
}

// Validator canonicalizes raw lookup parameters. It holds no mutable state
// and is safe for concurrent use.
type Validator struct {
	r Range
}

func New(r Range) *Validator {
	return &Validator{r: r}
}

func (v *Validator) Range() Range {
	return v.r
}

// Validate returns a canonical descriptor or a *ValidationError. The
// biennium is checked first, so a request with two bad fields reports the
// biennium problem.
func (v *Validator) Validate(rawBiennium string, rawBill any) (models.RollCallDescriptor, error) {
	biennium, err := v.Biennium(rawBiennium)
	if err != nil {
		return models.RollCallDescriptor{}, err
	}
	bill, err := v.BillNumber(rawBill)
	if err != nil {
		return models.RollCallDescriptor{}, err
	}
	return models.RollCallDescriptor{Biennium: biennium, BillNumber: bill}, nil
}

var bienniumPattern = regexp.MustCompile(`^(\d{4})-(\d{2}|\d{4})$`)

// Biennium accepts "YYYY-YY" or "YYYY-YYYY" and returns "YYYY-YY".
func (v *Validator) Biennium(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	m := bienniumPattern.FindStringSubmatch(s)
	if m == nil {
		return "", &ValidationError{
			Kind:   KindMalformedBiennium,
			Field:  "biennium",
			Value:  raw,
			Reason: "expected YYYY-YY",
		}
	}

	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	want := start + 1
	if len(m[2]) == 2 {
		want %= 100
	}
	if end != want {
		return "", &ValidationError{
			Kind:   KindMalformedBiennium,
			Field:  "biennium",
			Value:  raw,
			Reason: "end year must follow start year",
		}
	}

	switch {
	case start%2 == 0:
		return "", &ValidationError{
			Kind:   KindOutOfRangeBiennium,
			Field:  "biennium",
			Value:  raw,
			Reason: "bienniums start in odd years",
		}
	case start < v.r.MinStartYear:
		return "", &ValidationError{
			Kind:   KindOutOfRangeBiennium,
			Field:  "biennium",
			Value:  raw,
			Reason: fmt.Sprintf("earliest supported biennium is %s", formatBiennium(v.r.MinStartYear)),
		}
	case start > v.r.MaxStartYear:
		return "", &ValidationError{
			Kind:   KindOutOfRangeBiennium,
			Field:  "biennium",
			Value:  raw,
			Reason: fmt.Sprintf("latest supported biennium is %s", formatBiennium(bienniumStart(v.r.MaxStartYear))),
		}
	}

	return formatBiennium(start), nil
}

// "1234", "HB 1234", "SB5678", "2SHB 1234", "E2SSB 5187", "HB-1234",
// "HB 1234-S". The prefix must end in a letter so its digits never
// swallow the bill number.
var billPattern = regexp.MustCompile(`^(?i)(?:[0-9A-Z]{0,5}[A-Z][\s-]*)?([0-9]+)(?:-[A-Z0-9]+)?$`)

// BillNumber accepts integers, integral floats, json.Number and strings
// with an optional chamber prefix.
func (v *Validator) BillNumber(raw any) (int, error) {
	n, ok := billNumber(raw)
	if !ok {
		return 0, &ValidationError{
			Kind:   KindMalformedBillNumber,
			Field:  "bill_number",
			Value:  fmt.Sprint(raw),
			Reason: "expected a number like 1234 or HB 1234",
		}
	}
	if n < 1 || n > int64(v.r.MaxBillNumber) {
		return 0, &ValidationError{
			Kind:   KindMalformedBillNumber,
			Field:  "bill_number",
			Value:  fmt.Sprint(raw),
			Reason: fmt.Sprintf("must be between 1 and %d", v.r.MaxBillNumber),
		}
	}
	return int(n), nil
}

func billNumber(raw any) (int64, bool) {
	switch x := raw.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		return clampUint(uint64(x)), true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		return clampUint(x), true
	case float32:
		return integral(float64(x))
	case float64:
		return integral(x)
	case json.Number:
		return parseBillString(x.String())
	case string:
		return parseBillString(x)
	default:
		return 0, false
	}
}

func clampUint(x uint64) int64 {
	if x > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(x)
}

func integral(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt64/2 || f < math.MinInt64/2 {
		return 0, false
	}
	return int64(f), true
}

func parseBillString(s string) (int64, bool) {
	m := billPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	digits := strings.TrimLeft(m[1], "0")
	if digits == "" {
		return 0, true
	}
	// Anything longer than 18 digits is out of range regardless of value.
	if len(digits) > 18 {
		return math.MaxInt64, true
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
