// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package validate canonicalizes the parameters of a roll-call lookup.

A descriptor is valid only when both fields canonicalize; there is no
partial result.

	v := validate.New(validate.RangeFor(time.Now(), 1991, 0, 9999))
	d, err := v.Validate("2023-2024", "HB 1234")
	// d == RollCallDescriptor{Biennium: "2023-24", BillNumber: 1234}

# Errors

Every rejection is a *ValidationError with one of three kinds:

  - malformed_biennium: not YYYY-YY / YYYY-YYYY, or end year != start year + 1
  - out_of_range_biennium: even start year, before MinStartYear, or after MaxStartYear
  - malformed_bill_number: non-numeric, non-integral, zero, negative, or above MaxBillNumber

Use errors.Is with ErrMalformedBiennium, ErrOutOfRangeBiennium and
ErrMalformedBillNumber to branch on the kind.
*/
package validate
