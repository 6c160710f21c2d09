// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the roll-call API.

# Handler Types

  - RollCallHandler: roll-call lookups, answered with a ResponseEnvelope
  - LookupHandler: recent lookups from the lookup log

# Status Codes

A lookup answers 200 whenever the request is well formed, including when the
upstream failed; the envelope's status field says what happened:

	200 {"status": "success", ...}
	200 {"status": "empty", ...}
	200 {"status": "error", "error_detail": {...}, ...}

Invalid descriptors answer 400 with an ErrorResponse whose kind is one of
malformed_biennium, out_of_range_biennium or malformed_bill_number.

# Biennium Default

GET /rollcalls and POST /rollcalls/lookup fall back to the current biennium
when none is given. The path form GET /rollcalls/{biennium}/{bill} always
requires one.
*/
package handlers
