// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package envelope builds the normalized response for a roll-call lookup.

Build is the only place that decides the response shape:

	| upstream result | status  | data               | error_detail    | metadata.count |
	|-----------------|---------|--------------------|-----------------|----------------|
	| DataPresent     | success | normalized records | absent          | len(records)   |
	| EmptyData       | empty   | []                 | absent          | 0              |
	| ExplicitError   | error   | []                 | {message, code} | 0              |
	| Absent          | empty   | []                 | absent          | 0              |

# Record Normalization

NormalizeRecord gives every record the same fields whatever the upstream
sent. Missing or mistyped strings become "", missing counts become 0 and a
missing vote list becomes []. Records are never dropped or reordered.
*/
package envelope
