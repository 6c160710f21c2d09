// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package rollcall runs a lookup end to end:

	descriptor -> validate -> Fetcher -> classify -> envelope -> caller
	                                                          -> Recorder

Input errors stop before the upstream is called and are returned as
*validate.ValidationError. Upstream errors never escape Lookup; they become
an envelope with status "error".
*/
package rollcall
