// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package classify sorts raw upstream values into four shapes.

	nil, typed nil, unknown shapes, invalid JSON   -> Absent
	error values, {"error": ...}, SOAP faults      -> ExplicitError
	zero-length lists                              -> EmptyData
	non-empty lists                                -> DataPresent

Typed maps and structs are judged by their JSON encoding, and error keys
match regardless of case, so a {Code, Message} struct is an ExplicitError.
Objects that wrap the list under array_of_roll_call, ArrayOfRollCall or
roll_calls are unwrapped first. Records inside DataPresent are passed on
untouched; shaping them is the envelope package's job.
*/
package classify
