// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package mcpserver exposes roll-call lookups as a Model Context Protocol tool.

	s := mcpserver.New(svc, time.Now)
	err := server.ServeStdio(s)

The single tool, get_roll_calls, takes bill_number (required; a string such
as "HB 1234" or a number) and biennium (optional, current biennium by
default). Its result carries the ResponseEnvelope both as structured content
and as JSON text.
*/
package mcpserver
