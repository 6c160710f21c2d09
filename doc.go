// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the rollcall service.

rollcall answers "how did the legislature vote on this bill?" for the
Washington State Legislature. Every answer, whether the upstream returned
votes, nothing, or an error, comes back in the same envelope shape.

# Starting the Server

With no configuration it serves HTTP on port 3318 and keeps its lookup log
in a local sqlite file:

	go run .

Or with flags:

	go run . -p 8080 -t postgres -d "postgres://..."

To serve the get_roll_calls tool over MCP stdio instead:

	go run . -mode mcp

# Configuration

Flags win over environment variables, which win over a .env file.

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string (default: file:rollcall.db)
  - UPSTREAM_URL (-upstream): LegislationService base URL
  - UPSTREAM_TIMEOUT (-timeout), UPSTREAM_RETRIES (-retries)
  - MIN_BIENNIUM_YEAR, FUTURE_BIENNIUMS, MAX_BILL_NUMBER: accepted input range
  - LOG_FORMAT (text or json), LOG_LEVEL
  - MODE (-mode): http or mcp

# Architecture

  - validate: biennium and bill number canonicalization
  - classify: raw upstream value to one of four result kinds
  - envelope: result kind to the response envelope
  - rollcall: the lookup pipeline
  - upstream: resty client for the legislature's web service
  - db: lookup log (sqlite or postgres)
  - handlers, router, middleware: HTTP transport
  - mcpserver: MCP transport
  - cliparse: configuration parsing
  - proptest, testutil: property testing support

See package documentation for each component.
*/
package main
