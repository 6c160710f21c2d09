// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p                 Server port (default: 3318)
	-d                 Database URL (default: file:rollcall.db)
	-t                 Database type: sqlite or postgres (default: sqlite)
	-upstream          Legislation service base URL
	-timeout           Upstream request timeout (default: 15s)
	-retries           Upstream retry count (default: 2)
	-min-biennium      Earliest biennium start year (default: 1991)
	-future-bienniums  Bienniums accepted past the current one (default: 0)
	-max-bill          Largest bill number (default: 9999)
	-log-format        text or json (default: text)
	-log-level         debug, info, warn or error (default: info)
	-mode              http or mcp (default: http)
	-env-file          dotenv file to load (default: .env, ignored if missing)

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	DATABASE_URL      → -d
	DATABASE_TYPE     → -t
	UPSTREAM_URL      → -upstream
	UPSTREAM_TIMEOUT  → -timeout
	UPSTREAM_RETRIES  → -retries
	MIN_BIENNIUM_YEAR → -min-biennium
	FUTURE_BIENNIUMS  → -future-bienniums
	MAX_BILL_NUMBER   → -max-bill
	LOG_FORMAT        → -log-format
	LOG_LEVEL         → -log-level
	MODE              → -mode

CLI flags take precedence over environment variables, and environment
variables take precedence over the .env file.

# Validation

ParseFlags returns an error for unparsable numbers or durations, an unknown
database type or mode, and a postgres database without a URL.
*/
package cliparse
