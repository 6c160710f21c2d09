// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and owns the lookup log.

# Drivers

Open selects the driver from the configured type:

	sqlite   -> modernc.org/sqlite ("file:rollcall.db")
	postgres -> github.com/lib/pq ("postgres://...")

# Schema

CreateSchema is idempotent (IF NOT EXISTS) and creates one table:

  - lookup_log: id, biennium, bill_number, status, record_count,
    error_code, duration_ms, created_at

# Lookup Log

LookupLog.RecordLookup stores one row per served lookup (IDs are UUIDs);
LookupLog.ListLookups returns the newest entries first. The log is for
operators only: envelopes are always rebuilt from the upstream.
*/
package db
