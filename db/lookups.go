// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/rollcall/models"
)

// LookupLog records which lookups were served and how they ended. It never
// stores envelopes and is never read back to answer a lookup.
type LookupLog struct {
	db  *sql.DB
	now func() time.Time
}

func NewLookupLog(db *sql.DB) *LookupLog {
	return &LookupLog{db: db, now: time.Now}
}

// RecordLookup inserts one entry. ID and CreatedAt are filled when empty.
func (l *LookupLog) RecordLookup(ctx context.Context, entry models.LookupEntry) (models.LookupEntry, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = l.now()
	}
	entry.CreatedAt = entry.CreatedAt.UTC()

	_, err := l.db.ExecContext(ctx, `
		INSERT INTO lookup_log (id, biennium, bill_number, status, record_count, error_code, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, entry.ID, entry.Biennium, entry.BillNumber, entry.Status,
		entry.RecordCount, entry.ErrorCode, entry.DurationMs, entry.CreatedAt)
	if err != nil {
		return models.LookupEntry{}, fmt.Errorf("failed to record lookup: %w", err)
	}
	return entry, nil
}

// ListLookups returns up to limit entries, newest first.
func (l *LookupLog) ListLookups(ctx context.Context, limit int) ([]models.LookupEntry, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, biennium, bill_number, status, record_count, error_code, duration_ms, created_at
		FROM lookup_log
		ORDER BY created_at DESC, id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query lookups: %w", err)
	}
	defer rows.Close()

	entries := []models.LookupEntry{}
	for rows.Next() {
		var e models.LookupEntry
		if err := rows.Scan(
			&e.ID, &e.Biennium, &e.BillNumber, &e.Status,
			&e.RecordCount, &e.ErrorCode, &e.DurationMs, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan lookup: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lookups: %w", err)
	}
	return entries, nil
}
