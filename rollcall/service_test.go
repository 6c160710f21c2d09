// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rollcall

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/rollcall/db"
	"github.com/danielhkuo/rollcall/models"
	"github.com/danielhkuo/rollcall/testutil"
	"github.com/danielhkuo/rollcall/upstream"
	"github.com/danielhkuo/rollcall/validate"
)

type memRecorder struct {
	mu      sync.Mutex
	entries []models.LookupEntry
	err     error
}

func (m *memRecorder) RecordLookup(_ context.Context, e models.LookupEntry) (models.LookupEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return models.LookupEntry{}, m.err
	}
	m.entries = append(m.entries, e)
	return e, nil
}

func TestLookupScenarios(t *testing.T) {
	tests := []struct {
		name      string
		raw       any
		err       error
		status    string
		count     int
		errorCode int
	}{
		{"records", testutil.SampleRecords(3), nil, models.StatusSuccess, 3, 0},
		{"nil", nil, nil, models.StatusEmpty, 0, 0},
		{"empty list", []any{}, nil, models.StatusEmpty, 0, 0},
		{"error object", map[string]any{"code": 503, "message": "timeout"}, nil, models.StatusError, 0, 503},
		{"fetch error", nil, &upstream.StatusError{Code: 500, Message: "down"}, models.StatusError, 0, 500},
		{"transport error", nil, errors.New("dial tcp: refused"), models.StatusError, 0, 0},
		{"garbage", 42, nil, models.StatusEmpty, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &memRecorder{}
			fetcher := &testutil.FakeFetcher{Raw: tt.raw, Err: tt.err}
			svc := New(testutil.NewTestValidator(), fetcher, rec)

			env, err := svc.Lookup(context.Background(), "2023-24", "HB 1234")
			require.NoError(t, err)
			require.NoError(t, testutil.EnvelopeSchemaError(env))

			assert.Equal(t, tt.status, env.Status)
			assert.Equal(t, tt.count, env.Metadata.Count)
			assert.Equal(t, []models.RollCallDescriptor{{Biennium: "2023-24", BillNumber: 1234}}, fetcher.Calls())

			require.Len(t, rec.entries, 1)
			e := rec.entries[0]
			assert.Equal(t, "2023-24", e.Biennium)
			assert.Equal(t, 1234, e.BillNumber)
			assert.Equal(t, tt.status, e.Status)
			assert.Equal(t, tt.count, e.RecordCount)
			assert.Equal(t, tt.errorCode, e.ErrorCode)
		})
	}
}

func TestLookupValidationShortCircuits(t *testing.T) {
	rec := &memRecorder{}
	fetcher := &testutil.FakeFetcher{Raw: testutil.SampleRecords(1)}
	svc := New(testutil.NewTestValidator(), fetcher, rec)

	_, err := svc.Lookup(context.Background(), "2023-25", 1234)
	require.ErrorIs(t, err, validate.ErrMalformedBiennium)

	_, err = svc.Lookup(context.Background(), "2023-24", -1)
	require.ErrorIs(t, err, validate.ErrMalformedBillNumber)

	_, err = svc.Lookup(context.Background(), "1987-88", 1)
	require.ErrorIs(t, err, validate.ErrOutOfRangeBiennium)

	assert.Empty(t, fetcher.Calls(), "upstream must not be called")
	assert.Empty(t, rec.entries, "rejected lookups are not recorded")
}

func TestLookupRecorderFailureIsNotFatal(t *testing.T) {
	rec := &memRecorder{err: errors.New("disk full")}
	svc := New(testutil.NewTestValidator(), &testutil.FakeFetcher{Raw: testutil.SampleRecords(2)}, rec)

	env, err := svc.Lookup(context.Background(), "2023-24", 1234)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSuccess, env.Status)
}

func TestLookupWithoutRecorder(t *testing.T) {
	svc := New(testutil.NewTestValidator(), &testutil.FakeFetcher{}, nil)

	env, err := svc.Lookup(context.Background(), "2023-24", 1234)
	require.NoError(t, err)
	assert.Equal(t, models.StatusEmpty, env.Status)
}

func TestFetchRecordsDuration(t *testing.T) {
	rec := &memRecorder{}
	svc := New(testutil.NewTestValidator(), &testutil.FakeFetcher{}, rec)

	clock := testutil.TestNow
	svc.now = func() time.Time {
		now := clock
		clock = clock.Add(250 * time.Millisecond)
		return now
	}

	svc.Fetch(context.Background(), models.RollCallDescriptor{Biennium: "2023-24", BillNumber: 1})

	require.Len(t, rec.entries, 1)
	assert.Equal(t, int64(250), rec.entries[0].DurationMs)
	assert.True(t, rec.entries[0].CreatedAt.Equal(testutil.TestNow))
}

func TestFetchCancelledContextStillRecords(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	log := db.NewLookupLog(conn)

	fetcher := FetcherFunc(func(ctx context.Context, _ models.RollCallDescriptor) (any, error) {
		return nil, ctx.Err()
	})
	svc := New(testutil.NewTestValidator(), fetcher, log)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	env := svc.Fetch(ctx, models.RollCallDescriptor{Biennium: "2023-24", BillNumber: 77})
	assert.Equal(t, models.StatusError, env.Status)
	require.NotNil(t, env.ErrorDetail)
	assert.Equal(t, context.Canceled.Error(), env.ErrorDetail.Message)

	entries, err := log.ListLookups(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 77, entries[0].BillNumber)
	assert.Equal(t, models.StatusError, entries[0].Status)
}

func TestLookupConcurrent(t *testing.T) {
	rec := &memRecorder{}
	svc := New(testutil.NewTestValidator(), &testutil.FakeFetcher{Raw: testutil.SampleRecords(2)}, rec)

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(bill int) {
			defer wg.Done()
			env, err := svc.Lookup(context.Background(), "2023-24", bill)
			assert.NoError(t, err)
			assert.Equal(t, bill, env.Metadata.BillNumber)
			assert.Equal(t, 2, env.Metadata.Count)
		}(i)
	}
	wg.Wait()

	assert.Len(t, rec.entries, 20)
}
