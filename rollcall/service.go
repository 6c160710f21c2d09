// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rollcall

import (
	"context"
	"log/slog"
	"time"

	"github.com/danielhkuo/rollcall/classify"
	"github.com/danielhkuo/rollcall/envelope"
	"github.com/danielhkuo/rollcall/models"
	"github.com/danielhkuo/rollcall/validate"
)

// Fetcher is the upstream collaborator. The returned value is untyped;
// an error is treated as an upstream failure, not a service failure.
type Fetcher interface {
	FetchRollCalls(ctx context.Context, d models.RollCallDescriptor) (any, error)
}

type FetcherFunc func(ctx context.Context, d models.RollCallDescriptor) (any, error)

func (f FetcherFunc) FetchRollCalls(ctx context.Context, d models.RollCallDescriptor) (any, error) {
	return f(ctx, d)
}

// Recorder receives one entry per served lookup.
type Recorder interface {
	RecordLookup(ctx context.Context, entry models.LookupEntry) (models.LookupEntry, error)
}

type Service struct {
	validator *validate.Validator
	fetcher   Fetcher
	recorder  Recorder
	now       func() time.Time
}

// New wires the pipeline. recorder may be nil.
func New(v *validate.Validator, f Fetcher, recorder Recorder) *Service {
	return &Service{validator: v, fetcher: f, recorder: recorder, now: time.Now}
}

// Lookup validates the request, fetches from upstream and returns the
// normalized envelope. The only error it returns is a
// *validate.ValidationError, in which case the upstream is not called.
func (s *Service) Lookup(ctx context.Context, rawBiennium string, rawBill any) (models.ResponseEnvelope, error) {
	d, err := s.validator.Validate(rawBiennium, rawBill)
	if err != nil {
		slog.Info("rejected roll call lookup", "biennium", rawBiennium, "bill_number", rawBill, "error", err)
		return models.ResponseEnvelope{}, err
	}
	return s.Fetch(ctx, d), nil
}

// Fetch runs the pipeline for an already validated descriptor.
func (s *Service) Fetch(ctx context.Context, d models.RollCallDescriptor) models.ResponseEnvelope {
	start := s.now()
	slog.Info("fetching roll calls", "biennium", d.Biennium, "bill_number", d.BillNumber)

	var result classify.UpstreamResult
	raw, err := s.fetcher.FetchRollCalls(ctx, d)
	if err != nil {
		slog.Warn("upstream fetch failed", "biennium", d.Biennium, "bill_number", d.BillNumber, "error", err)
		result = classify.Classify(err)
	} else {
		result = classify.Classify(raw)
	}

	env := envelope.Build(d, result)
	elapsed := s.now().Sub(start)
	slog.Info("roll call lookup completed",
		"biennium", d.Biennium,
		"bill_number", d.BillNumber,
		"upstream", result.Kind().String(),
		"status", env.Status,
		"count", env.Metadata.Count,
		"duration_ms", elapsed.Milliseconds(),
	)

	s.record(ctx, env, start, elapsed)
	return env
}

func (s *Service) record(ctx context.Context, env models.ResponseEnvelope, start time.Time, elapsed time.Duration) {
	if s.recorder == nil {
		return
	}
	entry := models.LookupEntry{
		Biennium:    env.Metadata.Biennium,
		BillNumber:  env.Metadata.BillNumber,
		Status:      env.Status,
		RecordCount: env.Metadata.Count,
		DurationMs:  elapsed.Milliseconds(),
		CreatedAt:   start,
	}
	if env.ErrorDetail != nil {
		entry.ErrorCode = env.ErrorDetail.Code
	}
	// A cancelled request must not lose its log entry.
	if _, err := s.recorder.RecordLookup(context.WithoutCancel(ctx), entry); err != nil {
		slog.Error("failed to record lookup", "error", err)
	}
}
