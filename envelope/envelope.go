// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package envelope

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/rollcall/classify"
	"github.com/danielhkuo/rollcall/models"
)

// Build maps a classified upstream result to the response envelope.
//
//	DataPresent   -> success, normalized records, count = len(records)
//	EmptyData     -> empty,   no records
//	ExplicitError -> error,   no records, error_detail {message, code}
//	Absent        -> empty,   no records
//
// Absent shares the empty status and message with EmptyData so callers
// see one "nothing found" shape. A nil result is Absent. Build is pure and
// never fails.
func Build(d models.RollCallDescriptor, r classify.UpstreamResult) models.ResponseEnvelope {
	switch res := deref(r).(type) {
	case classify.DataPresent:
		data := make([]models.RollCall, len(res.Records))
		for i, rec := range res.Records {
			data[i] = NormalizeRecord(rec)
		}
		return assemble(d, models.StatusSuccess, data, nil, foundMessage(d, len(data)))

	case classify.ExplicitError:
		detail := &models.ErrorDetail{Message: res.Message, Code: res.Code}
		return assemble(d, models.StatusError, nil, detail, failedMessage(d))

	default:
		return assemble(d, models.StatusEmpty, nil, nil, emptyMessage(d))
	}
}

func assemble(d models.RollCallDescriptor, status string, data []models.RollCall, detail *models.ErrorDetail, msg string) models.ResponseEnvelope {
	if data == nil {
		data = []models.RollCall{}
	}
	return models.ResponseEnvelope{
		Status:      status,
		Data:        data,
		ErrorDetail: detail,
		Metadata: models.Metadata{
			Biennium:   d.Biennium,
			BillNumber: d.BillNumber,
			APICall:    models.APICallGetRollCalls,
			Count:      len(data),
			Message:    msg,
		},
	}
}

// deref turns pointer variants into values; nil pointers become Absent.
func deref(r classify.UpstreamResult) classify.UpstreamResult {
	switch p := r.(type) {
	case nil:
		return classify.Absent{}
	case *classify.DataPresent:
		if p == nil {
			return classify.Absent{}
		}
		return *p
	case *classify.EmptyData:
		return classify.EmptyData{}
	case *classify.ExplicitError:
		if p == nil {
			return classify.Absent{}
		}
		return *p
	case *classify.Absent:
		return classify.Absent{}
	}
	return r
}

func foundMessage(d models.RollCallDescriptor, n int) string {
	noun := "roll calls"
	if n == 1 {
		noun = "roll call"
	}
	return fmt.Sprintf("Found %s %s for bill %d in biennium %s", humanize.Comma(int64(n)), noun, d.BillNumber, d.Biennium)
}

func emptyMessage(d models.RollCallDescriptor) string {
	return fmt.Sprintf("No roll calls found for bill %d in biennium %s", d.BillNumber, d.Biennium)
}

func failedMessage(d models.RollCallDescriptor) string {
	return fmt.Sprintf("Failed to fetch roll calls for bill %d in biennium %s", d.BillNumber, d.Biennium)
}
