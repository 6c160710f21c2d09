// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Envelope status constants
const (
	StatusSuccess = "success"
	StatusEmpty   = "empty"
	StatusError   = "error"
)

// APICallGetRollCalls names the upstream operation echoed in every envelope.
const APICallGetRollCalls = "GetRollCalls"

// Request types

// RollCallDescriptor identifies one roll-call lookup after validation.
// Biennium is always in canonical "YYYY-YY" form.
type RollCallDescriptor struct {
	Biennium   string `json:"biennium"`
	BillNumber int    `json:"bill_number"`
}

// Normalized record types

type MemberVote struct {
	LegislatorName string `json:"legislator_name"`
	MemberID       int    `json:"member_id"`
	Vote           string `json:"vote"`
	District       string `json:"district"`
	Party          string `json:"party"`
}

type RollCall struct {
	SequenceNumber int          `json:"sequence_number"`
	Date           string       `json:"date"`
	Description    string       `json:"description"`
	Agency         string       `json:"agency"`
	BillID         string       `json:"bill_id"`
	YeaVotes       int          `json:"yea_votes"`
	NayVotes       int          `json:"nay_votes"`
	AbsentVotes    int          `json:"absent_votes"`
	ExcusedVotes   int          `json:"excused_votes"`
	Votes          []MemberVote `json:"votes"`
}

// Response types

type ErrorDetail struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type Metadata struct {
	Biennium   string `json:"biennium"`
	BillNumber int    `json:"bill_number"`
	APICall    string `json:"api_call"`
	Count      int    `json:"count"`
	Message    string `json:"message"`
}

// ResponseEnvelope is the single shape returned for every lookup.
// Data is never nil and ErrorDetail is set only when Status is StatusError.
type ResponseEnvelope struct {
	Status      string       `json:"status"`
	Data        []RollCall   `json:"data"`
	ErrorDetail *ErrorDetail `json:"error_detail,omitempty"`
	Metadata    Metadata     `json:"metadata"`
}

// Lookup log types

type LookupEntry struct {
	ID          string    `json:"id"`
	Biennium    string    `json:"biennium"`
	BillNumber  int       `json:"bill_number"`
	Status      string    `json:"status"`
	RecordCount int       `json:"record_count"`
	ErrorCode   int       `json:"error_code"`
	DurationMs  int64     `json:"duration_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

type LookupSummary struct {
	LookupEntry
	Age string `json:"age"`
}

type LookupListResponse struct {
	Lookups []LookupSummary `json:"lookups"`
	Count   int             `json:"count"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Kind    string `json:"kind,omitempty"`
}
