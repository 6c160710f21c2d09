// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - RollCallDescriptor: biennium ("YYYY-YY"), bill_number

# Response Types

Every roll-call lookup answers with a ResponseEnvelope:

	{
	  "status": "success" | "empty" | "error",
	  "data": [RollCall, ...],
	  "error_detail": {"message": "...", "code": 503},   // only when status is "error"
	  "metadata": {"biennium", "bill_number", "api_call", "count", "message"}
	}

data is always an array and metadata.count always equals len(data).

  - RollCall: sequence_number, date, description, agency, bill_id,
    yea_votes, nay_votes, absent_votes, excused_votes, votes
  - MemberVote: legislator_name, member_id, vote, district, party
  - ErrorResponse: error, message, kind (input validation failures)

# Lookup Log

  - LookupEntry: one recorded lookup (status, record_count, error_code, duration_ms)
  - LookupSummary: LookupEntry plus a humanized age
  - LookupListResponse: lookups, count

# Constants

Status values:

	StatusSuccess = "success"
	StatusEmpty   = "empty"
	StatusError   = "error"
*/
package models
