// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package envelope

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/danielhkuo/rollcall/models"
)

// Defaults used when a record omits a field or carries the wrong type.
const (
	DefaultText  = ""
	DefaultCount = 0
)

// Field aliases, first match wins. The snake_case names come from the
// decoded legislature service (SequenceNumber -> sequence_number) and the
// short names from older JSON feeds.
var (
	sequencePaths    = []string{"sequence_number", "SequenceNumber", "sequenceNumber"}
	datePaths        = []string{"date", "vote_date", "VoteDate"}
	descriptionPaths = []string{"description", "motion", "Motion"}
	agencyPaths      = []string{"agency", "Agency"}
	billIDPaths      = []string{"bill_id", "BillId"}
	yeaPaths         = []string{"yea_count", "yea_votes", "yea_votes.count", "YeaVotes.Count"}
	nayPaths         = []string{"nay_count", "nay_votes", "nay_votes.count", "NayVotes.Count"}
	absentPaths      = []string{"absent_count", "absent_votes", "absent_votes.count", "AbsentVotes.Count"}
	excusedPaths     = []string{"excused_count", "excused_votes", "excused_votes.count", "ExcusedVotes.Count"}
	votesPaths       = []string{"votes.array_of_vote", "votes.vote", "Votes.Vote", "votes", "Votes"}

	namePaths     = []string{"legislator_name", "name", "Name"}
	memberIDPaths = []string{"member_id", "MemberId"}
	votePaths     = []string{"vote", "vote_value", "v_ote", "VOte", "Vote"}
	districtPaths = []string{"district", "District"}
	partyPaths    = []string{"party", "Party"}
)

// NormalizeRecord converts one raw upstream record into the fixed RollCall
// shape. Anything that is not a JSON object yields an all-default record.
func NormalizeRecord(raw any) models.RollCall {
	rc := models.RollCall{Votes: []models.MemberVote{}}

	obj, ok := object(raw)
	if !ok {
		return rc
	}

	rc.SequenceNumber = intField(obj, sequencePaths)
	rc.Date = textField(obj, datePaths)
	rc.Description = textField(obj, descriptionPaths)
	rc.Agency = textField(obj, agencyPaths)
	rc.BillID = textField(obj, billIDPaths)
	rc.YeaVotes = intField(obj, yeaPaths)
	rc.NayVotes = intField(obj, nayPaths)
	rc.AbsentVotes = intField(obj, absentPaths)
	rc.ExcusedVotes = intField(obj, excusedPaths)

	for _, v := range list(obj, votesPaths) {
		rc.Votes = append(rc.Votes, normalizeVote(v))
	}
	return rc
}

func normalizeVote(v gjson.Result) models.MemberVote {
	if !v.IsObject() {
		return models.MemberVote{}
	}
	return models.MemberVote{
		LegislatorName: textField(v, namePaths),
		MemberID:       intField(v, memberIDPaths),
		Vote:           textField(v, votePaths),
		District:       textField(v, districtPaths),
		Party:          textField(v, partyPaths),
	}
}

func object(raw any) (gjson.Result, bool) {
	var body []byte
	switch x := raw.(type) {
	case nil:
		return gjson.Result{}, false
	case json.RawMessage:
		body = x
	case []byte:
		body = x
	default:
		b, err := json.Marshal(raw)
		if err != nil {
			// One bad field (NaN, chan, func) must not cost the others.
			b, err = json.Marshal(encodable(raw))
			if err != nil {
				return gjson.Result{}, false
			}
		}
		body = b
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, false
	}
	r := gjson.ParseBytes(body)
	return r, r.IsObject()
}

// encodable copies nested maps and slices, dropping map entries json
// cannot encode and nulling such slice elements so positions hold.
func encodable(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			if c, ok := encodableValue(e); ok {
				out[k] = c
			}
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			if c, ok := encodableValue(e); ok {
				out[i] = c
			}
		}
		return out
	}
	return v
}

func encodableValue(v any) (any, bool) {
	switch v.(type) {
	case map[string]any, []any:
		return encodable(v), true
	}
	if _, err := json.Marshal(v); err != nil {
		return nil, false
	}
	return v, true
}

func textField(obj gjson.Result, paths []string) string {
	for _, p := range paths {
		r := obj.Get(p)
		switch r.Type {
		case gjson.String:
			return r.Str
		case gjson.Number:
			return r.Raw
		}
	}
	return DefaultText
}

func intField(obj gjson.Result, paths []string) int {
	for _, p := range paths {
		r := obj.Get(p)
		switch r.Type {
		case gjson.Number:
			return int(r.Int())
		case gjson.String:
			if n, err := strconv.Atoi(strings.TrimSpace(r.Str)); err == nil {
				return n
			}
		}
	}
	return DefaultCount
}

// list returns the first path that holds an array. A single object under a
// wrapper path (one <Vote> element) counts as a one-element list.
func list(obj gjson.Result, paths []string) []gjson.Result {
	for _, p := range paths {
		r := obj.Get(p)
		if r.IsArray() {
			return r.Array()
		}
		if r.IsObject() && strings.Contains(p, ".") {
			return []gjson.Result{r}
		}
	}
	return nil
}
