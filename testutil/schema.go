// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/danielhkuo/rollcall/classify"
	"github.com/danielhkuo/rollcall/models"
)

type fieldType int

const (
	typeString fieldType = iota
	typeNumber
	typeArray
	typeObject
)

func (f fieldType) matches(r gjson.Result) bool {
	switch f {
	case typeString:
		return r.Type == gjson.String
	case typeNumber:
		return r.Type == gjson.Number
	case typeArray:
		return r.IsArray()
	case typeObject:
		return r.IsObject()
	}
	return false
}

var (
	envelopeFields = map[string]fieldType{
		"status":   typeString,
		"data":     typeArray,
		"metadata": typeObject,
	}
	errorDetailFields = map[string]fieldType{
		"message": typeString,
		"code":    typeNumber,
	}
	metadataFields = map[string]fieldType{
		"biennium":    typeString,
		"bill_number": typeNumber,
		"api_call":    typeString,
		"count":       typeNumber,
		"message":     typeString,
	}
	rollCallFields = map[string]fieldType{
		"sequence_number": typeNumber,
		"date":            typeString,
		"description":     typeString,
		"agency":          typeString,
		"bill_id":         typeString,
		"yea_votes":       typeNumber,
		"nay_votes":       typeNumber,
		"absent_votes":    typeNumber,
		"excused_votes":   typeNumber,
		"votes":           typeArray,
	}
	memberVoteFields = map[string]fieldType{
		"legislator_name": typeString,
		"member_id":       typeNumber,
		"vote":            typeString,
		"district":        typeString,
		"party":           typeString,
	}
)

// EnvelopeSchemaError checks the wire form of env against the fixed
// envelope schema and returns the first violation, or nil.
func EnvelopeSchemaError(env models.ResponseEnvelope) error {
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	return EnvelopeJSONSchemaError(body)
}

// EnvelopeJSONSchemaError is EnvelopeSchemaError for an encoded envelope,
// such as an HTTP response body.
func EnvelopeJSONSchemaError(body []byte) error {
	if !gjson.ValidBytes(body) {
		return errors.New("envelope is not valid JSON")
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return errors.New("envelope is not an object")
	}

	status := root.Get("status").String()
	switch status {
	case models.StatusSuccess, models.StatusEmpty, models.StatusError:
	default:
		return fmt.Errorf("invalid status %q", status)
	}

	want := envelopeFields
	if status == models.StatusError {
		want = withField(envelopeFields, "error_detail", typeObject)
	}
	if err := checkObject("envelope", root, want); err != nil {
		return err
	}
	if status == models.StatusError {
		if err := checkObject("error_detail", root.Get("error_detail"), errorDetailFields); err != nil {
			return err
		}
	}
	if err := checkObject("metadata", root.Get("metadata"), metadataFields); err != nil {
		return err
	}

	data := root.Get("data").Array()
	for i, rec := range data {
		name := fmt.Sprintf("data[%d]", i)
		if err := checkObject(name, rec, rollCallFields); err != nil {
			return err
		}
		for j, v := range rec.Get("votes").Array() {
			if err := checkObject(fmt.Sprintf("%s.votes[%d]", name, j), v, memberVoteFields); err != nil {
				return err
			}
		}
	}

	if count := root.Get("metadata.count").Int(); count != int64(len(data)) {
		return fmt.Errorf("metadata.count %d != len(data) %d", count, len(data))
	}
	if status != models.StatusSuccess && len(data) != 0 {
		return fmt.Errorf("status %s with %d records", status, len(data))
	}
	return nil
}

func withField(base map[string]fieldType, key string, t fieldType) map[string]fieldType {
	out := make(map[string]fieldType, len(base)+1)
	for k, v := range base {
		out[k] = v
	}
	out[key] = t
	return out
}

func checkObject(name string, obj gjson.Result, want map[string]fieldType) error {
	if !obj.IsObject() {
		return fmt.Errorf("%s is not an object", name)
	}
	seen := make(map[string]bool, len(want))
	var err error
	obj.ForEach(func(key, value gjson.Result) bool {
		t, ok := want[key.Str]
		if !ok {
			err = fmt.Errorf("%s has unexpected field %q", name, key.Str)
			return false
		}
		if !t.matches(value) {
			err = fmt.Errorf("%s.%s has wrong type %s", name, key.Str, value.Type)
			return false
		}
		seen[key.Str] = true
		return true
	})
	if err != nil {
		return err
	}
	for k := range want {
		if !seen[k] {
			return fmt.Errorf("%s is missing field %q", name, k)
		}
	}
	return nil
}

// ExpectedStatus is the envelope status each upstream kind must produce.
func ExpectedStatus(k classify.Kind) string {
	switch k {
	case classify.KindDataPresent:
		return models.StatusSuccess
	case classify.KindExplicitError:
		return models.StatusError
	default:
		return models.StatusEmpty
	}
}

// KindOf is r.Kind() with nil and nil-pointer variants treated as Absent.
func KindOf(r classify.UpstreamResult) classify.Kind {
	switch p := r.(type) {
	case nil:
		return classify.KindAbsent
	case *classify.DataPresent:
		if p == nil {
			return classify.KindAbsent
		}
	case *classify.ExplicitError:
		if p == nil {
			return classify.KindAbsent
		}
	case *classify.EmptyData:
		if p == nil {
			return classify.KindEmptyData
		}
	case *classify.Absent:
		return classify.KindAbsent
	}
	return r.Kind()
}
