// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package upstream

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"unicode"
)

type element struct {
	name     string
	isNil    bool
	text     strings.Builder
	children []*element
}

// DecodeXML turns a legislature service response into plain Go values:
// lists ([]any), objects (map[string]any with snake_case keys) and
// strings. Elements named ArrayOfX, plural wrappers (Votes/Vote) and
// repeated children become lists; xsi:nil elements become nil.
func DecodeXML(body []byte) (any, error) {
	root, err := parseTree(body)
	if err != nil {
		return nil, err
	}
	return convert(root), nil
}

// FaultString returns the faultstring of a SOAP fault, or "".
func FaultString(body []byte) string {
	root, err := parseTree(body)
	if err != nil {
		return ""
	}
	if e := find(root, "faultstring"); e != nil {
		return strings.TrimSpace(e.text.String())
	}
	return ""
}

func parseTree(body []byte) (*element, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	var stack []*element
	var root *element

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			e := &element{name: t.Name.Local}
			for _, a := range t.Attr {
				if a.Name.Local == "nil" && a.Value == "true" {
					e.isNil = true
				}
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, e)
			} else if root == nil {
				root = e
			}
			stack = append(stack, e)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}

	if root == nil {
		return nil, errors.New("no root element")
	}
	return root, nil
}

func find(e *element, name string) *element {
	if e.name == name {
		return e
	}
	for _, c := range e.children {
		if f := find(c, name); f != nil {
			return f
		}
	}
	return nil
}

func convert(e *element) any {
	if e.isNil {
		return nil
	}
	if isList(e) {
		items := make([]any, 0, len(e.children))
		for _, c := range e.children {
			items = append(items, convert(c))
		}
		return items
	}
	if len(e.children) == 0 {
		return strings.TrimSpace(e.text.String())
	}

	obj := make(map[string]any, len(e.children))
	for _, c := range e.children {
		key := snake(c.name)
		v := convert(c)
		if prev, ok := obj[key]; ok {
			if items, isSlice := prev.([]any); isSlice {
				obj[key] = append(items, v)
			} else {
				obj[key] = []any{prev, v}
			}
			continue
		}
		obj[key] = v
	}
	return obj
}

func isList(e *element) bool {
	if strings.HasPrefix(e.name, "ArrayOf") {
		return true
	}
	if len(e.children) == 0 {
		return false
	}
	first := e.children[0].name
	for _, c := range e.children[1:] {
		if c.name != first {
			return false
		}
	}
	return len(e.children) > 1 || e.name == first+"s"
}

// snake converts CamelCase element names: SequenceNumber -> sequence_number,
// VOte -> v_ote, HTTPCode -> http_code.
func snake(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || (unicode.IsUpper(runes[i-1]) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
