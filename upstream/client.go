// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/danielhkuo/rollcall/models"
)

// DefaultBaseURL is the legislature's legislation web service.
const DefaultBaseURL = "https://wslwebservices.leg.wa.gov/LegislationService.asmx"

var ErrUnexpectedBody = errors.New("unexpected upstream body")

// StatusError is returned for HTTP responses with status >= 400.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream returned %d", e.Code)
	}
	return fmt.Sprintf("upstream returned %d: %s", e.Code, e.Message)
}

func (e *StatusError) StatusCode() int { return e.Code }

func (e *StatusError) Detail() string { return e.Message }

// Options configure a Client. RetryWait is the initial backoff, capped at
// ten times its value.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	Retries    int
	RetryWait  time.Duration
	HTTPClient *http.Client
}

// Client fetches raw roll-call data. It does not interpret the result;
// the value it returns goes straight to classify.Classify.
type Client struct {
	rc *resty.Client
}

func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = 200 * time.Millisecond
	}

	rc := resty.New()
	if opts.HTTPClient != nil {
		rc = resty.NewWithClient(opts.HTTPClient)
	}
	rc.SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.Retries).
		SetRetryWaitTime(opts.RetryWait).
		SetRetryMaxWaitTime(10*opts.RetryWait).
		SetHeader("Accept", "application/json, text/xml;q=0.9").
		SetHeader("User-Agent", "rollcall/1.0").
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})

	return &Client{rc: rc}
}

// FetchRollCalls returns the decoded body: json.RawMessage for JSON, a
// generic map/slice tree for XML, nil for an empty body. Transport
// failures and HTTP errors come back as errors.
func (c *Client) FetchRollCalls(ctx context.Context, d models.RollCallDescriptor) (any, error) {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"biennium":   d.Biennium,
			"billNumber": strconv.Itoa(d.BillNumber),
		}).
		Get("/GetRollCalls")
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}

	body := bytes.TrimSpace(resp.Body())
	if resp.IsError() {
		return nil, &StatusError{Code: resp.StatusCode(), Message: errorText(body, resp.Status())}
	}
	if len(body) == 0 {
		return nil, nil
	}

	if isJSON(resp.Header().Get("Content-Type"), body) {
		return json.RawMessage(body), nil
	}

	v, err := DecodeXML(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedBody, err)
	}
	return v, nil
}

func isJSON(contentType string, body []byte) bool {
	if strings.Contains(contentType, "json") {
		return true
	}
	return body[0] == '{' || body[0] == '['
}

// errorText prefers a SOAP faultstring, then a short plain body, then the
// HTTP status line.
func errorText(body []byte, status string) string {
	if len(body) > 0 && body[0] == '<' {
		if fault := FaultString(body); fault != "" {
			return fault
		}
	}
	if len(body) > 0 && len(body) <= 200 && !bytes.ContainsAny(body, "<{") {
		return string(body)
	}
	if _, text, ok := strings.Cut(status, " "); ok {
		return text
	}
	return status
}
