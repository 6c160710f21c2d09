// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package upstream talks to the legislature's LegislationService.

	c := upstream.New(upstream.Options{
		BaseURL: upstream.DefaultBaseURL,
		Timeout: 15 * time.Second,
		Retries: 2,
	})
	raw, err := c.FetchRollCalls(ctx, models.RollCallDescriptor{Biennium: "2023-24", BillNumber: 1234})

The client only transports. JSON bodies come back as json.RawMessage and
XML bodies as generic values from DecodeXML; neither is inspected here.

# Errors

  - HTTP status >= 400: *StatusError with the status code and the SOAP
    faultstring (or short body) as Detail
  - transport failures after retries: wrapped resty error
  - undecodable XML: ErrUnexpectedBody

Requests are retried on transport errors and 5xx responses.
*/
package upstream
