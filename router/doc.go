// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the roll-call API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints; NewHandler
adds request IDs and CORS around it:

	handler := router.NewHandler(svc, db)

# Endpoints

Health:

	GET /health

Roll calls:

	GET  /rollcalls/{biennium}/{bill}                  - e.g. /rollcalls/2023-24/HB%201234
	GET  /rollcalls?bill_number=1234&biennium=2023-24  - biennium optional
	POST /rollcalls/lookup                             - {"biennium": "...", "bill_number": 1234}

Lookup log:

	GET /lookups?limit=50
*/
package router
