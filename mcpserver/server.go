// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/danielhkuo/rollcall/rollcall"
	"github.com/danielhkuo/rollcall/validate"
)

const (
	ServerName    = "rollcall"
	ServerVersion = "1.0.0"
	ToolName      = "get_roll_calls"
)

// New returns an MCP server exposing the get_roll_calls tool.
func New(svc *rollcall.Service, now func() time.Time) *server.MCPServer {
	if now == nil {
		now = time.Now
	}
	s := server.NewMCPServer(ServerName, ServerVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	s.AddTool(Tool(), Handler(svc, now))
	return s
}

func Tool() mcp.Tool {
	return mcp.NewTool(ToolName,
		mcp.WithDescription("Retrieve roll call votes for a Washington State bill: how each legislator voted, vote dates and motions."),
		mcp.WithString("bill_number",
			mcp.Required(),
			mcp.Description(`Bill number such as "HB 1234", "SB 5678" or "1234"`),
		),
		mcp.WithString("biennium",
			mcp.Description(`Legislative biennium such as "2023-24"; defaults to the current one`),
			mcp.Pattern(`^\d{4}-(\d{2}|\d{4})$`),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// Handler answers with the envelope as structured content. Invalid input
// is a tool error; upstream failures are a normal result whose envelope
// status is "error".
func Handler(svc *rollcall.Service, now func() time.Time) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		bill, ok := args["bill_number"]
		if !ok || bill == nil {
			return mcp.NewToolResultError("bill_number is required"), nil
		}

		biennium := req.GetString("biennium", "")
		if biennium == "" {
			biennium = validate.CurrentBiennium(now())
		}

		env, err := svc.Lookup(ctx, biennium, bill)
		var verr *validate.ValidationError
		if errors.As(err, &verr) {
			return mcp.NewToolResultError(verr.Error()), nil
		}
		if err != nil {
			return nil, err
		}

		text, err := json.Marshal(env)
		if err != nil {
			slog.Error("failed to encode envelope", "error", err)
			return nil, err
		}
		return mcp.NewToolResultStructured(env, string(text)), nil
	}
}
