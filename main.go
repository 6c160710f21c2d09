package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mark3labs/mcp-go/server"

	"github.com/danielhkuo/rollcall/cliparse"
	"github.com/danielhkuo/rollcall/db"
	"github.com/danielhkuo/rollcall/mcpserver"
	"github.com/danielhkuo/rollcall/rollcall"
	"github.com/danielhkuo/rollcall/router"
	"github.com/danielhkuo/rollcall/upstream"
	"github.com/danielhkuo/rollcall/validate"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg))

	// Connect to the lookup log database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	client := upstream.New(upstream.Options{
		BaseURL: cfg.UpstreamURL,
		Timeout: cfg.UpstreamTimeout,
		Retries: cfg.UpstreamRetries,
	})
	validator := validate.New(validate.RangeFor(time.Now(), cfg.MinBienniumYear, cfg.FutureBienniums, cfg.MaxBillNumber))
	svc := rollcall.New(validator, client, db.NewLookupLog(dbConn))

	r := validator.Range()
	slog.Info("Accepting lookups",
		"min_biennium", r.MinStartYear,
		"max_biennium", r.MaxStartYear,
		"max_bill", r.MaxBillNumber,
		"upstream", cfg.UpstreamURL,
	)

	if cfg.Mode == cliparse.ModeMCP {
		// stdout carries the protocol; logs go to stderr
		slog.Info("Serving MCP over stdio")
		if err := server.ServeStdio(mcpserver.New(svc, time.Now)); err != nil {
			slog.Error("MCP server stopped", "error", err)
			os.Exit(1)
		}
		return
	}

	// Create server
	srv := http.Server{
		Handler:           router.NewHandler(svc, dbConn),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		srv.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

func newLogger(cfg cliparse.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
	}))
}
