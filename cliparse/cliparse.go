package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/rollcall/db"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	UpstreamURL     string
	UpstreamTimeout time.Duration
	UpstreamRetries int

	MinBienniumYear int
	FutureBienniums int
	MaxBillNumber   int

	LogFormat string
	LogLevel  string
	Mode      string
}

const (
	ModeHTTP = "http"
	ModeMCP  = "mcp"
)

// ParseFlags reads flags, falling back to environment variables (and a
// .env file when present) for anything not given on the command line.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile string

	fs := flag.NewFlagSet("rollcall", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	fs.StringVar(&cfg.UpstreamURL, "upstream", "", "Legislation service base URL")
	fs.DurationVar(&cfg.UpstreamTimeout, "timeout", 0, "Upstream request timeout")
	fs.IntVar(&cfg.UpstreamRetries, "retries", -1, "Upstream retry count")

	fs.IntVar(&cfg.MinBienniumYear, "min-biennium", 0, "Earliest supported biennium start year")
	fs.IntVar(&cfg.FutureBienniums, "future-bienniums", -1, "Bienniums accepted beyond the current one")
	fs.IntVar(&cfg.MaxBillNumber, "max-bill", 0, "Largest accepted bill number")

	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (text or json)")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.Mode, "mode", "", "Serve mode (http or mcp)")
	fs.StringVar(&envFile, "env-file", ".env", "Optional dotenv file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Real environment variables win over the file
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		port, err := envInt("PORT", 3318)
		if err != nil {
			return Config{}, err
		}
		cfg.Port = port
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = envString("DATABASE_TYPE", "sqlite")
	}
	driver, err := db.DriverName(cfg.DatabaseType)
	if err != nil {
		return Config{}, fmt.Errorf("invalid database type %q", cfg.DatabaseType)
	}
	cfg.DatabaseType = driver
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == "postgres" {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "file:rollcall.db"
	}

	if cfg.UpstreamURL == "" {
		cfg.UpstreamURL = envString("UPSTREAM_URL", "https://wslwebservices.leg.wa.gov/LegislationService.asmx")
	}
	if cfg.UpstreamTimeout == 0 {
		d, err := envDuration("UPSTREAM_TIMEOUT", 15*time.Second)
		if err != nil {
			return Config{}, err
		}
		cfg.UpstreamTimeout = d
	}
	if cfg.UpstreamRetries < 0 {
		n, err := envInt("UPSTREAM_RETRIES", 2)
		if err != nil {
			return Config{}, err
		}
		cfg.UpstreamRetries = n
	}

	if cfg.MinBienniumYear == 0 {
		n, err := envInt("MIN_BIENNIUM_YEAR", 1991)
		if err != nil {
			return Config{}, err
		}
		cfg.MinBienniumYear = n
	}
	if cfg.FutureBienniums < 0 {
		n, err := envInt("FUTURE_BIENNIUMS", 0)
		if err != nil {
			return Config{}, err
		}
		cfg.FutureBienniums = n
	}
	if cfg.MaxBillNumber == 0 {
		n, err := envInt("MAX_BILL_NUMBER", 9999)
		if err != nil {
			return Config{}, err
		}
		cfg.MaxBillNumber = n
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = envString("LOG_FORMAT", "text")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = envString("LOG_LEVEL", "info")
	}
	if cfg.Mode == "" {
		cfg.Mode = envString("MODE", ModeHTTP)
	}
	if cfg.Mode != ModeHTTP && cfg.Mode != ModeMCP {
		return Config{}, fmt.Errorf("invalid mode %q", cfg.Mode)
	}

	return cfg, nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return n, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return d, nil
}
