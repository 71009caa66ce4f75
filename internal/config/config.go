package config

import (
	"io"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"
)

const (
	defaultListenAddr   = ":8080"
	defaultDBPath       = "zkp.db"
	defaultProverBin    = "nargo"
	defaultWorkspaceDir = "workspaces"

	envListenAddr   = "ZKP_LISTEN_ADDR"
	envDBPath       = "ZKP_DB_PATH"
	envLogLevel     = "ZKP_LOG_LEVEL"
	envMockMode     = "MOCK_MODE"
	envWorkers      = "ZKP_WORKERS"
	envProverBin    = "ZKP_PROVER_BIN"
	envProveTimeout = "ZKP_PROVE_TIMEOUT"
	envWorkspaceDir = "ZKP_WORKSPACE_DIR"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	ListenAddr   string
	DBPath       string
	LogLevel     slog.Level
	MockMode     bool
	Workers      int
	ProverBin    string
	ProveTimeout time.Duration
	WorkspaceDir string
}

// Load reads configuration from environment variables with sensible
// defaults. ProveTimeout defaults to zero: no bound on a single prover
// invocation.
func Load() Config {
	cfg := Config{
		ListenAddr:   defaultListenAddr,
		DBPath:       defaultDBPath,
		LogLevel:     slog.LevelInfo,
		Workers:      runtime.NumCPU(),
		ProverBin:    defaultProverBin,
		WorkspaceDir: defaultWorkspaceDir,
	}

	if v := os.Getenv(envListenAddr); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv(envDBPath); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = parseLogLevel(v)
	}
	if v := os.Getenv(envMockMode); v != "" {
		cfg.MockMode = v == "true"
	}
	if v := os.Getenv(envWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Workers = n
		}
	}
	if v := os.Getenv(envProverBin); v != "" {
		cfg.ProverBin = v
	}
	if v := os.Getenv(envProveTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.ProveTimeout = d
		}
	}
	if v := os.Getenv(envWorkspaceDir); v != "" {
		cfg.WorkspaceDir = v
	}

	return cfg
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a structured JSON logger writing to w at the configured level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}
