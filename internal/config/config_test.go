package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"runtime"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		envListenAddr, envDBPath, envLogLevel, envMockMode,
		envWorkers, envProverBin, envProveTimeout, envWorkspaceDir,
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.ListenAddr != defaultListenAddr {
		t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr, defaultListenAddr)
	}
	if cfg.DBPath != defaultDBPath {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, defaultDBPath)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, slog.LevelInfo)
	}
	if cfg.MockMode {
		t.Error("MockMode = true, want false by default")
	}
	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("Workers = %d, want %d", cfg.Workers, runtime.NumCPU())
	}
	if cfg.ProverBin != defaultProverBin {
		t.Errorf("ProverBin = %q, want %q", cfg.ProverBin, defaultProverBin)
	}
	if cfg.ProveTimeout != 0 {
		t.Errorf("ProveTimeout = %v, want 0 (no timeout)", cfg.ProveTimeout)
	}
	if cfg.WorkspaceDir != defaultWorkspaceDir {
		t.Errorf("WorkspaceDir = %q, want %q", cfg.WorkspaceDir, defaultWorkspaceDir)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(envListenAddr, ":9090")
	t.Setenv(envDBPath, "/tmp/test.db")
	t.Setenv(envLogLevel, "debug")
	t.Setenv(envMockMode, "true")
	t.Setenv(envWorkers, "3")
	t.Setenv(envProverBin, "/usr/local/bin/nargo")
	t.Setenv(envProveTimeout, "45s")
	t.Setenv(envWorkspaceDir, "/var/lib/zkp/ws")

	cfg := Load()

	if cfg.ListenAddr != ":9090" {
		t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr, ":9090")
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/tmp/test.db")
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, slog.LevelDebug)
	}
	if !cfg.MockMode {
		t.Error("MockMode = false, want true")
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Workers)
	}
	if cfg.ProverBin != "/usr/local/bin/nargo" {
		t.Errorf("ProverBin = %q, want %q", cfg.ProverBin, "/usr/local/bin/nargo")
	}
	if cfg.ProveTimeout != 45*time.Second {
		t.Errorf("ProveTimeout = %v, want 45s", cfg.ProveTimeout)
	}
	if cfg.WorkspaceDir != "/var/lib/zkp/ws" {
		t.Errorf("WorkspaceDir = %q, want %q", cfg.WorkspaceDir, "/var/lib/zkp/ws")
	}
}

func TestMockModeOnlyAcceptsTrue(t *testing.T) {
	clearEnv(t)

	for _, v := range []string{"false", "1", "TRUE", "yes"} {
		t.Setenv(envMockMode, v)
		if cfg := Load(); cfg.MockMode {
			t.Errorf("MOCK_MODE=%q parsed as true, want false", v)
		}
	}
}

func TestInvalidWorkersIgnored(t *testing.T) {
	clearEnv(t)

	for _, v := range []string{"0", "-2", "lots"} {
		t.Setenv(envWorkers, v)
		if cfg := Load(); cfg.Workers != runtime.NumCPU() {
			t.Errorf("ZKP_WORKERS=%q gave Workers=%d, want default %d", v, cfg.Workers, runtime.NumCPU())
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		got := parseLogLevel(tt.input)
		if got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewLoggerOutputsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)
	if logger == nil {
		t.Fatal("NewLogger returned nil")
	}

	logger.Info("test message", "key", "value")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("logger output is not valid JSON: %v\noutput: %s", err, buf.String())
	}

	for _, key := range []string{"time", "level", "msg"} {
		if _, ok := entry[key]; !ok {
			t.Errorf("JSON output missing expected key %q", key)
		}
	}
	if entry["msg"] != "test message" {
		t.Errorf("msg = %v, want %q", entry["msg"], "test message")
	}
	if entry["key"] != "value" {
		t.Errorf("key = %v, want %q", entry["key"], "value")
	}
}
