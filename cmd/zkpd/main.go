package main

import (
	"log"
	"os"
	"time"

	"github.com/naz3eh/zkp-service/internal/api"
	"github.com/naz3eh/zkp-service/internal/config"
	"github.com/naz3eh/zkp-service/internal/engine"
	"github.com/naz3eh/zkp-service/internal/keys"
	"github.com/naz3eh/zkp-service/internal/prover"
	"github.com/naz3eh/zkp-service/internal/state"
	"github.com/naz3eh/zkp-service/internal/status"
	"github.com/naz3eh/zkp-service/internal/workspace"
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger(os.Stdout, cfg.LogLevel)

	logger.Info("zkpd: starting",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"mock_mode", cfg.MockMode,
	)

	kv, err := state.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer kv.Close()

	signer, err := keys.NewSigner()
	if err != nil {
		log.Fatalf("failed to generate service key: %v", err)
	}
	logger.Info("service key ready", "public_key", signer.PublicKey())

	st := status.NewMemoryStore()
	mock := prover.NewMockProver(prover.DefaultMockDelay)
	external := prover.NewNoirProver(cfg.ProverBin, nil)

	eng := engine.NewEngine(st, mock, external, engine.Config{
		Workers:      cfg.Workers,
		MockMode:     cfg.MockMode,
		ProveTimeout: cfg.ProveTimeout,
	}, logger)
	eng.Start()

	ws := workspace.NewManager(cfg.WorkspaceDir, nil, logger)

	srv := api.NewServer(cfg.ListenAddr, eng, st, kv, signer, ws, logger)

	if err := srv.Run(); err != nil {
		log.Fatalf("server error: %v", err)
	}

	// Let in-flight jobs finish before exiting; the status store is
	// memory-backed, so anything still queued is lost at this point anyway.
	done := make(chan struct{})
	go func() {
		eng.Shutdown()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(30 * time.Second):
		logger.Error("worker pool did not drain in time")
	}
}
