package prover

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// fakeRunner captures the invocation and simulates prover behavior without
// a real executable.
type fakeRunner struct {
	name   string
	args   []string
	stderr []byte
	err    error

	// proofContents, when set, is written to the --proof-path argument
	// before returning, mimicking a successful prover run.
	proofContents string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.name = name
	f.args = args

	if f.proofContents != "" {
		for i, a := range args {
			if a == "--proof-path" && i+1 < len(args) {
				if err := os.WriteFile(args[i+1], []byte(f.proofContents), 0o644); err != nil {
					return nil, nil, err
				}
			}
		}
	}
	return nil, f.stderr, f.err
}

func TestNoirProverSuccess(t *testing.T) {
	circuit := filepath.Join(t.TempDir(), "main.json")
	runner := &fakeRunner{proofContents: "0xdeadbeef"}
	p := NewNoirProver("nargo", runner)

	proof, err := p.Prove(context.Background(), ProofSpec{
		JobID:       "proof_abc",
		CircuitPath: circuit,
		Input:       json.RawMessage(`{"x":1}`),
	})
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if proof != "0xdeadbeef" {
		t.Errorf("proof = %q, want file contents verbatim", proof)
	}

	if runner.name != "nargo" {
		t.Errorf("binary = %q, want nargo", runner.name)
	}
	want := []string{
		"prove",
		"--proof-path", circuit + ".proof",
		"--witness", circuit + ".witness",
		"--program", circuit,
		"--input", `{"x":1}`,
	}
	if len(runner.args) != len(want) {
		t.Fatalf("args = %v, want %v", runner.args, want)
	}
	for i := range want {
		if runner.args[i] != want[i] {
			t.Errorf("arg[%d] = %q, want %q", i, runner.args[i], want[i])
		}
	}
}

func TestNoirProverNonzeroExit(t *testing.T) {
	runner := &fakeRunner{
		stderr: []byte("error: cannot satisfy constraint"),
		err:    &exec.ExitError{},
	}
	p := NewNoirProver("", runner)

	_, err := p.Prove(context.Background(), ProofSpec{
		JobID:       "proof_abc",
		CircuitPath: "circuits/main.json",
		Input:       json.RawMessage(`{}`),
	})

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error = %T (%v), want *GenerationError", err, err)
	}
	if genErr.Error() != "error: cannot satisfy constraint" {
		t.Errorf("error message = %q, want captured stderr verbatim", genErr.Error())
	}
}

func TestNoirProverLaunchFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("executable file not found in $PATH")}
	p := NewNoirProver("nargo", runner)

	_, err := p.Prove(context.Background(), ProofSpec{
		JobID:       "proof_abc",
		CircuitPath: "circuits/main.json",
	})
	if !errors.Is(err, ErrCommandExecution) {
		t.Errorf("error = %v, want ErrCommandExecution", err)
	}
}

func TestNoirProverUnreadableProofFile(t *testing.T) {
	// Runner succeeds but never writes the proof artifact.
	runner := &fakeRunner{}
	p := NewNoirProver("nargo", runner)

	_, err := p.Prove(context.Background(), ProofSpec{
		JobID:       "proof_abc",
		CircuitPath: filepath.Join(t.TempDir(), "main.json"),
	})

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error = %T (%v), want *GenerationError", err, err)
	}
}

func TestNoirProverDefaults(t *testing.T) {
	p := NewNoirProver("", nil)
	if p.bin != DefaultProverBin {
		t.Errorf("bin = %q, want %q", p.bin, DefaultProverBin)
	}
	if p.runner == nil {
		t.Error("runner is nil, want ExecRunner fallback")
	}
}
