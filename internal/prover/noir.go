package prover

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/naz3eh/zkp-service/internal/command"
)

// DefaultProverBin is the external Noir prover executable.
const DefaultProverBin = "nargo"

// Compile-time interface satisfaction check.
var _ Prover = (*NoirProver)(nil)

// NoirProver generates proofs by invoking an external prover executable.
// The command runner is injectable so tests can run without a real binary.
type NoirProver struct {
	bin    string
	runner command.Runner
}

// NewNoirProver creates an external-process backend. An empty bin falls back
// to DefaultProverBin; a nil runner falls back to os/exec.
func NewNoirProver(bin string, runner command.Runner) *NoirProver {
	if bin == "" {
		bin = DefaultProverBin
	}
	if runner == nil {
		runner = command.ExecRunner{}
	}
	return &NoirProver{bin: bin, runner: runner}
}

// Prove runs the prover binary against the circuit and input, then reads the
// proof artifact the binary wrote next to the circuit.
func (n *NoirProver) Prove(ctx context.Context, spec ProofSpec) (string, error) {
	input, err := json.Marshal(spec.Input)
	if err != nil {
		return "", fmt.Errorf("serialize input: %w", err)
	}

	proofPath := spec.CircuitPath + ".proof"
	witnessPath := spec.CircuitPath + ".witness"

	_, stderr, err := n.runner.Run(ctx, n.bin,
		"prove",
		"--proof-path", proofPath,
		"--witness", witnessPath,
		"--program", spec.CircuitPath,
		"--input", string(input),
	)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// The prover ran and rejected the job; surface its stderr verbatim.
			return "", &GenerationError{Output: string(stderr)}
		}
		return "", fmt.Errorf("%w: run %s: %v", ErrCommandExecution, n.bin, err)
	}

	proof, err := os.ReadFile(proofPath)
	if err != nil {
		return "", &GenerationError{Output: fmt.Sprintf("read proof file: %v", err)}
	}
	return string(proof), nil
}
