// Package prover contains the execution backends that produce proof
// artifacts. The mock backend synthesizes a deterministic-shaped proof for
// development; the noir backend shells out to an external prover binary.
package prover

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrCommandExecution is returned (wrapped) when the external prover binary
// could not be launched at all, as opposed to running and failing.
var ErrCommandExecution = errors.New("prover command could not be executed")

// GenerationError reports that proof generation ran but failed. For a
// nonzero prover exit status, Output is exactly the captured stderr.
type GenerationError struct {
	Output string
}

func (e *GenerationError) Error() string {
	return e.Output
}

// ProofSpec describes one proof to be generated.
type ProofSpec struct {
	JobID       string          `json:"task_id"`
	CircuitPath string          `json:"circuit_path"`
	Input       json.RawMessage `json:"input"`
}

// Prover is the interface all proof backends implement. Prove returns the
// serialized proof artifact, blocking until generation finishes or ctx is
// done.
type Prover interface {
	Prove(ctx context.Context, spec ProofSpec) (string, error)
}
