package prover

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// DefaultMockDelay simulates proving work in the mock backend.
const DefaultMockDelay = 100 * time.Millisecond

// Compile-time interface satisfaction check.
var _ Prover = (*MockProver)(nil)

// MockProver produces a synthetic proof after a fixed delay. It never fails
// except on serialization errors.
type MockProver struct {
	delay time.Duration
	now   func() time.Time
}

// mockProof is the serialized shape of a synthetic proof.
type mockProof struct {
	TaskID    string          `json:"task_id"`
	Input     json.RawMessage `json:"input"`
	Proof     string          `json:"proof"`
	Timestamp string          `json:"timestamp"`
}

// NewMockProver creates a mock backend with the given work-simulation delay.
// A non-positive delay falls back to DefaultMockDelay.
func NewMockProver(delay time.Duration) *MockProver {
	if delay <= 0 {
		delay = DefaultMockDelay
	}
	return &MockProver{delay: delay, now: time.Now}
}

// Prove waits the configured delay, then returns a JSON document echoing the
// job context with a mock_proof_<task_id> marker.
func (m *MockProver) Prove(ctx context.Context, spec ProofSpec) (string, error) {
	select {
	case <-time.After(m.delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	doc := mockProof{
		TaskID:    spec.JobID,
		Input:     spec.Input,
		Proof:     "mock_proof_" + spec.JobID,
		Timestamp: m.now().UTC().Format(time.RFC3339),
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("serialize mock proof: %w", err)
	}
	return string(out), nil
}
