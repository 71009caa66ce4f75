package model

import "encoding/json"

// Proof job status constants.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// validTransitions maps each status to the set of statuses it may transition to.
// Completed and failed are terminal and have no successors.
var validTransitions = map[string]map[string]bool{
	StatusPending: {
		StatusInProgress: true,
	},
	StatusInProgress: {
		StatusCompleted: true,
		StatusFailed:    true,
	},
}

// ValidTransition reports whether transitioning from one status to another is allowed.
func ValidTransition(from, to string) bool {
	targets, ok := validTransitions[from]
	if !ok {
		return false
	}
	return targets[to]
}

// Terminal reports whether a status admits no further transitions.
func Terminal(status string) bool {
	return status == StatusCompleted || status == StatusFailed
}

// ProofJob is a single unit of proving work. It is immutable once created;
// the engine only ever reads it.
type ProofJob struct {
	ID          string          `json:"task_id"`
	CircuitPath string          `json:"circuit_path"`
	Input       json.RawMessage `json:"input"`

	// Mock selects the mock backend. It already folds in the process-wide
	// mock switch, so the engine never consults configuration again.
	Mock bool `json:"mock"`
}

// ProofStatus is the current lifecycle state of a proof job. Proof is set
// only when State is completed; Error only when State is failed.
type ProofStatus struct {
	State string `json:"status"`
	Proof string `json:"proof,omitempty"`
	Error string `json:"error,omitempty"`
}
