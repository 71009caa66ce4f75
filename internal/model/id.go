package model

import (
	"strings"

	"github.com/google/uuid"
)

// NewJobID generates a unique proof job identifier. The random part is a
// v4 UUID (122 random bits) rendered as plain hex.
func NewJobID() string {
	return "proof_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
