// Package utils holds small leaf helpers (ID generation, MIME sniffing)
// shared across companion components, ported from the teacher's pkg/utils.
package utils

import (
	"github.com/google/uuid"
)

// NewTurnID returns a fresh correlation identifier for a single user turn
// (one highlight, one bot mention, one reply, or one image question). It is
// used only for log correlation across components — never persisted,
// matching the companion's no-transcript-persistence rule.
func NewTurnID() string {
	return uuid.NewString()
}
