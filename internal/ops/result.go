// Package ops holds the user-initiated state transitions. Every operation
// takes a snapshot and returns a fresh one; the input is never modified.
package ops

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/alexanderramin/streakhq/internal/domain"
)

// Result is the outcome of one operation: the replacement snapshot, the
// presentation effects it triggered and short user-facing notices.
type Result struct {
	Snapshot domain.Snapshot `json:"snapshot"`
	Effects  []domain.Effect `json:"effects"`
	Notices  []string        `json:"notices"`
}

func (r *Result) effect(kind domain.EffectKind, category string, amount int) {
	r.Effects = append(r.Effects, domain.Effect{Kind: kind, Category: category, Amount: amount})
}

func (r *Result) notice(format string, args ...any) {
	r.Notices = append(r.Notices, fmt.Sprintf(format, args...))
}

func begin(s domain.Snapshot) *Result {
	return &Result{
		Snapshot: s.Clone(),
		Effects:  []domain.Effect{},
		Notices:  []string{},
	}
}

func newID() string {
	return uuid.New().String()
}
