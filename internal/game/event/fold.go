package event

import (
	"fmt"

	"github.com/cory-johannsen/combatcore/internal/game/initiative"
)

// BuildState folds an ordered event log into the authoritative RoundState,
// starting from the zero state. Only RoundEvent types affect the fold; every
// other event is a no-op here. The fold is deterministic and associative
// across replay boundaries: folding a prefix and then the suffix on the
// intermediate state equals folding the whole log at once.
//
// Precondition: events must be in log order.
// Postcondition: same events always yield a deeply equal RoundState, or the
// error from the first event whose application was invalid.
func BuildState(events []Event) (initiative.RoundState, error) {
	var state initiative.RoundState
	return FoldState(state, events)
}

// FoldState applies events on top of an existing state. BuildState is
// FoldState from zero; replay checkpointing uses FoldState directly.
func FoldState(state initiative.RoundState, events []Event) (initiative.RoundState, error) {
	for i, ev := range events {
		re, ok := ev.(RoundEvent)
		if !ok {
			continue
		}
		next, err := re.applyRound(state)
		if err != nil {
			return initiative.RoundState{}, fmt.Errorf("applying event %d (%s): %w", i, ev.EventKind(), err)
		}
		state = next
	}
	return state, nil
}
