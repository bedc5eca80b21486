// Package condition defines the status-effect tags recognised by the combat
// rules core and the fixed legality matrix mapping each tag to the action
// economy resources it blocks. Conditions are applied and expired by an
// external tracker; this package only consumes the active set.
package condition

import "github.com/cory-johannsen/combatcore/internal/game/turn"

// Condition is a status-effect tag.
type Condition string

const (
	Stunned       Condition = "stunned"
	Incapacitated Condition = "incapacitated"
	Paralyzed     Condition = "paralyzed"
	Unconscious   Condition = "unconscious"
	Prone         Condition = "prone"
	Restrained    Condition = "restrained"
	Poisoned      Condition = "poisoned"
	Blinded       Condition = "blinded"
)

// Set is the active conditions on one creature.
type Set map[Condition]struct{}

// NewSet builds a Set from the given tags.
func NewSet(conds ...Condition) Set {
	s := make(Set, len(conds))
	for _, c := range conds {
		s[c] = struct{}{}
	}
	return s
}

// Has reports whether c is active.
func (s Set) Has(c Condition) bool {
	_, ok := s[c]
	return ok
}

// legality is one row of the fixed legality matrix.
type legality struct {
	blocksAction   bool
	blocksReaction bool
	blocksMovement bool
}

// matrix is the static condition legality table. Conditions absent from the
// table (prone, poisoned, blinded) block nothing.
var matrix = map[Condition]legality{
	Stunned:       {blocksAction: true, blocksReaction: true, blocksMovement: true},
	Incapacitated: {blocksAction: true, blocksReaction: true},
	Paralyzed:     {blocksAction: true, blocksReaction: true, blocksMovement: true},
	Unconscious:   {blocksAction: true, blocksReaction: true, blocksMovement: true},
	Restrained:    {blocksMovement: true},
}

// severityOrder fixes which blocking condition is reported when several are
// active at once: most severe first. The matrix alone only guarantees that
// some blocking condition is named; this ordering makes the report
// deterministic.
var severityOrder = []Condition{Unconscious, Paralyzed, Stunned, Incapacitated, Restrained}

// Blocks reports whether c forbids spending the given resource kind.
// Free actions are never blocked; bonus actions follow the action column.
func Blocks(c Condition, kind turn.Kind) bool {
	l, ok := matrix[c]
	if !ok {
		return false
	}
	switch kind {
	case turn.KindAction, turn.KindBonusAction:
		return l.blocksAction
	case turn.KindReaction:
		return l.blocksReaction
	case turn.KindMovement:
		return l.blocksMovement
	default:
		return false
	}
}

// BlockingCondition returns the most severe active condition that blocks the
// given resource kind, or ("", false) when nothing blocks it.
//
// Postcondition: when ok, the returned condition is active and Blocks it.
func BlockingCondition(active Set, kind turn.Kind) (Condition, bool) {
	for _, c := range severityOrder {
		if active.Has(c) && Blocks(c, kind) {
			return c, true
		}
	}
	return "", false
}

// ForcesZeroSpeed reports whether any active condition forces the creature's
// speed to zero (restrained, or any condition that blocks movement entirely).
func ForcesZeroSpeed(active Set) bool {
	_, ok := BlockingCondition(active, turn.KindMovement)
	return ok
}
