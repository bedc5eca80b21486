// Package initiative implements initiative rolling, the surprise round, and
// the turn-order state machine for the combat rules core. All state values
// are immutable: every operation returns a fresh RoundState and never mutates
// its input.
package initiative

// Entry is one combatant's slot in the initiative order.
// Entries are immutable; any change produces a new Entry.
type Entry struct {
	// CreatureID uniquely identifies the combatant.
	CreatureID string `json:"creature_id"`
	// Roll is the raw d20 result.
	Roll int `json:"roll"`
	// Modifier is the dexterity-derived initiative bonus.
	Modifier int `json:"modifier"`
	// Total is Roll + Modifier.
	Total int `json:"total"`
}

// Before reports whether e sorts ahead of other in initiative order.
// Order is Total descending, then Modifier descending, then CreatureID
// ascending. Insertion via AddCreature and ResumeDelayedTurn uses the same
// rule.
func (e Entry) Before(other Entry) bool {
	if e.Total != other.Total {
		return e.Total > other.Total
	}
	if e.Modifier != other.Modifier {
		return e.Modifier > other.Modifier
	}
	return e.CreatureID < other.CreatureID
}

// insertionIndex returns the position at which entry belongs in order,
// preserving the sort invariant.
//
// Precondition: order must already be sorted by Entry.Before.
// Postcondition: 0 <= return value <= len(order).
func insertionIndex(order []Entry, entry Entry) int {
	for i, e := range order {
		if entry.Before(e) {
			return i
		}
	}
	return len(order)
}
