// Package concentration tracks which sustained spell, if any, each creature
// is concentrating on. A creature holds at most one concentration at a time;
// starting a new one replaces the old. State values are immutable maps;
// transitions return fresh copies.
package concentration

// Info describes one creature's active concentration.
type Info struct {
	// SpellID is the spell being sustained.
	SpellID string
	// StartedRound is the round the concentration began.
	StartedRound int
	// DC is the base saving-throw difficulty to maintain it under damage.
	DC int
}

// State maps creatureID to its active concentration. Creatures without an
// entry are not concentrating. Entries for distinct creatures are fully
// independent.
type State map[string]Info

// clone returns a copy of s; the zero State clones to an empty map.
func (s State) clone() State {
	out := make(State, len(s))
	for id, info := range s {
		out[id] = info
	}
	return out
}

// Active returns the creature's concentration, if any.
func (s State) Active(creatureID string) (Info, bool) {
	info, ok := s[creatureID]
	return info, ok
}

// Start records that creatureID begins concentrating on spellID. Any prior
// concentration for that creature is unconditionally replaced (broken).
//
// Postcondition: the returned State has exactly one entry for creatureID,
// naming spellID; other creatures are untouched.
func Start(s State, creatureID, spellID string, startedRound, dc int) State {
	out := s.clone()
	out[creatureID] = Info{SpellID: spellID, StartedRound: startedRound, DC: dc}
	return out
}

// Break removes creatureID's concentration. Breaking when the creature is not
// concentrating is a no-op.
//
// Postcondition: the returned State has no entry for creatureID.
func Break(s State, creatureID string) State {
	out := s.clone()
	delete(out, creatureID)
	return out
}

// WouldBreak reports whether starting a new concentration would break an
// existing one for the creature. Recasting the same spell also breaks (and
// restarts) the running concentration.
func WouldBreak(s State, creatureID string) bool {
	_, ok := s[creatureID]
	return ok
}
