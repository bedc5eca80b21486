package initiative

// HasSurpriseRound reports whether an encounter opens with a surprise round.
//
// Postcondition: Returns true iff surprised is non-empty.
func HasSurpriseRound(surprised map[string]struct{}) bool {
	return len(surprised) > 0
}

// CanActInSurpriseRound reports whether creatureID may act during the
// surprise round. Creatures not present in the set, including creatures not
// part of the encounter at all, may act.
//
// Postcondition: Returns false iff creatureID is a member of surprised.
func CanActInSurpriseRound(creatureID string, surprised map[string]struct{}) bool {
	_, ok := surprised[creatureID]
	return !ok
}

// EndSurpriseRound returns the post-surprise surprised set, which is always
// empty: once the surprise round ends every creature may act.
func EndSurpriseRound() map[string]struct{} {
	return map[string]struct{}{}
}
