package initiative

// Turn identifies the creature whose turn is active.
type Turn struct {
	// ActiveCreatureID is the creature currently acting.
	ActiveCreatureID string
	// Index is the creature's position in the initiative order.
	Index int
}

// RoundState is the authoritative turn-order state for one encounter.
//
// Invariants:
//   - Order is sorted by Entry.Before.
//   - No creature appears in both Order and Delayed.
//   - CurrentTurn.Index is a valid index into Order, or CurrentTurn is nil
//     when Order is empty.
//   - RoundNumber 0 denotes the surprise round; 1 is the first full round.
//
// RoundState values are immutable. Tracker operations and the event fold
// always return a fresh value built by clone().
type RoundState struct {
	RoundNumber        int
	IsSurpriseRound    bool
	SurprisedCreatures map[string]struct{}
	Order              []Entry
	CurrentTurn        *Turn
	Delayed            map[string]Entry
	// UsedReactions holds creatures whose reaction is spent. An entry is
	// cleared when the creature's own turn starts.
	UsedReactions map[string]struct{}
}

// ActiveCreatureID returns the creature whose turn is active, or "" when no
// turn is active.
func (s RoundState) ActiveCreatureID() string {
	if s.CurrentTurn == nil {
		return ""
	}
	return s.CurrentTurn.ActiveCreatureID
}

// IndexOf returns the position of creatureID in the initiative order, or -1.
func (s RoundState) IndexOf(creatureID string) int {
	for i, e := range s.Order {
		if e.CreatureID == creatureID {
			return i
		}
	}
	return -1
}

// clone returns a deep copy of s. Every mutation path in this package goes
// through clone so that published RoundState values are never written to.
func (s RoundState) clone() RoundState {
	out := s
	out.Order = make([]Entry, len(s.Order))
	copy(out.Order, s.Order)
	out.SurprisedCreatures = make(map[string]struct{}, len(s.SurprisedCreatures))
	for id := range s.SurprisedCreatures {
		out.SurprisedCreatures[id] = struct{}{}
	}
	out.Delayed = make(map[string]Entry, len(s.Delayed))
	for id, e := range s.Delayed {
		out.Delayed[id] = e
	}
	out.UsedReactions = make(map[string]struct{}, len(s.UsedReactions))
	for id := range s.UsedReactions {
		out.UsedReactions[id] = struct{}{}
	}
	if s.CurrentTurn != nil {
		t := *s.CurrentTurn
		out.CurrentTurn = &t
	}
	return out
}

// setTurn points CurrentTurn at the entry at index, or clears it when the
// order is empty.
//
// Precondition: s is a private clone; 0 <= index < len(s.Order) when
// len(s.Order) > 0.
func (s *RoundState) setTurn(index int) {
	if len(s.Order) == 0 {
		s.CurrentTurn = nil
		return
	}
	s.CurrentTurn = &Turn{
		ActiveCreatureID: s.Order[index].CreatureID,
		Index:            index,
	}
}
