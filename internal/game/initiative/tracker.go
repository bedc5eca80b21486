package initiative

// Tracker operations implement the turn-order state machine. Every operation
// takes a RoundState value and returns a new one; failures are reported as
// *InvalidStateError and leave the input untouched. Nothing here panics and
// nothing silently no-ops: an operation either succeeds with a new state or
// names the violated precondition.

// Initialize creates the active state for a fresh encounter with no surprise
// round.
//
// Postcondition: RoundNumber == 1; the first entry in order is active; or an
// InvalidStateError when order is empty.
func Initialize(order []Entry) (RoundState, error) {
	return InitializeWithSurprise(order, nil)
}

// InitializeWithSurprise creates the active state for a fresh encounter.
// When surprised is non-empty the encounter opens with a surprise round:
// RoundNumber 0, during which surprised creatures may not act.
//
// Postcondition: turn index 0 with the first entry active; RoundNumber is 0
// for a surprise opening and 1 otherwise.
func InitializeWithSurprise(order []Entry, surprised map[string]struct{}) (RoundState, error) {
	if len(order) == 0 {
		return RoundState{}, invalidState("initialize", "initiative order must not be empty")
	}

	s := RoundState{
		RoundNumber:        1,
		SurprisedCreatures: map[string]struct{}{},
		Delayed:            map[string]Entry{},
		UsedReactions:      map[string]struct{}{},
	}
	s.Order = make([]Entry, len(order))
	copy(s.Order, order)
	if HasSurpriseRound(surprised) {
		s.RoundNumber = 0
		s.IsSurpriseRound = true
		for id := range surprised {
			s.SurprisedCreatures[id] = struct{}{}
		}
	}
	s.setTurn(0)
	return s, nil
}

// AdvanceTurn moves the turn pointer to the next creature in order, wrapping
// to the top and incrementing RoundNumber past the last entry. Wrapping out
// of the surprise round clears the surprised set. A single remaining creature
// advances to itself and the round still increments.
//
// Postcondition: the returned state has a valid CurrentTurn, or an
// InvalidStateError when no turn is active.
func AdvanceTurn(state RoundState) (RoundState, error) {
	if state.CurrentTurn == nil || len(state.Order) == 0 {
		return RoundState{}, invalidState("advance-turn", "no active turn")
	}

	s := state.clone()
	next := s.CurrentTurn.Index + 1
	if next >= len(s.Order) {
		s.wrapToTop()
		return s, nil
	}
	s.setTurn(next)
	return s, nil
}

// AddCreature inserts entry at its sorted position. When the insertion index
// is at or before the current turn index, the turn index shifts up by one so
// the identity of the active creature is preserved.
//
// Postcondition: entry is present in Order at its sorted position; the active
// creature is unchanged; or an InvalidStateError when the creature is already
// tracked.
func AddCreature(state RoundState, entry Entry) (RoundState, error) {
	if state.IndexOf(entry.CreatureID) >= 0 {
		return RoundState{}, invalidState("add-creature", "creature %q already in initiative order", entry.CreatureID)
	}
	if _, ok := state.Delayed[entry.CreatureID]; ok {
		return RoundState{}, invalidState("add-creature", "creature %q is delaying its turn", entry.CreatureID)
	}

	s := state.clone()
	s.insertSorted(entry)
	return s, nil
}

// RemoveCreature removes creatureID from the initiative order.
//
// Turn-pointer rules:
//   - removed index before the current turn: turn index decrements, active
//     creature unchanged;
//   - removed creature was active: the creature now occupying that slot
//     becomes active, or the round wraps when the removed creature was last;
//   - removal empties the order: CurrentTurn becomes nil.
//
// Postcondition: creatureID is absent from Order; or an InvalidStateError
// when it was not present.
func RemoveCreature(state RoundState, creatureID string) (RoundState, error) {
	idx := state.IndexOf(creatureID)
	if idx < 0 {
		return RoundState{}, invalidState("remove-creature", "creature %q not in initiative order", creatureID)
	}

	s := state.clone()
	s.removeAt(idx)
	return s, nil
}

// DelayTurn removes creatureID from the initiative order and holds its entry
// (original total) in Delayed. The turn pointer follows the same rules as
// RemoveCreature, so delaying the active creature advances the turn.
//
// Postcondition: creatureID is in Delayed and absent from Order; or an
// InvalidStateError when it was not in the order.
func DelayTurn(state RoundState, creatureID string) (RoundState, error) {
	idx := state.IndexOf(creatureID)
	if idx < 0 {
		return RoundState{}, invalidState("delay-turn", "creature %q not in initiative order", creatureID)
	}

	s := state.clone()
	s.Delayed[creatureID] = s.Order[idx]
	s.removeAt(idx)
	return s, nil
}

// ResumeDelayedTurn re-inserts a delaying creature at the position dictated
// by newTotal, using the same sort rule as the roller. The held modifier is
// kept; the raw roll is back-computed so Total == Roll + Modifier holds.
//
// Postcondition: creatureID is back in Order with Total == newTotal; the
// active creature is unchanged; or an InvalidStateError when creatureID was
// not delaying.
func ResumeDelayedTurn(state RoundState, creatureID string, newTotal int) (RoundState, error) {
	held, ok := state.Delayed[creatureID]
	if !ok {
		return RoundState{}, invalidState("resume-delayed-turn", "creature %q is not delaying", creatureID)
	}

	s := state.clone()
	delete(s.Delayed, creatureID)
	s.insertSorted(Entry{
		CreatureID: creatureID,
		Roll:       newTotal - held.Modifier,
		Modifier:   held.Modifier,
		Total:      newTotal,
	})
	return s, nil
}

// StartTurnFor points the turn at creatureID and restores its reaction.
// Used by the event fold, where the acting creature is recorded in the log
// rather than derived by advancing.
//
// Postcondition: creatureID is active and not in UsedReactions; or an
// InvalidStateError when it is not in the order.
func StartTurnFor(state RoundState, creatureID string) (RoundState, error) {
	idx := state.IndexOf(creatureID)
	if idx < 0 {
		return RoundState{}, invalidState("start-turn", "creature %q not in initiative order", creatureID)
	}
	s := state.clone()
	s.setTurn(idx)
	delete(s.UsedReactions, creatureID)
	return s, nil
}

// MarkReactionUsed records that creatureID has spent its reaction for the
// current round cycle.
func MarkReactionUsed(state RoundState, creatureID string) RoundState {
	s := state.clone()
	s.UsedReactions[creatureID] = struct{}{}
	return s
}

// SetRound pins the round number, clearing surprise bookkeeping once the
// encounter is past round 0. Used by the event fold when replaying an
// explicit round boundary.
func SetRound(state RoundState, round int) RoundState {
	s := state.clone()
	s.RoundNumber = round
	if round >= 1 && s.IsSurpriseRound {
		s.IsSurpriseRound = false
		s.SurprisedCreatures = map[string]struct{}{}
	}
	return s
}

// insertSorted places entry at its sorted position and keeps the active
// creature's identity stable.
//
// Precondition: s is a private clone; entry.CreatureID is not in s.Order.
func (s *RoundState) insertSorted(entry Entry) {
	idx := insertionIndex(s.Order, entry)
	s.Order = append(s.Order, Entry{})
	copy(s.Order[idx+1:], s.Order[idx:])
	s.Order[idx] = entry

	switch {
	case s.CurrentTurn == nil:
		// Order was empty; the newcomer acts.
		s.setTurn(idx)
	case idx <= s.CurrentTurn.Index:
		s.setTurn(s.CurrentTurn.Index + 1)
	default:
		s.setTurn(s.CurrentTurn.Index)
	}
}

// removeAt deletes the entry at idx and applies the turn-pointer rules shared
// by RemoveCreature and DelayTurn.
//
// Precondition: s is a private clone; 0 <= idx < len(s.Order).
func (s *RoundState) removeAt(idx int) {
	s.Order = append(s.Order[:idx], s.Order[idx+1:]...)

	if s.CurrentTurn == nil {
		return
	}
	if len(s.Order) == 0 {
		s.CurrentTurn = nil
		return
	}

	ti := s.CurrentTurn.Index
	switch {
	case idx < ti:
		s.setTurn(ti - 1)
	case idx == ti:
		if ti >= len(s.Order) {
			// Active creature was last in order; wrap to a new round.
			s.wrapToTop()
			return
		}
		s.setTurn(ti)
	default:
		s.setTurn(ti)
	}
}

// wrapToTop starts the next round at the top of the order. Wrapping out of
// the surprise round (round 0) clears the surprised set.
//
// Precondition: s is a private clone; len(s.Order) > 0.
func (s *RoundState) wrapToTop() {
	s.RoundNumber++
	if s.IsSurpriseRound {
		s.IsSurpriseRound = false
		s.SurprisedCreatures = map[string]struct{}{}
	}
	s.setTurn(0)
}
