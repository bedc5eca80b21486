// Package turn tracks the per-turn action economy for the creature whose
// turn is active: one action, one bonus action, one reaction, and a movement
// budget. A Phase is created fresh when a turn starts and discarded when it
// ends; only the reaction logically persists across turns via an explicit
// restore at the start of the creature's next turn.
package turn

// Kind identifies an action economy resource.
type Kind int

const (
	// KindAction is the single main action per turn.
	KindAction Kind = iota
	// KindBonusAction is the single bonus action per turn.
	KindBonusAction
	// KindReaction is the once-per-round reaction, restored at the start of
	// the creature's own turn.
	KindReaction
	// KindMovement is the movement budget in feet.
	KindMovement
	// KindFree is a free action; always available.
	KindFree
)

// String returns the human-readable resource name.
func (k Kind) String() string {
	switch k {
	case KindAction:
		return "action"
	case KindBonusAction:
		return "bonus action"
	case KindReaction:
		return "reaction"
	case KindMovement:
		return "movement"
	case KindFree:
		return "free action"
	default:
		return "unknown"
	}
}

// Phase is the resource availability for one creature's turn.
// Phase values are immutable; consume operations return a new Phase.
//
// Invariant: MovementRemaining >= 0.
type Phase struct {
	CreatureID           string
	ActionAvailable      bool
	BonusActionAvailable bool
	ReactionAvailable    bool
	MovementRemaining    int
}

// Start creates a fresh Phase with every resource available and the full
// movement budget.
//
// Precondition: movementSpeed >= 0.
// Postcondition: all flags true; MovementRemaining == movementSpeed.
func Start(creatureID string, movementSpeed int) Phase {
	return Phase{
		CreatureID:           creatureID,
		ActionAvailable:      true,
		BonusActionAvailable: true,
		ReactionAvailable:    true,
		MovementRemaining:    movementSpeed,
	}
}

// ConsumeAction marks the main action spent. Repeated consumption is a no-op.
func (p Phase) ConsumeAction() Phase {
	p.ActionAvailable = false
	return p
}

// ConsumeBonusAction marks the bonus action spent. Repeated consumption is a no-op.
func (p Phase) ConsumeBonusAction() Phase {
	p.BonusActionAvailable = false
	return p
}

// ConsumeReaction marks the reaction spent. Repeated consumption is a no-op.
func (p Phase) ConsumeReaction() Phase {
	p.ReactionAvailable = false
	return p
}

// ConsumeMovement subtracts distance from the movement budget, clamped at zero.
//
// Precondition: distance >= 0.
// Postcondition: MovementRemaining >= 0.
func (p Phase) ConsumeMovement(distance int) Phase {
	p.MovementRemaining -= distance
	if p.MovementRemaining < 0 {
		p.MovementRemaining = 0
	}
	return p
}

// RestoreReaction makes the reaction available again. Called when a new turn
// begins for the creature.
func (p Phase) RestoreReaction() Phase {
	p.ReactionAvailable = true
	return p
}

// IsAvailable reports whether the resource of the given kind can still be
// spent this turn. Free actions are always available.
func (p Phase) IsAvailable(kind Kind) bool {
	switch kind {
	case KindAction:
		return p.ActionAvailable
	case KindBonusAction:
		return p.BonusActionAvailable
	case KindReaction:
		return p.ReactionAvailable
	case KindMovement:
		return p.MovementRemaining > 0
	case KindFree:
		return true
	default:
		return false
	}
}
