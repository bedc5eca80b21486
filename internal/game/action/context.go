package action

import (
	"github.com/google/uuid"

	"github.com/cory-johannsen/combatcore/internal/game/concentration"
	"github.com/cory-johannsen/combatcore/internal/game/condition"
	"github.com/cory-johannsen/combatcore/internal/game/dice"
	"github.com/cory-johannsen/combatcore/internal/game/grid"
	"github.com/cory-johannsen/combatcore/internal/game/spell"
	"github.com/cory-johannsen/combatcore/internal/game/turn"
	"github.com/cory-johannsen/combatcore/internal/scripting"
)

// Weapon is one attack option a creature carries.
type Weapon struct {
	ID          string
	Name        string
	AttackBonus int
	// Damage is a dice expression, e.g. "1d8+3".
	Damage string
}

// Creature is the roster snapshot the rules layer consumes. It is provided by
// an external collaborator and never mutated here; outcomes flow back as
// events.
type Creature struct {
	ID               string
	Name             string
	AC               int
	HP               int
	MaxHP            int
	Speed            int
	Weapons          []Weapon
	SpellAttackBonus int
	SpellSaveDC      int
	// AbilityMods maps lowercase ability abbreviations ("str", "dex", ...)
	// to modifiers, used for saving throws.
	AbilityMods map[string]int
	// Slots maps spell slot level to remaining count.
	Slots map[int]int
}

// WeaponByID returns the creature's weapon with the given ID.
func (c *Creature) WeaponByID(id string) (Weapon, bool) {
	for _, w := range c.Weapons {
		if w.ID == id {
			return w, true
		}
	}
	return Weapon{}, false
}

// ActionContext is everything a proposed action is judged and resolved
// against: the acting creature's turn resources, the roster, the battle grid,
// active conditions, and concentration state. Contexts are snapshots; neither
// validation nor handlers mutate them.
type ActionContext struct {
	SessionID uuid.UUID
	Round     int
	Phase     turn.Phase
	Creatures map[string]*Creature
	Grid      grid.Map
	// Conditions holds the active condition set per creature, supplied by the
	// external condition tracker.
	Conditions    map[string]condition.Set
	Concentration concentration.State
	Spells        *spell.Registry
	Dice          dice.Source
	// Triggers evaluates readied-action Lua predicates. Nil skips script
	// syntax checking; plain-text triggers never need it.
	Triggers *scripting.Evaluator
	// Disengaged holds creatures that took Disengage this turn cycle and do
	// not provoke opportunity attacks.
	Disengaged map[string]struct{}
	// ReactionsUsed holds creatures whose reaction is spent this round,
	// consulted when movement looks for opportunity attackers.
	ReactionsUsed map[string]struct{}
}

// conditions returns the active condition set for a creature, never nil.
func (ctx *ActionContext) conditions(creatureID string) condition.Set {
	if s, ok := ctx.Conditions[creatureID]; ok {
		return s
	}
	return condition.Set{}
}

// reactionAvailable reports whether a creature can still take a reaction this
// round, combining the spent-reaction set with condition legality.
func (ctx *ActionContext) reactionAvailable(creatureID string) bool {
	if _, used := ctx.ReactionsUsed[creatureID]; used {
		return false
	}
	_, blocked := condition.BlockingCondition(ctx.conditions(creatureID), turn.KindReaction)
	return !blocked
}

// disengaged reports whether a creature took Disengage this turn cycle.
func (ctx *ActionContext) disengaged(creatureID string) bool {
	_, ok := ctx.Disengaged[creatureID]
	return ok
}
