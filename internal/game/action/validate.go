package action

import (
	"fmt"

	"github.com/cory-johannsen/combatcore/internal/game/concentration"
	"github.com/cory-johannsen/combatcore/internal/game/condition"
	"github.com/cory-johannsen/combatcore/internal/game/turn"
)

// Status is the outcome of a legality check.
type Status int

const (
	// Valid means the action may proceed to its handler at the computed cost.
	Valid Status = iota
	// Invalid means the action is rejected; Reason explains why.
	Invalid
	// RequiresChoice means the action is legal but underspecified; the caller
	// must resubmit with one of Options chosen.
	RequiresChoice
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	case RequiresChoice:
		return "requires_choice"
	default:
		return "unknown"
	}
}

// Choice is one equally valid way to complete an underspecified action.
type Choice struct {
	// Field names the action field to fill in, e.g. "weapon_id".
	Field string
	// Value is what to put there.
	Value string
	// Label is a human-readable description of the option.
	Label string
}

// Cost is the resources a validated action will spend.
type Cost struct {
	// Kind is the action economy resource consumed.
	Kind turn.Kind
	// Movement is feet of movement spent; 0 for non-movement actions.
	Movement int
	// SlotLevel is the spell slot consumed; 0 when no slot is spent.
	SlotLevel int
	// BreaksConcentration is set when resolving the action will break the
	// actor's running concentration.
	BreaksConcentration bool
}

// ValidationResult is the verdict on a proposed action. Exactly one of the
// three statuses applies; Reason accompanies Invalid, Options accompanies
// RequiresChoice, and Cost is meaningful only for Valid.
type ValidationResult struct {
	Status  Status
	Cost    Cost
	Reason  string
	Options []Choice
}

func valid(cost Cost) ValidationResult {
	return ValidationResult{Status: Valid, Cost: cost}
}

func invalid(format string, args ...any) ValidationResult {
	return ValidationResult{Status: Invalid, Reason: fmt.Sprintf(format, args...)}
}

func choose(options []Choice) ValidationResult {
	return ValidationResult{Status: RequiresChoice, Options: options}
}

// Validate judges a proposed action against the context: actor existence,
// turn-phase resource availability, the condition legality matrix, and
// per-variant structural checks. Concentration never rejects; it only
// annotates the cost.
//
// Postcondition: Valid results carry a fully computed Cost; Invalid results
// carry a human-readable Reason; RequiresChoice results carry at least one
// option.
func Validate(a GameAction, ctx *ActionContext) ValidationResult {
	actor, ok := ctx.Creatures[a.Actor()]
	if !ok {
		return invalid("unknown creature %q", a.Actor())
	}

	kind := resourceKind(a.ActionTag())
	if blocker, blocked := condition.BlockingCondition(ctx.conditions(actor.ID), kind); blocked {
		return invalid("%s cannot use its %s while %s", actor.ID, kind, blocker)
	}

	if a.ActionTag() == TagOpportunityAttack {
		return validateOpportunityAttack(a.(OpportunityAttack), actor, ctx)
	}

	if ctx.Phase.CreatureID != actor.ID {
		return invalid("it is not %s's turn", actor.ID)
	}
	if !ctx.Phase.IsAvailable(kind) {
		return invalid("%s has no %s remaining this turn", actor.ID, kind)
	}

	switch act := a.(type) {
	case Attack:
		return validateAttack(actor, act.TargetID, act.WeaponID, ctx)
	case MultiAttack:
		if len(act.TargetIDs) == 0 {
			return invalid("multi attack needs at least one target")
		}
		if dup := duplicateTarget(act.TargetIDs); dup != "" {
			return invalid("target %q listed more than once", dup)
		}
		for _, targetID := range act.TargetIDs {
			if res := validateAttack(actor, targetID, act.WeaponID, ctx); res.Status != Valid {
				return res
			}
		}
		return valid(Cost{Kind: turn.KindAction})
	case Move:
		return validateMove(actor, act, ctx)
	case Dash:
		return valid(Cost{Kind: turn.KindAction})
	case CastSpell:
		return validateCastSpell(actor, act, ctx)
	case Dodge:
		return valid(Cost{Kind: turn.KindAction})
	case Disengage:
		return valid(Cost{Kind: turn.KindAction})
	case Help:
		if act.TargetID == actor.ID {
			return invalid("%s cannot help itself", actor.ID)
		}
		if _, ok := ctx.Creatures[act.TargetID]; !ok {
			return invalid("unknown creature %q", act.TargetID)
		}
		return valid(Cost{Kind: turn.KindAction})
	case Ready:
		if act.Trigger == "" {
			return invalid("ready needs a trigger")
		}
		if act.PreparedAction == "" || act.PreparedAction == TagReady {
			return invalid("cannot ready %q", act.PreparedAction)
		}
		if act.TriggerScript != "" && ctx.Triggers != nil {
			if err := ctx.Triggers.CheckSyntax(act.TriggerScript); err != nil {
				return invalid("trigger script: %v", err)
			}
		}
		return valid(Cost{Kind: turn.KindAction})
	default:
		return invalid("unhandled action tag %q", a.ActionTag())
	}
}

// resourceKind maps an action variant to the action economy resource it
// spends.
func resourceKind(tag Tag) turn.Kind {
	switch tag {
	case TagMove:
		return turn.KindMovement
	case TagOpportunityAttack:
		return turn.KindReaction
	default:
		return turn.KindAction
	}
}

func validateAttack(actor *Creature, targetID, weaponID string, ctx *ActionContext) ValidationResult {
	target, ok := ctx.Creatures[targetID]
	if !ok {
		return invalid("unknown creature %q", targetID)
	}
	if target.ID == actor.ID {
		return invalid("%s cannot attack itself", actor.ID)
	}
	if _, res := resolveWeapon(actor, weaponID); res != nil {
		return *res
	}
	return valid(Cost{Kind: turn.KindAction})
}

// resolveWeapon picks the weapon an attack uses. An empty weaponID resolves
// to the actor's only weapon, or to a RequiresChoice verdict when the actor
// carries several.
func resolveWeapon(actor *Creature, weaponID string) (Weapon, *ValidationResult) {
	if weaponID != "" {
		w, ok := actor.WeaponByID(weaponID)
		if !ok {
			res := invalid("%s has no weapon %q", actor.ID, weaponID)
			return Weapon{}, &res
		}
		return w, nil
	}
	switch len(actor.Weapons) {
	case 0:
		res := invalid("%s has no weapon", actor.ID)
		return Weapon{}, &res
	case 1:
		return actor.Weapons[0], nil
	default:
		options := make([]Choice, len(actor.Weapons))
		for i, w := range actor.Weapons {
			options[i] = Choice{Field: "weapon_id", Value: w.ID, Label: w.Name}
		}
		res := choose(options)
		return Weapon{}, &res
	}
}

// duplicateTarget returns the first creature ID listed more than once in ids,
// or "" when all entries are distinct. A duplicated target would otherwise
// produce two outcomes, and possibly two defeat events, from one HP snapshot.
func duplicateTarget(ids []string) string {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return id
		}
		seen[id] = struct{}{}
	}
	return ""
}

func validateMove(actor *Creature, act Move, ctx *ActionContext) ValidationResult {
	if len(act.Path) < 2 {
		return invalid("move path needs at least a start and one step")
	}
	if err := ctx.Grid.ValidatePath(act.Path); err != nil {
		return invalid("invalid path: %v", err)
	}
	cost := ctx.Grid.Cost(act.Path)
	if condition.ForcesZeroSpeed(ctx.conditions(actor.ID)) && cost > 0 {
		return invalid("%s has speed 0 and cannot move", actor.ID)
	}
	if cost > ctx.Phase.MovementRemaining {
		return invalid("path costs %d ft but only %d ft of movement remains", cost, ctx.Phase.MovementRemaining)
	}
	return valid(Cost{Kind: turn.KindMovement, Movement: cost})
}

func validateCastSpell(actor *Creature, act CastSpell, ctx *ActionContext) ValidationResult {
	if ctx.Spells == nil {
		return invalid("no spell registry available")
	}
	def, ok := ctx.Spells.Get(act.SpellID)
	if !ok {
		return invalid("unknown spell %q", act.SpellID)
	}
	if len(act.TargetIDs) == 0 {
		return invalid("spell %s needs at least one target", def.ID)
	}
	if dup := duplicateTarget(act.TargetIDs); dup != "" {
		return invalid("target %q listed more than once", dup)
	}
	maxTargets := def.MaxTargets
	if maxTargets == 0 {
		maxTargets = 1
	}
	if len(act.TargetIDs) > maxTargets {
		return invalid("spell %s allows at most %d targets", def.ID, maxTargets)
	}
	for _, targetID := range act.TargetIDs {
		if _, ok := ctx.Creatures[targetID]; !ok {
			return invalid("unknown creature %q", targetID)
		}
	}

	cost := Cost{Kind: turn.KindAction}
	if !def.Cantrip() {
		if act.SlotLevel < def.Level {
			return invalid("spell %s needs a level %d slot or higher", def.ID, def.Level)
		}
		if actor.Slots[act.SlotLevel] <= 0 {
			return invalid("%s has no level %d slots remaining", actor.ID, act.SlotLevel)
		}
		cost.SlotLevel = act.SlotLevel
	}
	if def.Concentration && concentration.WouldBreak(ctx.Concentration, actor.ID) {
		cost.BreaksConcentration = true
	}
	return valid(cost)
}

func validateOpportunityAttack(act OpportunityAttack, actor *Creature, ctx *ActionContext) ValidationResult {
	if !ctx.reactionAvailable(actor.ID) {
		return invalid("%s has no reaction remaining this round", actor.ID)
	}
	if ctx.disengaged(act.TargetID) {
		return invalid("%s disengaged and does not provoke", act.TargetID)
	}
	return validateAttackAsReaction(actor, act.TargetID, act.WeaponID, ctx)
}

func validateAttackAsReaction(actor *Creature, targetID, weaponID string, ctx *ActionContext) ValidationResult {
	res := validateAttack(actor, targetID, weaponID, ctx)
	if res.Status == Valid {
		res.Cost.Kind = turn.KindReaction
	}
	return res
}
