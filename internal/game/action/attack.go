package action

import (
	"fmt"

	"github.com/cory-johannsen/combatcore/internal/game/dice"
	"github.com/cory-johannsen/combatcore/internal/game/event"
)

// resolveAttack performs one weapon attack and returns its events: an
// AttackResolved carrying the full roll audit, followed by a CreatureDefeated
// when the hit drops the target to zero HP.
//
// Precondition: the attack has passed Validate; actor, target, and weapon are
// resolved.
// Postcondition: events are in resolution order and the context is untouched.
func resolveAttack(actor, target *Creature, w Weapon, ctx *ActionContext) ([]event.Event, error) {
	d20 := dice.D20(ctx.Dice)
	total := d20 + w.AttackBonus
	critical := d20 == 20
	hit := critical || total >= target.AC

	resolved := event.AttackResolved{
		Meta:        event.NewMeta(ctx.SessionID),
		AttackerID:  actor.ID,
		TargetID:    target.ID,
		WeaponID:    w.ID,
		AttackRoll:  d20,
		AttackTotal: total,
		TargetAC:    target.AC,
		Hit:         hit,
		Critical:    critical,
		NewHP:       target.HP,
	}
	if !hit {
		return []event.Event{resolved}, nil
	}

	expr, err := dice.Parse(w.Damage)
	if err != nil {
		return nil, fmt.Errorf("weapon %s damage %q: %w", w.ID, w.Damage, err)
	}
	var roll dice.RollResult
	if critical {
		// A critical doubles the dice, not the modifier.
		roll, err = dice.RollCrit(expr, ctx.Dice)
	} else {
		roll, err = dice.Roll(expr, ctx.Dice)
	}
	if err != nil {
		return nil, fmt.Errorf("rolling weapon %s damage: %w", w.ID, err)
	}
	damage := roll.Total()
	if damage < 0 {
		damage = 0
	}

	newHP := target.HP - damage
	if newHP < 0 {
		newHP = 0
	}
	resolved.DamageRoll = roll.Dice
	resolved.Damage = damage
	resolved.NewHP = newHP

	events := []event.Event{resolved}
	if newHP == 0 && target.HP > 0 {
		events = append(events, event.CreatureDefeated{
			Meta:       event.NewMeta(ctx.SessionID),
			CreatureID: target.ID,
			DefeatedBy: actor.ID,
		})
	}
	return events, nil
}

// handleAttack resolves a single validated Attack.
func handleAttack(act Attack, ctx *ActionContext) ([]event.Event, error) {
	actor := ctx.Creatures[act.ActorID]
	target := ctx.Creatures[act.TargetID]
	w, res := resolveWeapon(actor, act.WeaponID)
	if res != nil {
		return nil, fmt.Errorf("resolving weapon: %s", res.Reason)
	}
	return resolveAttack(actor, target, w, ctx)
}

// handleMultiAttack fans the single-attack logic across targets in submission
// order and concatenates the events.
func handleMultiAttack(act MultiAttack, ctx *ActionContext) ([]event.Event, error) {
	actor := ctx.Creatures[act.ActorID]
	w, res := resolveWeapon(actor, act.WeaponID)
	if res != nil {
		return nil, fmt.Errorf("resolving weapon: %s", res.Reason)
	}
	var events []event.Event
	for _, targetID := range act.TargetIDs {
		target := ctx.Creatures[targetID]
		out, err := resolveAttack(actor, target, w, ctx)
		if err != nil {
			return nil, err
		}
		events = append(events, out...)
	}
	return events, nil
}

// handleOpportunityAttack resolves the provoked reaction attack and records
// the reaction spend alongside the attack outcome.
func handleOpportunityAttack(act OpportunityAttack, ctx *ActionContext) ([]event.Event, error) {
	actor := ctx.Creatures[act.ActorID]
	target := ctx.Creatures[act.TargetID]
	w, res := resolveWeapon(actor, act.WeaponID)
	if res != nil {
		return nil, fmt.Errorf("resolving weapon: %s", res.Reason)
	}
	events := []event.Event{event.ReactionUsed{
		Meta:       event.NewMeta(ctx.SessionID),
		CreatureID: actor.ID,
		Trigger:    fmt.Sprintf("%s left reach", target.ID),
	}}
	out, err := resolveAttack(actor, target, w, ctx)
	if err != nil {
		return nil, err
	}
	return append(events, out...), nil
}
