package action

import (
	"fmt"

	"github.com/cory-johannsen/combatcore/internal/game/dice"
	"github.com/cory-johannsen/combatcore/internal/game/event"
	"github.com/cory-johannsen/combatcore/internal/game/spell"
)

// handleCastSpell resolves one casting: one outcome per target in submission
// order, aggregated into a single SpellCast event, followed by a
// CreatureDefeated for every target the casting drops to zero HP.
//
// Precondition: the cast has passed Validate, so the spell exists, the slot
// is affordable, and every target is on the roster.
func handleCastSpell(act CastSpell, ctx *ActionContext, cost Cost) ([]event.Event, error) {
	actor := ctx.Creatures[act.ActorID]
	def, _ := ctx.Spells.Get(act.SpellID)

	cast := event.SpellCast{
		Meta:          event.NewMeta(ctx.SessionID),
		CasterID:      actor.ID,
		SpellID:       def.ID,
		SlotLevel:     cost.SlotLevel,
		SlotConsumed:  !def.Cantrip(),
		Concentration: def.Concentration,
	}
	if cost.BreaksConcentration {
		prior, _ := ctx.Concentration.Active(actor.ID)
		cast.BrokePrior = true
		cast.PriorSpellID = prior.SpellID
	}

	var defeated []event.Event
	for _, targetID := range act.TargetIDs {
		target := ctx.Creatures[targetID]
		outcome, err := resolveSpellTarget(def, actor, target, ctx)
		if err != nil {
			return nil, err
		}
		cast.Outcomes = append(cast.Outcomes, outcome)
		if outcome.NewHP == 0 && target.HP > 0 {
			defeated = append(defeated, event.CreatureDefeated{
				Meta:       event.NewMeta(ctx.SessionID),
				CreatureID: target.ID,
				DefeatedBy: actor.ID,
			})
		}
	}
	return append([]event.Event{cast}, defeated...), nil
}

// resolveSpellTarget computes one target's outcome according to the spell's
// shape: an attack roll against AC, or a saving throw against the caster's DC.
func resolveSpellTarget(def *spell.Def, actor, target *Creature, ctx *ActionContext) (event.TargetOutcome, error) {
	outcome := event.TargetOutcome{TargetID: target.ID, NewHP: target.HP}

	switch def.Shape {
	case spell.ShapeAttack:
		d20 := dice.D20(ctx.Dice)
		outcome.AttackRoll = d20
		outcome.Hit = d20 == 20 || d20+actor.SpellAttackBonus >= target.AC
		if !outcome.Hit {
			return outcome, nil
		}
		damage, err := rollSpellDamage(def, ctx, d20 == 20)
		if err != nil {
			return event.TargetOutcome{}, err
		}
		outcome.Damage = damage
	case spell.ShapeSave:
		save := dice.D20(ctx.Dice) + target.AbilityMods[def.SaveAbility]
		outcome.SaveRoll = save
		outcome.Saved = save >= actor.SpellSaveDC
		outcome.Hit = !outcome.Saved
		damage, err := rollSpellDamage(def, ctx, false)
		if err != nil {
			return event.TargetOutcome{}, err
		}
		if outcome.Saved {
			if def.HalfOnSave {
				damage /= 2
			} else {
				damage = 0
			}
		}
		outcome.Damage = damage
	}

	newHP := target.HP - outcome.Damage
	if newHP < 0 {
		newHP = 0
	}
	outcome.NewHP = newHP
	return outcome, nil
}

// rollSpellDamage rolls the spell's damage expression, doubling the dice on a
// critical attack. Spells without a damage expression deal 0.
func rollSpellDamage(def *spell.Def, ctx *ActionContext, critical bool) (int, error) {
	if def.Damage == "" {
		return 0, nil
	}
	expr, err := def.DamageExpr()
	if err != nil {
		return 0, fmt.Errorf("spell %s damage: %w", def.ID, err)
	}
	var roll dice.RollResult
	if critical {
		roll, err = dice.RollCrit(expr, ctx.Dice)
	} else {
		roll, err = dice.Roll(expr, ctx.Dice)
	}
	if err != nil {
		return 0, fmt.Errorf("rolling spell %s damage: %w", def.ID, err)
	}
	damage := roll.Total()
	if damage < 0 {
		damage = 0
	}
	return damage, nil
}
