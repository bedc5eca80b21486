package action

import "github.com/cory-johannsen/combatcore/internal/game/event"

// The special actions each emit one narrowly typed event capturing the actor,
// the target if any, and for Ready the trigger and prepared action. Their
// consequences (dodge's attack disadvantage, disengage suppressing provokes,
// the readied release) are interpreted by later validations and by the
// surrounding system from these events.

func handleDodge(act Dodge, ctx *ActionContext) ([]event.Event, error) {
	return []event.Event{event.DodgeTaken{
		Meta:       event.NewMeta(ctx.SessionID),
		CreatureID: act.ActorID,
	}}, nil
}

func handleDisengage(act Disengage, ctx *ActionContext) ([]event.Event, error) {
	return []event.Event{event.Disengaged{
		Meta:       event.NewMeta(ctx.SessionID),
		CreatureID: act.ActorID,
	}}, nil
}

func handleHelp(act Help, ctx *ActionContext) ([]event.Event, error) {
	return []event.Event{event.HelpGiven{
		Meta:       event.NewMeta(ctx.SessionID),
		CreatureID: act.ActorID,
		TargetID:   act.TargetID,
	}}, nil
}

func handleReady(act Ready, ctx *ActionContext) ([]event.Event, error) {
	return []event.Event{event.ActionReadied{
		Meta:           event.NewMeta(ctx.SessionID),
		CreatureID:     act.ActorID,
		Trigger:        act.Trigger,
		TriggerScript:  act.TriggerScript,
		PreparedAction: string(act.PreparedAction),
		TargetID:       act.TargetID,
	}}, nil
}
