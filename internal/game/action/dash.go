package action

import "github.com/cory-johannsen/combatcore/internal/game/event"

// handleDash converts the actor's action into extra movement equal to its
// speed. The movement budget itself is adjusted when the event is applied by
// the surrounding turn management, not here.
func handleDash(act Dash, ctx *ActionContext) ([]event.Event, error) {
	actor := ctx.Creatures[act.ActorID]
	return []event.Event{event.DashTaken{
		Meta:          event.NewMeta(ctx.SessionID),
		CreatureID:    act.ActorID,
		ExtraMovement: actor.Speed,
	}}, nil
}
