package action

import (
	"github.com/cory-johannsen/combatcore/internal/game/event"
)

// ActionResult is the outcome of processing a proposed action. Success
// carries the ordered event list and the cost spent; Failure carries a
// reason; RequiresChoice carries the options to resubmit with.
type ActionResult struct {
	Status  Status
	Cost    Cost
	Events  []event.Event
	Reason  string
	Options []Choice
}

// Process routes a proposed action through validation and, on a Valid
// verdict, dispatches it by tag to exactly one handler. Handlers never run
// for Invalid or RequiresChoice verdicts and no events are produced for them.
//
// Postcondition: Process never mutates ctx; every state change it implies is
// carried in the returned events.
func Process(a GameAction, ctx *ActionContext) ActionResult {
	verdict := Validate(a, ctx)
	switch verdict.Status {
	case Invalid:
		return ActionResult{Status: Invalid, Reason: verdict.Reason}
	case RequiresChoice:
		return ActionResult{Status: RequiresChoice, Options: verdict.Options}
	}

	events, err := dispatch(a, ctx, verdict.Cost)
	if err != nil {
		return ActionResult{Status: Invalid, Reason: err.Error()}
	}
	return ActionResult{Status: Valid, Cost: verdict.Cost, Events: events}
}

// dispatch routes a validated action to its handler. The type switch is
// exhaustive over the sealed GameAction set; a new variant fails here at the
// default arm during tests rather than resolving silently.
func dispatch(a GameAction, ctx *ActionContext, cost Cost) ([]event.Event, error) {
	switch act := a.(type) {
	case Attack:
		return handleAttack(act, ctx)
	case MultiAttack:
		return handleMultiAttack(act, ctx)
	case Move:
		return handleMove(act, ctx)
	case Dash:
		return handleDash(act, ctx)
	case CastSpell:
		return handleCastSpell(act, ctx, cost)
	case Dodge:
		return handleDodge(act, ctx)
	case Disengage:
		return handleDisengage(act, ctx)
	case Help:
		return handleHelp(act, ctx)
	case Ready:
		return handleReady(act, ctx)
	case OpportunityAttack:
		return handleOpportunityAttack(act, ctx)
	default:
		return nil, &UnhandledActionError{Tag: a.ActionTag()}
	}
}

// UnhandledActionError reports a GameAction variant dispatch does not cover.
type UnhandledActionError struct {
	Tag Tag
}

func (e *UnhandledActionError) Error() string {
	return "no handler for action tag " + string(e.Tag)
}
