package action

import (
	"github.com/cory-johannsen/combatcore/internal/game/event"
	"github.com/cory-johannsen/combatcore/internal/game/grid"
)

// handleMove commits a validated move: a MoveCommitted event carrying the
// path, the cost spent, and the remaining budget, followed by an
// OpportunityAttackTriggered for every threatening creature the mover escapes
// while able to react. Resolution of each provoked attack is a follow-up
// OpportunityAttack action by the threat.
//
// Precondition: the move has passed Validate, so the path is contiguous,
// unblocked, and affordable.
func handleMove(act Move, ctx *ActionContext) ([]event.Event, error) {
	cost := ctx.Grid.Cost(act.Path)
	events := []event.Event{event.MoveCommitted{
		Meta:              event.NewMeta(ctx.SessionID),
		CreatureID:        act.ActorID,
		Path:              wirePath(act.Path),
		Cost:              cost,
		MovementRemaining: ctx.Phase.MovementRemaining - cost,
	}}

	if ctx.disengaged(act.ActorID) {
		return events, nil
	}

	triggered := make(map[string]struct{})
	for i := 0; i+1 < len(act.Path); i++ {
		from := act.Path[i]
		next := act.Path[i+1]
		for _, threatID := range ctx.Grid.ThreatsAt(from, act.ActorID) {
			if _, done := triggered[threatID]; done {
				continue
			}
			// Moving within a threat's reach does not provoke; only leaving it.
			if threatens(ctx.Grid, threatID, next, act.ActorID) {
				continue
			}
			if !ctx.reactionAvailable(threatID) {
				continue
			}
			triggered[threatID] = struct{}{}
			events = append(events, event.OpportunityAttackTriggered{
				Meta:       event.NewMeta(ctx.SessionID),
				MoverID:    act.ActorID,
				ThreatID:   threatID,
				FromSquare: event.Coord{X: from.X, Y: from.Y},
			})
		}
	}
	return events, nil
}

// threatens reports whether threatID's reach covers sq.
func threatens(m grid.Map, threatID string, sq grid.Square, moverID string) bool {
	for _, id := range m.ThreatsAt(sq, moverID) {
		if id == threatID {
			return true
		}
	}
	return false
}

// wirePath converts grid squares into the event wire schema.
func wirePath(path []grid.Square) []event.Coord {
	out := make([]event.Coord, len(path))
	for i, sq := range path {
		out[i] = event.Coord{X: sq.X, Y: sq.Y}
	}
	return out
}
