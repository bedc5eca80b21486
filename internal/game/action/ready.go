package action

import (
	"github.com/cory-johannsen/combatcore/internal/game/event"
	"github.com/cory-johannsen/combatcore/internal/scripting"
)

// ShouldRelease judges whether a readied action's trigger fires for the given
// facts. Readied actions without a script never release automatically; their
// plain-text trigger is adjudicated outside the rules core.
//
// Precondition: eval is non-nil when readied carries a TriggerScript.
func ShouldRelease(readied event.ActionReadied, facts scripting.TriggerFacts, eval *scripting.Evaluator) (bool, error) {
	if readied.TriggerScript == "" {
		return false, nil
	}
	return eval.EvaluateTrigger(readied.TriggerScript, facts)
}
