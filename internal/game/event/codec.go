package event

import (
	"encoding/json"
	"fmt"
)

// envelope is the persisted wire form: a stable discriminator plus the full
// event payload. The payload carries session_id and timestamp so a record is
// replay-sufficient on its own.
type envelope struct {
	Kind    Kind            `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// Marshal encodes ev into its stable wire form.
//
// Postcondition: Unmarshal(Marshal(ev)) yields an event equal to ev for every
// known kind.
func Marshal(ev Event) ([]byte, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("encoding %s payload: %w", ev.EventKind(), err)
	}
	data, err := json.Marshal(envelope{Kind: ev.EventKind(), Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("encoding %s envelope: %w", ev.EventKind(), err)
	}
	return data, nil
}

// Unmarshal decodes a wire record back into its concrete event type.
// Records with an unrecognised kind decode into Unknown rather than failing:
// the schema is additive-only and old readers must replay past new kinds.
//
// Postcondition: Returns a non-nil Event or a decode error.
func Unmarshal(data []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding event envelope: %w", err)
	}

	decode := func(dst Event) (Event, error) {
		if err := json.Unmarshal(env.Payload, dst); err != nil {
			return nil, fmt.Errorf("decoding %s payload: %w", env.Kind, err)
		}
		return deref(dst), nil
	}

	switch env.Kind {
	case KindEncounterStarted:
		return decode(&EncounterStarted{})
	case KindRoundStarted:
		return decode(&RoundStarted{})
	case KindTurnStarted:
		return decode(&TurnStarted{})
	case KindTurnEnded:
		return decode(&TurnEnded{})
	case KindReactionUsed:
		return decode(&ReactionUsed{})
	case KindTurnDelayed:
		return decode(&TurnDelayed{})
	case KindDelayedTurnResumed:
		return decode(&DelayedTurnResumed{})
	case KindCreatureAdded:
		return decode(&CreatureAddedToCombat{})
	case KindCreatureRemoved:
		return decode(&CreatureRemovedFromCombat{})
	case KindAttackResolved:
		return decode(&AttackResolved{})
	case KindCreatureDefeated:
		return decode(&CreatureDefeated{})
	case KindMoveCommitted:
		return decode(&MoveCommitted{})
	case KindSpellCast:
		return decode(&SpellCast{})
	case KindDodgeTaken:
		return decode(&DodgeTaken{})
	case KindDashTaken:
		return decode(&DashTaken{})
	case KindDisengaged:
		return decode(&Disengaged{})
	case KindHelpGiven:
		return decode(&HelpGiven{})
	case KindActionReadied:
		return decode(&ActionReadied{})
	case KindOpportunityAttack:
		return decode(&OpportunityAttackTriggered{})
	default:
		var meta Meta
		// Best-effort meta extraction; an unparsable payload still yields a
		// replayable Unknown record.
		_ = json.Unmarshal(env.Payload, &meta)
		return Unknown{Meta: meta, RawKind: env.Kind, Payload: append([]byte(nil), env.Payload...)}, nil
	}
}

// deref converts the pointer targets used for JSON decoding back into the
// value types the rest of the package traffics in.
func deref(ev Event) Event {
	switch e := ev.(type) {
	case *EncounterStarted:
		return *e
	case *RoundStarted:
		return *e
	case *TurnStarted:
		return *e
	case *TurnEnded:
		return *e
	case *ReactionUsed:
		return *e
	case *TurnDelayed:
		return *e
	case *DelayedTurnResumed:
		return *e
	case *CreatureAddedToCombat:
		return *e
	case *CreatureRemovedFromCombat:
		return *e
	case *AttackResolved:
		return *e
	case *CreatureDefeated:
		return *e
	case *MoveCommitted:
		return *e
	case *SpellCast:
		return *e
	case *DodgeTaken:
		return *e
	case *DashTaken:
		return *e
	case *Disengaged:
		return *e
	case *HelpGiven:
		return *e
	case *ActionReadied:
		return *e
	case *OpportunityAttackTriggered:
		return *e
	default:
		return ev
	}
}
