// Package event defines the append-only combat event log: the sealed set of
// event types, a stable JSON wire codec, the pure fold that rebuilds
// RoundState from a log prefix, and the undo/redo history stacks. Events are
// the only channel by which combat state changes; in-memory state is always
// a function of the log.
package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/cory-johannsen/combatcore/internal/game/initiative"
)

// Kind is the stable wire discriminator for an event type. Values are part
// of the persisted schema and must never be renamed.
type Kind string

const (
	KindEncounterStarted   Kind = "encounter_started"
	KindRoundStarted       Kind = "round_started"
	KindTurnStarted        Kind = "turn_started"
	KindTurnEnded          Kind = "turn_ended"
	KindReactionUsed       Kind = "reaction_used"
	KindTurnDelayed        Kind = "turn_delayed"
	KindDelayedTurnResumed Kind = "delayed_turn_resumed"
	KindCreatureAdded      Kind = "creature_added_to_combat"
	KindCreatureRemoved    Kind = "creature_removed_from_combat"
	KindAttackResolved     Kind = "attack_resolved"
	KindCreatureDefeated   Kind = "creature_defeated"
	KindMoveCommitted      Kind = "move_committed"
	KindSpellCast          Kind = "spell_cast"
	KindDodgeTaken         Kind = "dodge_taken"
	KindDashTaken          Kind = "dash_taken"
	KindDisengaged         Kind = "disengaged"
	KindHelpGiven          Kind = "help_given"
	KindActionReadied      Kind = "action_readied"
	KindOpportunityAttack  Kind = "opportunity_attack_triggered"
)

// Event is one immutable record in a session's log. The interface is sealed:
// only types in this package implement it, so validation and fold pipelines
// can enumerate the full variant space.
type Event interface {
	// EventKind returns the stable discriminator.
	EventKind() Kind
	// Session returns the encounter session this event belongs to.
	Session() uuid.UUID
	// OccurredAt returns the event timestamp.
	OccurredAt() time.Time

	sealed()
}

// RoundEvent is the subset of events that affect the initiative fold. Every
// initiative-affecting event type must implement applyRound; declaring a new
// one without it fails to satisfy this interface, which is what keeps the
// fold in BuildState exhaustive.
type RoundEvent interface {
	Event
	applyRound(s initiative.RoundState) (initiative.RoundState, error)
}

// Meta carries the identification fields shared by every event.
type Meta struct {
	SessionID uuid.UUID `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMeta builds a Meta stamped with the current time.
func NewMeta(sessionID uuid.UUID) Meta {
	return Meta{SessionID: sessionID, Timestamp: time.Now().UTC()}
}

// Session returns the session identifier.
func (m Meta) Session() uuid.UUID { return m.SessionID }

// OccurredAt returns the event timestamp.
func (m Meta) OccurredAt() time.Time { return m.Timestamp }

func (m Meta) sealed() {}
