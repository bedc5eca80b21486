// Package action implements proposed-action validation and resolution. A
// GameAction plus an ActionContext goes through Validate for a legality
// verdict, then Process dispatches it to a handler that computes the outcome
// as an ordered list of events. Handlers are pure: the only channel by which
// state changes is the returned event list.
package action

import "github.com/cory-johannsen/combatcore/internal/game/grid"

// Tag identifies a GameAction variant.
type Tag string

const (
	TagAttack            Tag = "attack"
	TagMultiAttack       Tag = "multi_attack"
	TagMove              Tag = "move"
	TagDash              Tag = "dash"
	TagCastSpell         Tag = "cast_spell"
	TagDodge             Tag = "dodge"
	TagDisengage         Tag = "disengage"
	TagHelp              Tag = "help"
	TagReady             Tag = "ready"
	TagOpportunityAttack Tag = "opportunity_attack"
)

// GameAction is the closed set of proposable actions. Variants live in this
// package only; the sealed method keeps the set closed so dispatch stays
// exhaustive.
type GameAction interface {
	ActionTag() Tag
	// Actor returns the proposing creature's ID.
	Actor() string
	sealedAction()
}

// Attack proposes a single weapon attack against one target. WeaponID may be
// empty when the actor carries exactly one weapon; with several weapons an
// empty WeaponID yields a RequiresChoice verdict.
type Attack struct {
	ActorID  string
	TargetID string
	WeaponID string
}

func (a Attack) ActionTag() Tag { return TagAttack }
func (a Attack) Actor() string  { return a.ActorID }
func (a Attack) sealedAction()  {}

// MultiAttack fans the single-attack logic across several targets in
// submission order, consuming one action for the whole batch.
type MultiAttack struct {
	ActorID   string
	TargetIDs []string
	WeaponID  string
}

func (a MultiAttack) ActionTag() Tag { return TagMultiAttack }
func (a MultiAttack) Actor() string  { return a.ActorID }
func (a MultiAttack) sealedAction()  {}

// Move proposes travelling along a pre-computed path. The first square must
// be the actor's current position.
type Move struct {
	ActorID string
	Path    []grid.Square
}

func (a Move) ActionTag() Tag { return TagMove }
func (a Move) Actor() string  { return a.ActorID }
func (a Move) sealedAction()  {}

// Dash converts the action into extra movement equal to the actor's speed.
type Dash struct {
	ActorID string
}

func (a Dash) ActionTag() Tag { return TagDash }
func (a Dash) Actor() string  { return a.ActorID }
func (a Dash) sealedAction()  {}

// CastSpell proposes casting a spell from the registry at one or more targets.
type CastSpell struct {
	ActorID   string
	SpellID   string
	SlotLevel int
	TargetIDs []string
}

func (a CastSpell) ActionTag() Tag { return TagCastSpell }
func (a CastSpell) Actor() string  { return a.ActorID }
func (a CastSpell) sealedAction()  {}

// Dodge proposes the Dodge action.
type Dodge struct {
	ActorID string
}

func (a Dodge) ActionTag() Tag { return TagDodge }
func (a Dodge) Actor() string  { return a.ActorID }
func (a Dodge) sealedAction()  {}

// Disengage proposes the Disengage action.
type Disengage struct {
	ActorID string
}

func (a Disengage) ActionTag() Tag { return TagDisengage }
func (a Disengage) Actor() string  { return a.ActorID }
func (a Disengage) sealedAction()  {}

// Help proposes aiding another creature.
type Help struct {
	ActorID  string
	TargetID string
}

func (a Help) ActionTag() Tag { return TagHelp }
func (a Help) Actor() string  { return a.ActorID }
func (a Help) sealedAction()  {}

// Ready proposes holding a prepared action behind a trigger. TriggerScript,
// when set, is a Lua predicate evaluated by the scripting sandbox when
// candidate triggers occur; Trigger is its human-readable description.
type Ready struct {
	ActorID        string
	Trigger        string
	TriggerScript  string
	PreparedAction Tag
	TargetID       string
}

func (a Ready) ActionTag() Tag { return TagReady }
func (a Ready) Actor() string  { return a.ActorID }
func (a Ready) sealedAction()  {}

// OpportunityAttack proposes the reaction attack provoked by a target leaving
// the actor's reach.
type OpportunityAttack struct {
	ActorID  string
	TargetID string
	WeaponID string
}

func (a OpportunityAttack) ActionTag() Tag { return TagOpportunityAttack }
func (a OpportunityAttack) Actor() string  { return a.ActorID }
func (a OpportunityAttack) sealedAction()  {}
