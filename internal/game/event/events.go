package event

import (
	"github.com/cory-johannsen/combatcore/internal/game/initiative"
)

// --- Initiative-affecting events ---

// EncounterStarted opens a session: the rolled order, the surprise set, and
// the dice seed the encounter was keyed with. Replaying it alone yields the
// initial RoundState.
type EncounterStarted struct {
	Meta
	Order     []initiative.Entry `json:"order"`
	Surprised []string           `json:"surprised,omitempty"`
	Seed      uint64             `json:"seed"`
}

// EventKind returns KindEncounterStarted.
func (e EncounterStarted) EventKind() Kind { return KindEncounterStarted }

func (e EncounterStarted) applyRound(initiative.RoundState) (initiative.RoundState, error) {
	surprised := make(map[string]struct{}, len(e.Surprised))
	for _, id := range e.Surprised {
		surprised[id] = struct{}{}
	}
	return initiative.InitializeWithSurprise(e.Order, surprised)
}

// RoundStarted marks an explicit round boundary.
type RoundStarted struct {
	Meta
	Round int `json:"round"`
}

// EventKind returns KindRoundStarted.
func (e RoundStarted) EventKind() Kind { return KindRoundStarted }

func (e RoundStarted) applyRound(s initiative.RoundState) (initiative.RoundState, error) {
	return initiative.SetRound(s, e.Round), nil
}

// TurnStarted records which creature's turn began. Starting a creature's turn
// restores its reaction.
type TurnStarted struct {
	Meta
	CreatureID string `json:"creature_id"`
	Round      int    `json:"round"`
}

// EventKind returns KindTurnStarted.
func (e TurnStarted) EventKind() Kind { return KindTurnStarted }

func (e TurnStarted) applyRound(s initiative.RoundState) (initiative.RoundState, error) {
	return initiative.StartTurnFor(s, e.CreatureID)
}

// TurnEnded records that the active creature's turn finished; applying it
// advances the turn pointer, wrapping and incrementing the round past the
// last slot.
type TurnEnded struct {
	Meta
	CreatureID string `json:"creature_id"`
}

// EventKind returns KindTurnEnded.
func (e TurnEnded) EventKind() Kind { return KindTurnEnded }

func (e TurnEnded) applyRound(s initiative.RoundState) (initiative.RoundState, error) {
	return initiative.AdvanceTurn(s)
}

// ReactionUsed records that a creature spent its reaction outside its own turn.
type ReactionUsed struct {
	Meta
	CreatureID string `json:"creature_id"`
	Trigger    string `json:"trigger,omitempty"`
}

// EventKind returns KindReactionUsed.
func (e ReactionUsed) EventKind() Kind { return KindReactionUsed }

func (e ReactionUsed) applyRound(s initiative.RoundState) (initiative.RoundState, error) {
	return initiative.MarkReactionUsed(s, e.CreatureID), nil
}

// TurnDelayed records a creature voluntarily leaving the order to act later.
type TurnDelayed struct {
	Meta
	CreatureID string `json:"creature_id"`
}

// EventKind returns KindTurnDelayed.
func (e TurnDelayed) EventKind() Kind { return KindTurnDelayed }

func (e TurnDelayed) applyRound(s initiative.RoundState) (initiative.RoundState, error) {
	return initiative.DelayTurn(s, e.CreatureID)
}

// DelayedTurnResumed records a delaying creature rejoining at a new total.
type DelayedTurnResumed struct {
	Meta
	CreatureID string `json:"creature_id"`
	NewTotal   int    `json:"new_total"`
}

// EventKind returns KindDelayedTurnResumed.
func (e DelayedTurnResumed) EventKind() Kind { return KindDelayedTurnResumed }

func (e DelayedTurnResumed) applyRound(s initiative.RoundState) (initiative.RoundState, error) {
	return initiative.ResumeDelayedTurn(s, e.CreatureID, e.NewTotal)
}

// CreatureAddedToCombat records a combatant joining mid-encounter.
type CreatureAddedToCombat struct {
	Meta
	Entry initiative.Entry `json:"entry"`
}

// EventKind returns KindCreatureAdded.
func (e CreatureAddedToCombat) EventKind() Kind { return KindCreatureAdded }

func (e CreatureAddedToCombat) applyRound(s initiative.RoundState) (initiative.RoundState, error) {
	return initiative.AddCreature(s, e.Entry)
}

// CreatureRemovedFromCombat records a combatant leaving the order.
type CreatureRemovedFromCombat struct {
	Meta
	CreatureID string `json:"creature_id"`
	Reason     string `json:"reason,omitempty"`
}

// EventKind returns KindCreatureRemoved.
func (e CreatureRemovedFromCombat) EventKind() Kind { return KindCreatureRemoved }

func (e CreatureRemovedFromCombat) applyRound(s initiative.RoundState) (initiative.RoundState, error) {
	return initiative.RemoveCreature(s, e.CreatureID)
}

// --- Action outcome events (no-ops for the initiative fold) ---

// TargetOutcome is the per-target result inside a SpellCast event.
type TargetOutcome struct {
	TargetID string `json:"target_id"`
	// AttackRoll is the raw d20 for attack-shaped spells; 0 for save shapes.
	AttackRoll int `json:"attack_roll,omitempty"`
	// SaveRoll is the target's saving throw for save-shaped spells.
	SaveRoll int  `json:"save_roll,omitempty"`
	Hit      bool `json:"hit"`
	Saved    bool `json:"saved,omitempty"`
	Damage   int  `json:"damage"`
	NewHP    int  `json:"new_hp"`
}

// AttackResolved carries the full audit of one attack: the raw roll, the
// modifiers, the target's AC, and the damage applied.
type AttackResolved struct {
	Meta
	AttackerID  string `json:"attacker_id"`
	TargetID    string `json:"target_id"`
	WeaponID    string `json:"weapon_id,omitempty"`
	AttackRoll  int    `json:"attack_roll"`
	AttackTotal int    `json:"attack_total"`
	TargetAC    int    `json:"target_ac"`
	Hit         bool   `json:"hit"`
	Critical    bool   `json:"critical"`
	DamageRoll  []int  `json:"damage_roll,omitempty"`
	Damage      int    `json:"damage"`
	NewHP       int    `json:"new_hp"`
}

// EventKind returns KindAttackResolved.
func (e AttackResolved) EventKind() Kind { return KindAttackResolved }

// CreatureDefeated records a combatant dropping to zero HP and who did it.
type CreatureDefeated struct {
	Meta
	CreatureID string `json:"creature_id"`
	DefeatedBy string `json:"defeated_by"`
}

// EventKind returns KindCreatureDefeated.
func (e CreatureDefeated) EventKind() Kind { return KindCreatureDefeated }

// MoveCommitted records a validated move: the full path, the cost spent, and
// the movement budget left afterwards.
type MoveCommitted struct {
	Meta
	CreatureID        string  `json:"creature_id"`
	Path              []Coord `json:"path"`
	Cost              int     `json:"cost"`
	MovementRemaining int     `json:"movement_remaining"`
}

// Coord is a grid square in the wire schema.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// EventKind returns KindMoveCommitted.
func (e MoveCommitted) EventKind() Kind { return KindMoveCommitted }

// SpellCast aggregates one casting: slot spent, concentration effects, and
// the per-target outcome list.
type SpellCast struct {
	Meta
	CasterID      string          `json:"caster_id"`
	SpellID       string          `json:"spell_id"`
	SlotLevel     int             `json:"slot_level"`
	SlotConsumed  bool            `json:"slot_consumed"`
	Concentration bool            `json:"concentration"`
	BrokePrior    bool            `json:"broke_prior,omitempty"`
	PriorSpellID  string          `json:"prior_spell_id,omitempty"`
	Outcomes      []TargetOutcome `json:"outcomes"`
}

// EventKind returns KindSpellCast.
func (e SpellCast) EventKind() Kind { return KindSpellCast }

// DodgeTaken records a creature taking the Dodge action.
type DodgeTaken struct {
	Meta
	CreatureID string `json:"creature_id"`
}

// EventKind returns KindDodgeTaken.
func (e DodgeTaken) EventKind() Kind { return KindDodgeTaken }

// DashTaken records a creature converting its action into extra movement.
type DashTaken struct {
	Meta
	CreatureID string `json:"creature_id"`
	// ExtraMovement is the feet of movement gained, equal to the creature's
	// speed at resolution time.
	ExtraMovement int `json:"extra_movement"`
}

// EventKind returns KindDashTaken.
func (e DashTaken) EventKind() Kind { return KindDashTaken }

// Disengaged records a creature taking the Disengage action.
type Disengaged struct {
	Meta
	CreatureID string `json:"creature_id"`
}

// EventKind returns KindDisengaged.
func (e Disengaged) EventKind() Kind { return KindDisengaged }

// HelpGiven records a creature aiding another.
type HelpGiven struct {
	Meta
	CreatureID string `json:"creature_id"`
	TargetID   string `json:"target_id"`
}

// EventKind returns KindHelpGiven.
func (e HelpGiven) EventKind() Kind { return KindHelpGiven }

// ActionReadied records a prepared action and the trigger that releases it.
// TriggerScript, when present, is a sandboxed Lua predicate.
type ActionReadied struct {
	Meta
	CreatureID     string `json:"creature_id"`
	Trigger        string `json:"trigger"`
	TriggerScript  string `json:"trigger_script,omitempty"`
	PreparedAction string `json:"prepared_action"`
	TargetID       string `json:"target_id,omitempty"`
}

// EventKind returns KindActionReadied.
func (e ActionReadied) EventKind() Kind { return KindActionReadied }

// OpportunityAttackTriggered records that a move provoked a threatened
// creature whose reaction was available. Resolution is a follow-up
// OpportunityAttack action.
type OpportunityAttackTriggered struct {
	Meta
	MoverID    string `json:"mover_id"`
	ThreatID   string `json:"threat_id"`
	FromSquare Coord  `json:"from_square"`
}

// EventKind returns KindOpportunityAttack.
func (e OpportunityAttackTriggered) EventKind() Kind { return KindOpportunityAttack }

// Unknown preserves records whose kind this build does not recognise. The
// schema is additive-only: newer writers may append kinds an older reader
// replays as no-ops.
type Unknown struct {
	Meta
	RawKind Kind   `json:"-"`
	Payload []byte `json:"-"`
}

// EventKind returns the original wire discriminator.
func (e Unknown) EventKind() Kind { return e.RawKind }
