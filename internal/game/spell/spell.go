// Package spell holds the static spell catalogue. Definitions are data, not
// behavior: each Def describes how a casting resolves (attack roll or saving
// throw, damage expression, concentration) and the action package interprets
// it at resolution time.
package spell

import (
	"fmt"

	"github.com/cory-johannsen/combatcore/internal/game/dice"
)

// Shape selects how a spell resolves against each target.
type Shape string

const (
	// ShapeAttack spells roll d20 + the caster's spell attack bonus against AC.
	ShapeAttack Shape = "attack"
	// ShapeSave spells force each target to roll d20 + ability modifier
	// against the caster's save DC.
	ShapeSave Shape = "save"
)

// Def is the static definition of a spell, loaded from YAML.
type Def struct {
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	Level         int    `yaml:"level"` // 0 = cantrip
	Shape         Shape  `yaml:"shape"`
	SaveAbility   string `yaml:"save_ability,omitempty"` // e.g. "dex", "wis"; save shape only
	HalfOnSave    bool   `yaml:"half_on_save,omitempty"`
	Damage        string `yaml:"damage,omitempty"` // dice expression, e.g. "8d6"
	MaxTargets    int    `yaml:"max_targets"`      // 0 = single target
	Concentration bool   `yaml:"concentration"`
}

// Cantrip reports whether the spell is cast without consuming a slot.
func (d *Def) Cantrip() bool { return d.Level == 0 }

// DamageExpr parses the spell's damage expression.
//
// Precondition: Validate has accepted the definition.
func (d *Def) DamageExpr() (dice.Expression, error) {
	return dice.Parse(d.Damage)
}

// Validate checks the definition for internal consistency.
//
// Postcondition: a nil return means the action layer can resolve a casting of
// this spell without re-checking the definition.
func (d *Def) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("spell has no id")
	}
	if d.Level < 0 || d.Level > 9 {
		return fmt.Errorf("spell %s: level %d out of range", d.ID, d.Level)
	}
	switch d.Shape {
	case ShapeAttack:
		if d.SaveAbility != "" {
			return fmt.Errorf("spell %s: attack shape must not set save_ability", d.ID)
		}
	case ShapeSave:
		if d.SaveAbility == "" {
			return fmt.Errorf("spell %s: save shape requires save_ability", d.ID)
		}
	default:
		return fmt.Errorf("spell %s: unknown shape %q", d.ID, d.Shape)
	}
	if d.Damage != "" {
		if _, err := dice.Parse(d.Damage); err != nil {
			return fmt.Errorf("spell %s: damage expression: %w", d.ID, err)
		}
	}
	return nil
}
