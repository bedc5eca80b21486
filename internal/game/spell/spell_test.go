package spell_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/combatcore/internal/game/spell"
)

func writeSpell(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		def     spell.Def
		wantErr string
	}{
		{
			name: "valid attack spell",
			def:  spell.Def{ID: "fire-bolt", Name: "Fire Bolt", Level: 0, Shape: spell.ShapeAttack, Damage: "1d10"},
		},
		{
			name: "valid save spell",
			def:  spell.Def{ID: "fireball", Name: "Fireball", Level: 3, Shape: spell.ShapeSave, SaveAbility: "dex", HalfOnSave: true, Damage: "8d6", MaxTargets: 4},
		},
		{
			name: "valid concentration spell without damage",
			def:  spell.Def{ID: "hold-person", Name: "Hold Person", Level: 2, Shape: spell.ShapeSave, SaveAbility: "wis", Concentration: true},
		},
		{
			name:    "missing id",
			def:     spell.Def{Shape: spell.ShapeAttack},
			wantErr: "no id",
		},
		{
			name:    "level out of range",
			def:     spell.Def{ID: "wish-plus", Level: 10, Shape: spell.ShapeAttack},
			wantErr: "out of range",
		},
		{
			name:    "save shape without ability",
			def:     spell.Def{ID: "fireball", Level: 3, Shape: spell.ShapeSave},
			wantErr: "requires save_ability",
		},
		{
			name:    "attack shape with save ability",
			def:     spell.Def{ID: "fire-bolt", Shape: spell.ShapeAttack, SaveAbility: "dex"},
			wantErr: "must not set save_ability",
		},
		{
			name:    "unknown shape",
			def:     spell.Def{ID: "mystery", Shape: "aura"},
			wantErr: "unknown shape",
		},
		{
			name:    "bad damage expression",
			def:     spell.Def{ID: "fire-bolt", Shape: spell.ShapeAttack, Damage: "1dten"},
			wantErr: "damage expression",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.def.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCantrip(t *testing.T) {
	cantrip := spell.Def{ID: "fire-bolt", Level: 0}
	leveled := spell.Def{ID: "fireball", Level: 3}
	assert.True(t, cantrip.Cantrip())
	assert.False(t, leveled.Cantrip())
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeSpell(t, dir, "fire_bolt.yaml", `
id: fire-bolt
name: Fire Bolt
level: 0
shape: attack
damage: 1d10
max_targets: 0
concentration: false
`)
	writeSpell(t, dir, "hold_person.yaml", `
id: hold-person
name: Hold Person
level: 2
shape: save
save_ability: wis
max_targets: 0
concentration: true
`)
	writeSpell(t, dir, "notes.txt", "not a spell")

	reg, err := spell.LoadDirectory(dir)
	require.NoError(t, err)

	bolt, ok := reg.Get("fire-bolt")
	require.True(t, ok)
	assert.Equal(t, spell.ShapeAttack, bolt.Shape)
	assert.True(t, bolt.Cantrip())

	hold, ok := reg.Get("hold-person")
	require.True(t, ok)
	assert.True(t, hold.Concentration)
	assert.Equal(t, "wis", hold.SaveAbility)

	_, ok = reg.Get("notes")
	assert.False(t, ok)

	all := reg.All()
	require.Len(t, all, 2)
	assert.Equal(t, "fire-bolt", all[0].ID)
	assert.Equal(t, "hold-person", all[1].ID)
}

func TestLoadDirectoryUnknownField(t *testing.T) {
	dir := t.TempDir()
	writeSpell(t, dir, "bad.yaml", `
id: fire-bolt
shape: attack
school: evocation
`)
	_, err := spell.LoadDirectory(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}

func TestLoadDirectoryInvalidSpell(t *testing.T) {
	dir := t.TempDir()
	writeSpell(t, dir, "bad.yaml", `
id: fireball
level: 3
shape: save
`)
	_, err := spell.LoadDirectory(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validating")
}
