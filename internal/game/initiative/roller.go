package initiative

import (
	"sort"

	"github.com/cory-johannsen/combatcore/internal/game/dice"
)

// RollOrder rolls d20 initiative for every creature in modifiers and returns
// the sorted order. Creatures are rolled in ascending creature-ID order so
// that a given seed always consumes the dice source identically regardless of
// map iteration order.
//
// Precondition: src must be non-nil.
// Postcondition: len(result) == len(modifiers); each Total == Roll + Modifier;
// result is sorted by Entry.Before; identical (seeded src, modifiers) inputs
// yield identical output.
func RollOrder(modifiers map[string]int, src dice.Source) []Entry {
	ids := make([]string, 0, len(modifiers))
	for id := range modifiers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		roll := dice.D20(src)
		mod := modifiers[id]
		entries = append(entries, Entry{
			CreatureID: id,
			Roll:       roll,
			Modifier:   mod,
			Total:      roll + mod,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Before(entries[j])
	})
	return entries
}
