// Package dice provides the randomness abstraction and roll-result types
// for the combat rules core. All randomness in the engine flows through a
// Source so that an encounter replayed with the same seed reproduces every
// roll bit for bit.
package dice

import "fmt"

// RollResult holds the full audit trail for a single dice roll evaluation.
//
// Postcondition: Total() == sum(Dice) + Modifier.
type RollResult struct {
	Expression string // original expression string, e.g. "2d6+3"
	Dice       []int  // individual die results before modifier
	Modifier   int    // flat modifier (may be negative)
}

// Total returns the sum of all die results plus the modifier.
//
// Postcondition: return value == sum(r.Dice) + r.Modifier.
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String returns a human-readable audit string in the format:
//
//	"2d6+3 → [4 5] +3 = 12"
//
// Precondition: r.Expression is non-empty.
func (r RollResult) String() string {
	if r.Expression == "" {
		panic("dice: RollResult.String() precondition violated: Expression must be non-empty")
	}
	return fmt.Sprintf("%s → %v %+d = %d", r.Expression, r.Dice, r.Modifier, r.Total())
}

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Draw returns a uniformly distributed int in [min, max] inclusive.
// This is the primitive the rules core exposes to external collaborators.
//
// Precondition: src must be non-nil; max >= min.
func Draw(src Source, min, max int) int {
	if max < min {
		panic(fmt.Sprintf("dice: Draw called with max %d < min %d", max, min))
	}
	return min + src.Intn(max-min+1)
}

// D20 rolls a single twenty-sided die.
//
// Postcondition: return value is in [1, 20].
func D20(src Source) int {
	return src.Intn(20) + 1
}
