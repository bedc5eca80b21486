package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/combatcore/internal/game/dice"
)

func TestParse(t *testing.T) {
	tests := []struct {
		expr string
		want dice.Expression
	}{
		{"d20", dice.Expression{Raw: "d20", Count: 1, Sides: 20}},
		{"2d6", dice.Expression{Raw: "2d6", Count: 2, Sides: 6}},
		{"2d6+3", dice.Expression{Raw: "2d6+3", Count: 2, Sides: 6, Modifier: 3}},
		{"4d8-2", dice.Expression{Raw: "4d8-2", Count: 4, Sides: 8, Modifier: -2}},
		{"4d6kh3", dice.Expression{Raw: "4d6kh3", Count: 4, Sides: 6, KeepHighest: 3}},
		{"4d6kh3+1", dice.Expression{Raw: "4d6kh3+1", Count: 4, Sides: 6, KeepHighest: 3, Modifier: 1}},
	}
	for _, tc := range tests {
		got, err := dice.Parse(tc.expr)
		require.NoError(t, err, "expr=%s", tc.expr)
		assert.Equal(t, tc.want, got, "expr=%s", tc.expr)
	}
}

func TestParse_Errors(t *testing.T) {
	for _, expr := range []string{"", "20", "0d6", "2d1", "2dx", "2d6kh9", "2d6+x"} {
		_, err := dice.Parse(expr)
		assert.Error(t, err, "expr=%q", expr)
	}
}

// seqSource returns a fixed sequence of values, cycling when exhausted.
type seqSource struct {
	vals []int
	i    int
}

func (s *seqSource) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	if v >= n {
		v = n - 1
	}
	return v
}

func TestRoll_KeepHighest(t *testing.T) {
	expr := dice.MustParse("4d6kh3")
	src := &seqSource{vals: []int{0, 3, 5, 2}} // dice: 1, 4, 6, 3
	result, err := dice.Roll(expr, src)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 4, 3}, result.Dice)
	assert.Equal(t, 13, result.Total())
}

func TestRollCrit_DoublesDiceNotModifier(t *testing.T) {
	expr := dice.MustParse("2d6+3")
	src := &seqSource{vals: []int{4, 2, 5, 0}} // dice: 5, 3, 6, 1
	result, err := dice.RollCrit(expr, src)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 3, 6, 1}, result.Dice)
	assert.Equal(t, 3, result.Modifier)
	assert.Equal(t, 18, result.Total())
}

func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 200; i++ {
		v := src.Intn(20)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 20)
	}
}

func TestDraw_InclusiveBounds(t *testing.T) {
	src := dice.NewSeededSource(42)
	for i := 0; i < 200; i++ {
		v := dice.Draw(src, 1, 20)
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 20)
	}
}

func TestSeededSource_Deterministic(t *testing.T) {
	a := dice.NewSeededSource(1234)
	b := dice.NewSeededSource(1234)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Intn(20), b.Intn(20), "call %d", i)
	}
}

func TestSeededSource_DistinctSeedsDiverge(t *testing.T) {
	a := dice.NewSeededSource(1)
	b := dice.NewSeededSource(2)
	same := true
	for i := 0; i < 50; i++ {
		if a.Intn(1000) != b.Intn(1000) {
			same = false
		}
	}
	assert.False(t, same)
}

func TestSeededSource_Property_SameSeedSameSequence(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		n := rapid.IntRange(2, 100).Draw(rt, "n")
		a := dice.NewSeededSource(seed)
		b := dice.NewSeededSource(seed)
		for i := 0; i < 20; i++ {
			assert.Equal(rt, a.Intn(n), b.Intn(n))
		}
	})
}

func TestRollResult_Total(t *testing.T) {
	r := dice.RollResult{Expression: "2d6+3", Dice: []int{4, 5}, Modifier: 3}
	assert.Equal(t, 12, r.Total())
	assert.Equal(t, "2d6+3 → [4 5] +3 = 12", r.String())
}

func TestRoll_Property_TotalMatchesDiceSum(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 10).Draw(rt, "count")
		sides := rapid.IntRange(2, 20).Draw(rt, "sides")
		seed := rapid.Uint64().Draw(rt, "seed")
		expr := dice.Expression{Raw: "x", Count: count, Sides: sides}
		result, err := dice.Roll(expr, dice.NewSeededSource(seed))
		require.NoError(rt, err)
		sum := 0
		for _, d := range result.Dice {
			assert.GreaterOrEqual(rt, d, 1)
			assert.LessOrEqual(rt, d, sides)
			sum += d
		}
		assert.Equal(rt, sum, result.Total())
	})
}
