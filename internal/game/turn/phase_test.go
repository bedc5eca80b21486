package turn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/combatcore/internal/game/turn"
)

func TestStart_AllResourcesAvailable(t *testing.T) {
	p := turn.Start("rogue-1", 30)
	assert.True(t, p.ActionAvailable)
	assert.True(t, p.BonusActionAvailable)
	assert.True(t, p.ReactionAvailable)
	assert.Equal(t, 30, p.MovementRemaining)
}

func TestConsume_Idempotent(t *testing.T) {
	p := turn.Start("rogue-1", 30)
	p = p.ConsumeAction().ConsumeAction()
	assert.False(t, p.ActionAvailable)
	p = p.ConsumeBonusAction().ConsumeBonusAction()
	assert.False(t, p.BonusActionAvailable)
	p = p.ConsumeReaction().ConsumeReaction()
	assert.False(t, p.ReactionAvailable)
}

func TestConsumeMovement_ClampsAtZero(t *testing.T) {
	p := turn.Start("rogue-1", 30)
	p = p.ConsumeMovement(20)
	assert.Equal(t, 10, p.MovementRemaining)
	p = p.ConsumeMovement(25)
	assert.Equal(t, 0, p.MovementRemaining)
}

func TestConsumeMovement_Property_NeverNegative(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		speed := rapid.IntRange(0, 120).Draw(rt, "speed")
		p := turn.Start("x", speed)
		for _, d := range rapid.SliceOfN(rapid.IntRange(0, 60), 0, 10).Draw(rt, "moves") {
			p = p.ConsumeMovement(d)
			assert.GreaterOrEqual(rt, p.MovementRemaining, 0)
		}
	})
}

func TestRestoreReaction(t *testing.T) {
	p := turn.Start("rogue-1", 30).ConsumeReaction()
	assert.False(t, p.ReactionAvailable)
	p = p.RestoreReaction()
	assert.True(t, p.ReactionAvailable)
}

func TestIsAvailable(t *testing.T) {
	p := turn.Start("rogue-1", 30)
	tests := []struct {
		kind turn.Kind
		want bool
	}{
		{turn.KindAction, true},
		{turn.KindBonusAction, true},
		{turn.KindReaction, true},
		{turn.KindMovement, true},
		{turn.KindFree, true},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, p.IsAvailable(tc.kind), "kind=%s", tc.kind)
	}

	spent := p.ConsumeAction().ConsumeBonusAction().ConsumeReaction().ConsumeMovement(30)
	assert.False(t, spent.IsAvailable(turn.KindAction))
	assert.False(t, spent.IsAvailable(turn.KindBonusAction))
	assert.False(t, spent.IsAvailable(turn.KindReaction))
	assert.False(t, spent.IsAvailable(turn.KindMovement))
	// Free actions ignore every other flag.
	assert.True(t, spent.IsAvailable(turn.KindFree))
}

func TestPhase_ValueSemantics(t *testing.T) {
	p := turn.Start("rogue-1", 30)
	_ = p.ConsumeAction()
	assert.True(t, p.ActionAvailable, "consume must not mutate the receiver")
}
