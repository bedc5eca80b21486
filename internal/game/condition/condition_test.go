package condition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/combatcore/internal/game/condition"
	"github.com/cory-johannsen/combatcore/internal/game/turn"
)

func TestBlocks_Matrix(t *testing.T) {
	tests := []struct {
		cond     condition.Condition
		action   bool
		reaction bool
		movement bool
	}{
		{condition.Stunned, true, true, true},
		{condition.Incapacitated, true, true, false},
		{condition.Paralyzed, true, true, true},
		{condition.Unconscious, true, true, true},
		{condition.Restrained, false, false, true},
		{condition.Prone, false, false, false},
		{condition.Poisoned, false, false, false},
		{condition.Blinded, false, false, false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.action, condition.Blocks(tc.cond, turn.KindAction), "%s/action", tc.cond)
		assert.Equal(t, tc.reaction, condition.Blocks(tc.cond, turn.KindReaction), "%s/reaction", tc.cond)
		assert.Equal(t, tc.movement, condition.Blocks(tc.cond, turn.KindMovement), "%s/movement", tc.cond)
		// Free actions are never blocked.
		assert.False(t, condition.Blocks(tc.cond, turn.KindFree), "%s/free", tc.cond)
	}
}

func TestBlocks_BonusActionFollowsAction(t *testing.T) {
	assert.True(t, condition.Blocks(condition.Stunned, turn.KindBonusAction))
	assert.False(t, condition.Blocks(condition.Restrained, turn.KindBonusAction))
}

func TestBlockingCondition_None(t *testing.T) {
	active := condition.NewSet(condition.Prone, condition.Poisoned)
	_, ok := condition.BlockingCondition(active, turn.KindAction)
	assert.False(t, ok)
}

func TestBlockingCondition_MostSevereFirst(t *testing.T) {
	active := condition.NewSet(condition.Stunned, condition.Unconscious, condition.Restrained)
	got, ok := condition.BlockingCondition(active, turn.KindAction)
	require.True(t, ok)
	assert.Equal(t, condition.Unconscious, got)

	got, ok = condition.BlockingCondition(active, turn.KindMovement)
	require.True(t, ok)
	assert.Equal(t, condition.Unconscious, got)
}

func TestBlockingCondition_RestrainedOnlyBlocksMovement(t *testing.T) {
	active := condition.NewSet(condition.Restrained)
	_, ok := condition.BlockingCondition(active, turn.KindAction)
	assert.False(t, ok)
	_, ok = condition.BlockingCondition(active, turn.KindReaction)
	assert.False(t, ok)
	got, ok := condition.BlockingCondition(active, turn.KindMovement)
	require.True(t, ok)
	assert.Equal(t, condition.Restrained, got)
}

func TestForcesZeroSpeed(t *testing.T) {
	assert.True(t, condition.ForcesZeroSpeed(condition.NewSet(condition.Restrained)))
	assert.True(t, condition.ForcesZeroSpeed(condition.NewSet(condition.Paralyzed)))
	assert.False(t, condition.ForcesZeroSpeed(condition.NewSet(condition.Prone, condition.Blinded)))
	assert.False(t, condition.ForcesZeroSpeed(condition.NewSet()))
}
