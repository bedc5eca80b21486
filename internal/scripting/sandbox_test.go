package scripting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/combatcore/internal/scripting"
)

func TestEvaluateTrigger(t *testing.T) {
	ev := scripting.NewEvaluator(0)
	facts := scripting.TriggerFacts{
		ActorID:   "hero",
		SubjectID: "goblin-1",
		TargetID:  "goblin-1",
		Dist:      5,
		Event:     "move_committed",
	}

	tests := []struct {
		name    string
		script  string
		want    bool
		wantErr bool
	}{
		{
			name:   "distance predicate fires",
			script: "return dist <= 5",
			want:   true,
		},
		{
			name:   "distance predicate holds",
			script: "return dist <= 0",
			want:   false,
		},
		{
			name:   "subject match",
			script: `return subject == target and event == "move_committed"`,
			want:   true,
		},
		{
			name:   "string library available",
			script: `return string.sub(subject, 1, 6) == "goblin"`,
			want:   true,
		},
		{
			name:    "non-boolean return",
			script:  "return 42",
			wantErr: true,
		},
		{
			name:    "empty script",
			script:  "",
			wantErr: true,
		},
		{
			name:    "syntax error",
			script:  "return dist <=",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ev.EvaluateTrigger(tt.script, facts)
			if tt.wantErr {
				require.Error(t, err)
				assert.False(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckSyntax(t *testing.T) {
	ev := scripting.NewEvaluator(0)
	require.NoError(t, ev.CheckSyntax("return dist <= 5"))
	require.Error(t, ev.CheckSyntax("return dist <="))
	require.Error(t, ev.CheckSyntax(""))
}

func TestEvaluateTriggerInstructionLimit(t *testing.T) {
	ev := scripting.NewEvaluator(500)
	_, err := ev.EvaluateTrigger("while true do end", scripting.TriggerFacts{})
	require.Error(t, err)
}

func TestEvaluateTriggerSandboxStripsGlobals(t *testing.T) {
	ev := scripting.NewEvaluator(0)
	for _, script := range []string{
		"return dofile ~= nil",
		"return loadfile ~= nil",
		"return load ~= nil",
		"return require ~= nil",
	} {
		got, err := ev.EvaluateTrigger(script, scripting.TriggerFacts{})
		require.NoError(t, err, script)
		assert.False(t, got, script)
	}
}

func TestEvaluateTriggerIsolatedRuns(t *testing.T) {
	ev := scripting.NewEvaluator(0)
	_, err := ev.EvaluateTrigger("leak = 7 return true", scripting.TriggerFacts{})
	require.NoError(t, err)

	got, err := ev.EvaluateTrigger("return leak == nil", scripting.TriggerFacts{})
	require.NoError(t, err)
	assert.True(t, got)
}
