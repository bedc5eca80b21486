// Package scripting provides a sandboxed GopherLua environment for evaluating
// readied-action trigger predicates. It has no dependency on game domain
// packages; trigger facts are injected as plain globals per evaluation.
package scripting

import (
	"context"
	"fmt"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the maximum number of Lua opcodes allowed per
// predicate evaluation when no override is configured. Trigger predicates are
// tiny; the limit exists so a malformed script cannot stall turn resolution.
const DefaultInstructionLimit = 10_000

// countingContext is a context.Context that cancels itself after Done() has
// been called limit times. GopherLua's mainLoopWithContext calls Done() once
// per opcode, making this an exact instruction-count limit.
type countingContext struct {
	context.Context
	cancel    context.CancelFunc
	remaining *atomic.Int64
}

// Done returns the underlying cancellation channel. Each call decrements the
// remaining counter; when it reaches zero the cancel function fires,
// terminating the Lua VM on the next opcode boundary.
func (c *countingContext) Done() <-chan struct{} {
	if c.remaining.Add(-1) <= 0 {
		c.cancel()
	}
	return c.Context.Done()
}

// newCountingContext returns a context that cancels after limit calls to Done().
// Precondition: limit > 0.
func newCountingContext(limit int) (context.Context, context.CancelFunc) {
	base, cancel := context.WithCancel(context.Background())
	rem := &atomic.Int64{}
	rem.Store(int64(limit))
	return &countingContext{
		Context:   base,
		cancel:    cancel,
		remaining: rem,
	}, cancel
}

// newSandboxedState creates a GopherLua LState with only the safe stdlib
// loaded (base, table, string, math), dangerous globals removed, and execution
// limited to at most instLimit opcodes.
//
// Precondition: instLimit >= 0; 0 uses DefaultInstructionLimit.
// Postcondition: Returns a non-nil LState the caller must Close.
func newSandboxedState(instLimit int) *lua.LState {
	limit := instLimit
	if limit <= 0 {
		limit = DefaultInstructionLimit
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Strip dangerous globals left by OpenBase.
	for _, name := range []string{"dofile", "loadfile", "load", "collectgarbage", "require"} {
		L.SetGlobal(name, lua.LNil)
	}

	ctx, _ := newCountingContext(limit) //nolint:govet // cancel fires automatically when limit is reached
	L.SetContext(ctx)

	return L
}

// TriggerFacts are the observations a readied-action predicate may inspect,
// exposed to the script as globals.
type TriggerFacts struct {
	// ActorID is the creature holding the readied action.
	ActorID string
	// SubjectID is the creature whose behavior is being tested as a trigger.
	SubjectID string
	// TargetID is the readied action's intended target, if any.
	TargetID string
	// Dist is the distance in feet between actor and subject.
	Dist int
	// Event is the discriminator of the event being tested, e.g. "move_committed".
	Event string
}

// Evaluator runs trigger predicates with a fixed instruction budget.
type Evaluator struct {
	instLimit int
}

// NewEvaluator creates an Evaluator. instLimit <= 0 uses
// DefaultInstructionLimit.
func NewEvaluator(instLimit int) *Evaluator {
	return &Evaluator{instLimit: instLimit}
}

// CheckSyntax compiles script in the sandbox without running it, so a
// malformed predicate is rejected when the action is proposed rather than
// when its trigger first fires.
func (e *Evaluator) CheckSyntax(script string) error {
	if script == "" {
		return fmt.Errorf("empty trigger script")
	}

	L := newSandboxedState(e.instLimit)
	defer L.Close()

	if _, err := L.LoadString(script); err != nil {
		return fmt.Errorf("compiling trigger script: %w", err)
	}
	return nil
}

// EvaluateTrigger runs script against facts and returns its verdict. The
// script must return a boolean; returning anything else, erroring, or running
// past the instruction budget yields an error and a false verdict.
//
// Precondition: script must be non-empty.
// Postcondition: a nil error means the boolean verdict is authoritative.
func (e *Evaluator) EvaluateTrigger(script string, facts TriggerFacts) (bool, error) {
	if script == "" {
		return false, fmt.Errorf("empty trigger script")
	}

	L := newSandboxedState(e.instLimit)
	defer L.Close()

	L.SetGlobal("actor", lua.LString(facts.ActorID))
	L.SetGlobal("subject", lua.LString(facts.SubjectID))
	L.SetGlobal("target", lua.LString(facts.TargetID))
	L.SetGlobal("dist", lua.LNumber(facts.Dist))
	L.SetGlobal("event", lua.LString(facts.Event))

	if err := L.DoString(script); err != nil {
		return false, fmt.Errorf("running trigger script: %w", err)
	}

	ret := L.Get(-1)
	verdict, ok := ret.(lua.LBool)
	if !ok {
		return false, fmt.Errorf("trigger script returned %s, want boolean", ret.Type())
	}
	return bool(verdict), nil
}
