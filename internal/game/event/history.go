package event

// History is a pair of immutable stacks supporting undo/redo over the applied
// event log. Undo moves the newest applied event onto the undone stack; redo
// moves it back, restoring the original event value, never a re-synthesised
// one. Appending a new event discards the undone stack, since the timeline
// has diverged.
//
// History values are immutable; every operation returns a new History.
type History struct {
	applied []Event
	undone  []Event
}

// NewHistory creates a History seeded with an already-applied log.
func NewHistory(applied []Event) History {
	cp := make([]Event, len(applied))
	copy(cp, applied)
	return History{applied: cp}
}

// Applied returns a copy of the applied event log in order.
func (h History) Applied() []Event {
	cp := make([]Event, len(h.applied))
	copy(cp, h.applied)
	return cp
}

// CanUndo reports whether there is an applied event to undo.
func (h History) CanUndo() bool { return len(h.applied) > 0 }

// CanRedo reports whether there is an undone event to restore.
func (h History) CanRedo() bool { return len(h.undone) > 0 }

// Append records a newly applied event and clears the undone stack.
//
// Postcondition: ev is the newest applied event; CanRedo() is false.
func (h History) Append(ev Event) History {
	applied := make([]Event, len(h.applied), len(h.applied)+1)
	copy(applied, h.applied)
	return History{applied: append(applied, ev)}
}

// Undo pops the newest applied event onto the undone stack.
//
// Postcondition: when ok, the popped event is the one returned and the new
// History reflects both stacks; when CanUndo() is false, ok is false and the
// History is returned unchanged.
func (h History) Undo() (History, Event, bool) {
	if len(h.applied) == 0 {
		return h, nil, false
	}
	ev := h.applied[len(h.applied)-1]
	applied := make([]Event, len(h.applied)-1)
	copy(applied, h.applied[:len(h.applied)-1])
	undone := make([]Event, len(h.undone), len(h.undone)+1)
	copy(undone, h.undone)
	return History{applied: applied, undone: append(undone, ev)}, ev, true
}

// Redo pops the newest undone event back onto the applied stack. The restored
// event is the original value that was undone, not a copy rebuilt from state.
//
// Postcondition: when ok, the returned event is identical to the one Undo
// removed; when CanRedo() is false, ok is false and the History is unchanged.
func (h History) Redo() (History, Event, bool) {
	if len(h.undone) == 0 {
		return h, nil, false
	}
	ev := h.undone[len(h.undone)-1]
	undone := make([]Event, len(h.undone)-1)
	copy(undone, h.undone[:len(h.undone)-1])
	applied := make([]Event, len(h.applied), len(h.applied)+1)
	copy(applied, h.applied)
	return History{applied: append(applied, ev), undone: undone}, ev, true
}
