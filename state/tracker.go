package state

import "fmt"

// Tracker records the open state of every kind and enforces the bracket
// discipline: at most one open state per kind, and End closes exactly the
// state that was begun.
//
// The zero Tracker is ready to use.
type Tracker struct {
	open [numKinds]State
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Active returns the open state of kind k.
func (t *Tracker) Active(k Kind) (State, bool) {
	if !k.Valid() {
		return State{}, false
	}
	s := t.open[k.index()]
	return s, s.Valid()
}

// Open returns the open states in kind order.
func (t *Tracker) Open() []State {
	var out []State
	for _, s := range t.open {
		if s.Valid() {
			out = append(out, s)
		}
	}
	return out
}

// Reset forgets every open bracket.
func (t *Tracker) Reset() {
	t.open = [numKinds]State{}
}

func (t *Tracker) begin(s State) error {
	if cur := t.open[s.kind.index()]; cur.Valid() {
		return fmt.Errorf("%w: begin %v while %v is open", ErrBracketViolation, s, cur)
	}
	t.open[s.kind.index()] = s
	return nil
}

func (t *Tracker) end(s State) error {
	cur := t.open[s.kind.index()]
	if !cur.Valid() {
		return fmt.Errorf("%w: end %v without begin", ErrBracketViolation, s)
	}
	if cur != s {
		return fmt.Errorf("%w: end %v while %v is open", ErrBracketViolation, s, cur)
	}
	t.open[s.kind.index()] = State{}
	return nil
}

// abort closes the bracket opened by a Begin whose backend calls failed.
func (t *Tracker) abort(s State) {
	if t.open[s.kind.index()] == s {
		t.open[s.kind.index()] = State{}
	}
}
