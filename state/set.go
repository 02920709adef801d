package state

import (
	"fmt"
	"strings"
)

// Set holds at most one state per kind. It is comparable, so a batch sorter
// can group draw calls by Set with == or use it as a map key.
//
// The zero Set is empty.
type Set struct {
	states [numKinds]State
}

// NewSet builds a set from states. It fails with ErrDuplicateKind if two
// states share a kind and with ErrInvalidState for the zero State.
func NewSet(states ...State) (Set, error) {
	var s Set
	for _, st := range states {
		if !st.Valid() {
			return Set{}, ErrInvalidState
		}
		if cur := s.states[st.kind.index()]; cur.Valid() {
			return Set{}, fmt.Errorf("%w: %v and %v", ErrDuplicateKind, cur, st)
		}
		s.states[st.kind.index()] = st
	}
	return s, nil
}

// MustSet is like NewSet but panics on error. It is intended for sets built
// from constant arguments during setup.
func MustSet(states ...State) Set {
	s, err := NewSet(states...)
	if err != nil {
		panic(err)
	}
	return s
}

// With returns a copy of s with st in its kind's slot. The zero State is
// ignored.
func (s Set) With(st State) Set {
	if st.Valid() {
		s.states[st.kind.index()] = st
	}
	return s
}

// Without returns a copy of s with the slot of kind k cleared.
func (s Set) Without(k Kind) Set {
	if k.Valid() {
		s.states[k.index()] = State{}
	}
	return s
}

// Get returns the state of kind k.
func (s Set) Get(k Kind) (State, bool) {
	if !k.Valid() {
		return State{}, false
	}
	st := s.states[k.index()]
	return st, st.Valid()
}

// Len returns the number of states in the set.
func (s Set) Len() int {
	n := 0
	for _, st := range s.states {
		if st.Valid() {
			n++
		}
	}
	return n
}

// States returns the states in kind order.
func (s Set) States() []State {
	out := make([]State, 0, numKinds)
	for _, st := range s.states {
		if st.Valid() {
			out = append(out, st)
		}
	}
	return out
}

// Begin begins every state in kind order. It stops at the first error;
// states begun before it stay applied.
func (s Set) Begin(c *Context) error {
	for _, st := range s.states {
		if !st.Valid() {
			continue
		}
		if err := st.Begin(c); err != nil {
			return err
		}
	}
	return nil
}

// End ends every state in reverse kind order. It stops at the first error.
func (s Set) End(c *Context) error {
	for i := numKinds - 1; i >= 0; i-- {
		st := s.states[i]
		if !st.Valid() {
			continue
		}
		if err := st.End(c); err != nil {
			return err
		}
	}
	return nil
}

// Transition moves the context from set from to set to, ending and beginning
// only the kinds whose state differs. Changed states are ended in reverse
// kind order, then their replacements begun in kind order.
func Transition(from, to Set, c *Context) error {
	for i := numKinds - 1; i >= 0; i-- {
		old := from.states[i]
		if !old.Valid() || old == to.states[i] {
			continue
		}
		if err := old.End(c); err != nil {
			return err
		}
	}
	for i, st := range to.states {
		if !st.Valid() || st == from.states[i] {
			continue
		}
		if err := st.Begin(c); err != nil {
			return err
		}
	}
	return nil
}

// String returns the states joined in kind order.
func (s Set) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, st := range s.States() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(st.String())
	}
	sb.WriteByte('}')
	return sb.String()
}
