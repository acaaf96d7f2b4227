package types

import (
	"strings"

	"github.com/benbjohnson/immutable"
)

var varHasher = immutable.NewHasher(Var(0))

// Substitution is a finite, idempotent mapping from variable identities to
// types. Backed by a persistent map so that the many incremental
// substitutions produced by Simplify and SolveGraph can share structure
// instead of copying on every composition.
type Substitution[B comparable] struct {
	m *immutable.Map[Var, Type[B]]
}

// IdentitySubstitution is the empty substitution, the identity on every variable.
func IdentitySubstitution[B comparable]() Substitution[B] {
	return Substitution[B]{m: immutable.NewMap[Var, Type[B]](varHasher)}
}

// SingletonSubstitution maps v to t and nothing else.
func SingletonSubstitution[B comparable](v Var, t Type[B]) Substitution[B] {
	return IdentitySubstitution[B]().bind(v, t)
}

func (s Substitution[B]) bind(v Var, t Type[B]) Substitution[B] {
	m := s.m
	if m == nil {
		m = immutable.NewMap[Var, Type[B]](varHasher)
	}
	return Substitution[B]{m: m.Set(v, t)}
}

// Lookup returns the type v is bound to, if any.
func (s Substitution[B]) Lookup(v Var) (Type[B], bool) {
	if s.m == nil {
		return nil, false
	}
	return s.m.Get(v)
}

// Len is the number of variables in the substitution's domain.
func (s Substitution[B]) Len() int {
	if s.m == nil {
		return 0
	}
	return s.m.Len()
}

// Domain returns every variable bound by s.
func (s Substitution[B]) Domain() []Var {
	if s.m == nil {
		return nil
	}
	vars := make([]Var, 0, s.m.Len())
	it := s.m.Iterator()
	for !it.Done() {
		v, _, _ := it.Next()
		vars = append(vars, v)
	}
	return vars
}

// Apply substitutes every variable occurrence in t per s. Because s is
// idempotent (no variable in its range appears in its domain), one
// structural pass suffices: there is no need to re-apply to the result.
func (s Substitution[B]) Apply(t Type[B]) Type[B] {
	switch t := t.(type) {
	case VarType[B]:
		if repl, ok := s.Lookup(t.ID); ok {
			return repl
		}
		return t
	case AtomAsType[B]:
		return t
	case ConsType[B]:
		args := make([]Type[B], len(t.Args))
		for i, a := range t.Args {
			args[i] = s.Apply(a)
		}
		return ConsType[B]{Ctor: t.Ctor, Args: args}
	default:
		return t
	}
}

func (s Substitution[B]) String() string {
	if s.m == nil || s.m.Len() == 0 {
		return "{}"
	}
	var parts []string
	it := s.m.Iterator()
	for !it.Done() {
		v, t, _ := it.Next()
		parts = append(parts, v.String()+" := "+t.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Compose implements S2 ∘ S1: apply s1 first, then s2, with s2 applied
// to s1's range so that the composite is itself idempotent.
func Compose[B comparable](s2, s1 Substitution[B]) Substitution[B] {
	result := s2
	if s1.m != nil {
		it := s1.m.Iterator()
		for !it.Done() {
			v, t, _ := it.Next()
			result = result.bind(v, s2.Apply(t))
		}
	}
	return result
}

// AtomSubstitution is the specialized S'[Atom] form: variables map only to
// atoms, never to constructed types. SolveGraph and UnifyWCC both only
// ever need this narrower shape.
type AtomSubstitution[B comparable] struct {
	m *immutable.Map[Var, Atom[B]]
}

func IdentityAtomSubstitution[B comparable]() AtomSubstitution[B] {
	return AtomSubstitution[B]{m: immutable.NewMap[Var, Atom[B]](varHasher)}
}

func SingletonAtomSubstitution[B comparable](v Var, a Atom[B]) AtomSubstitution[B] {
	return IdentityAtomSubstitution[B]().bind(v, a)
}

func (s AtomSubstitution[B]) bind(v Var, a Atom[B]) AtomSubstitution[B] {
	m := s.m
	if m == nil {
		m = immutable.NewMap[Var, Atom[B]](varHasher)
	}
	return AtomSubstitution[B]{m: m.Set(v, a)}
}

func (s AtomSubstitution[B]) Lookup(v Var) (Atom[B], bool) {
	if s.m == nil {
		return Atom[B]{}, false
	}
	return s.m.Get(v)
}

// Domain returns every variable bound by s.
func (s AtomSubstitution[B]) Domain() []Var {
	if s.m == nil {
		return nil
	}
	vars := make([]Var, 0, s.m.Len())
	it := s.m.Iterator()
	for !it.Done() {
		v, _, _ := it.Next()
		vars = append(vars, v)
	}
	return vars
}

func (s AtomSubstitution[B]) Len() int {
	if s.m == nil {
		return 0
	}
	return s.m.Len()
}

// Extend adds a single binding on top of s. Used by SolveGraph, which
// assigns one variable at a time and never needs to re-propagate through
// already-assigned bindings (their range is always a base atom, never a
// variable, so nothing in the existing map can mention v).
func (s AtomSubstitution[B]) Extend(v Var, a Atom[B]) AtomSubstitution[B] {
	return s.bind(v, a)
}

// ApplyAtom substitutes a, if it is a bound variable.
func (s AtomSubstitution[B]) ApplyAtom(a Atom[B]) Atom[B] {
	if a.IsVar() {
		if repl, ok := s.Lookup(a.Var()); ok {
			return repl
		}
	}
	return a
}

// Embed wraps each atom in s's range as a Type, producing a general
// Substitution.
func (s AtomSubstitution[B]) Embed() Substitution[B] {
	result := IdentitySubstitution[B]()
	if s.m == nil {
		return result
	}
	it := s.m.Iterator()
	for !it.Done() {
		v, a, _ := it.Next()
		result = result.bind(v, a.AsType())
	}
	return result
}

func (s AtomSubstitution[B]) String() string {
	return s.Embed().String()
}
