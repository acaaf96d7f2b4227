// Package types implements the data model underlying the solver: the
// inductive Type sum (Var/Atom/Cons), the Atom sum that unifies variables
// and base types for graph purposes, constraints, substitutions and the
// Oracle the solver consumes.
//
// The base-type lattice is a type parameter B (comparable) rather than an
// interface; the solver never needs to do anything with a base type
// except compare it for equality and hand it back to the caller-supplied
// Oracle, so there is no value in boxing it.
package types

import (
	"fmt"
	"strings"
)

// Variance controls whether subtyping recurses in the same direction
// (Co) or the reverse direction (Contra) through a constructor argument.
type Variance uint8

const (
	Co Variance = iota
	Contra
)

func (v Variance) String() string {
	if v == Contra {
		return "contra"
	}
	return "co"
}

// Var is a type variable's globally unique identity within one solve call.
type Var uint64

func (v Var) String() string { return fmt.Sprintf("'%d", uint64(v)) }

// Type is the inductive sum: Var(v) | Atom(a) | Cons(c, ts).
type Type[B comparable] interface {
	isType()
	String() string
}

// VarType is a type variable occurrence.
type VarType[B comparable] struct{ ID Var }

// AtomAsType is a base-type occurrence lifted back into Type, written
// Atom(a).
type AtomAsType[B comparable] struct{ Base B }

// ConsType is a constructor applied to ordered type arguments.
type ConsType[B comparable] struct {
	Ctor string
	Args []Type[B]
}

func (VarType[B]) isType()     {}
func (AtomAsType[B]) isType()  {}
func (ConsType[B]) isType()    {}

func (t VarType[B]) String() string { return t.ID.String() }
func (t AtomAsType[B]) String() string {
	return fmt.Sprintf("%v", t.Base)
}
func (t ConsType[B]) String() string {
	if len(t.Args) == 0 {
		return t.Ctor
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s[%s]", t.Ctor, strings.Join(args, ", "))
}

// Atom unifies Var(v) and base atoms under a single sum, so that
// ConstraintGraph nodes can carry either. Comparable by construction
// (Var and B are both comparable), so it can be used directly as a map
// key or go-set element without a Hash method.
type Atom[B comparable] struct {
	varID  Var
	base   B
	isVarF bool
}

// AtomVar builds an Atom wrapping a type variable.
func AtomVar[B comparable](v Var) Atom[B] { return Atom[B]{varID: v, isVarF: true} }

// AtomBase builds an Atom wrapping a base type.
func AtomBase[B comparable](b B) Atom[B] { return Atom[B]{base: b, isVarF: false} }

func (a Atom[B]) IsVar() bool  { return a.isVarF }
func (a Atom[B]) IsBase() bool { return !a.isVarF }

// Var panics if the atom does not wrap a variable; callers must check IsVar first.
func (a Atom[B]) Var() Var {
	if !a.isVarF {
		panic("types: Atom.Var called on a base atom")
	}
	return a.varID
}

// Base panics if the atom does not wrap a base type; callers must check IsBase first.
func (a Atom[B]) Base() B {
	if a.isVarF {
		panic("types: Atom.Base called on a variable atom")
	}
	return a.base
}

// AsType embeds the atom back into the Type sum.
func (a Atom[B]) AsType() Type[B] {
	if a.isVarF {
		return VarType[B]{ID: a.varID}
	}
	return AtomAsType[B]{Base: a.base}
}

func (a Atom[B]) String() string {
	if a.isVarF {
		return a.varID.String()
	}
	return fmt.Sprintf("%v", a.base)
}

// AsAtom extracts the Atom a Type wraps, if it is one (Var or Atom, not Cons).
func AsAtom[B comparable](t Type[B]) (Atom[B], bool) {
	switch t := t.(type) {
	case VarType[B]:
		return AtomVar[B](t.ID), true
	case AtomAsType[B]:
		return AtomBase(t.Base), true
	default:
		return Atom[B]{}, false
	}
}

// TypesEqual is syntactic (not up-to-substitution) structural equality.
func TypesEqual[B comparable](a, b Type[B]) bool {
	switch a := a.(type) {
	case VarType[B]:
		b, ok := b.(VarType[B])
		return ok && a.ID == b.ID
	case AtomAsType[B]:
		b, ok := b.(AtomAsType[B])
		return ok && a.Base == b.Base
	case ConsType[B]:
		b, ok := b.(ConsType[B])
		if !ok || a.Ctor != b.Ctor || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !TypesEqual[B](a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// FreeVars collects every Var occurring in t, in first-occurrence order.
func FreeVars[B comparable](t Type[B]) []Var {
	seen := make(map[Var]bool)
	var order []Var
	var walk func(Type[B])
	walk = func(t Type[B]) {
		switch t := t.(type) {
		case VarType[B]:
			if !seen[t.ID] {
				seen[t.ID] = true
				order = append(order, t.ID)
			}
		case ConsType[B]:
			for _, arg := range t.Args {
				walk(arg)
			}
		}
	}
	walk(t)
	return order
}
