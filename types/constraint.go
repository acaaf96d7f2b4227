package types

import "fmt"

// ConstraintKind distinguishes an equality from a subtype constraint.
type ConstraintKind uint8

const (
	KindEq ConstraintKind = iota
	KindSub
)

// Constraint is Eq(t1, t2) or Sub(t1, t2), written t1 <: t2.
type Constraint[B comparable] struct {
	Kind     ConstraintKind
	Lhs, Rhs Type[B]
}

// Eq builds an equality constraint t1 = t2.
func Eq[B comparable](t1, t2 Type[B]) Constraint[B] {
	return Constraint[B]{Kind: KindEq, Lhs: t1, Rhs: t2}
}

// Sub builds a subtype constraint t1 <: t2.
func Sub[B comparable](t1, t2 Type[B]) Constraint[B] {
	return Constraint[B]{Kind: KindSub, Lhs: t1, Rhs: t2}
}

func (c Constraint[B]) String() string {
	op := "="
	if c.Kind == KindSub {
		op = "<:"
	}
	return fmt.Sprintf("%s %s %s", c.Lhs, op, c.Rhs)
}

// AsEquation forgets the Eq/Sub distinction: weak unification treats
// every constraint as an equation.
func (c Constraint[B]) AsEquation() Equation[B] {
	return Equation[B]{Lhs: c.Lhs, Rhs: c.Rhs}
}

// ApplySubst substitutes both sides of the constraint.
func (c Constraint[B]) ApplySubst(s Substitution[B]) Constraint[B] {
	return Constraint[B]{Kind: c.Kind, Lhs: s.Apply(c.Lhs), Rhs: s.Apply(c.Rhs)}
}

// Equation is an unordered-in-spirit equality pair, consumed by Unify/WeakUnify.
type Equation[B comparable] struct {
	Lhs, Rhs Type[B]
}

func (e Equation[B]) String() string { return fmt.Sprintf("%s = %s", e.Lhs, e.Rhs) }

// AtomPair is an atomic subtype constraint a1 <: a2 surviving Simplify,
// ready for BuildGraph's projection into a graph edge.
type AtomPair[B comparable] struct {
	Lo, Hi Atom[B]
}

func (p AtomPair[B]) String() string { return fmt.Sprintf("%s <: %s", p.Lo, p.Hi) }
