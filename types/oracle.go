package types

// Oracle supplies everything the solver needs from the caller but cannot
// know itself: arities and variances for constructors, the base-type
// lattice's order and sup/inf, plus three unification primitives.
// Concrete implementations normally embed StandardUnifier[B] to get
// Unify/Equate/WeakUnify for free, and only need to implement the four
// domain-specific methods.
type Oracle[B comparable] interface {
	// Arity returns the positional variance list for constructor c; its
	// length is c's arity.
	Arity(c string) []Variance

	// IsSub decides b1 ≤_B b2. Must be reflexive and transitive; behavior
	// is undefined if it is not.
	IsSub(b1, b2 B) bool

	// Sup returns the least upper bound of bs within the lattice, if one exists.
	Sup(bs []B) (B, bool)

	// Inf returns the greatest lower bound of bs within the lattice, if one exists.
	Inf(bs []B) (B, bool)

	// Unify is standard first-order unification for equational constraints.
	Unify(eqs []Equation[B]) (Substitution[B], bool)

	// Equate unifies an arbitrary list of types simultaneously.
	Equate(ts []Type[B]) (Substitution[B], bool)

	// WeakUnify is Unify after forgetting the Eq/Sub distinction; may share
	// an implementation with Unify.
	WeakUnify(eqs []Equation[B]) (Substitution[B], bool)
}
