package types

// unifyCore is standard first-order unification with an occurs-check,
// parameterized over how two base atoms are judged equal. Equality proper
// (Unify, Equate) requires literal base-type equality; weak unification
// only needs to know that two positions have the *same shape*: any two
// base atoms are weakly compatible, since it is exactly the job of later
// stages to decide which base types may relate by subtyping.
func unifyCore[B comparable](eqs []Equation[B], baseCompatible func(a, b B) bool) (Substitution[B], bool) {
	acc := IdentitySubstitution[B]()
	worklist := append([]Equation[B]{}, eqs...)
	for len(worklist) > 0 {
		eq := worklist[0]
		worklist = worklist[1:]
		l := acc.Apply(eq.Lhs)
		r := acc.Apply(eq.Rhs)

		if TypesEqual[B](l, r) {
			continue
		}

		if lv, ok := l.(VarType[B]); ok {
			if occursIn[B](lv.ID, r) {
				return Substitution[B]{}, false
			}
			step := SingletonSubstitution[B](lv.ID, r)
			acc = Compose(step, acc)
			continue
		}
		if rv, ok := r.(VarType[B]); ok {
			if occursIn[B](rv.ID, l) {
				return Substitution[B]{}, false
			}
			step := SingletonSubstitution[B](rv.ID, l)
			acc = Compose(step, acc)
			continue
		}

		la, lIsAtom := l.(AtomAsType[B])
		ra, rIsAtom := r.(AtomAsType[B])
		if lIsAtom && rIsAtom {
			if baseCompatible(la.Base, ra.Base) {
				continue
			}
			return Substitution[B]{}, false
		}

		lc, lIsCons := l.(ConsType[B])
		rc, rIsCons := r.(ConsType[B])
		if lIsCons && rIsCons {
			if lc.Ctor != rc.Ctor || len(lc.Args) != len(rc.Args) {
				return Substitution[B]{}, false
			}
			for i := range lc.Args {
				worklist = append(worklist, Equation[B]{Lhs: lc.Args[i], Rhs: rc.Args[i]})
			}
			continue
		}

		// Different head shapes (atom vs cons, etc): a genuine clash.
		return Substitution[B]{}, false
	}
	return acc, true
}

func occursIn[B comparable](v Var, t Type[B]) bool {
	switch t := t.(type) {
	case VarType[B]:
		return t.ID == v
	case ConsType[B]:
		for _, arg := range t.Args {
			if occursIn[B](v, arg) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Unify performs standard first-order unification requiring literal
// base-type equality, used by Simplify's Eq rule.
func Unify[B comparable](eqs []Equation[B]) (Substitution[B], bool) {
	return unifyCore(eqs, func(a, b B) bool { return a == b })
}

// WeakUnify ignores which specific base types are involved, only
// checking structural (constructor) compatibility.
func WeakUnify[B comparable](eqs []Equation[B]) (Substitution[B], bool) {
	return unifyCore(eqs, func(a, b B) bool { return true })
}

// Equate unifies an arbitrary list of types simultaneously, used by
// ElimCycles to collapse one strongly connected component's worth of
// atoms into one.
func Equate[B comparable](ts []Type[B]) (Substitution[B], bool) {
	if len(ts) == 0 {
		return IdentitySubstitution[B](), true
	}
	eqs := make([]Equation[B], 0, len(ts)-1)
	for i := 1; i < len(ts); i++ {
		eqs = append(eqs, Equation[B]{Lhs: ts[0], Rhs: ts[i]})
	}
	return Unify(eqs)
}

// StandardUnifier implements Oracle's Unify/Equate/WeakUnify methods in
// terms of the functions above. Concrete Oracle implementations embed it
// so they only need to supply the domain-specific Arity/IsSub/Sup/Inf.
type StandardUnifier[B comparable] struct{}

func (StandardUnifier[B]) Unify(eqs []Equation[B]) (Substitution[B], bool) {
	return Unify(eqs)
}

func (StandardUnifier[B]) Equate(ts []Type[B]) (Substitution[B], bool) {
	return Equate(ts)
}

func (StandardUnifier[B]) WeakUnify(eqs []Equation[B]) (Substitution[B], bool) {
	return WeakUnify(eqs)
}
