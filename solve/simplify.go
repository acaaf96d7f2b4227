package solve

import (
	"github.com/TristanCacqueray/disco/internal/log"
	"github.com/TristanCacqueray/disco/types"
	"github.com/TristanCacqueray/disco/util"
)

// simplify is the second stage: a fixpoint worklist that unifies equalities,
// structurally decomposes subtype constraints between constructed types,
// and expands a bare variable standing opposite a constructor into a
// fresh constructor shape of its own. What remains once no rule applies
// is an atomic subtype pair, returned alongside the composed equality
// substitution θ_simp.
func simplify[B comparable](oracle types.Oracle[B], fresher *types.Fresher, cs []types.Constraint[B]) ([]types.AtomPair[B], types.Substitution[B], error) {
	reserveFreeVars(fresher, cs)

	var worklist util.Stack[types.Constraint[B]]
	for _, c := range cs {
		worklist.Push(c)
	}

	theta := types.IdentitySubstitution[B]()
	var atomic []types.AtomPair[B]

	// propagate composes step into θ_simp and applies it to every
	// constraint still pending, plus to every atom pair already classified
	// as atomic. A pair that stops being atomic because one of its sides
	// just got expanded into a constructor is pushed back onto the
	// worklist rather than kept.
	propagate := func(step types.Substitution[B]) {
		theta = types.Compose(step, theta)

		pending := worklist.PopAll()
		for _, c := range pending {
			worklist.Push(c.ApplySubst(step))
		}

		kept := atomic[:0]
		for _, p := range atomic {
			lhs := step.Apply(p.Lo.AsType())
			rhs := step.Apply(p.Hi.AsType())
			lo, lok := types.AsAtom[B](lhs)
			hi, hok := types.AsAtom[B](rhs)
			if lok && hok {
				kept = append(kept, types.AtomPair[B]{Lo: lo, Hi: hi})
				continue
			}
			worklist.Push(types.Sub[B](lhs, rhs))
		}
		atomic = kept
	}

	for {
		c, ok := worklist.Pop()
		if !ok {
			break
		}

		if c.Kind == types.KindEq {
			step, unified := oracle.Unify([]types.Equation[B]{c.AsEquation()})
			if !unified {
				return nil, types.Substitution[B]{}, types.NoUnifyFromConstraint[B]("equality is not unifiable", c)
			}
			propagate(step)
			continue
		}

		lc, lIsCons := c.Lhs.(types.ConsType[B])
		rc, rIsCons := c.Rhs.(types.ConsType[B])

		switch {
		case lIsCons && rIsCons:
			if lc.Ctor != rc.Ctor || len(lc.Args) != len(rc.Args) {
				return nil, types.Substitution[B]{}, types.NoUnifyFromConstraint[B]("constructor mismatch", c)
			}
			variances := oracle.Arity(lc.Ctor)
			for i := range lc.Args {
				v := types.Co
				if i < len(variances) {
					v = variances[i]
				}
				if v == types.Contra {
					worklist.Push(types.Sub[B](rc.Args[i], lc.Args[i]))
				} else {
					worklist.Push(types.Sub[B](lc.Args[i], rc.Args[i]))
				}
			}

		case rIsCons:
			lv, isVar := c.Lhs.(types.VarType[B])
			if !isVar {
				return nil, types.Substitution[B]{}, types.NoUnifyFromConstraint[B]("base type cannot be a subtype of a constructor", c)
			}
			fresh := freshConsShape[B](fresher, rc.Ctor, len(rc.Args))
			step := types.SingletonSubstitution[B](lv.ID, fresh)
			propagate(step)
			worklist.Push(c.ApplySubst(step))

		case lIsCons:
			rv, isVar := c.Rhs.(types.VarType[B])
			if !isVar {
				return nil, types.Substitution[B]{}, types.NoUnifyFromConstraint[B]("constructor cannot be a subtype of a base type", c)
			}
			fresh := freshConsShape[B](fresher, lc.Ctor, len(lc.Args))
			step := types.SingletonSubstitution[B](rv.ID, fresh)
			propagate(step)
			worklist.Push(c.ApplySubst(step))

		default:
			lo, lok := types.AsAtom[B](c.Lhs)
			hi, hok := types.AsAtom[B](c.Rhs)
			if !lok || !hok {
				return nil, types.Substitution[B]{}, types.NoUnifyFromConstraint[B]("malformed subtype constraint", c)
			}
			if lo.IsBase() && hi.IsBase() {
				if oracle.IsSub(lo.Base(), hi.Base()) {
					continue
				}
				return nil, types.Substitution[B]{}, types.NoUnifyFromConstraint[B]("base types are not related by subtyping", c)
			}
			atomic = append(atomic, types.AtomPair[B]{Lo: lo, Hi: hi})
		}
	}

	log.DefaultLogger.Debug("simplified to atomic form", "section", "solve.simplify", "atomic", len(atomic), "bindings", theta.Len())
	return atomic, theta, nil
}

// freshConsShape builds Cons(ctor, [β_1, ..., β_n]) with n brand new
// variables, used to expand a bare variable standing opposite a
// constructor under the Var/Constructor and Constructor/Var rules.
func freshConsShape[B comparable](fresher *types.Fresher, ctor string, arity int) types.Type[B] {
	fresh := fresher.FreshN(arity)
	args := make([]types.Type[B], arity)
	for i, v := range fresh {
		args[i] = types.VarType[B]{ID: v}
	}
	return types.ConsType[B]{Ctor: ctor, Args: args}
}

// reserveFreeVars scans the initial constraint set so fresh names minted
// during simplification never collide with a variable already in use.
func reserveFreeVars[B comparable](fresher *types.Fresher, cs []types.Constraint[B]) {
	var vars []types.Var
	for _, c := range cs {
		vars = append(vars, types.FreeVars[B](c.Lhs)...)
		vars = append(vars, types.FreeVars[B](c.Rhs)...)
	}
	fresher.ReserveAll(vars)
}
