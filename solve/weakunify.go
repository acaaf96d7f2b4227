// Package solve implements the six-stage constraint-solving pipeline:
// WeakUnify, Simplify, BuildGraph, ElimCycles, SolveGraph and UnifyWCC,
// composed by SolveConstraints.
package solve

import (
	"github.com/TristanCacqueray/disco/internal/log"
	"github.com/TristanCacqueray/disco/types"
)

// weakUnify is stage 1: forget the Eq/Sub distinction and attempt a
// single first-order unification over every constraint treated as an
// equation. A failure here is a fatal witness that no subtyping solution
// can exist either, so it short-circuits the whole pipeline.
func weakUnify[B comparable](oracle types.Oracle[B], cs []types.Constraint[B]) error {
	eqs := make([]types.Equation[B], len(cs))
	for i, c := range cs {
		eqs[i] = c.AsEquation()
	}
	if _, ok := oracle.WeakUnify(eqs); !ok {
		log.DefaultLogger.Debug("no weak unifier", "section", "solve.weakunify", "constraints", len(cs))
		// Report the constraint whose addition first makes the prefix fail.
		for i := range cs {
			if _, ok := oracle.WeakUnify(eqs[:i+1]); !ok {
				return types.NewNoWeakUnifierError(cs[i])
			}
		}
		return types.NewNoWeakUnifierError(types.Constraint[B]{})
	}
	return nil
}
