package solve

import (
	"github.com/TristanCacqueray/disco/internal/log"
	"github.com/TristanCacqueray/disco/types"
)

// SolveConstraints runs the full pipeline (WeakUnify, Simplify,
// BuildGraph, ElimCycles, SolveGraph, UnifyWCC) in order, short-circuiting
// on the first stage that fails. The returned substitution is
// θ_sol ∘ θ_cyc ∘ θ_simp, total over every variable the pipeline touched
// and implicitly the identity elsewhere.
//
// oracle supplies the base-type lattice's structure (arity, isSub, sup,
// inf) and the three unification primitives the pipeline needs; see
// types.Oracle and types.StandardUnifier for the usual way to build one.
func SolveConstraints[B comparable](oracle types.Oracle[B], cs []types.Constraint[B]) (types.Substitution[B], error) {
	log.DefaultLogger.Debug("solving constraints", "section", "solve", "count", len(cs))

	if err := weakUnify(oracle, cs); err != nil {
		return types.Substitution[B]{}, err
	}

	fresher := types.NewFresher()
	atomic, thetaSimp, err := simplify(oracle, fresher, cs)
	if err != nil {
		return types.Substitution[B]{}, err
	}

	g := buildGraph(atomic)

	condensed, thetaCyc, err := elimCycles(oracle, g)
	if err != nil {
		return types.Substitution[B]{}, err
	}

	thetaSolAtoms, err := solveGraph(oracle, condensed)
	if err != nil {
		return types.Substitution[B]{}, err
	}

	thetaWCC := unifyWCC(condensed, thetaSolAtoms)
	for _, v := range thetaWCC.Domain() {
		a, _ := thetaWCC.Lookup(v)
		thetaSolAtoms = thetaSolAtoms.Extend(v, a)
	}

	result := types.Compose(thetaSolAtoms.Embed(), types.Compose(thetaCyc, thetaSimp))
	log.DefaultLogger.Debug("solved", "section", "solve", "bindings", result.Len())
	return result, nil
}
