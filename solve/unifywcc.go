package solve

import (
	"github.com/TristanCacqueray/disco/internal/graph"
	"github.com/TristanCacqueray/disco/internal/log"
	"github.com/TristanCacqueray/disco/types"
)

// unifyWCC is the final stage: after SolveGraph every remaining graph
// component contains only variables, with no base atom left to pin it
// down. Collapsing each weakly connected component to a single
// representative eliminates these residual subtype chains, which would
// otherwise require the surface type system to carry qualified subtype
// predicates in inferred schemes.
func unifyWCC[B comparable](g *graph.Graph[types.Atom[B]], solved types.AtomSubstitution[B]) types.AtomSubstitution[B] {
	theta := types.IdentityAtomSubstitution[B]()

	for _, component := range g.WCC() {
		var vars []types.Var
		for _, a := range component {
			if a.IsVar() {
				if _, bound := solved.Lookup(a.Var()); !bound {
					vars = append(vars, a.Var())
				}
			}
		}
		if len(vars) < 2 {
			continue
		}
		rep := types.AtomVar[B](vars[0])
		for _, v := range vars[1:] {
			theta = theta.Extend(v, rep)
		}
	}

	log.DefaultLogger.Debug("unified residual chains", "section", "solve.unifywcc", "bindings", theta.Len())
	return theta
}
