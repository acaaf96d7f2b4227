package solve

import (
	"github.com/TristanCacqueray/disco/internal/graph"
	"github.com/TristanCacqueray/disco/internal/log"
	"github.com/TristanCacqueray/disco/types"
)

// elimCycles is the fourth stage: collapse each strongly connected component
// of the subtype graph down to a single representative atom, unifying the
// SCC's members to justify the collapse. A cycle forces mutual subtyping,
// hence equality; an SCC mixing two unrelated base atoms has no such
// equality and fails the whole solve.
func elimCycles[B comparable](oracle types.Oracle[B], g *graph.Graph[types.Atom[B]]) (*graph.Graph[types.Atom[B]], types.Substitution[B], error) {
	sccs := g.SCC()
	theta := types.IdentitySubstitution[B]()
	representative := make(map[types.Atom[B]]types.Atom[B])

	for _, members := range sccs {
		rep := pickRepresentative(g, members)
		if len(members) == 1 {
			representative[members[0]] = rep
			continue
		}

		ts := make([]types.Type[B], 0, len(members))
		ts = append(ts, rep.AsType())
		for _, a := range members {
			if a == rep {
				continue
			}
			ts = append(ts, a.AsType())
		}

		if _, unified := oracle.Equate(ts); !unified {
			return nil, types.Substitution[B]{}, types.NoUnifyFromAtoms[B]("cycle members are not simultaneously unifiable", members)
		}

		// Equate may bind a variable representative to another member;
		// bind every other variable member to the representative instead,
		// so the condensed node's identity is the one that survives.
		for _, a := range members {
			representative[a] = rep
			if a != rep && a.IsVar() {
				theta = types.Compose(types.SingletonSubstitution[B](a.Var(), rep.AsType()), theta)
			}
		}
	}

	condensed := graph.MapGraph(g, func(a types.Atom[B]) types.Atom[B] { return representative[a] })
	log.DefaultLogger.Debug("eliminated cycles", "section", "solve.elimcycles", "sccs", len(sccs), "bindings", theta.Len())
	return condensed, theta, nil
}

// pickRepresentative chooses the SCC member that stands in for the whole
// component in the condensed graph. A base atom always wins over a
// variable: once a cycle forces a variable into equality with a base
// type, the condensed node must carry that base type so SolveGraph and
// UnifyWCC see it as resolved rather than mistaking it for an open
// variable. Within the same kind, ties break on earliest graph-insertion
// index, a simple deterministic tie-break; any deterministic choice
// suffices.
func pickRepresentative[B comparable](g *graph.Graph[types.Atom[B]], members []types.Atom[B]) types.Atom[B] {
	best := members[0]
	bestIdx, _ := g.Index(best)
	for _, a := range members[1:] {
		idx, _ := g.Index(a)
		switch {
		case a.IsBase() && best.IsVar():
			best, bestIdx = a, idx
		case a.IsVar() && best.IsBase():
			// best already carries a base atom, keep it regardless of index.
		case idx < bestIdx:
			best, bestIdx = a, idx
		}
	}
	return best
}
