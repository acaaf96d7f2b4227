package solve

import (
	"github.com/TristanCacqueray/disco/internal/graph"
	"github.com/TristanCacqueray/disco/internal/log"
	"github.com/TristanCacqueray/disco/types"
	"github.com/hashicorp/go-set/v3"
)

// solveGraph is the fifth stage: iteratively assign base types to
// variables using their predecessors (lower bounds) and successors (upper
// bounds) in the acyclic graph ElimCycles produced. Assignment is
// strictly sequential: resolving two transitively related candidates in
// parallel can produce inconsistent choices (consider a chain a <: b <: c
// where a and c get assigned independently), so each pass picks one
// variable, assigns it, and propagates the resulting binding into every
// other variable's bound sets before continuing.
func solveGraph[B comparable](oracle types.Oracle[B], g *graph.Graph[types.Atom[B]]) (types.AtomSubstitution[B], error) {
	var order []types.Var
	succs := make(map[types.Var]*set.Set[types.Atom[B]])
	preds := make(map[types.Var]*set.Set[types.Atom[B]])

	for _, n := range g.Nodes() {
		if !n.IsVar() {
			continue
		}
		v := n.Var()
		order = append(order, v)
		succs[v] = set.From(g.Successors(n))
		preds[v] = set.From(g.Predecessors(n))
	}

	theta := types.IdentityAtomSubstitution[B]()

	for {
		idx, v, found := firstCandidate(order, succs, preds)
		if !found {
			break
		}

		lower := baseAtoms(preds[v])
		upper := baseAtoms(succs[v])

		var assigned B
		switch {
		case len(lower) == 0 && len(upper) > 0:
			b, ok := oracle.Inf(upper)
			if !ok {
				return types.AtomSubstitution[B]{}, types.NoUnifyFromAtoms[B]("no lower bound satisfies every upper bound", baseAtomList[B](upper))
			}
			assigned = b
		case len(lower) > 0 && len(upper) == 0:
			b, ok := oracle.Sup(lower)
			if !ok {
				return types.AtomSubstitution[B]{}, types.NoUnifyFromAtoms[B]("no upper bound satisfies every lower bound", baseAtomList[B](lower))
			}
			assigned = b
		default:
			ub, ubOk := oracle.Inf(upper)
			lb, lbOk := oracle.Sup(lower)
			if !ubOk || !lbOk {
				return types.AtomSubstitution[B]{}, types.NoUnifyFromAtoms[B]("incompatible bounds", append(baseAtomList[B](lower), baseAtomList[B](upper)...))
			}
			if !oracle.IsSub(lb, ub) {
				return types.AtomSubstitution[B]{}, types.NoUnifyFromAtoms[B]("lower bound does not satisfy upper bound", []types.Atom[B]{types.AtomBase(lb), types.AtomBase(ub)})
			}
			assigned = lb
		}

		assignedAtom := types.AtomBase[B](assigned)
		theta = theta.Extend(v, assignedAtom)
		log.DefaultLogger.Debug("assigned variable", "section", "solve.solvegraph", "var", v, "to", assignedAtom)

		varAtom := types.AtomVar[B](v)
		for _, other := range order {
			if other == v {
				continue
			}
			replaceInPlace(succs[other], varAtom, assignedAtom)
			replaceInPlace(preds[other], varAtom, assignedAtom)
		}
		delete(succs, v)
		delete(preds, v)
		order = append(order[:idx], order[idx+1:]...)
	}

	return theta, nil
}

// firstCandidate picks the earliest variable (in graph insertion order)
// whose successor or predecessor set contains at least one base atom.
// Iteration order must be deterministic for reproducible output; the
// order slice preserves graph insertion order rather than map order.
func firstCandidate[B comparable](order []types.Var, succs, preds map[types.Var]*set.Set[types.Atom[B]]) (int, types.Var, bool) {
	for i, v := range order {
		if hasBase(succs[v]) || hasBase(preds[v]) {
			return i, v, true
		}
	}
	return 0, 0, false
}

func hasBase[B comparable](s *set.Set[types.Atom[B]]) bool {
	if s == nil {
		return false
	}
	for a := range s.Items() {
		if a.IsBase() {
			return true
		}
	}
	return false
}

func baseAtoms[B comparable](s *set.Set[types.Atom[B]]) []B {
	if s == nil {
		return nil
	}
	var bs []B
	for a := range s.Items() {
		if a.IsBase() {
			bs = append(bs, a.Base())
		}
	}
	return bs
}

func baseAtomList[B comparable](bs []B) []types.Atom[B] {
	atoms := make([]types.Atom[B], len(bs))
	for i, b := range bs {
		atoms[i] = types.AtomBase(b)
	}
	return atoms
}

// replaceInPlace swaps every occurrence of old for replacement within s,
// used to propagate a freshly assigned variable into every other
// variable's bound set without rebuilding the whole graph.
func replaceInPlace[B comparable](s *set.Set[types.Atom[B]], old, replacement types.Atom[B]) {
	if s == nil || !s.Contains(old) {
		return
	}
	s.Remove(old)
	s.Insert(replacement)
}
