package types_test

import (
	"testing"

	"github.com/TristanCacqueray/disco/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func v(n uint64) types.Type[string]  { return types.VarType[string]{ID: types.Var(n)} }
func a(b string) types.Type[string]  { return types.AtomAsType[string]{Base: b} }
func c(ctor string, args ...types.Type[string]) types.Type[string] {
	return types.ConsType[string]{Ctor: ctor, Args: args}
}

func TestUnifyTrivial(t *testing.T) {
	s, ok := types.Unify([]types.Equation[string]{{Lhs: v(1), Rhs: a("Nat")}})
	require.True(t, ok)
	bound, present := s.Lookup(types.Var(1))
	require.True(t, present)
	assert.True(t, types.TypesEqual(bound, a("Nat")))
}

func TestUnifyOccursCheck(t *testing.T) {
	_, ok := types.Unify([]types.Equation[string]{{Lhs: v(1), Rhs: c("List", v(1))}})
	assert.False(t, ok)
}

func TestUnifyBaseMismatchFails(t *testing.T) {
	_, ok := types.Unify([]types.Equation[string]{{Lhs: a("Nat"), Rhs: a("Bool")}})
	assert.False(t, ok)
}

func TestWeakUnifyIgnoresBaseIdentity(t *testing.T) {
	_, ok := types.WeakUnify([]types.Equation[string]{{Lhs: a("Nat"), Rhs: a("Bool")}})
	assert.True(t, ok, "weak unification only checks shape, not which base type")
}

func TestWeakUnifyStillRejectsShapeMismatch(t *testing.T) {
	_, ok := types.WeakUnify([]types.Equation[string]{{Lhs: a("Nat"), Rhs: c("List", v(1))}})
	assert.False(t, ok)
}

func TestUnifyConstructorRecursion(t *testing.T) {
	s, ok := types.Unify([]types.Equation[string]{
		{Lhs: c("->", v(1), v(2)), Rhs: c("->", a("Nat"), a("Bool"))},
	})
	require.True(t, ok)
	bound1, _ := s.Lookup(types.Var(1))
	bound2, _ := s.Lookup(types.Var(2))
	assert.True(t, types.TypesEqual(bound1, a("Nat")))
	assert.True(t, types.TypesEqual(bound2, a("Bool")))
}

func TestEquateUnifiesAllSimultaneously(t *testing.T) {
	s, ok := types.Equate([]types.Type[string]{v(1), v(2), a("Nat")})
	require.True(t, ok)
	for _, vid := range []types.Var{1, 2} {
		bound, present := s.Lookup(vid)
		require.True(t, present)
		assert.True(t, types.TypesEqual(bound, a("Nat")))
	}
}

func TestEquateRejectsDistinctBases(t *testing.T) {
	_, ok := types.Equate([]types.Type[string]{a("Nat"), a("Bool")})
	assert.False(t, ok)
}

func TestSubstitutionComposeAppliesRightmostFirst(t *testing.T) {
	s1 := types.SingletonSubstitution(types.Var(1), v(2))
	s2 := types.SingletonSubstitution(types.Var(2), a("Nat"))
	composed := types.Compose(s2, s1)

	bound, present := composed.Lookup(types.Var(1))
	require.True(t, present)
	assert.True(t, types.TypesEqual(bound, a("Nat")))
}

func TestSubstitutionIdempotent(t *testing.T) {
	s := types.SingletonSubstitution(types.Var(1), a("Nat"))
	once := s.Apply(c("List", v(1)))
	twice := s.Apply(once)
	assert.True(t, types.TypesEqual(once, twice))
}
