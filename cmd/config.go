package cmd

import (
	"fmt"

	"github.com/TristanCacqueray/disco/examples/natlattice"
	"github.com/TristanCacqueray/disco/types"
)

// typeSpec is the YAML shape of a Type[natlattice.Base]: exactly one of
// Var, Atom or Cons must be set.
type typeSpec struct {
	Var  *uint64    `yaml:"var,omitempty"`
	Atom *string    `yaml:"atom,omitempty"`
	Cons string     `yaml:"cons,omitempty"`
	Args []typeSpec `yaml:"args,omitempty"`
}

func (t typeSpec) toType() (types.Type[natlattice.Base], error) {
	switch {
	case t.Var != nil:
		return types.VarType[natlattice.Base]{ID: types.Var(*t.Var)}, nil
	case t.Atom != nil:
		return types.AtomAsType[natlattice.Base]{Base: natlattice.Base(*t.Atom)}, nil
	case t.Cons != "":
		args := make([]types.Type[natlattice.Base], len(t.Args))
		for i, a := range t.Args {
			arg, err := a.toType()
			if err != nil {
				return nil, fmt.Errorf("arg %d of %s: %w", i, t.Cons, err)
			}
			args[i] = arg
		}
		return types.ConsType[natlattice.Base]{Ctor: t.Cons, Args: args}, nil
	default:
		return nil, fmt.Errorf("type spec must set one of var, atom or cons")
	}
}

// constraintSpec is the YAML shape of one input constraint.
type constraintSpec struct {
	Kind string   `yaml:"kind"`
	Lhs  typeSpec `yaml:"lhs"`
	Rhs  typeSpec `yaml:"rhs"`
}

func (c constraintSpec) toConstraint() (types.Constraint[natlattice.Base], error) {
	lhs, err := c.Lhs.toType()
	if err != nil {
		return types.Constraint[natlattice.Base]{}, fmt.Errorf("lhs: %w", err)
	}
	rhs, err := c.Rhs.toType()
	if err != nil {
		return types.Constraint[natlattice.Base]{}, fmt.Errorf("rhs: %w", err)
	}
	switch c.Kind {
	case "eq", "":
		return types.Eq[natlattice.Base](lhs, rhs), nil
	case "sub":
		return types.Sub[natlattice.Base](lhs, rhs), nil
	default:
		return types.Constraint[natlattice.Base]{}, fmt.Errorf("unknown constraint kind %q, want eq or sub", c.Kind)
	}
}

// fileSpec is the top-level YAML document the solve subcommand reads.
type fileSpec struct {
	Constraints []constraintSpec `yaml:"constraints"`
}

func (f fileSpec) toConstraints() ([]types.Constraint[natlattice.Base], error) {
	cs := make([]types.Constraint[natlattice.Base], len(f.Constraints))
	for i, c := range f.Constraints {
		constraint, err := c.toConstraint()
		if err != nil {
			return nil, fmt.Errorf("constraint %d: %w", i, err)
		}
		cs[i] = constraint
	}
	return cs, nil
}
