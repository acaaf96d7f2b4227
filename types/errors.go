package types

import (
	"fmt"

	"github.com/pkg/errors"
)

// NoWeakUnifierError means the equational relaxation of the input
// constraints has no unifier, so no subtyping solution can exist either.
// Carries the constraint that triggered the failure for diagnostics.
type NoWeakUnifierError[B comparable] struct {
	Constraint Constraint[B]
	cause      error
}

func NewNoWeakUnifierError[B comparable](c Constraint[B]) *NoWeakUnifierError[B] {
	return &NoWeakUnifierError[B]{Constraint: c, cause: errors.New("no weak unifier")}
}

func (e *NoWeakUnifierError[B]) Error() string {
	return fmt.Sprintf("no weak unifier: offending constraint %s", e.Constraint)
}

func (e *NoWeakUnifierError[B]) Unwrap() error { return e.cause }

// NoUnifyError is raised by Simplify, ElimCycles or SolveGraph. Exactly
// one of Constraint (a Simplify-stage failure) or Atoms (an ElimCycles or
// SolveGraph failure) is populated, distinguished by Reason.
type NoUnifyError[B comparable] struct {
	Reason     string
	Constraint *Constraint[B]
	Atoms      []Atom[B]
	cause      error
}

func newNoUnifyError[B comparable](reason string, cause error) *NoUnifyError[B] {
	if cause == nil {
		cause = errors.New(reason)
	}
	return &NoUnifyError[B]{Reason: reason, cause: cause}
}

// NoUnifyFromConstraint builds a NoUnifyError tied to the offending constraint.
func NoUnifyFromConstraint[B comparable](reason string, c Constraint[B]) *NoUnifyError[B] {
	err := newNoUnifyError[B](reason, errors.Errorf("%s: %s", reason, c))
	err.Constraint = &c
	return err
}

// NoUnifyFromAtoms builds a NoUnifyError tied to an SCC or bound set that
// could not be reconciled.
func NoUnifyFromAtoms[B comparable](reason string, atoms []Atom[B]) *NoUnifyError[B] {
	err := newNoUnifyError[B](reason, errors.Errorf("%s: %v", reason, atoms))
	err.Atoms = atoms
	return err
}

func (e *NoUnifyError[B]) Error() string {
	if e.Constraint != nil {
		return fmt.Sprintf("no unifier: %s (%s)", e.Reason, *e.Constraint)
	}
	if len(e.Atoms) > 0 {
		return fmt.Sprintf("no unifier: %s (atoms: %v)", e.Reason, e.Atoms)
	}
	return fmt.Sprintf("no unifier: %s", e.Reason)
}

func (e *NoUnifyError[B]) Unwrap() error { return e.cause }
