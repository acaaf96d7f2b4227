package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/TristanCacqueray/disco/examples/natlattice"
	"github.com/TristanCacqueray/disco/internal/log"
	"github.com/TristanCacqueray/disco/solve"
	"github.com/TristanCacqueray/disco/types"
	"github.com/TristanCacqueray/disco/util"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var SolveCmd = &cobra.Command{
	Use:          "solve ./constraints.yaml",
	Short:        "Solve a constraint set against the built-in example lattice",
	RunE:         runSolve,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var logLevel *int

func init() {
	logLevel = SolveCmd.Flags().IntP("log-level", "l", int(slog.LevelWarn), "log level")
}

func runSolve(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*logLevel))

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("could not read %s: %w", args[0], err)
	}

	var spec fileSpec
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return fmt.Errorf("could not parse %s: %w", args[0], err)
	}

	cs, err := spec.toConstraints()
	if err != nil {
		return fmt.Errorf("could not build constraints: %w", err)
	}

	theta, err := solve.SolveConstraints[natlattice.Base](natlattice.Lattice{}, cs)
	if err != nil {
		return reportSolveError(err)
	}

	bindings := util.MapIter(slices.Values(theta.Domain()), func(v types.Var) util.Pair[types.Var, types.Type[natlattice.Base]] {
		bound, _ := theta.Lookup(v)
		return util.NewPair(v, bound)
	})
	for binding := range bindings {
		fmt.Fprintf(cmd.OutOrStdout(), "%s := %s\n", binding.Fst, binding.Snd)
	}
	return nil
}

func reportSolveError(err error) error {
	var noWeak *types.NoWeakUnifierError[natlattice.Base]
	var noUnify *types.NoUnifyError[natlattice.Base]
	switch {
	case errors.As(err, &noWeak):
		return fmt.Errorf("no weak unifier: %w", err)
	case errors.As(err, &noUnify):
		return fmt.Errorf("no unifier: %w", err)
	default:
		return err
	}
}
