// srf311 explores the arithmetic of a single fixed elliptic curve over a
// large prime field: it traces scalar multiples of the generator at
// checkpoint scalars and can evolve a 3D lattice automaton driven by the
// group law.
package main

import (
	"github.com/spf13/cobra"

	"github.com/srflab/srf311/internal/config"
	"github.com/srflab/srf311/pkg/srf"
)

var paramsPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "srf311",
		Short:         "trace scalar multiples on the srf311t1 curve",
		Long:          "srf311 computes deterministic traces of k*G on a fixed short Weierstrass curve over a ~311-bit prime field, with checkpoint milestones, plus a lattice automaton driven by the same group law.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&paramsPath, "params", "",
		"YAML parameter file (default: the built-in srf311t1 set)")

	root.AddCommand(newTraceCmd())
	root.AddCommand(newLatticeCmd())
	root.AddCommand(newInfoCmd())
	return root
}

// loadParams returns the configured parameter set, defaulting to the
// built-in srf311t1 constants.
func loadParams() (*srf.Params, error) {
	if paramsPath == "" {
		return srf.SRF311T1(), nil
	}
	return config.Load(paramsPath)
}
