package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/srflab/srf311/internal/crypto/weier"
	"github.com/srflab/srf311/internal/lattice"
)

func newLatticeCmd() *cobra.Command {
	var (
		size  int
		ticks int
		every int
	)

	cmd := &cobra.Command{
		Use:   "lattice",
		Short: "evolve the 3D lattice automaton over the curve",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := loadParams()
			if err != nil {
				return err
			}
			curve, err := weier.NewFromParams(params)
			if err != nil {
				return err
			}

			l, err := lattice.New(curve, size)
			if err != nil {
				return err
			}

			fmt.Printf("lattice %d^3 = %d cells, generator seeded at center\n",
				size, size*size*size)
			return l.Run(ticks, every, func(m lattice.Measurement) {
				fmt.Printf("TICK %06d | active = %4d | mean x/p = %.6f\n",
					m.Tick, m.Active, m.MeanXRatio)
			})
		},
	}

	cmd.Flags().IntVar(&size, "size", 8, "lattice edge length")
	cmd.Flags().IntVar(&ticks, "ticks", 50, "number of ticks to run")
	cmd.Flags().IntVar(&every, "every", 10, "report a measurement every N ticks")
	return cmd
}
