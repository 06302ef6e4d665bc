package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/srflab/srf311/internal/crypto/weier"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "validate and print the active parameter set",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := loadParams()
			if err != nil {
				return err
			}

			// constructing the curve runs the full validation path
			curve, err := weier.NewFromParams(params)
			if err != nil {
				return err
			}

			fmt.Printf("name:  %s\n", params.Name)
			fmt.Printf("p:     %s (%d bits)\n", params.P, curve.Field().BitLen())
			fmt.Printf("A:     %s\n", params.A)
			fmt.Printf("B:     %s\n", params.B)
			fmt.Printf("G:     (%s, %s)\n", params.Gx, params.Gy)
			fmt.Printf("valid: nonsingular, generator on curve\n")

			if params.Order != nil {
				fmt.Printf("published order: %s\n", params.Order)
			}
			if params.TraceOfFrobenius != nil {
				fmt.Printf("published trace: %s\n", params.TraceOfFrobenius)
			}

			fmt.Println("checkpoints:")
			for _, cp := range params.Checkpoints {
				if cp.Label != "" {
					fmt.Printf("  %s  (%s)\n", cp.K, cp.Label)
				} else {
					fmt.Printf("  %s\n", cp.K)
				}
			}
			return nil
		},
	}
}
