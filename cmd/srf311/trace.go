package main

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/srflab/srf311/internal/crypto/weier"
	"github.com/srflab/srf311/internal/trace"
)

type traceOptions struct {
	checkpoints string
	jsonOut     bool
}

func addTraceFlags(fs *pflag.FlagSet, opts *traceOptions) {
	fs.StringVar(&opts.checkpoints, "checkpoints", "",
		"comma-separated ascending scalars, overriding the parameter set (decimal or 0x-hex)")
	fs.BoolVar(&opts.jsonOut, "json", false, "emit JSON lines instead of human text")
}

func newTraceCmd() *cobra.Command {
	opts := &traceOptions{}
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "compute k*G at each checkpoint scalar",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts)
		},
	}
	addTraceFlags(cmd.Flags(), opts)
	return cmd
}

// tracePoint is the JSON form of one checkpoint report.
type tracePoint struct {
	K     string `json:"k"`
	X     string `json:"x,omitempty"`
	Y     string `json:"y,omitempty"`
	Inf   bool   `json:"inf"`
	Label string `json:"label,omitempty"`
}

func runTrace(opts *traceOptions) error {
	params, err := loadParams()
	if err != nil {
		return err
	}

	curve, err := weier.NewFromParams(params)
	if err != nil {
		return err
	}

	checkpoints := params.Scalars()
	if opts.checkpoints != "" {
		checkpoints, err = parseScalars(opts.checkpoints)
		if err != nil {
			return err
		}
	}

	enc := json.NewEncoder(os.Stdout)
	if !opts.jsonOut {
		fmt.Printf("Curve %s: y^2 = x^3 + A x + B over F_p (p: %d bits)\n",
			params.Name, curve.Field().BitLen())
		fmt.Printf("G = (%s, %s)\n\n", params.Gx, truncate(params.Gy.String()))
	}

	driver := trace.New(curve)
	return driver.Run(checkpoints, func(r trace.Report) error {
		label := params.Label(r.K)
		if opts.jsonOut {
			return enc.Encode(reportJSON(r, label))
		}
		return reportHuman(os.Stdout, r, label)
	})
}

func reportJSON(r trace.Report, label string) tracePoint {
	tp := tracePoint{K: r.K.String(), Inf: r.Point.IsInfinity(), Label: label}
	if !tp.Inf {
		tp.X = r.Point.X.String()
		tp.Y = r.Point.Y.String()
	}
	return tp
}

func reportHuman(w *os.File, r trace.Report, label string) error {
	x := "O"
	if !r.Point.IsInfinity() {
		x = truncate(r.Point.X.String())
	}
	if label != "" {
		_, err := fmt.Fprintf(w, "T+%s | x = %s | %s\n", r.K, x, label)
		return err
	}
	_, err := fmt.Fprintf(w, "T+%s | x = %s\n", r.K, x)
	return err
}

// truncate shortens long decimals for display: first and last ten digits.
func truncate(s string) string {
	if len(s) <= 24 {
		return s
	}
	return s[:10] + "..." + s[len(s)-10:]
}

// parseScalars parses a comma-separated checkpoint list.
func parseScalars(s string) ([]*big.Int, error) {
	parts := strings.Split(s, ",")
	ks := make([]*big.Int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		base := 10
		digits := part
		if strings.HasPrefix(part, "0x") || strings.HasPrefix(part, "0X") {
			digits, base = part[2:], 16
		}
		k, ok := new(big.Int).SetString(digits, base)
		if !ok {
			return nil, fmt.Errorf("invalid checkpoint scalar %q", part)
		}
		ks = append(ks, k)
	}
	return ks, nil
}
