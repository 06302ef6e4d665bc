// Package trace drives the deterministic checkpoint trace: given a curve
// and an ascending list of scalar checkpoints, it computes k*G for each
// checkpoint and hands the resulting point to the caller in order.
//
// The driver reports coordinates and nothing else; milestone labels and
// any interpretation of the numbers belong to the presentation layer.
package trace

import (
	"fmt"
	"math/big"

	"github.com/rs/zerolog"

	"github.com/srflab/srf311/internal/crypto/weier"
	"github.com/srflab/srf311/internal/logging"
	"github.com/srflab/srf311/pkg/srf"
)

// Report is one checkpoint result: the scalar and the point k*G.
type Report struct {
	K     *big.Int
	Point weier.Point
}

// Sink receives checkpoint reports in checkpoint order. A non-nil return
// aborts the run.
type Sink func(Report) error

// Driver walks scalar multiples of the curve generator.
type Driver struct {
	curve *weier.Curve
	log   zerolog.Logger
}

// New creates a driver for the given curve.
func New(c *weier.Curve) *Driver {
	return &Driver{
		curve: c,
		log:   logging.Logger("trace"),
	}
}

// At computes k*G directly.
func (d *Driver) At(k *big.Int) (weier.Point, error) {
	return d.curve.ScalarBaseMult(k)
}

// Run computes k*G at every checkpoint and emits the results in order.
// Checkpoints must be non-negative and strictly ascending.
//
// The driver advances a single running accumulator between checkpoints
// (one scalar multiplication of the delta plus one addition), which is
// equivalent to a fresh ScalarBaseMult per checkpoint and cheaper for
// dense checkpoint lists.
func (d *Driver) Run(checkpoints []*big.Int, emit Sink) error {
	if err := validate(checkpoints); err != nil {
		return err
	}

	acc := weier.Infinity()
	prev := new(big.Int)

	for _, k := range checkpoints {
		delta := new(big.Int).Sub(k, prev)
		step, err := d.curve.ScalarBaseMult(delta)
		if err != nil {
			return err
		}
		acc, err = d.curve.Add(acc, step)
		if err != nil {
			return err
		}
		prev = k

		d.log.Debug().
			Str("k", k.String()).
			Stringer("point", acc).
			Msg("checkpoint")

		if emit != nil {
			if err := emit(Report{K: new(big.Int).Set(k), Point: acc}); err != nil {
				return err
			}
		}
	}
	return nil
}

// Collect runs the trace and gathers all reports.
func (d *Driver) Collect(checkpoints []*big.Int) ([]Report, error) {
	out := make([]Report, 0, len(checkpoints))
	err := d.Run(checkpoints, func(r Report) error {
		out = append(out, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func validate(checkpoints []*big.Int) error {
	var prev *big.Int
	for i, k := range checkpoints {
		if k == nil || k.Sign() < 0 {
			return fmt.Errorf("%w: checkpoint %d", srf.ErrNegativeScalar, i)
		}
		if prev != nil && k.Cmp(prev) <= 0 {
			return fmt.Errorf("%w: checkpoint %d (%s after %s)", srf.ErrCheckpointOrder, i, k, prev)
		}
		prev = k
	}
	return nil
}
