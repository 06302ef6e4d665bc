// Package lattice implements a 3D toroidal cellular automaton whose cells
// hold curve points. A single genesis cell is seeded with the generator;
// on every tick each cell is replaced by the group-law sum of itself and
// its six face neighbors, all cells updating simultaneously.
//
// The automaton is a driver on top of the group law: it adds nothing to
// the arithmetic and exists to watch structure propagate. Measurements
// are reported as plain ratios with no interpretation attached.
package lattice

import (
	"fmt"
	"math/big"

	"github.com/bits-and-blooms/bitset"
	"github.com/rs/zerolog"

	"github.com/srflab/srf311/internal/crypto/weier"
	"github.com/srflab/srf311/internal/logging"
)

// Lattice is a size^3 toroidal grid of curve points.
type Lattice struct {
	curve *weier.Curve
	size  int
	cells []weier.Point
	occ   *bitset.BitSet // non-infinity cells, index = (i*size + j)*size + k
	tick  uint64
	log   zerolog.Logger
}

// Measurement is a snapshot of lattice state: the number of active
// (non-infinity) cells and the mean x-coordinate of active cells as a
// fraction of p.
type Measurement struct {
	Tick       uint64
	Active     uint
	MeanXRatio float64
}

// New creates a lattice over the given curve with the generator seeded at
// the center cell. size must be at least 2.
func New(c *weier.Curve, size int) (*Lattice, error) {
	if size < 2 {
		return nil, fmt.Errorf("lattice size must be >= 2, got %d", size)
	}

	n := size * size * size
	l := &Lattice{
		curve: c,
		size:  size,
		cells: make([]weier.Point, n),
		occ:   bitset.New(uint(n)),
		log:   logging.Logger("lattice"),
	}
	for i := range l.cells {
		l.cells[i] = weier.Infinity()
	}

	center := size / 2
	ci := l.index(center, center, center)
	l.cells[ci] = c.Generator()
	l.occ.Set(uint(ci))

	l.log.Info().
		Int("size", size).
		Int("cells", n).
		Msg("lattice seeded at center")
	return l, nil
}

// Size returns the lattice edge length.
func (l *Lattice) Size() int { return l.size }

// Tick returns the number of completed steps.
func (l *Lattice) Tick() uint64 { return l.tick }

// Cell returns the point at (i, j, k), coordinates taken mod size.
func (l *Lattice) Cell(i, j, k int) weier.Point {
	return l.cells[l.index(l.wrap(i), l.wrap(j), l.wrap(k))]
}

func (l *Lattice) index(i, j, k int) int {
	return (i*l.size+j)*l.size + k
}

func (l *Lattice) wrap(i int) int {
	i %= l.size
	if i < 0 {
		i += l.size
	}
	return i
}

// Step advances the automaton by one synchronous tick.
func (l *Lattice) Step() error {
	next := make([]weier.Point, len(l.cells))
	occ := bitset.New(uint(len(l.cells)))

	for i := 0; i < l.size; i++ {
		for j := 0; j < l.size; j++ {
			for k := 0; k < l.size; k++ {
				sum, err := l.neighborhoodSum(i, j, k)
				if err != nil {
					return fmt.Errorf("cell (%d,%d,%d) at tick %d: %w", i, j, k, l.tick, err)
				}
				idx := l.index(i, j, k)
				next[idx] = sum
				if !sum.IsInfinity() {
					occ.Set(uint(idx))
				}
			}
		}
	}

	l.cells = next
	l.occ = occ
	l.tick++
	return nil
}

// neighborhoodSum folds the cell and its six face neighbors under the
// group law, reading only the current (pre-step) grid.
func (l *Lattice) neighborhoodSum(i, j, k int) (weier.Point, error) {
	total := l.cells[l.index(i, j, k)]
	neighbors := [6]int{
		l.index(i, l.wrap(j+1), k),
		l.index(i, l.wrap(j-1), k),
		l.index(l.wrap(i+1), j, k),
		l.index(l.wrap(i-1), j, k),
		l.index(i, j, l.wrap(k+1)),
		l.index(i, j, l.wrap(k-1)),
	}

	var err error
	for _, n := range neighbors {
		total, err = l.curve.Add(total, l.cells[n])
		if err != nil {
			return weier.Point{}, err
		}
	}
	return total, nil
}

// Run advances the automaton by ticks steps, invoking report (if non-nil)
// with a measurement every `every` ticks and once at the end. The final
// snapshot is emitted even when ticks is zero, and is skipped only when
// the last tick already produced a periodic report.
func (l *Lattice) Run(ticks, every int, report func(Measurement)) error {
	var lastReported uint64
	reported := false

	for n := 0; n < ticks; n++ {
		if err := l.Step(); err != nil {
			return err
		}
		if report != nil && every > 0 && l.tick%uint64(every) == 0 {
			report(l.Measure())
			reported = true
			lastReported = l.tick
		}
	}
	if report != nil && (!reported || lastReported != l.tick) {
		report(l.Measure())
	}
	return nil
}

// Measure computes the current snapshot. With no active cells the mean
// ratio is zero.
func (l *Lattice) Measure() Measurement {
	m := Measurement{Tick: l.tick, Active: l.occ.Count()}
	if m.Active == 0 {
		return m
	}

	sum := new(big.Int)
	for idx, ok := l.occ.NextSet(0); ok; idx, ok = l.occ.NextSet(idx + 1) {
		sum.Add(sum, l.cells[idx].X)
	}

	den := new(big.Int).Mul(l.curve.Field().P(), new(big.Int).SetUint64(uint64(m.Active)))
	ratio, _ := new(big.Float).Quo(
		new(big.Float).SetInt(sum),
		new(big.Float).SetInt(den),
	).Float64()
	m.MeanXRatio = ratio
	return m
}
