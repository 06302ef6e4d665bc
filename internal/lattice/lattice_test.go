package lattice

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srflab/srf311/internal/crypto/weier"
)

func bi(v int64) *big.Int { return big.NewInt(v) }

func toyCurve(t *testing.T) *weier.Curve {
	t.Helper()
	c, err := weier.New(bi(17), bi(2), bi(2), bi(5), bi(1))
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	c := toyCurve(t)

	t.Run("rejects degenerate size", func(t *testing.T) {
		_, err := New(c, 1)
		assert.Error(t, err)
	})

	t.Run("seeds generator at center", func(t *testing.T) {
		l, err := New(c, 4)
		require.NoError(t, err)

		m := l.Measure()
		assert.Equal(t, uint(1), m.Active)
		assert.True(t, l.Cell(2, 2, 2).Equal(c.Generator()))
		assert.True(t, l.Cell(0, 0, 0).IsInfinity())
	})
}

func TestStepSpreadsFromCenter(t *testing.T) {
	c := toyCurve(t)
	l, err := New(c, 5)
	require.NoError(t, err)
	require.NoError(t, l.Step())

	// After one tick the genesis cell keeps G (G + six infinities) and
	// each of its six face neighbors picks up G from the center.
	assert.Equal(t, uint64(1), l.Tick())
	assert.Equal(t, uint(7), l.Measure().Active)
	assert.True(t, l.Cell(2, 2, 2).Equal(c.Generator()))
	assert.True(t, l.Cell(3, 2, 2).Equal(c.Generator()))
	assert.True(t, l.Cell(2, 1, 2).Equal(c.Generator()))
}

func TestCellsStayOnCurve(t *testing.T) {
	c := toyCurve(t)
	l, err := New(c, 4)
	require.NoError(t, err)

	for tick := 0; tick < 5; tick++ {
		require.NoError(t, l.Step())
		for i := 0; i < l.Size(); i++ {
			for j := 0; j < l.Size(); j++ {
				for k := 0; k < l.Size(); k++ {
					assert.True(t, c.IsOnCurve(l.Cell(i, j, k)),
						"tick=%d cell=(%d,%d,%d)", tick, i, j, k)
				}
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	c := toyCurve(t)
	a, err := New(c, 4)
	require.NoError(t, err)
	b, err := New(c, 4)
	require.NoError(t, err)

	for tick := 0; tick < 6; tick++ {
		require.NoError(t, a.Step())
		require.NoError(t, b.Step())
	}

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				assert.True(t, a.Cell(i, j, k).Equal(b.Cell(i, j, k)),
					"cell=(%d,%d,%d)", i, j, k)
			}
		}
	}
}

func TestToroidalWrap(t *testing.T) {
	c := toyCurve(t)
	l, err := New(c, 3)
	require.NoError(t, err)

	// Cell lookups wrap modulo size in every axis.
	assert.True(t, l.Cell(-2, 4, 1).Equal(l.Cell(1, 1, 1)))
}

func TestRunReporting(t *testing.T) {
	c := toyCurve(t)
	l, err := New(c, 3)
	require.NoError(t, err)

	var seen []Measurement
	require.NoError(t, l.Run(5, 2, func(m Measurement) {
		seen = append(seen, m)
	}))

	// ticks 2 and 4 plus the final snapshot at tick 5
	require.Len(t, seen, 3)
	assert.Equal(t, uint64(2), seen[0].Tick)
	assert.Equal(t, uint64(4), seen[1].Tick)
	assert.Equal(t, uint64(5), seen[2].Tick)
	assert.Equal(t, uint64(5), l.Tick())
}

func TestRunZeroTicksStillReports(t *testing.T) {
	c := toyCurve(t)
	l, err := New(c, 3)
	require.NoError(t, err)

	var seen []Measurement
	require.NoError(t, l.Run(0, 10, func(m Measurement) {
		seen = append(seen, m)
	}))

	// the initial state is still snapshotted once
	require.Len(t, seen, 1)
	assert.Equal(t, uint64(0), seen[0].Tick)
	assert.Equal(t, uint(1), seen[0].Active)
}

func TestRunNoDuplicateFinalReport(t *testing.T) {
	c := toyCurve(t)
	l, err := New(c, 3)
	require.NoError(t, err)

	var seen []Measurement
	require.NoError(t, l.Run(4, 2, func(m Measurement) {
		seen = append(seen, m)
	}))

	// tick 4 is both periodic and final; it must be reported once
	require.Len(t, seen, 2)
	assert.Equal(t, uint64(2), seen[0].Tick)
	assert.Equal(t, uint64(4), seen[1].Tick)
}

func TestMeasureRatio(t *testing.T) {
	c := toyCurve(t)
	l, err := New(c, 3)
	require.NoError(t, err)

	// Single active cell holding G = (5, 1) over p = 17.
	m := l.Measure()
	assert.Equal(t, uint(1), m.Active)
	assert.InDelta(t, 5.0/17.0, m.MeanXRatio, 1e-12)
}
