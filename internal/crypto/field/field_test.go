package field

import (
	"errors"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srflab/srf311/pkg/srf"
)

func bi(v int64) *big.Int { return big.NewInt(v) }

func mustField(t *testing.T, p int64) *Field {
	t.Helper()
	f, err := New(bi(p))
	require.NoError(t, err)
	return f
}

func TestNew(t *testing.T) {
	t.Run("rejects small modulus", func(t *testing.T) {
		_, err := New(bi(3))
		assert.ErrorIs(t, err, srf.ErrInvalidModulus)
	})

	t.Run("rejects even modulus", func(t *testing.T) {
		_, err := New(bi(100))
		assert.ErrorIs(t, err, srf.ErrInvalidModulus)
	})

	t.Run("rejects composite modulus", func(t *testing.T) {
		_, err := New(bi(15))
		assert.ErrorIs(t, err, srf.ErrInvalidModulus)
	})

	t.Run("accepts prime modulus", func(t *testing.T) {
		f, err := New(bi(17))
		require.NoError(t, err)
		assert.Equal(t, 0, f.P().Cmp(bi(17)))
	})
}

func TestReduce(t *testing.T) {
	f := mustField(t, 11)

	// -1 ≡ 10 (mod 11); negative intermediates must normalize into [0, p)
	assert.Equal(t, 0, f.Reduce(bi(-1)).Cmp(bi(10)))
	assert.Equal(t, 0, f.Reduce(bi(22)).Cmp(bi(0)))
	assert.True(t, f.IsCanonical(bi(10)))
	assert.False(t, f.IsCanonical(bi(11)))
	assert.False(t, f.IsCanonical(bi(-1)))
}

func TestArithmetic(t *testing.T) {
	f := mustField(t, 11)

	assert.Equal(t, 0, f.Add(bi(8), bi(5)).Cmp(bi(2)))  // 13 ≡ 2
	assert.Equal(t, 0, f.Sub(bi(3), bi(5)).Cmp(bi(9)))  // -2 ≡ 9
	assert.Equal(t, 0, f.Mul(bi(7), bi(5)).Cmp(bi(2)))  // 35 ≡ 2
	assert.Equal(t, 0, f.Neg(bi(4)).Cmp(bi(7)))         // -4 ≡ 7
	assert.Equal(t, 0, f.Exp(bi(2), bi(10)).Cmp(bi(1))) // Fermat
}

func TestInv(t *testing.T) {
	f := mustField(t, 11)

	t.Run("inverse of zero fails", func(t *testing.T) {
		_, err := f.Inv(bi(0))
		assert.ErrorIs(t, err, srf.ErrDivisionByZero)
		_, err = f.Inv(bi(22)) // 22 ≡ 0 (mod 11)
		assert.ErrorIs(t, err, srf.ErrDivisionByZero)
	})

	t.Run("round trip", func(t *testing.T) {
		for x := int64(1); x < 11; x++ {
			inv, err := f.Inv(bi(x))
			require.NoError(t, err)
			assert.Equal(t, 0, f.Mul(bi(x), inv).Cmp(bi(1)), "x=%d", x)
		}
	})
}

func TestLegendre(t *testing.T) {
	f := mustField(t, 11)

	assert.Equal(t, 0, f.Legendre(bi(0)))
	assert.Equal(t, -1, f.Legendre(bi(2))) // 2 is a non-residue mod 11
	assert.Equal(t, 1, f.Legendre(bi(4)))  // 9*9 ≡ 4 (mod 11)
}

func TestSqrt(t *testing.T) {
	t.Run("non-residue returns no result", func(t *testing.T) {
		f := mustField(t, 7)
		r, ok := f.Sqrt(bi(3)) // 3 is a non-residue mod 7
		assert.False(t, ok)
		assert.Nil(t, r)
	})

	t.Run("zero has root zero", func(t *testing.T) {
		f := mustField(t, 7)
		r, ok := f.Sqrt(bi(0))
		require.True(t, ok)
		assert.Equal(t, 0, r.Sign())
	})

	t.Run("p ≡ 3 mod 4 shortcut", func(t *testing.T) {
		f := mustField(t, 11)
		r, ok := f.Sqrt(bi(4))
		require.True(t, ok)
		// roots of 4 mod 11 are {2, 9}; canonical is the smaller
		assert.Equal(t, 0, r.Cmp(bi(2)))
	})

	t.Run("tonelli-shanks for p ≡ 1 mod 4", func(t *testing.T) {
		f := mustField(t, 13)
		r, ok := f.Sqrt(bi(10)) // 6*6 = 36 ≡ 10 (mod 13)
		require.True(t, ok)
		assert.Equal(t, 0, r.Cmp(bi(6))) // smaller of {6, 7}

		f17 := mustField(t, 17)
		r, ok = f17.Sqrt(bi(2)) // 6*6 = 36 ≡ 2 (mod 17)
		require.True(t, ok)
		assert.Equal(t, 0, r.Cmp(bi(6))) // smaller of {6, 11}
	})

	t.Run("round trip over a full small field", func(t *testing.T) {
		for _, p := range []int64{7, 11, 13, 17, 29} {
			f := mustField(t, p)
			for x := int64(0); x < p; x++ {
				r, ok := f.Sqrt(bi(x))
				if !ok {
					assert.Equal(t, -1, f.Legendre(bi(x)), "p=%d x=%d", p, x)
					continue
				}
				assert.Equal(t, 0, f.Mul(r, r).Cmp(bi(x)), "p=%d x=%d", p, x)
				// canonical root is never the larger of the pair
				other := f.Neg(r)
				assert.True(t, r.Cmp(other) <= 0, "p=%d x=%d", p, x)
			}
		}
	})
}

func TestProperties(t *testing.T) {
	f, err := New(srf.SRF311T1().P)
	require.NoError(t, err)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("x * inv(x) == 1 for nonzero x", prop.ForAll(
		func(a uint64) bool {
			x := f.Reduce(new(big.Int).SetUint64(a))
			if x.Sign() == 0 {
				return true
			}
			inv, err := f.Inv(x)
			if err != nil {
				return false
			}
			return f.Mul(x, inv).Cmp(big.NewInt(1)) == 0
		},
		gen.UInt64(),
	))

	properties.Property("sqrt(x^2) squares back to x^2", prop.ForAll(
		func(a uint64) bool {
			x := f.Reduce(new(big.Int).SetUint64(a))
			sq := f.Mul(x, x)
			r, ok := f.Sqrt(sq)
			if !ok {
				return false
			}
			return f.Mul(r, r).Cmp(sq) == 0
		},
		gen.UInt64(),
	))

	properties.Property("(x + y) - y == x", prop.ForAll(
		func(a, b uint64) bool {
			x := f.Reduce(new(big.Int).SetUint64(a))
			y := f.Reduce(new(big.Int).SetUint64(b))
			return f.Sub(f.Add(x, y), y).Cmp(x) == 0
		},
		gen.UInt64(), gen.UInt64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestInvErrorIsNotWrappedAsInvariant(t *testing.T) {
	// Inv reports the plain sentinel; promotion to InvariantError is the
	// group law's job.
	f := mustField(t, 11)
	_, err := f.Inv(bi(0))
	var inv *srf.InvariantError
	assert.False(t, errors.As(err, &inv))
}
