// Package field implements exact modular arithmetic over a fixed prime
// field F_p with arbitrary-precision integers. Elements are canonical
// residues in [0, p); every operation returns a freshly allocated value
// and never mutates its arguments, so a Field may be shared freely across
// goroutines.
package field

import (
	"fmt"
	"math/big"

	"github.com/srflab/srf311/pkg/srf"
)

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
	four  = big.NewInt(4)
)

// Field is an immutable prime field F_p. Construct it with New; the
// modulus never changes afterwards.
type Field struct {
	p *big.Int

	// cached exponents
	legendreExp *big.Int // (p-1)/2
	sqrtExp     *big.Int // (p+1)/4, valid only when pMod4 == 3
	pMod4       uint
}

// New creates a field for the prime modulus p. p must be > 3, odd, and a
// probable prime; anything else is a configuration error.
func New(p *big.Int) (*Field, error) {
	if p == nil || p.Cmp(three) <= 0 {
		return nil, fmt.Errorf("%w: p must be > 3", srf.ErrInvalidModulus)
	}
	if p.Bit(0) == 0 {
		return nil, fmt.Errorf("%w: p must be odd", srf.ErrInvalidModulus)
	}
	if !p.ProbablyPrime(32) {
		return nil, fmt.Errorf("%w: p fails primality test", srf.ErrInvalidModulus)
	}

	pc := new(big.Int).Set(p)
	f := &Field{
		p:           pc,
		legendreExp: new(big.Int).Rsh(new(big.Int).Sub(pc, one), 1),
		pMod4:       uint(new(big.Int).Mod(pc, four).Uint64()),
	}
	if f.pMod4 == 3 {
		f.sqrtExp = new(big.Int).Rsh(new(big.Int).Add(pc, one), 2)
	}
	return f, nil
}

// P returns a copy of the modulus.
func (f *Field) P() *big.Int { return new(big.Int).Set(f.p) }

// BitLen returns the bit length of the modulus.
func (f *Field) BitLen() int { return f.p.BitLen() }

// Reduce maps any integer (negative included) to its canonical residue
// in [0, p).
func (f *Field) Reduce(x *big.Int) *big.Int {
	z := new(big.Int).Mod(x, f.p)
	if z.Sign() < 0 {
		z.Add(z, f.p)
	}
	return z
}

// IsCanonical reports whether x already lies in [0, p).
func (f *Field) IsCanonical(x *big.Int) bool {
	return x.Sign() >= 0 && x.Cmp(f.p) < 0
}

// Add returns x + y mod p.
func (f *Field) Add(x, y *big.Int) *big.Int {
	return f.Reduce(new(big.Int).Add(x, y))
}

// Sub returns x - y mod p.
func (f *Field) Sub(x, y *big.Int) *big.Int {
	return f.Reduce(new(big.Int).Sub(x, y))
}

// Mul returns x * y mod p.
func (f *Field) Mul(x, y *big.Int) *big.Int {
	return f.Reduce(new(big.Int).Mul(x, y))
}

// Neg returns -x mod p.
func (f *Field) Neg(x *big.Int) *big.Int {
	return f.Reduce(new(big.Int).Neg(x))
}

// Exp returns x^e mod p for e >= 0.
func (f *Field) Exp(x, e *big.Int) *big.Int {
	return new(big.Int).Exp(f.Reduce(x), e, f.p)
}

// Inv returns the multiplicative inverse of x mod p. The inverse of zero
// is undefined and yields srf.ErrDivisionByZero.
func (f *Field) Inv(x *big.Int) (*big.Int, error) {
	xr := f.Reduce(x)
	if xr.Sign() == 0 {
		return nil, srf.ErrDivisionByZero
	}
	inv := new(big.Int).ModInverse(xr, f.p)
	if inv == nil {
		// Cannot happen for prime p and nonzero x.
		return nil, fmt.Errorf("no inverse for %s mod %s", xr, f.p)
	}
	return inv, nil
}

// Legendre returns the Legendre symbol (x|p): +1 for a nonzero quadratic
// residue, -1 for a non-residue, 0 for x ≡ 0.
func (f *Field) Legendre(x *big.Int) int {
	xr := f.Reduce(x)
	if xr.Sign() == 0 {
		return 0
	}
	v := new(big.Int).Exp(xr, f.legendreExp, f.p)
	if v.Cmp(one) == 0 {
		return 1
	}
	return -1
}

// Sqrt returns a square root of x mod p and true, or (nil, false) when x
// is a quadratic non-residue. Absence of a root is an expected outcome,
// not an error.
//
// When a root exists the canonical one is returned: the numerically
// smaller of the pair {r, p-r}. The other root is always p minus the
// returned value.
func (f *Field) Sqrt(x *big.Int) (*big.Int, bool) {
	xr := f.Reduce(x)
	if xr.Sign() == 0 {
		return new(big.Int), true
	}
	if f.Legendre(xr) != 1 {
		return nil, false
	}

	var r *big.Int
	if f.pMod4 == 3 {
		// Direct root x^((p+1)/4); valid exactly because p ≡ 3 (mod 4).
		r = new(big.Int).Exp(xr, f.sqrtExp, f.p)
	} else {
		r = f.tonelliShanks(xr)
	}
	return f.canonicalRoot(r), true
}

// canonicalRoot picks the smaller element of {r, p-r}.
func (f *Field) canonicalRoot(r *big.Int) *big.Int {
	other := new(big.Int).Sub(f.p, r)
	if other.Cmp(r) < 0 {
		return other
	}
	return r
}

// tonelliShanks computes a square root of the known residue n for a
// general odd prime modulus. The caller has already verified that n is a
// nonzero quadratic residue.
func (f *Field) tonelliShanks(n *big.Int) *big.Int {
	// factor p-1 = q * 2^s with q odd
	q := new(big.Int).Sub(f.p, one)
	s := 0
	for q.Bit(0) == 0 {
		q.Rsh(q, 1)
		s++
	}

	// find a quadratic non-residue z
	z := new(big.Int).Set(two)
	for f.Legendre(z) != -1 {
		z.Add(z, one)
	}

	c := new(big.Int).Exp(z, q, f.p)
	qp1 := new(big.Int).Add(q, one)
	qp1.Rsh(qp1, 1)
	x := new(big.Int).Exp(n, qp1, f.p)
	t := new(big.Int).Exp(n, q, f.p)
	m := s

	for t.Cmp(one) != 0 {
		// find least i with t^(2^i) == 1
		i := 1
		t2i := f.Mul(t, t)
		for t2i.Cmp(one) != 0 {
			t2i = f.Mul(t2i, t2i)
			i++
		}

		// b = c^(2^(m-i-1))
		b := new(big.Int).Set(c)
		for j := 0; j < m-i-1; j++ {
			b = f.Mul(b, b)
		}

		x = f.Mul(x, b)
		b2 := f.Mul(b, b)
		t = f.Mul(t, b2)
		c = b2
		m = i
	}
	return x
}
