// Package weier implements the group law of a short Weierstrass elliptic
// curve y^2 = x^3 + A x + B over a prime field, in affine coordinates
// with an explicit point at infinity.
//
// The implementation is exact and deliberately not constant-time; the
// curves this module targets are exploratory, not cryptographic. A Curve
// is immutable after construction and safe for concurrent use: every
// operation is a pure function allocating fresh results.
package weier

import (
	"fmt"
	"math/big"

	"github.com/srflab/srf311/internal/crypto/field"
	"github.com/srflab/srf311/pkg/srf"
)

var (
	two   = big.NewInt(2)
	three = big.NewInt(3)
	four  = big.NewInt(4)
	b27   = big.NewInt(27)
)

// Curve is an immutable short Weierstrass curve with a designated
// generator point.
type Curve struct {
	f *field.Field
	a *big.Int
	b *big.Int
	g Point
}

// New validates the supplied parameters and builds a curve. A and B must
// already be canonical residues in [0, p); the generator must satisfy the
// curve equation; the discriminant must be nonzero. Any violation is a
// configuration error and construction fails.
func New(p, a, b, gx, gy *big.Int) (*Curve, error) {
	f, err := field.New(p)
	if err != nil {
		return nil, err
	}
	if !f.IsCanonical(a) {
		return nil, fmt.Errorf("%w: A = %s", srf.ErrUnreducedCoefficient, a)
	}
	if !f.IsCanonical(b) {
		return nil, fmt.Errorf("%w: B = %s", srf.ErrUnreducedCoefficient, b)
	}

	c := &Curve{
		f: f,
		a: new(big.Int).Set(a),
		b: new(big.Int).Set(b),
	}
	if c.isSingular() {
		return nil, fmt.Errorf("%w: 4A^3 + 27B^2 ≡ 0 mod p", srf.ErrSingularCurve)
	}

	g, err := c.NewPoint(gx, gy)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	c.g = g
	return c, nil
}

// NewFromParams builds a curve from an srf.Params value.
func NewFromParams(params *srf.Params) (*Curve, error) {
	return New(params.P, params.A, params.B, params.Gx, params.Gy)
}

// Field returns the underlying prime field.
func (c *Curve) Field() *field.Field { return c.f }

// A returns a copy of the A coefficient.
func (c *Curve) A() *big.Int { return new(big.Int).Set(c.a) }

// B returns a copy of the B coefficient.
func (c *Curve) B() *big.Int { return new(big.Int).Set(c.b) }

// Generator returns a copy of the generator point.
func (c *Curve) Generator() Point { return c.g.clone() }

// isSingular reports whether the discriminant vanishes, i.e. whether
// 4A^3 + 27B^2 ≡ 0 (mod p).
func (c *Curve) isSingular() bool {
	a3 := c.f.Mul(c.f.Mul(c.a, c.a), c.a)
	d := c.f.Add(c.f.Mul(four, a3), c.f.Mul(b27, c.f.Mul(c.b, c.b)))
	return d.Sign() == 0
}

// rhs evaluates x^3 + A x + B mod p.
func (c *Curve) rhs(x *big.Int) *big.Int {
	x3 := c.f.Mul(x, c.f.Mul(x, x))
	return c.f.Add(c.f.Add(x3, c.f.Mul(c.a, x)), c.b)
}

// IsOnCurve reports whether p satisfies the curve equation. Infinity is
// on the curve by convention.
func (c *Curve) IsOnCurve(p Point) bool {
	if p.Inf {
		return true
	}
	y2 := c.f.Mul(p.Y, p.Y)
	return y2.Cmp(c.rhs(p.X)) == 0
}

// NewPoint validates raw affine coordinates and returns the point.
// Constructing an off-curve point is a configuration error; it fails here
// rather than corrupting arithmetic downstream.
func (c *Curve) NewPoint(x, y *big.Int) (Point, error) {
	p := Point{X: c.f.Reduce(x), Y: c.f.Reduce(y)}
	if !c.IsOnCurve(p) {
		return Point{}, fmt.Errorf("%w: %s", srf.ErrPointNotOnCurve, p)
	}
	return p, nil
}

// LiftX returns the curve point (x, y) where y is the canonical square
// root of x^3 + A x + B, or ok=false when x is not the abscissa of any
// curve point.
func (c *Curve) LiftX(x *big.Int) (Point, bool) {
	xr := c.f.Reduce(x)
	y, ok := c.f.Sqrt(c.rhs(xr))
	if !ok {
		return Point{}, false
	}
	return Point{X: xr, Y: y}, true
}

// Neg returns -P, the reflection across the x-axis.
func (c *Curve) Neg(p Point) Point {
	if p.Inf {
		return Infinity()
	}
	return Point{X: new(big.Int).Set(p.X), Y: c.f.Neg(p.Y)}
}

// Add computes P + Q under the chord-and-tangent group law.
//
// The affine case analysis is total: identities, inverse pairs and the
// y = 0 doubling degeneracy are handled before any division, so a zero
// denominator can only mean the analysis itself is broken. That surfaces
// as a fatal *srf.InvariantError, never a silent wrong answer.
func (c *Curve) Add(p, q Point) (Point, error) {
	if p.Inf {
		return q.clone(), nil
	}
	if q.Inf {
		return p.clone(), nil
	}

	if p.X.Cmp(q.X) == 0 {
		// Same abscissa: either inverse pair (vertical chord) or doubling.
		if c.f.Add(p.Y, q.Y).Sign() == 0 {
			return Infinity(), nil
		}
		if p.Y.Sign() == 0 {
			// order-2 point, vertical tangent
			return Infinity(), nil
		}
		num := c.f.Add(c.f.Mul(three, c.f.Mul(p.X, p.X)), c.a)
		den := c.f.Mul(two, p.Y)
		return c.chord(p, q, num, den)
	}

	num := c.f.Sub(q.Y, p.Y)
	den := c.f.Sub(q.X, p.X)
	return c.chord(p, q, num, den)
}

// chord finishes an addition given the slope numerator and denominator:
// λ = num/den, Rx = λ^2 - Px - Qx, Ry = λ(Px - Rx) - Py.
func (c *Curve) chord(p, q Point, num, den *big.Int) (Point, error) {
	inv, err := c.f.Inv(den)
	if err != nil {
		return Point{}, srf.NewInvariantError("point addition slope", err)
	}
	lam := c.f.Mul(num, inv)
	rx := c.f.Sub(c.f.Sub(c.f.Mul(lam, lam), p.X), q.X)
	ry := c.f.Sub(c.f.Mul(lam, c.f.Sub(p.X, rx)), p.Y)
	return Point{X: rx, Y: ry}, nil
}

// Double computes 2P.
func (c *Curve) Double(p Point) (Point, error) {
	return c.Add(p, p)
}

// ScalarMult computes k*P by right-to-left double-and-add. k = 0 yields
// infinity. k may be arbitrarily large — far beyond any group order —
// and the result follows from the group law alone. Negative k is
// rejected.
func (c *Curve) ScalarMult(k *big.Int, p Point) (Point, error) {
	if k.Sign() < 0 {
		return Point{}, fmt.Errorf("%w: %s", srf.ErrNegativeScalar, k)
	}

	acc := Infinity()
	base := p.clone()
	var err error
	for i, n := 0, k.BitLen(); i < n; i++ {
		if k.Bit(i) == 1 {
			acc, err = c.Add(acc, base)
			if err != nil {
				return Point{}, err
			}
		}
		if i+1 < n {
			base, err = c.Add(base, base)
			if err != nil {
				return Point{}, err
			}
		}
	}
	return acc, nil
}

// ScalarBaseMult computes k*G for the curve's generator.
func (c *Curve) ScalarBaseMult(k *big.Int) (Point, error) {
	return c.ScalarMult(k, c.g)
}
