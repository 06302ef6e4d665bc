package weier

import "math/big"

// Point is a point on a short Weierstrass curve: either the point at
// infinity (the group identity) or an affine (X, Y) pair of canonical
// field elements. The zero value is not a valid point; use Infinity or
// Curve.NewPoint.
type Point struct {
	X, Y *big.Int
	Inf  bool
}

// Infinity returns the point at infinity.
func Infinity() Point { return Point{Inf: true} }

// IsInfinity reports whether p is the point at infinity.
func (p Point) IsInfinity() bool { return p.Inf }

// Equal reports whether two points are the same group element. Infinity
// equals only infinity; affine points compare by coordinates.
func (p Point) Equal(q Point) bool {
	if p.Inf || q.Inf {
		return p.Inf == q.Inf
	}
	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0
}

// clone returns a deep copy, so results never alias caller-held values.
func (p Point) clone() Point {
	if p.Inf {
		return Point{Inf: true}
	}
	return Point{X: new(big.Int).Set(p.X), Y: new(big.Int).Set(p.Y)}
}

// String renders the point for logs and error messages.
func (p Point) String() string {
	if p.Inf {
		return "O"
	}
	return "(" + p.X.String() + ", " + p.Y.String() + ")"
}
