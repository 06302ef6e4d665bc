package srf

import "math/big"

// Params holds the externally supplied description of a curve run: the
// Weierstrass parameters y^2 = x^3 + A x + B over F_p, a generator, and
// the checkpoint scalars to report.
//
// Order and TraceOfFrobenius are published annotations carried for
// reporting only. The arithmetic kernel never reads them and no property
// of the trace output depends on them being correct.
type Params struct {
	Name string

	P  *big.Int
	A  *big.Int
	B  *big.Int
	Gx *big.Int
	Gy *big.Int

	Checkpoints []Checkpoint

	Order            *big.Int
	TraceOfFrobenius *big.Int
}

// Checkpoint is a scalar at which the trace reports k*G, with an optional
// presentation label. Labels are display text; the kernel ignores them.
type Checkpoint struct {
	K     *big.Int
	Label string
}

// Scalars returns the checkpoint scalars in declaration order.
func (p *Params) Scalars() []*big.Int {
	ks := make([]*big.Int, len(p.Checkpoints))
	for i, cp := range p.Checkpoints {
		ks[i] = cp.K
	}
	return ks
}

// Label returns the label attached to checkpoint k, or "".
func (p *Params) Label(k *big.Int) string {
	for _, cp := range p.Checkpoints {
		if cp.K.Cmp(k) == 0 {
			return cp.Label
		}
	}
	return ""
}

func mustBig(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("srf: bad built-in constant " + s)
	}
	return n
}

// SRF311T1 returns the built-in srf311t1 parameter set: a 311-bit prime
// field with coefficients derived from transcendental constants
// (A = -ζ(3) mod p, B = π^4/8 mod p) and generator G = (1, y_G), where
// y_G is the smaller square root of 1 + A + B.
//
// The published order factors 71 · 223 · f with f prime; the default
// checkpoints mark those subgroup boundaries. The parameter set is not
// cryptographically secure and is not meant to be.
func SRF311T1() *Params {
	return &Params{
		Name: "srf311t1",
		P:    mustBig("3050270732303867035426569855071344150020050131375292223633894756517537249644418382051685297571"),
		A:    mustBig("2848213829144272750026831693559894159255063839034793341841623201175699043858105291865229423962"),
		B:    mustBig("176136253419928193213219452803870329035650170438138981442962457193233866385558455648877395669"),
		Gx:   big.NewInt(1),
		Gy:   mustBig("1130968320147379634488488512592319498962733806224039917555310117347222215829218584301583626322"),
		Checkpoints: []Checkpoint{
			{K: big.NewInt(1), Label: "genesis point"},
			{K: big.NewInt(71), Label: "first subgroup boundary (71)"},
			{K: big.NewInt(223), Label: "second subgroup boundary (223)"},
			{K: big.NewInt(15833), Label: "composite boundary (71*223)"},
		},
		Order:            mustBig("3050270732303867035426569855071344150020050131375292223633894756517537249644418382051685297569"),
		TraceOfFrobenius: big.NewInt(3),
	}
}
