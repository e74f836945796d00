// Package curveparams holds the concrete parameter tables for the curves
// this module supports: BLS12-381, MNT4-753 (the two pairing-friendly
// families spec.md names) and secp256k1 (the non-pairing curve spec.md's
// scalar-multiplication example is stated over). These are pure data: no
// arithmetic is executed against them at script-build time beyond what is
// needed to derive the tables themselves (Frobenius gammas, signed-digit
// exponent expansions).
package curveparams

import (
	"math/big"

	"github.com/bsv-blockchain/go-zkscript/exprepr"
)

// Point is a curve point over the base field F_q (spec §3 "Elliptic-curve
// point descriptor", the off-chain/constant-table counterpart of
// stackmodel.AffinePoint).
type Point struct {
	X, Y *big.Int
}

// Point2 is a curve point over the quadratic extension F_{q^2}, used for the
// G2 generator of both pairing-friendly families in this module.
type Point2 struct {
	X, Y [2]*big.Int
}

// Parameters is a full curve parameter table (spec §6 "Curve constant
// table"): characteristic, subgroup order, Short-Weierstrass coefficients,
// twist coefficients, generators, the Miller-loop signed-digit expansion,
// the hard-exponentiation signed-digit expansion, and the Frobenius gamma
// constants for every tower level this curve's pairing needs.
type Parameters struct {
	Name string

	// Q is the base-field characteristic, R the prime order of the G1/G2
	// subgroups.
	Q, R *big.Int

	// A, B are the Short-Weierstrass coefficients of the curve over F_q.
	A, B *big.Int
	// TwistA, TwistB are the coefficients of the twisted curve G2 lives on.
	TwistA, TwistB *big.Int

	G1 Point
	G2 Point2

	// EmbeddingDegree is k in e: G1 x G2 -> F_{q^k}.
	EmbeddingDegree int
	// TwistDegree is d, the degree of the twist G2's curve equation is
	// defined over (2 for BLS12's sextic twist's quadratic subfield step is
	// handled by the F_q2/F_q6/F_q12 tower directly; this records the
	// overall twist degree used in the gammas[i] = non_residue^((q^i-1)/d)
	// definition, spec §3 "Field tower").
	TwistDegree int

	// MillerLoopDigits is exp_miller_loop, MSB-last.
	MillerLoopDigits *exprepr.Digits
	// HardExponentDigits is the hard-exponentiation signed-digit expansion
	// (spec §4.7 "Hard part").
	HardExponentDigits *exprepr.Digits

	// NonResidue is the tower-construction non-residue shared by every
	// extension level built on top of F_q (spec §3 "Field tower").
	NonResidue *big.Int

	// FrobeniusGammas[i] (i = 1..EmbeddingDegree-1) holds
	// NonResidue^(floor((Q^i - 1) / TwistDegree)) mod Q, the constant the
	// Frobenius endomorphism's builder multiplies by at tower level i
	// (spec §3 "Field tower").
	FrobeniusGammas []*big.Int

	// ModuloThreshold is the bit-growth threshold the deferred-reduction
	// estimator (spec §4.3 "Modular reduction is deferred") compares
	// `|future|` against before deciding to insert a reduction.
	ModuloThreshold int
}

// ComputeFrobeniusGammas computes gamma_i = nonResidue^(floor((q^i-1)/d))
// mod q for i = 1..count, the table every Frobenius builder in the towers
// and pairing packages consumes (spec §3 "Field tower"). Computing this
// from (q, nonResidue, d) instead of hand-transcribing the table keeps the
// gammas correct by construction for whatever curve parameters are in
// force, independent of any single curve's published constants.
func ComputeFrobeniusGammas(q, nonResidue *big.Int, d, count int) []*big.Int {
	out := make([]*big.Int, count)
	qPow := new(big.Int).Set(q)
	degree := big.NewInt(int64(d))
	one := big.NewInt(1)
	for i := 1; i <= count; i++ {
		exponent := new(big.Int).Sub(qPow, one)
		exponent.Div(exponent, degree)
		out[i-1] = new(big.Int).Exp(nonResidue, exponent, q)
		qPow.Mul(qPow, q)
	}
	return out
}
