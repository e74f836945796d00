// Package fixture generates ground-truth BLS12-381 values for this
// module's tests: random scalars, curve points, and (eventually) full
// Groth16 proof/verification-key tuples, all backed by gnark-crypto rather
// than hand-rolled arithmetic, so test expectations are checked against an
// independent implementation instead of the very code under test. Nothing
// here may be imported outside a _test.go file.
package fixture

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// RandomScalar returns a uniformly random scalar in [0, r), r the BLS12-381
// scalar-field order.
func RandomScalar() (*big.Int, error) {
	var s fr.Element
	if _, err := s.SetRandom(); err != nil {
		return nil, err
	}
	out := new(big.Int)
	s.BigInt(out)
	return out, nil
}

// G1Point is a BLS12-381 G1 affine point as its two base-field
// coordinates X and Y.
type G1Point struct {
	X, Y *big.Int
}

// RandomG1 returns scalar*G1Generator and the scalar used to produce it.
func RandomG1() (*big.Int, G1Point, error) {
	scalar, err := RandomScalar()
	if err != nil {
		return nil, G1Point{}, err
	}

	_, _, g1Gen, _ := bls12381.Generators()
	var p bls12381.G1Affine
	p.ScalarMultiplication(&g1Gen, scalar)

	x, y := new(big.Int), new(big.Int)
	p.X.BigInt(x)
	p.Y.BigInt(y)
	return scalar, G1Point{X: x, Y: y}, nil
}

// G2Point is a BLS12-381 G2 affine point, each coordinate an F_{q^2}
// element (c1,c0).
type G2Point struct {
	X, Y [2]*big.Int
}

// RandomG2 returns scalar*G2Generator and the scalar used to produce it.
func RandomG2() (*big.Int, G2Point, error) {
	scalar, err := RandomScalar()
	if err != nil {
		return nil, G2Point{}, err
	}

	_, _, _, g2Gen := bls12381.Generators()
	var p bls12381.G2Affine
	p.ScalarMultiplication(&g2Gen, scalar)

	x0, x1, y0, y1 := new(big.Int), new(big.Int), new(big.Int), new(big.Int)
	p.X.A0.BigInt(x0)
	p.X.A1.BigInt(x1)
	p.Y.A0.BigInt(y0)
	p.Y.A1.BigInt(y1)
	return scalar, G2Point{X: [2]*big.Int{x1, x0}, Y: [2]*big.Int{y1, y0}}, nil
}

// PairingCheck returns whether e(p1,q1) == e(p2,q2), the same product-form
// check the Groth16 verifier's final equality collapses to, used to check
// this module's own pairing output against gnark-crypto's independent
// implementation.
func PairingCheck(p1 G1Point, q1 G2Point, p2 G1Point, q2 G2Point) (bool, error) {
	a1 := toG1Affine(p1)
	a2 := toG1Affine(p2)
	b1 := toG2Affine(q1)
	b2 := toG2Affine(q2)

	var negA2 bls12381.G1Affine
	negA2.Neg(&a2)

	return bls12381.PairingCheck([]bls12381.G1Affine{a1, negA2}, []bls12381.G2Affine{b1, b2})
}

func toG1Affine(p G1Point) bls12381.G1Affine {
	var out bls12381.G1Affine
	out.X.SetBigInt(p.X)
	out.Y.SetBigInt(p.Y)
	return out
}

func toG2Affine(p G2Point) bls12381.G2Affine {
	var out bls12381.G2Affine
	out.X.A1.SetBigInt(p.X[0])
	out.X.A0.SetBigInt(p.X[1])
	out.Y.A1.SetBigInt(p.Y[0])
	out.Y.A0.SetBigInt(p.Y[1])
	return out
}
