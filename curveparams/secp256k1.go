package curveparams

import "math/big"

// SECP256K1 is the parameter table for secp256k1: y^2 = x^3 + 7 over F_p,
// the curve spec.md's scalar-multiplication example (§8 "Scalar
// multiplication on secp256k1: a=3, P=generator") targets. It is not
// pairing-friendly (no twist, embedding degree, or tower levels apply), so
// only Name, Q, R, A, B, G1 and ModuloThreshold are populated.
var SECP256K1 = Parameters{
	Name: "secp256k1",
	Q: mustHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F"),
	R: mustHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141"),
	A: big.NewInt(0),
	B: big.NewInt(7),
	G1: Point{
		X: mustHex("79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798"),
		Y: mustHex("483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8"),
	},
	ModuloThreshold: 300,
}
