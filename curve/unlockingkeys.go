package curve

import (
	"math/big"

	"github.com/bsv-blockchain/go-zkscript/opcode"
)

// UnrolledMultiplicationUnlockingKey is the witness-side counterpart to
// UnrolledScalarMultiplication: it supplies the per-round marker stream the
// locking script's unrolled loop branches on, and (optionally) the base
// point and field modulus. No gradients are carried here — the locking
// script's doubling/addition steps are the gradient-free projective
// formulas (Addition/Doubling), so the only witness data a round needs is
// "did this round double" / "did this round add".
type UnrolledMultiplicationUnlockingKey struct {
	// P is the point being multiplied, loaded onto the stack if LoadPoint is
	// set. P[0], P[1], P[2] are X, Y, Z; nil when the locking script already
	// hard-codes the base point.
	P [3]*big.Int
	// Scalar is the multiplier a.
	Scalar *big.Int
	// MaxMultiplier bounds a; the round count is floor(log2(MaxMultiplier)).
	MaxMultiplier *big.Int
	LoadModulus   bool
	LoadPoint     bool
	Modulus       *big.Int
}

// ToUnlockingScript emits, in push order (first pushed ends up deepest):
// the modulus (if LoadModulus), then the marker stream for Scalar, then the
// point coordinates (if LoadPoint).
//
// Marker encoding (spec §9 "Unrolled scalar multiplication marker
// encoding"): let M = floor(log2(MaxMultiplier)). If Scalar == 0, the stream
// is OP_1 followed by M copies of OP_0. Otherwise, with exp_a the bits of
// Scalar from most significant to least and N = len(exp_a)-1, the stream is
// OP_0 (the "is-a-zero" marker), then for each bit of exp_a[1:] taken from
// least significant to most significant: OP_1 OP_1 if the bit is 1,
// OP_0 OP_1 if it is 0, then M-N copies of OP_0.
func (k UnrolledMultiplicationUnlockingKey) ToUnlockingScript() opcode.Script {
	out := opcode.New()

	if k.LoadModulus {
		out = out.Append(opcode.NumsToScript([]*big.Int{k.Modulus}))
	}

	m := log2Floor(k.MaxMultiplier)

	if k.Scalar.Sign() == 0 {
		out = out.AppendOps(opcode.OP_1)
		for i := 0; i < m; i++ {
			out = out.AppendOps(opcode.OP_0)
		}
	} else {
		bitLen := k.Scalar.BitLen()
		n := bitLen - 1

		out = out.AppendOps(opcode.OP_0)

		// exp_a[1:] from least to most significant: bits 0 up to n-1.
		for i := 0; i < n; i++ {
			if k.Scalar.Bit(i) == 1 {
				out = out.AppendOps(opcode.OP_1, opcode.OP_1)
			} else {
				out = out.AppendOps(opcode.OP_0, opcode.OP_1)
			}
		}
		for i := 0; i < m-n; i++ {
			out = out.AppendOps(opcode.OP_0)
		}
	}

	if k.LoadPoint {
		out = out.Append(opcode.NumsToScript([]*big.Int{k.P[0], k.P[1], k.P[2]}))
	}

	return out
}
