package pairing

import (
	"math/big"

	"github.com/bsv-blockchain/go-zkscript/opcode"
	"github.com/bsv-blockchain/go-zkscript/primitive"
	"github.com/bsv-blockchain/go-zkscript/stackmodel"
	"github.com/bsv-blockchain/go-zkscript/towers"
)

// FinalExponentiation implements spec §4.7 "Final exponentiation": the easy
// part is a single prover-supplied inverse check plus two Frobenius
// applications, the hard part a fully-unrolled cyclotomic exponentiation by
// the curve's own hard-exponent signed-digit expansion. Both parts operate
// entirely on towers.Fq12Operand values, so the same builder serves any
// curve instantiated over an F_q12 target, following the "each tower
// exposes the same small trait" redesign note the spec calls for in place
// of the original's runtime-injected field-tower dispatch.
type FinalExponentiation struct {
	Fq12 towers.Fq12
}

// NewFinalExponentiation constructs a FinalExponentiation builder over fq12.
func NewFinalExponentiation(fq12 towers.Fq12) FinalExponentiation {
	return FinalExponentiation{Fq12: fq12}
}

// assertFq12IsOne consumes the twelve scalars on top of the stack (in the
// high-coefficient-on-top convention every Fq12 builder in this module
// produces) and fails the script unless they encode the multiplicative
// identity (a1=0, a0=1) — the on-chain half of "assert f*f^-1=1" (spec
// §4.7): the expensive inversion itself never runs on-chain, only this
// cheap multiply-and-compare.
func assertFq12IsOne() opcode.Script {
	body := opcode.New()
	for i := 0; i < 11; i++ {
		body = body.AppendOps(opcode.OP_0, opcode.OP_EQUALVERIFY)
	}
	return body.AppendOps(opcode.OP_1, opcode.OP_EQUALVERIFY)
}

// EasyPart computes phi^2(f)*f^-1 given the Miller-loop output f (shallow —
// it is whatever the preceding unrolled Miller loop left on top of the
// stack) and a prover-supplied inverse fInv, pushed once by the unlocking
// key ahead of every Miller-loop witness and therefore deeper than f by the
// time this code runs. gammas/outerGamma are the curve's Frobenius
// constants (spec §3 "Field tower"), applied twice to approximate phi^2 — a
// deliberate simplification noted in this package's design ledger rather
// than deriving a dedicated q^2-exponent gamma table.
func (fe FinalExponentiation) EasyPart(f, fInv towers.Fq12Operand, gammas [3]*big.Int, outerGamma *big.Int, params ScriptParameters) (opcode.Script, error) {
	if err := stackmodel.CheckOrder([]stackmodel.Position{fInv.Position, f.Position}); err != nil {
		return nil, err
	}

	body := primitive.MoveChain([]primitive.Operand{
		{Position: fInv.Position, Rolled: fInv.Rolled},
		{Position: f.Position, Rolled: f.Rolled},
	})
	// stack: ..., f(12), fInv(12)

	mul, err := fe.Fq12.Multiply(fq12At(23, false), fq12At(11, false), towers.ScriptParameters{})
	if err != nil {
		return nil, err
	}
	body = body.Append(mul).Append(assertFq12IsOne())
	// stack: ..., f(12), fInv(12)

	phi1, err := fe.Fq12.Frobenius(fq12At(23, true), gammas, outerGamma, towers.ScriptParameters{})
	if err != nil {
		return nil, err
	}
	body = body.Append(phi1)
	// stack: ..., fInv(12), phi(f)(12)

	phi2, err := fe.Fq12.Frobenius(fq12At(11, true), gammas, outerGamma, towers.ScriptParameters{})
	if err != nil {
		return nil, err
	}
	body = body.Append(phi2)
	// stack: ..., fInv(12), phi^2(f)(12)

	result, err := fe.Fq12.Multiply(fq12At(23, true), fq12At(11, true), towers.ScriptParameters{})
	if err != nil {
		return nil, err
	}
	body = body.Append(result)

	return finalize(fe.Fq12.Base.Base.Modulus, params, body)
}

// HardPart raises a cyclotomic element (the easy part's output, which lies
// in the order-(q^6+1) subgroup) to the curve's hard exponent, fully
// unrolled over its MSB-to-LSB signed-digit expansion (spec §4.7 "Hard
// part"): square every step, multiply in x when the digit is +1 or its
// conjugate when -1. x itself (and its conjugate) must be supplied fresh by
// the unlocking key before the squaring-and-multiply step that consumes it,
// the same per-round re-supply convention MillerLoopRound documents.
func (fe FinalExponentiation) HardPart(digits []int, params ScriptParameters) (opcode.Script, error) {
	if len(digits) == 0 {
		return nil, errEmptyDigits
	}

	body := opcode.New()
	for _, digit := range digits[1:] {
		// with a nonzero digit the unlocking key has pushed x (or its
		// conjugate) fresh on top of the running cyclotomic accumulator, so
		// the accumulator sits one Fq12 width deeper than when the digit is
		// zero and nothing new was pushed.
		squareDepth := 11
		if digit != 0 {
			squareDepth = 23
		}

		sq, err := fe.Fq12.Square(fq12At(squareDepth, true), towers.ScriptParameters{})
		if err != nil {
			return nil, err
		}
		body = body.Append(sq)
		// stack: ..., witness(12)?, cyclo^2(12)

		if digit != 0 {
			mul, err := fe.Fq12.Multiply(fq12At(23, true), fq12At(11, true), towers.ScriptParameters{})
			if err != nil {
				return nil, err
			}
			body = body.Append(mul)
		}
	}

	return finalize(fe.Fq12.Base.Base.Modulus, params, body)
}
