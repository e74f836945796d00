package pairing

import (
	"math/big"

	"github.com/bsv-blockchain/go-zkscript/opcode"
	"github.com/bsv-blockchain/go-zkscript/towers"
)

// Fq12At exposes fq12At to other packages composing several of this
// package's builders in sequence (groth16's verifier, in particular), which
// need to address an already-produced Fq12 result by its depth from the
// current top of stack the same way this package's own builders do
// internally.
func Fq12At(depth int, rolled bool) towers.Fq12Operand { return fq12At(depth, rolled) }

// Fq12Literal is a compile-time-constant F_q12 value (spec §4.8's
// alpha*beta, precomputed once per circuit and baked into the locking
// script rather than supplied as a witness): a1 and a0 each an F_q6 triple
// (c2,c1,c0), each coefficient itself an F_q2 (c1,c0) pair.
type Fq12Literal struct {
	A1, A0 [3][2]*big.Int
}

func pushFq2LiteralValue(c1, c0 *big.Int) opcode.Script {
	return opcode.New().Append(opcode.PushInt(c0)).Append(opcode.PushInt(c1))
}

// PushFq12Literal pushes a compile-time Fq12 constant, high-coefficient-on
// top, matching every other builder in this module's convention.
func PushFq12Literal(v Fq12Literal) opcode.Script {
	body := opcode.New()
	for i := 2; i >= 0; i-- {
		body = body.Append(pushFq2LiteralValue(v.A0[i][0], v.A0[i][1]))
	}
	for i := 2; i >= 0; i-- {
		body = body.Append(pushFq2LiteralValue(v.A1[i][0], v.A1[i][1]))
	}
	return body
}

// AssertFq12EqualsConstant consumes the twelve scalars on top of the stack
// and fails the script unless they equal v, scalar by scalar — the
// locking-time-fixed counterpart of assertFq12IsOne, used by the Groth16
// verifier's final check against the precomputed alpha*beta value (spec
// §4.8).
func AssertFq12EqualsConstant(v Fq12Literal) opcode.Script {
	flat := make([]*big.Int, 0, 12)
	for i := 0; i < 3; i++ {
		flat = append(flat, v.A1[i][0], v.A1[i][1])
	}
	for i := 0; i < 3; i++ {
		flat = append(flat, v.A0[i][0], v.A0[i][1])
	}

	body := opcode.New()
	for _, scalar := range flat {
		body = body.Append(opcode.PushInt(scalar)).AppendOps(opcode.OP_EQUALVERIFY)
	}
	return body
}
