// Package pairing implements the bilinear-pairing layer of spec §4.5-4.7:
// line evaluation, sparse multiplication, the (single and triple) Miller
// loop, and final exponentiation. Every builder here composes curve.G2's
// affine point arithmetic and towers.Fq12's target-field arithmetic the same
// way curve/scalarmul.go composes curve.G1's: a curve-parameter-driven,
// fully-unrolled loop over a signed-digit exponent expansion, with every
// gradient and final-exponentiation witness supplied by the prover rather
// than computed on-chain.
package pairing

import (
	"math/big"

	"github.com/bsv-blockchain/go-zkscript/opcode"
	"github.com/bsv-blockchain/go-zkscript/primitive"
	"github.com/bsv-blockchain/go-zkscript/zkslog"
)

// ScriptParameters is the uniform contract threaded through every builder in
// this package, identical in shape to towers.ScriptParameters and
// curve.ScriptParameters: each algebraic layer owns its own copy rather than
// sharing one type across packages.
type ScriptParameters struct {
	CheckConstant    bool
	TakeModulo       bool
	PositiveModulo   bool
	CleanConstant    bool
	IsConstantReused bool
	ConstantLocation primitive.ConstantLocation
}

func (params ScriptParameters) modOptions() primitive.ModOptions {
	return primitive.ModOptions{
		PositiveModulo:   params.PositiveModulo,
		CleanConstant:    params.CleanConstant,
		IsConstantReused: params.IsConstantReused,
	}
}

func finalize(q *big.Int, params ScriptParameters, body opcode.Script) (opcode.Script, error) {
	out := opcode.New()
	if params.CheckConstant {
		out = out.Append(primitive.VerifyBottomConstant(q))
	}
	out = out.Append(body)
	if params.TakeModulo {
		zkslog.Logger().Debug().Str("field", "pairing").Msg("inserting modular reduction")
		out = out.Append(primitive.PrepareConstant(params.ConstantLocation))
		modScript, err := primitive.Mod(params.modOptions())
		if err != nil {
			return nil, err
		}
		out = out.Append(modScript)
	}
	return out, nil
}

// pushFq2Zero pushes the constant (0,0) F_q2 pair as a freshly named slot
// pair, registering it with fr under outPrefix. This package builds its own
// copy of towers' pushFq2Literal/pushFq2One helpers rather than reaching into
// towers' unexported ones, since the sparse line values built here only ever
// need the zero and one constants, never an arbitrary literal.
func pushFq2Zero(fr *primitive.Frame, outPrefix string) opcode.Script {
	body := opcode.New().AppendOps(opcode.OP_0)
	fr.PushComputed(outPrefix+"0", 1)
	body = body.AppendOps(opcode.OP_0)
	fr.PushComputed(outPrefix+"1", 1)
	return body
}

// pushFq2One pushes the constant (0,1) F_q2 pair (the F_q2 multiplicative
// identity) as a freshly named slot pair.
func pushFq2One(fr *primitive.Frame, outPrefix string) opcode.Script {
	body := opcode.New().AppendOps(opcode.OP_1)
	fr.PushComputed(outPrefix+"0", 1)
	body = body.AppendOps(opcode.OP_0)
	fr.PushComputed(outPrefix+"1", 1)
	return body
}
