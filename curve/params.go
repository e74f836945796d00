// Package curve implements the elliptic-curve arithmetic layer of spec
// §4.4: affine and projective point operations, unrolled scalar
// multiplication, and fixed-base multi-scalar multiplication, built the same
// "move operands to a local Frame, then run a fixed formula" way the towers
// package builds field-extension arithmetic.
package curve

import (
	"math/big"

	"github.com/bsv-blockchain/go-zkscript/opcode"
	"github.com/bsv-blockchain/go-zkscript/primitive"
	"github.com/bsv-blockchain/go-zkscript/zkslog"
)

// ScriptParameters is the uniform contract (spec §4.3) threaded through
// every curve-level builder, identical in shape to field.ScriptParameters
// and towers.ScriptParameters: each algebraic layer owns its own copy of the
// flag bundle rather than sharing a type across packages.
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
		zkslog.Logger().Debug().Str("field", "curve").Msg("inserting modular reduction")
		out = out.Append(primitive.PrepareConstant(params.ConstantLocation))
		modScript, err := primitive.Mod(params.modOptions())
		if err != nil {
			return nil, err
		}
		out = out.Append(modScript)
	}
	return out, nil
}

// log2Floor returns floor(log2(n)) for a positive n, the round-count formula
// shared by the unrolled-multiplication locking script and its unlocking key
// (`M = floor(log2(max_multiplier))`).
func log2Floor(n *big.Int) int {
	return n.BitLen() - 1
}

// reorderToTop rolls each named slot to the top in the order given, so the
// last name ends up shallowest; pass final coordinates deepest-desired-first
// to land them in whatever convention the caller wants on top. Mirrors
// towers.reorderToTop.
func reorderToTop(fr *primitive.Frame, names ...string) opcode.Script {
	body := opcode.New()
	for _, name := range names {
		body = body.Append(fr.Roll(name, name))
	}
	return body
}
