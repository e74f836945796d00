package curve

import (
	"context"
	"math/big"

	"golang.org/x/sync/errgroup"

	"github.com/bsv-blockchain/go-zkscript/opcode"
	"github.com/bsv-blockchain/go-zkscript/primitive"
	"github.com/bsv-blockchain/go-zkscript/zkslog"
)

// FixedBaseTerm is one `a_i * P_i` term of a fixed-base multi-scalar
// multiplication: the base point is hard-coded into the emitted script as a
// literal, only the scalar is supplied by the witness.
type FixedBaseTerm struct {
	Base          [3]*big.Int
	MaxMultiplier *big.Int
}

// FixedBaseMSM computes Σ a_i*P_i for a list of fixed bases (spec §4.4 "MSM
// with fixed bases"): for each term, push P_i as a literal, run the
// unrolled multiplication, move a_i*P_i to the alt-stack, drop P_i; once
// every term's product has been computed this way, pull them back off the
// alt-stack and fold them together with AdditionWithUnknownPoints, which
// handles any term collapsing to the point at infinity.
func (g G1) FixedBaseMSM(terms []FixedBaseTerm, params ScriptParameters) (opcode.Script, error) {
	body := opcode.New()
	if params.CheckConstant {
		body = body.Append(primitive.VerifyBottomConstant(g.Modulus))
	}

	emitted := 0
	for _, term := range terms {
		if term.MaxMultiplier.Sign() == 0 {
			// a_i = 0 contributes nothing to the sum; skip the term entirely
			// rather than paying for an UnrolledScalarMultiplication that
			// would only ever emit the point at infinity.
			zkslog.Logger().Warn().Interface("base", term.Base).Msg("dropping zero-scalar fixed-base MSM term")
			continue
		}

		body = body.Append(opcode.NumsToScript([]*big.Int{term.Base[0], term.Base[1], term.Base[2]}))

		mulScript, err := g.UnrolledScalarMultiplication(term.MaxMultiplier, ScriptParameters{})
		if err != nil {
			return nil, err
		}
		body = body.Append(mulScript)

		// stack: [..., zP,yP,xP, zT,yT,xT] with T = a_i*P_i on top; move T to
		// the alt-stack and drop the now-unneeded base.
		body = body.AppendOps(opcode.OP_TOALTSTACK, opcode.OP_TOALTSTACK, opcode.OP_TOALTSTACK)
		body = body.AppendOps(opcode.OP_DROP, opcode.OP_DROP, opcode.OP_DROP)
		emitted++
	}

	for i := 0; i < emitted; i++ {
		body = body.AppendOps(opcode.OP_FROMALTSTACK, opcode.OP_FROMALTSTACK, opcode.OP_FROMALTSTACK)
		if i == 0 {
			continue
		}
		// the running sum sits deeper (pulled off the alt-stack in an earlier
		// iteration) than the term just pulled this iteration, so it is
		// supplied first, per AdditionWithUnknownPoints's ordering rule.
		sumScript, err := g.AdditionWithUnknownPoints(
			projAt(5, 4, 3, true),
			projAt(2, 1, 0, true),
			ScriptParameters{},
		)
		if err != nil {
			return nil, err
		}
		body = body.Append(sumScript)
	}

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

// PrecomputeFixedBaseTable runs n independent scalar-by-base witness
// multiplications concurrently (spec §9's off-chain witness generator):
// callers building an unlocking key for a FixedBaseMSM-heavy locking script
// (the Groth16 verifier's gamma_abc sum, in particular) otherwise pay for
// these multiplications one at a time. scalarMul is supplied by the caller
// (e.g. a gnark-crypto curve implementation) rather than baked in here,
// since this package has no dependency on a concrete curve arithmetic
// library of its own.
func PrecomputeFixedBaseTable(
	ctx context.Context,
	scalars []*big.Int,
	bases [][3]*big.Int,
	scalarMul func(ctx context.Context, scalar *big.Int, base [3]*big.Int) ([3]*big.Int, error),
) ([][3]*big.Int, error) {
	results := make([][3]*big.Int, len(scalars))

	g, gctx := errgroup.WithContext(ctx)
	for i := range scalars {
		i := i
		g.Go(func() error {
			product, err := scalarMul(gctx, scalars[i], bases[i])
			if err != nil {
				return err
			}
			results[i] = product
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
