package pairing

import (
	"errors"

	"github.com/bsv-blockchain/go-zkscript/curve"
	"github.com/bsv-blockchain/go-zkscript/opcode"
	"github.com/bsv-blockchain/go-zkscript/primitive"
	"github.com/bsv-blockchain/go-zkscript/stackmodel"
	"github.com/bsv-blockchain/go-zkscript/towers"
)

// pushFq12One pushes the F_q12 multiplicative identity (a1=0, a0=1) as
// twelve literal scalars, low-to-high so the convention's "a1 on top" rule
// ends up satisfied.
func pushFq12One() opcode.Script {
	body := opcode.New().AppendOps(opcode.OP_1)
	for i := 0; i < 11; i++ {
		body = body.AppendOps(opcode.OP_0)
	}
	return body
}

// fq2At builds a towers.Operand for an F_q2 value currently occupying the
// two stack scalars ending at `depth` (stackmodel.Position.Depth is always
// the deeper of an element's own scalars, so depth must be at least 1).
func fq2At(depth int, rolled bool) towers.Operand {
	return towers.Operand{Position: stackmodel.MustNew(depth, 2, false), Rolled: rolled}
}

// fq12At builds a towers.Fq12Operand for an F_q12 value currently occupying
// the twelve stack scalars ending at `depth` (depth must be at least 11,
// the same constraint fq2At's comment describes for F_q2).
func fq12At(depth int, rolled bool) towers.Fq12Operand {
	return towers.Fq12Operand{Position: stackmodel.MustNew(depth, 12, false), Rolled: rolled}
}

// g2At builds a curve.AffineOperand for a G2 point (each coordinate F_q2,
// X the shallower pair and Y the deeper, matching curve.G2's own fixtures)
// whose Y scalars' deep boundary — the point's own overall Position.Depth
// — sits at `depth` (so the point as a whole spans [depth-3, depth]; depth
// must be at least 3).
func g2At(depth int, rolled bool) curve.AffineOperand {
	return curve.AffineOperand{
		Position: stackmodel.AffinePoint{
			X: stackmodel.MustNew(depth-2, 2, false),
			Y: stackmodel.MustNew(depth, 2, false),
		},
		Rolled: rolled,
	}
}

// MillerLoopRound emits one step of the unrolled Miller loop (spec §4.6),
// matching the reference pseudocode's loop body:
//
//	f <- f^2; (f,T) <- (f * l_{T,T}(P), 2T)
//	if digit != 0: (f,T) <- (f * l_{T,sign(digit)*Q}(P), T + sign(digit)*Q)
//
// T (the running twist accumulator) and f (the running F_q12 accumulator)
// are expected resident on the stack, T above f, before this round's
// witnesses. Every algebraic witness the round needs — the doubling
// gradient, the evaluation-point scalars xNegOverY/yInv (re-supplied fresh
// for the add step too, rather than amortized across both line evaluations
// of the round, the same simplicity curve.G1.UnrolledScalarMultiplication
// and curve.FixedBaseMSM already settle for), the addition gradient and Q's
// affine coordinates when digit != 0 — is expected pushed by the unlocking
// key directly on top of T, in the order the unlocking key pushes them
// (first pushed ends up deepest, closest to T):
//
//	lambdaDoubleLine, xNegOverY, yInv, lambdaDoublePoint,
//	[lambdaAddLine, xNegOverY, yInv, lambdaAddPoint, Q -- only if digit != 0]
//
// Each round leaves T above f again, so rounds compose directly.
func (s Sextic) MillerLoopRound(g2 curve.G2, digit int, params ScriptParameters) (opcode.Script, error) {
	body := opcode.New()

	// stack: lambdaDoublePoint(2), yInv(2), xNegOverY(2), lambdaDoubleLine(2), T.X(2), T.Y(2), f(12)
	sq, err := s.Fq12.Square(fq12At(23, true), towers.ScriptParameters{})
	if err != nil {
		return nil, err
	}
	body = body.Append(sq)
	// stack: f^2(12), lambdaDoublePoint(2), yInv(2), xNegOverY(2), lambdaDoubleLine(2), T.X(2), T.Y(2)

	body = body.Append(primitive.Pick(23, 4))
	// stack: T.X(2)[copy], T.Y(2)[copy], f^2(12), lambdaDoublePoint(2), yInv(2), xNegOverY(2), lambdaDoubleLine(2), T.X(2), T.Y(2)

	lineDouble, err := s.Evaluate(fq2At(23, true), fq2At(21, true), fq2At(19, true), g2At(3, true), ScriptParameters{})
	if err != nil {
		return nil, err
	}
	body = body.Append(lineDouble)
	// stack: lineDouble(12), f^2(12), lambdaDoublePoint(2), T.X(2), T.Y(2)

	mul1, err := s.Fq12.Multiply(fq12At(23, true), fq12At(11, true), towers.ScriptParameters{})
	if err != nil {
		return nil, err
	}
	body = body.Append(mul1)
	// stack: f'(12), lambdaDoublePoint(2), T.X(2), T.Y(2)

	body = body.Append(primitive.Roll(17, 4))
	// stack: T.X(2), T.Y(2), f'(12), lambdaDoublePoint(2)

	dbl, err := g2.PointDoubling(fq2At(17, true), g2At(3, true), curve.ScriptParameters{})
	if err != nil {
		return nil, err
	}
	body = body.Append(dbl)
	// stack: T'.X(2), T'.Y(2), f'(12)

	if digit != 0 {
		// fresh witnesses for the add step, pushed on top of T', f' (Q
		// shallowest/pushed last, lambdaAddLine deepest-of-new/pushed first,
		// adjacent to T', mirroring the double step's witness order):
		// stack: Q.X(2), Q.Y(2), lambdaAddPoint(2), yInv(2), xNegOverY(2), lambdaAddLine(2), T'.X(2), T'.Y(2), f'(12)
		body = body.Append(primitive.Pick(15, 4))
		// stack: T'.X(2)[copy], T'.Y(2)[copy], Q.X(2), Q.Y(2), lambdaAddPoint(2), yInv(2), xNegOverY(2), lambdaAddLine(2), T'.X(2), T'.Y(2), f'(12)

		lineAdd, err := s.Evaluate(fq2At(15, true), fq2At(13, true), fq2At(11, true), g2At(3, true), ScriptParameters{})
		if err != nil {
			return nil, err
		}
		body = body.Append(lineAdd)
		// stack: lineAdd(12), Q.X(2), Q.Y(2), lambdaAddPoint(2), T'.X(2), T'.Y(2), f'(12)

		mul2, err := s.Fq12.Multiply(fq12At(33, true), fq12At(11, true), towers.ScriptParameters{})
		if err != nil {
			return nil, err
		}
		body = body.Append(mul2)
		// stack: f''(12), Q.X(2), Q.Y(2), lambdaAddPoint(2), T'.X(2), T'.Y(2)

		body = body.Append(primitive.Roll(21, 4))
		// stack: T'.X(2), T'.Y(2), f''(12), Q.X(2), Q.Y(2), lambdaAddPoint(2)

		body = body.Append(primitive.Roll(19, 4))
		// stack: Q.X(2), Q.Y(2), T'.X(2), T'.Y(2), f''(12), lambdaAddPoint(2)

		add, err := g2.PointAddition(fq2At(21, true), g2At(7, true), g2At(3, true), curve.ScriptParameters{})
		if err != nil {
			return nil, err
		}
		body = body.Append(add)
		// stack: T''.X(2), T''.Y(2), f''(12)
	}

	return finalize(s.Fq2.Modulus, params, body)
}

// SingleMillerLoop composes MillerLoopRound over the full MSB-to-LSB digit
// expansion of a curve's Miller-loop exponent (spec §4.6), starting from
// T = Q (the second pairing argument, already on the stack) and f = 1.
func (s Sextic) SingleMillerLoop(g2 curve.G2, q curve.AffineOperand, digits []int, params ScriptParameters) (opcode.Script, error) {
	if len(digits) == 0 {
		return nil, errEmptyDigits
	}

	// f = 1 is pushed first so T ends up shallower than f once Q is rolled on
	// top of it (MillerLoopRound expects T above f, not the reverse).
	body := pushFq12One()
	body = body.Append(primitive.MoveChain([]primitive.Operand{
		{Position: q.Position.StackPosition().Shift(12), Rolled: q.Rolled},
	}))

	for _, digit := range digits[1:] {
		round, err := s.MillerLoopRound(g2, digit, params)
		if err != nil {
			return nil, err
		}
		body = body.Append(round)
	}

	return body, nil
}

var errEmptyDigits = errors.New("pairing: empty Miller-loop digit expansion")
