package pairing

import (
	"github.com/bsv-blockchain/go-zkscript/curve"
	"github.com/bsv-blockchain/go-zkscript/opcode"
	"github.com/bsv-blockchain/go-zkscript/primitive"
	"github.com/bsv-blockchain/go-zkscript/stackmodel"
	"github.com/bsv-blockchain/go-zkscript/towers"
)

// TripleMillerLoopRound folds the line evaluations of three independent
// (T_i, Q_i) pairs into a single running f for one digit of the shared
// Miller-loop exponent (spec §4.6 "Triple Miller loop"): same control flow
// as MillerLoopRound, fold three line evaluations into f and double (or
// double-and-add) all three T_i in the same round instead of running three
// independent single loops end to end — this is what lets a three-pairing
// Groth16 check amortise one accumulator squaring across all three terms
// rather than paying for it three times over.
//
// T_0, T_1, T_2 and f are expected resident on the stack in that order (the
// three T_i shallower than f, in any relative order among themselves — the
// round processes "whichever T_i is currently shallowest" three times and
// restores the same three-points-then-f shape at the end, so which T_i ends
// up in which slot is not itself meaningful across rounds). Before each of
// the three sub-steps the unlocking key pushes that sub-step's witnesses
// directly on top, using the same lambdaDoubleLine/xNegOverY/yInv/
// lambdaDoublePoint (and, if the shared digit is nonzero,
// lambdaAddLine/xNegOverY/yInv/lambdaAddPoint/Q) convention
// MillerLoopRound documents.
func (s Sextic) TripleMillerLoopRound(g2 curve.G2, digits [3]int, params ScriptParameters) (opcode.Script, error) {
	body := opcode.New()

	// stack: lambdaDoublePoint(2), yInv(2), xNegOverY(2), lambdaDoubleLine(2), T_shallow.X(2), T_shallow.Y(2), T_mid(4), T_deep(4), f(12)
	sq, err := s.Fq12.Square(fq12At(31, true), towers.ScriptParameters{})
	if err != nil {
		return nil, err
	}
	body = body.Append(sq)
	// Square leaves f^2 on top; roll the 20 scalars above it back up so f^2
	// sits beneath the witnesses and the three T_i again.
	body = body.Append(primitive.Roll(31, 20))

	for i := 0; i < 3; i++ {
		if i > 0 {
			// unlocking key pushes this sub-step's fresh double witnesses on
			// top of the still-canonical T_shallow/T_mid/T_deep/f shape
			// (stack: lambdaDoublePoint(2), yInv(2), xNegOverY(2), lambdaDoubleLine(2), T_shallow(4), T_mid(4), T_deep(4), f(12))
		}

		body = body.Append(primitive.Pick(11, 4))
		// stack: T_shallow.X(2)[copy], T_shallow.Y(2)[copy], lambdaDoublePoint(2), yInv(2), xNegOverY(2), lambdaDoubleLine(2), T_shallow(4), T_mid(4), T_deep(4), f(12)

		lineDouble, err := s.Evaluate(fq2At(11, true), fq2At(9, true), fq2At(7, true), g2At(3, true), ScriptParameters{})
		if err != nil {
			return nil, err
		}
		body = body.Append(lineDouble)
		// stack: lineDouble(12), lambdaDoublePoint(2), T_shallow(4), T_mid(4), T_deep(4), f(12)

		mul, err := s.Fq12.Multiply(fq12At(37, true), fq12At(11, true), towers.ScriptParameters{})
		if err != nil {
			return nil, err
		}
		body = body.Append(mul)
		// stack: f'(12), lambdaDoublePoint(2), T_shallow(4), T_mid(4), T_deep(4)

		body = body.Append(primitive.Roll(17, 4))
		// stack: T_shallow(4), f'(12), lambdaDoublePoint(2), T_mid(4), T_deep(4)

		dbl, err := g2.PointDoubling(fq2At(17, true), g2At(3, true), curve.ScriptParameters{})
		if err != nil {
			return nil, err
		}
		body = body.Append(dbl)
		// stack: T_shallow'(4), f'(12), T_mid(4), T_deep(4)

		body = body.Append(primitive.Roll(19, 4))
		body = body.Append(primitive.Roll(23, 4))
		// stack: T_deep(4), T_mid(4), T_shallow'(4), f'(12) -- canonical shape restored
	}

	if digits[0] != 0 || digits[1] != 0 || digits[2] != 0 {
		for i := 0; i < 3; i++ {
			// unlocking key pushes this sub-step's fresh add witnesses on
			// top of the canonical shape:
			// stack: Q.X(2), Q.Y(2), lambdaAddPoint(2), yInv(2), xNegOverY(2), lambdaAddLine(2), T_shallow(4), T_mid(4), T_deep(4), f(12)
			body = body.Append(primitive.Pick(15, 4))
			// stack: T_shallow(4)[copy], Q(4), lambdaAddPoint(2), yInv(2), xNegOverY(2), lambdaAddLine(2), T_shallow(4), T_mid(4), T_deep(4), f(12)

			lineAdd, err := s.Evaluate(fq2At(15, true), fq2At(13, true), fq2At(11, true), g2At(3, true), ScriptParameters{})
			if err != nil {
				return nil, err
			}
			body = body.Append(lineAdd)
			// stack: lineAdd(12), Q(4), lambdaAddPoint(2), T_shallow(4), T_mid(4), T_deep(4), f(12)

			mul2, err := s.Fq12.Multiply(fq12At(41, true), fq12At(11, true), towers.ScriptParameters{})
			if err != nil {
				return nil, err
			}
			body = body.Append(mul2)
			// stack: f'(12), Q(4), lambdaAddPoint(2), T_shallow(4), T_mid(4), T_deep(4)

			body = body.Append(primitive.Roll(21, 4))
			// stack: T_shallow(4), f'(12), Q(4), lambdaAddPoint(2), T_mid(4), T_deep(4)

			body = body.Append(primitive.Roll(19, 4))
			// stack: Q(4), T_shallow(4), f'(12), lambdaAddPoint(2), T_mid(4), T_deep(4)

			add, err := g2.PointAddition(fq2At(21, true), g2At(7, true), g2At(3, true), curve.ScriptParameters{})
			if err != nil {
				return nil, err
			}
			body = body.Append(add)
			// stack: T_shallow''(4), f'(12), T_mid(4), T_deep(4)

			body = body.Append(primitive.Roll(19, 4))
			body = body.Append(primitive.Roll(23, 4))
			// stack: T_deep(4), T_mid(4), T_shallow''(4), f'(12) -- canonical shape restored
		}
	}

	return finalize(s.Fq2.Modulus, params, body)
}

// TripleMillerLoop composes TripleMillerLoopRound over a shared MSB-to-LSB
// digit expansion (the same exponent table applies to every one of the
// three pairings being combined), starting from T_i = Q_i for all three and
// f = 1.
func (s Sextic) TripleMillerLoop(g2 curve.G2, qs [3]curve.AffineOperand, digits []int, params ScriptParameters) (opcode.Script, error) {
	if len(digits) == 0 {
		return nil, errEmptyDigits
	}

	if err := stackmodel.CheckOrder([]stackmodel.Position{
		qs[0].Position.StackPosition(), qs[1].Position.StackPosition(), qs[2].Position.StackPosition(),
	}); err != nil {
		return nil, err
	}

	// f = 1 is pushed first so all three T_i end up shallower than f once
	// they are rolled on top of it (TripleMillerLoopRound expects every T_i
	// above f, not the reverse).
	body := pushFq12One()
	body = body.Append(primitive.MoveChain([]primitive.Operand{
		{Position: qs[0].Position.StackPosition().Shift(12), Rolled: qs[0].Rolled},
		{Position: qs[1].Position.StackPosition().Shift(12), Rolled: qs[1].Rolled},
		{Position: qs[2].Position.StackPosition().Shift(12), Rolled: qs[2].Rolled},
	}))

	for _, digit := range digits[1:] {
		round, err := s.TripleMillerLoopRound(g2, [3]int{digit, digit, digit}, params)
		if err != nil {
			return nil, err
		}
		body = body.Append(round)
	}

	return body, nil
}
