package curve

import (
	"math/big"

	"github.com/bsv-blockchain/go-zkscript/opcode"
	"github.com/bsv-blockchain/go-zkscript/primitive"
	"github.com/bsv-blockchain/go-zkscript/stackmodel"
)

// G1 is the builder for affine and projective elliptic-curve arithmetic over
// the base field F_q (spec §4.4): every curve whose group law this module
// exposes directly over F_q — BLS12-381's G1, MNT4-753's G1, and secp256k1 —
// shares this single builder, parameterised by its own A, B and modulus.
type G1 struct {
	Modulus *big.Int
	A       *big.Int
	B       *big.Int
}

// NewG1 constructs a G1 builder for the short Weierstrass curve y^2 = x^3 +
// A*x + B over F_q.
func NewG1(q, a, b *big.Int) G1 {
	return G1{Modulus: q, A: a, B: b}
}

// PointAddition computes P+Q in affine coordinates given a precomputed
// gradient lambda = (y_Q - y_P)/(x_Q - x_P): x_R = lambda^2 - x_P - x_Q, y_R
// = lambda*(x_P - x_R) - y_P (spec §4.4 `point_addition`). It does not handle
// P = ±Q or either point being the point at infinity; callers needing that
// must go through PointAdditionWithUnknownPoints.
//
// lambda must be supplied deeper than P, which must be supplied deeper than
// Q (spec §4.1 `check_order`).
func (g G1) PointAddition(lambda ScalarOperand, p, q AffineOperand, params ScriptParameters) (opcode.Script, error) {
	if err := stackmodel.CheckOrder([]stackmodel.Position{lambda.Position, p.Position.StackPosition(), q.Position.StackPosition()}); err != nil {
		return nil, err
	}

	body := primitive.MoveChain([]primitive.Operand{lambda.moveOperand(), p.moveOperand(), q.moveOperand()})

	fr := primitive.NewFrame(
		primitive.Slot{Name: "lambda", Degree: 1},
		primitive.Slot{Name: "yP", Degree: 1}, primitive.Slot{Name: "xP", Degree: 1},
		primitive.Slot{Name: "yQ", Degree: 1}, primitive.Slot{Name: "xQ", Degree: 1},
	)

	body = body.Append(affineAdditionFormula(fr))
	return finalize(g.Modulus, params, body)
}

// affineAdditionFormula runs x_R = lambda^2 - x_P - x_Q, y_R = lambda*(x_P -
// x_R) - y_P against fr, which must hold exactly the slots lambda, yP, xP,
// yQ, xQ (top to bottom, degree 1 each) — the layout PointAddition's own
// MoveChain produces, and the layout the `both_finite` arm of
// PointAdditionWithUnknownPoints reduces to once its flag checks are spent.
// y_Q never appears in the formula itself, so it is dropped immediately.
// fr ends at [yR, xR].
func affineAdditionFormula(fr *primitive.Frame) opcode.Script {
	body := opcode.New()

	body = body.Append(fr.Roll("yQ", "yQ")).Append(fr.DropTop("yQ"))

	// lambdaSq = lambda^2 (lambda still needed again below: pick)
	body = body.Append(fr.Pick("lambda", "t_lambda")).AppendOps(opcode.OP_DUP, opcode.OP_MUL)
	fr.ConsumeTop("t_lambda")
	fr.PushComputed("lambdaSq", 1)

	// t1 = lambdaSq - xP (xP needed again below: pick)
	body = body.Append(fr.Roll("lambdaSq", "lambdaSq")).Append(fr.Pick("xP", "t_xP")).AppendOps(opcode.OP_SUB)
	fr.ConsumeTop("t_xP", "lambdaSq")
	fr.PushComputed("t1", 1)

	// xR = t1 - xQ (xQ's only use: roll)
	body = body.Append(fr.Roll("t1", "t1")).Append(fr.Roll("xQ", "xQ")).AppendOps(opcode.OP_SUB)
	fr.ConsumeTop("xQ", "t1")
	fr.PushComputed("xR", 1)

	// t2 = xP - xR (xP's last use: roll; xR also needed as output: pick)
	body = body.Append(fr.Roll("xP", "xP")).Append(fr.Pick("xR", "t_xR")).AppendOps(opcode.OP_SUB)
	fr.ConsumeTop("t_xR", "xP")
	fr.PushComputed("t2", 1)

	// t3 = lambda * t2 (lambda's last use: roll)
	body = body.Append(fr.Roll("t2", "t2")).Append(fr.Roll("lambda", "lambda")).AppendOps(opcode.OP_MUL)
	fr.ConsumeTop("lambda", "t2")
	fr.PushComputed("t3", 1)

	// yR = t3 - yP (yP's last use: roll)
	body = body.Append(fr.Roll("t3", "t3")).Append(fr.Roll("yP", "yP")).AppendOps(opcode.OP_SUB)
	fr.ConsumeTop("yP", "t3")
	fr.PushComputed("yR", 1)

	return body
}

// PointDoubling computes 2P in affine coordinates given a precomputed
// gradient lambda = (3*x_P^2 + A)/(2*y_P): x_R = lambda^2 - 2*x_P, y_R =
// lambda*(x_P - x_R) - y_P (spec §4.4 `point_doubling`).
//
// lambda must be supplied deeper than P.
func (g G1) PointDoubling(lambda ScalarOperand, p AffineOperand, params ScriptParameters) (opcode.Script, error) {
	if err := stackmodel.CheckOrder([]stackmodel.Position{lambda.Position, p.Position.StackPosition()}); err != nil {
		return nil, err
	}

	body := primitive.MoveChain([]primitive.Operand{lambda.moveOperand(), p.moveOperand()})

	fr := primitive.NewFrame(
		primitive.Slot{Name: "lambda", Degree: 1},
		primitive.Slot{Name: "yP", Degree: 1}, primitive.Slot{Name: "xP", Degree: 1},
	)

	// lambdaSq = lambda^2 (lambda needed again below: pick)
	body = body.Append(fr.Pick("lambda", "t_lambda")).AppendOps(opcode.OP_DUP, opcode.OP_MUL)
	fr.ConsumeTop("t_lambda")
	fr.PushComputed("lambdaSq", 1)

	// twoXp = 2*xP (xP needed again below: pick)
	body = body.Append(fr.Pick("xP", "t_xP")).AppendOps(opcode.OP_DUP, opcode.OP_ADD)
	fr.ConsumeTop("t_xP")
	fr.PushComputed("twoXp", 1)

	// xR = lambdaSq - twoXp
	body = body.Append(fr.Roll("lambdaSq", "lambdaSq")).Append(fr.Roll("twoXp", "twoXp")).AppendOps(opcode.OP_SUB)
	fr.ConsumeTop("twoXp", "lambdaSq")
	fr.PushComputed("xR", 1)

	// t2 = xP - xR (xP's last use: roll; xR also needed as output: pick)
	body = body.Append(fr.Roll("xP", "xP")).Append(fr.Pick("xR", "t_xR")).AppendOps(opcode.OP_SUB)
	fr.ConsumeTop("t_xR", "xP")
	fr.PushComputed("t2", 1)

	// t3 = lambda * t2 (lambda's last use: roll)
	body = body.Append(fr.Roll("t2", "t2")).Append(fr.Roll("lambda", "lambda")).AppendOps(opcode.OP_MUL)
	fr.ConsumeTop("lambda", "t2")
	fr.PushComputed("t3", 1)

	// yR = t3 - yP (yP's last use: roll)
	body = body.Append(fr.Roll("t3", "t3")).Append(fr.Roll("yP", "yP")).AppendOps(opcode.OP_SUB)
	fr.ConsumeTop("yP", "t3")
	fr.PushComputed("yR", 1)

	return finalize(g.Modulus, params, body)
}

// PointAdditionWithUnknownPoints computes P+Q without assuming P, Q are
// finite and distinct up to sign (spec §4.4
// `point_addition_with_unknown_points`). Unlike PointAddition/PointDoubling
// it cannot be a single straight-line formula: whether P or Q is the point
// at infinity, or Q = -P, is a property of the witness only known at
// unlocking time, so the builder emits a genuine runtime branch. P and Q are
// each represented with the infinity sentinel of two zero coordinates (spec
// §4.4); lambda is still supplied by the witness for the `both_finite`
// branch, exactly as PointAddition expects.
//
// lambda must be supplied deeper than P, which must be supplied deeper than
// Q.
func (g G1) PointAdditionWithUnknownPoints(lambda ScalarOperand, p, q AffineOperand, params ScriptParameters) (opcode.Script, error) {
	if err := stackmodel.CheckOrder([]stackmodel.Position{lambda.Position, p.Position.StackPosition(), q.Position.StackPosition()}); err != nil {
		return nil, err
	}

	body := primitive.MoveChain([]primitive.Operand{lambda.moveOperand(), p.moveOperand(), q.moveOperand()})

	fr := primitive.NewFrame(
		primitive.Slot{Name: "lambda", Degree: 1},
		primitive.Slot{Name: "yP", Degree: 1}, primitive.Slot{Name: "xP", Degree: 1},
		primitive.Slot{Name: "yQ", Degree: 1}, primitive.Slot{Name: "xQ", Degree: 1},
	)

	// Compute the three runtime flags first, leaving lambda/P/Q untouched:
	// whether the witness is asserting P or Q is the point at infinity (both
	// coordinates zero), and whether P == -Q (same x, opposite y). None of
	// these can be decided at compile time, so they are materialised as
	// stack booleans and the rest of the builder branches on them with
	// OP_IF/OP_ELSE.
	body = body.Append(isZeroPairFlag(fr, "xP", "yP", "isPInf"))
	body = body.Append(isZeroPairFlag(fr, "xQ", "yQ", "isQInf"))
	body = body.Append(isPEqNegQFlag(fr))

	// fr now holds [isPEqNegQ, isQInf, isPInf, lambda, yP, xP, yQ, xQ]. Roll
	// isPInf to the top to branch on it; every arm below is built against a
	// fresh Frame reconstructed at the exact same slot layout that remains
	// once the flag being tested has been consumed by OP_IF, since the two
	// arms of a branch diverge and can no longer share one Frame.
	body = body.Append(fr.Roll("isPInf", "isPInf"))
	body = body.AppendOps(opcode.OP_IF)
	fr.ConsumeTop("isPInf")
	afterPInfCheck := fr.Names() // [isPEqNegQ, isQInf, lambda, yP, xP, yQ, xQ]

	// P_is_inf: infinity + Q = Q.
	trueFrame := primitive.NewFrame(slotsFor(afterPInfCheck)...)
	body = body.Append(dropNamed(trueFrame, "isPEqNegQ", "isQInf", "lambda", "yP", "xP"))
	// trueFrame ends at [yQ, xQ], already in [yR, xR] convention.

	body = body.AppendOps(opcode.OP_ELSE)
	elseFrame := primitive.NewFrame(slotsFor(afterPInfCheck)...)
	body = body.Append(elseFrame.Roll("isQInf", "isQInf"))
	body = body.AppendOps(opcode.OP_IF)
	elseFrame.ConsumeTop("isQInf")
	afterQInfCheck := elseFrame.Names() // [isPEqNegQ, lambda, yP, xP, yQ, xQ]

	// Q_is_inf: P + infinity = P.
	qInfTrueFrame := primitive.NewFrame(slotsFor(afterQInfCheck)...)
	body = body.Append(dropNamed(qInfTrueFrame, "isPEqNegQ", "lambda", "yQ", "xQ"))
	// qInfTrueFrame ends at [yP, xP].

	body = body.AppendOps(opcode.OP_ELSE)
	qInfElseFrame := primitive.NewFrame(slotsFor(afterQInfCheck)...)
	body = body.Append(qInfElseFrame.Roll("isPEqNegQ", "isPEqNegQ"))
	body = body.AppendOps(opcode.OP_IF)
	qInfElseFrame.ConsumeTop("isPEqNegQ")
	afterEqNegCheck := qInfElseFrame.Names() // [lambda, yP, xP, yQ, xQ]

	// P_eq_minus_Q: result is the point at infinity.
	eqNegTrueFrame := primitive.NewFrame(slotsFor(afterEqNegCheck)...)
	body = body.Append(dropNamed(eqNegTrueFrame, "lambda", "yP", "xP", "yQ", "xQ"))
	body = body.Append(opcode.PushInt(big.NewInt(0))).Append(opcode.PushInt(big.NewInt(0)))
	// leaves the infinity sentinel [0, 0] = [yR, xR].

	body = body.AppendOps(opcode.OP_ELSE)
	// both_finite: afterEqNegCheck is exactly PointAddition's own
	// precondition layout, so the same straight-line formula applies.
	bothFiniteFrame := primitive.NewFrame(slotsFor(afterEqNegCheck)...)
	body = body.Append(affineAdditionFormula(bothFiniteFrame))
	body = body.AppendOps(opcode.OP_ENDIF)

	body = body.AppendOps(opcode.OP_ENDIF)
	body = body.AppendOps(opcode.OP_ENDIF)

	return finalize(g.Modulus, params, body)
}

// slotsFor rebuilds a Frame's slot list (all degree 1, the only degree this
// builder's flags and coordinates ever use) from a name list, so a branch
// that diverges from a shared Frame state can continue with its own
// independent copy.
func slotsFor(names []string) []primitive.Slot {
	slots := make([]primitive.Slot, len(names))
	for i, n := range names {
		slots[i] = primitive.Slot{Name: n, Degree: 1}
	}
	return slots
}

// dropNamed rolls each named slot to the top and drops it, in the order
// given.
func dropNamed(fr *primitive.Frame, names ...string) opcode.Script {
	body := opcode.New()
	for _, name := range names {
		body = body.Append(fr.Roll(name, name)).Append(fr.DropTop(name))
	}
	return body
}

// isZeroPairFlag pushes a boolean recording whether the named x and y slots
// (each degree 1) are both zero, without disturbing them.
func isZeroPairFlag(fr *primitive.Frame, xName, yName, outName string) opcode.Script {
	body := opcode.New()

	body = body.Append(fr.Pick(xName, xName+"_c")).Append(fr.Pick(yName, yName+"_c"))
	body = body.Append(opcode.PushInt(big.NewInt(0))).AppendOps(opcode.OP_EQUAL)
	fr.ConsumeTop(yName + "_c")
	fr.PushComputed(yName+"Zero", 1)

	body = body.Append(fr.Roll(xName+"_c", xName+"_c"))
	body = body.Append(opcode.PushInt(big.NewInt(0))).AppendOps(opcode.OP_EQUAL)
	fr.ConsumeTop(xName + "_c")
	fr.PushComputed(xName+"Zero", 1)

	body = body.AppendOps(opcode.OP_BOOLAND)
	fr.ConsumeTop(xName+"Zero", yName+"Zero")
	fr.PushComputed(outName, 1)

	return body
}

// isPEqNegQFlag pushes a boolean recording whether xP == xQ and yP == -yQ,
// without disturbing xP, yP, xQ, yQ.
func isPEqNegQFlag(fr *primitive.Frame) opcode.Script {
	body := opcode.New()

	body = body.Append(fr.Pick("xP", "xP_c2")).Append(fr.Pick("xQ", "xQ_c2")).AppendOps(opcode.OP_EQUAL)
	fr.ConsumeTop("xQ_c2", "xP_c2")
	fr.PushComputed("xEq", 1)

	body = body.Append(fr.Pick("yP", "yP_c2")).Append(fr.Pick("yQ", "yQ_c2")).AppendOps(opcode.OP_ADD)
	fr.ConsumeTop("yQ_c2", "yP_c2")
	fr.PushComputed("ySum", 1)
	body = body.Append(opcode.PushInt(big.NewInt(0))).AppendOps(opcode.OP_EQUAL)
	fr.ConsumeTop("ySum")
	fr.PushComputed("yEq", 1)

	body = body.AppendOps(opcode.OP_BOOLAND)
	fr.ConsumeTop("yEq", "xEq")
	fr.PushComputed("isPEqNegQ", 1)

	return body
}
