package curve

import (
	"math/big"

	"github.com/bsv-blockchain/go-zkscript/opcode"
	"github.com/bsv-blockchain/go-zkscript/primitive"
	"github.com/bsv-blockchain/go-zkscript/stackmodel"
)

// Addition computes Q+P in projective coordinates (spec §4.4 "Projective"):
// given P = [X,Y,Z], Q = [X',Y',Z'], every intermediate is derived purely
// from the stack, with no off-chain gradient witness. P must be supplied
// deeper than Q (spec §4.1 `check_order`).
func (g G1) Addition(p, q ProjectiveOperand, params ScriptParameters) (opcode.Script, error) {
	if err := stackmodel.CheckOrder([]stackmodel.Position{p.Position.StackPosition(), q.Position.StackPosition()}); err != nil {
		return nil, err
	}

	body := primitive.MoveChain([]primitive.Operand{p.moveOperand(), q.moveOperand()})

	fr := primitive.NewFrame(
		primitive.Slot{Name: "zP", Degree: 1}, primitive.Slot{Name: "yP", Degree: 1}, primitive.Slot{Name: "xP", Degree: 1},
		primitive.Slot{Name: "zQ", Degree: 1}, primitive.Slot{Name: "yQ", Degree: 1}, primitive.Slot{Name: "xQ", Degree: 1},
	)

	formula := g.projectiveAdditionFormula(fr, "xP", "yP", "zP", "xQ", "yQ", "zQ")
	body = body.Append(formula)
	return finalize(g.Modulus, params, body)
}

// MixedAddition computes Q+P where Q is projective and P is affine (spec
// §4.4 "Mixed addition ... drops one level of Z-dependence"): it synthesises
// z_P = 1 as a stack literal and runs the same six-intermediate formula
// Addition uses, rather than re-deriving a dedicated simplified formula.
//
// P must be supplied deeper than Q.
func (g G1) MixedAddition(p AffineOperand, q ProjectiveOperand, params ScriptParameters) (opcode.Script, error) {
	if err := stackmodel.CheckOrder([]stackmodel.Position{p.Position.StackPosition(), q.Position.StackPosition()}); err != nil {
		return nil, err
	}

	body := primitive.MoveChain([]primitive.Operand{p.moveOperand(), q.moveOperand()})

	fr := primitive.NewFrame(
		primitive.Slot{Name: "yP", Degree: 1}, primitive.Slot{Name: "xP", Degree: 1},
		primitive.Slot{Name: "zQ", Degree: 1}, primitive.Slot{Name: "yQ", Degree: 1}, primitive.Slot{Name: "xQ", Degree: 1},
	)

	// synthesise zP = 1: pushing it lands it directly above yP, xP without
	// disturbing their existing relative order.
	body = body.Append(opcode.PushInt(big.NewInt(1)))
	fr.PushComputed("zP", 1)

	formula := g.projectiveAdditionFormula(fr, "xP", "yP", "zP", "xQ", "yQ", "zQ")
	body = body.Append(formula)
	return finalize(g.Modulus, params, body)
}

// Doubling computes 2P in projective coordinates (spec §4.4 "Doubling
// specialises the same identities with P = Q"), purely on-stack.
func (g G1) Doubling(p ProjectiveOperand, params ScriptParameters) (opcode.Script, error) {
	body := primitive.Move(p.Position.StackPosition(), primitive.ModeFromBool(p.Rolled))

	fr := primitive.NewFrame(
		primitive.Slot{Name: "zP", Degree: 1}, primitive.Slot{Name: "yP", Degree: 1}, primitive.Slot{Name: "xP", Degree: 1},
	)

	pick2 := func(op opcode.Op, a, b string) {
		body = body.Append(fr.Pick(a, "t_a")).Append(fr.Pick(b, "t_b")).AppendOps(op)
		fr.ConsumeTop("t_b", "t_a")
	}
	constMul := func(value *big.Int) {
		body = body.Append(opcode.PushInt(value)).AppendOps(opcode.OP_MUL)
	}

	// t1 = X^2
	pick2(opcode.OP_MUL, "xP", "xP")
	fr.PushComputed("t1", 1)
	// t2 = 2XZ
	pick2(opcode.OP_MUL, "xP", "zP")
	constMul(big.NewInt(2))
	fr.PushComputed("t2", 1)
	// t3 = Z^2
	pick2(opcode.OP_MUL, "zP", "zP")
	fr.PushComputed("t3", 1)
	// t4 = Y^2
	pick2(opcode.OP_MUL, "yP", "yP")
	fr.PushComputed("t4", 1)
	// t5 = 2YZ
	pick2(opcode.OP_MUL, "yP", "zP")
	constMul(big.NewInt(2))
	fr.PushComputed("t5", 1)
	// t6 = 2XY
	pick2(opcode.OP_MUL, "xP", "yP")
	constMul(big.NewInt(2))
	fr.PushComputed("t6", 1)

	aSq := new(big.Int).Mul(g.A, g.A)
	threeB := new(big.Int).Mul(big.NewInt(3), g.B)

	// A = a*t1 + 3b*t2 - a^2*t3
	body = body.Append(fr.Pick("t1", "t1_c"))
	constMul(g.A)
	fr.ConsumeTop("t1_c")
	fr.PushComputed("aT1", 1)
	body = body.Append(fr.Pick("t2", "t2_c"))
	constMul(threeB)
	fr.ConsumeTop("t2_c")
	fr.PushComputed("bT2", 1)
	pick2(opcode.OP_ADD, "aT1", "bT2")
	fr.PushComputed("abSum", 1)
	body = body.Append(fr.Pick("t3", "t3_c"))
	constMul(aSq)
	fr.ConsumeTop("t3_c")
	fr.PushComputed("aSqT3", 1)
	pick2(opcode.OP_SUB, "abSum", "aSqT3")
	fr.PushComputed("flagA", 1)

	// B = a*t2 + 3b*t3
	body = body.Append(fr.Pick("t2", "t2_c2"))
	constMul(g.A)
	fr.ConsumeTop("t2_c2")
	fr.PushComputed("aT2", 1)
	body = body.Append(fr.Pick("t3", "t3_c2"))
	constMul(threeB)
	fr.ConsumeTop("t3_c2")
	fr.PushComputed("bT3", 1)
	pick2(opcode.OP_ADD, "aT2", "bT3")
	fr.PushComputed("flagB", 1)

	// numMinus = t4 - B, numPlus = t4 + B
	pick2(opcode.OP_SUB, "t4", "flagB")
	fr.PushComputed("numMinus", 1)
	pick2(opcode.OP_ADD, "t4", "flagB")
	fr.PushComputed("numPlus", 1)

	// C = 3*t1 + a*t3
	body = body.Append(fr.Pick("t1", "t1_c2"))
	constMul(big.NewInt(3))
	fr.ConsumeTop("t1_c2")
	fr.PushComputed("threeT1", 1)
	body = body.Append(fr.Pick("t3", "t3_c3"))
	constMul(g.A)
	fr.ConsumeTop("t3_c3")
	fr.PushComputed("aT3", 1)
	pick2(opcode.OP_ADD, "threeT1", "aT3")
	fr.PushComputed("flagC", 1)

	// X'' = t6*numMinus - flagA*t5
	pick2(opcode.OP_MUL, "t6", "numMinus")
	fr.PushComputed("xNum1", 1)
	pick2(opcode.OP_MUL, "flagA", "t5")
	fr.PushComputed("xNum2", 1)
	pick2(opcode.OP_SUB, "xNum1", "xNum2")
	fr.PushComputed("xR", 1)

	// Y'' = flagA*flagC + numPlus*numMinus
	pick2(opcode.OP_MUL, "flagA", "flagC")
	fr.PushComputed("yNum1", 1)
	pick2(opcode.OP_MUL, "numPlus", "numMinus")
	fr.PushComputed("yNum2", 1)
	pick2(opcode.OP_ADD, "yNum1", "yNum2")
	fr.PushComputed("yR", 1)

	// Z'' = t5*numPlus + flagC*t6
	pick2(opcode.OP_MUL, "t5", "numPlus")
	fr.PushComputed("zNum1", 1)
	pick2(opcode.OP_MUL, "flagC", "t6")
	fr.PushComputed("zNum2", 1)
	pick2(opcode.OP_ADD, "zNum1", "zNum2")
	fr.PushComputed("zR", 1)

	body = body.Append(dropNamed(fr, "xP", "yP", "zP", "t1", "t2", "t3", "t4", "t5", "t6",
		"aT1", "bT2", "abSum", "aSqT3", "flagA", "aT2", "bT3", "flagB", "numMinus", "numPlus",
		"threeT1", "aT3", "flagC", "xNum1", "xNum2", "yNum1", "yNum2", "zNum1", "zNum2"))

	body = body.Append(reorderToTop(fr, "xR", "yR", "zR"))
	return finalize(g.Modulus, params, body)
}

// AdditionWithUnknownPoints computes Q+P in projective coordinates without
// assuming either point is finite or that P != -Q (spec §4.4
// `point_addition_with_unknown_points`, projective form): the infinity
// sentinel here is the all-zero triple rather than the affine all-zero
// pair, and "P = -Q" is tested as x_P*z_Q == x_Q*z_P and y_P*z_Q + y_Q*z_P
// == 0 rather than a direct coordinate comparison, since projective
// representatives of the same class need not share coordinates. Every
// other branch (P or Q infinite, both finite) mirrors
// PointAdditionWithUnknownPoints's affine state machine exactly.
//
// P must be supplied deeper than Q.
func (g G1) AdditionWithUnknownPoints(p, q ProjectiveOperand, params ScriptParameters) (opcode.Script, error) {
	if err := stackmodel.CheckOrder([]stackmodel.Position{p.Position.StackPosition(), q.Position.StackPosition()}); err != nil {
		return nil, err
	}

	body := primitive.MoveChain([]primitive.Operand{p.moveOperand(), q.moveOperand()})

	fr := primitive.NewFrame(
		primitive.Slot{Name: "zP", Degree: 1}, primitive.Slot{Name: "yP", Degree: 1}, primitive.Slot{Name: "xP", Degree: 1},
		primitive.Slot{Name: "zQ", Degree: 1}, primitive.Slot{Name: "yQ", Degree: 1}, primitive.Slot{Name: "xQ", Degree: 1},
	)

	body = body.Append(isZeroTripletFlag(fr, "xQ", "yQ", "zQ", "isQInf"))
	body = body.Append(isZeroTripletFlag(fr, "xP", "yP", "zP", "isPInf"))
	body = body.Append(isPEqNegQProjFlag(fr))

	body = body.Append(fr.Roll("isQInf", "isQInf"))
	body = body.AppendOps(opcode.OP_IF)
	fr.ConsumeTop("isQInf")
	afterQInfCheck := fr.Names() // [isPEqNegQ, isPInf, zP, yP, xP, zQ, yQ, xQ]

	// Q_is_inf: P + infinity = P, already in [zR, yR, xR] order.
	trueFrame := primitive.NewFrame(slotsFor(afterQInfCheck)...)
	body = body.Append(dropNamed(trueFrame, "isPEqNegQ", "isPInf", "zQ", "yQ", "xQ"))

	body = body.AppendOps(opcode.OP_ELSE)
	elseFrame := primitive.NewFrame(slotsFor(afterQInfCheck)...)
	body = body.Append(elseFrame.Roll("isPInf", "isPInf"))
	body = body.AppendOps(opcode.OP_IF)
	elseFrame.ConsumeTop("isPInf")
	afterPInfCheck := elseFrame.Names() // [isPEqNegQ, zP, yP, xP, zQ, yQ, xQ]

	// P_is_inf: infinity + Q = Q.
	pInfTrueFrame := primitive.NewFrame(slotsFor(afterPInfCheck)...)
	body = body.Append(dropNamed(pInfTrueFrame, "isPEqNegQ", "zP", "yP", "xP"))
	body = body.Append(reorderToTop(pInfTrueFrame, "xQ", "yQ", "zQ"))

	body = body.AppendOps(opcode.OP_ELSE)
	pInfElseFrame := primitive.NewFrame(slotsFor(afterPInfCheck)...)
	body = body.Append(pInfElseFrame.Roll("isPEqNegQ", "isPEqNegQ"))
	body = body.AppendOps(opcode.OP_IF)
	pInfElseFrame.ConsumeTop("isPEqNegQ")
	afterEqNegCheck := pInfElseFrame.Names() // [zP, yP, xP, zQ, yQ, xQ]

	// P_eq_minus_Q: result is the point at infinity.
	eqNegTrueFrame := primitive.NewFrame(slotsFor(afterEqNegCheck)...)
	body = body.Append(dropNamed(eqNegTrueFrame, "zP", "yP", "xP", "zQ", "yQ", "xQ"))
	body = body.Append(opcode.PushInt(big.NewInt(0)))
	body = body.Append(opcode.PushInt(big.NewInt(0)))
	body = body.Append(opcode.PushInt(big.NewInt(0)))

	body = body.AppendOps(opcode.OP_ELSE)
	bothFiniteFrame := primitive.NewFrame(slotsFor(afterEqNegCheck)...)
	body = body.Append(g.projectiveAdditionFormula(bothFiniteFrame, "xP", "yP", "zP", "xQ", "yQ", "zQ"))
	body = body.AppendOps(opcode.OP_ENDIF)

	body = body.AppendOps(opcode.OP_ENDIF)
	body = body.AppendOps(opcode.OP_ENDIF)

	return finalize(g.Modulus, params, body)
}

// isZeroTripletFlag pushes a boolean recording whether the named x, y, z
// slots (each degree 1) are all zero, without disturbing them — the
// projective infinity sentinel test, analogous to g1.go's isZeroPairFlag.
func isZeroTripletFlag(fr *primitive.Frame, xName, yName, zName, outName string) opcode.Script {
	body := opcode.New()

	body = body.Append(fr.Pick(xName, xName+"_z")).Append(opcode.PushInt(big.NewInt(0))).AppendOps(opcode.OP_EQUAL)
	fr.ConsumeTop(xName + "_z")
	fr.PushComputed(xName+"Zero", 1)

	body = body.Append(fr.Pick(yName, yName+"_z")).Append(opcode.PushInt(big.NewInt(0))).AppendOps(opcode.OP_EQUAL)
	fr.ConsumeTop(yName + "_z")
	fr.PushComputed(yName+"Zero", 1)

	body = body.Append(fr.Pick(zName, zName+"_z")).Append(opcode.PushInt(big.NewInt(0))).AppendOps(opcode.OP_EQUAL)
	fr.ConsumeTop(zName + "_z")
	fr.PushComputed(zName+"Zero", 1)

	body = body.AppendOps(opcode.OP_BOOLAND)
	fr.ConsumeTop(zName+"Zero", yName+"Zero")
	fr.PushComputed(outName+"_yz", 1)

	body = body.AppendOps(opcode.OP_BOOLAND)
	fr.ConsumeTop(outName+"_yz", xName+"Zero")
	fr.PushComputed(outName, 1)

	return body
}

// isPEqNegQProjFlag pushes a boolean recording whether x_P*z_Q == x_Q*z_P
// and y_P*z_Q + y_Q*z_P == 0, without disturbing xP, yP, zP, xQ, yQ, zQ —
// the projective "P = -Q" test, which compares cross-multiplied
// coordinates rather than the coordinates directly since two projective
// triples representing the same class need not be equal on the nose.
func isPEqNegQProjFlag(fr *primitive.Frame) opcode.Script {
	body := opcode.New()

	pick2 := func(a, b string) {
		body = body.Append(fr.Pick(a, "u_a")).Append(fr.Pick(b, "u_b")).AppendOps(opcode.OP_MUL)
		fr.ConsumeTop("u_b", "u_a")
	}

	pick2("xP", "zQ")
	fr.PushComputed("xPzQ2", 1)
	pick2("xQ", "zP")
	fr.PushComputed("xQzP2", 1)
	body = body.Append(fr.Roll("xPzQ2", "xPzQ2")).Append(fr.Roll("xQzP2", "xQzP2")).AppendOps(opcode.OP_EQUAL)
	fr.ConsumeTop("xQzP2", "xPzQ2")
	fr.PushComputed("xEq", 1)

	pick2("yP", "zQ")
	fr.PushComputed("yPzQ2", 1)
	pick2("yQ", "zP")
	fr.PushComputed("yQzP2", 1)
	body = body.Append(fr.Roll("yPzQ2", "yPzQ2")).Append(fr.Roll("yQzP2", "yQzP2")).AppendOps(opcode.OP_ADD)
	fr.ConsumeTop("yQzP2", "yPzQ2")
	fr.PushComputed("ySum2", 1)
	body = body.Append(opcode.PushInt(big.NewInt(0))).AppendOps(opcode.OP_EQUAL)
	fr.ConsumeTop("ySum2")
	fr.PushComputed("yEq", 1)

	body = body.AppendOps(opcode.OP_BOOLAND)
	fr.ConsumeTop("yEq", "xEq")
	fr.PushComputed("isPEqNegQ", 1)

	return body
}

// projectiveAdditionFormula runs the six-intermediate addition law (spec
// §4.4) against fr, reading its two input points from the named slots given
// (each degree 1, all still present in fr) and leaving fr ending at
// [zR, yR, xR] after dropping every input and intermediate.
func (g G1) projectiveAdditionFormula(fr *primitive.Frame, xP, yP, zP, xQ, yQ, zQ string) opcode.Script {
	body := opcode.New()

	pick2 := func(op opcode.Op, a, b string) {
		body = body.Append(fr.Pick(a, "t_a")).Append(fr.Pick(b, "t_b")).AppendOps(op)
		fr.ConsumeTop("t_b", "t_a")
	}
	constMul := func(value *big.Int) {
		body = body.Append(opcode.PushInt(value)).AppendOps(opcode.OP_MUL)
	}
	pickConst := func(name string, value *big.Int) {
		body = body.Append(fr.Pick(name, name+"_k"))
		constMul(value)
		fr.ConsumeTop(name + "_k")
	}

	// t1 = X*X'
	pick2(opcode.OP_MUL, xP, xQ)
	fr.PushComputed("t1", 1)
	// t2 = Z*Z'
	pick2(opcode.OP_MUL, zP, zQ)
	fr.PushComputed("t2", 1)
	// t3 = X'*Z + X*Z'
	pick2(opcode.OP_MUL, xQ, zP)
	fr.PushComputed("xQzP", 1)
	pick2(opcode.OP_MUL, xP, zQ)
	fr.PushComputed("xPzQ", 1)
	pick2(opcode.OP_ADD, "xQzP", "xPzQ")
	fr.PushComputed("t3", 1)
	// t4 = Y*Y'
	pick2(opcode.OP_MUL, yP, yQ)
	fr.PushComputed("t4", 1)
	// t5 = Y*Z' + Y'*Z
	pick2(opcode.OP_MUL, yP, zQ)
	fr.PushComputed("yPzQ", 1)
	pick2(opcode.OP_MUL, yQ, zP)
	fr.PushComputed("yQzP", 1)
	pick2(opcode.OP_ADD, "yPzQ", "yQzP")
	fr.PushComputed("t5", 1)
	// t6 = X*Y' + X'*Y
	pick2(opcode.OP_MUL, xP, yQ)
	fr.PushComputed("xPyQ", 1)
	pick2(opcode.OP_MUL, xQ, yP)
	fr.PushComputed("xQyP", 1)
	pick2(opcode.OP_ADD, "xPyQ", "xQyP")
	fr.PushComputed("t6", 1)

	aSq := new(big.Int).Mul(g.A, g.A)
	threeB := new(big.Int).Mul(big.NewInt(3), g.B)

	// A = a*t1 + 3b*t3 - a^2*t2
	pickConst("t1", g.A)
	fr.PushComputed("aT1", 1)
	pickConst("t3", threeB)
	fr.PushComputed("bT3", 1)
	pick2(opcode.OP_ADD, "aT1", "bT3")
	fr.PushComputed("abSum", 1)
	pickConst("t2", aSq)
	fr.PushComputed("aSqT2", 1)
	pick2(opcode.OP_SUB, "abSum", "aSqT2")
	fr.PushComputed("flagA", 1)

	// B = a*t3 + 3b*t2
	pickConst("t3", g.A)
	fr.PushComputed("aT3", 1)
	pickConst("t2", threeB)
	fr.PushComputed("bT2", 1)
	pick2(opcode.OP_ADD, "aT3", "bT2")
	fr.PushComputed("flagB", 1)

	// numMinus = t4 - B, numPlus = t4 + B
	pick2(opcode.OP_SUB, "t4", "flagB")
	fr.PushComputed("numMinus", 1)
	pick2(opcode.OP_ADD, "t4", "flagB")
	fr.PushComputed("numPlus", 1)

	// C = 3*t1 + a*t2
	pickConst("t1", big.NewInt(3))
	fr.PushComputed("threeT1", 1)
	pickConst("t2", g.A)
	fr.PushComputed("aT2", 1)
	pick2(opcode.OP_ADD, "threeT1", "aT2")
	fr.PushComputed("flagC", 1)

	// X'' = t6*numMinus - A*t5
	pick2(opcode.OP_MUL, "t6", "numMinus")
	fr.PushComputed("xNum1", 1)
	pick2(opcode.OP_MUL, "flagA", "t5")
	fr.PushComputed("xNum2", 1)
	pick2(opcode.OP_SUB, "xNum1", "xNum2")
	fr.PushComputed("xR", 1)

	// Y'' = A*C + numPlus*numMinus
	pick2(opcode.OP_MUL, "flagA", "flagC")
	fr.PushComputed("yNum1", 1)
	pick2(opcode.OP_MUL, "numPlus", "numMinus")
	fr.PushComputed("yNum2", 1)
	pick2(opcode.OP_ADD, "yNum1", "yNum2")
	fr.PushComputed("yR", 1)

	// Z'' = t5*numPlus + C*t6
	pick2(opcode.OP_MUL, "t5", "numPlus")
	fr.PushComputed("zNum1", 1)
	pick2(opcode.OP_MUL, "flagC", "t6")
	fr.PushComputed("zNum2", 1)
	pick2(opcode.OP_ADD, "zNum1", "zNum2")
	fr.PushComputed("zR", 1)

	body = body.Append(dropNamed(fr, xP, yP, zP, xQ, yQ, zQ,
		"xQzP", "xPzQ", "t1", "t2", "t3", "yPzQ", "yQzP", "t4", "t5", "xPyQ", "xQyP", "t6",
		"aT1", "bT3", "abSum", "aSqT2", "flagA", "aT3", "bT2", "flagB", "numMinus", "numPlus",
		"threeT1", "aT2", "flagC", "xNum1", "xNum2", "yNum1", "yNum2", "zNum1", "zNum2"))

	body = body.Append(reorderToTop(fr, "xR", "yR", "zR"))
	return body
}
