package towers

import (
	"math/big"

	"github.com/bsv-blockchain/go-zkscript/opcode"
	"github.com/bsv-blockchain/go-zkscript/primitive"
	"github.com/bsv-blockchain/go-zkscript/stackmodel"
)

// Fq12 is the builder for F_{q^12} = F_{q^6}[w]/(w^2 - NonResidue),
// BLS12-381's full pairing target field (spec §4.4 "Field tower"). An
// element is a pair of F_q6 coefficients (a1,a0), laid out on the stack
// exactly like Fq2/Fq4's own convention, recursively: a1 (six raw scalars)
// on top, a0 (six more) below it.
type Fq12 struct {
	Base       Fq6
	NonResidue [3][2]*big.Int // an F_q6 element: the defining constant w^2 = NonResidue
}

// NewFq12 constructs an Fq12 builder over the given F_q6 base.
func NewFq12(base Fq6, nonResidue [3][2]*big.Int) Fq12 {
	return Fq12{Base: base, NonResidue: nonResidue}
}

// Fq12Operand is an F_{q^12} element's stack position: ExtensionDegree must
// be 12, its twelve F_q scalars laid out top to bottom as a1's F_q6 triple
// (each itself an F_q2 pair) followed by a0's.
type Fq12Operand struct {
	Position stackmodel.Position
	Rolled   bool
}

func (o Fq12Operand) moveOperand() primitive.Operand {
	return primitive.Operand{Position: o.Position, Rolled: o.Rolled}
}

func fq12Slots(prefix string) []primitive.Slot {
	return append(fq6Slots(prefix+"1_"), fq6Slots(prefix+"0_")...)
}

func fq12Names(prefix string) (a1, a0 fq6Group) {
	a1c2, a1c1, a1c0 := fq6Names(prefix + "1_")
	a0c2, a0c1, a0c0 := fq6Names(prefix + "0_")
	return fq6Group{c2: a1c2, c1: a1c1, c0: a1c0}, fq6Group{c2: a0c2, c1: a0c1, c0: a0c0}
}

func newFq12PairFrame() *primitive.Frame {
	return primitive.NewFrame(append(fq12Slots("x"), fq12Slots("y")...)...)
}

func reverseStrings(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

// Add computes x+y component-wise over the two F_q6 coefficients.
func (f Fq12) Add(x, y Fq12Operand, params ScriptParameters) (opcode.Script, error) {
	if err := stackmodel.CheckOrder([]stackmodel.Position{x.Position, y.Position}); err != nil {
		return nil, err
	}
	body := primitive.MoveChain([]primitive.Operand{x.moveOperand(), y.moveOperand()})
	fr := newFq12PairFrame()
	xa1, xa0 := fq12Names("x")
	ya1, ya0 := fq12Names("y")

	body = body.Append(addFq6Inline(fr, xa0.c2, xa0.c1, xa0.c0, ya0.c2, ya0.c1, ya0.c0, "r0"))
	body = body.Append(addFq6Inline(fr, xa1.c2, xa1.c1, xa1.c0, ya1.c2, ya1.c1, ya1.c0, "r1"))
	rc1a, rc1b, rc1c := fq6ResultNames("r1")
	rc0a, rc0b, rc0c := fq6ResultNames("r0")
	final := append(fq6Group{rc1a, rc1b, rc1c}.rawNames(), fq6Group{rc0a, rc0b, rc0c}.rawNames()...)
	body = body.Append(reorderToTop(fr, reverseStrings(final)...))

	return finalize(f.Base.Base.Modulus, params, body)
}

// Subtract computes x-y.
func (f Fq12) Subtract(x, y Fq12Operand, params ScriptParameters) (opcode.Script, error) {
	negY := y
	negY.Position = y.Position.Negated()
	return f.algebraicSumNegated(x, negY, params)
}

// algebraicSumNegated handles the case where one or both operands carry a
// Negate flag, mirroring Fq4/Fq6's own version one level up: every raw
// scalar pair needs signTable's selection rather than a bare OP_ADD.
func (f Fq12) algebraicSumNegated(x, y Fq12Operand, params ScriptParameters) (opcode.Script, error) {
	if !x.Position.Negate && !y.Position.Negate {
		return f.Add(x, y, params)
	}
	if err := stackmodel.CheckOrder([]stackmodel.Position{x.Position, y.Position}); err != nil {
		return nil, err
	}
	body := primitive.MoveChain([]primitive.Operand{x.moveOperand(), y.moveOperand()})
	fr := newFq12PairFrame()
	op, negateAfter := signTable(x.Position.Negate, y.Position.Negate)

	coeffs := []struct{ a1, a0, b1, b0, outPrefix string }{
		{"x0_0_1", "x0_0_0", "y0_0_1", "y0_0_0", "r00"},
		{"x0_1_1", "x0_1_0", "y0_1_1", "y0_1_0", "r01"},
		{"x0_2_1", "x0_2_0", "y0_2_1", "y0_2_0", "r02"},
		{"x1_0_1", "x1_0_0", "y1_0_1", "y1_0_0", "r10"},
		{"x1_1_1", "x1_1_0", "y1_1_1", "y1_1_0", "r11"},
		{"x1_2_1", "x1_2_0", "y1_2_1", "y1_2_0", "r12"},
	}
	var final []string
	for _, c := range coeffs {
		body = body.Append(fr.Roll(c.a0, c.a0)).Append(fr.Roll(c.b0, c.b0)).AppendOps(op)
		fr.ConsumeTop(c.b0, c.a0)
		if negateAfter {
			body = body.AppendOps(opcode.OP_NEGATE)
		}
		fr.PushComputed(c.outPrefix+"0", 1)

		body = body.Append(fr.Roll(c.a1, c.a1)).Append(fr.Roll(c.b1, c.b1)).AppendOps(op)
		fr.ConsumeTop(c.b1, c.a1)
		if negateAfter {
			body = body.AppendOps(opcode.OP_NEGATE)
		}
		fr.PushComputed(c.outPrefix+"1", 1)

		final = append(final, c.outPrefix+"0", c.outPrefix+"1")
	}
	// Each coefficient group already lands lo-before-hi in the order needed
	// by reorderToTop once every group has been processed (the same layout
	// Fq6's own subtractComponentwise reorders from), so final is passed
	// through unreversed.
	body = body.Append(reorderToTop(fr, final...))
	return finalize(f.Base.Base.Modulus, params, body)
}

// Negate computes -x, coefficient-wise, over the six raw F_q2 pairs.
func (f Fq12) Negate(x Fq12Operand, params ScriptParameters) (opcode.Script, error) {
	body := primitive.Move(x.Position, primitive.ModeFromBool(x.Rolled))
	fr := primitive.NewFrame(fq12Slots("x")...)
	pairs := [][2]string{
		{"x1_2_1", "x1_2_0"}, {"x1_1_1", "x1_1_0"}, {"x1_0_1", "x1_0_0"},
		{"x0_2_1", "x0_2_0"}, {"x0_1_1", "x0_1_0"}, {"x0_0_1", "x0_0_0"},
	}
	var results []string
	for _, pair := range pairs {
		body = body.Append(fr.Roll(pair[0], pair[0])).Append(fr.Roll(pair[1], pair[1])).
			AppendOps(opcode.OP_NEGATE, opcode.OP_SWAP, opcode.OP_NEGATE, opcode.OP_SWAP)
		fr.ConsumeTop(pair[1], pair[0])
		fr.PushComputed("n_"+pair[0], 1)
		fr.PushComputed("n_"+pair[1], 1)
		results = append(results, "n_"+pair[0], "n_"+pair[1])
	}
	body = body.Append(reorderToTop(fr, reverseStrings(results)...))
	return finalize(f.Base.Base.Modulus, params, body)
}

// Double computes 2x by doubling each of the twelve raw F_q scalars.
func (f Fq12) Double(x Fq12Operand, params ScriptParameters) (opcode.Script, error) {
	body := primitive.Move(x.Position, primitive.ModeFromBool(x.Rolled))
	fr := primitive.NewFrame(fq12Slots("x")...)
	doubled, results := doubleNamesInline(fr,
		"x1_2_1", "x1_2_0", "x1_1_1", "x1_1_0", "x1_0_1", "x1_0_0",
		"x0_2_1", "x0_2_0", "x0_1_1", "x0_1_0", "x0_0_1", "x0_0_0")
	body = body.Append(doubled)
	body = body.Append(reorderToTop(fr, reverseStrings(results)...))
	return finalize(f.Base.Base.Modulus, params, body)
}

// MulByNonResidue computes x*w = (a0, NonResidue*a1), the quadratic tower's
// defining reduction (w^2 = NonResidue), where NonResidue is here a full
// F_q6 constant, so scaling by it is itself a full F_q6 multiplication.
func (f Fq12) MulByNonResidue(x Fq12Operand, params ScriptParameters) (opcode.Script, error) {
	body := primitive.Move(x.Position, primitive.ModeFromBool(x.Rolled))
	fr := primitive.NewFrame(fq12Slots("x")...)
	a1, a0 := fq12Names("x")

	body = body.Append(pushFq6Literal(fr, f.NonResidue[2], f.NonResidue[1], f.NonResidue[0], "nrk"))
	kc2, kc1, kc0 := fq6ResultNames("nrk")
	k := fq6Group{c2: kc2, c1: kc1, c0: kc0}
	body = body.Append(mulFq6Inline(fr, f.Base.Base.NonResidue, f.Base.NonResidue, a1.c2, a1.c1, a1.c0, k.c2, k.c1, k.c0, "p"))
	body = body.Append(dropNamedScalars(fr, append(a1.rawNames(), k.rawNames()...)...))

	pc2, pc1, pc0 := fq6ResultNames("p")
	p := fq6Group{c2: pc2, c1: pc1, c0: pc0}
	final := append(a0.rawNames(), p.rawNames()...)
	body = body.Append(reorderToTop(fr, reverseStrings(final)...))
	return finalize(f.Base.Base.Modulus, params, body)
}

// Conjugate computes the Galois conjugate (a1,a0) -> (-a1,a0): a1 sits on
// top of the stack already (six raw scalars, three F_q2 pairs), so only the
// top half is negated.
func (f Fq12) Conjugate(x Fq12Operand, params ScriptParameters) (opcode.Script, error) {
	pairNegate := opcode.New().AppendOps(opcode.OP_NEGATE, opcode.OP_SWAP, opcode.OP_NEGATE, opcode.OP_SWAP)
	body := primitive.Move(x.Position, primitive.ModeFromBool(x.Rolled)).
		Append(pairNegate).Append(pairNegate).Append(pairNegate)
	return finalize(f.Base.Base.Modulus, params, body)
}

// Multiply computes x*y via mulFq12Inline's schoolbook quadratic-over-F_q6
// formula.
func (f Fq12) Multiply(x, y Fq12Operand, params ScriptParameters) (opcode.Script, error) {
	if err := stackmodel.CheckOrder([]stackmodel.Position{x.Position, y.Position}); err != nil {
		return nil, err
	}
	body := primitive.MoveChain([]primitive.Operand{x.moveOperand(), y.moveOperand()})
	fr := newFq12PairFrame()
	xa1, xa0 := fq12Names("x")
	ya1, ya0 := fq12Names("y")

	body = body.Append(mulFq12Inline(fr, f.Base.Base.NonResidue, f.Base.NonResidue, f.NonResidue, xa1, xa0, ya1, ya0, "r"))
	body = body.Append(dropNamedScalars(fr, append(xa1.rawNames(), append(xa0.rawNames(), append(ya1.rawNames(), ya0.rawNames()...)...)...)...))

	rc1a, rc1b, rc1c := fq6ResultNames("r1")
	rc0a, rc0b, rc0c := fq6ResultNames("r0")
	final := append(fq6Group{rc1a, rc1b, rc1c}.rawNames(), fq6Group{rc0a, rc0b, rc0c}.rawNames()...)
	body = body.Append(reorderToTop(fr, reverseStrings(final)...))

	return finalize(f.Base.Base.Modulus, params, body)
}

// Square computes x^2 via Multiply's formula specialised to x==y.
func (f Fq12) Square(x Fq12Operand, params ScriptParameters) (opcode.Script, error) {
	body := primitive.Move(x.Position, primitive.ModeFromBool(x.Rolled))
	fr := primitive.NewFrame(fq12Slots("x")...)
	xa1, xa0 := fq12Names("x")

	body = body.Append(mulFq12Inline(fr, f.Base.Base.NonResidue, f.Base.NonResidue, f.NonResidue, xa1, xa0, xa1, xa0, "r"))
	body = body.Append(dropNamedScalars(fr, append(xa1.rawNames(), xa0.rawNames()...)...))

	rc1a, rc1b, rc1c := fq6ResultNames("r1")
	rc0a, rc0b, rc0c := fq6ResultNames("r0")
	final := append(fq6Group{rc1a, rc1b, rc1c}.rawNames(), fq6Group{rc0a, rc0b, rc0c}.rawNames()...)
	body = body.Append(reorderToTop(fr, reverseStrings(final)...))

	return finalize(f.Base.Base.Modulus, params, body)
}

// Frobenius applies phi(a1,a0) = (outerGamma*frob(a1), frob(a0)), where
// frob scales each of an F_q6 value's three F_q2 coefficients by its own
// innerGammas entry (Fq6.Frobenius's own simplifying assumption, reused
// here) and outerGamma is this extension's own Frobenius constant for w.
// Both per-coefficient scalings commute, so this precomputes
// innerGammas[i]*outerGamma once per a1 coefficient rather than applying
// the two factors as separate script-level multiplications.
func (f Fq12) Frobenius(x Fq12Operand, innerGammas [3]*big.Int, outerGamma *big.Int, params ScriptParameters) (opcode.Script, error) {
	body := primitive.Move(x.Position, primitive.ModeFromBool(x.Rolled))
	fr := primitive.NewFrame(fq12Slots("x")...)

	scalars := []struct {
		hi, lo string
		gamma  *big.Int
	}{
		{"x1_2_1", "x1_2_0", new(big.Int).Mul(innerGammas[2], outerGamma)},
		{"x1_1_1", "x1_1_0", new(big.Int).Mul(innerGammas[1], outerGamma)},
		{"x1_0_1", "x1_0_0", new(big.Int).Mul(innerGammas[0], outerGamma)},
		{"x0_2_1", "x0_2_0", innerGammas[2]},
		{"x0_1_1", "x0_1_0", innerGammas[1]},
		{"x0_0_1", "x0_0_0", innerGammas[0]},
	}
	var results []string
	for _, s := range scalars {
		body = body.Append(fr.Roll(s.hi, s.hi)).Append(opcode.PushInt(s.gamma)).AppendOps(opcode.OP_MUL)
		fr.ConsumeTop(s.hi)
		fr.PushComputed("g_"+s.hi, 1)

		body = body.Append(fr.Roll(s.lo, s.lo)).Append(opcode.PushInt(s.gamma)).AppendOps(opcode.OP_MUL)
		fr.ConsumeTop(s.lo)
		fr.PushComputed("g_"+s.lo, 1)

		results = append(results, "g_"+s.lo, "g_"+s.hi)
	}
	// Each group already lands in the needed deepest-desired-first order (lo
	// before hi, earlier groups deeper) once every group has been processed,
	// so results is passed through unreversed (unlike Double's plain
	// per-scalar processing, which does need the reversal).
	body = body.Append(reorderToTop(fr, results...))
	return finalize(f.Base.Base.Modulus, params, body)
}
