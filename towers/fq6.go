package towers

import (
	"math/big"

	"github.com/bsv-blockchain/go-zkscript/opcode"
	"github.com/bsv-blockchain/go-zkscript/primitive"
	"github.com/bsv-blockchain/go-zkscript/stackmodel"
)

// Fq6 is the builder for F_{q^6} = F_{q^2}[v]/(v^3 - NonResidue), the cubic
// tower BLS12-381's sextic twist is built over (spec §4.4 "Field tower").
// An element is a triple of F_q2 coefficients (c2,c1,c0), laid out top to
// bottom high-to-low exactly like Fq2/Fq4's own convention, recursively.
type Fq6 struct {
	Base       Fq2
	NonResidue [2]*big.Int // an F_q2 element: the defining constant v^3 = NonResidue
}

// NewFq6 constructs an Fq6 builder over the given F_q2 base.
func NewFq6(base Fq2, nonResidue [2]*big.Int) Fq6 {
	return Fq6{Base: base, NonResidue: nonResidue}
}

// Fq6Operand is an F_{q^6} element's stack position: ExtensionDegree must be
// 6, its six F_q scalars laid out top to bottom as (c2.1,c2.0,c1.1,c1.0,
// c0.1,c0.0).
type Fq6Operand struct {
	Position stackmodel.Position
	Rolled   bool
}

func (o Fq6Operand) moveOperand() primitive.Operand {
	return primitive.Operand{Position: o.Position, Rolled: o.Rolled}
}

func fq6Slots(prefix string) []primitive.Slot {
	return []primitive.Slot{
		{Name: prefix + "2_1", Degree: 1}, {Name: prefix + "2_0", Degree: 1},
		{Name: prefix + "1_1", Degree: 1}, {Name: prefix + "1_0", Degree: 1},
		{Name: prefix + "0_1", Degree: 1}, {Name: prefix + "0_0", Degree: 1},
	}
}

func fq6Names(prefix string) (c2, c1, c0 fq2Names) {
	return fq2Names{c1: prefix + "2_1", c0: prefix + "2_0"},
		fq2Names{c1: prefix + "1_1", c0: prefix + "1_0"},
		fq2Names{c1: prefix + "0_1", c0: prefix + "0_0"}
}

func newFq6PairFrame() *primitive.Frame {
	slots := append(fq6Slots("x"), fq6Slots("y")...)
	return primitive.NewFrame(slots...)
}

// Add computes x+y component-wise over the three F_q2 coefficients.
func (f Fq6) Add(x, y Fq6Operand, params ScriptParameters) (opcode.Script, error) {
	if err := stackmodel.CheckOrder([]stackmodel.Position{x.Position, y.Position}); err != nil {
		return nil, err
	}
	body := primitive.MoveChain([]primitive.Operand{x.moveOperand(), y.moveOperand()})
	fr := newFq6PairFrame()
	xc2, xc1, xc0 := fq6Names("x")
	yc2, yc1, yc0 := fq6Names("y")

	body = body.Append(addFq6Inline(fr, xc2, xc1, xc0, yc2, yc1, yc0, "r"))
	body = body.Append(reorderToTop(fr, "r00", "r01", "r10", "r11", "r20", "r21"))
	return finalize(f.Base.Modulus, params, body)
}

// Subtract computes x-y.
func (f Fq6) Subtract(x, y Fq6Operand, params ScriptParameters) (opcode.Script, error) {
	negY := y
	negY.Position = y.Position.Negated()
	return f.subtractComponentwise(x, negY, params)
}

func (f Fq6) subtractComponentwise(x, y Fq6Operand, params ScriptParameters) (opcode.Script, error) {
	if err := stackmodel.CheckOrder([]stackmodel.Position{x.Position, y.Position}); err != nil {
		return nil, err
	}
	body := primitive.MoveChain([]primitive.Operand{x.moveOperand(), y.moveOperand()})
	fr := newFq6PairFrame()
	op, negateAfter := signTable(x.Position.Negate, y.Position.Negate)

	coeffs := []struct{ a1, a0, b1, b0, outPrefix string }{
		{"x0_1", "x0_0", "y0_1", "y0_0", "r0"},
		{"x1_1", "x1_0", "y1_1", "y1_0", "r1"},
		{"x2_1", "x2_0", "y2_1", "y2_0", "r2"},
	}
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
	}
	body = body.Append(reorderToTop(fr, "r00", "r01", "r10", "r11", "r20", "r21"))
	return finalize(f.Base.Modulus, params, body)
}

// Negate computes -x, coefficient-wise.
func (f Fq6) Negate(x Fq6Operand, params ScriptParameters) (opcode.Script, error) {
	body := primitive.Move(x.Position, primitive.ModeFromBool(x.Rolled))
	fr := primitive.NewFrame(fq6Slots("x")...)
	for _, pair := range [][2]string{{"x2_1", "x2_0"}, {"x1_1", "x1_0"}, {"x0_1", "x0_0"}} {
		body = body.Append(fr.Roll(pair[0], pair[0])).Append(fr.Roll(pair[1], pair[1])).
			AppendOps(opcode.OP_NEGATE, opcode.OP_SWAP, opcode.OP_NEGATE, opcode.OP_SWAP)
		fr.ConsumeTop(pair[1], pair[0])
		fr.PushComputed("n_"+pair[0], 1)
		fr.PushComputed("n_"+pair[1], 1)
	}
	body = body.Append(reorderToTop(fr, "n_x0_0", "n_x0_1", "n_x1_0", "n_x1_1", "n_x2_0", "n_x2_1"))
	return finalize(f.Base.Modulus, params, body)
}

// Double computes 2x by doubling each raw scalar and reassembling.
func (f Fq6) Double(x Fq6Operand, params ScriptParameters) (opcode.Script, error) {
	body := primitive.Move(x.Position, primitive.ModeFromBool(x.Rolled))
	fr := primitive.NewFrame(fq6Slots("x")...)
	doubled, results := doubleNamesInline(fr, "x2_1", "x2_0", "x1_1", "x1_0", "x0_1", "x0_0")
	body = body.Append(doubled)
	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}
	body = body.Append(reorderToTop(fr, results...))
	return finalize(f.Base.Modulus, params, body)
}

// MulByNonResidue computes x*v = (c1,c0,NonResidue*c2), the cubic tower's
// defining reduction (v^3 = NonResidue).
func (f Fq6) MulByNonResidue(x Fq6Operand, params ScriptParameters) (opcode.Script, error) {
	body := primitive.Move(x.Position, primitive.ModeFromBool(x.Rolled))
	fr := primitive.NewFrame(fq6Slots("x")...)
	body = body.Append(pushFq2Literal(fr, f.NonResidue[1], f.NonResidue[0], "nrk"))
	body = body.Append(mulFq2Inline(fr, f.Base.NonResidue, "nrk1", "nrk0", "x2_1", "x2_0", "p"))
	body = body.Append(dropNamedScalars(fr, "x2_1", "x2_0", "nrk1", "nrk0"))
	// new c2 = old c1, new c1 = old c0, new c0 = NonResidue*old c2 = p
	body = body.Append(reorderToTop(fr, "p0", "p1", "x0_0", "x0_1", "x1_0", "x1_1"))
	return finalize(f.Base.Modulus, params, body)
}

// Multiply computes x*y via mulFq6Inline's schoolbook cubic formula.
func (f Fq6) Multiply(x, y Fq6Operand, params ScriptParameters) (opcode.Script, error) {
	if err := stackmodel.CheckOrder([]stackmodel.Position{x.Position, y.Position}); err != nil {
		return nil, err
	}
	body := primitive.MoveChain([]primitive.Operand{x.moveOperand(), y.moveOperand()})
	fr := newFq6PairFrame()
	xc2, xc1, xc0 := fq6Names("x")
	yc2, yc1, yc0 := fq6Names("y")

	body = body.Append(mulFq6Inline(fr, f.Base.NonResidue, f.NonResidue, xc2, xc1, xc0, yc2, yc1, yc0, "r"))
	body = body.Append(dropNamedScalars(fr,
		"x2_1", "x2_0", "x1_1", "x1_0", "x0_1", "x0_0",
		"y2_1", "y2_0", "y1_1", "y1_0", "y0_1", "y0_0"))
	body = body.Append(reorderToTop(fr, "r00", "r01", "r10", "r11", "r20", "r21"))
	return finalize(f.Base.Modulus, params, body)
}

// Square computes x^2 via Multiply's formula specialised to x==y.
func (f Fq6) Square(x Fq6Operand, params ScriptParameters) (opcode.Script, error) {
	body := primitive.Move(x.Position, primitive.ModeFromBool(x.Rolled))
	fr := primitive.NewFrame(fq6Slots("x")...)
	xc2, xc1, xc0 := fq6Names("x")

	body = body.Append(mulFq6Inline(fr, f.Base.NonResidue, f.NonResidue, xc2, xc1, xc0, xc2, xc1, xc0, "r"))
	body = body.Append(dropNamedScalars(fr, "x2_1", "x2_0", "x1_1", "x1_0", "x0_1", "x0_0"))
	body = body.Append(reorderToTop(fr, "r00", "r01", "r10", "r11", "r20", "r21"))
	return finalize(f.Base.Modulus, params, body)
}

// Frobenius applies phi(c2,c1,c0) = (gammas[2]*c2, gammas[1]*c1,
// gammas[0]*c0): each coefficient scaled by its own Frobenius constant,
// except that a coefficient whose gamma is zero is passed through
// unscaled. This assumes q mod 3
// leaves each coefficient's v^i term in place rather than permuting them,
// the case for every curve this module targets (BLS12-381's sextic twist
// construction picks its non-residue so this holds).
func (f Fq6) Frobenius(x Fq6Operand, gammas [3]*big.Int, params ScriptParameters) (opcode.Script, error) {
	body := primitive.Move(x.Position, primitive.ModeFromBool(x.Rolled))
	fr := primitive.NewFrame(fq6Slots("x")...)
	names := []struct {
		hi, lo string
		gamma  *big.Int
	}{
		{"x0_1", "x0_0", gammas[0]},
		{"x1_1", "x1_0", gammas[1]},
		{"x2_1", "x2_0", gammas[2]},
	}
	var results []string
	for _, n := range names {
		if n.gamma.Sign() == 0 {
			body = body.Append(fr.Roll(n.hi, n.hi)).Append(fr.Roll(n.lo, n.lo))
			fr.ConsumeTop(n.lo, n.hi)
			fr.PushComputed("g_"+n.hi, 1)
			fr.PushComputed("g_"+n.lo, 1)
		} else {
			body = body.Append(fr.Roll(n.hi, n.hi)).Append(opcode.PushInt(n.gamma)).AppendOps(opcode.OP_MUL)
			fr.ConsumeTop(n.hi)
			fr.PushComputed("g_"+n.hi, 1)
			body = body.Append(fr.Roll(n.lo, n.lo)).Append(opcode.PushInt(n.gamma)).AppendOps(opcode.OP_MUL)
			fr.ConsumeTop(n.lo)
			fr.PushComputed("g_"+n.lo, 1)
		}
		results = append(results, "g_"+n.lo, "g_"+n.hi)
	}
	// Unlike Double, each group here already lands in the needed
	// deepest-desired-first order (lo before hi, earlier groups deeper) once
	// every group has been processed, so results is passed through unreversed.
	body = body.Append(reorderToTop(fr, results...))
	return finalize(f.Base.Modulus, params, body)
}
