package towers

import (
	"math/big"

	"github.com/bsv-blockchain/go-zkscript/opcode"
	"github.com/bsv-blockchain/go-zkscript/primitive"
	"github.com/bsv-blockchain/go-zkscript/stackmodel"
)

// Fq4 is the builder for F_{q^4} = F_{q^2}[w]/(w^2 - NonResidue), the
// quartic tower MNT4-753's pairing is built over (spec §4.4 "Field tower").
// An element is a pair of F_q2 coefficients (a1,a0), laid out on the stack
// exactly like Fq2 itself: the low coefficient a0 deepest, its own low F_q
// scalar deepest still, recursively.
type Fq4 struct {
	Base       Fq2
	NonResidue [2]*big.Int // an F_q2 element: the defining constant w^2 = NonResidue
}

// NewFq4 constructs an Fq4 builder over the given F_q2 base.
func NewFq4(base Fq2, nonResidue [2]*big.Int) Fq4 {
	return Fq4{Base: base, NonResidue: nonResidue}
}

// Fq4Operand is an F_{q^4} element's stack position: ExtensionDegree must be
// 4, its four F_q scalars laid out top to bottom as (a1.c1, a1.c0, a0.c1,
// a0.c0).
type Fq4Operand struct {
	Position stackmodel.Position
	Rolled   bool
}

func (o Fq4Operand) moveOperand() primitive.Operand {
	return primitive.Operand{Position: o.Position, Rolled: o.Rolled}
}

func newFq4Frame() *primitive.Frame {
	return primitive.NewFrame(
		primitive.Slot{Name: "x1c1", Degree: 1}, primitive.Slot{Name: "x1c0", Degree: 1},
		primitive.Slot{Name: "x0c1", Degree: 1}, primitive.Slot{Name: "x0c0", Degree: 1},
		primitive.Slot{Name: "y1c1", Degree: 1}, primitive.Slot{Name: "y1c0", Degree: 1},
		primitive.Slot{Name: "y0c1", Degree: 1}, primitive.Slot{Name: "y0c0", Degree: 1},
	)
}

// Add computes x+y component-wise over the two F_q2 coefficients.
func (f Fq4) Add(x, y Fq4Operand, params ScriptParameters) (opcode.Script, error) {
	if err := stackmodel.CheckOrder([]stackmodel.Position{x.Position, y.Position}); err != nil {
		return nil, err
	}
	body := primitive.MoveChain([]primitive.Operand{x.moveOperand(), y.moveOperand()})
	fr := newFq4Frame()

	body = body.Append(addFq2Inline(fr, "x0c1", "x0c0", "y0c1", "y0c0", "r0"))
	body = body.Append(addFq2Inline(fr, "x1c1", "x1c0", "y1c1", "y1c0", "r1"))
	body = body.Append(reorderToTop(fr, "r00", "r01", "r10", "r11"))

	return finalize(f.Base.Modulus, params, body)
}

// Subtract computes x-y.
func (f Fq4) Subtract(x, y Fq4Operand, params ScriptParameters) (opcode.Script, error) {
	negY := y
	negY.Position = y.Position.Negated()
	return f.algebraicSumNegated(x, negY, params)
}

// algebraicSumNegated handles the case where one or both operands carry a
// Negate flag: unlike plain Add, each coefficient pair needs signTable's
// selection rather than a bare OP_ADD.
func (f Fq4) algebraicSumNegated(x, y Fq4Operand, params ScriptParameters) (opcode.Script, error) {
	if !x.Position.Negate && !y.Position.Negate {
		return f.Add(x, y, params)
	}
	if err := stackmodel.CheckOrder([]stackmodel.Position{x.Position, y.Position}); err != nil {
		return nil, err
	}
	body := primitive.MoveChain([]primitive.Operand{x.moveOperand(), y.moveOperand()})
	fr := newFq4Frame()
	op, negateAfter := signTable(x.Position.Negate, y.Position.Negate)

	coefficients := []struct{ a1, a0, b1, b0, outPrefix string }{
		{"x0c1", "x0c0", "y0c1", "y0c0", "r0"},
		{"x1c1", "x1c0", "y1c1", "y1c0", "r1"},
	}
	for _, c := range coefficients {
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
	body = body.Append(reorderToTop(fr, "r00", "r01", "r10", "r11"))
	return finalize(f.Base.Modulus, params, body)
}

// Negate computes -x.
func (f Fq4) Negate(x Fq4Operand, params ScriptParameters) (opcode.Script, error) {
	body := primitive.Move(x.Position, primitive.ModeFromBool(x.Rolled)).
		AppendOps(opcode.OP_NEGATE, opcode.OP_SWAP, opcode.OP_NEGATE, opcode.OP_SWAP,
			opcode.OP_2SWAP, opcode.OP_NEGATE, opcode.OP_SWAP, opcode.OP_NEGATE, opcode.OP_SWAP, opcode.OP_2SWAP)
	return finalize(f.Base.Modulus, params, body)
}

// Double computes 2x by doubling each of the four raw F_q scalars in place,
// processed top to bottom and reassembled back into the original order.
func (f Fq4) Double(x Fq4Operand, params ScriptParameters) (opcode.Script, error) {
	body := primitive.Move(x.Position, primitive.ModeFromBool(x.Rolled))
	fr := primitive.NewFrame(
		primitive.Slot{Name: "x1c1", Degree: 1}, primitive.Slot{Name: "x1c0", Degree: 1},
		primitive.Slot{Name: "x0c1", Degree: 1}, primitive.Slot{Name: "x0c0", Degree: 1},
	)
	doubled, results := doubleNamesInline(fr, "x1c1", "x1c0", "x0c1", "x0c0")
	body = body.Append(doubled)
	// results currently sit top to bottom in reverse of the names passed in;
	// reorderToTop with results reversed lands them back in the original order.
	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}
	body = body.Append(reorderToTop(fr, results...))
	return finalize(f.Base.Modulus, params, body)
}

// MulByNonResidue computes x*w = (a0, NonResidue*a1), the quadratic tower's
// defining reduction (w^2 = NonResidue), where NonResidue is here a full
// F_q2 constant, so the "multiply by nonresidue" step is itself a full F_q2
// multiplication rather than a scalar one.
func (f Fq4) MulByNonResidue(x Fq4Operand, params ScriptParameters) (opcode.Script, error) {
	body := primitive.Move(x.Position, primitive.ModeFromBool(x.Rolled))
	fr := primitive.NewFrame(
		primitive.Slot{Name: "a1c1", Degree: 1}, primitive.Slot{Name: "a1c0", Degree: 1},
		primitive.Slot{Name: "a0c1", Degree: 1}, primitive.Slot{Name: "a0c0", Degree: 1},
	)
	body = body.Append(pushFq2Literal(fr, f.NonResidue[1], f.NonResidue[0], "nrk"))
	body = body.Append(mulFq2Inline(fr, f.Base.NonResidue, "nrk1", "nrk0", "a1c1", "a1c0", "p"))
	body = body.Append(dropNamedScalars(fr, "a1c1", "a1c0", "nrk1", "nrk0"))
	// new c1 = a0 (untouched), new c0 = NonResidue*a1 = p
	body = body.Append(reorderToTop(fr, "p0", "p1", "a0c0", "a0c1"))
	return finalize(f.Base.Modulus, params, body)
}

// Conjugate computes the Galois conjugate (a1,a0) -> (-a1,a0): a1 sits on
// top of the stack already, so only the top coefficient pair is negated.
func (f Fq4) Conjugate(x Fq4Operand, params ScriptParameters) (opcode.Script, error) {
	body := primitive.Move(x.Position, primitive.ModeFromBool(x.Rolled)).
		AppendOps(opcode.OP_NEGATE, opcode.OP_SWAP, opcode.OP_NEGATE, opcode.OP_SWAP)
	return finalize(f.Base.Modulus, params, body)
}

// Multiply computes x*y via the schoolbook quadratic-extension formula
// c0 = a0*b0 + NonResidue*a1*b1, c1 = a0*b1 + a1*b0, where every
// multiplication and addition here operates over F_q2 coefficients, built
// out of mulFq2Inline/addFq2Inline.
func (f Fq4) Multiply(x, y Fq4Operand, params ScriptParameters) (opcode.Script, error) {
	if err := stackmodel.CheckOrder([]stackmodel.Position{x.Position, y.Position}); err != nil {
		return nil, err
	}
	body := primitive.MoveChain([]primitive.Operand{x.moveOperand(), y.moveOperand()})
	fr := newFq4Frame()

	body = body.Append(mulFq2Inline(fr, f.Base.NonResidue, "x1c1", "x1c0", "y1c1", "y1c0", "p")) // a1*b1
	body = body.Append(mulFq2Inline(fr, f.Base.NonResidue, "x0c1", "x0c0", "y0c1", "y0c0", "q")) // a0*b0
	body = body.Append(pushFq2Literal(fr, f.NonResidue[1], f.NonResidue[0], "nrk"))
	body = body.Append(mulFq2Inline(fr, f.Base.NonResidue, "nrk1", "nrk0", "p1", "p0", "nrp")) // NonResidue*a1*b1
	body = body.Append(addFq2Inline(fr, "q1", "q0", "nrp1", "nrp0", "rc0"))                     // c0

	body = body.Append(mulFq2Inline(fr, f.Base.NonResidue, "x0c1", "x0c0", "y1c1", "y1c0", "t3")) // a0*b1
	body = body.Append(mulFq2Inline(fr, f.Base.NonResidue, "x1c1", "x1c0", "y0c1", "y0c0", "t4")) // a1*b0
	body = body.Append(addFq2Inline(fr, "t31", "t30", "t41", "t40", "rc1"))                        // c1

	body = body.Append(dropNamedScalars(fr,
		"p1", "p0", "nrk1", "nrk0",
		"x1c1", "x1c0", "x0c1", "x0c0", "y1c1", "y1c0", "y0c1", "y0c0"))
	body = body.Append(reorderToTop(fr, "rc00", "rc01", "rc10", "rc11"))

	return finalize(f.Base.Modulus, params, body)
}

// Square computes x^2 via Multiply's formula specialised to x==y.
func (f Fq4) Square(x Fq4Operand, params ScriptParameters) (opcode.Script, error) {
	body := primitive.Move(x.Position, primitive.ModeFromBool(x.Rolled))
	fr := primitive.NewFrame(
		primitive.Slot{Name: "a1c1", Degree: 1}, primitive.Slot{Name: "a1c0", Degree: 1},
		primitive.Slot{Name: "a0c1", Degree: 1}, primitive.Slot{Name: "a0c0", Degree: 1},
	)

	body = body.Append(mulFq2Inline(fr, f.Base.NonResidue, "a1c1", "a1c0", "a1c1", "a1c0", "p"))
	body = body.Append(mulFq2Inline(fr, f.Base.NonResidue, "a0c1", "a0c0", "a0c1", "a0c0", "q"))
	body = body.Append(pushFq2Literal(fr, f.NonResidue[1], f.NonResidue[0], "nrk"))
	body = body.Append(mulFq2Inline(fr, f.Base.NonResidue, "nrk1", "nrk0", "p1", "p0", "nrp"))
	body = body.Append(addFq2Inline(fr, "q1", "q0", "nrp1", "nrp0", "rc0"))

	body = body.Append(mulFq2Inline(fr, f.Base.NonResidue, "a0c1", "a0c0", "a1c1", "a1c0", "t3"))
	body = body.Append(doubleFq2Inline(fr, "t31", "t30", "rc1")) // 2*a0*a1

	body = body.Append(dropNamedScalars(fr,
		"p1", "p0", "nrk1", "nrk0",
		"a1c1", "a1c0", "a0c1", "a0c0"))
	body = body.Append(reorderToTop(fr, "rc00", "rc01", "rc10", "rc11"))

	return finalize(f.Base.Modulus, params, body)
}

// Frobenius applies phi(a1,a0) = (gamma_odd*conj(a1), gamma_even*a0) is not
// generally this simple outside a degree-2 tower; for F_q4 the Frobenius
// endomorphism restricted to the base field's automorphism collapses to
// scaling each F_q2 coefficient by the appropriate power of the Frobenius
// constant for this tower level (spec §4.4 "Field tower"): phi(a1,a0) =
// (gamma*a1, a0) when q mod 4 == 1, matching the Fq2.Frobenius convention one
// level down.
func (f Fq4) Frobenius(x Fq4Operand, gamma *big.Int, params ScriptParameters) (opcode.Script, error) {
	body := primitive.Move(x.Position, primitive.ModeFromBool(x.Rolled))
	fr := primitive.NewFrame(
		primitive.Slot{Name: "a1c1", Degree: 1}, primitive.Slot{Name: "a1c0", Degree: 1},
		primitive.Slot{Name: "a0c1", Degree: 1}, primitive.Slot{Name: "a0c0", Degree: 1},
	)
	body = body.Append(fr.Roll("a1c1", "a1c1")).Append(opcode.PushInt(gamma)).AppendOps(opcode.OP_MUL)
	fr.ConsumeTop("a1c1")
	fr.PushComputed("g1", 1)
	body = body.Append(fr.Roll("a1c0", "a1c0")).Append(opcode.PushInt(gamma)).AppendOps(opcode.OP_MUL)
	fr.ConsumeTop("a1c0")
	fr.PushComputed("g0", 1)
	body = body.Append(reorderToTop(fr, "a0c0", "a0c1", "g0", "g1"))
	return finalize(f.Base.Modulus, params, body)
}
