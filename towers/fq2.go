package towers

import (
	"math/big"

	"github.com/bsv-blockchain/go-zkscript/opcode"
	"github.com/bsv-blockchain/go-zkscript/primitive"
	"github.com/bsv-blockchain/go-zkscript/stackmodel"
)

// Fq2 is the builder for F_{q^2} = F_q[u]/(u^2 - NonResidue), the quadratic
// extension every supported curve's pairing is ultimately built from (spec
// §3 "Field tower").
type Fq2 struct {
	Modulus    *big.Int
	NonResidue *big.Int
}

// NewFq2 constructs an Fq2 builder.
func NewFq2(q, nonResidue *big.Int) Fq2 {
	return Fq2{Modulus: q, NonResidue: nonResidue}
}

// Operand is an F_{q^2} element's stack position (ExtensionDegree must be
// 2; the low coefficient c0 sits at Bottom(), the high coefficient c1 at
// Top(), per spec §3's "low coordinate pushed first") together with
// whether this operation should roll (consume) or pick (copy) it.
type Operand struct {
	Position stackmodel.Position
	Rolled   bool
}

func (o Operand) moveOperand() primitive.Operand {
	return primitive.Operand{Position: o.Position, Rolled: o.Rolled}
}

// Add computes x+y.
func (f Fq2) Add(x, y Operand, params ScriptParameters) (opcode.Script, error) {
	return f.algebraicSum(x, y, params)
}

// Subtract computes x-y.
func (f Fq2) Subtract(x, y Operand, params ScriptParameters) (opcode.Script, error) {
	negY := y
	negY.Position = y.Position.Negated()
	return f.algebraicSum(x, negY, params)
}

func (f Fq2) algebraicSum(x, y Operand, params ScriptParameters) (opcode.Script, error) {
	if err := stackmodel.CheckOrder([]stackmodel.Position{x.Position, y.Position}); err != nil {
		return nil, err
	}
	body := primitive.MoveChain([]primitive.Operand{x.moveOperand(), y.moveOperand()})

	fr := primitive.NewFrame(
		primitive.Slot{Name: "x1", Degree: 1}, primitive.Slot{Name: "x0", Degree: 1},
		primitive.Slot{Name: "y1", Degree: 1}, primitive.Slot{Name: "y0", Degree: 1},
	)
	op, negateAfter := signTable(x.Position.Negate, y.Position.Negate)

	body = body.Append(fr.Roll("y1", "y1")).AppendOps(op)
	fr.ConsumeTop("y1", "x1")
	if negateAfter {
		body = body.AppendOps(opcode.OP_NEGATE)
	}
	fr.PushComputed("c1", 1)

	body = body.Append(fr.Roll("y0", "y0")).Append(fr.Roll("x0", "x0")).AppendOps(op)
	fr.ConsumeTop("x0", "y0")
	if negateAfter {
		body = body.AppendOps(opcode.OP_NEGATE)
	}
	fr.PushComputed("c0", 1)

	body = body.AppendOps(opcode.OP_SWAP) // stack is [c0,c1]; convention wants [c1,c0]

	return finalize(f.Modulus, params, body)
}

// Negate computes -x.
func (f Fq2) Negate(x Operand, params ScriptParameters) (opcode.Script, error) {
	body := primitive.Move(x.Position, primitive.ModeFromBool(x.Rolled)).
		AppendOps(opcode.OP_NEGATE, opcode.OP_SWAP, opcode.OP_NEGATE, opcode.OP_SWAP)
	return finalize(f.Modulus, params, body)
}

// Double computes 2x.
func (f Fq2) Double(x Operand, params ScriptParameters) (opcode.Script, error) {
	body := primitive.Move(x.Position, primitive.ModeFromBool(x.Rolled))
	fr := primitive.NewFrame(primitive.Slot{Name: "x1", Degree: 1}, primitive.Slot{Name: "x0", Degree: 1})
	doubled, results := doubleNamesInline(fr, "x1", "x0")
	body = body.Append(doubled)
	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}
	body = body.Append(reorderToTop(fr, results...))
	return finalize(f.Modulus, params, body)
}

// MulByNonResidue computes x*u (multiplication by the tower's defining
// non-residue): (a0,a1)*u = (NonResidue*a1, a0), since u^2 = NonResidue.
func (f Fq2) MulByNonResidue(x Operand, params ScriptParameters) (opcode.Script, error) {
	body := primitive.Move(x.Position, primitive.ModeFromBool(x.Rolled))
	// stack: [a1, a0] -> want [a0, NonResidue*a1] (c1=a0, c0=NonResidue*a1)
	body = body.AppendOps(opcode.OP_SWAP).
		Append(opcode.PushInt(f.NonResidue)).AppendOps(opcode.OP_MUL, opcode.OP_SWAP)
	return finalize(f.Modulus, params, body)
}

// Conjugate computes the Galois conjugate (a0,a1) -> (a0,-a1).
func (f Fq2) Conjugate(x Operand, params ScriptParameters) (opcode.Script, error) {
	body := primitive.Move(x.Position, primitive.ModeFromBool(x.Rolled)).AppendOps(opcode.OP_NEGATE)
	return finalize(f.Modulus, params, body)
}

// Multiply computes x*y via the schoolbook formula c0 = a0*b0 +
// NonResidue*a1*b1, c1 = a0*b1 + a1*b0.
func (f Fq2) Multiply(x, y Operand, params ScriptParameters) (opcode.Script, error) {
	if err := stackmodel.CheckOrder([]stackmodel.Position{x.Position, y.Position}); err != nil {
		return nil, err
	}
	body := primitive.MoveChain([]primitive.Operand{x.moveOperand(), y.moveOperand()})
	fr := primitive.NewFrame(
		primitive.Slot{Name: "a1", Degree: 1}, primitive.Slot{Name: "a0", Degree: 1},
		primitive.Slot{Name: "b1", Degree: 1}, primitive.Slot{Name: "b0", Degree: 1},
	)

	// term1 = a0*b0
	body = body.Append(fr.Pick("a0", "a0c")).Append(fr.Pick("b0", "b0c")).AppendOps(opcode.OP_MUL)
	fr.ConsumeTop("b0c", "a0c")
	fr.PushComputed("term1", 1)

	// term2 = NonResidue * a1 * b1
	body = body.Append(fr.Pick("a1", "a1c")).Append(fr.Pick("b1", "b1c")).AppendOps(opcode.OP_MUL).
		Append(opcode.PushInt(f.NonResidue)).AppendOps(opcode.OP_MUL)
	fr.ConsumeTop("b1c", "a1c")
	fr.PushComputed("term2", 1)

	// c0 = term1 + term2
	body = body.Append(fr.Roll("term1", "term1")).AppendOps(opcode.OP_ADD)
	fr.ConsumeTop("term1", "term2")
	fr.PushComputed("c0", 1)

	// term3 = a0*b1 (both last use: roll)
	body = body.Append(fr.Roll("a0", "a0")).Append(fr.Roll("b1", "b1")).AppendOps(opcode.OP_MUL)
	fr.ConsumeTop("b1", "a0")
	fr.PushComputed("term3", 1)

	// term4 = a1*b0 (both last use: roll)
	body = body.Append(fr.Roll("a1", "a1")).Append(fr.Roll("b0", "b0")).AppendOps(opcode.OP_MUL)
	fr.ConsumeTop("b0", "a1")
	fr.PushComputed("term4", 1)

	// c1 = term3 + term4
	body = body.Append(fr.Roll("term3", "term3")).AppendOps(opcode.OP_ADD)
	fr.ConsumeTop("term3", "term4")
	fr.PushComputed("c1", 1)

	return finalize(f.Modulus, params, body)
}

// Square computes x^2 via the same schoolbook formula as Multiply with
// x==y, but only picking (never rolling) x's coefficients since both are
// needed twice over from a single copy.
func (f Fq2) Square(x Operand, params ScriptParameters) (opcode.Script, error) {
	body := primitive.Move(x.Position, primitive.ModeFromBool(x.Rolled))
	fr := primitive.NewFrame(primitive.Slot{Name: "a1", Degree: 1}, primitive.Slot{Name: "a0", Degree: 1})

	// term1 = a0^2
	body = body.Append(fr.Pick("a0", "a0c")).AppendOps(opcode.OP_DUP, opcode.OP_MUL)
	fr.ConsumeTop("a0c")
	fr.PushComputed("term1", 1)

	// term2 = NonResidue * a1^2
	body = body.Append(fr.Pick("a1", "a1c")).AppendOps(opcode.OP_DUP, opcode.OP_MUL).
		Append(opcode.PushInt(f.NonResidue)).AppendOps(opcode.OP_MUL)
	fr.ConsumeTop("a1c")
	fr.PushComputed("term2", 1)

	// c0 = term1 + term2
	body = body.Append(fr.Roll("term1", "term1")).AppendOps(opcode.OP_ADD)
	fr.ConsumeTop("term1", "term2")
	fr.PushComputed("c0", 1)

	// c1 = 2 * a0 * a1
	body = body.Append(fr.Roll("a0", "a0")).Append(fr.Roll("a1", "a1")).AppendOps(opcode.OP_MUL, opcode.OP_DUP, opcode.OP_ADD)
	fr.ConsumeTop("a1", "a0")
	fr.PushComputed("c1", 1)

	return finalize(f.Modulus, params, body)
}

// Frobenius applies phi(a0,a1) = (a0, gamma*a1), the Frobenius
// endomorphism restricted to F_{q^2} (phi collapses to conjugation here,
// since phi(u) = u^q = gamma*u for the appropriate gamma, spec §3 "Field
// tower").
func (f Fq2) Frobenius(x Operand, gamma *big.Int, params ScriptParameters) (opcode.Script, error) {
	body := primitive.Move(x.Position, primitive.ModeFromBool(x.Rolled))
	body = body.AppendOps(opcode.OP_SWAP).Append(opcode.PushInt(gamma)).AppendOps(opcode.OP_MUL, opcode.OP_SWAP)
	return finalize(f.Modulus, params, body)
}
