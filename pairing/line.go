package pairing

import (
	"github.com/bsv-blockchain/go-zkscript/curve"
	"github.com/bsv-blockchain/go-zkscript/opcode"
	"github.com/bsv-blockchain/go-zkscript/primitive"
	"github.com/bsv-blockchain/go-zkscript/stackmodel"
	"github.com/bsv-blockchain/go-zkscript/towers"
)

// Sextic is the line-evaluation builder for a sextic-twist pairing (spec
// §4.5 "Line evaluation and sparse multiplications"), BLS12-381's shape:
// the target field is F_q12 = F_q6[w]/(w^2-nr), and a line through the
// current Miller-loop point T = (xT,yT) (on the twist, so an F_q2 point)
// embeds into exactly two of Fq12's six F_q2 coefficient slots once the
// evaluation point P = (xP,yP) has been folded in.
//
// Rather than evaluating the line densely (y - lambda*x + (lambda*xT-yT))
// and only then discovering where the result sits in the tower, this
// builder takes the same shortcut the BN254 pairing implementation this
// package is grounded on does: it asks the caller for P's coordinates
// pre-processed into xNegOverY = -xP/yP and yInv = 1/yP, both already
// embedded as F_q2 elements with a zero top coefficient (the same
// convention the rest of this module uses for every algebraic witness a
// locking script consumes — computed off-chain, supplied as already-shaped
// stack values, never inverted or divided on-chain). Given those plus
// lambda and T, R0 = lambda*xNegOverY and R1 = (lambda*xT-yT)*yInv land
// directly in Fq12's a1.c0 and a1.c1 slots, with a0 the identity and every
// other slot zero — this sparsity is exactly what SparseSparse and
// SparseDense below exploit to skip most of a dense Fq12 multiplication.
type Sextic struct {
	Fq2  towers.Fq2
	Fq12 towers.Fq12
}

// NewSextic constructs a Sextic line-evaluation builder over the given
// towers.
func NewSextic(fq2 towers.Fq2, fq12 towers.Fq12) Sextic {
	return Sextic{Fq2: fq2, Fq12: fq12}
}

// Evaluate computes the sparse Fq12 line value for the tangent/chord
// through T with gradient lambda, evaluated at the G1 point whose
// pre-scaled coordinates are xNegOverY and yInv.
//
// Operands must be supplied in the order lambda, xNegOverY, yInv, T (each
// deeper than the next), matching curve.G2.PointAddition/PointDoubling's own
// "gradient supplied deepest" convention.
func (s Sextic) Evaluate(lambda, xNegOverY, yInv towers.Operand, t curve.AffineOperand, params ScriptParameters) (opcode.Script, error) {
	if err := stackmodel.CheckOrder([]stackmodel.Position{
		lambda.Position, xNegOverY.Position, yInv.Position, t.Position.StackPosition(),
	}); err != nil {
		return nil, err
	}

	body := primitive.MoveChain([]primitive.Operand{
		{Position: lambda.Position, Rolled: lambda.Rolled},
		{Position: xNegOverY.Position, Rolled: xNegOverY.Rolled},
		{Position: yInv.Position, Rolled: yInv.Rolled},
		{Position: t.Position.StackPosition(), Rolled: t.Rolled},
	})

	fr := primitive.NewFrame(
		primitive.Slot{Name: "lambda", Degree: 2},
		primitive.Slot{Name: "xNegOverY", Degree: 2},
		primitive.Slot{Name: "yInv", Degree: 2},
		primitive.Slot{Name: "yT", Degree: 2}, primitive.Slot{Name: "xT", Degree: 2},
	)

	// r1raw = lambda*xT - yT (lambda needed again for r0 below)
	body = body.Append(fr.Pick("lambda", "t_lambda")).Append(fr.Roll("xT", "xT"))
	mul1, err := s.Fq2.Multiply(rolledFq2(fr, "t_lambda"), rolledFq2(fr, "xT"), towers.ScriptParameters{})
	if err != nil {
		return nil, err
	}
	body = body.Append(mul1)
	fr.ConsumeTop("xT", "t_lambda")
	fr.PushComputed("lambdaXt", 2)

	body = body.Append(fr.Roll("lambdaXt", "lambdaXt")).Append(fr.Roll("yT", "yT"))
	sub1, err := s.Fq2.Subtract(rolledFq2(fr, "lambdaXt"), rolledFq2(fr, "yT"), towers.ScriptParameters{})
	if err != nil {
		return nil, err
	}
	body = body.Append(sub1)
	fr.ConsumeTop("yT", "lambdaXt")
	fr.PushComputed("r1raw", 2)

	// r1 = r1raw * yInv (both last use)
	body = body.Append(fr.Roll("r1raw", "r1raw")).Append(fr.Roll("yInv", "yInv"))
	mul2, err := s.Fq2.Multiply(rolledFq2(fr, "r1raw"), rolledFq2(fr, "yInv"), towers.ScriptParameters{})
	if err != nil {
		return nil, err
	}
	body = body.Append(mul2)
	fr.ConsumeTop("yInv", "r1raw")
	fr.PushComputed("r1", 2)

	// r0 = lambda * xNegOverY (both last use)
	body = body.Append(fr.Roll("lambda", "lambda")).Append(fr.Roll("xNegOverY", "xNegOverY"))
	mul3, err := s.Fq2.Multiply(rolledFq2(fr, "lambda"), rolledFq2(fr, "xNegOverY"), towers.ScriptParameters{})
	if err != nil {
		return nil, err
	}
	body = body.Append(mul3)
	fr.ConsumeTop("xNegOverY", "lambda")
	fr.PushComputed("r0", 2)

	// assemble the sparse Fq12 value bottom-up: a0.c0=1, a0.c1=a0.c2=0,
	// a1.c0=r0, a1.c1=r1, a1.c2=0.
	body = body.Append(pushFq2One(fr, "a0c0"))
	body = body.Append(pushFq2Zero(fr, "a0c1"))
	body = body.Append(pushFq2Zero(fr, "a0c2"))
	body = body.Append(fr.Roll("r0", "r0"))
	fr.ConsumeTop("r0")
	fr.PushComputed("a1c0", 2)
	body = body.Append(fr.Roll("r1", "r1"))
	fr.ConsumeTop("r1")
	fr.PushComputed("a1c1", 2)
	body = body.Append(pushFq2Zero(fr, "a1c2"))

	return finalize(s.Fq2.Modulus, params, body)
}

// rolledFq2 reads back fr's current position for name (which must sit at
// the frame's current top) as a towers.Operand, matching curve.G2's own
// helper of the same name.
func rolledFq2(fr *primitive.Frame, name string) towers.Operand {
	return towers.Operand{
		Position: stackmodel.Position{Depth: fr.Depth(name), ExtensionDegree: 2},
		Rolled:   true,
	}
}
