package curve

import (
	"math/big"

	"github.com/bsv-blockchain/go-zkscript/opcode"
	"github.com/bsv-blockchain/go-zkscript/primitive"
	"github.com/bsv-blockchain/go-zkscript/stackmodel"
	"github.com/bsv-blockchain/go-zkscript/towers"
)

// G2 is the builder for affine point arithmetic over BLS12-381's sextic
// twist, F_{q^2} (spec §4.4): the same group law as G1, but with every
// coordinate an F_{q^2} element instead of a bare F_q one. Rather than
// re-deriving field arithmetic from raw opcodes the way G1 does, each step
// rolls its Fq2-valued operands to the current top of a local Frame and
// calls straight into towers.Fq2's own whole-operand builders — safe
// precisely because the operands being rolled are, at that instant, the
// frame's current adjacent top slots with nothing un-tracked above them, so
// a fresh stackmodel.Position read back from the Frame addresses exactly
// where they now sit.
type G2 struct {
	Fq2     towers.Fq2
	TwistA  [2]*big.Int
	TwistB  [2]*big.Int
}

// NewG2 constructs a G2 builder for the twisted curve y^2 = x^3 + TwistA*x +
// TwistB over fq2.
func NewG2(fq2 towers.Fq2, twistA, twistB [2]*big.Int) G2 {
	return G2{Fq2: fq2, TwistA: twistA, TwistB: twistB}
}

// rolledFq2 reads back fr's current position for name (which must sit at
// the frame's current top) as a towers.Operand ready to hand to one of
// towers.Fq2's whole-operand builders.
func rolledFq2(fr *primitive.Frame, name string) towers.Operand {
	return towers.Operand{
		Position: stackmodel.Position{Depth: fr.Depth(name), ExtensionDegree: 2},
		Rolled:   true,
	}
}

// PointAddition computes P+Q in affine coordinates over fq2, given a
// precomputed gradient lambda = (y_Q - y_P)/(x_Q - x_P), following exactly
// G1.PointAddition's formula with every operation lifted to Fq2.
//
// lambda must be supplied deeper than P, which must be supplied deeper than
// Q.
func (g G2) PointAddition(lambda towers.Operand, p, q AffineOperand, params ScriptParameters) (opcode.Script, error) {
	if err := stackmodel.CheckOrder([]stackmodel.Position{lambda.Position, p.Position.StackPosition(), q.Position.StackPosition()}); err != nil {
		return nil, err
	}

	body := primitive.MoveChain([]primitive.Operand{
		{Position: lambda.Position, Rolled: lambda.Rolled},
		p.moveOperand(), q.moveOperand(),
	})

	fr := primitive.NewFrame(
		primitive.Slot{Name: "lambda", Degree: 2},
		primitive.Slot{Name: "yP", Degree: 2}, primitive.Slot{Name: "xP", Degree: 2},
		primitive.Slot{Name: "yQ", Degree: 2}, primitive.Slot{Name: "xQ", Degree: 2},
	)

	// y_Q never appears in the formula, so it is dropped first.
	body = body.Append(fr.Roll("yQ", "yQ")).Append(fr.DropTop("yQ"))

	// lambdaSq = lambda^2 (lambda needed again below)
	body = body.Append(fr.Pick("lambda", "t_lambda"))
	sq, err := g.Fq2.Square(rolledFq2(fr, "t_lambda"), towers.ScriptParameters{})
	if err != nil {
		return nil, err
	}
	body = body.Append(sq)
	fr.ConsumeTop("t_lambda")
	fr.PushComputed("lambdaSq", 2)

	// t1 = lambdaSq - xP (xP needed again below)
	body = body.Append(fr.Roll("lambdaSq", "lambdaSq")).Append(fr.Pick("xP", "t_xP"))
	sub1, err := g.Fq2.Subtract(rolledFq2(fr, "lambdaSq"), rolledFq2(fr, "t_xP"), towers.ScriptParameters{})
	if err != nil {
		return nil, err
	}
	body = body.Append(sub1)
	fr.ConsumeTop("t_xP", "lambdaSq")
	fr.PushComputed("t1", 2)

	// xR = t1 - xQ (xQ's only use)
	body = body.Append(fr.Roll("t1", "t1")).Append(fr.Roll("xQ", "xQ"))
	sub2, err := g.Fq2.Subtract(rolledFq2(fr, "t1"), rolledFq2(fr, "xQ"), towers.ScriptParameters{})
	if err != nil {
		return nil, err
	}
	body = body.Append(sub2)
	fr.ConsumeTop("xQ", "t1")
	fr.PushComputed("xR", 2)

	// t2 = xP - xR (xP's last use; xR also needed as output)
	body = body.Append(fr.Roll("xP", "xP")).Append(fr.Pick("xR", "t_xR"))
	sub3, err := g.Fq2.Subtract(rolledFq2(fr, "xP"), rolledFq2(fr, "t_xR"), towers.ScriptParameters{})
	if err != nil {
		return nil, err
	}
	body = body.Append(sub3)
	fr.ConsumeTop("t_xR", "xP")
	fr.PushComputed("t2", 2)

	// t3 = lambda * t2 (lambda's last use)
	body = body.Append(fr.Roll("t2", "t2")).Append(fr.Roll("lambda", "lambda"))
	mul, err := g.Fq2.Multiply(rolledFq2(fr, "t2"), rolledFq2(fr, "lambda"), towers.ScriptParameters{})
	if err != nil {
		return nil, err
	}
	body = body.Append(mul)
	fr.ConsumeTop("lambda", "t2")
	fr.PushComputed("t3", 2)

	// yR = t3 - yP (yP's last use)
	body = body.Append(fr.Roll("t3", "t3")).Append(fr.Roll("yP", "yP"))
	sub4, err := g.Fq2.Subtract(rolledFq2(fr, "t3"), rolledFq2(fr, "yP"), towers.ScriptParameters{})
	if err != nil {
		return nil, err
	}
	body = body.Append(sub4)
	fr.ConsumeTop("yP", "t3")
	fr.PushComputed("yR", 2)

	return finalize(g.Fq2.Modulus, params, body)
}

// PointDoubling computes 2P in affine coordinates over fq2, given a
// precomputed gradient lambda = (3*x_P^2 + TwistA)/(2*y_P).
//
// lambda must be supplied deeper than P.
func (g G2) PointDoubling(lambda towers.Operand, p AffineOperand, params ScriptParameters) (opcode.Script, error) {
	if err := stackmodel.CheckOrder([]stackmodel.Position{lambda.Position, p.Position.StackPosition()}); err != nil {
		return nil, err
	}

	body := primitive.MoveChain([]primitive.Operand{
		{Position: lambda.Position, Rolled: lambda.Rolled},
		p.moveOperand(),
	})

	fr := primitive.NewFrame(
		primitive.Slot{Name: "lambda", Degree: 2},
		primitive.Slot{Name: "yP", Degree: 2}, primitive.Slot{Name: "xP", Degree: 2},
	)

	// lambdaSq = lambda^2 (lambda needed again below)
	body = body.Append(fr.Pick("lambda", "t_lambda"))
	sq, err := g.Fq2.Square(rolledFq2(fr, "t_lambda"), towers.ScriptParameters{})
	if err != nil {
		return nil, err
	}
	body = body.Append(sq)
	fr.ConsumeTop("t_lambda")
	fr.PushComputed("lambdaSq", 2)

	// twoXp = 2*xP (xP needed again below)
	body = body.Append(fr.Pick("xP", "t_xP"))
	dbl, err := g.Fq2.Double(rolledFq2(fr, "t_xP"), towers.ScriptParameters{})
	if err != nil {
		return nil, err
	}
	body = body.Append(dbl)
	fr.ConsumeTop("t_xP")
	fr.PushComputed("twoXp", 2)

	// xR = lambdaSq - twoXp
	body = body.Append(fr.Roll("lambdaSq", "lambdaSq")).Append(fr.Roll("twoXp", "twoXp"))
	sub1, err := g.Fq2.Subtract(rolledFq2(fr, "lambdaSq"), rolledFq2(fr, "twoXp"), towers.ScriptParameters{})
	if err != nil {
		return nil, err
	}
	body = body.Append(sub1)
	fr.ConsumeTop("twoXp", "lambdaSq")
	fr.PushComputed("xR", 2)

	// t2 = xP - xR (xP's last use; xR also needed as output)
	body = body.Append(fr.Roll("xP", "xP")).Append(fr.Pick("xR", "t_xR"))
	sub2, err := g.Fq2.Subtract(rolledFq2(fr, "xP"), rolledFq2(fr, "t_xR"), towers.ScriptParameters{})
	if err != nil {
		return nil, err
	}
	body = body.Append(sub2)
	fr.ConsumeTop("t_xR", "xP")
	fr.PushComputed("t2", 2)

	// t3 = lambda * t2 (lambda's last use)
	body = body.Append(fr.Roll("t2", "t2")).Append(fr.Roll("lambda", "lambda"))
	mul, err := g.Fq2.Multiply(rolledFq2(fr, "t2"), rolledFq2(fr, "lambda"), towers.ScriptParameters{})
	if err != nil {
		return nil, err
	}
	body = body.Append(mul)
	fr.ConsumeTop("lambda", "t2")
	fr.PushComputed("t3", 2)

	// yR = t3 - yP (yP's last use)
	body = body.Append(fr.Roll("t3", "t3")).Append(fr.Roll("yP", "yP"))
	sub3, err := g.Fq2.Subtract(rolledFq2(fr, "t3"), rolledFq2(fr, "yP"), towers.ScriptParameters{})
	if err != nil {
		return nil, err
	}
	body = body.Append(sub3)
	fr.ConsumeTop("yP", "t3")
	fr.PushComputed("yR", 2)

	return finalize(g.Fq2.Modulus, params, body)
}
