// Package towers implements the field-tower arithmetic layer of spec
// §4.3/§4.4: F_q2, F_q4, F_q6 and F_q12 extensions, each built as a fixed
// degree-2 or degree-3 extension over a base field, following the "move
// every operand to a canonical top-of-stack frame, then run a fixed local
// formula" discipline primitive.Frame exists to make tractable.
package towers

import (
	"math/big"

	"github.com/bsv-blockchain/go-zkscript/opcode"
	"github.com/bsv-blockchain/go-zkscript/primitive"
	"github.com/bsv-blockchain/go-zkscript/zkslog"
)

// ScriptParameters is the uniform contract (spec §4.3) threaded through
// every tower-level builder, identical in shape to field.ScriptParameters:
// the two packages intentionally do not share a type, since each algebraic
// layer in this module owns its builder's parameters independently (spec's
// layering model treats F_q, F_q2, F_q6, ... as distinct builders that
// happen to need the same flag bundle).
type ScriptParameters struct {
	CheckConstant    bool
	TakeModulo       bool
	PositiveModulo   bool
	CleanConstant    bool
	IsConstantReused bool
	ConstantLocation primitive.ConstantLocation
}

func (params ScriptParameters) modOptions() primitive.ModOptions {
	return primitive.ModOptions{
		PositiveModulo:   params.PositiveModulo,
		CleanConstant:    params.CleanConstant,
		IsConstantReused: params.IsConstantReused,
	}
}

func finalize(q *big.Int, params ScriptParameters, body opcode.Script) (opcode.Script, error) {
	out := opcode.New()
	if params.CheckConstant {
		out = out.Append(primitive.VerifyBottomConstant(q))
	}
	out = out.Append(body)
	if params.TakeModulo {
		zkslog.Logger().Debug().Str("field", "towers").Msg("inserting modular reduction")
		out = out.Append(primitive.PrepareConstant(params.ConstantLocation))
		modScript, err := primitive.Mod(params.modOptions())
		if err != nil {
			return nil, err
		}
		out = out.Append(modScript)
	}
	return out, nil
}

// signTable mirrors field.Fq.AlgebraicSum's ADD/SUB/NEGATE selection (spec
// §4.3 `algebraic_sum`): every tower level applies the same table
// component-wise, since negating a tower element negates every one of its
// coefficients uniformly.
func signTable(xNegate, yNegate bool) (op opcode.Op, negateAfter bool) {
	switch {
	case !xNegate && !yNegate:
		return opcode.OP_ADD, false
	case xNegate && yNegate:
		return opcode.OP_ADD, true
	case yNegate:
		return opcode.OP_SUB, true
	default:
		return opcode.OP_SUB, false
	}
}

// The helpers below let Fq4/Fq6/Fq12 build their multiplication and addition
// formulas out of named Frame slots instead of hand-derived depths, the same
// way Fq2's own Multiply/algebraicSum do, but reusable at any nesting level:
// a caller names where an operand's scalars currently sit in a shared Frame,
// and gets back both the emitted opcodes and the names of the freshly pushed
// result. The mul*Inline helpers only ever Pick their operands (never Roll
// them), so a formula built from several of these never has to reason about
// shared operands being consumed out from under a later step; the add and
// double helpers Roll (consume) theirs. reorderToTop and dropNamedScalars
// below handle putting the final result in the high-coefficient-on-top
// convention and clearing the now-unused originals.

// mulFq2Inline emits the schoolbook F_q2 product of the two-scalar operands
// named (a1,a0) and (b1,b0) — wherever they currently sit in fr — under
// c0 = a0*b0 + nonResidue*a1*b1, c1 = a0*b1 + a1*b0, pushing the result as
// two new scalar slots named outPrefix+"1" (top) and outPrefix+"0".
func mulFq2Inline(fr *primitive.Frame, nonResidue *big.Int, a1, a0, b1, b0, outPrefix string) opcode.Script {
	body := opcode.New()

	body = body.Append(fr.Pick(a0, "t_a0")).Append(fr.Pick(b0, "t_b0")).AppendOps(opcode.OP_MUL)
	fr.ConsumeTop("t_b0", "t_a0")
	fr.PushComputed("t1", 1)

	body = body.Append(fr.Pick(a1, "t_a1")).Append(fr.Pick(b1, "t_b1")).AppendOps(opcode.OP_MUL).
		Append(opcode.PushInt(nonResidue)).AppendOps(opcode.OP_MUL)
	fr.ConsumeTop("t_b1", "t_a1")
	fr.PushComputed("t2", 1)

	body = body.Append(fr.Roll("t1", "t1")).AppendOps(opcode.OP_ADD)
	fr.ConsumeTop("t1", "t2")
	fr.PushComputed(outPrefix+"0", 1)

	body = body.Append(fr.Pick(a0, "t_a0b")).Append(fr.Pick(b1, "t_b1b")).AppendOps(opcode.OP_MUL)
	fr.ConsumeTop("t_b1b", "t_a0b")
	fr.PushComputed("t3", 1)

	body = body.Append(fr.Pick(a1, "t_a1b")).Append(fr.Pick(b0, "t_b0b")).AppendOps(opcode.OP_MUL)
	fr.ConsumeTop("t_b0b", "t_a1b")
	fr.PushComputed("t4", 1)

	body = body.Append(fr.Roll("t3", "t3")).AppendOps(opcode.OP_ADD)
	fr.ConsumeTop("t3", "t4")
	fr.PushComputed(outPrefix+"1", 1)

	return body
}

// addFq2Inline emits a plain (no negation) component-wise sum of the
// two-scalar operands named (a1,a0) and (b1,b0), pushing the result as
// outPrefix+"1" (top) and outPrefix+"0".
func addFq2Inline(fr *primitive.Frame, a1, a0, b1, b0, outPrefix string) opcode.Script {
	body := opcode.New()

	body = body.Append(fr.Roll(a0, a0)).Append(fr.Roll(b0, b0)).AppendOps(opcode.OP_ADD)
	fr.ConsumeTop(b0, a0)
	fr.PushComputed(outPrefix+"0", 1)

	body = body.Append(fr.Roll(a1, a1)).Append(fr.Roll(b1, b1)).AppendOps(opcode.OP_ADD)
	fr.ConsumeTop(b1, a1)
	fr.PushComputed(outPrefix+"1", 1)

	return body
}

// doubleFq2Inline emits 2*(a1,a0) by rolling each scalar to the top and
// adding it to itself, consuming the originals in the process (unlike
// mulFq2Inline's operands, a1/a0 do not need to survive this call — there is
// nothing left to drop afterwards).
func doubleFq2Inline(fr *primitive.Frame, a1, a0, outPrefix string) opcode.Script {
	body := opcode.New()
	body = body.Append(fr.Roll(a0, a0)).AppendOps(opcode.OP_DUP, opcode.OP_ADD)
	fr.ConsumeTop(a0)
	fr.PushComputed(outPrefix+"0", 1)

	body = body.Append(fr.Roll(a1, a1)).AppendOps(opcode.OP_DUP, opcode.OP_ADD)
	fr.ConsumeTop(a1)
	fr.PushComputed(outPrefix+"1", 1)

	return body
}

// pushFq2Literal pushes the constant (c1,c0) pair as two new named scalar
// slots, c0 first so c1 ends on top, matching the high-coefficient-on-top
// convention used throughout.
func pushFq2Literal(fr *primitive.Frame, c1, c0 *big.Int, outPrefix string) opcode.Script {
	body := opcode.New().Append(opcode.PushInt(c0))
	fr.PushComputed(outPrefix+"0", 1)
	body = body.Append(opcode.PushInt(c1))
	fr.PushComputed(outPrefix+"1", 1)
	return body
}

// dropNamedScalars rolls each named single-scalar slot to the top and drops
// it, in the order given; used to discard operand scalars a Pick-only
// formula left in place once every use of them has been emitted.
func dropNamedScalars(fr *primitive.Frame, names ...string) opcode.Script {
	body := opcode.New()
	for _, name := range names {
		body = body.Append(fr.Roll(name, name)).AppendOps(opcode.OP_DROP)
		fr.ConsumeTop(name)
	}
	return body
}

// fq2Names bundles the two raw-scalar slot names backing one F_q2
// sub-coefficient of a higher tower (F_q6's three coefficients, F_q12's
// two), keeping the many Fq6/Fq12 formula call sites from passing eight
// bare strings around.
type fq2Names struct{ c1, c0 string }

// mulFq6Inline emits the schoolbook F_q6 = F_q2[v]/(v^3-nonResidue) product
// of a = (a2,a1,a0) and b = (b2,b1,b0), each an fq2Names triple, under
//
//	c0 = a0*b0 + nonResidue*(a1*b2 + a2*b1)
//	c1 = a0*b1 + a1*b0 + nonResidue*a2*b2
//	c2 = a0*b2 + a1*b1 + a2*b0
//
// pushing the result as three new fq2Names-shaped slot pairs named
// outPrefix+"21"/"20" (c2, top), outPrefix+"11"/"10" (c1),
// outPrefix+"01"/"00" (c0, bottom). innerNonResidue is F_q2's own defining
// constant, used by every one of the nine Fq2 multiplications this performs.
func mulFq6Inline(fr *primitive.Frame, innerNonResidue *big.Int, outerNonResidue [2]*big.Int, a2, a1, a0, b2, b1, b0 fq2Names, outPrefix string) opcode.Script {
	body := opcode.New()

	mul := func(x, y fq2Names, name string) fq2Names {
		body = body.Append(mulFq2Inline(fr, innerNonResidue, x.c1, x.c0, y.c1, y.c0, name))
		return fq2Names{c1: name + "1", c0: name + "0"}
	}
	add := func(x, y fq2Names, name string) fq2Names {
		body = body.Append(addFq2Inline(fr, x.c1, x.c0, y.c1, y.c0, name))
		return fq2Names{c1: name + "1", c0: name + "0"}
	}
	// scaleByNonResidue multiplies x by the outer defining constant and
	// drops x and the pushed literal once the product is taken, since both
	// are otherwise unreachable leaked names the caller has no way to name.
	scaleByNonResidue := func(x fq2Names, name string) fq2Names {
		body = body.Append(pushFq2Literal(fr, outerNonResidue[1], outerNonResidue[0], name+"k"))
		k := fq2Names{c1: name + "k1", c0: name + "k0"}
		result := mul(x, k, name)
		body = body.Append(dropNamedScalars(fr, x.c1, x.c0, k.c1, k.c0))
		return result
	}

	a1b2 := mul(a1, b2, outPrefix+"_a1b2")
	a2b1 := mul(a2, b1, outPrefix+"_a2b1")
	sum0 := add(a1b2, a2b1, outPrefix+"_s0")
	nrSum0 := scaleByNonResidue(sum0, outPrefix+"_nr0")
	a0b0 := mul(a0, b0, outPrefix+"_a0b0")
	c0 := add(a0b0, nrSum0, outPrefix+"0")

	a0b1 := mul(a0, b1, outPrefix+"_a0b1")
	a1b0 := mul(a1, b0, outPrefix+"_a1b0")
	sum1 := add(a0b1, a1b0, outPrefix+"_s1")
	a2b2 := mul(a2, b2, outPrefix+"_a2b2")
	nrA2b2 := scaleByNonResidue(a2b2, outPrefix+"_nr1")
	_ = add(sum1, nrA2b2, outPrefix+"1")

	a0b2 := mul(a0, b2, outPrefix+"_a0b2")
	a1b1 := mul(a1, b1, outPrefix+"_a1b1")
	sum2 := add(a0b2, a1b1, outPrefix+"_s2")
	a2b0 := mul(a2, b0, outPrefix+"_a2b0")
	_ = add(sum2, a2b0, outPrefix+"2")

	_ = c0
	return body
}

// addFq6Inline emits a plain component-wise sum of two F_q6 triples,
// pushing the result under outPrefix+"2?"/"1?"/"0?" following
// mulFq6Inline's own naming.
func addFq6Inline(fr *primitive.Frame, a2, a1, a0, b2, b1, b0 fq2Names, outPrefix string) opcode.Script {
	body := opcode.New()
	body = body.Append(addFq2Inline(fr, a0.c1, a0.c0, b0.c1, b0.c0, outPrefix+"0"))
	body = body.Append(addFq2Inline(fr, a1.c1, a1.c0, b1.c1, b1.c0, outPrefix+"1"))
	body = body.Append(addFq2Inline(fr, a2.c1, a2.c0, b2.c1, b2.c0, outPrefix+"2"))
	return body
}

// pushFq6Literal pushes a constant F_q6 triple (c2,c1,c0), each itself a
// (c1,c0) F_q2 pair, low coefficient first so the high one ends on top.
func pushFq6Literal(fr *primitive.Frame, c2, c1, c0 [2]*big.Int, outPrefix string) opcode.Script {
	body := opcode.New()
	body = body.Append(pushFq2Literal(fr, c0[1], c0[0], outPrefix+"0"))
	body = body.Append(pushFq2Literal(fr, c1[1], c1[0], outPrefix+"1"))
	body = body.Append(pushFq2Literal(fr, c2[1], c2[0], outPrefix+"2"))
	return body
}

// reorderToTop rolls each named slot to the top in the order given, so the
// last name ends up shallowest; pass final coefficients deepest-desired
// first to land them in the high-coefficient-on-top convention.
func reorderToTop(fr *primitive.Frame, names ...string) opcode.Script {
	body := opcode.New()
	for _, name := range names {
		body = body.Append(fr.Roll(name, name))
	}
	return body
}

// fq6ResultNames names the six raw scalars a mulFq6Inline/addFq6Inline call
// under outPrefix pushed, mirroring fq6Names but for the "2"/"1"/"0" (no
// underscore) suffix convention those two helpers use for their own output,
// as opposed to fq6Slots/fq6Names's "2_1"/"2_0" input-operand convention.
func fq6ResultNames(prefix string) (c2, c1, c0 fq2Names) {
	return fq2Names{c1: prefix + "21", c0: prefix + "20"},
		fq2Names{c1: prefix + "11", c0: prefix + "10"},
		fq2Names{c1: prefix + "01", c0: prefix + "00"}
}

// fq6Group bundles the three fq2Names coefficients backing one F_q6 value
// (one of F_q12's two coefficients), the F_q6 analogue of fq2Names.
type fq6Group struct{ c2, c1, c0 fq2Names }

// rawNames returns a group's six raw scalar names, high to low.
func (g fq6Group) rawNames() []string {
	return []string{g.c2.c1, g.c2.c0, g.c1.c1, g.c1.c0, g.c0.c1, g.c0.c0}
}

// mulFq12Inline emits the schoolbook F_q12 = F_q6[w]/(w^2-outerNonResidue)
// product of a = a1*w+a0 and b = b1*w+b0 under c0 = a0*b0 +
// outerNonResidue*a1*b1, c1 = a0*b1 + a1*b0, each term itself a full F_q6
// product/sum built from mulFq6Inline/addFq6Inline. Like mulFq2Inline and
// mulFq6Inline, every one of a1/a0/b1/b0's twenty-four raw scalars is
// only ever Picked (via the nested mulFq2Inline calls), never Rolled, so the
// caller drops them explicitly once done. Pushes the result under
// outPrefix+"1"+<fq6 suffix> (c1, top) and outPrefix+"0"+<fq6 suffix> (c0).
func mulFq12Inline(fr *primitive.Frame, innerNonResidue *big.Int, fq6NonResidue [2]*big.Int, outerNonResidue [3][2]*big.Int, a1, a0, b1, b0 fq6Group, outPrefix string) opcode.Script {
	body := opcode.New()

	mul := func(x, y fq6Group, name string) fq6Group {
		body = body.Append(mulFq6Inline(fr, innerNonResidue, fq6NonResidue, x.c2, x.c1, x.c0, y.c2, y.c1, y.c0, name))
		c2, c1, c0 := fq6ResultNames(name)
		return fq6Group{c2: c2, c1: c1, c0: c0}
	}
	add := func(x, y fq6Group, name string) fq6Group {
		body = body.Append(addFq6Inline(fr, x.c2, x.c1, x.c0, y.c2, y.c1, y.c0, name))
		c2, c1, c0 := fq6ResultNames(name)
		return fq6Group{c2: c2, c1: c1, c0: c0}
	}
	scaleByOuterNonResidue := func(x fq6Group, name string) fq6Group {
		body = body.Append(pushFq6Literal(fr, outerNonResidue[2], outerNonResidue[1], outerNonResidue[0], name+"k"))
		kc2, kc1, kc0 := fq6ResultNames(name + "k")
		k := fq6Group{c2: kc2, c1: kc1, c0: kc0}
		result := mul(x, k, name)
		body = body.Append(dropNamedScalars(fr, append(x.rawNames(), k.rawNames()...)...))
		return result
	}

	a1b1 := mul(a1, b1, outPrefix+"_a1b1")
	nrA1b1 := scaleByOuterNonResidue(a1b1, outPrefix+"_nr")
	a0b0 := mul(a0, b0, outPrefix+"_a0b0")
	_ = add(a0b0, nrA1b1, outPrefix+"0")

	a0b1 := mul(a0, b1, outPrefix+"_a0b1")
	a1b0 := mul(a1, b0, outPrefix+"_a1b0")
	_ = add(a0b1, a1b0, outPrefix+"1")

	return body
}

// doubleNamesInline doubles each named scalar in turn by rolling it to the
// top and adding it to itself, returning the result names in processing
// order (so the last entry ended up shallowest). Rolling (rather than
// picking) the scalar before doubling it is what keeps this safe to call on
// a scalar that no longer sits at the top of the frame: picking it would
// leave an unrelated, already-computed result wedged between the copy and
// the original by the time the addition ran.
func doubleNamesInline(fr *primitive.Frame, names ...string) (opcode.Script, []string) {
	body := opcode.New()
	results := make([]string, 0, len(names))
	for _, name := range names {
		body = body.Append(fr.Roll(name, name)).AppendOps(opcode.OP_DUP, opcode.OP_ADD)
		fr.ConsumeTop(name)
		result := "d_" + name
		fr.PushComputed(result, 1)
		results = append(results, result)
	}
	return body, results
}
