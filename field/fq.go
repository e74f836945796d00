// Package field implements the base-field arithmetic layer of spec §4.3: Fq
// builders for addition, subtraction, negation, doubling, multiplication,
// squaring and scalar multiplication, every one of them parameterised by the
// uniform ScriptParameters flag contract the rest of the module's algebraic
// layers (towers, curve, pairing) also thread through.
package field

import (
	"math/big"

	"github.com/bsv-blockchain/go-zkscript/opcode"
	"github.com/bsv-blockchain/go-zkscript/primitive"
	"github.com/bsv-blockchain/go-zkscript/stackmodel"
	"github.com/bsv-blockchain/go-zkscript/zkslog"
)

// Fq is the builder for arithmetic over Z/qZ.
type Fq struct {
	Modulus *big.Int
}

// New constructs an Fq builder for the given characteristic.
func New(q *big.Int) Fq {
	return Fq{Modulus: q}
}

// ScriptParameters is spec §4.3's uniform contract: the flag bundle every
// field-arithmetic builder accepts, controlling whether q is checked/
// consumed/reduced against and where it is expected to be found.
type ScriptParameters struct {
	// CheckConstant, when set, prepends a VerifyBottomConstant(q) guard.
	CheckConstant bool
	// TakeModulo, when set, appends a modular reduction of the result.
	TakeModulo bool
	// PositiveModulo normalises the reduced result into [0, q).
	PositiveModulo bool
	// CleanConstant and IsConstantReused are mutually exclusive and, when
	// TakeModulo is set, exactly one must be set (primitive.Mod enforces
	// this). They select whether q is dropped or left for the next
	// operation in the same chain to reuse.
	CleanConstant    bool
	IsConstantReused bool
	// ConstantLocation says where q currently sits, so TakeModulo knows how
	// to bring it to the top before reducing. Callers opening a fresh chain
	// leave this at its zero value, ConstantAtBottom.
	ConstantLocation primitive.ConstantLocation
}

func (params ScriptParameters) modOptions() primitive.ModOptions {
	return primitive.ModOptions{
		PositiveModulo:   params.PositiveModulo,
		CleanConstant:    params.CleanConstant,
		IsConstantReused: params.IsConstantReused,
	}
}

// finalize wraps body with the check_constant guard and the take_modulo
// reduction, per the uniform contract.
func (f Fq) finalize(params ScriptParameters, body opcode.Script) (opcode.Script, error) {
	out := opcode.New()
	if params.CheckConstant {
		out = out.Append(primitive.VerifyBottomConstant(f.Modulus))
	}
	out = out.Append(body)
	if params.TakeModulo {
		zkslog.Logger().Debug().Str("field", "Fq").Msg("inserting modular reduction")
		out = out.Append(primitive.PrepareConstant(params.ConstantLocation))
		modScript, err := primitive.Mod(params.modOptions())
		if err != nil {
			return nil, err
		}
		out = out.Append(modScript)
	}
	return out, nil
}

// Operand is a field element's stack position together with whether this
// operation should roll (consume) or pick (copy) it. The position's Negate
// flag says whether the slot should be read as carrying the negation of the
// value actually stored there.
type Operand struct {
	Position stackmodel.Position
	Rolled   bool
}

func (o Operand) moveOperand() primitive.Operand {
	return primitive.Operand{Position: o.Position, Rolled: o.Rolled}
}

// AlgebraicSum computes (x signed) + (y signed), where each operand's sign
// comes from its Position.Negate flag, grounded on the base-field
// `algebraic_sum` sign table: an OP_ADD when the two signs agree, else an
// OP_SUB, with a trailing OP_NEGATE exactly when it is needed to flip the
// result onto the correct sign (spec §4.3 `algebraic_sum`).
//
// x must be supplied deeper in the stack than y (spec §4.1 `check_order`).
func (f Fq) AlgebraicSum(x, y Operand, params ScriptParameters) (opcode.Script, error) {
	if err := stackmodel.CheckOrder([]stackmodel.Position{x.Position, y.Position}); err != nil {
		return nil, err
	}

	body := primitive.MoveChain([]primitive.Operand{x.moveOperand(), y.moveOperand()})

	bothNegated := x.Position.Negate && y.Position.Negate
	eitherNegated := x.Position.Negate || y.Position.Negate
	switch {
	case !eitherNegated:
		body = body.AppendOps(opcode.OP_ADD)
	case bothNegated:
		body = body.AppendOps(opcode.OP_ADD, opcode.OP_NEGATE)
	case y.Position.Negate:
		body = body.AppendOps(opcode.OP_SUB, opcode.OP_NEGATE)
	default:
		body = body.AppendOps(opcode.OP_SUB)
	}

	return f.finalize(params, body)
}

// Add computes x+y, ignoring each operand's own Negate flag (the sign table
// in AlgebraicSum already does the right thing when a caller passes
// negated operands through unchanged; Add is the common case where neither
// is).
func (f Fq) Add(x, y Operand, params ScriptParameters) (opcode.Script, error) {
	return f.AlgebraicSum(x, y, params)
}

// Subtract computes x-y.
func (f Fq) Subtract(x, y Operand, params ScriptParameters) (opcode.Script, error) {
	negY := y
	negY.Position = y.Position.Negated()
	return f.AlgebraicSum(x, negY, params)
}

// Negate computes -x.
func (f Fq) Negate(x Operand, params ScriptParameters) (opcode.Script, error) {
	body := primitive.Move(x.Position, primitive.ModeFromBool(x.Rolled)).AppendOps(opcode.OP_NEGATE)
	return f.finalize(params, body)
}

// Double computes 2x. It cannot reuse AlgebraicSum: CheckOrder rejects an
// operand against itself, and x only lives at one stack position, so the
// value is duplicated in place instead of being addressed twice.
func (f Fq) Double(x Operand, params ScriptParameters) (opcode.Script, error) {
	body := primitive.Move(x.Position, primitive.ModeFromBool(x.Rolled)).AppendOps(opcode.OP_DUP, opcode.OP_ADD)
	return f.finalize(params, body)
}

// Multiply computes x*y, negating the result when exactly one operand's
// Negate flag is set.
//
// x must be supplied deeper in the stack than y.
func (f Fq) Multiply(x, y Operand, params ScriptParameters) (opcode.Script, error) {
	if err := stackmodel.CheckOrder([]stackmodel.Position{x.Position, y.Position}); err != nil {
		return nil, err
	}
	body := primitive.MoveChain([]primitive.Operand{x.moveOperand(), y.moveOperand()}).AppendOps(opcode.OP_MUL)
	if x.Position.Negate != y.Position.Negate {
		body = body.AppendOps(opcode.OP_NEGATE)
	}
	return f.finalize(params, body)
}

// Square computes x^2. Like Double, it duplicates x in place rather than
// addressing it twice; the result's sign never depends on x's Negate flag,
// since (-a)^2 = a^2.
func (f Fq) Square(x Operand, params ScriptParameters) (opcode.Script, error) {
	body := primitive.Move(x.Position, primitive.ModeFromBool(x.Rolled)).AppendOps(opcode.OP_DUP, opcode.OP_MUL)
	return f.finalize(params, body)
}

// ScalarMul computes x*scalar for a scalar known at compile time, folding
// the scalar's own sign and x's Negate flag into a single trailing
// OP_NEGATE when the two disagree.
func (f Fq) ScalarMul(x Operand, scalar *big.Int, params ScriptParameters) (opcode.Script, error) {
	body := primitive.Move(x.Position, primitive.ModeFromBool(x.Rolled))
	body = body.Append(opcode.PushInt(new(big.Int).Abs(scalar))).AppendOps(opcode.OP_MUL)

	negate := x.Position.Negate
	if scalar.Sign() < 0 {
		negate = !negate
	}
	if negate {
		body = body.AppendOps(opcode.OP_NEGATE)
	}
	return f.finalize(params, body)
}
