package field

import (
	"math/big"
	"testing"

	"github.com/bsv-blockchain/go-zkscript/opcode"
	"github.com/bsv-blockchain/go-zkscript/primitive"
	"github.com/bsv-blockchain/go-zkscript/stackmodel"
	"github.com/stretchr/testify/require"
)

var testModulus = big.NewInt(101)

func xy(xNeg, yNeg bool) (Operand, Operand) {
	x := Operand{Position: stackmodel.MustNew(1, 1, xNeg)}
	y := Operand{Position: stackmodel.MustNew(0, 1, yNeg)}
	return x, y
}

func moveBoth(x, y Operand) opcode.Script {
	return primitive.MoveChain([]primitive.Operand{x.moveOperand(), y.moveOperand()})
}

func TestAlgebraicSumNeitherNegatedUsesAdd(t *testing.T) {
	f := New(testModulus)
	x, y := xy(false, false)
	got, err := f.AlgebraicSum(x, y, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, got.Equals(moveBoth(x, y).AppendOps(opcode.OP_ADD)))
}

func TestAlgebraicSumBothNegatedAddsThenNegates(t *testing.T) {
	f := New(testModulus)
	x, y := xy(true, true)
	got, err := f.AlgebraicSum(x, y, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, got.Equals(moveBoth(x, y).AppendOps(opcode.OP_ADD, opcode.OP_NEGATE)))
}

func TestAlgebraicSumOnlyYNegatedSubsThenNegates(t *testing.T) {
	f := New(testModulus)
	x, y := xy(false, true)
	got, err := f.AlgebraicSum(x, y, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, got.Equals(moveBoth(x, y).AppendOps(opcode.OP_SUB, opcode.OP_NEGATE)))
}

func TestAlgebraicSumOnlyXNegatedJustSubs(t *testing.T) {
	f := New(testModulus)
	x, y := xy(true, false)
	got, err := f.AlgebraicSum(x, y, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, got.Equals(moveBoth(x, y).AppendOps(opcode.OP_SUB)))
}

func TestAlgebraicSumRejectsOverlappingOperands(t *testing.T) {
	f := New(testModulus)
	x := Operand{Position: stackmodel.MustNew(1, 2, false)}
	y := Operand{Position: stackmodel.MustNew(0, 1, false)}
	_, err := f.AlgebraicSum(x, y, ScriptParameters{})
	require.Error(t, err)
}

func TestSubtractNegatesYBeforeSumming(t *testing.T) {
	f := New(testModulus)
	x, y := xy(false, false)
	got, err := f.Subtract(x, y, ScriptParameters{})
	require.NoError(t, err)
	want, err := f.AlgebraicSum(x, Operand{Position: y.Position.Negated()}, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, got.Equals(want))
}

func TestDoubleDuplicatesInPlace(t *testing.T) {
	f := New(testModulus)
	x := Operand{Position: stackmodel.MustNew(0, 1, false)}
	got, err := f.Double(x, ScriptParameters{})
	require.NoError(t, err)
	want := primitive.Move(x.Position, primitive.ModePick).AppendOps(opcode.OP_DUP, opcode.OP_ADD)
	require.True(t, got.Equals(want))
}

func TestMultiplyNegatesOnSignMismatch(t *testing.T) {
	f := New(testModulus)
	x, y := xy(true, false)
	got, err := f.Multiply(x, y, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, got.Equals(moveBoth(x, y).AppendOps(opcode.OP_MUL, opcode.OP_NEGATE)))
}

func TestMultiplyKeepsSignWhenBothOrNeitherNegated(t *testing.T) {
	f := New(testModulus)
	x, y := xy(true, true)
	got, err := f.Multiply(x, y, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, got.Equals(moveBoth(x, y).AppendOps(opcode.OP_MUL)))
}

func TestScalarMulFoldsNegativeScalarSign(t *testing.T) {
	f := New(testModulus)
	x := Operand{Position: stackmodel.MustNew(0, 1, false)}
	got, err := f.ScalarMul(x, big.NewInt(-5), ScriptParameters{})
	require.NoError(t, err)
	want := primitive.Move(x.Position, primitive.ModePick).
		Append(opcode.PushInt(big.NewInt(5))).
		AppendOps(opcode.OP_MUL, opcode.OP_NEGATE)
	require.True(t, got.Equals(want))
}

func TestScalarMulDoubleNegativeCancels(t *testing.T) {
	f := New(testModulus)
	x := Operand{Position: stackmodel.MustNew(0, 1, true)}
	got, err := f.ScalarMul(x, big.NewInt(-5), ScriptParameters{})
	require.NoError(t, err)
	want := primitive.Move(x.Position, primitive.ModePick).
		Append(opcode.PushInt(big.NewInt(5))).
		AppendOps(opcode.OP_MUL)
	require.True(t, got.Equals(want))
}

func TestFinalizeAppliesCheckConstantAndTakeModulo(t *testing.T) {
	f := New(testModulus)
	x, y := xy(false, false)
	got, err := f.Add(x, y, ScriptParameters{
		CheckConstant:  true,
		TakeModulo:     true,
		PositiveModulo: true,
		CleanConstant:  true,
	})
	require.NoError(t, err)

	modScript, err := primitive.Mod(primitive.ModOptions{PositiveModulo: true, CleanConstant: true})
	require.NoError(t, err)
	want := primitive.VerifyBottomConstant(testModulus).
		Append(moveBoth(x, y)).
		AppendOps(opcode.OP_ADD).
		Append(primitive.PrepareConstant(primitive.ConstantAtBottom)).
		Append(modScript)
	require.True(t, got.Equals(want))
}

func TestFinalizePropagatesUndefinedConstantPlacementError(t *testing.T) {
	f := New(testModulus)
	x, y := xy(false, false)
	_, err := f.Add(x, y, ScriptParameters{TakeModulo: true})
	require.ErrorIs(t, err, primitive.ErrUndefinedConstantPlacement)
}

func TestTakeModuloFromReusedConstantSwapsFirst(t *testing.T) {
	f := New(testModulus)
	x, y := xy(false, false)
	got, err := f.Add(x, y, ScriptParameters{
		TakeModulo:       true,
		IsConstantReused: true,
		ConstantLocation: primitive.ConstantSecondFromTop,
	})
	require.NoError(t, err)

	modScript, err := primitive.Mod(primitive.ModOptions{IsConstantReused: true})
	require.NoError(t, err)
	want := moveBoth(x, y).
		AppendOps(opcode.OP_ADD).
		Append(primitive.PrepareConstant(primitive.ConstantSecondFromTop)).
		Append(modScript)
	require.True(t, got.Equals(want))
}
