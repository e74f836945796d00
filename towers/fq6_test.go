package towers

import (
	"math/big"
	"testing"

	"github.com/bsv-blockchain/go-zkscript/stackmodel"
	"github.com/stretchr/testify/require"
)

var testFq6NonResidue = [2]*big.Int{big.NewInt(1), big.NewInt(1)}

func testFq6() Fq6 {
	return NewFq6(NewFq2(testQ, testNonResidue), testFq6NonResidue)
}

func fq6Operands(negX, negY bool) (Fq6Operand, Fq6Operand) {
	x := Fq6Operand{Position: stackmodel.MustNew(11, 6, negX)}
	y := Fq6Operand{Position: stackmodel.MustNew(5, 6, negY)}
	return x, y
}

func TestFq6AddIsDeterministic(t *testing.T) {
	f := testFq6()
	x, y := fq6Operands(false, false)
	a, err := f.Add(x, y, ScriptParameters{})
	require.NoError(t, err)
	b, err := f.Add(x, y, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, a.Equals(b))
	require.Greater(t, a.Len(), 0)
}

func TestFq6AddRejectsOverlap(t *testing.T) {
	f := testFq6()
	x := Fq6Operand{Position: stackmodel.MustNew(6, 6, false)}
	y := Fq6Operand{Position: stackmodel.MustNew(5, 6, false)}
	_, err := f.Add(x, y, ScriptParameters{})
	require.Error(t, err)
}

func TestFq6SubtractWithNegatedOperandIsDeterministic(t *testing.T) {
	f := testFq6()
	x, y := fq6Operands(false, true)
	a, err := f.Subtract(x, y, ScriptParameters{})
	require.NoError(t, err)
	b, err := f.Subtract(x, y, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, a.Equals(b))
}

func TestFq6NegateIsDeterministicAndNonEmpty(t *testing.T) {
	f := testFq6()
	x := Fq6Operand{Position: stackmodel.MustNew(5, 6, false)}
	a, err := f.Negate(x, ScriptParameters{})
	require.NoError(t, err)
	b, err := f.Negate(x, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, a.Equals(b))
	require.Greater(t, a.Len(), 0)
}

func TestFq6DoubleIsDeterministic(t *testing.T) {
	f := testFq6()
	x := Fq6Operand{Position: stackmodel.MustNew(5, 6, false)}
	a, err := f.Double(x, ScriptParameters{})
	require.NoError(t, err)
	b, err := f.Double(x, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, a.Equals(b))
}

func TestFq6MulByNonResidueIsDeterministic(t *testing.T) {
	f := testFq6()
	x := Fq6Operand{Position: stackmodel.MustNew(5, 6, false)}
	a, err := f.MulByNonResidue(x, ScriptParameters{})
	require.NoError(t, err)
	b, err := f.MulByNonResidue(x, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, a.Equals(b))
}

func TestFq6MultiplyAndSquareAreDeterministicAndNonEmpty(t *testing.T) {
	f := testFq6()
	x, y := fq6Operands(false, false)

	m1, err := f.Multiply(x, y, ScriptParameters{})
	require.NoError(t, err)
	m2, err := f.Multiply(x, y, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, m1.Equals(m2))
	require.Greater(t, m1.Len(), 10)

	s1, err := f.Square(x, ScriptParameters{})
	require.NoError(t, err)
	s2, err := f.Square(x, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, s1.Equals(s2))
	require.Greater(t, s1.Len(), 5)
}

func TestFq6FrobeniusIsDeterministic(t *testing.T) {
	f := testFq6()
	x := Fq6Operand{Position: stackmodel.MustNew(5, 6, false)}
	gammas := [3]*big.Int{big.NewInt(0), big.NewInt(7), big.NewInt(3)}
	a, err := f.Frobenius(x, gammas, ScriptParameters{})
	require.NoError(t, err)
	b, err := f.Frobenius(x, gammas, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, a.Equals(b))
}

func TestFq6FinalizeHonoursTakeModulo(t *testing.T) {
	f := testFq6()
	x, y := fq6Operands(false, false)
	_, err := f.Add(x, y, ScriptParameters{TakeModulo: true})
	require.Error(t, err)
}
