package towers

import (
	"math/big"
	"testing"

	"github.com/bsv-blockchain/go-zkscript/stackmodel"
	"github.com/stretchr/testify/require"
)

var testFq4NonResidue = [2]*big.Int{big.NewInt(3), big.NewInt(1)}

func testFq4() Fq4 {
	return NewFq4(NewFq2(testQ, testNonResidue), testFq4NonResidue)
}

func fq4Operands(negX, negY bool) (Fq4Operand, Fq4Operand) {
	x := Fq4Operand{Position: stackmodel.MustNew(7, 4, negX)}
	y := Fq4Operand{Position: stackmodel.MustNew(3, 4, negY)}
	return x, y
}

func TestFq4AddIsDeterministic(t *testing.T) {
	f := testFq4()
	x, y := fq4Operands(false, false)
	a, err := f.Add(x, y, ScriptParameters{})
	require.NoError(t, err)
	b, err := f.Add(x, y, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, a.Equals(b))
	require.Greater(t, a.Len(), 0)
}

func TestFq4AddRejectsOverlap(t *testing.T) {
	f := testFq4()
	x := Fq4Operand{Position: stackmodel.MustNew(4, 4, false)}
	y := Fq4Operand{Position: stackmodel.MustNew(3, 4, false)}
	_, err := f.Add(x, y, ScriptParameters{})
	require.Error(t, err)
}

func TestFq4SubtractWithNegatedOperandIsDeterministic(t *testing.T) {
	f := testFq4()
	x, y := fq4Operands(false, true)
	a, err := f.Subtract(x, y, ScriptParameters{})
	require.NoError(t, err)
	b, err := f.Subtract(x, y, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, a.Equals(b))
}

func TestFq4NegateIsDeterministicAndNonEmpty(t *testing.T) {
	f := testFq4()
	x := Fq4Operand{Position: stackmodel.MustNew(3, 4, false)}
	a, err := f.Negate(x, ScriptParameters{})
	require.NoError(t, err)
	b, err := f.Negate(x, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, a.Equals(b))
	require.Greater(t, a.Len(), 0)
}

func TestFq4DoubleIsDeterministic(t *testing.T) {
	f := testFq4()
	x := Fq4Operand{Position: stackmodel.MustNew(3, 4, false)}
	a, err := f.Double(x, ScriptParameters{})
	require.NoError(t, err)
	b, err := f.Double(x, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, a.Equals(b))
}

func TestFq4ConjugateIsDeterministicAndNonEmpty(t *testing.T) {
	f := testFq4()
	x := Fq4Operand{Position: stackmodel.MustNew(3, 4, false)}
	a, err := f.Conjugate(x, ScriptParameters{})
	require.NoError(t, err)
	b, err := f.Conjugate(x, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, a.Equals(b))
	require.Greater(t, a.Len(), 0)
}

func TestFq4MultiplyAndSquareAreDeterministicAndNonEmpty(t *testing.T) {
	f := testFq4()
	x, y := fq4Operands(false, false)

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

func TestFq4MulByNonResidueIsDeterministic(t *testing.T) {
	f := testFq4()
	x := Fq4Operand{Position: stackmodel.MustNew(3, 4, false)}
	a, err := f.MulByNonResidue(x, ScriptParameters{})
	require.NoError(t, err)
	b, err := f.MulByNonResidue(x, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, a.Equals(b))
}

func TestFq4FrobeniusIsDeterministic(t *testing.T) {
	f := testFq4()
	x := Fq4Operand{Position: stackmodel.MustNew(3, 4, false)}
	gamma := big.NewInt(5)
	a, err := f.Frobenius(x, gamma, ScriptParameters{})
	require.NoError(t, err)
	b, err := f.Frobenius(x, gamma, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, a.Equals(b))
}

func TestFq4FinalizeHonoursTakeModulo(t *testing.T) {
	f := testFq4()
	x, y := fq4Operands(false, false)
	_, err := f.Add(x, y, ScriptParameters{TakeModulo: true})
	require.Error(t, err)
}
