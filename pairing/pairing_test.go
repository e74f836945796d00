package pairing

import (
	"math/big"
	"testing"

	"github.com/bsv-blockchain/go-zkscript/curve"
	"github.com/bsv-blockchain/go-zkscript/stackmodel"
	"github.com/bsv-blockchain/go-zkscript/towers"
	"github.com/stretchr/testify/require"
)

var (
	testQ          = big.NewInt(101)
	testNonResidue = big.NewInt(2)
)

var testFq6NonResidue = [2]*big.Int{big.NewInt(1), big.NewInt(1)}

var testFq12NonResidue = [3][2]*big.Int{
	{big.NewInt(0), big.NewInt(1)},
	{big.NewInt(0), big.NewInt(0)},
	{big.NewInt(0), big.NewInt(0)},
}

func testFq2() towers.Fq2 { return towers.NewFq2(testQ, testNonResidue) }

func testFq6() towers.Fq6 { return towers.NewFq6(testFq2(), testFq6NonResidue) }

func testFq12() towers.Fq12 { return towers.NewFq12(testFq6(), testFq12NonResidue) }

func testSextic() Sextic { return NewSextic(testFq2(), testFq12()) }

func testG2() curve.G2 {
	return curve.NewG2(testFq2(), [2]*big.Int{big.NewInt(0), big.NewInt(0)}, [2]*big.Int{big.NewInt(0), big.NewInt(4)})
}

func testFq2Operand(depth int) towers.Operand {
	return towers.Operand{Position: stackmodel.MustNew(depth, 2, false)}
}

func affineG2At(yDepth, xDepth int) curve.AffineOperand {
	return curve.AffineOperand{Position: stackmodel.AffinePoint{
		Y: stackmodel.MustNew(yDepth, 2, false),
		X: stackmodel.MustNew(xDepth, 2, false),
	}}
}

func TestSexticEvaluateIsDeterministic(t *testing.T) {
	s := testSextic()
	lambda, xNegOverY, yInv := testFq2Operand(9), testFq2Operand(7), testFq2Operand(5)
	tPoint := affineG2At(3, 1)

	a, err := s.Evaluate(lambda, xNegOverY, yInv, tPoint, ScriptParameters{})
	require.NoError(t, err)
	b, err := s.Evaluate(lambda, xNegOverY, yInv, tPoint, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, a.Equals(b))
	require.Greater(t, a.Len(), 0)
}

func TestSexticEvaluateRejectsBadOrder(t *testing.T) {
	s := testSextic()
	lambda, xNegOverY, yInv := testFq2Operand(1), testFq2Operand(7), testFq2Operand(5)
	tPoint := affineG2At(3, 9)

	_, err := s.Evaluate(lambda, xNegOverY, yInv, tPoint, ScriptParameters{})
	require.Error(t, err)
}

func TestMillerLoopRoundIsDeterministic(t *testing.T) {
	s := testSextic()
	g2 := testG2()

	a, err := s.MillerLoopRound(g2, 0, ScriptParameters{})
	require.NoError(t, err)
	b, err := s.MillerLoopRound(g2, 0, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, a.Equals(b))
	require.Greater(t, a.Len(), 0)
}

func TestMillerLoopRoundGrowsWithNonzeroDigit(t *testing.T) {
	s := testSextic()
	g2 := testG2()

	zero, err := s.MillerLoopRound(g2, 0, ScriptParameters{})
	require.NoError(t, err)
	nonzero, err := s.MillerLoopRound(g2, 1, ScriptParameters{})
	require.NoError(t, err)
	require.Greater(t, nonzero.Len(), zero.Len())
}

func TestSingleMillerLoopRejectsEmptyDigits(t *testing.T) {
	s := testSextic()
	g2 := testG2()
	q := affineG2At(1, 3)

	_, err := s.SingleMillerLoop(g2, q, nil, ScriptParameters{})
	require.ErrorIs(t, err, errEmptyDigits)
}

func TestSingleMillerLoopIsDeterministicAndUnrollsEveryDigit(t *testing.T) {
	s := testSextic()
	g2 := testG2()
	q := affineG2At(1, 3)
	digits := []int{1, 0, 1, 1}

	a, err := s.SingleMillerLoop(g2, q, digits, ScriptParameters{})
	require.NoError(t, err)
	b, err := s.SingleMillerLoop(g2, q, digits, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, a.Equals(b))

	shorter, err := s.SingleMillerLoop(g2, q, digits[:2], ScriptParameters{})
	require.NoError(t, err)
	require.Greater(t, a.Len(), shorter.Len())
}

func TestTripleMillerLoopRoundIsDeterministic(t *testing.T) {
	s := testSextic()
	g2 := testG2()

	a, err := s.TripleMillerLoopRound(g2, [3]int{0, 0, 0}, ScriptParameters{})
	require.NoError(t, err)
	b, err := s.TripleMillerLoopRound(g2, [3]int{0, 0, 0}, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, a.Equals(b))
}

func testTripleQs() [3]curve.AffineOperand {
	return [3]curve.AffineOperand{affineG2At(11, 9), affineG2At(7, 5), affineG2At(3, 1)}
}

func TestTripleMillerLoopFoldsThreePointsWithOneSquaring(t *testing.T) {
	s := testSextic()
	g2 := testG2()
	qs := testTripleQs()

	a, err := s.TripleMillerLoop(g2, qs, []int{1, 1}, ScriptParameters{})
	require.NoError(t, err)
	b, err := s.TripleMillerLoop(g2, qs, []int{1, 1}, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, a.Equals(b))
	require.Greater(t, a.Len(), 0)
}

func TestTripleMillerLoopRejectsEmptyDigits(t *testing.T) {
	s := testSextic()
	g2 := testG2()
	qs := testTripleQs()

	_, err := s.TripleMillerLoop(g2, qs, nil, ScriptParameters{})
	require.ErrorIs(t, err, errEmptyDigits)
}

func TestTripleMillerLoopRejectsOverlappingPoints(t *testing.T) {
	s := testSextic()
	g2 := testG2()
	qs := [3]curve.AffineOperand{affineG2At(1, 3), affineG2At(1, 3), affineG2At(1, 3)}

	_, err := s.TripleMillerLoop(g2, qs, []int{1, 1}, ScriptParameters{})
	require.Error(t, err)
}

func TestEasyPartAssertsAndAppliesFrobeniusTwice(t *testing.T) {
	fe := NewFinalExponentiation(testFq12())
	gammas := [3]*big.Int{big.NewInt(1), big.NewInt(1), big.NewInt(1)}
	outerGamma := big.NewInt(1)
	f := towers.Fq12Operand{Position: stackmodel.MustNew(23, 12, false)}
	fInv := towers.Fq12Operand{Position: stackmodel.MustNew(11, 12, false)}

	a, err := fe.EasyPart(f, fInv, gammas, outerGamma, ScriptParameters{})
	require.NoError(t, err)
	b, err := fe.EasyPart(f, fInv, gammas, outerGamma, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, a.Equals(b))
	require.Greater(t, a.Len(), 0)
}

func TestHardPartRejectsEmptyDigits(t *testing.T) {
	fe := NewFinalExponentiation(testFq12())
	_, err := fe.HardPart(nil, ScriptParameters{})
	require.ErrorIs(t, err, errEmptyDigits)
}

func TestHardPartUnrollsEveryDigitAndGrowsWithNonzeroOnes(t *testing.T) {
	fe := NewFinalExponentiation(testFq12())

	allZero, err := fe.HardPart([]int{1, 0, 0}, ScriptParameters{})
	require.NoError(t, err)
	withOnes, err := fe.HardPart([]int{1, 1, -1}, ScriptParameters{})
	require.NoError(t, err)
	require.Greater(t, withOnes.Len(), allZero.Len())

	again, err := fe.HardPart([]int{1, 1, -1}, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, withOnes.Equals(again))
}

func TestBLS12EstimatorReducesPastBound(t *testing.T) {
	e := NewBLS12Estimator()
	require.False(t, e.ShouldReduce(0))
	require.True(t, e.ShouldReduce(32))
	require.Equal(t, 32, e.NextSize(0))
}

func TestMNT4EstimatorGrowthIsQuadraticInCurrentSize(t *testing.T) {
	e := NewMNT4Estimator()
	require.False(t, e.ShouldReduce(10))
	require.True(t, e.ShouldReduce(52))

	small := e.NextSize(10)
	large := e.NextSize(40)
	require.Greater(t, large-40, small-10)
}

func TestPushFq12LiteralAndAssertRoundTripShape(t *testing.T) {
	v := Fq12Literal{
		A1: [3][2]*big.Int{{big.NewInt(1), big.NewInt(2)}, {big.NewInt(3), big.NewInt(4)}, {big.NewInt(5), big.NewInt(6)}},
		A0: [3][2]*big.Int{{big.NewInt(7), big.NewInt(8)}, {big.NewInt(9), big.NewInt(10)}, {big.NewInt(11), big.NewInt(12)}},
	}
	push := PushFq12Literal(v)
	assert := AssertFq12EqualsConstant(v)
	require.Greater(t, push.Len(), 0)
	require.Greater(t, assert.Len(), 0)

	again := PushFq12Literal(v)
	require.True(t, push.Equals(again))
}

func TestFq12AtMatchesInternalConstruction(t *testing.T) {
	require.Equal(t, fq12At(4, true), Fq12At(4, true))
}
