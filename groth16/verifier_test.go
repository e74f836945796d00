package groth16

import (
	"math/big"
	"testing"

	"github.com/bsv-blockchain/go-zkscript/curve"
	"github.com/bsv-blockchain/go-zkscript/curveparams"
	"github.com/bsv-blockchain/go-zkscript/exprepr"
	"github.com/bsv-blockchain/go-zkscript/pairing"
	"github.com/bsv-blockchain/go-zkscript/stackmodel"
	"github.com/bsv-blockchain/go-zkscript/towers"
	"github.com/stretchr/testify/require"
)

var testQ = big.NewInt(101)

var testFq6NonResidue = [2]*big.Int{big.NewInt(1), big.NewInt(1)}

var testFq12NonResidue = [3][2]*big.Int{
	{big.NewInt(0), big.NewInt(1)},
	{big.NewInt(0), big.NewInt(0)},
	{big.NewInt(0), big.NewInt(0)},
}

func testFq2() towers.Fq2   { return towers.NewFq2(testQ, big.NewInt(2)) }
func testFq6() towers.Fq6   { return towers.NewFq6(testFq2(), testFq6NonResidue) }
func testFq12() towers.Fq12 { return towers.NewFq12(testFq6(), testFq12NonResidue) }

func testModel() pairing.Model {
	millerDigits, err := exprepr.FromNAF(big.NewInt(11))
	if err != nil {
		panic(err)
	}
	hardDigits, err := exprepr.FromNAF(big.NewInt(5))
	if err != nil {
		panic(err)
	}
	params := curveparams.Parameters{
		Name:               "toy",
		Q:                  testQ,
		MillerLoopDigits:   millerDigits,
		HardExponentDigits: hardDigits,
		FrobeniusGammas:    []*big.Int{big.NewInt(1), big.NewInt(1), big.NewInt(1)},
	}
	return pairing.NewBLS12381Model(params, testFq2(), testFq12(), [2]*big.Int{big.NewInt(0), big.NewInt(0)}, [2]*big.Int{big.NewInt(0), big.NewInt(4)})
}

func testAffineG2(yDepth, xDepth int) curve.AffineOperand {
	return curve.AffineOperand{Position: stackmodel.AffinePoint{
		Y: stackmodel.MustNew(yDepth, 2, false),
		X: stackmodel.MustNew(xDepth, 2, false),
	}}
}

func testFq12Operand(depth int) towers.Fq12Operand {
	return towers.Fq12Operand{Position: stackmodel.MustNew(depth, 12, false)}
}

func testVerificationKey() VerificationKey {
	return VerificationKey{
		AlphaBeta: pairing.Fq12Literal{
			A1: [3][2]*big.Int{{big.NewInt(1), big.NewInt(0)}, {big.NewInt(0), big.NewInt(0)}, {big.NewInt(0), big.NewInt(0)}},
			A0: [3][2]*big.Int{{big.NewInt(0), big.NewInt(1)}, {big.NewInt(0), big.NewInt(0)}, {big.NewInt(0), big.NewInt(0)}},
		},
		NegGamma: testAffineG2(203, 201),
		NegDelta: testAffineG2(103, 101),
		GammaAbc: [][3]*big.Int{
			{big.NewInt(1), big.NewInt(2), big.NewInt(3)},
			{big.NewInt(1), big.NewInt(5), big.NewInt(6)},
		},
	}
}

func TestGrothVerifierWithPrecomputedMsmIsDeterministic(t *testing.T) {
	lk := LockingKey{VK: testVerificationKey(), Model: testModel()}
	b := testAffineG2(403, 401)
	fInv := testFq12Operand(1000)

	a, err := lk.GrothVerifierWithPrecomputedMsm(b, fInv, pairing.ScriptParameters{})
	require.NoError(t, err)
	again, err := lk.GrothVerifierWithPrecomputedMsm(b, fInv, pairing.ScriptParameters{})
	require.NoError(t, err)
	require.True(t, a.Equals(again))
	require.Greater(t, a.Len(), 0)
}

func TestGrothVerifierIncludesFixedBaseMsm(t *testing.T) {
	lk := LockingKey{VK: testVerificationKey(), Model: testModel()}
	b := testAffineG2(403, 401)
	fInv := testFq12Operand(1000)
	g1 := curve.NewG1(testQ, big.NewInt(0), big.NewInt(4))

	full, err := lk.GrothVerifier(big.NewInt(7), g1, b, fInv, pairing.ScriptParameters{})
	require.NoError(t, err)
	precomputed, err := lk.GrothVerifierWithPrecomputedMsm(b, fInv, pairing.ScriptParameters{})
	require.NoError(t, err)
	require.Greater(t, full.Len(), precomputed.Len())
}

func TestRefTxLockingKeyBakesInSigmaLiteral(t *testing.T) {
	lk := RefTxLockingKey{
		VK:    testVerificationKey(),
		Model: testModel(),
		Sigma: [3]*big.Int{big.NewInt(1), big.NewInt(9), big.NewInt(8)},
	}
	b := testAffineG2(403, 401)
	fInv := testFq12Operand(1000)
	g1 := curve.NewG1(testQ, big.NewInt(0), big.NewInt(4))

	a, err := lk.GrothVerifier(g1, b, fInv, pairing.ScriptParameters{})
	require.NoError(t, err)
	again, err := lk.GrothVerifier(g1, b, fInv, pairing.ScriptParameters{})
	require.NoError(t, err)
	require.True(t, a.Equals(again))

	plain := LockingKey{VK: lk.VK, Model: lk.Model}
	precomputed, err := plain.GrothVerifierWithPrecomputedMsm(b, fInv, pairing.ScriptParameters{})
	require.NoError(t, err)
	require.Greater(t, a.Len(), precomputed.Len())
}
