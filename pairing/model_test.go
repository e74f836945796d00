package pairing

import (
	"math/big"
	"testing"

	"github.com/bsv-blockchain/go-zkscript/curveparams"
	"github.com/bsv-blockchain/go-zkscript/exprepr"
	"github.com/bsv-blockchain/go-zkscript/stackmodel"
	"github.com/bsv-blockchain/go-zkscript/towers"
	"github.com/stretchr/testify/require"
)

func testParameters() curveparams.Parameters {
	millerDigits, err := exprepr.FromNAF(big.NewInt(11))
	if err != nil {
		panic(err)
	}
	hardDigits, err := exprepr.FromNAF(big.NewInt(5))
	if err != nil {
		panic(err)
	}
	return curveparams.Parameters{
		Name:               "toy",
		Q:                  testQ,
		MillerLoopDigits:   millerDigits,
		HardExponentDigits: hardDigits,
		FrobeniusGammas:    []*big.Int{big.NewInt(1), big.NewInt(1), big.NewInt(1)},
	}
}

func TestNewBLS12381ModelBundlesBuilders(t *testing.T) {
	params := testParameters()
	m := NewBLS12381Model(params, testFq2(), testFq12(), [2]*big.Int{big.NewInt(0), big.NewInt(0)}, [2]*big.Int{big.NewInt(0), big.NewInt(4)})

	require.Equal(t, params.Name, m.Params.Name)
	require.Equal(t, testFq12(), m.Line.Fq12)
	require.Equal(t, testFq12(), m.FinalExp.Fq12)
}

func TestModelPairingComposesMillerLoopAndFinalExponentiation(t *testing.T) {
	params := testParameters()
	m := NewBLS12381Model(params, testFq2(), testFq12(), [2]*big.Int{big.NewInt(0), big.NewInt(0)}, [2]*big.Int{big.NewInt(0), big.NewInt(4)})
	q := affineG2At(1, 3)
	fInv := towers.Fq12Operand{Position: stackmodel.MustNew(500, 12, false)}
	gammas := [3]*big.Int{big.NewInt(1), big.NewInt(1), big.NewInt(1)}

	a, err := m.Pairing(q, fInv, gammas, big.NewInt(1), params.HardExponentDigits.MSBToLSB(), ScriptParameters{})
	require.NoError(t, err)
	b, err := m.Pairing(q, fInv, gammas, big.NewInt(1), params.HardExponentDigits.MSBToLSB(), ScriptParameters{})
	require.NoError(t, err)
	require.True(t, a.Equals(b))
	require.Greater(t, a.Len(), 0)
}

func TestModelTriplePairingComposesTripleMillerLoopAndOneFinalExponentiation(t *testing.T) {
	params := testParameters()
	m := NewBLS12381Model(params, testFq2(), testFq12(), [2]*big.Int{big.NewInt(0), big.NewInt(0)}, [2]*big.Int{big.NewInt(0), big.NewInt(4)})
	qs := testTripleQs()
	fInv := towers.Fq12Operand{Position: stackmodel.MustNew(500, 12, false)}
	gammas := [3]*big.Int{big.NewInt(1), big.NewInt(1), big.NewInt(1)}

	a, err := m.TriplePairing(qs, fInv, gammas, big.NewInt(1), params.HardExponentDigits.MSBToLSB(), ScriptParameters{})
	require.NoError(t, err)
	b, err := m.TriplePairing(qs, fInv, gammas, big.NewInt(1), params.HardExponentDigits.MSBToLSB(), ScriptParameters{})
	require.NoError(t, err)
	require.True(t, a.Equals(b))
	require.Greater(t, a.Len(), 0)
}
