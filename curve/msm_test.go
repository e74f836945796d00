package curve

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

var errBadScalar = errors.New("bad scalar")

func testTerms(n int) []FixedBaseTerm {
	terms := make([]FixedBaseTerm, n)
	for i := range terms {
		terms[i] = FixedBaseTerm{
			Base:          [3]*big.Int{big.NewInt(int64(3*i + 1)), big.NewInt(int64(3*i + 2)), big.NewInt(int64(3*i + 3))},
			MaxMultiplier: big.NewInt(16),
		}
	}
	return terms
}

func TestFixedBaseMSMIsDeterministic(t *testing.T) {
	g := testG1()
	a, err := g.FixedBaseMSM(testTerms(3), ScriptParameters{})
	require.NoError(t, err)
	b, err := g.FixedBaseMSM(testTerms(3), ScriptParameters{})
	require.NoError(t, err)
	require.True(t, a.Equals(b))
	require.Greater(t, a.Len(), 0)
}

func TestFixedBaseMSMGrowsWithTermCount(t *testing.T) {
	g := testG1()
	small, err := g.FixedBaseMSM(testTerms(1), ScriptParameters{})
	require.NoError(t, err)
	large, err := g.FixedBaseMSM(testTerms(4), ScriptParameters{})
	require.NoError(t, err)
	require.Greater(t, large.Len(), small.Len())
}

func TestFixedBaseMSMHonoursCheckConstant(t *testing.T) {
	g := testG1()
	plain, err := g.FixedBaseMSM(testTerms(2), ScriptParameters{})
	require.NoError(t, err)
	checked, err := g.FixedBaseMSM(testTerms(2), ScriptParameters{CheckConstant: true})
	require.NoError(t, err)
	require.Greater(t, checked.Len(), plain.Len())
}

func TestFixedBaseMSMHonoursTakeModulo(t *testing.T) {
	g := testG1()
	_, err := g.FixedBaseMSM(testTerms(2), ScriptParameters{TakeModulo: true})
	require.Error(t, err)
}

func TestFixedBaseMSMSkipsZeroScalarTerms(t *testing.T) {
	g := testG1()
	terms := testTerms(2)
	withZero := append(terms, FixedBaseTerm{
		Base:          [3]*big.Int{big.NewInt(100), big.NewInt(101), big.NewInt(102)},
		MaxMultiplier: big.NewInt(0),
	})

	a, err := g.FixedBaseMSM(terms, ScriptParameters{})
	require.NoError(t, err)
	b, err := g.FixedBaseMSM(withZero, ScriptParameters{})
	require.NoError(t, err)
	require.True(t, a.Equals(b))
}

func TestFixedBaseMSMAllZeroScalarsEmitsNoFolding(t *testing.T) {
	g := testG1()
	terms := []FixedBaseTerm{
		{Base: [3]*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3)}, MaxMultiplier: big.NewInt(0)},
		{Base: [3]*big.Int{big.NewInt(4), big.NewInt(5), big.NewInt(6)}, MaxMultiplier: big.NewInt(0)},
	}

	body, err := g.FixedBaseMSM(terms, ScriptParameters{})
	require.NoError(t, err)
	require.Equal(t, 0, body.Len())
}

func TestPrecomputeFixedBaseTableRunsConcurrently(t *testing.T) {
	scalars := []*big.Int{big.NewInt(2), big.NewInt(3), big.NewInt(4)}
	bases := [][3]*big.Int{
		{big.NewInt(1), big.NewInt(2), big.NewInt(3)},
		{big.NewInt(4), big.NewInt(5), big.NewInt(6)},
		{big.NewInt(7), big.NewInt(8), big.NewInt(9)},
	}

	results, err := PrecomputeFixedBaseTable(context.Background(), scalars, bases,
		func(_ context.Context, scalar *big.Int, base [3]*big.Int) ([3]*big.Int, error) {
			return [3]*big.Int{
				new(big.Int).Mul(scalar, base[0]),
				new(big.Int).Mul(scalar, base[1]),
				new(big.Int).Mul(scalar, base[2]),
			}, nil
		},
	)
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.Equal(t, big.NewInt(2), results[0][0])
	require.Equal(t, big.NewInt(32), results[2][1])
}

func TestPrecomputeFixedBaseTablePropagatesError(t *testing.T) {
	scalars := []*big.Int{big.NewInt(1), big.NewInt(2)}
	bases := [][3]*big.Int{
		{big.NewInt(1), big.NewInt(1), big.NewInt(1)},
		{big.NewInt(1), big.NewInt(1), big.NewInt(1)},
	}

	_, err := PrecomputeFixedBaseTable(context.Background(), scalars, bases,
		func(_ context.Context, scalar *big.Int, _ [3]*big.Int) ([3]*big.Int, error) {
			if scalar.Cmp(big.NewInt(2)) == 0 {
				return [3]*big.Int{}, errBadScalar
			}
			return [3]*big.Int{scalar, scalar, scalar}, nil
		},
	)
	require.ErrorIs(t, err, errBadScalar)
}
