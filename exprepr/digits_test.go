package exprepr

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetAndAtRoundTrip(t *testing.T) {
	d := New(4)
	require.NoError(t, d.Set(0, 1))
	require.NoError(t, d.Set(1, -1))
	require.NoError(t, d.Set(2, 0))
	require.NoError(t, d.Set(3, 1))

	require.Equal(t, 1, d.At(0))
	require.Equal(t, -1, d.At(1))
	require.Equal(t, 0, d.At(2))
	require.Equal(t, 1, d.At(3))
}

func TestSetRejectsOutOfRangeIndex(t *testing.T) {
	d := New(2)
	require.Error(t, d.Set(2, 1))
}

func TestSetRejectsInvalidDigit(t *testing.T) {
	d := New(2)
	require.Error(t, d.Set(0, 2))
}

func TestMSBToLSBReversesOrder(t *testing.T) {
	d := New(3)
	require.NoError(t, d.Set(0, 1))
	require.NoError(t, d.Set(1, 0))
	require.NoError(t, d.Set(2, -1))
	require.Equal(t, []int{-1, 0, 1}, d.MSBToLSB())
}

func TestIntRecoversValue(t *testing.T) {
	d := New(4)
	require.NoError(t, d.Set(0, 1))  // +1
	require.NoError(t, d.Set(1, -1)) // -2
	require.NoError(t, d.Set(3, 1))  // +8
	require.Equal(t, big.NewInt(1-2+8), d.Int())
}

func TestFromNAFRecoversOriginalValue(t *testing.T) {
	for _, n := range []int64{0, 1, 2, 3, 7, 13, 255, 1000003} {
		d, err := FromNAF(big.NewInt(n))
		require.NoError(t, err)
		require.Equal(t, big.NewInt(n), d.Int())
	}
}

func TestFromNAFHasNoAdjacentNonzeroDigits(t *testing.T) {
	d, err := FromNAF(big.NewInt(1000003))
	require.NoError(t, err)
	digits := d.MSBToLSB()
	for i := 0; i+1 < len(digits); i++ {
		require.False(t, digits[i] != 0 && digits[i+1] != 0, "adjacent nonzero digits at %d", i)
	}
}

func TestFromNAFRejectsNegative(t *testing.T) {
	_, err := FromNAF(big.NewInt(-1))
	require.Error(t, err)
}
