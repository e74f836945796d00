package exprepr

import (
	"math/big"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"
)

func TestDigitsCBORRoundTrip(t *testing.T) {
	d := New(5)
	require.NoError(t, d.Set(0, 1))
	require.NoError(t, d.Set(1, -1))
	require.NoError(t, d.Set(2, 0))
	require.NoError(t, d.Set(3, -1))
	require.NoError(t, d.Set(4, 1))

	data, err := cbor.Marshal(d)
	require.NoError(t, err)

	var out Digits
	require.NoError(t, cbor.Unmarshal(data, &out))

	require.Equal(t, d.Len(), out.Len())
	require.Equal(t, d.MSBToLSB(), out.MSBToLSB())
	require.Equal(t, d.Int(), out.Int())
}

func TestDigitsCBORRoundTripFromNAF(t *testing.T) {
	d, err := FromNAF(big.NewInt(987654321))
	require.NoError(t, err)

	data, err := cbor.Marshal(d)
	require.NoError(t, err)

	var out Digits
	require.NoError(t, cbor.Unmarshal(data, &out))
	require.Equal(t, d.Int(), out.Int())
}
