package curveparams

import (
	"testing"

	"github.com/blang/semver/v4"
	"github.com/stretchr/testify/require"
)

func TestParametersMarshalRoundTrip(t *testing.T) {
	data, err := SECP256K1.Marshal()
	require.NoError(t, err)

	out, err := UnmarshalParameters(data)
	require.NoError(t, err)
	require.Equal(t, SECP256K1.Name, out.Name)
	require.Equal(t, SECP256K1.Q, out.Q)
	require.Equal(t, SECP256K1.R, out.R)
	require.Equal(t, SECP256K1.G1.X, out.G1.X)
}

func TestParametersMarshalRoundTripWithPairingData(t *testing.T) {
	data, err := BLS12381.Marshal()
	require.NoError(t, err)

	out, err := UnmarshalParameters(data)
	require.NoError(t, err)
	require.Equal(t, BLS12381.EmbeddingDegree, out.EmbeddingDegree)
	require.Equal(t, BLS12381.MillerLoopDigits.Int(), out.MillerLoopDigits.Int())
	require.Equal(t, BLS12381.HardExponentDigits.Int(), out.HardExponentDigits.Int())
	require.Len(t, out.FrobeniusGammas, len(BLS12381.FrobeniusGammas))
}

func TestUnmarshalParametersRejectsOlderFormatVersion(t *testing.T) {
	old := MinSupportedVersion
	MinSupportedVersion = semver.MustParse("2.0.0")
	defer func() { MinSupportedVersion = old }()

	data, err := SECP256K1.Marshal()
	require.NoError(t, err)

	_, err = UnmarshalParameters(data)
	require.Error(t, err)
}

func TestUnmarshalParametersRejectsGarbage(t *testing.T) {
	_, err := UnmarshalParameters([]byte("not cbor"))
	require.Error(t, err)
}
