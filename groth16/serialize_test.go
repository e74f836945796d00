package groth16

import (
	"testing"

	"github.com/blang/semver/v4"
	"github.com/bsv-blockchain/go-zkscript/pairing"
	"github.com/stretchr/testify/require"
)

func TestLockingKeyMarshalRoundTrip(t *testing.T) {
	lk := LockingKey{VK: testVerificationKey(), Model: testModel()}

	data, err := lk.Marshal()
	require.NoError(t, err)

	out, err := UnmarshalLockingKey(data)
	require.NoError(t, err)

	a, err := lk.GrothVerifierWithPrecomputedMsm(testAffineG2(403, 401), testFq12Operand(1000), pairing.ScriptParameters{})
	require.NoError(t, err)
	b, err := out.GrothVerifierWithPrecomputedMsm(testAffineG2(403, 401), testFq12Operand(1000), pairing.ScriptParameters{})
	require.NoError(t, err)
	require.True(t, a.Equals(b))
}

func TestUnmarshalLockingKeyRejectsOlderFormatVersion(t *testing.T) {
	old := MinSupportedLockingKeyVersion
	MinSupportedLockingKeyVersion = semver.MustParse("2.0.0")
	defer func() { MinSupportedLockingKeyVersion = old }()

	lk := LockingKey{VK: testVerificationKey(), Model: testModel()}
	data, err := lk.Marshal()
	require.NoError(t, err)

	_, err = UnmarshalLockingKey(data)
	require.Error(t, err)
}

func TestUnmarshalLockingKeyRejectsGarbage(t *testing.T) {
	_, err := UnmarshalLockingKey([]byte("not cbor"))
	require.Error(t, err)
}
