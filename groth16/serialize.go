package groth16

import (
	"fmt"

	"github.com/blang/semver/v4"
	"github.com/fxamacker/cbor/v2"
)

// LockingKeyFormatVersion is the wire format version this build writes into
// every serialized LockingKey (a verifier locking script is compiled once
// and its LockingKey is meant to be persisted alongside it, so the two need
// to stay matched up across whatever process eventually re-derives the
// unlocking witness).
var LockingKeyFormatVersion = semver.MustParse("1.0.0")

// MinSupportedLockingKeyVersion is the oldest wire format this build can
// still read.
var MinSupportedLockingKeyVersion = semver.MustParse("1.0.0")

type lockingKeyEnvelope struct {
	Version    string     `cbor:"version"`
	LockingKey LockingKey `cbor:"locking_key"`
}

// Marshal serialises lk into a versioned CBOR envelope.
func (lk LockingKey) Marshal() ([]byte, error) {
	return cbor.Marshal(lockingKeyEnvelope{Version: LockingKeyFormatVersion.String(), LockingKey: lk})
}

// UnmarshalLockingKey reverses Marshal, rejecting data written by a format
// version older than MinSupportedLockingKeyVersion.
func UnmarshalLockingKey(data []byte) (LockingKey, error) {
	var env lockingKeyEnvelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return LockingKey{}, err
	}

	v, err := semver.Parse(env.Version)
	if err != nil {
		return LockingKey{}, fmt.Errorf("groth16: invalid locking key format version %q: %w", env.Version, err)
	}
	if v.LT(MinSupportedLockingKeyVersion) {
		return LockingKey{}, fmt.Errorf("groth16: locking key format version %s is older than the minimum supported version %s", v, MinSupportedLockingKeyVersion)
	}

	return env.LockingKey, nil
}
