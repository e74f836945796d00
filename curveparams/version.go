package curveparams

import (
	"fmt"

	"github.com/blang/semver/v4"
	"github.com/fxamacker/cbor/v2"
)

// FormatVersion is the wire format version this build writes into every
// serialized Parameters table (spec §6's constant table is meant to be
// carried across process boundaries, e.g. baked into a locking-script
// generator's embedded data, so it needs a version a future reader can
// check against before trusting the bytes).
var FormatVersion = semver.MustParse("1.0.0")

// MinSupportedVersion is the oldest wire format this build can still read.
var MinSupportedVersion = semver.MustParse("1.0.0")

type parametersEnvelope struct {
	Version    string     `cbor:"version"`
	Parameters Parameters `cbor:"parameters"`
}

// Marshal serialises p into a versioned CBOR envelope.
func (p Parameters) Marshal() ([]byte, error) {
	return cbor.Marshal(parametersEnvelope{Version: FormatVersion.String(), Parameters: p})
}

// UnmarshalParameters reverses Marshal, rejecting data written by a format
// version older than MinSupportedVersion.
func UnmarshalParameters(data []byte) (Parameters, error) {
	var env parametersEnvelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return Parameters{}, err
	}

	v, err := semver.Parse(env.Version)
	if err != nil {
		return Parameters{}, fmt.Errorf("curveparams: invalid format version %q: %w", env.Version, err)
	}
	if v.LT(MinSupportedVersion) {
		return Parameters{}, fmt.Errorf("curveparams: format version %s is older than the minimum supported version %s", v, MinSupportedVersion)
	}

	return env.Parameters, nil
}
