package exprepr

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/fxamacker/cbor/v2"
)

// digitsWire is the on-wire envelope for a Digits value (spec §9's
// representation is meant to be carried in a curve-parameter table, so it
// needs a stable binary form): magnitude and sign round-trip through
// bitset's own MarshalBinary/UnmarshalBinary, since Digits's fields are
// unexported and cbor cannot see into them directly.
type digitsWire struct {
	Length    uint   `cbor:"length"`
	Magnitude []byte `cbor:"magnitude"`
	Sign      []byte `cbor:"sign"`
}

// MarshalCBOR implements cbor.Marshaler.
func (d *Digits) MarshalCBOR() ([]byte, error) {
	magnitude, err := d.magnitude.MarshalBinary()
	if err != nil {
		return nil, err
	}
	sign, err := d.sign.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(digitsWire{Length: d.length, Magnitude: magnitude, Sign: sign})
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (d *Digits) UnmarshalCBOR(data []byte) error {
	var w digitsWire
	if err := cbor.Unmarshal(data, &w); err != nil {
		return err
	}

	magnitude := &bitset.BitSet{}
	if err := magnitude.UnmarshalBinary(w.Magnitude); err != nil {
		return err
	}
	sign := &bitset.BitSet{}
	if err := sign.UnmarshalBinary(w.Sign); err != nil {
		return err
	}

	d.length = w.Length
	d.magnitude = magnitude
	d.sign = sign
	return nil
}
