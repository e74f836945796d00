package exprepr

import (
	"math/big"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestFromNAFRecoversMagnitudeProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("FromNAF(n).Int() == n for every non-negative n", prop.ForAll(
		func(n int64) bool {
			d, err := FromNAF(big.NewInt(n))
			if err != nil {
				return false
			}
			return d.Int().Cmp(big.NewInt(n)) == 0
		},
		gen.Int64Range(0, 1<<40),
	))

	properties.TestingRun(t)
}

func TestDigitsCBORRoundTripsProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("cbor.Unmarshal(cbor.Marshal(d)) recovers d's digit sequence", prop.ForAll(
		func(digits []int) bool {
			d := New(uint(len(digits)))
			for i, v := range digits {
				if err := d.Set(uint(i), v); err != nil {
					return false
				}
			}

			data, err := cbor.Marshal(d)
			if err != nil {
				return false
			}
			var out Digits
			if err := cbor.Unmarshal(data, &out); err != nil {
				return false
			}

			if out.Len() != d.Len() {
				return false
			}
			for i := range digits {
				if out.At(uint(i)) != d.At(uint(i)) {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(12, gen.OneConstOf(-1, 0, 1)),
	))

	properties.TestingRun(t)
}
