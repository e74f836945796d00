package curveparams

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestComputeFrobeniusGammasProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("ComputeFrobeniusGammas is deterministic and stable under re-derivation", prop.ForAll(
		func(count int) bool {
			first := ComputeFrobeniusGammas(SECP256K1.Q, big.NewInt(7), 2, count)
			second := ComputeFrobeniusGammas(SECP256K1.Q, big.NewInt(7), 2, count)
			if len(first) != count || len(second) != count {
				return false
			}
			for i := range first {
				if first[i].Cmp(second[i]) != 0 {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 6),
	))

	properties.TestingRun(t)
}
