package curve

import (
	"github.com/bsv-blockchain/go-zkscript/primitive"
	"github.com/bsv-blockchain/go-zkscript/stackmodel"
)

// ScalarOperand is a single field-element stack position together with
// whether it should be rolled (consumed) or picked (copied): the gradient
// lambda an affine addition/doubling consumes, expressed the same way
// field.Operand and towers.Operand are.
type ScalarOperand struct {
	Position stackmodel.Position
	Rolled   bool
}

func (o ScalarOperand) moveOperand() primitive.Operand {
	return primitive.Operand{Position: o.Position, Rolled: o.Rolled}
}

// AffineOperand is an elliptic-curve point in affine coordinates together
// with whether it should be rolled or picked as a whole (spec §3
// "Elliptic-curve point descriptor").
type AffineOperand struct {
	Position stackmodel.AffinePoint
	Rolled   bool
}

func (o AffineOperand) moveOperand() primitive.Operand {
	return primitive.Operand{Position: o.Position.StackPosition(), Rolled: o.Rolled}
}

// ProjectiveOperand is an elliptic-curve point in projective coordinates
// together with whether it should be rolled or picked as a whole.
type ProjectiveOperand struct {
	Position stackmodel.ProjectivePoint
	Rolled   bool
}

func (o ProjectiveOperand) moveOperand() primitive.Operand {
	return primitive.Operand{Position: o.Position.StackPosition(), Rolled: o.Rolled}
}
