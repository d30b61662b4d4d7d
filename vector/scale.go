package vector

import (
	"fmt"

	"github.com/Dolyphin/continuum-mechanics/symbolic"
)

// ScaleCoeff computes the scale coefficients h_i = |∂r/∂q_i| of the
// coordinate triple coords for the position vector rVec.
//
// Spherical coordinates with r positive give (1, r, r*abs(sin(theta))).
func ScaleCoeff(rVec []symbolic.Expr, coords []*symbolic.Sym) ([3]symbolic.Expr, error) {
	var h [3]symbolic.Expr
	if err := checkLen("position vector", len(rVec)); err != nil {
		return h, err
	}
	if err := checkLen("coordinates", len(coords)); err != nil {
		return h, err
	}
	for i, q := range coords {
		if q == nil {
			return h, fmt.Errorf("coordinate %d is nil: %w", i+1, ErrDimension)
		}
	}
	pos := symbolic.ColumnVector(rVec...)
	for i, q := range coords {
		d := pos.ApplyDiff(q.Name())
		h[i] = symbolic.DeepSimplify(symbolic.SqrtOf(d.Transpose().MatMul(d).Get(0, 0)))
	}
	return h, nil
}
