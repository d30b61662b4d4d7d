package vector

import (
	"fmt"

	"github.com/Dolyphin/continuum-mechanics/symbolic"
)

// DualTensor returns the antisymmetric tensor T with T_rc = Σ_k ε_rck v_k:
//
//	[ 0  c -b]
//	[-c  0  a]
//	[ b -a  0]
//
// for v = (a, b, c).
func DualTensor(v []symbolic.Expr) (*symbolic.Matrix, error) {
	if err := checkLen("vector", len(v)); err != nil {
		return nil, err
	}
	t := symbolic.NewMatrix(3, 3)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			terms := make([]symbolic.Expr, 0, 1)
			for k := 0; k < 3; k++ {
				if eps := LeviCivita(r+1, c+1, k+1); eps != 0 {
					terms = append(terms, symbolic.MulOf(symbolic.N(int64(eps)), v[k]))
				}
			}
			t.Set(r, c, symbolic.DeepSimplify(symbolic.AddOf(terms...)))
		}
	}
	return t, nil
}

// DualVector inverts DualTensor: v_i = ½ Σ_jk ε_ijk T_jk. The tensor must be
// 3×3 and antisymmetric.
func DualVector(t *symbolic.Matrix) (*symbolic.Matrix, error) {
	if t == nil || t.Rows() != 3 || t.Cols() != 3 {
		rows, cols := 0, 0
		if t != nil {
			rows, cols = t.Rows(), t.Cols()
		}
		return nil, fmt.Errorf("tensor is %dx%d: %w", rows, cols, ErrDimension)
	}
	sym := t.MatAdd(t.Transpose())
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			if !symbolic.Equivalent(sym.Get(i, j), symbolic.N(0)) {
				return nil, fmt.Errorf("entry (%d,%d)=%s vs (%d,%d)=%s: %w",
					i+1, j+1, t.Get(i, j), j+1, i+1, t.Get(j, i), ErrNotAntisymmetric)
			}
		}
	}
	half := symbolic.F(1, 2)
	out := make([]symbolic.Expr, 3)
	for i := 0; i < 3; i++ {
		var terms []symbolic.Expr
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				if eps := LeviCivita(i+1, j+1, k+1); eps != 0 {
					terms = append(terms, symbolic.MulOf(symbolic.N(int64(eps)), t.Get(j, k)))
				}
			}
		}
		out[i] = symbolic.DeepSimplify(symbolic.MulOf(half, symbolic.AddOf(terms...)))
	}
	return symbolic.ColumnVector(out...), nil
}
