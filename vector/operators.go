package vector

import (
	"github.com/Dolyphin/continuum-mechanics/symbolic"
)

// ============================================================
// Differential operators
// ============================================================
//
// All operators assume orthogonal coordinates q with scale coefficients h
// and return physical components in canonical form.

// Grad returns the gradient of a scalar field as a 3×1 vector,
// g_i = (1/h_i) ∂u/∂q_i.
func Grad(u symbolic.Expr, opts ...Option) (*symbolic.Matrix, error) {
	f, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	g := f.grad(u)
	return symbolic.ColumnVector(g[:]...), nil
}

// GradVec returns the gradient of a vector field as a 3×3 tensor. Row i
// holds component A_i and column j the direction q_j, so the Cartesian
// result is the Jacobian ∂A_i/∂x_j.
func GradVec(a []symbolic.Expr, opts ...Option) (*symbolic.Matrix, error) {
	f, A, err := resolveField(a, opts)
	if err != nil {
		return nil, err
	}
	g := f.gradVec(A)
	rows := make([][]symbolic.Expr, 3)
	for i := range rows {
		rows[i] = g[i][:]
	}
	return symbolic.MatrixFromRows(rows), nil
}

// Div returns the divergence of a vector field.
func Div(a []symbolic.Expr, opts ...Option) (symbolic.Expr, error) {
	f, A, err := resolveField(a, opts)
	if err != nil {
		return nil, err
	}
	return f.div(A), nil
}

// Curl returns the curl of a vector field as a 3×1 vector.
func Curl(a []symbolic.Expr, opts ...Option) (*symbolic.Matrix, error) {
	f, A, err := resolveField(a, opts)
	if err != nil {
		return nil, err
	}
	c := f.curl(A)
	return symbolic.ColumnVector(c[:]...), nil
}

// Lap returns the Laplacian of a scalar field, ∇·∇u.
func Lap(u symbolic.Expr, opts ...Option) (symbolic.Expr, error) {
	f, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	return f.div(f.grad(u)), nil
}

// LapVec returns the vector Laplacian ∇(∇·A) - ∇×(∇×A) as a 3×1 vector.
func LapVec(a []symbolic.Expr, opts ...Option) (*symbolic.Matrix, error) {
	f, A, err := resolveField(a, opts)
	if err != nil {
		return nil, err
	}
	gd := f.grad(f.div(A))
	cc := f.curl(f.curl(A))
	lv := symbolic.ColumnVector(gd[:]...).MatSub(symbolic.ColumnVector(cc[:]...))
	return lv.DeepSimplify(), nil
}

func resolveField(a []symbolic.Expr, opts []Option) (frame, [3]symbolic.Expr, error) {
	var A [3]symbolic.Expr
	if err := checkLen("vector field", len(a)); err != nil {
		return frame{}, A, err
	}
	f, err := resolve(opts)
	if err != nil {
		return frame{}, A, err
	}
	copy(A[:], a)
	return f, A, nil
}

// ============================================================
// Component formulas
// ============================================================

func (f frame) d(e symbolic.Expr, i int) symbolic.Expr {
	return symbolic.PDiff(e, f.q[i].Name())
}

// volume is h1*h2*h3.
func (f frame) volume() symbolic.Expr {
	return symbolic.MulOf(f.h[0], f.h[1], f.h[2])
}

func (f frame) grad(u symbolic.Expr) [3]symbolic.Expr {
	var g [3]symbolic.Expr
	for i := range g {
		g[i] = symbolic.DeepSimplify(symbolic.Quo(f.d(u, i), f.h[i]))
	}
	return g
}

func (f frame) gradVec(a [3]symbolic.Expr) [3][3]symbolic.Expr {
	var g [3][3]symbolic.Expr
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var terms []symbolic.Expr
			if i == j {
				terms = append(terms, symbolic.Quo(f.d(a[i], i), f.h[i]))
				for k := 0; k < 3; k++ {
					if k == i {
						continue
					}
					terms = append(terms, symbolic.Quo(
						symbolic.MulOf(a[k], f.d(f.h[i], k)),
						symbolic.MulOf(f.h[i], f.h[k]),
					))
				}
			} else {
				terms = append(terms,
					symbolic.Quo(f.d(a[i], j), f.h[j]),
					symbolic.Neg(symbolic.Quo(
						symbolic.MulOf(a[j], f.d(f.h[j], i)),
						symbolic.MulOf(f.h[i], f.h[j]),
					)),
				)
			}
			g[i][j] = symbolic.DeepSimplify(symbolic.AddOf(terms...))
		}
	}
	return g
}

func (f frame) div(a [3]symbolic.Expr) symbolic.Expr {
	vol := f.volume()
	terms := make([]symbolic.Expr, 3)
	for i := range terms {
		flux := symbolic.DeepSimplify(symbolic.Quo(symbolic.MulOf(a[i], vol), f.h[i]))
		terms[i] = f.d(flux, i)
	}
	return symbolic.DeepSimplify(symbolic.Quo(symbolic.AddOf(terms...), vol))
}

func (f frame) curl(a [3]symbolic.Expr) [3]symbolic.Expr {
	vol := f.volume()
	var c [3]symbolic.Expr
	for i := range c {
		var terms []symbolic.Expr
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				eps := LeviCivita(i+1, j+1, k+1)
				if eps == 0 {
					continue
				}
				terms = append(terms, symbolic.MulOf(
					symbolic.N(int64(eps)),
					f.d(symbolic.MulOf(f.h[k], a[k]), j),
				))
			}
		}
		c[i] = symbolic.DeepSimplify(symbolic.Quo(symbolic.MulOf(f.h[i], symbolic.AddOf(terms...)), vol))
	}
	return c
}
