package vector_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/Dolyphin/continuum-mechanics/symbolic"
	"github.com/Dolyphin/continuum-mechanics/vector"
)

var (
	xyz     = symbolic.Symbols("x y z")
	x, y, z = xyz[0], xyz[1], xyz[2]
	two     = symbolic.N(2)
)

func sq(e symbolic.Expr) symbolic.Expr { return symbolic.PowOf(e, two) }

func requireEquivalent(t *testing.T, want, got *symbolic.Matrix) {
	t.Helper()
	require.True(t, got.Equivalent(want), "want %s, got %s", want, got)
}

// evalAt evaluates e at point p given in x, y, z order.
func evalAt(t *testing.T, e symbolic.Expr, p []float64) float64 {
	t.Helper()
	v, err := symbolic.EvalAt(e, map[string]float64{"x": p[0], "y": p[1], "z": p[2]})
	require.NoError(t, err)
	return v
}

// ============================================================
// Cartesian
// ============================================================

func TestGrad_Cartesian(t *testing.T) {
	u := symbolic.Neg(sq(symbolic.AddOf(sq(symbolic.CosOf(x)), sq(symbolic.CosOf(y)))))
	got, err := vector.Grad(u)
	require.NoError(t, err)

	inner := symbolic.AddOf(sq(symbolic.CosOf(x)), sq(symbolic.CosOf(y)))
	want := symbolic.ColumnVector(
		symbolic.MulOf(symbolic.N(4), symbolic.CosOf(x), symbolic.SinOf(x), inner),
		symbolic.MulOf(symbolic.N(4), symbolic.CosOf(y), symbolic.SinOf(y), inner),
		symbolic.N(0),
	)
	requireEquivalent(t, want, got)
}

func TestGrad_MatchesFiniteDifferences(t *testing.T) {
	u := symbolic.AddOf(
		symbolic.MulOf(sq(x), y),
		symbolic.MulOf(symbolic.SinOf(y), symbolic.ExpOf(z)),
		symbolic.Quo(x, symbolic.AddOf(sq(z), symbolic.N(1))),
	)
	g, err := vector.Grad(u)
	require.NoError(t, err)

	p := []float64{0.7, -1.3, 0.4}
	numeric := fd.Gradient(nil, func(q []float64) float64 { return evalAt(t, u, q) }, p,
		&fd.Settings{Formula: fd.Central})
	for i, e := range g.Entries() {
		require.InDelta(t, numeric[i], evalAt(t, e, p), 1e-6, "component %d", i)
	}
}

func TestGradVec_Cartesian(t *testing.T) {
	xyzProd := symbolic.MulOf(x, y, z)
	got, err := vector.GradVec([]symbolic.Expr{xyzProd, xyzProd, xyzProd})
	require.NoError(t, err)

	row := []symbolic.Expr{symbolic.MulOf(y, z), symbolic.MulOf(x, z), symbolic.MulOf(x, y)}
	want := symbolic.MatrixFromRows([][]symbolic.Expr{row, row, row})
	requireEquivalent(t, want, got)
}

func TestGradVec_MatchesFiniteDifferenceJacobian(t *testing.T) {
	a := []symbolic.Expr{
		symbolic.MulOf(sq(x), y),
		symbolic.MulOf(x, symbolic.SinOf(z)),
		symbolic.MulOf(x, z, symbolic.CosOf(y)),
	}
	g, err := vector.GradVec(a)
	require.NoError(t, err)

	p := []float64{1.1, 0.3, -0.8}
	jac := mat.NewDense(3, 3, nil)
	fd.Jacobian(jac, func(dst, q []float64) {
		for i, e := range a {
			dst[i] = evalAt(t, e, q)
		}
	}, p, &fd.JacobianSettings{Formula: fd.Central})

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			require.InDelta(t, jac.At(i, j), evalAt(t, g.Get(i, j), p), 1e-6, "entry (%d,%d)", i, j)
		}
	}
}

func TestDiv_Cartesian(t *testing.T) {
	got, err := vector.Div([]symbolic.Expr{
		symbolic.AddOf(sq(x), symbolic.MulOf(y, z)),
		symbolic.AddOf(sq(y), symbolic.MulOf(x, z)),
		symbolic.AddOf(sq(z), symbolic.MulOf(x, y)),
	})
	require.NoError(t, err)
	want := symbolic.AddOf(symbolic.MulOf(two, x), symbolic.MulOf(two, y), symbolic.MulOf(two, z))
	require.True(t, symbolic.Equivalent(got, want), "got %s", got)
}

func TestCurl_Cartesian(t *testing.T) {
	got, err := vector.Curl([]symbolic.Expr{symbolic.N(0), symbolic.Neg(sq(x)), symbolic.N(0)})
	require.NoError(t, err)
	want := symbolic.ColumnVector(symbolic.N(0), symbolic.N(0), symbolic.MulOf(symbolic.N(-2), x))
	requireEquivalent(t, want, got)
}

func TestLap_Cartesian(t *testing.T) {
	got, err := vector.Lap(symbolic.AddOf(sq(x), sq(y), sq(z)))
	require.NoError(t, err)
	require.Equal(t, "6", symbolic.String(got))
}

func TestLapVec_Cartesian(t *testing.T) {
	got, err := vector.LapVec([]symbolic.Expr{sq(x), sq(y), sq(z)})
	require.NoError(t, err)
	requireEquivalent(t, symbolic.ColumnVector(two, two, two), got)
}

func TestLapVec_MatchesComponentLaplacian(t *testing.T) {
	a := []symbolic.Expr{
		symbolic.MulOf(sq(x), y, z),
		symbolic.MulOf(symbolic.SinOf(x), y),
		symbolic.MulOf(x, sq(z)),
	}
	got, err := vector.LapVec(a)
	require.NoError(t, err)
	for i, comp := range a {
		want, err := vector.Lap(comp)
		require.NoError(t, err)
		require.True(t, symbolic.Equivalent(got.Get(i, 0), want), "component %d: want %s, got %s", i, want, got.Get(i, 0))
	}
}

// ============================================================
// Curvilinear
// ============================================================

func TestLap_Spherical(t *testing.T) {
	sys := vector.Spherical()
	r := sys.Coords[0]
	got, err := vector.Lap(sq(r), vector.WithSystem(sys))
	require.NoError(t, err)
	require.Equal(t, "6", symbolic.String(got))
}

func TestDiv_Cylindrical(t *testing.T) {
	sys := vector.Cylindrical()
	rho := sys.Coords[0]
	got, err := vector.Div([]symbolic.Expr{rho, symbolic.N(0), symbolic.N(0)}, vector.WithSystem(sys))
	require.NoError(t, err)
	require.Equal(t, "2", symbolic.String(got))
}

func TestGrad_ExplicitScale(t *testing.T) {
	rho, phi, zc := symbolic.NewSymbol("rho", symbolic.Positive()), symbolic.S("phi"), symbolic.S("z")
	u := symbolic.MulOf(sq(rho), symbolic.SinOf(phi), zc)
	got, err := vector.Grad(u,
		vector.WithCoords(rho, phi, zc),
		vector.WithScale(symbolic.N(1), rho, symbolic.N(1)),
	)
	require.NoError(t, err)
	want := symbolic.ColumnVector(
		symbolic.MulOf(two, rho, symbolic.SinOf(phi), zc),
		symbolic.MulOf(rho, symbolic.CosOf(phi), zc),
		symbolic.MulOf(sq(rho), symbolic.SinOf(phi)),
	)
	requireEquivalent(t, want, got)
}

func TestCurlOfGradIsZero(t *testing.T) {
	sys := vector.Spherical()
	r, theta := sys.Coords[0], sys.Coords[1]
	g, err := vector.Grad(symbolic.MulOf(sq(r), symbolic.CosOf(theta)), vector.WithSystem(sys))
	require.NoError(t, err)
	c, err := vector.Curl(g.Column(0), vector.WithSystem(sys))
	require.NoError(t, err)
	requireEquivalent(t, symbolic.ColumnVector(symbolic.N(0), symbolic.N(0), symbolic.N(0)), c)
}

func TestDivOfCurlIsZero(t *testing.T) {
	a := []symbolic.Expr{
		symbolic.MulOf(y, z),
		symbolic.MulOf(sq(x), z),
		symbolic.MulOf(symbolic.SinOf(x), y),
	}
	c, err := vector.Curl(a)
	require.NoError(t, err)
	d, err := vector.Div(c.Column(0))
	require.NoError(t, err)
	require.Equal(t, "0", symbolic.String(d))
}

func TestTraceOfGradVecIsDiv(t *testing.T) {
	sys := vector.Spherical()
	r, theta, phi := sys.Coords[0], sys.Coords[1], sys.Coords[2]
	a := []symbolic.Expr{
		sq(r),
		symbolic.MulOf(r, symbolic.SinOf(theta)),
		symbolic.MulOf(r, symbolic.CosOf(phi)),
	}
	g, err := vector.GradVec(a, vector.WithSystem(sys))
	require.NoError(t, err)
	d, err := vector.Div(a, vector.WithSystem(sys))
	require.NoError(t, err)
	require.True(t, symbolic.Equivalent(g.Trace(), d), "trace %s, div %s", g.Trace(), d)
}

func TestLap_SphericalLinearField(t *testing.T) {
	// x = r sinθ cosφ is harmonic.
	sys := vector.Spherical()
	r, theta, phi := sys.Coords[0], sys.Coords[1], sys.Coords[2]
	u := symbolic.MulOf(r, symbolic.SinOf(theta), symbolic.CosOf(phi))
	got, err := vector.Lap(u, vector.WithSystem(sys))
	require.NoError(t, err)
	require.Equal(t, "0", symbolic.String(got))
}

// rotation is the rigid rotation about z, (-y, x, 0), in spherical components.
func rotation(sys vector.CoordSystem) []symbolic.Expr {
	r, theta := sys.Coords[0], sys.Coords[1]
	return []symbolic.Expr{symbolic.N(0), symbolic.N(0), symbolic.MulOf(r, symbolic.SinOf(theta))}
}

func TestCurl_SphericalRotation(t *testing.T) {
	sys := vector.Spherical()
	theta := sys.Coords[1]
	got, err := vector.Curl(rotation(sys), vector.WithSystem(sys))
	require.NoError(t, err)
	require.Equal(t, "2*cos(theta)", symbolic.String(got.Get(0, 0)))
	require.Equal(t, "-2*sin(theta)", symbolic.String(got.Get(1, 0)))
	require.Equal(t, "0", symbolic.String(got.Get(2, 0)))
	requireEquivalent(t, symbolic.ColumnVector(
		symbolic.MulOf(two, symbolic.CosOf(theta)),
		symbolic.MulOf(symbolic.N(-2), symbolic.SinOf(theta)),
		symbolic.N(0),
	), got)
}

func TestLapVec_SphericalRotation(t *testing.T) {
	sys := vector.Spherical()
	got, err := vector.LapVec(rotation(sys), vector.WithSystem(sys))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.Equal(t, "0", symbolic.String(got.Get(i, 0)), "component %d", i)
	}
}

func TestGradVec_Cylindrical(t *testing.T) {
	sys := vector.Cylindrical()
	rho, phi, zc := sys.Coords[0], sys.Coords[1], sys.Coords[2]
	a := []symbolic.Expr{sq(rho), symbolic.MulOf(rho, zc), symbolic.MulOf(rho, symbolic.SinOf(phi))}
	got, err := vector.GradVec(a, vector.WithSystem(sys))
	require.NoError(t, err)
	want := symbolic.MatrixFromRows([][]symbolic.Expr{
		{symbolic.MulOf(two, rho), symbolic.Neg(zc), symbolic.N(0)},
		{zc, rho, rho},
		{symbolic.SinOf(phi), symbolic.CosOf(phi), symbolic.N(0)},
	})
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			require.True(t, symbolic.Equivalent(want.Get(i, j), got.Get(i, j)),
				"entry (%d,%d): want %s, got %s", i+1, j+1, want.Get(i, j), got.Get(i, j))
		}
	}
}

// ============================================================
// Errors
// ============================================================

func TestOperators_DimensionErrors(t *testing.T) {
	short := []symbolic.Expr{x, y}

	_, err := vector.Div(short)
	require.ErrorIs(t, err, vector.ErrDimension)
	_, err = vector.Curl(short)
	require.ErrorIs(t, err, vector.ErrDimension)
	_, err = vector.GradVec(short)
	require.ErrorIs(t, err, vector.ErrDimension)
	_, err = vector.LapVec(short)
	require.ErrorIs(t, err, vector.ErrDimension)

	_, err = vector.Grad(x, vector.WithCoords(x, y))
	require.ErrorIs(t, err, vector.ErrDimension)
	_, err = vector.Lap(x, vector.WithScale(two, two, two, two))
	require.ErrorIs(t, err, vector.ErrDimension)
}
