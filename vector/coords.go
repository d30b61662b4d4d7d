package vector

import (
	"fmt"

	"github.com/Dolyphin/continuum-mechanics/symbolic"
)

// CoordSystem is an orthogonal coordinate system: three coordinate symbols,
// the Cartesian position vector they describe, and the scale coefficients
// derived from it.
type CoordSystem struct {
	Name     string
	Coords   [3]*symbolic.Sym
	Position [3]symbolic.Expr
	Scale    [3]symbolic.Expr
}

// NewCoordSystem derives the scale coefficients of position with respect to
// coords.
func NewCoordSystem(name string, coords []*symbolic.Sym, position []symbolic.Expr) (CoordSystem, error) {
	sys := CoordSystem{Name: name}
	h, err := ScaleCoeff(position, coords)
	if err != nil {
		return sys, fmt.Errorf("coordinate system %q: %w", name, err)
	}
	copy(sys.Coords[:], coords)
	copy(sys.Position[:], position)
	sys.Scale = h
	return sys, nil
}

// CoordNames returns the coordinate symbol names in order.
func (c CoordSystem) CoordNames() []string {
	names := make([]string, 3)
	for i, q := range c.Coords {
		names[i] = q.Name()
	}
	return names
}

// Cartesian returns x, y, z with unit scale coefficients.
func Cartesian() CoordSystem {
	q := symbolic.Symbols("x y z")
	return mustSystem("cartesian", q, []symbolic.Expr{q[0], q[1], q[2]})
}

// Cylindrical returns rho (positive), phi, z.
func Cylindrical() CoordSystem {
	rho := symbolic.NewSymbol("rho", symbolic.Positive())
	phi, z := symbolic.S("phi"), symbolic.S("z")
	return mustSystem("cylindrical", []*symbolic.Sym{rho, phi, z}, []symbolic.Expr{
		symbolic.MulOf(rho, symbolic.CosOf(phi)),
		symbolic.MulOf(rho, symbolic.SinOf(phi)),
		z,
	})
}

// Spherical returns r (positive), theta (polar angle), phi (azimuth).
func Spherical() CoordSystem {
	r := symbolic.NewSymbol("r", symbolic.Positive())
	theta, phi := symbolic.S("theta"), symbolic.S("phi")
	return mustSystem("spherical", []*symbolic.Sym{r, theta, phi}, []symbolic.Expr{
		symbolic.MulOf(r, symbolic.SinOf(theta), symbolic.CosOf(phi)),
		symbolic.MulOf(r, symbolic.SinOf(theta), symbolic.SinOf(phi)),
		symbolic.MulOf(r, symbolic.CosOf(theta)),
	})
}

// Builtins returns the built-in systems keyed by name.
func Builtins() map[string]CoordSystem {
	out := map[string]CoordSystem{}
	for _, sys := range []CoordSystem{Cartesian(), Cylindrical(), Spherical()} {
		out[sys.Name] = sys
	}
	return out
}

// Lookup returns the named system from catalog.
func Lookup(catalog map[string]CoordSystem, name string) (CoordSystem, error) {
	sys, ok := catalog[name]
	if !ok {
		return CoordSystem{}, fmt.Errorf("%q: %w", name, ErrUnknownSystem)
	}
	return sys, nil
}

func mustSystem(name string, coords []*symbolic.Sym, position []symbolic.Expr) CoordSystem {
	sys, err := NewCoordSystem(name, coords, position)
	if err != nil {
		panic(err)
	}
	return sys
}
