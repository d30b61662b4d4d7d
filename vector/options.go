package vector

import (
	"fmt"

	"github.com/Dolyphin/continuum-mechanics/symbolic"
)

// Option configures the coordinate frame an operator works in.
type Option func(*config)

type config struct {
	coords []*symbolic.Sym
	scale  []symbolic.Expr
}

// WithCoords sets the coordinate triple. The default is Cartesian x, y, z.
func WithCoords(coords ...*symbolic.Sym) Option {
	return func(c *config) { c.coords = coords }
}

// WithScale sets the scale coefficients h1, h2, h3. The default is 1, 1, 1.
func WithScale(h ...symbolic.Expr) Option {
	return func(c *config) { c.scale = h }
}

// WithSystem takes both coordinates and scale coefficients from sys.
func WithSystem(sys CoordSystem) Option {
	return func(c *config) {
		c.coords = sys.Coords[:]
		c.scale = sys.Scale[:]
	}
}

// frame is a validated coordinate triple with its scale coefficients.
type frame struct {
	q [3]*symbolic.Sym
	h [3]symbolic.Expr
}

func resolve(opts []Option) (frame, error) {
	var f frame
	c := config{
		coords: symbolic.Symbols("x y z"),
		scale:  []symbolic.Expr{symbolic.N(1), symbolic.N(1), symbolic.N(1)},
	}
	for _, opt := range opts {
		opt(&c)
	}
	if err := checkLen("coordinates", len(c.coords)); err != nil {
		return f, err
	}
	if err := checkLen("scale coefficients", len(c.scale)); err != nil {
		return f, err
	}
	for i := range f.q {
		if c.coords[i] == nil || c.scale[i] == nil {
			return f, fmt.Errorf("coordinate %d is unset: %w", i+1, ErrDimension)
		}
		f.q[i] = c.coords[i]
		f.h[i] = c.scale[i]
	}
	return f, nil
}
