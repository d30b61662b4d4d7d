package vector

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Dolyphin/continuum-mechanics/symbolic"
)

// catalogFile is the TOML layout of a coordinate catalog:
//
//	[[system]]
//	name = "parabolic-cylindrical"
//	coords = ["u", "v", "z"]
//	positive = []
//	position = ["(u^2 - v^2)/2", "u*v", "z"]
//	scale = ["sqrt(u^2 + v^2)", "sqrt(u^2 + v^2)", "1"] # optional
type catalogFile struct {
	Systems []systemEntry `toml:"system"`
}

type systemEntry struct {
	Name     string   `toml:"name"`
	Coords   []string `toml:"coords"`
	Positive []string `toml:"positive"`
	Position []string `toml:"position"`
	Scale    []string `toml:"scale"`
}

// LoadCatalog reads a TOML coordinate catalog from path and merges it over
// the built-in systems.
func LoadCatalog(path string) (map[string]CoordSystem, error) {
	var raw catalogFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("load coordinate catalog: %w", err)
	}
	return buildCatalog(meta, raw)
}

// ParseCatalog is LoadCatalog for in-memory TOML.
func ParseCatalog(data string) (map[string]CoordSystem, error) {
	var raw catalogFile
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("parse coordinate catalog: %w", err)
	}
	return buildCatalog(meta, raw)
}

func buildCatalog(meta toml.MetaData, raw catalogFile) (map[string]CoordSystem, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("coordinate catalog: unknown keys %s", strings.Join(keys, ", "))
	}
	out := Builtins()
	for i, entry := range raw.Systems {
		sys, err := entry.build()
		if err != nil {
			return nil, fmt.Errorf("coordinate catalog system %d: %w", i+1, err)
		}
		out[sys.Name] = sys
	}
	return out, nil
}

func (e systemEntry) build() (CoordSystem, error) {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return CoordSystem{}, fmt.Errorf("missing name")
	}
	if err := checkLen("coords of "+name, len(e.Coords)); err != nil {
		return CoordSystem{}, err
	}
	positive := map[string]bool{}
	for _, p := range e.Positive {
		positive[strings.TrimSpace(p)] = true
	}
	coords := make([]*symbolic.Sym, 3)
	for i, c := range e.Coords {
		c = strings.TrimSpace(c)
		var opts []symbolic.SymOption
		if positive[c] {
			opts = append(opts, symbolic.Positive())
			delete(positive, c)
		}
		coords[i] = symbolic.NewSymbol(c, opts...)
	}
	if len(positive) > 0 {
		extra := make([]string, 0, len(positive))
		for p := range positive {
			extra = append(extra, p)
		}
		sort.Strings(extra)
		return CoordSystem{}, fmt.Errorf("%s: positive %v are not coordinates", name, extra)
	}

	position, err := parseAll(e.Position, coords)
	if err != nil {
		return CoordSystem{}, fmt.Errorf("%s: position: %w", name, err)
	}
	sys, err := NewCoordSystem(name, coords, position)
	if err != nil {
		return CoordSystem{}, err
	}
	if len(e.Scale) > 0 {
		scale, err := parseAll(e.Scale, coords)
		if err != nil {
			return CoordSystem{}, fmt.Errorf("%s: scale: %w", name, err)
		}
		if err := checkLen("scale of "+name, len(scale)); err != nil {
			return CoordSystem{}, err
		}
		copy(sys.Scale[:], scale)
	}
	return sys, nil
}

func parseAll(srcs []string, known []*symbolic.Sym) ([]symbolic.Expr, error) {
	out := make([]symbolic.Expr, len(srcs))
	for i, src := range srcs {
		e, err := symbolic.Parse(src, known...)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}
