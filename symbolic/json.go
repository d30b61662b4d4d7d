package symbolic

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// ============================================================
// JSON Serialization
// ============================================================

func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(e.toJSON())
	return string(b), err
}

// JSONValue returns the tree form of e ready for encoding.
func JSONValue(e Expr) map[string]interface{} { return e.toJSON() }

func FromJSON(data map[string]interface{}) (Expr, error) {
	if data == nil {
		return nil, fmt.Errorf("expression must be an object")
	}
	typAny, ok := data["type"]
	if !ok {
		return nil, fmt.Errorf("missing 'type' field")
	}
	typ, ok := typAny.(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}

	subObj := func(field string) (map[string]interface{}, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an object", typ, field)
		}
		return m, nil
	}

	subExprs := func(field string) ([]Expr, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		raw, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an array", typ, field)
		}
		out := make([]Expr, len(raw))
		for i, it := range raw {
			m, ok := it.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%s: %q[%d] must be an object", typ, field, i)
			}
			e, err := FromJSON(m)
			if err != nil {
				return nil, fmt.Errorf("%s: %s[%d]: %w", typ, field, i, err)
			}
			out[i] = e
		}
		return out, nil
	}

	subString := func(field string) (string, error) {
		v, ok := data[field]
		if !ok {
			return "", fmt.Errorf("%s: missing %q", typ, field)
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return "", fmt.Errorf("%s: %q must be a non-empty string", typ, field)
		}
		return s, nil
	}

	switch typ {
	case "num":
		val, err := subString("value")
		if err != nil {
			return nil, err
		}
		r := new(big.Rat)
		if _, ok := r.SetString(val); !ok {
			return nil, fmt.Errorf("invalid num value: %s", val)
		}
		return &Num{val: r}, nil

	case "sym":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		var opts []SymOption
		if pos, _ := data["positive"].(bool); pos {
			opts = append(opts, Positive())
		}
		return NewSymbol(name, opts...), nil

	case "add":
		terms, err := subExprs("terms")
		if err != nil {
			return nil, err
		}
		return AddOf(terms...), nil

	case "mul":
		factors, err := subExprs("factors")
		if err != nil {
			return nil, err
		}
		return MulOf(factors...), nil

	case "pow":
		baseM, err := subObj("base")
		if err != nil {
			return nil, err
		}
		expM, err := subObj("exp")
		if err != nil {
			return nil, err
		}
		base, err := FromJSON(baseM)
		if err != nil {
			return nil, fmt.Errorf("pow: base: %w", err)
		}
		exp, err := FromJSON(expM)
		if err != nil {
			return nil, fmt.Errorf("pow: exp: %w", err)
		}
		return PowOf(base, exp), nil

	case "func":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		ctor, ok := knownFuncs[name]
		if !ok {
			return nil, fmt.Errorf("func: unknown function %q", name)
		}
		argM, err := subObj("arg")
		if err != nil {
			return nil, err
		}
		arg, err := FromJSON(argM)
		if err != nil {
			return nil, fmt.Errorf("func: arg: %w", err)
		}
		return ctor(arg), nil
	}
	return nil, fmt.Errorf("unknown expression type: %s", typ)
}

// MatrixToJSON encodes m as {"rows", "cols", "entries"} with entries in
// row-major order.
func MatrixToJSON(m *Matrix) map[string]interface{} {
	entries := make([]map[string]interface{}, 0, m.rows*m.cols)
	for _, e := range m.Entries() {
		entries = append(entries, e.toJSON())
	}
	return map[string]interface{}{"rows": m.rows, "cols": m.cols, "entries": entries}
}

// MatrixFromJSON decodes the form produced by MatrixToJSON after a round trip
// through encoding/json.
func MatrixFromJSON(raw map[string]interface{}) (*Matrix, error) {
	rowsF, ok := raw["rows"].(float64)
	if !ok {
		return nil, fmt.Errorf("matrix.rows must be a number")
	}
	colsF, ok := raw["cols"].(float64)
	if !ok {
		return nil, fmt.Errorf("matrix.cols must be a number")
	}
	rows, cols := int(rowsF), int(colsF)
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("matrix dimensions must be positive")
	}
	entriesRaw, ok := raw["entries"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("matrix.entries must be an array")
	}
	if len(entriesRaw) != rows*cols {
		return nil, fmt.Errorf("matrix entries count mismatch: want %d, got %d", rows*cols, len(entriesRaw))
	}
	entries := make([]Expr, rows*cols)
	for i, er := range entriesRaw {
		m, ok := er.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("matrix entry %d must be expression", i)
		}
		e, err := FromJSON(m)
		if err != nil {
			return nil, fmt.Errorf("matrix entry %d: %w", i, err)
		}
		entries[i] = e
	}
	return MatrixFromSlice(rows, cols, entries), nil
}
