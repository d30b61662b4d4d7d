package mcp

import (
	"fmt"
	"math"

	"github.com/Dolyphin/continuum-mechanics/symbolic"
)

// params wraps decoded JSON tool parameters.
type params map[string]interface{}

func (p params) has(key string) bool {
	_, ok := p[key]
	return ok
}

func (p params) get(key string) (interface{}, error) {
	v, ok := p[key]
	if !ok {
		return nil, fmt.Errorf("missing param: %s", key)
	}
	return v, nil
}

func (p params) getString(key string) (string, error) {
	v, err := p.get(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("param %s must be a string", key)
	}
	return s, nil
}

func (p params) getStrings(key string) ([]string, error) {
	v, err := p.get(key)
	if err != nil {
		return nil, err
	}
	raw, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("param %s must be array", key)
	}
	out := make([]string, len(raw))
	for i, r := range raw {
		s, ok := r.(string)
		if !ok {
			return nil, fmt.Errorf("param %s[%d] must be string", key, i)
		}
		out[i] = s
	}
	return out, nil
}

func (p params) getInt(key string) (int, error) {
	v, err := p.get(key)
	if err != nil {
		return 0, err
	}
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) {
		return 0, fmt.Errorf("param %s must be an integer", key)
	}
	return int(f), nil
}

func (p params) getExpr(key string, known []*symbolic.Sym) (symbolic.Expr, error) {
	v, err := p.get(key)
	if err != nil {
		return nil, err
	}
	e, err := decodeExpr(v, known)
	if err != nil {
		return nil, fmt.Errorf("param %s: %w", key, err)
	}
	return e, nil
}

func (p params) getExprList(key string, known []*symbolic.Sym) ([]symbolic.Expr, error) {
	v, err := p.get(key)
	if err != nil {
		return nil, err
	}
	raw, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("param %s must be array", key)
	}
	out := make([]symbolic.Expr, len(raw))
	for i, r := range raw {
		e, err := decodeExpr(r, known)
		if err != nil {
			return nil, fmt.Errorf("param %s[%d]: %w", key, i, err)
		}
		out[i] = e
	}
	return out, nil
}

// getMatrix accepts either the {rows, cols, entries} object form or an array
// of rows.
func (p params) getMatrix(key string) (*symbolic.Matrix, error) {
	v, err := p.get(key)
	if err != nil {
		return nil, err
	}
	switch raw := v.(type) {
	case map[string]interface{}:
		m, err := symbolic.MatrixFromJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("param %s: %w", key, err)
		}
		return m, nil
	case []interface{}:
		if len(raw) == 0 {
			return nil, fmt.Errorf("param %s has no rows", key)
		}
		rows := make([][]symbolic.Expr, len(raw))
		for i, r := range raw {
			row, err := params{"row": r}.getExprList("row", nil)
			if err != nil {
				return nil, fmt.Errorf("param %s[%d]: %w", key, i, err)
			}
			if len(row) != len(raw) {
				return nil, fmt.Errorf("param %s must be square, row %d has %d entries", key, i, len(row))
			}
			rows[i] = row
		}
		return symbolic.MatrixFromRows(rows), nil
	}
	return nil, fmt.Errorf("param %s must be matrix object or array of rows", key)
}

// decodeExpr reads an infix string or a JSON expression object. Symbols named
// like a known coordinate take on its assumptions.
func decodeExpr(v interface{}, known []*symbolic.Sym) (symbolic.Expr, error) {
	switch val := v.(type) {
	case string:
		return symbolic.Parse(val, known...)
	case float64:
		return symbolic.NFloat(val), nil
	case map[string]interface{}:
		e, err := symbolic.FromJSON(val)
		if err != nil {
			return nil, err
		}
		for _, s := range known {
			e = symbolic.Sub(e, s.Name(), s)
		}
		return e, nil
	}
	return nil, fmt.Errorf("expression must be a string or object, got %T", v)
}
