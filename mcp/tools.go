// Package mcp exposes the vector operators as JSON tool calls for agent
// frameworks.
package mcp

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/rs/zerolog"

	"github.com/Dolyphin/continuum-mechanics/symbolic"
	"github.com/Dolyphin/continuum-mechanics/vector"
)

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// maxSuggestDistance bounds the edit distance for "did you mean" hints.
const maxSuggestDistance = 3

// Handler dispatches tool calls. It is read-only after construction and safe
// for concurrent use.
type Handler struct {
	systems map[string]vector.CoordSystem
	log     zerolog.Logger
}

// NewHandler returns a handler over the given coordinate catalog. A nil
// catalog means the built-in systems.
func NewHandler(systems map[string]vector.CoordSystem, logger zerolog.Logger) *Handler {
	if systems == nil {
		systems = vector.Builtins()
	}
	return &Handler{systems: systems, log: logger.With().Str("component", "mcp").Logger()}
}

// Handle runs one tool call. Errors and panics come back in ToolResponse.Error.
func (h *Handler) Handle(req ToolRequest) (resp ToolResponse) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			h.log.Error().Str("tool", req.Tool).Interface("panic", rec).Msg("tool panicked")
			resp = ToolResponse{Error: fmt.Sprintf("internal error in %s: %v", req.Tool, rec)}
		}
		ev := h.log.Debug().Str("tool", req.Tool).Dur("duration", time.Since(start))
		if resp.Error != "" {
			ev = ev.Str("error", resp.Error)
		}
		ev.Msg("tool call")
	}()

	resp, err := h.dispatch(req.Tool, params(req.Params))
	if err != nil {
		return ToolResponse{Error: err.Error()}
	}
	return resp
}

func (h *Handler) dispatch(tool string, p params) (ToolResponse, error) {
	switch tool {
	case "levi_civita":
		var idx [3]int
		for n, key := range []string{"i", "j", "k"} {
			v, err := p.getInt(key)
			if err != nil {
				return ToolResponse{}, err
			}
			idx[n] = v
		}
		e := vector.LeviCivita(idx[0], idx[1], idx[2])
		return ToolResponse{Result: e, String: fmt.Sprint(e)}, nil

	case "scale_coeff":
		coords, err := h.coordSyms(p)
		if err != nil {
			return ToolResponse{}, err
		}
		pos, err := p.getExprList("position", coords)
		if err != nil {
			return ToolResponse{}, err
		}
		scale, err := vector.ScaleCoeff(pos, coords)
		if err != nil {
			return ToolResponse{}, err
		}
		return respondList(scale[:]), nil

	case "dual_tensor":
		v, err := p.getExprList("vector", nil)
		if err != nil {
			return ToolResponse{}, err
		}
		m, err := vector.DualTensor(v)
		if err != nil {
			return ToolResponse{}, err
		}
		return respondMatrix(m), nil

	case "dual_vector":
		m, err := p.getMatrix("tensor")
		if err != nil {
			return ToolResponse{}, err
		}
		v, err := vector.DualVector(m)
		if err != nil {
			return ToolResponse{}, err
		}
		return respondMatrix(v), nil

	case "grad", "lap":
		opts, known, err := h.frameOptions(p)
		if err != nil {
			return ToolResponse{}, err
		}
		u, err := p.getExpr("expr", known)
		if err != nil {
			return ToolResponse{}, err
		}
		if tool == "lap" {
			l, err := vector.Lap(u, opts...)
			if err != nil {
				return ToolResponse{}, err
			}
			return respond(l), nil
		}
		g, err := vector.Grad(u, opts...)
		if err != nil {
			return ToolResponse{}, err
		}
		return respondMatrix(g), nil

	case "grad_vec", "div", "curl", "lap_vec":
		opts, known, err := h.frameOptions(p)
		if err != nil {
			return ToolResponse{}, err
		}
		a, err := p.getExprList("field", known)
		if err != nil {
			return ToolResponse{}, err
		}
		var m *symbolic.Matrix
		switch tool {
		case "div":
			d, err := vector.Div(a, opts...)
			if err != nil {
				return ToolResponse{}, err
			}
			return respond(d), nil
		case "grad_vec":
			m, err = vector.GradVec(a, opts...)
		case "curl":
			m, err = vector.Curl(a, opts...)
		default:
			m, err = vector.LapVec(a, opts...)
		}
		if err != nil {
			return ToolResponse{}, err
		}
		return respondMatrix(m), nil

	case "simplify":
		_, known, err := h.frameOptions(p)
		if err != nil {
			return ToolResponse{}, err
		}
		e, err := p.getExpr("expr", known)
		if err != nil {
			return ToolResponse{}, err
		}
		return respond(symbolic.DeepSimplify(e)), nil

	case "equivalent":
		_, known, err := h.frameOptions(p)
		if err != nil {
			return ToolResponse{}, err
		}
		a, err := p.getExpr("a", known)
		if err != nil {
			return ToolResponse{}, err
		}
		b, err := p.getExpr("b", known)
		if err != nil {
			return ToolResponse{}, err
		}
		eq := symbolic.Equivalent(a, b)
		return ToolResponse{Result: eq, String: fmt.Sprint(eq)}, nil

	case "parse":
		src, err := p.getString("expr")
		if err != nil {
			return ToolResponse{}, err
		}
		e, err := symbolic.Parse(src)
		if err != nil {
			return ToolResponse{}, err
		}
		return respond(e), nil

	case "systems":
		return h.listSystems(), nil

	case "mcp_spec":
		return ToolResponse{Result: MCPToolSpec(), String: "MCP tool specification"}, nil
	}

	if hint := suggestTool(tool); hint != "" {
		return ToolResponse{}, fmt.Errorf("unknown tool: %s (did you mean %q?)", tool, hint)
	}
	return ToolResponse{}, fmt.Errorf("unknown tool: %s", tool)
}

// frameOptions resolves the coordinate frame from "system" or from "coords"
// with optional "positive" and "scale" or "position". Without either, the
// frame is Cartesian x, y, z.
func (h *Handler) frameOptions(p params) ([]vector.Option, []*symbolic.Sym, error) {
	if p.has("system") {
		sys, err := h.system(p)
		if err != nil {
			return nil, nil, err
		}
		return []vector.Option{vector.WithSystem(sys)}, sys.Coords[:], nil
	}
	if !p.has("coords") {
		sys := vector.Cartesian()
		return nil, sys.Coords[:], nil
	}
	coords, err := h.coordSyms(p)
	if err != nil {
		return nil, nil, err
	}
	opts := []vector.Option{vector.WithCoords(coords...)}
	switch {
	case p.has("scale"):
		scale, err := p.getExprList("scale", coords)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, vector.WithScale(scale...))
	case p.has("position"):
		pos, err := p.getExprList("position", coords)
		if err != nil {
			return nil, nil, err
		}
		sys, err := vector.NewCoordSystem("custom", coords, pos)
		if err != nil {
			return nil, nil, err
		}
		opts = []vector.Option{vector.WithSystem(sys)}
	}
	return opts, coords, nil
}

func (h *Handler) system(p params) (vector.CoordSystem, error) {
	name, err := p.getString("system")
	if err != nil {
		return vector.CoordSystem{}, err
	}
	return vector.Lookup(h.systems, name)
}

// coordSyms returns the coordinate symbols named by "system" or "coords".
func (h *Handler) coordSyms(p params) ([]*symbolic.Sym, error) {
	if p.has("system") {
		sys, err := h.system(p)
		if err != nil {
			return nil, err
		}
		return sys.Coords[:], nil
	}
	names, err := p.getStrings("coords")
	if err != nil {
		return nil, err
	}
	positive := map[string]bool{}
	if p.has("positive") {
		pos, err := p.getStrings("positive")
		if err != nil {
			return nil, err
		}
		for _, n := range pos {
			positive[n] = true
		}
	}
	syms := make([]*symbolic.Sym, len(names))
	for i, n := range names {
		var opts []symbolic.SymOption
		if positive[n] {
			opts = append(opts, symbolic.Positive())
		}
		syms[i] = symbolic.NewSymbol(n, opts...)
	}
	return syms, nil
}

func (h *Handler) listSystems() ToolResponse {
	names := make([]string, 0, len(h.systems))
	for n := range h.systems {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]map[string]interface{}, len(names))
	for i, n := range names {
		sys := h.systems[n]
		scale := make([]string, 3)
		for j, s := range sys.Scale {
			scale[j] = symbolic.String(s)
		}
		out[i] = map[string]interface{}{
			"name":   sys.Name,
			"coords": sys.CoordNames(),
			"scale":  scale,
		}
	}
	return ToolResponse{Result: out, String: strings.Join(names, ", ")}
}

func suggestTool(name string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, candidate := range ToolNames() {
		if d := levenshtein.ComputeDistance(name, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}

// ============================================================
// Responses
// ============================================================

func respond(e symbolic.Expr) ToolResponse {
	return ToolResponse{Result: symbolic.JSONValue(e), LaTeX: symbolic.LaTeX(e), String: symbolic.String(e)}
}

func respondMatrix(m *symbolic.Matrix) ToolResponse {
	return ToolResponse{Result: symbolic.MatrixToJSON(m), LaTeX: m.LaTeX(), String: m.String()}
}

func respondList(es []symbolic.Expr) ToolResponse {
	vals := make([]map[string]interface{}, len(es))
	strs := make([]string, len(es))
	latex := make([]string, len(es))
	for i, e := range es {
		vals[i] = symbolic.JSONValue(e)
		strs[i] = symbolic.String(e)
		latex[i] = symbolic.LaTeX(e)
	}
	return ToolResponse{
		Result: vals,
		String: "[" + strings.Join(strs, ", ") + "]",
		LaTeX:  "[" + strings.Join(latex, ", ") + "]",
	}
}
