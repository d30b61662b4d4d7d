package mcp

import "encoding/json"

// ============================================================
// Tool schema
// ============================================================

var frameProps = map[string]string{
	"system":   "string",
	"coords":   "array",
	"positive": "array",
	"scale":    "array",
	"position": "array",
}

func withFrame(props map[string]string) map[string]string {
	out := map[string]string{}
	for k, v := range frameProps {
		out[k] = v
	}
	for k, v := range props {
		out[k] = v
	}
	return out
}

func toolSpecs() []map[string]interface{} {
	return []map[string]interface{}{
		ts("levi_civita", "Levi-Civita symbol ε_ijk for indices in 1..3", []string{"i", "j", "k"}, map[string]string{"i": "integer", "j": "integer", "k": "integer"}),
		ts("scale_coeff", "Scale coefficients h_i = |∂r/∂q_i| of a position vector", []string{"position"}, map[string]string{"position": "array", "coords": "array", "positive": "array", "system": "string"}),
		ts("dual_tensor", "Antisymmetric tensor T_ij = ε_ijk v_k of a vector", []string{"vector"}, map[string]string{"vector": "array"}),
		ts("dual_vector", "Axial vector of an antisymmetric 3×3 tensor", []string{"tensor"}, map[string]string{"tensor": "object"}),
		ts("grad", "Gradient of a scalar field", []string{"expr"}, withFrame(map[string]string{"expr": "string"})),
		ts("grad_vec", "Gradient of a vector field (3×3, row = component)", []string{"field"}, withFrame(map[string]string{"field": "array"})),
		ts("div", "Divergence of a vector field", []string{"field"}, withFrame(map[string]string{"field": "array"})),
		ts("curl", "Curl of a vector field", []string{"field"}, withFrame(map[string]string{"field": "array"})),
		ts("lap", "Laplacian of a scalar field", []string{"expr"}, withFrame(map[string]string{"expr": "string"})),
		ts("lap_vec", "Vector Laplacian grad(div A) - curl(curl A)", []string{"field"}, withFrame(map[string]string{"field": "array"})),
		ts("simplify", "Canonical form with trig and abs reduction", []string{"expr"}, withFrame(map[string]string{"expr": "string"})),
		ts("equivalent", "Whether two expressions are identically equal", []string{"a", "b"}, withFrame(map[string]string{"a": "string", "b": "string"})),
		ts("parse", "Parse an infix expression into its JSON tree", []string{"expr"}, map[string]string{"expr": "string"}),
		ts("systems", "List the coordinate systems in the catalog", []string{}, map[string]string{}),
		ts("mcp_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
}

// ToolNames lists the supported tools in schema order.
func ToolNames() []string {
	specs := toolSpecs()
	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s["name"].(string)
	}
	return names
}

// MCPToolSpec returns the tool schema as indented JSON.
func MCPToolSpec() string {
	spec := map[string]interface{}{"tools": toolSpecs()}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
