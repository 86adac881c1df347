package spec

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// repairSwagger2 rewrites Swagger 2 operations that openapi2conv rejects:
// several body parameters are merged into one object body, and body
// parameters mixed with formData become formData fields of a multipart
// request. It reports whether anything changed; on a parse error data is
// returned untouched.
func repairSwagger2(data []byte) ([]byte, bool, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return data, false, err
	}
	paths, _ := doc["paths"].(map[string]any)
	changed := false
	for _, item := range paths {
		ops, _ := item.(map[string]any)
		for method, raw := range ops {
			if _, ok := ParseMethod(method); !ok {
				continue
			}
			op, _ := raw.(map[string]any)
			if op != nil && repairOperation(op) {
				changed = true
			}
		}
	}
	if !changed {
		return data, false, nil
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return data, false, err
	}
	return out, true, nil
}

func repairOperation(op map[string]any) bool {
	params, _ := op["parameters"].([]any)
	var bodies, rest []map[string]any
	hasForm := false
	for _, p := range params {
		pm, _ := p.(map[string]any)
		switch {
		case pm == nil:
		case strings.EqualFold(str(pm["in"]), "body"):
			bodies = append(bodies, pm)
		default:
			hasForm = hasForm || strings.EqualFold(str(pm["in"]), "formData")
			rest = append(rest, pm)
		}
	}

	switch {
	case len(bodies) == 0, len(bodies) == 1 && !hasForm:
		return false
	case hasForm:
		out := make([]any, 0, len(params))
		for _, pm := range rest {
			out = append(out, pm)
		}
		for _, pm := range bodies {
			out = append(out, bodyAsFormField(pm))
		}
		op["parameters"] = out
		consumes, _ := op["consumes"].([]any)
		for _, c := range consumes {
			if str(c) == "multipart/form-data" {
				return true
			}
		}
		op["consumes"] = append(consumes, "multipart/form-data")
		return true
	default:
		props := map[string]any{}
		var required []any
		for _, pm := range bodies {
			name := paramName(pm)
			props[name] = paramSchema(pm)
			if req, _ := pm["required"].(bool); req {
				required = append(required, name)
			}
		}
		merged := map[string]any{"type": "object", "properties": props}
		if len(required) > 0 {
			merged["required"] = required
		}
		out := []any{map[string]any{"in": "body", "name": "body", "schema": merged}}
		for _, pm := range rest {
			out = append(out, pm)
		}
		op["parameters"] = out
		return true
	}
}

func paramName(pm map[string]any) string {
	if name := str(pm["name"]); name != "" {
		return name
	}
	return "field"
}

// paramSchema returns the schema of a body parameter, synthesizing one from
// its type, items and format when it has none.
func paramSchema(pm map[string]any) map[string]any {
	if s, ok := pm["schema"].(map[string]any); ok {
		return s
	}
	s := map[string]any{"type": "string"}
	if t := str(pm["type"]); t != "" {
		s["type"] = t
	}
	if items, ok := pm["items"].(map[string]any); ok {
		s["items"] = items
	}
	if f := str(pm["format"]); f != "" {
		s["format"] = f
	}
	return s
}

// bodyAsFormField converts a body parameter into a formData parameter. A
// referenced object has no formData form and degrades to a string.
func bodyAsFormField(pm map[string]any) map[string]any {
	out := map[string]any{"in": "formData", "name": paramName(pm)}
	if d := str(pm["description"]); d != "" {
		out["description"] = d
	}
	if req, ok := pm["required"].(bool); ok {
		out["required"] = req
	}
	s := paramSchema(pm)
	typ := str(s["type"])
	if typ == "" || typ == "object" {
		typ = "string"
	}
	out["type"] = typ
	if items, ok := s["items"]; ok && typ == "array" {
		out["items"] = items
	}
	if f := str(s["format"]); f != "" {
		out["format"] = f
	}
	return out
}
