package spec

import (
	"fmt"
	"slices"
	"sort"
)

// mode selects what kind of definition a reference must point at.
type mode int

const (
	modeSchema mode = iota
	modeParameter
)

// Resolver expands references against one Document. It keeps no state
// between calls, so resolving the same reference twice yields equal trees.
type Resolver struct {
	doc *Document
}

// NewResolver returns a Resolver bound to doc.
func NewResolver(doc *Document) *Resolver { return &Resolver{doc: doc} }

// Document returns the document the resolver reads from.
func (r *Resolver) Document() *Document { return r.doc }

// Resolve expands the schema that ref points at. The returned tree holds no
// unresolved references.
func (r *Resolver) Resolve(ref string) (*Schema, error) {
	if _, err := r.target(ref, modeSchema); err != nil {
		return nil, err
	}
	e := &expander{doc: r.doc}
	return e.ref(ref)
}

// ResolveParameter expands the parameter definition that ref points at.
func (r *Resolver) ResolveParameter(ref string) (*Parameter, error) {
	if _, err := r.target(ref, modeParameter); err != nil {
		return nil, err
	}
	e := &expander{doc: r.doc}
	return e.parameter(map[string]any{"$ref": ref})
}

// Expand expands an inline schema node that may contain references.
func (r *Resolver) Expand(node any) (*Schema, error) {
	e := &expander{doc: r.doc}
	return e.schema(node)
}

// ExpandParameter expands an inline parameter node, following it first when
// it is itself a reference.
func (r *Resolver) ExpandParameter(node any) (*Parameter, error) {
	m, ok := node.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("spec: parameter is not a mapping")
	}
	if ref, ok := m["$ref"].(string); ok {
		return r.ResolveParameter(ref)
	}
	e := &expander{doc: r.doc}
	return e.parameter(m)
}

func (r *Resolver) target(ref string, m mode) (map[string]any, error) {
	node, err := r.doc.Lookup(ref)
	if err != nil {
		return nil, err
	}
	obj, ok := node.(map[string]any)
	if !ok {
		return nil, &SchemaNotFoundError{Ref: ref}
	}
	if m == modeParameter {
		if _, hasRef := obj["$ref"]; hasRef {
			return obj, nil
		}
		if _, ok := obj["name"].(string); !ok {
			return nil, &SchemaNotFoundError{Ref: ref, Segment: "name"}
		}
	}
	return obj, nil
}

type expander struct {
	doc *Document
	// stack holds the references currently being expanded.
	stack []string
}

func (e *expander) ref(ref string) (*Schema, error) {
	if slices.Contains(e.stack, ref) {
		return nil, &CyclicSchemaError{Ref: ref, Chain: slices.Clone(e.stack)}
	}
	node, err := e.doc.Lookup(ref)
	if err != nil {
		return nil, err
	}
	e.stack = append(e.stack, ref)
	defer func() { e.stack = e.stack[:len(e.stack)-1] }()

	s, err := e.schema(node)
	if err != nil {
		return nil, err
	}
	s.Ref = ref
	return s, nil
}

func (e *expander) parameter(m map[string]any) (*Parameter, error) {
	if ref, ok := m["$ref"].(string); ok {
		if slices.Contains(e.stack, ref) {
			return nil, &CyclicSchemaError{Ref: ref, Chain: slices.Clone(e.stack)}
		}
		node, err := e.doc.Lookup(ref)
		if err != nil {
			return nil, err
		}
		next, ok := node.(map[string]any)
		if !ok {
			return nil, &SchemaNotFoundError{Ref: ref}
		}
		e.stack = append(e.stack, ref)
		defer func() { e.stack = e.stack[:len(e.stack)-1] }()
		return e.parameter(next)
	}
	p := &Parameter{
		Name:        str(m["name"]),
		In:          str(m["in"]),
		Description: str(m["description"]),
	}
	if v, ok := m["required"].(bool); ok {
		p.Required = v
		p.HasRequired = true
	}
	schemaNode, ok := m["schema"]
	if !ok {
		// Swagger 2 style: type information sits on the parameter itself.
		schemaNode = m
	}
	s, err := e.schema(schemaNode)
	if err != nil {
		return nil, err
	}
	p.Schema = s
	return p, nil
}

func (e *expander) schema(node any) (*Schema, error) {
	m, ok := node.(map[string]any)
	if !ok {
		return &Schema{Kind: KindAny}, nil
	}
	if ref, ok := m["$ref"].(string); ok {
		s, err := e.ref(ref)
		if err != nil {
			return nil, err
		}
		if d := str(m["description"]); d != "" {
			s.Description = d
		}
		return s, nil
	}

	s := &Schema{
		Description: str(m["description"]),
		Format:      str(m["format"]),
		Default:     m["default"],
	}
	if v, ok := m["nullable"].(bool); ok {
		s.Nullable = v
	}
	typ := schemaType(m, s)

	if members, ok := m["allOf"].([]any); ok && len(members) > 0 {
		return e.allOf(s, m, members)
	}
	for _, key := range []string{"oneOf", "anyOf"} {
		members, ok := m[key].([]any)
		if !ok || len(members) == 0 {
			continue
		}
		if len(members) > 1 {
			s.Kind = KindAny
			return s, nil
		}
		inner, err := e.schema(members[0])
		if err != nil {
			return nil, err
		}
		if s.Description != "" {
			inner.Description = s.Description
		}
		return inner, nil
	}

	switch {
	case m["enum"] != nil:
		values, _ := m["enum"].([]any)
		s.Kind = KindEnum
		s.Type = typ
		if s.Type == "" {
			s.Type = "string"
		}
		for _, v := range values {
			if v == nil {
				s.Nullable = true
				continue
			}
			s.Enum = append(s.Enum, v)
		}
	case typ == "array" || m["items"] != nil:
		s.Kind = KindArray
		s.Type = "array"
		items, err := e.schema(m["items"])
		if err != nil {
			return nil, err
		}
		s.Items = items
	case typ == "object" || m["properties"] != nil:
		s.Kind = KindObject
		s.Type = "object"
		if err := e.properties(s, m); err != nil {
			return nil, err
		}
	case typ == "string" || typ == "integer" || typ == "number" || typ == "boolean":
		s.Kind = KindPrimitive
		s.Type = typ
	default:
		s.Kind = KindAny
	}
	return s, nil
}

func (e *expander) properties(s *Schema, m map[string]any) error {
	props, _ := m["properties"].(map[string]any)
	required := map[string]bool{}
	if list, ok := m["required"].([]any); ok {
		for _, r := range list {
			required[str(r)] = true
		}
	}
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ps, err := e.schema(props[name])
		if err != nil {
			return err
		}
		s.Properties = append(s.Properties, &Property{Name: name, Required: required[name], Schema: ps})
	}
	s.Open = len(s.Properties) == 0 && m["additionalProperties"] != false
	return nil
}

func (e *expander) allOf(s *Schema, m map[string]any, members []any) (*Schema, error) {
	s.Kind = KindObject
	s.Type = "object"
	merged := map[string]*Property{}
	var order []string
	add := func(p *Property) {
		if prev, ok := merged[p.Name]; ok {
			p.Required = p.Required || prev.Required
		} else {
			order = append(order, p.Name)
		}
		merged[p.Name] = p
	}
	for _, member := range members {
		ms, err := e.schema(member)
		if err != nil {
			return nil, err
		}
		if s.Description == "" {
			s.Description = ms.Description
		}
		for _, p := range ms.Properties {
			add(&Property{Name: p.Name, Required: p.Required, Schema: p.Schema})
		}
	}
	own := &Schema{}
	if err := e.properties(own, m); err != nil {
		return nil, err
	}
	for _, p := range own.Properties {
		add(p)
	}
	sort.Strings(order)
	for _, name := range order {
		s.Properties = append(s.Properties, merged[name])
	}
	s.Open = len(s.Properties) == 0
	return s, nil
}

// schemaType reads "type", which OpenAPI 3.1 allows to be a list that
// includes "null".
func schemaType(m map[string]any, s *Schema) string {
	switch t := m["type"].(type) {
	case string:
		return t
	case []any:
		var out string
		for _, v := range t {
			if str(v) == "null" {
				s.Nullable = true
				continue
			}
			if out == "" {
				out = str(v)
			}
		}
		return out
	}
	return ""
}

func str(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprint(s)
	}
}
