package models

import (
	"fmt"

	"github.com/pachca/pachcagen/internal/naming"
	"github.com/pachca/pachcagen/internal/spec"
)

// Registry accumulates every synthesized model, keyed by name.
type Registry struct {
	byName map[string]*Model
	order  []*Model
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: map[string]*Model{}}
}

// Len returns the number of registered models.
func (r *Registry) Len() int { return len(r.order) }

// Lookup returns the model registered under name.
func (r *Registry) Lookup(name string) (*Model, bool) {
	m, ok := r.byName[name]
	return m, ok
}

// Models returns the registered models in registration order.
func (r *Registry) Models() []*Model {
	return append([]*Model(nil), r.order...)
}

// Synthesize registers a model for s under name, and one for every nested
// object or enum it holds. Any model already registered under name is a
// collision. Nothing is registered when an error is returned.
func (r *Registry) Synthesize(name string, s *spec.Schema) (TypeRef, error) {
	return r.atomically(func() (TypeRef, error) { return r.synthesize(name, s, false) })
}

// Ensure is Synthesize for schemas expanded from a component reference:
// when name was already registered from the same reference, the existing
// model is reused instead of colliding.
func (r *Registry) Ensure(name string, s *spec.Schema) (TypeRef, error) {
	return r.atomically(func() (TypeRef, error) { return r.synthesize(name, s, s.Ref != "") })
}

func (r *Registry) atomically(fn func() (TypeRef, error)) (TypeRef, error) {
	mark := len(r.order)
	t, err := fn()
	if err != nil {
		for _, m := range r.order[mark:] {
			delete(r.byName, m.Name)
		}
		r.order = r.order[:mark]
		return TypeRef{}, err
	}
	return t, nil
}

func (r *Registry) synthesize(name string, s *spec.Schema, shared bool) (TypeRef, error) {
	if s == nil {
		return TypeRef{}, fmt.Errorf("models: nil schema for %q", name)
	}
	switch s.Kind {
	case spec.KindObject:
		if s.Open {
			return TypeRef{Kind: TypeMap}, nil
		}
		return r.object(name, s, shared)
	case spec.KindEnum:
		return r.enum(name, s, shared)
	case spec.KindArray:
		elemName, elemShared := r.childName(name+"Item", s.Items)
		elem, err := r.synthesize(elemName, s.Items, elemShared)
		if err != nil {
			return TypeRef{}, err
		}
		return TypeRef{Kind: TypeArray, Elem: &elem}, nil
	case spec.KindPrimitive:
		return Primitive(s), nil
	default:
		return TypeRef{Kind: TypeAny}, nil
	}
}

// childName picks the name for a nested schema: its component name when it
// came from a reference, the derived name otherwise.
func (r *Registry) childName(derived string, s *spec.Schema) (string, bool) {
	if c := s.ComponentName(); c != "" {
		return naming.Exported(c), true
	}
	return derived, false
}

// claim reserves name. It returns the model to reuse, if any.
func (r *Registry) claim(name string, s *spec.Schema, shared bool) (*Model, error) {
	existing, ok := r.byName[name]
	if !ok {
		return nil, nil
	}
	if shared && s.Ref != "" && existing.Origin == s.Ref {
		return existing, nil
	}
	return nil, &ModelNameCollisionError{Name: name, Origin: existing.Origin}
}

func (r *Registry) register(m *Model) {
	r.byName[m.Name] = m
	r.order = append(r.order, m)
}

func (r *Registry) object(name string, s *spec.Schema, shared bool) (TypeRef, error) {
	ref := TypeRef{Kind: TypeModel, Model: name}
	if existing, err := r.claim(name, s, shared); err != nil {
		return TypeRef{}, err
	} else if existing != nil {
		return ref, nil
	}

	m := &Model{Name: name, Description: s.Description, Kind: KindObject, Origin: s.Ref}
	r.register(m)

	taken := map[string]bool{"AdditionalProperties": true}
	for _, p := range s.Properties {
		childName, childShared := r.childName(naming.Nested(name, p.Name), p.Schema)
		t, err := r.synthesize(childName, p.Schema, childShared)
		if err != nil {
			return TypeRef{}, fmt.Errorf("%s.%s: %w", name, p.Name, err)
		}
		goName := naming.Exported(p.Name)
		for i := 2; taken[goName]; i++ {
			goName = fmt.Sprintf("%s%d", naming.Exported(p.Name), i)
		}
		taken[goName] = true
		m.Fields = append(m.Fields, Field{
			Name:        p.Name,
			GoName:      goName,
			Type:        t,
			Required:    p.Required,
			Nullable:    p.Schema.Nullable,
			Description: p.Schema.Description,
		})
	}
	return ref, nil
}

func (r *Registry) enum(name string, s *spec.Schema, shared bool) (TypeRef, error) {
	ref := TypeRef{Kind: TypeModel, Model: name}
	if existing, err := r.claim(name, s, shared); err != nil {
		return TypeRef{}, err
	} else if existing != nil {
		return ref, nil
	}
	m := &Model{
		Name:        name,
		Description: s.Description,
		Kind:        KindEnum,
		EnumType:    Primitive(&spec.Schema{Type: s.Type}).Primitive,
		Values:      append([]any(nil), s.Enum...),
		Origin:      s.Ref,
	}
	r.register(m)
	return ref, nil
}
