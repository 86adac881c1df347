// Package models turns expanded schemas into named model descriptions and
// keeps them in a registry for emission.
package models

import (
	"errors"
	"fmt"

	"github.com/pachca/pachcagen/internal/spec"
)

// Kind distinguishes field-carrying models from enumerations.
type Kind string

const (
	KindObject Kind = "object"
	KindEnum   Kind = "enum"
)

// Model is one named data type.
type Model struct {
	Name        string
	Description string
	Kind        Kind
	Fields      []Field

	// EnumType is the Go type of the enum values; Values keeps their
	// declared order.
	EnumType string
	Values   []any

	// Origin is the component reference the model was synthesized from, or
	// "" for inline schemas.
	Origin string
}

// Field is one property of an object model.
type Field struct {
	Name        string // JSON name
	GoName      string
	Type        TypeRef
	Required    bool
	Nullable    bool
	Description string
}

// Pointer reports whether the field is emitted as a pointer so that an unset
// value can be told apart from the zero value.
func (f Field) Pointer() bool {
	return (!f.Required || f.Nullable) && f.Type.Pointerable()
}

// TypeKind classifies a TypeRef.
type TypeKind string

const (
	TypePrimitive TypeKind = "primitive"
	TypeModel     TypeKind = "model"
	TypeArray     TypeKind = "array"
	TypeMap       TypeKind = "map"
	TypeAny       TypeKind = "any"
)

// TypeRef is how a field, body or response refers to its type.
type TypeRef struct {
	Kind      TypeKind
	Primitive string // Go type for primitives: int, int64, float64, string, bool, time.Time, types.File
	Model     string
	Elem      *TypeRef
}

// GoType renders the type, prefixing model names with qualifier ("" inside
// the models package, "models." elsewhere).
func (t TypeRef) GoType(qualifier string) string {
	switch t.Kind {
	case TypePrimitive:
		return t.Primitive
	case TypeModel:
		return qualifier + t.Model
	case TypeArray:
		return "[]" + t.Elem.GoType(qualifier)
	case TypeMap:
		return "map[string]any"
	default:
		return "any"
	}
}

// Pointerable reports whether optional values of this type need a pointer.
func (t TypeRef) Pointerable() bool {
	return t.Kind == TypePrimitive || t.Kind == TypeModel
}

// UsesTime reports whether the type mentions time.Time.
func (t TypeRef) UsesTime() bool {
	switch t.Kind {
	case TypePrimitive:
		return t.Primitive == "time.Time"
	case TypeArray:
		return t.Elem.UsesTime()
	}
	return false
}

// UsesModels reports whether the type mentions a model.
func (t TypeRef) UsesModels() bool {
	switch t.Kind {
	case TypeModel:
		return true
	case TypeArray:
		return t.Elem.UsesModels()
	}
	return false
}

// ErrModelNameCollision matches any *ModelNameCollisionError.
var ErrModelNameCollision = errors.New("model name collision")

// ModelNameCollisionError reports a second model registered under a taken name.
type ModelNameCollisionError struct {
	Name   string
	Origin string // origin of the model already registered
}

func (e *ModelNameCollisionError) Error() string {
	if e.Origin != "" {
		return fmt.Sprintf("models: name %q already registered from %s", e.Name, e.Origin)
	}
	return fmt.Sprintf("models: name %q already registered", e.Name)
}

func (e *ModelNameCollisionError) Is(target error) bool { return target == ErrModelNameCollision }

// Primitive maps the JSON type and format of s to a Go type.
func Primitive(s *spec.Schema) TypeRef {
	var g string
	switch s.Type {
	case "integer":
		switch s.Format {
		case "int64":
			g = "int64"
		case "int32":
			g = "int32"
		default:
			g = "int"
		}
	case "number":
		if s.Format == "float" {
			g = "float32"
		} else {
			g = "float64"
		}
	case "boolean":
		g = "bool"
	default:
		switch s.Format {
		case "date-time":
			g = "time.Time"
		case "binary":
			g = "types.File"
		default:
			g = "string"
		}
	}
	return TypeRef{Kind: TypePrimitive, Primitive: g}
}
