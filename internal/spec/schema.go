package spec

// Kind classifies an expanded schema node.
type Kind string

const (
	KindObject    Kind = "object"
	KindArray     Kind = "array"
	KindEnum      Kind = "enum"
	KindPrimitive Kind = "primitive"
	KindAny       Kind = "any"
)

// Schema is a fully expanded schema tree. No node in it carries a $ref.
type Schema struct {
	Kind        Kind
	Type        string // JSON type for primitives and enums
	Format      string
	Description string
	Nullable    bool
	Default     any

	// Object
	Properties []*Property
	// Open is true when the object has no declared properties and accepts
	// arbitrary members.
	Open bool

	// Array
	Items *Schema

	// Enum
	Enum []any

	// Ref is the reference this node was expanded from, if any.
	Ref string
}

// Property is one member of an object schema.
type Property struct {
	Name     string
	Required bool
	Schema   *Schema
}

// ComponentName returns the last segment of Ref, e.g. "Message" for
// "#/components/schemas/Message".
func (s *Schema) ComponentName() string {
	if s == nil || s.Ref == "" {
		return ""
	}
	segs := splitPointer(s.Ref)
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// Property returns the property with the given name.
func (s *Schema) Property(name string) (*Property, bool) {
	if s == nil {
		return nil, false
	}
	for _, p := range s.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Parameter is an expanded parameter definition.
type Parameter struct {
	Name        string
	In          string // path|query|header|cookie, or "" when absent
	Required    bool
	HasRequired bool // the definition carries an explicit required marker
	Description string
	Schema      *Schema
}
