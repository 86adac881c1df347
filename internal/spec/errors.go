package spec

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSchemaNotFound matches any *SchemaNotFoundError.
	ErrSchemaNotFound = errors.New("schema not found")
	// ErrCyclicSchema matches any *CyclicSchemaError.
	ErrCyclicSchema = errors.New("cyclic schema reference")
)

// SchemaNotFoundError reports a reference whose target does not exist.
type SchemaNotFoundError struct {
	Ref string
	// Segment is the first path segment that could not be followed.
	Segment string
}

func (e *SchemaNotFoundError) Error() string {
	if e.Segment == "" {
		return fmt.Sprintf("spec: reference %q not found", e.Ref)
	}
	return fmt.Sprintf("spec: reference %q not found: no segment %q", e.Ref, e.Segment)
}

func (e *SchemaNotFoundError) Is(target error) bool { return target == ErrSchemaNotFound }

// CyclicSchemaError reports a reference that is reached again while it is
// still being expanded.
type CyclicSchemaError struct {
	Ref   string
	Chain []string
}

func (e *CyclicSchemaError) Error() string {
	return fmt.Sprintf("spec: cyclic reference %q (%s)", e.Ref, strings.Join(append(append([]string{}, e.Chain...), e.Ref), " -> "))
}

func (e *CyclicSchemaError) Is(target error) bool { return target == ErrCyclicSchema }
