package spec

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// Document is the raw API description tree with every $ref left in place.
type Document struct {
	root map[string]any
}

// NewDocument builds a Document from a loaded kin-openapi document. The
// document is re-encoded as JSON, which keeps $ref strings intact.
func NewDocument(doc *openapi3.T) (*Document, error) {
	if doc == nil {
		return nil, fmt.Errorf("spec: nil document")
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, &SpecError{Code: ParseError, Message: fmt.Sprintf("encode document: %v", err), Cause: err}
	}
	return ParseDocument(raw)
}

// ParseDocument decodes YAML or JSON bytes into a Document.
func ParseDocument(data []byte) (*Document, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, &SpecError{Code: ParseError, Message: fmt.Sprintf("parse document: %v", err), Cause: err}
	}
	root, ok := normalizeNode(v).(map[string]any)
	if !ok {
		return nil, &SpecError{Code: ParseError, Message: "parse document: top level is not a mapping"}
	}
	return &Document{root: root}, nil
}

// Root returns the top-level mapping.
func (d *Document) Root() map[string]any { return d.root }

// Section returns the mapping at the given path of keys, or nil.
func (d *Document) Section(keys ...string) map[string]any {
	var cur any = d.root
	for _, k := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[k]
	}
	m, _ := cur.(map[string]any)
	return m
}

// Lookup follows a local reference ("#/components/schemas/Message") one
// segment at a time.
func (d *Document) Lookup(ref string) (any, error) {
	if !strings.HasPrefix(ref, "#/") {
		return nil, &SchemaNotFoundError{Ref: ref}
	}
	var cur any = d.root
	for _, seg := range splitPointer(ref) {
		switch node := cur.(type) {
		case map[string]any:
			next, ok := node[seg]
			if !ok {
				return nil, &SchemaNotFoundError{Ref: ref, Segment: seg}
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, &SchemaNotFoundError{Ref: ref, Segment: seg}
			}
			cur = node[i]
		default:
			return nil, &SchemaNotFoundError{Ref: ref, Segment: seg}
		}
	}
	return cur, nil
}

func splitPointer(ref string) []string {
	_, frag, _ := strings.Cut(ref, "#")
	frag = strings.TrimPrefix(frag, "/")
	if frag == "" {
		return nil
	}
	parts := strings.Split(frag, "/")
	for i, p := range parts {
		p = strings.ReplaceAll(p, "~1", "/")
		parts[i] = strings.ReplaceAll(p, "~0", "~")
	}
	return parts
}

// normalizeNode turns yaml.v3 output into JSON-shaped values: every mapping
// becomes map[string]any, so status codes written as 200 are keyed "200".
func normalizeNode(v any) any {
	switch n := v.(type) {
	case map[string]any:
		for k, child := range n {
			n[k] = normalizeNode(child)
		}
		return n
	case map[any]any:
		out := make(map[string]any, len(n))
		for k, child := range n {
			out[fmt.Sprint(k)] = normalizeNode(child)
		}
		return out
	case []any:
		for i, child := range n {
			n[i] = normalizeNode(child)
		}
		return n
	default:
		return v
	}
}
