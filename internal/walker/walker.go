// Package walker visits every operation of an API description, resolving
// its parameters, request body and responses and registering their models.
package walker

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"sort"
	"strconv"

	"github.com/pachca/pachcagen/internal/models"
	"github.com/pachca/pachcagen/internal/naming"
	"github.com/pachca/pachcagen/internal/spec"
)

// Walker produces operation descriptors from one document.
type Walker struct {
	resolver *spec.Resolver
	registry *models.Registry
	logger   *slog.Logger
	cfg      config
}

// New returns a Walker that resolves through resolver and registers models
// in registry.
func New(resolver *spec.Resolver, registry *models.Registry, logger *slog.Logger, opts ...Option) (*Walker, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	w := &Walker{resolver: resolver, registry: registry, logger: logger}
	for _, opt := range opts {
		opt(&w.cfg)
	}
	if w.cfg.err != nil {
		return nil, w.cfg.err
	}
	return w, nil
}

// Operations returns a single-pass sequence over the document's operations.
// Paths are visited in sorted order and the methods of one path in
// spec.MethodOrder. A non-nil error is fatal for the operation it comes
// with; failed responses are logged and skipped instead.
func (w *Walker) Operations(ctx context.Context) iter.Seq2[*spec.Operation, error] {
	return func(yield func(*spec.Operation, error) bool) {
		paths := w.resolver.Document().Section("paths")
		keys := make([]string, 0, len(paths))
		for p := range paths {
			keys = append(keys, p)
		}
		sort.Strings(keys)

		for _, path := range keys {
			item, ok := paths[path].(map[string]any)
			if !ok || !w.cfg.keepPath(path) {
				continue
			}
			for _, method := range spec.MethodOrder {
				node, ok := item[string(method)].(map[string]any)
				if !ok || !w.cfg.keepMethod(method) {
					continue
				}
				if !w.cfg.keepTags(stringList(node["tags"])) {
					continue
				}
				if err := ctx.Err(); err != nil {
					yield(nil, err)
					return
				}
				op, err := w.operation(path, method, item, node)
				if !yield(op, err) {
					return
				}
			}
		}
	}
}

// Collect drains Operations, stopping at the first error.
func (w *Walker) Collect(ctx context.Context) ([]*spec.Operation, error) {
	var ops []*spec.Operation
	for op, err := range w.Operations(ctx) {
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func (w *Walker) operation(path string, method spec.HttpMethod, item, node map[string]any) (*spec.Operation, error) {
	op := &spec.Operation{
		ID:          naming.OperationID(text(node["operationId"]), string(method), path),
		Method:      method,
		Path:        path,
		Summary:     text(node["summary"]),
		Description: text(node["description"]),
	}
	if tags := stringList(node["tags"]); len(tags) > 0 {
		op.Tag = tags[0]
	}
	op.Deprecated, _ = node["deprecated"].(bool)

	if err := w.parameters(op, item["parameters"], node["parameters"]); err != nil {
		return nil, fmt.Errorf("%s %s (%s): %w", method, path, op.ID, err)
	}
	if err := w.body(op, node["requestBody"]); err != nil {
		return nil, fmt.Errorf("%s %s (%s): request body: %w", method, path, op.ID, err)
	}
	w.responses(op, node["responses"])
	return op, nil
}

func (w *Walker) parameters(op *spec.Operation, lists ...any) error {
	merged := map[string]*spec.Parameter{}
	var order []string
	for _, list := range lists {
		nodes, _ := list.([]any)
		for _, n := range nodes {
			p, err := w.resolver.ExpandParameter(n)
			if err != nil {
				return fmt.Errorf("parameter: %w", err)
			}
			in := p.In
			if in == "" {
				// Without a location the required marker decides.
				in = "query"
				if p.Required {
					in = "path"
				}
			}
			p.In = in
			key := in + ":" + p.Name
			if _, seen := merged[key]; !seen {
				order = append(order, key)
			}
			merged[key] = p
		}
	}

	for _, key := range order {
		p := merged[key]
		switch p.In {
		case "path":
			param := toParam(p)
			param.Required = true
			op.PathParams = append(op.PathParams, param)
		case "query":
			op.QueryParams = append(op.QueryParams, toParam(p))
		default:
			w.logger.Debug("parameter not modeled", "operation", op.ID, "name", p.Name, "in", p.In)
		}
	}
	return nil
}

func toParam(p *spec.Parameter) spec.Param {
	s := p.Schema
	param := spec.Param{
		Name:        p.Name,
		Type:        s.Type,
		Format:      s.Format,
		Required:    p.Required,
		Default:     s.Default,
		Description: p.Description,
	}
	switch s.Kind {
	case spec.KindArray:
		elem := models.Primitive(s.Items)
		param.Type = "array"
		param.ItemType = s.Items.Type
		param.GoType = "[]" + elem.Primitive
	case spec.KindPrimitive, spec.KindEnum:
		param.GoType = models.Primitive(s).Primitive
	default:
		param.Type = "string"
		param.GoType = "string"
	}
	return param
}

func (w *Walker) body(op *spec.Operation, node any) error {
	if node == nil {
		return nil
	}
	rb, err := w.follow(node)
	if err != nil {
		return err
	}
	contentType, schemaNode, ok := pickContent(rb["content"])
	if !ok {
		return nil
	}
	s, err := w.resolver.Expand(schemaNode)
	if err != nil {
		return err
	}
	t, model, err := w.synthesize(naming.BodyModel(op.ID), s)
	if err != nil {
		return err
	}
	required, _ := rb["required"].(bool)
	op.Body = &spec.Body{
		ContentType: contentType,
		Required:    required,
		Schema:      s,
		Model:       model,
		GoType:      t.GoType("models."),
	}
	return nil
}

func (w *Walker) responses(op *spec.Operation, node any) {
	entries, _ := node.(map[string]any)
	type coded struct {
		status int
		key    string
	}
	var codes []coded
	for key := range entries {
		status, err := strconv.Atoi(key)
		if err != nil {
			w.logger.Warn("response code is not numeric, skipping", "operation", op.ID, "method", op.Method, "status", key)
			continue
		}
		codes = append(codes, coded{status, key})
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i].status < codes[j].status })

	for _, c := range codes {
		resp, err := w.response(op, c.status, entries[c.key])
		if err != nil {
			w.logger.Warn("skipping response", "operation", op.ID, "method", op.Method, "status", c.key, "error", err)
			op.Skipped = append(op.Skipped, spec.SkippedResponse{Status: c.key, Err: err})
			continue
		}
		op.Responses = append(op.Responses, resp)
	}
}

func (w *Walker) response(op *spec.Operation, status int, node any) (spec.Response, error) {
	out := spec.Response{StatusCode: status}
	entry, err := w.follow(node)
	if err != nil {
		return out, err
	}
	out.Description = text(entry["description"])
	contentType, schemaNode, ok := pickContent(entry["content"])
	if !ok {
		return out, nil
	}
	s, err := w.resolver.Expand(schemaNode)
	if err != nil {
		return out, err
	}
	t, model, err := w.synthesize(naming.ResponseModel(op.ID, status), s)
	if err != nil {
		return out, err
	}
	out.ContentType = contentType
	out.Schema = s
	out.Model = model
	out.GoType = t.GoType("models.")
	return out, nil
}

// synthesize registers s under its component name when it came from a
// reference, under derived otherwise.
func (w *Walker) synthesize(derived string, s *spec.Schema) (models.TypeRef, string, error) {
	var (
		t   models.TypeRef
		err error
	)
	if c := s.ComponentName(); c != "" {
		t, err = w.registry.Ensure(naming.Exported(c), s)
	} else {
		t, err = w.registry.Synthesize(derived, s)
	}
	if err != nil {
		return models.TypeRef{}, "", err
	}
	if t.Kind == models.TypeModel {
		return t, t.Model, nil
	}
	return t, "", nil
}

// follow returns node, or its target when node is a reference to a
// reusable request body or response.
func (w *Walker) follow(node any) (map[string]any, error) {
	m, ok := node.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a mapping, got %T", node)
	}
	for range 8 {
		ref, ok := m["$ref"].(string)
		if !ok {
			return m, nil
		}
		target, err := w.resolver.Document().Lookup(ref)
		if err != nil {
			return nil, err
		}
		if m, ok = target.(map[string]any); !ok {
			return nil, &spec.SchemaNotFoundError{Ref: ref}
		}
	}
	return nil, fmt.Errorf("reference chain too long")
}

// pickContent prefers JSON, then multipart form data.
func pickContent(node any) (string, any, bool) {
	content, _ := node.(map[string]any)
	for _, ct := range []string{spec.ContentTypeJSON, spec.ContentTypeMultipart} {
		media, ok := content[ct].(map[string]any)
		if !ok {
			continue
		}
		if schema, ok := media["schema"]; ok && schema != nil {
			return ct, schema, true
		}
	}
	return "", nil, false
}

func stringList(v any) []string {
	list, _ := v.([]any)
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func text(v any) string {
	s, _ := v.(string)
	return s
}
