// Package render assembles extracted functions into one aggregate client
// file.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"go/format"
	"path"
	"sort"
	"text/template"

	"github.com/pachca/pachcagen/internal/extract"
)

//go:embed templates/client.go.tmpl
var templateFS embed.FS

var clientTemplate = template.Must(template.ParseFS(templateFS, "templates/client.go.tmpl"))

// Options configures the aggregate file.
type Options struct {
	Package         string
	TransportImport string
	Header          string
}

type data struct {
	Header          string
	Package         string
	Models          []extract.Import
	TypeSystem      []extract.Import
	SharedTypes     []extract.Import
	Other           []extract.Import
	TransportImport string
	TransportAlias  string
	TransportName   string
	Functions       []extract.Function
}

// Render deduplicates imports, groups them by category (models, type
// system, shared types, then one declaration per other import, then the
// transport import) and emits the Client type followed by every function
// in the order given.
func Render(functions []extract.Function, imports []extract.Import, opts Options) ([]byte, error) {
	if opts.Package == "" {
		return nil, errors.New("render: package name is required")
	}
	if opts.TransportImport == "" {
		return nil, errors.New("render: transport import is required")
	}

	d := data{
		Header:          opts.Header,
		Package:         opts.Package,
		TransportImport: opts.TransportImport,
		TransportName:   path.Base(opts.TransportImport),
		Functions:       functions,
	}

	type key struct {
		category extract.Category
		name     string
		path     string
	}
	seen := map[key]bool{}
	transportSeen := false
	for _, imp := range imports {
		if imp.Path == opts.TransportImport {
			name := imp.Name
			if name == "" {
				name = path.Base(imp.Path)
			}
			if transportSeen && name != d.TransportName {
				return nil, fmt.Errorf("render: transport imported as both %q and %q", d.TransportName, name)
			}
			transportSeen = true
			d.TransportName = name
			if imp.Name != "" {
				d.TransportAlias = imp.Name
			}
			continue
		}
		k := key{imp.Category, imp.Name, imp.Path}
		if seen[k] {
			continue
		}
		seen[k] = true
		switch imp.Category {
		case extract.Models:
			d.Models = append(d.Models, imp)
		case extract.TypeSystem:
			d.TypeSystem = append(d.TypeSystem, imp)
		case extract.SharedTypes:
			d.SharedTypes = append(d.SharedTypes, imp)
		default:
			d.Other = append(d.Other, imp)
		}
	}
	for _, group := range [][]extract.Import{d.Models, d.TypeSystem, d.SharedTypes, d.Other} {
		sortImports(group)
	}

	if err := checkNames(d); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := clientTemplate.Execute(&buf, d); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("render: format: %w", err)
	}
	return out, nil
}

func sortImports(group []extract.Import) {
	sort.SliceStable(group, func(i, j int) bool {
		if group[i].Path != group[j].Path {
			return group[i].Path < group[j].Path
		}
		return group[i].Name < group[j].Name
	})
}

// checkNames rejects aggregates that would not compile: two imports bound
// to one name, or two functions with the same name and receiver.
func checkNames(d data) error {
	bound := map[string]string{d.TransportName: d.TransportImport}
	for _, group := range [][]extract.Import{d.Models, d.TypeSystem, d.SharedTypes, d.Other} {
		for _, imp := range group {
			name := imp.Name
			if name == "" {
				name = path.Base(imp.Path)
			}
			if name == "_" || name == "." {
				continue
			}
			if prev, ok := bound[name]; ok && prev != imp.Path {
				return fmt.Errorf("render: import name %q bound to both %s and %s", name, prev, imp.Path)
			}
			bound[name] = imp.Path
		}
	}

	declared := map[string]string{"NewClient": "aggregate"}
	for _, fn := range d.Functions {
		id := fn.Name
		if fn.Receiver != "" {
			id = fn.Receiver + "." + fn.Name
		}
		if prev, ok := declared[id]; ok {
			return fmt.Errorf("render: function %s declared in both %s and %s", id, prev, fn.File)
		}
		declared[id] = fn.File
	}
	return nil
}
