// Package extract recovers the top-level functions and imports of
// generated Go files so they can be merged into one aggregate client.
package extract

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
)

// Category buckets an import by where it comes from.
type Category int

const (
	// TypeSystem covers standard-library packages.
	TypeSystem Category = iota
	// Models covers generated model packages.
	Models
	// SharedTypes covers the runtime types package.
	SharedTypes
	// Other covers everything else; the alias is kept.
	Other
)

func (c Category) String() string {
	switch c {
	case TypeSystem:
		return "type-system"
	case Models:
		return "models"
	case SharedTypes:
		return "shared-types"
	default:
		return "other"
	}
}

// Import is one import declaration.
type Import struct {
	Category Category
	Name     string // explicit alias, "" when none
	Path     string
}

// Function is the verbatim text of one top-level function declaration.
type Function struct {
	Name     string
	Receiver string // receiver type name without the pointer, "" for plain functions
	Source   string // doc comment included
	File     string
}

// Result holds what one or more files declare, in source order.
type Result struct {
	Functions []Function
	Imports   []Import
}

// Categorize maps an import path to its category. Every path falls into
// exactly one category.
func Categorize(importPath string) Category {
	last := path.Base(importPath)
	switch {
	case !strings.Contains(strings.SplitN(importPath, "/", 2)[0], "."):
		return TypeSystem
	case strings.HasPrefix(last, "models"):
		return Models
	case last == "types":
		return SharedTypes
	default:
		return Other
	}
}

// File parses the Go file at name.
func File(name string) (*Result, error) {
	src, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return Source(name, src)
}

// Source parses src, reporting positions against name.
func Source(name string, src []byte) (*Result, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, name, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	res := &Result{}
	for _, spec := range f.Imports {
		p, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			return nil, fmt.Errorf("extract: %s: bad import path %s", name, spec.Path.Value)
		}
		imp := Import{Category: Categorize(p), Path: p}
		if spec.Name != nil {
			imp.Name = spec.Name.Name
		}
		res.Imports = append(res.Imports, imp)
	}

	tf := fset.File(f.Pos())
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		start := fn.Pos()
		if fn.Doc != nil {
			start = fn.Doc.Pos()
		}
		res.Functions = append(res.Functions, Function{
			Name:     fn.Name.Name,
			Receiver: receiver(fn),
			Source:   string(src[tf.Offset(start):tf.Offset(fn.End())]),
			File:     name,
		})
	}
	return res, nil
}

// Dir extracts every non-test Go file below root, visiting files in
// lexical order. Files listed in skip are ignored.
func Dir(root string, skip ...string) (*Result, error) {
	skipped := map[string]bool{}
	for _, s := range skip {
		if abs, err := filepath.Abs(s); err == nil {
			skipped[abs] = true
		}
	}
	res := &Result{}
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".go") || strings.HasSuffix(p, "_test.go") {
			return nil
		}
		if abs, err := filepath.Abs(p); err == nil && skipped[abs] {
			return nil
		}
		r, err := File(p)
		if err != nil {
			return err
		}
		res.Functions = append(res.Functions, r.Functions...)
		res.Imports = append(res.Imports, r.Imports...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func receiver(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return ""
	}
	t := fn.Recv.List[0].Type
	if star, ok := t.(*ast.StarExpr); ok {
		t = star.X
	}
	switch x := t.(type) {
	case *ast.Ident:
		return x.Name
	case *ast.IndexExpr:
		if id, ok := x.X.(*ast.Ident); ok {
			return id.Name
		}
	case *ast.IndexListExpr:
		if id, ok := x.X.(*ast.Ident); ok {
			return id.Name
		}
	}
	return ""
}
