// Package goemitter renders models and per-endpoint operation files for a
// set of walked operations.
package goemitter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pachca/pachcagen/internal/models"
	"github.com/pachca/pachcagen/internal/naming"
	"github.com/pachca/pachcagen/internal/spec"
)

// Header opens every generated file.
const Header = "// Code generated by pachcagen. DO NOT EDIT."

// DefaultRuntimePath is the module that provides the transport and types
// packages.
const DefaultRuntimePath = "github.com/pachca/pachcagen"

// Options controls how the Go emitter renders a client.
type Options struct {
	OutDir        string // required; root of the generated package tree
	ModulePath    string // required; import path of OutDir
	RuntimePath   string // defaults to DefaultRuntimePath
	Force         bool   // overwrite existing files
	DryRun        bool   // don't write, only plan
	EmitEndpoints bool   // write api/<tag>/ files, not only keep them for aggregation
	Logger        *slog.Logger
}

// PlannedFile describes a file the emitter intends to write.
type PlannedFile struct {
	RelPath string
	Size    int
	Mode    os.FileMode
}

// File is one rendered source file.
type File struct {
	RelPath string
	Content []byte
}

// Result lists the planned writes and the rendered per-endpoint files.
type Result struct {
	Planned []PlannedFile
	// Files holds the content of every planned file, in Planned order.
	Files []File
	// Endpoints holds every api/<tag>/<operation>.go file in path order,
	// whether or not it was planned for writing.
	Endpoints []File
	Models    int
}

type importPaths struct {
	models    string
	transport string
	types     string
}

// Emit renders one file per model, one per operation and one client type
// per tag.
func Emit(ctx context.Context, ops []*spec.Operation, reg *models.Registry, opts Options) (*Result, error) {
	if reg == nil {
		return nil, errors.New("goemitter: nil registry")
	}
	if strings.TrimSpace(opts.OutDir) == "" {
		return nil, errors.New("goemitter: OutDir is required")
	}
	modulePath := strings.TrimSuffix(strings.TrimSpace(opts.ModulePath), "/")
	if modulePath == "" {
		return nil, errors.New("goemitter: ModulePath is required")
	}
	runtime := strings.TrimSuffix(strings.TrimSpace(opts.RuntimePath), "/")
	if runtime == "" {
		runtime = DefaultRuntimePath
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	paths := importPaths{
		models:    path.Join(modulePath, "models"),
		transport: path.Join(runtime, "transport"),
		types:     path.Join(runtime, "types"),
	}

	files := map[string][]byte{}
	for _, m := range reg.Models() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rel := path.Join("models", naming.FileName(m.Name))
		src, err := executeTemplate(logger, "model.go.tmpl", rel, newModelData(m, Header, paths.types))
		if err != nil {
			return nil, fmt.Errorf("render model %s: %w", m.Name, err)
		}
		files[rel] = src
	}

	endpoints := map[string][]byte{}
	tags := map[string]string{}
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data := newEndpointData(op, Header, paths)
		rel := path.Join("api", data.Package, naming.FileName(op.ID))
		if _, dup := endpoints[rel]; dup {
			return nil, fmt.Errorf("goemitter: operations %q collide on file %s", op.ID, rel)
		}
		src, err := executeTemplate(logger, "endpoint.go.tmpl", rel, data)
		if err != nil {
			return nil, fmt.Errorf("render operation %s: %w", op.ID, err)
		}
		endpoints[rel] = src
		if _, ok := tags[data.Package]; !ok {
			tags[data.Package] = op.Tag
		}
	}

	if opts.EmitEndpoints {
		for pkg, tag := range tags {
			if tag == "" {
				tag = "untagged"
			}
			rel := path.Join("api", pkg, "client.go")
			src, err := executeTemplate(logger, "client.go.tmpl", rel, clientData{
				Header:          Header,
				Package:         pkg,
				Tag:             tag,
				TransportImport: paths.transport,
			})
			if err != nil {
				return nil, fmt.Errorf("render client for %s: %w", pkg, err)
			}
			files[rel] = src
		}
		for rel, src := range endpoints {
			files[rel] = src
		}
	}

	res := &Result{Planned: plan(files), Models: reg.Len()}
	for _, rel := range sortedKeys(files) {
		res.Files = append(res.Files, File{RelPath: rel, Content: files[rel]})
	}
	for _, rel := range sortedKeys(endpoints) {
		res.Endpoints = append(res.Endpoints, File{RelPath: rel, Content: endpoints[rel]})
	}

	if !opts.DryRun {
		if err := WriteFiles(opts.OutDir, files, opts.Force); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func plan(files map[string][]byte) []PlannedFile {
	planned := make([]PlannedFile, 0, len(files))
	for _, rel := range sortedKeys(files) {
		planned = append(planned, PlannedFile{RelPath: rel, Size: len(files[rel]), Mode: 0o644})
	}
	return planned
}

func sortedKeys(files map[string][]byte) []string {
	rels := make([]string, 0, len(files))
	for p := range files {
		rels = append(rels, p)
	}
	sort.Strings(rels)
	return rels
}

// WriteFiles writes files below outDir, each through a temporary file and
// a rename. Without force, any file that already exists aborts the write
// before anything is touched.
func WriteFiles(outDir string, files map[string][]byte, force bool) error {
	abs, err := filepath.Abs(outDir)
	if err != nil {
		return fmt.Errorf("resolve out dir: %w", err)
	}
	rels := sortedKeys(files)
	if !force {
		for _, rel := range rels {
			p := filepath.Join(abs, filepath.FromSlash(rel))
			if _, err := os.Stat(p); err == nil {
				return fmt.Errorf("goemitter: %s already exists (use --force to overwrite)", p)
			}
		}
	}
	for _, rel := range rels {
		p := filepath.Join(abs, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
		tmp := p + ".tmp-" + time.Now().Format("20060102150405")
		if err := os.WriteFile(tmp, files[rel], 0o644); err != nil {
			return fmt.Errorf("write temp %s: %w", rel, err)
		}
		if err := os.Rename(tmp, p); err != nil {
			_ = os.Remove(tmp)
			return fmt.Errorf("rename %s: %w", rel, err)
		}
	}
	return nil
}
