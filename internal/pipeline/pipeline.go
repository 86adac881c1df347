// Package pipeline runs one generation: walk the document, synthesize
// models, render per-endpoint files and aggregate them into client.go.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/pachca/pachcagen/internal/emitter/goemitter"
	"github.com/pachca/pachcagen/internal/extract"
	"github.com/pachca/pachcagen/internal/models"
	"github.com/pachca/pachcagen/internal/render"
	"github.com/pachca/pachcagen/internal/spec"
	"github.com/pachca/pachcagen/internal/walker"
)

// ClientFile is the name of the aggregate file below the output directory.
const ClientFile = "client.go"

// Context carries the state of one generation run.
type Context struct {
	Document *spec.Document
	Resolver *spec.Resolver
	Registry *models.Registry
	Logger   *slog.Logger
}

// New returns a fresh Context for doc.
func New(doc *spec.Document, logger *slog.Logger) *Context {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Context{
		Document: doc,
		Resolver: spec.NewResolver(doc),
		Registry: models.NewRegistry(),
		Logger:   logger,
	}
}

// Config selects what is generated and where.
type Config struct {
	OutDir        string
	ModulePath    string
	RuntimePath   string
	Package       string // defaults to the last element of ModulePath
	Force         bool
	DryRun        bool
	EmitEndpoints bool

	IncludeTags  []string
	ExcludeTags  []string
	Methods      []spec.HttpMethod
	PathPatterns []string
}

// Result summarizes a run.
type Result struct {
	Operations int
	Models     int
	// Skipped counts responses dropped during the walk.
	Skipped int
	Planned []goemitter.PlannedFile
}

// Run generates the client described by c.Document. Either every planned
// file is written or, on error, none is.
func Run(ctx context.Context, c *Context, cfg Config) (*Result, error) {
	if c == nil || c.Document == nil {
		return nil, errors.New("pipeline: nil context")
	}
	pkg := cfg.Package
	if pkg == "" {
		pkg = path.Base(strings.TrimSuffix(cfg.ModulePath, "/"))
	}
	runtime := cfg.RuntimePath
	if runtime == "" {
		runtime = goemitter.DefaultRuntimePath
	}

	w, err := walker.New(c.Resolver, c.Registry, c.Logger,
		walker.WithIncludeTags(cfg.IncludeTags),
		walker.WithExcludeTags(cfg.ExcludeTags),
		walker.WithMethods(cfg.Methods),
		walker.WithPathPatterns(cfg.PathPatterns),
	)
	if err != nil {
		return nil, err
	}
	res := &Result{}
	var ops []*spec.Operation
	for op, err := range w.Operations(ctx) {
		if err != nil {
			return nil, err
		}
		res.Skipped += len(op.Skipped)
		ops = append(ops, op)
		c.Logger.Debug("operation", "id", op.ID, "method", op.Method, "path", op.Path)
	}
	res.Operations = len(ops)
	res.Models = c.Registry.Len()
	c.Logger.Info("walked document", "operations", res.Operations, "models", res.Models, "skipped_responses", res.Skipped)

	emitted, err := goemitter.Emit(ctx, ops, c.Registry, goemitter.Options{
		OutDir:        cfg.OutDir,
		ModulePath:    cfg.ModulePath,
		RuntimePath:   runtime,
		EmitEndpoints: cfg.EmitEndpoints,
		DryRun:        true,
		Logger:        c.Logger,
	})
	if err != nil {
		return nil, err
	}

	var fns []extract.Function
	var imps []extract.Import
	for _, f := range emitted.Endpoints {
		r, err := extract.Source(f.RelPath, f.Content)
		if err != nil {
			return nil, err
		}
		fns = append(fns, r.Functions...)
		imps = append(imps, r.Imports...)
	}
	client, err := render.Render(fns, imps, render.Options{
		Package:         pkg,
		TransportImport: path.Join(runtime, "transport"),
		Header:          goemitter.Header,
	})
	if err != nil {
		return nil, err
	}

	files := map[string][]byte{ClientFile: client}
	for _, f := range emitted.Files {
		files[f.RelPath] = f.Content
	}
	res.Planned = append([]goemitter.PlannedFile{{RelPath: ClientFile, Size: len(client), Mode: 0o644}}, emitted.Planned...)

	if cfg.DryRun {
		return res, nil
	}
	if err := goemitter.WriteFiles(cfg.OutDir, files, cfg.Force); err != nil {
		return nil, fmt.Errorf("write client: %w", err)
	}
	c.Logger.Info("wrote client", "dir", cfg.OutDir, "files", len(files))
	return res, nil
}
