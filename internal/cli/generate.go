package cli

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pachca/pachcagen/internal/emitter/goemitter"
	"github.com/pachca/pachcagen/internal/logging"
	"github.com/pachca/pachcagen/internal/pipeline"
	"github.com/pachca/pachcagen/internal/spec"
)

// GenerateConfig captures all inputs that influence the generate command after
// merging defaults, config file values, and CLI overrides.
type GenerateConfig struct {
	Input         string
	Out           string
	Module        string
	Package       string
	Runtime       string
	IncludeTags   []string
	ExcludeTags   []string
	Methods       []string
	Paths         []string
	EmitEndpoints bool
	AllowFileRefs bool
	Timeout       time.Duration
	ConfigPath    string
	DryRun        bool
	Force         bool
	Verbose       bool
	LogFormat     string
}

func defaultGenerateConfig() GenerateConfig {
	return GenerateConfig{
		Runtime:   goemitter.DefaultRuntimePath,
		Timeout:   30 * time.Second,
		LogFormat: string(logging.FormatAuto),
	}
}

var generateRunner = runGenerate

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a Go client from an OpenAPI document",
		Long: "Generate models, per-endpoint request builders and an aggregate client.go from an OpenAPI document. " +
			"Options can be provided via flags, config files, or defaults.",
		Example: strings.TrimSpace(`  pachcagen generate --input openapi.yaml --out ./pachca --module example.com/app/pachca
  pachcagen --config pachcagen.yaml generate --force --dry-run`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveGenerateConfig(cmd)
			if err != nil {
				return err
			}
			return generateRunner(cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("input", "", "Path or URL to the OpenAPI document")
	flags.String("out", "", "Output directory (defaults to the last element of --module)")
	flags.String("module", "", "Import path of the output directory")
	flags.String("package", "", "Package name of client.go (defaults to the last element of --module)")
	flags.String("runtime", goemitter.DefaultRuntimePath, "Module providing the transport and types packages")
	flags.StringSlice("include-tags", nil, "Only include operations with these tags")
	flags.StringSlice("exclude-tags", nil, "Exclude operations with these tags")
	flags.StringSlice("methods", nil, "Only include these HTTP methods")
	flags.StringSlice("paths", nil, "Only include paths matching one of these regular expressions")
	flags.Bool("emit-endpoints", false, "Also write the per-endpoint api/<tag>/ packages")
	flags.Bool("allow-file-refs", false, "Resolve $ref entries that point at other local files")
	flags.Duration("timeout", 30*time.Second, "Timeout for fetching a remote document")
	flags.Bool("dry-run", false, "Preview planned outputs without writing files")
	flags.Bool("force", false, "Overwrite existing files")

	return cmd
}

func resolveGenerateConfig(cmd *cobra.Command) (*GenerateConfig, error) {
	cfg := defaultGenerateConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	configPath = strings.TrimSpace(configPath)
	if configPath != "" {
		cfg.ConfigPath = configPath
		if err := applyGenerateConfigFromFile(&cfg, configPath); err != nil {
			return nil, err
		}
	}

	if err := applyGenerateFlagOverrides(cmd.Flags(), &cfg); err != nil {
		return nil, err
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyGenerateFlagOverrides(flags *pflag.FlagSet, cfg *GenerateConfig) error {
	strs := map[string]*string{
		"input":      &cfg.Input,
		"out":        &cfg.Out,
		"module":     &cfg.Module,
		"package":    &cfg.Package,
		"runtime":    &cfg.Runtime,
		"log-format": &cfg.LogFormat,
	}
	for name, dst := range strs {
		if !flags.Changed(name) {
			continue
		}
		value, err := flags.GetString(name)
		if err != nil {
			return err
		}
		*dst = strings.TrimSpace(value)
	}

	slices := map[string]*[]string{
		"include-tags": &cfg.IncludeTags,
		"exclude-tags": &cfg.ExcludeTags,
		"methods":      &cfg.Methods,
		"paths":        &cfg.Paths,
	}
	for name, dst := range slices {
		if !flags.Changed(name) {
			continue
		}
		value, err := flags.GetStringSlice(name)
		if err != nil {
			return err
		}
		*dst = value
	}

	bools := map[string]*bool{
		"emit-endpoints":  &cfg.EmitEndpoints,
		"allow-file-refs": &cfg.AllowFileRefs,
		"dry-run":         &cfg.DryRun,
		"force":           &cfg.Force,
		"verbose":         &cfg.Verbose,
	}
	for name, dst := range bools {
		if !flags.Changed(name) {
			continue
		}
		value, err := flags.GetBool(name)
		if err != nil {
			return err
		}
		*dst = value
	}

	if flags.Changed("timeout") {
		value, err := flags.GetDuration("timeout")
		if err != nil {
			return err
		}
		cfg.Timeout = value
	}

	return nil
}

func (c *GenerateConfig) normalize() {
	c.Input = strings.TrimSpace(c.Input)
	c.Module = strings.TrimSuffix(strings.TrimSpace(c.Module), "/")
	c.Out = strings.TrimSpace(c.Out)
	c.Package = strings.TrimSpace(c.Package)
	c.Runtime = strings.TrimSuffix(strings.TrimSpace(c.Runtime), "/")
	c.IncludeTags = dedupe(c.IncludeTags)
	c.ExcludeTags = dedupe(c.ExcludeTags)
	c.Methods = dedupe(c.Methods)
	for i, m := range c.Methods {
		c.Methods[i] = strings.ToLower(m)
	}
	c.Paths = dedupe(c.Paths)
	if c.Out == "" && c.Module != "" {
		c.Out = path.Base(c.Module)
	}
	if c.Runtime == "" {
		c.Runtime = goemitter.DefaultRuntimePath
	}
}

func (c *GenerateConfig) validate() error {
	if c.Input == "" {
		return newUsageError("generate: --input is required (set via flag or config file)")
	}
	if c.Module == "" {
		return newUsageError("generate: --module is required (set via flag or config file)")
	}
	if c.Package != "" && !token.IsIdentifier(c.Package) {
		return newUsageError(fmt.Sprintf("generate: --package %q is not a Go identifier", c.Package))
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		return newUsageError("generate: " + err.Error())
	}
	if c.Timeout <= 0 {
		return newUsageError("generate: --timeout must be positive")
	}

	overlap := intersect(c.IncludeTags, c.ExcludeTags)
	if len(overlap) > 0 {
		return newUsageError(fmt.Sprintf("generate: include/exclude tags overlap: %s", strings.Join(overlap, ", ")))
	}
	for _, m := range c.Methods {
		if _, ok := spec.ParseMethod(m); !ok {
			return newUsageError(fmt.Sprintf("generate: unsupported method %q", m))
		}
	}
	for _, p := range c.Paths {
		if _, err := regexp.Compile(p); err != nil {
			return newUsageError(fmt.Sprintf("generate: invalid path pattern %q: %v", p, err))
		}
	}

	return nil
}

func (c *GenerateConfig) methods() []spec.HttpMethod {
	out := make([]spec.HttpMethod, 0, len(c.Methods))
	for _, m := range c.Methods {
		if hm, ok := spec.ParseMethod(m); ok {
			out = append(out, hm)
		}
	}
	return out
}

func runGenerate(cmd *cobra.Command, cfg *GenerateConfig) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	format, _ := logging.ParseFormat(cfg.LogFormat)
	logger := logging.New(cmd.ErrOrStderr(), format, cfg.Verbose)

	doc, err := spec.LoadDocument(ctx, cfg.Input,
		spec.WithHTTPTimeout(cfg.Timeout),
		spec.WithAllowFileRefs(cfg.AllowFileRefs),
		spec.WithLogger(logger),
	)
	if err != nil {
		return specUsageError(err)
	}

	res, err := pipeline.Run(ctx, pipeline.New(doc, logger), pipeline.Config{
		OutDir:        cfg.Out,
		ModulePath:    cfg.Module,
		RuntimePath:   cfg.Runtime,
		Package:       cfg.Package,
		Force:         cfg.Force,
		DryRun:        cfg.DryRun,
		EmitEndpoints: cfg.EmitEndpoints,
		IncludeTags:   cfg.IncludeTags,
		ExcludeTags:   cfg.ExcludeTags,
		Methods:       cfg.methods(),
		PathPatterns:  cfg.Paths,
	})
	if err != nil {
		if errors.Is(err, spec.ErrSchemaNotFound) || errors.Is(err, spec.ErrCyclicSchema) {
			return newUsageError("generate: " + err.Error())
		}
		return wrapOutputError(err, absolute(cfg.Out))
	}

	if cfg.DryRun {
		paths := make([]string, 0, len(res.Planned))
		for _, p := range res.Planned {
			paths = append(paths, p.RelPath)
		}
		printPlan(cmd.OutOrStdout(), absolute(cfg.Out), paths)
		return nil
	}
	logger.Info("generated client",
		slog.String("out", absolute(cfg.Out)),
		slog.Int("operations", res.Operations),
		slog.Int("models", res.Models),
		slog.Int("files", len(res.Planned)),
	)
	return nil
}

// specUsageError turns a structured document error into a readable usage
// error; anything else passes through.
func specUsageError(err error) error {
	var se *spec.SpecError
	if !errors.As(err, &se) {
		return err
	}
	msg := fmt.Sprintf("spec: %s", se.Message)
	if se.Location != "" {
		msg = fmt.Sprintf("%s\nLocation: %s", msg, se.Location)
	}
	if se.JSONPointer != "" {
		msg = fmt.Sprintf("%s\nPointer: %s", msg, se.JSONPointer)
	}
	return newUsageError(msg)
}

func absolute(p string) string {
	if ap, err := filepath.Abs(p); err == nil {
		return ap
	}
	return p
}

func printPlan(w io.Writer, outDir string, relPaths []string) {
	fmt.Fprintf(w, "Planned writes to %s (%d files):\n", outDir, len(relPaths))
	for _, p := range relPaths {
		fmt.Fprintf(w, "- %s\n", p)
	}
}

func wrapOutputError(err error, outDir string) error {
	lower := strings.ToLower(err.Error())
	if strings.Contains(lower, "already exists") || strings.Contains(lower, "permission") ||
		strings.Contains(lower, "read-only") || strings.Contains(lower, "mkdir") || strings.Contains(lower, "rename") {
		return newUsageError(fmt.Sprintf("output error for %s: %v\nHint: choose a different --out or use --force when appropriate.", outDir, err))
	}
	return err
}

func applyGenerateConfigFromFile(cfg *GenerateConfig, configPath string) error {
	return readConfigFile(configPath, func(key, normalized string, value any) error {
		fieldErr := func(err error) error {
			return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
		}
		var str *string
		var list *[]string
		var flag *bool
		switch normalized {
		case "input":
			str = &cfg.Input
		case "out":
			str = &cfg.Out
		case "module":
			str = &cfg.Module
		case "package":
			str = &cfg.Package
		case "runtime":
			str = &cfg.Runtime
		case "logformat":
			str = &cfg.LogFormat
		case "includetags":
			list = &cfg.IncludeTags
		case "excludetags":
			list = &cfg.ExcludeTags
		case "methods":
			list = &cfg.Methods
		case "paths":
			list = &cfg.Paths
		case "emitendpoints":
			flag = &cfg.EmitEndpoints
		case "allowfilerefs":
			flag = &cfg.AllowFileRefs
		case "dryrun":
			flag = &cfg.DryRun
		case "force":
			flag = &cfg.Force
		case "verbose":
			flag = &cfg.Verbose
		case "timeout":
			s, err := valueAsString(value)
			if err != nil {
				return fieldErr(err)
			}
			d, err := time.ParseDuration(s)
			if err != nil {
				return fieldErr(err)
			}
			cfg.Timeout = d
			return nil
		default:
			return newUsageError(fmt.Sprintf("config file %q: unknown field %q", configPath, key))
		}

		switch {
		case str != nil:
			v, err := valueAsString(value)
			if err != nil {
				return fieldErr(err)
			}
			*str = v
		case list != nil:
			v, err := valueAsStringSlice(value)
			if err != nil {
				return fieldErr(err)
			}
			*list = v
		case flag != nil:
			v, err := valueAsBool(value)
			if err != nil {
				return fieldErr(err)
			}
			*flag = v
		}
		return nil
	})
}
