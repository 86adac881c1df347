package cli

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pachca/pachcagen/internal/emitter/goemitter"
	"github.com/pachca/pachcagen/internal/extract"
	"github.com/pachca/pachcagen/internal/logging"
	"github.com/pachca/pachcagen/internal/render"
)

// AggregateConfig captures the options for the aggregate command.
type AggregateConfig struct {
	Dir       string
	Out       string
	Package   string
	Transport string
	Force     bool
	Verbose   bool
	LogFormat string
}

var aggregateRunner = runAggregate

func newAggregateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Merge per-endpoint Go files into one client.go",
		Long: "Collect every function declared below --dir, together with its imports, " +
			"and write them into a single file around one Client type. Use --out - to print to stdout.",
		Example: strings.TrimSpace(`  pachcagen aggregate --dir ./pachca/api --out ./pachca/client.go --package pachca`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &AggregateConfig{}
			var err error
			get := func(name string, dst *string) {
				if err == nil {
					*dst, err = cmd.Flags().GetString(name)
					*dst = strings.TrimSpace(*dst)
				}
			}
			get("dir", &cfg.Dir)
			get("out", &cfg.Out)
			get("package", &cfg.Package)
			get("transport", &cfg.Transport)
			get("log-format", &cfg.LogFormat)
			if err != nil {
				return err
			}
			if cfg.Force, err = cmd.Flags().GetBool("force"); err != nil {
				return err
			}
			if cfg.Verbose, err = cmd.Flags().GetBool("verbose"); err != nil {
				return err
			}
			if cfg.Dir == "" {
				return newUsageError("aggregate: --dir is required")
			}
			if cfg.Package == "" {
				return newUsageError("aggregate: --package is required")
			}
			if _, err := logging.ParseFormat(cfg.LogFormat); err != nil {
				return newUsageError("aggregate: " + err.Error())
			}
			return aggregateRunner(cmd, cfg)
		},
	}

	cmd.Flags().String("dir", "", "Directory holding the per-endpoint files")
	cmd.Flags().String("out", "client.go", "File to write, or - for stdout")
	cmd.Flags().String("package", "", "Package name of the aggregate file")
	cmd.Flags().String("transport", path.Join(goemitter.DefaultRuntimePath, "transport"), "Import path of the transport package")
	cmd.Flags().Bool("force", false, "Overwrite the output file if it exists")

	return cmd
}

func runAggregate(cmd *cobra.Command, cfg *AggregateConfig) error {
	format, _ := logging.ParseFormat(cfg.LogFormat)
	logger := logging.New(cmd.ErrOrStderr(), format, cfg.Verbose)

	var skip []string
	if cfg.Out != "-" {
		skip = append(skip, cfg.Out)
	}
	found, err := extract.Dir(cfg.Dir, skip...)
	if err != nil {
		return newUsageError(fmt.Sprintf("aggregate: %v", err))
	}
	logger.Debug("extracted", "dir", cfg.Dir, "functions", len(found.Functions), "imports", len(found.Imports))

	src, err := render.Render(found.Functions, found.Imports, render.Options{
		Package:         cfg.Package,
		TransportImport: cfg.Transport,
		Header:          goemitter.Header,
	})
	if err != nil {
		return newUsageError(fmt.Sprintf("aggregate: %v", err))
	}

	if cfg.Out == "-" {
		_, err := cmd.OutOrStdout().Write(src)
		return err
	}
	abs := absolute(cfg.Out)
	if err := goemitter.WriteFiles(filepath.Dir(abs), map[string][]byte{filepath.Base(abs): src}, cfg.Force); err != nil {
		return wrapOutputError(err, abs)
	}
	logger.Info("wrote aggregate client", "path", abs, "functions", len(found.Functions))
	return nil
}
