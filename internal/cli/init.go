package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// InitConfig captures the options for the init command.
type InitConfig struct {
	OutputPath string
	Force      bool
}

var initRunner = runInit

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a sample pachcagen configuration file",
		Long:  "Scaffold a commented pachcagen configuration file that documents the generate options.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := cmd.Flags().GetString("out")
			if err != nil {
				return err
			}
			force, err := cmd.Flags().GetBool("force")
			if err != nil {
				return err
			}
			return initRunner(cmd, &InitConfig{OutputPath: out, Force: force})
		},
	}

	cmd.Flags().String("out", "pachcagen.yaml", "Where to write the sample config file")
	cmd.Flags().Bool("force", false, "Overwrite the target file if it already exists")

	return cmd
}

func runInit(cmd *cobra.Command, cfg *InitConfig) error {
	out := strings.TrimSpace(cfg.OutputPath)
	if out == "" {
		out = "pachcagen.yaml"
	}
	absPath, err := filepath.Abs(out)
	if err != nil {
		return fmt.Errorf("init: resolve output path: %w", err)
	}

	if st, err := os.Stat(absPath); err == nil && !cfg.Force {
		if st.Mode().IsRegular() {
			return newUsageError(fmt.Sprintf("init: %q already exists (use --force to overwrite)", absPath))
		}
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return newUsageError(fmt.Sprintf("init: cannot create parent directory: %v", err))
	}

	content := strings.TrimSpace(sampleConfigYAML) + "\n"

	tmp := absPath + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return newUsageError(fmt.Sprintf("init: cannot write temp file: %v\nHint: choose a different --out or check directory permissions.", err))
	}
	if err := os.Rename(tmp, absPath); err != nil {
		_ = os.Remove(tmp)
		return newUsageError(fmt.Sprintf("init: cannot place file at %s: %v", absPath, err))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample config to %s\n", absPath)
	return nil
}

// sampleConfigYAML documents every key the generate command accepts.
const sampleConfigYAML = `# pachcagen configuration (YAML)
# Command-line flags override config values.

# Path or URL to the OpenAPI document (http/https or local file).
# input: ./api/openapi.yaml

# Import path of the generated package. Required.
# module: example.com/app/pachca

# Output directory. Defaults to the last element of module.
# out: ./pachca

# Package name of client.go. Defaults to the last element of module.
# package: pachca

# Module that provides the transport and types runtime packages.
# runtime: github.com/pachca/pachcagen

# Only include operations with these tags (comma-separated or list).
# includeTags: [Messages, Chats]

# Exclude operations with these tags (comma-separated or list).
# excludeTags: [Bots]

# Only include these HTTP methods.
# methods: [get, post]

# Only include paths matching one of these regular expressions.
# paths: ["^/messages"]

# Also write the per-endpoint api/<tag>/ packages next to client.go.
# emitEndpoints: false

# Resolve $ref entries pointing at other local files.
# allowFileRefs: false

# Timeout for fetching a remote document.
# timeout: 30s

# Preview planned outputs without writing files.
# dryRun: false

# Overwrite existing files.
# force: false

# Enable debug logging; logFormat is auto, text or json.
# verbose: false
# logFormat: auto
`
