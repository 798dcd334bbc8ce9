// Package cli implements the molgraph command line on cobra.  Commands share
// one initialisation chain (config, logger, application graph) that runs in
// the root command's PersistentPreRunE and travels to subcommands through the
// command context.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/turtacn/molgraph/internal/app"
	"github.com/turtacn/molgraph/internal/config"
	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgraph/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Output formats accepted by --output.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// annotationSkipInit marks commands that run without config or services.
const annotationSkipInit = "molgraph/skip-init"

// cliContextKey is the context key for CLIContext.
type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
	NoColor      bool
	Timeout      time.Duration
}

// CLIContext carries initialised dependencies through the command tree.
type CLIContext struct {
	App          *app.App
	Logger       logging.Logger
	OutputFormat string
	NoColor      bool
	Timeout      time.Duration
}

// JSON reports whether results should be printed as JSON.
func (c *CLIContext) JSON() bool {
	return c.OutputFormat == OutputJSON
}

// withTimeout bounds ctx by the --timeout flag.  Zero disables the bound.
func (c *CLIContext) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.Timeout)
}

// NewRootCommand creates the root command with all global flags and
// subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "molgraph",
		Short: "molgraph converts between labeled molecular graphs and molecules",
		Long: "molgraph decodes graph datasets (one-hot or code features) into molecules\n" +
			"through per-dataset vocabularies, encodes molecules back into graphs, and\n" +
			"matches coordinate registers by their pairwise-distance signature.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return nil
			}
			return cliCtx.App.Close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: search ./molgraph.yaml, ~/.molgraph, /etc/molgraph)")
	pf.StringVar(&opts.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", OutputText, "output format (text, json)")
	pf.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")
	pf.DurationVar(&opts.Timeout, "timeout", 5*time.Minute, "timeout for batch commands (0 disables)")

	cmd.AddCommand(
		NewReconstructCmd(),
		NewEncodeCmd(),
		NewMatchCmd(),
		NewVocabCmd(),
		NewServeCmd(),
		NewVersionCmd(),
	)
	return cmd
}

// persistentPreRun loads config, builds the logger and the application graph,
// then stores a CLIContext on the command.
func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	if skipInit(cmd) {
		return nil
	}

	switch opts.OutputFormat {
	case OutputText, OutputJSON:
	default:
		return errors.InvalidParam("unsupported output format").WithDetailf("output=%s", opts.OutputFormat)
	}
	if opts.NoColor {
		color.NoColor = true
	}

	cfg, err := initConfig(cmd, opts)
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger, err := logging.NewLogger(cfg.Log.LoggerConfig())
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}

	a, err := app.New(cfg, logger)
	if err != nil {
		return err
	}

	cliCtx := &CLIContext{
		App:          a,
		Logger:       logger,
		OutputFormat: opts.OutputFormat,
		NoColor:      opts.NoColor,
		Timeout:      opts.Timeout,
	}
	cmd.SetContext(context.WithValue(cmd.Context(), cliContextKey{}, cliCtx))
	return nil
}

func skipInit(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[annotationSkipInit]; ok {
			return true
		}
	}
	return cmd.Name() == "help"
}

// initConfig loads configuration with priority: flags > env > file > defaults.
func initConfig(cmd *cobra.Command, opts *RootOptions) (*config.Config, error) {
	var loadOpts []config.LoadOption
	if opts.ConfigPath != "" {
		loadOpts = append(loadOpts, config.WithConfigPath(opts.ConfigPath))
	} else {
		paths := []string{"."}
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, ".molgraph"))
		}
		paths = append(paths, "/etc/molgraph")
		loadOpts = append(loadOpts, config.WithSearchPaths(paths...))
	}
	if cmd.Flags().Changed("log-level") {
		loadOpts = append(loadOpts, config.WithOverrides(map[string]interface{}{
			"log.level": strings.ToLower(opts.LogLevel),
		}))
	}
	return config.Load(loadOpts...)
}

// GetCLIContext extracts CLIContext from a command's context.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.Internal("command context is nil")
	}
	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, errors.Internal("CLIContext not found in command context")
	}
	return cliCtx, nil
}

// Execute is the main entry point for the CLI application.
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		PrintError(rootCmd, err)
		return err
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Output helpers
// ─────────────────────────────────────────────────────────────────────────────

// printJSON outputs data as indented JSON to stdout.
func printJSON(cmd *cobra.Command, data interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// renderTable writes headers and rows as a table.
func renderTable(w io.Writer, headers []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

// statusCell renders a result status, green for success and red otherwise.
func statusCell(code string) string {
	if code == "" {
		return color.GreenString("OK")
	}
	return color.RedString(code)
}

// PrintError writes a formatted error message to stderr.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())
}

//Personal.AI order the ending
