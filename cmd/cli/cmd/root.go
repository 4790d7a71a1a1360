// Package cmd provides the CLI commands for tradecalc.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tradecalc/core/calculator"
	"tradecalc/internal/config"
	"tradecalc/internal/errors"
	"tradecalc/internal/logging"
)

// Version is overridden at build time with -ldflags "-X tradecalc/cmd/cli/cmd.Version=..."
var Version = "0.1.0"

// options are the global flags
type options struct {
	cfgFile string
	verbose bool
	format  string
	noNotes bool

	registry *calculator.Registry
}

// Execute runs the CLI
func Execute() error {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		if errors.IsType(err, errors.TypeConfig) {
			fmt.Fprintln(root.ErrOrStderr(), "Inspect it with 'tradecalc config show' or reset it with 'tradecalc config init --force'.")
		}
		return err
	}
	return nil
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &options{registry: calculator.Default()}

	root := &cobra.Command{
		Use:   "tradecalc",
		Short: "Residential trade estimates: airflow, loads, pipes and roofing",
		Long: `tradecalc turns field measurements into trade estimates.

Every tool accepts measurements with their units and never fails on bad
input: unreadable numbers count as zero and unknown choices fall back to
their defaults, with a note saying so.

Examples:
  tradecalc airflow --floor-area 500 --ceiling-height 8 --ach 6
  tradecalc sheathing --length 20 --width 30 --pitch 6:12
  tradecalc shingle --length 40 --width 30 --pitch-type angle --pitch-value 30
  tradecalc batch house.hcl --format pdf --out house.pdf
  tradecalc serve`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initConfig(false)
		},
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.tradecalc.json)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().StringVarP(&opts.format, "format", "f", "", "output format (text, json, yaml, markdown, pdf, xlsx)")
	root.PersistentFlags().BoolVar(&opts.noNotes, "no-notes", false, "hide input sanitizing notes")

	for _, desc := range opts.registry.Describe() {
		root.AddCommand(newToolCmd(opts, desc))
	}
	root.AddCommand(newToolsCmd(opts))
	root.AddCommand(newBatchCmd(opts))
	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newVersionCmd())
	root.AddCommand(newConfigCmd(opts))

	return root
}

func (o *options) configPath() string {
	if o.cfgFile != "" {
		return o.cfgFile
	}
	return config.DefaultPath()
}

// initConfig builds the effective configuration. With skipFile the config
// file is not read, so that a broken file can still be rewritten.
func (o *options) initConfig(skipFile bool) error {
	if err := config.LoadDotEnv(); err != nil {
		return errors.Config("load .env", err)
	}

	cfg := config.Default()
	if !skipFile {
		var err error
		if cfg, err = config.Load(o.configPath()); err != nil {
			return errors.Config("load "+o.configPath(), err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return err
	}

	if o.verbose {
		cfg.Logging.Level = "debug"
	}
	if o.noNotes {
		cfg.Output.ShowNotes = false
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging.WithDefaultLevel("warn")); err != nil {
		logging.Warn("logging config rejected, keeping defaults", zap.Error(err))
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tradecalc version %s\n", Version)
		},
	}
}
