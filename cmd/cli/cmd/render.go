package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"tradecalc/core/calculator"
	"tradecalc/core/output"
	"tradecalc/internal/config"
	"tradecalc/internal/errors"
)

// render writes results in the selected format, to out when given.
// Without --format the format follows out's extension, then the config.
func (o *options) render(cmd *cobra.Command, title string, results []calculator.Result, out string) error {
	cfg := config.Get()

	format := o.format
	if format == "" && out != "" {
		if f, ok := output.ParseFormat(strings.TrimPrefix(filepath.Ext(out), ".")); ok {
			format = string(f)
		}
	}
	if format == "" {
		format = cfg.Output.DefaultFormat
	}

	if cfg.Output.ReportTitle != "" && title == "" {
		title = cfg.Output.ReportTitle
	}
	f, err := output.New(format, output.Options{Title: title, ShowNotes: cfg.Output.ShowNotes})
	if err != nil {
		return err
	}

	if out == "" {
		if f.Format().Binary() {
			return errors.Newf(errors.TypeInput, "%s output needs --out", f.Format())
		}
		return f.Render(cmd.OutOrStdout(), results)
	}

	if !filepath.IsAbs(out) && cfg.Output.Directory != "" {
		out = filepath.Join(cfg.Output.Directory, out)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return err
	}
	file, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := f.Render(file, results); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%s)\n", out, f.Format())
	return nil
}
