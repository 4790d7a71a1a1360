package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"tradecalc/core/job"
	"tradecalc/internal/logging"
)

func newBatchCmd(opts *options) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "batch <job-file>",
		Short: "Run every estimate of a job file",
		Long: `Run every estimate of a job file and render the results together.

Job files may be HCL (.hcl), HCL JSON (.json), YAML (.yaml, .yml) or a
spreadsheet (.xlsx) with one sheet per tool and a header row of field names.

  title = "Smith residence"

  estimate "sheathing" "garage" {
    length = 20
    width  = 30
    pitch  = "6:12"
  }

Estimates naming an unknown tool are reported and the rest still run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()

			j, err := job.Load(args[0])
			if err != nil {
				return err
			}

			log := logging.With(zap.String("file", args[0]))
			outcomes := job.Run(opts.registry, j)
			summary := job.Summarize(outcomes)
			log.Info("batch complete",
				zap.Int("total", summary.Total),
				zap.Int("failed", summary.Failed),
				zap.Int("notes", summary.Notes),
				zap.Duration("duration", time.Since(start)),
			)

			if err := opts.render(cmd, j.Title, job.Results(outcomes), out); err != nil {
				return err
			}

			if err := job.Err(outcomes); err != nil {
				for _, e := range multierr.Errors(err) {
					log.Warn("estimate failed", zap.Error(e))
					fmt.Fprintf(cmd.ErrOrStderr(), "  %v\n", e)
				}
				return fmt.Errorf("%d of %d estimates failed", summary.Failed, summary.Total)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to a file instead of stdout")

	return cmd
}
