package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/evelink/evelink/pkg/linkmgr"
)

func newBatchCmd() *cobra.Command {
	var (
		operation    string
		file         string
		count        int
		delaySeconds float64
		dryRun       bool
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Process transition requests from a file, one per line",
		Long: `Process a batch file of transition requests. Each line is either

  device1_id,interface1_id,device2_id,interface2_id   (a link, explicit IDs)
  device_name,interface_name                          (resolved via the API)

Blank lines and lines starting with # are skipped. Line failures never stop
the batch; the exit status is nonzero when any line failed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			op := linkmgr.Op(operation)
			if !op.Valid() {
				return fmt.Errorf("invalid operation %q (must be suspend, resume, or flap)", operation)
			}

			lab, err := requireLab()
			if err != nil {
				return err
			}

			in, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open batch file: %w", err)
			}
			defer in.Close()

			runner, closeRunner, err := newRunner()
			if err != nil {
				return err
			}
			defer closeRunner()

			// Connected up-front: name records need the API, and an
			// authentication failure should abort before any transition.
			client, err := connectAPI(ctx)
			if err != nil {
				return err
			}

			exec := newExecutor(runner, lab)
			flapper := linkmgr.NewFlapper(exec, logger)
			resolver := linkmgr.NewResolver(client, lab, logger)

			report := func(lr linkmgr.LineReport) {
				if lr.Result.OK {
					fmt.Printf("Line %d: %s (for %s)\n", lr.Line, lr.Result.Message, lr.Text)
				} else {
					fmt.Printf("Line %d: %s - %s (for %s)\n", lr.Line, red("failed"), lr.Result.Message, lr.Text)
				}
			}
			batch := linkmgr.NewBatchRunner(exec, flapper, resolver, logger, report)

			outcome, err := batch.Run(ctx, in, linkmgr.BatchRequest{
				Op:     op,
				DryRun: dryRun,
				Count:  count,
				Delay:  time.Duration(delaySeconds * float64(time.Second)),
			})
			if err != nil {
				return err
			}

			fmt.Printf("\nBatch processing complete:\n")
			fmt.Printf("  Successful operations: %d\n", outcome.Succeeded)
			fmt.Printf("  Failed operations:     %d\n", outcome.Failed)

			if outcome.Failed > 0 {
				return fmt.Errorf("batch completed with %d failed operations", outcome.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&operation, "operation", "o", "", "operation to perform: suspend, resume, or flap")
	cmd.Flags().StringVarP(&file, "file", "f", "", "batch file path")
	cmd.Flags().IntVarP(&count, "count", "c", 1, "flap cycles per interface (flap only)")
	cmd.Flags().Float64Var(&delaySeconds, "delay", 1.0, "seconds between suspend and resume (flap only)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report actions without applying them")
	cmd.MarkFlagRequired("operation")
	cmd.MarkFlagRequired("file")
	return cmd
}
