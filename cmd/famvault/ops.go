package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/famvault/famvault/internal/ops"
)

func healthCMD() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe backend health and print the rollup",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClient(cmd)
			if err != nil {
				return err
			}
			monitor := ops.NewMonitor(client, log.New(os.Stderr, "[OPS] ", log.LstdFlags))
			printJSON(monitor.SystemHealth(cmd.Context()))
			return nil
		},
	}
}

func jobsCMD() *cobra.Command {
	var stats bool
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List backend jobs, or summarize with --stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClient(cmd)
			if err != nil {
				return err
			}
			if stats {
				monitor := ops.NewMonitor(client, log.New(os.Stderr, "[OPS] ", log.LstdFlags))
				s, err := monitor.JobStats(cmd.Context())
				if err != nil {
					return err
				}
				printJSON(s)
				return nil
			}
			filter, err := jobFilterFromFlags(cmd)
			if err != nil {
				return err
			}
			jobs, err := client.ListJobs(cmd.Context(), filter)
			if err != nil {
				return err
			}
			printJSON(jobs)
			return nil
		},
	}
	cmd.Flags().BoolVar(&stats, "stats", false, "print running/completed/failed counters")
	cmd.Flags().Bool("running", false, "only running jobs")
	cmd.Flags().String("success", "", "filter by outcome: true or false")
	cmd.Flags().String("script", "", "filter by exact script path")
	cmd.Flags().Int("limit", 50, "page size")
	return cmd
}
