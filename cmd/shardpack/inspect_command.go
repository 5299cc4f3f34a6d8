package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"shardpack/internal/config"
	"shardpack/internal/manifest"
	"shardpack/internal/records"
)

func newInspectCommand(configFlag *string) *cobra.Command {
	var outputDirectory string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the latest build run and verify its shard files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := config.Load(*configFlag)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("output-directory") {
				if cfg.Paths.OutputDir, err = config.ExpandPath(outputDirectory); err != nil {
					return err
				}
			}
			if cfg.Paths.OutputDir == "" {
				return errors.New("output directory is required (set --output-directory or paths.output_dir)")
			}

			store, err := manifest.Open(cfg.Paths.OutputDir)
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.LatestRun(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if run == nil {
				fmt.Fprintln(out, "No runs recorded in", cfg.Paths.OutputDir)
				return nil
			}

			fmt.Fprintf(out, "Run %s: %s, started %s, %d records\n",
				run.ID, run.Status, run.StartedAt.Local().Format("2006-01-02 15:04:05"), run.TotalRecords)

			shards, err := store.ShardsForRun(cmd.Context(), run.ID)
			if err != nil {
				return err
			}
			if len(shards) == 0 {
				fmt.Fprintln(out, "No shards recorded for this run.")
				return nil
			}

			rows := make([][]string, 0, len(shards))
			for _, shard := range shards {
				verified := "ok"
				count, err := records.CountFile(shard.Path)
				switch {
				case err != nil:
					verified = "unreadable"
				case count != shard.RecordCount:
					verified = fmt.Sprintf("mismatch (%d on disk)", count)
				}
				rows = append(rows, []string{
					shard.Split,
					fmt.Sprintf("%05d", shard.Index),
					strconv.Itoa(shard.RecordCount),
					verified,
					shard.Path,
				})
			}

			writeTable(out,
				[]string{"Split", "Shard", "Records", "Verified", "Path"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft, alignLeft},
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&outputDirectory, "output-directory", "", "Directory containing shard files and manifest")

	return cmd
}
