package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"shardpack/internal/config"
	"shardpack/internal/logging"
	"shardpack/internal/pipeline"
)

func newBuildCommand(configFlag *string) *cobra.Command {
	var (
		dataDirectory   string
		outputDirectory string
		numShards       int
		numThreads      int
		validationSize  float64
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Shard an image directory into train/validation record files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := config.Load(*configFlag)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("data-directory") {
				cfg.Paths.DataDir = dataDirectory
			}
			if cmd.Flags().Changed("output-directory") {
				cfg.Paths.OutputDir = outputDirectory
			}
			if cmd.Flags().Changed("num-shards") {
				cfg.Build.NumShards = numShards
			}
			if cmd.Flags().Changed("num-threads") {
				cfg.Build.NumThreads = numThreads
			}
			if cmd.Flags().Changed("validation-size") {
				cfg.Build.ValidationSize = validationSize
			}

			if cfg.Paths.DataDir == "" {
				return errors.New("data directory is required (set --data-directory or paths.data_dir)")
			}
			if cfg.Paths.OutputDir == "" {
				return errors.New("output directory is required (set --output-directory or paths.output_dir)")
			}
			if err := cfg.Normalize(); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			summary, err := pipeline.New(cfg, nil, logger).Run(cmd.Context())
			if err != nil {
				return err
			}

			renderSummary(cmd, summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDirectory, "data-directory", "", "Directory of input images")
	cmd.Flags().StringVar(&outputDirectory, "output-directory", "", "Directory receiving shard files")
	cmd.Flags().IntVar(&numShards, "num-shards", 0, "Total shard files per split")
	cmd.Flags().IntVar(&numThreads, "num-threads", 0, "Concurrent workers (must divide num-shards)")
	cmd.Flags().Float64Var(&validationSize, "validation-size", 0, "Fraction of files reserved for validation")

	return cmd
}

func renderSummary(cmd *cobra.Command, summary *pipeline.Summary) {
	out := cmd.OutOrStdout()

	if summary.Records == 0 {
		fmt.Fprintln(out, "No input files found; nothing written.")
		return
	}

	rows := make([][]string, 0, 8)
	for _, split := range summary.Splits {
		for _, shard := range split.Shards {
			rows = append(rows, []string{
				split.Split,
				fmt.Sprintf("%05d", shard.Index),
				strconv.Itoa(shard.Records),
				shard.Path,
			})
		}
	}

	writeTable(out,
		[]string{"Split", "Shard", "Records", "Path"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft},
	)
	fmt.Fprintf(out, "Wrote %d records from %d files in %s\n",
		summary.Records, summary.FilesFound, summary.Duration.Round(summaryDurationUnit))
	if summary.RunID != "" {
		fmt.Fprintf(out, "Manifest run %s\n", summary.RunID)
	}
}
