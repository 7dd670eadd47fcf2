package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"m3ukit/internal/resolve"
	"m3ukit/internal/source"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var (
		inputPath  string
		outputPath string
		workers    int
		timeoutSec int
		retries    int
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Rewrite stream addresses to their final redirect targets",
		Long: `Resolve probes every distinct stream address in a playlist, follows HTTP
redirects without downloading stream bodies, and rewrites each address
line to its final target. Addresses that stay unreachable after all retry
rounds pass through unchanged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			opts := resolve.Options{
				Workers:      cfg.Resolve.Workers,
				Timeout:      cfg.ResolveTimeout(),
				MaxRedirects: cfg.Resolve.MaxRedirects,
				Retries:      cfg.Resolve.Retries,
				RetryDelay:   cfg.RetryDelay(),
				UserAgent:    cfg.Resolve.UserAgent,
			}
			if cmd.Flags().Changed("workers") {
				opts.Workers = workers
			}
			if cmd.Flags().Changed("timeout") {
				opts.Timeout = time.Duration(timeoutSec) * time.Second
			}
			if cmd.Flags().Changed("retries") {
				opts.Retries = retries
			}
			if isatty.IsTerminal(os.Stderr.Fd()) {
				opts.Progress = newProgressRenderer()
			}

			loader := source.NewLoader(cfg.FetchTimeout())
			data, err := loader.Load(cmd.Context(), inputPath)
			if err != nil {
				return fmt.Errorf("load source %s: %w", inputPath, err)
			}

			lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
			for i, line := range lines {
				lines[i] = strings.TrimSpace(line)
			}
			candidates := resolve.CandidateURLs(lines)
			if len(candidates) == 0 {
				return fmt.Errorf("no stream addresses found in %s", inputPath)
			}

			resolver := resolve.New(logger, opts)
			results := resolver.ResolveAll(cmd.Context(), candidates)

			var resolved, media int
			for _, res := range results {
				if res.OK {
					resolved++
				}
				if res.Media {
					media++
				}
			}

			rewritten, replaced := resolve.Rewrite(lines, results)
			output := strings.Join(rewritten, "\n")

			var inputs []string
			if !source.IsRemote(inputPath) {
				inputs = append(inputs, inputPath)
			}
			if err := writeOutput(outputPath, inputs, force, []byte(output)); err != nil {
				return err
			}

			logger.Info("resolve complete",
				"addresses", len(candidates),
				"resolved", resolved,
				"media", media,
				"rewritten", replaced,
				"output", outputPath)
			fmt.Fprintf(cmd.OutOrStdout(), "Resolved %d of %d addresses (%d media, %d rewritten); wrote %s\n",
				resolved, len(candidates), media, replaced, outputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "Input playlist path or URL")
	cmd.Flags().StringVar(&outputPath, "output", "", "Output file path")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent probe workers")
	cmd.Flags().IntVar(&timeoutSec, "timeout", 0, "Per-probe timeout in seconds")
	cmd.Flags().IntVar(&retries, "retries", 0, "Retry rounds for failed addresses")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing output file")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

// newProgressRenderer returns a progress callback backed by a terminal
// progress bar. Each retry round gets a fresh bar sized to that round's
// pending address count.
func newProgressRenderer() func(done, total int) {
	var bar *progressbar.ProgressBar
	return func(done, total int) {
		if bar == nil || bar.GetMax() != total {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionSetDescription("probing"),
				progressbar.OptionClearOnFinish(),
			)
		}
		_ = bar.Set(done)
	}
}
