package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"m3ukit/internal/match"
	"m3ukit/internal/playlist"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var (
		inputPath  string
		outputPath string
		andSpec    string
		orSpec     string
		removeMode bool
		noConfig   bool
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract or remove channels matching keyword filters",
		Long: `Extract keeps every channel whose metadata line and address satisfy the
keyword filter, or with --remove keeps every channel that does not.

A filter is two keyword expressions separated by a comma: the first is
tested against the #EXTINF line, the second against the address. Each
expression may combine keywords with && (all must appear) or || (any may
appear). --and requires both field expressions to hold, --or either.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			filter, err := parseFieldFilter(andSpec, orSpec)
			if err != nil {
				return err
			}

			sources, err := loadPlaylists(cmd.Context(), cfg, []string{inputPath}, "")
			if err != nil {
				return err
			}
			src := sources[0]

			type recordKey struct {
				info string
				url  string
			}
			seen := make(map[recordKey]struct{})
			kept := make([]*playlist.Record, 0, len(src.Records))
			for _, rec := range src.Records {
				if filter.Matches(rec) == removeMode {
					continue
				}
				key := recordKey{info: rec.Info, url: rec.URLs.Ordered()[0]}
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				kept = append(kept, rec)
			}

			var buf bytes.Buffer
			opts := playlist.WriteOptions{
				StripConfig: noConfig || cfg.Output.StripConfig,
				KeepOrder:   !cfg.Output.SortURLs,
			}
			if err := playlist.WriteRecords(&buf, src.Header, kept, opts); err != nil {
				return fmt.Errorf("serialize playlist: %w", err)
			}
			if err := writeOutput(outputPath, localPaths(sources), force, buf.Bytes()); err != nil {
				return err
			}

			logger.Info("extract complete",
				"input", inputPath,
				"output", outputPath,
				"remove", removeMode,
				"scanned", len(src.Records),
				"kept", len(kept))
			fmt.Fprintf(cmd.OutOrStdout(), "Kept %d of %d channels; wrote %s\n", len(kept), len(src.Records), outputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "Input playlist path or URL")
	cmd.Flags().StringVar(&outputPath, "output", "", "Output file path")
	cmd.Flags().StringVar(&andSpec, "and", "", `AND filter: "EXTINF-keywords,URL-keywords"`)
	cmd.Flags().StringVar(&orSpec, "or", "", `OR filter: "EXTINF-keywords,URL-keywords"`)
	cmd.Flags().BoolVarP(&removeMode, "remove", "r", false, "Keep non-matching channels instead of matching ones")
	cmd.Flags().BoolVarP(&noConfig, "no-config", "n", false, "Drop directive lines between #EXTINF and the address")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing output file")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	cmd.MarkFlagsMutuallyExclusive("and", "or")
	cmd.MarkFlagsOneRequired("and", "or")

	return cmd
}

// parseFieldFilter splits a raw "EXTINF-keywords,URL-keywords" filter spec
// into a compiled field filter. AND mode requires both field expressions
// to be non-empty; OR mode tolerates one empty side.
func parseFieldFilter(andSpec, orSpec string) (match.Filter, error) {
	spec, mode := andSpec, match.ModeAnd
	if orSpec != "" {
		spec, mode = orSpec, match.ModeOr
	}

	parts := strings.Split(spec, ",")
	if len(parts) != 2 {
		return match.Filter{}, fmt.Errorf(`filter %q: need format "EXTINF-keywords,URL-keywords"`, spec)
	}

	filter := match.NewFilter(parts[0], parts[1], mode)
	if mode == match.ModeAnd && (filter.Info.Empty() || filter.URL.Empty()) {
		return match.Filter{}, fmt.Errorf("filter %q: both keyword expressions are required with --and", spec)
	}
	return filter, nil
}
