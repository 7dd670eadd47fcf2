package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"m3ukit/internal/merge"
	"m3ukit/internal/playlist"
)

func newRegroupCommand(ctx *commandContext) *cobra.Command {
	var (
		sourcesPath string
		outputPath  string
		noConfig    bool
		keepOrder   bool
		showStats   bool
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "regroup [playlist...]",
		Short: "Merge playlists by normalized name and regroup the result",
		Long: `Regroup merges channels across groups by normalized name: hyphens are
dropped, a trailing 台 is stripped, and case is folded, so CCTV-1, cctv1
and CCTV1 collapse into one channel. The display name keeps the variant
written with a hyphen or a trailing 台 when one exists.

Surviving channels are then regrouped: names containing CCTV go to 央视,
names containing 卫视 go to 卫视, and everything else keeps its original
group. 央视 sorts by channel number, 卫视 by first appearance.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			sources, err := loadPlaylists(cmd.Context(), cfg, args, sourcesPath)
			if err != nil {
				return err
			}

			engine := merge.NewEngine(merge.PolicyNormalized)
			for _, src := range sources {
				engine.SetHeader(src.Header)
				engine.Add(src.Records)
				logger.Debug("merged source", "source", src.Name, "channels", len(src.Records))
			}

			p := engine.Playlist()
			var buf bytes.Buffer
			opts := playlist.WriteOptions{
				StripConfig:  noConfig || cfg.Output.StripConfig,
				KeepOrder:    keepOrder || !cfg.Output.SortURLs,
				RewriteGroup: true,
			}
			if err := playlist.Write(&buf, p, opts); err != nil {
				return fmt.Errorf("serialize playlist: %w", err)
			}
			if err := writeOutput(outputPath, localPaths(sources), force, buf.Bytes()); err != nil {
				return err
			}

			logger.Info("regroup complete",
				"sources", len(sources),
				"channels", engine.Len(),
				"groups", len(p.Groups),
				"output", outputPath)
			fmt.Fprintf(cmd.OutOrStdout(), "Merged %d sources into %d channels across %d groups; wrote %s\n",
				len(sources), engine.Len(), len(p.Groups), outputPath)
			if showStats {
				fmt.Fprintln(cmd.OutOrStdout(), renderPlaylistStats(p))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sourcesPath, "sources", "", "YAML file listing named playlist sources")
	cmd.Flags().StringVar(&outputPath, "output", "", "Output file path")
	cmd.Flags().BoolVarP(&noConfig, "no-config", "n", false, "Drop directive lines between #EXTINF and the address")
	cmd.Flags().BoolVar(&keepOrder, "keep-order", false, "Keep addresses in first-seen order instead of sorting them")
	cmd.Flags().BoolVar(&showStats, "stats", false, "Print a per-group summary table")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing output file")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
