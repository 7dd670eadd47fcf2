package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"m3ukit/internal/merge"
	"m3ukit/internal/playlist"
)

func newMergeCommand(ctx *commandContext) *cobra.Command {
	var (
		sourcesPath string
		outputPath  string
		noConfig    bool
		keepOrder   bool
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "merge [playlist...]",
		Short: "Merge playlists by exact name within matching groups",
		Long: `Merge combines playlists group by group. Channels with the same name in
the same group merge into one entry carrying the union of their addresses;
the metadata line of the last source wins. New channels are inserted
right after the channel they followed in their own source, so each
source's local ordering survives the merge.`,
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

			engine := merge.NewEngine(merge.PolicyExact)
			for _, src := range sources {
				engine.SetHeader(src.Header)
				engine.Add(src.Records)
				logger.Debug("merged source", "source", src.Name, "channels", len(src.Records))
			}

			p := engine.Playlist()
			var buf bytes.Buffer
			opts := playlist.WriteOptions{
				StripConfig: noConfig || cfg.Output.StripConfig,
				KeepOrder:   keepOrder || !cfg.Output.SortURLs,
			}
			if err := playlist.Write(&buf, p, opts); err != nil {
				return fmt.Errorf("serialize playlist: %w", err)
			}
			if err := writeOutput(outputPath, localPaths(sources), force, buf.Bytes()); err != nil {
				return err
			}

			logger.Info("merge complete",
				"sources", len(sources),
				"channels", engine.Len(),
				"output", outputPath)
			fmt.Fprintf(cmd.OutOrStdout(), "Merged %d sources into %d channels; wrote %s\n", len(sources), engine.Len(), outputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&sourcesPath, "sources", "", "YAML file listing named playlist sources")
	cmd.Flags().StringVar(&outputPath, "output", "", "Output file path")
	cmd.Flags().BoolVarP(&noConfig, "no-config", "n", false, "Drop directive lines between #EXTINF and the address")
	cmd.Flags().BoolVar(&keepOrder, "keep-order", false, "Keep addresses in first-seen order instead of sorting them")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing output file")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
