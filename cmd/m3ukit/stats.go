package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"m3ukit/internal/playlist"
)

// renderPlaylistStats builds the per-group summary table: channel count,
// address count, channels carrying more than one address, and channels
// carrying directive lines, with a closing total row.
func renderPlaylistStats(p *playlist.Playlist) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Group", "Channels", "URLs", "Multi-URL", "With Config"})

	var totalChannels, totalURLs, totalMulti, totalConfig int
	for _, group := range p.Groups {
		var urls, multi, withConfig int
		for _, rec := range group.Records {
			urls += rec.URLs.Len()
			if rec.URLs.Len() > 1 {
				multi++
			}
			if len(rec.ConfigLines) > 0 {
				withConfig++
			}
		}
		tw.AppendRow(table.Row{group.Title, len(group.Records), urls, multi, withConfig})
		totalChannels += len(group.Records)
		totalURLs += urls
		totalMulti += multi
		totalConfig += withConfig
	}
	tw.AppendRow(table.Row{"Total", totalChannels, totalURLs, totalMulti, totalConfig})

	configs := make([]table.ColumnConfig, 0, 4)
	for col := 2; col <= 5; col++ {
		configs = append(configs, table.ColumnConfig{
			Number:      col,
			Align:       text.AlignRight,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
