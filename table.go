package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"rangepresets/preset"
)

// renderPresetTable lists presets as name/start/end rows, frames right-aligned.
// StyleRounded renders the header row in upper case.
func renderPresetTable(presets []preset.RangePreset) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Name", "Start", "End"})
	for _, p := range presets {
		tw.AppendRow(table.Row{p.Name, p.Start, p.End})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
