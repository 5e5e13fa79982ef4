package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"rangepresets/preset"
)

// sceneFile is the on-disk description of a timeline used by derive.
type sceneFile struct {
	FrameStart      int                  `toml:"frame_start"`
	FrameEnd        int                  `toml:"frame_end"`
	LastRangeLength *int                 `toml:"last_range_length"`
	Presets         []preset.RangePreset `toml:"presets"`
	Markers         []preset.Marker      `toml:"markers"`
}

func loadSceneFile(path string) (*sceneFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	var scene sceneFile
	if err := toml.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}
	sort.SliceStable(scene.Markers, func(i, j int) bool {
		return scene.Markers[i].Frame < scene.Markers[j].Frame
	})
	return &scene, nil
}

func newDeriveCommand(ctx *commandContext) *cobra.Command {
	var lengthFlag int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "derive <scene.toml>",
		Short: "Derive frame range presets from a scene's timeline markers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			scene, err := loadSceneFile(args[0])
			if err != nil {
				return err
			}

			length := cfg.Presets.LastRangeLength
			if scene.LastRangeLength != nil {
				length = *scene.LastRangeLength
			}
			if cmd.Flags().Changed("last-range-length") {
				length = lengthFlag
			}

			store := preset.NewStore()
			for _, p := range scene.Presets {
				if _, err := store.Add(p.Name, p.Start, p.End); err != nil {
					return fmt.Errorf("scene preset %q: %w", p.Name, err)
				}
			}
			res, err := store.DeriveFromMarkers(scene.Markers, length)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			fmt.Fprintln(out, renderPresetTable(res.Created))
			for _, s := range res.Skipped {
				fmt.Fprintf(out, "skipped marker at frame %d (%q): %s\n", s.Marker.Frame, s.Name, s.Kind)
			}
			fmt.Fprintf(out, "Created %d presets from %d markers.\n", res.CreatedCount(), len(scene.Markers))
			return nil
		},
	}

	cmd.Flags().IntVar(&lengthFlag, "last-range-length", 0, "Frames covered by the last marker's range")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
