package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"rezeptex/pkg/rezeptex/store"
)

// extByMediaType inverts the media-type table for output file naming.
var extByMediaType = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/bmp":  ".bmp",
	"image/webp": ".webp",
}

func newExportImagesCommand(state *cliState) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export-images [sheet-name]",
		Short: "Write a stored recipe's image payloads to files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Open(state.cfg.StorePath, state.logger)
			if err != nil {
				return err
			}
			defer st.Close()

			recipe, err := st.GetRecipe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(recipe.Images) == 0 {
				return fmt.Errorf("recipe %q has no images", args[0])
			}

			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("ensure output directory: %w", err)
			}

			for i, img := range recipe.Images {
				ext := extByMediaType[img.MediaType]
				if ext == "" {
					ext = ".png"
				}
				name := filepath.Join(dir, fmt.Sprintf("%s_%d%s", recipe.SheetName, i+1, ext))
				if err := os.WriteFile(name, img.Data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", name, err)
				}
				fmt.Println(name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Output directory")
	return cmd
}
