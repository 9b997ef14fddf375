package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"rezeptex/pkg/rezeptex"
	"rezeptex/pkg/rezeptex/store"
)

func newImportCommand(state *cliState) *cobra.Command {
	var skipImages bool

	cmd := &cobra.Command{
		Use:   "import [workbook.xlsx]",
		Short: "Import a recipe workbook into the local store",
		Long: `Import extracts every recipe sheet of the workbook and replaces the
stored record for each, including its image list. Sheets whose images
cannot be extracted are still imported without images; the import only
fails when the workbook itself is unreadable.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := rezeptex.DefaultOptions()
			if len(state.cfg.ExcludeSheets) > 0 {
				opts.ExcludeSheets = state.cfg.ExcludeSheets
			}
			if state.cfg.TOCSheet != "" {
				opts.TOCSheet = state.cfg.TOCSheet
			}
			opts.SkipImageData = skipImages
			opts.Logger = state.logger

			book, report, err := rezeptex.Extract(args[0], opts)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			st, err := store.Open(state.cfg.StorePath, state.logger)
			if err != nil {
				return err
			}
			defer st.Close()

			importID := uuid.NewString()
			withImages := 0
			for _, recipe := range book.Recipes {
				if err := st.SaveRecipe(cmd.Context(), importID, recipe); err != nil {
					return fmt.Errorf("save %q: %w", recipe.SheetName, err)
				}
				if len(recipe.Images) > 0 {
					withImages++
				}
			}

			state.logger.Info("import finished",
				"book", book.BookName,
				"import_id", importID,
				"recipes", len(book.Recipes),
				"sheets_mapped", report.Mapped())
			fmt.Printf("imported %d recipes, %d with images\n", len(book.Recipes), withImages)
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipImages, "skip-images", false, "Import recipe text only, without image payloads")
	return cmd
}
