package main

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"rezeptex/pkg/rezeptex/output"
	"rezeptex/pkg/rezeptex/store"
)

func newListCommand(state *cliState) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Open(state.cfg.StorePath, state.logger)
			if err != nil {
				return err
			}
			defer st.Close()

			summaries, err := st.ListRecipes(cmd.Context())
			if err != nil {
				return err
			}

			// Recipe titles are German; plain byte order misplaces umlauts.
			col := collate.New(language.German)
			sort.SliceStable(summaries, func(i, j int) bool {
				return col.CompareString(summaries[i].Title, summaries[j].Title) < 0
			})

			if asJSON {
				data, err := output.ToJSON(summaries, true)
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.AppendHeader(table.Row{"Recipe", "Category", "Images", "Updated"})
			for _, sm := range summaries {
				updated := ""
				if !sm.UpdatedAt.IsZero() {
					updated = sm.UpdatedAt.Local().Format("2006-01-02 15:04")
				}
				tw.AppendRow(table.Row{sm.Title, sm.Category, sm.ImageCount, updated})
			}
			tw.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}
