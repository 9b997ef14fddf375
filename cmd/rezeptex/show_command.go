package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rezeptex/pkg/rezeptex/output"
	"rezeptex/pkg/rezeptex/store"
)

func newShowCommand(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "show [sheet-name]",
		Short: "Show one stored recipe as JSON",
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

			data, err := output.ToJSON(recipe, true)
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}
}
