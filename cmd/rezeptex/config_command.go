package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rezeptex/pkg/rezeptex/config"
)

func newConfigInitCommand(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "config-init",
		Short: "Write an annotated sample config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteSample(state.configPath); err != nil {
				return err
			}
			fmt.Println(state.configPath)
			return nil
		},
	}
}
