package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show directory-wide statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := st.Stats(ctx)
		if err != nil {
			return eris.Wrap(err, "load stats")
		}
		return printJSON(stats)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
