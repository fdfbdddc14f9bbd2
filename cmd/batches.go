package main

import (
	"github.com/spf13/cobra"
)

var batchesLimit int

var batchesCmd = &cobra.Command{
	Use:   "batches",
	Short: "List import batches, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		batches, err := st.ListImportBatches(ctx, batchesLimit)
		if err != nil {
			return err
		}
		return printJSON(batches)
	},
}

func init() {
	batchesCmd.Flags().IntVar(&batchesLimit, "limit", 20, "maximum batches to list")
	rootCmd.AddCommand(batchesCmd)
}
