package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sj-alumni/directory-cli/internal/match"
)

var (
	dedupeLimit     int
	mergePrimary    int64
	mergeDuplicates []int64
)

var dedupeCmd = &cobra.Command{
	Use:   "dedupe",
	Short: "List potential duplicate member pairs for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		pairs, err := match.NewEngine(st, cfg.Match).FindPotentialDuplicates(ctx, dedupeLimit)
		if err != nil {
			return err
		}

		zap.L().Info("duplicate candidates", zap.Int("count", len(pairs)))
		return printJSON(pairs)
	},
}

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge duplicate members into a primary record",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if len(mergeDuplicates) == 0 {
			return eris.New("at least one --duplicate id is required")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		result, err := match.NewEngine(st, cfg.Match).MergeDuplicates(ctx, mergePrimary, mergeDuplicates)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

func init() {
	dedupeCmd.Flags().IntVar(&dedupeLimit, "limit", 50, "maximum pairs to list")

	mergeCmd.Flags().Int64Var(&mergePrimary, "primary", 0, "id of the record to keep (required)")
	mergeCmd.Flags().Int64SliceVar(&mergeDuplicates, "duplicate", nil, "id of a duplicate to merge (repeatable)")
	_ = mergeCmd.MarkFlagRequired("primary")
	dedupeCmd.AddCommand(mergeCmd)

	rootCmd.AddCommand(dedupeCmd)
}
