package main

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sj-alumni/directory-cli/internal/query"
)

var queryIncludeInactive bool

var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Answer a natural-language directory question",
	Long:  `Examples: "who lives in Makati?", "I need a lawyer urgently", "show me batch 95-S".`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		resp, err := query.NewEngine(st).SearchWithOptions(ctx, strings.Join(args, " "),
			query.Options{IncludeInactive: queryIncludeInactive})
		if err != nil {
			return eris.Wrap(err, "query")
		}
		return printJSON(resp)
	},
}

func init() {
	queryCmd.Flags().BoolVar(&queryIncludeInactive, "include-inactive", false, "include deactivated members")
	rootCmd.AddCommand(queryCmd)
}
