package main

import (
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sj-alumni/directory-cli/internal/model"
)

var memberCmd = &cobra.Command{
	Use:   "member",
	Short: "Inspect and manage individual member records",
}

var memberGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one member record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		m, err := st.GetMember(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return eris.Errorf("member %d not found", id)
		}
		return printJSON(m)
	},
}

var memberSearchFilter model.SearchFilter

var memberSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search members by structured filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		members, err := st.SearchMembers(ctx, memberSearchFilter)
		if err != nil {
			return err
		}
		return printJSON(members)
	},
}

var (
	listLimit  int
	listOffset int
)

var memberListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the member roster, page by page",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		members, err := st.ListMembers(ctx, listLimit, listOffset)
		if err != nil {
			return err
		}
		return printJSON(members)
	},
}

var deactivateReason string

var memberDeactivateCmd = &cobra.Command{
	Use:   "deactivate <id>",
	Short: "Hide a member from search results",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		return st.DeactivateMember(ctx, id, deactivateReason)
	},
}

var memberRestoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore a deactivated member",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		return st.RestoreMember(ctx, id)
	},
}

var historyLimit int

var memberHistoryCmd = &cobra.Command{
	Use:   "history <id>",
	Short: "Show the change history of a member",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		entries, err := st.GetChangeLog(ctx, id, historyLimit)
		if err != nil {
			return err
		}
		return printJSON(entries)
	},
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, eris.Errorf("invalid member id %q", s)
	}
	return id, nil
}

func init() {
	f := memberSearchCmd.Flags()
	f.StringVar(&memberSearchFilter.Name, "name", "", "full name substring")
	f.StringVar(&memberSearchFilter.Profession, "profession", "", "profession substring, stated or inferred")
	f.StringVar(&memberSearchFilter.Location, "location", "", "home or office city substring")
	f.StringVar(&memberSearchFilter.Batch, "batch", "", "normalized batch")
	f.StringVar(&memberSearchFilter.Chapter, "chapter", "", "school chapter substring")
	f.StringVar(&memberSearchFilter.Interests, "interests", "", "interests or sports substring")
	f.StringVar(&memberSearchFilter.Company, "company", "", "company substring")
	f.StringVar(&memberSearchFilter.Email, "email", "", "exact email")
	f.BoolVar(&memberSearchFilter.IncludeInactive, "include-inactive", false, "include deactivated members")
	f.IntVar(&memberSearchFilter.Limit, "limit", 0, "maximum results (default 100)")

	memberListCmd.Flags().IntVar(&listLimit, "limit", 50, "page size")
	memberListCmd.Flags().IntVar(&listOffset, "offset", 0, "rows to skip")

	memberDeactivateCmd.Flags().StringVar(&deactivateReason, "reason", "", "why the member is being deactivated")
	memberHistoryCmd.Flags().IntVar(&historyLimit, "limit", 100, "maximum entries")

	memberCmd.AddCommand(memberGetCmd, memberListCmd, memberSearchCmd, memberDeactivateCmd, memberRestoreCmd, memberHistoryCmd)
	rootCmd.AddCommand(memberCmd)
}
