package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sj-alumni/directory-cli/internal/fetcher"
)

var (
	importDir       string
	importBatchName string
)

var importCmd = &cobra.Command{
	Use:   "import [files...]",
	Short: "Import member source files into the directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		paths := args
		if importDir != "" {
			discovered, err := fetcher.Discover(importDir)
			if err != nil {
				return err
			}
			paths = append(paths, discovered...)
		}
		if len(paths) == 0 {
			return eris.New("no source files: pass file paths or --dir")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		batch, err := initIngestor(st).Run(ctx, importBatchName, paths)
		if err != nil {
			return eris.Wrap(err, "import run")
		}

		zap.L().Info("import finished",
			zap.String("batch_id", batch.ID),
			zap.String("status", string(batch.Status)),
		)
		return printJSON(batch)
	},
}

func init() {
	importCmd.Flags().StringVar(&importDir, "dir", "", "directory to scan for source files")
	importCmd.Flags().StringVar(&importBatchName, "batch-name", "import", "label for this import batch")
	rootCmd.AddCommand(importCmd)
}
