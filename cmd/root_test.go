package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	expected := []string{"import", "query", "serve", "dedupe", "member", "stats", "batches"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "directory-cli", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestImportCommand_Flags(t *testing.T) {
	flag := importCmd.Flags().Lookup("dir")
	require.NotNil(t, flag, "import command should have --dir flag")

	flag = importCmd.Flags().Lookup("batch-name")
	require.NotNil(t, flag, "import command should have --batch-name flag")
	assert.Equal(t, "import", flag.DefValue)
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestDedupeCommand_Flags(t *testing.T) {
	flag := dedupeCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "dedupe command should have --limit flag")
	assert.Equal(t, "50", flag.DefValue)
}

func TestMergeCommand_Flags(t *testing.T) {
	require.NotNil(t, mergeCmd.Flags().Lookup("primary"))
	require.NotNil(t, mergeCmd.Flags().Lookup("duplicate"))
}

func TestMemberCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range memberCmd.Commands() {
		names[c.Name()] = true
	}

	expected := []string{"get", "list", "search", "deactivate", "restore", "history"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}
