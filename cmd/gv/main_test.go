package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraitsura/groups_viewer/pkg/model"
)

// resetFlags undoes the previous run; cobra keeps flag state between Execute calls
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "gv version "+version+"\n", out)
}

func TestListJSON_FiltersFixture(t *testing.T) {
	out, err := execute(t, "list", "--delay", "0", "--log-level", "error",
		"--privacy", "closed", "--output", "json")
	require.NoError(t, err)

	var groups []model.Group
	require.NoError(t, json.Unmarshal([]byte(out), &groups))
	require.NotEmpty(t, groups)
	for _, g := range groups {
		assert.True(t, g.Closed, "group %d should be closed", g.ID)
	}
}

func TestListTable_UnknownColorIsEmpty(t *testing.T) {
	out, err := execute(t, "list", "--delay", "0", "--log-level", "error",
		"--color", "no-such-color")
	require.NoError(t, err)
	assert.Contains(t, out, "0 of 9 groups")
}

func TestList_LoadFailureIsError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")
	_, err := execute(t, "list", "--source", missing, "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load groups")
}

func TestCheck_ReportsInvalidGroups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "groups.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id": 1, "name": "ok", "closed": false, "members_count": 3},
		{"id": 2, "name": "", "closed": true, "members_count": -1}
	]`), 0644))

	out, err := execute(t, "check", "--source", path, "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 groups are invalid")
	assert.Contains(t, out, "id 2")
	assert.Contains(t, out, "members: total 2, mean 1.0, median")
	assert.Contains(t, out, "colors: none 2")
}

func TestCheck_SummarisesFixture(t *testing.T) {
	out, err := execute(t, "check", "--delay", "0", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ 9 groups OK")
	assert.Contains(t, out, "colors: red ")
	assert.Contains(t, out, "friends: ")
}

func TestExport_RequiresTarget(t *testing.T) {
	_, err := execute(t, "export")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to export")
}

func TestExport_SQLiteRoundTrip(t *testing.T) {
	db := filepath.Join(t.TempDir(), "groups.db")
	_, err := execute(t, "export", "--delay", "0", "--log-level", "error",
		"--friends", "--sqlite", db)
	require.NoError(t, err)

	out, err := execute(t, "list", "--source", "sqlite://"+db, "--log-level", "error",
		"--output", "json")
	require.NoError(t, err)

	var groups []model.Group
	require.NoError(t, json.Unmarshal([]byte(out), &groups))
	require.NotEmpty(t, groups)
	for _, g := range groups {
		assert.True(t, g.HasFriends(), "exported group %d should have friends", g.ID)
	}
}
