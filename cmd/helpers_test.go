package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/iksnae/stickyboard/internal"
)

// testCLI runs commands against a board database and config file in a
// temporary directory
type testCLI struct {
	t      *testing.T
	dir    string
	db     string
	config string
}

func newTestCLI(t *testing.T) *testCLI {
	t.Helper()
	t.Setenv("STICKYBOARD_API_KEY", "")
	t.Setenv("STICKYBOARD_DB", "")
	t.Setenv("STICKYBOARD_MODEL", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	dir := t.TempDir()
	return &testCLI{
		t:      t,
		dir:    dir,
		db:     filepath.Join(dir, "board.db"),
		config: filepath.Join(dir, "config.yaml"),
	}
}

// writeConfig writes a config file whose archive lives next to the database
func (c *testCLI) writeConfig(edit func(cfg *internal.Config)) {
	c.t.Helper()
	conf := internal.DefaultConfig()
	conf.Storage.Path = c.db
	conf.Storage.ArchiveDir = filepath.Join(c.dir, "archive")
	if edit != nil {
		edit(&conf)
	}
	if err := conf.Save(c.config); err != nil {
		c.t.Fatalf("failed to write config: %v", err)
	}
}

// run executes the root command and returns what it wrote to stdout
func (c *testCLI) run(args ...string) (string, error) {
	c.t.Helper()
	if _, err := os.Stat(c.config); os.IsNotExist(err) {
		c.writeConfig(nil)
	}

	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--config", c.config, "--db", c.db}, args...))

	err := rootCmd.Execute()
	return stdout.String(), err
}

// mustRun is run that fails the test on error
func (c *testCLI) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	if err != nil {
		c.t.Fatalf("%v failed: %v", args, err)
	}
	return out
}

// state reads the persisted board
func (c *testCLI) state() internal.State {
	c.t.Helper()
	db, err := internal.OpenDatabase(c.db)
	if err != nil {
		c.t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	state, _, err := internal.NewStorage(db).LoadState()
	if err != nil {
		c.t.Fatalf("failed to load state: %v", err)
	}
	return state
}

// resetFlags restores every flag to its default so commands do not leak
// values into each other
func resetFlags(c *cobra.Command) {
	for _, fs := range []*pflag.FlagSet{c.Flags(), c.PersistentFlags()} {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}
