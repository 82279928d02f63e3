package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/iksnae/mosje-chat/testutil"
)

// resetFlags restores every flag of c and its subcommands to its default
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// testEnv isolates HOME and the working directory and points the CLI at backend
type testEnv struct {
	home    string
	dbPath  string
	backend *testutil.Backend
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	home := testutil.CreateTempDir(t)
	t.Setenv("HOME", home)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(home); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return &testEnv{
		home:    home,
		dbPath:  filepath.Join(home, "prefs.db"),
		backend: testutil.NewBackend(t),
	}
}

// run executes the root command with the backend and database flags prepended
func (e *testEnv) run(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	full := append([]string{}, args...)
	full = append(full, "--server", e.backend.URL(), "--database", e.dbPath, "--timeout", "5s")
	rootCmd.SetArgs(full)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))

	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// execute runs the root command with bare args and no backend
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	rootCmd.SetArgs(args)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	err := rootCmd.Execute()
	return out.String(), err
}
