package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/danieljhkim/wdkit/internal/clock"
	"github.com/danieljhkim/wdkit/internal/config"
	"github.com/danieljhkim/wdkit/internal/location"
)

// setupTestEnv points wdkit at a temporary root with no overrides.
func setupTestEnv(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	t.Setenv("WDKIT_ROOT", root)
	for _, key := range []string{
		"WDKIT_CONTROL_URL", "WDKIT_BROWSER_BIN", "WDKIT_HEADLESS",
		"WDKIT_PAGE_URL", "WDKIT_TIMEOUT", "WDKIT_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
	return root
}

// resetFlags clears flag values and Changed markers left by earlier runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// executeCommand runs the root command with args and returns its output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	color.NoColor = true
	resetFlags(rootCmd)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}

// useClock swaps the time source for the duration of the test.
func useClock(t *testing.T, c clock.Clock) {
	t.Helper()
	prev := timeSource
	timeSource = c
	t.Cleanup(func() { timeSource = prev })
}

// fakeSession adapts a FakeContext to the session interface.
type fakeSession struct {
	*location.FakeContext
	settings *config.Settings
	closed   bool
}

func (f *fakeSession) Close() {
	f.closed = true
}

// useSession makes the location commands open sess instead of a browser.
func useSession(t *testing.T, sess *fakeSession) {
	t.Helper()

	prev := openSession
	openSession = func(ctx context.Context, s *config.Settings, log logrus.FieldLogger) (session, error) {
		sess.settings = s
		return sess, nil
	}
	t.Cleanup(func() { openSession = prev })
}
