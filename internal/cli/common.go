package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/danieljhkim/wdkit/internal/clock"
	"github.com/danieljhkim/wdkit/internal/config"
	"github.com/danieljhkim/wdkit/internal/location"
	"github.com/danieljhkim/wdkit/internal/logging"
	"github.com/danieljhkim/wdkit/internal/rodsession"
)

// session is a location capability that holds browser resources.
type session interface {
	location.Context
	Close()
}

var (
	// timeSource answers the clock commands.
	timeSource clock.Clock = clock.NewSystemClock()

	// openSession opens the browser session used by the location commands.
	openSession = openRodSession
)

func openRodSession(ctx context.Context, s *config.Settings, log logrus.FieldLogger) (session, error) {
	return rodsession.Connect(ctx, rodsession.Options{
		ControlURL: s.ControlURL,
		Bin:        s.BrowserBin,
		Headless:   s.Headless,
		PageURL:    s.PageURL,
		Accuracy:   s.Accuracy,
	}, log)
}

// loadSettings resolves paths and reads the settings file.
func loadSettings() (*config.Paths, *config.Settings, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get config paths: %w", err)
	}

	settings, err := config.LoadSettings(paths.Config)
	if err != nil {
		return nil, nil, err
	}
	return paths, settings, nil
}

// withSession loads settings, opens a session and runs fn under the
// configured command timeout. The session is bound to ctx, so it is closed
// before ctx is canceled.
func withSession(fn func(ctx context.Context, sess session) error) error {
	_, settings, err := loadSettings()
	if err != nil {
		return err
	}

	log := logging.New(settings.LogLevel, os.Stderr)

	ctx, cancel := context.WithTimeout(context.Background(), settings.CommandTimeout())
	defer cancel()

	sess, err := openSession(ctx, settings, log)
	if err != nil {
		return fmt.Errorf("failed to open browser session: %w", err)
	}
	defer sess.Close()

	return fn(ctx, sess)
}

// FormatError formats an error for display.
func FormatError(err error) string {
	return errorColor.Sprintf("Error: %v", err)
}

// outputJSON writes a value as indented JSON.
func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
