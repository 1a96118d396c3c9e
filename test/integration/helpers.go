package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/danieljhkim/wdkit/internal/logging"
	"github.com/danieljhkim/wdkit/internal/rodsession"
)

const testPage = `<!doctype html><html><head><title>wdkit</title></head><body>ok</body></html>`

// startPageServer serves a blank page from a loopback origin, which browsers
// treat as a secure context for navigator.geolocation.
func startPageServer(t *testing.T) string {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(testPage))
	}))
	t.Cleanup(server.Close)
	return server.URL
}

// setupBrowserSession launches a headless browser, or connects to
// WDKIT_CONTROL_URL when set. The test is skipped when neither is available.
func setupBrowserSession(t *testing.T) *rodsession.Session {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	opts := rodsession.Options{
		ControlURL: os.Getenv("WDKIT_CONTROL_URL"),
		Headless:   true,
		PageURL:    startPageServer(t),
		Accuracy:   1,
	}
	if opts.ControlURL == "" {
		bin, ok := launcher.LookPath()
		if !ok {
			t.Skip("no browser found")
		}
		opts.Bin = bin
	}

	// The session stays bound to ctx, so cancel only after it is closed.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)

	sess, err := rodsession.Connect(ctx, opts, logging.New("debug", os.Stderr))
	if err != nil {
		t.Fatalf("failed to open browser session: %v", err)
	}
	t.Cleanup(sess.Close)
	return sess
}
