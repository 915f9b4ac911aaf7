// Package browser renders JS-heavy pages through headless Chromium so the
// scraper sees the same tables a real visitor does. One browser instance is
// launched per render and torn down afterwards; nothing is reused across
// calls.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

const defaultTimeout = 60 * time.Second

// Renderer drives a headless Chromium via go-rod.
type Renderer struct {
	// Timeout bounds navigation and load waiting; zero means the default.
	Timeout time.Duration
}

// Render loads the page, waits for it to settle, and returns the rendered
// HTML.
func (r *Renderer) Render(ctx context.Context, pageURL string) (string, error) {
	timeout := r.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	l := launcher.New().Headless(true)
	controlURL, err := l.Launch()
	if err != nil {
		return "", fmt.Errorf("launch browser: %w", err)
	}
	defer l.Cleanup()

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		return "", fmt.Errorf("connect browser: %w", err)
	}
	defer b.Close()

	page, err := b.Page(proto.TargetCreateTarget{URL: pageURL})
	if err != nil {
		return "", fmt.Errorf("open page: %w", err)
	}
	defer page.Close()

	page = page.Timeout(timeout)
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("wait load: %w", err)
	}
	// Give late XHR-driven tables a chance to land; a page that never goes
	// fully idle is still worth reading.
	_ = page.WaitIdle(timeout)

	rendered, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("read page html: %w", err)
	}
	return rendered, nil
}
