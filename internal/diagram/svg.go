package diagram

import (
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"time"

	"github.com/chromedp/chromedp"
)

// DefaultMermaidScript is the mermaid bundle loaded into the headless page.
const DefaultMermaidScript = "https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"

// SVGRenderer renders diagram text to SVG markup in headless Chrome. Each
// Render opens its own tab, so it is safe for concurrent use.
type SVGRenderer struct {
	browser context.Context
	cancel  context.CancelFunc
	script  string
	timeout time.Duration
}

// NewSVGRenderer starts a headless browser bound to ctx. Call Close when done.
func NewSVGRenderer(ctx context.Context, script string, timeout time.Duration) (*SVGRenderer, error) {
	if script == "" {
		script = DefaultMermaidScript
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	browser, browserCancel := chromedp.NewContext(allocCtx)
	// Start the browser now so a missing Chrome fails here, not per diagram.
	if err := chromedp.Run(browser); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("starting headless browser: %w", err)
	}

	return &SVGRenderer{
		browser: browser,
		cancel: func() {
			browserCancel()
			allocCancel()
		},
		script:  script,
		timeout: timeout,
	}, nil
}

// Render returns the SVG produced by mermaid for source.
func (r *SVGRenderer) Render(id, source string) (string, error) {
	if source == "" {
		return "", ErrEmptySource
	}

	tab, cancel := chromedp.NewContext(r.browser)
	defer cancel()
	tab, cancelTimeout := context.WithTimeout(tab, r.timeout)
	defer cancelTimeout()

	var svg string
	err := chromedp.Run(tab,
		chromedp.Navigate(r.pageURL(source)),
		chromedp.WaitVisible("#diagram svg", chromedp.ByQuery),
		chromedp.OuterHTML("#diagram svg", &svg, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("rendering %s to svg: %w", id, err)
	}
	return svg, nil
}

// Close shuts down the browser.
func (r *SVGRenderer) Close() {
	r.cancel()
}

func (r *SVGRenderer) pageURL(source string) string {
	page := fmt.Sprintf(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><script src="%s"></script></head>
<body><pre id="diagram" class="mermaid">%s</pre>
<script>mermaid.initialize({startOnLoad: true});</script>
</body></html>`, html.EscapeString(r.script), html.EscapeString(source))
	return "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(page))
}
