// Package browser implements the rendering session over chromedp. It is
// the only package that talks to the browser; strategies consume it
// through the scrape.Session interface.
package browser

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/chromedp/chromedp"

	"storesnap/internal/config"
	"storesnap/internal/scrape"
)

// Session wraps a single browser tab for the whole run. It is acquired
// once at startup and must be closed unconditionally at the end of the
// run, regardless of how the strategies fared.
type Session struct {
	ctx         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	navTimeout  time.Duration
}

// NewSession launches the browser and opens the run's tab. A failure here
// is fatal to the run: no extraction can happen without a renderer.
func NewSession(cfg config.BrowserConfig) (*Session, error) {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)

	if !cfg.Headless {
		opts = append(opts, chromedp.Flag("headless", false))
	}

	if cfg.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}

	if cfg.DisableGPU {
		opts = append(opts, chromedp.DisableGPU)
	}

	opts = append(opts, chromedp.WindowSize(cfg.WindowWidth, cfg.WindowHeight))

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	// Run a no-op so the browser process starts now and a broken
	// environment fails here instead of mid-crawl.
	if err := chromedp.Run(tabCtx); err != nil {
		cancelTab()
		cancelAlloc()

		return nil, fmt.Errorf("failed to start browser session: %w", err)
	}

	return &Session{
		ctx:         tabCtx,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
		navTimeout:  cfg.NavTimeout(),
	}, nil
}

// Navigate loads url in the session tab, bounded by the nav timeout.
func (s *Session) Navigate(url string) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.navTimeout)
	defer cancel()

	if err := chromedp.Run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}

	return nil
}

// WaitBriefly blocks for d so asynchronous rendering can finish.
func (s *Session) WaitBriefly(d time.Duration) {
	if d <= 0 {
		return
	}

	_ = chromedp.Run(s.ctx, chromedp.Sleep(d))
}

// Each matched node degrades to an empty card on a read failure rather
// than failing the whole batch.
const cardsJS = `(function(sel, marker) {
	return Array.from(document.querySelectorAll(sel)).map(function(el) {
		var text = "";
		var stars = 0;
		try { text = el.innerText || ""; } catch (e) {}
		try { stars = el.querySelectorAll(marker).length; } catch (e) {}
		return { text: text, stars: stars };
	});
})(%s, %s)`

// Cards returns every node matching selector with its visible text and
// the count of star-marker elements inside it.
func (s *Session) Cards(selector, starMarker string) ([]scrape.Card, error) {
	expr := fmt.Sprintf(cardsJS, strconv.Quote(selector), strconv.Quote(starMarker))

	var cards []scrape.Card
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(expr, &cards)); err != nil {
		return nil, fmt.Errorf("failed to query cards for %q: %w", selector, err)
	}

	return cards, nil
}

const clickJS = `(function(sel) {
	var el = document.querySelector(sel);
	if (!el || el.offsetParent === null) { return false; }
	el.click();
	return true;
})(%s)`

// ClickVisible clicks the first visible node matching selector and
// reports whether a click happened. A missing or hidden node is not an
// error; it is how pagination controls signal exhaustion.
func (s *Session) ClickVisible(selector string) (bool, error) {
	expr := fmt.Sprintf(clickJS, strconv.Quote(selector))

	var clicked bool
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(expr, &clicked)); err != nil {
		return false, fmt.Errorf("failed to click %q: %w", selector, err)
	}

	return clicked, nil
}

const scrollJS = `(function() {
	window.scrollTo(0, document.body.scrollHeight);
	return document.body.scrollHeight;
})()`

// ScrollToBottom scrolls the document to its current end.
func (s *Session) ScrollToBottom() error {
	var height float64
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(scrollJS, &height)); err != nil {
		return fmt.Errorf("failed to scroll to document end: %w", err)
	}

	return nil
}

// DocumentHeight returns the rendered document extent.
func (s *Session) DocumentHeight() (float64, error) {
	var height float64
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(`document.body.scrollHeight`, &height)); err != nil {
		return 0, fmt.Errorf("failed to measure document height: %w", err)
	}

	return height, nil
}

// Close releases the tab and the browser process.
func (s *Session) Close() {
	_ = chromedp.Cancel(s.ctx)
	s.cancelTab()
	s.cancelAlloc()
}
