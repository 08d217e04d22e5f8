// Package scrape implements the three collection strategies that drive a
// rendered-page crawl: numbered product pages, click-to-load reviews and
// infinite-scroll testimonials. Strategies run strictly one after another
// over a single browser session.
package scrape

import "time"

// Card is one rendered node matched by a card selector: its visible text
// and the number of filled star glyphs inside it. A node whose text read
// failed in the page surfaces as an empty card and is skipped downstream.
type Card struct {
	Text  string `json:"text"`
	Stars int    `json:"stars"`
}

// Session is the rendering collaborator surface the strategies consume.
// It is a stateful, non-reentrant resource: one session serves the whole
// run and must never be used concurrently.
type Session interface {
	// Navigate loads url in the session's tab.
	Navigate(url string) error
	// WaitBriefly blocks for a fixed duration so client-side rendering
	// can complete. These pauses are the run's main wall-clock cost.
	WaitBriefly(d time.Duration)
	// Cards returns every node matching selector, with star glyphs
	// counted via starMarker inside each node.
	Cards(selector, starMarker string) ([]Card, error)
	// ClickVisible clicks the first node matching selector if it exists
	// and is visible, reporting whether a click happened.
	ClickVisible(selector string) (bool, error)
	// ScrollToBottom scrolls the document to its current end.
	ScrollToBottom() error
	// DocumentHeight returns the rendered document extent.
	DocumentHeight() (float64, error)
}

// skipReason classifies why a rendered card did not become a record.
// Strategies aggregate these instead of silently discarding nodes.
type skipReason string

const (
	skipEmpty       skipReason = "empty"
	skipExcluded    skipReason = "excluded_title"
	skipBoilerplate skipReason = "boilerplate"
	skipNoYear      skipReason = "no_year"
	skipWrongYear   skipReason = "wrong_year"
	skipDuplicate   skipReason = "duplicate"
)

// skipTally aggregates per-card skip outcomes across one scan pass.
type skipTally map[skipReason]int

func (t skipTally) add(r skipReason) {
	t[r]++
}

// attrs renders the tally as logger attributes, skipping zero counts.
func (t skipTally) attrs() []any {
	reasons := []skipReason{
		skipEmpty,
		skipExcluded,
		skipBoilerplate,
		skipNoYear,
		skipWrongYear,
		skipDuplicate,
	}

	var out []any

	for _, r := range reasons {
		if t[r] > 0 {
			out = append(out, "skipped_"+string(r), t[r])
		}
	}

	return out
}
