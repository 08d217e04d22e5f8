package snapshot

import (
	"errors"
	"strings"
	"testing"
	"time"

	"storesnap/internal/config"
	"storesnap/internal/logger"
	"storesnap/internal/scrape"
)

// faultySession serves products and testimonials but fails or panics on
// selected phases, to exercise the builder's isolation boundary.
type faultySession struct {
	current       string
	failReviews   bool
	panicOnHeight bool
}

func (f *faultySession) Navigate(url string) error {
	if f.failReviews && strings.Contains(url, "/reviews") {
		return errors.New("renderer went away")
	}

	f.current = url

	return nil
}

func (f *faultySession) WaitBriefly(time.Duration) {}

func (f *faultySession) Cards(selector, starMarker string) ([]scrape.Card, error) {
	switch {
	case strings.Contains(f.current, "page=1"):
		return []scrape.Card{{Text: "Hiking Boots\n$89.99"}}, nil
	case strings.Contains(f.current, "/products"):
		return nil, nil
	case strings.Contains(f.current, "/reviews"):
		return []scrape.Card{{Text: "May 5, 2023\nGood value for the price, recommended", Stars: 4}}, nil
	case strings.Contains(f.current, "/testimonials"):
		return []scrape.Card{{Text: "Fast shipping, great packaging!", Stars: 5}}, nil
	}

	return nil, nil
}

func (f *faultySession) ClickVisible(string) (bool, error) { return false, nil }

func (f *faultySession) ScrollToBottom() error { return nil }

func (f *faultySession) DocumentHeight() (float64, error) {
	if f.panicOnHeight {
		panic("height measurement exploded")
	}

	return 1000, nil
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Scraper.BaseURL = "https://fixture.test"
	cfg.Scraper.Waits = config.WaitsConfig{}
	cfg.Scraper.Scroll.StablePasses = 1

	return cfg
}

func TestBuilder_FailedPhaseKeepsOtherCollections(t *testing.T) {
	session := &faultySession{failReviews: true}

	snap := NewBuilder(session, testConfig(), logger.Nop()).Build()

	if len(snap.Products) != 1 {
		t.Errorf("Expected 1 product despite review failure, got %d", len(snap.Products))
	}

	if len(snap.Testimonials) != 1 {
		t.Errorf("Expected 1 testimonial despite review failure, got %d", len(snap.Testimonials))
	}

	if snap.Reviews == nil {
		t.Error("Reviews collection must stay non-nil after a failed phase")
	}

	if len(snap.Reviews) != 0 {
		t.Errorf("Expected no reviews, got %d", len(snap.Reviews))
	}

	if err := Validate(snap); err != nil {
		t.Errorf("Partial snapshot should still validate: %v", err)
	}
}

func TestBuilder_PanickingPhaseIsContained(t *testing.T) {
	session := &faultySession{panicOnHeight: true}

	snap := NewBuilder(session, testConfig(), logger.Nop()).Build()

	if len(snap.Products) != 1 {
		t.Errorf("Expected products collected before the panic, got %d", len(snap.Products))
	}

	if len(snap.Reviews) != 1 {
		t.Errorf("Expected reviews collected before the panic, got %d", len(snap.Reviews))
	}

	if snap.Testimonials == nil || len(snap.Testimonials) != 0 {
		t.Errorf("Expected empty, non-nil testimonials after panic, got %+v", snap.Testimonials)
	}
}

func TestBuilder_HappyPath(t *testing.T) {
	session := &faultySession{}

	snap := NewBuilder(session, testConfig(), logger.Nop()).Build()

	if len(snap.Products) != 1 || len(snap.Reviews) != 1 || len(snap.Testimonials) != 1 {
		t.Fatalf("Expected one record per collection, got %d/%d/%d",
			len(snap.Products), len(snap.Reviews), len(snap.Testimonials))
	}

	if snap.Reviews[0].Date != "2023-05-05" {
		t.Errorf("Expected normalized review date, got %q", snap.Reviews[0].Date)
	}
}
