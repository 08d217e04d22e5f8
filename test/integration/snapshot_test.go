package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"storesnap/internal/config"
	"storesnap/internal/logger"
	"storesnap/internal/models"
	"storesnap/internal/scrape"
	"storesnap/internal/snapshot"
)

// storefrontFixture scripts a complete storefront: two product pages with
// overlap, a click-to-load review list with mixed years, and an
// infinite-scroll testimonial wall with boilerplate headings.
type storefrontFixture struct {
	current   string
	revealed  int
	heightIdx int
}

var reviewBatches = [][]scrape.Card{
	{
		{Text: "January 15, 2023\nAna\nWorks perfectly and arrived ahead of schedule", Stars: 5},
		{Text: "December 1, 2022\nBo\nThis review is from the previous year", Stars: 2},
	},
	{
		{Text: "January 15, 2023\nAna\nWorks perfectly and arrived ahead of schedule", Stars: 5},
		{Text: "Back in 2023 sometime\nCy\nStill holding up after months of daily use", Stars: 4},
	},
}

func (s *storefrontFixture) Navigate(url string) error {
	s.current = url

	return nil
}

func (s *storefrontFixture) WaitBriefly(time.Duration) {}

func (s *storefrontFixture) Cards(selector, starMarker string) ([]scrape.Card, error) {
	switch {
	case strings.Contains(s.current, "/products"):
		return s.productCards(), nil
	case strings.Contains(s.current, "/reviews"):
		var cards []scrape.Card
		for i := 0; i <= s.revealed && i < len(reviewBatches); i++ {
			cards = append(cards, reviewBatches[i]...)
		}

		return cards, nil
	case strings.Contains(s.current, "/testimonials"):
		return []scrape.Card{
			{Text: "Take a look at our Reviews"},
			{Text: "Blazing fast delivery,\nwould order again", Stars: 5},
			{Text: "Vrhunska izkušnja, vse pohvale ekipi!", Stars: 4},
			{Text: "Blazing fast delivery, would order again", Stars: 5},
		}, nil
	}

	return nil, nil
}

func (s *storefrontFixture) productCards() []scrape.Card {
	idx := strings.Index(s.current, "page=")
	page, _ := strconv.Atoi(s.current[idx+len("page="):])

	switch page {
	case 1:
		return []scrape.Card{
			{Text: "Box of Chocolate Candy\n$9.99"},
			{Text: "Log in"},
			{Text: "Dragon Energy Potion\n$4.99"},
		}
	case 2:
		return []scrape.Card{
			{Text: "Dragon Energy Potion\n$4.99"},
			{Text: "Hiking Boots\nno listed price"},
		}
	case 3:
		// Same titles again: saturation.
		return []scrape.Card{{Text: "Box of Chocolate Candy\n$9.99"}}
	}

	return nil
}

func (s *storefrontFixture) ClickVisible(string) (bool, error) {
	if s.revealed+1 < len(reviewBatches) {
		s.revealed++

		return true, nil
	}

	return false, nil
}

func (s *storefrontFixture) ScrollToBottom() error { return nil }

func (s *storefrontFixture) DocumentHeight() (float64, error) {
	heights := []float64{800, 1600, 1600, 1600}

	idx := s.heightIdx
	if idx >= len(heights) {
		idx = len(heights) - 1
	}

	s.heightIdx++

	return heights[idx], nil
}

func TestFullRun_BuildAndPersist(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scraper.BaseURL = "https://fixture.test"
	cfg.Scraper.Waits = config.WaitsConfig{}
	cfg.Scraper.Output.Path = filepath.Join(t.TempDir(), "snapshot.json")

	log := logger.Nop()

	snap := snapshot.NewBuilder(&storefrontFixture{}, cfg, log).Build()

	if err := snapshot.NewStore(cfg.Scraper.Output, log).Save(snap); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(cfg.Scraper.Output.Path)
	if err != nil {
		t.Fatalf("Failed to read persisted snapshot: %v", err)
	}

	var persisted models.Snapshot
	if err := json.Unmarshal(data, &persisted); err != nil {
		t.Fatalf("Persisted snapshot is not valid JSON: %v", err)
	}

	// Products: three unique titles, "Log in" filtered, dedup across pages.
	if len(persisted.Products) != 3 {
		t.Fatalf("Expected 3 products, got %d: %+v", len(persisted.Products), persisted.Products)
	}

	if persisted.Products[2].Title != "Hiking Boots" || persisted.Products[2].Price != "N/A" {
		t.Errorf("Expected Hiking Boots with N/A price, got %+v", persisted.Products[2])
	}

	// Reviews: only target-year records, duplicate collapsed, fallback date kept.
	if len(persisted.Reviews) != 2 {
		t.Fatalf("Expected 2 reviews, got %d: %+v", len(persisted.Reviews), persisted.Reviews)
	}

	if persisted.Reviews[0].Date != "2023-01-15" {
		t.Errorf("Expected 2023-01-15, got %q", persisted.Reviews[0].Date)
	}

	if persisted.Reviews[1].Date != "Back in 2023 sometime" {
		t.Errorf("Expected verbatim fallback date, got %q", persisted.Reviews[1].Date)
	}

	// Testimonials: heading rejected, line breaks collapsed, duplicate collapsed.
	if len(persisted.Testimonials) != 2 {
		t.Fatalf("Expected 2 testimonials, got %d: %+v", len(persisted.Testimonials), persisted.Testimonials)
	}

	if persisted.Testimonials[0].Text != "Blazing fast delivery, would order again" {
		t.Errorf("Expected collapsed testimonial text, got %q", persisted.Testimonials[0].Text)
	}

	if !strings.Contains(string(data), "Vrhunska izkušnja") {
		t.Error("Expected non-ASCII testimonial preserved verbatim on disk")
	}
}
