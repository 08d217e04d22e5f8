package scrape

import (
	"fmt"

	"storesnap/internal/config"
	"storesnap/internal/ledger"
	"storesnap/internal/logger"
	"storesnap/internal/models"
	"storesnap/internal/normalize"
)

// TestimonialStrategy collects testimonials from an infinite-scroll page:
// scroll until the document height settles, then extract once.
type TestimonialStrategy struct {
	session Session
	ledger  *ledger.Ledger
	cfg     *config.Config
	log     *logger.Logger
}

// NewTestimonialStrategy creates an infinite-scroll strategy for testimonials.
func NewTestimonialStrategy(session Session, led *ledger.Ledger, cfg *config.Config, log *logger.Logger) *TestimonialStrategy {
	return &TestimonialStrategy{
		session: session,
		ledger:  led,
		cfg:     cfg,
		log:     log.With("collection", models.CollectionTestimonials),
	}
}

// Collect scrolls the page to settlement and extracts every
// testimonial-shaped node rendered at that point.
func (t *TestimonialStrategy) Collect() ([]models.TestimonialRecord, error) {
	records := []models.TestimonialRecord{}

	if err := t.session.Navigate(t.cfg.TestimonialsURL()); err != nil {
		return records, fmt.Errorf("failed to load testimonials page: %w", err)
	}

	t.session.WaitBriefly(t.cfg.Scraper.Waits.ReviewPage())

	if err := t.scrollToSettlement(); err != nil {
		return records, err
	}

	cards, err := t.session.Cards(t.cfg.Scraper.Selectors.TestimonialCards, t.cfg.Scraper.Selectors.StarMarker)
	if err != nil {
		return records, fmt.Errorf("failed to query testimonial cards: %w", err)
	}

	added := 0
	tally := skipTally{}

	for _, card := range cards {
		text := normalize.CollapseWhitespace(card.Text)
		if text == "" {
			tally.add(skipEmpty)

			continue
		}

		if normalize.IsBoilerplate(text, t.cfg.Scraper.Filters.BoilerplateMarkers, t.cfg.Scraper.Filters.MinTextLength) {
			tally.add(skipBoilerplate)

			continue
		}

		if !t.ledger.IsNovel(models.CollectionTestimonials, text) {
			tally.add(skipDuplicate)

			continue
		}

		t.ledger.Register(models.CollectionTestimonials, text)
		records = append(records, models.TestimonialRecord{
			Text:   text,
			Rating: normalize.ClampStars(card.Stars),
		})
		added++
	}

	attrs := append([]any{"cards", len(cards), "added", added}, tally.attrs()...)
	t.log.Info("testimonials extracted", attrs...)

	return records, nil
}

// scrollToSettlement scrolls to the document end until the measured height
// stops growing for stable_passes consecutive readings. A single plateau
// reading can be a false settlement under slow rendering, so one no-growth
// measurement is tolerated by default before declaring the page settled.
// max_cycles bounds the loop on pages that never stop growing.
func (t *TestimonialStrategy) scrollToSettlement() error {
	lastHeight, err := t.session.DocumentHeight()
	if err != nil {
		return fmt.Errorf("failed to measure document height: %w", err)
	}

	stable := 0

	for cycle := 1; cycle <= t.cfg.Scraper.Scroll.MaxCycles; cycle++ {
		if err := t.session.ScrollToBottom(); err != nil {
			return fmt.Errorf("failed to scroll on cycle %d: %w", cycle, err)
		}

		t.session.WaitBriefly(t.cfg.Scraper.Waits.ScrollSettle())

		height, err := t.session.DocumentHeight()
		if err != nil {
			return fmt.Errorf("failed to re-measure document height: %w", err)
		}

		if height > lastHeight {
			lastHeight = height
			stable = 0

			continue
		}

		stable++
		if stable >= t.cfg.Scraper.Scroll.StablePasses {
			t.log.Debug("scroll settled", "cycles", cycle, "height", height)

			return nil
		}
	}

	t.log.Warn("scroll loop hit max cycles before settling", "max_cycles", t.cfg.Scraper.Scroll.MaxCycles)

	return nil
}
