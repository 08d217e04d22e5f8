package scrape

import (
	"fmt"

	"storesnap/internal/config"
	"storesnap/internal/ledger"
	"storesnap/internal/logger"
	"storesnap/internal/models"
	"storesnap/internal/normalize"
)

// ReviewStrategy collects dated reviews from a click-to-load page,
// keeping only records from the configured target year.
type ReviewStrategy struct {
	session Session
	ledger  *ledger.Ledger
	cfg     *config.Config
	log     *logger.Logger
}

// NewReviewStrategy creates a click-to-load strategy for reviews.
func NewReviewStrategy(session Session, led *ledger.Ledger, cfg *config.Config, log *logger.Logger) *ReviewStrategy {
	return &ReviewStrategy{
		session: session,
		ledger:  led,
		cfg:     cfg,
		log:     log.With("collection", models.CollectionReviews),
	}
}

// Collect scans the rendered review list, clicks the load-more control and
// rescans until the control disappears. Each click only appends nodes, so
// every pass re-reads the full list and relies on the ledger, not node
// position, to filter already-seen reviews.
func (r *ReviewStrategy) Collect() ([]models.ReviewRecord, error) {
	records := []models.ReviewRecord{}

	if err := r.session.Navigate(r.cfg.ReviewsURL()); err != nil {
		return records, fmt.Errorf("failed to load reviews page: %w", err)
	}

	r.session.WaitBriefly(r.cfg.Scraper.Waits.ReviewPage())

	for pass := 1; ; pass++ {
		cards, err := r.session.Cards(r.cfg.Scraper.Selectors.ReviewCard, r.cfg.Scraper.Selectors.StarMarker)
		if err != nil {
			return records, fmt.Errorf("failed to query review cards: %w", err)
		}

		added := 0
		tally := skipTally{}

		for _, card := range cards {
			record, reason := r.classify(card)
			if reason != "" {
				tally.add(reason)

				continue
			}

			if !r.ledger.IsNovel(models.CollectionReviews, record.Text) {
				tally.add(skipDuplicate)

				continue
			}

			r.ledger.Register(models.CollectionReviews, record.Text)
			records = append(records, record)
			added++
		}

		attrs := append([]any{"pass", pass, "cards", len(cards), "added", added}, tally.attrs()...)
		r.log.Info("review list scanned", attrs...)

		// An absent or hidden control is the normal exhaustion signal,
		// not an error.
		clicked, err := r.session.ClickVisible(r.cfg.Scraper.Selectors.LoadMore)
		if err != nil || !clicked {
			break
		}

		r.session.WaitBriefly(r.cfg.Scraper.Waits.ClickSettle())
	}

	return records, nil
}

// classify derives a candidate review from a rendered card. Cards without
// a detectable year are dropped; cards outside the target year are
// filtered but never stop the crawl, since render order interleaves years.
func (r *ReviewStrategy) classify(card Card) (models.ReviewRecord, skipReason) {
	lines := normalize.SplitLines(card.Text)
	if len(lines) == 0 {
		return models.ReviewRecord{}, skipEmpty
	}

	date, year := normalize.ParseReviewDate(lines)
	if year == 0 {
		return models.ReviewRecord{}, skipNoYear
	}

	if year != r.cfg.Scraper.TargetYear {
		return models.ReviewRecord{}, skipWrongYear
	}

	body := normalize.ChooseBodyText(lines)
	if body == "" {
		return models.ReviewRecord{}, skipEmpty
	}

	return models.ReviewRecord{
		Date:   date,
		Text:   body,
		Rating: normalize.ClampStars(card.Stars),
	}, ""
}
