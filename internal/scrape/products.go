package scrape

import (
	"fmt"
	"strings"

	"storesnap/internal/config"
	"storesnap/internal/ledger"
	"storesnap/internal/logger"
	"storesnap/internal/models"
	"storesnap/internal/normalize"
)

// ProductStrategy walks the numbered product listing pages until a page
// yields no cards or no novel titles (saturation).
type ProductStrategy struct {
	session Session
	ledger  *ledger.Ledger
	cfg     *config.Config
	log     *logger.Logger
}

// NewProductStrategy creates a numbered-page strategy for products.
func NewProductStrategy(session Session, led *ledger.Ledger, cfg *config.Config, log *logger.Logger) *ProductStrategy {
	return &ProductStrategy{
		session: session,
		ledger:  led,
		cfg:     cfg,
		log:     log.With("collection", models.CollectionProducts),
	}
}

// Collect runs the strategy to saturation and returns the records gathered
// so far together with any error that cut the crawl short.
func (p *ProductStrategy) Collect() ([]models.ProductRecord, error) {
	records := []models.ProductRecord{}

	// A card matches any one of the selector synonyms.
	selector := strings.Join(p.cfg.Scraper.Selectors.ProductCards, ", ")

	for page := 1; ; page++ {
		url := p.cfg.ProductsURL(page)
		if err := p.session.Navigate(url); err != nil {
			return records, fmt.Errorf("failed to load product page %d: %w", page, err)
		}

		p.session.WaitBriefly(p.cfg.Scraper.Waits.PageLoad())

		cards, err := p.session.Cards(selector, p.cfg.Scraper.Selectors.StarMarker)
		if err != nil {
			return records, fmt.Errorf("failed to query product cards on page %d: %w", page, err)
		}

		if len(cards) == 0 {
			p.log.Info("no product cards rendered, catalog exhausted", "page", page)

			break
		}

		added := 0
		tally := skipTally{}

		for _, card := range cards {
			record, reason := p.classify(card)
			if reason != "" {
				tally.add(reason)

				continue
			}

			if !p.ledger.IsNovel(models.CollectionProducts, record.Title) {
				tally.add(skipDuplicate)

				continue
			}

			p.ledger.Register(models.CollectionProducts, record.Title)
			records = append(records, record)
			added++
		}

		attrs := append([]any{"page", page, "cards", len(cards), "added", added}, tally.attrs()...)
		p.log.Info("product page scanned", attrs...)

		// Zero novel records means end of catalog or end of unique
		// content; either way the crawl is saturated.
		if added == 0 {
			break
		}
	}

	return records, nil
}

// classify derives a candidate product from a rendered card. The first
// line of the card text is the title; the price is scanned from the full
// text. Dedup is the caller's concern.
func (p *ProductStrategy) classify(card Card) (models.ProductRecord, skipReason) {
	lines := normalize.SplitLines(card.Text)
	if len(lines) == 0 {
		return models.ProductRecord{}, skipEmpty
	}

	title := lines[0]
	if title == "" {
		return models.ProductRecord{}, skipEmpty
	}

	for _, excluded := range p.cfg.Scraper.Filters.ExcludedTitles {
		if title == excluded {
			return models.ProductRecord{}, skipExcluded
		}
	}

	return models.ProductRecord{
		Title: title,
		Price: normalize.ParsePrice(card.Text),
	}, ""
}
