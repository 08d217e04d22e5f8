// Package snapshot assembles the three collections into one document,
// validates its shape and persists it as JSON.
package snapshot

import (
	"storesnap/internal/config"
	"storesnap/internal/ledger"
	"storesnap/internal/logger"
	"storesnap/internal/models"
	"storesnap/internal/scrape"
)

// Builder sequences the collection strategies over a single session and
// owns the accumulating snapshot for the duration of the run. Strategy
// order carries no meaning; they share the session, so they never run
// concurrently.
type Builder struct {
	session scrape.Session
	cfg     *config.Config
	log     *logger.Logger
}

// NewBuilder creates a snapshot builder.
func NewBuilder(session scrape.Session, cfg *config.Config, log *logger.Logger) *Builder {
	return &Builder{
		session: session,
		cfg:     cfg,
		log:     log,
	}
}

// Build runs all three strategies and returns the assembled snapshot.
// Each strategy is isolated: a failure mid-collection keeps the records
// it gathered and never blocks the other collections, so a partially
// successful run still produces a persistable document.
func (b *Builder) Build() *models.Snapshot {
	led := ledger.New()
	snap := models.NewSnapshot()

	b.collect(models.CollectionProducts, func() error {
		records, err := scrape.NewProductStrategy(b.session, led, b.cfg, b.log).Collect()
		snap.Products = append(snap.Products, records...)

		return err
	})

	b.collect(models.CollectionReviews, func() error {
		records, err := scrape.NewReviewStrategy(b.session, led, b.cfg, b.log).Collect()
		snap.Reviews = append(snap.Reviews, records...)

		return err
	})

	b.collect(models.CollectionTestimonials, func() error {
		records, err := scrape.NewTestimonialStrategy(b.session, led, b.cfg, b.log).Collect()
		snap.Testimonials = append(snap.Testimonials, records...)

		return err
	})

	return snap
}

// collect runs one strategy behind an isolation boundary. An error ends
// that collection early; a panic is contained so the remaining
// collections and the persistence step still happen.
func (b *Builder) collect(name string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("collection phase panicked", "collection", name, "panic", r)
		}
	}()

	if err := fn(); err != nil {
		b.log.Warn("collection phase ended early", "collection", name, "error", err)
	}
}
