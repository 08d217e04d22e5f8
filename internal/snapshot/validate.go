package snapshot

import (
	"errors"
	"fmt"

	"storesnap/internal/models"
	"storesnap/internal/normalize"
)

// Snapshot validation errors.
var (
	ErrNilSnapshot      = errors.New("snapshot is nil")
	ErrNilCollection    = errors.New("snapshot collection is nil")
	ErrRatingOutOfRange = errors.New("rating out of range")
	ErrEmptyIdentity    = errors.New("record identity field is empty")
)

// Validate checks the snapshot shape before persistence: all three
// collections present (possibly empty, never nil), identity fields
// non-empty and ratings within [0, 5]. The downstream reader depends on
// exactly this shape.
func Validate(snap *models.Snapshot) error {
	if snap == nil {
		return ErrNilSnapshot
	}

	if snap.Products == nil {
		return fmt.Errorf("%w: %s", ErrNilCollection, models.CollectionProducts)
	}

	if snap.Reviews == nil {
		return fmt.Errorf("%w: %s", ErrNilCollection, models.CollectionReviews)
	}

	if snap.Testimonials == nil {
		return fmt.Errorf("%w: %s", ErrNilCollection, models.CollectionTestimonials)
	}

	for i, p := range snap.Products {
		if p.Title == "" {
			return fmt.Errorf("%w: products[%d].title", ErrEmptyIdentity, i)
		}
	}

	for i, r := range snap.Reviews {
		if r.Text == "" {
			return fmt.Errorf("%w: reviews[%d].text", ErrEmptyIdentity, i)
		}

		if r.Rating < 0 || r.Rating > normalize.MaxStars {
			return fmt.Errorf("%w: reviews[%d].rating = %d", ErrRatingOutOfRange, i, r.Rating)
		}
	}

	for i, t := range snap.Testimonials {
		if t.Text == "" {
			return fmt.Errorf("%w: testimonials[%d].text", ErrEmptyIdentity, i)
		}

		if t.Rating < 0 || t.Rating > normalize.MaxStars {
			return fmt.Errorf("%w: testimonials[%d].rating = %d", ErrRatingOutOfRange, i, t.Rating)
		}
	}

	return nil
}
