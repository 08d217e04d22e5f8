// Package models defines the record types collected from the storefront and
// the snapshot document that persists them.
package models

// Collection names used as ledger keys and snapshot field names.
const (
	CollectionProducts     = "products"
	CollectionReviews      = "reviews"
	CollectionTestimonials = "testimonials"
)

// ProductRecord is a single catalog entry with its listed price.
// Price is "N/A" when no price could be extracted.
type ProductRecord struct {
	Title string `json:"title"`
	Price string `json:"price"`
}

// ReviewRecord is a dated customer review. Date is an ISO-8601 day
// (YYYY-MM-DD) or, when the date line could not be fully parsed, the
// original line verbatim.
type ReviewRecord struct {
	Date   string `json:"date"`
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

// TestimonialRecord is a customer testimonial with its star rating.
type TestimonialRecord struct {
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

// Snapshot is the complete result of one crawl run. Each collection is
// deduplicated independently and ordered by discovery.
type Snapshot struct {
	Products     []ProductRecord     `json:"products"`
	Reviews      []ReviewRecord      `json:"reviews"`
	Testimonials []TestimonialRecord `json:"testimonials"`
}

// NewSnapshot returns a snapshot with all three collections allocated,
// so an empty collection persists as [] rather than null.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Products:     []ProductRecord{},
		Reviews:      []ReviewRecord{},
		Testimonials: []TestimonialRecord{},
	}
}
