// Package normalize converts raw rendered text into typed record fields.
// Every function is total: malformed input degrades to a sentinel value or
// an empty result, never an error.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// PriceUnavailable is returned when no price pattern is present.
const PriceUnavailable = "N/A"

// MaxStars caps star ratings; the storefront renders at most five glyphs
// but duplicated markup can overcount.
const MaxStars = 5

var (
	// Currency symbol optionally followed by a space, then a two-decimal amount.
	pricePattern = regexp.MustCompile(`[$€£]?\s?\d+\.\d{2}`)
	// Any four-digit year in the 2000s.
	yearPattern = regexp.MustCompile(`20\d\d`)
)

// Long-form date as rendered on review cards, e.g. "March 3, 2023".
const longDateLayout = "January 2, 2006"

// ISODate is the normalized date layout written to the snapshot.
const ISODate = "2006-01-02"

// ParsePrice extracts the first currency-decimal token from raw text, or
// PriceUnavailable if none is present.
func ParsePrice(raw string) string {
	match := pricePattern.FindString(raw)
	if match == "" {
		return PriceUnavailable
	}

	return strings.TrimSpace(match)
}

// ClampStars bounds a counted star-glyph total to [0, MaxStars].
func ClampStars(n int) int {
	if n < 0 {
		return 0
	}

	if n > MaxStars {
		return MaxStars
	}

	return n
}

// ParseReviewDate scans lines for the first one containing a year token and
// treats it as the date line. It returns the normalized ISO date, or the
// matched line verbatim when the long-form layout does not parse, together
// with the detected year. A zero year means no line carried a date; the
// caller should discard the record.
func ParseReviewDate(lines []string) (string, int) {
	for _, line := range lines {
		match := yearPattern.FindString(line)
		if match == "" {
			continue
		}

		year, err := strconv.Atoi(match)
		if err != nil {
			continue
		}

		line = strings.TrimSpace(line)

		parsed, err := time.Parse(longDateLayout, line)
		if err != nil {
			// Partial normalization: keep the raw date line.
			return line, year
		}

		return parsed.Format(ISODate), year
	}

	return "", 0
}

// ChooseBodyText picks the longest line as the review or testimonial body.
// Metadata lines (dates, names) are reliably shorter than prose.
func ChooseBodyText(lines []string) string {
	body := ""

	for _, line := range lines {
		if len(line) > len(body) {
			body = line
		}
	}

	return strings.TrimSpace(body)
}

// SplitLines trims text and splits it into its non-empty rendered lines.
func SplitLines(text string) []string {
	var lines []string

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}

// CollapseWhitespace replaces every run of whitespace, line breaks
// included, with a single space and trims the result.
func CollapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// IsBoilerplate reports whether text is heading or filler content: it
// contains one of the known markers or is shorter than minLength.
func IsBoilerplate(text string, markers []string, minLength int) bool {
	if len(text) < minLength {
		return true
	}

	for _, marker := range markers {
		if marker != "" && strings.Contains(text, marker) {
			return true
		}
	}

	return false
}
