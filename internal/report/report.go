// Package report renders a run summary for the collected snapshot.
package report

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"storesnap/internal/models"
)

// Render returns an aligned summary table of the snapshot's collections:
// record count and average star rating per collection. Cell padding uses
// display width so wide characters in future columns stay aligned.
func Render(snap *models.Snapshot) string {
	rows := [][]string{
		{"Collection", "Records", "Avg rating"},
		{models.CollectionProducts, fmt.Sprintf("%d", len(snap.Products)), "-"},
		{models.CollectionReviews, fmt.Sprintf("%d", len(snap.Reviews)), avgRating(reviewRatings(snap.Reviews))},
		{models.CollectionTestimonials, fmt.Sprintf("%d", len(snap.Testimonials)), avgRating(testimonialRatings(snap.Testimonials))},
	}

	widths := columnWidths(rows)

	var sb strings.Builder

	for i, row := range rows {
		writeRow(&sb, row, widths)

		if i == 0 {
			writeSeparator(&sb, widths)
		}
	}

	return sb.String()
}

func reviewRatings(records []models.ReviewRecord) []int {
	ratings := make([]int, len(records))
	for i, r := range records {
		ratings[i] = r.Rating
	}

	return ratings
}

func testimonialRatings(records []models.TestimonialRecord) []int {
	ratings := make([]int, len(records))
	for i, r := range records {
		ratings[i] = r.Rating
	}

	return ratings
}

func avgRating(ratings []int) string {
	if len(ratings) == 0 {
		return "-"
	}

	total := 0
	for _, r := range ratings {
		total += r
	}

	return fmt.Sprintf("%.1f", float64(total)/float64(len(ratings)))
}

func columnWidths(rows [][]string) []int {
	widths := make([]int, len(rows[0]))

	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	return widths
}

func writeRow(sb *strings.Builder, row []string, widths []int) {
	sb.WriteString("|")

	for i, cell := range row {
		sb.WriteString(" ")
		sb.WriteString(cell)

		if padding := widths[i] - runewidth.StringWidth(cell); padding > 0 {
			sb.WriteString(strings.Repeat(" ", padding))
		}

		sb.WriteString(" |")
	}

	sb.WriteString("\n")
}

func writeSeparator(sb *strings.Builder, widths []int) {
	sb.WriteString("|")

	for _, w := range widths {
		sb.WriteString(" ")
		sb.WriteString(strings.Repeat("-", w))
		sb.WriteString(" |")
	}

	sb.WriteString("\n")
}
