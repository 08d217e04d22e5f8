package normalize

import "testing"

func TestParsePrice(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"dollar price", "Box of Chocolate Candy\n$9.99", "$9.99"},
		{"euro with space", "Gadget € 10.50 in stock", "€ 10.50"},
		{"pound price", "Tea £4.25", "£4.25"},
		{"bare decimal", "price: 12.34", "12.34"},
		{"no decimals", "costs 15 dollars", PriceUnavailable},
		{"one decimal digit", "1.5", PriceUnavailable},
		{"empty input", "", PriceUnavailable},
		{"only text", "navigation header footer", PriceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParsePrice(tc.raw); got != tc.want {
				t.Errorf("ParsePrice(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestClampStars(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{-3, 0},
		{0, 0},
		{3, 3},
		{5, 5},
		{7, 5},
		{100, 5},
	}

	for _, tc := range cases {
		if got := ClampStars(tc.in); got != tc.want {
			t.Errorf("ClampStars(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseReviewDate_LongForm(t *testing.T) {
	date, year := ParseReviewDate([]string{"March 3, 2023", "Great product, would buy again"})

	if date != "2023-03-03" {
		t.Errorf("Expected normalized date 2023-03-03, got %q", date)
	}

	if year != 2023 {
		t.Errorf("Expected year 2023, got %d", year)
	}
}

func TestParseReviewDate_OtherYear(t *testing.T) {
	_, year := ParseReviewDate([]string{"March 3, 2022", "Old review"})

	if year != 2022 {
		t.Errorf("Expected year 2022, got %d", year)
	}
}

func TestParseReviewDate_FallbackKeepsRawLine(t *testing.T) {
	date, year := ParseReviewDate([]string{"Posted on 2023-05-10", "body text"})

	if year != 2023 {
		t.Errorf("Expected year 2023, got %d", year)
	}

	// Unparseable long-form date keeps the matched line verbatim.
	if date != "Posted on 2023-05-10" {
		t.Errorf("Expected raw date line, got %q", date)
	}
}

func TestParseReviewDate_NoYear(t *testing.T) {
	date, year := ParseReviewDate([]string{"Jane D.", "Loved it, shipping was fast"})

	if year != 0 {
		t.Errorf("Expected zero year for dateless lines, got %d", year)
	}

	if date != "" {
		t.Errorf("Expected empty date, got %q", date)
	}
}

func TestParseReviewDate_FirstYearLineWins(t *testing.T) {
	date, year := ParseReviewDate([]string{"June 12, 2023", "Mentioned 2021 in the text"})

	if year != 2023 {
		t.Errorf("Expected year from first matching line, got %d", year)
	}

	if date != "2023-06-12" {
		t.Errorf("Expected 2023-06-12, got %q", date)
	}
}

func TestChooseBodyText(t *testing.T) {
	lines := []string{"May 1, 2023", "J. Smith", "This product exceeded every expectation I had"}

	if got := ChooseBodyText(lines); got != "This product exceeded every expectation I had" {
		t.Errorf("Expected the longest line as body, got %q", got)
	}

	if got := ChooseBodyText(nil); got != "" {
		t.Errorf("Expected empty body for no lines, got %q", got)
	}
}

func TestSplitLines(t *testing.T) {
	lines := SplitLines("  Title \n\n  $9.99  \n")

	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %v", len(lines), lines)
	}

	if lines[0] != "Title" || lines[1] != "$9.99" {
		t.Errorf("Unexpected lines: %v", lines)
	}
}

func TestCollapseWhitespace(t *testing.T) {
	if got := CollapseWhitespace(" Great \n product\t here "); got != "Great product here" {
		t.Errorf("CollapseWhitespace = %q", got)
	}
}

func TestIsBoilerplate(t *testing.T) {
	markers := []string{"Take a look", "Reviews"}

	if !IsBoilerplate("Take a look at our Reviews", markers, 10) {
		t.Error("Expected heading text to be boilerplate")
	}

	if IsBoilerplate("Fast shipping, great packaging!", markers, 10) {
		t.Error("Expected genuine testimonial to pass")
	}

	if !IsBoilerplate("too short", markers, 10) {
		t.Error("Expected sub-threshold text to be boilerplate")
	}
}
