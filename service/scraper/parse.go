package scrapersvc

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var ratingWords = map[string]bool{
	"One": true, "Two": true, "Three": true, "Four": true, "Five": true,
}

// parsePrice strips currency symbols and stray encoding artifacts from
// a price cell like "£51.77".
func parsePrice(raw string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, raw)
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ratingFromClass extracts the ordinal word from a star-rating class
// list like "star-rating Three".
func ratingFromClass(class string) string {
	for _, w := range strings.Fields(class) {
		if ratingWords[w] {
			return w
		}
	}
	return "Not rated"
}

func normalizeAvailability(raw string) string {
	if strings.Contains(strings.ToLower(raw), "in stock") {
		return "In Stock"
	}
	return "Out of Stock"
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// categoryFromBreadcrumb reads the category link out of a detail
// page's breadcrumb trail (Home > Books > <category> > <title>).
func categoryFromBreadcrumb(doc *goquery.Document) string {
	items := doc.Find("ul.breadcrumb li a")
	if items.Length() < 3 {
		return ""
	}
	return cleanText(items.Eq(2).Text())
}
