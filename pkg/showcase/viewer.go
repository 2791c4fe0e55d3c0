package showcase

import (
	"github.com/alerego/portfolio/pkg/portfolio"
)

// DefaultPageSize is the number of images per set viewer page.
const DefaultPageSize = 8

// ResolveSet finds the set with slug. When there is no match it returns the
// first set and false, so the viewer can rewrite its URL.
func ResolveSet(sets []portfolio.FeaturedSet, slug string) (*portfolio.FeaturedSet, bool) {
	for i := range sets {
		if slug != "" && sets[i].Slug == slug {
			return &sets[i], true
		}
	}
	if len(sets) == 0 {
		return nil, false
	}
	return &sets[0], false
}

// SetCategory is the label shown above a set in the viewer.
func SetCategory(s portfolio.FeaturedSet, k Kind) string {
	if s.Category != "" {
		return s.Category
	}
	if k == Corporate {
		return "Corporate Events"
	}
	return "Cosplay Series"
}

// Page returns the images on page (1-based), clamped to the valid range, and
// the number of pages.
func Page(is []portfolio.ImageRecord, page int, perPage int) ([]portfolio.ImageRecord, int) {
	if perPage <= 0 {
		perPage = DefaultPageSize
	}
	pages := max(1, (len(is)+perPage-1)/perPage)
	page = min(max(page, 1), pages)

	start := (page - 1) * perPage
	end := min(start+perPage, len(is))
	return is[start:end], pages
}
