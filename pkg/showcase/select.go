// Package showcase picks and presents featured sets for the portfolio pages.
package showcase

import (
	"fmt"
	"slices"

	"github.com/alerego/portfolio/pkg/portfolio"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Kind is the gallery a featured set comes from.
type Kind string

const (
	Cosplay   Kind = "cosplay"
	Corporate Kind = "corporate"
)

// DefaultLimit is the number of sets shown on the home page.
const DefaultLimit = 6

// Entry is a featured set tagged with its source gallery and recency.
type Entry struct {
	Set       portfolio.FeaturedSet
	Type      Kind
	Timestamp int64 // epoch millis of Set.Date, 0 if unknown
}

func (e Entry) key() string {
	return fmt.Sprintf("%s::%s", e.Type, e.Set.Slug)
}

func (e Entry) name() string {
	if e.Set.Title != "" {
		return e.Set.Title
	}
	return e.Set.Slug
}

// hasCover reports whether a set can be shown as a tile.
func hasCover(s portfolio.FeaturedSet) bool {
	return s.CoverImage != nil && (s.CoverImage.Thumbnail != "" || s.CoverImage.Full != "")
}

// entries drops sets without a cover and attaches timestamps.
func entries(sets []portfolio.FeaturedSet, k Kind) []Entry {
	es := []Entry{}
	for _, s := range sets {
		if !hasCover(s) {
			continue
		}
		e := Entry{Set: s, Type: k}
		if s.Date != nil {
			e.Timestamp = s.Date.UnixMilli()
		}
		es = append(es, e)
	}
	return es
}

// byRecency orders newest first, then by title in English collation order.
// A collator is not safe for concurrent use, so each call gets its own.
func byRecency() func(a, b Entry) int {
	c := collate.New(language.English)
	return func(a, b Entry) int {
		if a.Timestamp != b.Timestamp {
			if a.Timestamp > b.Timestamp {
				return -1
			}
			return 1
		}
		return c.CompareString(a.name(), b.name())
	}
}

// Select picks up to limit sets for the home page. Each non-empty source gets
// up to half the slots; the rest are filled by recency from both.
func Select(cosplay []portfolio.FeaturedSet, corporate []portfolio.FeaturedSet, limit int) []Entry {
	if limit <= 0 {
		limit = DefaultLimit
	}
	cmp := byRecency()

	cs := entries(cosplay, Cosplay)
	ks := entries(corporate, Corporate)
	if len(cs) == 0 && len(ks) == 0 {
		return []Entry{}
	}
	slices.SortStableFunc(cs, cmp)
	slices.SortStableFunc(ks, cmp)

	half := max(1, limit/2)
	sel := []Entry{}
	seen := map[string]bool{}
	for _, e := range slices.Concat(cs[:min(half, len(cs))], ks[:min(half, len(ks))]) {
		if !seen[e.key()] {
			sel = append(sel, e)
			seen[e.key()] = true
		}
	}

	pool := slices.Concat(cs, ks)
	slices.SortStableFunc(pool, cmp)
	for _, e := range pool {
		if len(sel) >= limit {
			break
		}
		if seen[e.key()] {
			continue
		}
		sel = append(sel, e)
		seen[e.key()] = true
	}

	slices.SortStableFunc(sel, cmp)
	if len(sel) > limit {
		sel = sel[:limit]
	}
	return sel
}
