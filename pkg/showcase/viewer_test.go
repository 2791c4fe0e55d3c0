package showcase

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alerego/portfolio/pkg/portfolio"
)

func TestResolveSet(t *testing.T) {
	sets := []portfolio.FeaturedSet{set("a", 1), set("b", 2)}

	s, ok := ResolveSet(sets, "b")
	assert.True(t, ok)
	assert.Equal(t, "b", s.Slug)

	s, ok = ResolveSet(sets, "missing")
	assert.False(t, ok)
	assert.Equal(t, "a", s.Slug)

	s, ok = ResolveSet(nil, "a")
	assert.False(t, ok)
	assert.Nil(t, s)
}

func TestSetCategory(t *testing.T) {
	assert.Equal(t, "Cosplay Series", SetCategory(portfolio.FeaturedSet{}, Cosplay))
	assert.Equal(t, "Corporate Events", SetCategory(portfolio.FeaturedSet{}, Corporate))
	assert.Equal(t, "Keynotes", SetCategory(portfolio.FeaturedSet{Category: "Keynotes"}, Corporate))
}

func TestPage(t *testing.T) {
	is := []portfolio.ImageRecord{}
	for i := 0; i < 19; i++ {
		is = append(is, portfolio.ImageRecord{Slug: fmt.Sprint(i)})
	}

	tests := []struct {
		page, perPage int
		wantFirst     string
		wantLen       int
		wantPages     int
	}{
		{1, 8, "0", 8, 3},
		{3, 8, "16", 3, 3},
		{9, 8, "16", 3, 3},
		{-1, 8, "0", 8, 3},
		{2, 0, "8", 8, 3},
		{1, 20, "0", 19, 1},
	}
	for _, tc := range tests {
		got, pages := Page(is, tc.page, tc.perPage)
		assert.Equal(t, tc.wantPages, pages, "%+v", tc)
		if assert.Len(t, got, tc.wantLen, "%+v", tc) {
			assert.Equal(t, tc.wantFirst, got[0].Slug, "%+v", tc)
		}
	}

	got, pages := Page(nil, 1, 8)
	assert.Empty(t, got)
	assert.Equal(t, 1, pages)
}
