package showcase

import (
	"net/url"
	"strings"

	"github.com/alerego/portfolio/pkg/portfolio"
)

// monthLabel is how set dates appear in tile descriptions, e.g. "Mar 2024".
const monthLabel = "Jan 2006"

// Item is a tile on the home page.
type Item struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Thumbnail   string  `json:"thumbnail"`
	Full        string  `json:"full"`
	Href        string  `json:"href,omitempty"`
	Label       string  `json:"label,omitempty"`
	Date        *string `json:"date"`
	Type        Kind    `json:"type,omitempty"`
}

// SetURL links to the set viewer page for a set. Without a slug it is the
// site-relative viewer path.
func SetURL(siteURL string, slug string, k Kind) string {
	if slug == "" {
		return "/set-gallery"
	}
	base := strings.TrimRight(siteURL, "/") + "/set-gallery"
	if k == "" {
		k = Cosplay
	}
	return base + "?" + url.Values{"set": {slug}, "type": {string(k)}}.Encode()
}

func label(k Kind) string {
	if k == Corporate {
		return "Corporate event"
	}
	return "Cosplay set"
}

func categoryLabel(e Entry) string {
	if c := strings.TrimSpace(e.Set.Category); c != "" {
		return c
	}
	if e.Type == Corporate {
		return "Corporate"
	}
	return "Cosplay"
}

// Items projects selected sets onto home page tiles.
func Items(es []Entry, siteURL string) []Item {
	is := []Item{}
	for _, e := range es {
		c := e.Set.CoverImage
		if c == nil {
			continue
		}
		thumb, full := c.Thumbnail, c.Full
		if thumb == "" {
			thumb = full
		}
		if full == "" {
			full = thumb
		}
		if thumb == "" {
			continue
		}

		desc := categoryLabel(e)
		var date *string
		if e.Set.Date != nil {
			desc += " · " + e.Set.Date.UTC().Format(monthLabel)
			d := portfolio.ISODate(*e.Set.Date)
			date = &d
		}

		title := e.Set.Title
		if title == "" {
			title = portfolio.TitleCase(e.Set.Slug)
		}

		is = append(is, Item{
			Title:       title,
			Description: desc,
			Thumbnail:   thumb,
			Full:        full,
			Href:        SetURL(siteURL, e.Set.Slug, e.Type),
			Label:       label(e.Type),
			Date:        date,
			Type:        e.Type,
		})
	}
	return is
}

// ImageItems turns plain manifest images into tiles.
func ImageItems(rs []portfolio.ImageRecord) []Item {
	is := []Item{}
	for _, r := range rs {
		is = append(is, Item{Title: r.Title, Description: r.Description, Thumbnail: r.Thumbnail, Full: r.Full})
	}
	return is
}

// DefaultHomeItems are shown when no manifest can be loaded.
var DefaultHomeItems = []Item{
	{
		Title:       "Neon Dreams Collection",
		Description: "Cyberpunk cosplay series with LED lighting",
		Thumbnail:   "/images/cosplay/thumbnails/akiraflame-LHQ-03.jpg",
		Full:        "/images/cosplay/full/akiraflame-LHQ-03.jpg",
	},
	{
		Title:       "Convention Chronicles",
		Description: "Best moments from CBG25",
		Thumbnail:   "/images/cosplay/thumbnails/CBG25-brandy1-LHQ-01.jpg",
		Full:        "/images/cosplay/full/CBG25-brandy1-LHQ-01.jpg",
	},
	{
		Title:       "Character Study",
		Description: "Portrait focus with dramatic lighting",
		Thumbnail:   "/images/cosplay/thumbnails/celine-isa-LHQ-03.jpg",
		Full:        "/images/cosplay/full/celine-isa-LHQ-03.jpg",
	},
	{
		Title:       "Corporate Elegance",
		Description: "Professional portraiture",
		Thumbnail:   "/images/corporate/thumbnails/corporate-1005.jpg",
		Full:        "/images/corporate/full/corporate-1005.jpg",
	},
	{
		Title:       "Business Dynamics",
		Description: "Modern workplace photography",
		Thumbnail:   "/images/corporate/thumbnails/corporate-1032.jpg",
		Full:        "/images/corporate/full/corporate-1032.jpg",
	},
	{
		Title:       "Innovation Spaces",
		Description: "Contemporary office environments",
		Thumbnail:   "/images/corporate/thumbnails/corporate-1035.jpg",
		Full:        "/images/corporate/full/corporate-1035.jpg",
	},
}
