package portfolio

import (
	"encoding/json"
	"time"
)

// isoLayout matches the ISO-8601 form browsers emit: UTC with milliseconds.
const isoLayout = "2006-01-02T15:04:05.000Z"

// dateLayouts are tried in order when reading a human-entered date.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
	"2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ISODate formats t the way the manifests store dates.
func ISODate(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// ParseDate leniently parses a date, returning false if nothing matched.
func ParseDate(s string) (time.Time, bool) {
	for _, l := range dateLayouts {
		t, err := time.Parse(l, s)
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ImageRecord is a single photo as listed in a manifest.
type ImageRecord struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	Full        string `json:"full"`
}

// CategoryManifest is the flat catalog of a category's full/ folder.
type CategoryManifest struct {
	Category    string
	GeneratedAt time.Time
	Images      []ImageRecord
}

// Count is the number of images.
func (m CategoryManifest) Count() int {
	return len(m.Images)
}

type categoryManifestJSON struct {
	Category    string        `json:"category"`
	GeneratedAt string        `json:"generatedAt"`
	Count       int           `json:"count"`
	Images      []ImageRecord `json:"images"`
}

// MarshalJSON derives count from the image list.
func (m CategoryManifest) MarshalJSON() ([]byte, error) {
	is := m.Images
	if is == nil {
		is = []ImageRecord{}
	}
	return json.Marshal(categoryManifestJSON{
		Category:    m.Category,
		GeneratedAt: ISODate(m.GeneratedAt),
		Count:       len(is),
		Images:      is,
	})
}

// UnmarshalJSON ignores the stored count.
func (m *CategoryManifest) UnmarshalJSON(bs []byte) error {
	var j categoryManifestJSON
	if err := json.Unmarshal(bs, &j); err != nil {
		return err
	}
	m.Category = j.Category
	m.GeneratedAt, _ = ParseDate(j.GeneratedAt)
	m.Images = j.Images
	return nil
}

// FeaturedSet is a curated event or album within a category.
type FeaturedSet struct {
	Slug        string
	Title       string
	Description string
	Category    string
	Date        *time.Time
	CoverImage  *ImageRecord
	Images      []ImageRecord
}

// Count is the number of images.
func (s FeaturedSet) Count() int {
	return len(s.Images)
}

type featuredSetJSON struct {
	Slug        string        `json:"slug"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Date        *string       `json:"date"`
	Count       int           `json:"count"`
	CoverImage  *ImageRecord  `json:"coverImage"`
	Images      []ImageRecord `json:"images"`
}

// MarshalJSON writes date as an ISO string or null and derives count.
func (s FeaturedSet) MarshalJSON() ([]byte, error) {
	is := s.Images
	if is == nil {
		is = []ImageRecord{}
	}
	j := featuredSetJSON{
		Slug:        s.Slug,
		Title:       s.Title,
		Description: s.Description,
		Category:    s.Category,
		Count:       len(is),
		CoverImage:  s.CoverImage,
		Images:      is,
	}
	if s.Date != nil {
		d := ISODate(*s.Date)
		j.Date = &d
	}
	return json.Marshal(j)
}

// UnmarshalJSON treats an unparseable date as absent.
func (s *FeaturedSet) UnmarshalJSON(bs []byte) error {
	var j featuredSetJSON
	if err := json.Unmarshal(bs, &j); err != nil {
		return err
	}
	*s = FeaturedSet{
		Slug:        j.Slug,
		Title:       j.Title,
		Description: j.Description,
		Category:    j.Category,
		CoverImage:  j.CoverImage,
		Images:      j.Images,
	}
	if j.Date != nil {
		if t, ok := ParseDate(*j.Date); ok {
			s.Date = &t
		}
	}
	return nil
}

// FeaturedSetManifest lists the featured sets of one category.
type FeaturedSetManifest struct {
	Category    string
	GeneratedAt time.Time
	Sets        []FeaturedSet
}

// Count is the number of sets.
func (m FeaturedSetManifest) Count() int {
	return len(m.Sets)
}

type featuredSetManifestJSON struct {
	Category    string        `json:"category"`
	GeneratedAt string        `json:"generatedAt"`
	Count       int           `json:"count"`
	Sets        []FeaturedSet `json:"sets"`
}

// MarshalJSON derives count from the set list.
func (m FeaturedSetManifest) MarshalJSON() ([]byte, error) {
	ss := m.Sets
	if ss == nil {
		ss = []FeaturedSet{}
	}
	return json.Marshal(featuredSetManifestJSON{
		Category:    m.Category,
		GeneratedAt: ISODate(m.GeneratedAt),
		Count:       len(ss),
		Sets:        ss,
	})
}

// UnmarshalJSON ignores the stored count.
func (m *FeaturedSetManifest) UnmarshalJSON(bs []byte) error {
	var j featuredSetManifestJSON
	if err := json.Unmarshal(bs, &j); err != nil {
		return err
	}
	m.Category = j.Category
	m.GeneratedAt, _ = ParseDate(j.GeneratedAt)
	m.Sets = j.Sets
	return nil
}
