package portfolio

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"k8s.io/klog/v2"
)

// ErrNoImagesDir is returned when the images root does not exist.
var ErrNoImagesDir = errors.New("images directory not found")

// ManifestName is the file name of generated manifests.
const ManifestName = "manifest.json"

// Builder assembles manifests from an images tree.
type Builder struct {
	ImagesDir string
	ImagesURL string

	// Stat returns the modification and status-change times of a file.
	Stat func(path string) (time.Time, time.Time, error)
	Now  func() time.Time
}

// NewBuilder returns a Builder reading the real filesystem.
func NewBuilder(c *Config) *Builder {
	return &Builder{
		ImagesDir: c.ImagesDir(),
		ImagesURL: c.ImagesURL,
		Stat:      FileTimes,
		Now:       time.Now,
	}
}

// url joins a root-relative URI under the images prefix.
func (b *Builder) url(parts ...string) string {
	return strings.TrimRight(b.ImagesURL, "/") + "/" + strings.Join(parts, "/")
}

// Category builds the flat manifest of a category's full/ folder, in directory order.
func (b *Builder) Category(category string) CategoryManifest {
	dir := filepath.Join(b.ImagesDir, category)
	found := ScanImages(filepath.Join(dir, "full"), filepath.Join(dir, "thumbnails"))

	is := []ImageRecord{}
	for _, f := range found {
		full := b.url(category, "full", f.Name)
		thumb := full
		if f.Thumb != "" {
			thumb = b.url(category, "thumbnails", f.Thumb)
		}
		is = append(is, ImageRecord{
			Slug:      f.Slug,
			Title:     InferTitle(f.Name, category),
			Thumbnail: thumb,
			Full:      full,
		})
	}

	return CategoryManifest{Category: category, GeneratedAt: b.Now(), Images: is}
}

// Featured builds the manifest of a category's featured sets, in directory order.
// Sets without images are left out.
func (b *Builder) Featured(category string) FeaturedSetManifest {
	featuredDir := filepath.Join(b.ImagesDir, category, "featured")

	ss := []FeaturedSet{}
	for _, slug := range listDirs(featuredDir) {
		s, ok := b.featuredSet(category, slug)
		if !ok {
			klog.V(1).Infof("skipping empty set %s/%s", category, slug)
			continue
		}
		ss = append(ss, s)
	}

	return FeaturedSetManifest{Category: category, GeneratedAt: b.Now(), Sets: ss}
}

func (b *Builder) featuredSet(category string, slug string) (FeaturedSet, bool) {
	setDir := filepath.Join(b.ImagesDir, category, "featured", slug)
	fullDir := filepath.Join(setDir, "full")

	found := ScanImages(fullDir, filepath.Join(setDir, "thumbnails"))
	if len(found) == 0 {
		return FeaturedSet{}, false
	}

	var newest time.Time
	for _, f := range found {
		mt, ct, err := b.Stat(filepath.Join(fullDir, f.Name))
		if err != nil {
			klog.Warningf("stat %s: %v", f.Name, err)
			continue
		}
		for _, t := range []time.Time{mt, ct} {
			if t.After(newest) {
				newest = t
			}
		}
	}

	meta := ReadSidecar(setDir)

	var date *time.Time
	if t, ok := ParseDate(meta.Date); ok {
		date = &t
	} else if !newest.IsZero() {
		date = &newest
	}

	is := []ImageRecord{}
	for _, f := range found {
		full := b.url(category, "featured", slug, "full", f.Name)
		thumb := full
		if f.Thumb != "" {
			thumb = b.url(category, "featured", slug, "thumbnails", f.Thumb)
		}
		// captions stay in the sidecar; titles always come from the filename
		is = append(is, ImageRecord{
			Slug:      f.Slug,
			Title:     InferTitle(f.Name, category),
			Thumbnail: thumb,
			Full:      full,
		})
	}
	sort.SliceStable(is, func(i, j int) bool {
		return is[i].Slug < is[j].Slug
	})

	s := FeaturedSet{
		Slug:        slug,
		Title:       meta.Title,
		Description: meta.Description,
		Category:    meta.Category,
		Date:        date,
		Images:      is,
	}
	if s.Title == "" {
		s.Title = InferTitle(slug, category)
	}
	if len(is) > 0 {
		c := is[0]
		s.CoverImage = &c
	}
	return s, true
}

// Result summarizes what Generate wrote for a category.
type Result struct {
	Category     string `json:"category"`
	Images       int    `json:"images"`
	Sets         int    `json:"sets"`
	ManifestPath string `json:"manifest"`
	FeaturedPath string `json:"featured"`
}

// Generate rebuilds the manifests of every category under the images directory.
func Generate(c *Config) ([]Result, error) {
	return NewBuilder(c).Generate()
}

// Generate rebuilds the manifests of every category. Categories are processed
// one after another; a write failure is reported after the others complete.
func (b *Builder) Generate() ([]Result, error) {
	if _, err := os.Stat(b.ImagesDir); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoImagesDir, b.ImagesDir)
	}

	cats := listDirs(b.ImagesDir)
	if len(cats) == 0 {
		klog.Warningf("no gallery categories found in %s", b.ImagesDir)
		return nil, nil
	}

	rs := []Result{}
	var errs []error
	for _, cat := range cats {
		r := Result{Category: cat}

		m := b.Category(cat)
		r.Images = m.Count()
		r.ManifestPath = filepath.Join(b.ImagesDir, cat, ManifestName)
		if err := writeJSON(r.ManifestPath, m); err != nil {
			errs = append(errs, fmt.Errorf("write %s manifest: %w", cat, err))
			continue
		}
		klog.Infof("generated %d entries for %s -> %s", r.Images, cat, r.ManifestPath)

		fm := b.Featured(cat)
		r.Sets = fm.Count()
		r.FeaturedPath = filepath.Join(b.ImagesDir, cat, "featured", ManifestName)
		if err := os.MkdirAll(filepath.Dir(r.FeaturedPath), 0o755); err != nil {
			errs = append(errs, fmt.Errorf("mkdir: %w", err))
			continue
		}
		if err := writeJSON(r.FeaturedPath, fm); err != nil {
			errs = append(errs, fmt.Errorf("write %s featured manifest: %w", cat, err))
			continue
		}
		klog.Infof("generated %d featured sets for %s -> %s", r.Sets, cat, r.FeaturedPath)

		rs = append(rs, r)
	}

	return rs, errors.Join(errs...)
}

func writeJSON(path string, v any) error {
	bs, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return os.WriteFile(path, bs, 0o644)
}
