package showcase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/alerego/portfolio/pkg/portfolio"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// HomeCategory holds the hand-picked home gallery manifest.
const HomeCategory = "home"

// Source reads generated manifests.
type Source interface {
	Featured(ctx context.Context, category string) (*portfolio.FeaturedSetManifest, error)
	Category(ctx context.Context, category string) (*portfolio.CategoryManifest, error)
}

// HTTPSource reads manifests from a deployed site.
type HTTPSource struct {
	// ImagesURL is the absolute URL of the images folder, e.g. https://example.com/images
	ImagesURL string
	Client    *http.Client
}

func (s *HTTPSource) get(ctx context.Context, rel string, v any) error {
	u := strings.TrimRight(s.ImagesURL, "/") + "/" + rel
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")

	c := s.Client
	if c == nil {
		c = http.DefaultClient
	}
	resp, err := c.Do(req)
	if err != nil {
		return fmt.Errorf("get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to load %s: %s", u, resp.Status)
	}

	bs, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	return json.Unmarshal(bs, v)
}

// Featured fetches <category>/featured/manifest.json.
func (s *HTTPSource) Featured(ctx context.Context, category string) (*portfolio.FeaturedSetManifest, error) {
	m := &portfolio.FeaturedSetManifest{}
	if err := s.get(ctx, category+"/featured/"+portfolio.ManifestName, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Category fetches <category>/manifest.json.
func (s *HTTPSource) Category(ctx context.Context, category string) (*portfolio.CategoryManifest, error) {
	m := &portfolio.CategoryManifest{}
	if err := s.get(ctx, category+"/"+portfolio.ManifestName, m); err != nil {
		return nil, err
	}
	return m, nil
}

// DirSource reads manifests from a local images tree.
type DirSource struct {
	ImagesDir string
}

func readJSON(path string, v any) error {
	bs, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(bs, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// Featured reads <category>/featured/manifest.json.
func (s *DirSource) Featured(_ context.Context, category string) (*portfolio.FeaturedSetManifest, error) {
	m := &portfolio.FeaturedSetManifest{}
	if err := readJSON(filepath.Join(s.ImagesDir, category, "featured", portfolio.ManifestName), m); err != nil {
		return nil, err
	}
	return m, nil
}

// Category reads <category>/manifest.json.
func (s *DirSource) Category(_ context.Context, category string) (*portfolio.CategoryManifest, error) {
	m := &portfolio.CategoryManifest{}
	if err := readJSON(filepath.Join(s.ImagesDir, category, portfolio.ManifestName), m); err != nil {
		return nil, err
	}
	return m, nil
}

// featuredSets returns the sets of a category, or none if they cannot be loaded.
func featuredSets(ctx context.Context, src Source, k Kind) []portfolio.FeaturedSet {
	m, err := src.Featured(ctx, string(k))
	if err != nil {
		klog.Warningf("featured manifest unavailable for %s: %v", k, err)
		return nil
	}
	return m.Sets
}

// Load builds the home page tiles. Both featured manifests are fetched at once;
// if neither yields a set, the home manifest and then DefaultHomeItems are used.
func Load(ctx context.Context, src Source, siteURL string, limit int) []Item {
	var cosplay, corporate []portfolio.FeaturedSet

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cosplay = featuredSets(gctx, src, Cosplay)
		return nil
	})
	g.Go(func() error {
		corporate = featuredSets(gctx, src, Corporate)
		return nil
	})
	_ = g.Wait()

	if is := Items(Select(cosplay, corporate, limit), siteURL); len(is) > 0 {
		return is
	}

	m, err := src.Category(ctx, HomeCategory)
	if err != nil {
		klog.Warningf("home gallery manifest unavailable, falling back to curated set: %v", err)
	} else if len(m.Images) > 0 {
		return ImageItems(m.Images)
	}

	return DefaultHomeItems
}
