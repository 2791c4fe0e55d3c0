package showcase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alerego/portfolio/pkg/portfolio"
)

type fakeSource struct {
	featured map[string][]portfolio.FeaturedSet
	home     []portfolio.ImageRecord
	calls    atomic.Int32
}

func (f *fakeSource) Featured(_ context.Context, category string) (*portfolio.FeaturedSetManifest, error) {
	f.calls.Add(1)
	ss, ok := f.featured[category]
	if !ok {
		return nil, errors.New("unavailable")
	}
	return &portfolio.FeaturedSetManifest{Category: category, Sets: ss}, nil
}

func (f *fakeSource) Category(_ context.Context, category string) (*portfolio.CategoryManifest, error) {
	if category != HomeCategory || f.home == nil {
		return nil, errors.New("unavailable")
	}
	return &portfolio.CategoryManifest{Category: category, Images: f.home}, nil
}

func TestLoadFeatured(t *testing.T) {
	src := &fakeSource{featured: map[string][]portfolio.FeaturedSet{
		"cosplay": {set("c", 100)},
		// corporate fails and degrades to no sets
	}}

	got := Load(context.Background(), src, "", 6)
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].Title)
	assert.Equal(t, Cosplay, got[0].Type)
	assert.EqualValues(t, 2, src.calls.Load())
}

func TestLoadFallsBackToHomeManifest(t *testing.T) {
	src := &fakeSource{home: []portfolio.ImageRecord{{Title: "Home", Thumbnail: "/t", Full: "/f"}}}
	got := Load(context.Background(), src, "", 6)
	assert.Equal(t, []Item{{Title: "Home", Thumbnail: "/t", Full: "/f"}}, got)
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	got := Load(context.Background(), &fakeSource{}, "", 6)
	assert.Equal(t, DefaultHomeItems, got)
}

func featuredJSON(t *testing.T, category string, sets ...portfolio.FeaturedSet) []byte {
	t.Helper()
	bs, err := json.Marshal(portfolio.FeaturedSetManifest{Category: category, GeneratedAt: time.Now(), Sets: sets})
	require.NoError(t, err)
	return bs
}

func TestHTTPSource(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/images/cosplay/featured/manifest.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Write(featuredJSON(t, "cosplay", set("c", 100)))
	})
	mux.HandleFunc("/images/corporate/featured/manifest.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Write(featuredJSON(t, "corporate", set("k", 200)))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	src := &HTTPSource{ImagesURL: ts.URL + "/images/", Client: ts.Client()}

	m, err := src.Featured(context.Background(), "cosplay")
	require.NoError(t, err)
	require.Len(t, m.Sets, 1)
	assert.Equal(t, int64(100), m.Sets[0].Date.UnixMilli())

	_, err = src.Category(context.Background(), "cosplay")
	assert.Error(t, err)

	got := Load(context.Background(), src, "https://example.com", 6)
	require.Len(t, got, 2)
	assert.Equal(t, "k", got[0].Title)
	assert.Equal(t, "https://example.com/set-gallery?set=k&type=corporate", got[0].Href)
	assert.Equal(t, "c", got[1].Title)
}

func TestDirSource(t *testing.T) {
	images := t.TempDir()
	p := filepath.Join(images, "corporate", "featured", portfolio.ManifestName)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, featuredJSON(t, "corporate", set("k", 200)), 0o644))

	src := &DirSource{ImagesDir: images}
	got := Load(context.Background(), src, "", 6)
	require.Len(t, got, 1)
	assert.Equal(t, Corporate, got[0].Type)

	_, err := src.Featured(context.Background(), "cosplay")
	assert.Error(t, err)
}
