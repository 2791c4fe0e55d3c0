package portfolio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess(t *testing.T) {
	images := filepath.Join(t.TempDir(), "images")
	writeImage(t, filepath.Join(images, "cosplay", "loose.jpg"), 40, 20)
	writeImage(t, filepath.Join(images, "cosplay", "full", "kept.jpg"), 20, 40)

	set := filepath.Join(images, "cosplay", "featured", "lucca-day")
	writeImage(t, filepath.Join(set, "x.jpg"), 30, 30)
	writeFile(t, filepath.Join(set, SidecarName), `{"title":"Keep","captions":{"gone":"Old caption"}}`)

	writeImage(t, filepath.Join(images, "corporate", "featured", "summit", "full", "b.jpg"), 10, 10)

	p := &Processor{
		ImagesDir: images,
		Thumbs:    &Thumbnailer{Opts: ThumbOpts{Edge: 16, Quality: 80}},
		Now:       func() time.Time { return now },
	}
	rs, err := p.Process()
	require.NoError(t, err)

	byDir := map[string]ProcessResult{}
	for _, r := range rs {
		byDir[filepath.Join(r.Category, r.Set)] = r
	}
	assert.Equal(t, []string{"loose.jpg"}, byDir["cosplay"].Moved)
	assert.ElementsMatch(t, []string{"loose.jpg", "kept.jpg"}, byDir["cosplay"].Thumbs)
	assert.Equal(t, []string{"x.jpg"}, byDir[filepath.Join("cosplay", "lucca-day")].Moved)
	assert.NotContains(t, byDir, "corporate")
	assert.Contains(t, byDir, filepath.Join("corporate", "summit"))

	assert.FileExists(t, filepath.Join(images, "cosplay", "full", "loose.jpg"))
	assert.NoFileExists(t, filepath.Join(images, "cosplay", "loose.jpg"))
	assert.FileExists(t, filepath.Join(images, "cosplay", "thumbnails", "kept.jpg"))
	assert.FileExists(t, filepath.Join(set, "full", "x.jpg"))
	assert.FileExists(t, filepath.Join(set, "thumbnails", "x.jpg"))

	assert.Equal(t, Sidecar{
		Title:    "Keep",
		Category: "Cosplay",
		Date:     ISODate(now),
		Captions: map[string]string{"gone": "Old caption", "x": "X"},
	}, ReadSidecar(set))

	assert.Equal(t, Sidecar{
		Title:    "Summit",
		Category: "Corporate",
		Date:     ISODate(now),
		Captions: map[string]string{"b": "B"},
	}, ReadSidecar(filepath.Join(images, "corporate", "featured", "summit")))

	// the processed tree feeds the generator
	b := &Builder{ImagesDir: images, ImagesURL: "/images", Stat: FileTimes, Now: time.Now}
	fm := b.Featured("cosplay")
	require.Len(t, fm.Sets, 1)
	assert.Equal(t, "Keep", fm.Sets[0].Title)
	assert.Equal(t, "/images/cosplay/featured/lucca-day/thumbnails/x.jpg", fm.Sets[0].CoverImage.Thumbnail)
	require.NotNil(t, fm.Sets[0].Date)
	assert.Equal(t, ISODate(now), ISODate(*fm.Sets[0].Date))
}

func TestProcessNoCategories(t *testing.T) {
	images := filepath.Join(t.TempDir(), "images")
	require.NoError(t, os.MkdirAll(images, 0o755))

	p := &Processor{ImagesDir: images, Thumbs: &Thumbnailer{}, Now: time.Now}
	_, err := p.Process()
	assert.True(t, errors.Is(err, ErrNoImagesDir), "got %v", err)
}

func TestProcessKeepsHandEditedSidecar(t *testing.T) {
	images := filepath.Join(t.TempDir(), "images")
	set := filepath.Join(images, "cosplay", "featured", "lucca")
	writeImage(t, filepath.Join(set, "full", "a.jpg"), 10, 10)
	writeFile(t, filepath.Join(set, SidecarName),
		`{"title":"Lucca Comics 2023","date":1699000000000,"captions":{"a":"Hand caption"}}`)

	p := &Processor{
		ImagesDir: images,
		Thumbs:    &Thumbnailer{Opts: ThumbOpts{Edge: 16, Quality: 80}},
		Now:       func() time.Time { return now },
	}
	_, err := p.Process()
	require.NoError(t, err)

	assert.Equal(t, Sidecar{
		Title:    "Lucca Comics 2023",
		Category: "Cosplay",
		Date:     "2023-11-03T08:26:40.000Z",
		Captions: map[string]string{"a": "Hand caption"},
	}, ReadSidecar(set))

	b := &Builder{ImagesDir: images, ImagesURL: "/images", Stat: FileTimes, Now: time.Now}
	fm := b.Featured("cosplay")
	require.Len(t, fm.Sets, 1)
	assert.Equal(t, "Lucca Comics 2023", fm.Sets[0].Title)
	require.NotNil(t, fm.Sets[0].Date)
	assert.Equal(t, "2023-11-03T08:26:40.000Z", ISODate(*fm.Sets[0].Date))
}
