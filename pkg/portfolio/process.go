package portfolio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/otiai10/copy"
	"k8s.io/klog/v2"
)

// ProcessResult describes the maintenance done on one folder.
type ProcessResult struct {
	Category string
	Set      string // empty for the category root
	Moved    []string
	Thumbs   []string
}

// Processor normalizes the images tree ahead of manifest generation.
type Processor struct {
	ImagesDir string
	Thumbs    *Thumbnailer
	Now       func() time.Time
}

// NewProcessor returns a Processor for the configured images tree.
func NewProcessor(c *Config, t *Thumbnailer) *Processor {
	return &Processor{ImagesDir: c.ImagesDir(), Thumbs: t, Now: time.Now}
}

// Process refreshes every category root and every featured set.
func (p *Processor) Process() ([]ProcessResult, error) {
	cats := listDirs(p.ImagesDir)
	if len(cats) == 0 {
		return nil, fmt.Errorf("%w: no categories under %s", ErrNoImagesDir, p.ImagesDir)
	}

	rs := []ProcessResult{}
	for _, cat := range cats {
		r, err := p.categoryRoot(cat)
		if err != nil {
			return rs, fmt.Errorf("category %s: %w", cat, err)
		}
		if r != nil {
			klog.Infof("%s: %d gallery thumbnails refreshed, %d files reorganised", cat, len(r.Thumbs), len(r.Moved))
			rs = append(rs, *r)
		}

		sets := listDirs(filepath.Join(p.ImagesDir, cat, "featured"))
		sort.Strings(sets)
		for _, s := range sets {
			r, err := p.set(cat, s)
			if err != nil {
				return rs, fmt.Errorf("set %s/%s: %w", cat, s, err)
			}
			klog.Infof("%s/%s: %d thumbnails refreshed, %d files reorganised", cat, s, len(r.Thumbs), len(r.Moved))
			rs = append(rs, r)
		}
	}
	return rs, nil
}

// normalize ensures full/ and thumbnails/ exist under dir, moves loose images
// into full/ and refreshes thumbnails.
func (p *Processor) normalize(dir string) ([]string, []string, error) {
	fullDir := filepath.Join(dir, "full")
	thumbDir := filepath.Join(dir, "thumbnails")
	for _, d := range []string{fullDir, thumbDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, nil, fmt.Errorf("mkdir: %w", err)
		}
	}

	moved, err := moveLooseImages(dir, fullDir)
	if err != nil {
		return moved, nil, fmt.Errorf("move: %w", err)
	}

	thumbs, err := p.Thumbs.Refresh(fullDir, thumbDir)
	if err != nil {
		return moved, thumbs, fmt.Errorf("thumbnails: %w", err)
	}
	return moved, thumbs, nil
}

func (p *Processor) categoryRoot(cat string) (*ProcessResult, error) {
	dir := filepath.Join(p.ImagesDir, cat)
	moved, thumbs, err := p.normalize(dir)
	if err != nil {
		return nil, err
	}

	if len(listImages(filepath.Join(dir, "full"))) == 0 && len(thumbs) == 0 && len(moved) == 0 {
		return nil, nil
	}
	return &ProcessResult{Category: cat, Moved: moved, Thumbs: thumbs}, nil
}

func (p *Processor) set(cat string, slug string) (ProcessResult, error) {
	dir := filepath.Join(p.ImagesDir, cat, "featured", slug)
	moved, thumbs, err := p.normalize(dir)
	if err != nil {
		return ProcessResult{}, err
	}

	names := listImages(filepath.Join(dir, "full"))
	sort.Strings(names)

	meta := UpsertSidecar(ReadSidecar(dir), slug, cat, names, p.Now())
	if err := WriteSidecar(dir, meta); err != nil {
		return ProcessResult{}, fmt.Errorf("write sidecar: %w", err)
	}

	return ProcessResult{Category: cat, Set: slug, Moved: moved, Thumbs: thumbs}, nil
}

// moveLooseImages moves image files sitting directly in dir into fullDir.
func moveLooseImages(dir string, fullDir string) ([]string, error) {
	moved := []string{}
	for _, n := range listImages(dir) {
		from := filepath.Join(dir, n)
		to := filepath.Join(fullDir, n)
		if err := os.Rename(from, to); err != nil {
			// rename fails across filesystems
			klog.V(1).Infof("rename %s: %v, copying instead", from, err)
			if err := copy.Copy(from, to); err != nil {
				return moved, fmt.Errorf("copy: %w", err)
			}
			if err := os.Remove(from); err != nil {
				return moved, fmt.Errorf("remove: %w", err)
			}
		}
		klog.V(1).Infof("moved %s -> %s", from, to)
		moved = append(moved, n)
	}
	return moved, nil
}
