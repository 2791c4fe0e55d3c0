package portfolio

import (
	"fmt"
	"image"
	_ "image/jpeg" // register decoders for imgio.Open
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"github.com/barasher/go-exiftool"
	_ "golang.org/x/image/webp"
	"k8s.io/klog/v2"
)

// Thumbnailer writes downscaled copies of full-size images.
type Thumbnailer struct {
	Opts ThumbOpts

	// et is optional; without it EXIF orientation is ignored.
	et *exiftool.Exiftool
}

// NewThumbnailer returns a Thumbnailer. Orientation support needs the exiftool binary.
func NewThumbnailer(o ThumbOpts) *Thumbnailer {
	t := &Thumbnailer{Opts: o}
	et, err := exiftool.NewExiftool()
	if err != nil {
		klog.Warningf("exiftool unavailable, thumbnails will not be auto-rotated: %v", err)
		return t
	}
	t.et = et
	return t
}

// Close releases the exiftool process.
func (t *Thumbnailer) Close() error {
	if t.et == nil {
		return nil
	}
	return t.et.Close()
}

// thumbName is the thumbnail file name for a full-size image.
// Scanning matches on the stem, so the extension may differ from the source.
func thumbName(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".png") {
		return stem(name) + ".png"
	}
	return stem(name) + ".jpg"
}

// Refresh creates thumbnails in thumbDir for every image in fullDir that lacks
// an up-to-date one. It returns the names of the thumbnails written.
func (t *Thumbnailer) Refresh(fullDir string, thumbDir string) ([]string, error) {
	if err := os.MkdirAll(thumbDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}

	written := []string{}
	for _, n := range listImages(fullDir) {
		src := filepath.Join(fullDir, n)
		dst := filepath.Join(thumbDir, thumbName(n))

		if strings.EqualFold(filepath.Ext(n), ".avif") {
			klog.Warningf("no avif decoder, skipping thumbnail for %s", src)
			continue
		}

		sst, err := os.Stat(src)
		if err != nil {
			klog.Warningf("stat: %v", err)
			continue
		}

		dst0, err := os.Stat(dst)
		if err == nil && dst0.Size() > int64(128) && !sst.ModTime().After(dst0.ModTime()) {
			klog.V(1).Infof("%s is up to date (%d bytes)", dst, dst0.Size())
			continue
		}

		if err := t.create(src, dst); err != nil {
			return written, fmt.Errorf("create thumb for %s: %w", n, err)
		}
		written = append(written, filepath.Base(dst))
	}
	return written, nil
}

func (t *Thumbnailer) create(src string, dst string) error {
	img, err := imgio.Open(src)
	if err != nil {
		return fmt.Errorf("imgio.Open: %w", err)
	}

	img = orient(img, t.orientation(src))

	x, y := fitInside(img.Bounds().Dx(), img.Bounds().Dy(), t.Opts.Edge)
	if x == 0 || y == 0 {
		return fmt.Errorf("no dimensions for %s: %+v", src, img.Bounds())
	}
	if x != img.Bounds().Dx() || y != img.Bounds().Dy() {
		img = transform.Resize(img, x, y, transform.Lanczos)
	}

	enc := imgio.JPEGEncoder(t.Opts.Quality)
	if strings.HasSuffix(dst, ".png") {
		enc = imgio.PNGEncoder()
	}

	klog.Infof("creating %dx%d thumb: %s", x, y, dst)
	if err := imgio.Save(dst, img, enc); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// fitInside scales w x h so the longest edge is at most edge, never enlarging.
func fitInside(w int, h int, edge int) (int, int) {
	if w <= 0 || h <= 0 || edge <= 0 || (w <= edge && h <= edge) {
		return w, h
	}
	if w >= h {
		return edge, max(1, int(float64(h)*float64(edge)/float64(w)))
	}
	return max(1, int(float64(w)*float64(edge)/float64(h))), edge
}

// orientation returns the EXIF orientation tag, e.g. "Rotate 90 CW".
func (t *Thumbnailer) orientation(path string) string {
	if t.et == nil {
		return ""
	}
	fis := t.et.ExtractMetadata(path)
	if len(fis) == 0 || fis[0].Err != nil {
		return ""
	}
	o, err := fis[0].GetString("Orientation")
	if err != nil {
		klog.V(2).Infof("no orientation for %s: %v", path, err)
		return ""
	}
	return o
}

// orient undoes the camera rotation described by an exiftool orientation string.
func orient(img image.Image, o string) image.Image {
	rotate := func(img image.Image, deg float64) image.Image {
		return transform.Rotate(img, deg, &transform.RotationOptions{ResizeBounds: true})
	}
	switch strings.ToLower(strings.TrimSpace(o)) {
	case "mirror horizontal":
		return transform.FlipH(img)
	case "rotate 180":
		return transform.Rotate(img, 180, nil)
	case "mirror vertical":
		return transform.FlipV(img)
	case "mirror horizontal and rotate 270 cw":
		return rotate(transform.FlipH(img), -90)
	case "rotate 90 cw":
		return rotate(img, 90)
	case "mirror horizontal and rotate 90 cw":
		return rotate(transform.FlipH(img), 90)
	case "rotate 270 cw":
		return rotate(img, -90)
	}
	return img
}
