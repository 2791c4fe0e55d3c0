package portfolio

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/karrick/godirwalk"
	"k8s.io/klog/v2"
)

// imageExts are the file extensions galleries accept.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".avif": true,
}

// IsImage reports whether name has an accepted image extension.
func IsImage(name string) bool {
	return imageExts[strings.ToLower(filepath.Ext(name))]
}

// readDir lists dir in directory order. A missing or unreadable directory is empty.
func readDir(dir string) godirwalk.Dirents {
	des, err := godirwalk.ReadDirents(dir, nil)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			klog.V(1).Infof("%s does not exist", dir)
		} else {
			klog.Warningf("unable to read %s: %v", dir, err)
		}
		return nil
	}
	return des
}

// listImages returns the names of image files in dir, in directory order.
func listImages(dir string) []string {
	names := []string{}
	for _, de := range readDir(dir) {
		if de.IsRegular() && IsImage(de.Name()) {
			names = append(names, de.Name())
		}
	}
	return names
}

// listDirs returns the names of subdirectories of dir, in directory order.
func listDirs(dir string) []string {
	names := []string{}
	for _, de := range readDir(dir) {
		if de.IsDir() {
			names = append(names, de.Name())
		}
	}
	return names
}

// ScannedImage is a full-size image paired with its thumbnail.
type ScannedImage struct {
	Slug  string
	Name  string
	Thumb string // empty when no thumbnail shares the slug
}

// ScanImages lists the images in fullDir and matches each one to the file in
// thumbDir with the same case-insensitive stem.
func ScanImages(fullDir string, thumbDir string) []ScannedImage {
	thumbs := map[string]string{}
	for _, n := range listImages(thumbDir) {
		thumbs[strings.ToLower(stem(n))] = n
	}

	found := []ScannedImage{}
	for _, n := range listImages(fullDir) {
		s := stem(n)
		found = append(found, ScannedImage{Slug: s, Name: n, Thumb: thumbs[strings.ToLower(s)]})
	}
	klog.V(1).Infof("found %d images in %s (%d thumbnails)", len(found), fullDir, len(thumbs))
	return found
}

// FileTimes returns the modification and status-change times of path.
func FileTimes(path string) (time.Time, time.Time, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return fi.ModTime(), changeTime(fi), nil
}
