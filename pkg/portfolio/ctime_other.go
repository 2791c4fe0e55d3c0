//go:build !linux && !darwin

package portfolio

import (
	"io/fs"
	"time"
)

// changeTime falls back to the modification time where ctime is unavailable.
func changeTime(fi fs.FileInfo) time.Time {
	return fi.ModTime()
}
