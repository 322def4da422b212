// Package paths locates datafiles such as Tibia.dat and Tibia.spr in the
// usual places: an explicitly configured directory, the working directory,
// the source tree and Bazel runfiles.
package paths

import (
	"io"
	"os"
	"strings"

	"github.com/golang/glog"
)

// File is an opened datafile. Sprite files are read at random offsets,
// so all datafiles support ReadAt.
type File interface {
	io.ReadCloser
	io.Seeker
	io.ReaderAt
}

// Find locates the passed datafile shortname and returns an absolute or
// relative path to find the datafile at.
//
// For example, for "Tibia.spr" it may return
// "mybinary.runfiles/go_tibia_assets/datafiles/Tibia.spr".
func Find(fileName string) string {
	for _, path := range getPossiblePathsFSImp(fileName) {
		if f, err := os.Open(path); err == nil {
			f.Close()
			glog.V(2).Infof("paths.Find(%q)=%s", fileName, path)
			return path
		}
	}
	return ""
}

// Open locates the passed file in the same locations that Find would look, and
// opens it. If Find returns an empty string, an error is returned.
func Open(fileName string) (File, error) {
	return openFSImp(fileName)
}

// NoFindOpen opens the file at exactly the passed path. http:// and https://
// URLs are downloaded.
func NoFindOpen(fileName string) (File, error) {
	if strings.HasPrefix(fileName, "http://") || strings.HasPrefix(fileName, "https://") {
		return noFindOpenHTTPImp(fileName)
	}
	return noFindOpenFSImp(fileName)
}
