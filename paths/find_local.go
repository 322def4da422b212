package paths

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// EnvAssetsDir names the environment variable pointing at a directory with
// datafiles. It is searched first.
const EnvAssetsDir = "TIBIA_ASSETS_DIR"

func getPossiblePathDirsFSImp() []string {
	var dirs []string
	if d := os.Getenv(EnvAssetsDir); d != "" {
		dirs = append(dirs, d)
	}
	dirs = append(dirs, ".", "datafiles")
	if gopath := os.Getenv("GOPATH"); gopath != "" {
		dirs = append(dirs, filepath.Join(gopath, "src", "badc0de.net", "pkg", "go-tibia-assets", "datafiles"))
	}
	if srcdir := os.Getenv("TEST_SRCDIR"); srcdir != "" {
		dirs = append(dirs, filepath.Join(srcdir, "go_tibia_assets", "datafiles"))
	}
	dirs = append(dirs, os.Args[0]+".runfiles/go_tibia_assets/datafiles")
	return dirs
}

// getPossiblePathsFSImp lists the candidate locations of fileName, in the
// order Find tries them.
func getPossiblePathsFSImp(fileName string) []string {
	dirs := getPossiblePathDirsFSImp()
	paths := make([]string, 0, len(dirs))
	for _, d := range dirs {
		paths = append(paths, filepath.Join(d, fileName))
	}
	return paths
}

func openFSImp(fileName string) (File, error) {
	path := Find(fileName)
	if path == "" {
		return nil, errors.Wrapf(os.ErrNotExist, "paths.Open(%q): not found in %v", fileName, getPossiblePathDirsFSImp())
	}
	return noFindOpenFSImp(path)
}

func noFindOpenFSImp(fileName string) (File, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "paths.NoFindOpen(%q)", fileName)
	}
	return f, nil
}
