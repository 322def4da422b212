package paths

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

var (
	cache     map[string][]byte
	cacheLock sync.Mutex
)

// noFindOpenHTTPImp downloads fileName once and serves later opens from
// memory.
func noFindOpenHTTPImp(fileName string) (File, error) {
	cacheLock.Lock()
	defer cacheLock.Unlock()

	if cache == nil {
		cache = make(map[string][]byte)
	}
	if buf, ok := cache[fileName]; ok {
		glog.V(2).Infof("paths: NoFindOpen(%q): returning reader for cached buffer", fileName)
		return &bytesReaderWithDummyClose{bytes.NewReader(buf)}, nil
	}

	glog.Infof("paths: downloading %q", fileName)
	response, err := http.Get(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "paths.NoFindOpen(%q): failed to open", fileName)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		e := os.ErrInvalid
		if response.StatusCode == http.StatusNotFound {
			e = os.ErrNotExist
		}
		return nil, errors.Wrapf(e, "paths.NoFindOpen(%q): http response.StatusCode=%v, want 200", fileName, response.StatusCode)
	}

	// TODO(ivucica): Explore using ranged reads.
	buf, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, errors.Wrap(err, "copying response to seekable buffer")
	}
	cache[fileName] = buf
	return &bytesReaderWithDummyClose{bytes.NewReader(buf)}, nil
}

type bytesReaderWithDummyClose struct {
	*bytes.Reader
}

func (bytesReaderWithDummyClose) Close() error {
	return nil
}
