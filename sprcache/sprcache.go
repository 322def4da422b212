// Package sprcache keeps decoded sprite bitmaps for the part of a sprite
// list that is currently visible.
//
// Sprite sets hold tens of thousands of sprites; decoding all of them up
// front costs too much memory and time. A Cache instead follows a window of
// indices, as reported by the UI when the list scrolls. Indices entering the
// window are decoded in the background on a bounded number of workers;
// indices leaving it are evicted immediately, and their late results are
// thrown away.
package sprcache

import (
	"context"
	"image"
	"io"
	"sync"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"
)

const (
	DefaultWindowSize = 20
	DefaultWorkers    = 4
)

// Source provides raw sprite data by global sprite index.
type Source interface {
	FetchSpriteStream(index int) (io.Reader, error)
}

// Counter is implemented by sources knowing how many indices they have.
// Windows are clamped to it.
type Counter interface {
	Len() int
}

// DecodeFunc turns raw sprite data into a bitmap.
type DecodeFunc func(io.Reader) (image.Image, error)

type Options struct {
	// WindowSize is the largest window the cache accepts; larger windows
	// are truncated. It bounds the number of decoded bitmaps held.
	// Defaults to DefaultWindowSize.
	WindowSize int

	// Workers is the number of decodes that may run at once. Defaults to
	// DefaultWorkers.
	Workers int

	// OnDecoded, if set, is called from a worker goroutine after a bitmap
	// was stored. The cache lock is not held.
	OnDecoded func(index int)
}

type Cache struct {
	src    Source
	decode DecodeFunc
	opts   Options
	sem    *semaphore.Weighted

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	offset  int
	size    int
	entries map[int]*entry
	decoded int
	closed  bool
}

// entry is present in Cache.entries exactly while its index is inside the
// window. img is nil while pending and after a failed decode.
type entry struct {
	img    image.Image
	done   bool
	cancel context.CancelFunc
}

// New creates an empty cache reading from src. Nothing is decoded until
// SetWindow is called.
func New(src Source, decode DecodeFunc, opts Options) *Cache {
	if opts.WindowSize <= 0 {
		opts.WindowSize = DefaultWindowSize
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Cache{
		src:     src,
		decode:  decode,
		opts:    opts,
		sem:     semaphore.NewWeighted(int64(opts.Workers)),
		ctx:     ctx,
		cancel:  cancel,
		entries: make(map[int]*entry),
	}
}

// SetWindow moves the window to [offset, offset+size). It does not block on
// decoding.
//
// Cached indices outside the new window are evicted, and decodes still
// queued for them are cancelled. Indices inside the window that are not yet
// cached or pending are scheduled for decoding.
func (c *Cache) SetWindow(offset, size int) {
	if offset < 0 {
		offset = 0
	}
	if size > c.opts.WindowSize {
		size = c.opts.WindowSize
	}
	if n, ok := c.src.(Counter); ok && offset+size > n.Len() {
		size = n.Len() - offset
	}
	if size < 0 {
		size = 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.offset, c.size = offset, size
	for idx, e := range c.entries {
		if !c.inWindow(idx) {
			c.evict(idx, e)
		}
	}

	scheduled := 0
	for idx := offset; idx < offset+size; idx++ {
		if _, ok := c.entries[idx]; ok {
			continue
		}
		ctx, cancel := context.WithCancel(c.ctx)
		e := &entry{cancel: cancel}
		c.entries[idx] = e
		c.wg.Add(1)
		go c.load(ctx, idx, e)
		scheduled++
	}
	glog.V(2).Infof("sprcache: window [%d,%d), %d scheduled, %d decoded", offset, offset+size, scheduled, c.decoded)
}

// Window returns the current window.
func (c *Cache) Window() (offset, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offset, c.size
}

// Get returns the decoded bitmap for index. ok is false if the index was
// never requested, is outside the window, is still decoding, or failed to
// decode.
func (c *Cache) Get(index int) (img image.Image, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, found := c.entries[index]
	if !found || e.img == nil {
		return nil, false
	}
	return e.img, true
}

// Len returns the number of decoded bitmaps currently held.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.decoded
}

// Pending returns the number of in-window indices whose decode has not
// finished yet.
func (c *Cache) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.entries {
		if !e.done {
			n++
		}
	}
	return n
}

// Wait blocks until every decode scheduled so far has been stored,
// discarded or cancelled. It must not be called concurrently with
// SetWindow.
func (c *Cache) Wait() {
	c.wg.Wait()
}

// Close evicts everything, cancels queued decodes and waits for running
// ones to finish. The cache is unusable afterwards.
func (c *Cache) Close() {
	c.mu.Lock()
	c.closed = true
	for idx, e := range c.entries {
		c.evict(idx, e)
	}
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
}

func (c *Cache) inWindow(idx int) bool {
	return idx >= c.offset && idx < c.offset+c.size
}

// evict must be called with c.mu held.
func (c *Cache) evict(idx int, e *entry) {
	delete(c.entries, idx)
	e.cancel()
	if e.img != nil {
		c.decoded--
		e.img = nil
	}
}

func (c *Cache) load(ctx context.Context, idx int, e *entry) {
	defer c.wg.Done()

	if err := c.sem.Acquire(ctx, 1); err != nil {
		// Evicted while waiting for a worker.
		return
	}
	var img image.Image
	err := ctx.Err()
	if err == nil {
		img, err = c.fetch(idx)
	}
	c.sem.Release(1)

	c.mu.Lock()
	if c.entries[idx] != e {
		c.mu.Unlock()
		glog.V(3).Infof("sprcache: dropping decode of %d, no longer in window", idx)
		return
	}
	e.done = true
	e.cancel()
	if err != nil {
		c.mu.Unlock()
		glog.V(1).Infof("sprcache: sprite %d unavailable: %v", idx, err)
		return
	}
	e.img = img
	c.decoded++
	c.mu.Unlock()

	if c.opts.OnDecoded != nil {
		c.opts.OnDecoded(idx)
	}
}

func (c *Cache) fetch(idx int) (img image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, errors.Errorf("decoding sprite %d panicked: %v", idx, r)
		}
	}()

	r, err := c.src.FetchSpriteStream(idx)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching sprite %d", idx)
	}
	if rc, ok := r.(io.Closer); ok {
		defer rc.Close()
	}
	img, err = c.decode(r)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding sprite %d", idx)
	}
	if img == nil {
		return nil, errors.Errorf("decoding sprite %d produced no image", idx)
	}
	return img, nil
}
