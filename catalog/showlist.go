package catalog

import (
	"image"
	"sort"

	"github.com/nfnt/resize"
)

// ThumbnailSize is the maximum width and height of show list thumbnails.
const ThumbnailSize = 32

// ShowEntry is one row of a show list.
type ShowEntry struct {
	ID        uint32
	Thumbnail image.Image // nil until rendered
}

// ShowList is the per-category projection the editor lists; it only knows
// ids and thumbnails, never full appearances.
type ShowList struct {
	entries []ShowEntry
}

// Entries returns a copy of the list's entries.
func (s *ShowList) Entries() []ShowEntry {
	return append([]ShowEntry(nil), s.entries...)
}

func (s *ShowList) Len() int {
	return len(s.entries)
}

// At returns the entry at row i.
func (s *ShowList) At(i int) (ShowEntry, bool) {
	if i < 0 || i >= len(s.entries) {
		return ShowEntry{}, false
	}
	return s.entries[i], true
}

// IndexOf returns the row of the entry with the passed id, or -1.
func (s *ShowList) IndexOf(id uint32) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Window returns copies of the entries in rows [offset, offset+size), clamped
// to the list.
func (s *ShowList) Window(offset, size int) []ShowEntry {
	if offset < 0 {
		offset = 0
	}
	end := offset + size
	if end > len(s.entries) {
		end = len(s.entries)
	}
	if offset >= end {
		return nil
	}
	return append([]ShowEntry(nil), s.entries[offset:end]...)
}

// SetThumbnail attaches a thumbnail to the entry with the passed id, scaling
// it down to fit ThumbnailSize. A nil image clears the thumbnail. It reports
// whether the id was found.
func (s *ShowList) SetThumbnail(id uint32, img image.Image) bool {
	i := s.IndexOf(id)
	if i < 0 {
		return false
	}
	if img != nil {
		b := img.Bounds()
		if b.Dx() > ThumbnailSize || b.Dy() > ThumbnailSize {
			img = resize.Thumbnail(ThumbnailSize, ThumbnailSize, img, resize.NearestNeighbor)
		}
	}
	s.entries[i].Thumbnail = img
	return true
}

func (s *ShowList) resort() {
	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.entries[i].ID < s.entries[j].ID
	})
}

func (s *ShowList) byID() map[uint32]image.Image {
	m := make(map[uint32]image.Image, len(s.entries))
	for _, e := range s.entries {
		if e.Thumbnail != nil {
			m[e.ID] = e.Thumbnail
		}
	}
	return m
}
