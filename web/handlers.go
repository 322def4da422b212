// Package web serves appearance previews over HTTP: raw sprites, item and
// outfit frames, animated outfit GIFs and show list thumbnails.
package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"net/http"
	"os"
	"strconv"
	"sync"

	"github.com/HugoSmits86/nativewebp"
	"github.com/andybons/gogif"
	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/vincent-petithory/dataurl"
	"golang.org/x/sync/errgroup"

	"badc0de.net/pkg/go-tibia-assets/appearances"
	"badc0de.net/pkg/go-tibia-assets/catalog"
	"badc0de.net/pkg/go-tibia-assets/colorize"
	"badc0de.net/pkg/go-tibia-assets/editor"
	"badc0de.net/pkg/go-tibia-assets/preview"
	"badc0de.net/pkg/go-tibia-assets/spr"
	"badc0de.net/pkg/go-tibia-assets/sprcache"
)

const (
	generation = 1 // bump if the way we generate images changes

	maxScale         = 8
	defaultShowLimit = 100
	maxShowLimit     = 1000
)

type Handler struct {
	// catalogLock serializes all catalog access; the catalog itself is not
	// safe for concurrent use.
	catalogLock sync.Mutex
	cat         *catalog.Catalog
	sprites     preview.SpriteSource

	tibiaSprPath string

	// sprCacheLock guards the sprite list window; Wait must not race
	// SetWindow.
	sprCacheLock sync.Mutex
	sprCache     *sprcache.Cache
}

// NewHandler constructs web handler for the passed catalog and sprites. The
// path to the .spr is only used for Last-Modified headers and may be empty.
func NewHandler(cat *catalog.Catalog, sprites preview.SpriteSource, tibiaSprPath string) *Handler {
	return &Handler{
		cat:          cat,
		sprites:      sprites,
		tibiaSprPath: tibiaSprPath,
	}
}

// SetSpriteCache enables /sprlist, which pages through the sprite file the
// way the editor's sprite list scrolls. The handler does not close c.
func (h *Handler) SetSpriteCache(c *sprcache.Cache) {
	h.sprCache = c
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/spr/{idx:[0-9]+}", h.sprHandler)
	r.HandleFunc("/item/{idx:[0-9]+}", h.itemHandler)
	r.HandleFunc("/outfit/{idx:[0-9]+}/{dir:[0-9]+}/{fr:[0-9]+}", h.outfitHandler)
	r.HandleFunc("/outfit/{idx:[0-9]+}/{dir:[0-9]+}.gif", h.outfitGIFHandler)
	r.HandleFunc("/showlist/{category}", h.showListHandler)
	r.HandleFunc("/sprlist", h.sprListHandler)
}

// Router returns a new router with all routes registered.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func (h *Handler) spriteSignature() uint32 {
	if s, ok := h.sprites.(interface{ Signature() uint32 }); ok {
		return s.Signature()
	}
	return 0
}

func (h *Handler) etag(kind string, parts ...interface{}) string {
	return fmt.Sprintf(`W/"%s:%d:%08x:%v"`, kind, generation, h.spriteSignature(), parts)
}

// notModified answers conditional requests whose ETag still matches.
func notModified(w http.ResponseWriter, r *http.Request, etag string) bool {
	if r.Header.Get("If-None-Match") != etag {
		return false
	}
	w.Header().Set("Cache-Control", "public; max-age=36000") // 36000 = 10h
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusNotModified)
	return true
}

func (h *Handler) setCacheHeaders(w http.ResponseWriter, mime, etag string) {
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public; max-age=3600")
	w.Header().Set("ETag", etag)
	if h.tibiaSprPath == "" {
		return
	}
	if s, err := os.Stat(h.tibiaSprPath); err == nil {
		// TODO: max of tibia.dat and tibia.spr
		w.Header().Set("Last-Modified", s.ModTime().Format(http.TimeFormat))
	}
}

// imageMime picks the encoding requested with ?format=.
func imageMime(r *http.Request) string {
	if r.URL.Query().Get("format") == "webp" {
		return "image/webp"
	}
	return "image/png"
}

// writeImage encodes into a buffer first, so encoding errors still produce
// a proper error response.
func (h *Handler) writeImage(w http.ResponseWriter, img image.Image, mime, etag string) {
	buf := &bytes.Buffer{}
	var err error
	switch mime {
	case "image/webp":
		err = nativewebp.Encode(buf, img, nil)
	default:
		err = png.Encode(buf, img)
	}
	if err != nil {
		glog.Errorf("error encoding %s: %v", mime, err)
		http.Error(w, "failed to encode image", http.StatusInternalServerError)
		return
	}
	h.setCacheHeaders(w, mime, etag)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// queryInt returns the integer query parameter name, or def if it is
// missing or invalid.
func queryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func (h *Handler) sprHandler(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.ParseUint(mux.Vars(r)["idx"], 10, 32)
	if err != nil {
		http.Error(w, "idx not a number", http.StatusBadRequest)
		return
	}

	mime := imageMime(r)
	etag := h.etag("spr", idx, mime)
	if notModified(w, r, etag) {
		return
	}

	img, err := h.sprites.SpriteImage(uint32(idx))
	if errors.Is(err, spr.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "failed to decode spr", http.StatusInternalServerError)
		glog.Errorf("error decoding spr: %v", err)
		return
	}
	h.writeImage(w, img, mime, etag)
}

// find looks up an appearance; on failure it writes the error response.
func (h *Handler) find(w http.ResponseWriter, cat appearances.Category, idx string) *appearances.Appearance {
	id, err := strconv.ParseUint(idx, 10, 32)
	if err != nil {
		http.Error(w, "idx not a number", http.StatusBadRequest)
		return nil
	}
	a, err := h.cat.Find(cat, uint32(id))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return nil
	}
	return a
}

func (h *Handler) itemHandler(w http.ResponseWriter, r *http.Request) {
	h.catalogLock.Lock()
	defer h.catalogLock.Unlock()

	a := h.find(w, appearances.Item, mux.Vars(r)["idx"])
	if a == nil {
		return
	}
	opts := preview.Options{Phase: queryInt(r, "fr", 0)}
	scale := clampScale(queryInt(r, "scale", 1))

	mime := imageMime(r)
	etag := h.etag("item", a.ID, opts.Phase, scale, mime)
	if notModified(w, r, etag) {
		return
	}
	img, err := preview.Frame(a, h.sprites, opts)
	if err != nil {
		glog.Errorf("error compositing item %d: %v", a.ID, err)
		http.Error(w, "bad image", http.StatusInternalServerError)
		return
	}
	h.writeImage(w, preview.Scale(img, scale), mime, etag)
}

func clampScale(s int) int {
	if s < 1 {
		return 1
	}
	if s > maxScale {
		return maxScale
	}
	return s
}

// outfitOptions reads the look of an outfit: head, body, legs and feet as
// palette indices, addons as a mask and mount as 0 or 1.
func outfitOptions(r *http.Request, dir int) preview.Options {
	idx := func(name string) int {
		i := queryInt(r, name, 0)
		if i < 0 || i >= colorize.OutfitColorCount {
			return 0
		}
		return i
	}
	return preview.Options{
		Direction: preview.Direction(dir),
		Addons:    preview.AddonMask(queryInt(r, "addons", 0)) & (preview.Addon1 | preview.Addon2),
		Mounted:   queryInt(r, "mount", 0) != 0,
		Colors:    colorize.ColorsFromIndices(idx("head"), idx("body"), idx("legs"), idx("feet")),
	}
}

func (h *Handler) outfitHandler(w http.ResponseWriter, r *http.Request) {
	h.catalogLock.Lock()
	defer h.catalogLock.Unlock()

	vars := mux.Vars(r)
	a := h.find(w, appearances.Outfit, vars["idx"])
	if a == nil {
		return
	}
	dir, _ := strconv.Atoi(vars["dir"])
	fr, _ := strconv.Atoi(vars["fr"])
	opts := outfitOptions(r, dir)
	opts.Phase = fr
	scale := clampScale(queryInt(r, "scale", 1))

	mime := imageMime(r)
	etag := h.etag("outfit", a.ID, dir, fr, opts.Addons, opts.Mounted, opts.Colors, scale, mime)
	if notModified(w, r, etag) {
		return
	}

	img, err := preview.Frame(a, h.sprites, opts)
	if err != nil {
		glog.Errorf("error compositing outfit %d: %v", a.ID, err)
		http.Error(w, "bad image", http.StatusInternalServerError)
		return
	}
	h.writeImage(w, preview.Scale(img, scale), mime, etag)
}

func (h *Handler) outfitGIFHandler(w http.ResponseWriter, r *http.Request) {
	h.catalogLock.Lock()
	defer h.catalogLock.Unlock()

	vars := mux.Vars(r)
	a := h.find(w, appearances.Outfit, vars["idx"])
	if a == nil {
		return
	}
	dir, _ := strconv.Atoi(vars["dir"])
	opts := outfitOptions(r, dir)
	scale := clampScale(queryInt(r, "scale", 1))

	mime := "image/gif"
	etag := h.etag("outfit", a.ID, dir, opts.Addons, opts.Mounted, opts.Colors, scale, mime)
	if notModified(w, r, etag) {
		return
	}

	fg, err := a.FrameGroupAt(0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	phases := fg.SpriteInfo.PhaseCount()
	frames := make([]*image.Paletted, phases)

	var g errgroup.Group
	for i := 0; i < phases; i++ {
		g.Go(func() error {
			o := opts
			o.Phase = i
			img, err := preview.Frame(a, h.sprites, o)
			if err != nil {
				return err
			}
			frames[i] = paletted(preview.Scale(img, scale))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		glog.Errorf("error compositing outfit %d: %v", a.ID, err)
		http.Error(w, "bad image", http.StatusInternalServerError)
		return
	}

	anim := &gif.GIF{BackgroundIndex: 0} // color.Transparent
	for i, f := range frames {
		anim.Image = append(anim.Image, f)
		anim.Delay = append(anim.Delay, phaseDelay(fg.SpriteInfo.Animation, i))
		anim.Disposal = append(anim.Disposal, gif.DisposalBackground)
	}

	buf := &bytes.Buffer{}
	if err := gif.EncodeAll(buf, anim); err != nil {
		glog.Errorf("error encoding gif: %v", err)
		http.Error(w, "failed to encode image", http.StatusInternalServerError)
		return
	}
	h.setCacheHeaders(w, mime, etag)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// paletted quantizes img, keeping index 0 transparent.
func paletted(img image.Image) *image.Paletted {
	quantizer := gogif.MedianCutQuantizer{NumColor: 255} // Up to 255 colors plus 1 space for transparency.
	pal := image.NewPaletted(img.Bounds(), nil)
	quantizer.Quantize(pal, img.Bounds(), img, image.Point{})

	// gogif's MedianCutQuantizer doesn't provide for calculation of the
	// palette without also copying the image. Draw once more over a palette
	// that starts with color.Transparent, so the empty image defaults to it.
	palTransparent := image.NewPaletted(img.Bounds(), append(color.Palette{color.Transparent}, pal.Palette...))
	draw.Draw(palTransparent, img.Bounds(), img, img.Bounds().Min, draw.Over)
	return palTransparent
}

// phaseDelay returns the GIF delay of a phase in 100ths of a second.
func phaseDelay(anim *appearances.Animation, phase int) int {
	if anim == nil || phase >= len(anim.SpritePhases) {
		return 50
	}
	d := int(anim.SpritePhases[phase].DurationMin) / 10
	if d < 2 {
		return 50
	}
	return d
}

type showListEntry struct {
	ID        uint32 `json:"id"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// showListHandler lists a window of a category's show list, rendering
// missing thumbnails on the way. Query: offset, limit.
func (h *Handler) showListHandler(w http.ResponseWriter, r *http.Request) {
	cat, err := appearances.ParseCategory(mux.Vars(r)["category"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	offset := queryInt(r, "offset", 0)
	limit := queryInt(r, "limit", defaultShowLimit)
	if limit < 0 || limit > maxShowLimit {
		limit = maxShowLimit
	}

	h.catalogLock.Lock()
	defer h.catalogLock.Unlock()

	s := editor.NewSession(h.cat, nil, h.sprites)
	if err := s.SelectCategory(cat); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if _, err := s.RefreshThumbnails(offset, limit); err != nil {
		glog.Errorf("error rendering %v thumbnails: %v", cat, err)
	}
	sl, err := h.cat.ShowList(cat)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	out := []showListEntry{}
	for _, e := range sl.Window(offset, limit) {
		entry := showListEntry{ID: e.ID}
		if e.Thumbnail != nil {
			buf := &bytes.Buffer{}
			png.Encode(buf, e.Thumbnail)
			byt, err := dataurl.New(buf.Bytes(), "image/png").MarshalText()
			if err != nil {
				glog.Errorf("failed to encode data url: %v", err)
			} else {
				entry.Thumbnail = string(byt)
			}
		}
		out = append(out, entry)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(out)
}

type sprListEntry struct {
	ID     int    `json:"id"`
	Sprite string `json:"sprite"`
}

// sprListHandler lists the decoded sprites of one sprite list window
// starting at ?offset. Sprites that fail to decode are left out.
func (h *Handler) sprListHandler(w http.ResponseWriter, r *http.Request) {
	if h.sprCache == nil {
		http.Error(w, "sprite list not enabled", http.StatusNotFound)
		return
	}
	offset := queryInt(r, "offset", 1)
	if offset < 1 {
		offset = 1
	}

	h.sprCacheLock.Lock()
	defer h.sprCacheLock.Unlock()

	s := editor.NewSession(h.cat, h.sprCache, h.sprites)
	s.ScrollSprites(offset)
	h.sprCache.Wait()

	out := []sprListEntry{}
	for i := offset; i < offset+editor.ScrollWindow; i++ {
		img, ok := s.Sprite(i)
		if !ok {
			continue
		}
		buf := &bytes.Buffer{}
		if err := png.Encode(buf, img); err != nil {
			glog.Errorf("error encoding sprite %d: %v", i, err)
			continue
		}
		byt, err := dataurl.New(buf.Bytes(), "image/png").MarshalText()
		if err != nil {
			glog.Errorf("failed to encode data url: %v", err)
			continue
		}
		out = append(out, sprListEntry{ID: i, Sprite: string(byt)})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(out)
}
