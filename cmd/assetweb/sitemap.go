package main

import (
	"encoding/xml"
	"fmt"
	"net/http"

	"badc0de.net/pkg/go-tibia-assets/appearances"
	"badc0de.net/pkg/go-tibia-assets/catalog"
	"badc0de.net/pkg/go-tibia-assets/preview"
)

type SitemapChangeFreq int

const (
	SitemapChangeFreqUnspecified SitemapChangeFreq = 0
	SitemapChangeFreqAlways      SitemapChangeFreq = iota
	SitemapChangeFreqHourly
	SitemapChangeFreqDaily
	SitemapChangeFreqWeekly
	SitemapChangeFreqMonthly
	SitemapChangeFreqYearly
	SitemapChangeFreqNever
)

func (s SitemapChangeFreq) String() string {
	switch s {
	case SitemapChangeFreqUnspecified:
		return ""
	case SitemapChangeFreqAlways:
		return "always"
	case SitemapChangeFreqHourly:
		return "hourly"
	case SitemapChangeFreqDaily:
		return "daily"
	case SitemapChangeFreqWeekly:
		return "weekly"
	case SitemapChangeFreqMonthly:
		return "monthly"
	case SitemapChangeFreqYearly:
		return "yearly"
	case SitemapChangeFreqNever:
		return "never"
	}
	return "bad value"
}

// MarshalText makes the change frequency appear by name in the sitemap.
func (s SitemapChangeFreq) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type SitemapURLImage struct {
	// xml.Name would be 'http://www.google.com/schemas/sitemap-image/1.1 image'

	Loc string `xml:"image:loc"` // image is the namespace 'http://www.google.com/schemas/sitemap-image/1.1'
}

type SitemapURL struct {
	XMLName    xml.Name          `xml:"url"`
	Loc        string            `xml:"loc"`
	LastMod    string            `xml:"lastmod,omitempty"`
	ChangeFreq SitemapChangeFreq `xml:"changefreq,omitempty"`
	Priority   float32           `xml:"priority,omitempty"` // 0.0-1.0, default if unspecified is 0.5

	Image []SitemapURLImage `xml:"image:image,omitempty"`
}

type SitemapURLSet struct {
	XMLName    xml.Name     `xml:"http://www.sitemaps.org/schemas/sitemap/0.9 urlset"`
	XMLNSImage string       `xml:"xmlns:image,attr"`
	URL        []SitemapURL `xml:"url,omitempty"` // up to 50k entries
}

// Write serves the url set; it is an http.HandlerFunc.
func (e *SitemapURLSet) Write(w http.ResponseWriter, r *http.Request) {
	e.XMLNSImage = "http://www.google.com/schemas/sitemap-image/1.1"

	w.Header().Set("Content-Type", "application/xml")

	fmt.Fprintf(w, "%s", xml.Header)
	enc := xml.NewEncoder(w)
	enc.Indent("", " ")
	err := enc.Encode(e)
	if err != nil {
		http.Error(w, "<error>could not encode sitemap</error>", http.StatusInternalServerError)
		return
	}
}

// outfitSitemap lists the animated preview of every outfit, facing south.
func outfitSitemap(c *catalog.Catalog, baseURL string) *SitemapURLSet {
	s := &SitemapURLSet{}
	outfits, err := c.All(appearances.Outfit)
	if err != nil {
		return s
	}
	for _, o := range outfits {
		loc := fmt.Sprintf("%s/outfit/%d/%d.gif", baseURL, o.ID, preview.DefaultDirection)
		s.URL = append(s.URL, SitemapURL{
			Loc:        loc,
			ChangeFreq: SitemapChangeFreqMonthly,
			Image:      []SitemapURLImage{{Loc: loc}},
		})
	}
	return s
}
