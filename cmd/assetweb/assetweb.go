// Command assetweb serves previews of the loaded datafiles over HTTP.
package main

import (
	"flag"
	"net"
	"net/http"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/common-nighthawk/go-figure"
	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"golang.org/x/net/netutil"

	"badc0de.net/pkg/go-tibia-assets/assets"
	"badc0de.net/pkg/go-tibia-assets/spr"
	"badc0de.net/pkg/go-tibia-assets/sprcache"
	"badc0de.net/pkg/go-tibia-assets/web"
)

var (
	listenAddress  = flag.String("listen_address", ":8080", "http listen address for assetweb")
	maxConnections = flag.Int("max_connections", 64, "maximum number of simultaneously served connections")
	baseURL        = flag.String("base_url", "http://localhost:8080", "public URL of the server, used in the sitemap")
	banner         = flag.Bool("banner", true, "whether to print a banner on startup")
	decodeWorkers  = flag.Int("decode_workers", sprcache.DefaultWorkers, "number of sprites decoded at once for /sprlist")
)

func main() {
	assets.SetupFilePathFlags()
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if *banner {
		figure.NewFigure("assetweb", "", true).Print()
	}

	a, err := assets.FromFilePathFlags()
	if err != nil {
		glog.Exitf("loading assets: %v", err)
	}
	defer a.Close()
	if a.Sprites == nil {
		glog.Exitf("no spr loaded; pass --%s", assets.FlagTibiaSprPath)
	}

	// The sitemap is built before serving starts; handlers own the catalog
	// afterwards.
	sitemap := outfitSitemap(a.Catalog, *baseURL)

	h := web.NewHandler(a.Catalog, a.Sprites, assets.PathFlagValue(assets.FlagTibiaSprPath))
	sprites := sprcache.New(a.Sprites, spr.DecodeUpcoming, sprcache.Options{Workers: *decodeWorkers})
	defer sprites.Close()
	h.SetSpriteCache(sprites)
	r := h.Router()
	r.HandleFunc("/sitemap.xml", sitemap.Write)

	l, err := net.Listen("tcp", *listenAddress)
	if err != nil {
		glog.Exitf("listening on %s: %v", *listenAddress, err)
	}
	l = netutil.LimitListener(l, *maxConnections)
	glog.Infof("serving on %s", l.Addr())

	glog.Fatal(http.Serve(l, handlers.CompressHandler(handlers.CombinedLoggingHandler(os.Stderr, r))))
}
