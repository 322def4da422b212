// Package assets loads the datafiles an editing session works on: the
// dataset, seeding a catalog, and the sprite file.
package assets

import (
	"io"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"badc0de.net/pkg/go-tibia-assets/catalog"
	"badc0de.net/pkg/go-tibia-assets/dat"
	"badc0de.net/pkg/go-tibia-assets/paths"
	"badc0de.net/pkg/go-tibia-assets/spr"
)

type Assets struct {
	Catalog *catalog.Catalog
	Dataset *dat.Dataset // nil if no dat was loaded
	Sprites *spr.Reader  // nil if no spr was loaded

	sprFile io.Closer
}

// FromPaths loads the datafiles at the passed paths concurrently. Any path
// passed as an empty string is omitted.
func FromPaths(tibiaDatPath, tibiaSprPath string) (*Assets, error) {
	a := &Assets{Catalog: catalog.New()}

	var g errgroup.Group
	if tibiaDatPath != "" {
		g.Go(func() error {
			glog.Infof("assets.FromPaths(): opening tibia dat: %q", tibiaDatPath)
			f, err := paths.NoFindOpen(tibiaDatPath)
			if err != nil {
				return errors.Wrap(err, "opening tibia dat file for add")
			}
			defer f.Close()
			dataset, err := dat.NewDataset(f)
			if err != nil {
				return errors.Wrap(err, "parsing tibia dat for add")
			}
			if err := dataset.Populate(a.Catalog); err != nil {
				return errors.Wrap(err, "populating catalog")
			}
			a.Dataset = dataset
			return nil
		})
	}
	if tibiaSprPath != "" {
		g.Go(func() error {
			glog.Infof("assets.FromPaths(): opening tibia spr: %q", tibiaSprPath)
			f, err := paths.NoFindOpen(tibiaSprPath)
			if err != nil {
				return errors.Wrap(err, "opening tibia spr file for add")
			}
			sprites, err := spr.NewReader(f)
			if err != nil {
				f.Close()
				return errors.Wrap(err, "parsing tibia spr for add")
			}
			a.Sprites, a.sprFile = sprites, f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// Close releases the sprite file. Sprites must not be used afterwards.
func (a *Assets) Close() error {
	if a.sprFile == nil {
		return nil
	}
	err := a.sprFile.Close()
	a.sprFile = nil
	return err
}
