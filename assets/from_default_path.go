package assets

import (
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-tibia-assets/paths"
)

// FromDefaultPaths loads Tibia.dat and, if withSpr is set, Tibia.spr from the
// locations paths.Find searches.
//
// Appropriate for tests or web frontends. Inappropriate for tools where the
// path should be specifiable by the user on the command line.
func FromDefaultPaths(withSpr bool) (*Assets, error) {
	datPath := paths.Find("Tibia.dat")
	if datPath == "" {
		return nil, errors.New("Tibia.dat not found")
	}
	sprPath := ""
	if withSpr {
		if sprPath = paths.Find("Tibia.spr"); sprPath == "" {
			return nil, errors.New("Tibia.spr not found")
		}
	}
	return FromPaths(datPath, sprPath)
}
