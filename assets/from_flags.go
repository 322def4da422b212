package assets

import (
	"badc0de.net/pkg/go-tibia-assets/paths"
)

var (
	tibiaDatPath   string
	tibiaSprPath   string
	outfitsXMLPath string
)

type PathFlag string

const (
	FlagTibiaDatPath   = PathFlag("tibia_dat_path")
	FlagTibiaSprPath   = PathFlag("tibia_spr_path")
	FlagOutfitsXMLPath = PathFlag("outfits_xml_path")
)

// SetupFilePathFlags registers --tibia_dat_path, --tibia_spr_path and
// --outfits_xml_path, defaulting to whatever paths.Find locates.
//
// These paths will then be referred to in the FromFilePathFlags function.
func SetupFilePathFlags() {
	paths.SetupFilePathFlag("Tibia.dat", string(FlagTibiaDatPath), &tibiaDatPath)
	paths.SetupFilePathFlag("Tibia.spr", string(FlagTibiaSprPath), &tibiaSprPath)
	paths.SetupFilePathFlag("outfits.xml", string(FlagOutfitsXMLPath), &outfitsXMLPath)
}

// FromFilePathFlags loads the files named by the flags registered in
// SetupFilePathFlags. The flags need to be parsed by the time this function
// is invoked.
//
// Outfits are named from outfits.xml if its flag is set.
func FromFilePathFlags() (*Assets, error) {
	a, err := FromPaths(tibiaDatPath, tibiaSprPath)
	if err != nil {
		return nil, err
	}
	if outfitsXMLPath != "" {
		if err := a.NameOutfits(outfitsXMLPath); err != nil {
			a.Close()
			return nil, err
		}
	}
	return a, nil
}

// PathFlagValue returns the value for the passed flag path (such as the path
// to Tibia.dat).
func PathFlagValue(key PathFlag) string {
	switch key {
	case FlagTibiaDatPath:
		return tibiaDatPath
	case FlagTibiaSprPath:
		return tibiaSprPath
	case FlagOutfitsXMLPath:
		return outfitsXMLPath
	default:
		return ""
	}
}
