package paths

import (
	"flag"
)

// SetupFilePathFlag registers --flagName on the command line flag set. The
// default is wherever Find locates fileName, or empty if it is nowhere to
// be found, so tools run from a checkout with datafiles need no flags.
func SetupFilePathFlag(fileName, flagName string, flagPtr *string) {
	SetupFilePathFlagSet(flag.CommandLine, fileName, flagName, flagPtr)
}

// SetupFilePathFlagSet is SetupFilePathFlag for an arbitrary flag set.
func SetupFilePathFlagSet(fs *flag.FlagSet, fileName, flagName string, flagPtr *string) {
	fs.StringVar(flagPtr, flagName, Find(fileName), "Path to "+fileName+" (searched in $"+EnvAssetsDir+" and datafiles/ by default)")
}
