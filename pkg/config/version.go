package config

import "github.com/retroenv/retrogolib/buildinfo"

// set with -ldflags "-X github.com/mnafees/chopper/v2/pkg/config.commit=..."
var (
	version = "2.0.0"
	commit  = ""
	date    = ""
)

// Version returns the version string printed by -version
func Version() string {
	return buildinfo.Version(version, commit, date)
}
