package config

// Build information, filled in by cli/main.go from -ldflags
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// SetBuildFlags records the build information reported by `opsgov version`
func SetBuildFlags(version, commit, date string) {
	Version, Commit, Date = version, commit, date
}
