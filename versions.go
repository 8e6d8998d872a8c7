package pgembed

import "github.com/faokunega/pg-embed/internal/platform"

// Version is a supported PostgreSQL release tag, re-exported from the
// platform descriptor so callers building FetchSettings don't need to
// import an internal package.
type Version = platform.Version

// Supported PostgreSQL version tags, re-exported from the platform
// descriptor for convenience.
var (
	PG_V10 = platform.PG_V10
	PG_V11 = platform.PG_V11
	PG_V12 = platform.PG_V12
	PG_V13 = platform.PG_V13
	PG_V14 = platform.PG_V14
	PG_V15 = platform.PG_V15
	PG_V16 = platform.PG_V16
	PG_V17 = platform.PG_V17
	PG_V18 = platform.PG_V18
)

var versionsByMajor = map[int]Version{
	10: PG_V10, 11: PG_V11, 12: PG_V12, 13: PG_V13, 14: PG_V14,
	15: PG_V15, 16: PG_V16, 17: PG_V17, 18: PG_V18,
}

// VersionForMajor looks up the supported Version for a bare major version
// number (e.g. 16), for callers resolving a version from a string such as
// an environment variable.
func VersionForMajor(major int) (Version, bool) {
	v, ok := versionsByMajor[major]
	return v, ok
}

// Platform tags, re-exported for callers constructing FetchSettings
// explicitly instead of via DefaultFetchSettings.
const (
	Darwin      = platform.Darwin
	Linux       = platform.Linux
	AlpineLinux = platform.AlpineLinux
	Windows     = platform.Windows

	Amd64   = platform.Amd64
	I386    = platform.I386
	Arm32v6 = platform.Arm32v6
	Arm32v7 = platform.Arm32v7
	Arm64v8 = platform.Arm64v8
	Ppc64le = platform.Ppc64le
)
