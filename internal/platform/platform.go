// Package platform enumerates the OS/architecture/version tags used to
// locate a precompiled PostgreSQL binary bundle, and renders them into the
// Maven coordinates the artifact repository expects.
package platform

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// OS is a supported target operating system.
type OS int

const (
	Darwin OS = iota
	Linux
	AlpineLinux
	Windows
)

func (o OS) String() string {
	switch o {
	case Darwin:
		return "darwin"
	case Linux, AlpineLinux:
		return "linux"
	case Windows:
		return "windows"
	default:
		return fmt.Sprintf("OS(%d)", int(o))
	}
}

// alpineSuffix is the Maven classifier suffix distinguishing musl builds
// from glibc ones; both share the same "linux" folder name.
func (o OS) alpineSuffix() string {
	if o == AlpineLinux {
		return "-alpine"
	}
	return ""
}

// Arch is a supported target CPU architecture.
type Arch int

const (
	Amd64 Arch = iota
	I386
	Arm32v6
	Arm32v7
	Arm64v8
	Ppc64le
)

func (a Arch) String() string {
	switch a {
	case Amd64:
		return "amd64"
	case I386:
		return "i386"
	case Arm32v6:
		return "arm32v6"
	case Arm32v7:
		return "arm32v7"
	case Arm64v8:
		return "arm64v8"
	case Ppc64le:
		return "ppc64le"
	default:
		return fmt.Sprintf("Arch(%d)", int(a))
	}
}

// Version is a supported PostgreSQL release tag, rendered as
// "major.minor.patch" with a Maven classifier of just the major version.
type Version struct {
	Major, Minor, Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Classifier is the Maven classifier for this version: just the major
// component.
func (v Version) Classifier() string {
	return fmt.Sprintf("%d", v.Major)
}

// Closed set of supported version tags, per spec.
var (
	PG_V10 = Version{10, 23, 0}
	PG_V11 = Version{11, 21, 0}
	PG_V12 = Version{12, 18, 0}
	PG_V13 = Version{13, 14, 0}
	PG_V14 = Version{14, 11, 0}
	PG_V15 = Version{15, 6, 0}
	PG_V16 = Version{16, 2, 0}
	PG_V17 = Version{17, 2, 0}
	PG_V18 = Version{18, 0, 0}
)

// DefaultHost is the default artifact repository base URL.
const DefaultHost = "https://repo1.maven.org"

// DefaultOS resolves the default OS tag from the compile-time GOOS; on
// Linux it returns AlpineLinux when /etc/alpine-release exists at run time.
func DefaultOS() OS {
	switch runtime.GOOS {
	case "darwin":
		return Darwin
	case "windows":
		return Windows
	default:
		if isAlpine() {
			return AlpineLinux
		}
		return Linux
	}
}

func isAlpine() bool {
	_, err := os.Stat("/etc/alpine-release")
	return err == nil
}

// DefaultArch resolves the compile-time default architecture tag for the
// running host. Unlike the teacher's best-effort GOARCH passthrough, this
// only maps the architectures spec.md enumerates; unmapped values fall back
// to Amd64 since no other mapping is a safe guess.
func DefaultArch() Arch {
	switch runtime.GOARCH {
	case "386":
		return I386
	case "arm":
		return Arm32v7
	case "arm64":
		return Arm64v8
	case "ppc64le":
		return Ppc64le
	default:
		return Amd64
	}
}

// Unsupported reports whether the upstream artifact repository has no
// binary for the given OS/Arch/Version combination. Apple Silicon builds
// were only published starting with PostgreSQL 14.
func Unsupported(o OS, a Arch, v Version) bool {
	return o == Darwin && a == Arm64v8 && v.Major < 14
}

// ArtifactURL composes the Maven coordinates for the binary bundle.
func ArtifactURL(host string, o OS, a Arch, v Version) string {
	if host == "" {
		host = DefaultHost
	}
	suffix := o.alpineSuffix()
	artifact := fmt.Sprintf("embedded-postgres-binaries-%s-%s%s", o, a, suffix)
	return strings.Join([]string{
		strings.TrimRight(host, "/"),
		"maven2/io/zonky/test/postgres",
		artifact,
		v.String(),
		fmt.Sprintf("%s-%s.jar", artifact, v.String()),
	}, "/")
}
