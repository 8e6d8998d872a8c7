package pgembed

import (
	"fmt"
	"time"

	"github.com/faokunega/pg-embed/internal/platform"
)

// AuthMethod selects how pg_hba.conf authenticates the superuser,
// rendered into the initdb -A value per spec.md §3.
type AuthMethod int

const (
	Plain AuthMethod = iota
	MD5
	ScramSha256
)

// Arg renders the initdb -A argument value.
func (a AuthMethod) Arg() string {
	switch a {
	case MD5:
		return "md5"
	case ScramSha256:
		return "scram-sha-256"
	default:
		return "password"
	}
}

func (a AuthMethod) String() string { return a.Arg() }

// Settings is the immutable (after construction) configuration for one
// managed cluster, per spec.md §3.
type Settings struct {
	// DatabaseDir is the filesystem path for the cluster.
	DatabaseDir string
	// Port is the TCP port the server listens on.
	Port uint16
	// User and Password are the superuser credentials.
	User     string
	Password string
	// AuthMethod selects the pg_hba.conf auth value.
	AuthMethod AuthMethod
	// Persistent, if false, removes the cluster and password file on
	// teardown.
	Persistent bool
	// Timeout bounds every child-process invocation. Zero means no
	// wall-clock ceiling.
	Timeout time.Duration
	// MigrationDir, if set, is a directory of .sql migration scripts
	// applied in filename order by Migrate.
	MigrationDir string
}

func (s Settings) validate() error {
	if s.DatabaseDir == "" {
		return Errf(InvalidPgUrl, "", "Settings.DatabaseDir must not be empty")
	}
	if s.Port == 0 {
		return Errf(InvalidPgUrl, "", "Settings.Port must be > 0")
	}
	if s.User == "" {
		return Errf(InvalidPgUrl, "", "Settings.User must not be empty")
	}
	return nil
}

// FetchSettings selects which precompiled binary bundle is acquired, per
// spec.md §3.
type FetchSettings struct {
	// Host is the base URL of the artifact repository.
	Host string
	OS   platform.OS
	Arch platform.Arch
	// Version is the PostgreSQL version tag.
	Version platform.Version
}

// DefaultFetchSettings resolves the compile-time host default OS/Arch and
// pairs them with version.
func DefaultFetchSettings(version platform.Version) FetchSettings {
	return FetchSettings{
		Host:    platform.DefaultHost,
		OS:      platform.DefaultOS(),
		Arch:    platform.DefaultArch(),
		Version: version,
	}
}

// validate rejects unsupported (os, arch, version) tuples, including the
// Apple-Silicon/PG<14 combination, before NewServer ever returns a Server.
// This runs earlier than "at Setup time" but reaches the same outcome
// (DownloadFailure before anything touches the cache), one call site
// sooner.
func (f FetchSettings) validate() error {
	if platform.Unsupported(f.OS, f.Arch, f.Version) {
		return Errf(DownloadFailure, fmt.Sprintf("%s/%s/%s", f.OS, f.Arch, f.Version),
			"unsupported platform/version: no upstream binary published")
	}
	return nil
}

func (f FetchSettings) artifactURL() string {
	return platform.ArtifactURL(f.Host, f.OS, f.Arch, f.Version)
}
