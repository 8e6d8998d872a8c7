// Package layout computes the cache, cluster, password-file, and extension
// paths used throughout pg-embed.
package layout

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/faokunega/pg-embed/internal/platform"
)

// CacheRoot resolves the OS-specific root under which all pg-embed cache
// entries live, honoring $PGEMBED_CACHE_DIR as an override for tests and
// callers that want full control (mirrors the teacher's PQX_BIN_DIR
// override in spirit).
func CacheRoot() (string, error) {
	if dir := os.Getenv("PGEMBED_CACHE_DIR"); dir != "" {
		return filepath.Join(dir, "pg-embed"), nil
	}

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			return "", errInvalidCacheRoot
		}
		return filepath.Join(home, "Library", "Caches", "pg-embed"), nil
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return filepath.Join(dir, "pg-embed"), nil
		}
		return "", errInvalidCacheRoot
	default:
		if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
			return filepath.Join(dir, "pg-embed"), nil
		}
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			return "", errInvalidCacheRoot
		}
		return filepath.Join(home, ".cache", "pg-embed"), nil
	}
}

var errInvalidCacheRoot = cacheRootError{}

type cacheRootError struct{}

func (cacheRootError) Error() string { return "could not resolve a cache root directory" }

// Paths is the set of filesystem locations computed for one cache entry.
type Paths struct {
	CacheDir        string // {cache_root}/{os}/{arch}/{version}/
	ZipMarkerPath   string // {cache_dir}/{version}.zip
	BinDir          string
	LibDir          string
	ExtensionDir    string
	DatabaseDir     string // the caller's cluster directory, passed through
	PasswordFile    string // adjacent to, not inside, DatabaseDir
}

// Resolve computes all paths for the given platform tuple and cluster
// directory. The cache path is a pure function of (os, arch, version) plus
// the environment-derived cache root, per spec.md's determinism invariant.
func Resolve(o platform.OS, a platform.Arch, v platform.Version, databaseDir string) (Paths, error) {
	root, err := CacheRoot()
	if err != nil {
		return Paths{}, err
	}

	cacheDir := filepath.Join(root, o.String(), a.String(), v.String())
	abs, err := filepath.Abs(databaseDir)
	if err != nil {
		return Paths{}, err
	}

	return Paths{
		CacheDir:      cacheDir,
		ZipMarkerPath: filepath.Join(cacheDir, v.String()+".zip"),
		BinDir:        filepath.Join(cacheDir, "bin"),
		LibDir:        filepath.Join(cacheDir, "lib"),
		ExtensionDir:  filepath.Join(cacheDir, "share", "postgresql", "extension"),
		DatabaseDir:   abs,
		PasswordFile:  filepath.Join(filepath.Dir(abs), "pwfile"),
	}, nil
}

// CachePopulated reports whether bin/initdb exists: the canonical signal
// that a cache entry is usable (the .zip marker is auxiliary, per the
// Open Question decision recorded in DESIGN.md).
func (p Paths) CachePopulated() bool {
	name := "initdb"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	_, err := os.Stat(filepath.Join(p.BinDir, name))
	return err == nil
}

// ClusterInitialized reports whether {database_dir}/PG_VERSION exists.
func (p Paths) ClusterInitialized() bool {
	_, err := os.Stat(filepath.Join(p.DatabaseDir, "PG_VERSION"))
	return err == nil
}

// Executable resolves {cache_dir}/bin/{name}, appending .exe on Windows.
func (p Paths) Executable(name string) string {
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(p.BinDir, name)
}
