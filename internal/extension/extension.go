// Package extension installs third-party PostgreSQL extensions into a
// cache entry by copying files from an input directory, routed by suffix.
package extension

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/faokunega/pg-embed/internal/layout"
)

var libSuffixes = map[string]bool{".so": true, ".dylib": true, ".dll": true}
var shareSuffixes = map[string]bool{".control": true, ".sql": true}

// Install copies every file directly inside sourceDir (non-recursive) into
// either p.LibDir or p.ExtensionDir, by lowercase suffix, per spec.md §4.8.
// Files with any other suffix are silently skipped. Returns the number of
// files copied into each destination.
func Install(p layout.Paths, sourceDir string) (libCount, shareCount int, err error) {
	if err := os.MkdirAll(p.ExtensionDir, 0o755); err != nil {
		return 0, 0, err
	}
	if err := os.MkdirAll(p.LibDir, 0o755); err != nil {
		return 0, 0, err
	}

	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return 0, 0, err
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		suffix := strings.ToLower(filepath.Ext(e.Name()))

		var dest string
		switch {
		case libSuffixes[suffix]:
			dest = filepath.Join(p.LibDir, e.Name())
		case shareSuffixes[suffix]:
			dest = filepath.Join(p.ExtensionDir, e.Name())
		default:
			continue
		}

		if err := copyFile(filepath.Join(sourceDir, e.Name()), dest); err != nil {
			return libCount, shareCount, err
		}
		if libSuffixes[suffix] {
			libCount++
		} else {
			shareCount++
		}
	}
	return libCount, shareCount, nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
