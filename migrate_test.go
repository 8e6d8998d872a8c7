package pgembed

import (
	"context"
	"errors"
	"testing"
)

func TestMigrateNoopWithoutMigrationDir(t *testing.T) {
	t.Setenv("PGEMBED_CACHE_DIR", t.TempDir())

	s := testSettings(t)
	srv, err := NewServer(s, DefaultFetchSettings(PG_V16), nil)
	if err != nil {
		t.Fatal(err)
	}

	// No MigrationDir set, and no running server: Migrate must return
	// before trying to open a connection.
	if err := srv.Migrate(context.Background(), "somedb"); err != nil {
		t.Errorf("Migrate() with empty MigrationDir = %v, want nil", err)
	}
}

func TestMigrateGlobErrorSurfacesAsMigrationError(t *testing.T) {
	t.Setenv("PGEMBED_CACHE_DIR", t.TempDir())

	s := testSettings(t)
	// An unterminated character class makes filepath.Glob return
	// filepath.ErrBadPattern before any network I/O happens.
	s.MigrationDir = "[unterminated"

	srv, err := NewServer(s, DefaultFetchSettings(PG_V16), nil)
	if err != nil {
		t.Fatal(err)
	}

	err = srv.Migrate(context.Background(), "somedb")
	if err == nil {
		t.Fatal("expected an error for a malformed MigrationDir glob pattern")
	}
	var e *Error
	if !errors.As(err, &e) {
		t.Fatal("expected a *Error")
	}
	if e.Kind != MigrationError {
		t.Errorf("Kind = %v, want MigrationError", e.Kind)
	}
}
