package pgembed

import (
	"errors"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	cause := errors.New("boom")
	e := newErr(DownloadFailure, "https://example.org/pg.jar", cause)

	if got, want := e.Error(), "DownloadFailure: https://example.org/pg.jar: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(e, cause) {
		t.Error("errors.Is(e, cause) = false, want true (Unwrap must expose cause)")
	}
}

func TestErrfFormatsMessage(t *testing.T) {
	e := Errf(PgStartFailure, "", "StartDB: invalid status %s", Failure)
	if got, want := e.Error(), "PgStartFailure: StartDB: invalid status Failure"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorAsRoundTrips(t *testing.T) {
	var err error = newErr(UnpackFailure, "/tmp/x.zip", errors.New("tar: short write"))

	var target *Error
	if !errors.As(err, &target) {
		t.Fatal("errors.As failed to find *Error")
	}
	if target.Kind != UnpackFailure {
		t.Errorf("Kind = %v, want UnpackFailure", target.Kind)
	}
}

func TestKindStringCoversAllValues(t *testing.T) {
	kinds := []Kind{
		InvalidPgUrl, DownloadFailure, ConversionFailure, InvalidPgPackage, UnpackFailure,
		WriteFileError, ReadFileError, DirCreationError, PgInitFailure, PgStartFailure,
		PgStopFailure, PgProcessError, PgTimedOutError, PgBufferReadError, PgTaskJoinError,
		PgLockError, SendFailure, PgCleanUpFailure, PgPurgeFailure, SqlQueryError,
		MigrationError, PgError,
	}
	seen := map[string]bool{}
	for _, k := range kinds {
		s := k.String()
		if s == "" {
			t.Errorf("Kind(%d).String() is empty", int(k))
		}
		seen[s] = true
	}
	if len(seen) != len(kinds) {
		t.Errorf("expected %d distinct Kind strings, got %d", len(kinds), len(seen))
	}
}
