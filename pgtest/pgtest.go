// Package pgtest provides helpers for testing packages that talk to
// Postgres, backed by a single shared pg-embed Server for the whole test
// binary.
//
// Starting and creating a database:
//
//	func TestMain(m *testing.M) {
//		pgtest.TestMain(m)
//	}
//
//	func TestSomething(t *testing.T) {
//		db := pgtest.CreateDB(t, "CREATE TABLE foo (id INT)")
//		// ... do something with db ...
//		// db and its database are cleaned up automatically via t.Cleanup.
//	}
package pgtest

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode"

	_ "github.com/lib/pq"

	pgembed "github.com/faokunega/pg-embed"
)

var flagDebugLevel = flag.Int("pgtest.d", 0, "forward pg-embed's log output (initdb/pg_ctl output and progress messages) to the standard logger")

var flagParseOnce sync.Once

var shared *pgembed.Server

// TestMain is a convenience function for running a test binary against a
// single shared embedded postgres instance. It starts the instance before
// calling m.Run and shuts it down after.
func TestMain(m *testing.M) {
	flagParseOnce.Do(flag.Parse)
	Start(30 * time.Second)
	defer Shutdown()
	code := m.Run()
	Shutdown()
	os.Exit(code)
}

// Start starts the shared instance. The version is selected by the
// PGEMBED_TEST_PG_VERSION environment variable (a bare major version number
// such as "16") if set, otherwise pgembed.PG_V16 is used. The cluster lives
// in a temporary directory named after the current package's working
// directory and is discarded on Shutdown.
func Start(timeout time.Duration) {
	settings := pgembed.Settings{
		DatabaseDir: sharedDir(),
		Port:        freePort(),
		User:        "postgres",
		Password:    "pgtest",
		AuthMethod:  pgembed.MD5,
		Persistent:  false,
		Timeout:     timeout,
	}

	fs := pgembed.DefaultFetchSettings(resolveVersion())

	logf := discardLogf
	if *flagDebugLevel > 0 {
		logf = log.Printf
	}

	srv, err := pgembed.NewServer(settings, fs, logf)
	if err != nil {
		log.Fatalf("pgtest: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Setup(ctx); err != nil {
		log.Fatalf("pgtest: setup: %v", err)
	}
	if err := srv.StartDB(ctx); err != nil {
		log.Fatalf("pgtest: start: %v", err)
	}
	shared = srv
}

// Shutdown stops the shared instance and removes its cluster directory.
func Shutdown() {
	if shared == nil {
		return
	}
	if err := shared.Close(); err != nil {
		log.Printf("pgtest: shutdown: %v", err)
	}
	shared = nil
}

// CreateDB creates a fresh database named after t.Name(), applies schema to
// it (if non-empty), and returns a connected *sql.DB. The database and
// connection are both cleaned up automatically via t.Cleanup.
func CreateDB(t testing.TB, schema string) *sql.DB {
	t.Helper()
	if shared == nil {
		t.Fatal("pgtest: Start/TestMain not called")
	}

	ctx := context.Background()
	name := cleanName(t.Name())

	if err := shared.CreateDatabase(ctx, name); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := shared.DropDatabase(context.Background(), name); err != nil {
			t.Logf("pgtest: drop database %s: %v", name, err)
		}
	})

	dsn := shared.FullDBURI(name) + "?sslmode=disable"
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	if schema != "" {
		if _, err := db.ExecContext(ctx, schema); err != nil {
			t.Fatal(err)
		}
	}

	t.Logf("[pgtest] psql '%s'", dsn)
	return db
}

// BreakForPSQL blocks the current goroutine, letting a human connect to the
// databases created by prior CreateDB calls with psql.
func BreakForPSQL(t testing.TB) {
	t.Helper()
	if !testing.Verbose() {
		fmt.Fprintf(os.Stderr, "%s is blocking for psql\n", t.Name())
	}
	t.Logf("blocking for psql")
	select {}
}

func discardLogf(string, ...any) {}

// resolveVersion honors PGEMBED_TEST_PG_VERSION as a bare major version
// number (e.g. "16"), falling back to pgembed.PG_V16.
func resolveVersion() pgembed.Version {
	s := os.Getenv("PGEMBED_TEST_PG_VERSION")
	if s == "" {
		return pgembed.PG_V16
	}
	major, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("pgtest: invalid PGEMBED_TEST_PG_VERSION %q: %v", s, err)
	}
	v, ok := pgembed.VersionForMajor(major)
	if !ok {
		log.Fatalf("pgtest: unsupported PGEMBED_TEST_PG_VERSION %q", s)
	}
	return v
}

func sharedDir() string {
	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return filepath.Join(os.TempDir(), "pgtest", cwd)
}

func freePort() uint16 {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		panic(err)
	}
	defer l.Close()
	return uint16(l.Addr().(*net.TCPAddr).Port)
}

func cleanName(name string) string {
	rr := []rune(name)
	for i, r := range rr {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			rr[i] = '_'
		}
	}
	return strings.ToLower(string(rr))
}
