package pgembed

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/lib/pq"
)

// Migrate applies every *.sql file in Settings.MigrationDir, in filename
// order, against database name. If MigrationDir is unset, Migrate is a
// no-op. This is the "external migration library" collaborator spec.md
// §1/§4.9 names as out of scope beyond its interface — implemented here
// as the minimal glue a host application needs, not a migration engine
// (no version tracking table, no up/down pairs).
func (s *Server) Migrate(ctx context.Context, name string) error {
	if s.settings.MigrationDir == "" {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(s.settings.MigrationDir, "*.sql"))
	if err != nil {
		return newErr(MigrationError, s.settings.MigrationDir, err)
	}
	sort.Strings(files)

	dsn := s.FullDBURI(name) + "?sslmode=disable"
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return newErr(MigrationError, dsn, err)
	}
	defer db.Close()

	for _, f := range files {
		contents, err := os.ReadFile(f)
		if err != nil {
			return newErr(ReadFileError, f, err)
		}
		if _, err := db.ExecContext(ctx, string(contents)); err != nil {
			return newErr(MigrationError, f, err)
		}
		infof(s.logf)("applied migration %s", filepath.Base(f))
	}
	return nil
}
