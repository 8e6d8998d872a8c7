package pgembed

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
)

// openAdmin opens a short-lived connection to the "postgres" maintenance
// database for issuing CREATE/DROP/SELECT administrative statements. The
// external SQL client library (lib/pq) is the collaborator spec.md §1
// names as out of scope beyond its interface; this is the thin glue code
// calling it, not a SQL engine.
func (s *Server) openAdmin(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("postgres", s.FullDBURI("postgres")+"?sslmode=disable")
	if err != nil {
		return nil, newErr(SqlQueryError, "open", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, newErr(SqlQueryError, "ping", err)
	}
	return db, nil
}

// CreateDatabase issues CREATE DATABASE name on the running server.
func (s *Server) CreateDatabase(ctx context.Context, name string) error {
	db, err := s.openAdmin(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, `CREATE DATABASE `+pqQuoteIdent(name)); err != nil {
		return newErr(SqlQueryError, "CREATE DATABASE "+name, err)
	}
	return nil
}

// DropDatabase issues DROP DATABASE name on the running server.
func (s *Server) DropDatabase(ctx context.Context, name string) error {
	db, err := s.openAdmin(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, `DROP DATABASE `+pqQuoteIdent(name)); err != nil {
		return newErr(SqlQueryError, "DROP DATABASE "+name, err)
	}
	return nil
}

// DatabaseExists reports whether name exists, via
// "SELECT 1 FROM pg_database WHERE datname=$1" per spec.md §4.9.
func (s *Server) DatabaseExists(ctx context.Context, name string) (bool, error) {
	db, err := s.openAdmin(ctx)
	if err != nil {
		return false, err
	}
	defer db.Close()

	var one int
	err = db.QueryRowContext(ctx, `SELECT 1 FROM pg_database WHERE datname=$1`, name).Scan(&one)
	switch {
	case err == sql.ErrNoRows:
		return false, nil
	case err != nil:
		return false, newErr(SqlQueryError, "SELECT pg_database", err)
	default:
		return true, nil
	}
}

// pqQuoteIdent quotes an identifier the way lib/pq callers conventionally
// do for statements (CREATE/DROP DATABASE) that cannot take a placeholder
// parameter. Doubling embedded quotes is sufficient because PostgreSQL
// identifier quoting has no escape-character ambiguity to worry about
// beyond the quote character itself.
func pqQuoteIdent(name string) string {
	quoted := make([]byte, 0, len(name)+2)
	quoted = append(quoted, '"')
	for i := 0; i < len(name); i++ {
		if name[i] == '"' {
			quoted = append(quoted, '"')
		}
		quoted = append(quoted, name[i])
	}
	quoted = append(quoted, '"')
	return string(quoted)
}
