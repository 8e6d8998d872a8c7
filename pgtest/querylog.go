package pgtest

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"testing"
)

// csvlog column offsets, per Postgres's documented CSV log format
// (log_destination=csvlog).
const (
	colLogTime = iota
	colUserName
	colDatabaseName
	colProcessID
	colConnectionFrom
	colSessionID
	colSessionLineNum
	colCommandTag
	colSessionStartTime
	colVirtualTransactionID
	colTransactionID
	colErrorSeverity
	colSqlStateCode
	colMessage
	colDetail
	colHint
	colInternalQuery
	colInternalQueryPos
	colContext
	colQuery
	colQueryPos
	colLocation
	colApplicationName
	colBackendType
)

// LogQueryErrors scans a postgres csvlog file (as produced by
// log_destination=csvlog) for ERROR rows and logs each offending query via
// t.Logf with a 💥 marker spliced in at the row's query-position offset.
// This is the same diagnostic the teacher's test helper ran automatically
// on every test's shutdown; it is opt-in here since Server does not enable
// csvlog logging by default (spec.md's lifecycle manager leaves log
// format/destination out of its settings surface) — callers that want it
// configure csvlog themselves (e.g. via postgresql.conf written before
// StartDB) and pass the resulting file's path.
func LogQueryErrors(t testing.TB, csvLogPath string) {
	f, err := os.Open(csvLogPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			t.Fatal(err)
		}

		if row[colErrorSeverity] != "ERROR" {
			continue
		}

		t.Logf("\n%s", markQuery(row[colQuery], row[colQueryPos]))
	}
}

// markQuery splices a 💥 marker into query before the byte at the zero-based
// offset pos (a decimal string), or appends it when pos is at or past the
// end of query. An empty or unparsable pos leaves query unmarked.
func markQuery(query, pos string) string {
	if pos == "" {
		return query
	}
	offset, err := strconv.ParseInt(pos, 10, 64)
	if err != nil {
		return query
	}

	q := []byte(query)
	var sb strings.Builder
	if offset >= int64(len(q)) {
		sb.Write(q)
		sb.WriteString("💥")
		return sb.String()
	}
	for i, b := range q {
		if int64(i) == offset {
			sb.WriteString("💥")
		}
		sb.WriteByte(b)
	}
	return sb.String()
}
