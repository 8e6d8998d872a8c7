package pgembed

import (
	"bufio"
	"os"
	"strconv"

	"github.com/faokunega/pg-embed/internal/supervise"
)

// Any binary importing pgembed can be re-exec'd as a postgres watchdog; see
// internal/supervise.
func init() {
	supervise.Main()
}

// postmasterPID reads the real postgres pid out of {database_dir}/postmaster.pid,
// written by postgres itself on startup (first line of the file).
func postmasterPID(databaseDir string) (int, error) {
	f, err := os.Open(databaseDir + "/postmaster.pid")
	if err != nil {
		return 0, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return 0, err
		}
		return 0, Errf(PgStartFailure, databaseDir, "postmaster.pid is empty")
	}
	return strconv.Atoi(sc.Text())
}
