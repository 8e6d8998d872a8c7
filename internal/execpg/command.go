package execpg

import (
	"fmt"

	"github.com/faokunega/pg-embed/internal/layout"
)

// InitdbArgs builds the argv (excluding argv[0]) for initdb, per
// spec.md §4.7: initdb -A {auth_arg} -U {user} --pwfile={password_file}
// -D {database_dir} --encoding=UTF8.
func InitdbArgs(p layout.Paths, user, authArg string) []string {
	return []string{
		"-A", authArg,
		"-U", user,
		"--pwfile=" + p.PasswordFile,
		"-D", p.DatabaseDir,
		"--encoding=UTF8",
	}
}

// StartArgs builds the argv for `pg_ctl ... start`, per spec.md §4.7:
// pg_ctl -D {database_dir} -l {database_dir}/pg.log -o "-p {port}" -w start.
func StartArgs(p layout.Paths, port uint16) []string {
	return []string{
		"-D", p.DatabaseDir,
		"-l", p.DatabaseDir + "/pg.log",
		"-o", fmt.Sprintf("-p %d", port),
		"-w", "start",
	}
}

// StopArgs builds the argv for `pg_ctl ... stop`, per spec.md §4.7:
// pg_ctl -D {database_dir} -w -m fast stop.
func StopArgs(p layout.Paths) []string {
	return []string{
		"-D", p.DatabaseDir,
		"-w", "-m", "fast", "stop",
	}
}
