// Package execpg spawns initdb/pg_ctl child processes, pumps their
// stdout/stderr to a log facade, enforces a wall-clock timeout, and
// updates a shared status cell — the command executor from spec.md §4.6,
// parameterized over {entry, exit, failure} status constants so one
// executor drives initdb, start, and stop (spec.md §9 "Polymorphism of
// the executor").
package execpg

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	"golang.org/x/sync/errgroup"
	"tailscale.com/types/logger"

	"github.com/faokunega/pg-embed/internal/logplex"
	"github.com/faokunega/pg-embed/internal/status"
)

// Phase classifies which part of Execute failed, so the caller can map it
// onto the right taxonomy Kind (PgProcessError, PgTimedOutError, or an
// operation-specific exit failure like PgInitFailure).
type Phase int

const (
	PhaseNone Phase = iota
	PhaseSpawn
	PhaseWait
	PhaseTimeout
	PhaseExit
	PhasePump
)

// Error wraps an Execute failure with the Phase it occurred in.
type Error struct {
	Phase    Phase
	ExitCode int
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("execpg: phase %d, exit %d", e.Phase, e.ExitCode)
}

func (e *Error) Unwrap() error { return e.Err }

// Config bundles the status constants for one invocation, per spec.md
// §4.6's "{status entry, status exit, status failure}" polymorphism.
type Config struct {
	Cell    *status.Cell
	Entry   status.Status
	Exit    status.Status
	Failure status.Status
}

// Execute spawns name with args and env, pumping stdout/stderr to logf
// line-by-line at info level, tagged with the originating stream. timeout
// of zero means no wall-clock ceiling.
//
// A pump read failure does not itself terminate the child (spec.md §4.6:
// "pump failures are non-fatal to the child but are surfaced") — Execute
// still waits for the child normally — but it is surfaced as the return
// error (PhasePump) when the child would otherwise have exited
// successfully; a real exit/timeout/spawn failure always takes priority.
func Execute(ctx context.Context, name string, args, env []string, timeout time.Duration, cfg Config, logf logger.Logf) error {
	cfg.Cell.Set(cfg.Entry)

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	if len(env) > 0 {
		cmd.Env = env
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cfg.Cell.Set(cfg.Failure)
		return &Error{Phase: PhaseSpawn, Err: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		cfg.Cell.Set(cfg.Failure)
		return &Error{Phase: PhaseSpawn, Err: err}
	}

	if err := cmd.Start(); err != nil {
		cfg.Cell.Set(cfg.Failure)
		return &Error{Phase: PhaseSpawn, Err: err}
	}

	lp := &logplex.Logplex{
		Sink:  logplex.LogfWriter(infoTag(logf)),
		Split: logplex.StreamSplit,
	}
	lp.Watch(logplex.StreamStdout, logplex.LogfWriter(streamTag(logf, logplex.StreamStdout)))
	lp.Watch(logplex.StreamStderr, logplex.LogfWriter(streamTag(logf, logplex.StreamStderr)))

	var g errgroup.Group
	g.Go(func() error { return pump(stdout, logplex.StreamStdout, lp) })
	g.Go(func() error { return pump(stderr, logplex.StreamStderr, lp) })
	pumpErr := g.Wait()
	_ = lp.Flush()

	waitErr := cmd.Wait()

	if ctx.Err() == context.DeadlineExceeded {
		cfg.Cell.Set(cfg.Failure)
		return &Error{Phase: PhaseTimeout, Err: ctx.Err()}
	}

	if waitErr != nil {
		cfg.Cell.Set(cfg.Failure)
		if exitErr, ok := waitErr.(*exec.ExitError); ok {
			return &Error{Phase: PhaseExit, ExitCode: exitErr.ExitCode(), Err: waitErr}
		}
		return &Error{Phase: PhaseWait, Err: waitErr}
	}

	if pumpErr != nil {
		cfg.Cell.Set(cfg.Failure)
		return &Error{Phase: PhasePump, Err: pumpErr}
	}

	cfg.Cell.Set(cfg.Exit)
	return nil
}

func pump(r io.Reader, stream string, w io.Writer) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if _, err := fmt.Fprintf(w, "%s::%s\n", stream, sc.Text()); err != nil {
			return err
		}
	}
	return sc.Err()
}

func infoTag(logf logger.Logf) logger.Logf {
	return func(format string, args ...any) { logf("[info] "+format, args...) }
}

func streamTag(logf logger.Logf, stream string) logger.Logf {
	return func(format string, args ...any) { logf("[info] "+stream+": "+format, args...) }
}
