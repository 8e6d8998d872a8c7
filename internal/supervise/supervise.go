// Package supervise re-execs the current binary as a watchdog that SIGQUITs
// a postgres process if this process dies without stopping it cleanly.
//
// This is called after a successful StartDB with the real postmaster pid
// (not the pg_ctl pid, which exits immediately), so an embedding
// application that crashes or is kill -9'd doesn't leave postgres running
// forever against a data directory nobody can clean up.
package supervise

import (
	"log"
	"os"
	"os/exec"
	"strconv"
	"syscall"
)

const pidEnv = "_PGEMBED_SUP_PID"

// Main runs the watchdog body if this process was re-exec'd by This, and
// exits the process. It is a no-op otherwise. Callers import this package
// for its side effect and call Main from an init so any binary embedding
// pg-embed can also serve as its own supervisor when re-exec'd.
func Main() {
	pid, _ := strconv.Atoi(os.Getenv(pidEnv))
	if pid == 0 {
		return
	}

	log.SetFlags(0)
	awaitParentDeath()
	p, err := os.FindProcess(pid)
	if err != nil {
		log.Fatalf("supervise: find process: %v", err)
	}
	if err := p.Signal(syscall.Signal(syscall.SIGQUIT)); err != nil {
		log.Fatalf("supervise: signal process: %v", err)
	}
	os.Exit(0)
}

func awaitParentDeath() {
	_, _ = os.Stdin.Read(make([]byte, 1))
}

// This starts a watchdog subprocess (a re-exec of the current binary) that
// sends SIGQUIT to pid once the calling process exits. The watchdog detects
// parent death by blocking on a stdin pipe it never receives data on: when
// the parent process dies, the pipe's write end closes and the blocking
// Read returns.
func This(pid int) {
	exe, err := os.Executable()
	if err != nil {
		panic(err)
	}
	sup := exec.Command(exe)
	sup.Env = append(os.Environ(), pidEnv+"="+strconv.Itoa(pid))
	sup.Stdout = os.Stdout
	sup.Stderr = os.Stderr

	if _, err := sup.StdinPipe(); err != nil {
		panic(err)
	}
	if err := sup.Start(); err != nil {
		panic(err)
	}

	go func() {
		// Keep a reference to sup so it isn't GC'd early, which would
		// close the stdin pipe and make the watchdog fire prematurely.
		_ = sup.Wait()
	}()
}
