package execpg

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/faokunega/pg-embed/internal/status"
)

func collectLogf() (logger func(string, ...any), lines func() []string) {
	var mu sync.Mutex
	var got []string
	return func(format string, args ...any) {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, fmt.Sprintf(format, args...))
		}, func() []string {
			mu.Lock()
			defer mu.Unlock()
			out := make([]string, len(got))
			copy(out, got)
			return out
		}
}

func TestExecuteSuccess(t *testing.T) {
	cell := status.NewCell(status.Uninitialized)
	cfg := Config{Cell: cell, Entry: status.Initializing, Exit: status.Initialized, Failure: status.Failure}
	logf, lines := collectLogf()

	err := Execute(context.Background(), "sh", []string{"-c", "echo hello-out; echo hello-err 1>&2"}, nil, 0, cfg, logf)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := cell.Get(); got != status.Initialized {
		t.Errorf("cell = %v, want Initialized", got)
	}

	joined := strings.Join(lines(), "\n")
	if !strings.Contains(joined, "hello-out") || !strings.Contains(joined, "hello-err") {
		t.Errorf("expected both stdout and stderr lines pumped through logf, got %v", lines())
	}
}

func TestExecuteExitFailure(t *testing.T) {
	cell := status.NewCell(status.Uninitialized)
	cfg := Config{Cell: cell, Entry: status.Starting, Exit: status.Started, Failure: status.Failure}
	logf, _ := collectLogf()

	err := Execute(context.Background(), "sh", []string{"-c", "exit 7"}, nil, 0, cfg, logf)
	if err == nil {
		t.Fatal("expected an error for a nonzero exit")
	}
	ee, ok := err.(*Error)
	if !ok {
		t.Fatalf("error is %T, want *Error", err)
	}
	if ee.Phase != PhaseExit {
		t.Errorf("Phase = %v, want PhaseExit", ee.Phase)
	}
	if ee.ExitCode != 7 {
		t.Errorf("ExitCode = %d, want 7", ee.ExitCode)
	}
	if got := cell.Get(); got != status.Failure {
		t.Errorf("cell = %v, want Failure", got)
	}
}

func TestExecuteTimeout(t *testing.T) {
	cell := status.NewCell(status.Uninitialized)
	cfg := Config{Cell: cell, Entry: status.Starting, Exit: status.Started, Failure: status.Failure}
	logf, _ := collectLogf()

	err := Execute(context.Background(), "sh", []string{"-c", "sleep 5"}, nil, 20*time.Millisecond, cfg, logf)
	if err == nil {
		t.Fatal("expected a timeout error")
	}
	ee, ok := err.(*Error)
	if !ok {
		t.Fatalf("error is %T, want *Error", err)
	}
	if ee.Phase != PhaseTimeout {
		t.Errorf("Phase = %v, want PhaseTimeout", ee.Phase)
	}
	if got := cell.Get(); got != status.Failure {
		t.Errorf("cell = %v, want Failure", got)
	}
}

func TestExecuteSpawnFailure(t *testing.T) {
	cell := status.NewCell(status.Uninitialized)
	cfg := Config{Cell: cell, Entry: status.Starting, Exit: status.Started, Failure: status.Failure}
	logf, _ := collectLogf()

	err := Execute(context.Background(), "/no/such/binary-pg-embed-test", nil, nil, 0, cfg, logf)
	if err == nil {
		t.Fatal("expected a spawn error for a nonexistent binary")
	}
	ee, ok := err.(*Error)
	if !ok {
		t.Fatalf("error is %T, want *Error", err)
	}
	if ee.Phase != PhaseSpawn {
		t.Errorf("Phase = %v, want PhaseSpawn", ee.Phase)
	}
}
