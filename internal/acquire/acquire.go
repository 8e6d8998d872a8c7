// Package acquire implements the process-wide acquisition coordinator:
// a rendezvous that ensures at-most-one download/unpack per cache key
// while other callers wait, with deterministic recovery when the leader
// fails.
//
// The registry and the singleflight.Group are process-wide singletons
// (spec.md §4.5/§9): concurrent acquisition across separate OS processes
// is not serialized by this package. Callers needing cross-process safety
// should layer a filesystem lock (e.g. a lockfile under the cache root)
// themselves; this package does not introduce one.
package acquire

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"tailscale.com/types/logger"

	"github.com/faokunega/pg-embed/internal/backoff"
)

// Status is the per-cache-path acquisition state.
type Status int

const (
	Undefined Status = iota
	InProgress
	Finished
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "InProgress"
	case Finished:
		return "Finished"
	default:
		return "Undefined"
	}
}

var (
	mu       sync.Mutex
	registry = map[string]Status{}
	group    singleflight.Group
)

func setStatus(key string, s Status) {
	mu.Lock()
	defer mu.Unlock()
	registry[key] = s
}

// StatusOf returns the current acquisition status for a cache path without
// joining any in-flight acquisition.
func StatusOf(cacheDir string) Status {
	mu.Lock()
	defer mu.Unlock()
	return registry[cacheDir]
}

// MaybeAcquire runs acquire (typically fetch+unpack into cacheDir) so that
// exactly one caller across concurrent goroutines sharing cacheDir performs
// the work; all others block until it completes and observe the same
// result. singleflight.Group already gives the "release lock outside I/O,
// share result with waiters" behavior spec.md's protocol calls for. The
// registry map records each key's status so that later calls for a
// Finished key return without running acquireFn again, and so that
// StatusOf and WaitFinished can answer without joining Do.
func MaybeAcquire(cacheDir string, acquireFn func() error) error {
	if StatusOf(cacheDir) == Finished {
		return nil
	}

	_, err, _ := group.Do(cacheDir, func() (any, error) {
		// Re-check under the singleflight rendezvous: another caller may
		// have finished between our fast-path read above and Do taking
		// the leader slot.
		if StatusOf(cacheDir) == Finished {
			return nil, nil
		}

		setStatus(cacheDir, InProgress)
		if err := acquireFn(); err != nil {
			// Reset to Undefined so a subsequent caller may retry,
			// per spec.md's acquisition failure-recovery rule.
			setStatus(cacheDir, Undefined)
			return nil, err
		}
		setStatus(cacheDir, Finished)
		return nil, nil
	})
	return err
}

// WaitFinished polls StatusOf(cacheDir) at a bounded interval until it
// observes Finished or ctx-like deadline elapses, using backoff.Backoff
// capped low so after the first couple of retries it behaves as a
// near-fixed ~100ms poll, per spec.md's "sleep a bounded interval (e.g.
// 100ms); retry" wording. Most callers don't need this — MaybeAcquire
// already blocks the caller via singleflight — but it lets an observer
// watch a Finished transition without itself being a participant in Do.
func WaitFinished(cacheDir string, timeout time.Duration, logf logger.Logf) bool {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	b := backoff.NewBackoff("pg-embed-acquire", logf, 100*time.Millisecond)
	deadline := time.Now().Add(timeout)
	ctx, cancel := context.WithDeadline(context.Background(), deadline)
	defer cancel()
	for {
		if StatusOf(cacheDir) == Finished {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		b.BackOff(ctx, errPolling)
	}
}

var errPolling = pollError{}

type pollError struct{}

func (pollError) Error() string { return "polling for acquisition to finish" }

// Purge deletes the entire pg-embed cache subtree rooted at cacheRoot and
// resets the in-process registry. It does not reset the singleflight.Group
// because in-flight calls drop out of it automatically on completion.
func Purge(cacheRoot string) error {
	mu.Lock()
	registry = map[string]Status{}
	mu.Unlock()

	return os.RemoveAll(filepath.Clean(cacheRoot))
}
