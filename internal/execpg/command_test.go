package execpg

import (
	"testing"

	"github.com/faokunega/pg-embed/internal/layout"
	"github.com/google/go-cmp/cmp"
)

func TestInitdbArgs(t *testing.T) {
	p := layout.Paths{PasswordFile: "/cache/pwfile", DatabaseDir: "/data/cluster"}
	got := InitdbArgs(p, "postgres", "md5")
	want := []string{
		"-A", "md5",
		"-U", "postgres",
		"--pwfile=/cache/pwfile",
		"-D", "/data/cluster",
		"--encoding=UTF8",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("InitdbArgs() mismatch (-want +got):\n%s", diff)
	}
}

func TestStartArgs(t *testing.T) {
	p := layout.Paths{DatabaseDir: "/data/cluster"}
	got := StartArgs(p, 15432)
	want := []string{
		"-D", "/data/cluster",
		"-l", "/data/cluster/pg.log",
		"-o", "-p 15432",
		"-w", "start",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("StartArgs() mismatch (-want +got):\n%s", diff)
	}
}

func TestStopArgs(t *testing.T) {
	p := layout.Paths{DatabaseDir: "/data/cluster"}
	got := StopArgs(p)
	want := []string{"-D", "/data/cluster", "-w", "-m", "fast", "stop"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("StopArgs() mismatch (-want +got):\n%s", diff)
	}
}
