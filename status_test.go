package pgembed

import "testing"

func TestStatusString(t *testing.T) {
	cases := map[Status]string{
		Uninitialized: "Uninitialized",
		Initializing:  "Initializing",
		Initialized:   "Initialized",
		Starting:      "Starting",
		Started:       "Started",
		Stopping:      "Stopping",
		Stopped:       "Stopped",
		Failure:       "Failure",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(s), got, want)
		}
	}
}
