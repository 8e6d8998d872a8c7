package pgembed

import "testing"

func TestVersionForMajor(t *testing.T) {
	v, ok := VersionForMajor(16)
	if !ok {
		t.Fatal("VersionForMajor(16) not found")
	}
	if v != PG_V16 {
		t.Errorf("VersionForMajor(16) = %v, want %v", v, PG_V16)
	}

	if _, ok := VersionForMajor(9); ok {
		t.Error("VersionForMajor(9) should not resolve; pg9 is not in the supported set")
	}
}
