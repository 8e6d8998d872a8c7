package pgembed

import "testing"

func TestGeneratePassword(t *testing.T) {
	a, err := GeneratePassword()
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != 32 {
		t.Errorf("len(password) = %d, want 32", len(a))
	}

	b, err := GeneratePassword()
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two successive GeneratePassword() calls returned the same value")
	}
}
