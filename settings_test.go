package pgembed

import (
	"testing"

	"github.com/faokunega/pg-embed/internal/platform"
)

func TestSettingsValidate(t *testing.T) {
	cases := []struct {
		name    string
		s       Settings
		wantErr bool
	}{
		{"valid", Settings{DatabaseDir: "d", Port: 5432, User: "postgres"}, false},
		{"missing dir", Settings{Port: 5432, User: "postgres"}, true},
		{"missing port", Settings{DatabaseDir: "d", User: "postgres"}, true},
		{"missing user", Settings{DatabaseDir: "d", Port: 5432}, true},
	}
	for _, c := range cases {
		err := c.s.validate()
		if (err != nil) != c.wantErr {
			t.Errorf("%s: validate() error = %v, wantErr %v", c.name, err, c.wantErr)
		}
	}
}

func TestAuthMethodArg(t *testing.T) {
	cases := map[AuthMethod]string{Plain: "password", MD5: "md5", ScramSha256: "scram-sha-256"}
	for m, want := range cases {
		if got := m.Arg(); got != want {
			t.Errorf("%v.Arg() = %q, want %q", m, got, want)
		}
	}
}

func TestDefaultFetchSettings(t *testing.T) {
	fs := DefaultFetchSettings(PG_V16)
	if fs.Host != platform.DefaultHost {
		t.Errorf("Host = %q, want %q", fs.Host, platform.DefaultHost)
	}
	if fs.Version != PG_V16 {
		t.Errorf("Version = %v, want %v", fs.Version, PG_V16)
	}
}

func TestFetchSettingsValidateRejectsDarwinArm64Pre14(t *testing.T) {
	fs := FetchSettings{Host: platform.DefaultHost, OS: Darwin, Arch: Arm64v8, Version: PG_V13}
	if err := fs.validate(); err == nil {
		t.Fatal("expected validate() to reject darwin/arm64v8/pg13")
	}
}

func TestFetchSettingsValidateAcceptsSupportedCombo(t *testing.T) {
	fs := FetchSettings{Host: platform.DefaultHost, OS: Linux, Arch: Amd64, Version: PG_V16}
	if err := fs.validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestArtifactURLThreadedThroughFetchSettings(t *testing.T) {
	fs := FetchSettings{Host: "https://example.org", OS: Linux, Arch: Amd64, Version: PG_V16}
	got := fs.artifactURL()
	want := platform.ArtifactURL("https://example.org", platform.Linux, platform.Amd64, platform.PG_V16)
	if got != want {
		t.Errorf("artifactURL() = %q, want %q", got, want)
	}
}
