package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/afero"

	"rosepine/internal/update"
)

func TestPrintVersion(t *testing.T) {
	tests := []struct {
		name          string
		version       string
		build         string
		buildTime     string
		expectContain []string
	}{
		{
			name:          "dev build",
			version:       "dev",
			build:         "unknown",
			expectContain: []string{"rosepine version dev", "Go version:", "OS/Arch:"},
		},
		{
			name:          "release build with commit",
			version:       "0.3.0",
			build:         "abc1234",
			buildTime:     "2026-01-02_12:00:00",
			expectContain: []string{"rosepine version 0.3.0", "(build: abc1234)", "[2026-01-02_12:00:00]", "Go version:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origVersion, origBuild, origBuildTime := Version, Build, BuildTime
			defer func() {
				Version, Build, BuildTime = origVersion, origBuild, origBuildTime
			}()
			Version, Build, BuildTime = tt.version, tt.build, tt.buildTime

			var buf bytes.Buffer
			printVersion(&buf)
			for _, want := range tt.expectContain {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}

func stubReleaseAPI(t *testing.T, tag string) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(update.ReleaseInfo{
			TagName: tag,
			HTMLURL: "https://github.com/juliamertz/rose-pine-build/releases/tag/" + tag,
		})
	}))
	t.Cleanup(server.Close)

	orig := newChecker
	newChecker = func() *update.Checker {
		return update.NewChecker(update.DefaultRepoOwner, update.DefaultRepoName, update.WithBaseURL(server.URL))
	}
	t.Cleanup(func() { newChecker = orig })
}

func TestVersionCheck(t *testing.T) {
	tests := []struct {
		name    string
		version string
		tag     string
		want    string
	}{
		{"update available", "0.3.0", "v0.4.1", "rosepine v0.4.1 is available (you have v0.3.0)"},
		{"up to date", "0.4.1", "v0.4.1", "rosepine v0.4.1 is the latest release."},
		{"dev build", "dev", "v0.4.1", "Development build; release check skipped."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := Version
			Version = tt.version
			t.Cleanup(func() { Version = orig })
			stubReleaseAPI(t, tt.tag)

			stdout, stderr, err := runCLI(t, afero.NewMemMapFs(), "version", "--check")
			if err != nil {
				t.Fatalf("Execute() error: %v (stderr %q)", err, stderr)
			}
			if !strings.Contains(stdout, tt.want) {
				t.Errorf("stdout missing %q:\n%s", tt.want, stdout)
			}
		})
	}
}

func TestNotifyNewRelease(t *testing.T) {
	orig := Version
	Version = "0.1.0"
	t.Cleanup(func() { Version = orig })
	stubReleaseAPI(t, "v0.2.0")

	var stdout bytes.Buffer
	newApp(&stdout, &bytes.Buffer{}, afero.NewMemMapFs()).notifyNewRelease(t.Context())
	if got := ansi.Strip(stdout.String()); !strings.Contains(got, "rosepine v0.2.0 is available") {
		t.Errorf("notice = %q", got)
	}

	Version = "0.2.0"
	stdout.Reset()
	newApp(&stdout, &bytes.Buffer{}, afero.NewMemMapFs()).notifyNewRelease(t.Context())
	if stdout.Len() != 0 {
		t.Errorf("no notice expected when current, got %q", stdout.String())
	}
}
