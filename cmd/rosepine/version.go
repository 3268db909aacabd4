package main

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"

	"rosepine/internal/update"
)

// Version information - injected at build time via ldflags
var (
	Version   = "dev"
	Build     = "unknown"
	BuildTime = ""
)

// releaseCheckTimeout bounds the post-build release lookup.
const releaseCheckTimeout = 2 * time.Second

// newChecker is swapped in tests to point at a fake release API.
var newChecker = func() *update.Checker {
	return update.NewChecker(update.DefaultRepoOwner, update.DefaultRepoName)
}

// versionString is the one-line form cobra prints for --version.
func versionString() string {
	s := Version
	if Build != "unknown" && Build != "" {
		s += fmt.Sprintf(" (build: %s)", Build)
	}
	if BuildTime != "" {
		s += fmt.Sprintf(" [%s]", BuildTime)
	}
	return s
}

// printVersion prints the version information
func printVersion(w io.Writer) {
	_, _ = fmt.Fprintf(w, "rosepine version %s\n", versionString())

	// Add Go version and platform info
	_, _ = fmt.Fprintf(w, "Go version: %s\n", runtime.Version())
	_, _ = fmt.Fprintf(w, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)

	// Try to get build info for development builds
	if Version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range info.Settings {
				if setting.Key == "vcs.revision" && len(setting.Value) > 7 {
					_, _ = fmt.Fprintf(w, "Commit: %s\n", setting.Value[:7])
					break
				}
			}
		}
	}
}

func (a *app) versionCmd() *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printVersion(a.stdout)
			if !check {
				return nil
			}
			info, err := newChecker().Check(contextOf(cmd), Version)
			if err != nil {
				return a.fail(fmt.Errorf("check for updates: %w", err))
			}
			_, _ = fmt.Fprintln(a.stdout, formatUpdateStatus(info))
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "look up the latest release on GitHub")
	return cmd
}

// notifyNewRelease prints a one-line notice when a newer release exists.
// Failures are logged and otherwise ignored.
func (a *app) notifyNewRelease(ctx context.Context) {
	if update.IsDevBuild(Version) {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, releaseCheckTimeout)
	defer cancel()

	info, err := newChecker().Check(ctx, Version)
	if err != nil {
		logger.Logf("release check failed: %v", err)
		return
	}
	if info != nil && info.UpdateAvailable {
		_, _ = fmt.Fprintln(a.stdout, formatUpdateStatus(info))
	}
}

func formatUpdateStatus(info *update.UpdateInfo) string {
	switch {
	case info == nil:
		return dimStyle.Render("Development build; release check skipped.")
	case info.UpdateAvailable:
		return warnStyle.Render(fmt.Sprintf("rosepine %s is available (you have %s): %s",
			info.LatestVersion, info.CurrentVersion, info.ReleaseURL))
	default:
		return successStyle.Render(fmt.Sprintf("rosepine %s is the latest release.", info.CurrentVersion))
	}
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
