package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"rosepine/internal/build"
	"rosepine/internal/cache"
	"rosepine/internal/config"
	"rosepine/internal/debug"
	"rosepine/internal/format"
	"rosepine/internal/generate"
	"rosepine/internal/parse"
)

var logger = debug.Scope("cli")

// rootFlags maps each root flag to the config key it overrides.
var rootFlags = []struct {
	name string
	key  string
}{
	{"out", config.KeyOut},
	{"recurse", config.KeyRecurse},
	{"format", config.KeyFormat},
	{"delimiter", config.KeyDelimiter},
	{"separator", config.KeySeparator},
	{"prefix", config.KeyPrefix},
	{"force-alpha", config.KeyForceAlpha},
	{"engine", config.KeyEngine},
	{"incremental", config.KeyIncremental},
	{"debug", config.KeyDebug},
	{"skip-version-check", config.KeySkipVersionCheck},
}

// app carries the output streams and the filesystem so commands are testable.
type app struct {
	stdout io.Writer
	stderr io.Writer
	fs     afero.Fs
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	return newApp(stdout, stderr, afero.NewOsFs()).rootCmd()
}

func newApp(stdout, stderr io.Writer, fs afero.Fs) *app {
	return &app{stdout: stdout, stderr: stderr, fs: fs}
}

func (a *app) rootCmd() *cobra.Command {
	var writeConfig bool

	cmd := &cobra.Command{
		Use:   "rosepine [template-source]",
		Short: "Theme generator for Rosé Pine",
		Long: "rosepine renders template files containing color placeholders such as\n" +
			"$love:rgb_function/80 into one output per Rosé Pine variant (main, moon, dawn).",
		Version:       versionString(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyFlagOverrides(cmd); err != nil {
				return a.fail(err)
			}
			if writeConfig {
				path, err := config.WriteConfig("")
				if err != nil {
					return a.fail(err)
				}
				_, _ = fmt.Fprintf(a.stdout, "Wrote %s\n", path)
				if len(args) == 0 {
					return nil
				}
			}
			if len(args) == 0 {
				return a.fail(fmt.Errorf("missing template source (see --help)"))
			}
			return a.fail(a.runBuild(contextOf(cmd), args[0]))
		},
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	grammar := parse.DefaultOptions()
	f := cmd.Flags()
	f.StringP("out", "o", config.DefaultOut, "directory where generated files are written")
	f.BoolP("recurse", "r", false, "descend into subdirectories of a template directory")
	f.StringP("format", "f", format.Hex.String(), "default color format")
	f.StringP("delimiter", "d", grammar.Delimiter.String(), "bracket type for role groups")
	f.StringP("separator", "s", string(grammar.Separator), "character separating roles in a group")
	f.StringP("prefix", "p", string(grammar.Prefix), "placeholder prefix character")
	f.Bool("force-alpha", false, "always render an alpha channel")
	f.String("engine", string(generate.EngineReplace), "rendering engine: replace or template")
	f.Bool("incremental", false, "skip outputs whose template and settings are unchanged")
	f.Bool("debug", false, "write a debug log to ~/.rosepine/debug.log")
	f.Bool("skip-version-check", false, "do not look for a newer release after building")
	f.BoolVar(&writeConfig, "write-config", false, "persist the effective settings to the config file")

	cmd.AddCommand(
		a.colorCmd(),
		a.paletteCmd(),
		a.formatsCmd(),
		a.versionCmd(),
	)
	return cmd
}

// applyFlagOverrides forwards only the flags the user actually set, so config
// files and the environment keep their say otherwise.
func applyFlagOverrides(cmd *cobra.Command) error {
	overrides := map[string]any{}
	for _, fl := range rootFlags {
		flag := cmd.Flags().Lookup(fl.name)
		if flag == nil || !flag.Changed {
			continue
		}
		switch flag.Value.Type() {
		case "bool":
			v, _ := cmd.Flags().GetBool(fl.name)
			overrides[fl.key] = v
		default:
			overrides[fl.key] = flag.Value.String()
		}
	}
	return config.ApplyOverrides(overrides)
}

func (a *app) runBuild(ctx context.Context, source string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	if err := debug.Init(settings.Debug, settings.DebugPath); err != nil {
		return fmt.Errorf("initialize debug log: %w", err)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var manifest *cache.Manifest
	if settings.Incremental {
		manifest, err = cache.Open(ctx, settings.CachePath)
		if err != nil {
			return err
		}
		defer func() { _ = manifest.Close() }()
	}

	report, err := build.New(a.fs, build.Options{
		Source:   source,
		Out:      settings.Out,
		Recurse:  settings.Recurse,
		Generate: settings.Generate,
		Manifest: manifest,
	}).Run(ctx)
	if err != nil {
		return err
	}

	printBuildSummary(a.stdout, BuildSummary{
		Version: Version,
		Out:     settings.Out,
		Report:  report,
	}, terminalWidth())

	if !settings.SkipVersionCheck {
		a.notifyNewRelease(ctx)
	}
	return nil
}

// fail prints err in the CLI's error style and returns it for the exit code.
func (a *app) fail(err error) error {
	if err == nil {
		return nil
	}
	_, _ = fmt.Fprintln(a.stderr, errorStyle.Render("Error: ")+err.Error())
	return err
}
