// Package build runs the generator over template files on disk and writes one
// output per variant.
//
// A single template file "theme.json" produces "{out}/main.json",
// "{out}/moon.json" and "{out}/dawn.json". A directory produces
// "{out}/{variant}/{relative path}" for every file in it, descending into
// subdirectories only when Recurse is set.
package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"rosepine/internal/cache"
	"rosepine/internal/debug"
	appErrors "rosepine/internal/errors"
	"rosepine/internal/generate"
	"rosepine/internal/palette"
)

var logger = debug.Scope("build")

// Options configures a build run.
type Options struct {
	// Source is a template file or a directory of templates.
	Source string
	// Out is the output directory.
	Out      string
	Recurse  bool
	Generate generate.Config
	// Manifest enables incremental builds when non-nil.
	Manifest *cache.Manifest
}

// FileReport describes one (template, variant) output.
type FileReport struct {
	Source  string
	Variant palette.Variant
	Output  string
	Skipped bool
}

// Diagnostic is a placeholder left as literal text in one template.
type Diagnostic struct {
	Source string
	generate.Diagnostic
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d: %v", d.Source, d.Start, d.Err)
}

// Report summarizes a build run.
type Report struct {
	Files       []FileReport
	Diagnostics []Diagnostic
}

// Written counts outputs that were rendered and written.
func (r Report) Written() int {
	n := 0
	for _, f := range r.Files {
		if !f.Skipped {
			n++
		}
	}
	return n
}

// Skipped counts outputs left alone because the manifest showed them current.
func (r Report) Skipped() int {
	return len(r.Files) - r.Written()
}

// WrittenByVariant counts written outputs per variant.
func (r Report) WrittenByVariant() map[palette.Variant]int {
	out := make(map[palette.Variant]int, len(palette.Variants()))
	for _, f := range r.Files {
		if !f.Skipped {
			out[f.Variant]++
		}
	}
	return out
}

// Builder renders templates from one filesystem into output files on the same
// filesystem.
type Builder struct {
	fs   afero.Fs
	opts Options
}

// New returns a Builder over fs.
func New(fs afero.Fs, opts Options) *Builder {
	return &Builder{fs: fs, opts: opts}
}

// job is one template file and its destination per variant.
type job struct {
	source  string
	outputs map[palette.Variant]string
}

// Run builds every template. Placeholder problems are collected into the
// report; I/O failures abort the run.
func (b *Builder) Run(ctx context.Context) (Report, error) {
	source := strings.TrimSpace(b.opts.Source)
	if source == "" {
		return Report{}, appErrors.New(appErrors.CodeTemplateNotFound, "no template source given", nil)
	}

	info, err := b.fs.Stat(source)
	if err != nil {
		if os.IsNotExist(err) {
			return Report{}, appErrors.New(appErrors.CodeTemplateNotFound,
				fmt.Sprintf("template source %q does not exist", source), err)
		}
		return Report{}, fmt.Errorf("stat %s: %w", source, err)
	}

	var jobs []job
	if info.IsDir() {
		jobs, err = b.directoryJobs(source)
		if err != nil {
			return Report{}, err
		}
	} else {
		jobs = []job{b.fileJob(source)}
	}
	logger.Logf("%d template(s) from %s", len(jobs), source)

	var report Report
	for _, j := range jobs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := b.runJob(ctx, j, &report); err != nil {
			return report, err
		}
	}
	return report, nil
}

func (b *Builder) fileJob(source string) job {
	ext := filepath.Ext(source)
	outputs := make(map[palette.Variant]string, len(palette.Variants()))
	for _, v := range palette.Variants() {
		outputs[v] = filepath.Join(b.opts.Out, v.Key()+ext)
	}
	return job{source: source, outputs: outputs}
}

func (b *Builder) directoryJobs(root string) ([]job, error) {
	outAbs := cleanAbs(b.opts.Out)
	var jobs []job

	err := afero.Walk(b.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path == root {
				return nil
			}
			if !b.opts.Recurse || cleanAbs(path) == outAbs {
				return filepath.SkipDir
			}
			return nil
		}
		if info.Name() == cache.FileName {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		outputs := make(map[palette.Variant]string, len(palette.Variants()))
		for _, v := range palette.Variants() {
			outputs[v] = filepath.Join(b.opts.Out, v.Key(), rel)
		}
		jobs = append(jobs, job{source: path, outputs: outputs})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return jobs, nil
}

func (b *Builder) runJob(ctx context.Context, j job, report *Report) error {
	data, err := afero.ReadFile(b.fs, j.source)
	if err != nil {
		return fmt.Errorf("read template %s: %w", j.source, err)
	}
	checksum := cache.Checksum(data)
	fingerprint := b.fingerprint()

	stale := make([]palette.Variant, 0, len(palette.Variants()))
	for _, v := range palette.Variants() {
		fresh, err := b.fresh(ctx, j, v, checksum, fingerprint)
		if err != nil {
			return err
		}
		if fresh {
			report.Files = append(report.Files, FileReport{Source: j.source, Variant: v, Output: j.outputs[v], Skipped: true})
			continue
		}
		stale = append(stale, v)
	}
	if len(stale) == 0 {
		logger.Logf("%s: up to date", j.source)
		return nil
	}

	res, err := generate.Generate(string(data), b.opts.Generate)
	if err != nil {
		return fmt.Errorf("%s: %w", j.source, err)
	}
	for _, d := range res.Diagnostics {
		report.Diagnostics = append(report.Diagnostics, Diagnostic{Source: j.source, Diagnostic: d})
	}

	for _, v := range stale {
		out := j.outputs[v]
		if err := b.write(out, res.Text(v)); err != nil {
			return err
		}
		report.Files = append(report.Files, FileReport{Source: j.source, Variant: v, Output: out})
		logger.Logf("%s -> %s", j.source, out)

		if b.opts.Manifest != nil {
			err := b.opts.Manifest.Record(ctx, cache.Entry{
				Source:      j.source,
				Variant:     v.Key(),
				Checksum:    checksum,
				Fingerprint: fingerprint,
				Output:      out,
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// fresh reports whether the manifest shows v's output for j as current.
func (b *Builder) fresh(ctx context.Context, j job, v palette.Variant, checksum, fingerprint string) (bool, error) {
	if b.opts.Manifest == nil {
		return false, nil
	}
	entry, ok, err := b.opts.Manifest.Lookup(ctx, j.source, v.Key())
	if err != nil || !ok {
		return false, err
	}
	want := cache.Entry{Source: j.source, Variant: v.Key(), Checksum: checksum, Fingerprint: fingerprint}
	if !entry.Matches(want) || entry.Output != j.outputs[v] {
		return false, nil
	}
	exists, err := afero.Exists(b.fs, j.outputs[v])
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", j.outputs[v], err)
	}
	return exists, nil
}

func (b *Builder) fingerprint() string {
	cfg := b.opts.Generate
	return cache.Fingerprint(
		string(cfg.Parse.Prefix),
		string(cfg.Parse.Separator),
		cfg.Parse.Delimiter.String(),
		cfg.Format.String(),
		strconv.FormatBool(cfg.ForceAlpha),
		string(cfg.Engine),
	)
}

func (b *Builder) write(path, content string) error {
	//nolint:gosec // G301: output directories need standard permissions
	if err := b.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	//nolint:gosec // G306: generated themes are meant to be readable
	if err := afero.WriteFile(b.fs, path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func cleanAbs(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
