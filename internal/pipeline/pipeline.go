// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/scstools/scsup/internal/archive"
	"github.com/scstools/scsup/internal/manifest"
	"github.com/scstools/scsup/pkg/types"
)

// DefaultScratchPrefix names scratch directories so leftovers from a killed
// process are recognizable in the temp directory.
const DefaultScratchPrefix = "scs_updater_"

type (
	// Options configures a Pipeline. Zero-valued string fields, a nil Fs, a nil
	// Extractors map and a nil Logger fall back to defaults in New.
	// CompressionLevel is used as given; start from DefaultOptions.
	Options struct {
		Fs               afero.Fs
		Extractors       archive.Extractors
		Logger           *log.Logger
		OutputExtension  string
		ManifestName     string
		VersionKey       string
		ScratchPrefix    string
		ScratchDir       string
		CompressionLevel int
	}

	// Request is the input of one run.
	Request struct {
		InputPath types.FilesystemPath
		Version   string
	}

	// Result is the terminal outcome of a run. Exactly one of OutputPath and
	// Err is set.
	Result struct {
		OutputPath types.FilesystemPath
		// ManifestPath is the manifest's path relative to the archive root.
		ManifestPath string
		// Appended reports that the version field was missing and got added.
		Appended bool
		Err      *Error
	}

	// Event is one progress notification. Result is set only on the final
	// event, whose State is terminal.
	Event struct {
		State   State
		Message string
		Result  *Result
	}

	// ProgressFunc receives events in order on the goroutine running the
	// pipeline.
	ProgressFunc func(Event)

	// Pipeline runs mod updates with a fixed configuration.
	Pipeline struct {
		fs        afero.Fs
		reader    *archive.Reader
		logger    *log.Logger
		opts      Options
		packOpts  archive.PackOptions
		maxEvents int
	}

	// run carries the state of a single Run call.
	run struct {
		p        *Pipeline
		logger   *log.Logger
		progress ProgressFunc
		state    State
		scratch  string
	}
)

// DefaultOptions returns the options of a pipeline on the OS filesystem.
func DefaultOptions() Options {
	return Options{
		Fs:               afero.NewOsFs(),
		OutputExtension:  archive.ExtSCS,
		ManifestName:     manifest.DefaultName,
		VersionKey:       manifest.DefaultKey,
		ScratchPrefix:    DefaultScratchPrefix,
		CompressionLevel: archive.DefaultPackOptions().CompressionLevel,
	}
}

// New creates a Pipeline from opts.
func New(opts Options) *Pipeline {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.OutputExtension == "" {
		opts.OutputExtension = archive.ExtSCS
	}
	if opts.ManifestName == "" {
		opts.ManifestName = manifest.DefaultName
	}
	if opts.VersionKey == "" {
		opts.VersionKey = manifest.DefaultKey
	}
	if opts.ScratchPrefix == "" {
		opts.ScratchPrefix = DefaultScratchPrefix
	}

	return &Pipeline{
		fs:        opts.Fs,
		reader:    archive.NewReader(opts.Fs, opts.Extractors),
		logger:    opts.Logger,
		opts:      opts,
		packOpts:  archive.PackOptions{CompressionLevel: opts.CompressionLevel},
		maxEvents: int(StateFailed) + 1,
	}
}

// Succeeded reports whether the run produced an output archive.
func (r Result) Succeeded() bool { return r.Err == nil }

// Message returns the line a presentation layer shows for the outcome: the
// output path on success and the failure's message otherwise.
func (r Result) Message() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	return r.OutputPath.String()
}

// Run executes one update synchronously. progress may be nil. Every step is
// announced before it runs, and the last event carries the Result that Run
// also returns.
func (p *Pipeline) Run(ctx context.Context, req Request, progress ProgressFunc) Result {
	r := &run{
		p:        p,
		logger:   p.logger.With("run", uuid.NewString()),
		progress: progress,
		state:    StateIdle,
	}
	r.logger.Debug("starting", "input", req.InputPath, "version", req.Version)

	res, err := r.execute(ctx, req)
	r.cleanup()

	if err != nil {
		res = Result{Err: &Error{Kind: Classify(err), State: r.state, Err: err}}
		r.logger.Debug("failed", "state", r.state, "kind", res.Err.Kind, "err", err)
		r.finish(StateFailed, res)
		return res
	}
	r.logger.Debug("succeeded", "output", res.OutputPath)
	r.finish(StateSucceeded, res)
	return res
}

// Start runs the update on a background goroutine and returns its events.
// The channel is closed after the terminal event. It is buffered for a full
// run, so the worker never blocks on a slow or absent reader.
func (p *Pipeline) Start(ctx context.Context, req Request) <-chan Event {
	events := make(chan Event, p.maxEvents)
	go func() {
		defer close(events)
		p.Run(ctx, req, func(ev Event) { events <- ev })
	}()
	return events
}

func (r *run) execute(ctx context.Context, req Request) (res Result, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("%w: panic during %s: %v", ErrUnexpectedFailure, r.state, v)
		}
	}()

	if err = req.InputPath.Validate(); err != nil {
		return res, err
	}
	version := manifest.ParseVersion(req.Version)
	if err = version.Validate(); err != nil {
		return res, err
	}
	opts := r.p.opts

	r.enter(StateCreatingScratch, "Creating temporary working directory...")
	if err = r.createScratch(); err != nil {
		return res, err
	}

	r.enter(StateExtracting, "Extracting archive...")
	if _, err = r.p.reader.Extract(ctx, req.InputPath.String(), r.scratch); err != nil {
		return res, err
	}
	if err = ctx.Err(); err != nil {
		return res, err
	}

	r.enter(StateLocatingManifest, fmt.Sprintf("Searching for %s...", opts.ManifestName))
	manifestPath, err := manifest.Locate(r.p.fs, r.scratch, opts.ManifestName)
	if err != nil {
		return res, err
	}
	res.ManifestPath = r.relative(manifestPath)
	r.logger.Debug("found manifest", "path", res.ManifestPath)

	r.enter(StatePatching, fmt.Sprintf("Updating version to %s...", version))
	replaced, err := manifest.Patch(r.p.fs, manifestPath, opts.VersionKey, version)
	if err != nil {
		return res, err
	}
	res.Appended = !replaced
	if err = ctx.Err(); err != nil {
		return res, err
	}

	r.enter(StatePackaging, fmt.Sprintf("Repackaging as %s...", opts.OutputExtension))
	output := archive.OutputPath(req.InputPath, version.Suffix(), opts.OutputExtension)
	if err = archive.Pack(ctx, r.p.fs, r.scratch, output.String(), r.p.packOpts); err != nil {
		return res, err
	}
	res.OutputPath = output
	return res, nil
}

func (r *run) createScratch() error {
	dir, err := afero.TempDir(r.p.fs, r.p.opts.ScratchDir, r.p.opts.ScratchPrefix)
	if err != nil {
		return fmt.Errorf("%w: failed to create temporary working directory: %w", ErrUnexpectedFailure, err)
	}
	r.scratch = dir
	r.logger.Debug("created scratch directory", "path", dir)
	return nil
}

// cleanup removes the scratch directory if one was created. A failure is
// logged and otherwise ignored so it never replaces the run's outcome.
func (r *run) cleanup() {
	if r.scratch == "" {
		return
	}
	r.emit(StateCleaningUp, "Cleaning up temporary files...")
	if err := r.p.fs.RemoveAll(r.scratch); err != nil {
		r.logger.Warn("failed to remove temporary working directory", "path", r.scratch, "err", err)
		return
	}
	r.scratch = ""
}

// enter records s as the running step and announces it.
func (r *run) enter(s State, msg string) {
	r.state = s
	r.emit(s, msg)
}

func (r *run) emit(s State, msg string) {
	r.logger.Debug(msg, "state", s)
	if r.progress != nil {
		r.progress(Event{State: s, Message: msg})
	}
}

func (r *run) finish(s State, res Result) {
	if r.progress != nil {
		r.progress(Event{State: s, Message: res.Message(), Result: &res})
	}
}

func (r *run) relative(path string) string {
	rel, err := filepath.Rel(r.scratch, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// AsError returns the pipeline error in err's chain, if any.
func AsError(err error) (*Error, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
