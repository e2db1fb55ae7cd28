package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gdzig/oopz/internal/diag"
	"github.com/gdzig/oopz/internal/manifest"
	"github.com/gdzig/oopz/internal/observ"
	"github.com/gdzig/oopz/internal/snapshot"
	"github.com/gdzig/oopz/internal/source"
)

// DefaultMaxDiagnostics bounds each job's bag when Options leaves the
// limit unset.
const DefaultMaxDiagnostics = 100

// EmitFunc receives one cleanly checked result during StageEmit.
// Implementations report their own diagnostics through rep and return
// an error only for failures worth aborting the job over.
type EmitFunc func(ctx context.Context, res *Result, rep diag.Reporter) error

// Options configure a Run.
type Options struct {
	Jobs           int // parallel jobs; <=0 means GOMAXPROCS
	MaxDiagnostics int
	Sink           Sink
	Store          *snapshot.Store // nil disables the snapshot cache
	Emit           EmitFunc        // nil skips StageEmit
}

func (o *Options) emit(evt Event) {
	if o.Sink != nil {
		o.Sink.OnEvent(evt)
	}
}

// Result is the outcome of one manifest job.
type Result struct {
	Path         string
	Manifest     *manifest.Manifest
	Resolved     *manifest.Resolved
	Bag          *diag.Bag
	Cached       bool
	ChecksRan    int
	ChecksFailed int
	Timing       observ.Report
}

// RunResult aggregates every job of a run, in input order.
type RunResult struct {
	Results []Result
	FileSet *source.FileSet
}

// HasErrors reports whether any job produced an error diagnostic.
func (r *RunResult) HasErrors() bool {
	for i := range r.Results {
		if r.Results[i].Bag != nil && r.Results[i].Bag.HasErrors() {
			return true
		}
	}
	return false
}

// Diagnostics merges every job's bag into one sorted, deduplicated bag.
func (r *RunResult) Diagnostics() *diag.Bag {
	merged := diag.NewBag(0)
	for i := range r.Results {
		if r.Results[i].Bag != nil {
			merged.Merge(r.Results[i].Bag)
		}
	}
	merged.Sort()
	merged.Dedup()
	return merged
}

// Checks totals the battery counters across jobs.
func (r *RunResult) Checks() (ran, failed int) {
	for i := range r.Results {
		ran += r.Results[i].ChecksRan
		failed += r.Results[i].ChecksFailed
	}
	return ran, failed
}

// ListManifests returns the sorted *.toml paths under dir.
func ListManifests(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".toml") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Run processes the given manifests with bounded parallelism. Per-job
// failures become diagnostics in the job's bag, never an error; the
// returned error is reserved for cancellation.
func Run(ctx context.Context, paths []string, opts Options) (*RunResult, error) {
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = DefaultMaxDiagnostics
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	fileSet := source.NewFileSet()
	out := &RunResult{Results: make([]Result, len(paths)), FileSet: fileSet}
	if len(paths) == 0 {
		return out, nil
	}

	// Preload on the coordinating goroutine; read failures surface as
	// job diagnostics below, not as run errors.
	fileIDs := make(map[string]source.FileID, len(paths))
	loadErrors := make(map[string]error, len(paths))
	for _, path := range paths {
		opts.emit(Event{Manifest: path, Stage: StageLoad, Status: StatusQueued})
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// Slot writes need no mutex; each job owns its index.
			out.Results[i] = runJob(gctx, fileSet, fileIDs[path], loadErrors[path], path, &opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, nil
}

func runJob(ctx context.Context, fileSet *source.FileSet, fileID source.FileID, loadErr error, path string, opts *Options) (res Result) {
	res = Result{Path: path, Bag: diag.NewBag(opts.MaxDiagnostics)}
	rep := diag.BagReporter{Bag: res.Bag}
	tm := observ.NewTimer()
	defer func() { res.Timing = tm.Report() }()

	// Load: restore from the snapshot cache when the content hash
	// hits, parse otherwise.
	opts.emit(Event{Manifest: path, Stage: StageLoad, Status: StatusWorking})
	start := time.Now()
	idx := tm.Begin("load")
	if loadErr != nil {
		diag.ReportError(rep, diag.ManLoadFailed, diag.Subject{File: path},
			"failed to read manifest: "+loadErr.Error()).Emit()
		tm.End(idx, "io error")
		opts.emit(Event{Manifest: path, Stage: StageLoad, Status: StatusError, Err: loadErr, Elapsed: time.Since(start)})
		return res
	}
	file := fileSet.Get(fileID)

	var m *manifest.Manifest
	var r *manifest.Resolved
	if opts.Store != nil {
		var payload snapshot.Payload
		if ok, _ := opts.Store.Get(snapshot.Digest(file.Hash), &payload); ok {
			if sm, sr, ok := payload.Restore(); ok {
				m, r = sm, sr
				res.Cached = true
			}
		}
	}
	if m == nil {
		parsed, err := manifest.Parse(path, file.Content)
		if err != nil {
			code := diag.ManSyntax
			if errors.Is(err, manifest.ErrPackageSectionMissing) || errors.Is(err, manifest.ErrPackageNameMissing) {
				code = diag.ManMissingPkg
			}
			diag.ReportError(rep, code, diag.Subject{File: path}, err.Error()).Emit()
			tm.End(idx, "parse error")
			opts.emit(Event{Manifest: path, Stage: StageLoad, Status: StatusError, Err: err, Elapsed: time.Since(start)})
			return res
		}
		m = parsed
	}
	res.Manifest = m
	note := "parsed"
	if res.Cached {
		note = "snapshot"
	}
	tm.End(idx, note)
	opts.emit(Event{Manifest: path, Stage: StageLoad, Status: StatusDone, Elapsed: time.Since(start)})

	// Resolve: a snapshot hit restored an already-validated table.
	opts.emit(Event{Manifest: path, Stage: StageResolve, Status: StatusWorking})
	start = time.Now()
	if r == nil {
		idx = tm.Begin("resolve")
		r = manifest.Resolve(m, rep)
		tm.End(idx, fmt.Sprintf("%d classes", r.Table.Len()))
		if res.Bag.HasErrors() {
			res.Resolved = r
			opts.emit(Event{Manifest: path, Stage: StageResolve, Status: StatusError, Elapsed: time.Since(start)})
			return res
		}
		if opts.Store != nil && res.Bag.Len() == 0 {
			// Best effort; a failed write just means a reparse next run.
			_ = opts.Store.Put(snapshot.Digest(file.Hash), snapshot.Encode(m, r))
		}
	}
	res.Resolved = r
	opts.emit(Event{Manifest: path, Stage: StageResolve, Status: StatusDone, Elapsed: time.Since(start)})

	// Check battery.
	opts.emit(Event{Manifest: path, Stage: StageCheck, Status: StatusWorking})
	start = time.Now()
	idx = tm.Begin("check")
	res.ChecksRan, res.ChecksFailed = manifest.RunChecks(m, r, rep)
	tm.End(idx, fmt.Sprintf("%d checks", res.ChecksRan))
	if res.Bag.HasErrors() {
		opts.emit(Event{Manifest: path, Stage: StageCheck, Status: StatusError, Elapsed: time.Since(start)})
		return res
	}
	opts.emit(Event{Manifest: path, Stage: StageCheck, Status: StatusDone, Elapsed: time.Since(start)})

	// Emit.
	if opts.Emit == nil {
		return res
	}
	opts.emit(Event{Manifest: path, Stage: StageEmit, Status: StatusWorking})
	start = time.Now()
	idx = tm.Begin("emit")
	if err := opts.Emit(ctx, &res, rep); err != nil {
		tm.End(idx, "failed")
		opts.emit(Event{Manifest: path, Stage: StageEmit, Status: StatusError, Err: err, Elapsed: time.Since(start)})
		return res
	}
	tm.End(idx, "")
	opts.emit(Event{Manifest: path, Stage: StageEmit, Status: StatusDone, Elapsed: time.Since(start)})
	return res
}
