package driver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/CerenB/miss-hit/internal/config"
	"github.com/CerenB/miss-hit/internal/diag"
	"github.com/CerenB/miss-hit/internal/source"
)

// DefaultMaxDiagnostics bounds the per-file diagnostic bag when the
// caller does not say otherwise.
const DefaultMaxDiagnostics = 500

// errBadConfiguration signals that discovery hit a fatal configuration
// problem; the details live in the run's diagnostic bag.
var errBadConfiguration = errors.New("configuration error")

// RunOptions configures a directory run.
type RunOptions struct {
	// Roots are files or directories to analyze.
	Roots []string

	// Fix applies autofixes and writes modified files back.
	Fix bool

	// Jobs bounds worker parallelism; <= 0 means GOMAXPROCS.
	Jobs int

	// MaxDiagnostics caps each file's diagnostic bag.
	MaxDiagnostics int

	// Cache, when non-nil, reuses prior results for unchanged files.
	// Ignored while fixing, since fixing must re-read every file.
	Cache *DiskCache

	// Progress receives per-file events. May be nil.
	Progress ProgressSink
}

// Report is the outcome of a run.
type Report struct {
	FileSet *source.FileSet
	Config  *diag.Bag // configuration and traversal diagnostics
	Files   []FileResult
	Fatal   bool
	Timings Timings
}

// ExitCode maps the report onto the process exit convention: 0 clean,
// 1 style issues or warnings found, 2 fatal condition.
func (r *Report) ExitCode() int {
	if r.Fatal || r.Config.HasErrors() {
		return 2
	}
	issues := r.Config.Len() > 0
	for i := range r.Files {
		bag := r.Files[i].Bag
		if bag == nil {
			continue
		}
		if bag.HasErrors() {
			return 2
		}
		if bag.Len() > 0 {
			issues = true
		}
	}
	if issues {
		return 1
	}
	return 0
}

type workItem struct {
	path string
	tree *config.Tree
}

// discoverWork resolves configuration trees for the roots and collects
// the sorted, deduplicated list of MATLAB files to analyze. Traversal
// problems surface through the reporter; a fatal configuration error
// stops discovery.
func discoverWork(roots []string, fileSet *source.FileSet, r diag.Reporter) (work []workItem, fatal bool) {
	trees := make(map[string]*config.Tree)
	treeFor := func(dir string) (*config.Tree, error) {
		dir = filepath.Clean(dir)
		if t, ok := trees[dir]; ok {
			return t, nil
		}
		t, err := config.BuildTree(fileSet, dir, r)
		if err != nil {
			return nil, err
		}
		trees[dir] = t
		return t, nil
	}

	seen := make(map[string]bool)
	add := func(path string, tree *config.Tree) {
		path = filepath.Clean(path)
		if seen[path] {
			return
		}
		seen[path] = true
		work = append(work, workItem{path: path, tree: tree})
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			r.Report(diag.NewError(diag.IOLoadFileError, source.Span{},
				"cannot stat "+root+": "+err.Error()))
			continue
		}
		if !info.IsDir() {
			tree, err := treeFor(filepath.Dir(root))
			if err != nil {
				return nil, true
			}
			if !strings.HasSuffix(root, ".m") {
				r.Report(diag.NewWarning(diag.MetaSuspectFilename, source.Span{},
					root+": filename should end with '.m'"))
			}
			add(root, tree)
			continue
		}

		tree, err := treeFor(root)
		if err != nil {
			return nil, true
		}
		walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if filepath.Clean(path) != filepath.Clean(root) && tree.Excluded(path) {
					return fs.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(path, ".m") {
				add(path, tree)
			}
			return nil
		})
		if walkErr != nil {
			r.Report(diag.NewError(diag.IOLoadFileError, source.Span{},
				"cannot walk "+root+": "+walkErr.Error()))
		}
	}

	sort.Slice(work, func(i, j int) bool { return work[i].path < work[j].path })
	return work, false
}

// ListFiles returns the files a run over the same roots would analyze,
// in the same order. Used to seed progress displays.
func ListFiles(roots []string) ([]string, error) {
	if len(roots) == 0 {
		roots = []string{"."}
	}
	work, fatal := discoverWork(roots, source.NewFileSet(), diag.NopReporter{})
	if fatal {
		return nil, errBadConfiguration
	}
	paths := make([]string, len(work))
	for i, w := range work {
		paths[i] = w.path
	}
	return paths, nil
}

func (o *RunOptions) emit(evt Event) {
	if o.Progress != nil {
		o.Progress.OnEvent(evt)
	}
}

// Run analyzes every MATLAB file under the roots in parallel. Directory
// roots are walked recursively with excluded subtrees pruned; file roots
// are taken as-is and resolve their configuration from the parent
// directory. Traversal order and result order are deterministic.
func Run(ctx context.Context, opts RunOptions) (*Report, error) {
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = DefaultMaxDiagnostics
	}
	if len(opts.Roots) == 0 {
		opts.Roots = []string{"."}
	}

	fileSet := source.NewFileSet()
	report := &Report{
		FileSet: fileSet,
		Config:  diag.NewBag(opts.MaxDiagnostics),
	}
	cfgReporter := diag.BagReporter{Bag: report.Config}

	loadStart := time.Now()

	work, fatal := discoverWork(opts.Roots, fileSet, cfgReporter)
	if fatal {
		report.Fatal = true
		return report, nil
	}
	if len(work) == 0 {
		return report, nil
	}

	// Preload all files. Load errors surface as per-file diagnostics
	// inside the parallel phase.
	fileIDs := make(map[string]source.FileID, len(work))
	loadErrors := make(map[string]error, len(work))
	for _, w := range work {
		opts.emit(Event{File: w.path, Stage: StageLoad, Status: StatusQueued})
		id, err := fileSet.Load(w.path)
		if err != nil {
			loadErrors[w.path] = err
			continue
		}
		fileIDs[w.path] = id
	}
	report.Timings.Set(StageLoad, time.Since(loadStart))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	analyzeStart := time.Now()

	// Result slots are index-unique per goroutine, no mutex needed.
	results := make([]FileResult, len(work))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(work)))

	for i, w := range work {
		g.Go(func(i int, w workItem) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				start := time.Now()
				opts.emit(Event{File: w.path, Stage: StageLex, Status: StatusWorking})

				if loadErr, hadError := loadErrors[w.path]; hadError {
					bag := diag.NewBag(opts.MaxDiagnostics)
					bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{},
						"failed to load file: "+loadErr.Error()))
					results[i] = FileResult{Path: w.path, Bag: bag}
					opts.emit(Event{File: w.path, Stage: StageLex, Status: StatusError,
						Err: loadErr, Elapsed: time.Since(start)})
					return nil
				}

				id := fileIDs[w.path]
				file := fileSet.Get(id)
				effOpts := w.tree.EffectiveOptions(w.path)

				if opts.Cache != nil && !opts.Fix {
					key := CacheKey(file, &effOpts)
					var payload DiskPayload
					if hit, err := opts.Cache.Get(key, &payload); err == nil && hit {
						remapFile(payload.Diagnostics, id)
						bag := diag.NewBag(opts.MaxDiagnostics)
						for _, d := range payload.Diagnostics {
							bag.Add(d)
						}
						results[i] = FileResult{Path: w.path, FileID: id, Bag: bag}
						opts.emit(Event{File: w.path, Stage: StageAnalyze, Status: StatusDone,
							Elapsed: time.Since(start)})
						return nil
					}
				}

				res := CheckFile(fileSet, id, &effOpts, opts.MaxDiagnostics, opts.Fix)

				if opts.Fix && res.Fixed != nil {
					opts.emit(Event{File: w.path, Stage: StageFix, Status: StatusWorking})
					if err := os.WriteFile(w.path, res.Fixed, 0o644); err != nil {
						res.Bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{},
							"failed to write fixed file: "+err.Error()))
					}
				}

				if opts.Cache != nil && !opts.Fix && !res.Disabled {
					key := CacheKey(file, &effOpts)
					// Best effort; a failed Put only costs a re-analysis.
					_ = opts.Cache.Put(key, &DiskPayload{
						Schema:      diskCacheSchemaVersion,
						Diagnostics: res.Bag.Items(),
					})
				}

				results[i] = res
				opts.emit(Event{File: w.path, Stage: StageAnalyze, Status: StatusDone,
					Elapsed: time.Since(start)})
				return nil
			}
		}(i, w))
	}

	if err := g.Wait(); err != nil {
		return report, err
	}
	report.Timings.Set(StageAnalyze, time.Since(analyzeStart))

	report.Files = results
	return report, nil
}
