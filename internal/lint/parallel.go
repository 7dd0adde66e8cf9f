package lint

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"rxlint/internal/cache"
	"rxlint/internal/diag"
	"rxlint/internal/hostlang"
	"rxlint/internal/observ"
	"rxlint/internal/source"
	"rxlint/internal/trace"
)

// FileResult is the outcome for one file.
type FileResult struct {
	Path       string
	FileID     source.FileID
	Bag        *diag.Bag
	Literals   int
	Cached     bool
	Suppressed int
	Timing     *observ.Report
}

// parallelMetrics tracks performance metrics for parallel processing.
type parallelMetrics struct {
	workersActive    atomic.Int32 // Currently running workers
	workersPeak      atomic.Int32 // Max simultaneously running workers
	workersCompleted atomic.Int64 // Total completed tasks
	loadErrors       atomic.Int64 // Files that could not be read

	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
	cacheErrors atomic.Int64

	literals    atomic.Int64
	diagnostics atomic.Int64
}

func (pm *parallelMetrics) enter() {
	n := pm.workersActive.Add(1)
	for {
		peak := pm.workersPeak.Load()
		if n <= peak || pm.workersPeak.CompareAndSwap(peak, n) {
			return
		}
	}
}

func (pm *parallelMetrics) leave() {
	pm.workersActive.Add(-1)
	pm.workersCompleted.Add(1)
}

// summary renders the metrics on one line for the trace.
func (pm *parallelMetrics) summary() string {
	hits, misses := pm.cacheHits.Load(), pm.cacheMisses.Load()
	rate := 0.0
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total) * 100
	}
	return fmt.Sprintf(
		"workers: %d completed, peak %d | load errors: %d | cache: %d/%d (%.1f%%), %d errors | literals: %d | diagnostics: %d",
		pm.workersCompleted.Load(), pm.workersPeak.Load(),
		pm.loadErrors.Load(),
		hits, hits+misses, rate, pm.cacheErrors.Load(),
		pm.literals.Load(), pm.diagnostics.Load(),
	)
}

// LintPaths lints every file under paths. Results are sorted by path; the
// returned FileSet resolves all diagnostic spans.
func LintPaths(ctx context.Context, paths []string, opts Options) (*source.FileSet, []FileResult, error) {
	ctx, runSpan := trace.Start(ctx, trace.ScopePass, "lint")
	defer runSpan.End("")

	files, err := CollectFiles(paths, opts.Extensions)
	if err != nil {
		return nil, nil, err
	}
	runSpan.WithExtra("files", fmt.Sprint(len(files)))

	fileSet := source.NewFileSetWithBase(baseDirFor(paths))
	fileSet.SetDecoder(opts.Decoder)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	var metrics parallelMetrics

	// FileSet не потокобезопасен: загружаем всё до запуска воркеров.
	_, loadSpan := trace.Start(ctx, trace.ScopePass, "load")
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make([]error, len(files))
	for i, p := range files {
		emit(opts.Progress, Event{File: p, Stage: StageLoad, Status: StatusQueued})
		id, loadErr := fileSet.Load(p)
		if loadErr != nil {
			metrics.loadErrors.Add(1)
			loadErrors[i] = loadErr
			id = fileSet.AddVirtual(p, nil)
		}
		fileIDs[i] = id
	}
	loadSpan.End(fmt.Sprintf("files=%d", len(files)))

	fingerprint := opts.fingerprint()
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs(len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			metrics.enter()
			defer metrics.leave()

			started := time.Now()
			fctx, fileSpan := trace.Start(gctx, trace.ScopeFile, "file:"+path)
			var timer *observ.Timer
			if opts.EnableTimings {
				timer = observ.NewTimer()
			}

			res := FileResult{Path: path, FileID: fileIDs[i]}
			var failure error
			finish := func(status Status, note string) {
				if timer != nil {
					report := timer.Report()
					res.Timing = &report
				}
				results[i] = res
				n := 0
				if res.Bag != nil {
					n = res.Bag.Len()
				}
				metrics.diagnostics.Add(int64(n))
				fileSpan.End(note)
				emit(opts.Progress, Event{
					File: path, Stage: StageAnalyze, Status: status,
					Elapsed: time.Since(started), Diagnostics: n, Cached: res.Cached,
					Err: failure,
				})
			}

			if loadErrors[i] != nil {
				res.Bag = diag.NewBag(opts.MaxDiagnostics)
				res.Bag.Add(diag.NewError(diag.IOLoadFileError,
					source.Span{File: fileIDs[i]},
					"failed to load file: "+loadErrors[i].Error()))
				finish(StatusError, "load error")
				return nil
			}

			file := fileSet.Get(fileIDs[i])
			lang, _ := hostlang.LangFor(file.Path)
			key := cache.KeyFor(file.Hash, fingerprint+";lang="+lang.String())

			if opts.Cache != nil {
				cacheIdx := timer.Begin("cache_lookup")
				entry, hit, cerr := opts.Cache.Get(key)
				switch {
				case cerr != nil:
					metrics.cacheErrors.Add(1)
					timer.End(cacheIdx, "error")
				case hit:
					metrics.cacheHits.Add(1)
					timer.End(cacheIdx, "hit")
					res.Bag = diag.NewBag(opts.MaxDiagnostics)
					for _, d := range entry.Diagnostics(file.ID) {
						res.Bag.Add(d)
					}
					res.Cached = true
					finish(statusFor(res.Bag), "cached")
					return nil
				default:
					metrics.cacheMisses.Add(1)
					timer.End(cacheIdx, "miss")
				}
			}

			emit(opts.Progress, Event{File: path, Stage: StageExtract, Status: StatusWorking})
			bag, literals, lerr := lintFile(fctx, file, opts, timer)
			if lerr != nil {
				failure = fmt.Errorf("%s: %w", path, lerr)
				finish(StatusError, "error")
				return failure
			}
			metrics.literals.Add(int64(literals))
			res.Bag = bag
			res.Literals = literals

			if opts.Cache != nil {
				if perr := opts.Cache.Put(key, cache.FromDiagnostics(file.Path, bag.Items())); perr != nil {
					metrics.cacheErrors.Add(1)
				}
			}
			finish(statusFor(bag), fmt.Sprintf("literals=%d", literals))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}

	if opts.Baseline != nil {
		for i := range results {
			res := &results[i]
			kept, suppressed := opts.Baseline.Filter(fileSet, res.Bag.Items())
			if suppressed == 0 {
				continue
			}
			bag := diag.NewBag(opts.MaxDiagnostics)
			for _, d := range kept {
				bag.Add(d)
			}
			res.Bag = bag
			res.Suppressed = suppressed
		}
	}

	for i := range results {
		results[i].Bag.Sort()
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	trace.Point(trace.FromContext(ctx), trace.ScopePass, "metrics", metrics.summary(), runSpan.ID())
	return fileSet, results, nil
}

func statusFor(bag *diag.Bag) Status {
	if bag.HasErrors() {
		return StatusError
	}
	return StatusDone
}

// Stats summarises a run.
type Stats struct {
	Files       int
	Literals    int
	Cached      int
	Suppressed  int
	Errors      int
	Warnings    int
	Infos       int
	Diagnostics int
}

// Summarize counts results by severity.
func Summarize(results []FileResult) Stats {
	var s Stats
	for _, r := range results {
		s.Files++
		s.Literals += r.Literals
		s.Suppressed += r.Suppressed
		if r.Cached {
			s.Cached++
		}
		if r.Bag == nil {
			continue
		}
		for _, d := range r.Bag.Items() {
			s.Diagnostics++
			switch d.Severity {
			case diag.SevError:
				s.Errors++
			case diag.SevWarning:
				s.Warnings++
			default:
				s.Infos++
			}
		}
	}
	return s
}

// Diagnostics flattens the bags of results in order.
func Diagnostics(results []FileResult) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, r := range results {
		if r.Bag != nil {
			out = append(out, r.Bag.Items()...)
		}
	}
	return out
}

// Timings aggregates per-file timing reports.
func Timings(results []FileResult) observ.Report {
	reports := make([]observ.Report, 0, len(results))
	for _, r := range results {
		if r.Timing != nil {
			reports = append(reports, *r.Timing)
		}
	}
	return observ.Aggregate(reports...)
}
