package pipeline

import (
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/theirongolddev/lifeline/internal/source"
)

// Result is the outcome of evaluating one discovered snapshot.
type Result struct {
	File   source.DiscoveredFile
	Report *Report
	Err    error
}

// BatchResult holds the output of evaluating a set of snapshot files.
type BatchResult struct {
	Results    []Result // in input order
	TotalFiles int
	Evaluated  int
	Failed     int
}

// ProgressFunc is called during a batch to report progress.
// current is the number of files processed so far, total is the total count.
type ProgressFunc func(current, total int)

// EvaluateAll evaluates every file with a bounded worker pool. All files
// share one "now" so the reports are comparable.
func (r *Runner) EvaluateAll(files []source.DiscoveredFile, progressFn ProgressFunc) *BatchResult {
	result := &BatchResult{TotalFiles: len(files)}
	if len(files) == 0 {
		return result
	}

	fixed := &Runner{
		log:        r.log,
		clock:      FixedClock{T: r.clock.Now()},
		calculator: r.calculator,
		validator:  r.validator,
		scorer:     r.scorer,
		integrator: r.integrator,
		assessor:   r.assessor,
		aggregator: r.aggregator,
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	work := make(chan int, len(files))
	results := make([]Result, len(files))
	var wg sync.WaitGroup
	var processed atomic.Int64

	for i := range files {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				rep, err := fixed.EvaluateFile(files[idx].Path)
				results[idx] = Result{File: files[idx], Report: rep, Err: err}
				n := processed.Add(1)
				if progressFn != nil {
					progressFn(int(n), len(files))
				}
			}
		}()
	}

	wg.Wait()

	for _, res := range results {
		if res.Err != nil {
			result.Failed++
			r.log.WithError(res.Err).WithField("path", res.File.Path).Warn("snapshot failed")
			continue
		}
		result.Evaluated++
	}
	result.Results = results
	return result
}

// Reports returns the successful reports, most severe status first; equal
// statuses are ordered by household name.
func (b *BatchResult) Reports() []*Report {
	var out []*Report
	for _, res := range b.Results {
		if res.Err == nil && res.Report != nil {
			out = append(out, res.Report)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		si, sj := out[i].Assessment.Status.Severity(), out[j].Assessment.Status.Severity()
		if si != sj {
			return si > sj
		}
		return out[i].Household < out[j].Household
	})
	return out
}
