package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ppiankov/baristacx/internal/model"
	"github.com/ppiankov/baristacx/internal/pipeline"
)

// TranscriptExtensions are the file types picked up from directories
var TranscriptExtensions = []string{".json", ".txt"}

// Scorer replays a transcript into a report
type Scorer interface {
	ScoreTranscript(t *pipeline.Transcript) (*model.Report, error)
}

// Exporter writes a report and returns the written paths
type Exporter interface {
	Export(r *model.Report, dir string, formats []string) ([]string, error)
}

// ScoreJob scores one transcript file and exports its report
type ScoreJob struct {
	Index    int
	Path     string
	Scorer   Scorer
	Exporter Exporter
	Limiter  *Limiter
	OutDir   string
	Formats  []string
}

// Execute runs the job
func (j *ScoreJob) Execute(ctx context.Context) Result {
	res := &ScoreResult{Index: j.Index, Path: j.Path}

	if err := ctx.Err(); err != nil {
		res.Error = err
		return res
	}

	t, err := pipeline.ReadTranscript(j.Path)
	if err != nil {
		res.Error = err
		return res
	}

	report, err := j.Scorer.ScoreTranscript(t)
	if err != nil {
		res.Error = fmt.Errorf("score %s: %w", j.Path, err)
		return res
	}
	res.Report = report

	if j.Exporter == nil || len(j.Formats) == 0 {
		return res
	}
	if err := j.Limiter.Wait(ctx, j.OutDir); err != nil {
		res.Error = fmt.Errorf("export %s: %w", j.Path, err)
		return res
	}
	res.Files, res.Error = j.Exporter.Export(report, j.OutDir, j.Formats)
	return res
}

// ScoreResult is the outcome of a ScoreJob
type ScoreResult struct {
	Index  int
	Path   string
	Report *model.Report
	Files  []string
	Error  error
}

// Err returns the job error
func (r *ScoreResult) Err() error {
	return r.Error
}

// BatchProcessor scores many transcripts concurrently
type BatchProcessor struct {
	scorer      Scorer
	exporter    Exporter
	limiter     *Limiter
	concurrency int
	outDir      string
	formats     []string
}

// NewBatchProcessor creates a batch processor. A nil exporter or empty
// formats list scores without writing files.
func NewBatchProcessor(scorer Scorer, exporter Exporter, cfg model.BatchConfig, out model.OutputConfig) *BatchProcessor {
	return &BatchProcessor{
		scorer:      scorer,
		exporter:    exporter,
		limiter:     NewLimiter(cfg.WritesPerSecond, cfg.Burst),
		concurrency: cfg.Workers,
		outDir:      out.Dir,
		formats:     out.Formats,
	}
}

// ProcessFiles scores the given transcript files. Results come back in
// input order regardless of completion order.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*ScoreResult {
	if len(paths) == 0 {
		return []*ScoreResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()
	defer pool.Shutdown()

	go func() {
		defer pool.Close()
		for i, path := range paths {
			job := &ScoreJob{
				Index:    i,
				Path:     path,
				Scorer:   b.scorer,
				Exporter: b.exporter,
				Limiter:  b.limiter,
				OutDir:   b.outDir,
				Formats:  b.formats,
			}
			if !pool.Submit(job) {
				return
			}
		}
	}()

	results := make([]*ScoreResult, len(paths))
	for r := range pool.Results() {
		sr := r.(*ScoreResult)
		results[sr.Index] = sr
	}

	// Jobs never submitted because ctx ended
	for i, r := range results {
		if r == nil {
			results[i] = &ScoreResult{Index: i, Path: paths[i], Error: ctx.Err()}
		}
	}
	return results
}

// CollectTranscripts expands arguments into transcript files. Directories
// contribute their .json and .txt files (non-recursive, sorted); files are
// taken as given. Duplicates are dropped.
func CollectTranscripts(args []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)

	add := func(p string) {
		clean := filepath.Clean(p)
		if !seen[clean] {
			seen[clean] = true
			paths = append(paths, clean)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			add(arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("read dir %s: %w", arg, err)
		}
		var found []string
		for _, e := range entries {
			if e.IsDir() || !isTranscript(e.Name()) {
				continue
			}
			found = append(found, filepath.Join(arg, e.Name()))
		}
		sort.Strings(found)
		for _, p := range found {
			add(p)
		}
	}
	return paths, nil
}

func isTranscript(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range TranscriptExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
