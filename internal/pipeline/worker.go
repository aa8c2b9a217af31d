package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/docsense/docsense/internal/analyzer"
	"github.com/docsense/docsense/internal/ingest"
	"github.com/docsense/docsense/internal/store"
)

// Worker processes a single analysis job.
type Worker struct {
	analyzer *analyzer.Analyzer
	results  *store.Store
	stats    *Stats
	log      *slog.Logger
}

func NewWorker(a *analyzer.Analyzer, results *store.Store, stats *Stats, log *slog.Logger) *Worker {
	return &Worker{
		analyzer: a,
		results:  results,
		stats:    stats,
		log:      log,
	}
}

// Process runs the full analysis pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID, "filename", job.Filename)

	if ctx.Err() != nil {
		job.AddError(ctx.Err().Error())
		job.SetStatus(StatusFailed, "cancelled")
		return
	}

	// Phase 1: Decode
	job.SetStatus(StatusDecoding, "decoding")
	data := job.FileData()
	text, encodingName := ingest.Decode(data)

	filename := job.Filename
	if ext := strings.ToLower(filepath.Ext(filename)); ext == ".html" || ext == ".htm" {
		stripped, err := ingest.StripHTML(text)
		if err != nil {
			log.Error("html strip failed", "error", err)
			job.AddError(fmt.Sprintf("strip html: %s", err))
			job.SetStatus(StatusFailed, "decoding")
			return
		}
		text = stripped
		filename = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".txt"
	}

	job.SetContentHash(ContentHashHex([]byte(text)))
	log.Info("decoded document", "encoding", encodingName, "bytes", len(data))

	// Phase 2: Analyze
	job.SetStatus(StatusAnalyzing, "analyzing")
	start := time.Now()
	result, err := w.analyzer.Analyze(text, filename)
	if err != nil {
		log.Error("analysis failed", "error", err)
		job.AddError(fmt.Sprintf("analyze: %s", err))
		job.SetStatus(StatusFailed, "analyzing")
		return
	}
	w.stats.Record(time.Since(start).Milliseconds())
	log.Info("analyzed document",
		"content_units", result.ContentUnits,
		"structure_type", result.Structure.Type,
		"compression_ratio", result.Compression.CompressionRatio,
	)

	// Phase 3: Store
	job.SetStatus(StatusStoring, "storing")
	path, err := w.results.Save(job.DocID, result)
	if err != nil {
		log.Error("store failed", "error", err)
		job.AddError(fmt.Sprintf("store: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}

	job.SetResult(result, path)
	job.SetStatus(StatusCompleted, "done")
	log.Info("job completed", "result_path", path)
}
