package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/dgallion1/docmark/internal/doctree"
	"github.com/dgallion1/docmark/internal/parser"
)

// Renderer writes a parsed tree as HTML.
type Renderer interface {
	Render(w io.Writer, tree *doctree.Tree) error
}

// Worker processes a single render job.
type Worker struct {
	parser   parser.Parser
	renderer Renderer
	stats    *RenderStats
	log      *slog.Logger
}

func NewWorker(p parser.Parser, r Renderer, stats *RenderStats, log *slog.Logger) *Worker {
	return &Worker{
		parser:   p,
		renderer: r,
		stats:    stats,
		log:      log,
	}
}

// Process parses and renders the job's document.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)
	start := time.Now()

	fail := func(phase string, err error) {
		log.Error(phase+" failed", "error", err)
		job.AddError(fmt.Sprintf("%s: %s", phase, err))
		job.SetStatus(StatusFailed, phase)
		w.record(start, true)
	}

	if err := ctx.Err(); err != nil {
		fail("queued", err)
		return
	}

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	if !parser.IsSupportedExtension(job.Filename) {
		fail("parsing", fmt.Errorf("unsupported file type: %s", job.Filename))
		return
	}
	tree, err := w.parser.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		fail("parsing", err)
		return
	}
	if title := job.Snapshot().Title; title != "" {
		tree.Title = title
	} else {
		job.SetTitle(tree.Title)
	}
	job.SetNodes(tree.Len())
	log.Info("parsed document", "nodes", tree.Len())

	if err := ctx.Err(); err != nil {
		fail("parsing", err)
		return
	}

	// Phase 2: Render
	job.SetStatus(StatusRendering, "rendering")
	var sb strings.Builder
	if err := w.renderer.Render(&sb, tree); err != nil {
		fail("rendering", err)
		return
	}

	job.Complete(sb.String())
	w.record(start, false)
	log.Info("render complete", "html_bytes", sb.Len(), "duration_ms", time.Since(start).Milliseconds())
}

func (w *Worker) record(start time.Time, failed bool) {
	if w.stats != nil {
		w.stats.Record(time.Since(start), failed)
	}
}
