package pipeline

import (
	"context"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-generator/internal/types"
)

// Summary tallies a batch. SuccessRate is a percentage rounded to one
// decimal place.
type Summary struct {
	Total       int     `json:"total"`
	Successful  int     `json:"successful"`
	Failed      int     `json:"failed"`
	SuccessRate float64 `json:"successRate"`
}

func summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Success {
			s.Successful++
		} else {
			s.Failed++
		}
	}
	if s.Total > 0 {
		s.SuccessRate = math.Round(float64(s.Successful)/float64(s.Total)*1000) / 10
	}
	return s
}

// FormatResults holds one template's cells keyed by format
type FormatResults map[types.Format]Result

// FormatsBatch is the outcome of GenerateAllFormats
type FormatsBatch struct {
	Template types.TemplateID `json:"template"`
	Results  FormatResults    `json:"results"`
	Summary  Summary          `json:"summary"`
}

// Cells lists the results in batch format order
func (b *FormatsBatch) Cells() []Result {
	return b.Results.cells()
}

func (r FormatResults) cells() []Result {
	var out []Result
	for _, f := range types.AllFormats() {
		if res, ok := r[f]; ok {
			out = append(out, res)
		}
	}
	return out
}

// MatrixBatch is the outcome of GenerateAllTemplatesAllFormats
type MatrixBatch struct {
	Results map[types.TemplateID]FormatResults `json:"results"`
	Summary Summary                            `json:"summary"`
}

// Cells flattens the matrix in catalog order, formats in batch order
func (m *MatrixBatch) Cells() []Result {
	var out []Result
	for _, t := range types.AllTemplates() {
		out = append(out, m.Results[t].cells()...)
	}
	return out
}

// ProgressEvent is emitted once per finished batch cell
type ProgressEvent struct {
	Done   int    `json:"done"`
	Total  int    `json:"total"`
	Result Result `json:"result"`
}

// ProgressCallback receives batch progress. Calls are serialized, and Done
// increases by one with every call.
type ProgressCallback func(event ProgressEvent)

type cell struct {
	template types.TemplateID
	format   types.Format
}

// GenerateAllFormats attempts every format for one template. Data is
// validated once up front; a validation failure is returned as the error
// and nothing is rendered. Past that point every cell is attempted and its
// failure recorded in the batch.
func (g *Generator) GenerateAllFormats(ctx context.Context, data *types.CompleteCVData, template types.TemplateID, onProgress ProgressCallback) (*FormatsBatch, error) {
	if err := g.precheckBatch(data); err != nil {
		return nil, err
	}
	cells := make([]cell, 0, len(types.AllFormats()))
	for _, f := range types.AllFormats() {
		cells = append(cells, cell{template: template, format: f})
	}

	results := g.run(ctx, data, cells, onProgress)
	batch := &FormatsBatch{Template: template, Results: make(FormatResults, len(results)), Summary: summarize(results)}
	for _, r := range results {
		batch.Results[r.Format] = r
	}
	return batch, nil
}

// GenerateAllTemplatesAllFormats attempts the full template by format
// product, with the same validation and continue-on-error policy as
// GenerateAllFormats
func (g *Generator) GenerateAllTemplatesAllFormats(ctx context.Context, data *types.CompleteCVData, onProgress ProgressCallback) (*MatrixBatch, error) {
	if err := g.precheckBatch(data); err != nil {
		return nil, err
	}
	ids := g.catalog.IDs()
	cells := make([]cell, 0, len(ids)*len(types.AllFormats()))
	for _, t := range ids {
		for _, f := range types.AllFormats() {
			cells = append(cells, cell{template: t, format: f})
		}
	}

	results := g.run(ctx, data, cells, onProgress)
	batch := &MatrixBatch{Results: make(map[types.TemplateID]FormatResults, len(ids)), Summary: summarize(results)}
	for _, r := range results {
		row, ok := batch.Results[r.Template]
		if !ok {
			row = make(FormatResults, len(types.AllFormats()))
			batch.Results[r.Template] = row
		}
		row[r.Format] = r
	}
	return batch, nil
}

func (g *Generator) precheckBatch(data *types.CompleteCVData) error {
	if err := data.Validate(); err != nil {
		return &StageError{Stage: StageValidated, Cause: err}
	}
	return nil
}

// run generates cells with bounded concurrency. Results keep the order of
// cells regardless of completion order.
func (g *Generator) run(ctx context.Context, data *types.CompleteCVData, cells []cell, onProgress ProgressCallback) []Result {
	ctx = ensureRequestInfo(ctx)
	results := make([]Result, len(cells))

	var (
		mu   sync.Mutex
		done int
	)
	var eg errgroup.Group
	eg.SetLimit(g.opts.Concurrency)
	for i, c := range cells {
		eg.Go(func() error {
			// Cell failures are captured in the result, never returned
			res, _ := g.generate(ctx, data, c.template, c.format)
			results[i] = res

			mu.Lock()
			defer mu.Unlock()
			done++
			if onProgress != nil {
				onProgress(ProgressEvent{Done: done, Total: len(cells), Result: res})
			}
			return nil
		})
	}
	_ = eg.Wait()
	return results
}
