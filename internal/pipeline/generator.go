// Package pipeline orchestrates CV generation: it resolves style, picks a
// renderer by template id and a backend by format, and reports one result
// per (template, format) cell.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/cv-generator/internal/cache"
	"github.com/jonathan/cv-generator/internal/db"
	"github.com/jonathan/cv-generator/internal/docmodel"
	"github.com/jonathan/cv-generator/internal/docx"
	"github.com/jonathan/cv-generator/internal/logging"
	"github.com/jonathan/cv-generator/internal/observability"
	"github.com/jonathan/cv-generator/internal/output"
	"github.com/jonathan/cv-generator/internal/pdf"
	"github.com/jonathan/cv-generator/internal/rendering"
	"github.com/jonathan/cv-generator/internal/rendering/catalog"
	"github.com/jonathan/cv-generator/internal/style"
	"github.com/jonathan/cv-generator/internal/types"
)

const defaultConcurrency = 3

// PDFRenderer prints a complete HTML document to PDF bytes
type PDFRenderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// ResultCache stores data URIs of successful cells
type ResultCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, uri string) error
}

// GenerationLogger persists one record per finished cell
type GenerationLogger interface {
	LogGeneration(ctx context.Context, rec *db.GenerationRecord) error
}

// Options configures a Generator. Only Catalog is needed for HTML and DOCX;
// every other collaborator is optional.
type Options struct {
	Catalog *catalog.Catalog // Loaded with catalog.New when nil
	PDF     PDFRenderer      // PDF cells fail with PDF_RENDER_ERROR when nil
	Cache   ResultCache
	Log     GenerationLogger
	Metrics *observability.Metrics
	Logger  *zap.Logger

	// Concurrency bounds how many cells of a batch run at once
	Concurrency int
	// PlaceholderOnDOCXError substitutes a placeholder document for a DOCX
	// cell that failed to serialize, and reports it as a success with a
	// warning. Render failures still fail the cell.
	PlaceholderOnDOCXError bool

	Now func() time.Time
}

// Generator runs generations. It holds no per-request state and is safe
// for concurrent use.
type Generator struct {
	opts      Options
	catalog   *catalog.Catalog
	logger    *zap.Logger
	now       func() time.Time
	serialize func(*docmodel.Document) ([]byte, error)
}

// New creates a Generator
func New(opts Options) (*Generator, error) {
	cat := opts.Catalog
	if cat == nil {
		var err error
		cat, err = catalog.New()
		if err != nil {
			return nil, fmt.Errorf("failed to load template catalog: %w", err)
		}
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	logger := logging.OrNop(opts.Logger)
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Generator{opts: opts, catalog: cat, logger: logger, now: now, serialize: docx.Serialize}, nil
}

// Catalog returns the renderer catalog in use
func (g *Generator) Catalog() *catalog.Catalog {
	return g.catalog
}

// Result is the outcome of one (template, format) cell
type Result struct {
	Template    types.TemplateID `json:"template"`
	Format      types.Format     `json:"format"`
	Success     bool             `json:"success"`
	FileURL     string           `json:"fileUrl,omitempty"`
	Error       string           `json:"error,omitempty"`
	ErrorCode   string           `json:"errorCode,omitempty"`
	FailedStage Stage            `json:"failedStage,omitempty"`
	Warning     string           `json:"warning,omitempty"`
	Cached      bool             `json:"cached,omitempty"`
	GeneratedAt *time.Time       `json:"generatedAt,omitempty"`
	Duration    time.Duration    `json:"-"`
}

type requestKey struct{}

// RequestInfo identifies the request a generation belongs to in the
// generation log
type RequestInfo struct {
	RequestID uuid.UUID
	ProfileID *uuid.UUID
}

// WithRequestInfo attaches request metadata to ctx
func WithRequestInfo(ctx context.Context, info RequestInfo) context.Context {
	return context.WithValue(ctx, requestKey{}, info)
}

func requestInfo(ctx context.Context) (RequestInfo, bool) {
	info, ok := ctx.Value(requestKey{}).(RequestInfo)
	return info, ok
}

// ensureRequestInfo gives every call a request id so batch cells share one
func ensureRequestInfo(ctx context.Context) context.Context {
	if _, ok := requestInfo(ctx); ok {
		return ctx
	}
	return WithRequestInfo(ctx, RequestInfo{RequestID: uuid.New()})
}

// GenerateOne produces a single cell. The returned error is the cause of the
// failure and is nil exactly when the result is successful.
func (g *Generator) GenerateOne(ctx context.Context, data *types.CompleteCVData, template types.TemplateID, format types.Format) (Result, error) {
	ctx = ensureRequestInfo(ctx)
	if err := g.precheck(data, format); err != nil {
		return g.finish(ctx, template, format, time.Now(), cellOutput{}, err), err
	}
	return g.generate(ctx, data, template, format)
}

// precheck is the StageValidated transition, run once per call
func (g *Generator) precheck(data *types.CompleteCVData, format types.Format) error {
	if err := data.Validate(); err != nil {
		return &StageError{Stage: StageValidated, Cause: err}
	}
	if _, err := output.MIMEType(format); err != nil {
		return &StageError{Stage: StageValidated, Cause: err}
	}
	return nil
}

// generate runs one cell on data that already passed precheck
func (g *Generator) generate(ctx context.Context, data *types.CompleteCVData, template types.TemplateID, format types.Format) (Result, error) {
	start := time.Now()
	tr := newTracker(g.logger, template, format)
	tr.reach(StageValidated)

	key := g.cacheLookupKey(template, format, data)
	if uri, ok := g.cached(ctx, key); ok {
		return g.finish(ctx, template, format, start, cellOutput{uri: uri, cached: true}, nil), nil
	}

	renderer, cfg, err := g.resolve(template, data)
	if err != nil {
		err = tr.fail(StageStyleResolved, err)
		return g.finish(ctx, template, format, start, cellOutput{}, err), err
	}
	tr.reach(StageStyleResolved)

	payload, warning, err := g.encode(ctx, tr, renderer, data, cfg, format)
	if err != nil {
		return g.finish(ctx, template, format, start, cellOutput{}, err), err
	}

	uri, err := output.Encode(format, payload)
	if err != nil {
		err = tr.fail(StageComplete, err)
		return g.finish(ctx, template, format, start, cellOutput{}, err), err
	}
	tr.reach(StageComplete)

	res := g.finish(ctx, template, format, start, cellOutput{uri: uri, size: len(payload), warning: warning}, nil)
	if warning == "" {
		g.store(ctx, key, uri)
	}
	return res, nil
}

func (g *Generator) resolve(template types.TemplateID, data *types.CompleteCVData) (rendering.Renderer, style.Config, error) {
	renderer, err := g.catalog.Get(template)
	if err != nil {
		return nil, style.Config{}, err
	}
	cfg, err := style.Resolve(template, data.Styling)
	if err != nil {
		return nil, style.Config{}, err
	}
	return renderer, cfg, nil
}

// encode runs the Rendered and Encoded transitions for format. A non-empty
// warning means a placeholder was substituted.
func (g *Generator) encode(ctx context.Context, tr *tracker, r rendering.Renderer, data *types.CompleteCVData, cfg style.Config, format types.Format) ([]byte, string, error) {
	switch format {
	case types.FormatHTML, types.FormatPDF:
		html, err := r.RenderHTML(data, cfg)
		if err != nil {
			return nil, "", tr.fail(StageRendered, rendering.WrapRender(r.ID(), rendering.OutputHTML, err))
		}
		tr.reach(StageRendered)

		if format == types.FormatHTML {
			tr.reach(StageEncoded)
			return []byte(html), "", nil
		}
		if g.opts.PDF == nil {
			return nil, "", tr.fail(StageEncoded, pdfUnavailable())
		}
		out, err := g.opts.PDF.Render(ctx, html)
		if err != nil {
			return nil, "", tr.fail(StageEncoded, err)
		}
		tr.reach(StageEncoded)
		return out, "", nil

	case types.FormatDOCX:
		doc, err := r.RenderDocument(data, cfg)
		if err != nil {
			return nil, "", tr.fail(StageRendered, rendering.WrapRender(r.ID(), rendering.OutputDocument, err))
		}
		tr.reach(StageRendered)

		out, err := g.serialize(doc)
		if err != nil {
			return g.docxFallback(tr, data, tr.fail(StageEncoded, err))
		}
		tr.reach(StageEncoded)
		return out, "", nil
	}
	return nil, "", tr.fail(StageRendered, &types.UnknownFormatError{ID: string(format)})
}

// docxFallback applies the DOCX failure policy to err. Only packaging
// failures are replaced by a placeholder.
func (g *Generator) docxFallback(tr *tracker, data *types.CompleteCVData, err error) ([]byte, string, error) {
	var serr *docx.SerializeError
	if !g.opts.PlaceholderOnDOCXError || !errors.As(err, &serr) {
		return nil, "", err
	}
	out, perr := docx.Serialize(docx.Placeholder(data.PersonalInfo.Name, message(err)))
	if perr != nil {
		return nil, "", err
	}
	tr.logger.Warn("substituted placeholder document", zap.Error(err))
	tr.reach(StageEncoded)
	return out, "placeholder document substituted: " + message(err), nil
}

func pdfUnavailable() error {
	return &pdf.RenderError{Stage: pdf.StageLaunch, Cause: errNoPDFRenderer}
}

func (g *Generator) cacheLookupKey(template types.TemplateID, format types.Format, data *types.CompleteCVData) string {
	if g.opts.Cache == nil {
		return ""
	}
	key, err := cache.Key(template, format, data)
	if err != nil {
		g.logger.Warn("failed to compute cache key", zap.Error(err))
		return ""
	}
	return key
}

// cached never fails a cell: lookup errors count as misses
func (g *Generator) cached(ctx context.Context, key string) (string, bool) {
	if key == "" {
		return "", false
	}
	uri, ok, err := g.opts.Cache.Get(ctx, key)
	if err != nil {
		g.logger.Warn("cache lookup failed", zap.Error(err))
	}
	if err != nil || !ok {
		g.opts.Metrics.CacheMiss()
		return "", false
	}
	g.opts.Metrics.CacheHit()
	return uri, true
}

func (g *Generator) store(ctx context.Context, key, uri string) {
	if key == "" {
		return
	}
	if err := g.opts.Cache.Set(ctx, key, uri); err != nil {
		g.logger.Warn("cache store failed", zap.Error(err))
	}
}

// cellOutput is what a successful cell produced
type cellOutput struct {
	uri     string
	size    int
	warning string
	cached  bool
}

// finish builds the result for a cell and records it in the log, metrics
// and generation store
func (g *Generator) finish(ctx context.Context, template types.TemplateID, format types.Format, start time.Time, out cellOutput, err error) Result {
	res := Result{
		Template: template,
		Format:   format,
		Duration: time.Since(start),
	}
	fields := []zap.Field{
		zap.String("template", string(template)),
		zap.String("format", string(format)),
		zap.Duration("duration", res.Duration),
	}

	var outcome string
	switch {
	case err != nil:
		outcome = observability.OutcomeFailure
		res.Error = message(err)
		res.ErrorCode = ErrorCode(err)
		res.FailedStage = FailedStage(err)
		g.logger.Warn("generation failed", append(fields,
			zap.String("stage", string(res.FailedStage)),
			zap.String("error_code", res.ErrorCode),
			zap.Error(err))...)
	case out.cached:
		outcome = observability.OutcomeCached
		g.logger.Info("generation served from cache", fields...)
	default:
		outcome = observability.OutcomeSuccess
		g.logger.Info("generation complete", append(fields, zap.Int("size_bytes", out.size))...)
	}
	if err == nil {
		at := g.now().UTC()
		res.Success = true
		res.FileURL = out.uri
		res.Warning = out.warning
		res.Cached = out.cached
		res.GeneratedAt = &at
	}

	g.opts.Metrics.ObserveGeneration(string(template), string(format), outcome, res.Duration)
	g.record(ctx, res, out.size)
	return res
}

func (g *Generator) record(ctx context.Context, res Result, size int) {
	if g.opts.Log == nil {
		return
	}
	info, _ := requestInfo(ctx)
	rec := &db.GenerationRecord{
		RequestID:  info.RequestID,
		ProfileID:  info.ProfileID,
		Template:   string(res.Template),
		Format:     string(res.Format),
		Success:    res.Success,
		ErrorCode:  res.ErrorCode,
		DurationMS: res.Duration.Milliseconds(),
		SizeBytes:  int64(size),
	}
	// Recorded even when the caller has gone away
	if err := g.opts.Log.LogGeneration(context.WithoutCancel(ctx), rec); err != nil {
		g.logger.Warn("failed to record generation", zap.Error(err))
	}
}

// TemplateInfo describes a catalog template and its default palette
type TemplateInfo struct {
	ID         types.TemplateID `json:"id"`
	Primary    string           `json:"primaryColor"`
	Accent     string           `json:"accentColor"`
	Highlight  string           `json:"highlightColor,omitempty"`
	FontFamily string           `json:"fontFamily"`
	FontSize   string           `json:"fontSize"`
	Layout     string           `json:"layout"`
}

// Templates lists the catalog in catalog order
func (g *Generator) Templates() []TemplateInfo {
	var out []TemplateInfo
	for _, id := range g.catalog.IDs() {
		cfg, err := style.Defaults(id)
		if err != nil {
			continue
		}
		out = append(out, TemplateInfo{
			ID:         id,
			Primary:    cfg.Primary.String(),
			Accent:     cfg.Accent.String(),
			Highlight:  cfg.Highlight.String(),
			FontFamily: cfg.FontFamily,
			FontSize:   cfg.FontSize,
			Layout:     cfg.Layout,
		})
	}
	return out
}
