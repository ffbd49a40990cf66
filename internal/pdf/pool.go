// Package pdf prints HTML to A4 PDF in headless Chrome.
//
// A Pool keeps a fixed number of browser processes, launched on first use.
// Every render opens a fresh tab in an idle browser, so no page state is
// shared between requests.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/jonathan/cv-generator/internal/logging"
)

// ErrPoolClosed is returned by Render after Close
var ErrPoolClosed = errors.New("pdf pool closed")

// Render stages reported in RenderError
const (
	StageAcquire = "acquire"
	StageLaunch  = "launch"
	StagePrint   = "print"
	StageVerify  = "verify"
	StageBreaker = "breaker"
)

const (
	defaultPoolSize = 2
	defaultTimeout  = 30 * time.Second
)

// RenderError reports the stage at which a PDF render failed
type RenderError struct {
	Stage string
	Cause error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pdf render error: %s: %v", e.Stage, e.Cause)
	}
	return fmt.Sprintf("pdf render error: %s", e.Stage)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// BreakerSettings configures the circuit breaker in front of the browsers
type BreakerSettings struct {
	Enabled          bool
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	MinRequests      uint32
	FailureThreshold float64
}

// Options configures a Pool
type Options struct {
	PoolSize   int
	Timeout    time.Duration
	ChromePath string
	Breaker    BreakerSettings
	Logger     *zap.Logger
	// InUse, when set, is called with the number of busy browsers after
	// every acquire and release.
	InUse func(n int)
}

// browser is one Chrome process. A nil *browser in the slot channel is a
// slot that has not been launched yet.
type browser struct {
	ctx    context.Context
	cancel func()
}

func (b *browser) close() {
	if b != nil && b.cancel != nil {
		b.cancel()
	}
}

// Pool renders HTML to PDF using a bounded set of browsers. It is safe for
// concurrent use.
type Pool struct {
	opts    Options
	logger  *zap.Logger
	slots   chan *browser
	done    chan struct{}
	once    sync.Once
	inUse   atomic.Int32
	breaker *gobreaker.CircuitBreaker[[]byte]

	launch func() (*browser, error)
	print  func(b *browser, html string, timeout time.Duration) ([]byte, error)
}

// NewPool creates a pool. No browser is started until the first Render.
func NewPool(opts Options) *Pool {
	if opts.PoolSize <= 0 {
		opts.PoolSize = defaultPoolSize
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.ChromePath == "" {
		opts.ChromePath = os.Getenv("CHROME_PATH")
	}
	logger := logging.OrNop(opts.Logger)

	p := &Pool{
		opts:   opts,
		logger: logger,
		slots:  make(chan *browser, opts.PoolSize),
		done:   make(chan struct{}),
	}
	for i := 0; i < opts.PoolSize; i++ {
		p.slots <- nil
	}
	p.launch = p.launchBrowser
	p.print = printPage
	p.breaker = newBreaker(opts.Breaker, logger)
	return p
}

func newBreaker(s BreakerSettings, logger *zap.Logger) *gobreaker.CircuitBreaker[[]byte] {
	if !s.Enabled {
		return nil
	}
	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "pdf-render",
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests == 0 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= s.MinRequests && failureRatio >= s.FailureThreshold
		},
		// Callers giving up while waiting for a slot say nothing about browser health
		IsSuccessful: func(err error) bool {
			var rerr *RenderError
			return err == nil || (errors.As(err, &rerr) && rerr.Stage == StageAcquire)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
}

// Render prints html to an A4 PDF. It blocks until a browser is free or ctx
// is done.
func (p *Pool) Render(ctx context.Context, html string) ([]byte, error) {
	if p.breaker == nil {
		return p.render(ctx, html)
	}
	out, err := p.breaker.Execute(func() ([]byte, error) {
		return p.render(ctx, html)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, &RenderError{Stage: StageBreaker, Cause: err}
	}
	return out, err
}

func (p *Pool) render(ctx context.Context, html string) ([]byte, error) {
	b, err := p.acquire(ctx)
	if err != nil {
		return nil, &RenderError{Stage: StageAcquire, Cause: err}
	}

	if b == nil {
		start := time.Now()
		b, err = p.launch()
		if err != nil {
			p.release(nil)
			return nil, &RenderError{Stage: StageLaunch, Cause: err}
		}
		p.logger.Debug("browser launched", zap.Duration("duration", time.Since(start)))
	}

	out, err := p.print(b, html, p.opts.Timeout)
	if err != nil {
		// The tab or the process may be wedged; start over on next use
		b.close()
		p.release(nil)
		return nil, &RenderError{Stage: StagePrint, Cause: err}
	}
	p.release(b)

	if !bytes.HasPrefix(out, []byte("%PDF")) {
		return nil, &RenderError{Stage: StageVerify, Cause: fmt.Errorf("output is not a PDF document (%d bytes)", len(out))}
	}
	return out, nil
}

func (p *Pool) acquire(ctx context.Context) (*browser, error) {
	select {
	case <-p.done:
		return nil, ErrPoolClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	case b := <-p.slots:
		select {
		case <-p.done:
			p.slots <- b
			return nil, ErrPoolClosed
		default:
		}
		p.reportInUse(p.inUse.Add(1))
		return b, nil
	}
}

func (p *Pool) release(b *browser) {
	p.reportInUse(p.inUse.Add(-1))
	p.slots <- b
}

func (p *Pool) reportInUse(n int32) {
	if p.opts.InUse != nil {
		p.opts.InUse(int(n))
	}
}

// InUse returns the number of browsers currently rendering
func (p *Pool) InUse() int {
	return int(p.inUse.Load())
}

// Size returns the configured number of browser slots
func (p *Pool) Size() int {
	return p.opts.PoolSize
}

// BreakerState returns the breaker state, or "disabled"
func (p *Pool) BreakerState() string {
	if p.breaker == nil {
		return "disabled"
	}
	return p.breaker.State().String()
}

// Close waits for in-flight renders and shuts every browser down. Further
// renders fail with ErrPoolClosed.
func (p *Pool) Close() error {
	p.once.Do(func() {
		close(p.done)
		for i := 0; i < p.opts.PoolSize; i++ {
			b := <-p.slots
			b.close()
		}
		p.logger.Debug("pdf pool closed")
	})
	return nil
}

func (p *Pool) launchBrowser() (*browser, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if p.opts.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(p.opts.ChromePath))
	}

	// The browser outlives any single request
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Running with no actions starts the process
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	return &browser{
		ctx: browserCtx,
		cancel: func() {
			browserCancel()
			allocCancel()
		},
	}, nil
}

// FindChrome returns the first Chrome or Chromium binary found on PATH, or
// CHROME_PATH when set
func FindChrome() string {
	if p := os.Getenv("CHROME_PATH"); p != "" {
		return p
	}
	for _, name := range []string{"chromium", "chromium-browser", "google-chrome", "google-chrome-stable", "headless-shell"} {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	return ""
}
