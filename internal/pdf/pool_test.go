package pdf

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonathan/cv-generator/internal/rendering/modern"
	"github.com/jonathan/cv-generator/internal/style"
	"github.com/jonathan/cv-generator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePool replaces the browser with counters so pool bookkeeping can be
// tested without Chrome
func fakePool(t *testing.T, opts Options, print func(b *browser, html string, timeout time.Duration) ([]byte, error)) (*Pool, *atomic.Int32, *atomic.Int32) {
	t.Helper()
	var launched, closed atomic.Int32
	p := NewPool(opts)
	p.launch = func() (*browser, error) {
		launched.Add(1)
		return &browser{ctx: context.Background(), cancel: func() { closed.Add(1) }}, nil
	}
	p.print = print
	t.Cleanup(func() { _ = p.Close() })
	return p, &launched, &closed
}

func okPrint(_ *browser, _ string, _ time.Duration) ([]byte, error) {
	return []byte("%PDF-1.7 fake"), nil
}

func TestRenderError(t *testing.T) {
	cause := errors.New("boom")
	err := &RenderError{Stage: StagePrint, Cause: cause}
	assert.Equal(t, "pdf render error: print: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "pdf render error: verify", (&RenderError{Stage: StageVerify}).Error())
}

func TestNewPool_Defaults(t *testing.T) {
	p := NewPool(Options{})
	defer p.Close()
	assert.Equal(t, defaultPoolSize, p.Size())
	assert.Equal(t, defaultTimeout, p.opts.Timeout)
	assert.Equal(t, "disabled", p.BreakerState())
	assert.Equal(t, 0, p.InUse())
}

func TestPool_LaunchesLazilyAndReusesBrowser(t *testing.T) {
	p, launched, closed := fakePool(t, Options{PoolSize: 1}, okPrint)
	assert.Equal(t, int32(0), launched.Load())

	for i := 0; i < 3; i++ {
		out, err := p.Render(context.Background(), "<html></html>")
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.7 fake", string(out))
	}
	assert.Equal(t, int32(1), launched.Load())
	assert.Equal(t, int32(0), closed.Load())

	require.NoError(t, p.Close())
	assert.Equal(t, int32(1), closed.Load())
}

func TestPool_DiscardsBrowserAfterPrintFailure(t *testing.T) {
	fail := true
	p, launched, closed := fakePool(t, Options{PoolSize: 1}, func(b *browser, html string, timeout time.Duration) ([]byte, error) {
		if fail {
			return nil, errors.New("target crashed")
		}
		return okPrint(b, html, timeout)
	})

	_, err := p.Render(context.Background(), "<html></html>")
	var rerr *RenderError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, StagePrint, rerr.Stage)
	assert.Equal(t, int32(1), closed.Load())

	fail = false
	_, err = p.Render(context.Background(), "<html></html>")
	require.NoError(t, err)
	assert.Equal(t, int32(2), launched.Load(), "a fresh browser replaces the broken one")
}

func TestPool_RejectsNonPDFOutput(t *testing.T) {
	p, _, _ := fakePool(t, Options{PoolSize: 1}, func(*browser, string, time.Duration) ([]byte, error) {
		return []byte("<html>oops</html>"), nil
	})

	_, err := p.Render(context.Background(), "<html></html>")
	var rerr *RenderError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, StageVerify, rerr.Stage)
	assert.Equal(t, 0, p.InUse())
}

func TestPool_LaunchFailure(t *testing.T) {
	p := NewPool(Options{PoolSize: 1})
	defer p.Close()
	p.launch = func() (*browser, error) { return nil, errors.New("no chrome") }

	_, err := p.Render(context.Background(), "<html></html>")
	var rerr *RenderError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, StageLaunch, rerr.Stage)
	assert.Equal(t, 0, p.InUse())
}

func TestPool_AcquireHonoursContext(t *testing.T) {
	p, _, _ := fakePool(t, Options{PoolSize: 1}, okPrint)
	held := <-p.slots
	defer func() { p.slots <- held }()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := p.Render(ctx, "<html></html>")

	var rerr *RenderError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, StageAcquire, rerr.Stage)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPool_BoundsConcurrency(t *testing.T) {
	var (
		mu      sync.Mutex
		current int
		peak    int
	)
	var observed []int
	p, _, _ := fakePool(t, Options{PoolSize: 2, InUse: func(n int) {
		mu.Lock()
		observed = append(observed, n)
		mu.Unlock()
	}}, func(b *browser, html string, timeout time.Duration) ([]byte, error) {
		mu.Lock()
		current++
		if current > peak {
			peak = current
		}
		mu.Unlock()
		time.Sleep(5 * time.Millisecond)
		mu.Lock()
		current--
		mu.Unlock()
		return okPrint(b, html, timeout)
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.Render(context.Background(), "<html></html>")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, peak, 2)
	assert.Equal(t, 0, p.InUse())
	mu.Lock()
	defer mu.Unlock()
	for _, n := range observed {
		assert.LessOrEqual(t, n, 2)
	}
}

func TestPool_RenderAfterClose(t *testing.T) {
	p, _, _ := fakePool(t, Options{PoolSize: 1}, okPrint)
	require.NoError(t, p.Close())
	require.NoError(t, p.Close(), "close is idempotent")

	_, err := p.Render(context.Background(), "<html></html>")
	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestPool_BreakerOpensAfterFailures(t *testing.T) {
	p, _, _ := fakePool(t, Options{
		PoolSize: 1,
		Breaker: BreakerSettings{
			Enabled:          true,
			MaxRequests:      1,
			Interval:         time.Minute,
			Timeout:          time.Minute,
			MinRequests:      2,
			FailureThreshold: 0.5,
		},
	}, func(*browser, string, time.Duration) ([]byte, error) {
		return nil, errors.New("target crashed")
	})

	for i := 0; i < 2; i++ {
		_, err := p.Render(context.Background(), "<html></html>")
		var rerr *RenderError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, StagePrint, rerr.Stage)
	}
	assert.Equal(t, "open", p.BreakerState())

	_, err := p.Render(context.Background(), "<html></html>")
	var rerr *RenderError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, StageBreaker, rerr.Stage)
}

func TestPool_RendersRealPDF(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	chrome := FindChrome()
	if chrome == "" {
		t.Skip("no Chrome or Chromium binary found")
	}

	r, err := modern.New()
	require.NoError(t, err)
	cfg, err := style.Resolve(types.TemplateModern, nil)
	require.NoError(t, err)
	html, err := r.RenderHTML(types.SampleCV(), cfg)
	require.NoError(t, err)

	p := NewPool(Options{PoolSize: 1, ChromePath: chrome, Timeout: time.Minute})
	defer p.Close()

	out, err := p.Render(context.Background(), html)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
	assert.Greater(t, len(out), 1000)
}
