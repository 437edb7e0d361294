package report

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/Kimlong168/Data-Science-Exhibition-dashboard/models"
	"github.com/Kimlong168/Data-Science-Exhibition-dashboard/source"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock Source ---

type MockSource struct {
	mu      sync.Mutex
	Tables  source.Tables
	Version string
	LoadErr error
	Loads   int
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) Fingerprint(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return "mock:" + m.Version, nil
}

func (m *MockSource) Load(ctx context.Context) (*source.Tables, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.Loads++
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	t := m.Tables
	return &t, nil
}

func (m *MockSource) setVersion(v string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Version = v
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestPipeline(t *testing.T, src source.Source) *Pipeline {
	t.Helper()
	p, err := NewPipeline(src, Options{Join: DefaultJoinPolicy, CacheSize: 4, Logger: quietLogger()})
	require.NoError(t, err)
	return p
}

// --- Tests ---

func TestPipelineCachesByFingerprint(t *testing.T) {
	src := &MockSource{Tables: source.Tables{Products: sampleProducts(), Sales: sampleSales()}, Version: "v1"}
	p := newTestPipeline(t, src)
	ctx := context.Background()

	first, err := p.Dataset(ctx)
	require.NoError(t, err)
	second, err := p.Dataset(ctx)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, src.Loads)
	assert.Equal(t, "mock:v1", first.Fingerprint)
	assert.Len(t, first.Rows, 3)

	src.setVersion("v2")
	third, err := p.Dataset(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, src.Loads)
	assert.Equal(t, "mock:v2", third.Fingerprint)
}

func TestPipelineInvalidate(t *testing.T) {
	src := &MockSource{Tables: source.Tables{Products: sampleProducts(), Sales: sampleSales()}, Version: "v1"}
	p := newTestPipeline(t, src)
	ctx := context.Background()

	_, err := p.Dataset(ctx)
	require.NoError(t, err)
	p.Invalidate()
	_, err = p.Dataset(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, src.Loads)
}

func TestPipelineLoadOutlivesCallerCancellation(t *testing.T) {
	src := &MockSource{Tables: source.Tables{Products: sampleProducts(), Sales: sampleSales()}, Version: "v1"}
	p := newTestPipeline(t, src)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ds, err := p.Dataset(ctx)
	require.NoError(t, err)
	assert.Len(t, ds.Rows, 3)

	_, err = p.Dataset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, src.Loads)
}

func TestPipelineDoesNotCacheErrors(t *testing.T) {
	loadErr := &source.LoadError{Source: "mock", Table: source.TableSales, Err: errors.New("disk on fire")}
	src := &MockSource{LoadErr: loadErr, Version: "v1"}
	p := newTestPipeline(t, src)

	_, err := p.Dataset(context.Background())
	var lerr *source.LoadError
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, source.TableSales, lerr.Table)

	_, err = p.Dataset(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 2, src.Loads)
}

func TestPipelineConcurrentReaders(t *testing.T) {
	src := &MockSource{Tables: source.Tables{Products: sampleProducts(), Sales: sampleSales()}, Version: "v1"}
	p := newTestPipeline(t, src)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ds, err := p.Dataset(context.Background())
			assert.NoError(t, err)
			assert.Len(t, ds.Rows, 3)
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, src.Loads, 16)
	assert.GreaterOrEqual(t, src.Loads, 1)
}

func TestRunIsIdempotent(t *testing.T) {
	sales := append(sampleSales(), models.Sale{OrderNumber: "C", ProductKey: "42", Quantity: 1, OrderDate: "2023-05-05"})
	src := source.NewStatic(source.Tables{Products: sampleProducts(), Sales: sales})
	ctx := context.Background()

	first, err := Run(ctx, src, DefaultJoinPolicy, DateAbort)
	require.NoError(t, err)
	second, err := Run(ctx, src, DefaultJoinPolicy, DateAbort)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, first.Unmatched)
	assert.Equal(t, []string{"42"}, first.UnmatchedKeys)

	r1, err := Build(first.Rows)
	require.NoError(t, err)
	r2, err := Build(second.Rows)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}

func TestPipelineReport(t *testing.T) {
	src := source.NewStatic(source.Tables{Products: sampleProducts(), Sales: sampleSales()})
	p := newTestPipeline(t, src)

	rep, err := p.Report(context.Background())

	require.NoError(t, err)
	assertDecimal(t, "17.5", rep.Summary.AverageOrderValue.Decimal)
}
