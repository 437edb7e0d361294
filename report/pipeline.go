package report

import (
	"context"
	"fmt"

	"github.com/Kimlong168/Data-Science-Exhibition-dashboard/source"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Dataset is the enriched sales table produced from one state of a source.
// It is shared between readers and must not be modified.
type Dataset struct {
	Fingerprint   string         `json:"fingerprint"`
	Source        string         `json:"source"`
	Products      int            `json:"products"`
	Sales         int            `json:"sales"`
	Unmatched     int            `json:"unmatched"`
	UnmatchedKeys []string       `json:"unmatchedKeys,omitempty"`
	Rejected      []*ParseError  `json:"-"`
	Rows          []EnrichedSale `json:"-"`
}

type Options struct {
	Join      JoinPolicy
	Dates     DatePolicy
	CacheSize int
	Logger    logrus.FieldLogger
}

// Pipeline loads, joins and derives a source, caching the enriched dataset
// under the source fingerprint.
type Pipeline struct {
	src    source.Source
	opts   Options
	cache  *lru.Cache[string, *Dataset]
	flight singleflight.Group
	logger logrus.FieldLogger
}

func NewPipeline(src source.Source, opts Options) (*Pipeline, error) {
	if opts.CacheSize <= 0 {
		opts.CacheSize = 1
	}
	cache, err := lru.New[string, *Dataset](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create dataset cache: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Pipeline{
		src:    src,
		opts:   opts,
		cache:  cache,
		logger: logger.WithField("source", src.Name()),
	}, nil
}

// Dataset returns the enriched dataset for the current state of the source,
// building it only when the fingerprint is not cached.
func (p *Pipeline) Dataset(ctx context.Context) (*Dataset, error) {
	fp, err := p.src.Fingerprint(ctx)
	if err != nil {
		return nil, err
	}
	if ds, ok := p.cache.Get(fp); ok {
		return ds, nil
	}

	// The load is shared by every caller waiting on fp, so one caller's
	// cancellation must not fail the others.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := p.flight.Do(fp, func() (any, error) {
		if ds, ok := p.cache.Get(fp); ok {
			return ds, nil
		}
		ds, err := Run(loadCtx, p.src, p.opts.Join, p.opts.Dates)
		if err != nil {
			p.logger.WithError(err).Error("build dataset")
			return nil, err
		}
		ds.Fingerprint = fp
		p.cache.Add(fp, ds)
		p.log(ds)
		return ds, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Dataset), nil
}

// Report builds the dashboard report over the current dataset.
func (p *Pipeline) Report(ctx context.Context) (*Report, error) {
	ds, err := p.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return Build(ds.Rows)
}

// Invalidate drops every cached dataset.
func (p *Pipeline) Invalidate() {
	p.cache.Purge()
}

func (p *Pipeline) log(ds *Dataset) {
	entry := p.logger.WithFields(logrus.Fields{
		"fingerprint": ds.Fingerprint,
		"products":    ds.Products,
		"sales":       ds.Sales,
		"rows":        len(ds.Rows),
	})
	if ds.Unmatched > 0 {
		entry.WithFields(logrus.Fields{
			"unmatched":      ds.Unmatched,
			"unmatched_keys": ds.UnmatchedKeys,
		}).Warn("sales without a matching product were dropped")
	}
	for _, rej := range ds.Rejected {
		entry.WithError(rej).Warn("sale dropped")
	}
	entry.Info("dataset built")
}

// Run executes load → join → derive once, without caching.
func Run(ctx context.Context, src source.Source, join JoinPolicy, dates DatePolicy) (*Dataset, error) {
	tables, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	joined, err := Join(tables.Products, tables.Sales, join)
	if err != nil {
		return nil, err
	}
	derived, err := Derive(joined.Rows, dates)
	if err != nil {
		return nil, err
	}
	return &Dataset{
		Source:        src.Name(),
		Products:      len(tables.Products),
		Sales:         len(tables.Sales),
		Unmatched:     joined.Unmatched,
		UnmatchedKeys: joined.UnmatchedKeys,
		Rejected:      derived.Rejected,
		Rows:          derived.Rows,
	}, nil
}
