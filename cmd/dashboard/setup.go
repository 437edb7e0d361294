package main

import (
	"fmt"
	"os"

	"github.com/Kimlong168/Data-Science-Exhibition-dashboard/config"
	"github.com/Kimlong168/Data-Science-Exhibition-dashboard/report"
	"github.com/Kimlong168/Data-Science-Exhibition-dashboard/source"
	"github.com/sirupsen/logrus"
)

type env struct {
	cfg    *config.Config
	logger *logrus.Logger
}

func setup(envFiles []string) (*env, error) {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, err
	}
	return &env{
		cfg:    cfg,
		logger: config.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr),
	}, nil
}

func (e *env) source() (source.Source, error) {
	opts := source.Options{Channels: e.cfg.Channels}
	switch e.cfg.Source {
	case config.SourceWorkbook:
		return source.NewWorkbook(e.cfg.ProductsPath, e.cfg.SalesPath, opts), nil
	case config.SourceCSV:
		return source.NewCSV(e.cfg.ProductsPath, e.cfg.SalesPath, opts), nil
	case config.SourcePostgres:
		db, err := config.OpenDatabase(e.cfg.Postgres)
		if err != nil {
			return nil, err
		}
		return source.NewDatabase(db, opts), nil
	}
	return nil, fmt.Errorf("unknown source %q", e.cfg.Source)
}

func (e *env) pipeline() (*report.Pipeline, error) {
	src, err := e.source()
	if err != nil {
		return nil, err
	}
	dates, err := report.ParseDatePolicy(e.cfg.DatePolicy)
	if err != nil {
		return nil, err
	}
	return report.NewPipeline(src, report.Options{
		Join: report.JoinPolicy{
			MaxUnmatchedRatio: e.cfg.MaxUnmatchedRatio,
			Strict:            e.cfg.StrictJoin,
		},
		Dates:     dates,
		CacheSize: e.cfg.CacheSize,
		Logger:    e.logger,
	})
}
