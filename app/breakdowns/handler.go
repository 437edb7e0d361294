package breakdowns

import (
	"context"
	"net/http"

	"github.com/Kimlong168/Data-Science-Exhibition-dashboard/app/respond"
	"github.com/Kimlong168/Data-Science-Exhibition-dashboard/config"
	"github.com/Kimlong168/Data-Science-Exhibition-dashboard/report"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type BreakdownResponse struct {
	Dimension report.Dimension  `json:"dimension"`
	Metric    report.Metric     `json:"metric"`
	Op        report.Op         `json:"op"`
	Total     decimal.Decimal   `json:"total"`
	Groups    []report.Group    `json:"groups"`
	Bar       []report.BarPoint `json:"bar"`
	Pie       []report.PieSlice `json:"pie"`
}

type RowsProvider interface {
	Dataset(ctx context.Context) (*report.Dataset, error)
}

type BreakdownHandler struct {
	provider RowsProvider
	logger   logrus.FieldLogger
}

func NewBreakdownHandler(p RowsProvider, logger logrus.FieldLogger) *BreakdownHandler {
	return &BreakdownHandler{provider: p, logger: logger}
}

func (h *BreakdownHandler) rows(w http.ResponseWriter, r *http.Request, funcName string) ([]report.EnrichedSale, bool) {
	ds, err := h.provider.Dataset(r.Context())
	if err != nil {
		config.LogError(h.logger, "breakdowns", funcName, "load dataset", nil, err)
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return ds.Rows, true
}

// HandleGet serves GET /breakdown/{dimension}?metric=&op=&sort=.
// Defaults to the revenue sum; sort is one of appearance (default), key or value.
func (h *BreakdownHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	dim, err := report.ParseDimension(r.PathValue("dimension"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	metric := report.MetricSalesAmount
	if m := r.URL.Query().Get("metric"); m != "" {
		if metric, err = report.ParseMetric(m); err != nil {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	op := report.OpSum
	if o := r.URL.Query().Get("op"); o != "" {
		if op, err = report.ParseOp(o); err != nil {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	order := r.URL.Query().Get("sort")
	if order != "" && order != "appearance" && order != "key" && order != "value" {
		respond.Error(w, http.StatusBadRequest, "sort must be appearance, key or value")
		return
	}

	rows, ok := h.rows(w, r, "HandleGet")
	if !ok {
		return
	}

	g, err := report.GroupBy(rows, dim, metric, op)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	switch order {
	case "key":
		g = g.SortedByKey()
	case "value":
		g = g.SortedByValue()
	}

	respond.JSON(w, http.StatusOK, BreakdownResponse{
		Dimension: g.Dimension,
		Metric:    g.Metric,
		Op:        g.Op,
		Total:     g.Total(),
		Groups:    g.Groups,
		Bar:       g.Bar(),
		Pie:       g.Pie(),
	})
}

func (h *BreakdownHandler) HandleSalespeople(w http.ResponseWriter, r *http.Request) {
	rows, ok := h.rows(w, r, "HandleSalespeople")
	if !ok {
		return
	}
	respond.JSON(w, http.StatusOK, report.SalespersonTable(rows))
}

// HandleTopSalesperson serves GET /salespeople/top?by=revenue|orders|average.
func (h *BreakdownHandler) HandleTopSalesperson(w http.ResponseWriter, r *http.Request) {
	by, err := report.ParseRankBy(r.URL.Query().Get("by"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, ok := h.rows(w, r, "HandleTopSalesperson")
	if !ok {
		return
	}

	top, found := report.TopSalesperson(report.SalespersonTable(rows), by)
	if !found {
		respond.Error(w, http.StatusNotFound, "No sales")
		return
	}
	respond.JSON(w, http.StatusOK, top)
}
