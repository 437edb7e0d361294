package dashboard

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Kimlong168/Data-Science-Exhibition-dashboard/app/respond"
	"github.com/Kimlong168/Data-Science-Exhibition-dashboard/config"
	"github.com/Kimlong168/Data-Science-Exhibition-dashboard/export"
	"github.com/Kimlong168/Data-Science-Exhibition-dashboard/report"
	"github.com/sirupsen/logrus"
)

type DatasetInfo struct {
	Fingerprint string `json:"fingerprint"`
	Source      string `json:"source"`
	Products    int    `json:"products"`
	Sales       int    `json:"sales"`
	Rows        int    `json:"rows"`
	Unmatched   int    `json:"unmatched"`
	Rejected    int    `json:"rejected"`
}

type SummaryResponse struct {
	Summary report.Summary `json:"summary"`
	Dataset DatasetInfo    `json:"dataset"`
}

type SalesResponse struct {
	Total int                   `json:"total"`
	Sales []report.EnrichedSale `json:"sales"`
}

type DatasetProvider interface {
	Dataset(ctx context.Context) (*report.Dataset, error)
	Invalidate()
}

type DashboardHandler struct {
	provider DatasetProvider
	logger   logrus.FieldLogger
}

func NewDashboardHandler(p DatasetProvider, logger logrus.FieldLogger) *DashboardHandler {
	return &DashboardHandler{
		provider: p,
		logger:   logger,
	}
}

func (h *DashboardHandler) dataset(w http.ResponseWriter, r *http.Request, funcName string) (*report.Dataset, bool) {
	ds, err := h.provider.Dataset(r.Context())
	if err != nil {
		config.LogError(h.logger, "dashboard", funcName, "load dataset", nil, err)
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return ds, true
}

func (h *DashboardHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.dataset(w, r, "HandleSummary")
	if !ok {
		return
	}
	respond.JSON(w, http.StatusOK, SummaryResponse{
		Summary: report.Summarize(ds.Rows),
		Dataset: DatasetInfo{
			Fingerprint: ds.Fingerprint,
			Source:      ds.Source,
			Products:    ds.Products,
			Sales:       ds.Sales,
			Rows:        len(ds.Rows),
			Unmatched:   ds.Unmatched,
			Rejected:    len(ds.Rejected),
		},
	})
}

// HandleSales pages through the enriched sales table.
func (h *DashboardHandler) HandleSales(w http.ResponseWriter, r *http.Request) {
	// Parse pagination query params
	offset := 0
	limit := 10

	if oStr := r.URL.Query().Get("offset"); oStr != "" {
		if o, err := strconv.Atoi(oStr); err == nil && o >= 0 {
			offset = o
		}
	}

	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil {
			if l < 1 {
				limit = 1
			} else if l > 100 {
				limit = 100
			} else {
				limit = l
			}
		}
	}

	ds, ok := h.dataset(w, r, "HandleSales")
	if !ok {
		return
	}

	start := min(offset, len(ds.Rows))
	end := min(start+limit, len(ds.Rows))
	respond.JSON(w, http.StatusOK, SalesResponse{
		Total: len(ds.Rows),
		Sales: ds.Rows[start:end],
	})
}

func (h *DashboardHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.dataset(w, r, "HandleReport")
	if !ok {
		return
	}
	rep, err := report.Build(ds.Rows)
	if err != nil {
		config.LogError(h.logger, "dashboard", "HandleReport", "build report", nil, err)
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, rep)
}

func (h *DashboardHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.dataset(w, r, "HandleExport")
	if !ok {
		return
	}
	rep, err := report.Build(ds.Rows)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	f, err := export.NewWorkbook(ds.Rows, rep)
	if err != nil {
		config.LogError(h.logger, "dashboard", "HandleExport", "build workbook", nil, err)
		respond.Error(w, http.StatusInternalServerError, "Failed to build workbook")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=sales-report.xlsx")
	if err := f.Write(w); err != nil {
		config.LogError(h.logger, "dashboard", "HandleExport", "write workbook", nil, err)
	}
}

// HandleRefresh drops cached datasets so the next request reloads the source.
func (h *DashboardHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	h.provider.Invalidate()
	respond.JSON(w, http.StatusOK, map[string]string{
		"message": "Cache invalidated",
	})
}
