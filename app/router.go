// Package app wires the HTTP handlers onto a mux.
package app

import (
	"net/http"

	"github.com/Kimlong168/Data-Science-Exhibition-dashboard/app/breakdowns"
	"github.com/Kimlong168/Data-Science-Exhibition-dashboard/app/dashboard"
	"github.com/sirupsen/logrus"
)

func NewRouter(p dashboard.DatasetProvider, logger logrus.FieldLogger) *http.ServeMux {
	dash := dashboard.NewDashboardHandler(p, logger)
	bd := breakdowns.NewBreakdownHandler(p, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /summary", dash.HandleSummary)
	mux.HandleFunc("GET /sales", dash.HandleSales)
	mux.HandleFunc("GET /report", dash.HandleReport)
	mux.HandleFunc("GET /export.xlsx", dash.HandleExport)
	mux.HandleFunc("POST /refresh", dash.HandleRefresh)
	mux.HandleFunc("GET /breakdown/{dimension}", bd.HandleGet)
	mux.HandleFunc("GET /salespeople", bd.HandleSalespeople)
	mux.HandleFunc("GET /salespeople/top", bd.HandleTopSalesperson)
	return mux
}
