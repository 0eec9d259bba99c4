package http

import (
	"context"
	"html/template"
	"net/http"

	"golang.org/x/sync/errgroup"

	"expenseboard/internal/core"
	applog "expenseboard/internal/log"
)

type dashboardView struct {
	Total         string
	MonthlyTotals template.HTML
	ByUser        template.HTML
	ByCategory    template.HTML
	MonthlyByUser template.HTML
}

type dashboardErrorView struct {
	Error string
}

// handleDashboard fetches both stats feeds concurrently and renders the
// four panels. Either fetch failing fails the whole dashboard; the error
// partial carries a retry control.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	logger := applog.FromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), backendCallTimeout)
	defer cancel()

	var (
		overall core.OverallStats
		monthly []core.MonthBreakdown
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		overall, err = s.backend.Overall(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		monthly, err = s.backend.Monthly(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		logger.ErrorContext(ctx, "Dashboard stats fetch failed", applog.FieldError, err)
		s.writeDashboardError(w, r, "Could not load statistics from the backend")
		return
	}

	wide, users := core.PivotByUser(monthly)

	view := dashboardView{
		Total: core.FormatAmount(s.currencySymbol, overall.TotalExpenses),
	}

	var err error
	if view.MonthlyTotals, err = s.renderer.MonthTotals(overall.ByMonth); err == nil {
		if view.ByUser, err = s.renderer.UserTotals(overall.ByUser); err == nil {
			if view.ByCategory, err = s.renderer.CategoryDistribution(overall.ByType); err == nil {
				view.MonthlyByUser, err = s.renderer.MonthlyByUser(wide, users)
			}
		}
	}
	if err != nil {
		logger.ErrorContext(ctx, "Chart rendering failed", applog.FieldError, err)
		s.writeDashboardError(w, r, "Could not render charts")
		return
	}

	body, err := s.renderTemplate("dashboard", view)
	if err != nil {
		logger.ErrorContext(ctx, "Dashboard render failed", applog.FieldError, err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(body)
}

func (s *Server) writeDashboardError(w http.ResponseWriter, r *http.Request, reason string) {
	body, err := s.renderTemplate("dashboard_error", dashboardErrorView{Error: reason})
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Dashboard error render failed", applog.FieldError, err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusBadGateway)
	_, _ = w.Write(body)
}
