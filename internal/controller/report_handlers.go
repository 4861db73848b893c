package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Yasheenyash33/StacklyHub-main-main/internal/model"
	"github.com/Yasheenyash33/StacklyHub-main-main/internal/report"
	"github.com/Yasheenyash33/StacklyHub-main-main/internal/service"
)

var analyticsRoles = []model.UserRole{model.RoleAdmin}

func (c *Controller) handleUserAnalytics(w http.ResponseWriter, r *http.Request) {
	actor, err := c.authenticate(r)
	if err != nil {
		c.writeError(w, err)
		return
	}
	if err := requireRole(actor, analyticsRoles...); err != nil {
		c.writeError(w, err)
		return
	}

	counts, err := c.users.CountByRole(r.Context())
	if err != nil {
		c.writeError(w, err)
		return
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total_users": total,
		"by_role":     counts,
	})
}

func (c *Controller) handleSessionAnalytics(w http.ResponseWriter, r *http.Request) {
	actor, err := c.authenticate(r)
	if err != nil {
		c.writeError(w, err)
		return
	}
	if err := requireRole(actor, analyticsRoles...); err != nil {
		c.writeError(w, err)
		return
	}

	counts, err := c.sessions.CountByStatus(r.Context())
	if err != nil {
		c.writeError(w, err)
		return
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total_sessions": total,
		"by_status":      counts,
	})
}

// handleGenerateReport отдаёт сводный отчёт. Поддерживается только CSV.
func (c *Controller) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	actor, err := c.authenticate(r)
	if err != nil {
		c.writeError(w, err)
		return
	}
	if err := requireRole(actor, analyticsRoles...); err != nil {
		c.writeError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" {
		c.writeError(w, fmt.Errorf("%w: unsupported report format %q", service.ErrValidation, format))
		return
	}

	users, err := c.users.List(r.Context(), 0, 1000)
	if err != nil {
		c.writeError(w, err)
		return
	}
	sessions, err := c.sessions.List(r.Context(), 0, 1000)
	if err != nil {
		c.writeError(w, err)
		return
	}

	data, err := report.GenerateCSV(users, sessions, time.Now())
	if err != nil {
		c.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="training_report.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
