package controller

import (
	"github.com/gofiber/fiber/v2"

	"csr_backend/internals/features/csr/proposals/service"
	helper "csr_backend/internals/helpers"
)

type StatsController struct {
	Stats  *service.StatsService
	Reports *service.ReportService
}

func NewStatsController(stats *service.StatsService, report *service.ReportService) *StatsController {
	return &StatsController{Stats: stats, Reports: report}
}

func periodFromQuery(c *fiber.Ctx) (service.PeriodFilter, error) {
	return service.ResolvePeriod(c.Query("month"), c.Query("year"))
}

// GET /api/proposals/stats/summary?month=&year=
func (ctrl *StatsController) Summary(c *fiber.Ctx) error {
	f, err := periodFromQuery(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	s, err := ctrl.Stats.Summary(c.UserContext(), f)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Ringkasan proposal "+f.Label(), s)
}

// GET /api/proposals/stats/monthly?month=&year=
func (ctrl *StatsController) Monthly(c *fiber.Ctx) error {
	f, err := periodFromQuery(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rows, err := ctrl.Stats.Monthly(c.UserContext(), f)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Statistik bulanan "+f.Label(), rows)
}

// GET /api/proposals/stats/dashboard?month=&year=
func (ctrl *StatsController) Dashboard(c *fiber.Ctx) error {
	f, err := periodFromQuery(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	d, err := ctrl.Stats.Dashboard(c.UserContext(), f)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Dashboard proposal", d)
}

// GET /api/proposals/report?month=&year= -> HTML siap print
func (ctrl *StatsController) Report(c *fiber.Ctx) error {
	f, err := periodFromQuery(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	out, err := ctrl.Reports.Render(c.UserContext(), f)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(out)
}
