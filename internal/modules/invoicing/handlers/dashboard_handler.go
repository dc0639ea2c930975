package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/analytics"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing/services"
)

const streamKeepAlive = 15 * time.Second

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetSnapshot godoc
// @Summary Dashboard metrics
// @Description Recomputes the dashboard summary from the stored invoices
// @Tags Dashboard
// @Produce json
// @Success 200 {object} analytics.Snapshot
// @Router /dashboard [get]
func (h *DashboardHandler) GetSnapshot(c *fiber.Ctx) error {
	snap, err := h.dashboardService.Snapshot(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(snap)
}

// GetCards godoc
// @Summary Dashboard stat cards
// @Tags Dashboard
// @Produce json
// @Success 200 {array} analytics.StatCard
// @Router /dashboard/cards [get]
func (h *DashboardHandler) GetCards(c *fiber.Ctx) error {
	cards, err := h.dashboardService.Cards(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cards)
}

// GetRevenue godoc
// @Summary Monthly paid revenue
// @Tags Dashboard
// @Produce json
// @Param months query int false "Number of months, 1-36" default(12)
// @Success 200 {object} analytics.ChartData
// @Router /dashboard/revenue [get]
func (h *DashboardHandler) GetRevenue(c *fiber.Ctx) error {
	chart, err := h.dashboardService.Revenue(c.UserContext(), c.QueryInt("months", 12))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(chart)
}

// GetStatusBreakdown godoc
// @Summary Paid vs outstanding amounts
// @Tags Dashboard
// @Produce json
// @Success 200 {object} analytics.PieChartData
// @Router /dashboard/status [get]
func (h *DashboardHandler) GetStatusBreakdown(c *fiber.Ctx) error {
	snap, err := h.dashboardService.Snapshot(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(analytics.StatusPieChart(snap))
}

// Stream godoc
// @Summary Live dashboard stream
// @Description Server-sent events. A "snapshot" event is sent on connect and after every invoice change.
// @Tags Dashboard
// @Produce text/event-stream
// @Success 200 {object} analytics.Snapshot
// @Router /dashboard/stream [get]
func (h *DashboardHandler) Stream(c *fiber.Ctx) error {
	snaps, stop := h.dashboardService.Watch()

	var initial *analytics.Snapshot
	if _, ok := h.dashboardService.Latest(); !ok {
		snap, err := h.dashboardService.Snapshot(c.UserContext())
		if err != nil {
			stop()
			return respondError(c, err)
		}
		initial = &snap
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer stop()

		if initial != nil {
			if err := writeSnapshot(w, *initial); err != nil {
				return
			}
		}

		ticker := time.NewTicker(streamKeepAlive)
		defer ticker.Stop()

		for {
			select {
			case snap, ok := <-snaps:
				if !ok {
					return
				}
				if err := writeSnapshot(w, snap); err != nil {
					return
				}
			case <-ticker.C:
				// comment line; a failed flush means the client went away
				fmt.Fprint(w, ": keep-alive\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))
	return nil
}

func writeSnapshot(w *bufio.Writer, snap analytics.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", payload)
	return w.Flush()
}
