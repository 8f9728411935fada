package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/storefront/backend/api/transport"
	"github.com/storefront/backend/internal/infrastructure/monitor"
	"github.com/storefront/backend/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
	monitor *monitor.Monitor
}

func NewHealthHandler(mon *monitor.Monitor, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
	}
}

type healthReport struct {
	Timestamp  time.Time `json:"timestamp"`
	PostgreSQL string    `json:"postgresql"`
	Redis      string    `json:"redis"`
	Journal    string    `json:"journal"`
	Queued     int       `json:"journal_queued"`
	LastCheck  time.Time `json:"last_check"`
}

func healthWord(ok bool) string {
	if ok {
		return "up"
	}
	return "down"
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.GetStatus()
	report := healthReport{
		Timestamp:  time.Now().UTC(),
		PostgreSQL: healthWord(status.PostgreSQL),
		Redis:      healthWord(status.Redis),
		Journal:    healthWord(status.Journal),
		Queued:     status.JournalSize,
		LastCheck:  status.LastCheck,
	}

	if status.PostgreSQL && status.Redis {
		h.respondSuccess(ctx, http.StatusOK, report)
		return
	}
	h.respondJSON(ctx, http.StatusServiceUnavailable, transport.NewError("DEGRADED", "dependencies unhealthy", report))
}
