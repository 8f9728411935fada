package middleware

import (
	"strconv"

	"github.com/valyala/fasthttp"

	"github.com/storefront/backend/internal/metrics"
)

// Instrument counts finished requests by method and response status.
func Instrument(m *metrics.Metrics) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		if m == nil {
			return next
		}
		return func(ctx *fasthttp.RequestCtx) {
			next(ctx)
			m.ObserveRequest(string(ctx.Method()), strconv.Itoa(ctx.Response.StatusCode()))
		}
	}
}
