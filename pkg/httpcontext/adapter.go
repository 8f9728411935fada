package httpcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	appLogger "github.com/storefront/backend/pkg/logger"
)

// Key identifies request metadata carried on the stdlib context.
type Key string

const (
	KeyRemoteAddr Key = "remote_addr"
	KeyUserAgent  Key = "user_agent"
)

const requestIDHeader = "X-Request-ID"

// Adapter derives a deadline-bound stdlib context from a fasthttp request.
// Every request gets a request ID, either propagated from the caller or
// generated here, and the ID is echoed back on the response.
type Adapter struct {
	timeout time.Duration
}

func NewAdapter(timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Adapter{timeout: timeout}
}

// Attach builds the request-scoped context: deadline, request ID and client
// metadata.
func (a *Adapter) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	stdCtx, cancel := context.WithTimeout(context.Background(), a.timeout)

	requestID := requestIDFor(ctx)
	stdCtx = appLogger.ContextWithRequestID(stdCtx, requestID)
	ctx.Response.Header.Set(requestIDHeader, requestID)

	if addr := ctx.RemoteAddr(); addr != nil {
		stdCtx = context.WithValue(stdCtx, KeyRemoteAddr, addr.String())
	}
	if agent := string(ctx.Request.Header.UserAgent()); agent != "" {
		stdCtx = context.WithValue(stdCtx, KeyUserAgent, agent)
	}

	return stdCtx, cancel
}

func requestIDFor(ctx *fasthttp.RequestCtx) string {
	if ctx != nil {
		if id := strings.TrimSpace(string(ctx.Request.Header.Peek(requestIDHeader))); id != "" {
			return id
		}
	}
	return uuid.NewString()
}
