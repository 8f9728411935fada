package lifecycle

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// ShutdownFunc tears down one component. It must respect ctx cancellation.
type ShutdownFunc func(ctx context.Context) error

type hook struct {
	name string
	fn   ShutdownFunc
}

// Manager collects shutdown hooks and runs them in reverse registration order,
// so dependents stop before the resources they depend on.
type Manager struct {
	timeout time.Duration
	logger  *zap.Logger

	mu    sync.Mutex
	hooks []hook
	once  sync.Once
}

func New(timeout time.Duration, logger *zap.Logger) *Manager {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{timeout: timeout, logger: logger}
}

func (m *Manager) Register(name string, fn ShutdownFunc) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	m.hooks = append(m.hooks, hook{name: name, fn: fn})
	m.mu.Unlock()
}

// Shutdown runs every hook once, newest first, within the configured timeout.
// Hook failures are collected, not fatal: every component gets its chance to
// stop.
func (m *Manager) Shutdown(ctx context.Context) error {
	var result error
	m.once.Do(func() {
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, cancel := context.WithTimeout(ctx, m.timeout)
		defer cancel()

		m.mu.Lock()
		hooks := append([]hook(nil), m.hooks...)
		m.mu.Unlock()

		for i := len(hooks) - 1; i >= 0; i-- {
			h := hooks[i]
			if err := h.fn(ctx); err != nil {
				m.logger.Error("shutdown hook failed",
					zap.String("component", h.name),
					zap.Error(err))
				result = errors.Join(result, err)
				continue
			}
			m.logger.Info("component stopped", zap.String("component", h.name))
		}
	})
	return result
}

// Listen invokes cancel when the process receives SIGINT or SIGTERM.
func (m *Manager) Listen(cancel context.CancelFunc) {
	if cancel == nil {
		return
	}
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigCh)
		sig := <-sigCh
		m.logger.Info("shutdown signal received", zap.String("signal", sig.String()))
		cancel()
	}()
}
