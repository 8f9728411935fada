package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/storefront/backend/domain"
	"github.com/storefront/backend/internal/infrastructure/journal"
	"github.com/storefront/backend/repository/memory"
)

type stubHealth struct {
	online bool
}

func (h *stubHealth) IsOnline() bool { return h.online }

type JournalProcessorSuite struct {
	suite.Suite
	ctx       context.Context
	store     *journal.Store
	events    *memory.OrderEventRepository
	health    *stubHealth
	processor *JournalProcessor
}

func (s *JournalProcessorSuite) SetupTest() {
	s.ctx = context.Background()

	store, err := journal.Open(filepath.Join(s.T().TempDir(), "journal.db"), "journal")
	s.Require().NoError(err)
	s.T().Cleanup(func() { store.Close() })

	s.store = store
	s.events = memory.NewOrderEventRepository()
	s.health = &stubHealth{online: true}
	s.processor = NewJournalProcessor(s.store, s.health, s.events, nil, ProcessorConfig{
		Interval:   time.Minute,
		BatchSize:  10,
		MaxRetries: 3,
	})
}

func TestJournalProcessorSuite(t *testing.T) {
	suite.Run(t, new(JournalProcessorSuite))
}

func (s *JournalProcessorSuite) entry(id, orderID string) journal.Entry {
	return journal.Entry{
		ID:         id,
		OrderID:    orderID,
		CustomerID: "cust-1",
		Action:     domain.OrderEventCreated,
		Timestamp:  time.Now().UTC(),
	}
}

func (s *JournalProcessorSuite) TestRecord() {
	s.Run("persists immediately while online", func() {
		s.Require().NoError(s.processor.Record(s.ctx, s.entry("e1", "order-1")))

		events, err := s.events.ListByOrder(s.ctx, "order-1", 10)
		s.Require().NoError(err)
		s.Len(events, 1)
		s.Zero(s.processor.Size())
	})

	s.Run("journals while offline", func() {
		s.health.online = false

		s.Require().NoError(s.processor.Record(s.ctx, s.entry("e2", "order-2")))

		events, err := s.events.ListByOrder(s.ctx, "order-2", 10)
		s.Require().NoError(err)
		s.Empty(events)
		s.Equal(1, s.processor.Size())
	})
}

func (s *JournalProcessorSuite) TestDrain() {
	s.health.online = false
	s.Require().NoError(s.processor.Record(s.ctx, s.entry("e1", "order-1")))
	s.Require().NoError(s.processor.Record(s.ctx, s.entry("e2", "order-2")))
	s.Require().Equal(2, s.processor.Size())

	s.Run("skips while offline", func() {
		s.Require().NoError(s.processor.Drain(s.ctx))
		s.Equal(2, s.processor.Size())
	})

	s.Run("flushes queued entries once back online", func() {
		s.health.online = true

		s.Require().NoError(s.processor.Drain(s.ctx))
		s.Zero(s.processor.Size())

		for _, orderID := range []string{"order-1", "order-2"} {
			events, err := s.events.ListByOrder(s.ctx, orderID, 10)
			s.Require().NoError(err)
			s.Len(events, 1)
		}
	})

	s.Run("drain is idempotent on an empty journal", func() {
		s.Require().NoError(s.processor.Drain(s.ctx))
		s.Zero(s.processor.Size())
	})
}

func (s *JournalProcessorSuite) TestBridge() {
	bridge := NewJournalBridge(s.processor)
	order := &domain.Order{
		ID:          "order-9",
		CustomerID:  "cust-9",
		ProductIDs:  []string{"p1", "p1"},
		TotalAmount: decimal.RequireFromString("20.00"),
		Status:      domain.OrderStatusPending,
	}

	s.Require().NoError(bridge.RecordOrderEvent(s.ctx, domain.OrderEventCreated, order))

	events, err := s.events.ListByOrder(s.ctx, "order-9", 10)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(domain.OrderEventCreated, events[0].Action)
	s.Equal("cust-9", events[0].CustomerID)
	s.NotEmpty(events[0].Payload)
}
