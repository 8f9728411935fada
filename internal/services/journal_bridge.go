package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/domain"
	"github.com/storefront/backend/internal/infrastructure/journal"
)

// JournalBridge adapts the journal processor to the usecase.OrderJournal port.
type JournalBridge struct {
	processor *JournalProcessor
}

func NewJournalBridge(processor *JournalProcessor) *JournalBridge {
	return &JournalBridge{processor: processor}
}

func (b *JournalBridge) RecordOrderEvent(ctx context.Context, action string, order *domain.Order) error {
	if b.processor == nil || order == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(order)
	if err != nil {
		return err
	}
	entry := journal.Entry{
		ID:         uuid.NewString(),
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Action:     action,
		Payload:    payload,
		Timestamp:  time.Now().UTC(),
	}
	return b.processor.Record(ctx, entry)
}
