package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	for _, value := range []string{"pending", "processing", "shipped", "delivered", "cancelled"} {
		status, err := ParseOrderStatus(value)
		require.NoError(t, err, value)
		assert.Equal(t, OrderStatus(value), status)
		assert.True(t, status.IsValid())
	}

	for _, value := range []string{"", "Pending", "SHIPPED", "archived", "unknown"} {
		_, err := ParseOrderStatus(value)
		require.Error(t, err, value)
		assert.True(t, IsDomainError(err, ErrCodeInvalid))
	}
}

func TestDomainErrorCodes(t *testing.T) {
	assert.True(t, IsDomainError(ErrOrderNotFound, ErrCodeNotFound))
	assert.True(t, IsDomainError(ErrEmptyOrder, ErrCodeInvalid))
	assert.False(t, IsDomainError(ErrOrderNotFound, ErrCodeInvalid))

	wrapped := WrapError(ErrCodeInternal, "query failed", ErrOrderNotFound)
	assert.True(t, IsDomainError(wrapped, ErrCodeInternal))
	assert.ErrorIs(t, wrapped, ErrOrderNotFound)
}
