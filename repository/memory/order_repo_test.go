package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/storefront/backend/domain"
	"github.com/storefront/backend/repository"
)

type OrderRepoSuite struct {
	suite.Suite
	ctx  context.Context
	repo *OrderRepository
}

func (s *OrderRepoSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = NewOrderRepository()
}

func TestOrderRepoSuite(t *testing.T) {
	suite.Run(t, new(OrderRepoSuite))
}

func (s *OrderRepoSuite) seed(customerID, total string, createdAt time.Time, status domain.OrderStatus) *domain.Order {
	order, err := s.repo.Create(s.ctx, &domain.Order{
		CustomerID:  customerID,
		ProductIDs:  []string{"p1"},
		TotalAmount: decimal.RequireFromString(total),
		Status:      status,
		CreatedAt:   createdAt,
	})
	s.Require().NoError(err)
	return order
}

func (s *OrderRepoSuite) TestListFilters() {
	s.seed("c1", "10.00", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), domain.OrderStatusPending)
	s.seed("c1", "20.00", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), domain.OrderStatusShipped)
	s.seed("c2", "30.00", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), domain.OrderStatusShipped)

	s.Run("empty filter matches all, newest first", func() {
		page, err := s.repo.List(s.ctx, repository.OrderFilter{})
		s.Require().NoError(err)
		s.Equal(3, page.Total)
		s.Require().Len(page.Orders, 3)
		s.Equal("c2", page.Orders[0].CustomerID)
	})

	s.Run("filters combine with AND", func() {
		page, err := s.repo.List(s.ctx, repository.OrderFilter{
			CustomerID: "c1",
			Status:     domain.OrderStatusShipped,
		})
		s.Require().NoError(err)
		s.Equal(1, page.Total)
		s.Require().Len(page.Orders, 1)
		s.True(page.Orders[0].TotalAmount.Equal(decimal.RequireFromString("20.00")))
	})

	s.Run("pagination keeps the full match count", func() {
		page, err := s.repo.List(s.ctx, repository.OrderFilter{Limit: 2})
		s.Require().NoError(err)
		s.Equal(3, page.Total)
		s.Len(page.Orders, 2)

		page, err = s.repo.List(s.ctx, repository.OrderFilter{Limit: 2, Offset: 2})
		s.Require().NoError(err)
		s.Equal(3, page.Total)
		s.Len(page.Orders, 1)
	})

	s.Run("offset past the end yields an empty page", func() {
		page, err := s.repo.List(s.ctx, repository.OrderFilter{Offset: 10})
		s.Require().NoError(err)
		s.Equal(3, page.Total)
		s.Empty(page.Orders)
	})
}

func (s *OrderRepoSuite) TestRevenueByYear() {
	s.seed("c1", "499.99", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), domain.OrderStatusPending)
	s.seed("c1", "750.00", time.Date(2024, 7, 15, 10, 0, 0, 0, time.UTC), domain.OrderStatusDelivered)
	s.seed("c1", "500.00", time.Date(2024, 11, 30, 10, 0, 0, 0, time.UTC), domain.OrderStatusCancelled)
	s.seed("c1", "25.00", time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC), domain.OrderStatusDelivered)
	s.seed("c2", "99.00", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), domain.OrderStatusPending)

	s.Run("groups by UTC year ascending, status irrelevant", func() {
		buckets, err := s.repo.RevenueByYear(s.ctx, "c1")
		s.Require().NoError(err)

		s.Require().Len(buckets, 2)
		s.Equal(2022, buckets[0].Year)
		s.True(buckets[0].Total.Equal(decimal.RequireFromString("25.00")))
		s.Equal(2024, buckets[1].Year)
		s.True(buckets[1].Total.Equal(decimal.RequireFromString("1749.99")),
			"got total %s", buckets[1].Total)
	})

	s.Run("boundary timestamps land in their UTC year", func() {
		s.seed("c3", "1.00", time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC), domain.OrderStatusPending)
		s.seed("c3", "2.00", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), domain.OrderStatusPending)

		buckets, err := s.repo.RevenueByYear(s.ctx, "c3")
		s.Require().NoError(err)
		s.Require().Len(buckets, 2)
		s.Equal(2023, buckets[0].Year)
		s.Equal(2024, buckets[1].Year)
	})

	s.Run("no orders means no buckets", func() {
		buckets, err := s.repo.RevenueByYear(s.ctx, "ghost")
		s.Require().NoError(err)
		s.Empty(buckets)
	})
}

func (s *OrderRepoSuite) TestMutations() {
	order := s.seed("c1", "10.00", time.Time{}, "")

	s.Run("create fills defaults", func() {
		s.NotEmpty(order.ID)
		s.Equal(domain.OrderStatusPending, order.Status)
		s.False(order.CreatedAt.IsZero())
	})

	s.Run("stored order is isolated from the caller's slice", func() {
		order.ProductIDs[0] = "mutated"
		stored, err := s.repo.GetByID(s.ctx, order.ID)
		s.Require().NoError(err)
		s.Equal([]string{"p1"}, stored.ProductIDs)
	})

	s.Run("update status", func() {
		updated, err := s.repo.UpdateStatus(s.ctx, order.ID, domain.OrderStatusCancelled)
		s.Require().NoError(err)
		s.Equal(domain.OrderStatusCancelled, updated.Status)
	})

	s.Run("delete then get is not found", func() {
		s.Require().NoError(s.repo.Delete(s.ctx, order.ID))
		_, err := s.repo.GetByID(s.ctx, order.ID)
		s.Require().ErrorIs(err, domain.ErrOrderNotFound)
		s.Require().ErrorIs(s.repo.Delete(s.ctx, order.ID), domain.ErrOrderNotFound)
	})
}
