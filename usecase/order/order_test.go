package order

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/storefront/backend/domain"
	"github.com/storefront/backend/repository"
	"github.com/storefront/backend/repository/memory"
)

type recordingJournal struct {
	mu     sync.Mutex
	events []string
}

func (j *recordingJournal) RecordOrderEvent(_ context.Context, action string, order *domain.Order) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, action+":"+order.ID)
	return nil
}

type fakeRevenueCache struct {
	mu      sync.Mutex
	entries map[string][]domain.RevenueRecord
	hits    int
	misses  int
}

func newFakeRevenueCache() *fakeRevenueCache {
	return &fakeRevenueCache{entries: make(map[string][]domain.RevenueRecord)}
}

func (c *fakeRevenueCache) Get(_ context.Context, customerID string) ([]domain.RevenueRecord, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	records, ok := c.entries[customerID]
	if !ok {
		c.misses++
		return nil, false, nil
	}
	c.hits++
	return records, true, nil
}

func (c *fakeRevenueCache) Set(_ context.Context, customerID string, records []domain.RevenueRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[customerID] = records
	return nil
}

func (c *fakeRevenueCache) Invalidate(_ context.Context, customerID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, customerID)
	return nil
}

type OrderWorkflowSuite struct {
	suite.Suite
	ctx       context.Context
	orders    *memory.OrderRepository
	customers *memory.CustomerRepository
	products  *memory.ProductRepository
	journal   *recordingJournal
	cache     *fakeRevenueCache
	uc        *UseCase
}

func (s *OrderWorkflowSuite) SetupTest() {
	s.ctx = context.Background()
	s.orders = memory.NewOrderRepository()
	s.customers = memory.NewCustomerRepository()
	s.products = memory.NewProductRepository()
	s.journal = &recordingJournal{}
	s.cache = newFakeRevenueCache()
	s.uc = New(s.orders, s.customers, s.products, memory.NewUnitOfWork(), s.journal, s.cache, nil)
}

func TestOrderWorkflowSuite(t *testing.T) {
	suite.Run(t, new(OrderWorkflowSuite))
}

func (s *OrderWorkflowSuite) seedCustomer(id string) {
	_, err := s.customers.Create(s.ctx, &domain.Customer{ID: id, Email: id + "@example.com", Name: id})
	s.Require().NoError(err)
}

func (s *OrderWorkflowSuite) seedProduct(id, price string) {
	p, err := decimal.NewFromString(price)
	s.Require().NoError(err)
	_, err = s.products.Create(s.ctx, &domain.Product{ID: id, Name: id, Price: p})
	s.Require().NoError(err)
}

func (s *OrderWorkflowSuite) seedOrderAt(customerID string, total string, createdAt time.Time) {
	amount, err := decimal.NewFromString(total)
	s.Require().NoError(err)
	_, err = s.orders.Create(s.ctx, &domain.Order{
		CustomerID:  customerID,
		ProductIDs:  []string{"seed"},
		TotalAmount: amount,
		Status:      domain.OrderStatusPending,
		CreatedAt:   createdAt,
	})
	s.Require().NoError(err)
}

func (s *OrderWorkflowSuite) TestCreateOrder() {
	s.seedCustomer("cust-1")
	s.seedProduct("prod-a", "999.99")
	s.seedProduct("prod-b", "29.99")

	s.Run("computes total and starts pending", func() {
		order, err := s.uc.CreateOrder(s.ctx, "cust-1", []string{"prod-a", "prod-b"})
		s.Require().NoError(err)

		s.NotEmpty(order.ID)
		s.Equal(domain.OrderStatusPending, order.Status)
		s.True(order.TotalAmount.Equal(decimal.RequireFromString("1029.98")),
			"got total %s", order.TotalAmount)

		stored, err := s.orders.GetByID(s.ctx, order.ID)
		s.Require().NoError(err)
		s.Equal([]string{"prod-a", "prod-b"}, stored.ProductIDs)
	})

	s.Run("duplicate references each add the price and keep their position", func() {
		order, err := s.uc.CreateOrder(s.ctx, "cust-1", []string{"prod-b", "prod-a", "prod-b"})
		s.Require().NoError(err)

		s.True(order.TotalAmount.Equal(decimal.RequireFromString("1059.97")),
			"got total %s", order.TotalAmount)
		s.Equal([]string{"prod-b", "prod-a", "prod-b"}, order.ProductIDs)
	})

	s.Run("journals a created event", func() {
		order, err := s.uc.CreateOrder(s.ctx, "cust-1", []string{"prod-a"})
		s.Require().NoError(err)
		s.Contains(s.journal.events, domain.OrderEventCreated+":"+order.ID)
	})
}

func (s *OrderWorkflowSuite) TestCreateOrderRejections() {
	s.seedCustomer("cust-1")
	s.seedProduct("prod-a", "10.00")

	s.Run("unknown customer writes nothing", func() {
		_, err := s.uc.CreateOrder(s.ctx, "ghost", []string{"prod-a"})
		s.Require().ErrorIs(err, domain.ErrCustomerNotFound)

		page, err := s.orders.List(s.ctx, repository.OrderFilter{})
		s.Require().NoError(err)
		s.Zero(page.Total)
	})

	s.Run("any unknown product rejects the whole order", func() {
		_, err := s.uc.CreateOrder(s.ctx, "cust-1", []string{"prod-a", "ghost"})
		s.Require().ErrorIs(err, domain.ErrProductNotFound)

		page, err := s.orders.List(s.ctx, repository.OrderFilter{})
		s.Require().NoError(err)
		s.Zero(page.Total)
	})

	s.Run("empty product list is invalid", func() {
		_, err := s.uc.CreateOrder(s.ctx, "cust-1", nil)
		s.Require().ErrorIs(err, domain.ErrEmptyOrder)
	})

	s.Run("missing customer id is invalid", func() {
		_, err := s.uc.CreateOrder(s.ctx, "", []string{"prod-a"})
		s.Require().ErrorIs(err, domain.ErrEmptyOrder)
	})
}

func (s *OrderWorkflowSuite) TestUpdateOrderStatus() {
	s.seedCustomer("cust-1")
	s.seedProduct("prod-a", "10.00")

	order, err := s.uc.CreateOrder(s.ctx, "cust-1", []string{"prod-a"})
	s.Require().NoError(err)

	s.Run("any status may replace any other", func() {
		updated, err := s.uc.UpdateOrderStatus(s.ctx, order.ID, domain.OrderStatusDelivered)
		s.Require().NoError(err)
		s.Equal(domain.OrderStatusDelivered, updated.Status)

		updated, err = s.uc.UpdateOrderStatus(s.ctx, order.ID, domain.OrderStatusPending)
		s.Require().NoError(err)
		s.Equal(domain.OrderStatusPending, updated.Status)
	})

	s.Run("applying the same status twice changes nothing but updated_at", func() {
		first, err := s.uc.UpdateOrderStatus(s.ctx, order.ID, domain.OrderStatusProcessing)
		s.Require().NoError(err)

		second, err := s.uc.UpdateOrderStatus(s.ctx, order.ID, domain.OrderStatusProcessing)
		s.Require().NoError(err)

		s.Equal(first.ID, second.ID)
		s.Equal(domain.OrderStatusProcessing, second.Status)
		s.Equal(first.ProductIDs, second.ProductIDs)
		s.True(first.TotalAmount.Equal(second.TotalAmount))
		s.Equal(first.CreatedAt, second.CreatedAt)
		s.False(second.UpdatedAt.Before(first.UpdatedAt))
	})

	s.Run("rejects an unknown status", func() {
		_, err := s.uc.UpdateOrderStatus(s.ctx, order.ID, domain.OrderStatus("archived"))
		s.Require().Error(err)
		s.True(domain.IsDomainError(err, domain.ErrCodeInvalid))
	})

	s.Run("unknown order yields not found", func() {
		_, err := s.uc.UpdateOrderStatus(s.ctx, "ghost", domain.OrderStatusShipped)
		s.Require().ErrorIs(err, domain.ErrOrderNotFound)
	})
}

func (s *OrderWorkflowSuite) TestDeleteOrder() {
	s.seedCustomer("cust-1")
	s.seedProduct("prod-a", "10.00")

	order, err := s.uc.CreateOrder(s.ctx, "cust-1", []string{"prod-a"})
	s.Require().NoError(err)

	s.Run("deleted order is gone", func() {
		s.Require().NoError(s.uc.DeleteOrder(s.ctx, order.ID))

		_, err := s.uc.GetOrder(s.ctx, order.ID)
		s.Require().ErrorIs(err, domain.ErrOrderNotFound)
	})

	s.Run("deleting twice yields not found", func() {
		s.Require().ErrorIs(s.uc.DeleteOrder(s.ctx, order.ID), domain.ErrOrderNotFound)
	})

	s.Run("deletion was journaled", func() {
		s.Contains(s.journal.events, domain.OrderEventDeleted+":"+order.ID)
	})
}

func (s *OrderWorkflowSuite) TestRevenuePerYear() {
	s.seedCustomer("cust-1")
	s.seedCustomer("cust-2")

	s.seedOrderAt("cust-1", "499.99", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	s.seedOrderAt("cust-1", "750.00", time.Date(2024, 7, 15, 10, 0, 0, 0, time.UTC))
	s.seedOrderAt("cust-1", "500.00", time.Date(2024, 11, 30, 10, 0, 0, 0, time.UTC))
	s.seedOrderAt("cust-2", "100.00", time.Date(2024, 5, 5, 10, 0, 0, 0, time.UTC))

	s.Run("sums totals per UTC year", func() {
		records, err := s.uc.RevenuePerYear(s.ctx, "cust-1")
		s.Require().NoError(err)

		s.Require().Len(records, 1)
		s.Equal(2024, records[0].Year)
		s.True(records[0].Total.Equal(decimal.RequireFromString("1749.99")),
			"got total %s", records[0].Total)
	})

	s.Run("other customers do not leak in", func() {
		records, err := s.uc.RevenuePerYear(s.ctx, "cust-2")
		s.Require().NoError(err)

		s.Require().Len(records, 1)
		s.True(records[0].Total.Equal(decimal.RequireFromString("100.00")))
	})

	s.Run("years come back ascending", func() {
		s.seedOrderAt("cust-1", "25.00", time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC))
		s.Require().NoError(s.cache.Invalidate(s.ctx, "cust-1"))

		records, err := s.uc.RevenuePerYear(s.ctx, "cust-1")
		s.Require().NoError(err)

		s.Require().Len(records, 2)
		s.Equal(2022, records[0].Year)
		s.Equal(2024, records[1].Year)
	})

	s.Run("customer without orders gets an empty report", func() {
		s.seedCustomer("cust-3")

		records, err := s.uc.RevenuePerYear(s.ctx, "cust-3")
		s.Require().NoError(err)
		s.NotNil(records)
		s.Empty(records)
	})

	s.Run("unknown customer yields not found", func() {
		_, err := s.uc.RevenuePerYear(s.ctx, "ghost")
		s.Require().ErrorIs(err, domain.ErrCustomerNotFound)
	})
}

func (s *OrderWorkflowSuite) TestRevenueCache() {
	s.seedCustomer("cust-1")
	s.seedProduct("prod-a", "200.00")

	s.Run("second read hits the cache", func() {
		_, err := s.uc.RevenuePerYear(s.ctx, "cust-1")
		s.Require().NoError(err)
		_, err = s.uc.RevenuePerYear(s.ctx, "cust-1")
		s.Require().NoError(err)

		s.Equal(1, s.cache.misses)
		s.Equal(1, s.cache.hits)
	})

	s.Run("creating an order invalidates the report", func() {
		order, err := s.uc.CreateOrder(s.ctx, "cust-1", []string{"prod-a"})
		s.Require().NoError(err)

		records, err := s.uc.RevenuePerYear(s.ctx, "cust-1")
		s.Require().NoError(err)
		s.Require().Len(records, 1)
		s.True(records[0].Total.Equal(decimal.RequireFromString("200.00")))

		s.Run("and so does deleting it", func() {
			s.Require().NoError(s.uc.DeleteOrder(s.ctx, order.ID))

			records, err := s.uc.RevenuePerYear(s.ctx, "cust-1")
			s.Require().NoError(err)
			s.Empty(records)
		})
	})
}

func (s *OrderWorkflowSuite) TestListOrders() {
	s.seedCustomer("cust-1")
	s.seedCustomer("cust-2")
	s.seedProduct("prod-a", "10.00")

	o1, err := s.uc.CreateOrder(s.ctx, "cust-1", []string{"prod-a"})
	s.Require().NoError(err)
	_, err = s.uc.CreateOrder(s.ctx, "cust-2", []string{"prod-a"})
	s.Require().NoError(err)

	_, err = s.uc.UpdateOrderStatus(s.ctx, o1.ID, domain.OrderStatusShipped)
	s.Require().NoError(err)

	s.Run("no filters returns everything", func() {
		page, err := s.uc.ListOrders(s.ctx, repository.OrderFilter{})
		s.Require().NoError(err)
		s.Equal(2, page.Total)
		s.Len(page.Orders, 2)
	})

	s.Run("filters combine with AND", func() {
		page, err := s.uc.ListOrders(s.ctx, repository.OrderFilter{
			CustomerID: "cust-1",
			Status:     domain.OrderStatusShipped,
		})
		s.Require().NoError(err)
		s.Equal(1, page.Total)
		s.Require().Len(page.Orders, 1)
		s.Equal(o1.ID, page.Orders[0].ID)

		page, err = s.uc.ListOrders(s.ctx, repository.OrderFilter{
			CustomerID: "cust-2",
			Status:     domain.OrderStatusShipped,
		})
		s.Require().NoError(err)
		s.Zero(page.Total)
	})
}
