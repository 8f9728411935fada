package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/storefront/backend/domain"
	"github.com/storefront/backend/repository"
	"github.com/storefront/backend/repository/memory"
)

type ProductSuite struct {
	suite.Suite
	ctx context.Context
	uc  *UseCase
}

func (s *ProductSuite) SetupTest() {
	s.ctx = context.Background()
	s.uc = New(memory.NewProductRepository(), nil)
}

func TestProductSuite(t *testing.T) {
	suite.Run(t, new(ProductSuite))
}

func (s *ProductSuite) TestCRUD() {
	s.Run("creates and retrieves", func() {
		created, err := s.uc.CreateProduct(s.ctx, &domain.Product{
			Name:  "Laptop",
			Price: decimal.RequireFromString("999.99"),
		})
		s.Require().NoError(err)
		s.NotEmpty(created.ID)

		found, err := s.uc.GetProduct(s.ctx, created.ID)
		s.Require().NoError(err)
		s.Equal("Laptop", found.Name)
		s.True(found.Price.Equal(decimal.RequireFromString("999.99")))
	})

	s.Run("updates price", func() {
		created, err := s.uc.CreateProduct(s.ctx, &domain.Product{
			Name:  "Mouse",
			Price: decimal.RequireFromString("29.99"),
		})
		s.Require().NoError(err)

		created.Price = decimal.RequireFromString("24.99")
		updated, err := s.uc.UpdateProduct(s.ctx, created)
		s.Require().NoError(err)
		s.True(updated.Price.Equal(decimal.RequireFromString("24.99")))
	})

	s.Run("deletes", func() {
		created, err := s.uc.CreateProduct(s.ctx, &domain.Product{
			Name:  "Keyboard",
			Price: decimal.RequireFromString("49.99"),
		})
		s.Require().NoError(err)

		s.Require().NoError(s.uc.DeleteProduct(s.ctx, created.ID))
		_, err = s.uc.GetProduct(s.ctx, created.ID)
		s.Require().ErrorIs(err, domain.ErrProductNotFound)
	})

	s.Run("lists with pagination", func() {
		products, err := s.uc.ListProducts(s.ctx, repository.ProductFilter{Limit: 1})
		s.Require().NoError(err)
		s.Len(products, 1)
	})
}

func (s *ProductSuite) TestValidation() {
	s.Run("rejects a negative price", func() {
		_, err := s.uc.CreateProduct(s.ctx, &domain.Product{
			Name:  "Broken",
			Price: decimal.RequireFromString("-1.00"),
		})
		s.Require().Error(err)
		s.True(domain.IsDomainError(err, domain.ErrCodeInvalid))
	})

	s.Run("rejects an empty name", func() {
		_, err := s.uc.CreateProduct(s.ctx, &domain.Product{
			Price: decimal.RequireFromString("1.00"),
		})
		s.Require().ErrorIs(err, domain.ErrInvalidPayload)
	})

	s.Run("zero price is allowed", func() {
		created, err := s.uc.CreateProduct(s.ctx, &domain.Product{Name: "Freebie"})
		s.Require().NoError(err)
		s.True(created.Price.IsZero())
	})
}
