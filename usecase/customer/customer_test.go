package customer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/storefront/backend/domain"
	"github.com/storefront/backend/repository"
	"github.com/storefront/backend/repository/memory"
)

type CustomerSuite struct {
	suite.Suite
	ctx context.Context
	uc  *UseCase
}

func (s *CustomerSuite) SetupTest() {
	s.ctx = context.Background()
	s.uc = New(memory.NewCustomerRepository(), nil)
}

func TestCustomerSuite(t *testing.T) {
	suite.Run(t, new(CustomerSuite))
}

func (s *CustomerSuite) TestCRUD() {
	s.Run("creates and retrieves", func() {
		created, err := s.uc.CreateCustomer(s.ctx, &domain.Customer{
			Email: "ada@example.com",
			Name:  "Ada",
		})
		s.Require().NoError(err)
		s.NotEmpty(created.ID)
		s.Equal("active", created.Status)

		found, err := s.uc.GetCustomer(s.ctx, created.ID)
		s.Require().NoError(err)
		s.Equal("ada@example.com", found.Email)
	})

	s.Run("updates", func() {
		created, err := s.uc.CreateCustomer(s.ctx, &domain.Customer{
			Email: "grace@example.com",
			Name:  "Grace",
		})
		s.Require().NoError(err)

		created.Name = "Grace H."
		updated, err := s.uc.UpdateCustomer(s.ctx, created)
		s.Require().NoError(err)
		s.Equal("Grace H.", updated.Name)
	})

	s.Run("deletes", func() {
		created, err := s.uc.CreateCustomer(s.ctx, &domain.Customer{
			Email: "gone@example.com",
		})
		s.Require().NoError(err)

		s.Require().NoError(s.uc.DeleteCustomer(s.ctx, created.ID))
		_, err = s.uc.GetCustomer(s.ctx, created.ID)
		s.Require().ErrorIs(err, domain.ErrCustomerNotFound)
	})

	s.Run("lists by status", func() {
		customers, err := s.uc.ListCustomers(s.ctx, repository.CustomerFilter{Status: "active"})
		s.Require().NoError(err)
		s.NotEmpty(customers)
	})
}

func (s *CustomerSuite) TestValidation() {
	s.Run("rejects a missing email", func() {
		_, err := s.uc.CreateCustomer(s.ctx, &domain.Customer{Name: "No Email"})
		s.Require().ErrorIs(err, domain.ErrInvalidPayload)
	})

	s.Run("update requires an id", func() {
		_, err := s.uc.UpdateCustomer(s.ctx, &domain.Customer{Email: "x@example.com"})
		s.Require().ErrorIs(err, domain.ErrInvalidPayload)
	})

	s.Run("unknown customer yields not found", func() {
		_, err := s.uc.GetCustomer(s.ctx, "ghost")
		s.Require().ErrorIs(err, domain.ErrCustomerNotFound)
	})
}
