package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/storefront/backend/api/transport"
	"github.com/storefront/backend/domain"
	"github.com/storefront/backend/pkg/httpcontext"
	"github.com/storefront/backend/repository"
	customerUC "github.com/storefront/backend/usecase/customer"
)

type CustomerHandler struct {
	baseHandler
	uc *customerUC.UseCase
}

func NewCustomerHandler(uc *customerUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List customers
// @Tags customers
// @Router /api/v1/customers [get]
func (h *CustomerHandler) ListCustomers(ctx *fasthttp.RequestCtx) {
	filter := repository.CustomerFilter{
		Status: string(ctx.QueryArgs().Peek("status")),
		Limit:  parseInt(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset: parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	customers, err := h.uc.ListCustomers(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, customers)
}

// @Summary Get customer
// @Tags customers
// @Router /api/v1/customers/{id} [get]
func (h *CustomerHandler) GetCustomer(ctx *fasthttp.RequestCtx) {
	id := pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing customer id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	customer, err := h.uc.GetCustomer(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, customer)
}

// @Summary Create customer
// @Tags customers
// @Accept json
// @Produce json
// @Router /api/v1/customers [post]
func (h *CustomerHandler) CreateCustomer(ctx *fasthttp.RequestCtx) {
	customer, ok := h.parseCustomer(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateCustomer(stdCtx, customer)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update customer
// @Tags customers
// @Router /api/v1/customers/{id} [put]
func (h *CustomerHandler) UpdateCustomer(ctx *fasthttp.RequestCtx) {
	customer, ok := h.parseCustomer(ctx)
	if !ok {
		return
	}
	if customer.ID == "" {
		customer.ID = pathParam(ctx, "id")
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateCustomer(stdCtx, customer)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete customer
// @Tags customers
// @Router /api/v1/customers/{id} [delete]
func (h *CustomerHandler) DeleteCustomer(ctx *fasthttp.RequestCtx) {
	id := pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing customer id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteCustomer(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

func (h *CustomerHandler) parseCustomer(ctx *fasthttp.RequestCtx) (*domain.Customer, bool) {
	var req transport.CustomerRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return nil, false
	}

	return &domain.Customer{
		ID:     req.ID,
		Email:  req.Email,
		Name:   req.Name,
		Status: req.Status,
	}, true
}
