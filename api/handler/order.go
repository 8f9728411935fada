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
	orderUC "github.com/storefront/backend/usecase/order"
)

type OrderHandler struct {
	baseHandler
	uc *orderUC.UseCase
}

func NewOrderHandler(uc *orderUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List orders
// @Tags orders
// @Param customer_id query string false "filter by customer"
// @Param status query string false "filter by status"
// @Router /api/v1/orders [get]
func (h *OrderHandler) ListOrders(ctx *fasthttp.RequestCtx) {
	filter := repository.OrderFilter{
		CustomerID: string(ctx.QueryArgs().Peek("customer_id")),
		Limit:      pageSize(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset:     parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}

	if raw := string(ctx.QueryArgs().Peek("status")); raw != "" {
		status, err := domain.ParseOrderStatus(raw)
		if err != nil {
			h.respondInvalid(ctx, "unknown order status")
			return
		}
		filter.Status = status
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	page, err := h.uc.ListOrders(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	meta := transport.PageMeta{Total: page.Total, Limit: filter.Limit, Offset: filter.Offset}
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(page.Orders, meta))
}

// @Summary Get order
// @Tags orders
// @Router /api/v1/orders/{id} [get]
func (h *OrderHandler) GetOrder(ctx *fasthttp.RequestCtx) {
	id := pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing order id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	order, err := h.uc.GetOrder(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, order)
}

// @Summary Create order
// @Tags orders
// @Accept json
// @Produce json
// @Router /api/v1/orders [post]
func (h *OrderHandler) CreateOrder(ctx *fasthttp.RequestCtx) {
	var req transport.CreateOrderRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}
	if req.CustomerID == "" || len(req.ProductIDs) == 0 {
		h.respondInvalid(ctx, "customer_id and a non-empty product_ids list are required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	order, err := h.uc.CreateOrder(stdCtx, req.CustomerID, req.ProductIDs)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, order)
}

// @Summary Update order status
// @Tags orders
// @Router /api/v1/orders/{id}/status [patch]
func (h *OrderHandler) UpdateOrderStatus(ctx *fasthttp.RequestCtx) {
	id := pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing order id")
		return
	}

	var req transport.UpdateOrderStatusRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	status, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		h.respondInvalid(ctx, "unknown order status")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	order, err := h.uc.UpdateOrderStatus(stdCtx, id, status)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, order)
}

// @Summary Delete order
// @Tags orders
// @Router /api/v1/orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(ctx *fasthttp.RequestCtx) {
	id := pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing order id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteOrder(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Customer orders
// @Tags customers
// @Router /api/v1/customers/{id}/orders [get]
func (h *OrderHandler) ListCustomerOrders(ctx *fasthttp.RequestCtx) {
	customerID := pathParam(ctx, "id")
	if customerID == "" {
		h.respondInvalid(ctx, "missing customer id")
		return
	}

	filter := repository.OrderFilter{
		CustomerID: customerID,
		Limit:      pageSize(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset:     parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	page, err := h.uc.ListOrders(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	meta := transport.PageMeta{Total: page.Total, Limit: filter.Limit, Offset: filter.Offset}
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(page.Orders, meta))
}

// @Summary Customer revenue per year
// @Tags customers
// @Router /api/v1/customers/{id}/revenue [get]
func (h *OrderHandler) GetCustomerRevenue(ctx *fasthttp.RequestCtx) {
	customerID := pathParam(ctx, "id")
	if customerID == "" {
		h.respondInvalid(ctx, "missing customer id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	records, err := h.uc.RevenuePerYear(stdCtx, customerID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, records)
}
