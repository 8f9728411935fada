package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/storefront/backend/api/transport"
	"github.com/storefront/backend/domain"
	"github.com/storefront/backend/pkg/httpcontext"
	"github.com/storefront/backend/repository"
	productUC "github.com/storefront/backend/usecase/product"
)

type ProductHandler struct {
	baseHandler
	uc *productUC.UseCase
}

func NewProductHandler(uc *productUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List products
// @Tags products
// @Router /api/v1/products [get]
func (h *ProductHandler) ListProducts(ctx *fasthttp.RequestCtx) {
	filter := repository.ProductFilter{
		Status: string(ctx.QueryArgs().Peek("status")),
		Limit:  parseInt(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset: parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	products, err := h.uc.ListProducts(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, products)
}

// @Summary Get product
// @Tags products
// @Router /api/v1/products/{id} [get]
func (h *ProductHandler) GetProduct(ctx *fasthttp.RequestCtx) {
	id := pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing product id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	product, err := h.uc.GetProduct(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, product)
}

// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Router /api/v1/products [post]
func (h *ProductHandler) CreateProduct(ctx *fasthttp.RequestCtx) {
	product, ok := h.parseProduct(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateProduct(stdCtx, product)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update product
// @Tags products
// @Router /api/v1/products/{id} [put]
func (h *ProductHandler) UpdateProduct(ctx *fasthttp.RequestCtx) {
	product, ok := h.parseProduct(ctx)
	if !ok {
		return
	}
	if product.ID == "" {
		product.ID = pathParam(ctx, "id")
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateProduct(stdCtx, product)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete product
// @Tags products
// @Router /api/v1/products/{id} [delete]
func (h *ProductHandler) DeleteProduct(ctx *fasthttp.RequestCtx) {
	id := pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing product id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteProduct(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

func (h *ProductHandler) parseProduct(ctx *fasthttp.RequestCtx) (*domain.Product, bool) {
	var req transport.ProductRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return nil, false
	}

	price := decimal.Zero
	if req.Price != "" {
		parsed, err := decimal.NewFromString(req.Price)
		if err != nil {
			h.respondInvalid(ctx, "invalid price")
			return nil, false
		}
		price = parsed
	}

	return &domain.Product{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Status:      req.Status,
	}, true
}
