package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/storefront/backend/api/handler"
)

type Handlers struct {
	Customer *apiHandler.CustomerHandler
	Product  *apiHandler.ProductHandler
	Order    *apiHandler.OrderHandler
	Health   *apiHandler.HealthHandler
}

type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

// Options carries the middleware chain and optional extra endpoints.
type Options struct {
	Auth       Middleware
	Admin      Middleware
	Instrument Middleware
	Metrics    fasthttp.RequestHandler
}

func New(handlers Handlers, opts Options) *router.Router {
	r := router.New()

	chain := func(h fasthttp.RequestHandler, mws ...Middleware) fasthttp.RequestHandler {
		for i := len(mws) - 1; i >= 0; i-- {
			if mws[i] != nil {
				h = mws[i](h)
			}
		}
		return h
	}
	protected := func(h fasthttp.RequestHandler) fasthttp.RequestHandler {
		return chain(h, opts.Instrument, opts.Auth)
	}
	adminOnly := func(h fasthttp.RequestHandler) fasthttp.RequestHandler {
		return chain(h, opts.Instrument, opts.Auth, opts.Admin)
	}

	r.GET("/health", handlers.Health.Check)
	if opts.Metrics != nil {
		r.GET("/metrics", opts.Metrics)
	}

	// Customer routes (mutations are admin-only; the customer surface is
	// managed by back-office tooling).
	r.GET("/api/v1/customers", protected(handlers.Customer.ListCustomers))
	r.POST("/api/v1/customers", adminOnly(handlers.Customer.CreateCustomer))
	r.GET("/api/v1/customers/{id}", protected(handlers.Customer.GetCustomer))
	r.PUT("/api/v1/customers/{id}", adminOnly(handlers.Customer.UpdateCustomer))
	r.DELETE("/api/v1/customers/{id}", adminOnly(handlers.Customer.DeleteCustomer))
	r.GET("/api/v1/customers/{id}/orders", protected(handlers.Order.ListCustomerOrders))
	r.GET("/api/v1/customers/{id}/revenue", protected(handlers.Order.GetCustomerRevenue))

	// Product routes
	r.GET("/api/v1/products", protected(handlers.Product.ListProducts))
	r.POST("/api/v1/products", adminOnly(handlers.Product.CreateProduct))
	r.GET("/api/v1/products/{id}", protected(handlers.Product.GetProduct))
	r.PUT("/api/v1/products/{id}", adminOnly(handlers.Product.UpdateProduct))
	r.DELETE("/api/v1/products/{id}", adminOnly(handlers.Product.DeleteProduct))

	// Order routes
	r.GET("/api/v1/orders", protected(handlers.Order.ListOrders))
	r.POST("/api/v1/orders", protected(handlers.Order.CreateOrder))
	r.GET("/api/v1/orders/{id}", protected(handlers.Order.GetOrder))
	r.PATCH("/api/v1/orders/{id}/status", protected(handlers.Order.UpdateOrderStatus))
	r.DELETE("/api/v1/orders/{id}", protected(handlers.Order.DeleteOrder))

	return r
}
