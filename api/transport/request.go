package transport

type CreateOrderRequest struct {
	CustomerID string   `json:"customer_id"`
	ProductIDs []string `json:"product_ids"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type ProductRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Status      string `json:"status"`
}

type CustomerRequest struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Status string `json:"status"`
}
