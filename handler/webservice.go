package handler

import (
	"encoding/json"
	"fmt"

	"github.com/freekieb7/httpcore/filesystem"
	"github.com/freekieb7/httpcore/http"
)

const ordersFile = "orders.json"

type OrderStatus struct {
	OrderID     int    `json:"order_id"`
	OrderDate   string `json:"order_date"`
	OrderStatus string `json:"order_status"`
}

type WebServiceHandler struct {
	Data   filesystem.Filesystem
	Public filesystem.Filesystem
}

// Handle serves /api/shipping/orders from the orders file in the data
// directory. Other /api paths get the not found page.
func (h WebServiceHandler) Handle(req *http.Request) (http.Response, error) {
	path := req.Resource.Path
	if segment(path, 2) != "shipping" || segment(path, 3) != "orders" {
		return pageNotFound(h.Public)
	}

	orders, err := h.loadOrders()
	if err != nil {
		return http.Response{}, err
	}

	body, err := json.Marshal(orders)
	if err != nil {
		return http.Response{}, fmt.Errorf("handler: encoding orders failed: %w", err)
	}

	headers := http.Headers{"Content-Type": "application/json"}
	return http.NewResponse(http.StatusOK, headers, string(body)), nil
}

func (h WebServiceHandler) loadOrders() ([]OrderStatus, error) {
	contents, err := h.Data.ReadFile(ordersFile)
	if err != nil {
		return nil, fmt.Errorf("handler: reading orders failed: %w", err)
	}

	orders := make([]OrderStatus, 0)
	if err := json.Unmarshal(contents, &orders); err != nil {
		return nil, fmt.Errorf("handler: decoding orders failed: %w", err)
	}

	return orders, nil
}
