package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"storefront-dashboard/models"
)

// Domain operations are thin named wrappers over the request primitive: each
// fixes a path, method and body shape, nothing more.

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token  string `json:"token"`
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

func (g *GatewayClient) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := g.Do(ctx, http.MethodPost, "/auth/signup", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (g *GatewayClient) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := g.Do(ctx, http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (g *GatewayClient) GetProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := g.Do(ctx, http.MethodGet, "/products", nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (g *GatewayClient) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := g.Do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (g *GatewayClient) CreateProduct(ctx context.Context, req CreateProductRequest) (*models.Product, error) {
	var product models.Product
	if err := g.Do(ctx, http.MethodPost, "/products", nil, req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (g *GatewayClient) CreateInventory(ctx context.Context, productID int64, quantity int) error {
	query := url.Values{}
	query.Set("productId", strconv.FormatInt(productID, 10))
	query.Set("quantity", strconv.Itoa(quantity))
	return g.Do(ctx, http.MethodPost, "/inventory", query, nil, nil)
}

func (g *GatewayClient) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := g.Do(ctx, http.MethodPost, "/orders", nil, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (g *GatewayClient) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	if err := g.Do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (g *GatewayClient) GetOrdersByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	var orders []models.Order
	if err := g.Do(ctx, http.MethodGet, fmt.Sprintf("/orders/user/%d", userID), nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (g *GatewayClient) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := g.Do(ctx, http.MethodGet, "/orders", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (g *GatewayClient) ApproveOrder(ctx context.Context, id int64) error {
	return g.Do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d/approve", id), nil, nil, nil)
}

func (g *GatewayClient) RejectOrder(ctx context.Context, id int64) error {
	return g.Do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d/reject", id), nil, nil, nil)
}
