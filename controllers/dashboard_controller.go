package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-dashboard/clients"
	"storefront-dashboard/models"
	"storefront-dashboard/services"
)

// DashboardController maps the local dashboard surface onto the services.
// Every failure becomes a one-shot {"error": "..."} notification for the
// presentation layer; nothing is retried here.
type DashboardController struct {
	Dashboard *services.DashboardService
	Sessions  *services.SessionService
	Carts     *services.CartService
	Gateway   *clients.GatewayClient
	Log       *zap.Logger
}

func NewDashboardController(dashboard *services.DashboardService, sessions *services.SessionService, carts *services.CartService, gateway *clients.GatewayClient, log *zap.Logger) *DashboardController {
	return &DashboardController{
		Dashboard: dashboard,
		Sessions:  sessions,
		Carts:     carts,
		Gateway:   gateway,
		Log:       log,
	}
}

type signupRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type addCartItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type createInventoryRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity"`
}

// Signup creates the account; the user still logs in afterwards.
func (dc *DashboardController) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	resp, err := dc.Dashboard.Signup(c.Request.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		dc.fail(c, fmt.Errorf("Signup failed: %w", err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created. Login to continue.",
		"email":   resp.Email,
	})
}

func (dc *DashboardController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	session, mode, err := dc.Dashboard.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		dc.fail(c, fmt.Errorf("Login failed: %w", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful.",
		"mode":    mode,
		"user":    session,
	})
}

func (dc *DashboardController) Logout(c *gin.Context) {
	if err := dc.Dashboard.Logout(c.Request.Context()); err != nil {
		dc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out."})
}

// State hydrates the full dashboard view for the current mode.
func (dc *DashboardController) State(c *gin.Context) {
	state, warnings := dc.Dashboard.Hydrate(c.Request.Context())
	resp := gin.H{"state": state}
	if len(warnings) > 0 {
		resp["warnings"] = warnings
	}
	c.JSON(http.StatusOK, resp)
}

func (dc *DashboardController) ToggleView(c *gin.Context) {
	mode, err := dc.Sessions.ToggleView()
	if err != nil {
		dc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mode": mode})
}

func (dc *DashboardController) ListProducts(c *gin.Context) {
	products, err := dc.Gateway.GetProducts(c.Request.Context())
	if err != nil {
		dc.fail(c, fmt.Errorf("Failed to load products: %w", err))
		return
	}
	c.JSON(http.StatusOK, products)
}

func (dc *DashboardController) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	product, err := dc.Gateway.GetProduct(c.Request.Context(), id)
	if err != nil {
		dc.fail(c, fmt.Errorf("Unable to load product details: %w", err))
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct is the admin two-step: product, then its inventory record.
func (dc *DashboardController) CreateProduct(c *gin.Context) {
	var req clients.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	product, err := dc.Dashboard.CreateProductWithInventory(c.Request.Context(), req)
	if err != nil {
		dc.fail(c, fmt.Errorf("Create product failed: %w", err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Product and inventory created.",
		"product": product,
	})
}

func (dc *DashboardController) CreateInventory(c *gin.Context) {
	var req createInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if err := dc.Gateway.CreateInventory(c.Request.Context(), req.ProductID, req.Quantity); err != nil {
		dc.fail(c, fmt.Errorf("Inventory failed: %w", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inventory saved."})
}

func (dc *DashboardController) GetCart(c *gin.Context) {
	session := dc.Sessions.Current()
	userID := ""
	if session != nil {
		userID = session.UserID
	}

	lines, err := dc.Carts.Get(c.Request.Context(), userID)
	if err != nil {
		dc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"lines": lines,
		"total": models.CartTotal(lines),
	})
}

// AddCartItem fetches the product so its current price is captured on the
// new line, then applies the add.
func (dc *DashboardController) AddCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	product, err := dc.Gateway.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		dc.fail(c, fmt.Errorf("Unable to load product details: %w", err))
		return
	}

	lines, err := dc.Carts.Add(c.Request.Context(), dc.userID(), product, req.Quantity)
	if err != nil {
		dc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%s added to cart.", product.Name),
		"lines":   lines,
		"total":   models.CartTotal(lines),
	})
}

func (dc *DashboardController) UpdateCartItem(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	lines, err := dc.Carts.UpdateQuantity(c.Request.Context(), dc.userID(), productID, req.Quantity)
	if err != nil {
		dc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"lines": lines,
		"total": models.CartTotal(lines),
	})
}

func (dc *DashboardController) RemoveCartItem(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	lines, err := dc.Carts.Remove(c.Request.Context(), dc.userID(), productID)
	if err != nil {
		dc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"lines": lines,
		"total": models.CartTotal(lines),
	})
}

func (dc *DashboardController) ClearCart(c *gin.Context) {
	if err := dc.Carts.Clear(c.Request.Context(), dc.userID()); err != nil {
		dc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}

// Checkout honors an optional X-Idempotency-Key header so a resubmit maps
// back to the order already placed.
func (dc *DashboardController) Checkout(c *gin.Context) {
	order, err := dc.Dashboard.Checkout(c.Request.Context(), c.GetHeader("X-Idempotency-Key"))
	if err != nil {
		dc.fail(c, fmt.Errorf("Checkout failed: %w", err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Order placed. Order ID: %d. Waiting for admin approval.", order.ID),
		"order":   order,
	})
}

// ListOrders returns the current user's order history.
func (dc *DashboardController) ListOrders(c *gin.Context) {
	session := dc.Sessions.Current()
	if session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}
	uid, err := strconv.ParseInt(session.UserID, 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, []models.Order{})
		return
	}

	orders, err := dc.Gateway.GetOrdersByUser(c.Request.Context(), uid)
	if err != nil {
		dc.fail(c, fmt.Errorf("Unable to load order history: %w", err))
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (dc *DashboardController) GetOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	order, err := dc.Gateway.GetOrder(c.Request.Context(), id)
	if err != nil {
		dc.fail(c, fmt.Errorf("Get order failed: %w", err))
		return
	}
	c.JSON(http.StatusOK, order)
}

// CreateOrder is the admin direct-create form, bypassing the cart.
func (dc *DashboardController) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	order, err := dc.Gateway.CreateOrder(c.Request.Context(), req)
	if err != nil {
		dc.fail(c, fmt.Errorf("Create order failed: %w", err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Order created with id %d and is awaiting admin approval.", order.ID),
		"order":   order,
	})
}

func (dc *DashboardController) ListAllOrders(c *gin.Context) {
	orders, err := dc.Gateway.GetAllOrders(c.Request.Context())
	if err != nil {
		dc.fail(c, fmt.Errorf("Unable to load admin orders: %w", err))
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (dc *DashboardController) ApproveOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	if err := dc.Gateway.ApproveOrder(c.Request.Context(), id); err != nil {
		dc.fail(c, fmt.Errorf("Approve order failed: %w", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Order %d approved. Inventory/payment flow started.", id),
	})
}

func (dc *DashboardController) RejectOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	if err := dc.Gateway.RejectOrder(c.Request.Context(), id); err != nil {
		dc.fail(c, fmt.Errorf("Reject order failed: %w", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Order %d rejected.", id)})
}

func (dc *DashboardController) userID() string {
	if session := dc.Sessions.Current(); session != nil {
		return session.UserID
	}
	return ""
}

// fail converts an error into the notification the UI shows, mapping local
// validation and upstream statuses onto sensible HTTP codes.
func (dc *DashboardController) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	var reqErr *clients.RequestError
	switch {
	case errors.As(err, &reqErr):
		status = http.StatusBadGateway
		if reqErr.Status >= 400 && reqErr.Status < 500 {
			status = reqErr.Status
		}
	case errors.Is(err, services.ErrInvalidQuantity), errors.Is(err, services.ErrEmptyCart):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrNotAdmin):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrUnauthenticated):
		status = http.StatusUnauthorized
	}

	dc.Log.Warn("operation failed", zap.Int("status", status), zap.Error(err))
	c.JSON(status, gin.H{"error": err.Error()})
}
