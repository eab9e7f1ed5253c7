package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"storefront-dashboard/clients"
	"storefront-dashboard/models"
	"storefront-dashboard/repository"
)

// ErrEmptyCart is returned when checkout is attempted with no cart lines.
var ErrEmptyCart = errors.New("your cart is empty")

// ErrUnauthenticated is returned when an operation needs a session and none
// exists.
var ErrUnauthenticated = errors.New("not logged in")

const idempotencyTTL = 24 * time.Hour

// DashboardService orchestrates the domain operations: auth flows, view
// hydration, cart checkout and the admin actions. All business rules stay in
// the backend; this layer only sequences calls and keeps local state
// consistent.
type DashboardService struct {
	gateway  *clients.GatewayClient
	sessions *SessionService
	carts    *CartService
	idem     repository.IdempotencyStore
	log      *zap.Logger
}

// NewDashboardService wires the orchestration layer. idem may be nil; then
// checkout idempotency keys are accepted but not recorded.
func NewDashboardService(gateway *clients.GatewayClient, sessions *SessionService, carts *CartService, idem repository.IdempotencyStore, log *zap.Logger) *DashboardService {
	return &DashboardService{
		gateway:  gateway,
		sessions: sessions,
		carts:    carts,
		idem:     idem,
		log:      log,
	}
}

// DashboardState is the hydrated view the presentation layer renders from.
type DashboardState struct {
	Mode        ViewMode          `json:"mode"`
	User        *models.Session   `json:"user,omitempty"`
	Products    []models.Product  `json:"products"`
	Cart        []models.CartLine `json:"cart"`
	CartTotal   float64           `json:"cart_total"`
	Orders      []models.Order    `json:"orders"`
	AdminOrders []models.Order    `json:"admin_orders,omitempty"`
}

// Signup creates an account. It does not authenticate: the user logs in with
// the new credentials afterwards.
func (s *DashboardService) Signup(ctx context.Context, firstName, lastName, email, password string) (*clients.AuthResponse, error) {
	name := strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
	return s.gateway.Signup(ctx, clients.SignupRequest{
		Name:     name,
		Email:    email,
		Password: password,
	})
}

// Login authenticates against the backend and establishes the session. The
// user id comes from the response, falling back to the token's subject claim
// when the backend omits it.
func (s *DashboardService) Login(ctx context.Context, email, password string) (*models.Session, ViewMode, error) {
	resp, err := s.gateway.Login(ctx, clients.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, ViewUnauthenticated, err
	}

	userID := ""
	if resp.UserID != 0 {
		userID = strconv.FormatInt(resp.UserID, 10)
	} else {
		userID = SubjectFromToken(resp.Token)
	}

	session := &models.Session{
		Token:  resp.Token,
		UserID: userID,
		Email:  resp.Email,
		Name:   resp.Name,
	}
	mode, err := s.sessions.Establish(ctx, session)
	if err != nil {
		return nil, ViewUnauthenticated, err
	}

	s.log.Info("login successful",
		zap.String("user_id", userID),
		zap.String("mode", string(mode)),
	)
	return session, mode, nil
}

// Logout tears down the session and in-memory view data. The persisted cart
// for the user id stays in storage for the next login.
func (s *DashboardService) Logout(ctx context.Context) error {
	return s.sessions.Logout(ctx)
}

// Hydrate loads everything the current view needs: products, the user's
// order history, the pending-order queue for admins, and the persisted cart.
// Failures load as warnings, not hard errors, so one slow upstream does not
// blank the whole dashboard.
func (s *DashboardService) Hydrate(ctx context.Context) (*DashboardState, []string) {
	session := s.sessions.Current()
	state := &DashboardState{
		Mode:     s.sessions.Mode(),
		User:     session,
		Products: []models.Product{},
		Cart:     []models.CartLine{},
		Orders:   []models.Order{},
	}
	if session == nil {
		return state, nil
	}

	var warnings []string

	products, err := s.gateway.GetProducts(ctx)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("Failed to load products: %s", err))
	} else {
		state.Products = products
	}

	if uid, err := strconv.ParseInt(session.UserID, 10, 64); err == nil {
		orders, err := s.gateway.GetOrdersByUser(ctx, uid)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Unable to load order history: %s", err))
		} else {
			state.Orders = orders
		}
	}

	if s.sessions.IsAdmin() {
		orders, err := s.gateway.GetAllOrders(ctx)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Unable to load admin orders: %s", err))
		} else {
			state.AdminOrders = orders
		}
	}

	lines, err := s.carts.Get(ctx, session.UserID)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("Unable to load cart: %s", err))
	} else {
		state.Cart = lines
	}
	state.CartTotal = models.CartTotal(state.Cart)

	return state, warnings
}

// Checkout turns the cart into an order and clears the cart on success. When
// an idempotency key is supplied and a store backs it, a resubmitted key
// returns the order already created instead of placing a second one.
func (s *DashboardService) Checkout(ctx context.Context, idemKey string) (*models.Order, error) {
	session := s.sessions.Current()
	if session == nil {
		return nil, ErrUnauthenticated
	}

	if idemKey != "" && s.idem != nil {
		if orderID, err := s.idem.GetIdempotency(ctx, idemKey); err == nil && orderID != "" {
			if id, err := strconv.ParseInt(orderID, 10, 64); err == nil {
				return s.gateway.GetOrder(ctx, id)
			}
		}
	}

	lines, err := s.carts.Get(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	userID, err := strconv.ParseInt(session.UserID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q", session.UserID)
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.UnitPrice,
		})
	}

	order, err := s.gateway.CreateOrder(ctx, models.CreateOrderRequest{
		UserID:     userID,
		OrderItems: items,
	})
	if err != nil {
		return nil, err
	}

	if idemKey != "" && s.idem != nil {
		if err := s.idem.SetIdempotency(ctx, idemKey, strconv.FormatInt(order.ID, 10), idempotencyTTL); err != nil {
			s.log.Warn("failed to record idempotency key", zap.Error(err))
		}
	}

	if err := s.carts.Clear(ctx, session.UserID); err != nil {
		s.log.Warn("failed to clear cart after checkout",
			zap.String("user_id", session.UserID),
			zap.Error(err),
		)
	}

	s.log.Info("order placed",
		zap.Int64("order_id", order.ID),
		zap.String("status", order.Status),
	)
	return order, nil
}

// CreateProductWithInventory performs the admin two-step: create the product,
// then create its inventory record. The calls are independent; if the second
// fails the product still exists and the error is surfaced as-is.
func (s *DashboardService) CreateProductWithInventory(ctx context.Context, req clients.CreateProductRequest) (*models.Product, error) {
	product, err := s.gateway.CreateProduct(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.gateway.CreateInventory(ctx, product.ID, req.Stock); err != nil {
		return product, fmt.Errorf("product %d created but inventory failed: %w", product.ID, err)
	}
	return product, nil
}
