package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"storefront-dashboard/clients"
	"storefront-dashboard/controllers"
	"storefront-dashboard/models"
	"storefront-dashboard/repository"
	"storefront-dashboard/routes"
	"storefront-dashboard/services"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req clients.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret1" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message": "Invalid email or password"}`))
			return
		}
		userID := int64(42)
		if req.Email == "admin@ecommerce.com" {
			userID = 1
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"token": "tok", "userId": userID, "email": req.Email, "name": "Test User",
		})
	})

	mux.HandleFunc("GET /products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.Product{ID: 7, Name: "Keyboard", Price: 19.99, Stock: 10})
	})

	mux.HandleFunc("GET /products", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]models.Product{{ID: 7, Name: "Keyboard", Price: 19.99}})
	})

	mux.HandleFunc("POST /orders", func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateOrderRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		var total float64
		for _, item := range req.OrderItems {
			total += item.Price * float64(item.Quantity)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.Order{
			ID: 101, UserID: req.UserID, Status: models.OrderStatusAwaitingApproval, TotalAmount: total,
		})
	})

	mux.HandleFunc("GET /orders/user/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := newBackend(t)
	dataDir := t.TempDir()

	log := zap.NewNop()
	policy := services.NewAdminAllowList([]string{"admin@ecommerce.com"})
	sessions := services.NewSessionService(repository.NewFileSessionRepository(dataDir), policy, log)
	carts := services.NewCartService(repository.NewFileCartRepository(dataDir), log)
	gateway := clients.NewGatewayClient(backend.URL, 5*time.Second, sessions.Token)
	dashboard := services.NewDashboardService(gateway, sessions, carts, nil, log)
	controller := controllers.NewDashboardController(dashboard, sessions, carts, gateway, log)

	r := gin.New()
	routes.RegisterRoutes(r, controller, sessions)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, email string) {
	t.Helper()
	w := do(r, http.MethodPost, "/auth/login", fmt.Sprintf(`{"email":%q,"password":"secret1"}`, email))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutes_RequireSession(t *testing.T) {
	r := newRouter(t)

	w := do(r, http.MethodGet, "/cart", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodPost, "/cart/checkout", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoutes_AdminGate(t *testing.T) {
	r := newRouter(t)
	login(t, r, "jane@x.com")

	w := do(r, http.MethodPost, "/admin/products", `{"name":"Desk","price":120,"stock":4}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "admin access required")

	w = do(r, http.MethodPost, "/view/toggle", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLogin_BadCredentialsSurfacesNotification(t *testing.T) {
	r := newRouter(t)

	w := do(r, http.MethodPost, "/auth/login", `{"email":"jane@x.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Login failed: Invalid email or password")
}

func TestCartFlowOverHTTP(t *testing.T) {
	r := newRouter(t)
	login(t, r, "jane@x.com")

	w := do(r, http.MethodPost, "/cart/items", `{"product_id":7,"quantity":2}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Lines []models.CartLine `json:"lines"`
		Total float64           `json:"total"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Lines, 1)
	assert.InDelta(t, 39.98, resp.Total, 1e-9)

	// Invalid quantity on add is rejected.
	w = do(r, http.MethodPost, "/cart/items", `{"product_id":7,"quantity":-1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "quantity must be at least 1")

	// Invalid quantity on update is silently ignored.
	w = do(r, http.MethodPut, "/cart/items/7", `{"quantity":0}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Lines[0].Quantity)

	w = do(r, http.MethodPost, "/cart/checkout", "")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Order placed. Order ID: 101.")
	assert.Contains(t, w.Body.String(), models.OrderStatusAwaitingApproval)

	w = do(r, http.MethodGet, "/cart", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Lines)
}

func TestViewToggle_AdminFlow(t *testing.T) {
	r := newRouter(t)
	login(t, r, "admin@ecommerce.com")

	w := do(r, http.MethodPost, "/view/toggle", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), string(services.ViewShopper))

	w = do(r, http.MethodPost, "/view/toggle", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), string(services.ViewAdmin))
}

func TestState_UnauthenticatedMode(t *testing.T) {
	r := newRouter(t)

	w := do(r, http.MethodGet, "/state", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), string(services.ViewUnauthenticated))
}
