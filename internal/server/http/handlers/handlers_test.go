package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/anrodrig/comanda/internal/domain/errors"
	"github.com/anrodrig/comanda/internal/domain/model"
	"github.com/anrodrig/comanda/internal/server/http/dto"
	"github.com/anrodrig/comanda/internal/server/http/middleware"
	testhelpers "github.com/anrodrig/comanda/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const orderUUID = "3f1b8a80-6f6a-4e65-9c3f-0b1a5f6d7e8c"

func performRequest(t *testing.T, method, route, target string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func asUser(id int64) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, id)
	}
}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != 0 {
		t.Fatalf("expected 0 when not set, got %d", got)
	}

	c.Set(middleware.UserIDContextKey, int64(42))
	if got := CurrentUserID(c); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	body, _ := json.Marshal(dto.RegisterRequest{Email: "user@example.com", Password: "pass", Name: "Ada"})
	resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(testhelpers.AuthFacadeStub{}).Register, nil, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Header().Get("Authorization") == "" {
		t.Fatal("expected auth header to be set")
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{
			name:   "malformed body",
			body:   []byte("{"),
			status: http.StatusBadRequest,
		},
		{
			name: "duplicate",
			facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string, string, string) (*model.User, string, error) {
				return nil, "", domainErrors.ErrAlreadyExists
			}},
			body:   mustJSON(t, dto.RegisterRequest{Email: "user@example.com", Password: "pass"}),
			status: http.StatusConflict,
		},
		{
			name: "invalid credentials",
			facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string, string, string) (*model.User, string, error) {
				return nil, "", domainErrors.ErrInvalidCredentials
			}},
			body:   mustJSON(t, dto.RegisterRequest{Email: "", Password: ""}),
			status: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(tc.facade).Register, nil, tc.body)
			if resp.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerLoginSetsCookie(t *testing.T) {
	body, _ := json.Marshal(dto.LoginRequest{Email: "user@example.com", Password: "pass"})
	facade := testhelpers.AuthFacadeStub{AuthenticateFn: func(ctx context.Context, email, password string) (*model.User, string, error) {
		return &model.User{ID: 1, Email: email}, "session-token", nil
	}}
	resp := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(facade).Login, nil, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	result := resp.Result()
	t.Cleanup(func() { _ = result.Body.Close() })
	found := false
	for _, cookie := range result.Cookies() {
		if cookie.Name == "comanda_token" && cookie.Value == "session-token" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected auth cookie named comanda_token")
	}
}

func TestAuthHandlerLoginRejectsBadCredentials(t *testing.T) {
	facade := testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (*model.User, string, error) {
		return nil, "", domainErrors.ErrInvalidCredentials
	}}
	body := mustJSON(t, dto.LoginRequest{Email: "user@example.com", Password: "wrong"})
	resp := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(facade).Login, nil, body)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestOrderHandlerCreate(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{SubmitFn: func(ctx context.Context, sub model.OrderSubmission) (*model.Order, error) {
		if sub.UserID != 7 {
			t.Fatalf("expected submitter 7, got %d", sub.UserID)
		}
		return &model.Order{
			PublicID:      orderUUID,
			Local:         sub.Local,
			DisplayNumber: 42,
			Total:         16.00,
			Status:        model.OrderStatusPending,
		}, nil
	}}
	body := mustJSON(t, dto.CreateOrderRequest{
		Local:       "centro",
		ScheduledAt: time.Now().Add(time.Hour),
		Items:       []dto.OrderItemRequest{{MenuItemID: 1, Quantity: 2}, {MenuItemID: 2, Quantity: 3}},
	})

	resp := performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(facade).Create, asUser(7), body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}

	var out dto.CreateOrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if out.OrderID != orderUUID || out.DisplayNumber != 42 || out.Total != 16.00 || out.Status != "PENDING" {
		t.Fatalf("unexpected response %+v", out)
	}
}

func TestOrderHandlerCreateFailures(t *testing.T) {
	valid := mustJSON(t, dto.CreateOrderRequest{
		Local:       "centro",
		ScheduledAt: time.Now(),
		Items:       []dto.OrderItemRequest{{MenuItemID: 1, Quantity: 1}},
	})

	tests := []struct {
		name   string
		err    error
		body   []byte
		status int
	}{
		{name: "malformed body", body: []byte("{"), status: http.StatusBadRequest},
		{name: "missing local", body: mustJSON(t, dto.CreateOrderRequest{ScheduledAt: time.Now()}), status: http.StatusBadRequest},
		{name: "blocked submitter", err: domainErrors.ErrSubmitterBlocked, body: valid, status: http.StatusForbidden},
		{name: "unknown item", err: domainErrors.ErrUnknownMenuItem, body: valid, status: http.StatusUnprocessableEntity},
		{name: "bad quantity", err: domainErrors.ErrInvalidQuantity, body: valid, status: http.StatusUnprocessableEntity},
		{name: "empty order", err: domainErrors.ErrEmptyOrder, body: valid, status: http.StatusUnprocessableEntity},
		{name: "counter unavailable", err: domainErrors.ErrCounterUnavailable, body: valid, status: http.StatusInternalServerError},
		{name: "creation failed", err: domainErrors.ErrOrderCreationFailed, body: valid, status: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			facade := testhelpers.OrderFacadeStub{SubmitFn: func(context.Context, model.OrderSubmission) (*model.Order, error) {
				return nil, tc.err
			}}
			resp := performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(facade).Create, asUser(7), tc.body)
			if resp.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, resp.Code)
			}
		})
	}
}

func TestOrderHandlerGet(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{OrderFn: func(ctx context.Context, publicID string) (*model.Order, error) {
		return &model.Order{PublicID: publicID, DisplayNumber: 7, Status: model.OrderStatusConfirmed}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/orders/:id", "/orders/"+orderUUID, NewOrderHandler(facade).Get, asUser(7), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var out dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if out.DisplayNumber != 7 || out.Status != "CONFIRMED" {
		t.Fatalf("unexpected response %+v", out)
	}
}

func TestOrderHandlerGetRejectsBadID(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/orders/:id", "/orders/not-a-uuid", NewOrderHandler(testhelpers.OrderFacadeStub{}).Get, asUser(7), nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestOrderHandlerGetNotFound(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{OrderFn: func(context.Context, string) (*model.Order, error) {
		return nil, domainErrors.ErrNotFound
	}}
	resp := performRequest(t, http.MethodGet, "/orders/:id", "/orders/"+orderUUID, NewOrderHandler(facade).Get, asUser(7), nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestOrderHandlerChangeStatus(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{ChangeStatusFn: func(ctx context.Context, actorID int64, publicID string, status model.OrderStatus) (*model.Order, error) {
		if status != model.OrderStatusConfirmed {
			t.Fatalf("unexpected status %s", status)
		}
		return &model.Order{PublicID: publicID, Status: status}, nil
	}}
	body := mustJSON(t, dto.ChangeOrderStatusRequest{Status: "CONFIRMED"})
	resp := performRequest(t, http.MethodPut, "/orders/:id/status", "/orders/"+orderUUID+"/status", NewOrderHandler(facade).ChangeStatus, asUser(1), body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestOrderHandlerChangeStatusConflict(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{ChangeStatusFn: func(context.Context, int64, string, model.OrderStatus) (*model.Order, error) {
		return nil, domainErrors.ErrInvalidStatusChange
	}}
	body := mustJSON(t, dto.ChangeOrderStatusRequest{Status: "PENDING"})
	resp := performRequest(t, http.MethodPut, "/orders/:id/status", "/orders/"+orderUUID+"/status", NewOrderHandler(facade).ChangeStatus, asUser(1), body)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}
}

func TestMenuHandlerList(t *testing.T) {
	facade := testhelpers.MenuFacadeStub{MenuFn: func(context.Context) ([]model.MenuCategory, error) {
		return []model.MenuCategory{{ID: 1, Name: "coffee", Items: []model.MenuItem{{ID: 1, Name: "Espresso", Price: 2.5, InStock: true}}}}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/menu", "/menu", NewMenuHandler(facade).List, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var out []dto.MenuCategoryResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(out) != 1 || len(out[0].Items) != 1 || out[0].Items[0].Name != "Espresso" {
		t.Fatalf("unexpected response %+v", out)
	}
}

func TestMenuHandlerCreateForbiddenForNonAdmins(t *testing.T) {
	facade := testhelpers.MenuFacadeStub{CreateFn: func(context.Context, int64, model.MenuItem) (*model.MenuItem, error) {
		return nil, domainErrors.ErrNotAdmin
	}}
	body := mustJSON(t, dto.MenuItemRequest{Name: "Espresso", Price: 2.5})
	resp := performRequest(t, http.MethodPost, "/menu", "/menu", NewMenuHandler(facade).Create, asUser(7), body)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}
}

func TestWordHandlerCreate(t *testing.T) {
	tests := []struct {
		name    string
		created bool
		status  int
	}{
		{name: "fresh word", created: true, status: http.StatusCreated},
		{name: "known word", created: false, status: http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			facade := testhelpers.VocabularyFacadeStub{CreateFn: func(ctx context.Context, word string) (*model.Word, bool, error) {
				return &model.Word{ID: 1, Word: word}, tc.created, nil
			}}
			body := mustJSON(t, dto.CreateWordRequest{Word: "ubiquitous"})
			resp := performRequest(t, http.MethodPost, "/words", "/words", NewWordHandler(facade).Create, asUser(1), body)
			if resp.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, resp.Code)
			}
		})
	}
}

func TestWordHandlerListRejectsUnknownSort(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/words", "/words?sort=sideways", NewWordHandler(testhelpers.VocabularyFacadeStub{}).List, asUser(1), nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestWordHandlerGetUnknownWord(t *testing.T) {
	facade := testhelpers.VocabularyFacadeStub{WordFn: func(context.Context, string) (*model.Word, error) {
		return nil, domainErrors.ErrNotFound
	}}
	resp := performRequest(t, http.MethodGet, "/words/:word", "/words/ghost", NewWordHandler(facade).Get, asUser(1), nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestReportHandlerDailyBalance(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/reports/balance", "/reports/balance", NewReportHandler(testhelpers.ReportFacadeStub{}).DailyBalance, asUser(1), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var out []dto.DailyBalanceResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(out) != 1 || out[0].Quantity != 2 {
		t.Fatalf("unexpected response %+v", out)
	}
}

func TestReportHandlerDailyBalanceForbidden(t *testing.T) {
	facade := testhelpers.ReportFacadeStub{DailyBalanceFn: func(context.Context, int64) ([]model.DailyBalance, error) {
		return nil, domainErrors.ErrNotAdmin
	}}
	resp := performRequest(t, http.MethodGet, "/reports/balance", "/reports/balance", NewReportHandler(facade).DailyBalance, asUser(7), nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	body, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return body
}
