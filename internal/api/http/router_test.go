package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/security"
	"genset-rental-backend/internal/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type MockPOService struct {
	mock.Mock
}

func (m *MockPOService) CreatePO(ctx context.Context, input domain.CreatePOInput) (*domain.PurchaseOrder, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseOrder), args.Error(1)
}
func (m *MockPOService) GetPO(ctx context.Context, id int64) (*domain.PODetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PODetail), args.Error(1)
}
func (m *MockPOService) ListPOs(ctx context.Context, filter domain.POFilter) ([]domain.PurchaseOrder, domain.Pagination, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.PurchaseOrder), args.Get(1).(domain.Pagination), args.Error(2)
}
func (m *MockPOService) UpdateStatus(ctx context.Context, id int64, status domain.POStatus) (*domain.PurchaseOrder, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseOrder), args.Error(1)
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) ListProducts(ctx context.Context, onlyActive bool) ([]domain.Product, error) {
	args := m.Called(ctx, onlyActive)
	return args.Get(0).([]domain.Product), args.Error(1)
}
func (m *MockProductService) CreateProduct(ctx context.Context, input domain.ProductInput, image *domain.Upload) (*domain.Product, error) {
	args := m.Called(ctx, input, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductService) UpdateProduct(ctx context.Context, id int64, input domain.ProductInput, image *domain.Upload) (*domain.Product, error) {
	args := m.Called(ctx, id, input, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductService) DeleteProduct(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(ctx context.Context) error { return p.err }

type testServer struct {
	handler  http.Handler
	tokens   security.TokenManager
	po       *MockPOService
	products *MockProductService
	store    *storage.LocalStorage
}

func newTestServer(t *testing.T, pingErr error) *testServer {
	store, err := storage.NewLocalStorage("/uploads", t.TempDir())
	require.NoError(t, err)

	ts := &testServer{
		tokens:   security.NewTokenManager(testSecret, "genset-test", time.Hour),
		po:       new(MockPOService),
		products: new(MockProductService),
		store:    store,
	}
	h := Handlers{
		Auth:      NewAuthHandler(nil),
		Customers: NewCustomerHandler(nil),
		Items:     NewItemHandler(nil),
		POs:       NewPOHandler(ts.po),
		Invoices:  NewInvoiceHandler(nil),
		Finance:   NewFinanceHandler(nil, nil),
		Products:  NewProductHandler(ts.products, 1<<20),
		Settings:  NewSettingHandler(nil, 1<<20),
		Contacts:  NewContactHandler(nil),
		Uploads:   NewImageUploadHandler(store),
		Health:    NewHealthHandler(stubPinger{err: pingErr}),
	}
	ts.handler = NewRouter(h, ts.tokens, NewMetrics(prometheus.NewRegistry()), nil)
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body any, authorized bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authorized {
		token, err := ts.tokens.GenerateAccessToken(&domain.User{ID: 1, Username: "admin", Role: domain.UserRoleAdmin})
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestRouter_Authentication(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, http.MethodGet, "/api/po/1", nil, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", decodeBody(t, rec)["code"])

	req := httptest.NewRequest(http.MethodGet, "/api/po/1", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodGet, "/health", nil, false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestRouter_Health_Unavailable(t *testing.T) {
	ts := newTestServer(t, errors.New("connection refused"))

	rec := ts.do(t, http.MethodGet, "/health", nil, false)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestPOHandler_Create(t *testing.T) {
	ts := newTestServer(t, nil)

	ts.po.On("CreatePO", mock.Anything, mock.MatchedBy(func(in domain.CreatePOInput) bool {
		return in.CustomerID == 1 && len(in.Items) == 1 && in.Items[0].DailyRate.Equal(decimal.NewFromInt(100000))
	})).Return(&domain.PurchaseOrder{ID: 5, PONumber: "PO0007", TotalCost: decimal.NewFromInt(600000)}, nil).Once()

	body := map[string]any{
		"customer_id":  1,
		"rental_start": "2024-01-01",
		"rental_end":   "2024-01-03",
		"items":        []map[string]any{{"item_id": 10, "quantity": 2, "daily_rate": "100000"}},
	}
	rec := ts.do(t, http.MethodPost, "/api/po", body, true)
	require.Equal(t, http.StatusCreated, rec.Code)

	out := decodeBody(t, rec)
	assert.Equal(t, "PO0007", out["po_number"])
	assert.Equal(t, "600000", out["total_cost"])
	assert.Equal(t, float64(5), out["id"])
	ts.po.AssertExpectations(t)
}

func TestPOHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", domain.NewFieldValidationError("Request validation failed", []domain.FieldError{{Field: "items", Message: "This field is required"}}), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"not found", domain.NewNotFoundError("purchase order", 9), http.StatusNotFound, "NOT_FOUND"},
		{"transition", domain.NewInvalidTransitionError(domain.POStatusReturned, domain.POStatusActive), http.StatusConflict, "INVALID_TRANSITION"},
		{"conflict", domain.NewConflictError("item is not available", false), http.StatusConflict, "CONFLICT"},
		{"storage", domain.NewStorageError("update status", errors.New("pq: connection reset")), http.StatusInternalServerError, "STORAGE_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t, nil)
			ts.po.On("UpdateStatus", mock.Anything, int64(9), domain.POStatusActive).Return(nil, tc.err).Once()

			rec := ts.do(t, http.MethodPut, "/api/po/9/status", map[string]string{"status": "active"}, true)
			assert.Equal(t, tc.status, rec.Code)
			out := decodeBody(t, rec)
			assert.Equal(t, tc.code, out["code"])
			if tc.status == http.StatusInternalServerError {
				assert.NotContains(t, rec.Body.String(), "connection reset")
			}
			if tc.name == "validation" {
				assert.Len(t, out["details"], 1)
			}
		})
	}
}

func TestPOHandler_UpdateStatus(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.po.On("UpdateStatus", mock.Anything, int64(3), domain.POStatusReturned).Return(&domain.PurchaseOrder{ID: 3, Status: domain.POStatusReturned}, nil).Once()

	rec := ts.do(t, http.MethodPut, "/api/po/3/status", map[string]string{"status": "returned"}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "returned", decodeBody(t, rec)["status"])
}

func TestPOHandler_List(t *testing.T) {
	ts := newTestServer(t, nil)
	filter := domain.POFilter{Search: "budi", Status: domain.POStatusActive, Page: domain.NewPage(2, 5)}
	ts.po.On("ListPOs", mock.Anything, filter).Return(
		[]domain.PurchaseOrder{{ID: 6}},
		domain.Pagination{Page: 2, Limit: 5, Total: 6, TotalPages: 2},
		nil,
	).Once()

	rec := ts.do(t, http.MethodGet, "/api/po?search=budi&status=active&page=2&limit=5", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	out := decodeBody(t, rec)
	assert.Len(t, out["data"], 1)
	assert.Equal(t, float64(2), out["pagination"].(map[string]any)["totalPages"])
}

func TestPOHandler_BadJSON(t *testing.T) {
	ts := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/po", strings.NewReader("{not json"))
	token, _ := ts.tokens.GenerateAccessToken(&domain.User{ID: 1})
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	ts.po.AssertNotCalled(t, "CreatePO", mock.Anything, mock.Anything)
}

func TestProductHandler_CreateMultipart(t *testing.T) {
	ts := newTestServer(t, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Genset 10kVA"))
	require.NoError(t, mw.WriteField("daily_rate", "250000"))
	require.NoError(t, mw.WriteField("display_order", "2"))
	fw, err := mw.CreateFormFile("image", "genset.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	ts.products.On("CreateProduct", mock.Anything, mock.MatchedBy(func(in domain.ProductInput) bool {
		return in.Name == "Genset 10kVA" && in.DailyRate.Equal(decimal.NewFromInt(250000)) && in.DisplayOrder == 2
	}), mock.MatchedBy(func(u *domain.Upload) bool {
		return u != nil && u.Filename == "genset.png" && string(u.Body) == "png-bytes"
	})).Return(&domain.Product{ID: 1, Name: "Genset 10kVA"}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/products", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	token, _ := ts.tokens.GenerateAccessToken(&domain.User{ID: 1})
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	ts.products.AssertExpectations(t)
}

func TestProductHandler_PublicListIsOpen(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.products.On("ListProducts", mock.Anything, true).Return([]domain.Product{{ID: 1}}, nil).Once()

	rec := ts.do(t, http.MethodGet, "/api/public/products", nil, false)
	assert.Equal(t, http.StatusOK, rec.Code)
	ts.products.AssertExpectations(t)
}

func TestImageUploadHandler_HandleDownload(t *testing.T) {
	ts := newTestServer(t, nil)
	ctx := context.Background()
	require.NoError(t, ts.store.SaveFile(ctx, "signatures/abc.png", strings.NewReader("png-bytes")))

	rec := ts.do(t, http.MethodGet, "/uploads/signatures/abc.png", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "png-bytes", rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/uploads/signatures/missing.png", nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Metrics(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.do(t, http.MethodGet, "/health", nil, false)

	rec := ts.do(t, http.MethodGet, "/metrics", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `genset_http_requests_total{method="GET",route="health",status="200"} 1`)
}
