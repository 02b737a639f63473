package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sangkips/licorera-api/internal/application/service"
	"github.com/sangkips/licorera-api/internal/config"
	"github.com/sangkips/licorera-api/internal/infrastructure/cartstore"
	"github.com/sangkips/licorera-api/internal/infrastructure/database"
	"github.com/sangkips/licorera-api/internal/infrastructure/repository"
	"github.com/sangkips/licorera-api/internal/presentation/http/handler"
	"github.com/sangkips/licorera-api/internal/presentation/http/middleware"
	"github.com/sangkips/licorera-api/pkg/logger"
	"github.com/sangkips/licorera-api/pkg/metrics"
	"github.com/sangkips/licorera-api/pkg/printer"
	"github.com/sangkips/licorera-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testServer struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field string `json:"field"`
	} `json:"errors"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:routes_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	cfg := &config.Config{
		App:   config.AppConfig{Name: "licorera-api", Timezone: "UTC"},
		Admin: config.AdminConfig{Name: "Admin", Email: "admin@licorera.local", Password: "change-me-now"},
	}
	_, err = database.SeedAdmin(context.Background(), db, cfg.Admin)
	require.NoError(t, err)

	registry := prometheus.NewRegistry()
	carts := cartstore.NewMemory(time.Hour)
	jwtManager := utils.NewJWTManager("routes-test-secret", time.Hour, 24*time.Hour)
	log := logger.Nop()

	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)

	categories := service.NewCategoryService(categoryRepo, productRepo)
	products := service.NewProductService(productRepo, categoryRepo, categories)
	receipts := service.NewReceiptService(receiptRepo, productRepo, metrics.NewSalesMetrics(registry), log, cfg.Receipt, time.UTC)
	p, err := printer.New(printer.KindNone, "", "")
	require.NoError(t, err)

	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{RequestsPerSecond: 1000, BurstSize: 1000})
	t.Cleanup(limiter.Stop)

	router := Setup(&Handlers{
		Health:   handler.NewHealthHandler(cfg.App.Name, func(ctx context.Context) error { return database.Ping(ctx, db) }),
		Auth:     handler.NewAuthHandler(service.NewAuthService(repository.NewUserRepository(db), carts, jwtManager)),
		Category: handler.NewCategoryHandler(categories),
		Product:  handler.NewProductHandler(products),
		Cart:     handler.NewCartHandler(service.NewCartService(carts, productRepo, receipts)),
		Receipt:  handler.NewReceiptHandler(receipts),
		Report:   handler.NewReportHandler(service.NewReportService(receiptRepo, time.UTC, 5)),
		Printer:  handler.NewPrinterHandler(service.NewPrinterService(p, receipts, 32)),
	}, &Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: repository.NewIdempotencyRepository(db),
		Logger:          log,
		Registry:        registry,
		HTTPMetrics:     metrics.NewHTTPMetrics(registry),
		RateLimiter:     limiter,
	})

	return &testServer{t: t, router: router}
}

func (s *testServer) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func (s *testServer) login() {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "admin@licorera.local",
		"password": "change-me-now",
	})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())

	var data struct {
		AccessToken string `json:"access_token"`
	}
	decode(s.t, rec, &data)
	require.NotEmpty(s.t, data.AccessToken)
	s.token = data.AccessToken
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/v1/products", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "admin@licorera.local", "password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginBodyIsValidatedOnBind(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "not-an-email"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	env := decode(t, rec, nil)
	fields := make([]string, 0, len(env.Errors))
	for _, fe := range env.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"email", "password"}, fields)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	bad := httptest.NewRecorder()
	s.router.ServeHTTP(bad, req)
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"up"`)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	rec = s.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestSaleFlowOverHTTP(t *testing.T) {
	s := newTestServer(t)
	s.login()

	var product struct {
		ID           uuid.UUID `json:"id"`
		CategoryID   uuid.UUID `json:"category_id"`
		CategoryName string    `json:"category_name"`
	}
	rec := s.do(http.MethodPost, "/api/v1/products", map[string]any{
		"name": "Jack Daniel's", "price": "29.99", "quantity": 10, "category_name": "Whiskey",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	decode(t, rec, &product)
	assert.Equal(t, "Whiskey", product.CategoryName)

	rec = s.do(http.MethodDelete, "/api/v1/categories/"+product.CategoryID.String(), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/cart/checkout", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decode(t, rec, nil)
	assert.Len(t, env.Errors, 2)

	for i := 0; i < 2; i++ {
		rec = s.do(http.MethodPost, "/api/v1/cart/items", map[string]any{"product_id": product.ID})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	rec = s.do(http.MethodPut, "/api/v1/cart/customer", map[string]any{"customer_name": "Ana"})
	require.Equal(t, http.StatusOK, rec.Code)

	var cart struct {
		State     string `json:"state"`
		ItemCount int    `json:"item_count"`
		Total     string `json:"total"`
	}
	decode(t, s.do(http.MethodGet, "/api/v1/cart", nil), &cart)
	assert.Equal(t, "building", cart.State)
	assert.Equal(t, 2, cart.ItemCount)
	assert.Equal(t, "59.98", cart.Total)

	var receipt struct {
		ID    uuid.UUID `json:"id"`
		Total string    `json:"total"`
	}
	first := s.do(http.MethodPost, "/api/v1/cart/checkout", nil, "Idempotency-Key", "sale-1")
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	decode(t, first, &receipt)
	assert.Equal(t, "59.98", receipt.Total)

	replayed := s.do(http.MethodPost, "/api/v1/cart/checkout", nil, "Idempotency-Key", "sale-1")
	assert.Equal(t, http.StatusCreated, replayed.Code)
	assert.Equal(t, "true", replayed.Header().Get(middleware.IdempotencyReplayedHeader))
	assert.JSONEq(t, first.Body.String(), replayed.Body.String())

	var next struct {
		NextNumber int64 `json:"next_number"`
	}
	decode(t, s.do(http.MethodGet, "/api/v1/receipts/next-number", nil), &next)
	assert.Equal(t, int64(2), next.NextNumber)

	rec = s.do(http.MethodGet, "/api/v1/receipts/"+receipt.ID.String()+"/pdf", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "receipt-"+receipt.ID.String()+".pdf")

	var summary struct {
		TotalSales        string `json:"total_sales"`
		CategoryBreakdown map[string]struct {
			Quantity int `json:"quantity"`
		} `json:"category_breakdown"`
	}
	decode(t, s.do(http.MethodGet, "/api/v1/reports/sales", nil), &summary)
	assert.Equal(t, "59.98", summary.TotalSales)
	assert.Equal(t, 2, summary.CategoryBreakdown["Whiskey"].Quantity)

	rec = s.do(http.MethodGet, "/api/v1/reports/sales/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/vnd.openxmlformats"))

	rec = s.do(http.MethodGet, "/api/v1/products/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
