package routes

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"moneroreq/internal/domain/request"
	"moneroreq/internal/handlers"
	"moneroreq/internal/middleware"
	"moneroreq/internal/models"
	"moneroreq/internal/services/paymentrequest"
)

type stubService struct {
	mock.Mock
}

func (s *stubService) NewRequest() *request.PaymentRequest { return &request.PaymentRequest{} }

func (s *stubService) Issue(ctx context.Context, in paymentrequest.IssueRequest) (*paymentrequest.IssueResult, error) {
	args := s.Called(in.MerchantID)
	return &paymentrequest.IssueResult{Code: "c"}, args.Error(0)
}

func (s *stubService) Decode(ctx context.Context, code string) (*request.PaymentRequest, error) {
	return &request.PaymentRequest{}, nil
}

func (s *stubService) Lookup(ctx context.Context, paymentID string) (*models.IssuedPaymentRequest, error) {
	return &models.IssuedPaymentRequest{PaymentID: paymentID}, nil
}

func (s *stubService) ListByWallet(ctx context.Context, wallet string, limit, offset int) (*paymentrequest.WalletPage, error) {
	return &paymentrequest.WalletPage{}, nil
}

func (s *stubService) Schedule(ctx context.Context, code string, count int) (*paymentrequest.ScheduleResult, error) {
	return &paymentrequest.ScheduleResult{}, nil
}

const secret = "routes-secret"

func newApp(svc paymentrequest.Service, auth bool) *fiber.App {
	app := fiber.New()
	deps := Dependencies{
		PaymentRequests: svc,
		Health:          handlers.NewHealthHandler("test", nil),
		Gatherer:        prometheus.NewRegistry(),
	}
	if auth {
		deps.Auth = middleware.NewAuthMiddleware(secret, nil)
	}
	SetupRoutes(app, deps)
	return app
}

func send(t *testing.T, app *fiber.App, method, target, body, bearer string) int {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestSetupRoutes_Open(t *testing.T) {
	svc := new(stubService)
	svc.On("Issue", "").Return(nil)
	app := newApp(svc, false)

	assert.Equal(t, fiber.StatusCreated, send(t, app, "POST", "/api/payment-requests", `{}`, ""))
	assert.Equal(t, fiber.StatusOK, send(t, app, "POST", "/api/payment-requests/decode", `{"code":"x"}`, ""))
	assert.Equal(t, fiber.StatusOK, send(t, app, "GET", "/api/payment-requests/decode/schedule?code=x", "", ""))
	assert.Equal(t, fiber.StatusOK, send(t, app, "GET", "/api/payment-requests/0aff662b3151e624", "", ""))
	assert.Equal(t, fiber.StatusOK, send(t, app, "GET", "/api/wallets/4abc/payment-requests", "", ""))
	assert.Equal(t, fiber.StatusOK, send(t, app, "GET", "/health", "", ""))
	svc.AssertExpectations(t)
}

func TestSetupRoutes_Protected(t *testing.T) {
	svc := new(stubService)
	svc.On("Issue", "merchant-1").Return(nil)
	app := newApp(svc, true)

	token, err := middleware.SignMerchantToken(secret, &models.MerchantClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		MerchantID:       "merchant-1",
		Role:             "merchant",
		Permissions:      models.GetDefaultPermissions("merchant"),
	})
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, send(t, app, "POST", "/api/payment-requests", `{}`, ""))
	assert.Equal(t, fiber.StatusUnauthorized, send(t, app, "GET", "/api/payment-requests/0aff662b3151e624", "", ""))
	assert.Equal(t, fiber.StatusOK, send(t, app, "POST", "/api/payment-requests/decode", `{"code":"x"}`, ""))

	assert.Equal(t, fiber.StatusCreated, send(t, app, "POST", "/api/payment-requests", `{}`, token))
	assert.Equal(t, fiber.StatusOK, send(t, app, "GET", "/api/wallets/4abc/payment-requests", "", token))
	svc.AssertExpectations(t)
}

func TestSetupRoutes_Metrics(t *testing.T) {
	app := fiber.New()
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "routes_test_total", Help: "test"}))
	SetupRoutes(app, Dependencies{PaymentRequests: new(stubService), Gatherer: reg})

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "routes_test_total 0")
}
