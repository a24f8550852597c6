package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"

	adaptershttp "github.com/hydrosur/fincore/internal/adapter/http"
	"github.com/hydrosur/fincore/internal/adapter/http/handler"
	apimiddleware "github.com/hydrosur/fincore/internal/adapter/http/middleware"
	postgresrepo "github.com/hydrosur/fincore/internal/adapter/repository/postgres"
	redisrepo "github.com/hydrosur/fincore/internal/adapter/repository/redis"
	"github.com/hydrosur/fincore/internal/domain"
	"github.com/hydrosur/fincore/internal/infrastructure/logger"
	infraredis "github.com/hydrosur/fincore/internal/infrastructure/redis"
	"github.com/hydrosur/fincore/internal/usecase"
	"github.com/hydrosur/fincore/tests/testutil"
)

type testEnv struct {
	db     *testutil.TestDB
	router http.Handler
	redis  *redis.Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	t.Cleanup(testDB.Cleanup)
	testDB.TruncateAll(ctx)

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { _ = redisClient.Close() })

	pool := testDB.Pool
	log := logger.New(logger.Config{Level: "error", Format: "json"})

	txManager := postgresrepo.NewTxManager(pool)
	sessionRepo := postgresrepo.NewCashSessionRepository(pool)
	movementRepo := postgresrepo.NewCashMovementRepository(pool)
	creditRepo := postgresrepo.NewCreditAccountRepository(pool)
	paymentRepo := postgresrepo.NewCreditPaymentRepository(pool)
	voucherRepo := postgresrepo.NewVoucherRepository(pool)
	auditRepo := postgresrepo.NewAuditRepository(pool)
	clientRepo := postgresrepo.NewClientRepository(pool)
	saleRepo := postgresrepo.NewSaleRepository(pool)
	orderRepo := postgresrepo.NewOrderRepository(pool)
	productRepo := postgresrepo.NewProductRepository(pool)
	idGen := postgresrepo.NewULIDGenerator()
	cache := redisrepo.NewCache(redisClient)

	sessionUC := usecase.NewCashSessionUseCase(txManager, sessionRepo, movementRepo, saleRepo, idGen, nil)
	creditUC := usecase.NewCreditUseCase(txManager, creditRepo, paymentRepo, clientRepo, saleRepo, orderRepo, idGen, nil)
	voucherUC := usecase.NewVoucherUseCase(txManager, voucherRepo, auditRepo, clientRepo, productRepo, idGen, postgresrepo.NewRetrier(log, nil), nil)
	statsUC := usecase.NewStatsUseCase(voucherRepo, clientRepo, cache, log)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		CashSessionHandler: handler.NewCashSessionHandler(sessionUC),
		CreditHandler:      handler.NewCreditHandler(creditUC),
		VoucherHandler:     handler.NewVoucherHandler(voucherUC),
		StatsHandler:       handler.NewStatsHandler(statsUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		Logger:             log,
	})

	return &testEnv{db: testDB, router: router, redis: redisClient}
}

// do performs a request as the given actor and decodes the JSON response
// into out when it is non-nil.
func (e *testEnv) do(t *testing.T, method, path string, actor domain.Actor, payload, out any) int {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.ActorIDHeader, actor.ID)
	req.Header.Set(apimiddleware.ActorRoleHeader, string(actor.Role))

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	if out != nil && rec.Code < http.StatusBadRequest {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("failed to decode response %s: %v", rec.Body.String(), err)
		}
	}

	return rec.Code
}
