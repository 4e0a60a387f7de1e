// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/syncbridge/internal/admin"
	"github.com/taibuivan/syncbridge/internal/api"
	"github.com/taibuivan/syncbridge/internal/catalog"
	"github.com/taibuivan/syncbridge/internal/guardian"
	"github.com/taibuivan/syncbridge/internal/mission"
	"github.com/taibuivan/syncbridge/internal/order"
	"github.com/taibuivan/syncbridge/internal/platform/config"
	"github.com/taibuivan/syncbridge/internal/platform/middleware"
	"github.com/taibuivan/syncbridge/internal/platform/sqlite/sqlitetest"
	"github.com/taibuivan/syncbridge/internal/transmission"
)

const adminPassword = "bridge-keeper"

func newRouter(t *testing.T, checks ...api.HealthCheck) http.Handler {
	t.Helper()
	db := sqlitetest.Open(t)
	logger := sqlitetest.Logger()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cache := redis.NewClient(&redis.Options{Addr: miniredis.RunT(t).Addr()})
	t.Cleanup(func() { _ = cache.Close() })

	throttle := admin.NewRedisThrottle(cache)
	adminService := admin.NewService(admin.NewGate(adminPassword, ""), throttle, 5, time.Minute, logger)
	requireAdmin := middleware.RequireAdmin(adminService)

	guardians := guardian.NewService(guardian.NewSQLiteRepository(db), logger, 325)
	transmissions := transmission.NewService(transmission.NewSQLiteRepository(db), logger, 325)
	orders := order.NewService(order.NewSQLiteRepository(db), guardians, catalog.Default(), logger)
	start := time.Date(2026, time.February, 22, 0, 0, 0, 0, time.UTC)

	liveness, readiness := api.NewHealthHandlers(checks, logger)

	cfg := &config.Config{Environment: "development", ServerPort: "0"}
	return api.NewRouter(ctx, cfg, logger, api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Mission:      mission.NewHandler(mission.NewClock(start, 325)),
		Guardian:     guardian.NewHandler(guardians),
		Transmission: transmission.NewHandler(transmissions, requireAdmin),
		Catalog:      catalog.NewHandler(catalog.Default()),
		Order:        order.NewHandler(orders, requireAdmin),
		Admin:        admin.NewHandler(adminService),
	})
}

type call struct {
	method string
	target string
	body   string
	admin  bool
}

func (c call) send(router http.Handler) *httptest.ResponseRecorder {
	request := httptest.NewRequest(c.method, c.target, strings.NewReader(c.body))
	if c.admin {
		request.SetBasicAuth("root", adminPassword)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func TestRouter_PublicSurface(t *testing.T) {
	router := newRouter(t)

	tests := []struct {
		name   string
		call   call
		status int
		want   string
	}{
		{"welcome", call{method: http.MethodGet, target: "/api/"}, http.StatusOK, api.WelcomeMessage},
		{"health", call{method: http.MethodGet, target: "/health"}, http.StatusOK, `"ok"`},
		{"mission", call{method: http.MethodGet, target: "/api/mission/status"}, http.StatusOK, `"total_days":325`},
		{"count", call{method: http.MethodGet, target: "/api/guardians/count"}, http.StatusOK, `{"count":0}`},
		{"registry", call{method: http.MethodGet, target: "/api/guardians/registry"}, http.StatusOK, `[]`},
		{"merchandise", call{method: http.MethodGet, target: "/api/merchandise"}, http.StatusOK, `"Guardian Hoodie"`},
		{"product", call{method: http.MethodGet, target: "/api/merchandise/cap"}, http.StatusOK, `"price":30.00`},
		{"unknown_product", call{method: http.MethodGet, target: "/api/merchandise/mug"}, http.StatusNotFound, `"NOT_FOUND"`},
		{"transmissions", call{method: http.MethodGet, target: "/api/transmissions"}, http.StatusOK, `[]`},
		{"certificate_missing", call{method: http.MethodGet, target: "/api/certificate/SB-0001"}, http.StatusNotFound, `"NOT_FOUND"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := tt.call.send(router)
			assert.Equal(t, tt.status, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.want)
			assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
		})
	}
}

func TestRouter_GuardianToOrder(t *testing.T) {
	router := newRouter(t)

	// Registration is idempotent per email: 201 then 200 with the same Scroll ID.
	first := call{method: http.MethodPost, target: "/api/guardians/register", body: `{"email":"Ada@Example.com"}`}.send(router)
	require.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, "SB-0001", decode(t, first)["scroll_id"])

	again := call{method: http.MethodPost, target: "/api/guardians/register", body: `{"email":"ada@example.com "}`}.send(router)
	require.Equal(t, http.StatusOK, again.Code)
	assert.Equal(t, "SB-0001", decode(t, again)["scroll_id"])

	certificate := call{method: http.MethodGet, target: "/api/certificate/sb-0001"}.send(router)
	require.Equal(t, http.StatusOK, certificate.Code)
	assert.NotContains(t, certificate.Body.String(), "ada@example.com")

	submit := call{method: http.MethodPost, target: "/api/orders", body: `{
		"scroll_id": "SB-0001",
		"email": "ada@example.com",
		"items": [{"product_type":"hoodie","size":"M","quantity":2},{"product_type":"cap","quantity":1}],
		"shipping_name": "Ada", "shipping_address": "1 Bridge Way", "shipping_city": "Portland",
		"shipping_state": "OR", "shipping_zip": "97201", "shipping_country": "US"
	}`}.send(router)
	require.Equal(t, http.StatusCreated, submit.Code)
	id := decode(t, submit)["id"].(string)

	denied := call{method: http.MethodGet, target: "/api/orders"}.send(router)
	assert.Equal(t, http.StatusUnauthorized, denied.Code)
	assert.Contains(t, denied.Header().Get("WWW-Authenticate"), `realm="syncbridge-admin"`)

	status := call{method: http.MethodPatch, target: "/api/orders/" + id + "/status?status=processing", admin: true}.send(router)
	require.Equal(t, http.StatusOK, status.Code)
	assert.Contains(t, status.Body.String(), `"changed_by":"root"`)

	list := call{method: http.MethodGet, target: "/api/orders", admin: true}.send(router)
	require.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), `"total_amount":160.00`)
}

func TestRouter_AdminLogin(t *testing.T) {
	router := newRouter(t)

	ok := call{method: http.MethodPost, target: "/api/admin/login", admin: true}.send(router)
	assert.Equal(t, http.StatusOK, ok.Code)

	bad := call{method: http.MethodPost, target: "/api/admin/login", body: `{"username":"root","password":"guess"}`}.send(router)
	assert.Equal(t, http.StatusUnauthorized, bad.Code)
}

func TestRouter_AdminLockoutKeyedOnConnection(t *testing.T) {
	router := newRouter(t)

	codes := make([]int, 0, 7)
	for i := range 7 {
		request := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		request.SetBasicAuth("root", "guess")
		request.RemoteAddr = "198.51.100.30:50000"
		request.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		codes = append(codes, recorder.Code)
	}

	assert.Equal(t, []int{401, 401, 401, 401, 401, 429, 429}, codes)
}

func TestRouter_Readiness(t *testing.T) {
	healthy := api.HealthCheck{Name: "sqlite", Ping: func(context.Context) error { return nil }}
	broken := api.HealthCheck{Name: "redis", Ping: func(context.Context) error { return errors.New("connection refused") }}

	ready := call{method: http.MethodGet, target: "/ready"}.send(newRouter(t, healthy))
	assert.Equal(t, http.StatusOK, ready.Code)
	assert.Equal(t, "ready", decode(t, ready)["status"])

	degraded := call{method: http.MethodGet, target: "/ready"}.send(newRouter(t, healthy, broken))
	assert.Equal(t, http.StatusServiceUnavailable, degraded.Code)
	assert.Equal(t, "degraded", decode(t, degraded)["status"])
	assert.Contains(t, degraded.Body.String(), "connection refused")
}

func TestRouter_CORS(t *testing.T) {
	router := newRouter(t)

	request := httptest.NewRequest(http.MethodOptions, "/api/guardians/count", nil)
	request.Header.Set("Origin", "https://syncbridge.example")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "https://syncbridge.example", recorder.Header().Get("Access-Control-Allow-Origin"))
}
