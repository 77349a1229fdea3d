package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/gordopods/storefront/internal/events"
	"github.com/gordopods/storefront/internal/money"
	"github.com/gordopods/storefront/internal/order"
	"github.com/gordopods/storefront/internal/repo"
	"github.com/gordopods/storefront/internal/service"
	"github.com/gordopods/storefront/internal/store"
	"github.com/gordopods/storefront/internal/transport"
	"github.com/gordopods/storefront/pkg/db"
	"github.com/gordopods/storefront/pkg/middleware/csrf"
)

const (
	testSession  = "browser-session-1"
	testAdmin    = "admin"
	testPassword = "hunter22"
)

type testEnv struct {
	T    *testing.T
	E    *echo.Echo
	Repo *repo.GormRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb, err := db.OpenSQLite("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	require.NoError(t, repo.Migrate(context.Background(), gdb))

	r := repo.New(gdb)
	st := store.NewGormStore(gdb, "local")
	secret := []byte("http-test-secret")

	catalogSvc := &service.CatalogService{Repo: r}
	carts := &service.CartService{Store: st, Catalog: r}
	settings := &service.SettingsService{Store: st}
	checkout := &service.CheckoutService{
		Carts:         carts,
		Settings:      settings,
		Orders:        r,
		Assembler:     order.NewAssembler(),
		Publisher:     events.Nop{},
		EventsTopic:   "order_events",
		StoreWhatsApp: "11999990000",
		Locale:        money.PtBR,
	}
	auth := &service.AuthService{Repo: r, JWTSecret: secret, AccessTTL: time.Hour}
	require.NoError(t, auth.EnsureAdmin(context.Background(), testAdmin, testPassword))

	e := echo.New()
	Register(e, &Deps{
		Catalog:   &CatalogHTTP{Svc: catalogSvc},
		Cart:      &CartHTTP{Svc: carts, Locale: money.PtBR},
		Checkout:  &CheckoutHTTP{Svc: checkout},
		Orders:    &OrderHTTP{Svc: &service.OrderService{Repo: r, Publisher: events.Nop{}, EventsTopic: "order_events"}},
		Settings:  &SettingsHTTP{Svc: settings},
		Auth:      &AuthHTTP{Svc: auth},
		JWTSecret: secret,
		CSRF:      csrf.DefaultConfig(),
		Ready:     r.Ping,
	})
	return &testEnv{T: t, E: e, Repo: r}
}

func (env *testEnv) doJSONRequest(method, path string, body any, header http.Header, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	env.T.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

// adminSession logs in and returns what an admin browser would send back.
type adminSession struct {
	header  http.Header
	cookies []*http.Cookie
}

func (env *testEnv) login(t *testing.T) adminSession {
	t.Helper()
	rec := env.doJSONRequest(http.MethodPost, "/admin/login", transport.LoginRequest{Username: testAdmin, Password: testPassword}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp transport.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.CSRFToken)

	h := http.Header{}
	h.Set("X-CSRF-Token", resp.CSRFToken)
	h.Set("Origin", "http://example.com")
	return adminSession{header: h, cookies: rec.Result().Cookies()}
}

func (env *testEnv) admin(s adminSession, method, path string, body any) *httptest.ResponseRecorder {
	return env.doJSONRequest(method, path, body, s.header, s.cookies...)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func ptr[T any](v T) *T { return &v }
