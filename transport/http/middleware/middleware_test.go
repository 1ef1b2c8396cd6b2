package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"

	"github.com/ymjo140/rendezvous-merchant-sub000/config"
	"github.com/ymjo140/rendezvous-merchant-sub000/infras/jwt"
	jwtMocks "github.com/ymjo140/rendezvous-merchant-sub000/infras/jwt/mocks"
	"github.com/ymjo140/rendezvous-merchant-sub000/infras/metrics"
	"github.com/ymjo140/rendezvous-merchant-sub000/infras/otel"
	otelMocks "github.com/ymjo140/rendezvous-merchant-sub000/infras/otel/mocks"
	"github.com/ymjo140/rendezvous-merchant-sub000/permissions"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/cache"
	cacheMocks "github.com/ymjo140/rendezvous-merchant-sub000/shared/cache/mocks"
	"github.com/ymjo140/rendezvous-merchant-sub000/transport/http/middleware"
)

const permissionsDoc = `{
  "endpoints": [
    { "path": "/v1/stores/{storeID}/availability", "method": "GET", "skip": true },
    { "path": "/v1/seating-units/{id}", "method": "DELETE", "permissions": ["owner"] }
  ]
}`

func newRouter(t *testing.T, validator *jwtMocks.MockJWT, cfg *config.Config) http.Handler {
	t.Helper()

	perms, err := permissions.Load([]byte(permissionsDoc))
	require.NoError(t, err)

	authRole := middleware.NewAuthRoleMiddleware(validator, otelMocks.NewOtel(), perms, cfg)

	echoStore := func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(shared.StoreID(r.Context())))
	}

	router := chi.NewRouter()
	router.Route("/v1", func(r chi.Router) {
		r.Use(authRole.Auth, authRole.RBAC)
		r.Get("/stores/{storeID}/availability", echoStore)
		r.Get("/reservations/{id}", echoStore)
		r.Delete("/seating-units/{id}", echoStore)
	})
	router.With(authRole.APIKey).Get("/metrics", echoStore)

	return router
}

func TestAuthRole(t *testing.T) {
	owner := &jwt.Claims{UserID: "u-1", StoreID: "store-1", Role: "owner", Type: jwt.AccessToken}
	staff := &jwt.Claims{UserID: "u-2", StoreID: "store-1", Role: "staff", Type: jwt.AccessToken}

	tests := []struct {
		name       string
		method     string
		path       string
		header     string
		claims     *jwt.Claims
		tokenErr   error
		wantStatus int
		wantBody   string
	}{
		{name: "public availability needs no token", method: http.MethodGet, path: "/v1/stores/s/availability", wantStatus: http.StatusOK},
		{name: "missing token", method: http.MethodGet, path: "/v1/reservations/r-1", wantStatus: http.StatusUnauthorized},
		{
			name: "expired token", method: http.MethodGet, path: "/v1/reservations/r-1", header: "Bearer old",
			tokenErr: jwt.ErrExpiredToken, wantStatus: http.StatusUnauthorized,
		},
		{
			name: "token without store", method: http.MethodGet, path: "/v1/reservations/r-1", header: "Bearer t",
			claims: &jwt.Claims{UserID: "u-3", Type: jwt.AccessToken}, wantStatus: http.StatusUnauthorized,
		},
		{
			name: "staff reads reservations", method: http.MethodGet, path: "/v1/reservations/r-1", header: "Bearer t",
			claims: staff, wantStatus: http.StatusOK, wantBody: "store-1",
		},
		{
			name: "staff cannot delete seating", method: http.MethodDelete, path: "/v1/seating-units/u-1", header: "Bearer t",
			claims: staff, wantStatus: http.StatusForbidden,
		},
		{
			name: "owner deletes seating", method: http.MethodDelete, path: "/v1/seating-units/u-1", header: "Bearer t",
			claims: owner, wantStatus: http.StatusOK, wantBody: "store-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := jwtMocks.NewMockJWT(gomock.NewController(t))
			if tt.claims != nil || tt.tokenErr != nil {
				validator.EXPECT().ValidateToken(gomock.Any(), jwt.AccessToken).Return(tt.claims, tt.tokenErr)
			}

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			newRouter(t, validator, &config.Config{}).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestAPIKey(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.APIKey = "scrape-me"

	router := newRouter(t, jwtMocks.NewMockJWT(gomock.NewController(t)), cfg)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set("X-API-Key", "scrape-me")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	tests := []struct {
		name          string
		stored        int
		getErr        error
		wantStatus    int
		wantRemaining string
	}{
		{name: "first hit in window", getErr: cache.Nil, wantStatus: http.StatusOK, wantRemaining: "1"},
		{name: "last allowed hit", stored: 1, wantStatus: http.StatusOK, wantRemaining: "0"},
		{name: "over the limit", stored: 2, wantStatus: http.StatusTooManyRequests, wantRemaining: "0"},
		{name: "cache down lets traffic through", getErr: errors.New("redis down"), wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			redis := cacheMocks.NewMockRedisCache(gomock.NewController(t))
			redis.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, dest any) error {
					if tt.getErr != nil {
						return tt.getErr
					}

					*dest.(*int) = tt.stored

					return nil
				})
			redis.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 60).Return(nil).MaxTimes(1)

			app := middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, redis, metrics.New())
			handler := app.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/stores/s/availability", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantRemaining != "" {
				assert.Equal(t, tt.wantRemaining, rec.Header().Get("X-RateLimit-Remaining"))
				assert.Equal(t, strconv.Itoa(cfg.App.RateLimiter.MaxRequests), rec.Header().Get("X-RateLimit-Limit"))
			}
		})
	}
}

// recordingOtel hands out real spans so tests can read back their attributes.
type recordingOtel struct {
	provider *sdktrace.TracerProvider
}

func (o *recordingOtel) NewScope(ctx context.Context, scopeName, spanName string) (context.Context, otel.Scope) {
	ctx, span := o.provider.Tracer(scopeName).Start(ctx, spanName)

	return ctx, otel.NewScope(span)
}

func (o *recordingOtel) Shutdown(ctx context.Context) error {
	return o.provider.Shutdown(ctx)
}

func TestTracing_RecordsClientAddress(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := &recordingOtel{provider: sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))}

	cfg := &config.Config{}
	cfg.App.Name = "merchant"

	app := middleware.NewAppMiddleware(tracer, cfg, cacheMocks.NewMockRedisCache(gomock.NewController(t)), metrics.New())

	r := chi.NewRouter()
	r.Use(app.Tracing)
	r.Get("/v1/stores/{storeID}/availability", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/stores/abc/availability", nil)
	req.RemoteAddr = "203.0.113.7:5000"
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}

	assert.Equal(t, "203.0.113.7", attrs["http.source"].AsString())
	assert.Equal(t, "/v1/stores/{storeID}/availability", attrs["http.route"].AsString())
	assert.Equal(t, int64(http.StatusOK), attrs["http.status_code"].AsInt64())
}
