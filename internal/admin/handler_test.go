// AngelaMos | 2026
// handler_test.go

package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/turisgal/backend/internal/auth"
	"github.com/turisgal/backend/internal/config"
	"github.com/turisgal/backend/internal/core"
	"github.com/turisgal/backend/internal/middleware"
)

type staticRepository struct {
	totals *Totals
	err    error
}

func (r staticRepository) Totals(context.Context) (*Totals, error) {
	return r.totals, r.err
}

func newRouter(t *testing.T, cfg HandlerConfig) (http.Handler, *auth.TokenManager) {
	t.Helper()

	tokens := auth.NewTokenManager(config.JWTConfig{Secret: "secret"})

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		NewHandler(cfg).RegisterRoutes(r, middleware.Authenticator(tokens), middleware.RequireAdmin)
	})
	return r, tokens
}

func get(t *testing.T, h http.Handler, tokens *auth.TokenManager, role, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if role != "" {
		token, _, err := tokens.CreateToken(core.Identity{UserID: "id-1", Email: "a@b.es", Role: role})
		if err != nil {
			t.Fatalf("create token: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestOverview(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	totals := &Totals{Users: 4, VerifiedUsers: 3, Owners: 2, Properties: 4, ActiveProperties: 3, Rooms: 5, Bookings: 1}

	router, tokens := newRouter(t, HandlerConfig{
		Repository: staticRepository{totals: totals},
		DBStats:    func() sql.DBStats { return sql.DBStats{MaxOpenConnections: 25, OpenConnections: 2} },
		DBPing:     func(context.Context) error { return errors.New("connection refused") },
		RedisStats: client.PoolStats,
		RedisPing:  func(ctx context.Context) error { return client.Ping(ctx).Err() },
	})

	rec := get(t, router, tokens, core.RoleAdmin, "/api/admin/overview")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp OverviewResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Totals != *totals {
		t.Fatalf("expected totals %+v, got %+v", *totals, resp.Totals)
	}
	if resp.Database.Healthy || resp.Database.Stats.MaxOpenConnections != 25 {
		t.Fatalf("expected unhealthy database with pool stats, got %+v", resp.Database)
	}
	if !resp.Redis.Healthy || resp.Redis.Stats == nil {
		t.Fatalf("expected healthy redis with pool stats, got %+v", resp.Redis)
	}
	if resp.Runtime.GoVersion == "" || resp.Runtime.NumCPU < 1 {
		t.Fatalf("expected runtime stats, got %+v", resp.Runtime)
	}
}

func TestOverviewAccess(t *testing.T) {
	router, tokens := newRouter(t, HandlerConfig{Repository: staticRepository{totals: &Totals{}}})

	cases := []struct {
		name   string
		role   string
		status int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"user", core.RoleUser, http.StatusForbidden},
		{"owner", core.RoleOwner, http.StatusForbidden},
		{"admin", core.RoleAdmin, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(t, router, tokens, tc.role, "/api/admin/overview")
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
		})
	}
}

func TestOverviewTotalsFailure(t *testing.T) {
	router, tokens := newRouter(t, HandlerConfig{
		Repository: staticRepository{err: errors.New("relation does not exist")},
	})

	rec := get(t, router, tokens, core.RoleAdmin, "/api/admin/overview")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestStoreStatsWithoutSources(t *testing.T) {
	router, tokens := newRouter(t, HandlerConfig{Repository: staticRepository{totals: &Totals{}}})

	rec := get(t, router, tokens, core.RoleAdmin, "/api/admin/stats/db")
	if rec.Code != http.StatusOK || rec.Body.String() != "null\n" {
		t.Fatalf("expected null stats, got %d %q", rec.Code, rec.Body.String())
	}

	rec = get(t, router, tokens, core.RoleAdmin, "/api/admin/stats/runtime")
	var rt RuntimeStats
	if err := json.NewDecoder(rec.Body).Decode(&rt); err != nil || rt.NumGoroutine < 1 {
		t.Fatalf("expected runtime stats, got %+v (%v)", rt, err)
	}
}
