// AngelaMos | 2026
// handler_test.go

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

type checkerFunc func(ctx context.Context) error

func (f checkerFunc) Ping(ctx context.Context) error { return f(ctx) }

type redisChecker struct {
	client *redis.Client
}

func (c redisChecker) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func healthy() Checker {
	return checkerFunc(func(context.Context) error { return nil })
}

func failing() Checker {
	return checkerFunc(func(context.Context) error { return errors.New("down") })
}

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	h.RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestLiveness(t *testing.T) {
	h := NewHandler(failing(), failing())

	for _, path := range []string{"/healthz", "/livez"} {
		rec := serve(h, path)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: liveness must not depend on stores, got %d", path, rec.Code)
		}
		if cc := rec.Header().Get("Cache-Control"); cc == "" {
			t.Fatalf("%s: expected no-cache headers", path)
		}
	}

	h.SetShutdown(true)
	if rec := serve(h, "/livez"); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 while shutting down, got %d", rec.Code)
	}
}

func TestReadinessWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	h := NewHandler(healthy(), redisChecker{client: client})

	rec := serve(h, "/readyz")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp ReadinessResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" || len(resp.Checks) != 2 {
		t.Fatalf("unexpected readiness %+v", resp)
	}
	if resp.Checks[0].Name != "database" || resp.Checks[1].Name != "redis" {
		t.Fatalf("checks must keep registration order, got %+v", resp.Checks)
	}

	mr.Close()

	rec = serve(h, "/readyz")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 with redis down, got %d", rec.Code)
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "degraded" || resp.Checks[1].Healthy {
		t.Fatalf("expected degraded redis, got %+v", resp)
	}
}

func TestReadinessStates(t *testing.T) {
	cases := []struct {
		name   string
		setup  func(h *Handler)
		status string
	}{
		{"not ready", func(h *Handler) { h.SetReady(false) }, "not_ready"},
		{"shutting down", func(h *Handler) { h.SetShutdown(true) }, "shutting_down"},
		{"missing checker", func(h *Handler) { h.Register("queue", nil) }, "degraded"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHandler(healthy(), healthy())
			tc.setup(h)

			rec := serve(h, "/readyz")
			if rec.Code != http.StatusServiceUnavailable {
				t.Fatalf("expected 503, got %d", rec.Code)
			}

			var resp struct {
				Status string `json:"status"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Status != tc.status {
				t.Fatalf("expected %q, got %q", tc.status, resp.Status)
			}
		})
	}
}
