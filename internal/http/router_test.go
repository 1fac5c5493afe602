package httpapi_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"staffdir/internal/directory/events"
	"staffdir/internal/directory/handler"
	"staffdir/internal/directory/service"
	branchstore "staffdir/internal/directory/store/branch"
	employeestore "staffdir/internal/directory/store/employee"
	httpapi "staffdir/internal/http"
)

func newRouter(checkers map[string]httpapi.HealthChecker, opts ...service.Option) http.Handler {
	svc := service.New(branchstore.NewInMemory(), employeestore.NewInMemory(), opts...)
	h := handler.New(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return httpapi.NewRouter(h, checkers)
}

func TestHealthzReportsOK(t *testing.T) {
	router := newRouter(map[string]httpapi.HealthChecker{
		"database": httpapi.HealthFunc(func(context.Context) error { return nil }),
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"database":"ok"}`, rec.Body.String())
}

func TestHealthzReportsFailure(t *testing.T) {
	router := newRouter(map[string]httpapi.HealthChecker{
		"database": httpapi.HealthFunc(func(context.Context) error { return nil }),
		"redis":    httpapi.HealthFunc(func(context.Context) error { return errors.New("connection refused") }),
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.JSONEq(t, `{"database":"ok","redis":"connection refused"}`, rec.Body.String())
}

func TestMetricsEndpointMounted(t *testing.T) {
	router := newRouter(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestIDEchoedOnResponses(t *testing.T) {
	router := newRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/branches", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))

	// A missing id is minted server side.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/branches", nil))
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

type actorCapturePublisher struct {
	userIDs []string
}

func (p *actorCapturePublisher) PublishBranchEvent(_ context.Context, ev events.BranchEvent) {
	p.userIDs = append(p.userIDs, ev.UserID)
}
func (p *actorCapturePublisher) PublishEmployeeEvent(context.Context, events.EmployeeEvent) {}
func (p *actorCapturePublisher) PublishNotification(context.Context, string, string)       {}

func TestActorHeaderReachesPublishedEvents(t *testing.T) {
	pub := &actorCapturePublisher{}
	router := newRouter(nil, service.WithPublisher(pub))

	body := strings.NewReader(`{"code":"HO","name":"Head Office"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/branches", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "admin@example.com")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Equal(t, []string{"admin@example.com"}, pub.userIDs)
}
