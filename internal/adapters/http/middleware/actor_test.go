package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campusconnect/campus-api/internal/adapters/http/middleware"
	"github.com/campusconnect/campus-api/internal/domain"
)

func actorThrough(t *testing.T, headers map[string]string) domain.Actor {
	t.Helper()

	var got domain.Actor
	handler := middleware.Actor()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = middleware.ActorFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func TestActor_ReadsIdentityHeaders(t *testing.T) {
	t.Parallel()

	got := actorThrough(t, map[string]string{
		"X-Actor-ID":   "stu-1",
		"X-Actor-Role": "moderator",
	})

	want := domain.Actor{ID: "stu-1", Role: domain.RoleModerator}
	if got != want {
		t.Errorf("actor = %+v, want %+v", got, want)
	}
}

func TestActor_DefaultsRoleToStudent(t *testing.T) {
	t.Parallel()

	got := actorThrough(t, map[string]string{"X-Actor-ID": "stu-2"})

	if got.Role != domain.RoleStudent {
		t.Errorf("role = %q, want %q", got.Role, domain.RoleStudent)
	}
}

func TestActor_NoHeadersYieldsZeroActor(t *testing.T) {
	t.Parallel()

	got := actorThrough(t, nil)

	if got != (domain.Actor{}) {
		t.Errorf("actor = %+v, want zero actor", got)
	}
}

func TestActorFromContext_NotFound(t *testing.T) {
	t.Parallel()

	if got := middleware.ActorFromContext(context.Background()); got != (domain.Actor{}) {
		t.Errorf("ActorFromContext = %+v, want zero actor", got)
	}
}
