package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/campusconnect/campus-api/internal/adapters/http/handlers"
	"github.com/campusconnect/campus-api/internal/adapters/http/middleware"
	"github.com/campusconnect/campus-api/internal/adapters/store/memstore"
	"github.com/campusconnect/campus-api/internal/app"
	"github.com/campusconnect/campus-api/internal/domain"
	"github.com/campusconnect/campus-api/internal/domain/workflow"
)

var (
	studentActor   = domain.Actor{ID: "stu-1", Role: domain.RoleStudent}
	staffActor     = domain.Actor{ID: "staff-1", Role: domain.RoleStaff}
	moderatorActor = domain.Actor{ID: "mod-1", Role: domain.RoleModerator}
)

// env wires real services over the in-memory store so handler tests cover
// the full decode -> service -> encode path.
type env struct {
	store *memstore.Store
	coord *app.Coordinator

	cafeteria    *handlers.CafeteriaHandler
	lostfound    *handlers.LostFoundHandler
	skills       *handlers.SkillsHandler
	notes        *handlers.NotesHandler
	directory    *handlers.DirectoryHandler
	announcement *handlers.AnnouncementHandler
	user         *handlers.UserHandler
}

func newEnv(t *testing.T) *env {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	store := memstore.New(8)

	coord := app.NewCoordinator(store, app.CoordinatorConfig{
		RetryDelay:  time.Millisecond,
		HookTimeout: 2 * time.Second,
	}, nil, logger)
	coord.RegisterHook(app.NewSubjectCleanupHook(store, logger))

	return &env{
		store:        store,
		coord:        coord,
		cafeteria:    handlers.NewCafeteriaHandler(app.NewCafeteriaService(store, coord, logger)),
		lostfound:    handlers.NewLostFoundHandler(app.NewLostFoundService(coord, logger)),
		skills:       handlers.NewSkillsHandler(app.NewSkillsService(coord, store, logger)),
		notes:        handlers.NewNotesHandler(app.NewNotesService(store, coord, logger)),
		directory:    handlers.NewDirectoryHandler(app.NewDirectoryService(store, logger)),
		announcement: handlers.NewAnnouncementHandler(app.NewAnnouncementService(store, logger)),
		user:         handlers.NewUserHandler(app.NewUserService(store, logger)),
	}
}

// asActor installs the actor on the request context the way the Actor
// middleware does for trusted identity headers.
func asActor(r *http.Request, actor domain.Actor) *http.Request {
	return r.WithContext(middleware.WithActor(r.Context(), actor))
}

func withChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON body: %v", err)
	}
	return buf
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return result
}

// seedOrder places one order owned by the given actor and returns its id.
func seedOrder(t *testing.T, e *env, owner domain.Actor) string {
	t.Helper()
	item, err := e.coord.Create(context.Background(), workflow.KindOrder, owner, map[string]any{
		"user_name":   "Priya",
		"items":       []any{"Masala Dosa x2"},
		"total_price": 145.0,
	})
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return item.ID
}
