package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/campus-api/internal/adapters/http/dto"
	"github.com/campusconnect/campus-api/internal/domain"
)

func reportItem(t *testing.T, e *env, owner domain.Actor, name string) string {
	t.Helper()
	body := jsonBody(t, dto.ReportLostItemRequest{Name: name, Location: "Library, 2nd floor"})
	rec := httptest.NewRecorder()
	req := asActor(httptest.NewRequest(http.MethodPost, "/api/v1/lostfound/items", body), owner)
	e.lostfound.Report(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeJSON[dto.LostFoundResponse](t, rec).ID
}

func transitionItem(t *testing.T, e *env, actor domain.Actor, id, transition string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := asActor(httptest.NewRequest(http.MethodPost,
		"/api/v1/lostfound/items/"+id+"/transitions/"+transition, nil), actor)
	req = withChiParams(req, map[string]string{"id": id, "transition": transition})
	e.lostfound.Transition(rec, req)
	return rec
}

func TestReportLostItem_MissingLocation(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	body := jsonBody(t, dto.ReportLostItemRequest{Name: "Blue water bottle"})
	rec := httptest.NewRecorder()
	req := asActor(httptest.NewRequest(http.MethodPost, "/api/v1/lostfound/items", body), studentActor)
	e.lostfound.Report(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeJSON[dto.ErrorResponse](t, rec)
	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, "body.location", resp.Errors[0].Location)
}

func TestLostFoundModerationFlow(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	id := reportItem(t, e, studentActor, "Black umbrella")

	// An unmoderated report is hidden from other students.
	rec := httptest.NewRecorder()
	req := asActor(httptest.NewRequest(http.MethodGet, "/api/v1/lostfound/items", nil),
		domain.Actor{ID: "stu-9", Role: domain.RoleStudent})
	e.lostfound.List(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decodeJSON[dto.LostFoundListResponse](t, rec).Count)

	// Students cannot approve.
	rec = transitionItem(t, e, studentActor, id, "approve")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = transitionItem(t, e, moderatorActor, id, "approve")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "verified", decodeJSON[dto.LostFoundResponse](t, rec).Status)

	// A second approve is an illegal move from the verified state.
	rec = transitionItem(t, e, moderatorActor, id, "approve")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLostFoundClaim_SetsClaimant(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	id := reportItem(t, e, studentActor, "Scientific calculator")
	require.Equal(t, http.StatusOK, transitionItem(t, e, moderatorActor, id, "approve").Code)

	claimant := domain.Actor{ID: "stu-7", Role: domain.RoleStudent}
	rec := transitionItem(t, e, claimant, id, "claim")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeJSON[dto.LostFoundResponse](t, rec)
	assert.Equal(t, "claim_pending", resp.Status)
	assert.Equal(t, claimant.ID, resp.ClaimantID)
}

func TestDeleteLostItem_OwnerOnly(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	id := reportItem(t, e, studentActor, "Hostel keys")

	rec := httptest.NewRecorder()
	req := asActor(httptest.NewRequest(http.MethodDelete, "/api/v1/lostfound/items/"+id, nil),
		domain.Actor{ID: "stu-9", Role: domain.RoleStudent})
	req = withChiParams(req, map[string]string{"id": id})
	e.lostfound.Delete(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	req = asActor(httptest.NewRequest(http.MethodDelete, "/api/v1/lostfound/items/"+id, nil), studentActor)
	req = withChiParams(req, map[string]string{"id": id})
	e.lostfound.Delete(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
