package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblio/internal/member/models"
	"biblio/internal/member/service"
	"biblio/internal/member/store"
	"biblio/pkg/testutil"
)

func newMemberRouter(t *testing.T) chi.Router {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	New(service.New(store.NewInMemory()), logger).Register(r)
	return r
}

func TestRegisterAndGetMember(t *testing.T) {
	router := newMemberRouter(t)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/members",
		MemberRequest{Name: "Ada Lovelace", Email: "ada@example.com"}))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	created := testutil.UnmarshalResponse[models.Member](t, rr)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Ada Lovelace", created.Name)

	rr = testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/members/"+created.ID, nil))
	testutil.AssertStatus(t, rr, http.StatusOK)
	got := testutil.UnmarshalResponse[models.Member](t, rr)
	assert.Equal(t, created.ID, got.ID)
}

func TestRegisterMemberValidation(t *testing.T) {
	router := newMemberRouter(t)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/members",
		MemberRequest{Name: "", Email: "ada@example.com"}))
	env := testutil.AssertError(t, rr, http.StatusBadRequest)
	assert.Equal(t, "name is required", env.Error)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/members",
		MemberRequest{Name: "Ada", Email: "not-an-email"}))
	env = testutil.AssertError(t, rr, http.StatusBadRequest)
	assert.Equal(t, "email should be valid", env.Error)
}

func TestRegisterMemberDuplicateEmail(t *testing.T) {
	router := newMemberRouter(t)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/members",
		MemberRequest{Name: "Ada", Email: "ada@example.com"}))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/members",
		MemberRequest{Name: "Eve", Email: "ADA@EXAMPLE.COM"}))
	env := testutil.AssertError(t, rr, http.StatusConflict)
	assert.Contains(t, env.Error, "email already exists")
}

func TestUpdateMember(t *testing.T) {
	router := newMemberRouter(t)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/members",
		MemberRequest{Name: "Ada", Email: "ada@example.com"}))
	ada := testutil.UnmarshalResponse[models.Member](t, rr)
	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/members",
		MemberRequest{Name: "Eve", Email: "eve@example.com"}))
	eve := testutil.UnmarshalResponse[models.Member](t, rr)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPut, "/members/"+ada.ID,
		MemberRequest{Name: "Ada L.", Email: "ada@example.com"}))
	testutil.AssertStatus(t, rr, http.StatusOK)
	updated := testutil.UnmarshalResponse[models.Member](t, rr)
	assert.Equal(t, "Ada L.", updated.Name)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPut, "/members/"+eve.ID,
		MemberRequest{Name: "Eve", Email: "ada@example.com"}))
	testutil.AssertError(t, rr, http.StatusConflict)
}

func TestDeleteMember(t *testing.T) {
	router := newMemberRouter(t)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/members",
		MemberRequest{Name: "Ada", Email: "ada@example.com"}))
	created := testutil.UnmarshalResponse[models.Member](t, rr)

	rr = testutil.DoRequest(router, httptest.NewRequest(http.MethodDelete, "/members/"+created.ID, nil))
	testutil.AssertStatus(t, rr, http.StatusNoContent)

	rr = testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/members/"+created.ID, nil))
	testutil.AssertError(t, rr, http.StatusNotFound)
}
