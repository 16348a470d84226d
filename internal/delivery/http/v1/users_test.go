package v1

import (
	"net/http"
	"testing"
)

func TestCreateUser(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/users", `{"name":"Carol","email":"Carol@Example.COM"}`)
	expectStatus(t, rec, http.StatusCreated)
	user := decode[dataResponse[userResponse]](t, rec).Data
	if user.Email != "carol@example.com" || user.Role != "MEMBER" || user.Name != "Carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	rec = doRequest(t, router, http.MethodPost, "/api/v1/users", `{"name":"Other","email":"CAROL@example.com"}`)
	expectError(t, rec, http.StatusConflict, codeConflict)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/users/"+user.ID, "")
	expectStatus(t, rec, http.StatusOK)
	if got := decode[dataResponse[userResponse]](t, rec).Data; got.ID != user.ID {
		t.Fatalf("got %q, want %q", got.ID, user.ID)
	}
}

func TestCreateUser_Invalid(t *testing.T) {
	router := newTestRouter(t, nil)

	for body, field := range map[string]string{
		`{"email":"a@b.co"}`:                          "name",
		`{"name":"n","email":"nope"}`:                 "email",
		`{"name":"n","email":"a@b.co","role":"ROOT"}`: "role",
	} {
		rec := doRequest(t, router, http.MethodPost, "/api/v1/users", body)
		resp := expectError(t, rec, http.StatusBadRequest, codeValidationError)
		if len(resp.Details[field]) == 0 {
			t.Errorf("%s: expected details for %q, got %v", body, field, resp.Details)
		}
	}
}

func TestGetUser_NotFound(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/users/"+unknownID, "")
	expectError(t, rec, http.StatusNotFound, codeEntityNotFound)
}
