package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/hirewire/jobboard/internal/memstore"
	"github.com/hirewire/jobboard/internal/models"
	"github.com/hirewire/jobboard/internal/service"
	"github.com/hirewire/jobboard/internal/token"
)

func newTestRouter(t *testing.T) (*mux.Router, *service.Service) {
	t.Helper()
	tokens, err := token.NewService("test-secret")
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	svc := service.NewService(memstore.New(), tokens, nil, log)
	h := NewHandler(svc, "http://jobs.example.com", nil)
	return NewRouter(h, svc), svc
}

func doJSON(t *testing.T, r http.Handler, method, path, bearer, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func register(t *testing.T, r http.Handler, username, email string) string {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"email":%q,"password":"pw","role":"employer"}`, username, email)
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", body)
	if w.Code != http.StatusOK {
		t.Fatalf("register %s: expected 200 got %d body=%s", email, w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	return resp.Token
}

func TestRegisterLoginAndCreateJobScenario(t *testing.T) {
	r, svc := newTestRouter(t)

	register(t, r, "alice", "a@x.com")

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", `{"email":"a@x.com","password":"pw"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200 got %d", w.Code)
	}
	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &login); err != nil {
		t.Fatalf("decode login: %v", err)
	}

	alice, err := svc.ResolveToken(login.Token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	w = doJSON(t, r, http.MethodPost, "/api/jobs", login.Token,
		`{"title":"Engineer","description":"d","location":"Remote","salary":100000,"category":"tech"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("create job: expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var job models.Job
	if err := json.Unmarshal(w.Body.Bytes(), &job); err != nil {
		t.Fatalf("decode job: %v", err)
	}
	if job.EmployerID != alice.ID {
		t.Fatalf("employer_id = %d, want %d", job.EmployerID, alice.ID)
	}

	// A second user may not update alice's job.
	bobToken := register(t, r, "bob", "b@x.com")
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/jobs/%d", job.ID), bobToken,
		`{"title":"Hijacked","description":"d","location":"Remote","salary":1,"category":"tech"}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("update by non-owner: expected 403 got %d", w.Code)
	}
}

func TestLoginFailures(t *testing.T) {
	r, _ := newTestRouter(t)
	register(t, r, "alice", "a@x.com")

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", `{"email":"a@x.com","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401 got %d", w.Code)
	}
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", `{"email":"nobody@x.com","password":"pw"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unknown email: expected 401 got %d", w.Code)
	}
}

func TestRegisterDuplicateEmailReturns500(t *testing.T) {
	r, _ := newTestRouter(t)
	register(t, r, "alice", "a@x.com")

	body := `{"username":"other","email":"a@x.com","password":"pw","role":"applicant"}`
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", body)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("duplicate email: expected 500 got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "duplicate") || strings.Contains(w.Body.String(), "unique") {
		t.Fatalf("response leaks store detail: %s", w.Body.String())
	}
}

func TestMalformedJSONIsBadRequest(t *testing.T) {
	r, _ := newTestRouter(t)
	bearer := register(t, r, "alice", "a@x.com")

	cases := []struct{ method, path string }{
		{http.MethodPost, "/api/auth/register"},
		{http.MethodPost, "/api/auth/login"},
		{http.MethodPost, "/api/jobs"},
		{http.MethodPost, "/api/applications"},
	}
	for _, c := range cases {
		w := doJSON(t, r, c.method, c.path, bearer, `{not json`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s %s: expected 400 got %d", c.method, c.path, w.Code)
		}
	}
}

func TestMissingRequiredFields(t *testing.T) {
	r, _ := newTestRouter(t)
	bearer := register(t, r, "alice", "a@x.com")

	w := doJSON(t, r, http.MethodPost, "/api/jobs", bearer, `{"title":"Engineer"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestMutatingRoutesRequireToken(t *testing.T) {
	r, _ := newTestRouter(t)

	cases := []struct{ method, path string }{
		{http.MethodPost, "/api/jobs"},
		{http.MethodPut, "/api/jobs/1"},
		{http.MethodDelete, "/api/jobs/1"},
		{http.MethodPost, "/api/applications"},
		{http.MethodPut, "/api/applications/1"},
		{http.MethodPut, "/api/applications/1/status"},
		{http.MethodDelete, "/api/applications/1"},
	}
	for _, c := range cases {
		w := doJSON(t, r, c.method, c.path, "", `{}`)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without token: expected 401 got %d", c.method, c.path, w.Code)
		}
	}
}

func TestReadEndpointsArePublic(t *testing.T) {
	r, _ := newTestRouter(t)
	bearer := register(t, r, "alice", "a@x.com")
	w := doJSON(t, r, http.MethodPost, "/api/jobs", bearer,
		`{"title":"Engineer","description":"d","location":"Remote","salary":100000,"category":"tech"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("create job: %d", w.Code)
	}

	for _, path := range []string{"/api/jobs", "/api/applications"} {
		w := doJSON(t, r, http.MethodGet, path, "", "")
		if w.Code != http.StatusOK {
			t.Errorf("GET %s: expected 200 got %d", path, w.Code)
		}
	}
}

func TestGetJobNotFound(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/jobs/999", "", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}

func TestUserProfileOmitsPasswordHash(t *testing.T) {
	r, svc := newTestRouter(t)
	bearer := register(t, r, "alice", "a@x.com")
	alice, err := svc.ResolveToken(bearer)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/users/%d", alice.ID), "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var raw map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	for _, key := range []string{"password", "password_hash", "PasswordHash"} {
		if _, present := raw[key]; present {
			t.Fatalf("response contains %s", key)
		}
	}
}

func TestUserSubresources(t *testing.T) {
	r, svc := newTestRouter(t)
	aliceToken := register(t, r, "alice", "a@x.com")
	bobToken := register(t, r, "bob", "b@x.com")
	alice, _ := svc.ResolveToken(aliceToken)
	bob, _ := svc.ResolveToken(bobToken)

	w := doJSON(t, r, http.MethodPost, "/api/jobs", aliceToken,
		`{"title":"Engineer","description":"d","location":"Remote","salary":100000,"category":"tech"}`)
	var job models.Job
	json.Unmarshal(w.Body.Bytes(), &job)

	w = doJSON(t, r, http.MethodPost, "/api/applications", bobToken,
		fmt.Sprintf(`{"job_id":%d,"message":"hire me"}`, job.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("create application: %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/users/%d/jobs", alice.ID), "", "")
	var jobs []models.Job
	json.Unmarshal(w.Body.Bytes(), &jobs)
	if len(jobs) != 1 {
		t.Fatalf("alice jobs: got %d, want 1", len(jobs))
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/users/%d/applications", bob.ID), "", "")
	var apps []models.Application
	json.Unmarshal(w.Body.Bytes(), &apps)
	if len(apps) != 1 || apps[0].Status != models.StatusPending {
		t.Fatalf("bob applications: %+v", apps)
	}

	w = doJSON(t, r, http.MethodGet, "/api/users/999/jobs", "", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown user jobs: expected 404 got %d", w.Code)
	}
}

func TestApplicationStatusFlow(t *testing.T) {
	r, _ := newTestRouter(t)
	aliceToken := register(t, r, "alice", "a@x.com")
	bobToken := register(t, r, "bob", "b@x.com")

	w := doJSON(t, r, http.MethodPost, "/api/jobs", aliceToken,
		`{"title":"Engineer","description":"d","location":"Remote","salary":100000,"category":"tech"}`)
	var job models.Job
	json.Unmarshal(w.Body.Bytes(), &job)

	w = doJSON(t, r, http.MethodPost, "/api/applications", bobToken,
		fmt.Sprintf(`{"job_id":%d,"message":"hire me"}`, job.ID))
	var app models.Application
	json.Unmarshal(w.Body.Bytes(), &app)

	statusPath := fmt.Sprintf("/api/applications/%d/status", app.ID)

	// Applicant may not set the status.
	w = doJSON(t, r, http.MethodPut, statusPath, bobToken, `{"status":"accepted"}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status by applicant: expected 403 got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPut, statusPath, aliceToken, `{"status":"accepted"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status by employer: expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var updated models.Application
	json.Unmarshal(w.Body.Bytes(), &updated)
	if updated.Status != "accepted" {
		t.Fatalf("status = %q", updated.Status)
	}

	// The message path is the applicant's.
	msgPath := fmt.Sprintf("/api/applications/%d", app.ID)
	w = doJSON(t, r, http.MethodPut, msgPath, aliceToken, `{"message":"edited by employer"}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("message update by employer: expected 403 got %d", w.Code)
	}
	w = doJSON(t, r, http.MethodPut, msgPath, bobToken, `{"message":"updated"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("message update by applicant: expected 200 got %d", w.Code)
	}
}

func TestDeleteJobFlow(t *testing.T) {
	r, _ := newTestRouter(t)
	aliceToken := register(t, r, "alice", "a@x.com")
	bobToken := register(t, r, "bob", "b@x.com")

	w := doJSON(t, r, http.MethodPost, "/api/jobs", aliceToken,
		`{"title":"Engineer","description":"d","location":"Remote","salary":100000,"category":"tech"}`)
	var job models.Job
	json.Unmarshal(w.Body.Bytes(), &job)
	path := fmt.Sprintf("/api/jobs/%d", job.ID)

	if w := doJSON(t, r, http.MethodDelete, path, bobToken, ""); w.Code != http.StatusForbidden {
		t.Fatalf("delete by non-owner: expected 403 got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodDelete, path, aliceToken, ""); w.Code != http.StatusOK {
		t.Fatalf("delete by owner: expected 200 got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, path, "", ""); w.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404 got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodDelete, path, aliceToken, ""); w.Code != http.StatusNotFound {
		t.Fatalf("repeat delete: expected 404 got %d", w.Code)
	}
}

func TestSitemapListsJobs(t *testing.T) {
	r, _ := newTestRouter(t)
	bearer := register(t, r, "alice", "a@x.com")
	w := doJSON(t, r, http.MethodPost, "/api/jobs", bearer,
		`{"title":"Engineer","description":"d","location":"Remote","salary":100000,"category":"tech"}`)
	var job models.Job
	json.Unmarshal(w.Body.Bytes(), &job)

	w = doJSON(t, r, http.MethodGet, "/sitemap.xml", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/xml" {
		t.Fatalf("content type = %q", ct)
	}
	want := fmt.Sprintf("http://jobs.example.com/api/jobs/%d", job.ID)
	if !strings.Contains(w.Body.String(), want) {
		t.Fatalf("sitemap missing %s:\n%s", want, w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/healthz", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
}
