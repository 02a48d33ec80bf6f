package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/hirewire/jobboard/internal/memstore"
	"github.com/hirewire/jobboard/internal/service"
	"github.com/hirewire/jobboard/internal/token"
)

func newTestAuth(t *testing.T) (*service.Service, func(http.Handler) http.Handler) {
	t.Helper()
	tokens, err := token.NewService("test-secret")
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	svc := service.NewService(memstore.New(), tokens, nil, log)
	return svc, Auth(svc)
}

func TestAuthResolvesUser(t *testing.T) {
	svc, auth := newTestAuth(t)
	user, bearer, err := svc.Register("alice", "a@x.com", "pw", "employer")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	var sawID int
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFromContext(r.Context())
		if !ok {
			t.Fatal("no user in context")
		}
		sawID = u.ID
	})

	req := httptest.NewRequest(http.MethodPost, "/api/jobs", nil)
	req.Header.Set("Authorization", bearer)
	w := httptest.NewRecorder()
	auth(next).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if sawID != user.ID {
		t.Fatalf("context user id = %d, want %d", sawID, user.ID)
	}
}

func TestAuthRejects(t *testing.T) {
	_, auth := newTestAuth(t)

	// A valid token for a user the store does not know.
	strays, _ := token.NewService("test-secret")
	stray, err := strays.Issue("ghost@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	cases := map[string]string{
		"missing header":  "",
		"garbage token":   "not-a-token",
		"unknown subject": stray,
	}
	for name, bearer := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/jobs", nil)
		if bearer != "" {
			req.Header.Set("Authorization", bearer)
		}
		w := httptest.NewRecorder()
		called := false
		auth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })).ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401 got %d", name, w.Code)
		}
		if called {
			t.Errorf("%s: handler ran despite failed auth", name)
		}
	}
}
