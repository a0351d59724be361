package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Meerdlawar/SweetDive/internal/auth"
	"github.com/Meerdlawar/SweetDive/internal/domain"
)

func TestRequireUser_RedirectsAnonymous(t *testing.T) {
	mw := &AuthMiddleware{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run for anonymous request")
	})

	req := httptest.NewRequest("GET", "/orders?page=2", nil)
	rec := httptest.NewRecorder()

	mw.RequireUser(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status 303, got %d", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if loc != "/login?return_to=%2Forders%3Fpage%3D2" {
		t.Errorf("unexpected redirect target: %q", loc)
	}
}

func TestRequireUser_HtmxGetsHXRedirect(t *testing.T) {
	mw := &AuthMiddleware{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run for anonymous request")
	})

	req := httptest.NewRequest("GET", "/customers", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	mw.RequireUser(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
	if got := rec.Header().Get("HX-Redirect"); got != "/login?return_to=%2Fcustomers" {
		t.Errorf("unexpected HX-Redirect: %q", got)
	}
}

func TestRequireUser_PassesAuthenticated(t *testing.T) {
	mw := &AuthMiddleware{}

	called := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/orders", nil)
	user := &domain.User{ID: 1, Username: "anna"}
	req = req.WithContext(auth.WithSession(req.Context(), user, "tok"))
	rec := httptest.NewRecorder()

	mw.RequireUser(handler).ServeHTTP(rec, req)

	if !called {
		t.Error("handler should run for authenticated request")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
}

func TestRedirectIfAuthenticated(t *testing.T) {
	mw := &AuthMiddleware{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("login page should not render for signed-in user")
	})

	req := httptest.NewRequest("GET", "/login", nil)
	user := &domain.User{ID: 1, Username: "anna"}
	req = req.WithContext(auth.WithSession(req.Context(), user, "tok"))
	rec := httptest.NewRecorder()

	mw.RedirectIfAuthenticated(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status 303, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/" {
		t.Errorf("unexpected redirect target: %q", got)
	}
}

func TestStack_OrderIsOutsideIn(t *testing.T) {
	var order []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	})

	stack := Stack(tag("first"), tag("second"))
	stack(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	want := []string{"first", "second", "handler"}
	for i, name := range want {
		if i >= len(order) || order[i] != name {
			t.Fatalf("expected order %v, got %v", want, order)
		}
	}
}
