// Package middleware contains HTTP middleware for the SweetDive admin app.
//
// Middleware functions follow the standard Go pattern of wrapping http.Handler
// and are composed with Stack.
package middleware

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/Meerdlawar/SweetDive/internal/auth"
	"github.com/Meerdlawar/SweetDive/internal/session"
)

// AuthMiddleware loads the session and enforces the signed-in requirement
// on guarded routes.
type AuthMiddleware struct {
	sessions *session.Store
	logger   *slog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware instance.
func NewAuthMiddleware(sessions *session.Store, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		sessions: sessions,
		logger:   logger,
	}
}

// WithUser loads the session's token and user into the request context and
// always continues to the next handler.
//
// When the cookie carries a token but no cached user (the cookie survived a
// deploy that changed the user schema, or the cache was never written), the
// token is revalidated against the backend before continuing. A dead token
// is cleared by the session store; the request proceeds unauthenticated.
func (m *AuthMiddleware) WithUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, user := m.sessions.Current(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		if user == nil {
			checked, err := m.sessions.CheckAuth(w, r)
			if err != nil {
				// Backend unreachable: keep the session, proceed without a
				// user, and let the page render the failure.
				m.logger.Warn("session revalidation unavailable", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			user = checked
		}

		if user != nil {
			r = r.WithContext(auth.WithSession(r.Context(), user, token))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUser rejects unauthenticated requests. Full page loads are
// redirected to the login screen with a return_to parameter; htmx requests
// get an HX-Redirect header so the browser performs a full navigation
// instead of swapping the login page into a fragment.
//
// Must run after WithUser.
func (m *AuthMiddleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.GetUser(r.Context()) == nil {
			RedirectToLogin(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RedirectToLogin sends the browser to the login screen, preserving the
// requested URL so login can return there.
func RedirectToLogin(w http.ResponseWriter, r *http.Request) {
	returnTo := r.URL.Path
	if r.URL.RawQuery != "" {
		returnTo += "?" + r.URL.RawQuery
	}
	target := "/login"
	if returnTo != "/" && returnTo != "" {
		target += "?return_to=" + url.QueryEscape(returnTo)
	}

	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// RedirectIfAuthenticated sends signed-in users away from the login and
// registration screens.
func (m *AuthMiddleware) RedirectIfAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.GetUser(r.Context()) != nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Stack composes middleware; the first argument is the outermost.
func Stack(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(final http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}
