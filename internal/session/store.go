// Package session manages the browser session: the backend token, a cached
// copy of the signed-in user, and one-shot flash messages. The cookie is the
// only client-side persistence the app has; everything else lives in the
// backend.
package session

import (
	"context"
	"encoding/gob"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/Meerdlawar/SweetDive/internal/api"
	"github.com/Meerdlawar/SweetDive/internal/auth"
	"github.com/Meerdlawar/SweetDive/internal/domain"
	"github.com/Meerdlawar/SweetDive/internal/metrics"
)

const (
	tokenKey = "token"
	userKey  = "user"
)

// Flash is a one-shot message rendered as a toast on the next page load.
type Flash struct {
	Type    string
	Message string
}

func init() {
	gob.Register(Flash{})
}

// Store wraps a gorilla cookie store with the app's session schema.
type Store struct {
	cookies *sessions.CookieStore
	name    string
	client  *api.Client
	logger  *slog.Logger
}

// NewStore builds the session store. Cookies are HTTP-only and SameSite=Lax;
// secure is enabled outside development.
func NewStore(secret []byte, name string, secure bool, client *api.Client, logger *slog.Logger) *Store {
	cookies := sessions.NewCookieStore(secret)
	cookies.Options.HttpOnly = true
	cookies.Options.Secure = secure
	cookies.Options.SameSite = http.SameSiteLaxMode
	cookies.Options.Path = "/"
	cookies.Options.MaxAge = 86400 * 7

	return &Store{
		cookies: cookies,
		name:    name,
		client:  client,
		logger:  logger,
	}
}

// Current returns the token and cached user from the request's session
// cookie. A tampered or expired cookie reads as signed-out; it is not an
// error. The user may be nil even when a token is present (cache miss).
func (s *Store) Current(r *http.Request) (token string, user *domain.User) {
	sess, err := s.cookies.Get(r, s.name)
	if err != nil {
		return "", nil
	}
	token, _ = sess.Values[tokenKey].(string)
	if raw, ok := sess.Values[userKey].(string); ok && raw != "" {
		var u domain.User
		if err := json.Unmarshal([]byte(raw), &u); err == nil {
			u2 := u
			user = &u2
		}
	}
	return token, user
}

// CheckAuth revalidates the stored token against the backend and refreshes
// the cached user. An invalid token clears the session silently; the caller
// sees a nil user, not an error. Backend outages are reported so a working
// session is not thrown away over a blip.
func (s *Store) CheckAuth(w http.ResponseWriter, r *http.Request) (*domain.User, error) {
	const op = "session.CheckAuth"

	token, _ := s.Current(r)
	if token == "" {
		return nil, nil
	}

	user, err := s.client.CurrentUser(auth.WithToken(r.Context(), token))
	if err != nil {
		if domain.ErrorCode(err) == domain.EUNAVAILABLE {
			return nil, domain.Wrap(err, domain.EUNAVAILABLE, op, "Could not verify your session.")
		}
		s.logger.Info("session check failed, clearing", "error", err)
		metrics.SessionsCleared.WithLabelValues("check_failed").Inc()
		s.Clear(w, r)
		return nil, nil
	}

	if err := s.save(w, r, token, user); err != nil {
		s.logger.Warn("failed to refresh session", "error", err)
	}
	return user, nil
}

// Login authenticates against the backend and establishes the session.
func (s *Store) Login(w http.ResponseWriter, r *http.Request, username, password string) (*domain.User, error) {
	result, err := s.client.Login(r.Context(), username, password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	if err := s.save(w, r, result.Token, &result.User); err != nil {
		return nil, domain.Internal(err, "session.Login", "Could not start your session.")
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return &result.User, nil
}

// Register creates an account and, like the login flow, signs the new user
// straight in.
func (s *Store) Register(w http.ResponseWriter, r *http.Request, params domain.RegisterParams) (*domain.User, error) {
	result, err := s.client.Register(r.Context(), params)
	if err != nil {
		return nil, err
	}

	if err := s.save(w, r, result.Token, &result.User); err != nil {
		return nil, domain.Internal(err, "session.Register", "Could not start your session.")
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return &result.User, nil
}

// Logout invalidates the token server-side and clears the session. The
// backend call is best-effort; the local session is cleared either way.
func (s *Store) Logout(w http.ResponseWriter, r *http.Request) {
	token, _ := s.Current(r)
	if token != "" {
		if err := s.client.Logout(auth.WithToken(r.Context(), token)); err != nil {
			s.logger.Warn("backend logout failed", "error", err)
		}
	}
	metrics.SessionsCleared.WithLabelValues("logout").Inc()
	s.Clear(w, r)
}

// Clear drops the session cookie.
func (s *Store) Clear(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.cookies.Get(r, s.name)
	sess.Options.MaxAge = -1
	for k := range sess.Values {
		delete(sess.Values, k)
	}
	if err := sess.Save(r, w); err != nil {
		s.logger.Warn("failed to clear session", "error", err)
	}
}

// ClearUnauthorized drops the session after the backend rejected its token
// mid-flight. Kept separate from Clear for the metric label.
func (s *Store) ClearUnauthorized(w http.ResponseWriter, r *http.Request) {
	metrics.SessionsCleared.WithLabelValues("unauthorized").Inc()
	s.Clear(w, r)
}

// AddFlash queues a toast for the next full page render.
func (s *Store) AddFlash(w http.ResponseWriter, r *http.Request, kind, message string) {
	sess, _ := s.cookies.Get(r, s.name)
	sess.AddFlash(Flash{Type: kind, Message: message})
	if err := sess.Save(r, w); err != nil {
		s.logger.Warn("failed to save flash", "error", err)
	}
}

// Flashes returns and consumes any queued toasts.
func (s *Store) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	sess, err := s.cookies.Get(r, s.name)
	if err != nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		s.logger.Warn("failed to consume flashes", "error", err)
	}
	out := make([]Flash, 0, len(raw))
	for _, f := range raw {
		if fl, ok := f.(Flash); ok {
			out = append(out, fl)
		}
	}
	return out
}

// Context returns r's context enriched with the session's token and user,
// ready for backend calls.
func (s *Store) Context(r *http.Request) context.Context {
	token, user := s.Current(r)
	if user != nil {
		return auth.WithSession(r.Context(), user, token)
	}
	if token != "" {
		return auth.WithToken(r.Context(), token)
	}
	return r.Context()
}

func (s *Store) save(w http.ResponseWriter, r *http.Request, token string, user *domain.User) error {
	sess, _ := s.cookies.Get(r, s.name)
	sess.Values[tokenKey] = token
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	sess.Values[userKey] = string(raw)
	return sess.Save(r, w)
}
