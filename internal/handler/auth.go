package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"

	"github.com/Meerdlawar/SweetDive/internal/api"
	"github.com/Meerdlawar/SweetDive/internal/domain"
	"github.com/Meerdlawar/SweetDive/internal/session"
)

// AuthHandler serves the login and registration screens and the logout
// action.
type AuthHandler struct {
	base
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(client *api.Client, sessions *session.Store, renderer *Renderer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{base: base{
		client:   client,
		sessions: sessions,
		renderer: renderer,
		logger:   logger,
	}}
}

// LoginPage renders the login screen.
//
// GET /login
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderHTTP(w, "auth/login", h.authPageData(w, r, "Sign in", nil))
}

// Login authenticates the submitted credentials and starts the session.
//
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	if username == "" || password == "" {
		data := h.authPageData(w, r, "Sign in", map[string]interface{}{
			"Error":    "Username and password are required.",
			"Username": username,
		})
		h.renderer.RenderHTTP(w, "auth/login", data)
		return
	}

	user, err := h.sessions.Login(w, r, username, password)
	if err != nil {
		h.logger.Info("login failed", "username", username, "code", domain.ErrorCode(err))
		data := h.authPageData(w, r, "Sign in", map[string]interface{}{
			"Error":    domain.ErrorMessage(err),
			"Username": username,
		})
		h.renderer.RenderHTTP(w, "auth/login", data)
		return
	}

	h.logger.Info("login succeeded", "username", user.Username)
	http.Redirect(w, r, safeReturnTo(r.FormValue("return_to")), http.StatusSeeOther)
}

// RegisterPage renders the registration screen.
//
// GET /register
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderHTTP(w, "auth/register", h.authPageData(w, r, "Create account", nil))
}

// Register creates a staff account and signs the new user in.
//
// POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	params := domain.RegisterParams{
		Username:        strings.TrimSpace(r.PostFormValue("username")),
		Email:           strings.TrimSpace(r.PostFormValue("email")),
		Password:        r.PostFormValue("password"),
		PasswordConfirm: r.PostFormValue("password_confirm"),
		FirstName:       strings.TrimSpace(r.PostFormValue("first_name")),
		LastName:        strings.TrimSpace(r.PostFormValue("last_name")),
	}

	if fields := validateRegistration(params); len(fields) > 0 {
		h.renderRegisterErrors(w, r, params, "Please fix the errors below.", fields)
		return
	}

	user, err := h.sessions.Register(w, r, params)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			h.renderRegisterErrors(w, r, params, ve.Message, ve.Fields)
			return
		}
		h.renderRegisterErrors(w, r, params, domain.ErrorMessage(err), nil)
		return
	}

	h.logger.Info("registration succeeded", "username", user.Username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout ends the session and returns to the login screen.
//
// POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(w, r)
	if isHtmx(r) {
		w.Header().Set("HX-Redirect", "/login")
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) authPageData(w http.ResponseWriter, r *http.Request, title string, extra map[string]interface{}) map[string]interface{} {
	data := map[string]interface{}{
		"Title":     title,
		"Fields":    map[string]string{},
		"ReturnTo":  safeReturnTo(r.FormValue("return_to")),
		"Flashes":   h.sessions.Flashes(w, r),
		"CSRFField": csrf.TemplateField(r),
		"CSRFToken": csrf.Token(r),
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

func (h *AuthHandler) renderRegisterErrors(w http.ResponseWriter, r *http.Request, params domain.RegisterParams, message string, fields map[string]string) {
	if fields == nil {
		fields = map[string]string{}
	}
	data := h.authPageData(w, r, "Create account", map[string]interface{}{
		"Error":  message,
		"Fields": fields,
		"Form":   params,
	})
	h.renderer.RenderHTTP(w, "auth/register", data)
}

// validateRegistration checks the cheaply verifiable fields before the
// round-trip; the backend remains authoritative.
func validateRegistration(params domain.RegisterParams) map[string]string {
	fields := make(map[string]string)
	if params.Username == "" {
		fields["username"] = "Username is required."
	}
	if params.Password == "" {
		fields["password"] = "Password is required."
	} else if len(params.Password) < 8 {
		fields["password"] = "Password must be at least 8 characters."
	}
	if params.PasswordConfirm != params.Password {
		fields["password_confirm"] = "Passwords do not match."
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// safeReturnTo only accepts site-local paths, so the login redirect cannot
// be pointed at another origin.
func safeReturnTo(returnTo string) string {
	if returnTo == "" || !strings.HasPrefix(returnTo, "/") || strings.HasPrefix(returnTo, "//") {
		return "/"
	}
	return returnTo
}
