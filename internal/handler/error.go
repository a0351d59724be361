package handler

import (
	"log/slog"
	"net/http"

	"github.com/Meerdlawar/SweetDive/internal/api"
	"github.com/Meerdlawar/SweetDive/internal/domain"
	"github.com/Meerdlawar/SweetDive/internal/session"
)

// ErrorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EFORBIDDEN:
		return http.StatusForbidden
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	case domain.EUNAVAILABLE:
		return http.StatusBadGateway
	case domain.EINTERNAL:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// base carries the dependencies every screen handler needs.
type base struct {
	client   *api.Client
	sessions *session.Store
	renderer *Renderer
	logger   *slog.Logger
	pageSize int
}

// Error handles a failed backend call.
//
// A 401 means the stored token is dead: the session is cleared and the
// browser is sent to the login screen, the one place this rule lives. Every
// other error becomes an error toast for htmx requests or a flash-and-
// redirect for full page loads.
func (b *base) Error(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	message := domain.ErrorMessage(err)

	b.logError(r, err, code)

	if code == domain.EUNAUTHORIZED {
		b.sessions.ClearUnauthorized(w, r)
		redirectToLogin(w, r)
		return
	}

	if isHtmx(r) {
		w.WriteHeader(ErrorCodeToHTTPStatus(code))
		b.renderer.RenderToast(w, ToastData{Type: "error", Message: message})
		return
	}

	b.sessions.AddFlash(w, r, "error", message)
	target := r.Referer()
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// logError logs with a level matching the error class: backend faults are
// warnings, client errors are informational.
func (b *base) logError(r *http.Request, err error, code string) {
	attrs := []any{
		"error", err.Error(),
		"code", code,
		"path", r.URL.Path,
		"method", r.Method,
	}
	if op := domain.ErrorOp(err); op != "" {
		attrs = append(attrs, "op", op)
	}

	switch code {
	case domain.EINTERNAL, domain.EUNAVAILABLE:
		b.logger.Warn("backend error", attrs...)
	default:
		b.logger.Info("request error", attrs...)
	}
}

// redirectToLogin performs the post-401 navigation. htmx requests get an
// HX-Redirect so the whole window navigates rather than swapping a fragment.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	if isHtmx(r) {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// isHtmx reports whether the request came from htmx and expects a fragment.
func isHtmx(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
