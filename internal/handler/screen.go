// Package handler contains the HTTP handlers for the SweetDive admin app.
//
// Every resource screen follows the same shape: a full page render for
// normal navigation, a table fragment for htmx search/filter/pagination,
// and mutation endpoints that re-render the fragment with an out-of-band
// toast.
package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"

	"github.com/Meerdlawar/SweetDive/internal/auth"
)

// listQuery is the parsed state of a resource list: page, search term and
// the screen's single filter value.
type listQuery struct {
	Page   int
	Search string
	Filter string
}

// parseListQuery reads the list state from the request. filterParam names
// the screen's filter ("status" for orders, "product_type" for products,
// "" when the screen has none). Values come from the URL on list loads and
// from hidden form fields on mutations, so a create or delete re-renders
// the page the user was looking at. A missing or bad page reads as page 1,
// which is also how search and filter changes reset pagination: their
// forms simply do not submit a page value.
func parseListQuery(r *http.Request, filterParam string) listQuery {
	page, err := strconv.Atoi(r.FormValue("page"))
	if err != nil || page < 1 {
		page = 1
	}

	lq := listQuery{
		Page:   page,
		Search: strings.TrimSpace(r.FormValue("search")),
	}
	if filterParam != "" {
		lq.Filter = strings.TrimSpace(r.FormValue(filterParam))
	}
	return lq
}

// pagePrefix builds the href prefix for pagination links, carrying the
// current search and filter so page changes keep them. Templates append
// the page number.
func (q listQuery) pagePrefix(filterParam string) string {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if filterParam != "" && q.Filter != "" {
		v.Set(filterParam, q.Filter)
	}
	prefix := "?"
	if encoded := v.Encode(); encoded != "" {
		prefix += encoded + "&"
	}
	return prefix + "page="
}

// page assembles the data common to every app-layout render: the signed-in
// user for the nav, the current path for the active link, queued flashes
// and the CSRF field for forms.
func (b *base) page(w http.ResponseWriter, r *http.Request, title string) map[string]interface{} {
	return map[string]interface{}{
		"Title":     title,
		"User":      auth.GetUser(r.Context()),
		"Path":      r.URL.Path,
		"Flashes":   b.sessions.Flashes(w, r),
		"CSRFField": csrf.TemplateField(r),
		"CSRFToken": csrf.Token(r),
	}
}

// pathID parses the {id} path value of a route.
func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
