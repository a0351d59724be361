package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"

	"github.com/Meerdlawar/SweetDive/internal/api"
	"github.com/Meerdlawar/SweetDive/internal/domain"
	"github.com/Meerdlawar/SweetDive/internal/session"
)

// AllergenHandler serves the allergen screen. The backend returns the full
// set in one response, so search filters the fetched records here instead
// of issuing backend queries, and there is no pagination.
type AllergenHandler struct {
	base
}

// NewAllergenHandler creates a new AllergenHandler.
func NewAllergenHandler(client *api.Client, sessions *session.Store, renderer *Renderer, logger *slog.Logger) *AllergenHandler {
	return &AllergenHandler{base: base{
		client:   client,
		sessions: sessions,
		renderer: renderer,
		logger:   logger,
	}}
}

// List renders the allergen screen, or the table fragment for htmx search.
//
// GET /allergens
func (h *AllergenHandler) List(w http.ResponseWriter, r *http.Request) {
	search := strings.TrimSpace(r.FormValue("search"))
	ctx := h.sessions.Context(r)

	allergens, err := h.client.ListAllergens(ctx)
	if err != nil {
		h.Error(w, r, err)
		return
	}

	tableData := map[string]interface{}{
		"Allergens": domain.FilterAllergens(allergens, search),
		"Search":    search,
		"CSRFField": csrf.TemplateField(r),
	}

	if isHtmx(r) {
		h.renderer.RenderPartial(w, "allergen-table", tableData)
		return
	}

	data := h.page(w, r, "Allergens")
	data["Table"] = tableData
	h.renderer.RenderHTTP(w, "allergens", data)
}

// Overview returns the allergen/product matrix fragment.
//
// GET /allergens/overview
func (h *AllergenHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.client.AllergenOverview(h.sessions.Context(r))
	if err != nil {
		h.Error(w, r, err)
		return
	}

	h.renderer.RenderPartial(w, "allergen-overview", map[string]interface{}{
		"Overview": overview,
	})
}

// Form returns the modal form fragment with the allergen type choices and
// the products available for tagging.
//
// GET /allergens/new
// GET /allergens/{id}/edit
func (h *AllergenHandler) Form(w http.ResponseWriter, r *http.Request) {
	ctx := h.sessions.Context(r)

	types, err := h.client.AllergenTypes(ctx)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	products, err := h.client.ProductOptions(ctx)
	if err != nil {
		h.Error(w, r, err)
		return
	}

	data := map[string]interface{}{
		"Types":     types,
		"Products":  products,
		"Fields":    map[string]string{},
		"CSRFField": csrf.TemplateField(r),
	}

	if idStr := r.PathValue("id"); idStr != "" {
		id, ok := pathID(r)
		if !ok {
			http.NotFound(w, r)
			return
		}
		allergen, err := h.client.GetAllergen(ctx, id)
		if err != nil {
			h.Error(w, r, err)
			return
		}
		data["Allergen"] = allergen
		data["ProductIDs"] = productIDSet(allergen.Products)
	}

	h.renderer.RenderPartial(w, "allergen-form", data)
}

// Create adds an allergen and re-renders the table with a toast.
//
// POST /allergens
func (h *AllergenHandler) Create(w http.ResponseWriter, r *http.Request) {
	params, ferr := allergenParamsFromForm(r)
	if ferr != nil {
		h.mutationError(w, r, ferr, "allergen-form", h.formErrorData(r, params, 0))
		return
	}

	allergen, err := h.client.CreateAllergen(h.sessions.Context(r), params)
	if err != nil {
		h.mutationError(w, r, err, "allergen-form", h.formErrorData(r, params, 0))
		return
	}

	h.logger.Info("allergen created", "allergen_id", allergen.ID, "name", allergen.Name)
	h.afterMutation(w, r, "Allergen created.")
}

// Update replaces an allergen and re-renders the table.
//
// PUT /allergens/{id}
func (h *AllergenHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	params, ferr := allergenParamsFromForm(r)
	if ferr != nil {
		h.mutationError(w, r, ferr, "allergen-form", h.formErrorData(r, params, id))
		return
	}

	allergen, err := h.client.UpdateAllergen(h.sessions.Context(r), id, params)
	if err != nil {
		h.mutationError(w, r, err, "allergen-form", h.formErrorData(r, params, id))
		return
	}

	h.logger.Info("allergen updated", "allergen_id", allergen.ID, "name", allergen.Name)
	h.afterMutation(w, r, "Allergen updated.")
}

// Delete removes an allergen after the confirm dialog.
//
// DELETE /allergens/{id}
func (h *AllergenHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := h.client.DeleteAllergen(h.sessions.Context(r), id); err != nil {
		h.Error(w, r, err)
		return
	}

	h.logger.Info("allergen deleted", "allergen_id", id)
	h.afterMutation(w, r, "Allergen deleted.")
}

func (h *AllergenHandler) afterMutation(w http.ResponseWriter, r *http.Request, message string) {
	search := strings.TrimSpace(r.FormValue("search"))

	allergens, err := h.client.ListAllergens(h.sessions.Context(r))
	if err != nil {
		h.Error(w, r, err)
		return
	}

	w.Header().Set("HX-Trigger", "close-modal")
	h.renderer.RenderPartialWithToast(w, "allergen-table", map[string]interface{}{
		"Allergens": domain.FilterAllergens(allergens, search),
		"Search":    search,
		"CSRFField": csrf.TemplateField(r),
	}, ToastData{
		Type:    "success",
		Message: message,
	})
}

// formErrorData rebuilds the form choices for a validation re-render. The
// choice lookups degrade to empty selects when they cannot be fetched.
func (h *AllergenHandler) formErrorData(r *http.Request, params domain.AllergenParams, id int) map[string]interface{} {
	ctx := h.sessions.Context(r)
	data := map[string]interface{}{
		"Form":       params,
		"AllergenID": id,
	}

	if types, err := h.client.AllergenTypes(ctx); err == nil {
		data["Types"] = types
	}
	if products, err := h.client.ProductOptions(ctx); err == nil {
		data["Products"] = products
	}

	selected := make(map[int]bool, len(params.ProductIDs))
	for _, pid := range params.ProductIDs {
		selected[pid] = true
	}
	data["ProductIDs"] = selected
	return data
}

func productIDSet(products []domain.ProductOption) map[int]bool {
	set := make(map[int]bool, len(products))
	for _, p := range products {
		set[p.ID] = true
	}
	return set
}

func allergenParamsFromForm(r *http.Request) (domain.AllergenParams, error) {
	const op = "handler.allergens.form"

	if err := r.ParseForm(); err != nil {
		return domain.AllergenParams{}, domain.Invalid(op, "Bad form submission.")
	}

	params := domain.AllergenParams{
		Name:        r.PostFormValue("allergen_name"),
		Description: strings.TrimSpace(r.PostFormValue("description")),
	}

	if params.Name == "" {
		ve := domain.NewValidationError(op, "Please check your input and try again.")
		ve.Fields["allergen_name"] = "Choose an allergen type."
		return params, ve
	}

	for _, raw := range r.PostForm["product_ids"] {
		id, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		params.ProductIDs = append(params.ProductIDs, id)
	}

	return params, nil
}
