package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"

	"github.com/Meerdlawar/SweetDive/internal/api"
	"github.com/Meerdlawar/SweetDive/internal/domain"
	"github.com/Meerdlawar/SweetDive/internal/session"
)

// ProductHandler serves the product screen: search, type filter,
// pagination, and modal forms with allergen tagging.
type ProductHandler struct {
	base
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(client *api.Client, sessions *session.Store, renderer *Renderer, logger *slog.Logger, pageSize int) *ProductHandler {
	return &ProductHandler{base: base{
		client:   client,
		sessions: sessions,
		renderer: renderer,
		logger:   logger,
		pageSize: pageSize,
	}}
}

// List renders the product screen, or the table fragment for htmx.
//
// GET /products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query := parseListQuery(r, "product_type")
	ctx := h.sessions.Context(r)

	result, err := h.client.ListProducts(ctx, api.ProductListParams{
		Page:     query.Page,
		PageSize: h.pageSize,
		Search:   query.Search,
		Type:     query.Filter,
	})
	if err != nil {
		h.Error(w, r, err)
		return
	}

	tableData := h.tableData(r, query, result)
	if isHtmx(r) {
		h.renderer.RenderPartial(w, "product-table", tableData)
		return
	}

	types, err := h.client.ProductTypes(ctx)
	if err != nil {
		// The filter dropdown degrades to "all types".
		h.logError(r, err, domain.ErrorCode(err))
	}

	data := h.page(w, r, "Products")
	data["Table"] = tableData
	data["Types"] = types
	h.renderer.RenderHTTP(w, "products", data)
}

// Form returns the modal form fragment with the type, suitability and
// allergen choices, populated when editing.
//
// GET /products/new
// GET /products/{id}/edit
func (h *ProductHandler) Form(w http.ResponseWriter, r *http.Request) {
	ctx := h.sessions.Context(r)

	choices, err := h.formChoices(ctx)
	if err != nil {
		h.Error(w, r, err)
		return
	}

	data := map[string]interface{}{
		"Types":         choices.types,
		"Suitabilities": choices.suitabilities,
		"AllAllergens":  choices.allergens,
		"Fields":        map[string]string{},
		"CSRFField":     csrf.TemplateField(r),
	}

	if idStr := r.PathValue("id"); idStr != "" {
		id, ok := pathID(r)
		if !ok {
			http.NotFound(w, r)
			return
		}
		product, err := h.client.GetProduct(ctx, id)
		if err != nil {
			h.Error(w, r, err)
			return
		}
		data["Product"] = product
		data["AllergenIDs"] = allergenIDSet(product.Allergens)
	}

	h.renderer.RenderPartial(w, "product-form", data)
}

// Create adds a product and re-renders the table with a toast.
//
// POST /products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	params, ferr := productParamsFromForm(r)
	if ferr != nil {
		h.mutationError(w, r, ferr, "product-form", h.formErrorData(r, params, 0))
		return
	}

	product, err := h.client.CreateProduct(h.sessions.Context(r), params)
	if err != nil {
		h.mutationError(w, r, err, "product-form", h.formErrorData(r, params, 0))
		return
	}

	h.logger.Info("product created", "product_id", product.ID, "name", product.Name)
	h.afterMutation(w, r, "Product created.")
}

// Update replaces a product and re-renders the table.
//
// PUT /products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	params, ferr := productParamsFromForm(r)
	if ferr != nil {
		h.mutationError(w, r, ferr, "product-form", h.formErrorData(r, params, id))
		return
	}

	product, err := h.client.UpdateProduct(h.sessions.Context(r), id, params)
	if err != nil {
		h.mutationError(w, r, err, "product-form", h.formErrorData(r, params, id))
		return
	}

	h.logger.Info("product updated", "product_id", product.ID, "name", product.Name)
	h.afterMutation(w, r, "Product updated.")
}

// Delete removes a product after the confirm dialog.
//
// DELETE /products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := h.client.DeleteProduct(h.sessions.Context(r), id); err != nil {
		h.Error(w, r, err)
		return
	}

	h.logger.Info("product deleted", "product_id", id)
	h.afterMutation(w, r, "Product deleted.")
}

func (h *ProductHandler) afterMutation(w http.ResponseWriter, r *http.Request, message string) {
	query := parseListQuery(r, "product_type")

	result, err := h.client.ListProducts(h.sessions.Context(r), api.ProductListParams{
		Page:     query.Page,
		PageSize: h.pageSize,
		Search:   query.Search,
		Type:     query.Filter,
	})
	if err != nil {
		h.Error(w, r, err)
		return
	}

	w.Header().Set("HX-Trigger", "close-modal")
	h.renderer.RenderPartialWithToast(w, "product-table", h.tableData(r, query, result), ToastData{
		Type:    "success",
		Message: message,
	})
}

func (h *ProductHandler) tableData(r *http.Request, query listQuery, result *domain.ListResult[domain.Product]) map[string]interface{} {
	return map[string]interface{}{
		"Result":     result,
		"Query":      query,
		"PagePrefix": query.pagePrefix("product_type"),
		"CSRFField":  csrf.TemplateField(r),
	}
}

func (h *ProductHandler) formErrorData(r *http.Request, params domain.ProductParams, id int) map[string]interface{} {
	choices, err := h.formChoices(h.sessions.Context(r))
	data := map[string]interface{}{
		"Form":      params,
		"ProductID": id,
	}
	if err == nil {
		data["Types"] = choices.types
		data["Suitabilities"] = choices.suitabilities
		data["AllAllergens"] = choices.allergens
	}
	selected := make(map[int]bool, len(params.AllergenIDs))
	for _, aid := range params.AllergenIDs {
		selected[aid] = true
	}
	data["AllergenIDs"] = selected
	return data
}

type productFormChoices struct {
	types         domain.LookupSet
	suitabilities domain.LookupSet
	allergens     []domain.Allergen
}

// formChoices gathers the three lookups the product form needs. They are
// independent, so they are fetched concurrently.
func (h *ProductHandler) formChoices(ctx context.Context) (*productFormChoices, error) {
	var (
		choices productFormChoices
		errs    [3]error
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		choices.allergens, errs[2] = h.client.ListAllergens(ctx)
	}()

	choices.types, errs[0] = h.client.ProductTypes(ctx)
	choices.suitabilities, errs[1] = h.client.Suitabilities(ctx)
	<-done

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return &choices, nil
}

func allergenIDSet(allergens []domain.Allergen) map[int]bool {
	set := make(map[int]bool, len(allergens))
	for _, a := range allergens {
		set[a.ID] = true
	}
	return set
}

func productParamsFromForm(r *http.Request) (domain.ProductParams, error) {
	const op = "handler.products.form"

	if err := r.ParseForm(); err != nil {
		return domain.ProductParams{}, domain.Invalid(op, "Bad form submission.")
	}

	params := domain.ProductParams{
		Name:        strings.TrimSpace(r.PostFormValue("product_name")),
		Type:        r.PostFormValue("product_type"),
		Suitability: r.PostFormValue("product_suitability"),
		IsActive:    r.PostFormValue("is_active") != "",
	}

	price, err := domain.ParseMoney(r.PostFormValue("product_price"))
	if err != nil {
		ve := domain.NewValidationError(op, "Please check your input and try again.")
		ve.Fields["product_price"] = "Enter a valid price, like 3.50."
		return params, ve
	}
	params.Price = price

	for _, raw := range r.PostForm["allergens"] {
		id, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		params.AllergenIDs = append(params.AllergenIDs, id)
	}

	return params, nil
}
