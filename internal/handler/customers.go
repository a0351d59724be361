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

// CustomerHandler serves the customer screen: a searchable paginated table
// with modal create/edit forms and delete confirmation.
type CustomerHandler struct {
	base
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(client *api.Client, sessions *session.Store, renderer *Renderer, logger *slog.Logger, pageSize int) *CustomerHandler {
	return &CustomerHandler{base: base{
		client:   client,
		sessions: sessions,
		renderer: renderer,
		logger:   logger,
		pageSize: pageSize,
	}}
}

// List renders the customer screen, or just the table fragment for htmx
// search and pagination requests.
//
// GET /customers
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	query := parseListQuery(r, "")

	result, err := h.client.ListCustomers(h.sessions.Context(r), api.CustomerListParams{
		Page:     query.Page,
		PageSize: h.pageSize,
		Search:   query.Search,
	})
	if err != nil {
		h.Error(w, r, err)
		return
	}

	tableData := h.tableData(r, query, result)
	if isHtmx(r) {
		h.renderer.RenderPartial(w, "customer-table", tableData)
		return
	}

	data := h.page(w, r, "Customers")
	data["Table"] = tableData
	h.renderer.RenderHTTP(w, "customers", data)
}

// Form returns the modal form fragment, blank for /new or populated for
// /{id}/edit.
//
// GET /customers/new
// GET /customers/{id}/edit
func (h *CustomerHandler) Form(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Fields":    map[string]string{},
		"CSRFField": csrf.TemplateField(r),
	}

	if idStr := r.PathValue("id"); idStr != "" {
		id, ok := pathID(r)
		if !ok {
			http.NotFound(w, r)
			return
		}
		customer, err := h.client.GetCustomer(h.sessions.Context(r), id)
		if err != nil {
			h.Error(w, r, err)
			return
		}
		data["Customer"] = customer
	}

	h.renderer.RenderPartial(w, "customer-form", data)
}

// Create adds a customer and re-renders the table with a toast.
//
// POST /customers
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	params, err := customerParamsFromForm(r)
	if err != nil {
		h.Error(w, r, err)
		return
	}

	customer, err := h.client.CreateCustomer(h.sessions.Context(r), params)
	if err != nil {
		h.mutationError(w, r, err, "customer-form", map[string]interface{}{
			"Form": params,
		})
		return
	}

	h.logger.Info("customer created", "customer_id", customer.ID)
	h.afterMutation(w, r, "Customer created.")
}

// Update replaces a customer's details and re-renders the table.
//
// PUT /customers/{id}
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	params, err := customerParamsFromForm(r)
	if err != nil {
		h.Error(w, r, err)
		return
	}

	customer, err := h.client.UpdateCustomer(h.sessions.Context(r), id, params)
	if err != nil {
		h.mutationError(w, r, err, "customer-form", map[string]interface{}{
			"Form":       params,
			"CustomerID": id,
		})
		return
	}

	h.logger.Info("customer updated", "customer_id", customer.ID)
	h.afterMutation(w, r, "Customer updated.")
}

// Delete removes a customer after the confirm dialog.
//
// DELETE /customers/{id}
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := h.client.DeleteCustomer(h.sessions.Context(r), id); err != nil {
		h.Error(w, r, err)
		return
	}

	h.logger.Info("customer deleted", "customer_id", id)
	h.afterMutation(w, r, "Customer deleted.")
}

// afterMutation closes the modal and re-renders the table the user was
// looking at, with a success toast.
func (h *CustomerHandler) afterMutation(w http.ResponseWriter, r *http.Request, message string) {
	query := parseListQuery(r, "")

	result, err := h.client.ListCustomers(h.sessions.Context(r), api.CustomerListParams{
		Page:     query.Page,
		PageSize: h.pageSize,
		Search:   query.Search,
	})
	if err != nil {
		h.Error(w, r, err)
		return
	}

	w.Header().Set("HX-Trigger", "close-modal")
	h.renderer.RenderPartialWithToast(w, "customer-table", h.tableData(r, query, result), ToastData{
		Type:    "success",
		Message: message,
	})
}

// mutationError re-renders the modal form with field errors, or falls back
// to the shared error path for anything that is not a validation failure.
func (h *base) mutationError(w http.ResponseWriter, r *http.Request, err error, formPartial string, formData map[string]interface{}) {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		h.Error(w, r, err)
		return
	}

	data := make(map[string]interface{}, len(formData)+3)
	for k, v := range formData {
		data[k] = v
	}
	data["Error"] = ve.Message
	data["Fields"] = ve.Fields
	data["CSRFField"] = csrf.TemplateField(r)

	w.Header().Set("HX-Retarget", "#modal-body")
	w.Header().Set("HX-Reswap", "innerHTML")
	w.WriteHeader(http.StatusUnprocessableEntity)
	h.renderer.RenderPartial(w, formPartial, data)
}

func (h *CustomerHandler) tableData(r *http.Request, query listQuery, result *domain.ListResult[domain.Customer]) map[string]interface{} {
	return map[string]interface{}{
		"Result":     result,
		"Query":      query,
		"PagePrefix": query.pagePrefix(""),
		"CSRFField":  csrf.TemplateField(r),
	}
}

func customerParamsFromForm(r *http.Request) (domain.CustomerParams, error) {
	if err := r.ParseForm(); err != nil {
		return domain.CustomerParams{}, domain.Invalid("handler.customers.form", "Bad form submission.")
	}

	return domain.CustomerParams{
		Prefix:      strings.TrimSpace(r.PostFormValue("prefix")),
		FirstName:   strings.TrimSpace(r.PostFormValue("first_name")),
		LastName:    strings.TrimSpace(r.PostFormValue("last_name")),
		PhoneNumber: strings.TrimSpace(r.PostFormValue("phone_number")),
		Email:       strings.TrimSpace(r.PostFormValue("email")),
		Subfix:      strings.TrimSpace(r.PostFormValue("subfix")),
	}, nil
}
