package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/csrf"

	"github.com/Meerdlawar/SweetDive/internal/api"
	"github.com/Meerdlawar/SweetDive/internal/domain"
	"github.com/Meerdlawar/SweetDive/internal/session"
)

// OrderHandler serves the order screen: a filterable table, a detail view
// with line items, and the order form with its line-item editor.
type OrderHandler struct {
	base
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(client *api.Client, sessions *session.Store, renderer *Renderer, logger *slog.Logger, pageSize int) *OrderHandler {
	return &OrderHandler{base: base{
		client:   client,
		sessions: sessions,
		renderer: renderer,
		logger:   logger,
		pageSize: pageSize,
	}}
}

// List renders the order screen, or the table fragment for htmx.
//
// GET /orders
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	query := parseListQuery(r, "status")
	ctx := h.sessions.Context(r)

	result, err := h.client.ListOrders(ctx, api.OrderListParams{
		Page:     query.Page,
		PageSize: h.pageSize,
		Search:   query.Search,
		Status:   query.Filter,
	})
	if err != nil {
		h.Error(w, r, err)
		return
	}

	tableData := h.tableData(r, query, result)
	if isHtmx(r) {
		h.renderer.RenderPartial(w, "order-table", tableData)
		return
	}

	statuses, err := h.client.OrderStatuses(ctx)
	if err != nil {
		h.logError(r, err, domain.ErrorCode(err))
	}

	data := h.page(w, r, "Orders")
	data["Table"] = tableData
	data["Statuses"] = statuses
	h.renderer.RenderHTTP(w, "orders", data)
}

// Detail returns the order detail fragment with its line items and the
// backend-confirmed total.
//
// GET /orders/{id}
func (h *OrderHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	ctx := h.sessions.Context(r)
	order, err := h.client.GetOrder(ctx, id)
	if err != nil {
		h.Error(w, r, err)
		return
	}

	h.renderer.RenderPartial(w, "order-detail", h.detailData(r, order))
}

// Form returns the order form fragment: customer and product selectors,
// status and payment choices, and the Alpine line-item editor seeded with
// the product price lookup so the estimated total updates without a
// network round-trip.
//
// GET /orders/new
// GET /orders/{id}/edit
func (h *OrderHandler) Form(w http.ResponseWriter, r *http.Request) {
	ctx := h.sessions.Context(r)

	choices, err := h.formChoices(ctx)
	if err != nil {
		h.Error(w, r, err)
		return
	}

	data := h.formData(r, choices)

	if idStr := r.PathValue("id"); idStr != "" {
		id, ok := pathID(r)
		if !ok {
			http.NotFound(w, r)
			return
		}
		order, err := h.client.GetOrder(ctx, id)
		if err != nil {
			h.Error(w, r, err)
			return
		}
		data["Order"] = order
		data["Lines"] = draftLines(order.OrderProducts)
	}

	h.renderer.RenderPartial(w, "order-form", data)
}

// Create places an order with its line items. The backend computes the
// confirmed total; if it differs from the client's estimate the toast
// carries the confirmed figure.
//
// POST /orders
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	params, ferr := orderParamsFromForm(r)
	if ferr != nil {
		h.formError(w, r, ferr, params, 0)
		return
	}

	order, err := h.client.CreateOrder(h.sessions.Context(r), params)
	if err != nil {
		h.formError(w, r, err, params, 0)
		return
	}

	h.logger.Info("order created", "order_id", order.ID, "total", order.TotalPrice.String())
	h.afterMutation(w, r, h.confirmMessage("Order created", r, order))
}

// Update replaces an order and its line items.
//
// PUT /orders/{id}
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	params, ferr := orderParamsFromForm(r)
	if ferr != nil {
		h.formError(w, r, ferr, params, id)
		return
	}

	order, err := h.client.UpdateOrder(h.sessions.Context(r), id, params)
	if err != nil {
		h.formError(w, r, err, params, id)
		return
	}

	h.logger.Info("order updated", "order_id", order.ID, "total", order.TotalPrice.String())
	h.afterMutation(w, r, h.confirmMessage("Order updated", r, order))
}

// Delete removes an order after the confirm dialog.
//
// DELETE /orders/{id}
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := h.client.DeleteOrder(h.sessions.Context(r), id); err != nil {
		h.Error(w, r, err)
		return
	}

	h.logger.Info("order deleted", "order_id", id)
	h.afterMutation(w, r, "Order deleted.")
}

// AddProduct adds a product to an existing order from the detail view and
// re-renders the detail with the recalculated total.
//
// POST /orders/{id}/products
func (h *OrderHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	productID, err := strconv.Atoi(r.PostFormValue("product"))
	if err != nil || productID < 1 {
		h.Error(w, r, domain.Invalid("handler.orders.addProduct", "Choose a product to add."))
		return
	}
	quantity, err := strconv.Atoi(r.PostFormValue("quantity"))
	if err != nil || quantity < 1 {
		quantity = 1
	}

	ctx := h.sessions.Context(r)
	if err := h.client.AddOrderProduct(ctx, id, productID, quantity); err != nil {
		h.Error(w, r, err)
		return
	}

	h.rerenderDetail(w, r, id, "Product added to order.")
}

// RemoveProduct removes a product from an existing order.
//
// DELETE /orders/{id}/products/{productID}
func (h *OrderHandler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	productID, err := strconv.Atoi(r.PathValue("productID"))
	if err != nil || productID < 1 {
		http.NotFound(w, r)
		return
	}

	ctx := h.sessions.Context(r)
	if err := h.client.RemoveOrderProduct(ctx, id, productID); err != nil {
		h.Error(w, r, err)
		return
	}

	h.rerenderDetail(w, r, id, "Product removed from order.")
}

func (h *OrderHandler) rerenderDetail(w http.ResponseWriter, r *http.Request, id int, message string) {
	order, err := h.client.GetOrder(h.sessions.Context(r), id)
	if err != nil {
		h.Error(w, r, err)
		return
	}

	h.renderer.RenderPartialWithToast(w, "order-detail", h.detailData(r, order), ToastData{
		Type:    "success",
		Message: message,
	})
}

func (h *OrderHandler) afterMutation(w http.ResponseWriter, r *http.Request, message string) {
	query := parseListQuery(r, "status")

	result, err := h.client.ListOrders(h.sessions.Context(r), api.OrderListParams{
		Page:     query.Page,
		PageSize: h.pageSize,
		Search:   query.Search,
		Status:   query.Filter,
	})
	if err != nil {
		h.Error(w, r, err)
		return
	}

	w.Header().Set("HX-Trigger", "close-modal")
	h.renderer.RenderPartialWithToast(w, "order-table", h.tableData(r, query, result), ToastData{
		Type:    "success",
		Message: message,
	})
}

// confirmMessage compares the client's estimated total against the figure
// the backend confirmed; when they diverge the confirmed total is what the
// user sees.
func (h *OrderHandler) confirmMessage(verb string, r *http.Request, order *domain.Order) string {
	estimate, err := domain.ParseMoney(r.PostFormValue("estimated_total"))
	if err == nil && estimate != order.TotalPrice {
		return fmt.Sprintf("%s. Confirmed total £%s.", verb, order.TotalPrice.String())
	}
	return verb + "."
}

func (h *OrderHandler) formError(w http.ResponseWriter, r *http.Request, err error, params domain.OrderParams, id int) {
	choices, cerr := h.formChoices(h.sessions.Context(r))
	if cerr != nil {
		h.Error(w, r, err)
		return
	}

	data := h.formData(r, choices)
	data["Form"] = params
	data["OrderID"] = id
	data["Lines"] = params.Products
	h.mutationError(w, r, err, "order-form", data)
}

func (h *OrderHandler) formData(r *http.Request, choices *orderFormChoices) map[string]interface{} {
	return map[string]interface{}{
		"Customers":      choices.customers,
		"Products":       choices.products,
		"Statuses":       choices.statuses,
		"PaymentMethods": choices.payments,
		"Fields":         map[string]string{},
		"CSRFField":      csrf.TemplateField(r),
	}
}

func (h *OrderHandler) detailData(r *http.Request, order *domain.Order) map[string]interface{} {
	// The add-product selector degrades to hidden when the lookup fails.
	options, err := h.client.ProductOptions(h.sessions.Context(r))
	if err != nil {
		h.logError(r, err, domain.ErrorCode(err))
	}

	return map[string]interface{}{
		"Order":          order,
		"ProductOptions": options,
		"CSRFField":      csrf.TemplateField(r),
	}
}

func (h *OrderHandler) tableData(r *http.Request, query listQuery, result *domain.ListResult[domain.Order]) map[string]interface{} {
	return map[string]interface{}{
		"Result":     result,
		"Query":      query,
		"PagePrefix": query.pagePrefix("status"),
		"CSRFField":  csrf.TemplateField(r),
	}
}

type orderFormChoices struct {
	customers []domain.CustomerOption
	products  []domain.ProductOption
	statuses  domain.LookupSet
	payments  domain.LookupSet
}

// formChoices fans out the four independent lookups the order form needs
// and fails on the first error.
func (h *OrderHandler) formChoices(ctx context.Context) (*orderFormChoices, error) {
	var (
		choices orderFormChoices
		errs    [4]error
		wg      sync.WaitGroup
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		choices.customers, errs[0] = h.client.CustomerOptions(ctx)
	}()
	go func() {
		defer wg.Done()
		choices.products, errs[1] = h.client.ProductOptions(ctx)
	}()
	go func() {
		defer wg.Done()
		choices.statuses, errs[2] = h.client.OrderStatuses(ctx)
	}()
	go func() {
		defer wg.Done()
		choices.payments, errs[3] = h.client.PaymentMethods(ctx)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return &choices, nil
}

// draftLines converts committed line items back into draft rows for the
// edit form.
func draftLines(lines []domain.OrderLine) []domain.OrderLineItem {
	out := make([]domain.OrderLineItem, 0, len(lines))
	for _, line := range lines {
		out = append(out, domain.OrderLineItem{Product: line.Product, Quantity: line.Quantity})
	}
	return out
}

// orderParamsFromForm parses the order form, including the indexed line
// item rows the Alpine editor produces: products[0][product],
// products[0][quantity], products[1][product], ...
func orderParamsFromForm(r *http.Request) (domain.OrderParams, error) {
	const op = "handler.orders.form"

	if err := r.ParseForm(); err != nil {
		return domain.OrderParams{}, domain.Invalid(op, "Bad form submission.")
	}

	params := domain.OrderParams{
		Status:          r.PostFormValue("status"),
		MethodOfPayment: r.PostFormValue("method_of_payment"),
		Comments:        strings.TrimSpace(r.PostFormValue("comments")),
	}

	ve := domain.NewValidationError(op, "Please check your input and try again.")

	customer, err := strconv.Atoi(r.PostFormValue("customer"))
	if err != nil || customer < 1 {
		ve.Fields["customer"] = "Choose a customer."
	}
	params.Customer = customer

	placed, err := time.Parse("2006-01-02", r.PostFormValue("order_placed"))
	if err != nil {
		ve.Fields["order_placed"] = "Enter the date the order was placed."
	}
	params.OrderPlaced = placed

	if due := r.PostFormValue("order_due"); due != "" {
		d, err := time.Parse("2006-01-02", due)
		if err != nil {
			ve.Fields["order_due"] = "Enter a valid due date."
		} else {
			params.OrderDue = &d
		}
	}

	params.Products = lineItemsFromForm(r)
	if len(params.Products) == 0 {
		ve.Fields["products"] = "Add at least one product."
	}

	if len(ve.Fields) > 0 {
		return params, ve
	}
	return params, nil
}

func lineItemsFromForm(r *http.Request) []domain.OrderLineItem {
	var items []domain.OrderLineItem
	for i := 0; ; i++ {
		raw := r.PostFormValue(fmt.Sprintf("products[%d][product]", i))
		if raw == "" {
			break
		}
		product, err := strconv.Atoi(raw)
		if err != nil || product < 1 {
			continue
		}
		quantity, err := strconv.Atoi(r.PostFormValue(fmt.Sprintf("products[%d][quantity]", i)))
		if err != nil || quantity < 1 {
			quantity = 1
		}
		items = append(items, domain.OrderLineItem{Product: product, Quantity: quantity})
	}
	return items
}
