// Package api exposes the cart item repository over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/attribute"

	"cartapi/pkg/cartitem"
	"cartapi/pkg/logger"
	"cartapi/pkg/otel"
)

// Handlers serves the /cart-items resource.
type Handlers struct {
	repo cartitem.Repository
	log  *logger.Logger
}

// NewHandlers creates handlers backed by repo.
func NewHandlers(repo cartitem.Repository, log *logger.Logger) *Handlers {
	return &Handlers{repo: repo, log: log}
}

// Register mounts the cart item routes on r.
func (h *Handlers) Register(r *mux.Router) {
	api := r.PathPrefix("/cart-items").Subrouter()
	api.HandleFunc("", h.list).Methods(http.MethodGet)
	api.HandleFunc("", h.create).Methods(http.MethodPost)
	api.HandleFunc("/{id:[0-9]+}", h.get).Methods(http.MethodGet)
	api.HandleFunc("/{id:[0-9]+}", h.update).Methods(http.MethodPut)
	api.HandleFunc("/{id:[0-9]+}", h.delete).Methods(http.MethodDelete)
}

// list returns cart items, optionally filtered and paginated.
// @Summary List cart items
// @Produce json
// @Param maxPrice query number false "Keep items priced at or below this value; -1 disables"
// @Param prefix query string false "Case-insensitive product prefix"
// @Param pageSize query int false "Items per page; 0 disables paging"
// @Param page query int false "Zero-based page index"
// @Success 200 {array} cartitem.CartItem
// @Router /cart-items [get]
func (h *Handlers) list(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "api.list")
	defer span.End()

	q := parseQuery(r.URL.Query())

	items, err := h.repo.List(ctx)
	if err != nil {
		h.log.Error(ctx, "list cart items", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, q.Apply(items))
}

// get retrieves a cart item by id.
// @Summary Get cart item
// @Produce json
// @Param id path int true "Cart item ID"
// @Success 200 {object} cartitem.CartItem
// @Failure 404
// @Router /cart-items/{id} [get]
func (h *Handlers) get(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "api.get")
	defer span.End()

	id := pathID(r)
	span.SetAttributes(attribute.Int("cartitem.id", id))

	item, err := h.repo.Get(ctx, id)
	if err != nil {
		h.fail(w, r, "get cart item", err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// create adds a cart item. Any id in the body is ignored.
// @Summary Create cart item
// @Accept json
// @Produce json
// @Param item body cartitem.CartItem true "Cart item"
// @Success 201 {object} cartitem.CartItem
// @Header 201 {string} Location "cart-items/{id}"
// @Failure 400
// @Router /cart-items [post]
func (h *Handlers) create(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "api.create")
	defer span.End()

	var item cartitem.CartItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.repo.Insert(ctx, item)
	if err != nil {
		h.fail(w, r, "create cart item", err)
		return
	}
	span.SetAttributes(attribute.Int("cartitem.id", item.ID))

	w.Header().Set("Location", fmt.Sprintf("cart-items/%d", item.ID))
	writeJSON(w, http.StatusCreated, item)
}

// update replaces a cart item. The body id must match the path id.
// @Summary Update cart item
// @Accept json
// @Produce json
// @Param id path int true "Cart item ID"
// @Param item body cartitem.CartItem true "Cart item"
// @Success 200 {object} cartitem.CartItem
// @Failure 400
// @Failure 404
// @Router /cart-items/{id} [put]
func (h *Handlers) update(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "api.update")
	defer span.End()

	id := pathID(r)
	span.SetAttributes(attribute.Int("cartitem.id", id))

	var item cartitem.CartItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if item.ID != id {
		http.Error(w, "id in body does not match path", http.StatusBadRequest)
		return
	}

	item, err := h.repo.Replace(ctx, id, item)
	if err != nil {
		h.fail(w, r, "update cart item", err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// delete removes a cart item.
// @Summary Delete cart item
// @Param id path int true "Cart item ID"
// @Success 204
// @Failure 404
// @Router /cart-items/{id} [delete]
func (h *Handlers) delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "api.delete")
	defer span.End()

	id := pathID(r)
	span.SetAttributes(attribute.Int("cartitem.id", id))

	if err := h.repo.Remove(ctx, id); err != nil {
		h.fail(w, r, "delete cart item", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// fail maps a repository error to a response.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, cartitem.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	h.log.Error(r.Context(), op, "error", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// pathID returns the id route variable, or 0 when it does not fit in an int.
// Ids start at 1, so 0 never matches a stored item.
func pathID(r *http.Request) int {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return 0
	}
	return id
}

// parseQuery reads the list parameters. A value that does not parse keeps
// its default.
func parseQuery(v url.Values) cartitem.Query {
	q := cartitem.NewQuery()
	if f, err := strconv.ParseFloat(v.Get("maxPrice"), 64); err == nil {
		q.MaxPrice = f
	}
	if v.Has("prefix") {
		prefix := v.Get("prefix")
		q.Prefix = &prefix
	}
	if n, err := strconv.Atoi(v.Get("pageSize")); err == nil {
		q.PageSize = n
	}
	if n, err := strconv.Atoi(v.Get("page")); err == nil {
		q.Page = n
	}
	return q
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
