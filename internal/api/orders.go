package api

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/verus/warehouse/internal/model"
	"github.com/verus/warehouse/internal/store"
)

// OrdersHandler handles order CRUD and order processing endpoints.
type OrdersHandler struct {
	DB *sql.DB

	// DoublingMarker is the case-insensitive title substring that marks
	// equipment deducted at double quantity for pair-crew orders.
	DoublingMarker string
}

type orderItemRequest struct {
	EquipmentID int64 `json:"equipment_id"`
	Quantity    int   `json:"quantity"`
}

type createOrderRequest struct {
	CarNumber  string             `json:"car_number"`
	OrderDate  *time.Time         `json:"order_date"`
	Status     string             `json:"status"`
	Notes      string             `json:"notes"`
	IsPairCrew bool               `json:"is_pair_crew"`
	Items      []orderItemRequest `json:"items"`
}

type updateOrderRequest struct {
	CarNumber  *string    `json:"car_number"`
	OrderDate  *time.Time `json:"order_date"`
	Status     *string    `json:"status"`
	Notes      *string    `json:"notes"`
	IsPairCrew *bool      `json:"is_pair_crew"`
}

type processOrderRequest struct {
	Selections map[int64]int `json:"selections"`
	CarNumber  string        `json:"car_number"`
	IsPairCrew bool          `json:"is_pair_crew"`
	Notes      string        `json:"notes"`
}

// List handles GET /api/orders.
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !model.ValidOrderStatus(status) {
		respondValidation(w, map[string]string{"status": "invalid status"})
		return
	}

	orders, err := store.ListOrders(r.Context(), h.DB, status)
	if err != nil {
		respondStoreError(w, err, "Order not found", "failed to list orders")
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}
	respond(w, http.StatusOK, "", orders)
}

// Create handles POST /api/orders.
func (h *OrdersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items := make([]model.OrderLineItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, model.OrderLineItem{
			EquipmentID: item.EquipmentID,
			Quantity:    item.Quantity,
		})
	}

	newOrder := store.NewOrder{
		CarNumber:  req.CarNumber,
		Status:     req.Status,
		Notes:      req.Notes,
		IsPairCrew: req.IsPairCrew,
		Items:      items,
	}
	if req.OrderDate != nil {
		newOrder.OrderDate = *req.OrderDate
	}

	order, err := store.CreateOrder(r.Context(), h.DB, newOrder)
	if err != nil {
		respondStoreError(w, err, "Order not found", "failed to create order")
		return
	}

	respond(w, http.StatusCreated, "Order created successfully", order)
}

// Get handles GET /api/orders/{id}.
func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := store.GetOrder(r.Context(), h.DB, id)
	if err != nil {
		respondStoreError(w, err, "Order not found", "failed to get order")
		return
	}

	respond(w, http.StatusOK, "", order)
}

// Update handles PUT /api/orders/{id}. Line items are immutable; only the
// order's own fields can change. Absent fields keep their current values.
func (h *OrdersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req updateOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	current, err := store.GetOrder(r.Context(), h.DB, id)
	if err != nil {
		respondStoreError(w, err, "Order not found", "failed to get order")
		return
	}

	carNumber := current.CarNumber
	orderDate := current.OrderDate
	status := current.Status
	notes := current.Notes
	isPairCrew := current.IsPairCrew
	if req.CarNumber != nil {
		carNumber = *req.CarNumber
	}
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}
	if req.Status != nil {
		status = *req.Status
	}
	if req.Notes != nil {
		notes = *req.Notes
	}
	if req.IsPairCrew != nil {
		isPairCrew = *req.IsPairCrew
	}

	order, err := store.UpdateOrder(r.Context(), h.DB, id, carNumber, orderDate, status, notes, isPairCrew)
	if err != nil {
		respondStoreError(w, err, "Order not found", "failed to update order")
		return
	}

	respond(w, http.StatusOK, "Order updated successfully", order)
}

// Delete handles DELETE /api/orders/{id}.
func (h *OrdersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	if err := store.DeleteOrder(r.Context(), h.DB, id); err != nil {
		respondStoreError(w, err, "Order not found", "failed to delete order")
		return
	}

	respond(w, http.StatusOK, "Order deleted successfully", nil)
}

// Process handles POST /api/orders/process: the cart-to-deduction workflow.
func (h *OrdersHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req processOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := store.ProcessOrder(r.Context(), h.DB, h.DoublingMarker, store.ProcessRequest{
		Selections: req.Selections,
		CarNumber:  req.CarNumber,
		IsPairCrew: req.IsPairCrew,
		Notes:      req.Notes,
	})
	if err != nil {
		respondStoreError(w, err, "Equipment not found", "failed to process order")
		return
	}

	respond(w, http.StatusOK, "Order processed successfully", result)
}
