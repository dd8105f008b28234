package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/verus/warehouse/internal/model"
	"github.com/verus/warehouse/internal/store"
)

// EquipmentHandler handles equipment CRUD endpoints.
type EquipmentHandler struct {
	DB *sql.DB
}

// equipmentRequest is shared by create and update; update treats absent
// fields as "keep current value".
type equipmentRequest struct {
	Title    *string `json:"title"`
	Quantity *int    `json:"quantity"`
	Image    *string `json:"image"`
}

// List handles GET /api/equipment.
func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListEquipment(r.Context(), h.DB)
	if err != nil {
		respondStoreError(w, err, "Equipment not found", "failed to list equipment")
		return
	}
	if items == nil {
		items = []model.Equipment{}
	}
	respond(w, http.StatusOK, "", items)
}

// Create handles POST /api/equipment.
func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req equipmentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	errs := map[string]string{}
	if req.Title == nil || *req.Title == "" {
		errs["title"] = "title is required"
	}
	if req.Quantity == nil {
		errs["quantity"] = "quantity is required"
	}
	if req.Image == nil || *req.Image == "" {
		errs["image"] = "image is required"
	}
	if len(errs) > 0 {
		respondValidation(w, errs)
		return
	}

	eq, err := store.CreateEquipment(r.Context(), h.DB, *req.Title, *req.Quantity, *req.Image)
	if err != nil {
		respondStoreError(w, err, "Equipment not found", "failed to create equipment")
		return
	}

	respond(w, http.StatusCreated, "Equipment created successfully", eq)
}

// Get handles GET /api/equipment/{id}.
func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid equipment id")
		return
	}

	eq, err := store.GetEquipment(r.Context(), h.DB, id)
	if err != nil {
		respondStoreError(w, err, "Equipment not found", "failed to get equipment")
		return
	}

	respond(w, http.StatusOK, "", eq)
}

// Update handles PUT /api/equipment/{id}. Absent fields keep their current
// values.
func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid equipment id")
		return
	}

	var req equipmentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	current, err := store.GetEquipment(r.Context(), h.DB, id)
	if err != nil {
		respondStoreError(w, err, "Equipment not found", "failed to get equipment")
		return
	}

	title := current.Title
	quantity := current.Quantity
	image := current.Image
	if req.Title != nil {
		title = *req.Title
	}
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if req.Image != nil {
		image = *req.Image
	}

	eq, err := store.UpdateEquipment(r.Context(), h.DB, id, title, quantity, image)
	if err != nil {
		respondStoreError(w, err, "Equipment not found", "failed to update equipment")
		return
	}

	respond(w, http.StatusOK, "Equipment updated successfully", eq)
}

// UpdateQuantity handles PATCH /api/equipment/{id}/quantity.
func (h *EquipmentHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid equipment id")
		return
	}

	var req struct {
		Quantity *int `json:"quantity"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Quantity == nil {
		respondValidation(w, map[string]string{"quantity": "quantity is required"})
		return
	}

	eq, err := store.SetEquipmentQuantity(r.Context(), h.DB, id, *req.Quantity)
	if err != nil {
		respondStoreError(w, err, "Equipment not found", "failed to update equipment quantity")
		return
	}

	respond(w, http.StatusOK, "Equipment quantity updated successfully", eq)
}

// Delete handles DELETE /api/equipment/{id}.
func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid equipment id")
		return
	}

	if err := store.DeleteEquipment(r.Context(), h.DB, id); err != nil {
		respondStoreError(w, err, "Equipment not found", "failed to delete equipment")
		return
	}

	respond(w, http.StatusOK, "Equipment deleted successfully", nil)
}
