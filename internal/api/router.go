package api

import (
	"database/sql"
	"net/http"
)

// NewRouter creates the API router with all endpoints registered.
// doublingMarker configures the pair-crew doubling rule (see OrdersHandler).
func NewRouter(db *sql.DB, doublingMarker string) http.Handler {
	mux := http.NewServeMux()

	equipmentHandler := &EquipmentHandler{DB: db}
	ordersHandler := &OrdersHandler{DB: db, DoublingMarker: doublingMarker}
	reportsHandler := &ReportsHandler{DB: db}

	// Equipment stock.
	mux.HandleFunc("GET /api/equipment", equipmentHandler.List)
	mux.HandleFunc("POST /api/equipment", equipmentHandler.Create)
	mux.HandleFunc("GET /api/equipment/{id}", equipmentHandler.Get)
	mux.HandleFunc("PUT /api/equipment/{id}", equipmentHandler.Update)
	mux.HandleFunc("PATCH /api/equipment/{id}/quantity", equipmentHandler.UpdateQuantity)
	mux.HandleFunc("DELETE /api/equipment/{id}", equipmentHandler.Delete)

	// Orders.
	mux.HandleFunc("GET /api/orders", ordersHandler.List)
	mux.HandleFunc("POST /api/orders", ordersHandler.Create)
	mux.HandleFunc("POST /api/orders/process", ordersHandler.Process)
	mux.HandleFunc("GET /api/orders/{id}", ordersHandler.Get)
	mux.HandleFunc("PUT /api/orders/{id}", ordersHandler.Update)
	mux.HandleFunc("DELETE /api/orders/{id}", ordersHandler.Delete)

	// Reports.
	mux.HandleFunc("GET /api/reports/data", reportsHandler.Data)
	mux.HandleFunc("GET /api/reports/excel", reportsHandler.Excel)

	mux.HandleFunc("GET /api/health", handleHealth)

	return mux
}
