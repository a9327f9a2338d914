package controllers

import (
	"net/http"

	"github.com/bookhaven/bookhaven-backend/api/responses"
	"github.com/bookhaven/bookhaven-backend/api/validators"
	inventorysvc "github.com/bookhaven/bookhaven-backend/internal/inventory"
	"github.com/bookhaven/bookhaven-backend/pkg/logger"
)

type setStockRequest struct {
	StockQty *int `json:"stock_qty" validate:"required,min=0"`
}

// SetStock sets a book's stock quantity and rederives its stock status.
func SetStock(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookID, err := parseBookID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setStockRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.SetStock(r.Context(), bookID, *payload.StockQty)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// ListLowStock returns books at or below the low-stock threshold,
// lowest quantity first.
func ListLowStock(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dtos, err := svc.ListLowStock(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dtos)
	}
}
