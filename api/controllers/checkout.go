package controllers

import (
	"net/http"

	"github.com/bookhaven/bookhaven-backend/api/middleware"
	"github.com/bookhaven/bookhaven-backend/api/responses"
	"github.com/bookhaven/bookhaven-backend/api/validators"
	checkoutsvc "github.com/bookhaven/bookhaven-backend/internal/checkout"
	"github.com/bookhaven/bookhaven-backend/pkg/enums"
	"github.com/bookhaven/bookhaven-backend/pkg/logger"
	"github.com/bookhaven/bookhaven-backend/pkg/types"
)

// GetCheckoutSummary returns the selected cart entries with derived totals.
func GetCheckoutSummary(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := svc.GetSummary(r.Context(), middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

type submitCheckoutRequest struct {
	FullName      string `json:"full_name" validate:"required"`
	Phone         string `json:"phone" validate:"required"`
	Address       string `json:"address" validate:"required"`
	City          string `json:"city" validate:"required"`
	PostalCode    string `json:"postal_code" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"required"`
}

func (req submitCheckoutRequest) toInput() checkoutsvc.SubmitInput {
	return checkoutsvc.SubmitInput{
		Shipping: types.ShippingDetails{
			FullName:   req.FullName,
			Phone:      req.Phone,
			Address:    req.Address,
			City:       req.City,
			PostalCode: req.PostalCode,
		},
		PaymentMethod: enums.PaymentMethod(req.PaymentMethod),
	}
}

// SubmitCheckout places an order from the selected cart entries.
func SubmitCheckout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload submitCheckoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Submit(r.Context(), middleware.SessionIDFromContext(r.Context()), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}
