package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bookhaven/bookhaven-backend/api/responses"
	"github.com/bookhaven/bookhaven-backend/api/validators"
	catalogsvc "github.com/bookhaven/bookhaven-backend/internal/catalog"
	pkgerrors "github.com/bookhaven/bookhaven-backend/pkg/errors"
	"github.com/bookhaven/bookhaven-backend/pkg/logger"
	"github.com/bookhaven/bookhaven-backend/pkg/pagination"
)

// ListBooks handles the public catalog listing with search and category
// filters.
func ListBooks(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := parsePageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListBooks(r.Context(), catalogsvc.ListBooksInput{
			Search:   r.URL.Query().Get("search"),
			Category: r.URL.Query().Get("category"),
			Page:     page,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// GetBook handles the public book detail read.
func GetBook(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseBookID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		book, err := svc.GetBook(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, book)
	}
}

type createBookRequest struct {
	Title              string   `json:"title" validate:"required"`
	Author             string   `json:"author" validate:"required"`
	PriceCents         int      `json:"price_cents" validate:"required,min=0"`
	OriginalPriceCents int      `json:"original_price_cents"`
	Category           string   `json:"category" validate:"required"`
	Description        string   `json:"description"`
	Image              string   `json:"image"`
	Rating             float64  `json:"rating" validate:"min=0,max=5"`
	StockQty           int      `json:"stock_qty" validate:"min=0"`
	Keywords           []string `json:"keywords"`
}

// CreateBook handles admin catalog additions.
func CreateBook(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createBookRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		book, err := svc.CreateBook(r.Context(), catalogsvc.CreateBookInput{
			Title:              payload.Title,
			Author:             payload.Author,
			PriceCents:         payload.PriceCents,
			OriginalPriceCents: payload.OriginalPriceCents,
			Category:           payload.Category,
			Description:        payload.Description,
			Image:              payload.Image,
			Rating:             payload.Rating,
			StockQty:           payload.StockQty,
			Keywords:           payload.Keywords,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, book)
	}
}

type updateBookRequest struct {
	Title              *string   `json:"title"`
	Author             *string   `json:"author"`
	PriceCents         *int      `json:"price_cents"`
	OriginalPriceCents *int      `json:"original_price_cents"`
	Category           *string   `json:"category"`
	Description        *string   `json:"description"`
	Image              *string   `json:"image"`
	Rating             *float64  `json:"rating"`
	StockQty           *int      `json:"stock_qty"`
	Keywords           *[]string `json:"keywords"`
}

// UpdateBook handles admin partial book updates.
func UpdateBook(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseBookID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateBookRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		book, err := svc.UpdateBook(r.Context(), id, catalogsvc.UpdateBookInput{
			Title:              payload.Title,
			Author:             payload.Author,
			PriceCents:         payload.PriceCents,
			OriginalPriceCents: payload.OriginalPriceCents,
			Category:           payload.Category,
			Description:        payload.Description,
			Image:              payload.Image,
			Rating:             payload.Rating,
			StockQty:           payload.StockQty,
			Keywords:           payload.Keywords,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, book)
	}
}

// DeleteBook handles admin catalog removals.
func DeleteBook(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseBookID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteBook(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func parseBookID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "bookID")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid book id")
	}
	return id, nil
}

func parsePageParams(r *http.Request) (pagination.Params, error) {
	limit, err := validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	page, err := validators.ParseQueryInt(r, "page", 0, 0, 1<<20)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Limit: limit, Page: page}, nil
}
