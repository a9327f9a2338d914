package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bookhaven/bookhaven-backend/api/responses"
	"github.com/bookhaven/bookhaven-backend/api/validators"
	contentsvc "github.com/bookhaven/bookhaven-backend/internal/content"
	"github.com/bookhaven/bookhaven-backend/pkg/errors"
	"github.com/bookhaven/bookhaven-backend/pkg/logger"
)

func parseContentID(r *http.Request, param string) (uuid.UUID, error) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.Wrap(errors.CodeValidation, err, "invalid id")
	}
	return id, nil
}

// ListFAQs returns every FAQ, newest first.
func ListFAQs(svc contentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dtos, err := svc.ListFAQs(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dtos)
	}
}

type createFAQRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

// CreateFAQ adds a FAQ entry.
func CreateFAQ(svc contentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createFAQRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.CreateFAQ(r.Context(), contentsvc.CreateFAQInput{
			Question: payload.Question,
			Answer:   payload.Answer,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

type updateFAQRequest struct {
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
}

// UpdateFAQ mutates the provided FAQ fields.
func UpdateFAQ(svc contentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseContentID(r, "faqID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateFAQRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.UpdateFAQ(r.Context(), id, contentsvc.UpdateFAQInput{
			Question: payload.Question,
			Answer:   payload.Answer,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// DeleteFAQ removes a FAQ entry.
func DeleteFAQ(svc contentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseContentID(r, "faqID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteFAQ(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// ListAnnouncements returns every announcement, most recent date first.
func ListAnnouncements(svc contentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dtos, err := svc.ListAnnouncements(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dtos)
	}
}

type createAnnouncementRequest struct {
	Title   string     `json:"title" validate:"required"`
	Content string     `json:"content" validate:"required"`
	Date    *time.Time `json:"date"`
}

// CreateAnnouncement posts a storefront announcement.
func CreateAnnouncement(svc contentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createAnnouncementRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := contentsvc.CreateAnnouncementInput{
			Title:   payload.Title,
			Content: payload.Content,
		}
		if payload.Date != nil {
			input.Date = *payload.Date
		}

		dto, err := svc.CreateAnnouncement(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

type updateAnnouncementRequest struct {
	Title   *string    `json:"title"`
	Content *string    `json:"content"`
	Date    *time.Time `json:"date"`
}

// UpdateAnnouncement mutates the provided announcement fields.
func UpdateAnnouncement(svc contentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseContentID(r, "announcementID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateAnnouncementRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.UpdateAnnouncement(r.Context(), id, contentsvc.UpdateAnnouncementInput{
			Title:   payload.Title,
			Content: payload.Content,
			Date:    payload.Date,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// DeleteAnnouncement removes an announcement.
func DeleteAnnouncement(svc contentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseContentID(r, "announcementID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteAnnouncement(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
