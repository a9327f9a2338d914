package controllers

import (
	"net/http"

	"github.com/bookhaven/bookhaven-backend/api/responses"
	"github.com/bookhaven/bookhaven-backend/api/validators"
	articlesvc "github.com/bookhaven/bookhaven-backend/internal/articles"
	"github.com/bookhaven/bookhaven-backend/pkg/logger"
)

// ListArticles serves the public article feed. A "q" query searches the
// published posts; "category" narrows the feed.
func ListArticles(svc articlesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			dtos []articlesvc.ArticleDTO
			err  error
		)
		if keyword := r.URL.Query().Get("q"); keyword != "" {
			dtos, err = svc.Search(r.Context(), keyword)
		} else {
			dtos, err = svc.ListPublished(r.Context(), r.URL.Query().Get("category"))
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dtos)
	}
}

// GetArticle serves one article by id.
func GetArticle(svc articlesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseContentID(r, "articleID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// AdminListArticles returns every post including drafts.
func AdminListArticles(svc articlesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dtos, err := svc.AdminList(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dtos)
	}
}

type createArticleRequest struct {
	Title     string `json:"title" validate:"required"`
	Summary   string `json:"summary"`
	Content   string `json:"content" validate:"required"`
	Author    string `json:"author"`
	Category  string `json:"category"`
	ImageURL  string `json:"image_url"`
	Published bool   `json:"published"`
}

// CreateArticle adds a post, optionally publishing it immediately.
func CreateArticle(svc articlesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createArticleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Create(r.Context(), articlesvc.CreateArticleInput{
			Title:     payload.Title,
			Summary:   payload.Summary,
			Content:   payload.Content,
			Author:    payload.Author,
			Category:  payload.Category,
			ImageURL:  payload.ImageURL,
			Published: payload.Published,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

type updateArticleRequest struct {
	Title     *string `json:"title"`
	Summary   *string `json:"summary"`
	Content   *string `json:"content"`
	Category  *string `json:"category"`
	ImageURL  *string `json:"image_url"`
	Published *bool   `json:"published"`
}

// UpdateArticle mutates the provided article fields.
func UpdateArticle(svc articlesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseContentID(r, "articleID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateArticleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Update(r.Context(), id, articlesvc.UpdateArticleInput{
			Title:     payload.Title,
			Summary:   payload.Summary,
			Content:   payload.Content,
			Category:  payload.Category,
			ImageURL:  payload.ImageURL,
			Published: payload.Published,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// DeleteArticle removes a post.
func DeleteArticle(svc articlesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseContentID(r, "articleID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// PublishArticle makes a post live.
func PublishArticle(svc articlesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseContentID(r, "articleID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Publish(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// UnpublishArticle pulls a post back to draft.
func UnpublishArticle(svc articlesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseContentID(r, "articleID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Unpublish(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}
