package articles

import (
	"time"

	"github.com/google/uuid"

	"github.com/bookhaven/bookhaven-backend/pkg/db/models"
)

// ArticleDTO represents an article returned to clients.
type ArticleDTO struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary"`
	Content     string     `json:"content"`
	Author      string     `json:"author"`
	Category    string     `json:"category"`
	ImageURL    string     `json:"image_url"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func newArticleDTO(article *models.Article) *ArticleDTO {
	return &ArticleDTO{
		ID:          article.ID,
		Title:       article.Title,
		Summary:     article.Summary,
		Content:     article.Content,
		Author:      article.Author,
		Category:    article.Category,
		ImageURL:    article.ImageURL,
		Published:   article.Published,
		PublishedAt: article.PublishedAt,
		CreatedAt:   article.CreatedAt,
		UpdatedAt:   article.UpdatedAt,
	}
}

func newArticleDTOList(articles []models.Article) []ArticleDTO {
	out := make([]ArticleDTO, 0, len(articles))
	for i := range articles {
		out = append(out, *newArticleDTO(&articles[i]))
	}
	return out
}
