package articles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookhaven/bookhaven-backend/pkg/db/models"
	pkgerrors "github.com/bookhaven/bookhaven-backend/pkg/errors"
)

// defaultAuthor is attributed when a post carries no explicit byline.
const defaultAuthor = "Admin"

// Service exposes the storefront's article feed. Shoppers only ever see
// published posts; the admin dashboard manages the full set including
// drafts and the publish workflow.
type Service interface {
	ListPublished(ctx context.Context, category string) ([]ArticleDTO, error)
	Search(ctx context.Context, keyword string) ([]ArticleDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ArticleDTO, error)

	AdminList(ctx context.Context) ([]ArticleDTO, error)
	Create(ctx context.Context, input CreateArticleInput) (*ArticleDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateArticleInput) (*ArticleDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Publish(ctx context.Context, id uuid.UUID) (*ArticleDTO, error)
	Unpublish(ctx context.Context, id uuid.UUID) (*ArticleDTO, error)
}

// CreateArticleInput holds the validated payload to create an article.
type CreateArticleInput struct {
	Title     string
	Summary   string
	Content   string
	Author    string
	Category  string
	ImageURL  string
	Published bool
}

// UpdateArticleInput holds optional mutation values for an article.
// Flipping Published runs the publish/draft transition.
type UpdateArticleInput struct {
	Title     *string
	Summary   *string
	Content   *string
	Category  *string
	ImageURL  *string
	Published *bool
}

type service struct {
	repo *Repository
	now  func() time.Time
}

// NewService constructs an articles service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("articles repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// ListPublished returns the shopper-visible feed, optionally narrowed to
// one category.
func (s *service) ListPublished(ctx context.Context, category string) ([]ArticleDTO, error) {
	rows, err := s.repo.ListPublished(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list articles")
	}
	return newArticleDTOList(rows), nil
}

// Search matches published posts against the keyword.
func (s *service) Search(ctx context.Context, keyword string) ([]ArticleDTO, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search keyword is required")
	}
	rows, err := s.repo.SearchPublished(ctx, keyword)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "search articles")
	}
	return newArticleDTOList(rows), nil
}

// Get loads one article by id.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*ArticleDTO, error) {
	article, err := s.findArticle(ctx, id)
	if err != nil {
		return nil, err
	}
	return newArticleDTO(article), nil
}

// AdminList returns every article including drafts, newest first.
func (s *service) AdminList(ctx context.Context) ([]ArticleDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list all articles")
	}
	return newArticleDTOList(rows), nil
}

// Create adds a post. When Published is set, the post goes live
// immediately with a publish timestamp.
func (s *service) Create(ctx context.Context, input CreateArticleInput) (*ArticleDTO, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if content == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "content is required")
	}
	author := strings.TrimSpace(input.Author)
	if author == "" {
		author = defaultAuthor
	}

	article := &models.Article{
		ID:       uuid.New(),
		Title:    title,
		Summary:  strings.TrimSpace(input.Summary),
		Content:  content,
		Author:   author,
		Category: strings.TrimSpace(input.Category),
		ImageURL: strings.TrimSpace(input.ImageURL),
	}
	if input.Published {
		s.markPublished(article)
	}

	created, err := s.repo.Create(ctx, article)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create article")
	}
	return newArticleDTO(created), nil
}

// Update applies the provided fields. A Published flip sets or clears the
// publish timestamp.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateArticleInput) (*ArticleDTO, error) {
	article, err := s.findArticle(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		article.Title = title
	}
	if input.Content != nil {
		content := strings.TrimSpace(*input.Content)
		if content == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "content cannot be empty")
		}
		article.Content = content
	}
	if input.Summary != nil {
		article.Summary = strings.TrimSpace(*input.Summary)
	}
	if input.Category != nil {
		article.Category = strings.TrimSpace(*input.Category)
	}
	if input.ImageURL != nil {
		article.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if input.Published != nil && *input.Published != article.Published {
		if *input.Published {
			s.markPublished(article)
		} else {
			s.markDraft(article)
		}
	}

	updated, err := s.repo.Update(ctx, article)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update article")
	}
	return newArticleDTO(updated), nil
}

// Delete removes an article.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "article not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete article")
	}
	return nil
}

// Publish makes a post live, stamping its publish time.
func (s *service) Publish(ctx context.Context, id uuid.UUID) (*ArticleDTO, error) {
	return s.setPublished(ctx, id, true)
}

// Unpublish pulls a post back to draft and clears its publish time.
func (s *service) Unpublish(ctx context.Context, id uuid.UUID) (*ArticleDTO, error) {
	return s.setPublished(ctx, id, false)
}

func (s *service) setPublished(ctx context.Context, id uuid.UUID, published bool) (*ArticleDTO, error) {
	article, err := s.findArticle(ctx, id)
	if err != nil {
		return nil, err
	}

	if published {
		s.markPublished(article)
	} else {
		s.markDraft(article)
	}

	updated, err := s.repo.Update(ctx, article)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update article")
	}
	return newArticleDTO(updated), nil
}

func (s *service) findArticle(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "article not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load article")
	}
	return article, nil
}

func (s *service) markPublished(article *models.Article) {
	now := s.now().UTC()
	article.Published = true
	article.PublishedAt = &now
}

func (s *service) markDraft(article *models.Article) {
	article.Published = false
	article.PublishedAt = nil
}
