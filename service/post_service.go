// file: service/post_service.go

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/AkashAman27/cuddly-nest-blog/common"
	"github.com/AkashAman27/cuddly-nest-blog/model"
	"github.com/AkashAman27/cuddly-nest-blog/repository"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

const (
	publicPostsCacheKey = "posts:published:recent"
	publicPostsCacheMax = 50
	postsCacheTTL       = 10 * time.Minute
)

// PostInput carries the writable fields of a post. Nil Categories/Tags leave
// the existing links untouched; non-nil values fully resync them.
type PostInput struct {
	Title            string
	Slug             string
	Excerpt          string
	Content          string
	Status           string
	FeaturedImageURL *string
	AuthorID         *string
	SEOTitle         string
	SEODescription   string
	FAQItems         model.JSONText
	InternalLinks    model.JSONText
	TemplateEnabled  bool
	TemplateType     *string
	Categories       []string
	Tags             []string
}

// PostService implements the post business rules: slug uniqueness, publish
// bookkeeping, content sanitizing, taxonomy sync and the public read cache.
type PostService struct {
	repo       repository.IPostRepository
	authorRepo repository.IAuthorRepository
	taxonomy   *TaxonomyService
	cache      ICacheClient
	sanitizer  *bluemonday.Policy
}

func NewPostService(repo repository.IPostRepository, authorRepo repository.IAuthorRepository, taxonomy *TaxonomyService, cache ICacheClient) *PostService {
	return &PostService{
		repo:       repo,
		authorRepo: authorRepo,
		taxonomy:   taxonomy,
		cache:      cache,
		sanitizer:  bluemonday.UGCPolicy(),
	}
}

// ListAdmin returns one page of posts for the admin screen plus pagination
// totals, with author info attached to each row.
func (s *PostService) ListAdmin(status, search string, page, limit int) (*model.PostPage, error) {
	offset := (page - 1) * limit

	posts, err := s.repo.List(status, search, limit, offset)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(status, search)
	if err != nil {
		return nil, err
	}

	authors := make(map[string]*model.Author)
	for _, post := range posts {
		ensureSlices(post)
		if post.AuthorID == nil {
			continue
		}
		id := *post.AuthorID
		author, seen := authors[id]
		if !seen {
			author, err = s.authorRepo.GetByID(id)
			if err != nil {
				if err != sql.ErrNoRows {
					return nil, err
				}
				author = nil
			}
			authors[id] = author
		}
		post.Author = author
	}

	totalPages := (total + limit - 1) / limit
	return &model.PostPage{
		Posts: posts,
		Pagination: model.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// Create stores a new post. Unknown author ids are rejected, duplicate slugs
// conflict, and a post born published gets its published_at stamped.
func (s *PostService) Create(input PostInput) (*model.Post, error) {
	if err := s.checkAuthor(input.AuthorID); err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(input.Slug)
	exists, err := s.repo.SlugExists(slug, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.NewConflictError("A post with this slug already exists")
	}

	post := s.buildPost(uuid.NewString(), input)
	post.Slug = slug
	if post.Status == model.StatusPublished {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	if err := s.repo.Create(post); err != nil {
		return nil, err
	}

	if input.Categories != nil {
		if err := s.taxonomy.SyncPostCategories(post.ID, input.Categories); err != nil {
			return nil, err
		}
	}
	if input.Tags != nil {
		if err := s.taxonomy.SyncPostTags(post.ID, input.Tags); err != nil {
			return nil, err
		}
	}

	s.invalidatePublicCache()
	return s.decorate(post)
}

// Get returns one post with author, taxonomy names and section count filled in.
func (s *PostService) Get(id string) (*model.Post, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, common.NewNotFoundError("Post not found")
		}
		return nil, err
	}
	return s.decorate(post)
}

// Update rewrites a post. published_at is stamped on the first transition to
// published and kept on later edits.
func (s *PostService) Update(id string, input PostInput) (*model.Post, error) {
	current, err := s.repo.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, common.NewNotFoundError("Post not found")
		}
		return nil, err
	}

	if err := s.checkAuthor(input.AuthorID); err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(input.Slug)
	exists, err := s.repo.SlugExists(slug, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.NewConflictError("A post with this slug already exists")
	}

	post := s.buildPost(id, input)
	post.Slug = slug
	post.PublishedAt = current.PublishedAt
	if post.Status == model.StatusPublished && current.PublishedAt == nil {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	if err := s.repo.Update(post); err != nil {
		if err == sql.ErrNoRows {
			return nil, common.NewNotFoundError("Post not found")
		}
		return nil, err
	}

	if input.Categories != nil {
		if err := s.taxonomy.SyncPostCategories(id, input.Categories); err != nil {
			return nil, err
		}
	}
	if input.Tags != nil {
		if err := s.taxonomy.SyncPostTags(id, input.Tags); err != nil {
			return nil, err
		}
	}

	s.invalidatePublicCache()
	return s.decorate(post)
}

// Delete removes a post and everything hanging off it.
func (s *PostService) Delete(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidatePublicCache()
	return nil
}

// ListPublic returns the most recent published posts, utilizing a cache-aside
// strategy: one shared cache entry holds the newest posts and each request
// slices what it needs.
func (s *PostService) ListPublic(limit int) ([]*model.Post, error) {
	if limit <= 0 || limit > publicPostsCacheMax {
		limit = publicPostsCacheMax
	}
	ctx := context.Background()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, publicPostsCacheKey).Result()
		if err == nil {
			var posts []*model.Post
			if err := json.Unmarshal([]byte(cached), &posts); err == nil {
				return clampPosts(posts, limit), nil
			}
		}
	}

	posts, err := s.repo.ListPublished(publicPostsCacheMax)
	if err != nil {
		return nil, err
	}
	for _, post := range posts {
		ensureSlices(post)
	}

	if s.cache != nil {
		if data, err := json.Marshal(posts); err == nil {
			s.cache.Set(ctx, publicPostsCacheKey, data, postsCacheTTL)
		}
	}

	return clampPosts(posts, limit), nil
}

// GetPublicBySlug returns one published post for the public blog.
func (s *PostService) GetPublicBySlug(slug string) (*model.Post, error) {
	post, err := s.repo.GetPublishedBySlug(slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, common.NewNotFoundError("Post not found")
		}
		return nil, err
	}
	return s.decorate(post)
}

func (s *PostService) checkAuthor(authorID *string) error {
	if authorID == nil || *authorID == "" {
		return nil
	}
	if _, err := s.authorRepo.GetByID(*authorID); err != nil {
		if err == sql.ErrNoRows {
			return common.NewAppError(http.StatusBadRequest, "Invalid author ID provided", nil)
		}
		return err
	}
	return nil
}

func (s *PostService) buildPost(id string, input PostInput) *model.Post {
	title := strings.TrimSpace(input.Title)

	status := input.Status
	if status == "" {
		status = model.StatusDraft
	}

	seoTitle := input.SEOTitle
	if seoTitle == "" {
		seoTitle = title
	}

	authorID := input.AuthorID
	if authorID != nil && *authorID == "" {
		authorID = nil
	}

	return &model.Post{
		ID:               id,
		Title:            title,
		Excerpt:          s.sanitizer.Sanitize(strings.TrimSpace(input.Excerpt)),
		Content:          s.sanitizer.Sanitize(input.Content),
		Status:           status,
		FeaturedImageURL: input.FeaturedImageURL,
		AuthorID:         authorID,
		SEOTitle:         seoTitle,
		SEODescription:   strings.TrimSpace(input.SEODescription),
		FAQItems:         defaultJSON(input.FAQItems, "[]"),
		InternalLinks:    defaultJSON(input.InternalLinks, "[]"),
		TemplateEnabled:  input.TemplateEnabled,
		TemplateType:     input.TemplateType,
	}
}

func (s *PostService) decorate(post *model.Post) (*model.Post, error) {
	if post.AuthorID != nil {
		author, err := s.authorRepo.GetByID(*post.AuthorID)
		if err == nil {
			post.Author = author
		} else if err != sql.ErrNoRows {
			return nil, err
		}
	}

	categories, err := s.taxonomy.repo.PostCategoryNames(post.ID)
	if err != nil {
		return nil, err
	}
	post.Categories = categories

	tags, err := s.taxonomy.repo.PostTagNames(post.ID)
	if err != nil {
		return nil, err
	}
	post.Tags = tags

	count, err := s.repo.CountSections(post.ID)
	if err != nil {
		return nil, err
	}
	post.SectionsCount = count

	ensureSlices(post)
	return post, nil
}

func (s *PostService) invalidatePublicCache() {
	if s.cache != nil {
		s.cache.Del(context.Background(), publicPostsCacheKey)
	}
}

func ensureSlices(post *model.Post) {
	if post.Categories == nil {
		post.Categories = []string{}
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
}

func clampPosts(posts []*model.Post, limit int) []*model.Post {
	if len(posts) > limit {
		return posts[:limit]
	}
	return posts
}

func defaultJSON(value model.JSONText, fallback string) model.JSONText {
	if len(value) == 0 || string(value) == "null" {
		return model.JSONText(fallback)
	}
	return value
}
