package repository

import (
	"database/sql"
	"fmt"

	"github.com/AkashAman27/cuddly-nest-blog/logger"
	"github.com/AkashAman27/cuddly-nest-blog/model"
	"github.com/sirupsen/logrus"
)

// IPostRepository defines the contract for post database operations.
type IPostRepository interface {
	Create(post *model.Post) error
	GetByID(id string) (*model.Post, error)
	GetPublishedBySlug(slug string) (*model.Post, error)
	List(status, search string, limit, offset int) ([]*model.Post, error)
	Count(status, search string) (int, error)
	ListPublished(limit int) ([]*model.Post, error)
	Update(post *model.Post) error
	Delete(id string) error
	SlugExists(slug, excludeID string) (bool, error)
	CountSections(postID string) (int, error)
}

// PostRepository implements IPostRepository on PostgreSQL.
type PostRepository struct {
	DB *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{DB: db}
}

const postColumns = `id, title, slug, excerpt, content, status, featured_image_url, author_id,
	seo_title, seo_description, faq_items, internal_links, template_enabled, template_type,
	published_at, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (*model.Post, error) {
	post := &model.Post{}
	err := row.Scan(
		&post.ID, &post.Title, &post.Slug, &post.Excerpt, &post.Content, &post.Status,
		&post.FeaturedImageURL, &post.AuthorID, &post.SEOTitle, &post.SEODescription,
		&post.FAQItems, &post.InternalLinks, &post.TemplateEnabled, &post.TemplateType,
		&post.PublishedAt, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return post, nil
}

// Create inserts a new post row.
func (r *PostRepository) Create(post *model.Post) error {
	log := logger.Log.WithFields(logrus.Fields{
		"post_id": post.ID,
		"slug":    post.Slug,
		"status":  post.Status,
	})
	log.Info("Executing query to create a new post")

	query := `INSERT INTO modern_posts
		(id, title, slug, excerpt, content, status, featured_image_url, author_id,
		 seo_title, seo_description, faq_items, internal_links, template_enabled, template_type, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at`
	err := r.DB.QueryRow(query,
		post.ID, post.Title, post.Slug, post.Excerpt, post.Content, post.Status,
		post.FeaturedImageURL, post.AuthorID, post.SEOTitle, post.SEODescription,
		post.FAQItems, post.InternalLinks, post.TemplateEnabled, post.TemplateType,
		post.PublishedAt,
	).Scan(&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create post query")
		return err
	}
	return nil
}

// GetByID retrieves one post regardless of status.
func (r *PostRepository) GetByID(id string) (*model.Post, error) {
	query := fmt.Sprintf(`SELECT %s FROM modern_posts WHERE id = $1`, postColumns)
	post, err := scanPost(r.DB.QueryRow(query, id))
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithField("post_id", id).WithError(err).Error("Failed to execute get post by id query")
		}
		return nil, err
	}
	return post, nil
}

// GetPublishedBySlug retrieves a published post for the public blog.
func (r *PostRepository) GetPublishedBySlug(slug string) (*model.Post, error) {
	query := fmt.Sprintf(`SELECT %s FROM modern_posts WHERE slug = $1 AND status = $2`, postColumns)
	post, err := scanPost(r.DB.QueryRow(query, slug, model.StatusPublished))
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithField("slug", slug).WithError(err).Error("Failed to execute get post by slug query")
		}
		return nil, err
	}
	return post, nil
}

// List retrieves a page of posts for the admin screen, newest updates first.
// status "" or "all" disables the status filter; a non-empty search matches
// title, slug or excerpt.
func (r *PostRepository) List(status, search string, limit, offset int) ([]*model.Post, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"status": status,
		"search": search,
		"limit":  limit,
		"offset": offset,
	})
	log.Info("Executing query to list posts")

	query := fmt.Sprintf(`SELECT %s FROM modern_posts`, postColumns)
	where, args := postFilters(status, search)
	query += where
	query += fmt.Sprintf(` ORDER BY updated_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		log.WithError(err).Error("Failed to execute list posts query")
		return nil, err
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			log.WithError(err).Error("Failed to scan post row")
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// Count returns the number of posts matching the same filters List applies.
func (r *PostRepository) Count(status, search string) (int, error) {
	query := `SELECT COUNT(*) FROM modern_posts`
	where, args := postFilters(status, search)
	query += where

	var count int
	if err := r.DB.QueryRow(query, args...).Scan(&count); err != nil {
		logger.Log.WithError(err).Error("Failed to execute count posts query")
		return 0, err
	}
	return count, nil
}

func postFilters(status, search string) (string, []any) {
	where := ""
	var args []any

	if status != "" && status != "all" {
		args = append(args, status)
		where = fmt.Sprintf(" WHERE status = $%d", len(args))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		clause := fmt.Sprintf("(title ILIKE $%d OR slug ILIKE $%d OR excerpt ILIKE $%d)",
			len(args), len(args), len(args))
		if where == "" {
			where = " WHERE " + clause
		} else {
			where += " AND " + clause
		}
	}
	return where, args
}

// ListPublished retrieves the most recent published posts for the public blog.
func (r *PostRepository) ListPublished(limit int) ([]*model.Post, error) {
	query := fmt.Sprintf(`SELECT %s FROM modern_posts WHERE status = $1 ORDER BY published_at DESC LIMIT $2`, postColumns)
	rows, err := r.DB.Query(query, model.StatusPublished, limit)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute list published posts query")
		return nil, err
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			logger.Log.WithError(err).Error("Failed to scan post row")
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// Update rewrites a post row. Returns sql.ErrNoRows when the post is gone.
func (r *PostRepository) Update(post *model.Post) error {
	log := logger.Log.WithFields(logrus.Fields{
		"post_id": post.ID,
		"slug":    post.Slug,
		"status":  post.Status,
	})
	log.Info("Executing query to update a post")

	query := `UPDATE modern_posts SET
		title = $2, slug = $3, excerpt = $4, content = $5, status = $6,
		featured_image_url = $7, author_id = $8, seo_title = $9, seo_description = $10,
		faq_items = $11, internal_links = $12, template_enabled = $13, template_type = $14,
		published_at = $15, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`
	err := r.DB.QueryRow(query,
		post.ID, post.Title, post.Slug, post.Excerpt, post.Content, post.Status,
		post.FeaturedImageURL, post.AuthorID, post.SEOTitle, post.SEODescription,
		post.FAQItems, post.InternalLinks, post.TemplateEnabled, post.TemplateType,
		post.PublishedAt,
	).Scan(&post.UpdatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			log.WithError(err).Error("Failed to execute update post query")
		}
		return err
	}
	return nil
}

// Delete removes a post; junction rows and sections cascade.
func (r *PostRepository) Delete(id string) error {
	logger.Log.WithField("post_id", id).Info("Executing query to delete a post")

	_, err := r.DB.Exec(`DELETE FROM modern_posts WHERE id = $1`, id)
	if err != nil {
		logger.Log.WithField("post_id", id).WithError(err).Error("Failed to execute delete post query")
		return err
	}
	return nil
}

// SlugExists reports whether another post already uses the slug. excludeID
// keeps an update from colliding with itself; creates pass "" and must not
// bind it against the uuid id column.
func (r *PostRepository) SlugExists(slug, excludeID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM modern_posts WHERE slug = $1)`
	args := []any{slug}
	if excludeID != "" {
		query = `SELECT EXISTS (SELECT 1 FROM modern_posts WHERE slug = $1 AND id <> $2)`
		args = append(args, excludeID)
	}

	var exists bool
	if err := r.DB.QueryRow(query, args...).Scan(&exists); err != nil {
		logger.Log.WithField("slug", slug).WithError(err).Error("Failed to execute slug exists query")
		return false, err
	}
	return exists, nil
}

// CountSections returns how many sections a post carries.
func (r *PostRepository) CountSections(postID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM modern_post_sections WHERE post_id = $1`
	if err := r.DB.QueryRow(query, postID).Scan(&count); err != nil {
		logger.Log.WithField("post_id", postID).WithError(err).Error("Failed to execute count sections query")
		return 0, err
	}
	return count, nil
}
