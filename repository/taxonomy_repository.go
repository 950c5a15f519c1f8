package repository

import (
	"database/sql"

	"github.com/AkashAman27/cuddly-nest-blog/logger"
	"github.com/AkashAman27/cuddly-nest-blog/model"
)

// ITaxonomyRepository defines the contract for category and tag operations,
// including the junction tables linking them to posts.
type ITaxonomyRepository interface {
	ListCategories() ([]*model.Category, error)
	ListTags() ([]*model.Tag, error)
	FindCategory(name, slug string) (*model.Category, error)
	FindTag(name, slug string) (*model.Tag, error)
	CreateCategory(category *model.Category) error
	CreateTag(tag *model.Tag) error
	ReplacePostCategories(postID string, categoryIDs []string) error
	ReplacePostTags(postID string, tagIDs []string) error
	PostCategoryNames(postID string) ([]string, error)
	PostTagNames(postID string) ([]string, error)
}

type TaxonomyRepository struct {
	DB *sql.DB
}

func NewTaxonomyRepository(db *sql.DB) *TaxonomyRepository {
	return &TaxonomyRepository{DB: db}
}

func (r *TaxonomyRepository) ListCategories() ([]*model.Category, error) {
	rows, err := r.DB.Query(`SELECT id, name, slug, is_active FROM modern_categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*model.Category
	for rows.Next() {
		c := &model.Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.IsActive); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *TaxonomyRepository) ListTags() ([]*model.Tag, error) {
	rows, err := r.DB.Query(`SELECT id, name, slug FROM modern_tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*model.Tag
	for rows.Next() {
		t := &model.Tag{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// FindCategory looks a category up by exact name or by slug, matching the
// admin UI habit of sending either.
func (r *TaxonomyRepository) FindCategory(name, slug string) (*model.Category, error) {
	c := &model.Category{}
	query := `SELECT id, name, slug, is_active FROM modern_categories WHERE name = $1 OR slug = $2`
	err := r.DB.QueryRow(query, name, slug).Scan(&c.ID, &c.Name, &c.Slug, &c.IsActive)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *TaxonomyRepository) FindTag(name, slug string) (*model.Tag, error) {
	t := &model.Tag{}
	query := `SELECT id, name, slug FROM modern_tags WHERE name = $1 OR slug = $2`
	err := r.DB.QueryRow(query, name, slug).Scan(&t.ID, &t.Name, &t.Slug)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TaxonomyRepository) CreateCategory(category *model.Category) error {
	logger.Log.WithField("slug", category.Slug).Info("Executing query to create a new category")

	query := `INSERT INTO modern_categories (id, name, slug, is_active) VALUES ($1, $2, $3, $4)`
	_, err := r.DB.Exec(query, category.ID, category.Name, category.Slug, category.IsActive)
	return err
}

func (r *TaxonomyRepository) CreateTag(tag *model.Tag) error {
	logger.Log.WithField("slug", tag.Slug).Info("Executing query to create a new tag")

	query := `INSERT INTO modern_tags (id, name, slug) VALUES ($1, $2, $3)`
	_, err := r.DB.Exec(query, tag.ID, tag.Name, tag.Slug)
	return err
}

// ReplacePostCategories swaps a post's category links for the given set.
func (r *TaxonomyRepository) ReplacePostCategories(postID string, categoryIDs []string) error {
	return r.replaceLinks(postID, categoryIDs,
		`DELETE FROM modern_post_categories WHERE post_id = $1`,
		`INSERT INTO modern_post_categories (post_id, category_id) VALUES ($1, $2)`)
}

// ReplacePostTags swaps a post's tag links for the given set.
func (r *TaxonomyRepository) ReplacePostTags(postID string, tagIDs []string) error {
	return r.replaceLinks(postID, tagIDs,
		`DELETE FROM modern_post_tags WHERE post_id = $1`,
		`INSERT INTO modern_post_tags (post_id, tag_id) VALUES ($1, $2)`)
}

func (r *TaxonomyRepository) replaceLinks(postID string, ids []string, deleteQuery, insertQuery string) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(deleteQuery, postID); err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := tx.Exec(insertQuery, postID, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *TaxonomyRepository) PostCategoryNames(postID string) ([]string, error) {
	query := `SELECT c.name FROM modern_categories c
		JOIN modern_post_categories pc ON pc.category_id = c.id
		WHERE pc.post_id = $1 ORDER BY c.name`
	return r.names(query, postID)
}

func (r *TaxonomyRepository) PostTagNames(postID string) ([]string, error) {
	query := `SELECT t.name FROM modern_tags t
		JOIN modern_post_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id = $1 ORDER BY t.name`
	return r.names(query, postID)
}

func (r *TaxonomyRepository) names(query, postID string) ([]string, error) {
	rows, err := r.DB.Query(query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
