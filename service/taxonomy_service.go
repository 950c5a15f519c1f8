package service

import (
	"regexp"
	"strings"

	"github.com/AkashAman27/cuddly-nest-blog/logger"
	"github.com/AkashAman27/cuddly-nest-blog/model"
	"github.com/AkashAman27/cuddly-nest-blog/repository"
	"github.com/google/uuid"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Slugify derives a URL slug from a display name: lowercased, runs of
// whitespace collapsed to single dashes.
func Slugify(name string) string {
	return whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// TaxonomyService handles category and tag bookkeeping for posts.
type TaxonomyService struct {
	repo repository.ITaxonomyRepository
}

func NewTaxonomyService(repo repository.ITaxonomyRepository) *TaxonomyService {
	return &TaxonomyService{repo: repo}
}

func (s *TaxonomyService) ListCategories() ([]*model.Category, error) {
	return s.repo.ListCategories()
}

func (s *TaxonomyService) ListTags() ([]*model.Tag, error) {
	return s.repo.ListTags()
}

// SyncPostCategories replaces a post's category links with the named set,
// creating taxonomy rows that don't exist yet. Names are matched by exact
// name or by generated slug. A category that fails to create is skipped, not
// fatal; the rest of the sync continues.
func (s *TaxonomyService) SyncPostCategories(postID string, names []string) error {
	var ids []string
	for _, name := range names {
		slug := Slugify(name)

		existing, err := s.repo.FindCategory(name, slug)
		if err == nil {
			ids = append(ids, existing.ID)
			continue
		}

		category := &model.Category{ID: uuid.NewString(), Name: name, Slug: slug, IsActive: true}
		if err := s.repo.CreateCategory(category); err != nil {
			logger.Log.WithField("category", name).WithError(err).Warn("Skipping category that failed to create")
			continue
		}
		ids = append(ids, category.ID)
	}

	return s.repo.ReplacePostCategories(postID, ids)
}

// SyncPostTags mirrors SyncPostCategories for tags.
func (s *TaxonomyService) SyncPostTags(postID string, names []string) error {
	var ids []string
	for _, name := range names {
		slug := Slugify(name)

		existing, err := s.repo.FindTag(name, slug)
		if err == nil {
			ids = append(ids, existing.ID)
			continue
		}

		tag := &model.Tag{ID: uuid.NewString(), Name: name, Slug: slug}
		if err := s.repo.CreateTag(tag); err != nil {
			logger.Log.WithField("tag", name).WithError(err).Warn("Skipping tag that failed to create")
			continue
		}
		ids = append(ids, tag.ID)
	}

	return s.repo.ReplacePostTags(postID, ids)
}
