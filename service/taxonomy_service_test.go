package service

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/AkashAman27/cuddly-nest-blog/model"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "travel-tips", Slugify("Travel Tips"))
	assert.Equal(t, "one-two-three", Slugify("  One   Two\tThree  "))
	assert.Equal(t, "already-a-slug", Slugify("already-a-slug"))
	assert.Equal(t, "", Slugify("   "))
}

func TestTaxonomyService_SyncPostCategories(t *testing.T) {
	t.Run("existing categories are linked, missing ones created", func(t *testing.T) {
		repo := new(mockTaxonomyRepo)
		svc := NewTaxonomyService(repo)

		repo.On("FindCategory", "Travel Tips", "travel-tips").
			Return(&model.Category{ID: "c-1", Name: "Travel Tips"}, nil).Once()
		repo.On("FindCategory", "Croatia", "croatia").Return(nil, sql.ErrNoRows).Once()
		repo.On("CreateCategory", mock.MatchedBy(func(c *model.Category) bool {
			return c.Name == "Croatia" && c.Slug == "croatia" && c.IsActive && c.ID != ""
		})).Return(nil).Once()
		repo.On("ReplacePostCategories", "p-1", mock.MatchedBy(func(ids []string) bool {
			return len(ids) == 2 && ids[0] == "c-1"
		})).Return(nil).Once()

		err := svc.SyncPostCategories("p-1", []string{"Travel Tips", "Croatia"})

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("a category that fails to create is skipped", func(t *testing.T) {
		repo := new(mockTaxonomyRepo)
		svc := NewTaxonomyService(repo)

		repo.On("FindCategory", "Broken", "broken").Return(nil, sql.ErrNoRows).Once()
		repo.On("CreateCategory", mock.Anything).Return(errors.New("duplicate key")).Once()
		repo.On("ReplacePostCategories", "p-1", []string(nil)).Return(nil).Once()

		err := svc.SyncPostCategories("p-1", []string{"Broken"})

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("empty set clears all links", func(t *testing.T) {
		repo := new(mockTaxonomyRepo)
		svc := NewTaxonomyService(repo)

		repo.On("ReplacePostCategories", "p-1", []string(nil)).Return(nil).Once()

		assert.NoError(t, svc.SyncPostCategories("p-1", []string{}))
		repo.AssertExpectations(t)
	})
}

func TestTaxonomyService_SyncPostTags(t *testing.T) {
	repo := new(mockTaxonomyRepo)
	svc := NewTaxonomyService(repo)

	repo.On("FindTag", "beaches", "beaches").Return(nil, sql.ErrNoRows).Once()
	repo.On("CreateTag", mock.MatchedBy(func(tag *model.Tag) bool {
		return tag.Name == "beaches" && tag.Slug == "beaches"
	})).Return(nil).Once()
	repo.On("ReplacePostTags", "p-1", mock.MatchedBy(func(ids []string) bool {
		return len(ids) == 1
	})).Return(nil).Once()

	err := svc.SyncPostTags("p-1", []string{"beaches"})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
