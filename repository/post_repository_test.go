package repository

import (
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/AkashAman27/cuddly-nest-blog/logger"
	"github.com/AkashAman27/cuddly-nest-blog/model"
)

// TestMain runs setup before any tests in this package are executed.
func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

var postRows = []string{
	"id", "title", "slug", "excerpt", "content", "status", "featured_image_url", "author_id",
	"seo_title", "seo_description", "faq_items", "internal_links", "template_enabled", "template_type",
	"published_at", "created_at", "updated_at",
}

func samplePostRow(mock sqlmock.Sqlmock, id, slug string) *sqlmock.Rows {
	now := time.Now()
	return mock.NewRows(postRows).AddRow(
		id, "Title", slug, "Excerpt", "Content", model.StatusPublished, nil, nil,
		"Title", "", []byte("[]"), []byte("[]"), false, nil,
		&now, now, now,
	)
}

func TestPostRepository_GetByID(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewPostRepository(db)

	t.Run("found", func(t *testing.T) {
		dbMock.ExpectQuery(`SELECT (.+) FROM modern_posts WHERE id = \$1`).
			WithArgs("p-1").
			WillReturnRows(samplePostRow(dbMock, "p-1", "hello"))

		post, err := repo.GetByID("p-1")

		assert.NoError(t, err)
		assert.Equal(t, "p-1", post.ID)
		assert.Equal(t, "hello", post.Slug)
		assert.Equal(t, "[]", string(post.FAQItems))
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		dbMock.ExpectQuery(`SELECT (.+) FROM modern_posts WHERE id = \$1`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID("missing")

		assert.Equal(t, sql.ErrNoRows, err)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestPostRepository_Create(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewPostRepository(db)
	now := time.Now()

	dbMock.ExpectQuery(`INSERT INTO modern_posts`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	post := &model.Post{
		ID: "p-1", Title: "Title", Slug: "title", Status: model.StatusDraft,
		FAQItems: model.JSONText("[]"), InternalLinks: model.JSONText("[]"),
	}
	assert.NoError(t, repo.Create(post))
	assert.Equal(t, now, post.CreatedAt)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestPostRepository_List(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewPostRepository(db)

	t.Run("status and search filters", func(t *testing.T) {
		rows := samplePostRow(dbMock, "p-1", "croatia-guide")
		dbMock.ExpectQuery(`SELECT (.+) FROM modern_posts WHERE status = \$1 AND \(title ILIKE \$2 OR slug ILIKE \$2 OR excerpt ILIKE \$2\) ORDER BY updated_at DESC LIMIT \$3 OFFSET \$4`).
			WithArgs("published", "%croatia%", 10, 0).
			WillReturnRows(rows)

		posts, err := repo.List("published", "croatia", 10, 0)

		assert.NoError(t, err)
		assert.Len(t, posts, 1)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("status all disables the filter", func(t *testing.T) {
		dbMock.ExpectQuery(`SELECT (.+) FROM modern_posts ORDER BY updated_at DESC LIMIT \$1 OFFSET \$2`).
			WithArgs(20, 40).
			WillReturnRows(dbMock.NewRows(postRows))

		posts, err := repo.List("all", "", 20, 40)

		assert.NoError(t, err)
		assert.Empty(t, posts)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestPostRepository_Count(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewPostRepository(db)

	dbMock.ExpectQuery(`SELECT COUNT\(\*\) FROM modern_posts WHERE status = \$1`).
		WithArgs("draft").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.Count("draft", "")

	assert.NoError(t, err)
	assert.Equal(t, 7, count)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestPostRepository_Update(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewPostRepository(db)

	t.Run("missing row surfaces as no rows", func(t *testing.T) {
		dbMock.ExpectQuery(`UPDATE modern_posts SET`).
			WillReturnError(sql.ErrNoRows)

		err := repo.Update(&model.Post{ID: "gone", FAQItems: model.JSONText("[]"), InternalLinks: model.JSONText("[]")})

		assert.Equal(t, sql.ErrNoRows, err)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestPostRepository_SlugExists(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewPostRepository(db)

	t.Run("update excludes its own row", func(t *testing.T) {
		dbMock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM modern_posts WHERE slug = \$1 AND id <> \$2\)`).
			WithArgs("taken", "f47ac10b-58cc-4372-a567-0e02b2c3d479").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		exists, err := repo.SlugExists("taken", "f47ac10b-58cc-4372-a567-0e02b2c3d479")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	// The id column is uuid; binding "" against it would fail at the database,
	// so the create path must check by slug alone.
	t.Run("create binds only the slug", func(t *testing.T) {
		dbMock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM modern_posts WHERE slug = \$1\)$`).
			WithArgs("hello-world").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		exists, err := repo.SlugExists("hello-world", "")

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestPostRepository_CountSections(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewPostRepository(db)

	dbMock.ExpectQuery(`SELECT COUNT\(\*\) FROM modern_post_sections WHERE post_id = \$1`).
		WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountSections("p-1")

	assert.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}
