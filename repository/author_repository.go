package repository

import (
	"database/sql"
	"errors"

	"github.com/AkashAman27/cuddly-nest-blog/model"
	"github.com/lib/pq"
)

// IAuthorRepository defines the contract for author database operations.
type IAuthorRepository interface {
	Create(author *model.Author) error
	GetByID(id string) (*model.Author, error)
	List() ([]*model.Author, error)
}

type AuthorRepository struct {
	DB *sql.DB
}

func NewAuthorRepository(db *sql.DB) *AuthorRepository {
	return &AuthorRepository{DB: db}
}

func (r *AuthorRepository) Create(author *model.Author) error {
	query := `INSERT INTO modern_authors (id, display_name, email) VALUES ($1, $2, $3) RETURNING created_at`
	return r.DB.QueryRow(query, author.ID, author.DisplayName, author.Email).Scan(&author.CreatedAt)
}

func (r *AuthorRepository) GetByID(id string) (*model.Author, error) {
	author := &model.Author{}
	query := `SELECT id, display_name, email, created_at FROM modern_authors WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(&author.ID, &author.DisplayName, &author.Email, &author.CreatedAt)
	if err != nil {
		return nil, err
	}
	return author, nil
}

func (r *AuthorRepository) List() ([]*model.Author, error) {
	query := `SELECT id, display_name, email, created_at FROM modern_authors ORDER BY display_name`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var authors []*model.Author
	for rows.Next() {
		author := &model.Author{}
		if err := rows.Scan(&author.ID, &author.DisplayName, &author.Email, &author.CreatedAt); err != nil {
			return nil, err
		}
		authors = append(authors, author)
	}
	return authors, rows.Err()
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation (23505), used to turn duplicate keys into conflict responses.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
