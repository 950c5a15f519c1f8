package service

import (
	"strings"

	"github.com/AkashAman27/cuddly-nest-blog/common"
	"github.com/AkashAman27/cuddly-nest-blog/model"
	"github.com/AkashAman27/cuddly-nest-blog/repository"
	"github.com/google/uuid"
)

// AuthorService handles author-related business logic.
type AuthorService struct {
	repo repository.IAuthorRepository
}

func NewAuthorService(repo repository.IAuthorRepository) *AuthorService {
	return &AuthorService{repo: repo}
}

func (s *AuthorService) List() ([]*model.Author, error) {
	return s.repo.List()
}

func (s *AuthorService) Create(displayName, email string) (*model.Author, error) {
	author := &model.Author{
		ID:          uuid.NewString(),
		DisplayName: strings.TrimSpace(displayName),
		Email:       strings.ToLower(strings.TrimSpace(email)),
	}

	if err := s.repo.Create(author); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, common.NewConflictError("An author with this email already exists")
		}
		return nil, err
	}
	return author, nil
}
