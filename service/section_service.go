// file: service/section_service.go

package service

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/AkashAman27/cuddly-nest-blog/common"
	"github.com/AkashAman27/cuddly-nest-blog/model"
	"github.com/AkashAman27/cuddly-nest-blog/repository"
	"github.com/google/uuid"
)

// SectionInput carries writable section fields. Nil pointers mean "leave the
// stored value alone" on updates.
type SectionInput struct {
	PostID     string
	TemplateID string
	Position   *int
	IsActive   *bool
	Data       map[string]any
}

// SectionService handles templated post-section blocks.
type SectionService struct {
	repo     repository.ISectionRepository
	postRepo repository.IPostRepository
}

func NewSectionService(repo repository.ISectionRepository, postRepo repository.IPostRepository) *SectionService {
	return &SectionService{repo: repo, postRepo: postRepo}
}

// Create attaches a new section to an existing post.
func (s *SectionService) Create(input SectionInput) (*model.Section, error) {
	if _, err := s.postRepo.GetByID(input.PostID); err != nil {
		if err == sql.ErrNoRows {
			return nil, common.NewAppError(http.StatusBadRequest, "Invalid post ID provided", nil)
		}
		return nil, err
	}

	section := &model.Section{
		ID:         uuid.NewString(),
		PostID:     input.PostID,
		TemplateID: input.TemplateID,
		Position:   0,
		IsActive:   true,
		Data:       model.JSONText("{}"),
	}
	if input.Position != nil {
		section.Position = *input.Position
	}
	if input.IsActive != nil {
		section.IsActive = *input.IsActive
	}
	if input.Data != nil {
		data, err := json.Marshal(input.Data)
		if err != nil {
			return nil, err
		}
		section.Data = data
	}

	if err := s.repo.Create(section); err != nil {
		return nil, err
	}
	return section, nil
}

// Update applies partial changes to a section. Submitted data keys are merged
// over the stored payload key by key; omitted fields keep their values.
func (s *SectionService) Update(id string, input SectionInput) (*model.Section, error) {
	section, err := s.repo.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, common.NewNotFoundError("Section not found")
		}
		return nil, err
	}

	if input.Position != nil {
		section.Position = *input.Position
	}
	if input.IsActive != nil {
		section.IsActive = *input.IsActive
	}
	if input.Data != nil {
		merged := map[string]any{}
		if len(section.Data) > 0 {
			// Stored data is trusted; a decode failure just means we start over.
			json.Unmarshal(section.Data, &merged)
		}
		for k, v := range input.Data {
			merged[k] = v
		}
		data, err := json.Marshal(merged)
		if err != nil {
			return nil, err
		}
		section.Data = data
	}

	if err := s.repo.Update(section); err != nil {
		if err == sql.ErrNoRows {
			return nil, common.NewNotFoundError("Section not found")
		}
		return nil, err
	}
	return section, nil
}

func (s *SectionService) Delete(id string) error {
	return s.repo.Delete(id)
}
