// file: repository/section_repository.go

package repository

import (
	"database/sql"

	"github.com/AkashAman27/cuddly-nest-blog/logger"
	"github.com/AkashAman27/cuddly-nest-blog/model"
	"github.com/sirupsen/logrus"
)

// ISectionRepository defines the contract for post-section database operations.
type ISectionRepository interface {
	Create(section *model.Section) error
	GetByID(id string) (*model.Section, error)
	Update(section *model.Section) error
	Delete(id string) error
}

type SectionRepository struct {
	DB *sql.DB
}

func NewSectionRepository(db *sql.DB) *SectionRepository {
	return &SectionRepository{DB: db}
}

// Create inserts a new section record.
func (r *SectionRepository) Create(section *model.Section) error {
	log := logger.Log.WithFields(logrus.Fields{
		"section_id":  section.ID,
		"post_id":     section.PostID,
		"template_id": section.TemplateID,
	})
	log.Info("Executing query to create a new section")

	query := `INSERT INTO modern_post_sections (id, post_id, template_id, position, is_active, data)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at, updated_at`
	err := r.DB.QueryRow(query,
		section.ID, section.PostID, section.TemplateID, section.Position, section.IsActive, section.Data,
	).Scan(&section.CreatedAt, &section.UpdatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create section query")
		return err
	}
	return nil
}

func (r *SectionRepository) GetByID(id string) (*model.Section, error) {
	section := &model.Section{}
	query := `SELECT id, post_id, template_id, position, is_active, data, created_at, updated_at
		FROM modern_post_sections WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&section.ID, &section.PostID, &section.TemplateID, &section.Position,
		&section.IsActive, &section.Data, &section.CreatedAt, &section.UpdatedAt,
	)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithField("section_id", id).WithError(err).Error("Failed to execute get section query")
		}
		return nil, err
	}
	return section, nil
}

// Update rewrites position, activity flag and data. Returns sql.ErrNoRows
// when the section is gone.
func (r *SectionRepository) Update(section *model.Section) error {
	log := logger.Log.WithField("section_id", section.ID)
	log.Info("Executing query to update a section")

	query := `UPDATE modern_post_sections
		SET position = $2, is_active = $3, data = $4, updated_at = now()
		WHERE id = $1 RETURNING updated_at`
	err := r.DB.QueryRow(query, section.ID, section.Position, section.IsActive, section.Data).
		Scan(&section.UpdatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			log.WithError(err).Error("Failed to execute update section query")
		}
		return err
	}
	return nil
}

func (r *SectionRepository) Delete(id string) error {
	logger.Log.WithField("section_id", id).Info("Executing query to delete a section")

	_, err := r.DB.Exec(`DELETE FROM modern_post_sections WHERE id = $1`, id)
	if err != nil {
		logger.Log.WithField("section_id", id).WithError(err).Error("Failed to execute delete section query")
		return err
	}
	return nil
}
