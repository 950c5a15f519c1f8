package model

import "time"

// Section is one templated content block attached to a post. Data carries the
// template's free-form payload.
type Section struct {
	ID         string    `json:"id"`
	PostID     string    `json:"post_id"`
	TemplateID string    `json:"template_id"`
	Position   int       `json:"position"`
	IsActive   bool      `json:"is_active"`
	Data       JSONText  `json:"data"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
